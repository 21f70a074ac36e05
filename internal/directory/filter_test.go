package directory_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/vytor/userdirectory/internal/directory"
	"github.com/vytor/userdirectory/internal/testutil"
)

func names(rs directory.ResultSet) []string {
	out := make([]string, len(rs))
	for i, p := range rs {
		out[i] = p.FullName()
	}
	return out
}

func TestFilter(t *testing.T) {
	all := directory.ResultSet(testutil.Profiles("Ann Lee", "Bo Park", "Cy Han", "Johnny Bravo", "Elton John"))

	tests := []struct {
		name  string
		query string
		want  []string
	}{
		{name: "empty query keeps all", query: "", want: []string{"Ann Lee", "Bo Park", "Cy Han", "Johnny Bravo", "Elton John"}},
		{name: "single letter", query: "b", want: []string{"Bo Park", "Johnny Bravo"}},
		{name: "matches across first and last", query: "n l", want: []string{"Ann Lee"}},
		{name: "last name only", query: "han", want: []string{"Cy Han"}},
		{name: "preserves original order", query: "john", want: []string{"Johnny Bravo", "Elton John"}},
		{name: "no match", query: "zed", want: []string{}},
		{name: "whitespace is significant", query: "  ", want: []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, names(directory.Filter(all, tt.query)))
		})
	}
}

func TestFilter_CaseInsensitive(t *testing.T) {
	all := directory.ResultSet(testutil.Profiles("Johnny Bravo", "Ann Lee", "Elton John", "Björk Guðmundsdóttir"))

	lower := directory.Filter(all, "john")
	upper := directory.Filter(all, "JOHN")
	mixed := directory.Filter(all, "jOhN")

	assert.Equal(t, lower, upper)
	assert.Equal(t, lower, mixed)
	assert.Len(t, lower, 2)

	assert.Equal(t, []string{"Björk Guðmundsdóttir"}, names(directory.Filter(all, "BJÖRK")))
}

func TestFilter_Idempotent(t *testing.T) {
	all := directory.ResultSet(testutil.Profiles("Ann Lee", "Bo Park", "Cy Han"))

	once := directory.Filter(all, "a")
	twice := directory.Filter(once, "a")

	assert.Equal(t, once, twice)
	assert.Equal(t, once, directory.Filter(all, "a"))
}

func TestFilter_EmptyQueryEqualsInputWithoutAliasing(t *testing.T) {
	all := directory.ResultSet(testutil.Profiles("Ann Lee", "Bo Park", "Cy Han"))

	got := directory.Filter(all, "")
	assert.Equal(t, all, got)

	got[0].FirstName = "Changed"
	assert.Equal(t, "Ann", all[0].FirstName)
}

func TestFilter_NilInput(t *testing.T) {
	got := directory.Filter(nil, "x")
	assert.NotNil(t, got)
	assert.Empty(t, got)
}
