package directory

import (
	"strings"

	"github.com/vytor/userdirectory/internal/models"
	"golang.org/x/text/cases"
)

// ResultSet is an ordered list of profiles eligible for display.
type ResultSet []models.Profile

// Filter keeps the profiles whose "first last" name contains query,
// ignoring case, in their original order. An empty query keeps everything.
// The input is never modified and the result never aliases it.
func Filter(rs ResultSet, query string) ResultSet {
	out := make(ResultSet, 0, len(rs))
	if query == "" {
		return append(out, rs...)
	}

	fold := cases.Fold()
	needle := fold.String(query)
	for _, p := range rs {
		if strings.Contains(fold.String(p.FullName()), needle) {
			out = append(out, p)
		}
	}
	return out
}
