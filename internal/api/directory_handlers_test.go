package api

import (
	"encoding/json"
	stderrors "errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/vytor/userdirectory/internal/randomuser"
	"github.com/vytor/userdirectory/internal/repository/sqlite"
	"github.com/vytor/userdirectory/internal/services"
	"github.com/vytor/userdirectory/internal/testutil"
	"github.com/vytor/userdirectory/internal/testutil/mocks"
)

const testPageID = "0b7d8f4e-5a61-4d2c-9e3f-1a2b3c4d5e6f"

var testFetch = randomuser.FetchRequest{Count: 12}

func newTestServer(t *testing.T, client *mocks.MockProfileClient) http.Handler {
	t.Helper()

	sqlDB := testutil.NewTestDB(t)
	t.Cleanup(func() { testutil.MustClose(t, sqlDB) })

	tmpl, err := LoadTemplates()
	require.NoError(t, err)

	svc := services.NewDirectoryService(client, sqlite.NewPageRepository(sqlDB), testFetch, time.Hour,
		services.WithIDGenerator(func() string { return testPageID }),
	)
	srv := &Server{DirectoryService: svc, DB: sqlDB, Templates: tmpl}
	return srv.Routes()
}

// seededServer serves a page already created from three profiles.
func seededServer(t *testing.T) http.Handler {
	t.Helper()

	client := &mocks.MockProfileClient{}
	client.On("FetchProfiles", mock.Anything, testFetch).
		Return(testutil.Profiles("Ann Lee", "Bo Park", "Cy Han"), nil).Once()

	h := newTestServer(t, client)
	rec := get(t, h, "/")
	require.Equal(t, http.StatusOK, rec.Code)
	client.AssertExpectations(t)
	return h
}

func get(t *testing.T, h http.Handler, target string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, target, nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func parse(t *testing.T, rec *httptest.ResponseRecorder) *goquery.Document {
	t.Helper()
	doc, err := goquery.NewDocumentFromReader(rec.Body)
	require.NoError(t, err)
	return doc
}

func cardNames(doc *goquery.Document) []string {
	var names []string
	doc.Find(".card .card-name").Each(func(_ int, s *goquery.Selection) {
		names = append(names, strings.TrimSpace(s.Text()))
	})
	return names
}

func TestNewPage_RendersFetchedCards(t *testing.T) {
	client := &mocks.MockProfileClient{}
	client.On("FetchProfiles", mock.Anything, testFetch).
		Return(testutil.Profiles("Ann Lee", "Bo Park", "Cy Han"), nil).Once()

	rec := get(t, newTestServer(t, client), "/")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Header().Get("Content-Type"), "text/html")

	doc := parse(t, rec)
	assert.Equal(t, []string{"Ann Lee", "Bo Park", "Cy Han"}, cardNames(doc))
	assert.Equal(t, 0, doc.Find(".modal-container").Length())

	first := doc.Find(".card").First()
	href, _ := first.Attr("href")
	assert.Equal(t, "/pages/"+testPageID+"/profiles/0", href)
	alt, _ := first.Find("img.card-img").Attr("alt")
	assert.Equal(t, "profile picture of Ann Lee", alt)
	assert.Equal(t, "ann.lee@example.com", strings.TrimSpace(first.Find(".card-text").First().Text()))
	assert.Equal(t, "Springfield, Oregon", strings.TrimSpace(first.Find(".card-text").Last().Text()))

	action, _ := doc.Find("#search-form").Attr("action")
	assert.Equal(t, "/pages/"+testPageID, action)
}

func TestNewPage_FetchFailureRendersEmptyPage(t *testing.T) {
	client := &mocks.MockProfileClient{}
	client.On("FetchProfiles", mock.Anything, testFetch).Return(nil, stderrors.New("connection refused")).Once()

	rec := get(t, newTestServer(t, client), "/")
	require.Equal(t, http.StatusOK, rec.Code)

	doc := parse(t, rec)
	assert.Empty(t, cardNames(doc))
	assert.Equal(t, 1, doc.Find("#gallery").Length())
	assert.Equal(t, 0, doc.Find("#search-form").Length())
}

func TestPage_SearchFiltersAndClearRestores(t *testing.T) {
	h := seededServer(t)

	doc := parse(t, get(t, h, "/pages/"+testPageID+"?q=b"))
	assert.Equal(t, []string{"Bo Park"}, cardNames(doc))
	value, _ := doc.Find("#search-input").Attr("value")
	assert.Equal(t, "b", value)

	doc = parse(t, get(t, h, "/pages/"+testPageID+"?q=zzz"))
	assert.Empty(t, cardNames(doc))

	doc = parse(t, get(t, h, "/pages/"+testPageID+"?q="))
	assert.Equal(t, []string{"Ann Lee", "Bo Park", "Cy Han"}, cardNames(doc))
}

func TestCards_ReturnsGalleryFragment(t *testing.T) {
	h := seededServer(t)

	rec := get(t, h, "/pages/"+testPageID+"/cards?q=AN")
	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.NotContains(t, body, "<html")

	doc := parse(t, rec)
	assert.Equal(t, []string{"Ann Lee", "Cy Han"}, cardNames(doc))

	// Indices are positions in the filtered list.
	href, _ := doc.Find(".card").Last().Attr("href")
	assert.Equal(t, "/pages/"+testPageID+"/profiles/1?q=AN", href)
}

func TestProfile_OverlayNavigation(t *testing.T) {
	h := seededServer(t)
	base := "/pages/" + testPageID + "/profiles/"

	doc := parse(t, get(t, h, base+"0"))
	require.Equal(t, 1, doc.Find(".modal-container").Length())
	assert.Equal(t, "Ann Lee", strings.TrimSpace(doc.Find(".modal-name").Text()))
	assert.Contains(t, doc.Find(".modal-info-container").Text(), "Birthday: 01/01/1980")
	assert.Contains(t, doc.Find(".modal-info-container").Text(), "100 Main Street, United States, 97400")
	assert.Equal(t, 0, doc.Find("#modal-prev").Length())
	next, _ := doc.Find("#modal-next").Attr("href")
	assert.Equal(t, base+"1", next)

	doc = parse(t, get(t, h, base+"1"))
	assert.Equal(t, "Bo Park", strings.TrimSpace(doc.Find(".modal-name").Text()))
	assert.Equal(t, 1, doc.Find("#modal-prev").Length())
	assert.Equal(t, 1, doc.Find("#modal-next").Length())

	doc = parse(t, get(t, h, base+"2"))
	assert.Equal(t, "Cy Han", strings.TrimSpace(doc.Find(".modal-name").Text()))
	prev, _ := doc.Find("#modal-prev").Attr("href")
	assert.Equal(t, base+"1", prev)
	assert.Equal(t, 0, doc.Find("#modal-next").Length())

	closeHref, _ := doc.Find("#modal-close-btn").Attr("href")
	assert.Equal(t, "/pages/"+testPageID, closeHref)
	backdropHref, _ := doc.Find(".modal-backdrop").Attr("href")
	assert.Equal(t, closeHref, backdropHref)
}

func TestProfile_OverlayFollowsFilteredResults(t *testing.T) {
	h := seededServer(t)

	doc := parse(t, get(t, h, "/pages/"+testPageID+"/profiles/0?q=b"))
	assert.Equal(t, "Bo Park", strings.TrimSpace(doc.Find(".modal-name").Text()))
	assert.Equal(t, 0, doc.Find("#modal-prev").Length())
	assert.Equal(t, 0, doc.Find("#modal-next").Length())

	closeHref, _ := doc.Find("#modal-close-btn").Attr("href")
	assert.Equal(t, "/pages/"+testPageID+"?q=b", closeHref)
}

func TestSearchForm_KeepsURLOnlyWhileOverlayIsOpen(t *testing.T) {
	h := seededServer(t)

	doc := parse(t, get(t, h, "/pages/"+testPageID+"/profiles/1"))
	keep, _ := doc.Find("#search-form").Attr("data-keep-url")
	assert.Equal(t, "true", keep)

	doc = parse(t, get(t, h, "/pages/"+testPageID))
	keep, _ = doc.Find("#search-form").Attr("data-keep-url")
	assert.Equal(t, "false", keep)
}

func TestProfile_Errors(t *testing.T) {
	h := seededServer(t)

	tests := []struct {
		name   string
		target string
		status int
	}{
		{"index out of range", "/pages/" + testPageID + "/profiles/3", http.StatusNotFound},
		{"index out of filtered range", "/pages/" + testPageID + "/profiles/1?q=b", http.StatusNotFound},
		{"negative index", "/pages/" + testPageID + "/profiles/-1", http.StatusNotFound},
		{"non-integer index", "/pages/" + testPageID + "/profiles/first", http.StatusBadRequest},
		{"malformed page id", "/pages/not-a-uuid", http.StatusNotFound},
		{"unknown page", "/pages/9a9a9a9a-1b1b-4c4c-8d8d-0e0e0e0e0e0e", http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.status, get(t, h, tt.target).Code)
		})
	}
}

func TestProfileVCard_Download(t *testing.T) {
	h := seededServer(t)

	rec := get(t, h, "/pages/"+testPageID+"/profiles/0/vcard?q=park")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Header().Get("Content-Type"), "text/vcard")
	assert.Equal(t, `attachment; filename="bo-park.vcf"`, rec.Header().Get("Content-Disposition"))
	assert.Contains(t, rec.Body.String(), "FN:Bo Park")
	assert.Contains(t, rec.Body.String(), "bo.park@example.com")
}

func TestAPIProfiles(t *testing.T) {
	h := seededServer(t)

	rec := get(t, h, "/api/pages/"+testPageID+"/profiles?q=han")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	var body profilesResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	assert.Equal(t, testPageID, body.PageID)
	assert.Equal(t, "han", body.Query)
	assert.Equal(t, 1, body.Total)
	require.Len(t, body.Profiles, 1)
	assert.Equal(t, "Cy", body.Profiles[0].FirstName)
}

func TestAPIProfiles_UnknownPageIsJSONError(t *testing.T) {
	h := seededServer(t)

	rec := get(t, h, "/api/pages/not-a-uuid/profiles")
	require.Equal(t, http.StatusNotFound, rec.Code)

	var body errorBody
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	assert.Equal(t, "NOT_FOUND", body.Error.Code)
}

func TestHealthAndStatic(t *testing.T) {
	h := newTestServer(t, &mocks.MockProfileClient{})

	rec := get(t, h, "/healthz")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.NotEmpty(t, rec.Header().Get("X-Request-ID"))

	assert.Equal(t, http.StatusOK, get(t, h, "/readyz").Code)

	rec = get(t, h, "/static/styles.css")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "nosniff", rec.Header().Get("X-Content-Type-Options"))
}
