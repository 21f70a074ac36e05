package api

import (
	"embed"
	"html/template"
	"io/fs"
	"net/http"
	"net/url"
	"strconv"
)

//go:embed templates/*.html
var templatesFS embed.FS

//go:embed static
var staticFS embed.FS

// staticFiles serves the embedded stylesheet and script.
func staticFiles() http.FileSystem {
	sub, err := fs.Sub(staticFS, "static")
	if err != nil {
		panic(err)
	}
	return http.FS(sub)
}

func withQuery(path, query string) string {
	if query == "" {
		return path
	}
	return path + "?" + url.Values{"q": {query}}.Encode()
}

func pageURL(pageID, query string) string {
	return withQuery("/pages/"+url.PathEscape(pageID), query)
}

func cardsURL(pageID string) string {
	return "/pages/" + url.PathEscape(pageID) + "/cards"
}

func profileURL(pageID string, index int, query string) string {
	return withQuery("/pages/"+url.PathEscape(pageID)+"/profiles/"+strconv.Itoa(index), query)
}

func vcardURL(pageID string, index int, query string) string {
	return withQuery("/pages/"+url.PathEscape(pageID)+"/profiles/"+strconv.Itoa(index)+"/vcard", query)
}

func LoadTemplates() (*template.Template, error) {
	funcs := template.FuncMap{
		"add":        func(a, b int) int { return a + b },
		"sub":        func(a, b int) int { return a - b },
		"pageURL":    pageURL,
		"cardsURL":   cardsURL,
		"profileURL": profileURL,
		"vcardURL":   vcardURL,
	}

	return template.New("base").Funcs(funcs).ParseFS(templatesFS, "templates/*.html")
}
