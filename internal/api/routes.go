package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()
	r.Use(recoveryMiddleware)
	r.Use(loggingMiddleware)
	r.Use(securityHeadersMiddleware)
	r.Use(timeoutMiddleware(s.RequestTimeout))

	r.Get("/", s.handleNewPage)
	r.Route("/pages/{pageID}", func(r chi.Router) {
		r.Get("/", s.handlePage)
		r.Get("/cards", s.handleCards)
		r.Get("/profiles/{index}", s.handleProfile)
		r.Get("/profiles/{index}/vcard", s.handleProfileVCard)
	})
	r.Get("/api/pages/{pageID}/profiles", s.handleAPIProfiles)

	r.Get("/healthz", s.handleHealth)
	r.Get("/readyz", s.handleReady)

	r.Handle("/static/*", http.StripPrefix("/static/", http.FileServer(staticFiles())))
	return r
}
