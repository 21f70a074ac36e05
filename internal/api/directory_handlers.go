package api

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/vytor/userdirectory/internal/errors"
	"github.com/vytor/userdirectory/internal/logger"
	"github.com/vytor/userdirectory/internal/models"
	"github.com/vytor/userdirectory/internal/services"
	"github.com/vytor/userdirectory/internal/vcard"
)

// handleNewPage serves a fresh page: one fetch, rendered in place. A failed
// fetch still renders the page, just without cards.
func (s *Server) handleNewPage(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContext(r.Context())

	renderer := &htmlRenderer{}
	session, err := s.DirectoryService.NewPage(r.Context(), renderer)
	if err != nil {
		if appErr, ok := errors.As(err); ok && appErr.Code == errors.ErrCodeUpstream {
			log.Warn("rendering empty directory: %v", err)
			s.render(w, r, "page", renderer.view("", ""))
			return
		}
		handleError(w, r, err)
		return
	}

	s.render(w, r, "page", renderer.view(session.Page.ID, ""))
}

// openSession restores the page named in the URL and applies the q query
// parameter, the way the search box would have.
func (s *Server) openSession(w http.ResponseWriter, r *http.Request) (*services.PageSession, *htmlRenderer, string, bool) {
	renderer := &htmlRenderer{}
	session, err := s.DirectoryService.OpenPage(r.Context(), chi.URLParam(r, "pageID"), renderer)
	if err != nil {
		handleError(w, r, err)
		return nil, nil, "", false
	}

	query := r.URL.Query().Get("q")
	if query != "" {
		session.Controller.Search(query)
	}
	return session, renderer, query, true
}

// openProfile additionally opens the overlay on the card index in the URL.
func (s *Server) openProfile(w http.ResponseWriter, r *http.Request) (*services.PageSession, *htmlRenderer, string, bool) {
	index, err := strconv.Atoi(chi.URLParam(r, "index"))
	if err != nil {
		handleError(w, r, errors.NewBadRequestError("profile index must be an integer"))
		return nil, nil, "", false
	}

	session, renderer, query, ok := s.openSession(w, r)
	if !ok {
		return nil, nil, "", false
	}
	if err := session.Controller.OpenCard(index); err != nil {
		handleError(w, r, errors.NewNotFoundError("profile", index))
		return nil, nil, "", false
	}
	return session, renderer, query, true
}

func (s *Server) handlePage(w http.ResponseWriter, r *http.Request) {
	session, renderer, query, ok := s.openSession(w, r)
	if !ok {
		return
	}
	s.render(w, r, "page", renderer.view(session.Page.ID, query))
}

// handleCards renders only the gallery, for live search.
func (s *Server) handleCards(w http.ResponseWriter, r *http.Request) {
	session, renderer, query, ok := s.openSession(w, r)
	if !ok {
		return
	}
	s.render(w, r, "gallery", renderer.view(session.Page.ID, query))
}

func (s *Server) handleProfile(w http.ResponseWriter, r *http.Request) {
	session, renderer, query, ok := s.openProfile(w, r)
	if !ok {
		return
	}
	s.render(w, r, "page", renderer.view(session.Page.ID, query))
}

func (s *Server) handleProfileVCard(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContext(r.Context())

	session, _, _, ok := s.openProfile(w, r)
	if !ok {
		return
	}
	profile, _ := session.Controller.Current()

	w.Header().Set("Content-Type", vcard.ContentType)
	w.Header().Set("Content-Disposition", `attachment; filename="`+vcard.Filename(profile)+`"`)
	if err := vcard.Encode(w, profile); err != nil {
		log.Error("failed to write vcard: %v", err)
	}
}

type profilesResponse struct {
	PageID   string           `json:"page_id"`
	Query    string           `json:"query"`
	Total    int              `json:"total"`
	Profiles []models.Profile `json:"profiles"`
}

func (s *Server) handleAPIProfiles(w http.ResponseWriter, r *http.Request) {
	session, _, query, ok := s.openSession(w, r)
	if !ok {
		return
	}

	results := session.Controller.Results()
	writeJSON(w, r, http.StatusOK, profilesResponse{
		PageID:   session.Page.ID,
		Query:    query,
		Total:    len(results),
		Profiles: results,
	})
}

func writeJSON(w http.ResponseWriter, r *http.Request, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.FromContext(r.Context()).Error("failed to encode json response: %v", err)
	}
}
