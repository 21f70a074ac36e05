package api

import (
	"bytes"
	"net/http"

	"github.com/vytor/userdirectory/internal/directory"
	"github.com/vytor/userdirectory/internal/logger"
)

// htmlRenderer collects what the controller asks to show during one
// request; the page template then renders that state.
type htmlRenderer struct {
	cards   []directory.Card
	overlay *directory.OverlayView
}

var _ directory.Renderer = (*htmlRenderer)(nil)

func (h *htmlRenderer) RenderList(cards []directory.Card) {
	h.cards = cards
}

func (h *htmlRenderer) RenderOverlay(view directory.OverlayView) {
	h.overlay = &view
}

func (h *htmlRenderer) CloseOverlay() {
	h.overlay = nil
}

// pageView is the data handed to the page, gallery and overlay templates.
type pageView struct {
	PageID  string
	Query   string
	Cards   []directory.Card
	Overlay *directory.OverlayView
}

func (h *htmlRenderer) view(pageID, query string) pageView {
	return pageView{
		PageID:  pageID,
		Query:   query,
		Cards:   h.cards,
		Overlay: h.overlay,
	}
}

// render executes a template into a buffer first so a template error never
// leaves a half-written page behind.
func (s *Server) render(w http.ResponseWriter, r *http.Request, name string, data pageView) {
	log := logger.FromContext(r.Context())

	var buf bytes.Buffer
	if err := s.Templates.ExecuteTemplate(&buf, name, data); err != nil {
		log.Error("failed to render template %s: %v", name, err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = buf.WriteTo(w)
}
