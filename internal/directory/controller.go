// Package directory holds the page controller behind the profile directory:
// the fetched profiles, the active search, and the detail overlay. Rendering
// goes through the Renderer interface so the same controller drives the web
// pages and the terminal browser.
package directory

import (
	"context"
	"errors"

	apperrors "github.com/vytor/userdirectory/internal/errors"
	"github.com/vytor/userdirectory/internal/logger"
	"github.com/vytor/userdirectory/internal/models"
	"github.com/vytor/userdirectory/internal/randomuser"
)

var errNoSource = errors.New("directory: no profile source configured")

// LoadResult is the outcome of Load: the fetched profiles, or why there are none.
type LoadResult struct {
	Profiles ResultSet
	Err      error
}

// OK reports whether the fetch succeeded.
func (r LoadResult) OK() bool {
	return r.Err == nil
}

// OverlayState is Closed (Open == false) or Open at Index.
type OverlayState struct {
	Open  bool
	Index int
}

// overlay pins the ResultSet that was active when it was opened, so a later
// search does not change what the overlay navigates over.
type overlay struct {
	results ResultSet
	index   int
}

// Controller owns one page's profiles, search query and overlay.
// It is not safe for concurrent use; callers serialize access the way a UI
// event loop does.
type Controller struct {
	source   randomuser.ClientInterface
	renderer Renderer
	request  randomuser.FetchRequest
	log      *logger.Logger

	profiles ResultSet
	results  ResultSet
	query    string
	overlay  *overlay
}

// Option configures a Controller.
type Option func(*Controller)

// WithFetchRequest sets the count and nationalities Load asks for.
func WithFetchRequest(req randomuser.FetchRequest) Option {
	return func(c *Controller) {
		c.request = req
	}
}

// WithLogger overrides the logger used outside of a request context.
func WithLogger(l *logger.Logger) Option {
	return func(c *Controller) {
		c.log = l
	}
}

// New builds a controller. source may be nil when profiles are supplied
// through Restore instead of Load.
func New(source randomuser.ClientInterface, renderer Renderer, opts ...Option) *Controller {
	c := &Controller{
		source:   source,
		renderer: renderer,
		request:  randomuser.FetchRequest{Count: 12},
		log:      logger.Default().WithPrefix("directory"),
		profiles: ResultSet{},
		results:  ResultSet{},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Load fetches the page's profiles and renders the list. On failure the
// reason is logged and returned; the controller keeps whatever it had.
func (c *Controller) Load(ctx context.Context) LoadResult {
	log := logger.FromContext(ctx).WithPrefix("directory")

	if c.source == nil {
		log.Error("cannot load profiles: %v", errNoSource)
		return LoadResult{Err: errNoSource}
	}

	profiles, err := c.source.FetchProfiles(ctx, c.request)
	if err != nil {
		log.Error("failed to load profiles: %v", err)
		return LoadResult{Err: err}
	}

	log.Debug("loaded %d profiles", len(profiles))
	c.Restore(profiles)
	return LoadResult{Profiles: c.profiles}
}

// Restore adopts profiles that were fetched earlier, reapplies the current
// query and renders the list. An open overlay is closed.
func (c *Controller) Restore(profiles []models.Profile) {
	c.profiles = Filter(profiles, "")
	c.Close()
	c.Search(c.query)
}

// Profiles returns every fetched profile in API order.
func (c *Controller) Profiles() ResultSet {
	return c.profiles
}

// Results returns the active ResultSet.
func (c *Controller) Results() ResultSet {
	return c.results
}

// Query returns the active search query.
func (c *Controller) Query() string {
	return c.query
}

// Search filters the fetched profiles by name and re-renders the list.
// An open overlay keeps navigating the ResultSet it was opened on.
func (c *Controller) Search(query string) ResultSet {
	c.query = query
	c.results = Filter(c.profiles, query)
	c.log.Debug("search %q matched %d of %d profiles", query, len(c.results), len(c.profiles))
	c.renderer.RenderList(Cards(c.results))
	return c.results
}

// OpenCard opens the overlay on the card at index i of the active
// ResultSet. Opening while already open re-targets the overlay in place.
func (c *Controller) OpenCard(i int) error {
	if i < 0 || i >= len(c.results) {
		return apperrors.NewValidationError("index", "no card at that position")
	}
	c.overlay = &overlay{results: c.results, index: i}
	c.renderOverlay()
	return nil
}

// Next moves the overlay one profile forward. It reports false, and does
// nothing, when the overlay is closed or already on the last profile.
func (c *Controller) Next() bool {
	if c.overlay == nil || c.overlay.index >= len(c.overlay.results)-1 {
		return false
	}
	c.overlay.index++
	c.renderOverlay()
	return true
}

// Prev moves the overlay one profile back. It reports false, and does
// nothing, when the overlay is closed or already on the first profile.
func (c *Controller) Prev() bool {
	if c.overlay == nil || c.overlay.index <= 0 {
		return false
	}
	c.overlay.index--
	c.renderOverlay()
	return true
}

// Close dismisses the overlay. It reports whether one was open.
func (c *Controller) Close() bool {
	if c.overlay == nil {
		return false
	}
	c.overlay = nil
	c.renderer.CloseOverlay()
	return true
}

// Overlay reports the overlay state.
func (c *Controller) Overlay() OverlayState {
	if c.overlay == nil {
		return OverlayState{}
	}
	return OverlayState{Open: true, Index: c.overlay.index}
}

// Current returns the profile shown in the overlay.
func (c *Controller) Current() (models.Profile, bool) {
	if c.overlay == nil {
		return models.Profile{}, false
	}
	return c.overlay.results[c.overlay.index], true
}

func (c *Controller) renderOverlay() {
	c.renderer.RenderOverlay(NewOverlayView(c.overlay.results, c.overlay.index))
}
