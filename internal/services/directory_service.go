package services

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/vytor/userdirectory/internal/directory"
	"github.com/vytor/userdirectory/internal/errors"
	"github.com/vytor/userdirectory/internal/logger"
	"github.com/vytor/userdirectory/internal/models"
	"github.com/vytor/userdirectory/internal/randomuser"
	"github.com/vytor/userdirectory/internal/repository"
)

// PageSession is a page snapshot with a controller already holding its
// profiles and bound to the caller's renderer.
type PageSession struct {
	Page       *models.Page
	Controller *directory.Controller
}

// DirectoryService handles page lifecycle: one fetch per new page, then
// every later request of that page restores the same profiles.
type DirectoryService interface {
	// NewPage fetches profiles, renders them and stores the snapshot. On a
	// fetch failure the session is still returned, empty, together with an
	// UPSTREAM_ERROR.
	NewPage(ctx context.Context, renderer directory.Renderer) (*PageSession, error)
	// OpenPage restores a stored page and renders its list.
	OpenPage(ctx context.Context, id string, renderer directory.Renderer) (*PageSession, error)
	// PruneExpired deletes snapshots older than the page TTL.
	PruneExpired(ctx context.Context) (int64, error)
}

type directoryService struct {
	client  randomuser.ClientInterface
	pages   repository.PageRepository
	request randomuser.FetchRequest
	ttl     time.Duration
	now     func() time.Time
	newID   func() string
}

// DirectoryOption configures the directory service.
type DirectoryOption func(*directoryService)

// WithClock replaces time.Now, for tests.
func WithClock(now func() time.Time) DirectoryOption {
	return func(s *directoryService) {
		s.now = now
	}
}

// WithIDGenerator replaces the UUID page id generator, for tests.
func WithIDGenerator(newID func() string) DirectoryOption {
	return func(s *directoryService) {
		s.newID = newID
	}
}

// NewDirectoryService creates a new DirectoryService
func NewDirectoryService(client randomuser.ClientInterface, pages repository.PageRepository, req randomuser.FetchRequest, ttl time.Duration, opts ...DirectoryOption) DirectoryService {
	s := &directoryService{
		client:  client,
		pages:   pages,
		request: req,
		ttl:     ttl,
		now:     time.Now,
		newID:   uuid.NewString,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *directoryService) newController(source randomuser.ClientInterface, renderer directory.Renderer, log *logger.Logger) *directory.Controller {
	return directory.New(source, renderer,
		directory.WithFetchRequest(s.request),
		directory.WithLogger(log.WithPrefix("directory")),
	)
}

func (s *directoryService) NewPage(ctx context.Context, renderer directory.Renderer) (*PageSession, error) {
	log := logger.FromContext(ctx)
	log.Debug("creating page: count=%d nat=%v", s.request.Count, s.request.Nationalities)

	ctrl := s.newController(s.client, renderer, log)
	res := ctrl.Load(ctx)
	if !res.OK() {
		return &PageSession{Controller: ctrl}, errors.NewUpstreamError(res.Err)
	}

	page := &models.Page{
		ID:        s.newID(),
		CreatedAt: s.now().UTC(),
		Profiles:  res.Profiles,
	}
	if err := s.pages.Create(ctx, *page); err != nil {
		log.Error("failed to store page: %v", err)
		return nil, errors.NewInternalError(err)
	}

	log.WithField("page_id", page.ID).Info("page created with %d profiles", len(page.Profiles))
	return &PageSession{Page: page, Controller: ctrl}, nil
}

func (s *directoryService) OpenPage(ctx context.Context, id string, renderer directory.Renderer) (*PageSession, error) {
	log := logger.FromContext(ctx).WithField("page_id", id)
	log.Debug("opening page")

	if _, err := uuid.Parse(id); err != nil {
		return nil, errors.NewNotFoundError("page", id)
	}

	page, err := s.pages.Get(ctx, id)
	if err != nil {
		log.Error("failed to load page: %v", err)
		return nil, errors.NewInternalError(err)
	}
	if page == nil || s.expired(page) {
		return nil, errors.NewNotFoundError("page", id)
	}

	ctrl := s.newController(nil, renderer, log)
	ctrl.Restore(page.Profiles)
	return &PageSession{Page: page, Controller: ctrl}, nil
}

func (s *directoryService) PruneExpired(ctx context.Context) (int64, error) {
	cutoff := s.now().Add(-s.ttl)
	n, err := s.pages.DeleteCreatedBefore(ctx, cutoff)
	if err != nil {
		return 0, errors.NewInternalError(err)
	}
	return n, nil
}

func (s *directoryService) expired(page *models.Page) bool {
	return s.now().Sub(page.CreatedAt) > s.ttl
}
