package repository

import (
	"context"
	"time"

	"github.com/vytor/userdirectory/internal/models"
)

// PageRepository stores page snapshots: the profiles fetched for one page
// load, kept so later requests from that page see the same ResultSet.
type PageRepository interface {
	// Create stores the page and its profiles in order.
	Create(ctx context.Context, page models.Page) error
	// Get returns the page with its profiles, or nil when it does not exist.
	Get(ctx context.Context, id string) (*models.Page, error)
	// DeleteCreatedBefore removes pages created before cutoff and reports how many.
	DeleteCreatedBefore(ctx context.Context, cutoff time.Time) (int64, error)
}
