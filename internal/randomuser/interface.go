package randomuser

import (
	"context"

	"github.com/vytor/userdirectory/internal/models"
)

// ClientInterface is what the directory needs from the profile API.
type ClientInterface interface {
	FetchProfiles(ctx context.Context, req FetchRequest) ([]models.Profile, error)
}

var _ ClientInterface = (*Client)(nil)
