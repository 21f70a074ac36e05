package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"
	"github.com/vytor/userdirectory/internal/models"
	"github.com/vytor/userdirectory/internal/randomuser"
)

// MockProfileClient is a mock implementation of randomuser.ClientInterface
type MockProfileClient struct {
	mock.Mock
}

func (m *MockProfileClient) FetchProfiles(ctx context.Context, req randomuser.FetchRequest) ([]models.Profile, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Profile), args.Error(1)
}
