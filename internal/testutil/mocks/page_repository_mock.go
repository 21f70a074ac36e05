package mocks

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"
	"github.com/vytor/userdirectory/internal/models"
)

// MockPageRepository is a mock implementation of repository.PageRepository
type MockPageRepository struct {
	mock.Mock
}

func (m *MockPageRepository) Create(ctx context.Context, page models.Page) error {
	args := m.Called(ctx, page)
	return args.Error(0)
}

func (m *MockPageRepository) Get(ctx context.Context, id string) (*models.Page, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Page), args.Error(1)
}

func (m *MockPageRepository) DeleteCreatedBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	args := m.Called(ctx, cutoff)
	return args.Get(0).(int64), args.Error(1)
}
