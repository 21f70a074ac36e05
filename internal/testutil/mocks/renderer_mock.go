package mocks

import (
	"github.com/stretchr/testify/mock"
	"github.com/vytor/userdirectory/internal/directory"
)

// MockRenderer is a mock implementation of directory.Renderer
type MockRenderer struct {
	mock.Mock
}

func (m *MockRenderer) RenderList(cards []directory.Card) {
	m.Called(cards)
}

func (m *MockRenderer) RenderOverlay(view directory.OverlayView) {
	m.Called(view)
}

func (m *MockRenderer) CloseOverlay() {
	m.Called()
}
