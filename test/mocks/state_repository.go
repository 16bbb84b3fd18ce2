package mocks

import (
	"context"

	"github.com/restockd/stockwatch/internal/models"
	"github.com/stretchr/testify/mock"
)

// StateRepository is a mock implementation of repository.StateRepository.
type StateRepository struct {
	mock.Mock
}

func (m *StateRepository) GetStatus(ctx context.Context) (models.StockStatus, error) {
	args := m.Called(ctx)
	return args.Get(0).(models.StockStatus), args.Error(1)
}

func (m *StateRepository) SetStatus(ctx context.Context, status models.StockStatus) error {
	args := m.Called(ctx, status)
	return args.Error(0)
}

func (m *StateRepository) Close() error {
	args := m.Called()
	return args.Error(0)
}
