package mocks

import (
	"context"

	"github.com/restockd/stockwatch/internal/models"
	"github.com/stretchr/testify/mock"
)

// Notifier is a mock implementation of notifier.Notifier.
type Notifier struct {
	mock.Mock
}

func (m *Notifier) Notify(ctx context.Context, product models.Product) error {
	args := m.Called(ctx, product)
	return args.Error(0)
}
