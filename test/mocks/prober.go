// Package mocks holds testify mocks for the interfaces crossed by the checker.
package mocks

import (
	"context"

	"github.com/restockd/stockwatch/internal/models"
	"github.com/stretchr/testify/mock"
)

// Prober is a mock implementation of prober.Interface.
type Prober struct {
	mock.Mock
}

func (m *Prober) Probe(ctx context.Context) (models.StockStatus, error) {
	args := m.Called(ctx)
	return args.Get(0).(models.StockStatus), args.Error(1)
}
