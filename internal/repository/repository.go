package repository

import (
	"context"
	"errors"

	"github.com/restockd/stockwatch/internal/models"
)

// ErrStatusNotFound is returned when no status has been persisted yet.
var ErrStatusNotFound = errors.New("stock status not found")

// StateRepository persists the last known stock status between check cycles.
// Implementations store exactly one of the two stable labels; a failed probe
// never reaches SetStatus.
type StateRepository interface {
	// GetStatus returns the last persisted status, or ErrStatusNotFound if
	// nothing valid has been saved yet.
	GetStatus(ctx context.Context) (models.StockStatus, error)
	// SetStatus overwrites the persisted status.
	SetStatus(ctx context.Context, status models.StockStatus) error
	// Close releases any underlying resources.
	Close() error
}
