package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/restockd/stockwatch/internal/models"
	"github.com/restockd/stockwatch/internal/repository"
)

// GetStatus implements an interface method for retrieving the last known
// status from the database.
func (r *Repository) GetStatus(ctx context.Context) (models.StockStatus, error) {
	const opn = "repository.sqlite.GetStatus"

	var raw string
	err := r.db.QueryRowContext(ctx, "SELECT status FROM stock_state WHERE id = 1").Scan(&raw)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", repository.ErrStatusNotFound
		}
		return "", fmt.Errorf("%s: failed to get status: %w", opn, err)
	}

	status, err := models.ParseStatus(raw)
	if err != nil {
		r.log.Warn("Stored status is malformed, treating as absent", "op", opn, "error", err)
		return "", repository.ErrStatusNotFound
	}

	return status, nil
}

// SetStatus overwrites the single status row.
func (r *Repository) SetStatus(ctx context.Context, status models.StockStatus) error {
	const opn = "repository.sqlite.SetStatus"

	_, err := r.db.ExecContext(
		ctx,
		"INSERT OR REPLACE INTO stock_state (id, status) VALUES (1, ?)",
		string(status),
	)
	if err != nil {
		return fmt.Errorf("%s: failed to update status: %w", opn, err)
	}

	return nil
}
