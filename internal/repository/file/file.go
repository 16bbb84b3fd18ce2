package file

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/restockd/stockwatch/internal/models"
	"github.com/restockd/stockwatch/internal/repository"
)

// Repository stores the last known status as a single text file. Suitable for
// a single-instance deployment; no locking, so overlapping invocations can
// race on read-then-write.
type Repository struct {
	log  *slog.Logger
	path string
}

// NewRepository creates a file-backed state repository at the given path.
// The file is created on the first save.
func NewRepository(log *slog.Logger, path string) *Repository {
	return &Repository{log: log, path: path}
}

// GetStatus reads the persisted status. A missing file or a value that is not
// one of the stable labels yields ErrStatusNotFound.
func (r *Repository) GetStatus(_ context.Context) (models.StockStatus, error) {
	const opn = "repository.file.GetStatus"

	raw, err := os.ReadFile(r.path)
	if err != nil {
		if os.IsNotExist(err) {
			return "", repository.ErrStatusNotFound
		}
		return "", fmt.Errorf("%s: failed to read state file: %w", opn, err)
	}

	status, err := models.ParseStatus(string(raw))
	if err != nil {
		r.log.Warn("State file holds a malformed status, treating as absent",
			"op", opn, "path", r.path, "error", err)
		return "", repository.ErrStatusNotFound
	}

	return status, nil
}

// SetStatus overwrites the state file with the given status.
func (r *Repository) SetStatus(_ context.Context, status models.StockStatus) error {
	const opn = "repository.file.SetStatus"

	if err := os.WriteFile(r.path, []byte(status), 0o644); err != nil {
		return fmt.Errorf("%s: failed to write state file: %w", opn, err)
	}

	return nil
}

// Close is a no-op for the file backend.
func (r *Repository) Close() error {
	return nil
}
