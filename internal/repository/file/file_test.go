package file_test

import (
	"context"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/restockd/stockwatch/internal/models"
	"github.com/restockd/stockwatch/internal/repository"
	"github.com/restockd/stockwatch/internal/repository/file"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRepo(t *testing.T) (*file.Repository, string) {
	t.Helper()

	path := filepath.Join(t.TempDir(), "status.txt")
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	return file.NewRepository(logger, path), path
}

func TestRepository_GetStatus(t *testing.T) {
	ctx := context.Background()

	t.Run("missing file returns not found", func(t *testing.T) {
		repo, _ := newTestRepo(t)

		_, err := repo.GetStatus(ctx)
		require.ErrorIs(t, err, repository.ErrStatusNotFound)
	})

	t.Run("surrounding whitespace is trimmed", func(t *testing.T) {
		repo, path := newTestRepo(t)
		require.NoError(t, os.WriteFile(path, []byte("  in-stock\n"), 0o644))

		status, err := repo.GetStatus(ctx)
		require.NoError(t, err)
		assert.Equal(t, models.StatusInStock, status)
	})

	t.Run("malformed value is treated as absent", func(t *testing.T) {
		repo, path := newTestRepo(t)
		require.NoError(t, os.WriteFile(path, []byte("maybe-in-stock"), 0o644))

		_, err := repo.GetStatus(ctx)
		require.ErrorIs(t, err, repository.ErrStatusNotFound)
	})

	t.Run("empty file is treated as absent", func(t *testing.T) {
		repo, path := newTestRepo(t)
		require.NoError(t, os.WriteFile(path, []byte(""), 0o644))

		_, err := repo.GetStatus(ctx)
		require.ErrorIs(t, err, repository.ErrStatusNotFound)
	})
}

func TestRepository_SetStatus(t *testing.T) {
	ctx := context.Background()

	t.Run("round trip", func(t *testing.T) {
		repo, _ := newTestRepo(t)

		require.NoError(t, repo.SetStatus(ctx, models.StatusOutOfStock))

		status, err := repo.GetStatus(ctx)
		require.NoError(t, err)
		assert.Equal(t, models.StatusOutOfStock, status)
	})

	t.Run("overwrite replaces previous value", func(t *testing.T) {
		repo, _ := newTestRepo(t)

		require.NoError(t, repo.SetStatus(ctx, models.StatusOutOfStock))
		require.NoError(t, repo.SetStatus(ctx, models.StatusInStock))

		status, err := repo.GetStatus(ctx)
		require.NoError(t, err)
		assert.Equal(t, models.StatusInStock, status)
	})

	t.Run("write to an unwritable path fails", func(t *testing.T) {
		logger := slog.New(slog.NewTextHandler(io.Discard, nil))
		repo := file.NewRepository(logger, filepath.Join(t.TempDir(), "missing", "status.txt"))

		err := repo.SetStatus(ctx, models.StatusInStock)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to write state file")
	})
}
