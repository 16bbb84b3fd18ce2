package sqlite_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"path/filepath"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/restockd/stockwatch/internal/models"
	"github.com/restockd/stockwatch/internal/repository"
	"github.com/restockd/stockwatch/internal/repository/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// =============================================================================
// Integration Tests (using a real temporary database)
// =============================================================================

// newTestDB is a helper function that creates a temporary database for a test.
func newTestDB(t *testing.T) *sqlite.Repository {
	t.Helper()

	tempDir := t.TempDir()
	dbPath := filepath.Join(tempDir, "test.db")
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	repo, err := sqlite.NewRepository(context.Background(), logger, dbPath)
	require.NoError(t, err, "failed to create test database")

	t.Cleanup(func() {
		err = repo.Close()
		if err != nil {
			t.Logf("failed to close test database: %v", err)
		}
	})

	return repo
}

// TestRepository_Integration_SetAndGetStatus simulates the full lifecycle of
// the repository against a real SQLite database.
func TestRepository_Integration_SetAndGetStatus(t *testing.T) {
	repo := newTestDB(t)
	ctx := context.Background()

	t.Run("get_status_from_empty_db", func(t *testing.T) {
		_, err := repo.GetStatus(ctx)
		require.ErrorIs(t, err, repository.ErrStatusNotFound)
	})

	t.Run("set_status_first_time", func(t *testing.T) {
		require.NoError(t, repo.SetStatus(ctx, models.StatusOutOfStock))

		status, err := repo.GetStatus(ctx)
		require.NoError(t, err)
		assert.Equal(t, models.StatusOutOfStock, status)
	})

	t.Run("set_status_overwrites", func(t *testing.T) {
		require.NoError(t, repo.SetStatus(ctx, models.StatusInStock))

		status, err := repo.GetStatus(ctx)
		require.NoError(t, err)
		assert.Equal(t, models.StatusInStock, status)
	})
}

// =============================================================================
// Unit Tests (using sqlmock for failure scenarios)
// =============================================================================

// newMockedRepo creates a repository with a mocked database connection for testing failures.
func newMockedRepo(t *testing.T) (*sqlite.Repository, sqlmock.Sqlmock) {
	t.Helper()

	mockDB, mock, err := sqlmock.New()
	require.NoError(t, err)

	repo := sqlite.NewForTest(mockDB)

	t.Cleanup(func() { mockDB.Close() })

	return repo, mock
}

func TestRepository_GetStatus_Failures(t *testing.T) {
	ctx := context.Background()

	t.Run("error_on_status_query", func(t *testing.T) {
		repo, mock := newMockedRepo(t)
		expectedErr := errors.New("db connection lost")
		mock.ExpectQuery("SELECT status FROM stock_state").WillReturnError(expectedErr)

		_, err := repo.GetStatus(ctx)

		require.Error(t, err)
		assert.Contains(t, err.Error(), expectedErr.Error())
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("malformed_stored_status", func(t *testing.T) {
		repo, mock := newMockedRepo(t)
		rows := sqlmock.NewRows([]string{"status"}).AddRow("half-in-stock")
		mock.ExpectQuery("SELECT status FROM stock_state").WillReturnRows(rows)

		_, err := repo.GetStatus(ctx)

		require.ErrorIs(t, err, repository.ErrStatusNotFound)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestRepository_SetStatus_Failures(t *testing.T) {
	ctx := context.Background()

	t.Run("error_on_upsert", func(t *testing.T) {
		repo, mock := newMockedRepo(t)
		mock.ExpectExec("INSERT OR REPLACE INTO stock_state").
			WithArgs("in-stock").
			WillReturnError(assert.AnError)

		err := repo.SetStatus(ctx, models.StatusInStock)

		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to update status")
		require.ErrorIs(t, err, assert.AnError)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}
