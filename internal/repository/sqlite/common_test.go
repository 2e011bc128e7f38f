package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"testing"

	apperrors "hq-timers/internal/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// MockResult implements sql.Result for testing
type MockResult struct {
	lastInsertID int64
	rowsAffected int64
	insertErr    error
	rowsErr      error
}

func (mr *MockResult) LastInsertId() (int64, error) {
	return mr.lastInsertID, mr.insertErr
}

func (mr *MockResult) RowsAffected() (int64, error) {
	return mr.rowsAffected, mr.rowsErr
}

func newTestRepository(t *testing.T) *SQLiteRepository {
	t.Helper()

	repo, err := New(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { repo.Close() })
	return repo
}

func TestHandleDatabaseError(t *testing.T) {
	t.Run("driver failure", func(t *testing.T) {
		originalErr := errors.New("database connection failed")
		result := HandleDatabaseError("test operation", originalErr)

		assert.True(t, apperrors.IsErrorType(result, apperrors.ErrorTypeDatabase))
		assert.Contains(t, result.Error(), "test operation")
		assert.ErrorIs(t, result, originalErr)
	})

	t.Run("expired deadline", func(t *testing.T) {
		result := HandleDatabaseError("begin transaction", fmt.Errorf("driver: %w", context.DeadlineExceeded))

		assert.True(t, apperrors.IsErrorType(result, apperrors.ErrorTypeTimeout))
		assert.Equal(t, "TIMEOUT", apperrors.GetErrorCode(result))
		assert.ErrorIs(t, result, context.DeadlineExceeded)
	})

	t.Run("cancelled context stays a database error", func(t *testing.T) {
		result := HandleDatabaseError("query", context.Canceled)
		assert.True(t, apperrors.IsErrorType(result, apperrors.ErrorTypeDatabase))
	})
}

func TestValidateRowsAffected(t *testing.T) {
	tests := []struct {
		name         string
		result       sql.Result
		entityType   string
		id           string
		expectError  bool
		expectNotFound bool
	}{
		{
			name: "Successful update",
			result: &MockResult{
				rowsAffected: 1,
				rowsErr:      nil,
			},
			entityType:   "test entity",
			id:           "123",
			expectError:  false,
			expectNotFound: false,
		},
		{
			name: "No rows affected",
			result: &MockResult{
				rowsAffected: 0,
				rowsErr:      nil,
			},
			entityType:   "test entity",
			id:           "123",
			expectError:  true,
			expectNotFound: true,
		},
		{
			name: "Error getting rows affected",
			result: &MockResult{
				rowsAffected: 0,
				rowsErr:      errors.New("database error"),
			},
			entityType:   "test entity",
			id:           "123",
			expectError:  true,
			expectNotFound: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := ValidateRowsAffected(tt.result, tt.entityType, tt.id)
			
			if tt.expectError {
				assert.Error(t, result)
				if tt.expectNotFound {
					assert.Contains(t, result.Error(), "not found")
				} else {
					assert.Contains(t, result.Error(), "database error")
				}
			} else {
				assert.NoError(t, result)
			}
		})
	}
}

func TestIsUniqueViolation(t *testing.T) {
	repo := newTestRepository(t)
	ctx := context.Background()

	_, err := repo.db.ExecContext(ctx, `INSERT INTO timer_statistics (date_string, timers_started, timers_finished, timers_cancelled, created_at, updated_at) VALUES ('2024-01-01', 0, 0, 0, '2024-01-01T00:00:00Z', '2024-01-01T00:00:00Z')`)
	require.NoError(t, err)

	_, err = ExecuteWithLastInsertID(ctx, repo.db, `INSERT INTO timer_statistics (date_string, timers_started, timers_finished, timers_cancelled, created_at, updated_at) VALUES ('2024-01-01', 0, 0, 0, '2024-01-01T00:00:00Z', '2024-01-01T00:00:00Z')`)
	require.Error(t, err)
	assert.True(t, isUniqueViolation(err))

	assert.False(t, isUniqueViolation(errors.New("some other error")))
	assert.False(t, isUniqueViolation(nil))
}

func TestQueryOptional_NoRows(t *testing.T) {
	repo := newTestRepository(t)

	timer, err := QueryOptional(context.Background(), repo.db, `SELECT `+timerColumns+` FROM timers WHERE id = ?`, repo.scanTimer, "timer", 999)
	assert.NoError(t, err)
	assert.Nil(t, timer)
}

func TestQuerySingle_NoRowsIsNotFound(t *testing.T) {
	repo := newTestRepository(t)

	_, err := QuerySingle(context.Background(), repo.db, `SELECT `+timerColumns+` FROM timers WHERE id = ?`, repo.scanTimer, "timer", "999", 999)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "timer not found: 999")
}
