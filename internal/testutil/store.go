package testutil

import (
	"testing"
	"time"

	"hq-timers/internal/clock"
	"hq-timers/internal/repository/sqlite"
)

// NewTestStore creates an in-memory SQLite store with migrations applied.
// Calendar days are computed in UTC. The store is closed when the test completes.
func NewTestStore(t *testing.T, c clock.Clock) *sqlite.SQLiteRepository {
	t.Helper()

	store, err := sqlite.NewWithOptions(":memory:", sqlite.Options{
		Clock:    c,
		Location: time.UTC,
	})
	if err != nil {
		t.Fatalf("failed to open test store: %v", err)
	}

	t.Cleanup(func() {
		store.Close()
	})

	return store
}
