package migrations

import (
	"database/sql"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	_ "modernc.org/sqlite"
)

func TestMigrateUp_FreshDatabase(t *testing.T) {
	db := openTestDB(t)

	require.NoError(t, MigrateUp(db))

	tables := []string{"migrations", "timers", "timer_statistics", "schema_migrations"}
	for _, table := range tables {
		var name string
		err := db.QueryRow("SELECT name FROM sqlite_master WHERE type='table' AND name=?", table).Scan(&name)
		assert.NoError(t, err, "table %s was not created", table)
	}
}

func TestCheckDBMigrationStatus_FreshDatabase(t *testing.T) {
	db := openTestDB(t)

	err := CheckDBMigrationStatus(db)
	require.Error(t, err)
	assert.Equal(t, "database has no schema version (needs migration)", err.Error())
}

func TestCheckDBMigrationStatus_AfterMigration(t *testing.T) {
	db := openTestDB(t)

	require.NoError(t, MigrateUp(db))
	assert.NoError(t, CheckDBMigrationStatus(db))
}

func TestMigrateUp_Idempotent(t *testing.T) {
	db := openTestDB(t)

	require.NoError(t, MigrateUp(db))
	require.NoError(t, MigrateUp(db), "second MigrateUp should be a no-op")
	assert.NoError(t, CheckDBMigrationStatus(db))
}

func TestLatestVersion(t *testing.T) {
	version, err := LatestVersion()
	require.NoError(t, err)
	assert.Equal(t, uint(2), version)
}

func TestSchema_StatisticDateUnique(t *testing.T) {
	db := openTestDB(t)
	require.NoError(t, MigrateUp(db))

	insert := `INSERT INTO timer_statistics (date_string, timers_started, timers_finished, timers_cancelled, created_at, updated_at)
		VALUES ('2024-01-01', 0, 0, 0, '2024-01-01T00:00:00Z', '2024-01-01T00:00:00Z')`
	_, err := db.Exec(insert)
	require.NoError(t, err)

	_, err = db.Exec(insert)
	assert.Error(t, err, "expected unique constraint violation for duplicate date")
}

func TestMigrateUp_FoldsDuplicateDays(t *testing.T) {
	db := openTestDB(t)

	// A database written before versioning may already hold duplicate days.
	_, err := db.Exec(`
		CREATE TABLE timer_statistics (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			date_string TEXT NOT NULL,
			timers_started INTEGER NOT NULL,
			timers_finished INTEGER NOT NULL,
			timers_cancelled INTEGER NOT NULL,
			created_at DATETIME NOT NULL,
			updated_at DATETIME NOT NULL
		)`)
	require.NoError(t, err)
	_, err = db.Exec(`
		INSERT INTO timer_statistics (date_string, timers_started, timers_finished, timers_cancelled, created_at, updated_at) VALUES
			('2024-01-01', 1, 0, 0, '2024-01-01T09:00:00Z', '2024-01-01T09:00:00Z'),
			('2024-01-01', 2, 1, 1, '2024-01-01T09:00:00Z', '2024-01-01T09:00:00Z'),
			('2024-01-02', 1, 1, 0, '2024-01-02T09:00:00Z', '2024-01-02T09:00:00Z')`)
	require.NoError(t, err)

	require.NoError(t, MigrateUp(db))

	var count int
	require.NoError(t, db.QueryRow(`SELECT COUNT(*) FROM timer_statistics`).Scan(&count))
	assert.Equal(t, 2, count)

	var id, started, finished, cancelled int64
	err = db.QueryRow(`SELECT id, timers_started, timers_finished, timers_cancelled FROM timer_statistics WHERE date_string = '2024-01-01'`).
		Scan(&id, &started, &finished, &cancelled)
	require.NoError(t, err)
	assert.Equal(t, int64(1), id)
	assert.Equal(t, int64(3), started)
	assert.Equal(t, int64(1), finished)
	assert.Equal(t, int64(1), cancelled)
}

// openTestDB opens an in-memory SQLite database for testing.
func openTestDB(t *testing.T) *sql.DB {
	t.Helper()

	db, err := sql.Open("sqlite", ":memory:")
	require.NoError(t, err)
	// every pooled connection would otherwise get its own in-memory database
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { db.Close() })

	return db
}
