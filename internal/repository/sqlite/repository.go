package sqlite

import (
	"context"
	"database/sql"
	stderrors "errors"
	"fmt"
	"os"
	"time"

	"hq-timers/internal/clock"
	"hq-timers/internal/errors"
	"hq-timers/internal/logging"
	"hq-timers/internal/repository/sqlite/migrations"

	_ "modernc.org/sqlite"
)

// HistoryLimit is the number of completed timers returned by the history queries
const HistoryLimit = 5

// DefaultConflictRetries bounds the retry-on-conflict loops of the statistics repository
const DefaultConflictRetries = 5

// TimerRepository owns the timers table
type TimerRepository interface {
	CreateTimer(ctx context.Context, activity, area *string, startTime time.Time, isPomodoro bool) (*Timer, error)
	FindTimer(ctx context.Context, id int64) (*Timer, error)
	GetActiveTimer(ctx context.Context) (*Timer, error)
	GetTimerHistory(ctx context.Context) ([]*Timer, error)
	GetTimerHistoryByDate(ctx context.Context) (map[string][]*Timer, error)
	ListTimersBetween(ctx context.Context, from, to time.Time) ([]*Timer, error)
	SetTimerActivity(ctx context.Context, timer *Timer, activity string) error
	EndTimer(ctx context.Context, timer *Timer) error
}

// StatisticsRepository owns the timer_statistics table
type StatisticsRepository interface {
	FindOrCreateStatistic(ctx context.Context, dateString string) (*TimerStatistic, error)
	IncrementStarted(ctx context.Context, stat *TimerStatistic) error
	IncrementFinished(ctx context.Context, stat *TimerStatistic) error
	IncrementCancelled(ctx context.Context, stat *TimerStatistic) error
	LoadStatisticForDate(ctx context.Context, date time.Time) (*TimerStatistic, error)
	LoadStatisticsHistory(ctx context.Context, days int) ([]*TimerStatistic, error)
}

// Store is the transactional gateway over both repositories
type Store interface {
	TimerRepository
	StatisticsRepository

	// WithTx runs fn against a store bound to one transaction.
	// The transaction commits when fn returns nil and rolls back otherwise.
	WithTx(ctx context.Context, fn func(Store) error) error
	Clock() clock.Clock
	Location() *time.Location
	Close() error
}

// Options configures a SQLiteRepository
type Options struct {
	Clock           clock.Clock
	Location        *time.Location
	ConflictRetries int
	BusyTimeout     time.Duration
	// QueryTimeout bounds each store call and each transaction. Zero means no bound.
	QueryTimeout time.Duration
	Logger       logging.Logger
}

// SQLiteRepository implements the Store interface
type SQLiteRepository struct {
	db      *sql.DB
	q       Querier
	tx      *sql.Tx
	clock   clock.Clock
	loc     *time.Location
	retries int
	timeout time.Duration
	// deadline is the deadline of the transaction the repository is bound to
	deadline time.Time
	logger   logging.Logger
}

// New creates a new SQLite repository instance with default options
func New(dbPath string) (*SQLiteRepository, error) {
	return NewWithOptions(dbPath, Options{})
}

// NewWithOptions opens the database at dbPath, applies pragmas and runs migrations
func NewWithOptions(dbPath string, opts Options) (*SQLiteRepository, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, errors.NewDatabaseError("open database", err)
	}

	// One connection: writers queue behind busy_timeout and :memory: stays a single database.
	db.SetMaxOpenConns(1)

	busyTimeout := opts.BusyTimeout
	if busyTimeout <= 0 {
		busyTimeout = 5 * time.Second
	}
	pragmas := []string{
		"PRAGMA foreign_keys = ON",
		fmt.Sprintf("PRAGMA busy_timeout = %d", busyTimeout.Milliseconds()),
	}
	for _, p := range pragmas {
		if _, err := db.Exec(p); err != nil {
			db.Close()
			return nil, errors.NewDatabaseError("exec pragma", err).WithContext("pragma", p)
		}
	}

	if err := migrations.MigrateUp(db); err != nil {
		db.Close()
		return nil, errors.NewDatabaseError("run migrations", err)
	}

	return newRepository(db, opts), nil
}

// CheckSchema reports whether the database at dbPath is at the latest schema
// version. It never creates or migrates the database.
func CheckSchema(dbPath string) error {
	if dbPath != ":memory:" {
		if _, err := os.Stat(dbPath); err != nil {
			return fmt.Errorf("no database at %s", dbPath)
		}
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return errors.NewDatabaseError("open database", err)
	}
	defer db.Close()

	return migrations.CheckDBMigrationStatus(db)
}

func newRepository(db *sql.DB, opts Options) *SQLiteRepository {
	repo := &SQLiteRepository{
		db:      db,
		q:       db,
		clock:   opts.Clock,
		loc:     opts.Location,
		retries: opts.ConflictRetries,
		timeout: opts.QueryTimeout,
		logger:  opts.Logger,
	}
	if repo.clock == nil {
		repo.clock = clock.RealClock{}
	}
	if repo.loc == nil {
		repo.loc = time.UTC
	}
	if repo.retries <= 0 {
		repo.retries = DefaultConflictRetries
	}
	if repo.logger == nil {
		repo.logger = logging.NewNopLogger()
	}
	return repo
}

// Close closes the database connection
func (r *SQLiteRepository) Close() error {
	return r.db.Close()
}

// Clock returns the clock used for timestamps and elapsed durations
func (r *SQLiteRepository) Clock() clock.Clock {
	return r.clock
}

// Location returns the location that defines calendar days
func (r *SQLiteRepository) Location() *time.Location {
	return r.loc
}

// WithTx implements Store. Nested calls join the outer transaction.
func (r *SQLiteRepository) WithTx(ctx context.Context, fn func(Store) error) error {
	if r.tx != nil {
		return fn(r)
	}

	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return HandleDatabaseError("begin transaction", err)
	}

	bound := *r
	bound.q = tx
	bound.tx = tx
	if deadline, ok := ctx.Deadline(); ok {
		bound.deadline = deadline
	}

	if err := fn(&bound); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil && !stderrors.Is(rbErr, sql.ErrTxDone) {
			r.logger.Error("rollback failed", "error", rbErr)
		}
		return err
	}

	if err := tx.Commit(); err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			err = ctxErr
		}
		return HandleDatabaseError("commit transaction", err)
	}
	return nil
}

// withTimeout bounds ctx by the query timeout, or by the deadline of the
// enclosing transaction when the repository is bound to one.
func (r *SQLiteRepository) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if r.tx != nil {
		if r.deadline.IsZero() {
			return ctx, func() {}
		}
		return context.WithDeadline(ctx, r.deadline)
	}
	if r.timeout <= 0 {
		return ctx, func() {}
	}
	return context.WithTimeout(ctx, r.timeout)
}

// now returns the current time truncated to the precision stored in the database
func (r *SQLiteRepository) now() time.Time {
	return r.clock.Now().Truncate(time.Second)
}
