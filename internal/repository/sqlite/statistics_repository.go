package sqlite

import (
	"context"
	"fmt"
	"time"

	"hq-timers/internal/errors"
)

type counter int

const (
	counterStarted counter = iota
	counterFinished
	counterCancelled
)

func (c counter) String() string {
	switch c {
	case counterStarted:
		return "timers_started"
	case counterFinished:
		return "timers_finished"
	default:
		return "timers_cancelled"
	}
}

func (r *SQLiteRepository) findStatistic(ctx context.Context, dateString string) (*TimerStatistic, error) {
	query := `SELECT ` + statisticColumns + ` FROM timer_statistics WHERE date_string = ?`
	return QueryOptional(ctx, r.q, query, ScanTimerStatistic, "timer statistic", dateString)
}

func (r *SQLiteRepository) loadStatistic(ctx context.Context, id int64) (*TimerStatistic, error) {
	query := `SELECT ` + statisticColumns + ` FROM timer_statistics WHERE id = ?`
	return QuerySingle(ctx, r.q, query, ScanTimerStatistic, "timer statistic", fmt.Sprintf("%d", id), id)
}

// FindOrCreateStatistic returns the row for dateString, inserting a zeroed one when absent.
// Losing an insert race to another writer falls back to reading the winner's row.
func (r *SQLiteRepository) FindOrCreateStatistic(ctx context.Context, dateString string) (*TimerStatistic, error) {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	insert := `
	INSERT INTO timer_statistics (date_string, timers_started, timers_finished, timers_cancelled, created_at, updated_at)
	VALUES (?, 0, 0, 0, ?, ?)`

	for attempt := 1; attempt <= r.retries; attempt++ {
		stat, err := r.findStatistic(ctx, dateString)
		if err != nil {
			return nil, err
		}
		if stat != nil {
			return stat, nil
		}

		now := r.now()
		id, err := ExecuteWithLastInsertID(ctx, r.q, insert, dateString, FormatTimeForDB(now), FormatTimeForDB(now))
		if err != nil {
			if isUniqueViolation(err) {
				r.logger.Debug("statistic insert lost race, retrying", "date", dateString, "attempt", attempt)
				continue
			}
			return nil, err
		}

		return &TimerStatistic{
			ID:         id,
			DateString: dateString,
			CreatedAt:  now,
			UpdatedAt:  now,
		}, nil
	}

	return nil, errors.NewConflictError("timer statistic", dateString, r.retries)
}

// IncrementStarted adds one to timers_started
func (r *SQLiteRepository) IncrementStarted(ctx context.Context, stat *TimerStatistic) error {
	return r.increment(ctx, stat, counterStarted)
}

// IncrementFinished adds one to timers_finished
func (r *SQLiteRepository) IncrementFinished(ctx context.Context, stat *TimerStatistic) error {
	return r.increment(ctx, stat, counterFinished)
}

// IncrementCancelled adds one to timers_cancelled
func (r *SQLiteRepository) IncrementCancelled(ctx context.Context, stat *TimerStatistic) error {
	return r.increment(ctx, stat, counterCancelled)
}

// increment persists stat with one counter bumped. The write only applies if the
// row still holds the counters stat was read with; otherwise the row is reloaded
// and the increment retried.
func (r *SQLiteRepository) increment(ctx context.Context, stat *TimerStatistic, c counter) error {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	query := `
	UPDATE timer_statistics
	SET timers_started = ?, timers_finished = ?, timers_cancelled = ?, updated_at = ?
	WHERE id = ? AND timers_started = ? AND timers_finished = ? AND timers_cancelled = ?`

	for attempt := 1; attempt <= r.retries; attempt++ {
		next := *stat
		switch c {
		case counterStarted:
			next.TimersStarted++
		case counterFinished:
			next.TimersFinished++
		case counterCancelled:
			next.TimersCancelled++
		}
		next.UpdatedAt = r.now()

		affected, err := ExecuteCountAffected(ctx, r.q, query,
			next.TimersStarted, next.TimersFinished, next.TimersCancelled, FormatTimeForDB(next.UpdatedAt),
			stat.ID, stat.TimersStarted, stat.TimersFinished, stat.TimersCancelled,
		)
		if err != nil {
			return err
		}
		if affected == 1 {
			*stat = next
			return nil
		}

		r.logger.Debug("statistic changed underneath increment, reloading",
			"date", stat.DateString, "counter", c.String(), "attempt", attempt)
		current, err := r.loadStatistic(ctx, stat.ID)
		if err != nil {
			return err
		}
		*stat = *current
	}

	return errors.NewConflictError("timer statistic", stat.DateString, r.retries).WithContext("counter", c.String())
}

// LoadStatisticForDate returns the statistic of the calendar day of date, creating it if needed
func (r *SQLiteRepository) LoadStatisticForDate(ctx context.Context, date time.Time) (*TimerStatistic, error) {
	return r.FindOrCreateStatistic(ctx, FormatDateString(date, r.loc))
}

// LoadStatisticsHistory returns the rows dated from today-days-1 through yesterday, newest first.
// Today is never included.
func (r *SQLiteRepository) LoadStatisticsHistory(ctx context.Context, days int) ([]*TimerStatistic, error) {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	today := r.clock.Now().In(r.loc)
	from := FormatDateString(today.AddDate(0, 0, -days-1), r.loc)
	to := FormatDateString(today.AddDate(0, 0, -1), r.loc)

	query := `
	SELECT ` + statisticColumns + `
	FROM timer_statistics
	WHERE date_string BETWEEN ? AND ?
	ORDER BY date_string DESC`
	return QueryMultiple(ctx, r.q, query, ScanTimerStatistics, "timer statistics", from, to)
}
