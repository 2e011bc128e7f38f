package sqlite

import (
	"context"
	"fmt"
	"time"
)

func (r *SQLiteRepository) scanTimer(s Scanner) (*Timer, error) {
	return ScanTimer(s, r.clock.Now())
}

func (r *SQLiteRepository) scanTimers(rows Rows) ([]*Timer, error) {
	return ScanTimers(rows, r.clock.Now())
}

// CreateTimer inserts an active timer and returns it with its assigned id
func (r *SQLiteRepository) CreateTimer(ctx context.Context, activity, area *string, startTime time.Time, isPomodoro bool) (*Timer, error) {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	now := r.now()
	timer := &Timer{
		Activity:   activity,
		Area:       area,
		StartTime:  startTime.Truncate(time.Second),
		IsPomodoro: isPomodoro,
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	query := `
	INSERT INTO timers (activity, area, start_time, end_time, duration, is_pomodoro, created_at, updated_at)
	VALUES (?, ?, ?, NULL, 0, ?, ?, ?)`

	id, err := ExecuteWithLastInsertID(ctx, r.q, query,
		StringPtrForDB(activity),
		StringPtrForDB(area),
		FormatTimeForDB(timer.StartTime),
		isPomodoro,
		FormatTimeForDB(timer.CreatedAt),
		FormatTimeForDB(timer.UpdatedAt),
	)
	if err != nil {
		return nil, err
	}

	timer.ID = id
	timer.Duration = ElapsedSeconds(timer.StartTime, r.clock.Now())
	return timer, nil
}

// FindTimer looks a timer up by id. A miss returns (nil, nil).
func (r *SQLiteRepository) FindTimer(ctx context.Context, id int64) (*Timer, error) {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	query := `SELECT ` + timerColumns + ` FROM timers WHERE id = ?`
	return QueryOptional(ctx, r.q, query, r.scanTimer, "timer", id)
}

// GetActiveTimer returns the timer without an end time, or (nil, nil) when idle.
// Should several exist, the most recently started one wins.
func (r *SQLiteRepository) GetActiveTimer(ctx context.Context) (*Timer, error) {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	query := `
	SELECT ` + timerColumns + `
	FROM timers
	WHERE end_time IS NULL
	ORDER BY start_time DESC, id DESC
	LIMIT 1`
	return QueryOptional(ctx, r.q, query, r.scanTimer, "active timer")
}

// GetTimerHistory returns the most recently completed timers, newest first
func (r *SQLiteRepository) GetTimerHistory(ctx context.Context) ([]*Timer, error) {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	query := `
	SELECT ` + timerColumns + `
	FROM timers
	WHERE end_time IS NOT NULL
	ORDER BY start_time DESC, id DESC
	LIMIT ?`
	return QueryMultiple(ctx, r.q, query, r.scanTimers, "timer history", HistoryLimit)
}

// GetTimerHistoryByDate groups GetTimerHistory by the calendar day of each start time.
// Each day keeps the newest-first order.
func (r *SQLiteRepository) GetTimerHistoryByDate(ctx context.Context) (map[string][]*Timer, error) {
	timers, err := r.GetTimerHistory(ctx)
	if err != nil {
		return nil, err
	}

	byDate := make(map[string][]*Timer)
	for _, timer := range timers {
		date := FormatDateString(timer.StartTime, r.loc)
		byDate[date] = append(byDate[date], timer)
	}
	return byDate, nil
}

// ListTimersBetween returns timers started in [from, to), oldest first
func (r *SQLiteRepository) ListTimersBetween(ctx context.Context, from, to time.Time) ([]*Timer, error) {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	query := `
	SELECT ` + timerColumns + `
	FROM timers
	WHERE start_time >= ? AND start_time < ?
	ORDER BY start_time ASC, id ASC`
	return QueryMultiple(ctx, r.q, query, r.scanTimers, "timers", FormatTimeForDB(from), FormatTimeForDB(to))
}

// SetTimerActivity overwrites the activity label of timer
func (r *SQLiteRepository) SetTimerActivity(ctx context.Context, timer *Timer, activity string) error {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	now := r.now()
	query := `UPDATE timers SET activity = ?, updated_at = ? WHERE id = ?`

	err := ExecuteWithRowsAffected(ctx, r.q, query, "timer", fmt.Sprintf("%d", timer.ID),
		activity, FormatTimeForDB(now), timer.ID)
	if err != nil {
		return err
	}

	timer.Activity = &activity
	timer.UpdatedAt = now
	return nil
}

// EndTimer stamps the end time and fixes the duration of timer.
// Calling it twice overwrites the first end time.
func (r *SQLiteRepository) EndTimer(ctx context.Context, timer *Timer) error {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	end := r.now()
	duration := ElapsedSeconds(timer.StartTime, end)
	query := `UPDATE timers SET end_time = ?, duration = ?, updated_at = ? WHERE id = ?`

	err := ExecuteWithRowsAffected(ctx, r.q, query, "timer", fmt.Sprintf("%d", timer.ID),
		FormatTimeForDB(end), duration, FormatTimeForDB(end), timer.ID)
	if err != nil {
		return err
	}

	timer.EndTime = &end
	timer.Duration = duration
	timer.UpdatedAt = end
	return nil
}
