package sqlite

import (
	"database/sql"
	"fmt"
	"time"
)

// Scanner interface defines the common scanning behavior for both sql.Row and sql.Rows
type Scanner interface {
	Scan(dest ...interface{}) error
}

// Rows interface defines the common behavior for sql.Rows
type Rows interface {
	Next() bool
	Scan(dest ...interface{}) error
	Err() error
}

// Column lists are spelled out so decoding never depends on table column order.
const (
	timerColumns     = `id, activity, area, start_time, end_time, duration, is_pomodoro, created_at, updated_at`
	statisticColumns = `id, date_string, timers_started, timers_finished, timers_cancelled, created_at, updated_at`
)

// ScanTimer scans a single timer selected with timerColumns.
// Active timers get their duration recomputed as now - start_time.
func ScanTimer(scanner Scanner, now time.Time) (*Timer, error) {
	timer := &Timer{}
	var (
		activity, area       sql.NullString
		startTime, endTime   sql.NullString
		createdAt, updatedAt string
		isPomodoro           sql.NullBool
	)

	err := scanner.Scan(
		&timer.ID,
		&activity,
		&area,
		&startTime,
		&endTime,
		&timer.Duration,
		&isPomodoro,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	timer.Activity = stringPtrFromDB(activity)
	timer.Area = stringPtrFromDB(area)
	timer.IsPomodoro = isPomodoro.Valid && isPomodoro.Bool

	if timer.StartTime, err = ParseTimeFromDB(startTime.String); err != nil {
		return nil, fmt.Errorf("timer %d start_time: %w", timer.ID, err)
	}
	if timer.EndTime, err = ParseNullTimeFromDB(endTime); err != nil {
		return nil, fmt.Errorf("timer %d end_time: %w", timer.ID, err)
	}
	if timer.CreatedAt, err = ParseTimeFromDB(createdAt); err != nil {
		return nil, fmt.Errorf("timer %d created_at: %w", timer.ID, err)
	}
	if timer.UpdatedAt, err = ParseTimeFromDB(updatedAt); err != nil {
		return nil, fmt.Errorf("timer %d updated_at: %w", timer.ID, err)
	}

	if timer.EndTime == nil {
		timer.Duration = ElapsedSeconds(timer.StartTime, now)
	}

	return timer, nil
}

// ScanTimers scans multiple timers from database rows
func ScanTimers(rows Rows, now time.Time) ([]*Timer, error) {
	var timers []*Timer
	for rows.Next() {
		timer, err := ScanTimer(rows, now)
		if err != nil {
			return nil, err
		}
		timers = append(timers, timer)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return timers, nil
}

// ScanTimerStatistic scans a single statistic selected with statisticColumns
func ScanTimerStatistic(scanner Scanner) (*TimerStatistic, error) {
	stat := &TimerStatistic{}
	var createdAt, updatedAt string

	err := scanner.Scan(
		&stat.ID,
		&stat.DateString,
		&stat.TimersStarted,
		&stat.TimersFinished,
		&stat.TimersCancelled,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	if stat.CreatedAt, err = ParseTimeFromDB(createdAt); err != nil {
		return nil, fmt.Errorf("timer statistic %d created_at: %w", stat.ID, err)
	}
	if stat.UpdatedAt, err = ParseTimeFromDB(updatedAt); err != nil {
		return nil, fmt.Errorf("timer statistic %d updated_at: %w", stat.ID, err)
	}

	return stat, nil
}

// ScanTimerStatistics scans multiple statistics from database rows
func ScanTimerStatistics(rows Rows) ([]*TimerStatistic, error) {
	var stats []*TimerStatistic
	for rows.Next() {
		stat, err := ScanTimerStatistic(rows)
		if err != nil {
			return nil, err
		}
		stats = append(stats, stat)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return stats, nil
}

// ElapsedSeconds returns end - start in whole seconds
func ElapsedSeconds(start, end time.Time) int64 {
	return int64(end.Sub(start) / time.Second)
}
