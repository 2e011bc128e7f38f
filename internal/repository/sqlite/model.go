package sqlite

import "time"

// Timer is a row of the timers table
type Timer struct {
	ID         int64
	Activity   *string // NULL until the user labels the session
	Area       *string
	StartTime  time.Time
	EndTime    *time.Time // NULL while the timer is active
	Duration   int64      // whole seconds
	IsPomodoro bool
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// IsActive returns true while the timer has no end time
func (t *Timer) IsActive() bool {
	return t.EndTime == nil
}

// TimerStatistic is a row of the timer_statistics table, one per calendar day
type TimerStatistic struct {
	ID              int64
	DateString      string
	TimersStarted   int64
	TimersFinished  int64
	TimersCancelled int64
	CreatedAt       time.Time
	UpdatedAt       time.Time
}
