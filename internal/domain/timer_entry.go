package domain

import (
	"time"
)

// NoActivity is shown for timers that were never labelled
const NoActivity = "(no activity)"

// TimerEntry represents one tracked work or focus session in the domain model.
// This is a pure domain model without database-specific concerns.
type TimerEntry struct {
	ID         int64      `json:"id"`
	Activity   *string    `json:"activity"`
	Area       *string    `json:"area"`
	StartTime  time.Time  `json:"start_time"`
	EndTime    *time.Time `json:"end_time"`
	Duration   int64      `json:"duration"`
	IsPomodoro bool       `json:"is_pomodoro"`
	CreatedAt  time.Time  `json:"created_at"`
	UpdatedAt  time.Time  `json:"updated_at"`
}

// IsActive returns true if the entry has not been finished or cancelled
func (e *TimerEntry) IsActive() bool {
	return e.EndTime == nil
}

// Elapsed returns the duration as a time.Duration
func (e *TimerEntry) Elapsed() time.Duration {
	return time.Duration(e.Duration) * time.Second
}

// ActivityLabel returns the activity or NoActivity when unset
func (e *TimerEntry) ActivityLabel() string {
	if e.Activity == nil || *e.Activity == "" {
		return NoActivity
	}
	return *e.Activity
}

// Kind names the timer type for display
func (e *TimerEntry) Kind() string {
	if e.IsPomodoro {
		return "pomodoro"
	}
	return "timer"
}
