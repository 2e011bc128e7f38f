package domain

import "time"

// TimerStatistic counts the pomodoro events of one calendar day
type TimerStatistic struct {
	ID              int64     `json:"id"`
	DateString      string    `json:"date_string"`
	TimersStarted   int64     `json:"timers_started"`
	TimersFinished  int64     `json:"timers_finished"`
	TimersCancelled int64     `json:"timers_cancelled"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

// ActivitySummary totals the completed timers of one activity
type ActivitySummary struct {
	Activity      string        `json:"activity"`
	TotalDuration int64         `json:"total_timers_duration"`
	Timers        []*TimerEntry `json:"timers"`
}

// TodaySummary totals the completed timers of the current day
type TodaySummary struct {
	Date          string             `json:"date"`
	TotalDuration int64              `json:"total_timers_duration"`
	Activities    []*ActivitySummary `json:"activities"`
}

// Elapsed returns the total duration as a time.Duration
func (s *TodaySummary) Elapsed() time.Duration {
	return time.Duration(s.TotalDuration) * time.Second
}
