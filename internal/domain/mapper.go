package domain

import (
	"hq-timers/internal/repository/sqlite"
)

// TimerMapper handles conversion between domain and database Timer models.
type TimerMapper struct{}

// NewTimerMapper creates a new TimerMapper instance.
func NewTimerMapper() *TimerMapper {
	return &TimerMapper{}
}

// FromDatabase converts a database Timer to a domain TimerEntry. nil maps to nil.
func (m *TimerMapper) FromDatabase(timer *sqlite.Timer) *TimerEntry {
	if timer == nil {
		return nil
	}
	return &TimerEntry{
		ID:         timer.ID,
		Activity:   timer.Activity,
		Area:       timer.Area,
		StartTime:  timer.StartTime,
		EndTime:    timer.EndTime,
		Duration:   timer.Duration,
		IsPomodoro: timer.IsPomodoro,
		CreatedAt:  timer.CreatedAt,
		UpdatedAt:  timer.UpdatedAt,
	}
}

// FromDatabaseSlice converts a slice of database Timers to domain TimerEntries.
func (m *TimerMapper) FromDatabaseSlice(timers []*sqlite.Timer) []*TimerEntry {
	entries := make([]*TimerEntry, len(timers))
	for i, timer := range timers {
		entries[i] = m.FromDatabase(timer)
	}
	return entries
}

// FromDatabaseByDate converts timers grouped by date.
func (m *TimerMapper) FromDatabaseByDate(byDate map[string][]*sqlite.Timer) map[string][]*TimerEntry {
	result := make(map[string][]*TimerEntry, len(byDate))
	for date, timers := range byDate {
		result[date] = m.FromDatabaseSlice(timers)
	}
	return result
}

// StatisticMapper handles conversion between domain and database TimerStatistic models.
type StatisticMapper struct{}

// NewStatisticMapper creates a new StatisticMapper instance.
func NewStatisticMapper() *StatisticMapper {
	return &StatisticMapper{}
}

// FromDatabase converts a database TimerStatistic to a domain TimerStatistic.
func (m *StatisticMapper) FromDatabase(stat *sqlite.TimerStatistic) *TimerStatistic {
	if stat == nil {
		return nil
	}
	return &TimerStatistic{
		ID:              stat.ID,
		DateString:      stat.DateString,
		TimersStarted:   stat.TimersStarted,
		TimersFinished:  stat.TimersFinished,
		TimersCancelled: stat.TimersCancelled,
		CreatedAt:       stat.CreatedAt,
		UpdatedAt:       stat.UpdatedAt,
	}
}

// FromDatabaseSlice converts a slice of database TimerStatistics to domain TimerStatistics.
func (m *StatisticMapper) FromDatabaseSlice(stats []*sqlite.TimerStatistic) []*TimerStatistic {
	result := make([]*TimerStatistic, len(stats))
	for i, stat := range stats {
		result[i] = m.FromDatabase(stat)
	}
	return result
}

// Mapper provides a unified interface for all mapping operations.
type Mapper struct {
	Timer     *TimerMapper
	Statistic *StatisticMapper
}

// NewMapper creates a new Mapper instance with all sub-mappers.
func NewMapper() *Mapper {
	return &Mapper{
		Timer:     NewTimerMapper(),
		Statistic: NewStatisticMapper(),
	}
}
