package services

import (
	"context"
	"time"

	"hq-timers/internal/domain"
	"hq-timers/internal/logging"
	"hq-timers/internal/notify"
	"hq-timers/internal/repository/sqlite"
	"hq-timers/internal/validation"
)

// TimerService runs the timer lifecycle: at most one timer is active at any time
type TimerService interface {
	// Lifecycle operations, serialized per process
	StartTimer(ctx context.Context, activity, area *string) (*domain.TimerEntry, error)
	StartPomodoro(ctx context.Context, activity *string) (*domain.TimerEntry, error)
	CancelTimer(ctx context.Context) (*domain.TimerEntry, error)
	FinishTimer(ctx context.Context) (*domain.TimerEntry, error)

	// Entry queries and edits
	GetActiveTimer(ctx context.Context) (*domain.TimerEntry, error)
	GetHistory(ctx context.Context) ([]*domain.TimerEntry, error)
	GetHistoryByDate(ctx context.Context) (map[string][]*domain.TimerEntry, error)
	UpdateActivity(ctx context.Context, id int64, activity string) (*domain.TimerEntry, error)
}

// StatisticsService reads the daily pomodoro counters
type StatisticsService interface {
	GetDailyStatistics(ctx context.Context, date time.Time) (*domain.TimerStatistic, error)
	GetStatisticsHistory(ctx context.Context, days int) ([]*domain.TimerStatistic, error)
	GetTodaySummary(ctx context.Context) (*domain.TodaySummary, error)
}

// ServiceContainer manages all services and their dependencies
type ServiceContainer struct {
	TimerService      TimerService
	StatisticsService StatisticsService
}

// NewServiceContainer wires the timer and statistics services over one store
func NewServiceContainer(store sqlite.Store, notifier notify.Notifier, logger logging.Logger, validator *validation.TimerValidator, historyDays int) *ServiceContainer {
	return &ServiceContainer{
		TimerService:      NewTimerService(store, notifier, logger, validator),
		StatisticsService: NewStatisticsService(store, logger, validator, historyDays),
	}
}
