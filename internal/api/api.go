package api

import (
	"context"
	"time"

	"hq-timers/internal/clock"
	"hq-timers/internal/domain"
	"hq-timers/internal/errors"
	"hq-timers/internal/services"
)

// API is the command contract shared by the CLI and the HTTP dispatcher.
type API interface {
	// Timer lifecycle
	StartTimer(ctx context.Context, activity, area *string) (*domain.TimerEntry, error)
	StartPomodoro(ctx context.Context, activity *string) (*domain.TimerEntry, error)
	CancelTimer(ctx context.Context) (*domain.TimerEntry, error)
	FinishTimer(ctx context.Context) (*domain.TimerEntry, error)

	// Timer entries
	GetActiveTimer(ctx context.Context) (*domain.TimerEntry, error)
	GetHistory(ctx context.Context) ([]*domain.TimerEntry, error)
	GetHistoryByDate(ctx context.Context) (map[string][]*domain.TimerEntry, error)
	UpdateEntryActivity(ctx context.Context, id int64, activity string) (*domain.TimerEntry, error)

	// Statistics
	GetDailyStatistics(ctx context.Context, date *time.Time) (*domain.TimerStatistic, error)
	GetStatisticsHistory(ctx context.Context, days int) ([]*domain.TimerStatistic, error)
	GetTodaySummary(ctx context.Context) (*domain.TodaySummary, error)
}

type apiImpl struct {
	timers services.TimerService
	stats  services.StatisticsService
	clock  clock.Clock
}

// New creates a new API instance on top of the service container.
func New(container *services.ServiceContainer, c clock.Clock) API {
	if c == nil {
		c = clock.RealClock{}
	}
	return &apiImpl{
		timers: container.TimerService,
		stats:  container.StatisticsService,
		clock:  c,
	}
}

func (a *apiImpl) StartTimer(ctx context.Context, activity, area *string) (*domain.TimerEntry, error) {
	return a.timers.StartTimer(ctx, activity, area)
}

func (a *apiImpl) StartPomodoro(ctx context.Context, activity *string) (*domain.TimerEntry, error) {
	return a.timers.StartPomodoro(ctx, activity)
}

// CancelTimer returns (nil, nil) when nothing was running
func (a *apiImpl) CancelTimer(ctx context.Context) (*domain.TimerEntry, error) {
	return a.timers.CancelTimer(ctx)
}

// FinishTimer returns (nil, nil) when nothing was running
func (a *apiImpl) FinishTimer(ctx context.Context) (*domain.TimerEntry, error) {
	return a.timers.FinishTimer(ctx)
}

func (a *apiImpl) GetActiveTimer(ctx context.Context) (*domain.TimerEntry, error) {
	entry, err := a.timers.GetActiveTimer(ctx)
	if err != nil {
		return nil, err
	}
	if entry == nil {
		return nil, errors.NewNoActiveTimerError()
	}
	return entry, nil
}

func (a *apiImpl) GetHistory(ctx context.Context) ([]*domain.TimerEntry, error) {
	return a.timers.GetHistory(ctx)
}

func (a *apiImpl) GetHistoryByDate(ctx context.Context) (map[string][]*domain.TimerEntry, error) {
	return a.timers.GetHistoryByDate(ctx)
}

func (a *apiImpl) UpdateEntryActivity(ctx context.Context, id int64, activity string) (*domain.TimerEntry, error) {
	return a.timers.UpdateActivity(ctx, id, activity)
}

// GetDailyStatistics defaults to today when date is nil
func (a *apiImpl) GetDailyStatistics(ctx context.Context, date *time.Time) (*domain.TimerStatistic, error) {
	day := a.clock.Now()
	if date != nil {
		day = *date
	}
	return a.stats.GetDailyStatistics(ctx, day)
}

func (a *apiImpl) GetStatisticsHistory(ctx context.Context, days int) ([]*domain.TimerStatistic, error) {
	return a.stats.GetStatisticsHistory(ctx, days)
}

func (a *apiImpl) GetTodaySummary(ctx context.Context) (*domain.TodaySummary, error) {
	return a.stats.GetTodaySummary(ctx)
}
