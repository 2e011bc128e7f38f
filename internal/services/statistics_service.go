package services

import (
	"context"
	"time"

	"hq-timers/internal/domain"
	"hq-timers/internal/logging"
	"hq-timers/internal/repository/sqlite"
	"hq-timers/internal/validation"
)

// DefaultHistoryDays is the statistics window used when none is requested
const DefaultHistoryDays = 10

// statisticsServiceImpl implements the StatisticsService interface
type statisticsServiceImpl struct {
	store       sqlite.Store
	logger      logging.Logger
	mapper      *domain.Mapper
	validator   *validation.TimerValidator
	historyDays int
}

// NewStatisticsService creates a new StatisticsService instance.
// historyDays <= 0 falls back to DefaultHistoryDays.
func NewStatisticsService(store sqlite.Store, logger logging.Logger, validator *validation.TimerValidator, historyDays int) StatisticsService {
	if validator == nil {
		validator = validation.NewTimerValidator()
	}
	if logger == nil {
		logger = logging.NewNopLogger()
	}
	if historyDays <= 0 {
		historyDays = DefaultHistoryDays
	}
	return &statisticsServiceImpl{
		store:       store,
		logger:      logger,
		mapper:      domain.NewMapper(),
		validator:   validator,
		historyDays: historyDays,
	}
}

// GetDailyStatistics returns the counters of the calendar day of date, creating the row if needed.
// Days far in the past or future are answered with zeroed counters like any other.
func (s *statisticsServiceImpl) GetDailyStatistics(ctx context.Context, date time.Time) (*domain.TimerStatistic, error) {
	if err := s.validator.ValidateStatisticsDate(date); err != nil {
		return nil, validation.AsAppError(err)
	}

	stat, err := s.store.LoadStatisticForDate(ctx, date)
	if err != nil {
		logging.ForContext(ctx, s.logger).Error("load daily statistics failed", "error", err)
		return nil, err
	}
	return s.mapper.Statistic.FromDatabase(stat), nil
}

// GetStatisticsHistory returns the counters of the days before today, newest first.
// days == 0 uses the configured window.
func (s *statisticsServiceImpl) GetStatisticsHistory(ctx context.Context, days int) ([]*domain.TimerStatistic, error) {
	if days == 0 {
		days = s.historyDays
	}
	if err := s.validator.ValidateHistoryDays(days); err != nil {
		return nil, validation.AsAppError(err)
	}

	stats, err := s.store.LoadStatisticsHistory(ctx, days)
	if err != nil {
		logging.ForContext(ctx, s.logger).Error("load statistics history failed", "days", days, "error", err)
		return nil, err
	}
	return s.mapper.Statistic.FromDatabaseSlice(stats), nil
}

// GetTodaySummary totals today's completed timers overall and per activity.
// Activities keep the order in which they were first worked on.
func (s *statisticsServiceImpl) GetTodaySummary(ctx context.Context) (*domain.TodaySummary, error) {
	loc := s.store.Location()
	now := s.store.Clock().Now().In(loc)
	dayStart := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, loc)

	timers, err := s.store.ListTimersBetween(ctx, dayStart, dayStart.AddDate(0, 0, 1))
	if err != nil {
		logging.ForContext(ctx, s.logger).Error("load today's timers failed", "error", err)
		return nil, err
	}

	summary := &domain.TodaySummary{
		Date:       sqlite.FormatDateString(now, loc),
		Activities: []*domain.ActivitySummary{},
	}
	byActivity := make(map[string]*domain.ActivitySummary)

	for _, entry := range s.mapper.Timer.FromDatabaseSlice(timers) {
		if entry.IsActive() {
			continue
		}

		label := entry.ActivityLabel()
		activity, ok := byActivity[label]
		if !ok {
			activity = &domain.ActivitySummary{Activity: label}
			byActivity[label] = activity
			summary.Activities = append(summary.Activities, activity)
		}

		activity.TotalDuration += entry.Duration
		activity.Timers = append(activity.Timers, entry)
		summary.TotalDuration += entry.Duration
	}

	return summary, nil
}
