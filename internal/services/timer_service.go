package services

import (
	"context"
	"fmt"
	"sync"

	"hq-timers/internal/domain"
	"hq-timers/internal/errors"
	"hq-timers/internal/logging"
	"hq-timers/internal/notify"
	"hq-timers/internal/repository/sqlite"
	"hq-timers/internal/validation"
)

// timerServiceImpl implements the TimerService interface
type timerServiceImpl struct {
	// mu serializes every mutation so the active-timer check and the insert cannot interleave
	mu        sync.Mutex
	store     sqlite.Store
	notifier  notify.Notifier
	logger    logging.Logger
	mapper    *domain.Mapper
	validator *validation.TimerValidator
}

// NewTimerService creates a new TimerService instance.
// A nil validator uses the default limits and a nil logger discards output.
func NewTimerService(store sqlite.Store, notifier notify.Notifier, logger logging.Logger, validator *validation.TimerValidator) TimerService {
	if validator == nil {
		validator = validation.NewTimerValidator()
	}
	if logger == nil {
		logger = logging.NewNopLogger()
	}
	if notifier == nil {
		notifier = notify.NopNotifier{}
	}
	return &timerServiceImpl{
		store:     store,
		notifier:  notifier,
		logger:    logger,
		mapper:    domain.NewMapper(),
		validator: validator,
	}
}

// StartTimer starts a plain timer. No statistics are recorded and nobody is notified.
func (s *timerServiceImpl) StartTimer(ctx context.Context, activity, area *string) (*domain.TimerEntry, error) {
	log := logging.ForContext(ctx, s.logger)
	log.Debug("start timer requested")

	activity, area, err := s.normalizeLabels(activity, area)
	if err != nil {
		return nil, err
	}

	var created *sqlite.Timer
	err = s.mutate(ctx, func(tx sqlite.Store) error {
		if err := ensureIdle(ctx, tx); err != nil {
			return err
		}
		created, err = tx.CreateTimer(ctx, activity, area, tx.Clock().Now(), false)
		return err
	})
	if err != nil {
		s.logFailure(log, "start timer", err)
		return nil, err
	}

	log.Info("timer started", "id", created.ID, "pomodoro", false)
	return s.mapper.Timer.FromDatabase(created), nil
}

// StartPomodoro records a started pomodoro for today, creates the entry, then notifies
func (s *timerServiceImpl) StartPomodoro(ctx context.Context, activity *string) (*domain.TimerEntry, error) {
	log := logging.ForContext(ctx, s.logger)
	log.Debug("start pomodoro requested")

	activity, _, err := s.normalizeLabels(activity, nil)
	if err != nil {
		return nil, err
	}

	var created *sqlite.Timer
	err = s.mutate(ctx, func(tx sqlite.Store) error {
		if err := ensureIdle(ctx, tx); err != nil {
			return err
		}

		now := tx.Clock().Now()
		stat, err := tx.LoadStatisticForDate(ctx, now)
		if err != nil {
			return err
		}
		if err := tx.IncrementStarted(ctx, stat); err != nil {
			return err
		}

		created, err = tx.CreateTimer(ctx, activity, nil, now, true)
		return err
	})
	if err != nil {
		s.logFailure(log, "start pomodoro", err)
		return nil, err
	}

	log.Info("timer started", "id", created.ID, "pomodoro", true)
	s.notify(ctx, log, notify.TimerStarted)
	return s.mapper.Timer.FromDatabase(created), nil
}

// CancelTimer ends the active timer and counts a cancellation, pomodoro or not.
// It returns (nil, nil) when no timer is running.
func (s *timerServiceImpl) CancelTimer(ctx context.Context) (*domain.TimerEntry, error) {
	log := logging.ForContext(ctx, s.logger)
	log.Debug("cancel timer requested")

	var ended *sqlite.Timer
	err := s.mutate(ctx, func(tx sqlite.Store) error {
		active, err := tx.GetActiveTimer(ctx)
		if err != nil || active == nil {
			return err
		}

		now := tx.Clock().Now()
		if err := tx.EndTimer(ctx, active); err != nil {
			return err
		}
		stat, err := tx.LoadStatisticForDate(ctx, now)
		if err != nil {
			return err
		}
		if err := tx.IncrementCancelled(ctx, stat); err != nil {
			return err
		}

		ended = active
		return nil
	})
	if err != nil {
		s.logFailure(log, "cancel timer", err)
		return nil, err
	}
	if ended == nil {
		log.Debug("no active timer to cancel")
		return nil, nil
	}

	log.Info("timer cancelled", "id", ended.ID, "pomodoro", ended.IsPomodoro, "duration", ended.Duration)
	s.notify(ctx, log, notify.TimerCancelled)
	return s.mapper.Timer.FromDatabase(ended), nil
}

// FinishTimer ends the active timer. Only pomodoros count as finished and notify.
// It returns (nil, nil) when no timer is running.
func (s *timerServiceImpl) FinishTimer(ctx context.Context) (*domain.TimerEntry, error) {
	log := logging.ForContext(ctx, s.logger)
	log.Debug("finish timer requested")

	var ended *sqlite.Timer
	err := s.mutate(ctx, func(tx sqlite.Store) error {
		active, err := tx.GetActiveTimer(ctx)
		if err != nil || active == nil {
			return err
		}

		now := tx.Clock().Now()
		if err := tx.EndTimer(ctx, active); err != nil {
			return err
		}

		if active.IsPomodoro {
			stat, err := tx.LoadStatisticForDate(ctx, now)
			if err != nil {
				return err
			}
			if err := tx.IncrementFinished(ctx, stat); err != nil {
				return err
			}
		}

		ended = active
		return nil
	})
	if err != nil {
		s.logFailure(log, "finish timer", err)
		return nil, err
	}
	if ended == nil {
		log.Debug("no active timer to finish")
		return nil, nil
	}

	log.Info("timer finished", "id", ended.ID, "pomodoro", ended.IsPomodoro, "duration", ended.Duration)
	if ended.IsPomodoro {
		s.notify(ctx, log, notify.TimerFinished)
	}
	return s.mapper.Timer.FromDatabase(ended), nil
}

// GetActiveTimer returns the running timer, or (nil, nil) when idle
func (s *timerServiceImpl) GetActiveTimer(ctx context.Context) (*domain.TimerEntry, error) {
	active, err := s.store.GetActiveTimer(ctx)
	if err != nil {
		return nil, err
	}
	return s.mapper.Timer.FromDatabase(active), nil
}

// GetHistory returns the most recently completed timers, newest first
func (s *timerServiceImpl) GetHistory(ctx context.Context) ([]*domain.TimerEntry, error) {
	timers, err := s.store.GetTimerHistory(ctx)
	if err != nil {
		return nil, err
	}
	return s.mapper.Timer.FromDatabaseSlice(timers), nil
}

// GetHistoryByDate returns GetHistory grouped by calendar day
func (s *timerServiceImpl) GetHistoryByDate(ctx context.Context) (map[string][]*domain.TimerEntry, error) {
	byDate, err := s.store.GetTimerHistoryByDate(ctx)
	if err != nil {
		return nil, err
	}
	return s.mapper.Timer.FromDatabaseByDate(byDate), nil
}

// UpdateActivity relabels the timer with the given id
func (s *timerServiceImpl) UpdateActivity(ctx context.Context, id int64, activity string) (*domain.TimerEntry, error) {
	log := logging.ForContext(ctx, s.logger)

	if err := s.validator.ValidateTimerID(id); err != nil {
		return nil, validation.AsAppError(err)
	}
	activity, err := s.validator.ValidateActivity(activity)
	if err != nil {
		return nil, validation.AsAppError(err)
	}

	var updated *sqlite.Timer
	err = s.mutate(ctx, func(tx sqlite.Store) error {
		timer, err := tx.FindTimer(ctx, id)
		if err != nil {
			return err
		}
		if timer == nil {
			return errors.NewNotFoundError("timer", fmt.Sprintf("%d", id))
		}
		if err := tx.SetTimerActivity(ctx, timer, activity); err != nil {
			return err
		}
		updated = timer
		return nil
	})
	if err != nil {
		s.logFailure(log, "update activity", err)
		return nil, err
	}

	log.Info("timer activity updated", "id", id)
	return s.mapper.Timer.FromDatabase(updated), nil
}

// mutate runs fn in one transaction while holding the lifecycle lock
func (s *timerServiceImpl) mutate(ctx context.Context, fn func(sqlite.Store) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.store.WithTx(ctx, fn)
}

func (s *timerServiceImpl) normalizeLabels(activity, area *string) (*string, *string, error) {
	activity, err := s.validator.NormalizeLabel("activity", activity)
	if err != nil {
		return nil, nil, validation.AsAppError(err)
	}
	area, err = s.validator.NormalizeLabel("area", area)
	if err != nil {
		return nil, nil, validation.AsAppError(err)
	}
	return activity, area, nil
}

// notify delivers a notification after the state change has committed.
// Failures are logged and swallowed.
func (s *timerServiceImpl) notify(ctx context.Context, log logging.Logger, event notify.Event) {
	if err := notify.Send(ctx, s.notifier, event); err != nil {
		if !errors.IsErrorType(err, errors.ErrorTypeNotification) {
			title, _ := event.Message()
			err = errors.NewNotificationError(title, err)
		}
		log.Warn("notification failed", "event", event.String(), "error", err)
	}
}

func (s *timerServiceImpl) logFailure(log logging.Logger, operation string, err error) {
	if errors.ShouldLogError(err) {
		log.Error(operation+" failed", "error", err, "code", errors.GetErrorCode(err))
		return
	}
	log.Debug(operation+" rejected", "error", err)
}

// ensureIdle rejects a start while another timer is running
func ensureIdle(ctx context.Context, tx sqlite.Store) error {
	active, err := tx.GetActiveTimer(ctx)
	if err != nil {
		return err
	}
	if active != nil {
		return errors.NewInvariantError(active.ID)
	}
	return nil
}
