package services

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	apperrors "hq-timers/internal/errors"
	"hq-timers/internal/logging"
	"hq-timers/internal/repository/sqlite"
	"hq-timers/internal/testutil"

	"github.com/stretchr/testify/mock"
)

// mockNotifier records notifications through testify/mock
type mockNotifier struct {
	mock.Mock
}

func (m *mockNotifier) Notify(ctx context.Context, title, body string) error {
	args := m.Called(ctx, title, body)
	return args.Error(0)
}

func newMockNotifier() *mockNotifier {
	n := &mockNotifier{}
	n.On("Notify", mock.Anything, mock.Anything, mock.Anything).Return(nil).Maybe()
	return n
}

// blockingNotifier holds the notification titled block until release is closed
type blockingNotifier struct {
	block   string
	once    sync.Once
	entered chan struct{}
	release chan struct{}
}

func newBlockingNotifier(block string) *blockingNotifier {
	return &blockingNotifier{
		block:   block,
		entered: make(chan struct{}),
		release: make(chan struct{}),
	}
}

func (n *blockingNotifier) Notify(ctx context.Context, title, body string) error {
	if title != n.block {
		return nil
	}
	n.once.Do(func() { close(n.entered) })
	<-n.release
	return nil
}

type timerFixture struct {
	clock    *testutil.StubClock
	store    *sqlite.SQLiteRepository
	notifier *mockNotifier
	timers   TimerService
	stats    StatisticsService
}

func setupTimerFixture(t *testing.T) *timerFixture {
	t.Helper()

	clock := testutil.FixedClock()
	store := testutil.NewTestStore(t, clock)
	notifier := newMockNotifier()

	return &timerFixture{
		clock:    clock,
		store:    store,
		notifier: notifier,
		timers:   NewTimerService(store, notifier, logging.NewNopLogger(), nil),
		stats:    NewStatisticsService(store, logging.NewNopLogger(), nil, 0),
	}
}

// counters returns the stored counters of date
func (f *timerFixture) counters(t *testing.T, date string) (started, finished, cancelled int64) {
	t.Helper()

	stat, err := f.store.FindOrCreateStatistic(context.Background(), date)
	if err != nil {
		t.Fatalf("load statistic %s: %v", date, err)
	}
	return stat.TimersStarted, stat.TimersFinished, stat.TimersCancelled
}

func (f *timerFixture) notifications(title string) int {
	count := 0
	for _, call := range f.notifier.Calls {
		if call.Method == "Notify" && call.Arguments.String(1) == title {
			count++
		}
	}
	return count
}

func strPtr(s string) *string {
	return &s
}

var errBoom = errors.New("boom")

// failingStore makes CreateTimer fail, including inside transactions
type failingStore struct {
	sqlite.Store
}

func (s *failingStore) CreateTimer(ctx context.Context, activity, area *string, startTime time.Time, isPomodoro bool) (*sqlite.Timer, error) {
	return nil, apperrors.NewDatabaseError("insert timer", errBoom)
}

func (s *failingStore) WithTx(ctx context.Context, fn func(sqlite.Store) error) error {
	return s.Store.WithTx(ctx, func(tx sqlite.Store) error {
		return fn(&failingStore{Store: tx})
	})
}
