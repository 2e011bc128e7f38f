package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"hq-timers/internal/repository/sqlite"
)

func sampleTimer() *sqlite.Timer {
	activity := "reading"
	end := time.Date(2024, 1, 1, 10, 25, 0, 0, time.UTC)
	return &sqlite.Timer{
		ID:         1,
		Activity:   &activity,
		StartTime:  time.Date(2024, 1, 1, 10, 0, 0, 0, time.UTC),
		EndTime:    &end,
		Duration:   1500,
		IsPomodoro: true,
		CreatedAt:  time.Date(2024, 1, 1, 10, 0, 0, 0, time.UTC),
		UpdatedAt:  end,
	}
}

func TestTimerMapper_FromDatabase(t *testing.T) {
	mapper := NewTimerMapper()
	dbTimer := sampleTimer()

	result := mapper.FromDatabase(dbTimer)

	assert.Equal(t, dbTimer.ID, result.ID)
	assert.Equal(t, "reading", *result.Activity)
	assert.Nil(t, result.Area)
	assert.Equal(t, dbTimer.StartTime, result.StartTime)
	assert.Equal(t, dbTimer.EndTime, result.EndTime)
	assert.Equal(t, int64(1500), result.Duration)
	assert.True(t, result.IsPomodoro)
}

func TestTimerMapper_Nil(t *testing.T) {
	mapper := NewTimerMapper()

	assert.Nil(t, mapper.FromDatabase(nil))
}

func TestTimerMapper_FromDatabaseSlice(t *testing.T) {
	mapper := NewTimerMapper()

	result := mapper.FromDatabaseSlice([]*sqlite.Timer{sampleTimer(), {ID: 2}})

	assert.Len(t, result, 2)
	assert.Equal(t, int64(1), result[0].ID)
	assert.Equal(t, int64(2), result[1].ID)
	assert.Empty(t, mapper.FromDatabaseSlice(nil))
}

func TestTimerMapper_FromDatabaseByDate(t *testing.T) {
	mapper := NewTimerMapper()

	result := mapper.FromDatabaseByDate(map[string][]*sqlite.Timer{
		"2024-01-01": {sampleTimer()},
		"2024-01-02": {{ID: 2}, {ID: 3}},
	})

	assert.Len(t, result, 2)
	assert.Len(t, result["2024-01-01"], 1)
	assert.Equal(t, int64(3), result["2024-01-02"][1].ID)
}

func TestStatisticMapper_FromDatabase(t *testing.T) {
	mapper := NewStatisticMapper()
	dbStat := &sqlite.TimerStatistic{
		ID:              3,
		DateString:      "2024-01-01",
		TimersStarted:   2,
		TimersFinished:  1,
		TimersCancelled: 1,
	}

	result := mapper.FromDatabase(dbStat)

	expected := &TimerStatistic{
		ID:              3,
		DateString:      "2024-01-01",
		TimersStarted:   2,
		TimersFinished:  1,
		TimersCancelled: 1,
	}
	assert.Equal(t, expected, result)
	assert.Nil(t, mapper.FromDatabase(nil))
}

func TestStatisticMapper_FromDatabaseSlice(t *testing.T) {
	mapper := NewStatisticMapper()

	result := mapper.FromDatabaseSlice([]*sqlite.TimerStatistic{{DateString: "2024-01-02"}, {DateString: "2024-01-01"}})

	assert.Equal(t, "2024-01-02", result[0].DateString)
	assert.Equal(t, "2024-01-01", result[1].DateString)
}

func TestNewMapper(t *testing.T) {
	mapper := NewMapper()

	assert.NotNil(t, mapper.Timer)
	assert.NotNil(t, mapper.Statistic)
}
