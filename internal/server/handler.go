package server

import (
	"errors"
	"io"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	apperrors "hq-timers/internal/errors"
)

type startTimerRequest struct {
	Activity *string `json:"activity"`
	Area     *string `json:"area"`
}

type updateActivityRequest struct {
	Activity string `json:"activity"`
}

// bindOptional decodes a JSON body when one was sent.
// An empty body binds nothing, including an empty chunked one.
func bindOptional(c *gin.Context, dst interface{}) error {
	if c.Request.Body == nil || c.Request.ContentLength == 0 {
		return nil
	}
	if err := c.ShouldBindJSON(dst); err != nil {
		if errors.Is(err, io.EOF) {
			return nil
		}
		return apperrors.NewInvalidInputError("body", nil, "invalid JSON body")
	}
	return nil
}

func (s *Server) startTimer(c *gin.Context) {
	var req startTimerRequest
	if err := bindOptional(c, &req); err != nil {
		s.writeError(c, "start timer", err)
		return
	}

	entry, err := s.api.StartTimer(c.Request.Context(), req.Activity, req.Area)
	if err != nil {
		s.writeError(c, "start timer", err)
		return
	}
	writeData(c, entry)
}

func (s *Server) startPomodoro(c *gin.Context) {
	var req startTimerRequest
	if err := bindOptional(c, &req); err != nil {
		s.writeError(c, "start pomodoro", err)
		return
	}

	entry, err := s.api.StartPomodoro(c.Request.Context(), req.Activity)
	if err != nil {
		s.writeError(c, "start pomodoro", err)
		return
	}
	writeData(c, entry)
}

// cancelTimer answers with data null when no timer was running
func (s *Server) cancelTimer(c *gin.Context) {
	entry, err := s.api.CancelTimer(c.Request.Context())
	if err != nil {
		s.writeError(c, "cancel timer", err)
		return
	}
	writeData(c, entry)
}

// finishTimer answers with data null when no timer was running
func (s *Server) finishTimer(c *gin.Context) {
	entry, err := s.api.FinishTimer(c.Request.Context())
	if err != nil {
		s.writeError(c, "finish timer", err)
		return
	}
	writeData(c, entry)
}

func (s *Server) activeTimer(c *gin.Context) {
	entry, err := s.api.GetActiveTimer(c.Request.Context())
	if err != nil {
		s.writeError(c, "get active timer", err)
		return
	}
	writeData(c, entry)
}

func (s *Server) history(c *gin.Context) {
	entries, err := s.api.GetHistory(c.Request.Context())
	if err != nil {
		s.writeError(c, "get history", err)
		return
	}
	writeData(c, entries)
}

func (s *Server) historyByDate(c *gin.Context) {
	byDate, err := s.api.GetHistoryByDate(c.Request.Context())
	if err != nil {
		s.writeError(c, "get history by date", err)
		return
	}
	writeData(c, byDate)
}

func (s *Server) updateActivity(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		s.writeError(c, "update activity", apperrors.NewInvalidInputError("id", c.Param("id"), "must be an integer"))
		return
	}

	var req updateActivityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		s.writeError(c, "update activity", apperrors.NewInvalidInputError("body", nil, "invalid JSON body"))
		return
	}

	entry, err := s.api.UpdateEntryActivity(c.Request.Context(), id, req.Activity)
	if err != nil {
		s.writeError(c, "update activity", err)
		return
	}
	writeData(c, entry)
}

func (s *Server) dailyStatistics(c *gin.Context) {
	var date *time.Time
	if raw := c.Query("date"); raw != "" {
		parsed, err := time.ParseInLocation("2006-01-02", raw, s.loc)
		if err != nil {
			s.writeError(c, "get daily statistics", apperrors.NewInvalidInputError("date", raw, "expected YYYY-MM-DD"))
			return
		}
		date = &parsed
	}

	stat, err := s.api.GetDailyStatistics(c.Request.Context(), date)
	if err != nil {
		s.writeError(c, "get daily statistics", err)
		return
	}
	writeData(c, stat)
}

// statisticsHistory uses the configured window when days is absent
func (s *Server) statisticsHistory(c *gin.Context) {
	days := 0
	if raw := c.Query("days"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			s.writeError(c, "get statistics history", apperrors.NewInvalidInputError("days", raw, "must be an integer"))
			return
		}
		days = parsed
	}

	stats, err := s.api.GetStatisticsHistory(c.Request.Context(), days)
	if err != nil {
		s.writeError(c, "get statistics history", err)
		return
	}
	writeData(c, stats)
}

func (s *Server) todaySummary(c *gin.Context) {
	summary, err := s.api.GetTodaySummary(c.Request.Context())
	if err != nil {
		s.writeError(c, "get today summary", err)
		return
	}
	writeData(c, summary)
}
