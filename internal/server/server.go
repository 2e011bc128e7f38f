package server

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"hq-timers/internal/api"
	"hq-timers/internal/logging"
)

// RequestIDHeader carries the operation id of a request
const RequestIDHeader = "X-Request-ID"

// Options configures the HTTP dispatcher
type Options struct {
	// Location resolves the date query parameter of the statistics routes
	Location *time.Location
	// Timeout bounds each request; zero disables it
	Timeout time.Duration
	Logger  logging.Logger
}

// Server exposes the command contract over a local HTTP API
type Server struct {
	api     api.API
	loc     *time.Location
	timeout time.Duration
	logger  logging.Logger
	engine  *gin.Engine
}

// New builds the router for apiInstance
func New(apiInstance api.API, opts Options) *Server {
	if opts.Location == nil {
		opts.Location = time.UTC
	}
	if opts.Logger == nil {
		opts.Logger = logging.NewNopLogger()
	}

	s := &Server{
		api:     apiInstance,
		loc:     opts.Location,
		timeout: opts.Timeout,
		logger:  opts.Logger,
	}

	engine := gin.New()
	engine.Use(gin.Recovery(), s.requestContext())

	engine.GET("/health", func(c *gin.Context) {
		writeData(c, gin.H{"status": "ok"})
	})

	timers := engine.Group("/timers")
	timers.POST("", s.startTimer)
	timers.POST("/pomodoro", s.startPomodoro)
	timers.POST("/cancel", s.cancelTimer)
	timers.POST("/finish", s.finishTimer)
	timers.GET("/active", s.activeTimer)
	timers.GET("/history", s.history)
	timers.GET("/history/by-date", s.historyByDate)
	timers.PATCH("/:id/activity", s.updateActivity)

	stats := engine.Group("/statistics")
	stats.GET("/daily", s.dailyStatistics)
	stats.GET("/history", s.statisticsHistory)
	stats.GET("/today", s.todaySummary)

	s.engine = engine
	return s
}

// Handler returns the http.Handler serving all routes
func (s *Server) Handler() http.Handler {
	return s.engine
}

// ListenAndServe serves on addr until ctx is cancelled
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.engine,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("http server listening", "addr", addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if err == http.ErrServerClosed {
			return nil
		}
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		s.logger.Info("http server shutting down")
		return srv.Shutdown(shutdownCtx)
	}
}

// requestContext tags each request with an operation id and bounds it with the configured timeout
func (s *Server) requestContext() gin.HandlerFunc {
	return func(c *gin.Context) {
		opID := c.GetHeader(RequestIDHeader)
		if opID == "" {
			opID = uuid.NewString()
		}
		c.Header(RequestIDHeader, opID)

		ctx := logging.WithOperationID(c.Request.Context(), opID)
		if s.timeout > 0 {
			var cancel context.CancelFunc
			ctx, cancel = context.WithTimeout(ctx, s.timeout)
			defer cancel()
		}
		c.Request = c.Request.WithContext(ctx)

		start := time.Now()
		c.Next()
		logging.ForContext(ctx, s.logger).Debug("http request",
			"method", c.Request.Method,
			"path", c.FullPath(),
			"status", c.Writer.Status(),
			"elapsed", time.Since(start))
	}
}
