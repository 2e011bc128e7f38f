package logging

import (
	"context"
	"io"
	"log/slog"
)

// Logger provides structured logging for the service layer.
// The args follow slog conventions: alternating key/value pairs.
type Logger interface {
	Debug(msg string, args ...any)
	Info(msg string, args ...any)
	Warn(msg string, args ...any)
	Error(msg string, args ...any)
}

// NopLogger is a Logger that discards all output. Use in tests.
type NopLogger struct{}

func NewNopLogger() *NopLogger { return &NopLogger{} }

func (*NopLogger) Debug(string, ...any) {}
func (*NopLogger) Info(string, ...any)  {}
func (*NopLogger) Warn(string, ...any)  {}
func (*NopLogger) Error(string, ...any) {}

// LevelFromVerbose maps the verbose/debug switches to a slog level.
func LevelFromVerbose(verbose bool) slog.Level {
	if verbose || DebugEnabled() {
		return slog.LevelDebug
	}
	return slog.LevelWarn
}

// NewLogger returns a text logger writing to w at the given level.
func NewLogger(w io.Writer, level slog.Level) *slog.Logger {
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

type opIDKey struct{}

// WithOperationID stores the id of the running command in ctx.
func WithOperationID(ctx context.Context, opID string) context.Context {
	return context.WithValue(ctx, opIDKey{}, opID)
}

// OperationID returns the command id stored in ctx, or "" if there is none.
func OperationID(ctx context.Context) string {
	if id, ok := ctx.Value(opIDKey{}).(string); ok {
		return id
	}
	return ""
}

// ForContext returns a logger that tags every record with the command id in ctx.
func ForContext(ctx context.Context, l Logger) Logger {
	id := OperationID(ctx)
	if id == "" {
		return l
	}
	return &taggedLogger{l: l, attrs: []any{"op", id}}
}

type taggedLogger struct {
	l     Logger
	attrs []any
}

func (t *taggedLogger) with(args []any) []any {
	return append(append([]any{}, t.attrs...), args...)
}

func (t *taggedLogger) Debug(msg string, args ...any) { t.l.Debug(msg, t.with(args)...) }
func (t *taggedLogger) Info(msg string, args ...any)  { t.l.Info(msg, t.with(args)...) }
func (t *taggedLogger) Warn(msg string, args ...any)  { t.l.Warn(msg, t.with(args)...) }
func (t *taggedLogger) Error(msg string, args ...any) { t.l.Error(msg, t.with(args)...) }
