package notify

import (
	"context"
	"fmt"
	"os/exec"
	"strings"

	"hq-timers/internal/config"
	"hq-timers/internal/errors"
	"hq-timers/internal/logging"
)

// Notifier delivers best-effort desktop notifications
type Notifier interface {
	Notify(ctx context.Context, title, body string) error
}

// Event identifies the lifecycle event a notification announces
type Event int

const (
	TimerStarted Event = iota
	TimerFinished
	TimerCancelled
)

func (e Event) String() string {
	switch e {
	case TimerStarted:
		return "started"
	case TimerFinished:
		return "finished"
	default:
		return "cancelled"
	}
}

// Message returns the title and body shown for e
func (e Event) Message() (title, body string) {
	switch e {
	case TimerStarted:
		return "H.Q.! Timer Started", "Your timer has been started."
	case TimerFinished:
		return "H.Q.! Timer Finished", "Your timer has finished."
	default:
		return "H.Q.! Timer Cancelled", "Your timer has been cancelled."
	}
}

// Send delivers the message for e through n
func Send(ctx context.Context, n Notifier, e Event) error {
	title, body := e.Message()
	return n.Notify(ctx, title, body)
}

// LogNotifier writes notifications to the structured log
type LogNotifier struct {
	logger logging.Logger
}

// NewLogNotifier creates a notifier that logs at Info
func NewLogNotifier(logger logging.Logger) *LogNotifier {
	return &LogNotifier{logger: logger}
}

func (n *LogNotifier) Notify(ctx context.Context, title, body string) error {
	logging.ForContext(ctx, n.logger).Info("notification", "title", title, "body", body)
	return nil
}

// Runner executes a command with arguments
type Runner func(ctx context.Context, name string, args ...string) error

func runCommand(ctx context.Context, name string, args ...string) error {
	out, err := exec.CommandContext(ctx, name, args...).CombinedOutput()
	if err != nil {
		if msg := strings.TrimSpace(string(out)); msg != "" {
			return fmt.Errorf("%w: %s", err, msg)
		}
		return err
	}
	return nil
}

// ExecNotifier runs a notify-send style command with the title and body as arguments
type ExecNotifier struct {
	command []string
	run     Runner
}

// NewExecNotifier creates a notifier for command, which may carry leading arguments
func NewExecNotifier(command string) *ExecNotifier {
	return NewExecNotifierWithRunner(command, runCommand)
}

// NewExecNotifierWithRunner creates an ExecNotifier that executes through run
func NewExecNotifierWithRunner(command string, run Runner) *ExecNotifier {
	return &ExecNotifier{
		command: strings.Fields(command),
		run:     run,
	}
}

func (n *ExecNotifier) Notify(ctx context.Context, title, body string) error {
	if len(n.command) == 0 {
		return errors.NewNotificationError(title, fmt.Errorf("no notification command configured"))
	}

	args := append(append([]string{}, n.command[1:]...), title, body)
	if err := n.run(ctx, n.command[0], args...); err != nil {
		return errors.NewNotificationError(title, err)
	}
	return nil
}

// NopNotifier drops every notification
type NopNotifier struct{}

func (NopNotifier) Notify(context.Context, string, string) error { return nil }

// New builds the notifier selected by the configuration
func New(cfg config.NotificationsConfig, logger logging.Logger) (Notifier, error) {
	switch cfg.Backend {
	case "log", "":
		return NewLogNotifier(logger), nil
	case "exec":
		return NewExecNotifier(cfg.Command), nil
	case "none":
		return NopNotifier{}, nil
	default:
		return nil, errors.NewInvalidInputError("notifications.backend", cfg.Backend, "must be one of log, exec, none")
	}
}
