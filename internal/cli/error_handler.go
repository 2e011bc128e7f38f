package cli

import (
	"fmt"

	"hq-timers/internal/errors"
	"hq-timers/internal/logging"
	"hq-timers/internal/validation"
)

// ErrorHandler turns command failures into short user messages.
// Full diagnostics go to the logger.
type ErrorHandler struct {
	logger logging.Logger
}

// NewErrorHandler creates a new error handler. A nil logger discards diagnostics.
func NewErrorHandler(logger logging.Logger) *ErrorHandler {
	if logger == nil {
		logger = logging.NewNopLogger()
	}
	return &ErrorHandler{logger: logger}
}

// Handle provides user-friendly error messages for validation and other errors
func (eh *ErrorHandler) Handle(operation string, err error) error {
	eh.log(operation, err)

	if validationErr, ok := err.(*validation.ValidationError); ok {
		return fmt.Errorf("failed to %s: %s", operation, validationErr.GetUserFriendlyMessage())
	}

	if _, ok := errors.AsAppError(err); ok {
		return fmt.Errorf("failed to %s: %s", operation, errors.GetUserMessage(err))
	}

	return fmt.Errorf("failed to %s: %w", operation, err)
}

// IsNotFoundError checks if an error is a not found error
func (eh *ErrorHandler) IsNotFoundError(err error) bool {
	return errors.IsErrorType(err, errors.ErrorTypeNotFound)
}

func (eh *ErrorHandler) log(operation string, err error) {
	if errors.ShouldLogError(err) {
		eh.logger.Error(operation+" failed", "error", err, "code", errors.GetErrorCode(err))
		return
	}
	eh.logger.Debug(operation+" rejected", "error", err)
}
