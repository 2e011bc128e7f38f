package validation

import (
	"time"
)

// TimerValidator validates the inputs of timer commands
type TimerValidator struct {
	validator *Validator
}

// NewTimerValidator creates a timer validator with default limits
func NewTimerValidator() *TimerValidator {
	return &TimerValidator{
		validator: NewValidator(),
	}
}

// NewTimerValidatorWithValidator creates a timer validator on top of v
func NewTimerValidatorWithValidator(v *Validator) *TimerValidator {
	return &TimerValidator{
		validator: v,
	}
}

// NormalizeLabel validates an optional activity or area label.
// nil and blank labels normalize to nil; others are returned trimmed.
func (tv *TimerValidator) NormalizeLabel(field string, label *string) (*string, error) {
	if label == nil || !tv.validator.IsNonEmptyString(*label) {
		return nil, nil
	}

	trimmed := tv.validator.TrimAndValidateString(*label)
	if err := tv.checkLabel(field, trimmed); err != nil {
		return nil, err
	}
	return &trimmed, nil
}

// ValidateActivity validates a required activity label and returns it trimmed
func (tv *TimerValidator) ValidateActivity(activity string) (string, error) {
	trimmed := tv.validator.TrimAndValidateString(activity)
	if trimmed == "" {
		validationError := NewValidationError()
		validationError.AddRequiredError("activity")
		return "", validationError
	}
	if err := tv.checkLabel("activity", trimmed); err != nil {
		return "", err
	}
	return trimmed, nil
}

func (tv *TimerValidator) checkLabel(field, label string) error {
	validationError := NewValidationError()

	if !tv.validator.IsValidLabelLength(label) {
		validationError.AddInvalidLengthError(field, label, 1, tv.validator.getLabelMaxLength())
	}
	if tv.validator.HasControlCharacters(label) {
		validationError.AddInvalidCharacterError(field, label)
	}

	if validationError.HasErrors() {
		return validationError
	}
	return nil
}

// ValidateTimerID validates a timer id
func (tv *TimerValidator) ValidateTimerID(id int64) error {
	if !tv.validator.IsValidID(id) {
		validationError := NewValidationError()
		validationError.AddInvalidValueError("timer_id", id, "must be a positive integer")
		return validationError
	}
	return nil
}

// ValidateHistoryDays validates the window of a statistics history request
func (tv *TimerValidator) ValidateHistoryDays(days int) error {
	if !tv.validator.IsValidHistoryDays(days) {
		validationError := NewValidationError()
		validationError.AddInvalidRangeError("days", days, "must be between 1 and the configured maximum")
		return validationError
	}
	return nil
}

// ValidateStatisticsDate validates the day of a daily statistics request.
// Any day from year 1 through 9999 is accepted, past or future.
func (tv *TimerValidator) ValidateStatisticsDate(date time.Time) error {
	if !tv.validator.IsCalendarDate(date) {
		validationError := NewValidationError()
		validationError.AddInvalidValueError("date", date.Year(), "year must be between 1 and 9999")
		return validationError
	}
	return nil
}
