package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "hq-timers/internal/errors"
)

func TestValidationError_Error(t *testing.T) {
	assert.EqualError(t, NewValidationError(), "validation error")

	single := NewValidationError()
	single.AddError("activity", ErrorTypeRequired, "is required", nil)
	assert.EqualError(t, single, "validation error for field 'activity': is required")

	multiple := NewValidationError()
	multiple.AddError("activity", ErrorTypeRequired, "is required", nil)
	multiple.AddError("days", ErrorTypeInvalidRange, "must be positive", 0)
	assert.EqualError(t, multiple,
		"multiple validation errors: validation error for field 'activity': is required; validation error for field 'days': must be positive")
}

func TestValidationError_HasErrors(t *testing.T) {
	ve := NewValidationError()
	assert.False(t, ve.HasErrors())
	assert.NotNil(t, ve.Errors)

	ve.AddRequiredError("activity")
	assert.True(t, ve.HasErrors())
}

func TestValidationError_Adders(t *testing.T) {
	tests := []struct {
		name     string
		add      func(*ValidationError)
		typ      ValidationErrorType
		message  string
		hasValue bool
	}{
		{
			name:    "required",
			add:     func(ve *ValidationError) { ve.AddRequiredError("activity") },
			typ:     ErrorTypeRequired,
			message: "activity is required",
		},
		{
			name:     "length with both bounds",
			add:      func(ve *ValidationError) { ve.AddInvalidLengthError("activity", "", 1, 255) },
			typ:      ErrorTypeInvalidLength,
			message:  "activity must be between 1 and 255 characters long",
			hasValue: true,
		},
		{
			name:     "length with a minimum",
			add:      func(ve *ValidationError) { ve.AddInvalidLengthError("activity", "", 1, 0) },
			typ:      ErrorTypeInvalidLength,
			message:  "activity must be at least 1 characters long",
			hasValue: true,
		},
		{
			name:     "length with a maximum",
			add:      func(ve *ValidationError) { ve.AddInvalidLengthError("activity", "", 0, 255) },
			typ:      ErrorTypeInvalidLength,
			message:  "activity must be at most 255 characters long",
			hasValue: true,
		},
		{
			name:     "value",
			add:      func(ve *ValidationError) { ve.AddInvalidValueError("timer_id", int64(0), "must be a positive integer") },
			typ:      ErrorTypeInvalidValue,
			message:  "timer_id has invalid value: must be a positive integer",
			hasValue: true,
		},
		{
			name:     "range",
			add:      func(ve *ValidationError) { ve.AddInvalidRangeError("days", 0, "must be between 1 and 365") },
			typ:      ErrorTypeInvalidRange,
			message:  "days has invalid range: must be between 1 and 365",
			hasValue: true,
		},
		{
			name:     "character",
			add:      func(ve *ValidationError) { ve.AddInvalidCharacterError("area", "a\x00b") },
			typ:      ErrorTypeInvalidCharacter,
			message:  "area contains invalid characters",
			hasValue: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ve := NewValidationError()
			tt.add(ve)

			require.Len(t, ve.Errors, 1)
			assert.Equal(t, tt.typ, ve.Errors[0].Type)
			assert.Equal(t, tt.message, ve.Errors[0].Message)
			if tt.hasValue {
				assert.NotNil(t, ve.Errors[0].Value)
			}
		})
	}
}

func TestValidationError_GetUserFriendlyMessage(t *testing.T) {
	assert.Equal(t, "Input validation failed", NewValidationError().GetUserFriendlyMessage())

	single := NewValidationError()
	single.AddRequiredError("activity")
	assert.Equal(t, "activity is required", single.GetUserFriendlyMessage())

	multiple := NewValidationError()
	multiple.AddRequiredError("activity")
	multiple.AddInvalidCharacterError("area", "\x00")
	assert.Equal(t, "Multiple validation errors occurred:\n- activity is required\n- area contains invalid characters",
		multiple.GetUserFriendlyMessage())
}

func TestValidationError_ToAppError(t *testing.T) {
	ve := NewValidationError()
	ve.AddRequiredError("activity")

	appErr := ve.ToAppError()
	assert.True(t, apperrors.IsErrorType(appErr, apperrors.ErrorTypeValidation))
	assert.Equal(t, "activity is required", appErr.Message)
	assert.ErrorIs(t, appErr, ve)
}

func TestAsAppError(t *testing.T) {
	ve := NewValidationError()
	ve.AddRequiredError("activity")
	assert.True(t, apperrors.IsErrorType(AsAppError(ve), apperrors.ErrorTypeValidation))

	other := apperrors.NewNotFoundError("timer", "1")
	assert.Same(t, other, AsAppError(other))
}
