package validation

import (
	"strings"
	"time"
	"unicode"
	"unicode/utf8"

	"hq-timers/internal/config"
)

// Validator provides common validation utilities
type Validator struct {
	config *config.Config
}

// NewValidator creates a new validator instance
func NewValidator() *Validator {
	return &Validator{
		config: nil, // Use defaults
	}
}

// NewValidatorWithConfig creates a new validator instance with configuration
func NewValidatorWithConfig(cfg *config.Config) *Validator {
	return &Validator{
		config: cfg,
	}
}

// IsNonEmptyString checks if a string is not empty after trimming whitespace
func (v *Validator) IsNonEmptyString(s string) bool {
	return strings.TrimSpace(s) != ""
}

// IsValidStringLength checks if the trimmed string has between min and max characters
func (v *Validator) IsValidStringLength(s string, min, max int) bool {
	length := utf8.RuneCountInString(strings.TrimSpace(s))
	return length >= min && length <= max
}

// IsValidLabelLength checks a label against the configured maximum
func (v *Validator) IsValidLabelLength(label string) bool {
	return v.IsValidStringLength(label, 1, v.getLabelMaxLength())
}

// HasControlCharacters reports whether s contains newlines, tabs or other control characters
func (v *Validator) HasControlCharacters(s string) bool {
	return strings.IndexFunc(s, unicode.IsControl) >= 0
}

// IsValidID checks if a store id is valid (positive)
func (v *Validator) IsValidID(id int64) bool {
	return id > 0
}

// IsValidHistoryDays checks a statistics window against the configured maximum
func (v *Validator) IsValidHistoryDays(days int) bool {
	return days >= 1 && days <= v.getMaxHistoryDays()
}

// IsCalendarDate checks that t has a four digit year, so it formats as YYYY-MM-DD
func (v *Validator) IsCalendarDate(t time.Time) bool {
	return t.Year() >= 1 && t.Year() <= 9999
}

// TrimAndValidateString trims whitespace and returns the cleaned string
func (v *Validator) TrimAndValidateString(s string) string {
	return strings.TrimSpace(s)
}

// getLabelMaxLength returns configured maximum label length or default
func (v *Validator) getLabelMaxLength() int {
	if v.config != nil {
		return v.config.Validation.LabelMaxLength
	}
	return 255 // Default maximum
}

// getMaxHistoryDays returns configured maximum history window or default
func (v *Validator) getMaxHistoryDays() int {
	if v.config != nil {
		return v.config.Validation.MaxHistoryDays
	}
	return 365 // Default maximum
}
