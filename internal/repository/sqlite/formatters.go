package sqlite

import (
	"database/sql"
	"time"
)

// DateLayout is the layout of timer_statistics.date_string
const DateLayout = "2006-01-02"

// FormatTimeForDB formats a time.Time value as an RFC3339 UTC string for consistent database storage
func FormatTimeForDB(t time.Time) string {
	return t.UTC().Format(time.RFC3339)
}

// ParseTimeFromDB parses an RFC3339 formatted time string from the database
func ParseTimeFromDB(s string) (time.Time, error) {
	return time.Parse(time.RFC3339, s)
}

// ParseNullTimeFromDB parses a nullable RFC3339 column, returning nil for NULL
func ParseNullTimeFromDB(s sql.NullString) (*time.Time, error) {
	if !s.Valid {
		return nil, nil
	}
	t, err := ParseTimeFromDB(s.String)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

// FormatDateString formats the calendar day of t in loc as YYYY-MM-DD
func FormatDateString(t time.Time, loc *time.Location) string {
	if loc == nil {
		loc = time.UTC
	}
	return t.In(loc).Format(DateLayout)
}

// StringPtrForDB converts an optional label to a nullable column value
func StringPtrForDB(s *string) interface{} {
	if s == nil {
		return nil
	}
	return *s
}

// stringPtrFromDB converts a nullable column to an optional label
func stringPtrFromDB(s sql.NullString) *string {
	if !s.Valid {
		return nil
	}
	v := s.String
	return &v
}
