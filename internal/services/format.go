package services

import (
	"fmt"
	"time"
)

// FormatDuration formats a duration into human-readable string
func FormatDuration(duration time.Duration) string {
	if duration < 0 {
		return "0m 0s"
	}

	hours := int(duration.Hours())
	minutes := int(duration.Minutes()) % 60
	seconds := int(duration.Seconds()) % 60

	if hours > 0 {
		return fmt.Sprintf("%dh %dm", hours, minutes)
	}
	return fmt.Sprintf("%dm %ds", minutes, seconds)
}

// FormatSeconds formats a whole number of seconds like FormatDuration
func FormatSeconds(seconds int64) string {
	return FormatDuration(time.Duration(seconds) * time.Second)
}
