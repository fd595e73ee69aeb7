package utils

import (
	"fmt"
	"strings"
	"time"
)

const layoutClock = "15:04"

// ParseClock parses "HH:MM" into a time-of-day on the shared reference day
// (0000-01-01 UTC), so any two parsed values can be subtracted.
func ParseClock(s string) (time.Time, error) {
	t, err := time.ParseInLocation(layoutClock, strings.TrimSpace(s), time.UTC)
	if err != nil {
		return time.Time{}, fmt.Errorf("time must be HH:MM: %w", err)
	}
	return t, nil
}

// FormatClock formats a time-of-day as "HH:MM".
func FormatClock(t time.Time) string {
	return t.Format(layoutClock)
}

// MinutesBetween returns to-from in minutes, negative when to is earlier.
func MinutesBetween(from, to time.Time) float64 {
	return float64(to.Sub(from).Milliseconds()) / 60000
}
