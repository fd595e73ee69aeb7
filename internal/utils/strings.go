package utils

import "fmt"

// FormatMinutes keeps consistent two-decimal formatting for durations.
func FormatMinutes(minutes float64) string {
	return fmt.Sprintf("%.2f", minutes)
}
