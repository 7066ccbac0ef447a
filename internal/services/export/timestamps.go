package export

import (
	"fmt"
	"math"
)

// FormatTimestamp renders seconds as HH:MM:SS<sep>mmm. Every component is
// truncated, never rounded.
func FormatTimestamp(seconds float64, sep string) string {
	if seconds < 0 || math.IsNaN(seconds) {
		seconds = 0
	}

	whole := math.Floor(seconds)
	total := int64(whole)
	hours := total / 3600
	minutes := (total % 3600) / 60
	secs := total % 60
	millis := int64(math.Floor((seconds - whole) * 1000))
	if millis > 999 {
		millis = 999
	}

	return fmt.Sprintf("%02d:%02d:%02d%s%03d", hours, minutes, secs, sep, millis)
}

// SRTTimestamp uses a comma before the milliseconds
func SRTTimestamp(seconds float64) string {
	return FormatTimestamp(seconds, ",")
}

// VTTTimestamp uses a period before the milliseconds
func VTTTimestamp(seconds float64) string {
	return FormatTimestamp(seconds, ".")
}

// formatDuration renders a duration as M:SS for document footers
func formatDuration(seconds *float64) string {
	if seconds == nil {
		return "Unknown"
	}
	total := int64(math.Floor(*seconds))
	return fmt.Sprintf("%d:%02d", total/60, total%60)
}
