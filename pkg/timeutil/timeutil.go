// Package timeutil provides small helpers for formatting durations in log output.
package timeutil

import (
	"fmt"
	"time"
)

// FormatDuration formats a duration in the compact style used by the debug
// npm package: "0ms", "12ms", "3s", "2m", "1h".
func FormatDuration(d time.Duration) string {
	switch {
	case d < time.Millisecond:
		return "0ms"
	case d < time.Second:
		return fmt.Sprintf("%dms", d.Milliseconds())
	case d < time.Minute:
		return fmt.Sprintf("%ds", int(d.Seconds()))
	case d < time.Hour:
		return fmt.Sprintf("%dm", int(d.Minutes()))
	default:
		return fmt.Sprintf("%dh", int(d.Hours()))
	}
}
