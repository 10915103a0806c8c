package utils

import (
	"fmt"
	"time"
)

// FormatTime formats a duration for the CLI summary: milliseconds below one
// second, fractional seconds below one minute, then whole units up to days.
func FormatTime(d time.Duration) string {
	switch {
	case d < time.Second:
		return fmt.Sprintf("%dms", d.Milliseconds())
	case d < time.Minute:
		return fmt.Sprintf("%.2fs", d.Seconds())
	}

	secs := int64(d / time.Second)
	days, secs := secs/86400, secs%86400
	hours, secs := secs/3600, secs%3600
	mins, secs := secs/60, secs%60

	switch {
	case d < time.Hour:
		return fmt.Sprintf("%dm:%ds", mins, secs)
	case d < 24*time.Hour:
		return fmt.Sprintf("%dh:%dm:%ds", hours, mins, secs)
	}
	return fmt.Sprintf("%dd:%dh:%dm:%ds", days, hours, mins, secs)
}
