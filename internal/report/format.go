package report

import (
	"fmt"
	"time"
)

// formatPercent renders a 0..1 ratio as a percentage.
func formatPercent(ratio float64) string {
	return fmt.Sprintf("%.1f%%", ratio*100)
}

// formatDuration renders whole seconds, switching to minutes from one minute up.
func formatDuration(d time.Duration) string {
	seconds := int(d.Round(time.Second) / time.Second)
	if seconds >= 60 {
		return fmt.Sprintf("%d min %d s", seconds/60, seconds%60)
	}
	return fmt.Sprintf("%d s", seconds)
}

func formatTimestamp(ts time.Time) string {
	if ts.IsZero() {
		return "-"
	}
	return ts.Local().Format("2006-01-02 15:04:05")
}
