// Package report aggregates lane outcomes into the final summary and
// renders it.
package report

import (
	"fmt"
	"time"
)

// FmtNs renders a nanosecond mean in the most readable unit.
func FmtNs(ns float64) string {
	if ns < 1_000 {
		return fmt.Sprintf("%.0fns", ns)
	}
	if ns < 1_000_000 {
		return fmt.Sprintf("%.1fµs", ns/1_000)
	}
	if ns < 1_000_000_000 {
		return fmt.Sprintf("%.1fms", ns/1_000_000)
	}
	return fmt.Sprintf("%.2fs", ns/1_000_000_000)
}

// FmtSecs renders a duration as seconds with one decimal.
func FmtSecs(d time.Duration) string {
	return fmt.Sprintf("%.1fs", d.Seconds())
}
