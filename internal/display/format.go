// Package display provides human-readable formatting for sizes, bitrates,
// and durations used in result messages and log lines.
package display

import (
	"fmt"
	"time"
)

// FormatBytes renders a byte count with a binary unit suffix.
func FormatBytes(n int64) string {
	const (
		kib = 1 << 10
		mib = 1 << 20
		gib = 1 << 30
	)
	switch {
	case n >= gib:
		return fmt.Sprintf("%.2f GiB", float64(n)/gib)
	case n >= mib:
		return fmt.Sprintf("%.1f MiB", float64(n)/mib)
	case n >= kib:
		return fmt.Sprintf("%.1f KiB", float64(n)/kib)
	default:
		return fmt.Sprintf("%d B", n)
	}
}

// FormatBitrate renders a bits-per-second value as kb/s or Mb/s.
func FormatBitrate(bps int64) string {
	if bps <= 0 {
		return "unknown"
	}
	kbps := (bps + 500) / 1000
	if kbps >= 10000 {
		return fmt.Sprintf("%.1f Mb/s", float64(kbps)/1000)
	}
	return fmt.Sprintf("%d kb/s", kbps)
}

// FormatDuration renders seconds as m:ss, or h:mm:ss above an hour.
func FormatDuration(seconds float64) string {
	d := time.Duration(seconds * float64(time.Second)).Round(time.Second)
	h := int(d.Hours())
	m := int(d.Minutes()) % 60
	s := int(d.Seconds()) % 60
	if h > 0 {
		return fmt.Sprintf("%d:%02d:%02d", h, m, s)
	}
	return fmt.Sprintf("%d:%02d", m, s)
}

// FormatRatio renders a compression ratio percentage for messages.
func FormatRatio(ratio float64) string {
	return fmt.Sprintf("%.1f%%", ratio)
}
