package planner

import "github.com/statuspress/statuspress/internal/config"

// minVideoBitrate is the floor below which a target bitrate is never allowed
// to drop, no matter how long the clip runs.
const minVideoBitrate = 500_000

// DefaultTargetSizeMB returns the per-algorithm output size ceiling used when
// the caller does not supply one.
func DefaultTargetSizeMB(algo config.Algorithm) float64 {
	if algo == config.AlgoCompact {
		return 12.0
	}
	return 15.5
}

// TargetBitrate computes the video bitrate (bits per second) that fits
// targetMB of output within durationSec after reserving audioKbps for the
// audio track. Non-positive durations and starved budgets both collapse to
// the floor.
func TargetBitrate(targetMB float64, durationSec float64, audioKbps int) int {
	if durationSec <= 0 {
		return minVideoBitrate
	}
	totalBits := targetMB * 8 * 1024 * 1024
	videoBits := totalBits - float64(audioKbps*1000)*durationSec
	bps := int(videoBits / durationSec)
	if bps < minVideoBitrate {
		return minVideoBitrate
	}
	return bps
}
