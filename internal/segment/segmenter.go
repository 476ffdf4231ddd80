// Package segment partitions a video timeline into fixed-length slices.
// Pure time arithmetic; extraction of the slices is the orchestrator's job.
package segment

import "math"

// minTailSeconds is the shortest trailing segment worth emitting. A stub
// shorter than this is dropped so recipients never get a two-second part.
const minTailSeconds = 2.0

// Segment is one contiguous slice of the source timeline. Index is 1-based
// to match part naming in output files.
type Segment struct {
	Index    int
	Start    float64
	Duration float64
}

// Plan partitions durationSec into segments of at most segmentSec each.
// It returns nil when no split is warranted (the caller encodes the whole
// file directly): non-positive inputs, or a source that fits in a single
// segment. A trailing segment shorter than minTailSeconds is dropped,
// unless it is the only segment.
func Plan(durationSec, segmentSec float64) []Segment {
	if durationSec <= 0 || segmentSec <= 0 {
		return nil
	}
	count := int(math.Ceil(durationSec / segmentSec))
	if count <= 1 {
		return nil
	}

	segments := make([]Segment, 0, count)
	for i := 0; i < count; i++ {
		start := float64(i) * segmentSec
		length := math.Min(durationSec-start, segmentSec)
		if length < minTailSeconds && i > 0 {
			break
		}
		segments = append(segments, Segment{Index: i + 1, Start: start, Duration: length})
	}
	if len(segments) <= 1 {
		return nil
	}
	return segments
}
