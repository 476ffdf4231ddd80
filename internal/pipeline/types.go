// Package pipeline orchestrates compression requests end to end: probe,
// classify, plan, split, encode, aggregate. One Orchestrator handles one
// request at a time; requests share no state, so callers may run several
// orchestrators concurrently.
package pipeline

import (
	"fmt"

	"github.com/statuspress/statuspress/internal/config"
)

// PartResult is the outcome of encoding one part (a segment, or the whole
// file when unsplit). Size and ratio fields are meaningful only on success.
type PartResult struct {
	Part           int // 1-based; matches the output file name
	Success        bool
	OutputPath     string
	OriginalSize   int64
	CompressedSize int64
	Ratio          float64
	Error          string
}

// Outcome is the terminal result of one video compression request.
// Success means at least one part succeeded; AllSucceeded distinguishes a
// clean run from a partial one.
type Outcome struct {
	Algorithm    config.Algorithm
	Parts        []PartResult
	Success      bool
	AllSucceeded bool
	Message      string
}

// Ratio computes the percentage saved by compression.
func Ratio(original, compressed int64) float64 {
	if original <= 0 {
		return 0
	}
	return (1 - float64(compressed)/float64(original)) * 100
}

// SplitError means segment extraction produced nothing usable. Fatal for
// the whole request.
type SplitError struct {
	Err error
}

func (e *SplitError) Error() string { return fmt.Sprintf("split failed: %v", e.Err) }
func (e *SplitError) Unwrap() error { return e.Err }
