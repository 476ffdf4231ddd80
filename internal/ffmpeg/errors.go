package ffmpeg

import (
	"context"
	"errors"
	"fmt"
)

// EncodeError is a failed engine invocation. It carries the engine's stderr
// for diagnostics and a Timeout flag so callers can distinguish a retryable
// deadline kill from a content or codec problem.
type EncodeError struct {
	Stderr  string
	Timeout bool
	Err     error
}

func (e *EncodeError) Error() string {
	if e.Timeout {
		return fmt.Sprintf("encode timed out: %v", e.Err)
	}
	if e.Stderr != "" {
		return fmt.Sprintf("encode failed: %v: %s", e.Err, lastLine(e.Stderr))
	}
	return fmt.Sprintf("encode failed: %v", e.Err)
}

func (e *EncodeError) Unwrap() error { return e.Err }

// WrapExec converts a non-nil execution result into an *EncodeError,
// classifying context deadline kills as timeouts. Returns nil on success.
func WrapExec(ctx context.Context, res ExecResult) error {
	if res.Err == nil {
		return nil
	}
	timeout := errors.Is(ctx.Err(), context.DeadlineExceeded)
	return &EncodeError{Stderr: res.Stderr, Timeout: timeout, Err: res.Err}
}

// lastLine trims engine stderr down to its final non-empty line, which is
// where ffmpeg puts the actionable message.
func lastLine(s string) string {
	end := len(s)
	for end > 0 && (s[end-1] == '\n' || s[end-1] == '\r') {
		end--
	}
	start := end
	for start > 0 && s[start-1] != '\n' {
		start--
	}
	return s[start:end]
}
