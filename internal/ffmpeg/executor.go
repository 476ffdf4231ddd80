package ffmpeg

import (
	"bytes"
	"context"
	"io"
	"os"
	"os/exec"
)

// ExecResult holds the outcome of a single ffmpeg invocation.
type ExecResult struct {
	Stderr string
	Err    error
}

// Runner executes one ffmpeg command. The orchestrator depends on this
// interface so tests can substitute a fake engine; CLIRunner is the real
// thing. args[0] is the binary name.
type Runner interface {
	Run(ctx context.Context, args []string) ExecResult
}

// CLIRunner executes ffmpeg as a child process. Cancellation kills the
// process through the context. When Tee is set, stderr streams to os.Stderr
// in real time as well as into the captured buffer.
type CLIRunner struct {
	Tee bool
}

func (r CLIRunner) Run(ctx context.Context, args []string) ExecResult {
	cmd := exec.CommandContext(ctx, args[0], args[1:]...)

	var stderrBuf bytes.Buffer
	if r.Tee {
		cmd.Stderr = io.MultiWriter(&stderrBuf, os.Stderr)
	} else {
		cmd.Stderr = &stderrBuf
	}

	err := cmd.Run()
	return ExecResult{
		Stderr: stderrBuf.String(),
		Err:    err,
	}
}
