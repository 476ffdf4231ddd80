package ffmpeg

import (
	"context"
	"os"
	"path/filepath"

	"github.com/google/uuid"

	"github.com/statuspress/statuspress/internal/planner"
)

// passLogSuffixes are the artifacts libx264 leaves behind a -passlogfile
// prefix. All are removed whether the encode succeeds or not.
var passLogSuffixes = []string{".log", ".log.mbtree", "-0.log", "-0.log.mbtree"}

// RunTwoPass executes the analysis pass then the encode pass, threading a
// unique pass-log prefix between them. The log artifacts are cleaned up on
// every exit path.
func RunTwoPass(ctx context.Context, runner Runner, plan *planner.EncodePlan, inputPath, outputPath string, verbose bool) error {
	logPrefix := filepath.Join(os.TempDir(), "statuspress-pass-"+uuid.NewString())
	defer cleanupPassLogs(logPrefix)

	res := runner.Run(ctx, BuildPassArgs(plan, inputPath, outputPath, logPrefix, 1, verbose))
	if err := WrapExec(ctx, res); err != nil {
		return err
	}

	res = runner.Run(ctx, BuildPassArgs(plan, inputPath, outputPath, logPrefix, 2, verbose))
	return WrapExec(ctx, res)
}

func cleanupPassLogs(prefix string) {
	for _, suffix := range passLogSuffixes {
		os.Remove(prefix + suffix) // best effort
	}
}
