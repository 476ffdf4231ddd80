package pipeline

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/uuid"

	"github.com/statuspress/statuspress/internal/ffmpeg"
	"github.com/statuspress/statuspress/internal/naming"
	"github.com/statuspress/statuspress/internal/photo"
)

// Hard ceilings for video-to-animation conversion. Caller input never
// raises them.
const (
	maxAnimationSeconds = 6.0
	maxAnimationFPS     = 15
)

// ClampAnimation bounds a requested animation duration and frame rate to
// the hard ceilings, substituting the ceilings for non-positive input.
func ClampAnimation(durationSec float64, fps int) (float64, int) {
	if durationSec <= 0 || durationSec > maxAnimationSeconds {
		durationSec = maxAnimationSeconds
	}
	if fps <= 0 || fps > maxAnimationFPS {
		fps = maxAnimationFPS
	}
	return durationSec, fps
}

// VideoToAnimation converts the head of a video into a short looping GIF
// using two-stage palette encoding. The palette scratch file is removed on
// every exit path.
func (o *Orchestrator) VideoToAnimation(ctx context.Context, inputPath string) photo.Result {
	fail := func(msg string, err error) photo.Result {
		o.log.Error(msg, "input", inputPath, "error", err)
		return photo.Result{Format: "gif", Message: fmt.Sprintf("%s: %v", msg, err)}
	}

	info, err := os.Stat(inputPath)
	if err != nil {
		return fail("cannot read input", err)
	}
	if _, err := o.prober(ctx, inputPath); err != nil {
		return fail("probe failed", err)
	}

	duration, fps := ClampAnimation(o.cfg.AnimationDuration, o.cfg.AnimationFPS)
	o.log.Info("converting to animation", "duration", duration, "fps", fps)

	palettePath := filepath.Join(os.TempDir(), "statuspress-palette-"+uuid.NewString()+".png")
	defer os.Remove(palettePath) // best effort

	res := o.runner.Run(ctx, ffmpeg.BuildPaletteArgs(inputPath, palettePath, duration, fps, o.cfg.Verbose))
	if err := ffmpeg.WrapExec(ctx, res); err != nil {
		return fail("palette generation failed", err)
	}

	outputPath := naming.Unique(naming.OutputPath(o.cfg.OutputDir, inputPath, "_animation", "gif"))
	res = o.runner.Run(ctx, ffmpeg.BuildAnimationArgs(inputPath, palettePath, outputPath, duration, fps, o.cfg.Verbose))
	if err := ffmpeg.WrapExec(ctx, res); err != nil {
		os.Remove(outputPath) // best effort
		return fail("animation encode failed", err)
	}

	compressed, err := os.Stat(outputPath)
	if err != nil {
		return fail("cannot stat output", err)
	}
	return photo.Result{
		Success:        true,
		OutputPath:     outputPath,
		OriginalSize:   info.Size(),
		CompressedSize: compressed.Size(),
		Ratio:          photo.Ratio(info.Size(), compressed.Size()),
		Format:         "gif",
		Message:        fmt.Sprintf("animation: %.0fs at %d fps", duration, fps),
	}
}
