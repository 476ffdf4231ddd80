package classify

import (
	"context"
	"fmt"
	"image"
	"os"
	"os/exec"
	"path/filepath"
	"sort"
	"strconv"

	_ "image/jpeg"
)

// sampleFrames extracts every Nth frame of the video at path into a scratch
// directory via ffmpeg and decodes them in order. The scratch directory is
// removed before returning. fps is the source frame rate; stride the
// sampling interval in frames.
func sampleFrames(ctx context.Context, path string, stride int, fps float64) ([]image.Image, error) {
	if fps <= 0 {
		fps = 30
	}
	sampleRate := fps / float64(stride)
	if sampleRate <= 0 {
		sampleRate = 2
	}

	dir, err := os.MkdirTemp("", "statuspress-frames-")
	if err != nil {
		return nil, fmt.Errorf("create frame scratch dir: %w", err)
	}
	defer os.RemoveAll(dir)

	pattern := filepath.Join(dir, "frame_%05d.jpg")
	cmd := exec.CommandContext(ctx, "ffmpeg",
		"-hide_banner", "-nostdin", "-y",
		"-loglevel", "error",
		"-i", path,
		"-vf", "fps="+strconv.FormatFloat(sampleRate, 'f', 4, 64),
		"-f", "image2",
		pattern,
	)
	if err := cmd.Run(); err != nil {
		return nil, fmt.Errorf("sample frames from %q: %w", path, err)
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("read frame scratch dir: %w", err)
	}
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		if !e.IsDir() {
			names = append(names, e.Name())
		}
	}
	sort.Strings(names)

	frames := make([]image.Image, 0, len(names))
	for _, name := range names {
		img, err := decodeFrame(filepath.Join(dir, name))
		if err != nil {
			continue // a single bad frame is not worth failing the analysis
		}
		frames = append(frames, img)
	}
	return frames, nil
}

func decodeFrame(path string) (image.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	img, _, err := image.Decode(f)
	return img, err
}
