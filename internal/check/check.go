// Package check provides system diagnostics (--check mode) and pre-pipeline
// dependency validation for ffmpeg, ffprobe, libx264, and AAC.
package check

import (
	"errors"
	"os/exec"
	"strings"

	"github.com/hashicorp/go-hclog"
)

// Sentinel errors returned by CheckDeps when a required tool is missing.
var (
	ErrFfmpegNotFound  = errors.New("ffmpeg not found on PATH")
	ErrFfprobeNotFound = errors.New("ffprobe not found on PATH")
	ErrX264Unusable    = errors.New("libx264 test encode failed")
)

// RunCheck runs the interactive --check flow: prints availability of ffmpeg,
// ffprobe, libx264, the gif palette filters, and the AAC encoder. This is
// informational only; it does not stop on failure.
func RunCheck(log hclog.Logger) {
	log.Info("system check")

	checkBinary(log, "ffmpeg")
	checkBinary(log, "ffprobe")

	if runSilent("ffmpeg", x264TestArgs()...) {
		log.Info("libx264 encoder works")
	} else {
		log.Error("libx264 test encode failed")
	}

	if runSilent("ffmpeg",
		"-hide_banner", "-nostdin", "-loglevel", "error",
		"-f", "lavfi", "-i", "sine=frequency=1000:duration=0.1",
		"-c:a", "aac", "-f", "null", "-",
	) {
		log.Info("aac encoder works")
	} else {
		log.Error("aac encoder test failed")
	}

	if hasFilters("palettegen", "paletteuse") {
		log.Info("palette filters available (animation path)")
	} else {
		log.Warn("palettegen/paletteuse filters missing; animation output unavailable")
	}
}

// CheckDeps is the pre-pipeline validation: ffmpeg and ffprobe must be on
// PATH and libx264 must pass a short test encode. Returns a sentinel error
// on failure.
func CheckDeps() error {
	if _, err := exec.LookPath("ffmpeg"); err != nil {
		return ErrFfmpegNotFound
	}
	if _, err := exec.LookPath("ffprobe"); err != nil {
		return ErrFfprobeNotFound
	}
	if !runSilent("ffmpeg", x264TestArgs()...) {
		return ErrX264Unusable
	}
	return nil
}

func checkBinary(log hclog.Logger, name string) {
	if _, err := exec.LookPath(name); err != nil {
		log.Error("binary not found", "name", name)
		return
	}
	out, err := exec.Command(name, "-version").Output()
	if err != nil {
		log.Warn("found but -version failed", "name", name, "error", err)
		return
	}
	firstLine := strings.TrimSpace(string(out))
	if idx := strings.Index(firstLine, "\n"); idx > 0 {
		firstLine = firstLine[:idx]
	}
	log.Info("found", "name", name, "version", firstLine)
}

func hasFilters(names ...string) bool {
	out, err := exec.Command("ffmpeg", "-hide_banner", "-filters").Output()
	if err != nil {
		return false
	}
	s := string(out)
	for _, n := range names {
		if !strings.Contains(s, n) {
			return false
		}
	}
	return true
}

// x264TestArgs returns the ffmpeg arguments for a minimal libx264 test encode.
func x264TestArgs() []string {
	return []string{
		"-hide_banner", "-nostdin", "-loglevel", "error",
		"-f", "lavfi", "-i", "color=black:s=256x256:d=0.1",
		"-c:v", "libx264",
		"-f", "null", "-",
	}
}

// runSilent runs a command and returns true if it exits with status 0.
func runSilent(name string, args ...string) bool {
	cmd := exec.Command(name, args...)
	cmd.Stdout = nil
	cmd.Stderr = nil
	return cmd.Run() == nil
}
