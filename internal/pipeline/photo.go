package pipeline

import (
	"path/filepath"
	"strings"

	"github.com/statuspress/statuspress/internal/photo"
	"github.com/statuspress/statuspress/internal/probe"
)

// CompressPhoto routes a still or animated image to the right pipeline.
// Animated sources take the GIF optimizer regardless of the requested
// output format.
func (o *Orchestrator) CompressPhoto(inputPath string) photo.Result {
	if isGIF(inputPath) {
		if meta, err := probe.ProbeImage(inputPath); err == nil && meta.Animated {
			return photo.OptimizeAnimated(inputPath, o.cfg.OutputDir, o.cfg.PhotoAlgorithm, o.log)
		}
	}
	return photo.Compress(inputPath, o.cfg.OutputDir, o.cfg.PhotoAlgorithm, o.cfg.PhotoFormat, o.log)
}

func isGIF(path string) bool {
	return strings.EqualFold(filepath.Ext(path), ".gif")
}
