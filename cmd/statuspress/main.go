// Command statuspress compresses videos, photos, and animations for
// messenger status sharing. It parses flags, validates config, and routes
// the input through the matching pipeline.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/hashicorp/go-hclog"

	"github.com/statuspress/statuspress/internal/check"
	"github.com/statuspress/statuspress/internal/config"
	"github.com/statuspress/statuspress/internal/display"
	"github.com/statuspress/statuspress/internal/logging"
	"github.com/statuspress/statuspress/internal/photo"
	"github.com/statuspress/statuspress/internal/pipeline"
	"github.com/statuspress/statuspress/internal/probe"
)

var videoExts = map[string]bool{
	".mp4": true, ".mov": true, ".avi": true,
	".mkv": true, ".webm": true, ".3gp": true,
}

var photoExts = map[string]bool{
	".jpg": true, ".jpeg": true, ".png": true,
	".webp": true, ".bmp": true, ".gif": true,
}

func main() {
	cfg := config.DefaultConfig()
	if err := config.ParseFlags(&cfg, os.Args[1:]); err != nil {
		fmt.Fprintf(os.Stderr, "statuspress: %v\n", err)
		os.Exit(1)
	}
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "statuspress: %v\n", err)
		os.Exit(1)
	}

	log, closer, err := logging.New(&cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "statuspress: %v\n", err)
		os.Exit(1)
	}
	if closer != nil {
		defer closer.Close()
	}

	if cfg.CheckOnly {
		check.RunCheck(log)
		return
	}

	if _, err := os.Stat(cfg.InputPath); err != nil {
		log.Error("input not found", "path", cfg.InputPath)
		os.Exit(1)
	}
	if err := os.MkdirAll(cfg.OutputDir, 0o755); err != nil {
		log.Error("cannot create output directory", "path", cfg.OutputDir, "error", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	mode := resolveMode(&cfg, log)
	orch := pipeline.NewOrchestrator(&cfg, nil, nil, log)

	switch mode {
	case config.ModeVideo:
		if err := check.CheckDeps(); err != nil {
			log.Error("dependency check failed", "error", err)
			os.Exit(1)
		}
		outcome := orch.CompressVideo(ctx, cfg.InputPath)
		printOutcome(log, outcome)
		if !outcome.Success {
			os.Exit(1)
		}
	case config.ModeAnimation:
		if err := check.CheckDeps(); err != nil {
			log.Error("dependency check failed", "error", err)
			os.Exit(1)
		}
		result := orch.VideoToAnimation(ctx, cfg.InputPath)
		printPhotoResult(log, result)
		if !result.Success {
			os.Exit(1)
		}
	default:
		result := orch.CompressPhoto(cfg.InputPath)
		printPhotoResult(log, result)
		if !result.Success {
			os.Exit(1)
		}
	}
}

// resolveMode maps auto mode onto a concrete pipeline by extension, with a
// probe fallback for extensions in neither table.
func resolveMode(cfg *config.Config, log hclog.Logger) config.Mode {
	if cfg.Mode != config.ModeAuto {
		return cfg.Mode
	}
	ext := strings.ToLower(filepath.Ext(cfg.InputPath))
	switch {
	case videoExts[ext]:
		return config.ModeVideo
	case photoExts[ext]:
		return config.ModePhoto
	}
	if _, err := probe.ProbeVideo(context.Background(), cfg.InputPath); err == nil {
		return config.ModeVideo
	}
	log.Debug("unknown extension, assuming photo", "ext", ext)
	return config.ModePhoto
}

func printOutcome(log hclog.Logger, out *pipeline.Outcome) {
	for _, p := range out.Parts {
		if p.Success {
			log.Info("part done",
				"part", p.Part,
				"output", p.OutputPath,
				"size", display.FormatBytes(p.CompressedSize),
				"saved", display.FormatRatio(p.Ratio),
			)
		} else {
			log.Error("part failed", "part", p.Part, "error", p.Error)
		}
	}
	if out.Success {
		log.Info(out.Message, "algorithm", out.Algorithm)
	} else {
		log.Error(out.Message, "algorithm", out.Algorithm)
	}
}

func printPhotoResult(log hclog.Logger, r photo.Result) {
	if !r.Success {
		log.Error(r.Message)
		return
	}
	log.Info(r.Message,
		"output", r.OutputPath,
		"size", display.FormatBytes(r.CompressedSize),
		"saved", display.FormatRatio(r.Ratio),
	)
}
