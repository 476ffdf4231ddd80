// Package config holds runtime configuration: defaults, CLI flag parsing,
// optional YAML config file loading, and validation.
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// --- Enum types for validated string fields ---

// Algorithm selects the video compression strategy.
type Algorithm string

const (
	AlgoQuality  Algorithm = "quality"  // Max quality: 1080p cap, one-pass CRF, content-aware tuning.
	AlgoBalanced Algorithm = "balanced" // Size priority: 720p cap, two-pass target bitrate.
	AlgoCompact  Algorithm = "compact"  // Max compression: 640p cap, aggressive one-pass CRF, mono audio.
)

// PhotoAlgorithm selects the still-image compression strategy.
type PhotoAlgorithm string

const (
	PhotoClarity  PhotoAlgorithm = "clarity"  // 1280px cap, quality 92, 4:4:4 chroma.
	PhotoBalanced PhotoAlgorithm = "balanced" // 1080px cap, content-adaptive quality, 4:2:2 chroma.
	PhotoQuick    PhotoAlgorithm = "quick"    // 720px cap, quality 70, 4:2:0 chroma.
)

// PhotoFormat is the still-image output format. Animated sources take the
// GIF path regardless of this setting.
type PhotoFormat string

const (
	FormatJPG  PhotoFormat = "jpg"
	FormatPNG  PhotoFormat = "png"
	FormatWebP PhotoFormat = "webp"
)

// Mode selects which pipeline processes the input.
type Mode string

const (
	ModeAuto      Mode = "auto"      // Pick by file extension (default).
	ModeVideo     Mode = "video"     // Force the video pipeline.
	ModePhoto     Mode = "photo"     // Force the photo pipeline.
	ModeAnimation Mode = "animation" // Convert a video clip to a looping animation.
)

// ValidSplitDurations are the accepted --split values in seconds.
// 0 disables splitting.
var ValidSplitDurations = []int{0, 30, 60, 90}

// NeedsSplitHint is the duration above which the CLI suggests splitting
// (WhatsApp status caps a single post at 30 seconds).
const NeedsSplitHint = 30.0

// Config holds all runtime settings. It is populated by [DefaultConfig],
// optionally overlaid by [LoadFile], and then mutated by [ParseFlags] before
// being passed (by pointer) to packages that need it.
type Config struct {
	// Paths (set from positional args).
	InputPath string
	OutputDir string

	// Pipeline selection.
	Mode Mode // Default: "auto".

	// Video settings.
	Algorithm     Algorithm // Default: "balanced".
	SplitDuration int       // Seconds per segment; 0 = no split. Default: 0.
	TargetSizeMB  float64   // 0 = per-algorithm default (15.5 MB, 12 MB for compact).

	// Photo settings.
	PhotoAlgorithm PhotoAlgorithm // Default: "balanced".
	PhotoFormat    PhotoFormat    // Default: "jpg".

	// Animation settings (video -> looping GIF).
	AnimationDuration float64 // Requested seconds; clamped to 6. Default: 6.
	AnimationFPS      int     // Requested fps; clamped to 15. Default: 12.

	// Classifier settings.
	SampleStride int // Analyze every Nth frame. Default: 15 (~1 sample per 0.5s at 30fps).

	// Execution settings.
	Workers     int           // Parallel part encodes; 0 = NumCPU. Default: 0.
	PartTimeout time.Duration // Per-part encode timeout. Default: 15m.

	// Display and logging.
	Verbose   bool
	LogFile   string // Optional log file path (disables color).
	CheckOnly bool   // Run --check diagnostics and exit.

	// Optional YAML config file (loaded before flags are applied).
	ConfigFile string
}

// DefaultConfig returns a Config with all defaults. Used as the base before
// [LoadFile] and [ParseFlags] apply overrides.
func DefaultConfig() Config {
	return Config{
		Mode:              ModeAuto,
		Algorithm:         AlgoBalanced,
		SplitDuration:     0,
		TargetSizeMB:      0,
		PhotoAlgorithm:    PhotoBalanced,
		PhotoFormat:       FormatJPG,
		AnimationDuration: 6.0,
		AnimationFPS:      12,
		SampleStride:      15,
		Workers:           0,
		PartTimeout:       15 * time.Minute,
	}
}

// Validate checks enum fields and numeric ranges. When not in CheckOnly mode
// it also requires the input path and output directory.
func (c *Config) Validate() error {
	switch c.Mode {
	case ModeAuto, ModeVideo, ModePhoto, ModeAnimation:
	default:
		return fmt.Errorf("invalid mode %q (use auto, video, photo, or animation)", c.Mode)
	}

	switch c.Algorithm {
	case AlgoQuality, AlgoBalanced, AlgoCompact:
	default:
		return fmt.Errorf("invalid algorithm %q (use quality, balanced, or compact)", c.Algorithm)
	}

	switch c.PhotoAlgorithm {
	case PhotoClarity, PhotoBalanced, PhotoQuick:
	default:
		return fmt.Errorf("invalid photo algorithm %q (use clarity, balanced, or quick)", c.PhotoAlgorithm)
	}

	c.PhotoFormat = PhotoFormat(NormalizeFormat(string(c.PhotoFormat)))
	switch c.PhotoFormat {
	case FormatJPG, FormatPNG, FormatWebP:
	default:
		return fmt.Errorf("invalid photo format %q (use jpg, png, or webp)", c.PhotoFormat)
	}

	if !validSplit(c.SplitDuration) {
		return fmt.Errorf("invalid split duration %d (use one of %v)", c.SplitDuration, ValidSplitDurations)
	}

	if c.TargetSizeMB < 0 {
		return errors.New("target size must not be negative")
	}
	if c.AnimationDuration <= 0 {
		return errors.New("animation duration must be positive")
	}
	if c.AnimationFPS <= 0 {
		return errors.New("animation fps must be positive")
	}
	if c.SampleStride <= 0 {
		return errors.New("sample stride must be positive")
	}
	if c.Workers < 0 {
		return errors.New("workers must not be negative")
	}
	if c.PartTimeout <= 0 {
		return errors.New("part timeout must be positive")
	}

	if c.CheckOnly {
		return nil
	}
	if c.InputPath == "" || c.OutputDir == "" {
		return errors.New("need exactly input_file and output_dir")
	}
	return nil
}

func validSplit(d int) bool {
	for _, v := range ValidSplitDurations {
		if d == v {
			return true
		}
	}
	return false
}

// NormalizeFormat canonicalizes a user-supplied image format name:
// lowercase, no leading dot, "jpeg" folded to "jpg".
func NormalizeFormat(format string) string {
	f := strings.ToLower(strings.TrimPrefix(strings.TrimSpace(format), "."))
	if f == "jpeg" {
		return "jpg"
	}
	return f
}
