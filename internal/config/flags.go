package config

// This file implements CLI flag parsing and help text. A --config file (YAML)
// is loaded before the remaining flags are applied, so flags win over file
// values and file values win over defaults.

import (
	"flag"
	"fmt"
	"os"
)

// version is shown in --version and help; override at build time with
// -ldflags "-X .../internal/config.version=...".
var version = "1.0.0-dev"

// ParseFlags parses args (without the program name) into cfg. On --help or
// --version it prints and exits. On error it returns non-nil.
func ParseFlags(cfg *Config, args []string) error {
	fs := flag.NewFlagSet("statuspress", flag.ContinueOnError)
	fs.Usage = func() { printUsage(fs) }

	var (
		showVersion = fs.Bool("version", false, "print version and exit")
		mode        = fs.String("mode", string(cfg.Mode), "pipeline: auto, video, photo, or animation")
		algo        = fs.String("algorithm", string(cfg.Algorithm), "video algorithm: quality, balanced, or compact")
		photoAlgo   = fs.String("photo-algorithm", string(cfg.PhotoAlgorithm), "photo algorithm: clarity, balanced, or quick")
		photoFormat = fs.String("format", string(cfg.PhotoFormat), "photo output format: jpg, png, or webp")
		split       = fs.Int("split", cfg.SplitDuration, "split video into segments of N seconds (0, 30, 60, or 90)")
		targetSize  = fs.Float64("target-size", cfg.TargetSizeMB, "target output size in MB (0 = algorithm default)")
		duration    = fs.Float64("duration", cfg.AnimationDuration, "animation duration in seconds (capped at 6)")
		fps         = fs.Int("fps", cfg.AnimationFPS, "animation frame rate (capped at 15)")
		stride      = fs.Int("sample-stride", cfg.SampleStride, "content analysis samples every Nth frame")
		workers     = fs.Int("workers", cfg.Workers, "parallel segment encodes (0 = CPU count)")
		timeout     = fs.Duration("part-timeout", cfg.PartTimeout, "per-part encode timeout")
		verbose     = fs.Bool("verbose", cfg.Verbose, "enable debug logging")
		logFile     = fs.String("log-file", cfg.LogFile, "append logs to file")
		checkOnly   = fs.Bool("check", cfg.CheckOnly, "run system diagnostics and exit")
		configFile  = fs.String("config", cfg.ConfigFile, "YAML config file")
	)

	if err := fs.Parse(args); err != nil {
		if err == flag.ErrHelp {
			os.Exit(0)
		}
		return err
	}

	if *showVersion {
		fmt.Printf("statuspress %s\n", version)
		os.Exit(0)
	}

	// Config file values land first so explicit flags below override them.
	if *configFile != "" {
		cfg.ConfigFile = *configFile
		if err := LoadFile(cfg, *configFile); err != nil {
			return err
		}
	}

	applied := map[string]bool{}
	fs.Visit(func(f *flag.Flag) { applied[f.Name] = true })

	setStr := func(name string, dst *string, v string) {
		if applied[name] {
			*dst = v
		}
	}
	setStr("mode", (*string)(&cfg.Mode), *mode)
	setStr("algorithm", (*string)(&cfg.Algorithm), *algo)
	setStr("photo-algorithm", (*string)(&cfg.PhotoAlgorithm), *photoAlgo)
	setStr("format", (*string)(&cfg.PhotoFormat), *photoFormat)
	if applied["split"] {
		cfg.SplitDuration = *split
	}
	if applied["target-size"] {
		cfg.TargetSizeMB = *targetSize
	}
	if applied["duration"] {
		cfg.AnimationDuration = *duration
	}
	if applied["fps"] {
		cfg.AnimationFPS = *fps
	}
	if applied["sample-stride"] {
		cfg.SampleStride = *stride
	}
	if applied["workers"] {
		cfg.Workers = *workers
	}
	if applied["part-timeout"] {
		cfg.PartTimeout = *timeout
	}
	if applied["verbose"] {
		cfg.Verbose = *verbose
	}
	if applied["log-file"] {
		cfg.LogFile = *logFile
	}
	if applied["check"] {
		cfg.CheckOnly = *checkOnly
	}

	// Positional args: input file and output directory.
	rest := fs.Args()
	switch len(rest) {
	case 0:
	case 1:
		cfg.InputPath = rest[0]
	case 2:
		cfg.InputPath = rest[0]
		cfg.OutputDir = rest[1]
	default:
		return fmt.Errorf("unexpected argument %q", rest[2])
	}

	return nil
}

func printUsage(fs *flag.FlagSet) {
	fmt.Fprintf(os.Stderr, `statuspress %s - WhatsApp-optimized media compression

Usage:
  statuspress [flags] input_file output_dir

Video algorithms:
  quality    up to 1080p, one-pass constant quality, content-aware tuning
  balanced   720p, two-pass target bitrate (default)
  compact    640p, maximum compression, mono audio

Photo algorithms:
  clarity    1280px, quality 92
  balanced   1080px, content-adaptive quality (default)
  quick      720px, quality 70

Flags:
`, version)
	fs.PrintDefaults()
	fmt.Fprintf(os.Stderr, "\nExample:\n  statuspress --algorithm quality --split 30 clip.mp4 ./out\n")
}
