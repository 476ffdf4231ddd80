package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func validConfig() Config {
	cfg := DefaultConfig()
	cfg.InputPath = "clip.mp4"
	cfg.OutputDir = "out"
	return cfg
}

func TestDefaultConfigIsInvalidWithoutPaths(t *testing.T) {
	cfg := DefaultConfig()
	if err := cfg.Validate(); err == nil {
		t.Fatal("Validate accepted config without paths")
	}
}

func TestCheckOnlySkipsPathRequirement(t *testing.T) {
	cfg := DefaultConfig()
	cfg.CheckOnly = true
	if err := cfg.Validate(); err != nil {
		t.Fatalf("Validate: %v", err)
	}
}

func TestValidateEnums(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"bad mode", func(c *Config) { c.Mode = "turbo" }},
		{"bad algorithm", func(c *Config) { c.Algorithm = "ultra" }},
		{"bad photo algorithm", func(c *Config) { c.PhotoAlgorithm = "crispy" }},
		{"bad photo format", func(c *Config) { c.PhotoFormat = "tiff" }},
		{"bad split", func(c *Config) { c.SplitDuration = 45 }},
		{"negative target size", func(c *Config) { c.TargetSizeMB = -1 }},
		{"zero animation duration", func(c *Config) { c.AnimationDuration = 0 }},
		{"zero fps", func(c *Config) { c.AnimationFPS = 0 }},
		{"zero stride", func(c *Config) { c.SampleStride = 0 }},
		{"negative workers", func(c *Config) { c.Workers = -1 }},
		{"zero timeout", func(c *Config) { c.PartTimeout = 0 }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(&cfg)
			if err := cfg.Validate(); err == nil {
				t.Error("Validate accepted invalid config")
			}
		})
	}
}

func TestValidateSplitDurations(t *testing.T) {
	for _, d := range ValidSplitDurations {
		cfg := validConfig()
		cfg.SplitDuration = d
		if err := cfg.Validate(); err != nil {
			t.Errorf("split %d rejected: %v", d, err)
		}
	}
}

func TestValidateNormalizesFormat(t *testing.T) {
	cfg := validConfig()
	cfg.PhotoFormat = "JPEG"
	if err := cfg.Validate(); err != nil {
		t.Fatalf("Validate: %v", err)
	}
	if cfg.PhotoFormat != FormatJPG {
		t.Errorf("PhotoFormat = %q, want jpg", cfg.PhotoFormat)
	}
}

func TestNormalizeFormat(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"jpeg", "jpg"},
		{"JPEG", "jpg"},
		{".jpg", "jpg"},
		{" png ", "png"},
		{"WebP", "webp"},
	}
	for _, tt := range tests {
		if got := NormalizeFormat(tt.in); got != tt.want {
			t.Errorf("NormalizeFormat(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestParseFlags(t *testing.T) {
	cfg := DefaultConfig()
	err := ParseFlags(&cfg, []string{
		"--algorithm", "quality",
		"--split", "30",
		"--workers", "4",
		"--part-timeout", "5m",
		"--verbose",
		"clip.mp4", "out",
	})
	if err != nil {
		t.Fatalf("ParseFlags: %v", err)
	}
	if cfg.Algorithm != AlgoQuality {
		t.Errorf("Algorithm = %q", cfg.Algorithm)
	}
	if cfg.SplitDuration != 30 {
		t.Errorf("SplitDuration = %d", cfg.SplitDuration)
	}
	if cfg.Workers != 4 {
		t.Errorf("Workers = %d", cfg.Workers)
	}
	if cfg.PartTimeout != 5*time.Minute {
		t.Errorf("PartTimeout = %v", cfg.PartTimeout)
	}
	if !cfg.Verbose {
		t.Error("Verbose not set")
	}
	if cfg.InputPath != "clip.mp4" || cfg.OutputDir != "out" {
		t.Errorf("paths = %q, %q", cfg.InputPath, cfg.OutputDir)
	}
}

func TestParseFlagsRejectsExtraArgs(t *testing.T) {
	cfg := DefaultConfig()
	if err := ParseFlags(&cfg, []string{"a.mp4", "out", "extra"}); err == nil {
		t.Fatal("ParseFlags accepted three positional args")
	}
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "statuspress.yaml")
	data := `
algorithm: compact
split_duration: 60
part_timeout: 10m
verbose: true
`
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg := DefaultConfig()
	if err := LoadFile(&cfg, path); err != nil {
		t.Fatalf("LoadFile: %v", err)
	}
	if cfg.Algorithm != AlgoCompact {
		t.Errorf("Algorithm = %q", cfg.Algorithm)
	}
	if cfg.SplitDuration != 60 {
		t.Errorf("SplitDuration = %d", cfg.SplitDuration)
	}
	if cfg.PartTimeout != 10*time.Minute {
		t.Errorf("PartTimeout = %v", cfg.PartTimeout)
	}
	if !cfg.Verbose {
		t.Error("Verbose not set")
	}
	// Untouched fields keep their defaults.
	if cfg.PhotoAlgorithm != PhotoBalanced {
		t.Errorf("PhotoAlgorithm = %q", cfg.PhotoAlgorithm)
	}
}

func TestLoadFileRejectsUnknownKeys(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	if err := os.WriteFile(path, []byte("algortihm: quality\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	cfg := DefaultConfig()
	if err := LoadFile(&cfg, path); err == nil {
		t.Fatal("LoadFile accepted a misspelled key")
	}
}

func TestFlagsOverrideFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "statuspress.yaml")
	if err := os.WriteFile(path, []byte("algorithm: compact\nsplit_duration: 60\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg := DefaultConfig()
	err := ParseFlags(&cfg, []string{"--config", path, "--algorithm", "quality", "clip.mp4", "out"})
	if err != nil {
		t.Fatalf("ParseFlags: %v", err)
	}
	if cfg.Algorithm != AlgoQuality {
		t.Errorf("Algorithm = %q, flag should beat file", cfg.Algorithm)
	}
	if cfg.SplitDuration != 60 {
		t.Errorf("SplitDuration = %d, file should beat default", cfg.SplitDuration)
	}
}
