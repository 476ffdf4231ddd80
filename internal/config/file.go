package config

import (
	"bytes"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// fileConfig mirrors the subset of Config that can be set from a YAML file.
// Pointer fields distinguish "absent" from zero values.
type fileConfig struct {
	Mode              *string  `yaml:"mode"`
	Algorithm         *string  `yaml:"algorithm"`
	PhotoAlgorithm    *string  `yaml:"photo_algorithm"`
	PhotoFormat       *string  `yaml:"photo_format"`
	SplitDuration     *int     `yaml:"split_duration"`
	TargetSizeMB      *float64 `yaml:"target_size_mb"`
	AnimationDuration *float64 `yaml:"animation_duration"`
	AnimationFPS      *int     `yaml:"animation_fps"`
	SampleStride      *int     `yaml:"sample_stride"`
	Workers           *int     `yaml:"workers"`
	PartTimeout       *string  `yaml:"part_timeout"`
	Verbose           *bool    `yaml:"verbose"`
	LogFile           *string  `yaml:"log_file"`
}

// LoadFile overlays cfg with values from the YAML file at path.
// Unknown keys are rejected so typos surface instead of being ignored.
func LoadFile(cfg *Config, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file: %w", err)
	}

	var fc fileConfig
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&fc); err != nil {
		return fmt.Errorf("parse config file %s: %w", path, err)
	}

	if fc.Mode != nil {
		cfg.Mode = Mode(*fc.Mode)
	}
	if fc.Algorithm != nil {
		cfg.Algorithm = Algorithm(*fc.Algorithm)
	}
	if fc.PhotoAlgorithm != nil {
		cfg.PhotoAlgorithm = PhotoAlgorithm(*fc.PhotoAlgorithm)
	}
	if fc.PhotoFormat != nil {
		cfg.PhotoFormat = PhotoFormat(*fc.PhotoFormat)
	}
	if fc.SplitDuration != nil {
		cfg.SplitDuration = *fc.SplitDuration
	}
	if fc.TargetSizeMB != nil {
		cfg.TargetSizeMB = *fc.TargetSizeMB
	}
	if fc.AnimationDuration != nil {
		cfg.AnimationDuration = *fc.AnimationDuration
	}
	if fc.AnimationFPS != nil {
		cfg.AnimationFPS = *fc.AnimationFPS
	}
	if fc.SampleStride != nil {
		cfg.SampleStride = *fc.SampleStride
	}
	if fc.Workers != nil {
		cfg.Workers = *fc.Workers
	}
	if fc.PartTimeout != nil {
		d, err := time.ParseDuration(*fc.PartTimeout)
		if err != nil {
			return fmt.Errorf("config file part_timeout: %w", err)
		}
		cfg.PartTimeout = d
	}
	if fc.Verbose != nil {
		cfg.Verbose = *fc.Verbose
	}
	if fc.LogFile != nil {
		cfg.LogFile = *fc.LogFile
	}
	return nil
}
