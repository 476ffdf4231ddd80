package planner

import (
	"strings"

	"github.com/statuspress/statuspress/internal/config"
)

// RateControl selects how the encoder is driven.
type RateControl int

const (
	// RateConstantQuality fixes a CRF dial and lets size float (with an
	// optional maxrate/bufsize ceiling).
	RateConstantQuality RateControl = iota
	// RateTargetBitrate fixes the output bitrate and lets quality float.
	RateTargetBitrate
)

// Filter is one named ffmpeg video filter with its argument string.
type Filter struct {
	Name string
	Args string
}

func (f Filter) String() string {
	if f.Args == "" {
		return f.Name
	}
	return f.Name + "=" + f.Args
}

// JoinFilters renders a filter chain as a comma-joined -vf value.
func JoinFilters(filters []Filter) string {
	parts := make([]string, len(filters))
	for i, f := range filters {
		parts[i] = f.String()
	}
	return strings.Join(parts, ",")
}

// AudioPlan describes the audio policy for one encode. Channels 0 keeps the
// source channel count.
type AudioPlan struct {
	Codec       string
	BitrateKbps int
	SampleRate  int
	Channels    int
	Coder       string // aac_coder; empty = encoder default
}

// EncodePlan holds the fully resolved knobs for one encode invocation. It is
// produced by BuildPlan and consumed by the ffmpeg package to construct
// command arguments. Immutable once built.
type EncodePlan struct {
	Algorithm config.Algorithm

	// Resolution (both always even).
	TargetWidth  int
	TargetHeight int

	// Rate control.
	Rate       RateControl
	CRF        int
	BitrateBps int // target bitrate (primary for RateTargetBitrate, ceiling basis otherwise)
	MaxrateBps int // 0 = no ceiling
	BufsizeBps int

	TwoPass bool

	// Encoder tuning.
	Preset  string
	Profile string
	Level   string
	PixFmt  string
	Tune    string // empty = none

	X264Params []string
	// X264FirstPass replaces X264Params during the analysis pass of a
	// two-pass encode.
	X264FirstPass []string

	// Filter chains.
	Filters []Filter
	// FirstPassFilters replaces Filters during the analysis pass.
	FirstPassFilters []Filter

	// ColorBT709 forces bt709 colorspace/primaries/transfer tags on output.
	ColorBT709 bool

	// Audio; nil disables audio output.
	Audio *AudioPlan

	// Note is a human-readable summary of how quality was chosen.
	Note string
}
