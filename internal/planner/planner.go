// Package planner maps probed metadata, the chosen algorithm, and an
// optional content profile onto a concrete EncodePlan. Planning is pure:
// no IO, no process execution, same inputs always yield the same plan.
package planner

import (
	"fmt"

	"github.com/statuspress/statuspress/internal/classify"
	"github.com/statuspress/statuspress/internal/config"
	"github.com/statuspress/statuspress/internal/probe"
)

// Per-algorithm resolution caps (long side, pixels).
const (
	maxDimQuality  = 1080
	maxDimBalanced = 720
	maxDimCompact  = 640
)

// BuildPlan resolves every encode knob for one video. profile may be the
// neutral profile; untrusted classifications fall back to duration
// heuristics. targetSizeMB <= 0 selects the algorithm default.
func BuildPlan(meta *probe.VideoMetadata, algo config.Algorithm, profile classify.ContentProfile, targetSizeMB float64) (*EncodePlan, error) {
	if meta == nil {
		return nil, fmt.Errorf("plan %s: nil metadata", algo)
	}
	if targetSizeMB <= 0 {
		targetSizeMB = DefaultTargetSizeMB(algo)
	}

	switch algo {
	case config.AlgoQuality:
		return buildQualityPlan(meta, profile, targetSizeMB), nil
	case config.AlgoBalanced:
		return buildBalancedPlan(meta, targetSizeMB), nil
	case config.AlgoCompact:
		return buildCompactPlan(meta, targetSizeMB), nil
	default:
		return nil, fmt.Errorf("unknown algorithm %q", algo)
	}
}

// buildQualityPlan is the quality-priority tier: 1080p cap, single-pass CRF
// with a bitrate ceiling, content-aware x264 tuning and filtering.
func buildQualityPlan(meta *probe.VideoMetadata, profile classify.ContentProfile, targetSizeMB float64) *EncodePlan {
	w, h := FitResolution(meta.Width, meta.Height, maxDimQuality)

	var crf int
	var note string
	tuning := tuningFor(classify.General)
	if profile.Trusted() {
		crf = adjustForDuration(profile.RecommendedCRF, meta.Duration)
		tuning = tuningFor(profile.Class)
		note = fmt.Sprintf("content-aware: %s, crf %d", profile.Class, crf)
	} else {
		crf = durationCRF(meta.Duration)
		note = fmt.Sprintf("duration-based: crf %d", crf)
	}

	// The CRF dial is primary; maxrate/bufsize cap the worst case so the
	// output still fits the size budget.
	target := TargetBitrate(targetSizeMB, meta.Duration, 128)
	if profile.Trusted() && profile.BitrateMult > 0 {
		target = int(float64(target) * profile.BitrateMult)
	}

	filters := scaleFilters(maxDimQuality, maxDimQuality)
	filters = append(filters, denoiseFilter(tuning.denoise)...)
	filters = append(filters, sharpenFilter(tuning.sharpen)...)
	filters = append(filters, fpsFilter(meta.FPS)...)

	tune := ""
	if profile.Trusted() && profile.FaceCoverage > 0.05 {
		tune = "film" // keep skin grain instead of smearing it
	}

	plan := &EncodePlan{
		Algorithm:    config.AlgoQuality,
		TargetWidth:  w,
		TargetHeight: h,
		Rate:         RateConstantQuality,
		CRF:          crf,
		BitrateBps:   target,
		MaxrateBps:   target * 3 / 2,
		BufsizeBps:   target * 3,
		Preset:       tuning.preset,
		Profile:      "high",
		Level:        "4.2",
		PixFmt:       "yuv420p",
		Tune:         tune,
		X264Params:   qualityX264Params(tuning),
		Filters:      filters,
		ColorBT709:   true,
		Note:         note,
	}
	if meta.HasAudio {
		plan.Audio = &AudioPlan{Codec: "aac", BitrateKbps: 160, SampleRate: 48000, Channels: 2, Coder: "twoloop"}
	}
	return plan
}

// qualityX264Params assembles the quality tier's x264 parameter set: a fixed
// quality-preservation block (exhaustive motion search, deep B-frames, long
// lookahead, no quality shortcuts) with the class-adapted AQ, psy-rd, and
// deblock knobs spliced in.
func qualityX264Params(tuning classTuning) []string {
	return []string{
		"aq-mode=3",
		"aq-strength=" + tuning.aqStrength,
		"psy-rd=" + tuning.psyRD,
		"me=umh",
		"subme=10",
		"ref=6",
		"merange=24",
		"bframes=5",
		"b-adapt=2",
		"b-pyramid=normal",
		"rc-lookahead=60",
		"mbtree=1",
		"qcomp=0.7",
		"deblock=" + tuning.deblock,
		"analyse=all",
		"direct=auto",
		"trellis=2",
		"no-fast-pskip=1",
		"no-dct-decimate=1",
		"weightp=2",
		"weightb=1",
	}
}

// buildBalancedPlan is the size-priority tier: 720p cap, two-pass ABR so the
// analysis pass can allocate bits by scene complexity.
func buildBalancedPlan(meta *probe.VideoMetadata, targetSizeMB float64) *EncodePlan {
	w, h := FitResolution(meta.Width, meta.Height, maxDimBalanced)
	target := TargetBitrate(targetSizeMB, meta.Duration, 128)

	base := scaleFilters(maxDimBalanced, maxDimBalanced)
	// Denoise only on the final pass; the analysis pass should see the
	// source the way pass 2's rate control will spend on it, but running
	// hqdn3d twice doubles the cost for no statistical gain.
	full := append(append([]Filter{}, base...), denoiseFilter("2:2:3:3")...)

	// Shared GOP/B-frame structure for both passes; the final pass adds the
	// refinement knobs the analysis pass does not need.
	gop := []string{
		"keyint=60",
		"min-keyint=30",
		"scenecut=40",
		"b-adapt=2",
		"bframes=3",
		"ref=3",
	}
	finalPass := append(append([]string{}, gop...),
		"direct=auto",
		"me=hex",
		"subme=7",
		"trellis=1",
	)

	plan := &EncodePlan{
		Algorithm:        config.AlgoBalanced,
		TargetWidth:      w,
		TargetHeight:     h,
		Rate:             RateTargetBitrate,
		BitrateBps:       target,
		MaxrateBps:       target * 3 / 2,
		BufsizeBps:       target * 2,
		TwoPass:          true,
		Preset:           "medium",
		Profile:          "main",
		Level:            "4.0",
		PixFmt:           "yuv420p",
		X264Params:       finalPass,
		X264FirstPass:    gop,
		Filters:          full,
		FirstPassFilters: base,
		Note:             fmt.Sprintf("two-pass abr: %d kb/s", target/1000),
	}
	if meta.HasAudio {
		plan.Audio = &AudioPlan{Codec: "aac", BitrateKbps: 128, SampleRate: 44100, Channels: 2}
	}
	return plan
}

// buildCompactPlan is the maximum-compression tier: 640p cap, aggressive
// fixed CRF, decode-friendly stream features, mono audio.
func buildCompactPlan(meta *probe.VideoMetadata, targetSizeMB float64) *EncodePlan {
	w, h := FitResolution(meta.Width, meta.Height, maxDimCompact)
	target := TargetBitrate(targetSizeMB, meta.Duration, 96)

	filters := scaleFilters(maxDimCompact, maxDimCompact)
	filters = append(filters, denoiseFilter("4:4:6:6")...)
	filters = append(filters, fpsFilter(meta.FPS)...)

	plan := &EncodePlan{
		Algorithm:    config.AlgoCompact,
		TargetWidth:  w,
		TargetHeight: h,
		Rate:         RateConstantQuality,
		CRF:          28,
		BitrateBps:   target,
		MaxrateBps:   target,
		BufsizeBps:   target * 2,
		Preset:       "faster",
		Profile:      "baseline",
		Level:        "3.1",
		PixFmt:       "yuv420p",
		Tune:         "fastdecode",
		X264Params: []string{
			"keyint=120",
			"bframes=0",
			"ref=1",
			"aq-mode=0",
			"no-mbtree=1",
		},
		Filters: filters,
		Note:    "maximum compression: crf 28",
	}
	if meta.HasAudio {
		plan.Audio = &AudioPlan{Codec: "aac", BitrateKbps: 96, SampleRate: 44100, Channels: 1}
	}
	return plan
}
