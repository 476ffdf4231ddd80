package ffmpeg

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/statuspress/statuspress/internal/planner"
)

// preamble is the shared front of every ffmpeg invocation.
func preamble(verbose bool) []string {
	args := []string{"ffmpeg", "-hide_banner", "-nostdin", "-y"}
	if verbose {
		args = append(args, "-loglevel", "info", "-stats", "-stats_period", "1")
	} else {
		args = append(args, "-loglevel", "error")
	}
	return args
}

// BuildEncodeArgs constructs the full single-pass encode command for plan.
func BuildEncodeArgs(plan *planner.EncodePlan, inputPath, outputPath string, verbose bool) []string {
	args := preamble(verbose)
	args = append(args, "-i", inputPath)
	args = appendVideoCodec(args, plan, plan.X264Params, plan.Filters)
	args = appendAudio(args, plan)
	args = append(args, "-movflags", "+faststart", outputPath)
	return args
}

// BuildPassArgs constructs one pass of a two-pass encode. Pass 1 discards
// both output streams into the null muxer; pass 2 writes the real file.
// logPrefix is the shared -passlogfile stem.
func BuildPassArgs(plan *planner.EncodePlan, inputPath, outputPath, logPrefix string, pass int, verbose bool) []string {
	args := preamble(verbose)
	args = append(args, "-i", inputPath)

	if pass == 1 {
		x264 := plan.X264Params
		if plan.X264FirstPass != nil {
			x264 = plan.X264FirstPass
		}
		filters := plan.Filters
		if plan.FirstPassFilters != nil {
			filters = plan.FirstPassFilters
		}
		args = appendVideoCodec(args, plan, x264, filters)
		args = append(args,
			"-pass", "1", "-passlogfile", logPrefix,
			"-an", "-f", "null", os.DevNull,
		)
		return args
	}

	args = appendVideoCodec(args, plan, plan.X264Params, plan.Filters)
	args = append(args, "-pass", "2", "-passlogfile", logPrefix)
	args = appendAudio(args, plan)
	args = append(args, "-movflags", "+faststart", outputPath)
	return args
}

// BuildExtractArgs constructs a segment-extraction command. Stream copy is
// the fast path; when reencode is set the segment is decoded and re-encoded,
// which survives sources whose keyframe placement defeats copy extraction.
func BuildExtractArgs(inputPath, outputPath string, start, duration float64, reencode, verbose bool) []string {
	args := preamble(verbose)
	args = append(args,
		"-ss", formatSeconds(start),
		"-i", inputPath,
		"-t", formatSeconds(duration),
	)
	if reencode {
		args = append(args,
			"-c:v", "libx264", "-crf", "18", "-preset", "fast",
			"-c:a", "aac", "-b:a", "128k",
		)
	} else {
		args = append(args, "-c", "copy")
	}
	args = append(args,
		"-avoid_negative_ts", "make_zero",
		"-movflags", "+faststart",
		outputPath,
	)
	return args
}

// BuildPaletteArgs constructs the palette-generation stage of an animation
// conversion. stats_mode=diff weights the palette toward pixels that change
// between frames, which is where banding shows in a loop.
func BuildPaletteArgs(inputPath, palettePath string, duration float64, fps int, verbose bool) []string {
	args := preamble(verbose)
	vf := fmt.Sprintf("fps=%d,scale=360:-1:flags=lanczos,palettegen=stats_mode=diff", fps)
	args = append(args,
		"-t", formatSeconds(duration),
		"-i", inputPath,
		"-vf", vf,
		palettePath,
	)
	return args
}

// BuildAnimationArgs constructs the palette-apply stage that writes the
// final animation.
func BuildAnimationArgs(inputPath, palettePath, outputPath string, duration float64, fps int, verbose bool) []string {
	args := preamble(verbose)
	lavfi := fmt.Sprintf("fps=%d,scale=360:-1:flags=lanczos[v];[v][1:v]paletteuse=dither=bayer:bayer_scale=5", fps)
	args = append(args,
		"-t", formatSeconds(duration),
		"-i", inputPath,
		"-i", palettePath,
		"-lavfi", lavfi,
		"-loop", "0",
		outputPath,
	)
	return args
}

// appendVideoCodec adds the libx264 section: codec, rate control, tuning,
// filters, and color tags.
func appendVideoCodec(args []string, plan *planner.EncodePlan, x264Params []string, filters []planner.Filter) []string {
	if len(filters) > 0 {
		args = append(args, "-vf", planner.JoinFilters(filters))
	}
	args = append(args, "-c:v", "libx264", "-preset", plan.Preset)

	switch plan.Rate {
	case planner.RateConstantQuality:
		args = append(args, "-crf", strconv.Itoa(plan.CRF))
		if plan.MaxrateBps > 0 {
			args = append(args,
				"-maxrate", strconv.Itoa(plan.MaxrateBps),
				"-bufsize", strconv.Itoa(plan.BufsizeBps),
			)
		}
	case planner.RateTargetBitrate:
		args = append(args,
			"-b:v", strconv.Itoa(plan.BitrateBps),
			"-maxrate", strconv.Itoa(plan.MaxrateBps),
			"-bufsize", strconv.Itoa(plan.BufsizeBps),
		)
	}

	if plan.Tune != "" {
		args = append(args, "-tune", plan.Tune)
	}
	args = append(args,
		"-profile:v", plan.Profile,
		"-level", plan.Level,
		"-pix_fmt", plan.PixFmt,
	)
	if len(x264Params) > 0 {
		args = append(args, "-x264-params", strings.Join(x264Params, ":"))
	}
	if plan.ColorBT709 {
		args = append(args,
			"-colorspace", "bt709",
			"-color_primaries", "bt709",
			"-color_trc", "bt709",
		)
	}
	return args
}

func appendAudio(args []string, plan *planner.EncodePlan) []string {
	if plan.Audio == nil {
		return append(args, "-an")
	}
	a := plan.Audio
	args = append(args,
		"-c:a", a.Codec,
		"-b:a", strconv.Itoa(a.BitrateKbps)+"k",
		"-ar", strconv.Itoa(a.SampleRate),
	)
	if a.Channels > 0 {
		args = append(args, "-ac", strconv.Itoa(a.Channels))
	}
	if a.Coder != "" {
		args = append(args, "-aac_coder", a.Coder)
	}
	return args
}

func formatSeconds(s float64) string {
	return strconv.FormatFloat(s, 'f', 3, 64)
}
