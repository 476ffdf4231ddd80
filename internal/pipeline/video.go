package pipeline

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"sync"

	"github.com/google/uuid"
	"github.com/hashicorp/go-hclog"

	"github.com/statuspress/statuspress/internal/classify"
	"github.com/statuspress/statuspress/internal/config"
	"github.com/statuspress/statuspress/internal/display"
	"github.com/statuspress/statuspress/internal/ffmpeg"
	"github.com/statuspress/statuspress/internal/naming"
	"github.com/statuspress/statuspress/internal/planner"
	"github.com/statuspress/statuspress/internal/probe"
	"github.com/statuspress/statuspress/internal/segment"
)

const outputExt = "mp4"

// Orchestrator drives one compression request through probe, classify,
// plan, split, and encode. Zero shared state between requests.
type Orchestrator struct {
	cfg        *config.Config
	runner     ffmpeg.Runner
	classifier *classify.Classifier
	log        hclog.Logger

	// prober is swappable for tests.
	prober func(ctx context.Context, path string) (*probe.VideoMetadata, error)
}

// NewOrchestrator wires an orchestrator. runner, classifier, and log may be
// nil; sensible defaults are substituted.
func NewOrchestrator(cfg *config.Config, runner ffmpeg.Runner, classifier *classify.Classifier, log hclog.Logger) *Orchestrator {
	if runner == nil {
		runner = ffmpeg.CLIRunner{Tee: cfg != nil && cfg.Verbose}
	}
	if log == nil {
		log = hclog.NewNullLogger()
	}
	if classifier == nil {
		classifier = classify.New(nil, cfg.SampleStride, log)
	}
	return &Orchestrator{
		cfg:        cfg,
		runner:     runner,
		classifier: classifier,
		log:        log,
		prober:     probe.ProbeVideo,
	}
}

// CompressVideo runs the whole request and always returns an Outcome; fatal
// problems surface as Success=false with a message rather than an error.
func (o *Orchestrator) CompressVideo(ctx context.Context, inputPath string) *Outcome {
	out := &Outcome{Algorithm: o.cfg.Algorithm}

	meta, err := o.prober(ctx, inputPath)
	if err != nil {
		out.Message = fmt.Sprintf("probe failed: %v", err)
		return out
	}
	o.log.Info("probed input",
		"resolution", meta.Resolution(),
		"duration", display.FormatDuration(meta.Duration),
		"fps", meta.FPS,
		"codec", meta.Codec,
		"bitrate", display.FormatBitrate(meta.BitRate),
	)
	if o.cfg.SplitDuration == 0 && meta.Duration > config.NeedsSplitHint {
		o.log.Info("input exceeds a single status post, consider --split 30",
			"duration", display.FormatDuration(meta.Duration))
	}

	// Content analysis only pays off for the content-aware tier.
	profile := classify.NeutralProfile()
	if o.cfg.Algorithm == config.AlgoQuality {
		profile = o.classifier.Analyze(ctx, inputPath, meta)
	}

	var segments []segment.Segment
	if o.cfg.SplitDuration > 0 {
		segments = segment.Plan(meta.Duration, float64(o.cfg.SplitDuration))
	}

	if len(segments) == 0 {
		o.compressSingle(ctx, inputPath, meta, profile, out)
		return out
	}
	o.compressSplit(ctx, inputPath, profile, segments, out)
	return out
}

// compressSingle encodes the whole file as one part. Any failure is fatal
// for the request.
func (o *Orchestrator) compressSingle(ctx context.Context, inputPath string, meta *probe.VideoMetadata, profile classify.ContentProfile, out *Outcome) {
	outputPath := naming.Unique(naming.OutputPath(o.cfg.OutputDir, inputPath, "_compressed", outputExt))
	result := o.encodePart(ctx, inputPath, meta, profile, 1, outputPath)
	out.Parts = []PartResult{result}
	out.Success = result.Success
	out.AllSucceeded = result.Success
	if result.Success {
		out.Message = fmt.Sprintf("compressed, saved %.1f%%", result.Ratio)
	} else {
		out.Message = result.Error
	}
}

// compressSplit extracts each segment into a scratch directory, encodes the
// parts with bounded parallelism, and aggregates. A part failure does not
// abort its siblings; producing zero segments does abort the request.
func (o *Orchestrator) compressSplit(ctx context.Context, inputPath string, profile classify.ContentProfile, segments []segment.Segment, out *Outcome) {
	scratch := filepath.Join(os.TempDir(), "statuspress-split-"+uuid.NewString())
	if err := os.MkdirAll(scratch, 0o755); err != nil {
		out.Message = (&SplitError{Err: err}).Error()
		return
	}
	defer os.RemoveAll(scratch) // best effort

	sources := make([]string, len(segments))
	extracted := 0
	for i, seg := range segments {
		src := filepath.Join(scratch, fmt.Sprintf("segment_%02d.%s", seg.Index, outputExt))
		if err := o.extractSegment(ctx, inputPath, src, seg); err != nil {
			o.log.Error("segment extraction failed", "part", seg.Index, "error", err)
			continue
		}
		sources[i] = src
		extracted++
	}
	if extracted == 0 {
		out.Message = (&SplitError{Err: fmt.Errorf("no segments could be extracted")}).Error()
		return
	}

	out.Parts = o.encodeParts(ctx, inputPath, profile, segments, sources)

	succeeded := 0
	for _, p := range out.Parts {
		if p.Success {
			succeeded++
		}
	}
	out.Success = succeeded > 0
	out.AllSucceeded = succeeded == len(out.Parts)
	out.Message = fmt.Sprintf("%d/%d parts compressed", succeeded, len(out.Parts))
}

// encodeParts fans the per-part encodes out over a bounded worker pool and
// returns results in segment order.
func (o *Orchestrator) encodeParts(ctx context.Context, inputPath string, profile classify.ContentProfile, segments []segment.Segment, sources []string) []PartResult {
	workers := o.cfg.Workers
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	if workers > len(segments) {
		workers = len(segments)
	}

	results := make([]PartResult, len(segments))
	jobs := make(chan int)
	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range jobs {
				results[i] = o.encodeSegment(ctx, inputPath, profile, segments[i], sources[i])
			}
		}()
	}
	for i := range segments {
		jobs <- i
	}
	close(jobs)
	wg.Wait()
	return results
}

// encodeSegment encodes one extracted segment and removes the temporary
// source on every exit path.
func (o *Orchestrator) encodeSegment(ctx context.Context, inputPath string, profile classify.ContentProfile, seg segment.Segment, src string) PartResult {
	if src == "" {
		return PartResult{Part: seg.Index, Error: "segment extraction failed"}
	}
	defer os.Remove(src) // best effort

	meta, err := o.prober(ctx, src)
	if err != nil {
		return PartResult{Part: seg.Index, Error: fmt.Sprintf("probe segment: %v", err)}
	}
	outputPath := naming.Unique(naming.PartPath(o.cfg.OutputDir, inputPath, seg.Index, outputExt))
	return o.encodePart(ctx, src, meta, profile, seg.Index, outputPath)
}

// encodePart plans and runs one encode, enforcing the per-part timeout.
func (o *Orchestrator) encodePart(ctx context.Context, src string, meta *probe.VideoMetadata, profile classify.ContentProfile, part int, outputPath string) PartResult {
	result := PartResult{Part: part, OutputPath: outputPath}

	plan, err := planner.BuildPlan(meta, o.cfg.Algorithm, profile, o.cfg.TargetSizeMB)
	if err != nil {
		result.Error = err.Error()
		return result
	}
	o.log.Info("encoding part", "part", part, "plan", plan.Note,
		"resolution", fmt.Sprintf("%dx%d", plan.TargetWidth, plan.TargetHeight))

	if o.cfg.PartTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, o.cfg.PartTimeout)
		defer cancel()
	}

	if err := o.runEncode(ctx, plan, src, outputPath); err != nil {
		os.Remove(outputPath) // drop partial output, best effort
		result.Error = err.Error()
		return result
	}

	original, err := os.Stat(src)
	if err != nil {
		result.Error = fmt.Sprintf("stat input: %v", err)
		return result
	}
	compressed, err := os.Stat(outputPath)
	if err != nil {
		result.Error = fmt.Sprintf("stat output: %v", err)
		return result
	}

	result.Success = true
	result.OriginalSize = original.Size()
	result.CompressedSize = compressed.Size()
	result.Ratio = Ratio(original.Size(), compressed.Size())
	return result
}

func (o *Orchestrator) runEncode(ctx context.Context, plan *planner.EncodePlan, src, dst string) error {
	if plan.TwoPass {
		return ffmpeg.RunTwoPass(ctx, o.runner, plan, src, dst, o.cfg.Verbose)
	}
	res := o.runner.Run(ctx, ffmpeg.BuildEncodeArgs(plan, src, dst, o.cfg.Verbose))
	return ffmpeg.WrapExec(ctx, res)
}

// extractSegment pulls one time slice into src. Stream copy first; when the
// source's keyframe placement defeats that, fall back to re-encoding the
// slice.
func (o *Orchestrator) extractSegment(ctx context.Context, inputPath, src string, seg segment.Segment) error {
	res := o.runner.Run(ctx, ffmpeg.BuildExtractArgs(inputPath, src, seg.Start, seg.Duration, false, o.cfg.Verbose))
	if err := ffmpeg.WrapExec(ctx, res); err == nil {
		if usable(src) {
			return nil
		}
	} else {
		o.log.Warn("copy extraction failed, re-encoding segment", "part", seg.Index, "error", err)
	}

	os.Remove(src) // best effort
	res = o.runner.Run(ctx, ffmpeg.BuildExtractArgs(inputPath, src, seg.Start, seg.Duration, true, o.cfg.Verbose))
	if err := ffmpeg.WrapExec(ctx, res); err != nil {
		return err
	}
	if !usable(src) {
		return fmt.Errorf("extraction produced an empty segment")
	}
	return nil
}

func usable(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.Size() > 0
}
