// Package classify samples video frames and aggregates per-frame statistics
// (faces, edges, brightness, color, motion) into a ContentProfile that
// biases the parameter planner.
package classify

import (
	"context"
	"image"
	"sort"

	"github.com/hashicorp/go-hclog"

	"github.com/statuspress/statuspress/internal/probe"
)

// defaultStride samples roughly one frame per half second at 30 fps.
const defaultStride = 15

// maxFaceRegions caps how many face rectangles survive aggregation.
const maxFaceRegions = 3

// Classifier analyzes video content for the planner. The face detector is an
// injected capability; pass nil to run face-free.
type Classifier struct {
	faces  FaceDetector
	stride int
	log    hclog.Logger
}

// New builds a Classifier. A nil detector degrades to NopFaceDetector, a
// non-positive stride to the default.
func New(faces FaceDetector, stride int, log hclog.Logger) *Classifier {
	if faces == nil {
		faces = NopFaceDetector{}
	}
	if stride <= 0 {
		stride = defaultStride
	}
	if log == nil {
		log = hclog.NewNullLogger()
	}
	return &Classifier{faces: faces, stride: stride, log: log}
}

// Analyze samples the video at path and returns its content profile.
// Classification never fails a request: any sampling or decoding problem
// degrades to the neutral profile with zero confidence.
func (c *Classifier) Analyze(ctx context.Context, path string, meta *probe.VideoMetadata) ContentProfile {
	fps := 30.0
	if meta != nil && meta.FPS > 0 {
		fps = meta.FPS
	}

	frames, err := sampleFrames(ctx, path, c.stride, fps)
	if err != nil {
		c.log.Warn("content analysis unavailable, using neutral profile", "error", err)
		return NeutralProfile()
	}
	if len(frames) == 0 {
		return NeutralProfile()
	}

	samples := make([]frameSample, 0, len(frames))
	motions := make([]float64, 0, len(frames))
	for i, frame := range frames {
		b := frame.Bounds()
		samples = append(samples, frameSample{
			stats: analyzeFrame(frame),
			faces: c.faces.DetectFaces(frame),
			area:  b.Dx() * b.Dy(),
		})
		if i > 0 {
			motions = append(motions, motionBetween(frames[i-1], frame))
		}
	}

	profile := aggregate(samples, motions)
	c.log.Debug("content analysis",
		"class", profile.Class,
		"faces", profile.AvgFaceCount,
		"complexity", profile.Complexity,
		"motion", profile.Motion,
		"confidence", profile.Confidence,
	)
	return profile
}

// frameSample bundles one sampled frame's statistics with its detections.
type frameSample struct {
	stats frameStats
	faces []image.Rectangle
	area  int
}

// aggregate folds per-frame samples into a ContentProfile. Deterministic:
// the same samples always produce the same profile.
func aggregate(samples []frameSample, motions []float64) ContentProfile {
	if len(samples) == 0 {
		return NeutralProfile()
	}

	var (
		sumFaces, sumCoverage         float64
		sumEdges, sumBright, sumColor float64
		maxFaces                      int
		allFaces                      []image.Rectangle
	)
	for _, s := range samples {
		sumFaces += float64(len(s.faces))
		if len(s.faces) > maxFaces {
			maxFaces = len(s.faces)
		}
		if s.area > 0 {
			faceArea := 0
			for _, r := range s.faces {
				faceArea += r.Dx() * r.Dy()
			}
			sumCoverage += float64(faceArea) / float64(s.area)
		}
		sumEdges += s.stats.EdgeDensity
		sumBright += s.stats.Brightness
		sumColor += s.stats.Colorfulness
		allFaces = append(allFaces, s.faces...)
	}

	n := float64(len(samples))
	motion := 0.0
	if len(motions) > 0 {
		for _, m := range motions {
			motion += m
		}
		motion /= float64(len(motions))
	}

	p := ContentProfile{
		AvgFaceCount:  sumFaces / n,
		MaxFaceCount:  maxFaces,
		FaceCoverage:  sumCoverage / n,
		EdgeDensity:   sumEdges / n,
		Brightness:    sumBright / n,
		Colorfulness:  sumColor / n,
		Motion:        motion,
		FaceRegions:   largestRegions(allFaces, maxFaceRegions),
		SampledFrames: len(samples),
		Confidence:    clamp01(n / 10),
	}

	// More motion reduces the bit-allocation benefit of detail: perception
	// tolerates lower detail during fast motion.
	p.Complexity = clamp01(0.4*p.EdgeDensity + 0.3*p.Colorfulness + 0.3*(1-p.Motion))

	p.Class = classifyContent(p.AvgFaceCount, p.MaxFaceCount, p.FaceCoverage, p.Motion, p.EdgeDensity, p.Brightness)
	p.RecommendedCRF, p.BitrateMult = recommend(p.Class, p.Complexity, p.FaceCoverage, p.Motion)
	return p
}

// classifyContent applies the ordered decision ladder; the first match wins.
func classifyContent(avgFaces float64, maxFaces int, faceCoverage, motion, edgeDensity, brightness float64) ContentClass {
	switch {
	case avgFaces >= 0.8 && faceCoverage > 0.05 && motion < 0.3:
		return TalkingHead
	case maxFaces >= 2 && avgFaces >= 1.5:
		return GroupPeople
	case motion > 0.5:
		return Action
	case edgeDensity > 0.15 && brightness > 0.6:
		return ScreenContent
	case edgeDensity > 0.05 && motion < 0.4:
		return Nature
	default:
		return General
	}
}

// recommend maps a class plus scene statistics to the quality baseline the
// planner starts from.
func recommend(class ContentClass, complexity, faceCoverage, motion float64) (crf int, bitrateMult float64) {
	baseCRF := map[ContentClass]int{
		TalkingHead:   18,
		GroupPeople:   19,
		Action:        21,
		Nature:        19,
		ScreenContent: 20,
		General:       20,
	}[class]

	// Higher complexity needs more bits: shift CRF down by up to 2.
	adj := int((0.5 - complexity) * 4)
	crf = clampInt(baseCRF+adj, 17, 23)

	bitrateMult = 1.0
	if faceCoverage > 0.1 {
		bitrateMult += 0.2
	}
	if class == TalkingHead {
		bitrateMult += 0.1
	}
	if motion > 0.5 {
		bitrateMult += 0.15
	}
	if bitrateMult > 1.5 {
		bitrateMult = 1.5
	}
	return crf, bitrateMult
}

// largestRegions returns the n largest face rectangles by area.
func largestRegions(faces []image.Rectangle, n int) []image.Rectangle {
	if len(faces) == 0 {
		return nil
	}
	sorted := make([]image.Rectangle, len(faces))
	copy(sorted, faces)
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].Dx()*sorted[i].Dy() > sorted[j].Dx()*sorted[j].Dy()
	})
	if len(sorted) > n {
		sorted = sorted[:n]
	}
	return sorted
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
