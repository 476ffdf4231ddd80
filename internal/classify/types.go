package classify

import "image"

// ContentClass is the coarse content category inferred from sampled frames.
type ContentClass string

const (
	TalkingHead   ContentClass = "talking_head" // One face, steady camera; protect skin detail.
	GroupPeople   ContentClass = "group_people" // Multiple faces.
	Action        ContentClass = "action"       // High motion.
	Nature        ContentClass = "nature"       // Detailed, colorful, low motion.
	ScreenContent ContentClass = "screen"       // Screen recording / text.
	General       ContentClass = "general"
)

// ContentProfile is the aggregated classification for one video. Callers
// must treat Confidence <= 0.3 as "do not trust" and fall back to
// duration-based heuristics; Trusted encodes that rule.
type ContentProfile struct {
	Class        ContentClass
	AvgFaceCount float64
	MaxFaceCount int
	FaceCoverage float64 // mean face_area/frame_area, [0,1]
	Complexity   float64 // [0,1]
	Motion       float64 // [0,1]
	Brightness   float64 // [0,1]
	EdgeDensity  float64 // [0,1]
	Colorfulness float64 // [0,1]

	RecommendedCRF int
	BitrateMult    float64

	FaceRegions   []image.Rectangle
	Confidence    float64
	SampledFrames int
}

// Trusted reports whether the profile carries enough signal for the planner
// to prefer it over duration buckets.
func (p *ContentProfile) Trusted() bool {
	return p.Confidence > 0.3
}

// NeutralProfile is returned when no frames could be sampled or the vision
// capability is unavailable: GENERAL class, middle-of-the-road scores, and
// zero confidence so planners ignore it.
func NeutralProfile() ContentProfile {
	return ContentProfile{
		Class:          General,
		Complexity:     0.5,
		Motion:         0.3,
		Brightness:     0.5,
		RecommendedCRF: 20,
		BitrateMult:    1.0,
		Confidence:     0,
	}
}
