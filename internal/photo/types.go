// Package photo compresses still and animated images: plan the parameters
// from the chosen algorithm and an image-type heuristic, then resize,
// enhance, and re-encode in-process.
package photo

import "github.com/statuspress/statuspress/internal/config"

// Plan holds the resolved knobs for one still-image compression.
type Plan struct {
	MaxDimension int
	Quality      int    // JPEG/WebP quality, 1-100
	Subsampling  string // chroma subsampling the quality tier is contracted to
	Sharpen      float64
	// Enhance applies the mild contrast/saturation lift; only photo and
	// graphic kinds get it.
	Enhance      bool
	ContrastPct  float64
	SaturatePct  float64
	ResampleFast bool // quick tier trades lanczos for linear resampling
}

// Result is the outcome of one photo compression.
type Result struct {
	Success        bool
	OutputPath     string
	OriginalSize   int64
	CompressedSize int64
	Ratio          float64
	Algorithm      config.PhotoAlgorithm
	Format         config.PhotoFormat
	Width          int
	Height         int
	Kind           ImageKind
	Message        string
}

// Ratio computes the percentage saved by compression. Only meaningful for
// successful results.
func Ratio(original, compressed int64) float64 {
	if original <= 0 {
		return 0
	}
	return (1 - float64(compressed)/float64(original)) * 100
}
