package photo

import "github.com/statuspress/statuspress/internal/config"

// BuildPlan resolves the still-image knobs for one algorithm and detected
// kind. Kind biases quality and sharpening only; the resolution cap belongs
// to the algorithm alone.
func BuildPlan(algo config.PhotoAlgorithm, kind ImageKind) Plan {
	var p Plan
	switch algo {
	case config.PhotoClarity:
		p = Plan{
			MaxDimension: 1280,
			Quality:      92,
			Subsampling:  "4:4:4",
			Sharpen:      0.6,
			ContrastPct:  2,
			SaturatePct:  2,
		}
		if kind == KindText || kind == KindScreenshot {
			p.Quality = 94
		}
	case config.PhotoQuick:
		p = Plan{
			MaxDimension: 720,
			Quality:      70,
			Subsampling:  "4:2:0",
			Sharpen:      0.3,
			ContrastPct:  8,
			SaturatePct:  10,
			ResampleFast: true,
		}
		if kind == KindText || kind == KindScreenshot {
			p.Quality = 76
		}
	default: // balanced
		p = Plan{
			MaxDimension: 1080,
			Subsampling:  "4:2:2",
			Sharpen:      0.5,
			ContrastPct:  4,
			SaturatePct:  5,
		}
		switch kind {
		case KindText, KindScreenshot:
			p.Quality = 88
		case KindGraphic:
			p.Quality = 85
		default:
			p.Quality = 82
		}
	}

	switch kind {
	case KindText, KindScreenshot:
		// Hard edges ring under sharpening.
		p.Sharpen *= 0.5
		p.Enhance = false
	default:
		p.Enhance = true
	}
	return p
}

// FitDimensions scales (w, h) down so the long side is at most maxDim,
// never upscaling. Odd results round up to even, which keeps downstream
// tooling that assumes even dimensions happy without cropping a pixel.
func FitDimensions(w, h, maxDim int) (int, int) {
	if w <= 0 || h <= 0 {
		return w, h
	}
	long := w
	if h > long {
		long = h
	}
	if long > maxDim {
		scale := float64(maxDim) / float64(long)
		w = int(float64(w) * scale)
		h = int(float64(h) * scale)
	}
	if w%2 != 0 {
		w++
	}
	if h%2 != 0 {
		h++
	}
	return w, h
}
