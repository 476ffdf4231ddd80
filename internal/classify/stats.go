package classify

import (
	"image"

	"github.com/disintegration/imaging"
)

// frameStats holds the per-frame image statistics the classifier aggregates.
type frameStats struct {
	EdgeDensity  float64 // fraction of high-gradient pixels, [0,1]
	Brightness   float64 // mean luma, [0,1]
	Colorfulness float64 // mean chroma difference, [0,1]
}

// edgeThreshold is the luma-gradient magnitude (0-255 scale) above which a
// pixel counts as an edge.
const edgeThreshold = 48

// motionScale maps mean absolute luma difference between consecutive samples
// onto the [0,1] motion score. Chosen so that typical handheld footage lands
// mid-range and hard cuts saturate.
const motionScale = 8.0

// motionAnalysisWidth is the downscale width used before differencing frames.
const motionAnalysisWidth = 160

// analyzeFrame computes edge density, brightness, and colorfulness for one
// frame.
func analyzeFrame(img image.Image) frameStats {
	rgba := imaging.Clone(img)
	b := rgba.Bounds()
	w, h := b.Dx(), b.Dy()
	if w == 0 || h == 0 {
		return frameStats{}
	}

	luma := make([]float64, w*h)
	var sumLuma, sumRG, sumYB float64
	pix := rgba.Pix
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			i := (y*w + x) * 4
			r := float64(pix[i])
			g := float64(pix[i+1])
			bl := float64(pix[i+2])

			l := 0.299*r + 0.587*g + 0.114*bl
			luma[y*w+x] = l
			sumLuma += l

			// Hasler-Suesstrunk opponent channels.
			sumRG += abs(r - g)
			sumYB += abs(0.5*(r+g) - bl)
		}
	}

	n := float64(w * h)
	edges := 0
	for y := 0; y < h-1; y++ {
		for x := 0; x < w-1; x++ {
			l := luma[y*w+x]
			dx := abs(luma[y*w+x+1] - l)
			dy := abs(luma[(y+1)*w+x] - l)
			if dx+dy > edgeThreshold {
				edges++
			}
		}
	}

	return frameStats{
		EdgeDensity:  float64(edges) / n,
		Brightness:   sumLuma / n / 255.0,
		Colorfulness: clamp01((sumRG + sumYB) / n / 255.0),
	}
}

// motionBetween estimates motion between two consecutive sampled frames as
// the normalized mean absolute luma difference on a downscaled copy, capped
// at 1.0.
func motionBetween(a, b image.Image) float64 {
	small1 := imaging.Resize(a, motionAnalysisWidth, 0, imaging.Box)
	small2 := imaging.Resize(b, motionAnalysisWidth, 0, imaging.Box)

	b1, b2 := small1.Bounds(), small2.Bounds()
	w := minInt(b1.Dx(), b2.Dx())
	h := minInt(b1.Dy(), b2.Dy())
	if w == 0 || h == 0 {
		return 0
	}

	var sum float64
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			i1 := (y*b1.Dx() + x) * 4
			i2 := (y*b2.Dx() + x) * 4
			l1 := 0.299*float64(small1.Pix[i1]) + 0.587*float64(small1.Pix[i1+1]) + 0.114*float64(small1.Pix[i1+2])
			l2 := 0.299*float64(small2.Pix[i2]) + 0.587*float64(small2.Pix[i2+1]) + 0.114*float64(small2.Pix[i2+2])
			sum += abs(l1 - l2)
		}
	}

	mean := sum / float64(w*h) / 255.0
	return clamp01(mean * motionScale)
}

func abs(f float64) float64 {
	if f < 0 {
		return -f
	}
	return f
}

func clamp01(f float64) float64 {
	if f < 0 {
		return 0
	}
	if f > 1 {
		return 1
	}
	return f
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}
