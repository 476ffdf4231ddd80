package photo

import (
	"image"

	"github.com/disintegration/imaging"
)

// ImageKind is the lightweight content heuristic for stills. It biases
// quality and sharpening only, never resolution.
type ImageKind string

const (
	KindPhoto      ImageKind = "photo"
	KindGraphic    ImageKind = "graphic"
	KindText       ImageKind = "text"
	KindScreenshot ImageKind = "screenshot"
)

// detectAnalysisWidth bounds the cost of the heuristic on large inputs.
const detectAnalysisWidth = 512

// DetectKind classifies an image by its unique-color ratio and edge density.
// Screenshots and flat graphics reuse few colors; text and UI produce hard
// edges that photographs do not.
func DetectKind(img image.Image) ImageKind {
	small := img
	if img.Bounds().Dx() > detectAnalysisWidth {
		small = imaging.Resize(img, detectAnalysisWidth, 0, imaging.NearestNeighbor)
	}
	rgba := imaging.Clone(small)
	b := rgba.Bounds()
	w, h := b.Dx(), b.Dy()
	if w == 0 || h == 0 {
		return KindPhoto
	}

	colors := make(map[uint32]struct{}, w*h/4)
	luma := make([]float64, w*h)
	pix := rgba.Pix
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			i := (y*w + x) * 4
			r, g, bl := pix[i], pix[i+1], pix[i+2]
			colors[uint32(r)<<16|uint32(g)<<8|uint32(bl)] = struct{}{}
			luma[y*w+x] = 0.299*float64(r) + 0.587*float64(g) + 0.114*float64(bl)
		}
	}

	var edgeSum float64
	for y := 0; y < h-1; y++ {
		for x := 0; x < w-1; x++ {
			l := luma[y*w+x]
			dx := luma[y*w+x+1] - l
			dy := luma[(y+1)*w+x] - l
			if dx < 0 {
				dx = -dx
			}
			if dy < 0 {
				dy = -dy
			}
			edgeSum += dx + dy
		}
	}

	colorRatio := float64(len(colors)) / float64(w*h)
	edges := edgeSum / float64(w*h) // mean gradient magnitude, 0-510 scale

	switch {
	case colorRatio < 0.01 && edges > 20:
		return KindScreenshot
	case colorRatio < 0.05:
		return KindGraphic
	case edges > 30:
		return KindText
	default:
		return KindPhoto
	}
}
