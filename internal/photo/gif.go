package photo

import (
	"fmt"
	"image"
	"image/color/palette"
	"image/draw"
	"image/gif"
	"os"

	"github.com/disintegration/imaging"
	"github.com/hashicorp/go-hclog"

	"github.com/statuspress/statuspress/internal/config"
	"github.com/statuspress/statuspress/internal/naming"
)

// animTier holds the per-algorithm animated-image knobs.
type animTier struct {
	maxDim int
	colors int
}

func animTierFor(algo config.PhotoAlgorithm) animTier {
	switch algo {
	case config.PhotoClarity:
		return animTier{maxDim: 480, colors: 256}
	case config.PhotoQuick:
		return animTier{maxDim: 280, colors: 128}
	default:
		return animTier{maxDim: 360, colors: 192}
	}
}

// OptimizeAnimated recompresses an animated GIF: coalesce each frame onto
// the logical canvas, resize, requantize to the tier's palette, and
// re-encode with the source frame timing preserved.
func OptimizeAnimated(inputPath, outDir string, algo config.PhotoAlgorithm, log hclog.Logger) Result {
	if log == nil {
		log = hclog.NewNullLogger()
	}
	fail := func(msg string, err error) Result {
		log.Error(msg, "input", inputPath, "error", err)
		return Result{Algorithm: algo, Format: "gif", Message: fmt.Sprintf("%s: %v", msg, err)}
	}

	info, err := os.Stat(inputPath)
	if err != nil {
		return fail("cannot read input", err)
	}
	f, err := os.Open(inputPath)
	if err != nil {
		return fail("cannot read input", err)
	}
	src, err := gif.DecodeAll(f)
	f.Close()
	if err != nil {
		return fail("cannot decode animation", err)
	}
	if len(src.Image) == 0 {
		return fail("cannot decode animation", fmt.Errorf("no frames"))
	}

	tier := animTierFor(algo)
	srcW, srcH := src.Config.Width, src.Config.Height
	if srcW == 0 || srcH == 0 {
		b := src.Image[0].Bounds()
		srcW, srcH = b.Max.X, b.Max.Y
	}
	w, h := FitDimensions(srcW, srcH, tier.maxDim)
	pal := palette.Plan9[:tier.colors]
	log.Debug("animation plan", "algorithm", algo, "frames", len(src.Image), "dim", fmt.Sprintf("%dx%d", w, h), "colors", tier.colors)

	out := &gif.GIF{
		Delay:     make([]int, 0, len(src.Image)),
		LoopCount: src.LoopCount,
		Config:    image.Config{Width: w, Height: h},
	}

	// Frames can be partial updates; accumulate them on a full canvas so
	// every output frame is self-contained after the resize.
	canvas := image.NewNRGBA(image.Rect(0, 0, srcW, srcH))
	for i, frame := range src.Image {
		draw.Draw(canvas, frame.Bounds(), frame, frame.Bounds().Min, draw.Over)

		resized := imaging.Resize(canvas, w, h, imaging.Lanczos)
		paletted := image.NewPaletted(image.Rect(0, 0, w, h), pal)
		draw.FloydSteinberg.Draw(paletted, paletted.Bounds(), resized, image.Point{})

		out.Image = append(out.Image, paletted)
		delay := 0
		if i < len(src.Delay) {
			delay = src.Delay[i]
		}
		out.Delay = append(out.Delay, delay)
	}

	outputPath := naming.Unique(naming.OutputPath(outDir, inputPath, "_compressed", "gif"))
	dst, err := os.Create(outputPath)
	if err != nil {
		return fail("cannot write output", err)
	}
	err = gif.EncodeAll(dst, out)
	if cerr := dst.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		return fail("cannot encode animation", err)
	}

	compressed, err := os.Stat(outputPath)
	if err != nil {
		return fail("cannot stat output", err)
	}
	return Result{
		Success:        true,
		OutputPath:     outputPath,
		OriginalSize:   info.Size(),
		CompressedSize: compressed.Size(),
		Ratio:          Ratio(info.Size(), compressed.Size()),
		Algorithm:      algo,
		Format:         "gif",
		Width:          w,
		Height:         h,
		Message:        fmt.Sprintf("optimized %d frames at %d colors", len(out.Image), tier.colors),
	}
}
