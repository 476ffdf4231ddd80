package photo

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"os"

	"github.com/chai2010/webp"
	"github.com/disintegration/imaging"
	"github.com/hashicorp/go-hclog"

	"github.com/statuspress/statuspress/internal/config"
	"github.com/statuspress/statuspress/internal/naming"
)

// Compress runs the full still-image chain: open, classify, plan, resize,
// enhance, sharpen, encode. The returned Result carries Success instead of
// an error so callers get sizes and a message on every path.
func Compress(inputPath, outDir string, algo config.PhotoAlgorithm, format config.PhotoFormat, log hclog.Logger) Result {
	if log == nil {
		log = hclog.NewNullLogger()
	}
	fail := func(msg string, err error) Result {
		log.Error(msg, "input", inputPath, "error", err)
		return Result{Algorithm: algo, Format: format, Message: fmt.Sprintf("%s: %v", msg, err)}
	}

	info, err := os.Stat(inputPath)
	if err != nil {
		return fail("cannot read input", err)
	}

	img, err := imaging.Open(inputPath, imaging.AutoOrientation(true))
	if err != nil {
		return fail("cannot decode image", err)
	}

	kind := DetectKind(img)
	plan := BuildPlan(algo, kind)
	log.Debug("photo plan", "kind", kind, "algorithm", algo, "quality", plan.Quality, "max_dim", plan.MaxDimension)

	b := img.Bounds()
	w, h := FitDimensions(b.Dx(), b.Dy(), plan.MaxDimension)
	if w != b.Dx() || h != b.Dy() {
		filter := imaging.Lanczos
		if plan.ResampleFast {
			filter = imaging.Linear
		}
		img = imaging.Resize(img, w, h, filter)
	}

	out := imaging.Clone(img)
	if plan.Enhance {
		out = imaging.AdjustContrast(out, plan.ContrastPct)
		out = imaging.AdjustSaturation(out, plan.SaturatePct)
	}
	if plan.Sharpen > 0 {
		out = imaging.Sharpen(out, plan.Sharpen)
	}

	outputPath := naming.Unique(naming.OutputPath(outDir, inputPath, "_compressed", string(format)))
	if err := encode(out, outputPath, format, plan.Quality); err != nil {
		return fail("cannot encode image", err)
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
		Format:         format,
		Width:          w,
		Height:         h,
		Kind:           kind,
		Message:        fmt.Sprintf("compressed as %s (%s)", format, kind),
	}
}

func encode(img *image.NRGBA, path string, format config.PhotoFormat, quality int) error {
	switch format {
	case config.FormatPNG:
		return savePNG(img, path)
	case config.FormatWebP:
		return saveWebP(img, path, quality)
	default:
		// JPEG cannot carry alpha; composite onto white.
		return imaging.Save(flattenAlpha(img), path, imaging.JPEGQuality(quality))
	}
}

func savePNG(img image.Image, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	enc := png.Encoder{CompressionLevel: png.BestCompression}
	return enc.Encode(f, img)
}

func saveWebP(img image.Image, path string, quality int) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return webp.Encode(f, img, &webp.Options{Quality: float32(quality)})
}

// flattenAlpha composites any transparency onto a white background.
func flattenAlpha(img *image.NRGBA) image.Image {
	if img.Opaque() {
		return img
	}
	flat := image.NewNRGBA(img.Bounds())
	draw.Draw(flat, flat.Bounds(), &image.Uniform{C: color.White}, image.Point{}, draw.Src)
	draw.Draw(flat, flat.Bounds(), img, img.Bounds().Min, draw.Over)
	return flat
}
