package photo

import (
	"image"
	"image/color"
	"image/gif"
	"math/rand"
	"os"
	"path/filepath"
	"testing"

	"github.com/disintegration/imaging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/statuspress/statuspress/internal/config"
)

// --- fixture images ---

// noisyPhoto is full of unique colors and soft gradients, like a camera shot.
func noisyPhoto(w, h int) image.Image {
	rng := rand.New(rand.NewSource(1))
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, color.NRGBA{
				R: uint8((x*255/w + rng.Intn(8)) % 256),
				G: uint8((y*255/h + rng.Intn(8)) % 256),
				B: uint8(((x + y) * 255 / (w + h)) % 256),
				A: 255,
			})
		}
	}
	return img
}

// flatGraphic reuses a handful of colors with soft boundaries.
func flatGraphic(w, h int) image.Image {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	palette := []color.NRGBA{
		{R: 200, G: 60, B: 60, A: 255},
		{R: 60, G: 200, B: 60, A: 255},
		{R: 60, G: 60, B: 200, A: 255},
	}
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, palette[(x/64+y/64)%len(palette)])
		}
	}
	return img
}

// screenshotLike has very few colors and hard single-pixel edges everywhere,
// like rendered UI text.
func screenshotLike(w, h int) image.Image {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			if (x/2+y/2)%2 == 0 {
				img.Set(x, y, color.NRGBA{R: 255, G: 255, B: 255, A: 255})
			} else {
				img.Set(x, y, color.NRGBA{R: 20, G: 20, B: 20, A: 255})
			}
		}
	}
	return img
}

// --- kind detection ---

func TestDetectKindPhoto(t *testing.T) {
	assert.Equal(t, KindPhoto, DetectKind(noisyPhoto(256, 192)))
}

func TestDetectKindGraphic(t *testing.T) {
	assert.Equal(t, KindGraphic, DetectKind(flatGraphic(256, 192)))
}

func TestDetectKindScreenshot(t *testing.T) {
	assert.Equal(t, KindScreenshot, DetectKind(screenshotLike(256, 192)))
}

// --- planning ---

func TestBuildPlanTiers(t *testing.T) {
	tests := []struct {
		algo    config.PhotoAlgorithm
		maxDim  int
		quality int
		subsamp string
	}{
		{config.PhotoClarity, 1280, 92, "4:4:4"},
		{config.PhotoBalanced, 1080, 82, "4:2:2"},
		{config.PhotoQuick, 720, 70, "4:2:0"},
	}
	for _, tt := range tests {
		p := BuildPlan(tt.algo, KindPhoto)
		assert.Equal(t, tt.maxDim, p.MaxDimension, "%s max dimension", tt.algo)
		assert.Equal(t, tt.quality, p.Quality, "%s quality", tt.algo)
		assert.Equal(t, tt.subsamp, p.Subsampling, "%s subsampling", tt.algo)
	}
}

func TestBuildPlanQualityFloorBump(t *testing.T) {
	for _, algo := range []config.PhotoAlgorithm{config.PhotoClarity, config.PhotoBalanced, config.PhotoQuick} {
		photoPlan := BuildPlan(algo, KindPhoto)
		for _, kind := range []ImageKind{KindText, KindScreenshot} {
			bumped := BuildPlan(algo, kind)
			assert.Greater(t, bumped.Quality, photoPlan.Quality, "%s/%s should beat photo quality", algo, kind)
			assert.Equal(t, photoPlan.MaxDimension, bumped.MaxDimension, "kind must never change resolution")
		}
	}
}

func TestBuildPlanEnhanceOnlyPhotoAndGraphic(t *testing.T) {
	assert.True(t, BuildPlan(config.PhotoBalanced, KindPhoto).Enhance)
	assert.True(t, BuildPlan(config.PhotoBalanced, KindGraphic).Enhance)
	assert.False(t, BuildPlan(config.PhotoBalanced, KindText).Enhance)
	assert.False(t, BuildPlan(config.PhotoBalanced, KindScreenshot).Enhance)
}

func TestFitDimensions(t *testing.T) {
	tests := []struct {
		w, h, maxDim   int
		wantW, wantH   int
	}{
		{4000, 3000, 1080, 1080, 810},
		{3000, 4000, 1080, 810, 1080},
		{800, 600, 1080, 800, 600}, // never upscale
		{1083, 601, 1080, 1080, 600},
	}
	for _, tt := range tests {
		w, h := FitDimensions(tt.w, tt.h, tt.maxDim)
		assert.Equal(t, tt.wantW, w, "%dx%d cap %d", tt.w, tt.h, tt.maxDim)
		assert.Equal(t, tt.wantH, h, "%dx%d cap %d", tt.w, tt.h, tt.maxDim)
		assert.Zero(t, w%2)
		assert.Zero(t, h%2)
	}
}

// --- still pipeline ---

func TestCompressJPEG(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "shot.png")
	require.NoError(t, imaging.Save(imaging.Clone(noisyPhoto(1600, 1200)), input))

	out := t.TempDir()
	result := Compress(input, out, config.PhotoBalanced, config.FormatJPG, nil)
	require.True(t, result.Success, result.Message)
	assert.FileExists(t, result.OutputPath)
	assert.Equal(t, 1080, result.Width)
	assert.Equal(t, 810, result.Height)
	assert.Equal(t, KindPhoto, result.Kind)
	assert.InDelta(t, Ratio(result.OriginalSize, result.CompressedSize), result.Ratio, 1e-9)

	reopened, err := imaging.Open(result.OutputPath)
	require.NoError(t, err)
	assert.Equal(t, 1080, reopened.Bounds().Dx())
}

func TestCompressWebP(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "shot.png")
	require.NoError(t, imaging.Save(imaging.Clone(noisyPhoto(800, 600)), input))

	result := Compress(input, t.TempDir(), config.PhotoQuick, config.FormatWebP, nil)
	require.True(t, result.Success, result.Message)
	assert.True(t, filepath.Ext(result.OutputPath) == ".webp")
	assert.Equal(t, 720, result.Width)
}

func TestCompressRejectsGarbage(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "junk.jpg")
	require.NoError(t, os.WriteFile(input, []byte("not an image"), 0o644))

	result := Compress(input, t.TempDir(), config.PhotoBalanced, config.FormatJPG, nil)
	assert.False(t, result.Success)
	assert.NotEmpty(t, result.Message)
}

// --- animated pipeline ---

func writeAnimatedGIF(t *testing.T, path string, frames, w, h int) {
	t.Helper()
	g := &gif.GIF{LoopCount: 2, Config: image.Config{Width: w, Height: h}}
	pal := color.Palette{color.Black, color.White, color.NRGBA{R: 255, A: 255}}
	for i := 0; i < frames; i++ {
		frame := image.NewPaletted(image.Rect(0, 0, w, h), pal)
		for y := 0; y < h; y++ {
			for x := 0; x < w; x++ {
				frame.SetColorIndex(x, y, uint8((x+i)%len(pal)))
			}
		}
		g.Image = append(g.Image, frame)
		g.Delay = append(g.Delay, 8+i)
	}
	f, err := os.Create(path)
	require.NoError(t, err)
	defer f.Close()
	require.NoError(t, gif.EncodeAll(f, g))
}

func TestOptimizeAnimated(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "loop.gif")
	writeAnimatedGIF(t, input, 4, 600, 400)

	result := OptimizeAnimated(input, t.TempDir(), config.PhotoBalanced, nil)
	require.True(t, result.Success, result.Message)
	assert.FileExists(t, result.OutputPath)
	assert.Equal(t, 360, result.Width)

	f, err := os.Open(result.OutputPath)
	require.NoError(t, err)
	defer f.Close()
	decoded, err := gif.DecodeAll(f)
	require.NoError(t, err)
	assert.Len(t, decoded.Image, 4, "frame count preserved")
	assert.Equal(t, []int{8, 9, 10, 11}, decoded.Delay, "frame timing preserved")
	assert.Equal(t, 2, decoded.LoopCount)
}

func TestOptimizeAnimatedTierPalettes(t *testing.T) {
	assert.Equal(t, animTier{maxDim: 480, colors: 256}, animTierFor(config.PhotoClarity))
	assert.Equal(t, animTier{maxDim: 360, colors: 192}, animTierFor(config.PhotoBalanced))
	assert.Equal(t, animTier{maxDim: 280, colors: 128}, animTierFor(config.PhotoQuick))
}
