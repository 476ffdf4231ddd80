package probe

import (
	"fmt"
	"image"
	"image/color"
	"image/gif"
	"os"
	"path/filepath"
	"strings"

	_ "image/jpeg"
	_ "image/png"

	_ "github.com/chai2010/webp"
)

// ProbeImage decodes just enough of the file at path to report its
// dimensions, format, transparency, and animation status.
func ProbeImage(path string) (*ImageMetadata, error) {
	fi, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("stat %q: %w", path, err)
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %q: %w", path, err)
	}
	defer f.Close()

	// GIFs need a full decode to count frames; everything else only needs
	// the header.
	if strings.EqualFold(filepath.Ext(path), ".gif") {
		g, err := gif.DecodeAll(f)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrNotMedia, err)
		}
		return &ImageMetadata{
			Width:      g.Config.Width,
			Height:     g.Config.Height,
			Format:     "gif",
			FileSize:   fi.Size(),
			HasAlpha:   true,
			Animated:   len(g.Image) > 1,
			FrameCount: len(g.Image),
		}, nil
	}

	cfg, format, err := image.DecodeConfig(f)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrNotMedia, err)
	}

	return &ImageMetadata{
		Width:      cfg.Width,
		Height:     cfg.Height,
		Format:     format,
		FileSize:   fi.Size(),
		HasAlpha:   modelHasAlpha(cfg.ColorModel),
		Animated:   false,
		FrameCount: 1,
	}, nil
}

func modelHasAlpha(m color.Model) bool {
	switch m {
	case color.RGBAModel, color.RGBA64Model, color.NRGBAModel, color.NRGBA64Model, color.AlphaModel, color.Alpha16Model:
		return true
	}
	// Paletted images may carry transparent entries.
	if _, ok := m.(color.Palette); ok {
		return true
	}
	return false
}
