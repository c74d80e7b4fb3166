package grid

import (
	"fmt"
	"image"
	"image/color"
	"iter"
	"strconv"
	"strings"

	"golang.org/x/image/draw"
)

const DefaultBackground = "#0d1117"

// DefaultPalette is the GitHub dark theme, indexed by level.
var DefaultPalette = []string{"#161b22", "#0e4429", "#006d32", "#26a641", "#39d353"}

type Palette [Levels]color.RGBA

func ParsePalette(hexes []string) (Palette, error) {
	var p Palette
	if len(hexes) != Levels {
		return p, fmt.Errorf("palette needs %d colors, got %d", Levels, len(hexes))
	}
	for i, h := range hexes {
		c, err := ParseHex(h)
		if err != nil {
			return p, fmt.Errorf("palette entry %d: %w", i, err)
		}
		p[i] = c
	}
	return p, nil
}

// ParseHex parses an opaque "#rrggbb" color. The leading '#' is optional.
func ParseHex(s string) (color.RGBA, error) {
	h := strings.TrimPrefix(strings.TrimSpace(s), "#")
	if len(h) != 6 {
		return color.RGBA{}, fmt.Errorf("invalid hex color %q", s)
	}
	v, err := strconv.ParseUint(h, 16, 32)
	if err != nil {
		return color.RGBA{}, fmt.Errorf("invalid hex color %q", s)
	}
	return color.RGBA{R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v), A: 0xff}, nil
}

// Renderer paints cells into a fresh raster.
type Renderer struct {
	Layout     Layout
	Background color.RGBA
	Palette    Palette
}

func NewRenderer(layout Layout, background color.RGBA, palette Palette) *Renderer {
	return &Renderer{Layout: layout, Background: background, Palette: palette}
}

// Render fills the background then paints every cell as an opaque square.
// Later cells overwrite earlier ones; there is no blending.
func (r *Renderer) Render(cells iter.Seq[Cell]) *image.RGBA {
	w, h := r.Layout.Size()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.Draw(img, img.Bounds(), image.NewUniform(r.Background), image.Point{}, draw.Src)

	for c := range cells {
		x, y := c.Origin(r.Layout)
		rect := image.Rect(x, y, x+r.Layout.CellSize, y+r.Layout.CellSize)
		draw.Draw(img, rect, image.NewUniform(r.Palette[ClampLevel(c.Level)]), image.Point{}, draw.Src)
	}

	return img
}
