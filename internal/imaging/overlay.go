package imaging

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"strings"

	"github.com/disintegration/imaging"
	"github.com/lucasb-eyer/go-colorful"

	"github.com/ironsheep/hough-lines-mcp/internal/hough"
)

// DefaultLineColor is the overlay color used when none is given.
const DefaultLineColor = "#FF0000"

// Overlay returns a copy of img with every segment drawn in c.
//
// Segments are in the bottom-up Cartesian frame used by package hough; each
// endpoint's y is converted to an image row as H-1-y before drawing.
func Overlay(img image.Image, segments []hough.Segment, c color.Color) *image.NRGBA {
	out := imaging.Clone(img)
	h := out.Bounds().Dy()

	for _, s := range segments {
		DrawLine(out, ToImage(s.A, h), ToImage(s.B, h), c)
	}
	return out
}

// ToImage converts a bottom-up Cartesian point to image coordinates for an
// image of height h.
func ToImage(p image.Point, h int) image.Point {
	return image.Pt(p.X, h-1-p.Y)
}

// DrawLine rasterises the segment a-b onto dst with Bresenham's algorithm.
// Both endpoints are drawn; pixels outside dst are skipped.
func DrawLine(dst draw.Image, a, b image.Point, c color.Color) {
	bounds := dst.Bounds()

	dx := abs(b.X - a.X)
	dy := -abs(b.Y - a.Y)
	sx, sy := 1, 1
	if a.X > b.X {
		sx = -1
	}
	if a.Y > b.Y {
		sy = -1
	}

	err := dx + dy
	x, y := a.X, a.Y
	for {
		if image.Pt(x, y).In(bounds) {
			dst.Set(x, y, c)
		}
		if x == b.X && y == b.Y {
			return
		}
		e2 := 2 * err
		if e2 >= dy {
			err += dy
			x += sx
		}
		if e2 <= dx {
			err += dx
			y += sy
		}
	}
}

// ParseColor parses a "#RRGGBB" hex color. The leading '#' is optional.
func ParseColor(hex string) (color.Color, error) {
	if hex == "" {
		return nil, fmt.Errorf("empty color string")
	}
	if !strings.HasPrefix(hex, "#") {
		hex = "#" + hex
	}

	c, err := colorful.Hex(hex)
	if err != nil {
		return nil, fmt.Errorf("invalid color %q: %w", hex, err)
	}
	r, g, b := c.RGB255()
	return color.NRGBA{R: r, G: g, B: b, A: 255}, nil
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
