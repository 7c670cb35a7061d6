package hough

import (
	"image"
	"image/color"
	"math"

	"github.com/anthonynsimon/bild/effect"
)

// DefaultIntensityThreshold only accepts pure black pixels.
const DefaultIntensityThreshold = 1

// DefaultMinContrast is the neighbour contrast needed by ContrastClassifier.
const DefaultMinContrast = 85

// EdgeClassifier decides whether the pixel at (x, y) casts votes. Coordinates
// are relative to the image's top-left pixel, Y increasing downward.
type EdgeClassifier interface {
	IsEdge(x, y int) bool
}

// IntensityClassifier marks a pixel as an edge when the unweighted average of
// its red, green and blue channels, rounded to the nearest integer, is below
// Threshold.
//
// This is a darkness test rather than a gradient detector. With the default
// threshold of 1 only pure black pixels vote.
type IntensityClassifier struct {
	img       image.Image
	Threshold int
}

// NewIntensityClassifier returns an IntensityClassifier reading img.
func NewIntensityClassifier(img image.Image, threshold int) *IntensityClassifier {
	return &IntensityClassifier{img: img, Threshold: threshold}
}

// IsEdge implements EdgeClassifier.
func (c *IntensityClassifier) IsEdge(x, y int) bool {
	return Intensity(c.img, x, y) < c.Threshold
}

// Intensity returns the rounded unweighted average of a pixel's red, green
// and blue channels in 0-255. Channels are read unpremultiplied, so alpha
// does not darken a pixel: transparent white is still white.
func Intensity(img image.Image, x, y int) int {
	min := img.Bounds().Min
	c := color.NRGBAModel.Convert(img.At(min.X+x, min.Y+y)).(color.NRGBA)
	sum := float64(c.R) + float64(c.G) + float64(c.B)
	return int(math.Round(sum / 3))
}

// ContrastClassifier marks a pixel as an edge when the luminance of any of its
// eight neighbours differs from its own by at least MinContrast. Neighbours
// outside the image are ignored.
type ContrastClassifier struct {
	gray        *image.RGBA
	width       int
	height      int
	MinContrast int
}

// NewContrastClassifier converts img to luminance once and returns a
// classifier over it.
func NewContrastClassifier(img image.Image, minContrast int) *ContrastClassifier {
	b := img.Bounds()
	return &ContrastClassifier{
		gray:        effect.Grayscale(img),
		width:       b.Dx(),
		height:      b.Dy(),
		MinContrast: minContrast,
	}
}

// IsEdge implements EdgeClassifier.
func (c *ContrastClassifier) IsEdge(x, y int) bool {
	center := c.luma(x, y)
	for dy := -1; dy <= 1; dy++ {
		for dx := -1; dx <= 1; dx++ {
			if dx == 0 && dy == 0 {
				continue
			}
			nx, ny := x+dx, y+dy
			if nx < 0 || nx >= c.width || ny < 0 || ny >= c.height {
				continue
			}
			diff := c.luma(nx, ny) - center
			if diff < 0 {
				diff = -diff
			}
			if diff >= c.MinContrast {
				return true
			}
		}
	}
	return false
}

func (c *ContrastClassifier) luma(x, y int) int {
	min := c.gray.Bounds().Min
	return int(c.gray.RGBAAt(min.X+x, min.Y+y).R)
}
