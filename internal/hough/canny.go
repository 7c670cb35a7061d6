package hough

import (
	"image"
	"math"

	"github.com/anthonynsimon/bild/blur"
	"github.com/anthonynsimon/bild/effect"
)

// Default Canny hysteresis thresholds on the 0-255 gradient scale.
const (
	DefaultCannyLow  = 50
	DefaultCannyHigh = 150
)

// cannyBlurRadius is the Gaussian radius applied before differentiation.
// Pixels closer than cannyBlurRadius+1 to the border never become edges, so
// the result does not depend on how the blur pads the image.
const cannyBlurRadius = 2

var (
	sobelX = [3][3]float64{{-1, 0, 1}, {-2, 0, 2}, {-1, 0, 1}}
	sobelY = [3][3]float64{{-1, -2, -1}, {0, 0, 0}, {1, 2, 1}}
)

// CannyClassifier marks the thin, connected gradient ridges found by the
// Canny detector. Unlike the intensity test it finds the boundaries of filled
// shapes, so a solid rectangle votes for its four sides rather than its area.
type CannyClassifier struct {
	mask  []bool
	width int
}

// NewCannyClassifier runs the detector over img once. Gradient magnitudes at
// or above high are strong edges; those between low and high are kept only
// when connected to a strong edge.
func NewCannyClassifier(img image.Image, low, high int) *CannyClassifier {
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()
	c := &CannyClassifier{mask: make([]bool, w*h), width: w}

	frame := cannyBlurRadius + 1
	if w <= 2*frame || h <= 2*frame {
		return c
	}

	smooth := blur.Gaussian(effect.Grayscale(img), cannyBlurRadius)
	sb := smooth.Bounds()
	lum := make([]float64, w*h)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			lum[y*w+x] = float64(smooth.RGBAAt(sb.Min.X+x, sb.Min.Y+y).R) / 255
		}
	}

	mag := make([]float64, w*h)
	dir := make([]float64, w*h)
	for y := 1; y < h-1; y++ {
		for x := 1; x < w-1; x++ {
			var gx, gy float64
			for ky := -1; ky <= 1; ky++ {
				for kx := -1; kx <= 1; kx++ {
					v := lum[(y+ky)*w+x+kx]
					gx += v * sobelX[ky+1][kx+1]
					gy += v * sobelY[ky+1][kx+1]
				}
			}
			mag[y*w+x] = math.Hypot(gx, gy)
			dir[y*w+x] = math.Atan2(gy, gx)
		}
	}

	thin := make([]float64, w*h)
	for y := frame; y < h-frame; y++ {
		for x := frame; x < w-frame; x++ {
			i := y*w + x
			dx, dy := gradientNeighbour(dir[i])
			if mag[i] >= mag[(y+dy)*w+x+dx] && mag[i] >= mag[(y-dy)*w+x-dx] {
				thin[i] = mag[i]
			}
		}
	}

	lowT, highT := float64(low)/255, float64(high)/255
	var stack []int
	for i, v := range thin {
		if v >= highT && v > 0 {
			c.mask[i] = true
			stack = append(stack, i)
		}
	}

	// Grow strong edges through 8-connected weak ones.
	for len(stack) > 0 {
		i := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		x, y := i%w, i/w
		for ny := y - 1; ny <= y+1; ny++ {
			for nx := x - 1; nx <= x+1; nx++ {
				if nx < 0 || nx >= w || ny < 0 || ny >= h {
					continue
				}
				j := ny*w + nx
				if !c.mask[j] && thin[j] >= lowT && thin[j] > 0 {
					c.mask[j] = true
					stack = append(stack, j)
				}
			}
		}
	}

	return c
}

// gradientNeighbour quantises a gradient direction to the pixel step that
// points along it.
func gradientNeighbour(angle float64) (dx, dy int) {
	a := math.Mod(angle+math.Pi, math.Pi)
	switch {
	case a < math.Pi/8 || a >= 7*math.Pi/8:
		return 1, 0
	case a < 3*math.Pi/8:
		return 1, 1
	case a < 5*math.Pi/8:
		return 0, 1
	default:
		return -1, 1
	}
}

// IsEdge implements EdgeClassifier.
func (c *CannyClassifier) IsEdge(x, y int) bool {
	return c.mask[y*c.width+x]
}
