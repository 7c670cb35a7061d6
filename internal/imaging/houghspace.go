package imaging

import (
	"image"
	"image/color"
	"math"

	"github.com/lucasb-eyer/go-colorful"

	"github.com/ironsheep/hough-lines-mcp/internal/hough"
)

// HoughSpace renders an accumulator as a greyscale image, ThetaSize pixels
// wide and RhoSize pixels tall.
//
// Each cell becomes round(votes * 255 / max), clamped to 255, where max is the
// largest count in the accumulator. The rho axis is flipped so that bin 0 is
// the bottom row. An accumulator without votes renders black.
func HoughSpace(acc *hough.Accumulator) *image.Gray {
	axes := acc.Axes
	out := image.NewGray(image.Rect(0, 0, axes.ThetaSize, axes.RhoSize))

	max := acc.Max()
	if max == 0 {
		return out
	}

	for rho := 0; rho < axes.RhoSize; rho++ {
		row := axes.RhoSize - 1 - rho
		for theta := 0; theta < axes.ThetaSize; theta++ {
			out.SetGray(theta, row, color.Gray{Y: normalize(acc.At(theta, rho), max)})
		}
	}
	return out
}

// HoughSpaceHeat renders the accumulator like HoughSpace but maps the
// normalised count onto a blue-to-red hue ramp, with brightness following the
// count. Empty cells stay black.
func HoughSpaceHeat(acc *hough.Accumulator) *image.NRGBA {
	axes := acc.Axes
	out := image.NewNRGBA(image.Rect(0, 0, axes.ThetaSize, axes.RhoSize))

	max := acc.Max()
	for rho := 0; rho < axes.RhoSize; rho++ {
		row := axes.RhoSize - 1 - rho
		for theta := 0; theta < axes.ThetaSize; theta++ {
			var v uint8
			if max > 0 {
				v = normalize(acc.At(theta, rho), max)
			}
			out.SetNRGBA(theta, row, heat(v))
		}
	}
	return out
}

func normalize(votes, max uint32) uint8 {
	n := math.Round(float64(votes) * 255 / float64(max))
	if n > 255 {
		n = 255
	}
	return uint8(n)
}

func heat(v uint8) color.NRGBA {
	if v == 0 {
		return color.NRGBA{A: 255}
	}
	f := float64(v) / 255
	r, g, b := colorful.Hsv(240*(1-f), 1, f).Clamped().RGB255()
	return color.NRGBA{R: r, G: g, B: b, A: 255}
}
