package hough

import (
	"errors"
	"fmt"
	"math"
)

// CanonicalThetaSize is the number of theta steps at a scale factor of one,
// one step per degree.
const CanonicalThetaSize = 180

var (
	// ErrInvalidScale is returned when a theta or rho scale factor is below one.
	ErrInvalidScale = errors.New("hough: scale factor must be >= 1")

	// ErrEmptyImage is returned for images with no pixels.
	ErrEmptyImage = errors.New("hough: image has no pixels")
)

// DegreesToRadians converts a theta step to radians on an axis of axisSize
// steps spanning half a turn. With axisSize 180 this is the usual degree
// conversion.
func DegreesToRadians(deg float64, axisSize int) float64 {
	return deg * math.Pi / float64(axisSize)
}

// MaxLineLength returns the length of the image diagonal rounded up. No line
// through the image lies farther than this from the origin.
func MaxLineLength(w, h int) int {
	return int(math.Ceil(math.Hypot(float64(w), float64(h))))
}

// Rho evaluates the normal form x*cos(t) + y*sin(t) for theta step t on an
// axis of axisSize steps. y is measured upward from the image bottom.
func Rho(theta float64, axisSize int, x, y float64) float64 {
	sin, cos := math.Sincos(DegreesToRadians(theta, axisSize))
	return x*cos + y*sin
}

// Axes describes the shape of a Hough accumulator for one image.
type Axes struct {
	Width      int `json:"width"`
	Height     int `json:"height"`
	ThetaScale int `json:"theta_scale"`
	RhoScale   int `json:"rho_scale"`
	ThetaSize  int `json:"theta_axis_size"`
	RhoSize    int `json:"rho_axis_size"`
	RhoHalf    int `json:"rho_axis_half"`
	MaxLen     int `json:"max_line_length"`
}

// NewAxes computes the accumulator geometry for a w x h image.
//
// RhoHalf is RhoSize/2 rounded down. For even sizes this equals rounding the
// exact half; for odd sizes rounding up would place the bin of the farthest
// corner pixel one past the end of the axis.
func NewAxes(w, h, thetaScale, rhoScale int) (Axes, error) {
	if thetaScale < 1 {
		return Axes{}, fmt.Errorf("%w: theta scale %d", ErrInvalidScale, thetaScale)
	}
	if rhoScale < 1 {
		return Axes{}, fmt.Errorf("%w: rho scale %d", ErrInvalidScale, rhoScale)
	}
	if w < 1 || h < 1 {
		return Axes{}, fmt.Errorf("%w: %dx%d", ErrEmptyImage, w, h)
	}

	maxLen := MaxLineLength(w, h)
	rhoSize := maxLen * rhoScale

	return Axes{
		Width:      w,
		Height:     h,
		ThetaScale: thetaScale,
		RhoScale:   rhoScale,
		ThetaSize:  CanonicalThetaSize * thetaScale,
		RhoSize:    rhoSize,
		RhoHalf:    rhoSize / 2,
		MaxLen:     maxLen,
	}, nil
}

// RhoIndex maps a continuous rho to its bin on the rho axis. The result is
// not range checked.
func (a Axes) RhoIndex(rho float64) int {
	return int(math.Round(rho*float64(a.RhoHalf)/float64(a.MaxLen))) + a.RhoHalf
}

// RhoValue maps a rho bin back to a continuous rho.
func (a Axes) RhoValue(index int) float64 {
	return float64(index-a.RhoHalf) * float64(a.MaxLen) / float64(a.RhoHalf)
}

// CanonicalTheta descales an oversampled theta step to whole degrees in
// [0, 180]. Fractional results round to the nearest degree, so the last few
// steps of an oversampled axis may land on 180.
func (a Axes) CanonicalTheta(theta int) int {
	return int(math.Round(float64(theta) / float64(a.ThetaScale)))
}
