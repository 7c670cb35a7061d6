package hough

import (
	"image"
	"math"
)

// Segment is a line segment between two integer points.
type Segment struct {
	A image.Point `json:"a"`
	B image.Point `json:"b"`
}

// Regime is the angular case used to turn a (theta, rho) pair into two
// points. The closed-form intercepts divide by sin(theta) or cos(theta), which
// vanish on the axes, so those angles get their own cases.
type Regime int

const (
	// RegimeVertical covers theta 0 and 180: the line is x = |rho|.
	RegimeVertical Regime = iota
	// RegimeHorizontal covers theta 90: the line is y = |rho|.
	RegimeHorizontal
	// RegimeFalling covers 0 < theta < 90: negative slope, crossing both axes.
	RegimeFalling
	// RegimeRising covers 90 < theta < 180: positive slope.
	RegimeRising
)

func (r Regime) String() string {
	switch r {
	case RegimeVertical:
		return "vertical"
	case RegimeHorizontal:
		return "horizontal"
	case RegimeFalling:
		return "falling"
	case RegimeRising:
		return "rising"
	}
	return "unknown"
}

// ClassifyAngle returns the regime of a canonical theta in [0, 180].
func ClassifyAngle(theta int) Regime {
	switch {
	case theta == 0 || theta == 180:
		return RegimeVertical
	case theta == 90:
		return RegimeHorizontal
	case theta < 90:
		return RegimeFalling
	default:
		return RegimeRising
	}
}

// LineFromRhoTheta returns two points on the line with normal angle theta
// (whole degrees in [0, 180]) and signed distance rho, for a w x h image. The
// points are in the bottom-up Cartesian frame and may lie outside the image;
// ClipLiangBarsky trims them.
//
// The triangle formed by the line, the x-axis and the normal from the origin
// gives the intercepts by the law of sines, with alpha the angle at the origin
// and beta = 90 - alpha.
func LineFromRhoTheta(theta int, rho float64, w, h int) Segment {
	r := math.Abs(rho)

	var x1, y1, x2, y2 float64
	switch ClassifyAngle(theta) {
	case RegimeVertical:
		x1, y1 = r, float64(h)
		x2, y2 = r, 0
	case RegimeHorizontal:
		x1, y1 = 0, r
		x2, y2 = float64(w), r
	case RegimeFalling:
		sinA, sinB := sines(theta)
		x1, y1 = 0, r/sinA
		x2, y2 = r/sinB, 0
	case RegimeRising:
		sinA, sinB := sines(theta % 90)
		// x-axis crossing lies right of the origin for negative rho and
		// left of it otherwise.
		if rho < 0 {
			x1 = r / sinA
		} else {
			x1 = -r / sinA
		}
		y1 = 0
		x2 = float64(w)
		y2 = (x2 - x1) * sinA / sinB
	}

	return Segment{
		A: image.Pt(round(x1), round(y1)),
		B: image.Pt(round(x2), round(y2)),
	}
}

// Reconstruct maps accumulator cell (theta, rhoIndex) back to a segment. Theta
// is descaled to whole degrees first, so the canonical 180-step axis is used
// for the trigonometry.
func (a Axes) Reconstruct(theta, rhoIndex int) Segment {
	return LineFromRhoTheta(a.CanonicalTheta(theta), a.RhoValue(rhoIndex), a.Width, a.Height)
}

func sines(alpha int) (sinA, sinB float64) {
	sinA = math.Sin(DegreesToRadians(float64(alpha), CanonicalThetaSize))
	sinB = math.Sin(DegreesToRadians(float64(90-alpha), CanonicalThetaSize))
	return sinA, sinB
}

func round(v float64) int {
	return int(math.Round(v))
}
