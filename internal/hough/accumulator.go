package hough

import (
	"errors"
	"fmt"
	"image"
	"math"
)

// ErrRhoOutOfRange reports a vote whose rho bin falls outside the rho axis.
// It means the rho scaling and the axis sizing disagree and is never expected
// for a well-formed Axes.
var ErrRhoOutOfRange = errors.New("hough: rho index out of range")

// Accumulator is the Hough vote histogram, ThetaSize x RhoSize counts.
type Accumulator struct {
	Axes Axes

	// EdgePixels is the number of pixels that voted.
	EdgePixels int

	cells []uint32
}

// NewAccumulator allocates a zero-filled accumulator for axes.
func NewAccumulator(axes Axes) *Accumulator {
	return &Accumulator{
		Axes:  axes,
		cells: make([]uint32, axes.ThetaSize*axes.RhoSize),
	}
}

// At returns the vote count of cell (theta, rho). Out-of-range cells read as 0.
func (a *Accumulator) At(theta, rho int) uint32 {
	if !a.inRange(theta, rho) {
		return 0
	}
	return a.cells[theta*a.Axes.RhoSize+rho]
}

// Values exposes the raw counts, theta-major. Callers must not modify them.
func (a *Accumulator) Values() []uint32 {
	return a.cells
}

// Max returns the largest vote count.
func (a *Accumulator) Max() uint32 {
	var max uint32
	for _, v := range a.cells {
		if v > max {
			max = v
		}
	}
	return max
}

func (a *Accumulator) vote(theta int, rho float64) error {
	idx := a.Axes.RhoIndex(rho)
	if !a.inRange(theta, idx) {
		return fmt.Errorf("%w: theta %d rho %.3f -> bin %d of %d", ErrRhoOutOfRange, theta, rho, idx, a.Axes.RhoSize)
	}
	a.cells[theta*a.Axes.RhoSize+idx]++
	return nil
}

func (a *Accumulator) inRange(theta, rho int) bool {
	return theta >= 0 && theta < a.Axes.ThetaSize && rho >= 0 && rho < a.Axes.RhoSize
}

// Build scans img and accumulates votes from every pixel the classifier
// accepts. axes must have been computed for img's dimensions.
//
// Each edge pixel (x, y) votes once per theta step at
// rho = x*cos(theta) + (H-1-y)*sin(theta).
func Build(img image.Image, classifier EdgeClassifier, axes Axes) (*Accumulator, error) {
	b := img.Bounds()
	if b.Dx() != axes.Width || b.Dy() != axes.Height {
		return nil, fmt.Errorf("hough: image is %dx%d but axes were computed for %dx%d",
			b.Dx(), b.Dy(), axes.Width, axes.Height)
	}

	acc := NewAccumulator(axes)

	// Same expression as Rho, tabulated once per axis.
	sines := make([]float64, axes.ThetaSize)
	cosines := make([]float64, axes.ThetaSize)
	for t := range sines {
		sines[t], cosines[t] = math.Sincos(DegreesToRadians(float64(t), axes.ThetaSize))
	}

	for y := 0; y < axes.Height; y++ {
		yInv := float64(axes.Height - 1 - y)
		for x := 0; x < axes.Width; x++ {
			if !classifier.IsEdge(x, y) {
				continue
			}
			acc.EdgePixels++
			fx := float64(x)
			for t := 0; t < axes.ThetaSize; t++ {
				if err := acc.vote(t, fx*cosines[t]+yInv*sines[t]); err != nil {
					return nil, err
				}
			}
		}
	}

	return acc, nil
}

// Peak is an accumulator cell that reached the vote threshold.
type Peak struct {
	Theta    int    `json:"theta"`
	RhoIndex int    `json:"rho_index"`
	Votes    uint32 `json:"votes"`
}

// Peaks lists every cell with at least threshold votes, rho bin ascending and
// theta ascending within a bin. This walks the Hough-space picture from its
// bottom-left corner to its top-right corner.
//
// A radius above zero keeps only cells that no other cell within radius steps
// on either axis outvotes. Plateaus of equal counts are all kept.
func (a *Accumulator) Peaks(threshold uint32, radius int) []Peak {
	var peaks []Peak
	for rho := 0; rho < a.Axes.RhoSize; rho++ {
		for theta := 0; theta < a.Axes.ThetaSize; theta++ {
			votes := a.cells[theta*a.Axes.RhoSize+rho]
			if votes < threshold {
				continue
			}
			if radius > 0 && !a.isLocalMax(theta, rho, votes, radius) {
				continue
			}
			peaks = append(peaks, Peak{Theta: theta, RhoIndex: rho, Votes: votes})
		}
	}
	return peaks
}

func (a *Accumulator) isLocalMax(theta, rho int, votes uint32, radius int) bool {
	for dt := -radius; dt <= radius; dt++ {
		for dr := -radius; dr <= radius; dr++ {
			if dt == 0 && dr == 0 {
				continue
			}
			if a.At(theta+dt, rho+dr) > votes {
				return false
			}
		}
	}
	return true
}
