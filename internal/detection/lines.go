package detection

import (
	"errors"
	"fmt"
	"image"
	"math"
	"sort"

	"github.com/rs/zerolog"

	"github.com/ironsheep/hough-lines-mcp/internal/hough"
)

// ErrInvalidParams is returned by Params.Validate and Detect for unusable
// parameters.
var ErrInvalidParams = errors.New("invalid detection parameters")

// EdgeMode selects the edge classifier.
type EdgeMode string

const (
	// EdgeIntensity votes with pixels darker than Params.EdgeThreshold.
	EdgeIntensity EdgeMode = "intensity"
	// EdgeContrast votes with pixels that differ from a neighbour by at least
	// Params.MinContrast.
	EdgeContrast EdgeMode = "contrast"
	// EdgeCanny votes with the thinned gradient ridges of the Canny detector,
	// using the Params.CannyLow and Params.CannyHigh hysteresis thresholds.
	EdgeCanny EdgeMode = "canny"
)

// Params configures a detection run.
type Params struct {
	// ThetaScale oversamples the angle axis: ThetaScale*180 steps.
	ThetaScale int `json:"theta_scale"`

	// RhoScale oversamples the distance axis.
	RhoScale int `json:"rho_scale"`

	// Threshold is the minimum vote count for a cell to become a line.
	Threshold int `json:"threshold"`

	EdgeMode      EdgeMode `json:"edge_mode"`
	EdgeThreshold int      `json:"edge_threshold"`
	MinContrast   int      `json:"min_contrast"`
	CannyLow      int      `json:"canny_low"`
	CannyHigh     int      `json:"canny_high"`

	// PeakRadius enables non-maximum suppression over a square window of
	// this radius. 0 keeps every over-threshold cell.
	PeakRadius int `json:"peak_radius"`

	// MaxLines keeps only the strongest lines. 0 means no limit.
	MaxLines int `json:"max_lines"`
}

// DefaultParams returns the parameters used when a caller gives none.
func DefaultParams() Params {
	return Params{
		ThetaScale:    1,
		RhoScale:      1,
		Threshold:     100,
		EdgeMode:      EdgeIntensity,
		EdgeThreshold: hough.DefaultIntensityThreshold,
		MinContrast:   hough.DefaultMinContrast,
		CannyLow:      hough.DefaultCannyLow,
		CannyHigh:     hough.DefaultCannyHigh,
	}
}

// Validate reports the first unusable parameter.
func (p Params) Validate() error {
	switch {
	case p.ThetaScale < 1:
		return fmt.Errorf("%w: theta_scale must be >= 1, got %d", ErrInvalidParams, p.ThetaScale)
	case p.RhoScale < 1:
		return fmt.Errorf("%w: rho_scale must be >= 1, got %d", ErrInvalidParams, p.RhoScale)
	case p.Threshold < 0 || int64(p.Threshold) > math.MaxUint32:
		return fmt.Errorf("%w: threshold must be in [0,%d], got %d", ErrInvalidParams, uint32(math.MaxUint32), p.Threshold)
	case p.EdgeThreshold < 0 || p.EdgeThreshold > 256:
		return fmt.Errorf("%w: edge_threshold must be in [0,256], got %d", ErrInvalidParams, p.EdgeThreshold)
	case p.MinContrast < 0 || p.MinContrast > 255:
		return fmt.Errorf("%w: min_contrast must be in [0,255], got %d", ErrInvalidParams, p.MinContrast)
	case p.CannyLow < 0 || p.CannyHigh > 255 || p.CannyLow > p.CannyHigh:
		return fmt.Errorf("%w: canny thresholds must satisfy 0 <= low <= high <= 255, got %d and %d",
			ErrInvalidParams, p.CannyLow, p.CannyHigh)
	case p.PeakRadius < 0:
		return fmt.Errorf("%w: peak_radius must be >= 0, got %d", ErrInvalidParams, p.PeakRadius)
	case p.MaxLines < 0:
		return fmt.Errorf("%w: max_lines must be >= 0, got %d", ErrInvalidParams, p.MaxLines)
	}

	switch p.EdgeMode {
	case EdgeIntensity, EdgeContrast, EdgeCanny:
		return nil
	}
	return fmt.Errorf("%w: unknown edge_mode %q", ErrInvalidParams, p.EdgeMode)
}

// Classifier returns the edge classifier p selects for img.
func (p Params) Classifier(img image.Image) hough.EdgeClassifier {
	switch p.EdgeMode {
	case EdgeContrast:
		return hough.NewContrastClassifier(img, p.MinContrast)
	case EdgeCanny:
		return hough.NewCannyClassifier(img, p.CannyLow, p.CannyHigh)
	}
	return hough.NewIntensityClassifier(img, p.EdgeThreshold)
}

// Point represents a 2D coordinate in pixel space.
type Point struct {
	X int `json:"x"` // Horizontal position (0 = leftmost)
	Y int `json:"y"` // Vertical position (0 = topmost)
}

// Line is a detected line, clipped to the image.
type Line struct {
	Start Point `json:"start"`
	End   Point `json:"end"`

	// Theta is the accumulator column; ThetaDegrees is Theta descaled to
	// whole degrees, which is what the geometry was built from.
	Theta        int     `json:"theta"`
	ThetaDegrees int     `json:"theta_degrees"`
	Regime       string  `json:"regime"`
	Rho          float64 `json:"rho"`
	Votes        uint32  `json:"votes"`

	Length       float64 `json:"length"`
	AngleDegrees float64 `json:"angle_degrees"`
}

// Result is the outcome of Detect.
type Result struct {
	Axes  hough.Axes `json:"axes"`
	Lines []Line     `json:"lines"`
	Count int        `json:"count"`

	// Peaks is the number of cells selected before clipping.
	Peaks int `json:"peaks"`

	// Rejected counts reconstructed lines that missed the image entirely.
	Rejected int `json:"rejected"`

	Stats Stats `json:"stats"`

	// Accumulator and Segments feed the renderers.
	Accumulator *hough.Accumulator `json:"-"`
	Segments    []hough.Segment    `json:"-"`
}

// Accumulate validates p and builds the Hough accumulator for img without
// selecting peaks.
func Accumulate(img image.Image, p Params) (*hough.Accumulator, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}

	bounds := img.Bounds()
	axes, err := hough.NewAxes(bounds.Dx(), bounds.Dy(), p.ThetaScale, p.RhoScale)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidParams, err)
	}

	acc, err := hough.Build(img, p.Classifier(img), axes)
	if err != nil {
		return nil, fmt.Errorf("failed to build accumulator: %w", err)
	}
	return acc, nil
}

// Detect finds straight lines in img.
func Detect(img image.Image, p Params, logger zerolog.Logger) (*Result, error) {
	acc, err := Accumulate(img, p)
	if err != nil {
		return nil, err
	}
	axes := acc.Axes

	stats := ComputeStats(acc)
	logger.Debug().
		Int("theta_axis_size", axes.ThetaSize).
		Int("rho_axis_size", axes.RhoSize).
		Int("edge_pixels", stats.EdgePixels).
		Uint32("max_votes", stats.MaxVotes).
		Msg("accumulator built")

	peaks := acc.Peaks(uint32(p.Threshold), p.PeakRadius)
	if p.MaxLines > 0 && len(peaks) > p.MaxLines {
		sort.SliceStable(peaks, func(i, j int) bool {
			return peaks[i].Votes > peaks[j].Votes
		})
		peaks = peaks[:p.MaxLines]
	}

	result := &Result{
		Axes:        axes,
		Lines:       make([]Line, 0, len(peaks)),
		Peaks:       len(peaks),
		Stats:       stats,
		Accumulator: acc,
	}

	rect := hough.ImageRect(axes.Width, axes.Height)
	for _, peak := range peaks {
		raw := axes.Reconstruct(peak.Theta, peak.RhoIndex)
		clipped, ok := hough.ClipLiangBarsky(rect, raw)
		if !ok {
			result.Rejected++
			logger.Warn().
				Int("theta", peak.Theta).
				Int("rho_index", peak.RhoIndex).
				Uint32("votes", peak.Votes).
				Interface("segment", raw).
				Msg("reconstructed line misses the image")
			continue
		}

		result.Segments = append(result.Segments, clipped)
		result.Lines = append(result.Lines, newLine(axes, peak, clipped))
	}
	result.Count = len(result.Lines)

	logger.Debug().
		Int("peaks", result.Peaks).
		Int("lines", result.Count).
		Int("rejected", result.Rejected).
		Msg("lines reconstructed")

	return result, nil
}

func newLine(axes hough.Axes, peak hough.Peak, seg hough.Segment) Line {
	start := Point{X: seg.A.X, Y: axes.Height - 1 - seg.A.Y}
	end := Point{X: seg.B.X, Y: axes.Height - 1 - seg.B.Y}

	dx := float64(end.X - start.X)
	dy := float64(end.Y - start.Y)
	degrees := axes.CanonicalTheta(peak.Theta)

	return Line{
		Start:        start,
		End:          end,
		Theta:        peak.Theta,
		ThetaDegrees: degrees,
		Regime:       hough.ClassifyAngle(degrees).String(),
		Rho:          math.Round(axes.RhoValue(peak.RhoIndex)*100) / 100,
		Votes:        peak.Votes,
		Length:       math.Round(math.Hypot(dx, dy)*10) / 10,
		AngleDegrees: math.Round(math.Atan2(dy, dx)*180/math.Pi*10) / 10,
	}
}

// Translate moves a result computed on a region of a larger image into that
// image's coordinates. origin is the region's top-left corner and fullHeight
// the larger image's height; Lines shift in image space and Segments in the
// bottom-up Cartesian frame.
func (r *Result) Translate(origin image.Point, fullHeight int) {
	for i := range r.Lines {
		r.Lines[i].Start.X += origin.X
		r.Lines[i].Start.Y += origin.Y
		r.Lines[i].End.X += origin.X
		r.Lines[i].End.Y += origin.Y
	}

	shift := image.Pt(origin.X, fullHeight-origin.Y-r.Axes.Height)
	for i := range r.Segments {
		r.Segments[i].A = r.Segments[i].A.Add(shift)
		r.Segments[i].B = r.Segments[i].B.Add(shift)
	}
}
