package detection

import (
	"image/color"
	"testing"

	"github.com/ironsheep/hough-lines-mcp/internal/hough"
)

func buildAccumulator(t *testing.T, width, height int, black ...[2]int) *hough.Accumulator {
	t.Helper()
	img := createTestImage(width, height, color.White)
	for _, p := range black {
		img.Set(p[0], p[1], color.Black)
	}
	axes, err := hough.NewAxes(width, height, 1, 1)
	if err != nil {
		t.Fatalf("NewAxes failed: %v", err)
	}
	acc, err := hough.Build(img, hough.NewIntensityClassifier(img, 1), axes)
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}
	return acc
}

func TestComputeStats_Empty(t *testing.T) {
	s := ComputeStats(buildAccumulator(t, 10, 10))
	if s != (Stats{}) {
		t.Errorf("got %+v, want zero stats", s)
	}
}

func TestComputeStats_SinglePixel(t *testing.T) {
	s := ComputeStats(buildAccumulator(t, 10, 10, [2]int{4, 4}))

	if s.EdgePixels != 1 {
		t.Errorf("EdgePixels: got %d, want 1", s.EdgePixels)
	}
	if s.TotalVotes != 180 || s.NonZeroCells != 180 {
		t.Errorf("votes/cells: got %d/%d, want 180/180", s.TotalVotes, s.NonZeroCells)
	}
	if s.MaxVotes != 1 || s.MeanVotes != 1 || s.StdDevVotes != 0 {
		t.Errorf("max/mean/std: got %d/%.2f/%.2f, want 1/1/0", s.MaxVotes, s.MeanVotes, s.StdDevVotes)
	}
}

func TestComputeStats_TwoPixels(t *testing.T) {
	s := ComputeStats(buildAccumulator(t, 10, 10, [2]int{2, 5}, [2]int{3, 5}))

	if s.TotalVotes != 360 {
		t.Errorf("TotalVotes: got %d, want 360", s.TotalVotes)
	}
	if s.MaxVotes != 2 {
		t.Errorf("MaxVotes: got %d, want 2", s.MaxVotes)
	}
	if s.StdDevVotes <= 0 {
		t.Errorf("StdDevVotes: got %.2f, want > 0", s.StdDevVotes)
	}
}
