package hough

import (
	"errors"
	"image"
	"image/color"
	"testing"
)

// createTestImage creates a solid image of the given color
func createTestImage(width, height int, c color.Color) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			img.Set(x, y, c)
		}
	}
	return img
}

// createDiagonalImage draws a black line from the top-left to the
// bottom-right corner of a white square image.
func createDiagonalImage(size int) *image.RGBA {
	img := createTestImage(size, size, color.White)
	for i := 0; i < size; i++ {
		img.Set(i, i, color.Black)
	}
	return img
}

func buildIntensity(t *testing.T, img image.Image, thetaScale, rhoScale int) *Accumulator {
	t.Helper()
	b := img.Bounds()
	axes, err := NewAxes(b.Dx(), b.Dy(), thetaScale, rhoScale)
	if err != nil {
		t.Fatalf("NewAxes failed: %v", err)
	}
	acc, err := Build(img, NewIntensityClassifier(img, DefaultIntensityThreshold), axes)
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}
	return acc
}

func TestBuild_SinglePixel(t *testing.T) {
	img := createTestImage(10, 10, color.White)
	img.Set(3, 2, color.Black)

	acc := buildIntensity(t, img, 1, 1)

	if acc.EdgePixels != 1 {
		t.Fatalf("EdgePixels: got %d, want 1", acc.EdgePixels)
	}

	var total uint32
	for _, v := range acc.Values() {
		total += v
	}
	if total != uint32(acc.Axes.ThetaSize) {
		t.Errorf("total votes: got %d, want %d", total, acc.Axes.ThetaSize)
	}

	// Row 2 from the top is row 7 from the bottom.
	for theta := 0; theta < acc.Axes.ThetaSize; theta++ {
		idx := acc.Axes.RhoIndex(Rho(float64(theta), acc.Axes.ThetaSize, 3, 7))
		if acc.At(theta, idx) != 1 {
			t.Errorf("theta %d: cell at bin %d has %d votes, want 1", theta, idx, acc.At(theta, idx))
		}
	}
}

func TestBuild_NoEdges(t *testing.T) {
	img := createTestImage(20, 15, color.White)
	acc := buildIntensity(t, img, 1, 1)

	if acc.Max() != 0 {
		t.Errorf("Max: got %d, want 0", acc.Max())
	}
	if acc.EdgePixels != 0 {
		t.Errorf("EdgePixels: got %d, want 0", acc.EdgePixels)
	}
	if len(acc.Values()) != acc.Axes.ThetaSize*acc.Axes.RhoSize {
		t.Errorf("cell count: got %d, want %d", len(acc.Values()), acc.Axes.ThetaSize*acc.Axes.RhoSize)
	}
}

func TestBuild_EveryEdgePixelVotesOncePerTheta(t *testing.T) {
	img := createTestImage(30, 20, color.Black)
	acc := buildIntensity(t, img, 3, 2)

	var total uint64
	for _, v := range acc.Values() {
		total += uint64(v)
	}
	want := uint64(30*20) * uint64(acc.Axes.ThetaSize)
	if total != want {
		t.Errorf("total votes: got %d, want %d", total, want)
	}
}

func TestBuild_DimensionMismatch(t *testing.T) {
	img := createTestImage(10, 10, color.White)
	axes, err := NewAxes(20, 10, 1, 1)
	if err != nil {
		t.Fatalf("NewAxes failed: %v", err)
	}
	if _, err := Build(img, NewIntensityClassifier(img, 1), axes); err == nil {
		t.Error("Build should fail when axes do not match the image")
	}
}

func TestBuild_RejectsOutOfRangeBin(t *testing.T) {
	img := createTestImage(10, 10, color.Black)
	axes, err := NewAxes(10, 10, 1, 1)
	if err != nil {
		t.Fatalf("NewAxes failed: %v", err)
	}
	// Shrinking the rho axis behind NewAxes' back breaks the sizing contract.
	axes.RhoSize = 4

	_, err = Build(img, NewIntensityClassifier(img, 1), axes)
	if !errors.Is(err, ErrRhoOutOfRange) {
		t.Errorf("got %v, want ErrRhoOutOfRange", err)
	}
}

func TestBuild_DiagonalPeak(t *testing.T) {
	for _, scale := range []int{1, 2} {
		img := createDiagonalImage(100)
		acc := buildIntensity(t, img, scale, scale)

		if acc.Max() != 100 {
			t.Fatalf("scale %d: Max: got %d, want 100", scale, acc.Max())
		}

		peaks := acc.Peaks(acc.Max(), 0)
		if len(peaks) != 1 {
			t.Fatalf("scale %d: got %d peaks at the maximum, want 1: %v", scale, len(peaks), peaks)
		}
		p := peaks[0]
		if got := acc.Axes.CanonicalTheta(p.Theta); got != 45 {
			t.Errorf("scale %d: peak theta %d descales to %d, want 45", scale, p.Theta, got)
		}

		clipped, ok := ClipLiangBarsky(ImageRect(100, 100), acc.Axes.Reconstruct(p.Theta, p.RhoIndex))
		if !ok {
			t.Fatalf("scale %d: reconstructed diagonal was clipped away", scale)
		}

		// Back to image rows: the diagonal runs from (0,0) to (99,99).
		a := image.Pt(clipped.A.X, 99-clipped.A.Y)
		b := image.Pt(clipped.B.X, 99-clipped.B.Y)
		if !near(a, image.Pt(0, 0)) || !near(b, image.Pt(99, 99)) {
			t.Errorf("scale %d: got %v-%v, want (0,0)-(99,99) within 1px", scale, a, b)
		}
	}
}

func near(a, b image.Point) bool {
	dx, dy := a.X-b.X, a.Y-b.Y
	return dx >= -1 && dx <= 1 && dy >= -1 && dy <= 1
}

func TestPeaks_Order(t *testing.T) {
	axes, err := NewAxes(10, 10, 1, 1)
	if err != nil {
		t.Fatalf("NewAxes failed: %v", err)
	}
	acc := NewAccumulator(axes)
	set := func(theta, rho int, v uint32) { acc.cells[theta*axes.RhoSize+rho] = v }
	set(100, 2, 5)
	set(3, 2, 7)
	set(50, 1, 9)
	set(60, 5, 1)

	peaks := acc.Peaks(5, 0)
	want := []Peak{
		{Theta: 50, RhoIndex: 1, Votes: 9},
		{Theta: 3, RhoIndex: 2, Votes: 7},
		{Theta: 100, RhoIndex: 2, Votes: 5},
	}
	if len(peaks) != len(want) {
		t.Fatalf("got %d peaks, want %d: %v", len(peaks), len(want), peaks)
	}
	for i := range want {
		if peaks[i] != want[i] {
			t.Errorf("peak %d: got %+v, want %+v", i, peaks[i], want[i])
		}
	}
}

func TestPeaks_Suppression(t *testing.T) {
	axes, err := NewAxes(10, 10, 1, 1)
	if err != nil {
		t.Fatalf("NewAxes failed: %v", err)
	}
	acc := NewAccumulator(axes)
	set := func(theta, rho int, v uint32) { acc.cells[theta*axes.RhoSize+rho] = v }
	set(40, 5, 10)
	set(41, 5, 8)
	set(40, 6, 9)
	set(80, 5, 8)

	all := acc.Peaks(8, 0)
	if len(all) != 4 {
		t.Fatalf("without suppression: got %d peaks, want 4", len(all))
	}

	kept := acc.Peaks(8, 2)
	if len(kept) != 2 {
		t.Fatalf("with suppression: got %d peaks, want 2: %v", len(kept), kept)
	}
	if kept[0].Theta != 40 || kept[1].Theta != 80 {
		t.Errorf("kept wrong peaks: %v", kept)
	}
}

func TestPeaks_ThresholdZeroReturnsEveryCell(t *testing.T) {
	axes, err := NewAxes(3, 3, 1, 1)
	if err != nil {
		t.Fatalf("NewAxes failed: %v", err)
	}
	acc := NewAccumulator(axes)
	if got := len(acc.Peaks(0, 0)); got != axes.ThetaSize*axes.RhoSize {
		t.Errorf("got %d peaks, want %d", got, axes.ThetaSize*axes.RhoSize)
	}
}

func TestAccumulatorAt_OutOfRange(t *testing.T) {
	axes, err := NewAxes(3, 3, 1, 1)
	if err != nil {
		t.Fatalf("NewAxes failed: %v", err)
	}
	acc := NewAccumulator(axes)
	if acc.At(-1, 0) != 0 || acc.At(0, axes.RhoSize) != 0 || acc.At(axes.ThetaSize, 0) != 0 {
		t.Error("out-of-range cells should read as zero")
	}
}
