package hough

import (
	"image"
	"image/color"
	"testing"
)

func TestIntensity(t *testing.T) {
	tests := []struct {
		name string
		c    color.RGBA
		want int
	}{
		{"black", color.RGBA{0, 0, 0, 255}, 0},
		{"white", color.RGBA{255, 255, 255, 255}, 255},
		{"rounds down", color.RGBA{0, 0, 1, 255}, 0},
		{"rounds up", color.RGBA{0, 1, 1, 255}, 1},
		{"unweighted", color.RGBA{90, 0, 0, 255}, 30},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			img := createTestImage(1, 1, tt.c)
			if got := Intensity(img, 0, 0); got != tt.want {
				t.Errorf("got %d, want %d", got, tt.want)
			}
		})
	}
}

func TestIntensityClassifier(t *testing.T) {
	img := createTestImage(3, 1, color.White)
	img.Set(0, 0, color.RGBA{0, 0, 0, 255})
	img.Set(1, 0, color.RGBA{0, 1, 1, 255})

	c := NewIntensityClassifier(img, DefaultIntensityThreshold)
	if !c.IsEdge(0, 0) {
		t.Error("pure black pixel should be an edge")
	}
	if c.IsEdge(1, 0) {
		t.Error("near-black pixel averaging to 1 should not be an edge at threshold 1")
	}
	if c.IsEdge(2, 0) {
		t.Error("white pixel should not be an edge")
	}

	c.Threshold = 2
	if !c.IsEdge(1, 0) {
		t.Error("near-black pixel should be an edge at threshold 2")
	}
}

func TestIntensityClassifier_OffsetBounds(t *testing.T) {
	img := image.NewRGBA(image.Rect(10, 20, 13, 22))
	for y := 20; y < 22; y++ {
		for x := 10; x < 13; x++ {
			img.Set(x, y, color.White)
		}
	}
	img.Set(12, 21, color.Black)

	c := NewIntensityClassifier(img, 1)
	if !c.IsEdge(2, 1) {
		t.Error("classifier should address pixels relative to the image origin")
	}
	if c.IsEdge(0, 0) {
		t.Error("white pixel reported as edge")
	}
}

func TestContrastClassifier(t *testing.T) {
	img := createTestImage(9, 9, color.White)
	img.Set(4, 4, color.Black)

	c := NewContrastClassifier(img, DefaultMinContrast)

	if !c.IsEdge(4, 4) {
		t.Error("black pixel on white should be an edge")
	}
	for _, p := range []image.Point{{3, 3}, {5, 5}, {4, 3}, {3, 5}} {
		if !c.IsEdge(p.X, p.Y) {
			t.Errorf("neighbour %v of the black pixel should be an edge", p)
		}
	}
	for _, p := range []image.Point{{0, 0}, {8, 8}, {2, 4}, {4, 6}} {
		if c.IsEdge(p.X, p.Y) {
			t.Errorf("pixel %v away from the black pixel should not be an edge", p)
		}
	}
}

func TestContrastClassifier_UniformImage(t *testing.T) {
	img := createTestImage(5, 5, color.RGBA{120, 120, 120, 255})
	c := NewContrastClassifier(img, 1)
	for y := 0; y < 5; y++ {
		for x := 0; x < 5; x++ {
			if c.IsEdge(x, y) {
				t.Fatalf("uniform image reported edge at (%d,%d)", x, y)
			}
		}
	}
}

func TestIntensity_IgnoresAlpha(t *testing.T) {
	tests := []struct {
		name string
		c    color.NRGBA
		want int
	}{
		{"transparent white", color.NRGBA{255, 255, 255, 0}, 255},
		{"translucent red", color.NRGBA{90, 0, 0, 128}, 30},
		{"transparent black", color.NRGBA{0, 0, 0, 0}, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			img := image.NewNRGBA(image.Rect(0, 0, 1, 1))
			img.SetNRGBA(0, 0, tt.c)
			if got := Intensity(img, 0, 0); got != tt.want {
				t.Errorf("got %d, want %d", got, tt.want)
			}
		})
	}
}

func TestIntensityClassifier_TransparentBackground(t *testing.T) {
	img := image.NewNRGBA(image.Rect(0, 0, 4, 4))
	for y := 0; y < 4; y++ {
		for x := 0; x < 4; x++ {
			img.SetNRGBA(x, y, color.NRGBA{255, 255, 255, 0})
		}
	}
	img.SetNRGBA(1, 2, color.NRGBA{0, 0, 0, 255})

	c := NewIntensityClassifier(img, DefaultIntensityThreshold)
	for y := 0; y < 4; y++ {
		for x := 0; x < 4; x++ {
			want := x == 1 && y == 2
			if got := c.IsEdge(x, y); got != want {
				t.Errorf("IsEdge(%d,%d): got %v, want %v", x, y, got, want)
			}
		}
	}
}

func TestContrastClassifier_OffsetBounds(t *testing.T) {
	img := createTestImage(20, 20, color.White)
	img.Set(12, 12, color.Black)
	sub := img.SubImage(image.Rect(8, 8, 17, 17))

	c := NewContrastClassifier(sub, DefaultMinContrast)
	if !c.IsEdge(4, 4) {
		t.Error("black pixel should be addressed relative to the image origin")
	}
	if !c.IsEdge(3, 3) {
		t.Error("neighbour of the black pixel should be an edge")
	}
	if c.IsEdge(0, 0) {
		t.Error("pixel far from the black one should not be an edge")
	}
}
