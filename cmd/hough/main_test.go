package main

import (
	"bytes"
	"encoding/json"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/disintegration/imaging"
)

func writeDiagonal(t *testing.T, dir string, size int) string {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, size, size))
	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			img.Set(x, y, color.White)
		}
		img.Set(y, y, color.Black)
	}

	path := filepath.Join(dir, "diagonal.png")
	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("failed to create input: %v", err)
	}
	defer f.Close()
	if err := png.Encode(f, img); err != nil {
		t.Fatalf("failed to encode input: %v", err)
	}
	return path
}

func execute(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	cmd := newRootCmd(&stdout, &stderr)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

func TestRun_WritesImages(t *testing.T) {
	dir := t.TempDir()
	input := writeDiagonal(t, dir, 100)
	space := filepath.Join(dir, "space.png")
	lines := filepath.Join(dir, "lines.png")

	stdout, _, err := execute(t, "--space", space, "--lines", lines, "--log-level", "error", input)
	if err != nil {
		t.Fatalf("command failed: %v", err)
	}
	if !strings.Contains(stdout, "(0,0)-(99,99)") || !strings.Contains(stdout, "theta=45") {
		t.Errorf("unexpected line listing: %q", stdout)
	}

	spaceImg, err := imaging.Open(space)
	if err != nil {
		t.Fatalf("hough space not written: %v", err)
	}
	if spaceImg.Bounds().Dx() != 180 || spaceImg.Bounds().Dy() != 142 {
		t.Errorf("hough space size: got %v, want 180x142", spaceImg.Bounds().Size())
	}

	overlay, err := imaging.Open(lines)
	if err != nil {
		t.Fatalf("overlay not written: %v", err)
	}
	r, g, b, _ := overlay.At(50, 50).RGBA()
	if r != 0xffff || g != 0 || b != 0 {
		t.Errorf("overlay pixel (50,50): got (%d,%d,%d), want red", r>>8, g>>8, b>>8)
	}
}

func TestRun_JSON(t *testing.T) {
	dir := t.TempDir()
	input := writeDiagonal(t, dir, 100)

	stdout, _, err := execute(t, "--space", "", "--lines", "", "--json", "--theta-scale", "2", "--rho-scale", "2", "--log-level", "error", input)
	if err != nil {
		t.Fatalf("command failed: %v", err)
	}

	var result struct {
		Count int `json:"count"`
		Axes  struct {
			ThetaSize int `json:"theta_axis_size"`
		} `json:"axes"`
	}
	if err := json.Unmarshal([]byte(stdout), &result); err != nil {
		t.Fatalf("output is not JSON: %v\n%s", err, stdout)
	}
	if result.Count != 1 || result.Axes.ThetaSize != 360 {
		t.Errorf("got count %d and theta size %d, want 1 and 360", result.Count, result.Axes.ThetaSize)
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("ReadDir failed: %v", err)
	}
	if len(entries) != 1 {
		t.Errorf("empty --space and --lines should write nothing, found %d files", len(entries))
	}
}

func TestRun_Errors(t *testing.T) {
	dir := t.TempDir()
	input := writeDiagonal(t, dir, 10)

	tests := []struct {
		name string
		args []string
	}{
		{"no input", nil},
		{"missing file", []string{filepath.Join(dir, "missing.png")}},
		{"zero scale", []string{"--theta-scale", "0", input}},
		{"bad edge mode", []string{"--edge-mode", "sobel", input}},
		{"bad color", []string{"--line-color", "crimson", input}},
		{"bad log level", []string{"--log-level", "chatty", input}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			args := append([]string{"--space", "", "--lines", ""}, tt.args...)
			if _, _, err := execute(t, args...); err == nil {
				t.Error("expected an error")
			}
		})
	}
}
