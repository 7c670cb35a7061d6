package imaging

import (
	"fmt"
	"image"

	"github.com/disintegration/imaging"
)

// Region is a rectangle within an image. (X1, Y1) is inclusive and (X2, Y2)
// exclusive, in the image's own coordinates.
type Region struct {
	X1 int `json:"x1"`
	Y1 int `json:"y1"`
	X2 int `json:"x2"`
	Y2 int `json:"y2"`
}

// Rect returns the region as an image.Rectangle.
func (r Region) Rect() image.Rectangle {
	return image.Rect(r.X1, r.Y1, r.X2, r.Y2)
}

// Crop extracts region from img.
//
// Parameters:
//   - img: Source image.
//   - region: Area to extract, in img's coordinates.
//
// Returns:
//   - image.Image: The region as a new image whose bounds start at (0, 0), so
//     analysis results on it are relative to (X1, Y1).
//   - error: Non-nil if the region is empty or extends past img's bounds.
func Crop(img image.Image, region Region) (image.Image, error) {
	bounds := img.Bounds()

	if region.X1 < bounds.Min.X || region.Y1 < bounds.Min.Y || region.X2 > bounds.Max.X || region.Y2 > bounds.Max.Y {
		return nil, fmt.Errorf("crop region (%d,%d)-(%d,%d) outside image bounds (%d,%d)-(%d,%d)",
			region.X1, region.Y1, region.X2, region.Y2, bounds.Min.X, bounds.Min.Y, bounds.Max.X, bounds.Max.Y)
	}
	if region.X1 >= region.X2 || region.Y1 >= region.Y2 {
		return nil, fmt.Errorf("invalid crop region: x1 must be < x2, y1 must be < y2")
	}

	return imaging.Crop(img, region.Rect()), nil
}
