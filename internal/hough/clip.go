package hough

import "image"

// Rect is an axis-aligned clipping rectangle with inclusive edges.
type Rect struct {
	Left   int `json:"left"`
	Right  int `json:"right"`
	Bottom int `json:"bottom"`
	Top    int `json:"top"`
}

// ImageRect returns the pixel bounds of a w x h image, [0, w-1] x [0, h-1].
func ImageRect(w, h int) Rect {
	return Rect{Left: 0, Right: w - 1, Bottom: 0, Top: h - 1}
}

// ClipLiangBarsky clips seg to r with the Liang-Barsky parametric algorithm.
//
// The segment is A + t*(B-A) for t in [0, 1]. Each edge either narrows that
// interval or, when the segment runs parallel to the edge on its outer side,
// rejects the segment outright. The second result is false when no part of
// the segment is inside r; the returned segment is then the zero value.
func ClipLiangBarsky(r Rect, seg Segment) (Segment, bool) {
	x0, y0 := float64(seg.A.X), float64(seg.A.Y)
	dx := float64(seg.B.X) - x0
	dy := float64(seg.B.Y) - y0

	edges := [4]struct{ p, q float64 }{
		{-dx, x0 - float64(r.Left)},
		{dx, float64(r.Right) - x0},
		{-dy, y0 - float64(r.Bottom)},
		{dy, float64(r.Top) - y0},
	}

	t0, t1 := 0.0, 1.0
	for _, e := range edges {
		if e.p == 0 {
			if e.q < 0 {
				return Segment{}, false
			}
			continue
		}
		t := e.q / e.p
		if e.p < 0 {
			if t > t1 {
				return Segment{}, false
			}
			if t > t0 {
				t0 = t
			}
		} else {
			if t < t0 {
				return Segment{}, false
			}
			if t < t1 {
				t1 = t
			}
		}
	}

	return Segment{
		A: pointAt(x0, y0, dx, dy, t0),
		B: pointAt(x0, y0, dx, dy, t1),
	}, true
}

func pointAt(x0, y0, dx, dy, t float64) image.Point {
	return image.Pt(round(x0+t*dx), round(y0+t*dy))
}
