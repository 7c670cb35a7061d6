// Package hough implements straight-line detection with the Hough transform.
//
// Edge pixels vote in a (theta, rho) parameter space. Cells that collect
// enough votes are mapped back to line segments in image space and clipped to
// the image rectangle with the Liang-Barsky algorithm.
//
// # Coordinate System
//
// Pixels are addressed top-down (origin at the top-left, Y increasing
// downward) when reading the image. All line geometry in this package is
// expressed in a bottom-up Cartesian frame instead: a pixel row y becomes
// H-1-y before voting, and reconstructed segments are returned in the same
// frame. Callers that draw segments convert back with the same inversion.
//
// # Axes
//
// The theta axis has ThetaSize = 180 * thetaScale discrete steps covering
// [0°, 180°). Every trigonometric evaluation takes the axis size as an
// explicit argument, so an oversampled axis and the canonical 180-step axis
// never get mixed up. The rho axis has RhoSize = MaxLineLength(W, H) *
// rhoScale bins, with RhoHalf as the offset of rho = 0.
//
// # Concurrency
//
// Everything here is synchronous. An Accumulator is written only by Build and
// is read-only afterward, so a finished Accumulator may be shared between
// goroutines.
package hough
