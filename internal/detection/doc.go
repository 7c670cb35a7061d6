// Package detection runs the Hough line pipeline on an image.
//
// Detect ties the pieces of package hough together:
//
//  1. Edge classification: pick the classifier named by Params.EdgeMode
//  2. Accumulation: every edge pixel votes once per theta step
//  3. Peak selection: cells with at least Params.Threshold votes, optionally
//     thinned by non-maximum suppression and capped by Params.MaxLines
//  4. Reconstruction: each peak becomes a line through the image rectangle
//  5. Clipping: Liang-Barsky trims the line to the image bounds
//
// # Coordinate System
//
// Line endpoints in a Result use the standard image convention: origin at
// the top-left, X rightward, Y downward. Result.Segments keeps the bottom-up
// Cartesian segments that package hough works in, ready for rendering.
//
// # Diagnostics
//
// A line with votes should cross the image, because its votes came from
// pixels inside it. Clipping can still reject one after descaling, and with
// Threshold 0 empty cells far from the image are selected too. Rejected lines
// are skipped, counted in Result.Rejected and logged at warn level.
package detection
