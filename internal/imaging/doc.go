// Package imaging handles the pixels around the Hough transform: loading and
// caching input files, cropping a region of interest, rendering the
// accumulator, drawing detected lines and encoding results.
//
// # Coordinate System
//
// Pixel coordinates are 0-based with (0,0) at the top-left, X rightward and
// Y downward. For regions, (x1,y1) is inclusive and (x2,y2) exclusive.
//
// Segments from package hough are bottom-up Cartesian (y = 0 is the last
// row). Overlay and ToImage convert them; DrawLine works in image space.
//
// # Hough Space Rendering
//
// HoughSpace maps the accumulator to a greyscale image with one column per
// theta step and one row per rho bin. Rows are flipped so the largest rho is
// at the top, and intensities are normalised to the busiest cell.
// HoughSpaceHeat renders the same data on a blue-to-red hue ramp.
//
// # Thread Safety
//
// ImageCache is safe for concurrent use. The other functions are stateless
// and never modify their input images.
package imaging
