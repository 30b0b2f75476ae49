// Package images - Image processing utilities
package images

import "image"

// Rect is a lightweight integer bounding box in pixel coordinates.
type Rect struct {
	// X2,Y2 are exclusive (like image.Rectangle).
	X1, Y1, X2, Y2 int
}

// Width returns the horizontal extent of the rectangle.
func (r Rect) Width() int {
	return r.X2 - r.X1
}

// Height returns the vertical extent of the rectangle.
func (r Rect) Height() int {
	return r.Y2 - r.Y1
}

// Empty reports whether the rectangle contains no pixels.
func (r Rect) Empty() bool {
	return r.X1 >= r.X2 || r.Y1 >= r.Y2
}

// Clamp fits the rectangle into an image of the given size.
//
// The origin is moved to be non-negative first and the extent is then cut so the
// rectangle does not run past the right or bottom edge. The extent is never grown,
// so a box that started left of the origin keeps its original width.
//
// Arguments:
//   - width: The image width in pixels.
//   - height: The image height in pixels.
//
// Returns:
//   - Rect: The clamped rectangle. It may be empty when the box lies fully outside.
//
// Example:
//
//	r := Rect{X1: -10, Y1: 5, X2: 30, Y2: 500}
//	r.Clamp(416, 416) // Rect{X1: 0, Y1: 5, X2: 40, Y2: 416}
func (r Rect) Clamp(width, height int) Rect {
	x := max(r.X1, 0)
	y := max(r.Y1, 0)
	w := min(width-x, r.Width())
	h := min(height-y, r.Height())
	if w < 0 {
		w = 0
	}
	if h < 0 {
		h = 0
	}
	return Rect{X1: x, Y1: y, X2: x + w, Y2: y + h}
}

// ToImageRect converts the rectangle to an image.Rectangle.
func (r Rect) ToImageRect() image.Rectangle {
	return image.Rect(r.X1, r.Y1, r.X2, r.Y2)
}
