package geometry

import "math"

// Point is a 2D point in device-independent units.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Add returns p translated by q.
func (p Point) Add(q Point) Point {
	return Point{X: p.X + q.X, Y: p.Y + q.Y}
}

// Snap rounds v to the nearest addressable device pixel for the given pixel
// scale. A non-positive scale is treated as 1.
func Snap(v, scale float64) float64 {
	if scale <= 0 {
		scale = 1
	}
	return math.Round(v*scale) / scale
}

// SnapPoint snaps both coordinates of p.
func SnapPoint(p Point, scale float64) Point {
	return Point{X: Snap(p.X, scale), Y: Snap(p.Y, scale)}
}

// Overlap is the outward bias applied to shape outlines: one device pixel.
func Overlap(scale float64) float64 {
	if scale <= 0 {
		scale = 1
	}
	return 1 / scale
}

// LineExtension is how far wall strokes run past their endpoints: half a
// device pixel.
func LineExtension(scale float64) float64 {
	if scale <= 0 {
		scale = 1
	}
	return 0.5 / scale
}

// ExtendLine lengthens the segment a-b by `by` at both ends along its own
// direction. Degenerate segments are returned unchanged.
func ExtendLine(a, b Point, by float64) (Point, Point) {
	dx, dy := b.X-a.X, b.Y-a.Y
	length := math.Hypot(dx, dy)
	if length == 0 {
		return a, b
	}
	ux, uy := dx/length*by, dy/length*by
	return Point{X: a.X - ux, Y: a.Y - uy}, Point{X: b.X + ux, Y: b.Y + uy}
}

// pushOutward moves p away from centre c by distance d.
func pushOutward(p, c Point, d float64) Point {
	dx, dy := p.X-c.X, p.Y-c.Y
	length := math.Hypot(dx, dy)
	if length == 0 {
		return p
	}
	return Point{X: p.X + dx/length*d, Y: p.Y + dy/length*d}
}
