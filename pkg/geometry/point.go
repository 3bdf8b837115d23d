package geometry

import "math"

// Point represents a 2D coordinate, either in model space or in canvas space
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// NewPoint creates a new 2D point
func NewPoint(x, y float64) Point {
	return Point{X: x, Y: y}
}

// Add returns the sum of two points
func (p Point) Add(other Point) Point {
	return Point{X: p.X + other.X, Y: p.Y + other.Y}
}

// Sub returns the difference between two points
func (p Point) Sub(other Point) Point {
	return Point{X: p.X - other.X, Y: p.Y - other.Y}
}

// Mul multiplies the point by a scalar
func (p Point) Mul(scalar float64) Point {
	return Point{X: p.X * scalar, Y: p.Y * scalar}
}

// Dot returns the dot product of two points treated as vectors
func (p Point) Dot(other Point) float64 {
	return p.X*other.X + p.Y*other.Y
}

// Length returns the magnitude of the point treated as a vector
func (p Point) Length() float64 {
	return math.Sqrt(p.X*p.X + p.Y*p.Y)
}

// IsFinite reports whether both coordinates are finite numbers
func (p Point) IsFinite() bool {
	return !math.IsNaN(p.X) && !math.IsInf(p.X, 0) && !math.IsNaN(p.Y) && !math.IsInf(p.Y, 0)
}

// Distance returns the Euclidean distance between two points
func Distance(p1, p2 Point) float64 {
	dx := p2.X - p1.X
	dy := p2.Y - p1.Y
	return math.Sqrt(dx*dx + dy*dy)
}

// PointToSegmentDistance returns the distance from a point to the segment [start, end].
//
// The point is projected onto the segment's supporting line with
//
//	t = ((p - start) . (end - start)) / |end - start|²
//
// For t in [0, 1] the perpendicular distance is returned, otherwise the
// distance to the nearer endpoint. A degenerate segment (start == end) is
// treated as a single point.
func PointToSegmentDistance(point, start, end Point) float64 {
	d := end.Sub(start)
	lenSq := d.Dot(d)
	if lenSq == 0 {
		return Distance(point, start)
	}

	t := point.Sub(start).Dot(d) / lenSq
	switch {
	case t < 0:
		return Distance(point, start)
	case t > 1:
		return Distance(point, end)
	default:
		return Distance(point, start.Add(d.Mul(t)))
	}
}

// PointInRect reports whether a point lies inside the axis-aligned rectangle.
// All four bounds are inclusive.
func PointInRect(point Point, minX, maxX, minY, maxY float64) bool {
	return point.X >= minX && point.X <= maxX && point.Y >= minY && point.Y <= maxY
}
