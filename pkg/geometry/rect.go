package geometry

import "math"

// Rect is an axis-aligned rectangle
type Rect struct {
	MinX float64 `json:"minX"`
	MaxX float64 `json:"maxX"`
	MinY float64 `json:"minY"`
	MaxY float64 `json:"maxY"`
}

// NewRect creates the normalized rectangle spanned by two corners
// (positive width/height regardless of drag direction)
func NewRect(a, b Point) Rect {
	return Rect{
		MinX: math.Min(a.X, b.X),
		MaxX: math.Max(a.X, b.X),
		MinY: math.Min(a.Y, b.Y),
		MaxY: math.Max(a.Y, b.Y),
	}
}

// Width returns the horizontal extent
func (r Rect) Width() float64 {
	return r.MaxX - r.MinX
}

// Height returns the vertical extent
func (r Rect) Height() float64 {
	return r.MaxY - r.MinY
}

// Area returns width times height
func (r Rect) Area() float64 {
	return r.Width() * r.Height()
}

// Contains reports whether the point lies inside the rectangle (inclusive)
func (r Rect) Contains(p Point) bool {
	return PointInRect(p, r.MinX, r.MaxX, r.MinY, r.MaxY)
}

// BoundingBox represents extendable 2D bounds
type BoundingBox struct {
	Min Point
	Max Point
}

// NewBoundingBox creates an empty bounding box
func NewBoundingBox() BoundingBox {
	return BoundingBox{
		Min: Point{X: math.MaxFloat64, Y: math.MaxFloat64},
		Max: Point{X: -math.MaxFloat64, Y: -math.MaxFloat64},
	}
}

// Extend expands the bounding box to include a point
func (b *BoundingBox) Extend(p Point) {
	b.Min = Point{X: math.Min(b.Min.X, p.X), Y: math.Min(b.Min.Y, p.Y)}
	b.Max = Point{X: math.Max(b.Max.X, p.X), Y: math.Max(b.Max.Y, p.Y)}
}

// IsEmpty reports whether no point has been added yet
func (b BoundingBox) IsEmpty() bool {
	return b.Min.X > b.Max.X || b.Min.Y > b.Max.Y
}

// Size returns the dimensions of the bounding box
func (b BoundingBox) Size() Point {
	if b.IsEmpty() {
		return Point{}
	}
	return b.Max.Sub(b.Min)
}

// Center returns the center point of the bounding box
func (b BoundingBox) Center() Point {
	if b.IsEmpty() {
		return Point{}
	}
	return Point{
		X: (b.Min.X + b.Max.X) / 2.0,
		Y: (b.Min.Y + b.Max.Y) / 2.0,
	}
}

// Rect converts the bounds to a Rect
func (b BoundingBox) Rect() Rect {
	return Rect{MinX: b.Min.X, MaxX: b.Max.X, MinY: b.Min.Y, MaxY: b.Max.Y}
}
