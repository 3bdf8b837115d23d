// Package entity turns drawing documents into the flat list of primitives
// used for hit-testing and measurement.
package entity

import (
	"github.com/changwulf/dxf-viewer/pkg/geometry"
)

// Kind names a primitive variant
type Kind int

const (
	KindLine Kind = iota
	KindCircle
	KindArc
	KindPolyline
)

// String returns the lower-case kind name
func (k Kind) String() string {
	switch k {
	case KindLine:
		return "line"
	case KindCircle:
		return "circle"
	case KindArc:
		return "arc"
	case KindPolyline:
		return "polyline"
	default:
		return "unknown"
	}
}

// Primitive is one of Line, Circle, Arc or Polyline
type Primitive interface {
	Kind() Kind
	Layer() string
	isPrimitive()
}

// Line is a straight segment between two points
type Line struct {
	Start     geometry.Point
	End       geometry.Point
	LayerName string
}

// Circle is a full circle with positive radius
type Circle struct {
	Center    geometry.Point
	Radius    float64
	LayerName string
}

// Arc is a counter-clockwise circular arc; angles are in degrees
type Arc struct {
	Center     geometry.Point
	Radius     float64
	StartAngle float64
	EndAngle   float64
	LayerName  string
}

// Polyline is an ordered sequence of at least two vertices
type Polyline struct {
	Vertices  []geometry.Point
	Closed    bool
	LayerName string
}

func (Line) Kind() Kind     { return KindLine }
func (Circle) Kind() Kind   { return KindCircle }
func (Arc) Kind() Kind      { return KindArc }
func (Polyline) Kind() Kind { return KindPolyline }

func (l Line) Layer() string     { return l.LayerName }
func (c Circle) Layer() string   { return c.LayerName }
func (a Arc) Layer() string      { return a.LayerName }
func (p Polyline) Layer() string { return p.LayerName }

func (Line) isPrimitive()     {}
func (Circle) isPrimitive()   {}
func (Arc) isPrimitive()      {}
func (Polyline) isPrimitive() {}

// Length returns the segment length
func (l Line) Length() float64 {
	return geometry.Distance(l.Start, l.End)
}

// Diameter returns twice the radius
func (c Circle) Diameter() float64 {
	return 2 * c.Radius
}

// Area returns the enclosed area
func (c Circle) Area() float64 {
	return geometry.CircleArea(c.Radius)
}

// Circle returns the full circle the arc lies on
func (a Arc) Circle() Circle {
	return Circle{Center: a.Center, Radius: a.Radius, LayerName: a.LayerName}
}

// Points returns the points a primitive is made of, used for bounds and rendering
func Points(p Primitive) []geometry.Point {
	switch v := p.(type) {
	case Line:
		return []geometry.Point{v.Start, v.End}
	case Circle:
		return []geometry.Point{
			v.Center.Add(geometry.NewPoint(-v.Radius, -v.Radius)),
			v.Center.Add(geometry.NewPoint(v.Radius, v.Radius)),
		}
	case Arc:
		return geometry.ArcPoints(v.Center, v.Radius, v.StartAngle, v.EndAngle, 32)
	case Polyline:
		return v.Vertices
	default:
		return nil
	}
}

// Bounds returns the bounding box of all primitives
func Bounds(prims []Primitive) geometry.BoundingBox {
	bbox := geometry.NewBoundingBox()
	for _, p := range prims {
		for _, pt := range Points(p) {
			bbox.Extend(pt)
		}
	}
	return bbox
}

// Counts tallies primitives per kind
func Counts(prims []Primitive) map[Kind]int {
	counts := make(map[Kind]int)
	for _, p := range prims {
		counts[p.Kind()]++
	}
	return counts
}

// Equal reports whether two primitives have the same kind and geometry
func Equal(a, b Primitive) bool {
	switch x := a.(type) {
	case Line:
		y, ok := b.(Line)
		return ok && x == y
	case Circle:
		y, ok := b.(Circle)
		return ok && x == y
	case Arc:
		y, ok := b.(Arc)
		return ok && x == y
	case Polyline:
		y, ok := b.(Polyline)
		if !ok || x.Closed != y.Closed || x.LayerName != y.LayerName || len(x.Vertices) != len(y.Vertices) {
			return false
		}
		for i := range x.Vertices {
			if x.Vertices[i] != y.Vertices[i] {
				return false
			}
		}
		return true
	default:
		return false
	}
}
