package entity

import (
	"math"

	"github.com/changwulf/dxf-viewer/pkg/dxf"
	"github.com/changwulf/dxf-viewer/pkg/geometry"
)

// Extract converts the entities of a document into primitives.
//
// Unrecognized entity types are skipped. Entities missing required geometry
// (a line without two vertices, a circle without a positive radius, ...) are
// dropped. The result is a new list; nothing in the document is modified.
func Extract(doc *dxf.Document) []Primitive {
	prims := make([]Primitive, 0)
	if doc == nil {
		return prims
	}

	for _, e := range doc.Entities {
		if p, ok := extractEntity(e); ok {
			prims = append(prims, p)
		}
	}
	return prims
}

func extractEntity(e dxf.Entity) (Primitive, bool) {
	switch e.Type {
	case "LINE":
		if len(e.Vertices) < 2 {
			return nil, false
		}
		start, end := toPoint(e.Vertices[0]), toPoint(e.Vertices[1])
		if !start.IsFinite() || !end.IsFinite() {
			return nil, false
		}
		return Line{Start: start, End: end, LayerName: e.Layer}, true

	case "CIRCLE":
		center, radius, ok := circleFields(e)
		if !ok {
			return nil, false
		}
		return Circle{Center: center, Radius: radius, LayerName: e.Layer}, true

	case "ARC":
		center, radius, ok := circleFields(e)
		if !ok || !finite(e.StartAngle) || !finite(e.EndAngle) {
			return nil, false
		}
		return Arc{
			Center:     center,
			Radius:     radius,
			StartAngle: *e.StartAngle,
			EndAngle:   *e.EndAngle,
			LayerName:  e.Layer,
		}, true

	case "LWPOLYLINE", "POLYLINE":
		if len(e.Vertices) < 2 {
			return nil, false
		}
		vertices := make([]geometry.Point, 0, len(e.Vertices))
		for _, v := range e.Vertices {
			p := toPoint(v)
			if !p.IsFinite() {
				return nil, false
			}
			vertices = append(vertices, p)
		}
		return Polyline{Vertices: vertices, Closed: e.Closed, LayerName: e.Layer}, true
	}

	return nil, false
}

func circleFields(e dxf.Entity) (geometry.Point, float64, bool) {
	if e.Center == nil || !finite(e.Radius) || *e.Radius <= 0 {
		return geometry.Point{}, 0, false
	}
	center := toPoint(*e.Center)
	if !center.IsFinite() {
		return geometry.Point{}, 0, false
	}
	return center, *e.Radius, true
}

func finite(v *float64) bool {
	return v != nil && !math.IsNaN(*v) && !math.IsInf(*v, 0)
}

func toPoint(v dxf.Vertex) geometry.Point {
	return geometry.NewPoint(v.X, v.Y)
}
