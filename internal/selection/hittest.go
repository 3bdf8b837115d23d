package selection

import (
	"math"

	"github.com/changwulf/dxf-viewer/internal/entity"
	"github.com/changwulf/dxf-viewer/pkg/geometry"
)

// ThresholdFraction is the share of the visible view width within which a
// click still selects a primitive
const ThresholdFraction = 0.02

// Viewport is the view state the selector depends on
type Viewport interface {
	// VisibleWidth returns the horizontal model-space extent of the view
	VisibleWidth() float64
	// CanvasToModel converts a canvas coordinate to model space
	CanvasToModel(p geometry.Point) geometry.Point
}

// Threshold returns the selection threshold for the current view
func Threshold(vp Viewport) float64 {
	return vp.VisibleWidth() * ThresholdFraction
}

// SelectLine returns the line closest to the click, if its distance is
// strictly below the threshold. On equal distances the first line wins.
func SelectLine(prims []entity.Primitive, click geometry.Point, threshold float64) (entity.Line, bool) {
	var closest entity.Line
	found := false
	minDistance := threshold

	for _, p := range prims {
		line, ok := p.(entity.Line)
		if !ok {
			continue
		}
		dist := geometry.PointToSegmentDistance(click, line.Start, line.End)
		if dist < minDistance {
			minDistance = dist
			closest = line
			found = true
		}
	}

	return closest, found
}

// SelectHole returns the first circle or arc that the click lies inside of,
// or whose outline is closer than the threshold. Arcs are tested as full
// circles. The scan stops at the first match; it does not look for the best one.
func SelectHole(prims []entity.Primitive, click geometry.Point, threshold float64) (entity.Primitive, bool) {
	for _, p := range prims {
		var center geometry.Point
		var radius float64
		switch v := p.(type) {
		case entity.Circle:
			center, radius = v.Center, v.Radius
		case entity.Arc:
			center, radius = v.Center, v.Radius
		default:
			continue
		}

		dist := geometry.Distance(click, center)
		if math.Abs(dist-radius) < threshold || dist < radius {
			return p, true
		}
	}
	return nil, false
}

// InRegion reports whether a primitive counts as inside the rectangle.
//
// Lines need one endpoint inside, circles their center (the radius is not
// considered) and polylines any vertex. Arcs never count.
func InRegion(p entity.Primitive, r geometry.Rect) bool {
	switch v := p.(type) {
	case entity.Line:
		return r.Contains(v.Start) || r.Contains(v.End)
	case entity.Circle:
		return r.Contains(v.Center)
	case entity.Polyline:
		for _, vertex := range v.Vertices {
			if r.Contains(vertex) {
				return true
			}
		}
		return false
	case entity.Arc:
		return false
	default:
		return false
	}
}

// FilterRegion returns all primitives inside the rectangle, in list order
func FilterRegion(prims []entity.Primitive, r geometry.Rect) []entity.Primitive {
	matches := make([]entity.Primitive, 0)
	for _, p := range prims {
		if InRegion(p, r) {
			matches = append(matches, p)
		}
	}
	return matches
}
