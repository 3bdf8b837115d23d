package selection

import (
	"github.com/changwulf/dxf-viewer/internal/entity"
	"github.com/changwulf/dxf-viewer/pkg/geometry"
)

// Selection is the outcome of a successful hit-test: a LineSelection,
// HoleSelection or RegionSelection
type Selection interface {
	Tool() Tool
	isSelection()
}

// LineSelection is the line picked by the line tool
type LineSelection struct {
	Line entity.Line
}

// HoleSelection is the circle or arc picked by the hole tool
type HoleSelection struct {
	Hole entity.Primitive // entity.Circle or entity.Arc
}

// RegionSelection is the result of a completed region drag
type RegionSelection struct {
	Rect    geometry.Rect // model space
	Matches []entity.Primitive
}

func (LineSelection) Tool() Tool   { return ToolLine }
func (HoleSelection) Tool() Tool   { return ToolHole }
func (RegionSelection) Tool() Tool { return ToolRegion }

func (LineSelection) isSelection()   {}
func (HoleSelection) isSelection()   {}
func (RegionSelection) isSelection() {}

// Count returns the number of primitives inside the region
func (r RegionSelection) Count() int {
	return len(r.Matches)
}

// Radius returns the radius of the selected circle or arc
func (h HoleSelection) Radius() float64 {
	switch v := h.Hole.(type) {
	case entity.Circle:
		return v.Radius
	case entity.Arc:
		return v.Radius
	default:
		return 0
	}
}

// Center returns the center of the selected circle or arc
func (h HoleSelection) Center() geometry.Point {
	switch v := h.Hole.(type) {
	case entity.Circle:
		return v.Center
	case entity.Arc:
		return v.Center
	default:
		return geometry.Point{}
	}
}
