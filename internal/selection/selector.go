package selection

import (
	"github.com/changwulf/dxf-viewer/internal/entity"
	"github.com/changwulf/dxf-viewer/pkg/geometry"
)

// PointerEvent is a pointer position in both coordinate spaces
type PointerEvent struct {
	Position geometry.Point // model space
	Canvas   geometry.Point // canvas space
}

// Selector turns pointer gestures into selections for the active tool
type Selector struct {
	tool        Tool
	regionStart *geometry.Point // canvas space
}

// NewSelector creates a selector with no active tool
func NewSelector() *Selector {
	return &Selector{tool: ToolNone}
}

// Tool returns the active tool
func (s *Selector) Tool() Tool {
	return s.tool
}

// SetTool changes the active tool and drops any pending region drag
func (s *Selector) SetTool(t Tool) {
	s.tool = t
	s.regionStart = nil
}

// Pending reports whether a region drag has started but not finished
func (s *Selector) Pending() bool {
	return s.regionStart != nil
}

// PointerDown handles a pointer press. Line and hole tools hit-test
// immediately; the region tool records the drag start.
func (s *Selector) PointerDown(ev PointerEvent, prims []entity.Primitive, vp Viewport) (Selection, bool) {
	switch s.tool {
	case ToolLine:
		line, ok := SelectLine(prims, ev.Position, Threshold(vp))
		if !ok {
			return nil, false
		}
		return LineSelection{Line: line}, true

	case ToolHole:
		hole, ok := SelectHole(prims, ev.Position, Threshold(vp))
		if !ok {
			return nil, false
		}
		return HoleSelection{Hole: hole}, true

	case ToolRegion:
		start := ev.Canvas
		s.regionStart = &start
	}
	return nil, false
}

// PointerMove returns the rubber band rectangle in canvas space while a
// region drag is pending
func (s *Selector) PointerMove(ev PointerEvent) (DragRect, bool) {
	if s.tool != ToolRegion || s.regionStart == nil {
		return DragRect{}, false
	}
	return NewDragRect(*s.regionStart, ev.Canvas), true
}

// PointerUp completes a pending region drag. The result always is a
// RegionSelection, possibly without matches.
func (s *Selector) PointerUp(ev PointerEvent, prims []entity.Primitive, vp Viewport) (Selection, bool) {
	if s.tool != ToolRegion || s.regionStart == nil {
		return nil, false
	}

	start := vp.CanvasToModel(*s.regionStart)
	s.regionStart = nil

	rect := geometry.NewRect(start, ev.Position)
	return RegionSelection{
		Rect:    rect,
		Matches: FilterRegion(prims, rect),
	}, true
}
