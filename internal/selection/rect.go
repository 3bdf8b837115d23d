package selection

import "github.com/changwulf/dxf-viewer/pkg/geometry"

// DragRect is the rubber band drawn while a region drag is in progress
type DragRect struct {
	Start geometry.Point
	End   geometry.Point
}

// NewDragRect creates a new drag rectangle
func NewDragRect(start, end geometry.Point) DragRect {
	return DragRect{
		Start: start,
		End:   end,
	}
}

// Rect returns the normalized rectangle
// (positive width/height regardless of drag direction)
func (d DragRect) Rect() geometry.Rect {
	return geometry.NewRect(d.Start, d.End)
}
