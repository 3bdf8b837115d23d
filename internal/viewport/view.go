package viewport

import (
	"math"

	"github.com/changwulf/dxf-viewer/pkg/geometry"
	"github.com/go-gl/mathgl/mgl64"
)

const (
	// DefaultMargin is the canvas padding in pixels used when fitting a drawing
	DefaultMargin = 20.0

	minScale = 1e-9
	maxScale = 1e9
)

// View is an orthographic 2D view of the model plane.
// Canvas y grows downward, model y grows upward.
type View struct {
	Width  float64        // canvas width in pixels
	Height float64        // canvas height in pixels
	Center geometry.Point // model point shown at the canvas center
	Scale  float64        // pixels per model unit
}

// New creates a view of the given canvas size centered at the origin
func New(width, height float64) *View {
	return &View{
		Width:  width,
		Height: height,
		Scale:  1,
	}
}

// matrix returns the model to canvas transform
func (v *View) matrix() mgl64.Mat3 {
	return mgl64.Translate2D(v.Width/2, v.Height/2).
		Mul3(mgl64.Scale2D(v.Scale, -v.Scale)).
		Mul3(mgl64.Translate2D(-v.Center.X, -v.Center.Y))
}

// ModelToCanvas converts a model point to canvas coordinates
func (v *View) ModelToCanvas(p geometry.Point) geometry.Point {
	r := v.matrix().Mul3x1(mgl64.Vec3{p.X, p.Y, 1})
	return geometry.NewPoint(r.X(), r.Y())
}

// CanvasToModel converts a canvas point to model coordinates
func (v *View) CanvasToModel(p geometry.Point) geometry.Point {
	r := v.matrix().Inv().Mul3x1(mgl64.Vec3{p.X, p.Y, 1})
	return geometry.NewPoint(r.X(), r.Y())
}

// Left returns the model x coordinate at the left canvas edge
func (v *View) Left() float64 {
	return v.Center.X - v.Width/(2*v.Scale)
}

// Right returns the model x coordinate at the right canvas edge
func (v *View) Right() float64 {
	return v.Center.X + v.Width/(2*v.Scale)
}

// VisibleWidth returns the horizontal model extent of the view
func (v *View) VisibleWidth() float64 {
	return v.Right() - v.Left()
}

// Visible returns the model rectangle covered by the canvas
func (v *View) Visible() geometry.Rect {
	return geometry.NewRect(
		v.CanvasToModel(geometry.NewPoint(0, 0)),
		v.CanvasToModel(geometry.NewPoint(v.Width, v.Height)),
	)
}

// Fit centers the bounding box and scales it to fill the canvas,
// leaving margin pixels on every side
func (v *View) Fit(bbox geometry.BoundingBox, margin float64) {
	if bbox.IsEmpty() {
		v.Center = geometry.Point{}
		v.Scale = 1
		return
	}

	v.Center = bbox.Center()

	size := bbox.Size()
	availW := math.Max(v.Width-2*margin, 1)
	availH := math.Max(v.Height-2*margin, 1)

	switch {
	case size.X <= 0 && size.Y <= 0:
		v.Scale = 1
	case size.X <= 0:
		v.Scale = availH / size.Y
	case size.Y <= 0:
		v.Scale = availW / size.X
	default:
		v.Scale = math.Min(availW/size.X, availH/size.Y)
	}
	v.Scale = clampScale(v.Scale)
}

// Zoom multiplies the scale by factor, keeping the model point under the
// anchor (canvas coordinates) in place
func (v *View) Zoom(factor float64, anchor geometry.Point) {
	if factor <= 0 || math.IsNaN(factor) || math.IsInf(factor, 0) {
		return
	}
	fixed := v.CanvasToModel(anchor)
	v.Scale = clampScale(v.Scale * factor)
	v.Center = geometry.NewPoint(
		fixed.X-(anchor.X-v.Width/2)/v.Scale,
		fixed.Y+(anchor.Y-v.Height/2)/v.Scale,
	)
}

// Pan moves the drawing by dx, dy canvas pixels
func (v *View) Pan(dx, dy float64) {
	v.Center = geometry.NewPoint(
		v.Center.X-dx/v.Scale,
		v.Center.Y+dy/v.Scale,
	)
}

// Resize changes the canvas size; the model center stays in the middle
func (v *View) Resize(width, height float64) {
	v.Width = width
	v.Height = height
}

func clampScale(s float64) float64 {
	return math.Max(minScale, math.Min(maxScale, s))
}
