package viewer

import (
	"image/color"
	"sync"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/widget"
	"github.com/changwulf/dxf-viewer/internal/app"
	"github.com/changwulf/dxf-viewer/internal/entity"
	"github.com/changwulf/dxf-viewer/internal/selection"
	"github.com/changwulf/dxf-viewer/internal/viewport"
	"github.com/changwulf/dxf-viewer/pkg/geometry"
)

const (
	arcSegments = 48
	zoomStep    = 0.002
)

var (
	backgroundColor = color.RGBA{30, 30, 30, 255}
	highlightColor  = color.RGBA{255, 220, 0, 255}
	regionFill      = color.RGBA{100, 150, 255, 50}
	regionStroke    = color.RGBA{100, 150, 255, 200}
)

// DrawingView renders the primitives of a controller and forwards pointer
// gestures to it
type DrawingView struct {
	widget.BaseWidget
	controller *app.Controller

	mu        sync.Mutex
	regionBox *geometry.Rect
}

// NewDrawingView creates a drawing widget for the controller
func NewDrawingView(controller *app.Controller) *DrawingView {
	v := &DrawingView{controller: controller}
	v.ExtendBaseWidget(v)
	return v
}

// SetController attaches the controller; the controller needs the view as
// its layer switch, so it is created after the view
func (v *DrawingView) SetController(controller *app.Controller) {
	v.controller = controller
	v.Refresh()
}

// ShowLayer redraws after a layer visibility change
func (v *DrawingView) ShowLayer(name string, show bool) {
	v.Refresh()
}

// SetRegionBox shows or clears (nil) the rubber band, in canvas coordinates
func (v *DrawingView) SetRegionBox(r *geometry.Rect) {
	v.mu.Lock()
	v.regionBox = r
	v.mu.Unlock()
	v.Refresh()
}

// CreateRenderer creates the renderer for the widget
func (v *DrawingView) CreateRenderer() fyne.WidgetRenderer {
	bg := canvas.NewRectangle(backgroundColor)
	return &drawingRenderer{
		view:       v,
		background: bg,
		objects:    []fyne.CanvasObject{bg},
	}
}

// Cursor shows a crosshair while the region tool is active
func (v *DrawingView) Cursor() desktop.Cursor {
	if v.controller != nil && v.controller.Tool() == selection.ToolRegion {
		return desktop.CrosshairCursor
	}
	return desktop.DefaultCursor
}

func toPoint(p fyne.Position) geometry.Point {
	return geometry.NewPoint(float64(p.X), float64(p.Y))
}

// MouseDown forwards a press to the active tool
func (v *DrawingView) MouseDown(ev *desktop.MouseEvent) {
	if v.controller == nil || ev.Button != desktop.MouseButtonPrimary {
		return
	}
	v.controller.PointerDown(v.controller.EventAt(toPoint(ev.Position)))
	v.Refresh()
}

// MouseUp forwards a release to the active tool
func (v *DrawingView) MouseUp(ev *desktop.MouseEvent) {
	if v.controller == nil || ev.Button != desktop.MouseButtonPrimary {
		return
	}
	v.controller.PointerUp(v.controller.EventAt(toPoint(ev.Position)))
	v.Refresh()
}

func (v *DrawingView) MouseIn(*desktop.MouseEvent) {}

func (v *DrawingView) MouseOut() {}

// MouseMoved updates the rubber band of a pending region drag
func (v *DrawingView) MouseMoved(ev *desktop.MouseEvent) {
	if v.controller == nil {
		return
	}
	v.controller.PointerMove(v.controller.EventAt(toPoint(ev.Position)))
}

// Dragged extends a region drag, or pans the view for the other tools
func (v *DrawingView) Dragged(ev *fyne.DragEvent) {
	if v.controller == nil {
		return
	}
	if v.controller.Tool() == selection.ToolRegion {
		v.controller.PointerMove(v.controller.EventAt(toPoint(ev.Position)))
		return
	}

	v.controller.UpdateView(func(view *viewport.View) {
		view.Pan(float64(ev.Dragged.DX), float64(ev.Dragged.DY))
	})
	v.Refresh()
}

// DragEnd is a no-op; region drags complete on MouseUp
func (v *DrawingView) DragEnd() {}

// Scrolled zooms around the pointer position
func (v *DrawingView) Scrolled(ev *fyne.ScrollEvent) {
	if v.controller == nil {
		return
	}
	factor := 1 + float64(ev.Scrolled.DY)*zoomStep
	if factor <= 0.1 {
		factor = 0.1
	}
	anchor := toPoint(ev.Position)
	v.controller.UpdateView(func(view *viewport.View) {
		view.Zoom(factor, anchor)
	})
	v.Refresh()
}

// drawingRenderer implements fyne.WidgetRenderer
type drawingRenderer struct {
	view       *DrawingView
	background *canvas.Rectangle
	objects    []fyne.CanvasObject
}

func (r *drawingRenderer) Layout(size fyne.Size) {
	r.background.Resize(size)

	if r.view.controller != nil {
		r.view.controller.UpdateView(func(view *viewport.View) {
			view.Resize(float64(size.Width), float64(size.Height))
		})
	}
	r.Refresh()
}

func (r *drawingRenderer) MinSize() fyne.Size {
	return fyne.NewSize(400, 400)
}

func (r *drawingRenderer) Refresh() {
	objects := []fyne.CanvasObject{r.background}

	c := r.view.controller
	if c != nil {
		view := c.View()
		colors := layerColors(c)
		highlighted := highlightedPrimitives(c.Selection())

		for _, p := range c.Primitives() {
			if !c.LayerVisible(p.Layer()) {
				continue
			}
			col, width := colors[p.Layer()], float32(1)
			if col == nil {
				col = color.White
			}
			if highlighted(p) {
				col, width = highlightColor, 3
			}
			objects = append(objects, primitiveObjects(p, &view, col, width)...)
		}
	}

	r.view.mu.Lock()
	box := r.view.regionBox
	r.view.mu.Unlock()
	if box != nil {
		rect := canvas.NewRectangle(regionFill)
		rect.StrokeColor = regionStroke
		rect.StrokeWidth = 1
		rect.Move(fyne.NewPos(float32(box.MinX), float32(box.MinY)))
		rect.Resize(fyne.NewSize(float32(box.Width()), float32(box.Height())))
		objects = append(objects, rect)
	}

	r.objects = objects
	canvas.Refresh(r.view)
}

func (r *drawingRenderer) Objects() []fyne.CanvasObject {
	return r.objects
}

func (r *drawingRenderer) Destroy() {}

func layerColors(c *app.Controller) map[string]color.Color {
	colors := make(map[string]color.Color)
	doc, err := c.Document()
	if err != nil {
		return colors
	}
	for _, l := range doc.Layers {
		colors[l.Name] = color.RGBA{uint8(l.Color >> 16), uint8(l.Color >> 8), uint8(l.Color), 255}
	}
	return colors
}

// highlightedPrimitives returns a predicate for primitives in the selection
func highlightedPrimitives(sel selection.Selection) func(entity.Primitive) bool {
	var matches []entity.Primitive
	switch s := sel.(type) {
	case selection.LineSelection:
		matches = []entity.Primitive{s.Line}
	case selection.HoleSelection:
		matches = []entity.Primitive{s.Hole}
	case selection.RegionSelection:
		matches = s.Matches
	}
	return func(p entity.Primitive) bool {
		for _, m := range matches {
			if entity.Equal(m, p) {
				return true
			}
		}
		return false
	}
}

func primitiveObjects(p entity.Primitive, view *viewport.View, col color.Color, width float32) []fyne.CanvasObject {
	switch v := p.(type) {
	case entity.Line:
		return []fyne.CanvasObject{newLine(view.ModelToCanvas(v.Start), view.ModelToCanvas(v.End), col, width)}

	case entity.Circle:
		center := view.ModelToCanvas(v.Center)
		r := float32(v.Radius * view.Scale)
		circle := canvas.NewCircle(color.Transparent)
		circle.StrokeColor = col
		circle.StrokeWidth = width
		circle.Position1 = fyne.NewPos(float32(center.X)-r, float32(center.Y)-r)
		circle.Position2 = fyne.NewPos(float32(center.X)+r, float32(center.Y)+r)
		return []fyne.CanvasObject{circle}

	case entity.Arc:
		points := geometry.ArcPoints(v.Center, v.Radius, v.StartAngle, v.EndAngle, arcSegments)
		return polylineObjects(points, false, view, col, width)

	case entity.Polyline:
		return polylineObjects(v.Vertices, v.Closed, view, col, width)

	default:
		return nil
	}
}

func polylineObjects(points []geometry.Point, closed bool, view *viewport.View, col color.Color, width float32) []fyne.CanvasObject {
	objects := make([]fyne.CanvasObject, 0, len(points))
	for i := 0; i+1 < len(points); i++ {
		objects = append(objects, newLine(view.ModelToCanvas(points[i]), view.ModelToCanvas(points[i+1]), col, width))
	}
	if closed && len(points) > 2 {
		objects = append(objects, newLine(view.ModelToCanvas(points[len(points)-1]), view.ModelToCanvas(points[0]), col, width))
	}
	return objects
}

func newLine(a, b geometry.Point, col color.Color, width float32) *canvas.Line {
	line := canvas.NewLine(col)
	line.StrokeWidth = width
	line.Position1 = fyne.NewPos(float32(a.X), float32(a.Y))
	line.Position2 = fyne.NewPos(float32(b.X), float32(b.Y))
	return line
}
