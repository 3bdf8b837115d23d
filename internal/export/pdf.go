package export

import (
	"fmt"
	"image/color"
	"io"

	"github.com/changwulf/dxf-viewer/internal/entity"
	"github.com/changwulf/dxf-viewer/internal/selection"
	"github.com/changwulf/dxf-viewer/internal/viewport"
	"github.com/changwulf/dxf-viewer/pkg/dxf"
	"github.com/changwulf/dxf-viewer/pkg/geometry"
	"github.com/tdewolff/canvas"
	"github.com/tdewolff/canvas/renderers/pdf"
)

const arcSegments = 64

var (
	highlightColor = color.RGBA{230, 180, 0, 255}
	regionColor    = color.RGBA{60, 110, 230, 255}
)

// Options controls the page layout, all sizes in millimetres
type Options struct {
	Width       float64
	Height      float64
	Margin      float64
	StrokeWidth float64
}

// DefaultOptions is an A4 landscape page
var DefaultOptions = Options{
	Width:       297,
	Height:      210,
	Margin:      10,
	StrokeWidth: 0.25,
}

// Drawing is what gets exported
type Drawing struct {
	Primitives []entity.Primitive
	Layers     []dxf.Layer
	// Hidden reports layers to leave out; nil exports all layers
	Hidden    func(layer string) bool
	Selection selection.Selection
}

// WritePDF renders the drawing scaled to fit a single PDF page, with the
// selection highlighted
func WritePDF(w io.Writer, d Drawing, opts Options) error {
	if opts.Width <= 0 || opts.Height <= 0 {
		return fmt.Errorf("invalid page size %.1fx%.1f", opts.Width, opts.Height)
	}
	if opts.StrokeWidth <= 0 {
		opts.StrokeWidth = DefaultOptions.StrokeWidth
	}

	page := viewport.New(opts.Width, opts.Height)
	page.Fit(entity.Bounds(d.Primitives), opts.Margin)

	c := canvas.New(opts.Width, opts.Height)
	ctx := canvas.NewContext(c)
	ctx.SetCoordSystem(canvas.CartesianIV)
	ctx.SetFillColor(color.RGBA{0, 0, 0, 0})

	colors := layerColors(d.Layers)
	highlighted := highlightSet(d.Selection)

	for i, p := range d.Primitives {
		if d.Hidden != nil && d.Hidden(p.Layer()) {
			continue
		}
		col, width := colors[p.Layer()], opts.StrokeWidth
		if col == nil {
			col = color.Black
		}
		if highlighted(p) {
			col, width = highlightColor, opts.StrokeWidth*3
		}
		ctx.SetStrokeColor(col)
		ctx.SetStrokeWidth(width)
		if err := drawPrimitive(ctx, page, p); err != nil {
			return fmt.Errorf("failed to draw primitive %d: %w", i, err)
		}
	}

	if region, ok := d.Selection.(selection.RegionSelection); ok {
		r := geometry.NewRect(
			page.ModelToCanvas(geometry.NewPoint(region.Rect.MinX, region.Rect.MinY)),
			page.ModelToCanvas(geometry.NewPoint(region.Rect.MaxX, region.Rect.MaxY)),
		)
		ctx.SetStrokeColor(regionColor)
		ctx.SetStrokeWidth(opts.StrokeWidth)
		ctx.DrawPath(r.MinX, r.MinY, canvas.Rectangle(r.Width(), r.Height()))
	}

	writer := pdf.New(w, opts.Width, opts.Height, nil)
	c.RenderTo(writer)
	if err := writer.Close(); err != nil {
		return fmt.Errorf("failed to write PDF: %w", err)
	}
	return nil
}

func drawPrimitive(ctx *canvas.Context, page *viewport.View, p entity.Primitive) error {
	switch v := p.(type) {
	case entity.Line:
		drawPolyline(ctx, page, []geometry.Point{v.Start, v.End}, false)
	case entity.Circle:
		center := page.ModelToCanvas(v.Center)
		ctx.DrawPath(center.X, center.Y, canvas.Circle(v.Radius*page.Scale))
	case entity.Arc:
		drawPolyline(ctx, page, geometry.ArcPoints(v.Center, v.Radius, v.StartAngle, v.EndAngle, arcSegments), false)
	case entity.Polyline:
		drawPolyline(ctx, page, v.Vertices, v.Closed)
	default:
		return fmt.Errorf("unsupported primitive %T", p)
	}
	return nil
}

func drawPolyline(ctx *canvas.Context, page *viewport.View, points []geometry.Point, closed bool) {
	if len(points) < 2 {
		return
	}
	path := &canvas.Path{}
	start := page.ModelToCanvas(points[0])
	path.MoveTo(start.X, start.Y)
	for _, pt := range points[1:] {
		q := page.ModelToCanvas(pt)
		path.LineTo(q.X, q.Y)
	}
	if closed {
		path.Close()
	}
	ctx.DrawPath(0, 0, path)
}

// layerColors maps layer names to stroke colors; white layers print black
func layerColors(layers []dxf.Layer) map[string]color.Color {
	colors := make(map[string]color.Color, len(layers))
	for _, l := range layers {
		if l.Color == dxf.DefaultColor {
			colors[l.Name] = color.Black
			continue
		}
		colors[l.Name] = color.RGBA{uint8(l.Color >> 16), uint8(l.Color >> 8), uint8(l.Color), 255}
	}
	return colors
}

func highlightSet(sel selection.Selection) func(entity.Primitive) bool {
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
