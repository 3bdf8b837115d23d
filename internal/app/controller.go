package app

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"net/http"
	"sync"

	"github.com/changwulf/dxf-viewer/internal/entity"
	"github.com/changwulf/dxf-viewer/internal/measurement"
	"github.com/changwulf/dxf-viewer/internal/selection"
	"github.com/changwulf/dxf-viewer/internal/viewport"
	"github.com/changwulf/dxf-viewer/pkg/dxf"
	"github.com/changwulf/dxf-viewer/pkg/geometry"
)

// ErrNoDocument is returned when an operation needs a loaded drawing
var ErrNoDocument = errors.New("no document loaded")

// LoadingText is shown while a drawing is being loaded
const LoadingText = "Loading DXF file..."

// Controller connects loading, layer toggling and the measurement tools
// to a Display
type Controller struct {
	// Client fetches drawings given as URLs; nil uses http.DefaultClient
	Client *http.Client

	display Display
	layers  LayerSwitch

	mu         sync.Mutex
	view       *viewport.View
	selector   *selection.Selector
	source     string
	doc        *dxf.Document
	primitives []entity.Primitive
	hidden     map[string]bool
	current    selection.Selection
}

// New creates a controller. layers may be nil when nothing renders layers.
func New(display Display, layers LayerSwitch, view *viewport.View) *Controller {
	if layers == nil {
		layers = noLayerSwitch{}
	}
	if view == nil {
		view = viewport.New(800, 600)
	}
	return &Controller{
		display:    display,
		layers:     layers,
		view:       view,
		selector:   selection.NewSelector(),
		primitives: []entity.Primitive{},
		hidden:     make(map[string]bool),
	}
}

// Load reads a drawing from a path or URL and replaces the current one.
// Failures are shown on the display and returned.
func (c *Controller) Load(ctx context.Context, source string) error {
	return c.load(source, func(progress dxf.ProgressFunc) (*dxf.Document, error) {
		return loadDocument(ctx, c.Client, source, progress)
	})
}

// LoadBytes replaces the current drawing with an in-memory DXF file, such
// as an upload. name is only used for display.
func (c *Controller) LoadBytes(name string, data []byte) error {
	return c.load(name, func(progress dxf.ProgressFunc) (*dxf.Document, error) {
		doc, err := dxf.ParseReaderWithProgress(bytes.NewReader(data), int64(len(data)), progress)
		if err != nil {
			return nil, fmt.Errorf("failed to parse DXF: %w", err)
		}
		return doc, nil
	})
}

func (c *Controller) load(source string, read func(dxf.ProgressFunc) (*dxf.Document, error)) error {
	c.display.ShowLoading(LoadingText)
	defer c.display.HideLoading()

	reporter := newProgressReporter(c.display.UpdateLoading)
	doc, err := read(reporter.report)
	if err != nil {
		c.display.ShowError(fmt.Sprintf("Error loading DXF file: %v", err))
		return fmt.Errorf("failed to load %s: %w", source, err)
	}

	c.display.UpdateLoading(ProgressText(PhasePrepare, 0))
	prims := entity.Extract(doc)

	c.mu.Lock()
	c.source = source
	c.doc = doc
	c.primitives = prims
	c.hidden = make(map[string]bool)
	c.current = nil
	c.selector.SetTool(c.selector.Tool())
	c.view.Fit(entity.Bounds(prims), viewport.DefaultMargin)
	layers := c.layerInfos()
	c.mu.Unlock()

	c.display.UpdateLoading(ProgressText(PhasePrepare, 100))
	c.display.SetLayers(layers)
	c.display.HideRegionBox()
	c.display.HideSelection()

	fmt.Printf("Loaded %s: %d entities, %d primitives, %d layers\n",
		source, doc.EntityCount(), len(prims), len(doc.Layers))
	return nil
}

// Reload loads the current source again
func (c *Controller) Reload(ctx context.Context) error {
	c.mu.Lock()
	source := c.source
	c.mu.Unlock()

	if source == "" {
		return ErrNoDocument
	}
	return c.Load(ctx, source)
}

// layerInfos must be called with c.mu held
func (c *Controller) layerInfos() []LayerInfo {
	if c.doc == nil {
		return []LayerInfo{}
	}
	infos := make([]LayerInfo, 0, len(c.doc.Layers))
	for _, l := range c.doc.Layers {
		infos = append(infos, LayerInfo{
			Name:    l.Name,
			Label:   l.Label(),
			Color:   l.ColorHex(),
			Visible: !c.hidden[l.Name],
		})
	}
	return infos
}

// SetTool activates a tool and hides the current selection
func (c *Controller) SetTool(t selection.Tool) {
	c.mu.Lock()
	c.selector.SetTool(t)
	c.current = nil
	c.mu.Unlock()

	c.display.SetTool(t)
	c.display.HideRegionBox()
	c.display.HideSelection()
}

// EventAt builds a pointer event for a canvas position
func (c *Controller) EventAt(canvas geometry.Point) selection.PointerEvent {
	c.mu.Lock()
	defer c.mu.Unlock()
	return selection.PointerEvent{
		Position: c.view.CanvasToModel(canvas),
		Canvas:   canvas,
	}
}

// PointerDown runs the line and hole tools or starts a region drag.
// A click that hits nothing leaves the panel unchanged.
func (c *Controller) PointerDown(ev selection.PointerEvent) (measurement.Info, bool) {
	c.mu.Lock()
	sel, ok := c.selector.PointerDown(ev, c.primitives, c.view)
	if ok {
		c.current = sel
	}
	band, dragging := c.selector.PointerMove(ev)
	c.mu.Unlock()

	// a region press shows an empty box at the press position
	if dragging {
		c.display.ShowRegionBox(band.Rect())
	}
	if !ok {
		return measurement.Info{}, false
	}
	info := measurement.Format(sel)
	c.display.ShowSelection(info)
	return info, true
}

// PointerMove updates the rubber band of a pending region drag
func (c *Controller) PointerMove(ev selection.PointerEvent) (geometry.Rect, bool) {
	c.mu.Lock()
	band, ok := c.selector.PointerMove(ev)
	c.mu.Unlock()

	if !ok {
		return geometry.Rect{}, false
	}
	rect := band.Rect()
	c.display.ShowRegionBox(rect)
	return rect, true
}

// PointerUp completes a pending region drag
func (c *Controller) PointerUp(ev selection.PointerEvent) (measurement.Info, bool) {
	c.mu.Lock()
	sel, ok := c.selector.PointerUp(ev, c.primitives, c.view)
	if ok {
		c.current = sel
	}
	c.mu.Unlock()

	if !ok {
		return measurement.Info{}, false
	}
	info := measurement.Format(sel)
	c.display.HideRegionBox()
	c.display.ShowSelection(info)
	return info, true
}

// ToggleLayer shows or hides a layer. Hidden layers stay selectable.
func (c *Controller) ToggleLayer(name string, show bool) error {
	c.mu.Lock()
	if c.doc == nil {
		c.mu.Unlock()
		return ErrNoDocument
	}
	if _, ok := c.doc.Layer(name); !ok {
		c.mu.Unlock()
		return fmt.Errorf("unknown layer %q", name)
	}
	if show {
		delete(c.hidden, name)
	} else {
		c.hidden[name] = true
	}
	c.mu.Unlock()

	c.layers.ShowLayer(name, show)
	return nil
}

// LayerVisible reports whether a layer is currently shown
func (c *Controller) LayerVisible(name string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return !c.hidden[name]
}

// Primitives returns the primitives of the loaded drawing
func (c *Controller) Primitives() []entity.Primitive {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.primitives
}

// Layers returns the layer list of the loaded drawing
func (c *Controller) Layers() []LayerInfo {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.layerInfos()
}

// Document returns the loaded drawing
func (c *Controller) Document() (*dxf.Document, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.doc == nil {
		return nil, ErrNoDocument
	}
	return c.doc, nil
}

// Source returns the path or URL of the loaded drawing
func (c *Controller) Source() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.source
}

// Tool returns the active tool
func (c *Controller) Tool() selection.Tool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.selector.Tool()
}

// Selection returns the shown selection, or nil
func (c *Controller) Selection() selection.Selection {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.current
}

// View returns a copy of the current view
func (c *Controller) View() viewport.View {
	c.mu.Lock()
	defer c.mu.Unlock()
	return *c.view
}

// UpdateView changes the view with fn while holding the controller lock
func (c *Controller) UpdateView(fn func(v *viewport.View)) {
	c.mu.Lock()
	defer c.mu.Unlock()
	fn(c.view)
}

// FitView fits the whole drawing into the canvas
func (c *Controller) FitView() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.view.Fit(entity.Bounds(c.primitives), viewport.DefaultMargin)
}
