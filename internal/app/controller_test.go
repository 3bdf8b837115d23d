package app

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/changwulf/dxf-viewer/internal/measurement"
	"github.com/changwulf/dxf-viewer/internal/selection"
	"github.com/changwulf/dxf-viewer/internal/viewport"
	"github.com/changwulf/dxf-viewer/pkg/geometry"
	"github.com/google/go-cmp/cmp"
)

const samplePath = "../../pkg/dxf/testdata/sample.dxf"

// recordingDisplay keeps every loading text next to the panel state
type recordingDisplay struct {
	*Panel
	mu      sync.Mutex
	loading []string
	hidden  int
}

func newRecordingDisplay() *recordingDisplay {
	return &recordingDisplay{Panel: NewPanel()}
}

func (r *recordingDisplay) ShowLoading(text string) {
	r.mu.Lock()
	r.loading = append(r.loading, text)
	r.mu.Unlock()
	r.Panel.ShowLoading(text)
}

func (r *recordingDisplay) UpdateLoading(text string) {
	r.ShowLoading(text)
}

func (r *recordingDisplay) HideLoading() {
	r.mu.Lock()
	r.hidden++
	r.mu.Unlock()
	r.Panel.HideLoading()
}

type recordingSwitch struct {
	calls []string
}

func (s *recordingSwitch) ShowLayer(name string, show bool) {
	state := "off"
	if show {
		state = "on"
	}
	s.calls = append(s.calls, name+"="+state)
}

// loadSample loads the sample drawing with a view where canvas (50,50)
// is the model origin at one pixel per unit
func loadSample(t *testing.T) (*Controller, *Panel) {
	t.Helper()
	panel := NewPanel()
	c := New(panel, panel, viewport.New(100, 100))
	if err := c.Load(context.Background(), samplePath); err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	c.UpdateView(func(v *viewport.View) {
		v.Center = geometry.Point{}
		v.Scale = 1
	})
	return c, panel
}

func canvasOf(x, y float64) geometry.Point {
	return geometry.NewPoint(50+x, 50-y)
}

func TestLoadPublishesLayers(t *testing.T) {
	c, panel := loadSample(t)

	state := panel.State()
	if state.Loading != "" {
		t.Errorf("Load failed: loading indicator still shown: %q", state.Loading)
	}
	if len(state.Layers) != 4 {
		t.Fatalf("Load failed: expected 4 layers, got %d", len(state.Layers))
	}

	walls := state.Layers[1]
	expected := LayerInfo{Name: "WALLS", Label: "Outer walls", Color: "#ff0000", Visible: true}
	if diff := cmp.Diff(expected, walls); diff != "" {
		t.Errorf("Layer mismatch (-want +got):\n%s", diff)
	}

	if len(c.Primitives()) != 5 {
		t.Errorf("Load failed: expected 5 primitives, got %d", len(c.Primitives()))
	}
	if _, err := c.Document(); err != nil {
		t.Errorf("Document failed: %v", err)
	}
}

func TestLoadReportsProgress(t *testing.T) {
	display := newRecordingDisplay()
	c := New(display, nil, nil)

	if err := c.Load(context.Background(), samplePath); err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if display.loading[0] != LoadingText {
		t.Errorf("Load failed: expected first text %q, got %q", LoadingText, display.loading[0])
	}
	joined := strings.Join(display.loading, "\n")
	for _, want := range []string{"parse: 100%", "prepare: 0%", "prepare: 100%"} {
		if !strings.Contains(joined, want) {
			t.Errorf("Load failed: missing progress %q in %v", want, display.loading)
		}
	}
	if display.hidden != 1 {
		t.Errorf("Load failed: expected loading hidden once, got %d", display.hidden)
	}
}

func TestLoadMissingFileShowsError(t *testing.T) {
	display := newRecordingDisplay()
	c := New(display, nil, nil)

	err := c.Load(context.Background(), filepath.Join(t.TempDir(), "missing.dxf"))
	if err == nil {
		t.Fatal("Load failed: expected error")
	}

	state := display.State()
	if !strings.HasPrefix(state.Error, "Error loading DXF file: ") {
		t.Errorf("Load failed: unexpected error text %q", state.Error)
	}
	if state.Loading != "" || display.hidden != 1 {
		t.Errorf("Load failed: loading indicator must be hidden on error")
	}
	if _, err := c.Document(); !errors.Is(err, ErrNoDocument) {
		t.Errorf("Document failed: expected ErrNoDocument, got %v", err)
	}
}

func TestLoadMalformedKeepsPreviousDrawing(t *testing.T) {
	c, panel := loadSample(t)

	bad := filepath.Join(t.TempDir(), "bad.dxf")
	if err := os.WriteFile(bad, []byte("  0\nSECTION\n  2\nENTITIES\n  0\nLINE\n 10\n"), 0o644); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}

	if err := c.Load(context.Background(), bad); err == nil {
		t.Fatal("Load failed: expected error for truncated file")
	}
	if c.Source() != samplePath {
		t.Errorf("Load failed: expected previous source kept, got %s", c.Source())
	}
	if panel.State().Error == "" {
		t.Error("Load failed: expected error on panel")
	}
}

func TestLoadFromURL(t *testing.T) {
	data, err := os.ReadFile(samplePath)
	if err != nil {
		t.Fatalf("ReadFile failed: %v", err)
	}
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write(data)
	}))
	defer server.Close()

	display := newRecordingDisplay()
	c := New(display, nil, nil)
	if err := c.Load(context.Background(), server.URL+"/sample.dxf"); err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if len(c.Primitives()) != 5 {
		t.Errorf("Load failed: expected 5 primitives, got %d", len(c.Primitives()))
	}
	if !strings.Contains(strings.Join(display.loading, "\n"), "fetch: 100%") {
		t.Errorf("Load failed: missing fetch progress in %v", display.loading)
	}
}

func TestLoadFromURLNotFound(t *testing.T) {
	server := httptest.NewServer(http.NotFoundHandler())
	defer server.Close()

	panel := NewPanel()
	c := New(panel, nil, nil)
	if err := c.Load(context.Background(), server.URL+"/missing.dxf"); err == nil {
		t.Fatal("Load failed: expected error for 404")
	}
	if !strings.Contains(panel.State().Error, "404") {
		t.Errorf("Load failed: expected status in error, got %q", panel.State().Error)
	}
}

func TestLineTool(t *testing.T) {
	c, panel := loadSample(t)
	c.SetTool(selection.ToolLine)

	info, ok := c.PointerDown(c.EventAt(canvasOf(5, 0.5)))
	if !ok {
		t.Fatal("PointerDown failed: expected line selection")
	}
	if v, _ := info.Value("Length"); v != "10.000" {
		t.Errorf("PointerDown failed: expected length 10.000, got %s", v)
	}

	shown := panel.State().Selection
	if shown == nil || shown.Type != "Line" {
		t.Errorf("PointerDown failed: expected line on panel, got %v", shown)
	}
}

func TestMissLeavesPanelUnchanged(t *testing.T) {
	c, panel := loadSample(t)
	c.SetTool(selection.ToolLine)
	c.PointerDown(c.EventAt(canvasOf(5, 0)))
	before := panel.State().Selection

	if _, ok := c.PointerDown(c.EventAt(canvasOf(5, -40))); ok {
		t.Fatal("PointerDown failed: expected no selection")
	}
	if diff := cmp.Diff(before, panel.State().Selection); diff != "" {
		t.Errorf("Panel changed on miss (-want +got):\n%s", diff)
	}
}

func TestHoleTool(t *testing.T) {
	c, panel := loadSample(t)
	c.SetTool(selection.ToolHole)

	if _, ok := c.PointerDown(c.EventAt(canvasOf(20, 20))); !ok {
		t.Fatal("PointerDown failed: expected hole selection")
	}

	shown := panel.State().Selection
	if shown == nil {
		t.Fatal("PointerDown failed: no selection shown")
	}
	if shown.Type != "Circle/Hole" {
		t.Errorf("PointerDown failed: expected Circle/Hole, got %s", shown.Type)
	}
	if v, _ := shown.Value("Diameter"); v != "10.000" {
		t.Errorf("PointerDown failed: expected diameter 10.000, got %s", v)
	}
}

func TestRegionTool(t *testing.T) {
	c, panel := loadSample(t)
	c.SetTool(selection.ToolRegion)

	c.PointerDown(c.EventAt(canvasOf(-1, -1)))
	if _, ok := c.PointerMove(c.EventAt(canvasOf(5, 5))); !ok {
		t.Fatal("PointerMove failed: expected rubber band")
	}
	if panel.State().RegionBox == nil {
		t.Fatal("PointerMove failed: region box not shown")
	}

	info, ok := c.PointerUp(c.EventAt(canvasOf(11, 11)))
	if !ok {
		t.Fatal("PointerUp failed: expected region selection")
	}
	// the line and the closed polyline; the arc never counts
	if v, _ := info.Value("Entities"); v != "2" {
		t.Errorf("PointerUp failed: expected 2 entities, got %s", v)
	}
	if v, _ := info.Value("Area"); v != "144.000" {
		t.Errorf("PointerUp failed: expected area 144.000, got %s", v)
	}
	if panel.State().RegionBox != nil {
		t.Error("PointerUp failed: region box should be hidden")
	}
	if _, isRegion := c.Selection().(selection.RegionSelection); !isRegion {
		t.Errorf("Selection failed: expected region, got %T", c.Selection())
	}
}

func TestRegionBoxShownOnPress(t *testing.T) {
	c, panel := loadSample(t)
	c.SetTool(selection.ToolRegion)

	if _, ok := c.PointerDown(c.EventAt(canvasOf(-1, -1))); ok {
		t.Error("PointerDown failed: region press should not select")
	}

	box := panel.State().RegionBox
	if box == nil {
		t.Fatal("PointerDown failed: region box not shown")
	}
	expected := geometry.Rect{MinX: 49, MaxX: 49, MinY: 51, MaxY: 51}
	if diff := cmp.Diff(expected, *box); diff != "" {
		t.Errorf("PointerDown region box mismatch (-want +got):\n%s", diff)
	}
}

func TestLinePressShowsNoRegionBox(t *testing.T) {
	c, panel := loadSample(t)
	c.SetTool(selection.ToolLine)

	c.PointerDown(c.EventAt(canvasOf(5, 0)))
	if panel.State().RegionBox != nil {
		t.Error("PointerDown failed: line tool should not show a region box")
	}
}

func TestSetToolHidesSelection(t *testing.T) {
	c, panel := loadSample(t)
	c.SetTool(selection.ToolLine)
	c.PointerDown(c.EventAt(canvasOf(5, 0)))

	c.SetTool(selection.ToolHole)

	state := panel.State()
	if state.Selection != nil {
		t.Error("SetTool failed: selection should be hidden")
	}
	if state.Tool != "hole" {
		t.Errorf("SetTool failed: expected tool hole, got %s", state.Tool)
	}
	if c.Selection() != nil {
		t.Error("SetTool failed: current selection should be cleared")
	}
}

func TestHiddenLayerStaysSelectable(t *testing.T) {
	panel := NewPanel()
	layers := &recordingSwitch{}
	c := New(panel, layers, viewport.New(100, 100))
	if err := c.Load(context.Background(), samplePath); err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	c.UpdateView(func(v *viewport.View) {
		v.Center = geometry.Point{}
		v.Scale = 1
	})

	if err := c.ToggleLayer("WALLS", false); err != nil {
		t.Fatalf("ToggleLayer failed: %v", err)
	}
	if diff := cmp.Diff([]string{"WALLS=off"}, layers.calls); diff != "" {
		t.Errorf("ToggleLayer mismatch (-want +got):\n%s", diff)
	}
	if c.LayerVisible("WALLS") {
		t.Error("LayerVisible failed: WALLS should be hidden")
	}

	c.SetTool(selection.ToolLine)
	info, ok := c.PointerDown(c.EventAt(canvasOf(5, 0)))
	if !ok || info.Type != "Line" {
		t.Errorf("PointerDown failed: hidden layer should stay selectable")
	}
}

func TestToggleLayerErrors(t *testing.T) {
	c := New(NewPanel(), nil, nil)
	if err := c.ToggleLayer("WALLS", false); !errors.Is(err, ErrNoDocument) {
		t.Errorf("ToggleLayer failed: expected ErrNoDocument, got %v", err)
	}

	c, _ = loadSample(t)
	if err := c.ToggleLayer("NOPE", false); err == nil {
		t.Error("ToggleLayer failed: expected error for unknown layer")
	}
}

func TestReloadWithoutDocument(t *testing.T) {
	c := New(NewPanel(), nil, nil)
	if err := c.Reload(context.Background()); !errors.Is(err, ErrNoDocument) {
		t.Errorf("Reload failed: expected ErrNoDocument, got %v", err)
	}
}

func TestLoadFitsView(t *testing.T) {
	panel := NewPanel()
	c := New(panel, nil, viewport.New(200, 200))
	if err := c.Load(context.Background(), samplePath); err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	view := c.View()
	if view.Scale <= 0 {
		t.Fatalf("Load failed: invalid scale %v", view.Scale)
	}
	visible := view.Visible()
	for _, corner := range []geometry.Point{geometry.NewPoint(-7.5, 0), geometry.NewPoint(40, 30)} {
		if !visible.Contains(corner) {
			t.Errorf("Load failed: %v not visible in %v", corner, visible)
		}
	}
}

func TestPanelStateIsCopy(t *testing.T) {
	panel := NewPanel()
	panel.ShowSelection(measurement.Info{Type: "Line", Dimensions: []measurement.Dimension{{Label: "Length", Value: "1.000"}}})

	state := panel.State()
	state.Selection.Dimensions[0].Value = "changed"

	if v, _ := panel.State().Selection.Value("Length"); v != "1.000" {
		t.Errorf("State failed: panel modified through snapshot, got %s", v)
	}
}

func TestLoadBytes(t *testing.T) {
	data, err := os.ReadFile(samplePath)
	if err != nil {
		t.Fatalf("ReadFile failed: %v", err)
	}

	panel := NewPanel()
	c := New(panel, nil, nil)
	if err := c.LoadBytes("upload.dxf", data); err != nil {
		t.Fatalf("LoadBytes failed: %v", err)
	}
	if c.Source() != "upload.dxf" {
		t.Errorf("LoadBytes failed: expected source upload.dxf, got %s", c.Source())
	}
	if len(panel.State().Layers) != 4 {
		t.Errorf("LoadBytes failed: expected 4 layers, got %d", len(panel.State().Layers))
	}

	if err := c.LoadBytes("binary.dxf", []byte("AutoCAD Binary DXF\r\n\x1a\x00")); err == nil {
		t.Error("LoadBytes failed: expected error for binary DXF")
	}
}
