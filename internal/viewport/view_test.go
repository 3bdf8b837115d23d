package viewport

import (
	"math"
	"testing"

	"github.com/changwulf/dxf-viewer/pkg/geometry"
)

func assertPoint(t *testing.T, name string, expected, got geometry.Point) {
	t.Helper()
	if math.Abs(expected.X-got.X) > 1e-10 || math.Abs(expected.Y-got.Y) > 1e-10 {
		t.Errorf("%s failed: expected %v, got %v", name, expected, got)
	}
}

func TestModelToCanvasCenter(t *testing.T) {
	v := &View{Width: 200, Height: 100, Center: geometry.NewPoint(10, 20), Scale: 2}

	assertPoint(t, "ModelToCanvas", geometry.NewPoint(100, 50), v.ModelToCanvas(geometry.NewPoint(10, 20)))
}

func TestModelToCanvasFlipsY(t *testing.T) {
	v := &View{Width: 200, Height: 100, Scale: 1}

	got := v.ModelToCanvas(geometry.NewPoint(0, 10))
	assertPoint(t, "ModelToCanvas", geometry.NewPoint(100, 40), got)
}

func TestCanvasToModelRoundTrip(t *testing.T) {
	v := &View{Width: 640, Height: 480, Center: geometry.NewPoint(-3, 7.5), Scale: 3.25}

	points := []geometry.Point{
		geometry.NewPoint(0, 0),
		geometry.NewPoint(12.5, -4),
		geometry.NewPoint(-100, 250),
	}
	for _, p := range points {
		assertPoint(t, "CanvasToModel", p, v.CanvasToModel(v.ModelToCanvas(p)))
	}
}

func TestVisibleWidth(t *testing.T) {
	v := &View{Width: 500, Height: 300, Scale: 10}

	if w := v.VisibleWidth(); math.Abs(w-50) > 1e-10 {
		t.Errorf("VisibleWidth failed: expected 50, got %v", w)
	}
	if l := v.Left(); math.Abs(l+25) > 1e-10 {
		t.Errorf("Left failed: expected -25, got %v", l)
	}
}

func TestFit(t *testing.T) {
	v := New(120, 120)
	bbox := geometry.NewBoundingBox()
	bbox.Extend(geometry.NewPoint(0, 0))
	bbox.Extend(geometry.NewPoint(100, 50))

	v.Fit(bbox, 10)

	assertPoint(t, "Fit center", geometry.NewPoint(50, 25), v.Center)
	if math.Abs(v.Scale-1) > 1e-10 {
		t.Errorf("Fit failed: expected scale 1, got %v", v.Scale)
	}
}

func TestFitEmptyBox(t *testing.T) {
	v := &View{Width: 100, Height: 100, Center: geometry.NewPoint(5, 5), Scale: 4}

	v.Fit(geometry.NewBoundingBox(), DefaultMargin)

	assertPoint(t, "Fit center", geometry.Point{}, v.Center)
	if v.Scale != 1 {
		t.Errorf("Fit failed: expected scale 1, got %v", v.Scale)
	}
}

func TestZoomKeepsAnchor(t *testing.T) {
	v := &View{Width: 400, Height: 300, Center: geometry.NewPoint(1, 2), Scale: 5}
	anchor := geometry.NewPoint(300, 50)
	before := v.CanvasToModel(anchor)

	v.Zoom(2, anchor)

	if math.Abs(v.Scale-10) > 1e-10 {
		t.Errorf("Zoom failed: expected scale 10, got %v", v.Scale)
	}
	assertPoint(t, "Zoom anchor", before, v.CanvasToModel(anchor))
}

func TestZoomIgnoresInvalidFactor(t *testing.T) {
	v := &View{Width: 100, Height: 100, Scale: 5}

	v.Zoom(0, geometry.Point{})
	v.Zoom(-1, geometry.Point{})

	if v.Scale != 5 {
		t.Errorf("Zoom failed: expected scale 5, got %v", v.Scale)
	}
}

func TestPan(t *testing.T) {
	v := &View{Width: 100, Height: 100, Scale: 2}
	p := geometry.NewPoint(3, 4)
	before := v.ModelToCanvas(p)

	v.Pan(10, -6)

	assertPoint(t, "Pan", geometry.NewPoint(before.X+10, before.Y-6), v.ModelToCanvas(p))
}
