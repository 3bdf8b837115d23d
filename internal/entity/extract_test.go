package entity

import (
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/changwulf/dxf-viewer/pkg/dxf"
	"github.com/changwulf/dxf-viewer/pkg/geometry"
)

func float(v float64) *float64 {
	return &v
}

func sampleDocument() *dxf.Document {
	doc := dxf.NewDocument()
	doc.AddEntity(dxf.Entity{Type: "LINE", Layer: "WALLS", Vertices: []dxf.Vertex{{X: 0, Y: 0}, {X: 10, Y: 0}}})
	doc.AddEntity(dxf.Entity{Type: "CIRCLE", Layer: "HOLES", Center: &dxf.Vertex{X: 20, Y: 20}, Radius: float(5)})
	doc.AddEntity(dxf.Entity{Type: "ARC", Layer: "HOLES", Center: &dxf.Vertex{X: -5, Y: 5}, Radius: float(2.5), StartAngle: float(0), EndAngle: float(180)})
	doc.AddEntity(dxf.Entity{Type: "LWPOLYLINE", Layer: "WALLS", Vertices: []dxf.Vertex{{X: 0, Y: 10}, {X: 5, Y: 15}}, Closed: true})
	doc.AddEntity(dxf.Entity{Type: "POLYLINE", Layer: "SITE", Vertices: []dxf.Vertex{{X: 30, Y: 30}, {X: 40, Y: 30}}})
	doc.AddEntity(dxf.Entity{Type: "TEXT", Layer: "0"})
	return doc
}

func TestExtract(t *testing.T) {
	prims := Extract(sampleDocument())

	expected := []Primitive{
		Line{Start: geometry.NewPoint(0, 0), End: geometry.NewPoint(10, 0), LayerName: "WALLS"},
		Circle{Center: geometry.NewPoint(20, 20), Radius: 5, LayerName: "HOLES"},
		Arc{Center: geometry.NewPoint(-5, 5), Radius: 2.5, StartAngle: 0, EndAngle: 180, LayerName: "HOLES"},
		Polyline{Vertices: []geometry.Point{{X: 0, Y: 10}, {X: 5, Y: 15}}, Closed: true, LayerName: "WALLS"},
		Polyline{Vertices: []geometry.Point{{X: 30, Y: 30}, {X: 40, Y: 30}}, LayerName: "SITE"},
	}
	if diff := cmp.Diff(expected, prims); diff != "" {
		t.Errorf("Extract mismatch (-want +got):\n%s", diff)
	}
}

func TestExtractIsIdempotent(t *testing.T) {
	doc := sampleDocument()

	first := Extract(doc)
	second := Extract(doc)

	if diff := cmp.Diff(first, second); diff != "" {
		t.Errorf("Repeated extraction differs (-first +second):\n%s", diff)
	}
}

func TestExtractDropsMalformedEntities(t *testing.T) {
	doc := dxf.NewDocument()
	doc.AddEntity(dxf.Entity{Type: "LINE", Vertices: []dxf.Vertex{{X: 0, Y: 0}}})
	doc.AddEntity(dxf.Entity{Type: "LINE"})
	doc.AddEntity(dxf.Entity{Type: "CIRCLE", Radius: float(1)})
	doc.AddEntity(dxf.Entity{Type: "CIRCLE", Center: &dxf.Vertex{}})
	doc.AddEntity(dxf.Entity{Type: "CIRCLE", Center: &dxf.Vertex{}, Radius: float(0)})
	doc.AddEntity(dxf.Entity{Type: "CIRCLE", Center: &dxf.Vertex{}, Radius: float(-2)})
	doc.AddEntity(dxf.Entity{Type: "CIRCLE", Center: &dxf.Vertex{}, Radius: float(math.Inf(1))})
	doc.AddEntity(dxf.Entity{Type: "ARC", Center: &dxf.Vertex{}, Radius: float(1), StartAngle: float(0)})
	doc.AddEntity(dxf.Entity{Type: "LWPOLYLINE", Vertices: []dxf.Vertex{{X: 1, Y: 1}}})
	doc.AddEntity(dxf.Entity{Type: "POLYLINE"})
	doc.AddEntity(dxf.Entity{Type: "LINE", Vertices: []dxf.Vertex{{X: math.NaN(), Y: 0}, {X: 1, Y: 1}}})

	prims := Extract(doc)
	if len(prims) != 0 {
		t.Errorf("Expected all malformed entities to be dropped, got %v", prims)
	}
}

func TestExtractNilDocument(t *testing.T) {
	prims := Extract(nil)
	if prims == nil || len(prims) != 0 {
		t.Errorf("Expected empty non-nil list, got %v", prims)
	}
}

func TestExtractFromParsedFile(t *testing.T) {
	doc, err := dxf.Parse("../../pkg/dxf/testdata/sample.dxf")
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}

	counts := Counts(Extract(doc))
	expected := map[Kind]int{KindLine: 1, KindCircle: 1, KindArc: 1, KindPolyline: 2}
	if diff := cmp.Diff(expected, counts); diff != "" {
		t.Errorf("Counts mismatch (-want +got):\n%s", diff)
	}
}

func TestBounds(t *testing.T) {
	prims := []Primitive{
		Line{Start: geometry.NewPoint(0, 0), End: geometry.NewPoint(10, 0)},
		Circle{Center: geometry.NewPoint(20, 20), Radius: 5},
	}

	bbox := Bounds(prims)
	if bbox.Min != geometry.NewPoint(0, 0) {
		t.Errorf("Min failed: expected (0, 0), got %v", bbox.Min)
	}
	if bbox.Max != geometry.NewPoint(25, 25) {
		t.Errorf("Max failed: expected (25, 25), got %v", bbox.Max)
	}
}

func TestKindString(t *testing.T) {
	if KindPolyline.String() != "polyline" {
		t.Errorf("String failed: expected polyline, got %s", KindPolyline.String())
	}
	if Kind(42).String() != "unknown" {
		t.Errorf("String failed: expected unknown, got %s", Kind(42).String())
	}
}

func TestEqual(t *testing.T) {
	square := Polyline{Vertices: []geometry.Point{{X: 0, Y: 0}, {X: 1, Y: 0}, {X: 1, Y: 1}}, Closed: true}
	same := Polyline{Vertices: []geometry.Point{{X: 0, Y: 0}, {X: 1, Y: 0}, {X: 1, Y: 1}}, Closed: true}
	open := Polyline{Vertices: square.Vertices, Closed: false}
	line := Line{Start: geometry.NewPoint(0, 0), End: geometry.NewPoint(1, 0)}

	if !Equal(square, same) {
		t.Error("Equal failed: identical polylines should be equal")
	}
	if Equal(square, open) {
		t.Error("Equal failed: closed flag differs")
	}
	if Equal(line, square) {
		t.Error("Equal failed: different kinds should differ")
	}
	if !Equal(line, line) {
		t.Error("Equal failed: line should equal itself")
	}
}
