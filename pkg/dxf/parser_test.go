package dxf

import (
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func float(v float64) *float64 {
	return &v
}

func TestParseSample(t *testing.T) {
	doc, err := Parse("testdata/sample.dxf")
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}

	expected := []Entity{
		{Type: "LINE", Handle: "1A", Layer: "WALLS", Vertices: []Vertex{{0, 0}, {10, 0}}},
		{Type: "CIRCLE", Handle: "1B", Layer: "HOLES", Center: &Vertex{20, 20}, Radius: float(5)},
		{Type: "ARC", Handle: "1C", Layer: "HOLES", Center: &Vertex{-5, 5}, Radius: float(2.5), StartAngle: float(0), EndAngle: float(180)},
		{Type: "LWPOLYLINE", Handle: "1D", Layer: "WALLS", Vertices: []Vertex{{0, 10}, {5, 15}, {10, 10}}, Closed: true},
		{Type: "POLYLINE", Handle: "1E", Layer: "SITE", Vertices: []Vertex{{30, 30}, {40, 30}}},
		{Type: "TEXT", Handle: "22", Layer: "0"},
		{Type: "INSERT", Handle: "23", Layer: "0"},
	}
	if diff := cmp.Diff(expected, doc.Entities); diff != "" {
		t.Errorf("Entities mismatch (-want +got):\n%s", diff)
	}
}

func TestParseLayers(t *testing.T) {
	doc, err := Parse("testdata/sample.dxf")
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}

	expected := []Layer{
		{Name: "0", Color: 0xffffff},
		{Name: "WALLS", DisplayName: "Outer walls", Color: 0xff0000},
		{Name: "HOLES", Color: 0x123456},
		{Name: "SITE", Color: DefaultColor},
	}
	if diff := cmp.Diff(expected, doc.Layers); diff != "" {
		t.Errorf("Layers mismatch (-want +got):\n%s", diff)
	}

	walls, ok := doc.Layer("WALLS")
	if !ok {
		t.Fatalf("Layer WALLS not found")
	}
	if walls.Label() != "Outer walls" {
		t.Errorf("Label failed: expected %q, got %q", "Outer walls", walls.Label())
	}
	if walls.ColorHex() != "#ff0000" {
		t.Errorf("ColorHex failed: expected #ff0000, got %s", walls.ColorHex())
	}
}

func TestLayerColorHexIsPadded(t *testing.T) {
	l := Layer{Name: "X", Color: 0x0000ff}
	if got := l.ColorHex(); got != "#0000ff" {
		t.Errorf("ColorHex failed: expected #0000ff, got %s", got)
	}
	if got := l.Label(); got != "X" {
		t.Errorf("Label fallback failed: expected X, got %s", got)
	}
}

func TestParseUnparsableValuesReadAsZero(t *testing.T) {
	input := dxfText(
		"0", "SECTION", "2", "ENTITIES",
		"0", "CIRCLE", "8", "A", "10", "1", "20", "1", "40", "abc",
		"0", "LINE", "8", "A", "10", "0", "20", "0", "11", "x", "21", "1",
		"0", "ENDSEC", "0", "EOF",
	)

	doc, err := ParseReader(strings.NewReader(input))
	if err != nil {
		t.Fatalf("ParseReader failed: %v", err)
	}
	if len(doc.Entities) != 2 {
		t.Fatalf("Expected 2 entities, got %d", len(doc.Entities))
	}
	if r := doc.Entities[0].Radius; r == nil || *r != 0 {
		t.Errorf("Radius failed: expected 0, got %v", r)
	}
	expected := []Vertex{{0, 0}, {0, 1}}
	if diff := cmp.Diff(expected, doc.Entities[1].Vertices); diff != "" {
		t.Errorf("Line vertices mismatch (-want +got):\n%s", diff)
	}
}

func TestParseUnsupportedGroupCode(t *testing.T) {
	input := dxfText(
		"0", "SECTION", "2", "ENTITIES",
		"0", "LINE", "165", "1",
		"0", "ENDSEC", "0", "EOF",
	)

	_, err := ParseReader(strings.NewReader(input))
	if err == nil {
		t.Fatalf("Expected error for unsupported group code")
	}
	if !strings.Contains(err.Error(), "line 7") {
		t.Errorf("Error should name the line, got %v", err)
	}
}

func TestParseTagOutsideSection(t *testing.T) {
	input := dxfText("0", "LINE", "8", "A", "0", "EOF")

	_, err := ParseReader(strings.NewReader(input))
	if err == nil {
		t.Fatalf("Expected error for entity outside of a section")
	}
}

func TestParseLWPolylineWithoutVertexCount(t *testing.T) {
	input := dxfText(
		"0", "SECTION", "2", "ENTITIES",
		"0", "LWPOLYLINE", "8", "A", "10", "1", "20", "1",
		"0", "ENDSEC", "0", "EOF",
	)

	_, err := ParseReader(strings.NewReader(input))
	if err == nil || !strings.Contains(err.Error(), "malformed DXF") {
		t.Errorf("Expected malformed DXF error, got %v", err)
	}
}

func TestParseWithoutEOFMarker(t *testing.T) {
	input := dxfText(
		"0", "SECTION", "2", "ENTITIES",
		"0", "CIRCLE", "8", "A", "10", "1", "20", "2", "40", "3",
		"0", "ENDSEC",
	)

	doc, err := ParseReader(strings.NewReader(input))
	if err != nil {
		t.Fatalf("ParseReader failed: %v", err)
	}
	if len(doc.Entities) != 1 || doc.Entities[0].Type != "CIRCLE" {
		t.Errorf("Expected one CIRCLE, got %v", doc.Entities)
	}
	if diff := cmp.Diff([]Layer{{Name: "A", Color: DefaultColor}}, doc.Layers); diff != "" {
		t.Errorf("Layers mismatch (-want +got):\n%s", diff)
	}
}

func TestParseInvalidGroupCode(t *testing.T) {
	input := dxfText("0", "SECTION", "two", "ENTITIES")

	_, err := ParseReader(strings.NewReader(input))
	if err == nil {
		t.Fatalf("Expected error for invalid group code")
	}
	if !strings.Contains(err.Error(), "line 3") {
		t.Errorf("Error should name the line, got %v", err)
	}
}

func TestParseTruncatedSection(t *testing.T) {
	input := dxfText("0", "SECTION", "2", "ENTITIES", "0", "LINE", "8", "A")

	_, err := ParseReader(strings.NewReader(input))
	if !errors.Is(err, io.ErrUnexpectedEOF) {
		t.Errorf("Expected io.ErrUnexpectedEOF, got %v", err)
	}
}

func TestParseBinaryDXF(t *testing.T) {
	input := "AutoCAD Binary DXF\r\n\x1a\x00garbage"

	_, err := ParseReader(strings.NewReader(input))
	if !errors.Is(err, ErrBinaryDXF) {
		t.Errorf("Expected ErrBinaryDXF, got %v", err)
	}
}

func TestParseReportsProgress(t *testing.T) {
	input := dxfText("0", "SECTION", "2", "ENTITIES", "0", "ENDSEC", "0", "EOF")

	var last int64
	var phases []string
	_, err := ParseReaderWithProgress(strings.NewReader(input), int64(len(input)), func(phase string, processed, total int64) {
		phases = append(phases, phase)
		last = processed
		if total != int64(len(input)) {
			t.Errorf("Total failed: expected %d, got %d", len(input), total)
		}
	})
	if err != nil {
		t.Fatalf("ParseReaderWithProgress failed: %v", err)
	}
	if len(phases) == 0 || phases[0] != PhaseParse {
		t.Errorf("Expected %q progress, got %v", PhaseParse, phases)
	}
	if last != int64(len(input)) {
		t.Errorf("Final progress failed: expected %d, got %d", len(input), last)
	}
}

func TestACIToRGB(t *testing.T) {
	tests := map[int]uint32{
		1:   0xff0000,
		5:   0x0000ff,
		-5:  0x0000ff,
		7:   0xffffff,
		10:  0xff0000,
		90:  0x00ff00,
		250: 0x333333,
		0:   DefaultColor,
		256: DefaultColor,
	}

	for index, expected := range tests {
		if got := ACIToRGB(index); got != expected {
			t.Errorf("ACIToRGB(%d) failed: expected %06x, got %06x", index, expected, got)
		}
	}
}

func dxfText(lines ...string) string {
	return strings.Join(lines, "\n") + "\n"
}
