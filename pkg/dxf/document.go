package dxf

import "fmt"

// Vertex is a 2D coordinate as stored in the drawing (the Z value is ignored)
type Vertex struct {
	X, Y float64
}

// Entity is a single drawing entity.
//
// Type carries the DXF entity name and the geometry fields are only filled
// for the kinds that define them. Optional values are pointers; nil means
// absent.
type Entity struct {
	Type       string   // DXF entity name, e.g. "LINE", "CIRCLE", "LWPOLYLINE"
	Handle     string   // group code 5
	Layer      string   // group code 8
	Vertices   []Vertex // LINE start/end, polyline vertices
	Center     *Vertex  // CIRCLE, ARC
	Radius     *float64 // CIRCLE, ARC
	StartAngle *float64 // ARC, degrees
	EndAngle   *float64 // ARC, degrees
	Closed     bool     // polyline flag bit 1
}

// Layer describes an entry of the LAYER table
type Layer struct {
	Name        string
	DisplayName string // layer description, if the drawing carries one
	Color       uint32 // packed 0xRRGGBB
}

// Label returns the display name, falling back to the layer name
func (l Layer) Label() string {
	if l.DisplayName != "" {
		return l.DisplayName
	}
	return l.Name
}

// ColorHex returns the layer color as #rrggbb
func (l Layer) ColorHex() string {
	return fmt.Sprintf("#%06x", l.Color&0xffffff)
}

// Document is a parsed DXF drawing
type Document struct {
	Layers   []Layer
	Entities []Entity
}

// NewDocument creates an empty document
func NewDocument() *Document {
	return &Document{
		Layers:   make([]Layer, 0),
		Entities: make([]Entity, 0),
	}
}

// AddEntity appends an entity to the document
func (d *Document) AddEntity(entity Entity) {
	d.Entities = append(d.Entities, entity)
}

// Layer looks up a layer by name
func (d *Document) Layer(name string) (Layer, bool) {
	for _, l := range d.Layers {
		if l.Name == name {
			return l, true
		}
	}
	return Layer{}, false
}

// EntityCount returns the number of entities in the document
func (d *Document) EntityCount() int {
	return len(d.Entities)
}

// addMissingLayers registers layers that entities reference but the LAYER
// table does not declare
func (d *Document) addMissingLayers() {
	known := make(map[string]bool, len(d.Layers))
	for _, l := range d.Layers {
		known[l.Name] = true
	}
	for _, e := range d.Entities {
		if e.Layer == "" || known[e.Layer] {
			continue
		}
		known[e.Layer] = true
		d.Layers = append(d.Layers, Layer{Name: e.Layer, Color: DefaultColor})
	}
}
