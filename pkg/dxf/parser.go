package dxf

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/rpaloschi/dxf-go/core"
	"github.com/rpaloschi/dxf-go/document"
	"github.com/rpaloschi/dxf-go/entities"
	"github.com/rpaloschi/dxf-go/sections"
)

// ErrBinaryDXF is returned for binary DXF files, which are not supported
var ErrBinaryDXF = errors.New("binary DXF is not supported")

var binarySentinel = []byte("AutoCAD Binary DXF")

// ProgressFunc reports loading progress for a named phase
type ProgressFunc func(phase string, processed, total int64)

// PhaseParse is the progress phase reported while reading the drawing
const PhaseParse = "parse"

func init() {
	// dxf-go reports every discarded tag on its package logger
	core.Log.SetOutput(io.Discard)
}

// Parse reads a DXF file and returns its document
func Parse(filename string) (*Document, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	defer file.Close()

	var size int64
	if info, err := file.Stat(); err == nil {
		size = info.Size()
	}

	return ParseReaderWithProgress(file, size, nil)
}

// ParseReader reads a DXF drawing from a reader
func ParseReader(reader io.Reader) (*Document, error) {
	return ParseReaderWithProgress(reader, 0, nil)
}

// ParseReaderWithProgress reads a DXF drawing and reports the number of bytes
// consumed so far. size may be zero when the total is unknown.
func ParseReaderWithProgress(reader io.Reader, size int64, progress ProgressFunc) (*Document, error) {
	if progress != nil {
		reader = &countingReader{reader: reader, total: size, progress: progress}
	}

	data, err := io.ReadAll(reader)
	if err != nil {
		return nil, fmt.Errorf("error reading DXF: %w", err)
	}
	if bytes.HasPrefix(data, binarySentinel) {
		return nil, ErrBinaryDXF
	}

	tags, err := readTags(data)
	if err != nil {
		return nil, err
	}
	if err := checkSections(tags); err != nil {
		return nil, err
	}

	source, err := parseDocument(data)
	if err != nil {
		return nil, err
	}

	doc := NewDocument()
	doc.Layers = convertLayers(tags, source.Tables)
	for _, e := range source.Entities.Entities {
		doc.AddEntity(convertEntity(e))
	}
	doc.addMissingLayers()

	if progress != nil {
		progress(PhaseParse, size, size)
	}
	return doc, nil
}

// countingReader forwards read progress to a callback
type countingReader struct {
	reader   io.Reader
	read     int64
	total    int64
	progress ProgressFunc
}

func (c *countingReader) Read(p []byte) (int, error) {
	n, err := c.reader.Read(p)
	if n > 0 {
		c.read += int64(n)
		c.progress(PhaseParse, c.read, c.total)
	}
	return n, err
}

// readTags tokenizes the drawing. dxf-go drops tokenizer errors and panics on
// group codes it has no value type for, so both are turned into errors here.
func readTags(data []byte) (tags core.TagSlice, err error) {
	line := 1
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("unsupported group code at line %d", line)
		}
	}()

	next := core.Tagger(bytes.NewReader(data))
	for {
		tag, tagErr := next()
		if tagErr != nil {
			return nil, fmt.Errorf("invalid group code at line %d: %w", line, tagErr)
		}
		if *tag == core.NoneTag {
			return tags, nil
		}
		tags = append(tags, tag)
		line += 2
	}
}

// checkSections verifies the SECTION/ENDSEC structure dxf-go relies on
func checkSections(tags core.TagSlice) error {
	open := ""
	for i, tag := range tags {
		if tag.Code != 0 {
			if open == "" {
				return fmt.Errorf("unexpected group code %d outside of a section", tag.Code)
			}
			continue
		}

		switch value := tag.Value.ToString(); {
		case open != "":
			if value == "ENDSEC" {
				open = ""
			}
		case value == "EOF":
			return nil
		case value == "SECTION":
			if i+1 >= len(tags) || tags[i+1].Code != 2 {
				return fmt.Errorf("section without a name: %w", io.ErrUnexpectedEOF)
			}
			open = tags[i+1].Value.ToString()
		default:
			return fmt.Errorf("unexpected %s outside of a section", value)
		}
	}

	if open != "" {
		return fmt.Errorf("failed to parse %s section: %w", open, io.ErrUnexpectedEOF)
	}
	return nil
}

func parseDocument(data []byte) (doc *document.DxfDocument, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("malformed DXF: %v", r)
		}
	}()

	doc, err = document.DxfDocumentFromStream(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to parse DXF: %w", err)
	}
	return doc, nil
}

func convertEntity(e entities.Entity) Entity {
	switch v := e.(type) {
	case *entities.Line:
		out := baseEntity("LINE", v.BaseEntity)
		out.Vertices = []Vertex{vertex(v.Start), vertex(v.End)}
		return out

	case *entities.Circle:
		out := baseEntity("CIRCLE", v.BaseEntity)
		center := vertex(v.Center)
		out.Center = &center
		out.Radius = &v.Radius
		return out

	case *entities.Arc:
		out := baseEntity("ARC", v.BaseEntity)
		center := vertex(v.Center)
		out.Center = &center
		out.Radius = &v.Radius
		out.StartAngle = &v.StartAngle
		out.EndAngle = &v.EndAngle
		return out

	case *entities.LWPolyline:
		out := baseEntity("LWPOLYLINE", v.BaseEntity)
		for _, p := range v.Points {
			out.Vertices = append(out.Vertices, vertex(p.Point))
		}
		out.Closed = v.Closed
		return out

	case *entities.Polyline:
		out := baseEntity("POLYLINE", v.BaseEntity)
		for _, p := range v.Vertices {
			out.Vertices = append(out.Vertices, vertex(p.Location))
		}
		out.Closed = v.Closed
		return out

	case *entities.Point:
		return baseEntity("POINT", v.BaseEntity)
	case *entities.Text:
		return baseEntity("TEXT", v.BaseEntity)
	case *entities.Insert:
		return baseEntity("INSERT", v.BaseEntity)
	case *entities.Ellipse:
		return baseEntity("ELLIPSE", v.BaseEntity)
	case *entities.Spline:
		return baseEntity("SPLINE", v.BaseEntity)
	}
	return Entity{Type: "UNKNOWN"}
}

func baseEntity(kind string, base entities.BaseEntity) Entity {
	return Entity{Type: kind, Handle: base.Handle, Layer: base.LayerName}
}

func vertex(p core.Point) Vertex {
	return Vertex{X: p.X, Y: p.Y}
}

// convertLayers keeps the LAYER table order of the file. dxf-go stores the
// table as a map and does not read true colors or layer descriptions, so
// those come from the raw table entries.
func convertLayers(tags core.TagSlice, tables *sections.TablesSection) []Layer {
	layers := make([]Layer, 0)
	for _, group := range core.TagGroups(tablesSection(tags), 0) {
		if group[0].Value.ToString() != "LAYER" {
			continue
		}
		names := group.AllWithCode(2)
		if len(names) == 0 {
			continue
		}

		l := Layer{Name: names[0].Value.ToString(), Color: DefaultColor}
		if tables != nil {
			if parsed, ok := tables.Layers[l.Name].(*sections.Layer); ok {
				l.Color = ACIToRGB(parsed.Color)
			}
		}
		if trueColors := group.AllWithCode(420); len(trueColors) > 0 {
			if v, ok := core.AsInt(trueColors[0].Value); ok {
				l.Color = uint32(v) & 0xffffff
			}
		}
		l.DisplayName = layerDescription(group)
		layers = append(layers, l)
	}
	return layers
}

func tablesSection(tags core.TagSlice) core.TagSlice {
	stop := core.NewTag(0, core.NewStringValue("EOF"))
	end := core.NewTag(0, core.NewStringValue("ENDSEC"))
	for _, section := range sections.SplitTagChunks(tags, stop, end) {
		if len(section) > 1 && section[1].Value.ToString() == "TABLES" {
			return section[2:]
		}
	}
	return nil
}

// layerDescription reads the AcAecLayerStandard XDATA, which carries an
// empty string followed by the description
func layerDescription(group core.TagSlice) string {
	var values []string
	app := ""
	for _, tag := range group.XDataTags() {
		switch tag.Code {
		case 1001:
			app = tag.Value.ToString()
		case 1000:
			if app == "AcAecLayerStandard" {
				values = append(values, strings.TrimSpace(tag.Value.ToString()))
			}
		}
	}
	if len(values) > 1 {
		return values[1]
	}
	return ""
}
