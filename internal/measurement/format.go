package measurement

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/changwulf/dxf-viewer/internal/entity"
	"github.com/changwulf/dxf-viewer/internal/selection"
)

// Dimension is a single labelled value of a measurement
type Dimension struct {
	Label string `json:"label"`
	Value string `json:"value"`
}

// Info is the formatted content of the selection panel
type Info struct {
	Type       string      `json:"type"`
	Dimensions []Dimension `json:"dimensions"`
}

// Format converts a selection into its displayable measurement
func Format(sel selection.Selection) Info {
	switch s := sel.(type) {
	case selection.LineSelection:
		return formatLine(s.Line)
	case selection.HoleSelection:
		return formatHole(s)
	case selection.RegionSelection:
		return formatRegion(s)
	default:
		panic(fmt.Sprintf("measurement: unhandled selection %T", sel))
	}
}

func formatLine(l entity.Line) Info {
	return Info{
		Type: "Line",
		Dimensions: []Dimension{
			{Label: "Length", Value: FormatValue(l.Length())},
			{Label: "Start X", Value: FormatValue(l.Start.X)},
			{Label: "Start Y", Value: FormatValue(l.Start.Y)},
			{Label: "End X", Value: FormatValue(l.End.X)},
			{Label: "End Y", Value: FormatValue(l.End.Y)},
		},
	}
}

func formatHole(h selection.HoleSelection) Info {
	typ := "Circle/Hole"
	if _, isArc := h.Hole.(entity.Arc); isArc {
		typ = "Arc/Hole"
	}

	radius := h.Radius()
	center := h.Center()
	circle := entity.Circle{Center: center, Radius: radius}

	return Info{
		Type: typ,
		Dimensions: []Dimension{
			{Label: "Diameter", Value: FormatValue(circle.Diameter())},
			{Label: "Radius", Value: FormatValue(radius)},
			{Label: "Center X", Value: FormatValue(center.X)},
			{Label: "Center Y", Value: FormatValue(center.Y)},
			{Label: "Area", Value: FormatValue(circle.Area())},
		},
	}
}

func formatRegion(r selection.RegionSelection) Info {
	return Info{
		Type: "Region",
		Dimensions: []Dimension{
			{Label: "Width", Value: FormatValue(r.Rect.Width())},
			{Label: "Height", Value: FormatValue(r.Rect.Height())},
			{Label: "Area", Value: FormatValue(r.Rect.Area())},
			{Label: "Entities", Value: strconv.Itoa(r.Count())},
		},
	}
}

// FormatValue formats a number with three decimals
func FormatValue(v float64) string {
	s := fmt.Sprintf("%.3f", v)
	if s == "-0.000" {
		return "0.000"
	}
	return s
}

// Value returns the value of the named dimension
func (i Info) Value(label string) (string, bool) {
	for _, d := range i.Dimensions {
		if d.Label == label {
			return d.Value, true
		}
	}
	return "", false
}

// String renders the measurement as aligned rows for terminal output
func (i Info) String() string {
	width := 0
	for _, d := range i.Dimensions {
		if len(d.Label) > width {
			width = len(d.Label)
		}
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Type: %s\n", i.Type)
	for _, d := range i.Dimensions {
		fmt.Fprintf(&b, "  %-*s  %s\n", width+1, d.Label+":", d.Value)
	}
	return b.String()
}
