package main

import (
	"fmt"

	"github.com/changwulf/dxf-viewer/internal/entity"
	"github.com/changwulf/dxf-viewer/internal/measurement"
	"github.com/changwulf/dxf-viewer/internal/selection"
	"github.com/spf13/cobra"
)

var infoCmd = &cobra.Command{
	Use:   "info [file|url]",
	Short: "Display general information about a DXF drawing",
	Long:  "Show entity and primitive counts, layers, the drawing extent and the selection threshold of the fitted view.",
	Args:  cobra.ExactArgs(1),
	Run:   runInfo,
}

func init() {
	rootCmd.AddCommand(infoCmd)
}

func runInfo(cmd *cobra.Command, args []string) {
	source := args[0]
	c := loadDrawing(source)
	doc, _ := c.Document()
	prims := c.Primitives()

	fmt.Println("DXF Drawing Information")
	fmt.Println("=======================")
	fmt.Printf("Source: %s\n\n", source)

	fmt.Println("Statistics:")
	fmt.Printf("  Entities: %d\n", doc.EntityCount())
	fmt.Printf("  Measurable primitives: %d\n", len(prims))
	counts := entity.Counts(prims)
	for _, kind := range []entity.Kind{entity.KindLine, entity.KindCircle, entity.KindArc, entity.KindPolyline} {
		fmt.Printf("    %-9s %d\n", kind.String()+":", counts[kind])
	}
	fmt.Printf("  Layers: %d\n\n", len(doc.Layers))

	bbox := entity.Bounds(prims)
	if bbox.IsEmpty() {
		fmt.Println("Extent: empty drawing")
		return
	}
	size := bbox.Size()
	fmt.Println("Extent:")
	fmt.Printf("  Min: (%s, %s)\n", measurement.FormatValue(bbox.Min.X), measurement.FormatValue(bbox.Min.Y))
	fmt.Printf("  Max: (%s, %s)\n", measurement.FormatValue(bbox.Max.X), measurement.FormatValue(bbox.Max.Y))
	fmt.Printf("  Width: %s units\n", measurement.FormatValue(size.X))
	fmt.Printf("  Height: %s units\n\n", measurement.FormatValue(size.Y))

	view := c.View()
	fmt.Printf("Fitted view (%.0fx%.0f px):\n", view.Width, view.Height)
	fmt.Printf("  Visible width: %s units\n", measurement.FormatValue(view.VisibleWidth()))
	fmt.Printf("  Selection threshold: %s units\n", measurement.FormatValue(selection.Threshold(&view)))
}
