package main

import (
	"fmt"
	"os"

	"github.com/changwulf/dxf-viewer/internal/export"
	"github.com/spf13/cobra"
)

var (
	renderOutput     string
	renderHideLayers []string
	renderPage       export.Options
)

var renderCmd = &cobra.Command{
	Use:   "render [file|url]",
	Short: "Render a DXF drawing to PDF",
	Args:  cobra.ExactArgs(1),
	Run:   runRender,
}

func init() {
	rootCmd.AddCommand(renderCmd)

	renderCmd.Flags().StringVarP(&renderOutput, "output", "o", "drawing.pdf", "Output PDF file")
	renderCmd.Flags().StringSliceVar(&renderHideLayers, "hide-layer", nil, "Layer to leave out (repeatable)")
	renderCmd.Flags().Float64Var(&renderPage.Width, "page-width", export.DefaultOptions.Width, "Page width in mm")
	renderCmd.Flags().Float64Var(&renderPage.Height, "page-height", export.DefaultOptions.Height, "Page height in mm")
	renderCmd.Flags().Float64Var(&renderPage.Margin, "margin", export.DefaultOptions.Margin, "Page margin in mm")
	renderCmd.Flags().Float64Var(&renderPage.StrokeWidth, "stroke", export.DefaultOptions.StrokeWidth, "Stroke width in mm")
}

func runRender(cmd *cobra.Command, args []string) {
	c := loadDrawing(args[0])
	doc, _ := c.Document()

	for _, name := range renderHideLayers {
		if err := c.ToggleLayer(name, false); err != nil {
			fmt.Fprintf(os.Stderr, "Error hiding layer: %v\n", err)
			os.Exit(1)
		}
	}

	out, err := os.Create(renderOutput)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating output file: %v\n", err)
		os.Exit(1)
	}
	defer out.Close()

	drawing := export.Drawing{
		Primitives: c.Primitives(),
		Layers:     doc.Layers,
		Hidden: func(layer string) bool {
			return !c.LayerVisible(layer)
		},
	}
	if err := export.WritePDF(out, drawing, renderPage); err != nil {
		fmt.Fprintf(os.Stderr, "Error rendering PDF: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Wrote %s\n", renderOutput)
}
