package main

import (
	"fmt"
	"os"

	"github.com/changwulf/dxf-viewer/internal/app"
	"github.com/changwulf/dxf-viewer/internal/measurement"
	"github.com/changwulf/dxf-viewer/internal/selection"
	"github.com/changwulf/dxf-viewer/internal/viewport"
	"github.com/changwulf/dxf-viewer/pkg/geometry"
)

// consoleDisplay prints loading progress and errors to the terminal
type consoleDisplay struct {
	quiet bool
}

func (d consoleDisplay) ShowSelection(info measurement.Info) {}
func (d consoleDisplay) HideSelection()                      {}
func (d consoleDisplay) ShowRegionBox(geometry.Rect)         {}
func (d consoleDisplay) HideRegionBox()                      {}
func (d consoleDisplay) SetLayers([]app.LayerInfo)           {}
func (d consoleDisplay) SetTool(selection.Tool)              {}
func (d consoleDisplay) HideLoading()                        {}

func (d consoleDisplay) ShowLoading(text string) {
	if !d.quiet {
		fmt.Println(text)
	}
}

func (d consoleDisplay) UpdateLoading(text string) {
	if !d.quiet {
		fmt.Printf("  %s\n", text)
	}
}

func (d consoleDisplay) ShowError(message string) {
	fmt.Fprintln(os.Stderr, message)
}

var (
	canvasWidth  float64
	canvasHeight float64
	verbose      bool
)

func init() {
	rootCmd.PersistentFlags().Float64Var(&canvasWidth, "width", 800, "Canvas width in pixels used for the selection threshold")
	rootCmd.PersistentFlags().Float64Var(&canvasHeight, "height", 600, "Canvas height in pixels")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Print loading progress")
}

// loadDrawing loads a path or URL into a fresh controller, exiting on failure
func loadDrawing(source string) *app.Controller {
	c := app.New(consoleDisplay{quiet: !verbose}, nil, viewport.New(canvasWidth, canvasHeight))
	if err := c.Load(rootCmd.Context(), source); err != nil {
		os.Exit(1)
	}
	return c
}
