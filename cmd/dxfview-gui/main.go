package main

import (
	"context"
	"fmt"
	"os"

	"fyne.io/fyne/v2"
	fyneapp "fyne.io/fyne/v2/app"
	"github.com/changwulf/dxf-viewer/internal/app"
	"github.com/changwulf/dxf-viewer/pkg/viewer"
	"github.com/changwulf/dxf-viewer/pkg/watcher"
	"github.com/changwulf/dxf-viewer/version"
	"github.com/spf13/cobra"
)

var (
	startURL string
	watch    bool
)

var rootCmd = &cobra.Command{
	Use:     "dxfview-gui [file]",
	Short:   "Interactive DXF viewer with line, hole and region measurement",
	Args:    cobra.MaximumNArgs(1),
	Version: version.GetFullVersion(),
	Run:     run,
}

func init() {
	rootCmd.Flags().StringVar(&startURL, "url", "", "Load a drawing from an http(s) URL on start")
	rootCmd.Flags().BoolVarP(&watch, "watch", "w", false, "Reload the drawing when the file changes")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(cmd *cobra.Command, args []string) {
	a := fyneapp.New()
	w := a.NewWindow("DXF Viewer")

	ui := newUI(w)
	drawing := viewer.NewDrawingView(nil)
	ui.drawing = drawing

	controller := app.New(ui, drawing, nil)
	drawing.SetController(controller)
	ui.controller = controller
	ui.build()

	source := startURL
	if len(args) > 0 {
		source = args[0]
	}
	if source != "" {
		ui.load(source)
	}

	if watch {
		if len(args) == 0 {
			fmt.Println("Warning: --watch needs a local file; auto-reload disabled")
		} else if err := watchFile(args[0], controller, drawing); err != nil {
			fmt.Printf("Warning: Failed to set up file watching: %v\n", err)
			fmt.Println("Auto-reload will not be available")
		}
	}

	w.Resize(fyne.NewSize(1200, 800))
	w.ShowAndRun()
}

// watchFile reloads the drawing whenever the file is saved
func watchFile(path string, controller *app.Controller, drawing *viewer.DrawingView) error {
	fw, err := watcher.NewFileWatcher(watcher.DefaultDebounce)
	if err != nil {
		return err
	}

	err = fw.Watch(path, func(changed string) {
		fmt.Printf("\nFile changed: %s\n", changed)
		if err := controller.Reload(context.Background()); err != nil {
			fmt.Printf("Error reloading drawing: %v\n", err)
			return
		}
		fyne.Do(drawing.Refresh)
	})
	if err != nil {
		fw.Close()
		return fmt.Errorf("failed to watch file: %w", err)
	}

	fw.Start()
	fmt.Printf("Watching file for changes: %s\n", path)
	return nil
}
