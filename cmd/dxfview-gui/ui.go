package main

import (
	"context"
	"errors"
	"fmt"
	"image/color"
	"strings"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/storage"
	"fyne.io/fyne/v2/widget"
	"github.com/changwulf/dxf-viewer/internal/app"
	"github.com/changwulf/dxf-viewer/internal/export"
	"github.com/changwulf/dxf-viewer/internal/measurement"
	"github.com/changwulf/dxf-viewer/internal/selection"
	"github.com/changwulf/dxf-viewer/pkg/geometry"
	"github.com/changwulf/dxf-viewer/pkg/viewer"
)

// ui implements app.Display on fyne widgets. Every method may be called
// from any goroutine.
type ui struct {
	window     fyne.Window
	controller *app.Controller
	drawing    *viewer.DrawingView

	urlEntry     *widget.Entry
	toolButtons  map[selection.Tool]*widget.Button
	layerBox     *fyne.Container
	selectionBox *fyne.Container
	selectionTyp *widget.Label
	selectionRow *widget.Form
	loadingLabel *widget.Label
	loadingBar   *widget.ProgressBarInfinite
}

func newUI(w fyne.Window) *ui {
	return &ui{
		window:      w,
		toolButtons: make(map[selection.Tool]*widget.Button),
	}
}

func (u *ui) build() {
	openButton := widget.NewButton("Upload DXF", u.showFileDialog)

	u.urlEntry = widget.NewEntry()
	u.urlEntry.SetPlaceHolder("https://example.com/drawing.dxf")
	u.urlEntry.OnSubmitted = func(url string) { u.load(url) }
	urlButton := widget.NewButton("Load URL", func() { u.load(u.urlEntry.Text) })

	toolbar := container.NewHBox(openButton)
	for _, tool := range selection.Tools {
		t := tool
		button := widget.NewButton(toolLabel(t), func() { u.controller.SetTool(t) })
		u.toolButtons[t] = button
		toolbar.Add(button)
	}
	toolbar.Add(widget.NewButton("Fit", func() {
		u.controller.FitView()
		u.drawing.Refresh()
	}))
	toolbar.Add(widget.NewButton("Export PDF", u.showExportDialog))

	top := container.NewBorder(nil, nil, toolbar, urlButton, u.urlEntry)

	u.layerBox = container.NewVBox(widget.NewLabel("No layers found"))
	u.selectionTyp = widget.NewLabelWithStyle("", fyne.TextAlignLeading, fyne.TextStyle{Bold: true})
	u.selectionRow = widget.NewForm()
	u.selectionBox = container.NewVBox(u.selectionTyp, u.selectionRow)
	u.selectionBox.Hide()

	u.loadingLabel = widget.NewLabel("")
	u.loadingBar = widget.NewProgressBarInfinite()
	u.loadingBar.Stop()
	loading := container.NewVBox(u.loadingLabel, u.loadingBar)
	u.loadingLabel.Hide()
	u.loadingBar.Hide()

	side := container.NewVBox(
		widget.NewLabelWithStyle("Layers", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
		u.layerBox,
		widget.NewSeparator(),
		widget.NewLabelWithStyle("Selection", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
		u.selectionBox,
		widget.NewSeparator(),
		loading,
	)
	sideScroll := container.NewVScroll(side)
	sideScroll.SetMinSize(fyne.NewSize(280, 0))

	u.window.SetContent(container.NewBorder(top, nil, nil, sideScroll, u.drawing))
	u.highlightTool(selection.ToolNone)
}

func toolLabel(t selection.Tool) string {
	switch t {
	case selection.ToolLine:
		return "Line"
	case selection.ToolHole:
		return "Hole"
	case selection.ToolRegion:
		return "Region"
	default:
		return "Pan"
	}
}

// load reads a path or URL in the background
func (u *ui) load(source string) {
	source = strings.TrimSpace(source)
	if source == "" {
		return
	}
	go func() {
		if err := u.controller.Load(context.Background(), source); err != nil {
			fmt.Printf("Error loading file: %v\n", err)
			return
		}
		fyne.Do(func() {
			u.window.SetTitle("DXF Viewer - " + source)
			u.drawing.Refresh()
		})
	}()
}

func (u *ui) showFileDialog() {
	open := dialog.NewFileOpen(func(reader fyne.URIReadCloser, err error) {
		if err != nil {
			dialog.ShowError(err, u.window)
			return
		}
		if reader == nil {
			return
		}
		defer reader.Close()

		u.load(reader.URI().Path())
	}, u.window)
	open.SetFilter(storage.NewExtensionFileFilter([]string{".dxf", ".DXF"}))
	open.Show()
}

func (u *ui) showExportDialog() {
	doc, err := u.controller.Document()
	if err != nil {
		dialog.ShowError(err, u.window)
		return
	}

	dialog.ShowFileSave(func(writer fyne.URIWriteCloser, err error) {
		if err != nil {
			dialog.ShowError(err, u.window)
			return
		}
		if writer == nil {
			return
		}
		defer writer.Close()

		drawing := export.Drawing{
			Primitives: u.controller.Primitives(),
			Layers:     doc.Layers,
			Hidden: func(layer string) bool {
				return !u.controller.LayerVisible(layer)
			},
			Selection: u.controller.Selection(),
		}
		if err := export.WritePDF(writer, drawing, export.DefaultOptions); err != nil {
			dialog.ShowError(fmt.Errorf("failed to export PDF: %w", err), u.window)
			return
		}
		fmt.Printf("Exported %s\n", writer.URI().Path())
	}, u.window)
}

func (u *ui) highlightTool(active selection.Tool) {
	for t, button := range u.toolButtons {
		if t == active {
			button.Importance = widget.HighImportance
		} else {
			button.Importance = widget.MediumImportance
		}
		button.Refresh()
	}
}

// ============================================================
// app.Display
// ============================================================

func (u *ui) ShowSelection(info measurement.Info) {
	fyne.Do(func() {
		u.selectionTyp.SetText(info.Type)
		u.selectionRow.Items = nil
		for _, d := range info.Dimensions {
			u.selectionRow.Append(d.Label, widget.NewLabel(d.Value))
		}
		u.selectionRow.Refresh()
		u.selectionBox.Show()
		u.drawing.Refresh()
	})
}

func (u *ui) HideSelection() {
	fyne.Do(func() {
		u.selectionBox.Hide()
		u.drawing.Refresh()
	})
}

func (u *ui) ShowRegionBox(r geometry.Rect) {
	fyne.Do(func() { u.drawing.SetRegionBox(&r) })
}

func (u *ui) HideRegionBox() {
	fyne.Do(func() { u.drawing.SetRegionBox(nil) })
}

func (u *ui) ShowLoading(text string) {
	fyne.Do(func() {
		u.loadingLabel.SetText(text)
		u.loadingLabel.Show()
		u.loadingBar.Show()
		u.loadingBar.Start()
	})
}

func (u *ui) UpdateLoading(text string) {
	fyne.Do(func() { u.loadingLabel.SetText(text) })
}

func (u *ui) HideLoading() {
	fyne.Do(func() {
		u.loadingBar.Stop()
		u.loadingBar.Hide()
		u.loadingLabel.Hide()
	})
}

func (u *ui) ShowError(message string) {
	fyne.Do(func() { dialog.ShowError(errors.New(message), u.window) })
}

func (u *ui) SetLayers(layers []app.LayerInfo) {
	fyne.Do(func() {
		u.layerBox.RemoveAll()
		if len(layers) == 0 {
			u.layerBox.Add(widget.NewLabel("No layers found"))
			return
		}
		for _, l := range layers {
			name := l.Name
			swatch := canvas.NewRectangle(parseHexColor(l.Color))
			swatch.SetMinSize(fyne.NewSize(14, 14))
			check := widget.NewCheck(l.Label, nil)
			check.SetChecked(l.Visible)
			check.OnChanged = func(show bool) {
				if err := u.controller.ToggleLayer(name, show); err != nil {
					fmt.Printf("Error toggling layer: %v\n", err)
				}
			}
			u.layerBox.Add(container.NewHBox(container.NewCenter(swatch), check))
		}
	})
}

func (u *ui) SetTool(t selection.Tool) {
	fyne.Do(func() { u.highlightTool(t) })
}

func parseHexColor(hex string) color.Color {
	var r, g, b uint8
	if _, err := fmt.Sscanf(hex, "#%02x%02x%02x", &r, &g, &b); err != nil {
		return color.White
	}
	return color.RGBA{r, g, b, 255}
}
