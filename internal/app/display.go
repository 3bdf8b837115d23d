package app

import (
	"github.com/changwulf/dxf-viewer/internal/measurement"
	"github.com/changwulf/dxf-viewer/internal/selection"
	"github.com/changwulf/dxf-viewer/pkg/geometry"
)

// LayerInfo describes a layer entry of the layer list
type LayerInfo struct {
	Name    string `json:"name"`
	Label   string `json:"label"`
	Color   string `json:"color"` // #rrggbb
	Visible bool   `json:"visible"`
}

// Display is the user-facing surface the controller drives
type Display interface {
	ShowSelection(info measurement.Info)
	HideSelection()
	// ShowRegionBox shows the rubber band, in canvas coordinates
	ShowRegionBox(r geometry.Rect)
	HideRegionBox()
	ShowLoading(text string)
	UpdateLoading(text string)
	HideLoading()
	// ShowError notifies the user; it must not block the caller
	ShowError(message string)
	SetLayers(layers []LayerInfo)
	SetTool(t selection.Tool)
}

// LayerSwitch toggles layer visibility in the renderer
type LayerSwitch interface {
	ShowLayer(name string, show bool)
}

type noLayerSwitch struct{}

func (noLayerSwitch) ShowLayer(string, bool) {}
