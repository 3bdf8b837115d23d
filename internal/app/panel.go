package app

import (
	"sync"

	"github.com/changwulf/dxf-viewer/internal/measurement"
	"github.com/changwulf/dxf-viewer/internal/selection"
	"github.com/changwulf/dxf-viewer/pkg/geometry"
)

// PanelState is a snapshot of everything a Panel shows
type PanelState struct {
	Tool      string            `json:"tool"`
	Selection *measurement.Info `json:"selection,omitempty"`
	RegionBox *geometry.Rect    `json:"regionBox,omitempty"`
	Loading   string            `json:"loading,omitempty"`
	Error     string            `json:"error,omitempty"`
	Layers    []LayerInfo       `json:"layers"`
}

// Panel is an in-memory Display that records the current panel state
type Panel struct {
	mu    sync.Mutex
	state PanelState
	tool  selection.Tool
}

// NewPanel creates an empty panel
func NewPanel() *Panel {
	return &Panel{
		state: PanelState{Tool: selection.ToolNone.String(), Layers: []LayerInfo{}},
	}
}

func (p *Panel) ShowSelection(info measurement.Info) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.state.Selection = &info
}

func (p *Panel) HideSelection() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.state.Selection = nil
}

func (p *Panel) ShowRegionBox(r geometry.Rect) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.state.RegionBox = &r
}

func (p *Panel) HideRegionBox() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.state.RegionBox = nil
}

func (p *Panel) ShowLoading(text string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.state.Loading = text
}

func (p *Panel) UpdateLoading(text string) {
	p.ShowLoading(text)
}

func (p *Panel) HideLoading() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.state.Loading = ""
}

// ShowError keeps the last error for the next State call
func (p *Panel) ShowError(message string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.state.Error = message
}

func (p *Panel) SetLayers(layers []LayerInfo) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.state.Layers = append([]LayerInfo{}, layers...)
}

func (p *Panel) SetTool(t selection.Tool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.tool = t
	p.state.Tool = t.String()
}

// ShowLayer updates the visibility flag of the listed layer
func (p *Panel) ShowLayer(name string, show bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	for i := range p.state.Layers {
		if p.state.Layers[i].Name == name {
			p.state.Layers[i].Visible = show
		}
	}
}

// State returns a copy of the current panel state
func (p *Panel) State() PanelState {
	p.mu.Lock()
	defer p.mu.Unlock()

	s := p.state
	s.Layers = append([]LayerInfo{}, p.state.Layers...)
	if p.state.Selection != nil {
		info := *p.state.Selection
		info.Dimensions = append([]measurement.Dimension{}, info.Dimensions...)
		s.Selection = &info
	}
	if p.state.RegionBox != nil {
		r := *p.state.RegionBox
		s.RegionBox = &r
	}
	return s
}
