package probe

import (
	"fmt"
	"io"

	"github.com/changwulf/dxf-viewer/internal/app"
	"github.com/changwulf/dxf-viewer/internal/measurement"
	"github.com/changwulf/dxf-viewer/internal/selection"
	"github.com/changwulf/dxf-viewer/internal/viewport"
	"github.com/changwulf/dxf-viewer/pkg/geometry"
)

// Result is the outcome of a click or drag command
type Result struct {
	Line int
	Info *measurement.Info // nil when nothing was selected
}

// Runner replays scripts against a controller
type Runner struct {
	controller *app.Controller
	out        io.Writer
}

// NewRunner creates a runner that reports to out
func NewRunner(controller *app.Controller, out io.Writer) *Runner {
	return &Runner{controller: controller, out: out}
}

// Run executes all commands and returns the results of clicks and drags.
// It stops at the first failing command.
func (r *Runner) Run(script *Script) ([]Result, error) {
	results := make([]Result, 0)
	for _, cmd := range script.Commands {
		result, ok, err := r.exec(cmd)
		if err != nil {
			return results, fmt.Errorf("line %d: %w", cmd.Pos.Line, err)
		}
		if ok {
			results = append(results, result)
		}
	}
	return results, nil
}

func (r *Runner) exec(cmd *Command) (Result, bool, error) {
	switch {
	case cmd.View != nil:
		r.view(cmd.View)
		return Result{}, false, nil

	case cmd.Tool != nil:
		tool, err := selection.ParseTool(cmd.Tool.Name)
		if err != nil {
			return Result{}, false, err
		}
		r.controller.SetTool(tool)
		return Result{}, false, nil

	case cmd.Layer != nil:
		return Result{}, false, r.controller.ToggleLayer(cmd.Layer.Name, cmd.Layer.State == "on")

	case cmd.Click != nil:
		at := r.canvas(cmd.Click.At)
		fmt.Fprintf(r.out, "click %s\n", formatPoint(cmd.Click.At))
		info, ok := r.controller.PointerDown(r.controller.EventAt(at))
		if !ok {
			info, ok = r.controller.PointerUp(r.controller.EventAt(at))
		}
		return r.report(cmd.Pos.Line, info, ok), true, nil

	case cmd.Drag != nil:
		from, to := r.canvas(cmd.Drag.From), r.canvas(cmd.Drag.To)
		fmt.Fprintf(r.out, "drag %s to %s\n", formatPoint(cmd.Drag.From), formatPoint(cmd.Drag.To))
		info, ok := r.controller.PointerDown(r.controller.EventAt(from))
		r.controller.PointerMove(r.controller.EventAt(to))
		if upInfo, upOK := r.controller.PointerUp(r.controller.EventAt(to)); upOK {
			info, ok = upInfo, true
		}
		return r.report(cmd.Pos.Line, info, ok), true, nil

	default:
		return Result{}, false, fmt.Errorf("empty command")
	}
}

func (r *Runner) view(v *ViewCommand) {
	if v.Fit {
		r.controller.FitView()
		return
	}
	r.controller.UpdateView(func(view *viewport.View) {
		if v.Size != nil {
			view.Resize(v.Size.X, v.Size.Y)
		}
		if v.Center != nil {
			view.Center = geometry.NewPoint(v.Center.X, v.Center.Y)
		}
		if v.Scale > 0 {
			view.Scale = v.Scale
		}
	})
}

// canvas converts a script coordinate (model space) to the canvas
func (r *Runner) canvas(p Point) geometry.Point {
	view := r.controller.View()
	return view.ModelToCanvas(geometry.NewPoint(p.X, p.Y))
}

func (r *Runner) report(line int, info measurement.Info, ok bool) Result {
	if !ok {
		fmt.Fprintln(r.out, "  no selection")
		return Result{Line: line}
	}
	fmt.Fprint(r.out, indent(info.String()))
	return Result{Line: line, Info: &info}
}

func formatPoint(p Point) string {
	return fmt.Sprintf("(%s, %s)", measurement.FormatValue(p.X), measurement.FormatValue(p.Y))
}

func indent(s string) string {
	out := make([]byte, 0, len(s)+16)
	lineStart := true
	for i := 0; i < len(s); i++ {
		if lineStart {
			out = append(out, ' ', ' ')
		}
		out = append(out, s[i])
		lineStart = s[i] == '\n'
	}
	return string(out)
}
