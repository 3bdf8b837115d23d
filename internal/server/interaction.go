package server

import (
	"errors"
	"fmt"

	"github.com/changwulf/dxf-viewer/internal/app"
	"github.com/changwulf/dxf-viewer/internal/selection"
	"github.com/changwulf/dxf-viewer/internal/viewport"
	"github.com/changwulf/dxf-viewer/pkg/geometry"
	"github.com/gofiber/fiber/v3"
)

// ============================================================
// Interaction Handlers
// ============================================================

type viewportRequest struct {
	Width   float64  `json:"width"`
	Height  float64  `json:"height"`
	CenterX *float64 `json:"centerX"`
	CenterY *float64 `json:"centerY"`
	Scale   *float64 `json:"scale"`
	Fit     bool     `json:"fit"`
}

type viewportResponse struct {
	Width        float64        `json:"width"`
	Height       float64        `json:"height"`
	Center       geometry.Point `json:"center"`
	Scale        float64        `json:"scale"`
	VisibleWidth float64        `json:"visibleWidth"`
	Threshold    float64        `json:"threshold"`
}

type toolRequest struct {
	Tool string `json:"tool"`
}

// pointerRequest is a pointer event in canvas coordinates
type pointerRequest struct {
	Type string  `json:"type"` // down, move or up
	X    float64 `json:"x"`
	Y    float64 `json:"y"`
}

type pointerResponse struct {
	Selected bool           `json:"selected"`
	Position geometry.Point `json:"position"` // model space
	Panel    app.PanelState `json:"panel"`
}

func (s *Server) setViewport(c fiber.Ctx) error {
	sess, err := s.lookup(c)
	if err != nil {
		return err
	}

	var req viewportRequest
	if err := c.Bind().JSON(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid JSON body"})
	}
	if err := validateViewport(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	sess.controller.UpdateView(func(v *viewport.View) {
		if req.Width > 0 && req.Height > 0 {
			v.Resize(req.Width, req.Height)
		}
		if req.CenterX != nil {
			v.Center.X = *req.CenterX
		}
		if req.CenterY != nil {
			v.Center.Y = *req.CenterY
		}
		if req.Scale != nil {
			v.Scale = *req.Scale
		}
	})
	if req.Fit {
		sess.controller.FitView()
	}

	return c.JSON(toViewportResponse(sess.controller.View()))
}

func validateViewport(req viewportRequest) error {
	if req.Width < 0 || req.Height < 0 {
		return errors.New("width and height must not be negative")
	}
	if req.Scale != nil && *req.Scale <= 0 {
		return errors.New("scale must be positive")
	}
	return nil
}

func toViewportResponse(v viewport.View) viewportResponse {
	return viewportResponse{
		Width:        v.Width,
		Height:       v.Height,
		Center:       v.Center,
		Scale:        v.Scale,
		VisibleWidth: v.VisibleWidth(),
		Threshold:    selection.Threshold(&v),
	}
}

func (s *Server) setTool(c fiber.Ctx) error {
	sess, err := s.lookup(c)
	if err != nil {
		return err
	}

	var req toolRequest
	if err := c.Bind().JSON(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid JSON body"})
	}

	tool, err := selection.ParseTool(req.Tool)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	sess.controller.SetTool(tool)
	return c.JSON(sess.panel.State())
}

func (s *Server) pointer(c fiber.Ctx) error {
	sess, err := s.lookup(c)
	if err != nil {
		return err
	}

	var req pointerRequest
	if err := c.Bind().JSON(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid JSON body"})
	}

	ev := sess.controller.EventAt(geometry.NewPoint(req.X, req.Y))
	var selected bool
	switch req.Type {
	case "down":
		_, selected = sess.controller.PointerDown(ev)
	case "move":
		_, selected = sess.controller.PointerMove(ev)
	case "up":
		_, selected = sess.controller.PointerUp(ev)
	default:
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": fmt.Sprintf("unknown pointer event %q", req.Type),
		})
	}

	return c.JSON(pointerResponse{
		Selected: selected,
		Position: ev.Position,
		Panel:    sess.panel.State(),
	})
}
