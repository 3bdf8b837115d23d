package server

import (
	"bytes"
	"context"
	"errors"
	"io"
	"log"

	"github.com/changwulf/dxf-viewer/internal/app"
	"github.com/changwulf/dxf-viewer/internal/entity"
	"github.com/changwulf/dxf-viewer/internal/export"
	"github.com/changwulf/dxf-viewer/pkg/geometry"
	"github.com/gofiber/fiber/v3"
)

// ============================================================
// Document Handlers
// ============================================================

type createRequest struct {
	URL string `json:"url"`
}

type documentResponse struct {
	ID         string         `json:"id"`
	Source     string         `json:"source"`
	Entities   int            `json:"entities"`
	Primitives map[string]int `json:"primitives"`
	Bounds     *geometry.Rect `json:"bounds"`
	Panel      app.PanelState `json:"panel"`
}

type primitiveResponse struct {
	Kind       string           `json:"kind"`
	Layer      string           `json:"layer"`
	Start      *geometry.Point  `json:"start,omitempty"`
	End        *geometry.Point  `json:"end,omitempty"`
	Center     *geometry.Point  `json:"center,omitempty"`
	Radius     float64          `json:"radius,omitempty"`
	StartAngle *float64         `json:"startAngle,omitempty"`
	EndAngle   *float64         `json:"endAngle,omitempty"`
	Vertices   []geometry.Point `json:"vertices,omitempty"`
	Closed     bool             `json:"closed,omitempty"`
}

type layerRequest struct {
	Visible *bool `json:"visible"`
}

// createDocument loads a drawing from a multipart upload ("file"), a JSON
// body {"url": ...} or the dxfUrl query parameter
func (s *Server) createDocument(c fiber.Ctx) error {
	sess := s.newSession()

	var loadErr error
	if file, err := c.FormFile("file"); err == nil {
		log.Printf("[DOCUMENTS] File received: %s, size: %d", file.Filename, file.Size)

		f, err := file.Open()
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "failed to open file",
			})
		}
		defer f.Close()

		data, err := io.ReadAll(f)
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "failed to read file",
			})
		}
		loadErr = sess.controller.LoadBytes(file.Filename, data)
	} else {
		url := c.Query("dxfUrl")
		if url == "" {
			var req createRequest
			if len(c.Body()) > 0 {
				if err := c.Bind().JSON(&req); err != nil {
					return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
						"error": "invalid JSON body",
					})
				}
			}
			url = req.URL
		}
		if url == "" {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "file, url or dxfUrl required",
			})
		}
		if !app.IsURL(url) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "url must use http or https",
			})
		}

		log.Printf("[DOCUMENTS] Fetching %s", url)
		ctx, cancel := context.WithTimeout(c.Context(), s.cfg.FetchTimeoutDuration())
		defer cancel()
		loadErr = sess.controller.Load(ctx, url)
	}

	if loadErr != nil {
		log.Printf("[DOCUMENTS] Load error: %v", loadErr)
		return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{
			"error": sess.panel.State().Error,
		})
	}

	s.store(sess)
	log.Printf("[DOCUMENTS] Created %s from %s", sess.id, sess.controller.Source())
	return c.Status(fiber.StatusCreated).JSON(documentSummary(sess))
}

func (s *Server) getDocument(c fiber.Ctx) error {
	sess, err := s.lookup(c)
	if err != nil {
		return err
	}
	return c.JSON(documentSummary(sess))
}

func (s *Server) deleteDocument(c fiber.Ctx) error {
	if _, err := s.lookup(c); err != nil {
		return err
	}
	s.remove(c.Params("id"))
	log.Printf("[DOCUMENTS] Deleted %s", c.Params("id"))
	return c.SendStatus(fiber.StatusNoContent)
}

func (s *Server) listPrimitives(c fiber.Ctx) error {
	sess, err := s.lookup(c)
	if err != nil {
		return err
	}

	prims := sess.controller.Primitives()
	out := make([]primitiveResponse, 0, len(prims))
	for _, p := range prims {
		out = append(out, toPrimitiveResponse(p))
	}
	return c.JSON(out)
}

func (s *Server) listLayers(c fiber.Ctx) error {
	sess, err := s.lookup(c)
	if err != nil {
		return err
	}
	return c.JSON(sess.controller.Layers())
}

func (s *Server) setLayerVisibility(c fiber.Ctx) error {
	sess, err := s.lookup(c)
	if err != nil {
		return err
	}

	var req layerRequest
	if err := c.Bind().JSON(&req); err != nil || req.Visible == nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "body must be {\"visible\": true|false}",
		})
	}

	if err := sess.controller.ToggleLayer(c.Params("name"), *req.Visible); err != nil {
		if errors.Is(err, app.ErrNoDocument) {
			return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": err.Error()})
		}
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(sess.controller.Layers())
}

func (s *Server) exportPDF(c fiber.Ctx) error {
	sess, err := s.lookup(c)
	if err != nil {
		return err
	}

	doc, err := sess.controller.Document()
	if err != nil {
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": err.Error()})
	}

	drawing := export.Drawing{
		Primitives: sess.controller.Primitives(),
		Layers:     doc.Layers,
		Hidden: func(layer string) bool {
			return !sess.controller.LayerVisible(layer)
		},
		Selection: sess.controller.Selection(),
	}

	var buf bytes.Buffer
	if err := export.WritePDF(&buf, drawing, export.DefaultOptions); err != nil {
		log.Printf("[EXPORT] Render error: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="drawing.pdf"`)
	return c.Send(buf.Bytes())
}

func documentSummary(sess *session) documentResponse {
	counts := make(map[string]int)
	for kind, n := range entity.Counts(sess.controller.Primitives()) {
		counts[kind.String()] = n
	}

	entities := 0
	if doc, err := sess.controller.Document(); err == nil {
		entities = doc.EntityCount()
	}

	// bounds stay null for drawings without primitives
	var bounds *geometry.Rect
	if bbox := entity.Bounds(sess.controller.Primitives()); !bbox.IsEmpty() {
		r := bbox.Rect()
		bounds = &r
	}

	return documentResponse{
		ID:         sess.id,
		Source:     sess.controller.Source(),
		Entities:   entities,
		Primitives: counts,
		Bounds:     bounds,
		Panel:      sess.panel.State(),
	}
}

func toPrimitiveResponse(p entity.Primitive) primitiveResponse {
	out := primitiveResponse{Kind: p.Kind().String(), Layer: p.Layer()}
	switch v := p.(type) {
	case entity.Line:
		out.Start, out.End = &v.Start, &v.End
	case entity.Circle:
		out.Center, out.Radius = &v.Center, v.Radius
	case entity.Arc:
		out.Center, out.Radius = &v.Center, v.Radius
		out.StartAngle, out.EndAngle = &v.StartAngle, &v.EndAngle
	case entity.Polyline:
		out.Vertices, out.Closed = v.Vertices, v.Closed
	}
	return out
}
