package server

import (
	"context"
	"log"
	"net/http"
	"sync"

	"github.com/changwulf/dxf-viewer/internal/app"
	"github.com/changwulf/dxf-viewer/internal/config"
	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/fiber/v3/middleware/recover"
	"github.com/google/uuid"
)

// ============================================================
// Server
// ============================================================

// Server exposes drawing sessions over HTTP
type Server struct {
	cfg    *config.Config
	fiber  *fiber.App
	client *http.Client

	mu       sync.RWMutex
	sessions map[string]*session
}

// session is one loaded drawing with its own tool and view state
type session struct {
	id         string
	controller *app.Controller
	panel      *app.Panel
}

// New creates the server and registers all routes
func New(cfg *config.Config) *Server {
	s := &Server{
		cfg:      cfg,
		client:   &http.Client{Timeout: cfg.FetchTimeoutDuration()},
		sessions: make(map[string]*session),
	}

	s.fiber = fiber.New(fiber.Config{
		AppName:      "DXF Viewer",
		BodyLimit:    cfg.BodyLimit(),
		ReadTimeout:  cfg.ReadTimeoutDuration(),
		WriteTimeout: cfg.WriteTimeoutDuration(),
		UnescapePath: true,
	})

	// ============================================================
	// Global Middleware
	// ============================================================

	s.fiber.Use(recover.New())
	s.fiber.Use(Logger())
	s.fiber.Use(CORS())

	s.routes()
	return s
}

func (s *Server) routes() {
	// ============================================================
	// Health Check Routes
	// ============================================================

	s.fiber.Get("/health/live", LivenessProbe)
	s.fiber.Get("/health/ready", s.readinessProbe)

	// ============================================================
	// Document Routes
	// ============================================================

	api := s.fiber.Group("/api")
	api.Post("/documents", s.createDocument)
	api.Get("/documents/:id", s.getDocument)
	api.Delete("/documents/:id", s.deleteDocument)
	api.Get("/documents/:id/primitives", s.listPrimitives)
	api.Get("/documents/:id/layers", s.listLayers)
	api.Put("/documents/:id/layers/:name", s.setLayerVisibility)
	api.Get("/documents/:id/export.pdf", s.exportPDF)

	// ============================================================
	// Interaction Routes
	// ============================================================

	api.Put("/documents/:id/viewport", s.setViewport)
	api.Put("/documents/:id/tool", s.setTool)
	api.Post("/documents/:id/pointer", s.pointer)
}

// App returns the underlying fiber app
func (s *Server) App() *fiber.App {
	return s.fiber
}

// Listen serves on the configured port until Shutdown
func (s *Server) Listen() error {
	log.Printf("Starting DXF viewer server on %s (env: %s)", s.cfg.Addr(), s.cfg.Environment)
	return s.fiber.Listen(s.cfg.Addr())
}

// Shutdown stops the server gracefully
func (s *Server) Shutdown(ctx context.Context) error {
	return s.fiber.ShutdownWithContext(ctx)
}

func (s *Server) newSession() *session {
	panel := app.NewPanel()
	controller := app.New(panel, panel, nil)
	controller.Client = s.client
	return &session{
		id:         uuid.NewString(),
		controller: controller,
		panel:      panel,
	}
}

func (s *Server) store(sess *session) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[sess.id] = sess
}

func (s *Server) lookup(c fiber.Ctx) (*session, error) {
	id := c.Params("id")
	if _, err := uuid.Parse(id); err != nil {
		return nil, fiber.NewError(fiber.StatusBadRequest, "invalid document id")
	}

	s.mu.RLock()
	defer s.mu.RUnlock()
	sess, ok := s.sessions[id]
	if !ok {
		return nil, fiber.NewError(fiber.StatusNotFound, "document not found")
	}
	return sess, nil
}

func (s *Server) remove(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.sessions[id]; !ok {
		return false
	}
	delete(s.sessions, id)
	return true
}

// SessionCount returns the number of open documents
func (s *Server) SessionCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.sessions)
}
