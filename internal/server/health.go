package server

import "github.com/gofiber/fiber/v3"

// LivenessProbe reports that the process is running
func LivenessProbe(c fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"status": "alive",
	})
}

func (s *Server) readinessProbe(c fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"status":    "ready",
		"documents": s.SessionCount(),
	})
}
