// server/http/catalog.go
package http

import "github.com/gofiber/fiber/v2"

func (s *Server) handleSounds(c *fiber.Ctx) error {
	return ok(c, fiber.StatusOK, s.catalog.Sounds)
}

func (s *Server) handleThemes(c *fiber.Ctx) error {
	return ok(c, fiber.StatusOK, s.catalog.Themes)
}

func (s *Server) handleBreathingPatterns(c *fiber.Ctx) error {
	return ok(c, fiber.StatusOK, s.catalog.BreathingPatterns)
}

func (s *Server) handleChimes(c *fiber.Ctx) error {
	return ok(c, fiber.StatusOK, s.catalog.Chimes)
}
