// server/http/wellness.go
package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/ViniZap4/calmrush-server/auth"
	"github.com/ViniZap4/calmrush-server/domain"
)

type recordSessionRequest struct {
	Duration *float64 `json:"duration"`
}

func (s *Server) handleRecordSession(kind domain.SessionKind) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req recordSessionRequest
		if err := decode(c, &req); err != nil {
			return fail(c, fiber.StatusBadRequest, "Invalid request body")
		}

		var minutes float64
		if req.Duration != nil {
			minutes = *req.Duration
		}

		ws, err := s.wellness.Record(c.UserContext(), auth.User(c).ID, kind, minutes)
		switch {
		case errors.Is(err, domain.ErrInvalidDuration):
			return fail(c, fiber.StatusBadRequest, "Duration is required and must be positive")
		case err != nil:
			return internal(c, err, "Failed to create "+string(kind)+" session")
		}

		s.metrics.SessionRecorded(kind)
		return ok(c, fiber.StatusOK, ws)
	}
}

func (s *Server) handleListSessions(kind domain.SessionKind) fiber.Handler {
	return func(c *fiber.Ctx) error {
		sessions, err := s.wellness.List(c.UserContext(), auth.User(c).ID, kind)
		if err != nil {
			return internal(c, err, "Failed to fetch "+string(kind)+" sessions")
		}
		return ok(c, fiber.StatusOK, sessions)
	}
}

func (s *Server) handleStats(c *fiber.Ctx) error {
	st, err := s.store.Stats(c.UserContext(), auth.User(c).ID)
	if err != nil {
		return internal(c, err, "Failed to fetch user statistics")
	}
	return ok(c, fiber.StatusOK, st)
}
