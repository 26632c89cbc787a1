// server/http/thoughts.go
package http

import (
	"errors"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/ViniZap4/calmrush-server/auth"
	"github.com/ViniZap4/calmrush-server/domain"
	"github.com/ViniZap4/calmrush-server/sentiment"
	"github.com/ViniZap4/calmrush-server/thoughts"
)

type createThoughtRequest struct {
	Text string `json:"text"`
}

type updateThoughtRequest struct {
	ID          string   `json:"id"`
	X           *float64 `json:"x"`
	Y           *float64 `json:"y"`
	IsProcessed *bool    `json:"isProcessed"`
	Solution    *string  `json:"solution"`
}

type solutionRequest struct {
	Problem  string `json:"problem" validate:"required"`
	Solution string `json:"solution" validate:"required"`
}

// appendHistoryRequest is either a single pair or a bulk batch under "solutions".
type appendHistoryRequest struct {
	Problem   string            `json:"problem"`
	Solution  string            `json:"solution"`
	Solutions []solutionRequest `json:"solutions" validate:"omitempty,dive"`
}

type sentimentRequest struct {
	Text string `json:"text"`
}

type sentimentResponse struct {
	Text string `json:"text"`
	sentiment.Result
	Timestamp time.Time `json:"timestamp"`
}

func (s *Server) handleListThoughts(c *fiber.Ctx) error {
	list, err := s.thoughts.List(c.UserContext(), auth.User(c).ID)
	if err != nil {
		return internal(c, err, "Failed to retrieve thoughts")
	}
	n := len(list)
	return c.JSON(envelope{Success: true, Data: list, Count: &n})
}

func (s *Server) handleCreateThought(c *fiber.Ctx) error {
	var req createThoughtRequest
	if err := decode(c, &req); err != nil {
		return fail(c, fiber.StatusBadRequest, "Invalid request body")
	}

	t, res, err := s.thoughts.Create(c.UserContext(), auth.User(c).ID, req.Text)
	switch {
	case errors.Is(err, domain.ErrEmptyText):
		return fail(c, fiber.StatusBadRequest, "Text is required")
	case err != nil:
		return internal(c, err, "Failed to create thought")
	}

	s.metrics.ThoughtCreated(res.Sentiment)
	return okWithMessage(c, fiber.StatusCreated, t, "Thought created successfully")
}

func (s *Server) handleUpdateThought(c *fiber.Ctx) error {
	var req updateThoughtRequest
	if err := decode(c, &req); err != nil {
		return fail(c, fiber.StatusBadRequest, "Invalid request body")
	}

	t, err := s.thoughts.Update(c.UserContext(), auth.User(c).ID, thoughts.Update{
		ID:          req.ID,
		X:           req.X,
		Y:           req.Y,
		IsProcessed: req.IsProcessed,
		Solution:    req.Solution,
	})
	switch {
	case errors.Is(err, thoughts.ErrMissingID):
		return fail(c, fiber.StatusBadRequest, "Thought ID is required")
	case errors.Is(err, domain.ErrNotFound):
		return fail(c, fiber.StatusNotFound, "Thought not found")
	case err != nil:
		return internal(c, err, "Failed to update thought")
	}

	return okWithMessage(c, fiber.StatusOK, t, "Thought updated successfully")
}

func (s *Server) handleDeleteThought(c *fiber.Ctx) error {
	t, err := s.thoughts.Delete(c.UserContext(), auth.User(c).ID, c.Query("id"))
	switch {
	case errors.Is(err, thoughts.ErrMissingID):
		return fail(c, fiber.StatusBadRequest, "Thought ID is required")
	case errors.Is(err, domain.ErrNotFound):
		return fail(c, fiber.StatusNotFound, "Thought not found")
	case err != nil:
		return internal(c, err, "Failed to delete thought")
	}

	return okWithMessage(c, fiber.StatusOK, t, "Thought deleted successfully")
}

func (s *Server) handleListHistory(c *fiber.Ctx) error {
	entries, err := s.thoughts.History(c.UserContext(), auth.User(c).ID)
	if err != nil {
		return internal(c, err, "Failed to fetch thought history")
	}
	return ok(c, fiber.StatusOK, entries)
}

func (s *Server) handleAppendHistory(c *fiber.Ctx) error {
	var req appendHistoryRequest
	if err := decode(c, &req); err != nil {
		return fail(c, fiber.StatusBadRequest, "Invalid request body")
	}
	userID := auth.User(c).ID

	if req.Solutions != nil {
		if err := validate.Struct(req); err != nil {
			return fail(c, fiber.StatusBadRequest, "Problem and solution are required")
		}
		batch := make([]thoughts.Solution, 0, len(req.Solutions))
		for _, sol := range req.Solutions {
			batch = append(batch, thoughts.Solution{Problem: sol.Problem, Solution: sol.Solution})
		}
		entries, err := s.thoughts.Archive(c.UserContext(), userID, batch)
		if err != nil {
			return internal(c, err, "Failed to create thought history")
		}
		return ok(c, fiber.StatusOK, fiber.Map{
			"count":   len(entries),
			"message": "Bulk solutions saved successfully",
		})
	}

	single := solutionRequest{Problem: req.Problem, Solution: req.Solution}
	if err := validate.Struct(single); err != nil {
		return fail(c, fiber.StatusBadRequest, "Problem and solution are required")
	}
	entries, err := s.thoughts.Archive(c.UserContext(), userID, []thoughts.Solution{{Problem: single.Problem, Solution: single.Solution}})
	if err != nil {
		return internal(c, err, "Failed to create thought history")
	}
	return ok(c, fiber.StatusOK, entries[0])
}

func (s *Server) handleSentiment(c *fiber.Ctx) error {
	var req sentimentRequest
	if err := decode(c, &req); err != nil {
		return fail(c, fiber.StatusBadRequest, "Invalid request body")
	}

	text := strings.TrimSpace(req.Text)
	if text == "" {
		return fail(c, fiber.StatusBadRequest, "Text is required")
	}

	return ok(c, fiber.StatusOK, sentimentResponse{
		Text:      text,
		Result:    sentiment.Analyze(text),
		Timestamp: time.Now().UTC(),
	})
}
