// server/http/auth.go
package http

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"

	"github.com/ViniZap4/calmrush-server/auth"
	"github.com/ViniZap4/calmrush-server/domain"
)

type registerRequest struct {
	Name     string `json:"name" validate:"required"`
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required,min=6"`
}

type loginRequest struct {
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
}

func (s *Server) startSession(c *fiber.Ctx, u *domain.User) error {
	token, err := s.sessions.Issue(u.ID)
	if err != nil {
		return err
	}
	auth.SetSessionCookies(c, token, s.secure)
	return nil
}

func (s *Server) handleRegister(c *fiber.Ctx) error {
	var req registerRequest
	if err := decode(c, &req); err != nil {
		return fail(c, fiber.StatusBadRequest, "Invalid request body")
	}
	req.Name = strings.TrimSpace(req.Name)
	req.Email = strings.TrimSpace(req.Email)

	if err := validate.Struct(req); err != nil {
		s.metrics.AuthAttempt("register", "invalid")
		if failedTags(err)["required"] {
			return fail(c, fiber.StatusBadRequest, "Name, email, and password are required")
		}
		return fail(c, fiber.StatusBadRequest, "Password must be at least 6 characters long")
	}

	ctx := c.UserContext()

	_, err := s.store.GetUserByEmail(ctx, req.Email)
	switch {
	case err == nil:
		s.metrics.AuthAttempt("register", "duplicate")
		return fail(c, fiber.StatusBadRequest, "User with this email already exists")
	case !errors.Is(err, domain.ErrNotFound):
		return internal(c, err, "Failed to create user")
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		return internal(c, err, "Failed to create user")
	}

	u := &domain.User{Name: req.Name, Email: req.Email, PasswordHash: hash}
	if err := s.store.CreateUser(ctx, u); err != nil {
		if errors.Is(err, domain.ErrEmailTaken) {
			s.metrics.AuthAttempt("register", "duplicate")
			return fail(c, fiber.StatusBadRequest, "User with this email already exists")
		}
		return internal(c, err, "Failed to create user")
	}

	if err := s.startSession(c, u); err != nil {
		return internal(c, err, "Failed to create user")
	}

	s.metrics.AuthAttempt("register", "success")
	log.Info().Str("user", u.ID).Msg("user registered")
	return okWithMessage(c, fiber.StatusCreated, u, "User created successfully")
}

func (s *Server) handleLogin(c *fiber.Ctx) error {
	var req loginRequest
	if err := decode(c, &req); err != nil {
		return fail(c, fiber.StatusBadRequest, "Invalid request body")
	}
	req.Email = strings.TrimSpace(req.Email)

	if err := validate.Struct(req); err != nil {
		return fail(c, fiber.StatusBadRequest, "Email and password are required")
	}

	u, err := s.authenticate(c, req.Email, req.Password)
	switch {
	case errors.Is(err, domain.ErrInvalidCredentials):
		s.metrics.AuthAttempt("login", "invalid")
		return fail(c, fiber.StatusUnauthorized, "Invalid email or password")
	case errors.Is(err, domain.ErrExternalAccount):
		s.metrics.AuthAttempt("login", "external")
		return fail(c, fiber.StatusUnauthorized, "Please use Google sign-in for this account")
	case err != nil:
		return internal(c, err, "Failed to login")
	}

	if err := s.startSession(c, u); err != nil {
		return internal(c, err, "Failed to login")
	}

	s.metrics.AuthAttempt("login", "success")
	return okWithMessage(c, fiber.StatusOK, u, "Login successful")
}

// authenticate reports an unknown email and a wrong password the same way.
func (s *Server) authenticate(c *fiber.Ctx, email, password string) (*domain.User, error) {
	u, err := s.store.GetUserByEmail(c.UserContext(), email)
	if errors.Is(err, domain.ErrNotFound) {
		return nil, domain.ErrInvalidCredentials
	}
	if err != nil {
		return nil, err
	}
	if !u.HasPassword() {
		return nil, domain.ErrExternalAccount
	}

	match, err := auth.CheckPassword(u.PasswordHash, password)
	if err != nil {
		return nil, err
	}
	if !match {
		return nil, domain.ErrInvalidCredentials
	}
	return u, nil
}

// handleMe never fails: any problem resolving the session reads as no user.
func (s *Server) handleMe(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"user": auth.User(c)})
}

func (s *Server) handleLogout(c *fiber.Ctx) error {
	auth.ClearSessionCookies(c, s.secure)
	return okWithMessage(c, fiber.StatusOK, nil, "Logged out")
}
