// server/auth/auth.go
package auth

import (
	"context"
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"

	"github.com/ViniZap4/calmrush-server/domain"
)

const localsUser = "user"

// Resolver maps the identity cookie to a user.
type Resolver struct {
	sessions *Sessions
	users    domain.UserStore
}

func NewResolver(sessions *Sessions, users domain.UserStore) *Resolver {
	return &Resolver{sessions: sessions, users: users}
}

// Resolve returns the user behind token. Bad tokens and ids that no longer
// exist are ErrUnauthorized; only store failures are returned as-is.
func (r *Resolver) Resolve(ctx context.Context, token string) (*domain.User, error) {
	if token == "" {
		return nil, domain.ErrUnauthorized
	}
	userID, err := r.sessions.Parse(token)
	if err != nil {
		return nil, domain.ErrUnauthorized
	}
	u, err := r.users.GetUserByID(ctx, userID)
	if errors.Is(err, domain.ErrNotFound) {
		return nil, domain.ErrUnauthorized
	}
	if err != nil {
		return nil, err
	}
	return u, nil
}

// Middleware attaches the session user to the request. When required is set
// an unauthenticated request stops here with 401.
func (r *Resolver) Middleware(required bool) fiber.Handler {
	return func(c *fiber.Ctx) error {
		u, err := r.Resolve(c.UserContext(), c.Cookies(CookieUserID))
		switch {
		case err == nil:
			c.Locals(localsUser, u)
		case errors.Is(err, domain.ErrUnauthorized):
			if required {
				return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
					"success": false,
					"error":   "Unauthorized",
				})
			}
		default:
			log.Error().Err(err).Msg("session lookup failed")
			if required {
				return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
					"success": false,
					"error":   "Failed to resolve session",
				})
			}
		}
		return c.Next()
	}
}

// User returns the session user set by Middleware, or nil.
func User(c *fiber.Ctx) *domain.User {
	u, _ := c.Locals(localsUser).(*domain.User)
	return u
}
