// server/auth/cookies.go
package auth

import (
	"time"

	"github.com/gofiber/fiber/v2"
)

const (
	CookieUserID        = "userId"
	CookieAuthenticated = "isAuthenticated"
)

// SetSessionCookies writes the session cookie pair. Register and login both
// go through here so the two cookies always travel together.
func SetSessionCookies(c *fiber.Ctx, token string, secure bool) {
	maxAge := int(SessionTTL / time.Second)
	c.Cookie(sessionCookie(CookieUserID, token, maxAge, secure))
	c.Cookie(sessionCookie(CookieAuthenticated, "true", maxAge, secure))
}

func ClearSessionCookies(c *fiber.Ctx, secure bool) {
	for _, name := range []string{CookieUserID, CookieAuthenticated} {
		ck := sessionCookie(name, "", -1, secure)
		ck.Expires = time.Unix(0, 0)
		c.Cookie(ck)
	}
}

func sessionCookie(name, value string, maxAge int, secure bool) *fiber.Cookie {
	return &fiber.Cookie{
		Name:     name,
		Value:    value,
		Path:     "/",
		MaxAge:   maxAge,
		HTTPOnly: true,
		Secure:   secure,
		SameSite: fiber.CookieSameSiteLaxMode,
	}
}
