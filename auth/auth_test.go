package auth

import (
	"context"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ViniZap4/calmrush-server/domain"
)

type fakeUsers map[string]*domain.User

func (f fakeUsers) CreateUser(context.Context, *domain.User) error { return nil }

func (f fakeUsers) GetUserByID(_ context.Context, id string) (*domain.User, error) {
	if u, ok := f[id]; ok {
		return u, nil
	}
	return nil, domain.ErrNotFound
}

func (f fakeUsers) GetUserByEmail(context.Context, string) (*domain.User, error) {
	return nil, domain.ErrNotFound
}

func TestPasswordRoundTrip(t *testing.T) {
	hash, err := HashPassword("hunter22")
	require.NoError(t, err)
	assert.NotEqual(t, "hunter22", hash)

	ok, err := CheckPassword(hash, "hunter22")
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = CheckPassword(hash, "hunter23")
	require.NoError(t, err)
	assert.False(t, ok)

	_, err = CheckPassword("not-a-hash", "x")
	assert.Error(t, err)
}

func TestPasswordLongerThanBcryptLimit(t *testing.T) {
	long := strings.Repeat("p", 80)

	hash, err := HashPassword(long)
	require.NoError(t, err)

	ok, err := CheckPassword(hash, long)
	require.NoError(t, err)
	assert.True(t, ok)

	// Only the first 72 bytes count.
	ok, err = CheckPassword(hash, strings.Repeat("p", 72)+"different")
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = CheckPassword(hash, strings.Repeat("p", 71))
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestSessionsIssueParse(t *testing.T) {
	s := NewSessions("secret")

	token, err := s.Issue("user-1")
	require.NoError(t, err)

	id, err := s.Parse(token)
	require.NoError(t, err)
	assert.Equal(t, "user-1", id)
}

func TestSessionsRejectTampering(t *testing.T) {
	s := NewSessions("secret")
	token, err := s.Issue("user-1")
	require.NoError(t, err)

	_, err = NewSessions("other").Parse(token)
	assert.ErrorIs(t, err, ErrInvalidToken)

	// A bare user id, as older clients stored it, is not a credential.
	_, err = s.Parse("user-1")
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestSessionsExpire(t *testing.T) {
	s := NewSessions("secret")
	start := time.Now()
	s.now = func() time.Time { return start }

	token, err := s.Issue("user-1")
	require.NoError(t, err)

	s.now = func() time.Time { return start.Add(SessionTTL + time.Minute) }
	_, err = s.Parse(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestResolve(t *testing.T) {
	sessions := NewSessions("secret")
	r := NewResolver(sessions, fakeUsers{"u1": {ID: "u1", Name: "Ada"}})
	ctx := context.Background()

	good, _ := sessions.Issue("u1")
	stale, _ := sessions.Issue("gone")

	u, err := r.Resolve(ctx, good)
	require.NoError(t, err)
	assert.Equal(t, "Ada", u.Name)

	for _, token := range []string{"", "garbage", stale} {
		_, err := r.Resolve(ctx, token)
		assert.ErrorIs(t, err, domain.ErrUnauthorized)
	}
}

func TestMiddleware(t *testing.T) {
	sessions := NewSessions("secret")
	r := NewResolver(sessions, fakeUsers{"u1": {ID: "u1", Name: "Ada"}})

	app := fiber.New()
	app.Get("/open", r.Middleware(false), func(c *fiber.Ctx) error {
		if u := User(c); u != nil {
			return c.SendString(u.Name)
		}
		return c.SendString("anonymous")
	})
	app.Get("/closed", r.Middleware(true), func(c *fiber.Ctx) error {
		return c.SendString(User(c).Name)
	})

	token, _ := sessions.Issue("u1")

	resp, err := app.Test(httptest.NewRequest("GET", "/closed", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)

	resp, err = app.Test(httptest.NewRequest("GET", "/open", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	req := httptest.NewRequest("GET", "/closed", nil)
	req.Header.Set("Cookie", CookieUserID+"="+token)
	resp, err = app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
}

func TestSetAndClearCookies(t *testing.T) {
	app := fiber.New()
	app.Get("/in", func(c *fiber.Ctx) error {
		SetSessionCookies(c, "tok", false)
		return nil
	})
	app.Get("/out", func(c *fiber.Ctx) error {
		ClearSessionCookies(c, false)
		return nil
	})

	resp, err := app.Test(httptest.NewRequest("GET", "/in", nil))
	require.NoError(t, err)
	cookies := map[string]string{}
	for _, ck := range resp.Cookies() {
		cookies[ck.Name] = ck.Value
		assert.True(t, ck.HttpOnly)
		assert.Equal(t, int(SessionTTL/time.Second), ck.MaxAge)
	}
	assert.Equal(t, "tok", cookies[CookieUserID])
	assert.Equal(t, "true", cookies[CookieAuthenticated])

	resp, err = app.Test(httptest.NewRequest("GET", "/out", nil))
	require.NoError(t, err)
	require.Len(t, resp.Cookies(), 2)
	for _, ck := range resp.Cookies() {
		assert.Empty(t, ck.Value)
	}
}
