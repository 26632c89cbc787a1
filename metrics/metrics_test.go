package metrics

import (
	"io"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ViniZap4/calmrush-server/domain"
)

func TestCounters(t *testing.T) {
	m := New()

	m.ThoughtCreated(domain.SentimentNegative)
	m.ThoughtCreated(domain.SentimentNegative)
	m.AuthAttempt("login", "invalid")
	m.SessionRecorded(domain.KindBreathing)

	assert.Equal(t, 2.0, testutil.ToFloat64(m.thoughts.WithLabelValues("negative")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.auth.WithLabelValues("login", "invalid")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.sessions.WithLabelValues("breathing")))
}

func TestMiddlewareAndHandler(t *testing.T) {
	m := New()

	app := fiber.New()
	app.Use(m.Middleware())
	app.Get("/things/:id", func(c *fiber.Ctx) error { return c.SendStatus(fiber.StatusTeapot) })
	app.Get("/metrics", adaptor.HTTPHandler(m.Handler()))

	_, err := app.Test(httptest.NewRequest("GET", "/things/42", nil))
	require.NoError(t, err)

	assert.Equal(t, 1.0, testutil.ToFloat64(m.requests.WithLabelValues("GET", "/things/:id", "418")))

	resp, err := app.Test(httptest.NewRequest("GET", "/metrics", nil))
	require.NoError(t, err)
	body, _ := io.ReadAll(resp.Body)
	assert.Contains(t, string(body), "calmrush_http_requests_total")
}
