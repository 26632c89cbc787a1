// server/http/server.go
package http

import (
	"context"
	"errors"
	"time"

	"github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/rs/zerolog/log"

	"github.com/ViniZap4/calmrush-server/auth"
	"github.com/ViniZap4/calmrush-server/catalog"
	"github.com/ViniZap4/calmrush-server/domain"
	"github.com/ViniZap4/calmrush-server/metrics"
	"github.com/ViniZap4/calmrush-server/thoughts"
	"github.com/ViniZap4/calmrush-server/wellness"
	"github.com/ViniZap4/calmrush-server/ws"
)

type Options struct {
	Store          domain.Store
	Sessions       *auth.Sessions
	Hub            *ws.Hub
	Catalog        *catalog.Catalog
	Metrics        *metrics.Metrics
	SecureCookies  bool
	AllowedOrigins string
}

type Server struct {
	app      *fiber.App
	store    domain.Store
	sessions *auth.Sessions
	resolver *auth.Resolver
	thoughts *thoughts.Manager
	wellness *wellness.Service
	hub      *ws.Hub
	catalog  *catalog.Catalog
	metrics  *metrics.Metrics
	secure   bool
}

func NewServer(opts Options) *Server {
	if opts.Metrics == nil {
		opts.Metrics = metrics.New()
	}

	var notifier thoughts.Notifier
	if opts.Hub != nil {
		notifier = opts.Hub
	}

	s := &Server{
		store:    opts.Store,
		sessions: opts.Sessions,
		resolver: auth.NewResolver(opts.Sessions, opts.Store),
		thoughts: thoughts.NewManager(opts.Store, opts.Store, notifier),
		wellness: wellness.NewService(opts.Store),
		hub:      opts.Hub,
		catalog:  opts.Catalog,
		metrics:  opts.Metrics,
		secure:   opts.SecureCookies,
	}

	s.app = fiber.New(fiber.Config{
		AppName:               "calmrush",
		DisableStartupMessage: true,
		ErrorHandler:          errorHandler,
	})

	origins := opts.AllowedOrigins
	if origins == "" {
		origins = "*"
	}

	s.app.Use(recover.New())
	s.app.Use(requestid.New())
	s.app.Use(requestLogger())
	s.app.Use(s.metrics.Middleware())
	s.app.Use(cors.New(cors.Config{
		AllowOrigins:     origins,
		AllowMethods:     "GET,POST,PUT,DELETE,OPTIONS",
		AllowHeaders:     "Content-Type",
		AllowCredentials: origins != "*",
	}))

	s.routes()
	return s
}

func (s *Server) routes() {
	session := s.resolver.Middleware(false)
	protected := s.resolver.Middleware(true)

	api := s.app.Group("/api")

	api.Get("/health", s.handleHealth)

	api.Post("/auth/register", s.handleRegister)
	api.Post("/auth/login", s.handleLogin)
	api.Get("/auth/me", session, s.handleMe)
	api.Post("/auth/logout", s.handleLogout)

	api.Post("/sentiment", s.handleSentiment)

	api.Get("/thoughts", protected, s.handleListThoughts)
	api.Post("/thoughts", protected, s.handleCreateThought)
	api.Put("/thoughts", protected, s.handleUpdateThought)
	api.Delete("/thoughts", protected, s.handleDeleteThought)
	api.Get("/thoughts/history", protected, s.handleListHistory)
	api.Post("/thoughts/history", protected, s.handleAppendHistory)

	api.Get("/user/stats", protected, s.handleStats)

	api.Get("/wellness/breathing", protected, s.handleListSessions(domain.KindBreathing))
	api.Post("/wellness/breathing", protected, s.handleRecordSession(domain.KindBreathing))
	api.Get("/wellness/meditation", protected, s.handleListSessions(domain.KindMeditation))
	api.Post("/wellness/meditation", protected, s.handleRecordSession(domain.KindMeditation))

	api.Get("/sounds", s.handleSounds)
	api.Get("/themes", s.handleThemes)
	api.Get("/breathing-patterns", s.handleBreathingPatterns)
	api.Get("/audio/chimes", s.handleChimes)

	s.app.Get("/metrics", adaptor.HTTPHandler(s.metrics.Handler()))

	if s.hub != nil {
		s.app.Get("/ws", protected, s.handleUpgrade, websocket.New(s.handleWebSocket))
	}
}

// App exposes the fiber app, mainly for tests.
func (s *Server) App() *fiber.App {
	return s.app
}

func (s *Server) Listen(addr string) error {
	log.Info().Str("addr", addr).Msg("server listening")
	return s.app.Listen(addr)
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.app.ShutdownWithContext(ctx)
}

func (s *Server) handleHealth(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.UserContext(), 2*time.Second)
	defer cancel()

	if err := s.store.Ping(ctx); err != nil {
		log.Error().Err(err).Msg("health check failed")
		return fail(c, fiber.StatusServiceUnavailable, "Database connection failed")
	}
	return ok(c, fiber.StatusOK, fiber.Map{"status": "ok"})
}

func errorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	msg := "Internal server error"

	var fe *fiber.Error
	if errors.As(err, &fe) {
		code = fe.Code
		msg = fe.Message
	} else {
		log.Error().Err(err).Str("path", c.Path()).Msg("unhandled error")
	}
	return fail(c, code, msg)
}
