// Package httpserver provides HTTP server and routing.
package httpserver

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/compress"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/gofiber/template/html/v2"
	"go.uber.org/zap"

	"social-content-service/internal/app/service"
	"social-content-service/internal/domain"
	"social-content-service/internal/job"
	"social-content-service/internal/metrics"
	"social-content-service/internal/transport/httpserver/dto"
	"social-content-service/internal/transport/httpserver/handler"
	"social-content-service/internal/transport/httpserver/middleware"
	"social-content-service/internal/validator"
	"social-content-service/web"
)

// ServerConfig holds server configuration.
type ServerConfig struct {
	Port        int
	BodyLimit   int
	Debug       bool
	DefaultMode domain.Mode
	RateLimit   RateLimitConfig
}

// RateLimitConfig bounds requests per client IP. Zero values disable a
// limiter. The generation limiter applies on top of the API limiter.
type RateLimitConfig struct {
	Requests           int
	Window             time.Duration
	GenerationRequests int
	GenerationWindow   time.Duration
}

// HealthMonitor reports producer health for readiness and the health API.
type HealthMonitor interface {
	Healthy() bool
	Status() job.HealthStatus
}

// Services groups the use cases the API exposes.
type Services struct {
	Validation *service.ValidationService
	Generation *service.GenerationService
}

// Server wraps Fiber app with handlers.
type Server struct {
	App    *fiber.App
	Logger *zap.Logger
}

// NewServer creates a new HTTP server with all routes configured.
func NewServer(
	cfg ServerConfig,
	svc Services,
	health HealthMonitor,
	m *metrics.Metrics,
	v *validator.Validator,
	logger *zap.Logger,
) *Server {
	// Template engine for dashboard
	engine := html.NewFileSystem(http.FS(web.Templates()), ".html")
	if cfg.Debug {
		engine.Reload(true)
	}

	app := fiber.New(fiber.Config{
		AppName:      "social-content-service",
		BodyLimit:    cfg.BodyLimit,
		ErrorHandler: errorHandler(logger),
		Views:        engine,
	})

	// Health check middleware MUST be registered BEFORE other middleware
	// for Kubernetes probes to work even during high load
	var ready middleware.ReadinessFunc
	if health != nil {
		ready = health.Healthy
	}
	app.Use(middleware.NewHealthCheck(ready))

	// Global middleware
	app.Use(requestid.New())
	app.Use(middleware.Recover(logger))
	app.Use(middleware.Logger(logger))
	app.Use(middleware.Metrics(m))
	app.Use(compress.New())

	if m != nil {
		app.Get("/metrics", adaptor.HTTPHandler(m.Handler()))
	}

	var reporter handler.HealthReporter
	if health != nil {
		reporter = health
	}

	stats := svc.Generation.Stats()
	registerRoutes(app, routeHandlers{
		platform:   handler.NewPlatformHandler(svc.Validation, logger),
		validation: handler.NewValidationHandler(svc.Validation, v, cfg.DefaultMode, logger),
		generation: handler.NewGenerationHandler(svc.Generation, v, logger),
		stats:      handler.NewStatsHandler(stats, reporter, svc.Validation),
		dashboard:  handler.NewDashboardHandler(stats, svc.Validation, reporter, logger),
		apiLimit:   middleware.RateLimit("api", cfg.RateLimit.Requests, cfg.RateLimit.Window, logger),
		genLimit:   middleware.RateLimit("generation", cfg.RateLimit.GenerationRequests, cfg.RateLimit.GenerationWindow, logger),
	})

	return &Server{
		App:    app,
		Logger: logger,
	}
}

type routeHandlers struct {
	platform   *handler.PlatformHandler
	validation *handler.ValidationHandler
	generation *handler.GenerationHandler
	stats      *handler.StatsHandler
	dashboard  *handler.DashboardHandler
	apiLimit   fiber.Handler
	genLimit   fiber.Handler
}

// registerRoutes sets up all API routes.
func registerRoutes(app *fiber.App, h routeHandlers) {
	// Health checks are handled by middleware (/livez, /readyz)

	// Dashboard (HTML)
	app.Get("/dashboard", h.dashboard.Render)
	app.Get("/", func(c *fiber.Ctx) error {
		return c.Redirect("/dashboard")
	})

	v1 := app.Group("/api/v1", h.apiLimit)

	v1.Get("/platforms", h.platform.List)
	v1.Get("/platforms/:platform/rules", h.platform.Rules)

	v1.Post("/validate/:platform", h.validation.Validate)
	v1.Post("/suggest/:platform", h.validation.Suggest)
	v1.Post("/fallback/:platform", h.validation.Fallback)
	v1.Delete("/cache", h.validation.ClearCache)

	v1.Post("/generate", h.genLimit, h.generation.GenerateBatch)
	v1.Post("/generate/:platform", h.genLimit, h.generation.Generate)

	v1.Get("/stats", h.stats.Stats)
	v1.Get("/health", h.stats.Health)
}

// errorHandler returns a custom error handler that logs based on HTTP status code.
// 404s are logged at DEBUG level (expected client behavior), 4xx at WARN, 5xx at ERROR.
func errorHandler(logger *zap.Logger) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		code := fiber.StatusInternalServerError
		errCode := "INTERNAL_ERROR"

		var fe *fiber.Error
		if errors.As(err, &fe) {
			code = fe.Code
			errCode = "HTTP_ERROR"
		}

		switch {
		case code == fiber.StatusNotFound:
			errCode = "NOT_FOUND"
			logger.Debug("resource not found",
				zap.String("path", c.Path()),
				zap.String("method", c.Method()),
			)
		case code >= 500:
			logger.Error("server error",
				zap.Error(err),
				zap.Int("status", code),
				zap.String("path", c.Path()),
			)
		default:
			logger.Warn("client error",
				zap.Error(err),
				zap.Int("status", code),
				zap.String("path", c.Path()),
			)
		}

		msg := err.Error()
		if code >= 500 {
			msg = "internal server error"
		}

		return c.Status(code).JSON(dto.ErrorResponse{
			Error: msg,
			Code:  errCode,
		})
	}
}

// Start starts the HTTP server.
func (s *Server) Start(port int) error {
	s.Logger.Info("starting HTTP server", zap.Int("port", port))

	return s.App.Listen(fmt.Sprintf(":%d", port))
}

// Shutdown gracefully shuts down the server.
func (s *Server) Shutdown(ctx context.Context) error {
	s.Logger.Info("shutting down HTTP server")

	return s.App.ShutdownWithContext(ctx)
}
