// Package httpserver provides HTTP server and routing.
package httpserver

import (
	"fmt"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/compress"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/gofiber/template/html/v2"
	"go.uber.org/zap"

	"vending-content-service/internal/app/service"
	"vending-content-service/internal/domain"
	"vending-content-service/internal/slug"
	"vending-content-service/internal/transport/httpserver/dto"
	"vending-content-service/internal/transport/httpserver/handler"
	"vending-content-service/internal/transport/httpserver/middleware"
	"vending-content-service/internal/validator"
)

// ServerConfig holds server configuration.
type ServerConfig struct {
	Port      int
	BodyLimit int
	Debug     bool
}

// Server wraps Fiber app with handlers.
type Server struct {
	App    *fiber.App
	Logger *zap.Logger
}

// NewServer creates a new HTTP server with all routes configured.
func NewServer(
	cfg ServerConfig,
	catalogSvc *service.CatalogService,
	registry *slug.Registry,
	probes []middleware.Probe,
	v *validator.Validator,
	logger *zap.Logger,
) *Server {
	// Template engine for dashboard
	engine := html.New("./web/templates", ".html")
	if cfg.Debug {
		engine.Reload(true)
	}

	// Create Fiber app
	app := fiber.New(fiber.Config{
		AppName:      "vending-content-service",
		BodyLimit:    cfg.BodyLimit,
		ErrorHandler: errorHandler(logger),
		Views:        engine,
	})

	// Health check middleware MUST be registered BEFORE other middleware
	// for Kubernetes probes to work even during high load
	app.Use(middleware.NewHealthCheck(probes...))

	// Global middleware
	app.Use(requestid.New())
	app.Use(middleware.Recover(logger))
	app.Use(middleware.RequestLogger(logger))
	app.Use(middleware.CORS())
	app.Use(compress.New())

	// Static files
	app.Static("/static", "./web/static")

	// Create handlers
	catalogHandler := handler.NewCatalogHandler(catalogSvc, v, logger)
	adminHandler := handler.NewAdminHandler(catalogSvc, registry, v, logger)
	dashboardHandler := handler.NewDashboardHandler(catalogSvc, logger)

	// Register routes
	registerRoutes(app, catalogHandler, adminHandler, dashboardHandler)

	return &Server{
		App:    app,
		Logger: logger,
	}
}

// kindRoutes wires the read endpoints for one content kind and retires its
// write surface with 410 Gone responses.
func kindRoutes(
	group fiber.Router,
	kind domain.Kind,
	listFn, slugFn, idFn fiber.Handler,
) {
	group.Get("/", listFn)
	group.Get("/id/:id", idFn)
	group.Get("/:slug", slugFn)

	gone := handler.WriteDisabled(kind)
	group.Post("/", gone)
	group.Put("/:id", gone)
	group.Delete("/:id", gone)
	group.Post("/:id/clone", gone)
}

// registerRoutes sets up all API routes.
func registerRoutes(
	app *fiber.App,
	catalogHandler *handler.CatalogHandler,
	adminHandler *handler.AdminHandler,
	dashboardHandler *handler.DashboardHandler,
) {
	// Health checks are handled by middleware (/livez, /readyz)

	// Dashboard (HTML)
	app.Get("/dashboard", dashboardHandler.Render)
	app.Get("/", func(c *fiber.Ctx) error {
		return c.Redirect("/dashboard")
	})

	// API v1 routes
	v1 := app.Group("/api/v1")

	kindRoutes(v1.Group("/product-types"), domain.KindProductType,
		catalogHandler.ListProductTypes,
		catalogHandler.GetProductTypeBySlug,
		catalogHandler.GetProductTypeByID,
	)
	kindRoutes(v1.Group("/business-goals"), domain.KindBusinessGoal,
		catalogHandler.ListBusinessGoals,
		catalogHandler.GetBusinessGoalBySlug,
		catalogHandler.GetBusinessGoalByID,
	)
	kindRoutes(v1.Group("/machines"), domain.KindMachine,
		catalogHandler.ListMachines,
		catalogHandler.GetMachineBySlug,
		catalogHandler.GetMachineByID,
	)
	kindRoutes(v1.Group("/technologies"), domain.KindTechnology,
		catalogHandler.ListTechnologies,
		catalogHandler.GetTechnologyBySlug,
		catalogHandler.GetTechnologyByID,
	)
	kindRoutes(v1.Group("/case-studies"), domain.KindCaseStudy,
		catalogHandler.ListCaseStudies,
		catalogHandler.GetCaseStudyBySlug,
		catalogHandler.GetCaseStudyByID,
	)

	// Admin routes
	admin := v1.Group("/admin")
	admin.Post("/refresh", adminHandler.Refresh)
	admin.Post("/slug-changes", adminHandler.RegisterSlugChange)
	admin.Get("/slug-changes", adminHandler.ListSlugChanges)
}

// errorHandler returns a custom error handler that logs based on HTTP status code.
// 404s are logged at DEBUG level (expected client behavior), 4xx at WARN, 5xx at ERROR.
func errorHandler(logger *zap.Logger) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		code := fiber.StatusInternalServerError

		if e, ok := err.(*fiber.Error); ok {
			code = e.Code
		}

		// Log based on status code - 404s are common and not server errors
		switch {
		case code == fiber.StatusNotFound:
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
		case code >= 400:
			logger.Warn("client error",
				zap.Error(err),
				zap.Int("status", code),
				zap.String("path", c.Path()),
			)
		default:
			logger.Error("unhandled error",
				zap.Error(err),
				zap.Int("status", code),
				zap.String("path", c.Path()),
			)
		}

		return c.Status(code).JSON(dto.ErrorResponse{
			Error: err.Error(),
			Code:  errorCode(code),
		})
	}
}

// errorCode keeps the fallback handler's JSON codes consistent with the ones
// the route handlers emit themselves.
func errorCode(status int) string {
	switch {
	case status == fiber.StatusNotFound:
		return "NOT_FOUND"
	case status == fiber.StatusMethodNotAllowed:
		return "METHOD_NOT_ALLOWED"
	case status == fiber.StatusRequestEntityTooLarge:
		return "BODY_TOO_LARGE"
	case status >= fiber.StatusInternalServerError:
		return "INTERNAL_ERROR"
	case status >= fiber.StatusBadRequest:
		return "BAD_REQUEST"
	default:
		return "INTERNAL_ERROR"
	}
}

// Start starts the HTTP server.
func (s *Server) Start(port int) error {
	s.Logger.Info("starting HTTP server", zap.Int("port", port))

	return s.App.Listen(fmt.Sprintf(":%d", port))
}

// Shutdown gracefully shuts down the server.
func (s *Server) Shutdown() error {
	s.Logger.Info("shutting down HTTP server")

	return s.App.Shutdown()
}
