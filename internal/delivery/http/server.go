package http

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/compress"
	fiberSwagger "github.com/swaggo/fiber-swagger"
	"go.uber.org/zap"

	"github.com/saferoute-assistant/internal/config"
	"github.com/saferoute-assistant/internal/delivery/http/handler"
	"github.com/saferoute-assistant/internal/delivery/http/middleware"
)

// Server - HTTP сервер на основе Fiber
type Server struct {
	app    *fiber.App
	config *config.Config
	logger *zap.Logger

	// Handlers
	sessionHandler  *handler.SessionHandler
	chatHandler     *handler.ChatHandler
	analysisHandler *handler.AnalysisHandler
	lgaHandler      *handler.LGAHandler
}

// NewServer - создание нового HTTP сервера
func NewServer(
	cfg *config.Config,
	logger *zap.Logger,
	sessionHandler *handler.SessionHandler,
	chatHandler *handler.ChatHandler,
	analysisHandler *handler.AnalysisHandler,
	lgaHandler *handler.LGAHandler,
) *Server {
	app := fiber.New(fiber.Config{
		AppName:      "SafeRoute Assistant",
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
		ErrorHandler: customErrorHandler(logger),
	})

	s := &Server{
		app:             app,
		config:          cfg,
		logger:          logger,
		sessionHandler:  sessionHandler,
		chatHandler:     chatHandler,
		analysisHandler: analysisHandler,
		lgaHandler:      lgaHandler,
	}

	s.setupMiddlewares()
	s.setupRoutes()

	return s
}

// setupMiddlewares - настройка middleware
func (s *Server) setupMiddlewares() {
	s.app.Use(middleware.Recovery(s.logger))
	s.app.Use(middleware.Logger(s.logger))
	s.app.Use(middleware.CORS(s.config.Server.AllowOrigins))
	s.app.Use(compress.New(compress.Config{
		Level: compress.LevelBestSpeed,
	}))
}

// setupRoutes - настройка маршрутов
func (s *Server) setupRoutes() {
	// Swagger documentation route
	s.app.Get("/swagger/*", fiberSwagger.WrapHandler)

	api := s.app.Group("/api/v1")

	// Health check
	api.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status": "healthy",
			"time":   time.Now(),
		})
	})

	// Session lifecycle
	api.Post("/sessions", s.sessionHandler.CreateSession)
	api.Get("/sessions/:id", s.sessionHandler.GetSession)
	api.Delete("/sessions/:id", s.sessionHandler.DeleteSession)
	api.Put("/sessions/:id/route", s.sessionHandler.SetRoute)
	api.Delete("/sessions/:id/route", s.sessionHandler.ClearRoute)
	api.Get("/sessions/:id/map", s.sessionHandler.GetMapState)

	// Chat
	api.Post("/sessions/:id/chat", s.chatHandler.Chat)

	// Route analysis
	api.Get("/sessions/:id/analysis/lighting", s.analysisHandler.GetLighting)
	api.Get("/sessions/:id/analysis/time", s.analysisHandler.GetTimePatterns)
	api.Get("/sessions/:id/analysis/crime", s.analysisHandler.GetCrime)

	// LGA statistics
	api.Get("/lga/:name", s.lgaHandler.GetByName)
}

// Start - запуск HTTP сервера
func (s *Server) Start() error {
	addr := s.config.GetServerAddr()
	s.logger.Info("Starting HTTP server", zap.String("address", addr))
	return s.app.Listen(addr)
}

// Shutdown - graceful shutdown HTTP сервера
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("Shutting down HTTP server")
	return s.app.ShutdownWithContext(ctx)
}

// customErrorHandler - кастомный обработчик ошибок
func customErrorHandler(logger *zap.Logger) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		code := fiber.StatusInternalServerError

		if e, ok := err.(*fiber.Error); ok {
			code = e.Code
		}

		logger.Error("HTTP Error",
			zap.String("path", c.Path()),
			zap.Int("status", code),
			zap.Error(err),
		)

		return c.Status(code).JSON(fiber.Map{
			"error": fiber.Map{
				"code":    "INTERNAL_SERVER_ERROR",
				"message": err.Error(),
			},
		})
	}
}
