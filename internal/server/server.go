// Package server contains the HTTP server wiring and request handlers.
package server

import (
	"context"
	"fmt"
	"time"

	"tagboard/internal/config"
	"tagboard/internal/database"
	"tagboard/internal/middleware"
	"tagboard/internal/repository"
	"tagboard/internal/service"
	"tagboard/internal/storage"

	"github.com/ansrivas/fiberprometheus/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/helmet"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"gorm.io/gorm"
)

// Server holds all dependencies and provides handlers
type Server struct {
	config         *config.Config
	db             *gorm.DB
	store          storage.ObjectStore
	promMiddleware *fiberprometheus.FiberPrometheus
	tagRepo        repository.TagRepository
	postRepo       repository.PostRepository
	tagService     *service.TagService
	postService    *service.PostService
	imageService   *service.ImageService
}

// NewServer creates a server instance, connecting to the database and the
// object-storage bucket from configuration.
func NewServer(cfg *config.Config) (*Server, error) {
	db, err := database.Connect(cfg)
	if err != nil {
		return nil, fmt.Errorf("database connection failed: %w", err)
	}

	store, err := storage.NewS3Store(cfg)
	if err != nil {
		return nil, fmt.Errorf("object storage init failed: %w", err)
	}

	srv := NewServerWithDeps(cfg, db, store)
	// The metrics middleware registers collectors in the default prometheus
	// registry, so it is only attached here, never per-instance in tests.
	srv.promMiddleware = fiberprometheus.New("tagboard-api")
	return srv, nil
}

// NewServerWithDeps creates a Server using already-initialized dependencies.
// Use this in tests or when a bootstrap layer establishes the DB and store.
func NewServerWithDeps(cfg *config.Config, db *gorm.DB, store storage.ObjectStore) *Server {
	tagRepo := repository.NewTagRepository(db)
	postRepo := repository.NewPostRepository(db)
	imageService := service.NewImageService(store)

	return &Server{
		config:       cfg,
		db:           db,
		store:        store,
		tagRepo:      tagRepo,
		postRepo:     postRepo,
		tagService:   service.NewTagService(tagRepo),
		postService:  service.NewPostService(postRepo, tagRepo, imageService),
		imageService: imageService,
	}
}

// SetupMiddleware configures middleware for the Fiber app
func (s *Server) SetupMiddleware(app *fiber.App) {
	// Panic recovery
	app.Use(recover.New())

	// Request ID for tracing
	app.Use(requestid.New())

	// Propagate the request ID into the request context for logging
	app.Use(middleware.ContextMiddleware())

	// Prometheus metrics
	if s.promMiddleware != nil {
		app.Use(s.promMiddleware.Middleware)
	}

	// Security headers
	app.Use(helmet.New())

	// Structured logging middleware (after requestid and context middleware)
	app.Use(middleware.StructuredLogger())

	origins := s.config.AllowedOrigins
	if origins == "" {
		origins = "http://localhost:5173,http://localhost:3000"
	}
	app.Use(cors.New(cors.Config{
		AllowOrigins: origins,
		AllowHeaders: "Origin, Content-Type, Accept",
		MaxAge:       86400,
	}))
}

// SetupRoutes configures all routes for the application
func (s *Server) SetupRoutes(app *fiber.App) {
	app.Get("/", s.Root)
	app.Get("/health", s.ReadinessCheck)

	if s.promMiddleware != nil {
		s.promMiddleware.RegisterAt(app, "/metrics")
	}

	api := app.Group("/api")

	posts := api.Group("/posts")
	posts.Post("/", s.CreatePost)
	posts.Get("/", s.GetPosts)
	posts.Get("/search", s.SearchPosts)
	posts.Get("/filter", s.FilterPostsByTags)

	tags := api.Group("/tags")
	tags.Post("/", s.CreateTag)
	tags.Get("/", s.GetTags)
}

// Root handles the plain-text liveness check on GET /
func (s *Server) Root(c *fiber.Ctx) error {
	return c.SendString("API is running fine")
}

// ReadinessCheck handles readiness probe requests
func (s *Server) ReadinessCheck(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.Context(), 5*time.Second)
	defer cancel()

	dbStatus := "healthy"
	sqlDB, err := s.db.DB()
	if err != nil {
		dbStatus = "unhealthy"
	} else if err := sqlDB.PingContext(ctx); err != nil {
		dbStatus = "unhealthy"
	}

	status := fiber.StatusOK
	overallStatus := "healthy"
	if dbStatus != "healthy" {
		status = fiber.StatusServiceUnavailable
		overallStatus = "unhealthy"
	}

	return c.Status(status).JSON(fiber.Map{
		"status": overallStatus,
		"checks": fiber.Map{
			"database": dbStatus,
		},
		"time": time.Now(),
	})
}

// Shutdown releases server-held resources.
func (s *Server) Shutdown(ctx context.Context) error {
	if sqlDB, err := s.db.DB(); err == nil {
		if cerr := sqlDB.Close(); cerr != nil {
			middleware.Logger.ErrorContext(ctx, "error closing sql DB", "error", cerr)
		}
	}
	return nil
}
