package server

import (
	"fmt"
	"log"
	"time"

	"quiz-generation-be/internal/bootstrap"
	"quiz-generation-be/internal/config"
	"quiz-generation-be/internal/pkg/serverutils"

	"github.com/gofiber/contrib/otelfiber"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
)

// Quiz generation waits on the LLM once per question, so writes get a long deadline.
const (
	readTimeout  = 60 * time.Second
	writeTimeout = 10 * time.Minute
)

type Server struct {
	app  *fiber.App
	port string
}

func New(cfg *config.Config, container *bootstrap.Container) *Server {
	app := fiber.New(fiber.Config{
		AppName: "quiz-generation-be",
		// one extra MB covers the multipart envelope around the file
		BodyLimit:    (cfg.App.MaxUploadMB + 1) * 1024 * 1024,
		ReadTimeout:  readTimeout,
		WriteTimeout: writeTimeout,
	})

	app.Use(recover.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.App.CorsAllowedOrigins,
		AllowCredentials: true,
		AllowHeaders:     "Origin, Content-Type, Accept, Authorization",
		AllowMethods:     "GET, POST, PUT, DELETE, OPTIONS",
	}))
	app.Use(otelfiber.Middleware())
	app.Use(serverutils.ErrorHandlerMiddleware(container.Logger))

	api := app.Group("/api")
	for _, c := range []interface{ RegisterRoutes(fiber.Router) }{
		container.HealthController,
		container.DocumentController,
		container.SearchController,
		container.QuizController,
		container.LibraryController,
	} {
		c.RegisterRoutes(api)
	}

	return &Server{app: app, port: cfg.App.Port}
}

func (s *Server) Run() error {
	log.Printf("Quiz generation API listening on :%s", s.port)
	return s.app.Listen(fmt.Sprintf(":%s", s.port))
}

// Shutdown stops accepting connections and waits for in-flight requests.
func (s *Server) Shutdown() error {
	return s.app.Shutdown()
}
