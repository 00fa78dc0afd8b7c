package server

import (
	"backend-runtracker/internal/athlete"
	"backend-runtracker/internal/auth"
	"backend-runtracker/internal/challenge"
	"backend-runtracker/internal/config"
	"backend-runtracker/internal/item"
	"backend-runtracker/internal/position"
	"backend-runtracker/internal/run"
	"backend-runtracker/internal/stream"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
)

type Server struct {
	App    *fiber.App
	Cfg    config.Config
	DB     *pgxpool.Pool
	Redis  *redis.Client
	Stream *stream.Hub
}

func NewServer(cfg config.Config, db *pgxpool.Pool, redisClient *redis.Client) *Server {
	app := fiber.New()
	app.Use(recover.New())
	app.Use(logger.New())

	s := &Server{
		App:    app,
		Cfg:    cfg,
		DB:     db,
		Redis:  redisClient,
		Stream: stream.NewHub(redisClient),
	}

	registerRoutes(s)
	return s
}

func registerRoutes(s *Server) {
	s.App.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})

	jwtMiddleware := auth.JWTMiddleware(s.Cfg.JWTSecret)

	auth.RegisterRoutes(s.App.Group("/auth"), auth.NewService(s.Cfg.JWTSecret, s.DB))
	run.RegisterRoutes(s.App.Group("/runs"), run.NewService(s.DB), jwtMiddleware)
	position.RegisterRoutes(s.App.Group("/positions"), position.NewService(s.DB, s.Stream), jwtMiddleware)
	athlete.RegisterRoutes(s.App.Group("/athletes"), athlete.NewService(s.DB), jwtMiddleware)
	challenge.RegisterRoutes(s.App.Group("/challenges"), challenge.NewService(s.DB))
	item.RegisterRoutes(s.App, item.NewService(s.DB), jwtMiddleware, auth.RequireCoach())
	stream.RegisterRoutes(s.App.Group("/live"), s.Stream)
}
