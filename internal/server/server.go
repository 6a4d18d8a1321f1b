package server

import (
	"backend-soultrip/internal/apperr"
	"backend-soultrip/internal/auth"
	"backend-soultrip/internal/config"
	"backend-soultrip/internal/contact"
	"backend-soultrip/internal/journal"
	"backend-soultrip/internal/location"
	"backend-soultrip/internal/trip"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
)

type Server struct {
	App   *fiber.App
	Cfg   config.Config
	DB    *pgxpool.Pool
	Redis *redis.Client
}

func NewServer(cfg config.Config, db *pgxpool.Pool, redisClient *redis.Client) *Server {
	app := fiber.New(fiber.Config{ErrorHandler: apperr.ErrorHandler})
	app.Use(recover.New())
	app.Use(logger.New())

	s := &Server{
		App:   app,
		Cfg:   cfg,
		DB:    db,
		Redis: redisClient,
	}

	registerRoutes(s)
	return s
}

func registerRoutes(s *Server) {
	s.App.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})

	authSvc := auth.NewService(s.Cfg.SessionSecret, s.DB, s.Redis)
	requireSession := auth.RequireSession(authSvc)

	api := s.App.Group("/api")

	auth.RegisterRoutes(api, authSvc, requireSession)

	locationSvc := location.NewService(s.DB)
	trips := api.Group("/trips")
	trip.RegisterRoutes(trips, trip.NewService(s.DB), requireSession)
	location.RegisterTripRoutes(trips, locationSvc, requireSession)
	location.RegisterRoutes(api.Group("/locations"), locationSvc, requireSession)

	journal.RegisterRoutes(api.Group("/journal"), journal.NewService(s.DB), requireSession)

	contactSvc := contact.NewService(s.DB)
	contact.RegisterRoutes(api.Group("/contacts"), contactSvc, requireSession)
	contact.RegisterEmergencyRoutes(api.Group("/emergency"), contactSvc, requireSession)
}
