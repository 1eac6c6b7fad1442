package routes

import (
	"log"

	"quicksync/internal/config"
	"quicksync/internal/database"
	"quicksync/internal/delivery/http/handler"
	v1 "quicksync/internal/delivery/http/routes/v1"
	"quicksync/internal/encoder"
	"quicksync/internal/infrastructure/cache"
	"quicksync/internal/ws"

	"github.com/gofiber/fiber/v3"
)

type Registry struct {
	cfg    config.Config
	db     database.DB
	cache  *cache.Redis
	hub    *ws.Hub
	enc    encoder.TextEncoder
	logger *log.Logger

	health *handler.HealthHandler
}

func NewRegistry(cfg config.Config, db database.DB, cacheStore *cache.Redis, hub *ws.Hub, enc encoder.TextEncoder, logger *log.Logger) *Registry {
	if logger == nil {
		logger = log.Default()
	}
	return &Registry{
		cfg:    cfg,
		db:     db,
		cache:  cacheStore,
		hub:    hub,
		enc:    enc,
		logger: logger,
		health: handler.NewHealthHandler(db),
	}
}

func (r *Registry) Register(app *fiber.App) {
	if app == nil {
		return
	}

	r.registerHealth(app)
	r.registerAPI(app)
}

func (r *Registry) registerHealth(app *fiber.App) {
	r.health.RegisterRoutes(app)
}

func (r *Registry) registerAPI(app *fiber.App) {
	api := app.Group("/api")
	v1.Register(api.Group("/v1"), v1.Deps{
		Config:  r.cfg,
		DB:      r.db,
		Cache:   r.cache,
		Hub:     r.hub,
		Encoder: r.enc,
		Logger:  r.logger,
	})
}
