package app

import (
	"context"
	"log"
	"time"

	"quicksync/internal/config"
	"quicksync/internal/database"
	dbpostgres "quicksync/internal/database/postgres"
	"quicksync/internal/encoder"
	"quicksync/internal/infrastructure/cache"
	"quicksync/internal/ws"
)

type Container struct {
	Config  config.Config
	DB      database.DB
	Cache   *cache.Redis
	Hub     *ws.Hub
	Encoder encoder.TextEncoder
	Logger  *log.Logger
}

func NewContainer(cfg config.Config) (*Container, error) {
	logger := log.Default()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	db, err := dbpostgres.Connect(ctx, cfg.Database)
	if err != nil {
		return nil, err
	}

	return &Container{
		Config:  cfg,
		DB:      db,
		Cache:   cache.NewRedis(logger),
		Hub:     ws.NewHub(logger),
		Encoder: encoder.NewOpenAIEncoder(cfg.Encoder),
		Logger:  logger,
	}, nil
}

func (c *Container) Close() error {
	if c == nil || c.DB == nil {
		return nil
	}
	return c.DB.Close()
}
