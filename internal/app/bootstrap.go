package app

import (
	"context"
	"fmt"
	"strings"

	"quicksync/internal/config"
	"quicksync/internal/database/migration"
	"quicksync/internal/delivery/http/middleware"
	"quicksync/internal/delivery/http/routes"

	"github.com/gofiber/fiber/v3"
)

type App struct {
	Fiber     *fiber.App
	Container *Container
}

func New(container *Container) *App {
	f := fiber.New(fiber.Config{
		AppName: container.Config.App.AppName,
	})

	registerGlobalMiddleware(f, container)
	routes.NewRegistry(
		container.Config,
		container.DB,
		container.Cache,
		container.Hub,
		container.Encoder,
		container.Logger,
	).Register(f)

	return &App{Fiber: f, Container: container}
}

// Bootstrap builds the container, applies pending migrations, starts
// the websocket hub, and returns the app with its cleanup function.
func Bootstrap(cfg config.Config) (*App, func() error, error) {
	container, err := NewContainer(cfg)
	if err != nil {
		return nil, nil, err
	}

	runner := migration.Runner{Dir: "migrations"}
	if err := runner.Run(context.Background(), container.DB.SQLDB()); err != nil {
		_ = container.Close()
		return nil, nil, fmt.Errorf("run migrations: %w", err)
	}

	go container.Hub.Run()

	app := New(container)
	return app, container.Close, nil
}

func registerGlobalMiddleware(app *fiber.App, container *Container) {
	if app == nil {
		return
	}

	app.Use(middleware.NewAccessLogMiddleware(container.Logger).Middleware())
	app.Use(middleware.NewErrorMiddleware().Middleware())
}

func ListenAddr(port string) (string, error) {
	p := strings.TrimSpace(port)
	if p == "" {
		return "", fmt.Errorf("empty HTTP port")
	}
	if strings.HasPrefix(p, ":") {
		return p, nil
	}
	return ":" + p, nil
}
