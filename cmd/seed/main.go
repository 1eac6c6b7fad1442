package main

import (
	"context"
	"flag"
	"log"
	"time"

	"quicksync/internal/config"
	"quicksync/internal/database/migration"
	dbpostgres "quicksync/internal/database/postgres"
	"quicksync/internal/database/seeder"
	"quicksync/internal/repository"
)

func main() {
	participants := flag.Int("participants", 20, "number of demo participants to create")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	db, err := dbpostgres.Connect(ctx, cfg.Database)
	if err != nil {
		log.Fatalf("failed to connect to database: %v", err)
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Printf("close error: %v", err)
		}
	}()

	runner := migration.Runner{Dir: "migrations"}
	if err := runner.Run(ctx, db.SQLDB()); err != nil {
		log.Fatalf("failed to run migrations: %v", err)
	}

	s := seeder.New(
		repository.NewPostgresUserRepository(db),
		repository.NewPostgresProjectRepository(db),
		log.Default(),
	)
	if err := s.Run(ctx, *participants); err != nil {
		log.Fatalf("seed failed: %v", err)
	}
}
