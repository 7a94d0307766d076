package main

import (
	"context"
	"log"

	"github.com/joho/godotenv"

	"routeplan/adapters/optimizer"
	"routeplan/adapters/postgres"
	"routeplan/domain/core"
	"routeplan/internal/api"
	"routeplan/internal/config"
	"routeplan/internal/ingest"
)

func main() {
	// .env is optional; real deployments set the environment directly.
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load configuration: %v", err)
	}

	var repo *postgres.BatchRepository
	if cfg.Database.URL != "" {
		db, err := postgres.Connect(cfg.Database.URL)
		if err != nil {
			log.Fatalf("failed to connect to database: %v", err)
		}
		defer db.Close()

		repo = postgres.NewBatchRepository(db)
		if err := repo.EnsureSchema(context.Background()); err != nil {
			log.Fatalf("failed to ensure database schema: %v", err)
		}
	}

	var opt *optimizer.Client
	if cfg.Optimizer.BaseURL != "" {
		opt = optimizer.NewClient(cfg.Optimizer.BaseURL, cfg.Optimizer.Timeout)
	}

	pipeline := ingest.NewPipeline(core.NewSequenceGenerator())
	server := api.NewServer(cfg, pipeline, repo, opt)

	addr := ":" + cfg.Server.Port
	log.Printf("Starting API server on %s", addr)
	if err := server.Router().Run(addr); err != nil {
		log.Fatalf("server failed: %v", err)
	}
}
