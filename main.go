// Package main is the entry point for the starter kit API server.
// It initializes all dependencies and starts the HTTP server.
package main

import (
	"context"
	"log"
	"os"

	"starterkit/src/app/server"
	"starterkit/src/infra/config"
	"starterkit/src/infra/db"
	"starterkit/src/infra/logger"
	"starterkit/src/infra/repo"
)

func main() {
	if err := run(); err != nil {
		log.Printf("fatal error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	// Load configuration from environment variables (and .env fallback)
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	// Initialize logger
	log := logger.New(cfg.Log)
	log.Info("starting application",
		"port", cfg.Server.Port,
		"log_level", cfg.Log.Level,
		"environment", cfg.Diag.Environment,
	)

	// Initialize database connection
	database, err := db.New(context.Background(), cfg.Database, log)
	if err != nil {
		return err
	}
	defer database.Close()

	// Initialize diagnostics repository
	diagRepo := repo.NewSQLRepository(database, log)

	// Create and run HTTP server
	srv := server.New(cfg, log, diagRepo)

	// Run blocks until shutdown signal is received
	return srv.Run()
}
