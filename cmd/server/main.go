// Package main implements the entry point for the blog API server, which
// serves blog post CRUD and user registration over JSON HTTP.
package main

import (
	"context"
	"fmt"
	"log"

	"github.com/mstiles/blog-api/internal/config"
	"github.com/mstiles/blog-api/internal/platform/logger"
)

// main is the entry point for the blog-api server. It loads configuration,
// sets up logging, connects to the database, runs migrations, wires the
// application dependencies and starts the HTTP server.
func main() {
	if err := run(); err != nil {
		log.Fatalf("server exited with error: %v", err)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	logg := logger.Setup(cfg.Server)
	logg.Info("configuration loaded",
		"port", cfg.Server.Port,
		"log_level", cfg.Server.LogLevel)

	ctx := context.Background()

	db, err := connectDB(ctx, cfg.Database)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}

	if err := runMigrations(ctx, db); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	app := newApplication(cfg, logg, db)
	defer app.cleanup()

	return app.startHTTPServer(ctx, app.setupRouter())
}
