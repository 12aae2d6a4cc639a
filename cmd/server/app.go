package main

import (
	"database/sql"
	"log/slog"

	"github.com/mstiles/blog-api/internal/api"
	"github.com/mstiles/blog-api/internal/config"
	"github.com/mstiles/blog-api/internal/platform/postgres"
	"github.com/mstiles/blog-api/internal/service"
	"github.com/mstiles/blog-api/internal/service/auth"
)

// application holds the wired dependencies of the running server.
type application struct {
	cfg    *config.Config
	logger *slog.Logger
	db     *sql.DB

	blogHandler *api.BlogHandler
	userHandler *api.UserHandler
}

// newApplication wires stores, services and handlers from the shared
// database handle and configuration.
func newApplication(cfg *config.Config, logg *slog.Logger, db *sql.DB) *application {
	userStore := postgres.NewPostgresUserStore(db, logg)
	blogStore := postgres.NewPostgresBlogStore(db, logg)

	verifier := auth.NewVerifier(userStore, auth.NewBcryptVerifier(), logg)
	hasher := auth.NewBcryptHasher(cfg.Auth.BcryptCost)

	userService := service.NewUserService(userStore, verifier, hasher, db, logg)
	blogService := service.NewBlogService(blogStore, verifier, db, logg)

	return &application{
		cfg:         cfg,
		logger:      logg,
		db:          db,
		blogHandler: api.NewBlogHandler(blogService, logg),
		userHandler: api.NewUserHandler(userService, logg),
	}
}

// cleanup releases resources held by the application.
func (app *application) cleanup() {
	if app.db != nil {
		if err := app.db.Close(); err != nil {
			app.logger.Error("failed to close database connection", "error", err)
		}
	}
}
