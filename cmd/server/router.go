package main

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	apiMiddleware "github.com/mstiles/blog-api/internal/api/middleware"
)

// setupRouter configures the application router with all routes and
// middleware.
func (app *application) setupRouter() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(apiMiddleware.Trace)

	// Blog endpoints
	r.Get("/blogs", app.blogHandler.List)
	r.Post("/blogs/create", app.blogHandler.Create)
	r.Get("/blogs/{id}", app.blogHandler.Show)
	r.Put("/blogs/{id}", app.blogHandler.Update)
	r.Delete("/blogs/{id}", app.blogHandler.Delete)

	// User endpoints
	r.Post("/register", app.userHandler.Register)
	r.Delete("/delete", app.userHandler.Delete)

	// Health check endpoint
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		if _, err := w.Write([]byte("OK")); err != nil {
			app.logger.Error("failed to write health check response", "error", err)
		}
	})

	return r
}
