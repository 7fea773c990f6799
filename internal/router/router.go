package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"

	"github.com/fmcarvalho/linkmark/internal/api/auth"
	"github.com/fmcarvalho/linkmark/internal/api/bookmark"
	"github.com/fmcarvalho/linkmark/internal/api/user"
)

// Config contains the handlers and middleware needed for the route tree.
type Config struct {
	AuthHandler            *auth.AuthHandler
	UserHandler            user.Handler
	BookmarkHandler        bookmark.Handler
	AuthenticateMiddleware func(http.Handler) http.Handler
}

// SetupRouter wires the public auth routes and the guarded resource routes.
// Server-wide middleware (request ID, logger, recoverer) is applied by the
// caller before mounting this router. Every owner-scoped route sits inside
// the group guarded by the Authenticate middleware, so no handler can see a
// request that failed authentication.
func SetupRouter(cfg *Config) chi.Router {
	r := chi.NewRouter()

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"http://localhost:5173", "http://localhost:3000"},
		AllowedMethods:   []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	r.Get("/ping", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("pong"))
	})

	// Public auth routes.
	r.Group(func(r chi.Router) {
		r.Post("/auth/signup", cfg.AuthHandler.Signup)
		r.Post("/auth/signin", cfg.AuthHandler.Signin)
	})

	// Protected routes.
	r.Group(func(r chi.Router) {
		r.Use(cfg.AuthenticateMiddleware)

		r.Get("/users/me", cfg.UserHandler.GetMe)
		r.Patch("/users", cfg.UserHandler.UpdateProfile)

		r.Route("/bookmarks", func(r chi.Router) {
			r.Get("/", cfg.BookmarkHandler.List)
			r.Post("/", cfg.BookmarkHandler.Create)
			r.Get("/{id}", cfg.BookmarkHandler.GetByID)
			r.Patch("/{id}", cfg.BookmarkHandler.Update)
			r.Delete("/{id}", cfg.BookmarkHandler.Delete)
		})
	})

	return r
}
