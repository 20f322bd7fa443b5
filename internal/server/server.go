// Package server sets up the HTTP server, router, and all route
// definitions.
//
// This is the composition root: the entire dependency chain — connection
// pool → repositories → services → handlers — is wired here, once, at
// startup. Handlers never touch the database; services never touch HTTP.
package server

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/sakif/snippets-manager/internal/auth"
	"github.com/sakif/snippets-manager/internal/config"
	"github.com/sakif/snippets-manager/internal/handler"
	"github.com/sakif/snippets-manager/internal/middleware"
	sqliteRepo "github.com/sakif/snippets-manager/internal/repository/sqlite"
	"github.com/sakif/snippets-manager/internal/service"
)

// Server owns the router, the configuration and the database connection.
// The connection pool is created once in New and closed on shutdown.
type Server struct {
	router *chi.Mux
	config *config.Config
	logger *slog.Logger
	db     *sqliteRepo.DB
}

// New creates a Server with all dependencies wired.
func New(cfg *config.Config, logger *slog.Logger) (*Server, error) {
	db, err := sqliteRepo.New(cfg.DBPath)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	tokens, err := auth.NewTokenService(cfg.JWTSecret)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("creating token service: %w", err)
	}

	s := &Server{
		router: chi.NewRouter(),
		config: cfg,
		logger: logger,
		db:     db,
	}

	s.setupRoutes(tokens)

	return s, nil
}

// Handler returns the assembled router. Used by tests to drive the full
// stack through httptest without opening a real listener.
func (s *Server) Handler() http.Handler {
	return s.router
}

// setupRoutes configures middleware, builds the repository → service →
// handler chains, and mounts every route under /v1.
func (s *Server) setupRoutes(tokens *auth.TokenService) {
	s.router.Use(chimiddleware.RequestID)
	s.router.Use(chimiddleware.RealIP)
	s.router.Use(chimiddleware.Recoverer)
	s.router.Use(middleware.Logger(s.logger))

	// Single allowed origin, credentials on — the session cookie has to
	// survive the cross-origin front end.
	s.router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{s.config.FrontOrigin},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	users := sqliteRepo.NewUserRepo(s.db)
	categories := sqliteRepo.NewCategoryRepo(s.db)
	snippets := sqliteRepo.NewSnippetRepo(s.db)

	passwords := auth.NewPasswordService()

	sessionHandler := handler.NewSessionHandler(
		service.NewSessionService(users, tokens, passwords, s.logger), s.logger)
	categoryHandler := handler.NewCategoryHandler(
		service.NewCategoryService(categories, s.logger), s.logger)
	snippetHandler := handler.NewSnippetHandler(
		service.NewSnippetService(snippets, s.logger), s.logger)
	userHandler := handler.NewUserHandler(
		service.NewUserService(users, s.logger), s.logger)

	s.router.Route("/v1", func(r chi.Router) {
		r.Get("/", handleRoot)

		r.Route("/session", func(r chi.Router) {
			r.Post("/register", sessionHandler.HandleRegister)
			r.Post("/login", sessionHandler.HandleLogin)
			r.Post("/logout", sessionHandler.HandleLogout)
		})

		// Everything below requires a valid session cookie.
		r.Group(func(r chi.Router) {
			r.Use(auth.RequireUser(tokens))

			r.Route("/category", func(r chi.Router) {
				r.Get("/", categoryHandler.HandleList)
				r.Get("/{id}", categoryHandler.HandleGet)
				r.Post("/", categoryHandler.HandleCreate)
				r.Put("/{id}", categoryHandler.HandleUpdate)
				r.Delete("/{id}", categoryHandler.HandleDelete)
			})

			r.Route("/snippet", func(r chi.Router) {
				r.Get("/", snippetHandler.HandleList)
				r.Get("/{id}", snippetHandler.HandleGet)
				r.Post("/", snippetHandler.HandleCreate)
				r.Put("/{id}", snippetHandler.HandleUpdate)
				r.Delete("/{id}", snippetHandler.HandleDelete)
			})

			r.Put("/user", userHandler.HandleUpdate)
		})
	})
}

// handleRoot is the unauthenticated API greeting.
//
// HTTP: GET /v1
func handleRoot(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"code":200,"message":"SnippetsManager v1.0"}`))
}

// Start runs the HTTP server until SIGINT/SIGTERM, then shuts down
// gracefully: stop accepting connections, drain in-flight requests (30s
// cap), close the database.
func (s *Server) Start() error {
	defer s.db.Close()

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", s.config.APIPort),
		Handler:      s.router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	serverErrors := make(chan error, 1)

	go func() {
		s.logger.Info("server starting",
			slog.Int("port", s.config.APIPort),
			slog.String("database", s.config.DBPath),
			slog.String("frontOrigin", s.config.FrontOrigin),
		)
		serverErrors <- srv.ListenAndServe()
	}()

	select {
	case err := <-serverErrors:
		if err != http.ErrServerClosed {
			return fmt.Errorf("server error: %w", err)
		}

	case sig := <-quit:
		s.logger.Info("shutdown signal received", slog.String("signal", sig.String()))

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		if err := srv.Shutdown(ctx); err != nil {
			return fmt.Errorf("graceful shutdown failed: %w", err)
		}
		s.logger.Info("server stopped gracefully")
	}

	return nil
}
