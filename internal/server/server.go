// Package server sets up the HTTP server, router, and all route definitions.
//
// This is the composition root: the store arrives already connected from
// main, and New wires it through services and handlers into one chi router.
//
//	store (repository.Store) → services → handlers → routes
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
	"github.com/rs/cors"

	"github.com/ashirpar/clubserver/internal/auth"
	"github.com/ashirpar/clubserver/internal/handler"
	"github.com/ashirpar/clubserver/internal/metrics"
	"github.com/ashirpar/clubserver/internal/middleware"
	"github.com/ashirpar/clubserver/internal/repository"
	"github.com/ashirpar/clubserver/internal/service"
)

// probeTimeout bounds the startup connectivity check.
const probeTimeout = 10 * time.Second

// Config holds server configuration.
type Config struct {
	Port int
	// Environment selects the session cookie policy.
	Environment string
	JWTSecret   string
	// AllowedOrigins for CORS; empty allows any origin.
	AllowedOrigins []string
	// StoreName is only used in log lines.
	StoreName string
}

// Server represents the HTTP server and all its dependencies.
//
// The Server owns the store from New onwards and closes it when Start
// returns.
type Server struct {
	router  *chi.Mux
	config  Config
	logger  *slog.Logger
	store   repository.Store
	metrics *metrics.Metrics
}

// New wires every route against store.
func New(cfg Config, store repository.Store, logger *slog.Logger) (*Server, error) {
	tokens, err := auth.NewTokenService(cfg.JWTSecret)
	if err != nil {
		return nil, fmt.Errorf("creating token service: %w", err)
	}

	s := &Server{
		router:  chi.NewRouter(),
		config:  cfg,
		logger:  logger,
		store:   store,
		metrics: metrics.New(),
	}

	s.setupRoutes(tokens)
	return s, nil
}

// Handler returns the root handler, for tests and embedding.
func (s *Server) Handler() http.Handler {
	return s.router
}

// setupRoutes configures all middleware and route handlers.
//
// ROUTE STRUCTURE:
// GET    /                 → liveness text
// POST   /jwt              → issue session cookie
// GET    /logout           → clear session cookie
// POST   /users            → register (idempotent by email)
// GET    /users/{email}    → user profile
// GET    /players          → squad list
// POST   /players          → add player            [session, admin]
// GET    /scores           → all scores
// POST   /scores           → add score             [session]
// GET    /nextmatch        → latest upcoming match
// POST   /nextmatch        → set upcoming match    [session]
// GET    /news             → news, ?category= filter
// POST   /news             → add article
// GET    /news/{id}        → one article
// GET    /metrics          → Prometheus
//
// Middleware runs in the order it is added.
func (s *Server) setupRoutes(tokens *auth.TokenService) {
	s.router.Use(chimiddleware.RequestID)
	s.router.Use(chimiddleware.RealIP)
	s.router.Use(middleware.Logger(s.logger))
	s.router.Use(middleware.Metrics(s.metrics))
	s.router.Use(chimiddleware.Recoverer)
	s.router.Use(s.corsHandler().Handler)

	userHandler := handler.NewUserHandler(service.NewUserService(s.store.Users(), s.logger), s.logger)
	sessionHandler := handler.NewSessionHandler(
		service.NewSessionService(s.store.Users(), tokens, s.logger),
		auth.NewCookiePolicy(s.config.Environment),
		s.metrics,
		s.logger,
	)
	playerHandler := handler.NewPlayerHandler(service.NewPlayerService(s.store.Players(), s.logger), s.logger)
	contentHandler := handler.NewContentHandler(service.NewContentService(s.store.Documents(), s.logger), s.logger)

	requireAuth := auth.RequireAuth(tokens, s.logger)

	// === Public routes ===
	s.router.Get("/", handler.HandleRoot)
	s.router.Method(http.MethodGet, "/metrics", s.metrics.Handler())

	s.router.Post("/jwt", sessionHandler.HandleIssue)
	s.router.Get("/logout", sessionHandler.HandleLogout)

	s.router.Post("/users", userHandler.HandleRegister)
	s.router.Get("/users/{email}", userHandler.HandleGet)

	s.router.Get("/players", playerHandler.HandleList)
	s.router.Get("/scores", contentHandler.HandleListScores)
	s.router.Get("/nextmatch", contentHandler.HandleNextMatch)

	s.router.Get("/news", contentHandler.HandleListNews)
	s.router.Get("/news/{id}", contentHandler.HandleGetNews)
	s.router.Post("/news", contentHandler.HandleCreateNews)

	// === Session-protected routes ===
	// The admin check for players lives in PlayerService.
	s.router.Group(func(r chi.Router) {
		r.Use(requireAuth)
		r.Post("/players", playerHandler.HandleCreate)
		r.Post("/scores", contentHandler.HandleCreateScore)
		r.Post("/nextmatch", contentHandler.HandleCreateNextMatch)
	})
}

// corsHandler allows the club front-end to call the API with cookies.
// With no configured origins every origin is reflected back.
func (s *Server) corsHandler() *cors.Cors {
	opts := cors.Options{
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders:   []string{"Content-Type"},
		AllowCredentials: true,
	}
	if len(s.config.AllowedOrigins) > 0 {
		opts.AllowedOrigins = s.config.AllowedOrigins
	} else {
		opts.AllowOriginFunc = func(string) bool { return true }
	}
	return cors.New(opts)
}

// indexer is a store that maintains its own indexes.
type indexer interface {
	EnsureIndexes(ctx context.Context) error
}

// probeStore pings the store once and, when that works, makes sure its
// indexes exist. A failure is logged and otherwise ignored: the server
// still starts and individual requests fail instead.
func (s *Server) probeStore() {
	ctx, cancel := context.WithTimeout(context.Background(), probeTimeout)
	defer cancel()

	if err := s.store.Ping(ctx); err != nil {
		s.logger.Error("store unreachable, serving anyway",
			slog.String("store", s.config.StoreName),
			slog.String("error", err.Error()),
		)
		return
	}
	s.logger.Info("pinged store, connection OK", slog.String("store", s.config.StoreName))

	if ix, ok := s.store.(indexer); ok {
		if err := ix.EnsureIndexes(ctx); err != nil {
			s.logger.Warn("could not ensure indexes, retrying on first write",
				slog.String("store", s.config.StoreName),
				slog.String("error", err.Error()),
			)
		}
	}
}

// Start probes the store, serves HTTP and blocks until SIGINT/SIGTERM.
//
// GRACEFUL SHUTDOWN:
// 1. Stop accepting new HTTP connections
// 2. Wait for in-flight requests to finish (30s timeout)
// 3. Close the store
func (s *Server) Start() error {
	defer func() {
		if err := s.store.Close(); err != nil {
			s.logger.Warn("closing store", slog.String("error", err.Error()))
		}
	}()

	s.probeStore()

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", s.config.Port),
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
			slog.Int("port", s.config.Port),
			slog.String("env", s.config.Environment),
			slog.String("store", s.config.StoreName),
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
