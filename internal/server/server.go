// Package server is the composition root: it wires stores, services and
// handlers, defines the routes and runs the HTTP server with graceful
// shutdown.
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

	"github.com/skarim/filecabinet/internal/auth"
	"github.com/skarim/filecabinet/internal/config"
	"github.com/skarim/filecabinet/internal/handler"
	"github.com/skarim/filecabinet/internal/middleware"
	"github.com/skarim/filecabinet/internal/queue"
	"github.com/skarim/filecabinet/internal/repository/mongodb"
	"github.com/skarim/filecabinet/internal/repository/redisstore"
	"github.com/skarim/filecabinet/internal/service"
	"github.com/skarim/filecabinet/internal/storage"
)

// Server owns the long-lived handles (document store, session store,
// queue client) shared by all in-flight requests, and closes them on
// shutdown.
type Server struct {
	router   *chi.Mux
	cfg      *config.Config
	logger   *slog.Logger
	db       *mongodb.DB
	sessions *redisstore.Sessions
	jobs     *queue.Client
}

// New connects to both stores and assembles the dependency graph:
// stores → services → handlers → routes.
func New(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*Server, error) {
	db, err := mongodb.New(ctx, cfg.MongoURI(), cfg.DBName)
	if err != nil {
		return nil, fmt.Errorf("opening metadata store: %w", err)
	}

	sessions, err := redisstore.New(ctx, cfg.RedisAddr())
	if err != nil {
		_ = db.Close(context.Background())
		return nil, fmt.Errorf("opening session store: %w", err)
	}

	store, err := storage.NewDisk(cfg.FolderPath)
	if err != nil {
		_ = sessions.Close()
		_ = db.Close(context.Background())
		return nil, fmt.Errorf("opening content storage: %w", err)
	}

	s := &Server{
		router:   chi.NewRouter(),
		cfg:      cfg,
		logger:   logger,
		db:       db,
		sessions: sessions,
		jobs:     queue.NewClient(cfg.RedisAddr()),
	}
	s.setupRoutes(store)
	return s, nil
}

func (s *Server) setupRoutes(store storage.Store) {
	s.router.Use(chimiddleware.RequestID)
	s.router.Use(chimiddleware.RealIP)
	s.router.Use(chimiddleware.Recoverer)
	s.router.Use(middleware.Logger(s.logger))

	users := s.db.Users()
	files := s.db.Files()
	passwords := auth.NewPasswordService()

	authService := service.NewAuthService(users, s.sessions, passwords, s.logger)
	userService := service.NewUserService(users, passwords, authService, s.jobs, s.logger)
	fileService := service.NewFileService(files, store, authService, s.jobs, s.logger)
	appService := service.NewAppService(s.db, s.sessions, users, files, s.logger)

	appHandler := handler.NewAppHandler(appService, s.logger)
	authHandler := handler.NewAuthHandler(authService, s.logger)
	userHandler := handler.NewUserHandler(userService, s.logger)
	fileHandler := handler.NewFileHandler(fileService, s.logger)

	s.router.Get("/status", appHandler.HandleStatus)
	s.router.Get("/stats", appHandler.HandleStats)

	s.router.Post("/users", userHandler.HandleRegister)
	s.router.Get("/users/me", userHandler.HandleGetMe)

	s.router.Get("/connect", authHandler.HandleConnect)
	s.router.Get("/disconnect", authHandler.HandleDisconnect)

	s.router.Route("/files", func(r chi.Router) {
		r.Post("/", fileHandler.HandleUpload)
		r.Get("/", fileHandler.HandleList)
		r.Get("/{id}", fileHandler.HandleGet)
		r.Put("/{id}/publish", fileHandler.HandlePublish)
		r.Put("/{id}/unpublish", fileHandler.HandleUnpublish)
		r.Get("/{id}/data", fileHandler.HandleContent)
	})
}

// Start runs the HTTP server until SIGINT/SIGTERM, then drains in-flight
// requests for up to 30 seconds and closes the store handles.
func (s *Server) Start() error {
	defer func() {
		if err := s.jobs.Close(); err != nil {
			s.logger.Warn("closing queue client", slog.String("error", err.Error()))
		}
		if err := s.sessions.Close(); err != nil {
			s.logger.Warn("closing session store", slog.String("error", err.Error()))
		}
		if err := s.db.Close(context.Background()); err != nil {
			s.logger.Warn("closing metadata store", slog.String("error", err.Error()))
		}
	}()

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", s.cfg.Port),
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
			slog.Int("port", s.cfg.Port),
			slog.String("database", s.cfg.DBName),
			slog.String("folderPath", s.cfg.FolderPath),
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
