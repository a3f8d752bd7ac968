package app

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"

	"github.com/amirkasheesh/hse-uploader/internal/gateway/config"
	"github.com/amirkasheesh/hse-uploader/internal/gateway/handler"
	"github.com/amirkasheesh/hse-uploader/internal/gateway/integration"
	"github.com/amirkasheesh/hse-uploader/internal/gateway/middleware"
)

type App struct {
	server *http.Server
	logger zerolog.Logger
	config *config.Config
}

func New(cfg *config.Config, log zerolog.Logger) (*App, error) {
	storageClient := integration.NewStorageClient(
		cfg.Services.Storage.URL,
		cfg.Services.Storage.Timeout,
		log,
	)

	analysisClient := integration.NewAnalysisClient(
		cfg.Services.Analysis.URL,
		cfg.Services.Analysis.Timeout,
		log,
	)

	h := handler.NewHandler(storageClient, analysisClient, log)

	router := chi.NewRouter()

	router.Use(chimiddleware.RequestID)
	router.Use(chimiddleware.RealIP)
	router.Use(middleware.RequestLogger(log))
	router.Use(middleware.Recovery(log))
	router.Use(middleware.Timeout(60 * time.Second))

	router.Use(middleware.NewCORS(
		cfg.CORS.AllowedOrigins,
		cfg.CORS.AllowedMethods,
		cfg.CORS.AllowedHeaders,
		cfg.CORS.ExposedHeaders,
		cfg.CORS.AllowCredentials,
		cfg.CORS.MaxAge,
	))

	h.RegisterRoutes(router)

	server := &http.Server{
		Addr:         cfg.Server.Address,
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	return &App{
		server: server,
		logger: log,
		config: cfg,
	}, nil
}

func (a *App) Run() error {
	a.logger.Info().Msgf("Starting gateway on %s", a.config.Server.Address)
	return a.server.ListenAndServe()
}

func (a *App) Shutdown(ctx context.Context) error {
	a.logger.Info().Msg("Shutting down gateway...")

	if err := a.server.Shutdown(ctx); err != nil {
		a.logger.Error().Err(err).Msg("Failed to shutdown HTTP server")
		return err
	}

	a.logger.Info().Msg("Gateway stopped")
	return nil
}
