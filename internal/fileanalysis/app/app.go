package app

import (
	"context"
	"database/sql"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/rs/zerolog"

	"github.com/amirkasheesh/hse-uploader/internal/fileanalysis/config"
	"github.com/amirkasheesh/hse-uploader/internal/fileanalysis/delivery/httpd"
	"github.com/amirkasheesh/hse-uploader/internal/fileanalysis/events"
	"github.com/amirkasheesh/hse-uploader/internal/fileanalysis/repository"
	"github.com/amirkasheesh/hse-uploader/internal/fileanalysis/service"
	"github.com/amirkasheesh/hse-uploader/internal/fileanalysis/service/analyzer"
	"github.com/amirkasheesh/hse-uploader/internal/fileanalysis/service/integration"
)

type App struct {
	server    *http.Server
	logger    zerolog.Logger
	config    *config.Config
	db        *sql.DB
	publisher events.Publisher
}

func New(cfg *config.Config, log zerolog.Logger, db *sql.DB) (*App, error) {
	// Брокер необязателен: без него события просто не публикуются.
	var publisher events.Publisher
	if cfg.RabbitMQ.Enabled {
		p, err := events.NewRabbitPublisher(cfg.RabbitMQ.URL, log)
		if err != nil {
			return nil, err
		}
		publisher = p
	}

	submissionRepo := repository.NewSubmissionRepository(db, log)
	reportRepo := repository.NewReportRepository(db, log)

	storageClient := integration.NewStorageClient(
		cfg.Storage.URL,
		cfg.Storage.Timeout,
		log,
	)

	duplicateAnalyzer := analyzer.NewDuplicateAnalyzer()

	submissionService := service.NewSubmissionService(
		submissionRepo,
		reportRepo,
		duplicateAnalyzer,
		publisher,
		log,
	)

	reportService := service.NewReportService(
		submissionRepo,
		reportRepo,
		log,
	)

	wordCloudService := service.NewWordCloudService(
		submissionRepo,
		storageClient,
		log,
	)

	handler := httpd.NewHandler(
		submissionService,
		reportService,
		wordCloudService,
		log,
	)

	router := chi.NewRouter()

	router.Use(middleware.RequestID)
	router.Use(middleware.RealIP)
	router.Use(middleware.Logger)
	router.Use(middleware.Recoverer)
	router.Use(middleware.Timeout(60 * time.Second))

	router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.CORS.AllowedOrigins,
		AllowedMethods:   cfg.CORS.AllowedMethods,
		AllowedHeaders:   cfg.CORS.AllowedHeaders,
		ExposedHeaders:   cfg.CORS.ExposedHeaders,
		AllowCredentials: cfg.CORS.AllowCredentials,
		MaxAge:           cfg.CORS.MaxAge,
	}))

	handler.RegisterRoutes(router)

	server := &http.Server{
		Addr:         cfg.Server.Address,
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	return &App{
		server:    server,
		logger:    log,
		config:    cfg,
		db:        db,
		publisher: publisher,
	}, nil
}

func (a *App) Run() error {
	a.logger.Info().Msgf("Starting file analysis service on %s", a.config.Server.Address)
	return a.server.ListenAndServe()
}

func (a *App) Shutdown(ctx context.Context) error {
	a.logger.Info().Msg("Shutting down file analysis service...")

	if a.publisher != nil {
		if err := a.publisher.Close(); err != nil {
			a.logger.Error().Err(err).Msg("Failed to close RabbitMQ connection")
		}
	}

	if a.db != nil {
		if err := a.db.Close(); err != nil {
			a.logger.Error().Err(err).Msg("Failed to close database connection")
		}
	}

	if err := a.server.Shutdown(ctx); err != nil {
		a.logger.Error().Err(err).Msg("Failed to shutdown HTTP server")
		return err
	}

	a.logger.Info().Msg("File analysis service stopped")
	return nil
}
