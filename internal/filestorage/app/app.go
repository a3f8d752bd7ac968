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

	"github.com/amirkasheesh/hse-uploader/internal/filestorage/config"
	"github.com/amirkasheesh/hse-uploader/internal/filestorage/delivery/httpd"
	"github.com/amirkasheesh/hse-uploader/internal/filestorage/repository"
	"github.com/amirkasheesh/hse-uploader/internal/filestorage/service"
	"github.com/amirkasheesh/hse-uploader/pkg/hash"
)

type App struct {
	server *http.Server
	logger zerolog.Logger
	config *config.Config
	db     *sql.DB
}

func New(cfg *config.Config, log zerolog.Logger, db *sql.DB) (*App, error) {
	minioRepo, err := repository.NewMinIORepository(
		cfg.MinIO.Endpoint,
		cfg.MinIO.AccessKey,
		cfg.MinIO.SecretKey,
		cfg.MinIO.Bucket,
		cfg.MinIO.Region,
		cfg.MinIO.UseSSL,
		cfg.MinIO.Timeout,
		log,
	)
	if err != nil {
		return nil, err
	}

	metadataRepo := repository.NewFileMetadataRepository(db, log)
	hasher := hash.NewSHA256Hasher()

	uploadService := service.NewUploadService(
		metadataRepo,
		minioRepo,
		hasher,
		log,
		service.UploadConfig{
			MaxUploadSize: cfg.Server.MaxUploadSize,
		},
	)

	downloadService := service.NewDownloadService(metadataRepo, minioRepo, log)
	deleteService := service.NewDeleteService(metadataRepo, minioRepo, log)

	handler := httpd.NewHandler(
		uploadService,
		downloadService,
		deleteService,
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
		server: server,
		logger: log,
		config: cfg,
		db:     db,
	}, nil
}

func (a *App) Run() error {
	a.logger.Info().Msgf("Starting file storage service on %s", a.config.Server.Address)
	return a.server.ListenAndServe()
}

func (a *App) Shutdown(ctx context.Context) error {
	a.logger.Info().Msg("Shutting down file storage service...")

	if a.db != nil {
		if err := a.db.Close(); err != nil {
			a.logger.Error().Err(err).Msg("Failed to close database connection")
		}
	}

	if err := a.server.Shutdown(ctx); err != nil {
		a.logger.Error().Err(err).Msg("Failed to shutdown HTTP server")
		return err
	}

	a.logger.Info().Msg("File storage service stopped")
	return nil
}
