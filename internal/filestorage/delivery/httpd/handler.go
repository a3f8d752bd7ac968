package httpd

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"

	"github.com/amirkasheesh/hse-uploader/internal/filestorage/service"
)

type Handler struct {
	uploadService   service.UploadService
	downloadService service.DownloadService
	deleteService   service.DeleteService
	logger          zerolog.Logger
}

func NewHandler(
	uploadService service.UploadService,
	downloadService service.DownloadService,
	deleteService service.DeleteService,
	logger zerolog.Logger,
) *Handler {
	return &Handler{
		uploadService:   uploadService,
		downloadService: downloadService,
		deleteService:   deleteService,
		logger:          logger,
	}
}

func (h *Handler) RegisterRoutes(router chi.Router) {
	router.Get("/health", h.HealthCheck)

	router.Route("/files", func(r chi.Router) {
		r.Post("/", h.UploadFile)
		r.Get("/{file_id}", h.DownloadFile)
		r.Get("/{file_id}/info", h.GetFileInfo)
		r.Delete("/{file_id}", h.DeleteFile)
	})
}

func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if data != nil {
		json.NewEncoder(w).Encode(data)
	}
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]interface{}{
		"error":   http.StatusText(status),
		"message": message,
	})
}
