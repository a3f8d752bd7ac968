package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"

	"github.com/amirkasheesh/hse-uploader/internal/gateway/integration"
)

type Handler struct {
	storageClient  integration.StorageClient
	analysisClient integration.AnalysisClient
	logger         zerolog.Logger
}

func NewHandler(
	storageClient integration.StorageClient,
	analysisClient integration.AnalysisClient,
	logger zerolog.Logger,
) *Handler {
	return &Handler{
		storageClient:  storageClient,
		analysisClient: analysisClient,
		logger:         logger,
	}
}

func (h *Handler) RegisterRoutes(router chi.Router) {
	router.Get("/health", h.HealthCheck)

	router.Post("/submit", h.Submit)

	router.Route("/submissions", func(r chi.Router) {
		r.Get("/", h.ListSubmissions)
		r.Get("/{submission_id}", h.GetSubmission)
		r.Get("/{submission_id}/report", h.GetSubmissionReport)
		r.Get("/{submission_id}/wordcloud", h.GetWordCloud)
	})

	router.Get("/assignments/{assignment}/reports", h.GetAssignmentReport)
	router.Get("/files/{file_id}", h.DownloadFile)
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

// writeRelay передаёт ответ зависимого сервиса клиенту без изменений.
func writeRelay(w http.ResponseWriter, relay *integration.RelayResponse) {
	if relay.ContentType != "" {
		w.Header().Set("Content-Type", relay.ContentType)
	}
	if relay.ContentDisposition != "" {
		w.Header().Set("Content-Disposition", relay.ContentDisposition)
	}
	w.WriteHeader(relay.Status)
	w.Write(relay.Body)
}

// handleIntegrationError раскладывает ошибки клиентов по контракту шлюза:
// недоступный сервис это 502 с указанием виновника, неуспешный ответ
// сервиса ретранслируется как есть, всё остальное 500.
func (h *Handler) handleIntegrationError(w http.ResponseWriter, err error) {
	var transportErr *integration.TransportError
	if errors.As(err, &transportErr) {
		h.logger.Error().Err(transportErr.Err).Str("service", transportErr.Service).Msg("Upstream unreachable")
		writeError(w, http.StatusBadGateway, transportErr.Error())
		return
	}

	var upstreamErr *integration.UpstreamError
	if errors.As(err, &upstreamErr) {
		writeRelay(w, &integration.RelayResponse{
			Status:      upstreamErr.Status,
			ContentType: upstreamErr.ContentType,
			Body:        upstreamErr.Body,
		})
		return
	}

	h.logger.Error().Err(err).Msg("Gateway error")
	writeError(w, http.StatusInternalServerError, "Internal server error")
}
