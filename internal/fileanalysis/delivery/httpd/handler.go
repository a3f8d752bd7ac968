package httpd

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"

	"github.com/amirkasheesh/hse-uploader/internal/fileanalysis/service"
)

type Handler struct {
	submissionService service.SubmissionService
	reportService     service.ReportService
	wordCloudService  service.WordCloudService
	logger            zerolog.Logger
}

func NewHandler(
	submissionService service.SubmissionService,
	reportService service.ReportService,
	wordCloudService service.WordCloudService,
	logger zerolog.Logger,
) *Handler {
	return &Handler{
		submissionService: submissionService,
		reportService:     reportService,
		wordCloudService:  wordCloudService,
		logger:            logger,
	}
}

func (h *Handler) RegisterRoutes(router chi.Router) {
	router.Get("/health", h.HealthCheck)

	router.Route("/submissions", func(r chi.Router) {
		r.Post("/", h.CreateSubmission)
		r.Get("/", h.ListSubmissions)
		r.Get("/{submission_id}", h.GetSubmission)
		r.Get("/{submission_id}/report", h.GetSubmissionReport)
		r.Get("/{submission_id}/wordcloud", h.GetWordCloudPNG)
	})

	router.Get("/assignments/{assignment}/reports", h.GetAssignmentReport)
}

// Вспомогательные функции
func getIntQueryParam(r *http.Request, key string, defaultValue int) int {
	value := r.URL.Query().Get(key)
	if value == "" {
		return defaultValue
	}

	intValue, err := strconv.Atoi(value)
	if err != nil {
		return defaultValue
	}

	return intValue
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
