package handler

import (
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
)

func (h *Handler) ListSubmissions(w http.ResponseWriter, r *http.Request) {
	relay, err := h.analysisClient.ListSubmissions(r.Context())
	if err != nil {
		h.handleIntegrationError(w, err)
		return
	}

	writeRelay(w, relay)
}

func (h *Handler) GetSubmission(w http.ResponseWriter, r *http.Request) {
	submissionID := chi.URLParam(r, "submission_id")
	if submissionID == "" {
		writeError(w, http.StatusBadRequest, "Submission ID is required")
		return
	}

	relay, err := h.analysisClient.GetSubmission(r.Context(), submissionID)
	if err != nil {
		h.handleIntegrationError(w, err)
		return
	}

	writeRelay(w, relay)
}

func (h *Handler) GetSubmissionReport(w http.ResponseWriter, r *http.Request) {
	submissionID := chi.URLParam(r, "submission_id")
	if submissionID == "" {
		writeError(w, http.StatusBadRequest, "Submission ID is required")
		return
	}

	relay, err := h.analysisClient.GetReport(r.Context(), submissionID)
	if err != nil {
		h.handleIntegrationError(w, err)
		return
	}

	writeRelay(w, relay)
}

func (h *Handler) GetAssignmentReport(w http.ResponseWriter, r *http.Request) {
	assignment := chi.URLParam(r, "assignment")
	if assignment == "" {
		writeError(w, http.StatusBadRequest, "Assignment is required")
		return
	}

	relay, err := h.analysisClient.GetAssignmentReport(r.Context(), assignment)
	if err != nil {
		h.handleIntegrationError(w, err)
		return
	}

	writeRelay(w, relay)
}

func (h *Handler) GetWordCloud(w http.ResponseWriter, r *http.Request) {
	submissionID := chi.URLParam(r, "submission_id")
	if submissionID == "" {
		writeError(w, http.StatusBadRequest, "Submission ID is required")
		return
	}

	relay, err := h.analysisClient.GetWordCloud(r.Context(), submissionID, r.URL.RawQuery)
	if err != nil {
		h.handleIntegrationError(w, err)
		return
	}

	writeRelay(w, relay)
}

func (h *Handler) DownloadFile(w http.ResponseWriter, r *http.Request) {
	fileID := chi.URLParam(r, "file_id")
	if fileID == "" {
		writeError(w, http.StatusBadRequest, "File ID is required")
		return
	}

	relay, err := h.storageClient.GetFile(r.Context(), fileID)
	if err != nil {
		h.handleIntegrationError(w, err)
		return
	}

	// Хранилище обычно присылает оба заголовка; если нет, отдаём
	// бинарный тип и сам идентификатор в качестве имени файла.
	if relay.Status == http.StatusOK {
		if relay.ContentType == "" {
			relay.ContentType = "application/octet-stream"
		}
		if relay.ContentDisposition == "" {
			relay.ContentDisposition = fmt.Sprintf(`attachment; filename="%s"`, fileID)
		}
	}

	writeRelay(w, relay)
}
