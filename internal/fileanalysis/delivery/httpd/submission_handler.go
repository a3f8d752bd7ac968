package httpd

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/amirkasheesh/hse-uploader/internal/fileanalysis/models"
	"github.com/amirkasheesh/hse-uploader/internal/fileanalysis/service"
)

func (h *Handler) CreateSubmission(w http.ResponseWriter, r *http.Request) {
	var req models.CreateSubmissionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	response, err := h.submissionService.CreateSubmission(r.Context(), &req)
	if err != nil {
		h.handleSubmissionError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, response)
}

func (h *Handler) GetSubmission(w http.ResponseWriter, r *http.Request) {
	submissionID := chi.URLParam(r, "submission_id")
	if submissionID == "" {
		writeError(w, http.StatusBadRequest, "Submission ID is required")
		return
	}

	response, err := h.submissionService.GetSubmissionByID(r.Context(), submissionID)
	if err != nil {
		h.handleSubmissionError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, response)
}

func (h *Handler) ListSubmissions(w http.ResponseWriter, r *http.Request) {
	response, err := h.submissionService.ListSubmissions(r.Context())
	if err != nil {
		h.handleSubmissionError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, response)
}

func (h *Handler) GetSubmissionReport(w http.ResponseWriter, r *http.Request) {
	submissionID := chi.URLParam(r, "submission_id")
	if submissionID == "" {
		writeError(w, http.StatusBadRequest, "Submission ID is required")
		return
	}

	report, err := h.submissionService.GetReportBySubmissionID(r.Context(), submissionID)
	if err != nil {
		h.handleSubmissionError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, report)
}

func (h *Handler) handleSubmissionError(w http.ResponseWriter, err error) {
	switch {
	case service.IsValidationError(err):
		writeError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, service.ErrSubmissionNotFound):
		writeError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, service.ErrReportNotFound):
		writeError(w, http.StatusNotFound, err.Error())
	default:
		h.logger.Error().Err(err).Msg("Submission error")
		writeError(w, http.StatusInternalServerError, "Internal server error")
	}
}
