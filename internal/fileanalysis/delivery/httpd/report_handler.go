package httpd

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

func (h *Handler) GetAssignmentReport(w http.ResponseWriter, r *http.Request) {
	assignment := chi.URLParam(r, "assignment")
	if assignment == "" {
		writeError(w, http.StatusBadRequest, "Assignment is required")
		return
	}

	response, err := h.reportService.GetAssignmentReport(r.Context(), assignment)
	if err != nil {
		h.handleSubmissionError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, response)
}
