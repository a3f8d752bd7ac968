package httpd

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/amirkasheesh/hse-uploader/internal/filestorage/service"
)

func (h *Handler) DeleteFile(w http.ResponseWriter, r *http.Request) {
	fileID := chi.URLParam(r, "file_id")
	if fileID == "" {
		writeError(w, http.StatusBadRequest, "File ID is required")
		return
	}

	response, err := h.deleteService.DeleteFile(r.Context(), fileID)
	if err != nil {
		if errors.Is(err, service.ErrFileNotFound) {
			writeError(w, http.StatusNotFound, "File not found")
			return
		}
		h.logger.Error().Err(err).Msg("Delete error")
		writeError(w, http.StatusInternalServerError, "Failed to delete file")
		return
	}

	writeJSON(w, http.StatusOK, response)
}
