package httpd

import (
	"errors"
	"net/http"

	"github.com/amirkasheesh/hse-uploader/internal/filestorage/service"
)

const maxMultipartMemory = 32 << 20 // 32MB

func (h *Handler) UploadFile(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxMultipartMemory); err != nil {
		writeError(w, http.StatusBadRequest, "Failed to parse form data")
		return
	}

	_, fileHeader, err := r.FormFile("file")
	if err != nil {
		writeError(w, http.StatusBadRequest, "File is required")
		return
	}

	response, err := h.uploadService.UploadFile(r.Context(), fileHeader)
	if err != nil {
		h.handleUploadError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, response)
}

func (h *Handler) handleUploadError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, service.ErrFileNameRequired):
		writeError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, service.ErrEmptyFile):
		writeError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, service.ErrFileTooLarge):
		writeError(w, http.StatusRequestEntityTooLarge, err.Error())
	default:
		h.logger.Error().Err(err).Msg("Upload error")
		writeError(w, http.StatusInternalServerError, "Failed to upload file")
	}
}
