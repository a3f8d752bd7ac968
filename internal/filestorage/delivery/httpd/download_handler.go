package httpd

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/amirkasheesh/hse-uploader/internal/filestorage/service"
)

func (h *Handler) DownloadFile(w http.ResponseWriter, r *http.Request) {
	fileID := chi.URLParam(r, "file_id")
	if fileID == "" {
		writeError(w, http.StatusBadRequest, "File ID is required")
		return
	}

	response, err := h.downloadService.DownloadFile(r.Context(), fileID)
	if err != nil {
		h.handleDownloadError(w, err)
		return
	}

	w.Header().Set("Content-Type", response.ContentType)
	w.Header().Set("Content-Disposition", "attachment; filename=\""+response.FileName+"\"")
	w.Header().Set("Content-Length", strconv.FormatInt(response.Size, 10))

	w.WriteHeader(http.StatusOK)
	w.Write(response.Content)
}

func (h *Handler) GetFileInfo(w http.ResponseWriter, r *http.Request) {
	fileID := chi.URLParam(r, "file_id")
	if fileID == "" {
		writeError(w, http.StatusBadRequest, "File ID is required")
		return
	}

	info, err := h.downloadService.GetFileInfo(r.Context(), fileID)
	if err != nil {
		h.handleDownloadError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, info)
}

func (h *Handler) handleDownloadError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, service.ErrFileNotFound):
		writeError(w, http.StatusNotFound, "File not found")
	default:
		h.logger.Error().Err(err).Msg("Download error")
		writeError(w, http.StatusInternalServerError, "Failed to retrieve file")
	}
}
