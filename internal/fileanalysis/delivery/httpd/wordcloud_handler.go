package httpd

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/amirkasheesh/hse-uploader/internal/fileanalysis/service"
)

func (h *Handler) GetWordCloudPNG(w http.ResponseWriter, r *http.Request) {
	submissionID := chi.URLParam(r, "submission_id")
	if submissionID == "" {
		writeError(w, http.StatusBadRequest, "Submission ID is required")
		return
	}

	width := getIntQueryParam(r, "width", 800)
	height := getIntQueryParam(r, "height", 600)
	maxWords := getIntQueryParam(r, "max_words", 200)
	minLen := getIntQueryParam(r, "min_len", 2)

	removeStopwords := false
	if v := r.URL.Query().Get("remove_stopwords"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			removeStopwords = b
		}
	}

	lang := r.URL.Query().Get("lang")

	img, err := h.wordCloudService.RenderSubmissionWordCloudPNG(r.Context(), submissionID, service.WordCloudOptions{
		Width:           width,
		Height:          height,
		MaxNumWords:     maxWords,
		MinWordLength:   minLen,
		RemoveStopwords: removeStopwords,
		Language:        lang,
	})
	if err != nil {
		h.handleWordCloudError(w, err)
		return
	}

	w.Header().Set("Content-Type", "image/png")
	w.WriteHeader(http.StatusOK)
	w.Write(img)
}

func (h *Handler) handleWordCloudError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, service.ErrInvalidSubmissionID):
		writeError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, service.ErrSubmissionNotFound):
		writeError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, service.ErrFileContentEmpty):
		writeError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, service.ErrFileStorageError):
		// Ошибка зависимого микросервиса (хранилище файлов).
		writeError(w, http.StatusBadGateway, err.Error())
	case errors.Is(err, service.ErrQuickChartError):
		// Ошибка внешнего API (quickchart).
		writeError(w, http.StatusBadGateway, err.Error())
	default:
		h.logger.Error().Err(err).Msg("Word cloud error")
		writeError(w, http.StatusInternalServerError, "Internal server error")
	}
}
