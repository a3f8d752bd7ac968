package handler

import (
	"io"
	"net/http"
	"strings"

	"github.com/amirkasheesh/hse-uploader/internal/gateway/integration"
)

const maxMultipartMemory = 32 << 20 // 32MB

// Submit принимает сдачу целиком: кладёт файл в хранилище, затем
// регистрирует сдачу в сервисе анализа и возвращает объединённый
// результат. Все локальные проверки выполняются до первого вызова
// зависимых сервисов.
func (h *Handler) Submit(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxMultipartMemory); err != nil {
		writeError(w, http.StatusBadRequest, "Failed to parse form data")
		return
	}

	file, fileHeader, err := r.FormFile("file")
	if err != nil {
		writeError(w, http.StatusBadRequest, "file is required")
		return
	}
	defer file.Close()

	if fileHeader.Size == 0 {
		writeError(w, http.StatusBadRequest, "file must not be empty")
		return
	}

	studentName := strings.TrimSpace(r.FormValue("studentName"))
	if studentName == "" {
		writeError(w, http.StatusBadRequest, "studentName is required")
		return
	}

	assignment := strings.TrimSpace(r.FormValue("assignment"))
	if assignment == "" {
		writeError(w, http.StatusBadRequest, "assignment is required")
		return
	}

	group := strings.TrimSpace(r.FormValue("group"))

	content, err := io.ReadAll(file)
	if err != nil {
		h.logger.Error().Err(err).Msg("Failed to read uploaded file")
		writeError(w, http.StatusInternalServerError, "Failed to read file")
		return
	}

	ctx := r.Context()

	uploaded, err := h.storageClient.UploadFile(ctx, fileHeader.Filename, fileHeader.Header.Get("Content-Type"), content)
	if err != nil {
		h.handleIntegrationError(w, err)
		return
	}

	created, err := h.analysisClient.CreateSubmission(ctx, &integration.CreateSubmissionRequest{
		StudentName: studentName,
		Group:       group,
		Assignment:  assignment,
		FileID:      uploaded.FileID,
	})
	if err != nil {
		// Файл уже лежит в хранилище; сдача не создана. Откатов нет,
		// повторная отправка создаст новый файл с новым fileId.
		h.handleIntegrationError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, created)
}
