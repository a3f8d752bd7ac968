package handler

import (
	"bytes"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/amirkasheesh/hse-uploader/internal/gateway/integration"
)

func newTestRouter(storageURL, analysisURL string) *chi.Mux {
	storageClient := integration.NewStorageClient(storageURL, 2*time.Second, zerolog.Nop())
	analysisClient := integration.NewAnalysisClient(analysisURL, 2*time.Second, zerolog.Nop())

	router := chi.NewRouter()
	NewHandler(storageClient, analysisClient, zerolog.Nop()).RegisterRoutes(router)
	return router
}

func buildSubmitForm(t *testing.T, fields map[string]string, fileName string, fileContent []byte) (*bytes.Buffer, string) {
	t.Helper()

	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)

	if fileName != "" {
		part, err := writer.CreateFormFile("file", fileName)
		require.NoError(t, err)
		_, err = part.Write(fileContent)
		require.NoError(t, err)
	}

	for key, value := range fields {
		require.NoError(t, writer.WriteField(key, value))
	}

	require.NoError(t, writer.Close())
	return &buf, writer.FormDataContentType()
}

// closedServer возвращает адрес, по которому никто не слушает.
func closedServer() string {
	srv := httptest.NewServer(http.NotFoundHandler())
	srv.Close()
	return srv.URL
}

func TestSubmit_Success(t *testing.T) {
	var analysisReq integration.CreateSubmissionRequest

	storage := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/files", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]interface{}{
			"fileId":   "file-123",
			"fileName": "essay.txt",
			"size":     5,
		})
	}))
	defer storage.Close()

	analysis := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/submissions", r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&analysisReq))
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]interface{}{
			"submissionId":  "sub-1",
			"studentName":   "Ivan Petrov",
			"assignment":    "hw1",
			"fileId":        "file-123",
			"isPlagiarized": false,
			"similarity":    0.0,
			"comment":       "No matching files found for this submission",
		})
	}))
	defer analysis.Close()

	router := newTestRouter(storage.URL, analysis.URL)

	body, contentType := buildSubmitForm(t, map[string]string{
		"studentName": "Ivan Petrov",
		"assignment":  "hw1",
	}, "essay.txt", []byte("hello"))

	req := httptest.NewRequest(http.MethodPost, "/submit", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "file-123", analysisReq.FileID)
	assert.Equal(t, "Ivan Petrov", analysisReq.StudentName)

	var resp integration.SubmissionCreated
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "sub-1", resp.SubmissionID)
	assert.False(t, resp.IsPlagiarized)
}

func TestSubmit_ValidationBeforeUpstreamCalls(t *testing.T) {
	upstreamCalls := 0
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		upstreamCalls++
	}))
	defer upstream.Close()

	router := newTestRouter(upstream.URL, upstream.URL)

	tests := []struct {
		name        string
		fields      map[string]string
		fileName    string
		fileContent []byte
		wantMessage string
	}{
		{
			name:        "missing file",
			fields:      map[string]string{"studentName": "Ivan", "assignment": "hw1"},
			wantMessage: "file is required",
		},
		{
			name:        "empty file",
			fields:      map[string]string{"studentName": "Ivan", "assignment": "hw1"},
			fileName:    "essay.txt",
			wantMessage: "file must not be empty",
		},
		{
			name:        "missing student name",
			fields:      map[string]string{"assignment": "hw1"},
			fileName:    "essay.txt",
			fileContent: []byte("hello"),
			wantMessage: "studentName is required",
		},
		{
			name:        "missing assignment",
			fields:      map[string]string{"studentName": "Ivan"},
			fileName:    "essay.txt",
			fileContent: []byte("hello"),
			wantMessage: "assignment is required",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			body, contentType := buildSubmitForm(t, tt.fields, tt.fileName, tt.fileContent)

			req := httptest.NewRequest(http.MethodPost, "/submit", body)
			req.Header.Set("Content-Type", contentType)
			rec := httptest.NewRecorder()

			router.ServeHTTP(rec, req)

			require.Equal(t, http.StatusBadRequest, rec.Code)

			var errResp map[string]string
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &errResp))
			assert.Equal(t, tt.wantMessage, errResp["message"])
		})
	}

	assert.Zero(t, upstreamCalls, "local validation must not call dependent services")
}

func TestSubmit_StorageUnreachable(t *testing.T) {
	analysisCalls := 0
	analysis := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		analysisCalls++
	}))
	defer analysis.Close()

	router := newTestRouter(closedServer(), analysis.URL)

	body, contentType := buildSubmitForm(t, map[string]string{
		"studentName": "Ivan",
		"assignment":  "hw1",
	}, "essay.txt", []byte("hello"))

	req := httptest.NewRequest(http.MethodPost, "/submit", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusBadGateway, rec.Code)

	var errResp map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &errResp))
	assert.Contains(t, errResp["message"], "file storage service is unreachable")
	assert.Zero(t, analysisCalls, "storage failure must short-circuit before analysis")
}

func TestSubmit_AnalysisUnreachable(t *testing.T) {
	storage := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]interface{}{"fileId": "file-123", "fileName": "essay.txt", "size": 5})
	}))
	defer storage.Close()

	router := newTestRouter(storage.URL, closedServer())

	body, contentType := buildSubmitForm(t, map[string]string{
		"studentName": "Ivan",
		"assignment":  "hw1",
	}, "essay.txt", []byte("hello"))

	req := httptest.NewRequest(http.MethodPost, "/submit", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusBadGateway, rec.Code)

	var errResp map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &errResp))
	assert.Contains(t, errResp["message"], "file analysis service is unreachable")
}

func TestSubmit_UpstreamErrorRelayedVerbatim(t *testing.T) {
	storage := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusRequestEntityTooLarge)
		w.Write([]byte(`{"error":"Request Entity Too Large","message":"file size exceeds limit"}`))
	}))
	defer storage.Close()

	router := newTestRouter(storage.URL, closedServer())

	body, contentType := buildSubmitForm(t, map[string]string{
		"studentName": "Ivan",
		"assignment":  "hw1",
	}, "essay.txt", []byte("hello"))

	req := httptest.NewRequest(http.MethodPost, "/submit", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusRequestEntityTooLarge, rec.Code)
	assert.JSONEq(t, `{"error":"Request Entity Too Large","message":"file size exceeds limit"}`, rec.Body.String())
}

func TestDownloadFile_RelayedVerbatim(t *testing.T) {
	storage := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/files/file-123", r.URL.Path)
		w.Header().Set("Content-Type", "text/plain")
		w.Header().Set("Content-Disposition", `attachment; filename="essay.txt"`)
		io.WriteString(w, "hello")
	}))
	defer storage.Close()

	router := newTestRouter(storage.URL, closedServer())

	req := httptest.NewRequest(http.MethodGet, "/files/file-123", nil)
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "text/plain", rec.Header().Get("Content-Type"))
	assert.Equal(t, `attachment; filename="essay.txt"`, rec.Header().Get("Content-Disposition"))
	assert.Equal(t, "hello", rec.Body.String())
}

func TestGetSubmission_NotFoundRelayed(t *testing.T) {
	analysis := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte(`{"error":"Not Found","message":"submission not found"}`))
	}))
	defer analysis.Close()

	router := newTestRouter(closedServer(), analysis.URL)

	req := httptest.NewRequest(http.MethodGet, "/submissions/missing", nil)
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusNotFound, rec.Code)
	assert.JSONEq(t, `{"error":"Not Found","message":"submission not found"}`, rec.Body.String())
}
