package integration

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetFileContent_Success(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/files/file-1", r.URL.Path)
		io.WriteString(w, "hello world")
	}))
	defer srv.Close()

	client := NewStorageClient(srv.URL, 2*time.Second, zerolog.Nop())

	content, err := client.GetFileContent(context.Background(), "file-1")

	require.NoError(t, err)
	assert.Equal(t, []byte("hello world"), content)
}

func TestGetFileContent_NotFound(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	client := NewStorageClient(srv.URL, 2*time.Second, zerolog.Nop())

	_, err := client.GetFileContent(context.Background(), "missing")

	require.ErrorIs(t, err, ErrFileNotFound)
}

func TestGetFileContent_UpstreamError(t *testing.T) {
	calls := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.WriteHeader(http.StatusInternalServerError)
		io.WriteString(w, "boom")
	}))
	defer srv.Close()

	client := NewStorageClient(srv.URL, 2*time.Second, zerolog.Nop())

	_, err := client.GetFileContent(context.Background(), "file-1")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "file storage returned status 500")
	assert.Equal(t, 1, calls, "single attempt, no retries")
}
