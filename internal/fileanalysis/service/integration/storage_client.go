package integration

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/rs/zerolog"
)

// ErrFileNotFound возвращается, когда хранилище не знает такой fileId.
var ErrFileNotFound = errors.New("file not found")

// StorageClient читает содержимое файлов из сервиса хранения.
// Повторных попыток нет: ошибка сразу возвращается вызывающему.
type StorageClient interface {
	GetFileContent(ctx context.Context, fileID string) ([]byte, error)
}

type storageClient struct {
	baseURL string
	client  *http.Client
	logger  zerolog.Logger
}

func NewStorageClient(baseURL string, timeout time.Duration, logger zerolog.Logger) StorageClient {
	return &storageClient{
		baseURL: baseURL,
		client: &http.Client{
			Timeout: timeout,
		},
		logger: logger,
	}
}

func (c *storageClient) GetFileContent(ctx context.Context, fileID string) ([]byte, error) {
	url := fmt.Sprintf("%s/files/%s", c.baseURL, fileID)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to get file content: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return nil, fmt.Errorf("%w: %s", ErrFileNotFound, fileID)
	}

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("file storage returned status %d: %s", resp.StatusCode, string(body))
	}

	content, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	c.logger.Debug().
		Str("file_id", fileID).
		Int("content_size", len(content)).
		Msg("Got file content")

	return content, nil
}
