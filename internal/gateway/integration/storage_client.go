package integration

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"time"

	"github.com/rs/zerolog"
)

const storageServiceName = "file storage service"

type StorageClient interface {
	UploadFile(ctx context.Context, fileName, contentType string, content []byte) (*UploadedFile, error)
	GetFile(ctx context.Context, fileID string) (*RelayResponse, error)
}

type storageClient struct {
	baseURL string
	client  *http.Client
	logger  zerolog.Logger
}

type UploadedFile struct {
	FileID   string `json:"fileId"`
	FileName string `json:"fileName"`
	Size     int64  `json:"size"`
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

func (c *storageClient) UploadFile(ctx context.Context, fileName, contentType string, content []byte) (*UploadedFile, error) {
	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)

	header := make(map[string][]string)
	header["Content-Disposition"] = []string{fmt.Sprintf(`form-data; name="file"; filename="%s"`, fileName)}
	if contentType != "" {
		header["Content-Type"] = []string{contentType}
	}

	part, err := writer.CreatePart(header)
	if err != nil {
		return nil, fmt.Errorf("failed to create form file: %w", err)
	}

	if _, err := io.Copy(part, bytes.NewReader(content)); err != nil {
		return nil, fmt.Errorf("failed to copy file content: %w", err)
	}

	if err := writer.Close(); err != nil {
		return nil, fmt.Errorf("failed to finalize multipart body: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/files", &buf)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, &TransportError{Service: storageServiceName, Err: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &TransportError{Service: storageServiceName, Err: err}
	}

	if resp.StatusCode != http.StatusOK {
		return nil, &UpstreamError{
			Service:     storageServiceName,
			Status:      resp.StatusCode,
			ContentType: resp.Header.Get("Content-Type"),
			Body:        body,
		}
	}

	var uploaded UploadedFile
	if err := json.Unmarshal(body, &uploaded); err != nil {
		return nil, fmt.Errorf("failed to decode upload response: %w", err)
	}

	c.logger.Info().
		Str("file_id", uploaded.FileID).
		Str("file_name", uploaded.FileName).
		Int64("size", uploaded.Size).
		Msg("File uploaded to storage")

	return &uploaded, nil
}

func (c *storageClient) GetFile(ctx context.Context, fileID string) (*RelayResponse, error) {
	url := fmt.Sprintf("%s/files/%s", c.baseURL, fileID)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, &TransportError{Service: storageServiceName, Err: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &TransportError{Service: storageServiceName, Err: err}
	}

	return &RelayResponse{
		Status:             resp.StatusCode,
		ContentType:        resp.Header.Get("Content-Type"),
		ContentDisposition: resp.Header.Get("Content-Disposition"),
		Body:               body,
	}, nil
}
