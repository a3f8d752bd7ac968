package service

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/amirkasheesh/hse-uploader/internal/fileanalysis/repository"
	"github.com/amirkasheesh/hse-uploader/internal/fileanalysis/service/integration"
)

const quickChartURL = "https://quickchart.io/wordcloud"

type WordCloudService interface {
	RenderSubmissionWordCloudPNG(ctx context.Context, submissionID string, opts WordCloudOptions) ([]byte, error)
}

type WordCloudOptions struct {
	Width           int
	Height          int
	MaxNumWords     int
	MinWordLength   int
	RemoveStopwords bool
	Language        string
}

type wordCloudService struct {
	submissionRepo repository.SubmissionRepository
	storageClient  integration.StorageClient
	httpClient     *http.Client
	logger         zerolog.Logger
}

func NewWordCloudService(submissionRepo repository.SubmissionRepository, storageClient integration.StorageClient, logger zerolog.Logger) WordCloudService {
	return &wordCloudService{
		submissionRepo: submissionRepo,
		storageClient:  storageClient,
		httpClient:     &http.Client{Timeout: 30 * time.Second},
		logger:         logger,
	}
}

func (s *wordCloudService) RenderSubmissionWordCloudPNG(ctx context.Context, submissionID string, opts WordCloudOptions) ([]byte, error) {
	submissionID = strings.TrimSpace(submissionID)
	if submissionID == "" {
		return nil, ErrInvalidSubmissionID
	}
	if _, err := uuid.Parse(submissionID); err != nil {
		return nil, ErrInvalidSubmissionID
	}

	submission, err := s.submissionRepo.GetByID(ctx, submissionID)
	if err != nil {
		return nil, fmt.Errorf("failed to get submission: %w", err)
	}
	if submission == nil {
		return nil, ErrSubmissionNotFound
	}

	content, err := s.storageClient.GetFileContent(ctx, submission.FileID)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrFileStorageError, err)
	}

	text := strings.TrimSpace(string(content))
	if text == "" {
		return nil, ErrFileContentEmpty
	}

	width := opts.Width
	if width <= 0 {
		width = 800
	}
	height := opts.Height
	if height <= 0 {
		height = 600
	}
	maxWords := opts.MaxNumWords
	if maxWords <= 0 {
		maxWords = 200
	}
	minLen := opts.MinWordLength
	if minLen <= 0 {
		minLen = 2
	}
	lang := strings.TrimSpace(opts.Language)
	if lang == "" {
		lang = "en"
	}

	payload := map[string]interface{}{
		"text":            text,
		"format":          "png",
		"width":           width,
		"height":          height,
		"maxNumWords":     maxWords,
		"minWordLength":   minLen,
		"removeStopwords": opts.RemoveStopwords,
		"language":        lang,
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal quickchart payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, quickChartURL, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("%w: failed to create request: %v", ErrQuickChartError, err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: request failed: %v", ErrQuickChartError, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		b, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("%w: returned status %d: %s", ErrQuickChartError, resp.StatusCode, string(b))
	}

	img, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to read response: %v", ErrQuickChartError, err)
	}
	if len(img) == 0 {
		return nil, fmt.Errorf("%w: returned empty image", ErrQuickChartError)
	}

	s.logger.Info().
		Str("submission_id", submissionID).
		Str("file_id", submission.FileID).
		Int("png_size", len(img)).
		Msg("Word cloud generated")

	return img, nil
}
