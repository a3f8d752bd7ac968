package integration

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/rs/zerolog"
)

const analysisServiceName = "file analysis service"

type AnalysisClient interface {
	CreateSubmission(ctx context.Context, req *CreateSubmissionRequest) (*SubmissionCreated, error)
	GetSubmission(ctx context.Context, submissionID string) (*RelayResponse, error)
	ListSubmissions(ctx context.Context) (*RelayResponse, error)
	GetReport(ctx context.Context, submissionID string) (*RelayResponse, error)
	GetAssignmentReport(ctx context.Context, assignment string) (*RelayResponse, error)
	GetWordCloud(ctx context.Context, submissionID, rawQuery string) (*RelayResponse, error)
}

type analysisClient struct {
	baseURL string
	client  *http.Client
	logger  zerolog.Logger
}

type CreateSubmissionRequest struct {
	StudentName string `json:"studentName"`
	Group       string `json:"group,omitempty"`
	Assignment  string `json:"assignment"`
	FileID      string `json:"fileId"`
}

type SubmissionCreated struct {
	SubmissionID  string    `json:"submissionId"`
	StudentName   string    `json:"studentName"`
	Group         string    `json:"group"`
	Assignment    string    `json:"assignment"`
	FileID        string    `json:"fileId"`
	SubmittedAt   time.Time `json:"submittedAt"`
	IsPlagiarized bool      `json:"isPlagiarized"`
	Similarity    float64   `json:"similarity"`
	Comment       string    `json:"comment"`
}

func NewAnalysisClient(baseURL string, timeout time.Duration, logger zerolog.Logger) AnalysisClient {
	return &analysisClient{
		baseURL: baseURL,
		client: &http.Client{
			Timeout: timeout,
		},
		logger: logger,
	}
}

func (c *analysisClient) CreateSubmission(ctx context.Context, submission *CreateSubmissionRequest) (*SubmissionCreated, error) {
	payload, err := json.Marshal(submission)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/submissions", bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, &TransportError{Service: analysisServiceName, Err: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &TransportError{Service: analysisServiceName, Err: err}
	}

	if resp.StatusCode != http.StatusOK {
		return nil, &UpstreamError{
			Service:     analysisServiceName,
			Status:      resp.StatusCode,
			ContentType: resp.Header.Get("Content-Type"),
			Body:        body,
		}
	}

	var created SubmissionCreated
	if err := json.Unmarshal(body, &created); err != nil {
		return nil, fmt.Errorf("failed to decode submission response: %w", err)
	}

	c.logger.Info().
		Str("submission_id", created.SubmissionID).
		Str("assignment", created.Assignment).
		Bool("plagiarized", created.IsPlagiarized).
		Msg("Submission created")

	return &created, nil
}

func (c *analysisClient) GetSubmission(ctx context.Context, submissionID string) (*RelayResponse, error) {
	return c.relayGet(ctx, fmt.Sprintf("%s/submissions/%s", c.baseURL, url.PathEscape(submissionID)))
}

func (c *analysisClient) ListSubmissions(ctx context.Context) (*RelayResponse, error) {
	return c.relayGet(ctx, c.baseURL+"/submissions")
}

func (c *analysisClient) GetReport(ctx context.Context, submissionID string) (*RelayResponse, error) {
	return c.relayGet(ctx, fmt.Sprintf("%s/submissions/%s/report", c.baseURL, url.PathEscape(submissionID)))
}

func (c *analysisClient) GetAssignmentReport(ctx context.Context, assignment string) (*RelayResponse, error) {
	// Название задания задаётся пользователем и может содержать что угодно.
	return c.relayGet(ctx, fmt.Sprintf("%s/assignments/%s/reports", c.baseURL, url.PathEscape(assignment)))
}

func (c *analysisClient) GetWordCloud(ctx context.Context, submissionID, rawQuery string) (*RelayResponse, error) {
	target := fmt.Sprintf("%s/submissions/%s/wordcloud", c.baseURL, url.PathEscape(submissionID))
	if rawQuery != "" {
		target += "?" + rawQuery
	}
	return c.relayGet(ctx, target)
}

func (c *analysisClient) relayGet(ctx context.Context, target string) (*RelayResponse, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, &TransportError{Service: analysisServiceName, Err: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &TransportError{Service: analysisServiceName, Err: err}
	}

	return &RelayResponse{
		Status:             resp.StatusCode,
		ContentType:        resp.Header.Get("Content-Type"),
		ContentDisposition: resp.Header.Get("Content-Disposition"),
		Body:               body,
	}, nil
}
