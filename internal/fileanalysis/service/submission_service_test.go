package service

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/amirkasheesh/hse-uploader/internal/fileanalysis/models"
	"github.com/amirkasheesh/hse-uploader/internal/fileanalysis/service/analyzer"
)

type fakeSubmissionRepo struct {
	submissions []models.Submission
	createErr   error
	createCalls int
}

func (f *fakeSubmissionRepo) Create(ctx context.Context, submission *models.Submission) error {
	f.createCalls++
	if f.createErr != nil {
		return f.createErr
	}
	f.submissions = append(f.submissions, *submission)
	return nil
}

func (f *fakeSubmissionRepo) GetByID(ctx context.Context, id string) (*models.Submission, error) {
	for i := range f.submissions {
		if f.submissions[i].ID == id {
			return &f.submissions[i], nil
		}
	}
	return nil, nil
}

func (f *fakeSubmissionRepo) GetAll(ctx context.Context) ([]models.Submission, error) {
	return f.submissions, nil
}

func (f *fakeSubmissionRepo) GetByAssignment(ctx context.Context, assignment string) ([]models.Submission, error) {
	var result []models.Submission
	for _, s := range f.submissions {
		if s.Assignment == assignment {
			result = append(result, s)
		}
	}
	return result, nil
}

type fakeReportRepo struct {
	reports   map[string]*models.AnalysisReport
	createErr error
}

func newFakeReportRepo() *fakeReportRepo {
	return &fakeReportRepo{reports: make(map[string]*models.AnalysisReport)}
}

func (f *fakeReportRepo) Create(ctx context.Context, report *models.AnalysisReport) error {
	if f.createErr != nil {
		return f.createErr
	}
	f.reports[report.SubmissionID] = report
	return nil
}

func (f *fakeReportRepo) GetBySubmissionID(ctx context.Context, submissionID string) (*models.AnalysisReport, error) {
	return f.reports[submissionID], nil
}

func (f *fakeReportRepo) GetBySubmissionIDs(ctx context.Context, submissionIDs []string) (map[string]*models.AnalysisReport, error) {
	result := make(map[string]*models.AnalysisReport)
	for _, id := range submissionIDs {
		if r, ok := f.reports[id]; ok {
			result[id] = r
		}
	}
	return result, nil
}

type fakePublisher struct {
	events []*models.SubmissionAnalyzedEvent
	err    error
}

func (f *fakePublisher) PublishSubmissionAnalyzed(ctx context.Context, event *models.SubmissionAnalyzedEvent) error {
	if f.err != nil {
		return f.err
	}
	f.events = append(f.events, event)
	return nil
}

func (f *fakePublisher) Close() error { return nil }

func newTestService(subRepo *fakeSubmissionRepo, repRepo *fakeReportRepo, pub *fakePublisher) SubmissionService {
	if pub == nil {
		return NewSubmissionService(subRepo, repRepo, analyzer.NewDuplicateAnalyzer(), nil, zerolog.Nop())
	}
	return NewSubmissionService(subRepo, repRepo, analyzer.NewDuplicateAnalyzer(), pub, zerolog.Nop())
}

func TestCreateSubmission_ValidationBeforePersistence(t *testing.T) {
	tests := []struct {
		name    string
		req     *models.CreateSubmissionRequest
		wantErr error
	}{
		{
			name:    "empty student name",
			req:     &models.CreateSubmissionRequest{StudentName: "  ", Assignment: "hw1", FileID: "f1"},
			wantErr: ErrStudentNameRequired,
		},
		{
			name:    "empty assignment",
			req:     &models.CreateSubmissionRequest{StudentName: "Ivan", Assignment: "", FileID: "f1"},
			wantErr: ErrAssignmentRequired,
		},
		{
			name:    "empty file id",
			req:     &models.CreateSubmissionRequest{StudentName: "Ivan", Assignment: "hw1", FileID: ""},
			wantErr: ErrFileIDRequired,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			subRepo := &fakeSubmissionRepo{}
			svc := newTestService(subRepo, newFakeReportRepo(), nil)

			_, err := svc.CreateSubmission(context.Background(), tt.req)

			require.ErrorIs(t, err, tt.wantErr)
			assert.True(t, IsValidationError(err))
			assert.Zero(t, subRepo.createCalls, "validation failure must not touch the repository")
		})
	}
}

func TestCreateSubmission_FirstSubmissionIsClean(t *testing.T) {
	subRepo := &fakeSubmissionRepo{}
	repRepo := newFakeReportRepo()
	pub := &fakePublisher{}
	svc := newTestService(subRepo, repRepo, pub)

	resp, err := svc.CreateSubmission(context.Background(), &models.CreateSubmissionRequest{
		StudentName: "Ivan Petrov",
		Group:       "BSE-231",
		Assignment:  "hw1",
		FileID:      "file-1",
	})

	require.NoError(t, err)
	assert.NotEmpty(t, resp.SubmissionID)
	assert.Equal(t, "Ivan Petrov", resp.StudentName)
	assert.Equal(t, "BSE-231", resp.Group)
	assert.False(t, resp.IsPlagiarized)
	assert.Equal(t, 0.0, resp.Similarity)

	require.Len(t, subRepo.submissions, 1)
	require.Contains(t, repRepo.reports, resp.SubmissionID)
	require.Len(t, pub.events, 1)
	assert.Equal(t, resp.SubmissionID, pub.events[0].SubmissionID)
}

func TestCreateSubmission_DetectsDuplicateFileID(t *testing.T) {
	subRepo := &fakeSubmissionRepo{}
	repRepo := newFakeReportRepo()
	svc := newTestService(subRepo, repRepo, nil)

	_, err := svc.CreateSubmission(context.Background(), &models.CreateSubmissionRequest{
		StudentName: "Anna Sidorova",
		Assignment:  "hw1",
		FileID:      "file-1",
	})
	require.NoError(t, err)

	resp, err := svc.CreateSubmission(context.Background(), &models.CreateSubmissionRequest{
		StudentName: "Ivan Petrov",
		Assignment:  "hw1",
		FileID:      "file-1",
	})

	require.NoError(t, err)
	assert.True(t, resp.IsPlagiarized)
	assert.Equal(t, 100.0, resp.Similarity)
	assert.Equal(t, "File matches earlier submissions by: Anna Sidorova", resp.Comment)
}

func TestCreateSubmission_PublisherFailureDoesNotFailRequest(t *testing.T) {
	subRepo := &fakeSubmissionRepo{}
	pub := &fakePublisher{err: errors.New("broker down")}
	svc := newTestService(subRepo, newFakeReportRepo(), pub)

	resp, err := svc.CreateSubmission(context.Background(), &models.CreateSubmissionRequest{
		StudentName: "Ivan Petrov",
		Assignment:  "hw1",
		FileID:      "file-1",
	})

	require.NoError(t, err)
	assert.NotEmpty(t, resp.SubmissionID)
}

func TestCreateSubmission_RepositoryFailure(t *testing.T) {
	subRepo := &fakeSubmissionRepo{createErr: errors.New("db down")}
	svc := newTestService(subRepo, newFakeReportRepo(), nil)

	_, err := svc.CreateSubmission(context.Background(), &models.CreateSubmissionRequest{
		StudentName: "Ivan Petrov",
		Assignment:  "hw1",
		FileID:      "file-1",
	})

	require.Error(t, err)
	assert.False(t, IsValidationError(err))
}

func TestGetSubmissionByID_NotFound(t *testing.T) {
	svc := newTestService(&fakeSubmissionRepo{}, newFakeReportRepo(), nil)

	_, err := svc.GetSubmissionByID(context.Background(), "missing")

	require.ErrorIs(t, err, ErrSubmissionNotFound)
}

func TestGetSubmissionByID_WithoutReport(t *testing.T) {
	subRepo := &fakeSubmissionRepo{}
	repRepo := newFakeReportRepo()
	svc := newTestService(subRepo, repRepo, nil)

	created, err := svc.CreateSubmission(context.Background(), &models.CreateSubmissionRequest{
		StudentName: "Ivan Petrov",
		Assignment:  "hw1",
		FileID:      "file-1",
	})
	require.NoError(t, err)

	// Отчёт пропал, сдача осталась: деталь отдаётся с пустым отчётом.
	delete(repRepo.reports, created.SubmissionID)

	details, err := svc.GetSubmissionByID(context.Background(), created.SubmissionID)

	require.NoError(t, err)
	assert.Equal(t, created.SubmissionID, details.SubmissionID)
	assert.Nil(t, details.Report)
}

func TestGetReportBySubmissionID_NotFound(t *testing.T) {
	svc := newTestService(&fakeSubmissionRepo{}, newFakeReportRepo(), nil)

	_, err := svc.GetReportBySubmissionID(context.Background(), "missing")

	require.ErrorIs(t, err, ErrReportNotFound)
}

func TestListSubmissions(t *testing.T) {
	subRepo := &fakeSubmissionRepo{}
	svc := newTestService(subRepo, newFakeReportRepo(), nil)

	for _, name := range []string{"Ivan Petrov", "Anna Sidorova"} {
		_, err := svc.CreateSubmission(context.Background(), &models.CreateSubmissionRequest{
			StudentName: name,
			Assignment:  "hw1",
			FileID:      "file-" + name,
		})
		require.NoError(t, err)
	}

	summaries, err := svc.ListSubmissions(context.Background())

	require.NoError(t, err)
	require.Len(t, summaries, 2)
	assert.Equal(t, "Ivan Petrov", summaries[0].StudentName)
	assert.Equal(t, "Anna Sidorova", summaries[1].StudentName)
}
