package service

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/amirkasheesh/hse-uploader/internal/fileanalysis/models"
)

func seedSubmission(repo *fakeSubmissionRepo, student, assignment, fileID string) models.Submission {
	submission := models.Submission{
		ID:          uuid.New().String(),
		StudentName: student,
		Assignment:  assignment,
		FileID:      fileID,
		SubmittedAt: time.Now().UTC(),
	}
	repo.submissions = append(repo.submissions, submission)
	return submission
}

func seedReport(repo *fakeReportRepo, submissionID string, plagiarized bool, similarity float64, comment string) {
	repo.reports[submissionID] = &models.AnalysisReport{
		ID:            uuid.New().String(),
		SubmissionID:  submissionID,
		IsPlagiarized: plagiarized,
		Similarity:    similarity,
		Comment:       comment,
		CreatedAt:     time.Now().UTC(),
	}
}

func TestGetAssignmentReport_EmptyAssignmentRejected(t *testing.T) {
	svc := NewReportService(&fakeSubmissionRepo{}, newFakeReportRepo(), zerolog.Nop())

	_, err := svc.GetAssignmentReport(context.Background(), "   ")

	require.ErrorIs(t, err, ErrAssignmentRequired)
}

func TestGetAssignmentReport_NoSubmissions(t *testing.T) {
	svc := NewReportService(&fakeSubmissionRepo{}, newFakeReportRepo(), zerolog.Nop())

	report, err := svc.GetAssignmentReport(context.Background(), "hw1")

	require.NoError(t, err)
	assert.Equal(t, "hw1", report.Assignment)
	assert.Zero(t, report.TotalSubmissions)
	assert.Zero(t, report.PlagiarizedCount)
	assert.Equal(t, 0.0, report.AverageSimilarity)
	assert.Empty(t, report.Items)
}

func TestGetAssignmentReport_AggregatesReports(t *testing.T) {
	subRepo := &fakeSubmissionRepo{}
	repRepo := newFakeReportRepo()
	svc := NewReportService(subRepo, repRepo, zerolog.Nop())

	clean := seedSubmission(subRepo, "Anna Sidorova", "hw1", "file-1")
	copied := seedSubmission(subRepo, "Ivan Petrov", "hw1", "file-1")
	seedSubmission(subRepo, "Oleg Orlov", "hw2", "file-9")

	seedReport(repRepo, clean.ID, false, 0.0, "No matching files found for this submission")
	seedReport(repRepo, copied.ID, true, 100.0, "File matches earlier submissions by: Anna Sidorova")

	report, err := svc.GetAssignmentReport(context.Background(), "hw1")

	require.NoError(t, err)
	assert.Equal(t, 2, report.TotalSubmissions)
	assert.Equal(t, 1, report.PlagiarizedCount)
	assert.Equal(t, 50.0, report.AverageSimilarity)
	require.Len(t, report.Items, 2)
	assert.Equal(t, "Anna Sidorova", report.Items[0].StudentName)
	assert.Equal(t, "Ivan Petrov", report.Items[1].StudentName)
	assert.True(t, report.Items[1].IsPlagiarized)
}

func TestGetAssignmentReport_MissingReportGetsPlaceholder(t *testing.T) {
	subRepo := &fakeSubmissionRepo{}
	repRepo := newFakeReportRepo()
	svc := NewReportService(subRepo, repRepo, zerolog.Nop())

	seedSubmission(subRepo, "Ivan Petrov", "hw1", "file-1")

	report, err := svc.GetAssignmentReport(context.Background(), "hw1")

	require.NoError(t, err)
	require.Len(t, report.Items, 1)
	item := report.Items[0]
	assert.False(t, item.IsPlagiarized)
	assert.Equal(t, 0.0, item.Similarity)
	assert.Equal(t, "Report for this submission is not formed yet", item.Comment)
	assert.Zero(t, report.PlagiarizedCount)
	assert.Equal(t, 0.0, report.AverageSimilarity)
}
