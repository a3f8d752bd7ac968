package analyzer

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/amirkasheesh/hse-uploader/internal/fileanalysis/models"
)

func newSubmission(student, assignment, fileID string) models.Submission {
	return models.Submission{
		ID:          uuid.New().String(),
		StudentName: student,
		Assignment:  assignment,
		FileID:      fileID,
		SubmittedAt: time.Now().UTC(),
	}
}

func TestAnalyze_NoPriorSubmissions(t *testing.T) {
	a := NewDuplicateAnalyzer()

	current := newSubmission("Ivan Petrov", "hw1", "file-1")

	report := a.Analyze(&current, []models.Submission{current})

	require.NotNil(t, report)
	assert.Equal(t, current.ID, report.SubmissionID)
	assert.False(t, report.IsPlagiarized)
	assert.Equal(t, 0.0, report.Similarity)
	assert.Equal(t, "No matching files found for this submission", report.Comment)
	assert.NotEmpty(t, report.ID)
	assert.False(t, report.CreatedAt.IsZero())
}

func TestAnalyze_SameFileSameAssignment(t *testing.T) {
	a := NewDuplicateAnalyzer()

	prior := newSubmission("Anna Sidorova", "hw1", "file-1")
	current := newSubmission("Ivan Petrov", "hw1", "file-1")

	report := a.Analyze(&current, []models.Submission{prior, current})

	assert.True(t, report.IsPlagiarized)
	assert.Equal(t, 100.0, report.Similarity)
	assert.Equal(t, "File matches earlier submissions by: Anna Sidorova", report.Comment)
}

func TestAnalyze_MultipleMatchesJoinedInOrder(t *testing.T) {
	a := NewDuplicateAnalyzer()

	first := newSubmission("Anna Sidorova", "hw1", "file-1")
	second := newSubmission("Boris Ivanov", "hw1", "file-1")
	current := newSubmission("Ivan Petrov", "hw1", "file-1")

	report := a.Analyze(&current, []models.Submission{first, second, current})

	assert.True(t, report.IsPlagiarized)
	assert.Equal(t, "File matches earlier submissions by: Anna Sidorova, Boris Ivanov", report.Comment)
}

func TestAnalyze_SameFileDifferentAssignment(t *testing.T) {
	a := NewDuplicateAnalyzer()

	prior := newSubmission("Anna Sidorova", "hw1", "file-1")
	current := newSubmission("Ivan Petrov", "hw2", "file-1")

	report := a.Analyze(&current, []models.Submission{prior, current})

	assert.False(t, report.IsPlagiarized)
	assert.Equal(t, 0.0, report.Similarity)
}

func TestAnalyze_DifferentFileSameAssignment(t *testing.T) {
	a := NewDuplicateAnalyzer()

	prior := newSubmission("Anna Sidorova", "hw1", "file-1")
	current := newSubmission("Ivan Petrov", "hw1", "file-2")

	report := a.Analyze(&current, []models.Submission{prior, current})

	assert.False(t, report.IsPlagiarized)
}

func TestAnalyze_OwnSubmissionIsNotAMatch(t *testing.T) {
	a := NewDuplicateAnalyzer()

	// Один студент дважды в выборке: собственная запись не считается совпадением.
	current := newSubmission("Ivan Petrov", "hw1", "file-1")
	other := newSubmission("Ivan Petrov", "hw1", "file-1")

	report := a.Analyze(&current, []models.Submission{current, other})

	assert.True(t, report.IsPlagiarized)
	assert.Equal(t, "File matches earlier submissions by: Ivan Petrov", report.Comment)
}
