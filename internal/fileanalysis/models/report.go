package models

import (
	"time"
)

// AnalysisReport — вердикт проверки ровно по одной сдаче (1:1 c Submission).
type AnalysisReport struct {
	ID            string    `json:"id" db:"id"`
	SubmissionID  string    `json:"submissionId" db:"submission_id"`
	IsPlagiarized bool      `json:"isPlagiarized" db:"is_plagiarized"`
	Similarity    float64   `json:"similarity" db:"similarity"`
	Comment       string    `json:"comment" db:"comment"`
	CreatedAt     time.Time `json:"createdAt" db:"created_at"`
}
