package models

import (
	"time"
)

// Submission неизменяема после создания; fileId никогда не переназначается.
type Submission struct {
	ID          string    `json:"submissionId" db:"id"`
	StudentName string    `json:"studentName" db:"student_name"`
	Group       string    `json:"group" db:"student_group"`
	Assignment  string    `json:"assignment" db:"assignment"`
	FileID      string    `json:"fileId" db:"file_id"`
	SubmittedAt time.Time `json:"submittedAt" db:"submitted_at"`
}
