package models

import "time"

type SubmissionAnalyzedEvent struct {
	SubmissionID  string    `json:"submissionId"`
	Assignment    string    `json:"assignment"`
	StudentName   string    `json:"studentName"`
	IsPlagiarized bool      `json:"isPlagiarized"`
	Similarity    float64   `json:"similarity"`
	AnalyzedAt    time.Time `json:"analyzedAt"`
}
