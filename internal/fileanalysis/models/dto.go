package models

import "time"

// Data Transfer Objects

type CreateSubmissionRequest struct {
	StudentName string `json:"studentName"`
	Group       string `json:"group,omitempty"`
	Assignment  string `json:"assignment"`
	FileID      string `json:"fileId"`
}

type SubmissionCreatedResponse struct {
	SubmissionID string    `json:"submissionId"`
	StudentName  string    `json:"studentName"`
	Group        string    `json:"group"`
	Assignment   string    `json:"assignment"`
	FileID       string    `json:"fileId"`
	SubmittedAt  time.Time `json:"submittedAt"`

	IsPlagiarized bool    `json:"isPlagiarized"`
	Similarity    float64 `json:"similarity"`
	Comment       string  `json:"comment"`
}

type SubmissionDetailsResponse struct {
	SubmissionID string    `json:"submissionId"`
	StudentName  string    `json:"studentName"`
	Group        string    `json:"group"`
	Assignment   string    `json:"assignment"`
	FileID       string    `json:"fileId"`
	SubmittedAt  time.Time `json:"submittedAt"`

	// Report может отсутствовать, если анализ не удался; это не ошибка.
	Report *AnalysisReport `json:"report"`
}

type SubmissionSummaryResponse struct {
	SubmissionID string    `json:"submissionId"`
	StudentName  string    `json:"studentName"`
	Group        string    `json:"group"`
	Assignment   string    `json:"assignment"`
	FileID       string    `json:"fileId"`
	SubmittedAt  time.Time `json:"submittedAt"`
}

type AssignmentReportItem struct {
	SubmissionID string    `json:"submissionId"`
	StudentName  string    `json:"studentName"`
	Group        string    `json:"group"`
	FileID       string    `json:"fileId"`
	SubmittedAt  time.Time `json:"submittedAt"`

	IsPlagiarized bool    `json:"isPlagiarized"`
	Similarity    float64 `json:"similarity"`
	Comment       string  `json:"comment"`
}

type AssignmentReportResponse struct {
	Assignment        string                 `json:"assignment"`
	TotalSubmissions  int                    `json:"totalSubmissions"`
	PlagiarizedCount  int                    `json:"plagiarizedCount"`
	AverageSimilarity float64                `json:"averageSimilarity"`
	Items             []AssignmentReportItem `json:"items"`
}
