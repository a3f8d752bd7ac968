package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"github.com/amirkasheesh/hse-uploader/internal/fileanalysis/models"
	"github.com/amirkasheesh/hse-uploader/internal/fileanalysis/repository"
)

// Комментарий в строке отчёта, когда сдача есть, а отчёт ещё не записан.
const pendingReportComment = "Report for this submission is not formed yet"

type ReportService interface {
	GetAssignmentReport(ctx context.Context, assignment string) (*models.AssignmentReportResponse, error)
}

type reportService struct {
	submissionRepo repository.SubmissionRepository
	reportRepo     repository.ReportRepository
	logger         zerolog.Logger
}

func NewReportService(
	submissionRepo repository.SubmissionRepository,
	reportRepo repository.ReportRepository,
	logger zerolog.Logger,
) ReportService {
	return &reportService{
		submissionRepo: submissionRepo,
		reportRepo:     reportRepo,
		logger:         logger,
	}
}

func (s *reportService) GetAssignmentReport(ctx context.Context, assignment string) (*models.AssignmentReportResponse, error) {
	if strings.TrimSpace(assignment) == "" {
		return nil, ErrAssignmentRequired
	}

	submissions, err := s.submissionRepo.GetByAssignment(ctx, assignment)
	if err != nil {
		return nil, fmt.Errorf("failed to get submissions: %w", err)
	}

	ids := make([]string, 0, len(submissions))
	for _, submission := range submissions {
		ids = append(ids, submission.ID)
	}

	reports, err := s.reportRepo.GetBySubmissionIDs(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("failed to get reports: %w", err)
	}

	items := make([]models.AssignmentReportItem, 0, len(submissions))
	plagiarized := 0
	totalSimilarity := 0.0
	for _, submission := range submissions {
		item := models.AssignmentReportItem{
			SubmissionID: submission.ID,
			StudentName:  submission.StudentName,
			Group:        submission.Group,
			FileID:       submission.FileID,
			SubmittedAt:  submission.SubmittedAt,
			Comment:      pendingReportComment,
		}

		// Сдача без отчёта попадает в отчёт с заглушкой и нулевой схожестью.
		if report, ok := reports[submission.ID]; ok {
			item.IsPlagiarized = report.IsPlagiarized
			item.Similarity = report.Similarity
			item.Comment = report.Comment
			if report.IsPlagiarized {
				plagiarized++
			}
			totalSimilarity += report.Similarity
		}

		items = append(items, item)
	}

	average := 0.0
	if len(submissions) > 0 {
		average = totalSimilarity / float64(len(submissions))
	}

	return &models.AssignmentReportResponse{
		Assignment:        assignment,
		TotalSubmissions:  len(submissions),
		PlagiarizedCount:  plagiarized,
		AverageSimilarity: average,
		Items:             items,
	}, nil
}
