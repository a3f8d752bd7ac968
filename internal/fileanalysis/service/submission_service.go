package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/amirkasheesh/hse-uploader/internal/fileanalysis/events"
	"github.com/amirkasheesh/hse-uploader/internal/fileanalysis/models"
	"github.com/amirkasheesh/hse-uploader/internal/fileanalysis/repository"
	"github.com/amirkasheesh/hse-uploader/internal/fileanalysis/service/analyzer"
)

type SubmissionService interface {
	CreateSubmission(ctx context.Context, req *models.CreateSubmissionRequest) (*models.SubmissionCreatedResponse, error)
	GetSubmissionByID(ctx context.Context, id string) (*models.SubmissionDetailsResponse, error)
	GetReportBySubmissionID(ctx context.Context, id string) (*models.AnalysisReport, error)
	ListSubmissions(ctx context.Context) ([]models.SubmissionSummaryResponse, error)
}

type submissionService struct {
	submissionRepo repository.SubmissionRepository
	reportRepo     repository.ReportRepository
	analyzer       analyzer.Analyzer
	publisher      events.Publisher
	logger         zerolog.Logger
}

func NewSubmissionService(
	submissionRepo repository.SubmissionRepository,
	reportRepo repository.ReportRepository,
	analyzer analyzer.Analyzer,
	publisher events.Publisher,
	logger zerolog.Logger,
) SubmissionService {
	return &submissionService{
		submissionRepo: submissionRepo,
		reportRepo:     reportRepo,
		analyzer:       analyzer,
		publisher:      publisher,
		logger:         logger,
	}
}

func (s *submissionService) CreateSubmission(ctx context.Context, req *models.CreateSubmissionRequest) (*models.SubmissionCreatedResponse, error) {
	// Валидация до любой записи: отказ не оставляет следов в хранилище.
	if strings.TrimSpace(req.StudentName) == "" {
		return nil, ErrStudentNameRequired
	}
	if strings.TrimSpace(req.Assignment) == "" {
		return nil, ErrAssignmentRequired
	}
	if strings.TrimSpace(req.FileID) == "" {
		return nil, ErrFileIDRequired
	}

	submission := &models.Submission{
		ID:          uuid.New().String(),
		StudentName: req.StudentName,
		Group:       req.Group,
		Assignment:  req.Assignment,
		FileID:      req.FileID,
		SubmittedAt: time.Now().UTC(),
	}

	if err := s.submissionRepo.Create(ctx, submission); err != nil {
		return nil, fmt.Errorf("failed to create submission: %w", err)
	}

	// Сдача уже сохранена: если анализ или запись отчёта упадут, она
	// останется без отчёта, это допустимое состояние на чтение.
	allSubmissions, err := s.submissionRepo.GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load submissions for analysis: %w", err)
	}

	report := s.analyzer.Analyze(submission, allSubmissions)

	if err := s.reportRepo.Create(ctx, report); err != nil {
		return nil, fmt.Errorf("failed to save analysis report: %w", err)
	}

	s.publishAnalyzed(ctx, submission, report)

	s.logger.Info().
		Str("submission_id", submission.ID).
		Str("assignment", submission.Assignment).
		Bool("plagiarized", report.IsPlagiarized).
		Msg("Submission created and analyzed")

	return &models.SubmissionCreatedResponse{
		SubmissionID:  submission.ID,
		StudentName:   submission.StudentName,
		Group:         submission.Group,
		Assignment:    submission.Assignment,
		FileID:        submission.FileID,
		SubmittedAt:   submission.SubmittedAt,
		IsPlagiarized: report.IsPlagiarized,
		Similarity:    report.Similarity,
		Comment:       report.Comment,
	}, nil
}

func (s *submissionService) GetSubmissionByID(ctx context.Context, id string) (*models.SubmissionDetailsResponse, error) {
	submission, err := s.submissionRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get submission: %w", err)
	}
	if submission == nil {
		return nil, ErrSubmissionNotFound
	}

	report, err := s.reportRepo.GetBySubmissionID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get report: %w", err)
	}

	return &models.SubmissionDetailsResponse{
		SubmissionID: submission.ID,
		StudentName:  submission.StudentName,
		Group:        submission.Group,
		Assignment:   submission.Assignment,
		FileID:       submission.FileID,
		SubmittedAt:  submission.SubmittedAt,
		Report:       report,
	}, nil
}

func (s *submissionService) GetReportBySubmissionID(ctx context.Context, id string) (*models.AnalysisReport, error) {
	report, err := s.reportRepo.GetBySubmissionID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get report: %w", err)
	}
	if report == nil {
		return nil, ErrReportNotFound
	}

	return report, nil
}

func (s *submissionService) ListSubmissions(ctx context.Context) ([]models.SubmissionSummaryResponse, error) {
	submissions, err := s.submissionRepo.GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list submissions: %w", err)
	}

	summaries := make([]models.SubmissionSummaryResponse, 0, len(submissions))
	for _, submission := range submissions {
		summaries = append(summaries, models.SubmissionSummaryResponse{
			SubmissionID: submission.ID,
			StudentName:  submission.StudentName,
			Group:        submission.Group,
			Assignment:   submission.Assignment,
			FileID:       submission.FileID,
			SubmittedAt:  submission.SubmittedAt,
		})
	}

	return summaries, nil
}

func (s *submissionService) publishAnalyzed(ctx context.Context, submission *models.Submission, report *models.AnalysisReport) {
	if s.publisher == nil {
		return
	}

	event := &models.SubmissionAnalyzedEvent{
		SubmissionID:  submission.ID,
		Assignment:    submission.Assignment,
		StudentName:   submission.StudentName,
		IsPlagiarized: report.IsPlagiarized,
		Similarity:    report.Similarity,
		AnalyzedAt:    report.CreatedAt,
	}

	if err := s.publisher.PublishSubmissionAnalyzed(ctx, event); err != nil {
		// Брокер необязателен: не роняем запрос, только логируем.
		s.logger.Error().Err(err).Str("submission_id", submission.ID).Msg("Failed to publish submission analyzed event")
	}
}
