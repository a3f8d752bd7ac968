package repository

import (
	"context"
	"database/sql"

	"github.com/lib/pq"
	"github.com/rs/zerolog"

	"github.com/amirkasheesh/hse-uploader/internal/fileanalysis/models"
)

type ReportRepository interface {
	Create(ctx context.Context, report *models.AnalysisReport) error
	GetBySubmissionID(ctx context.Context, submissionID string) (*models.AnalysisReport, error)
	GetBySubmissionIDs(ctx context.Context, submissionIDs []string) (map[string]*models.AnalysisReport, error)
}

type reportRepository struct {
	*PostgresRepository
}

func NewReportRepository(db *sql.DB, logger zerolog.Logger) ReportRepository {
	return &reportRepository{
		PostgresRepository: NewPostgresRepository(db, logger),
	}
}

func (r *reportRepository) Create(ctx context.Context, report *models.AnalysisReport) error {
	query := `
		INSERT INTO analysis_reports (id, submission_id, is_plagiarized, similarity, comment, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`

	_, err := r.db.ExecContext(ctx, query,
		report.ID,
		report.SubmissionID,
		report.IsPlagiarized,
		report.Similarity,
		report.Comment,
		report.CreatedAt,
	)

	return err
}

func (r *reportRepository) GetBySubmissionID(ctx context.Context, submissionID string) (*models.AnalysisReport, error) {
	query := `
		SELECT id, submission_id, is_plagiarized, similarity, comment, created_at
		FROM analysis_reports
		WHERE submission_id = $1
	`

	report := &models.AnalysisReport{}
	err := r.db.QueryRowContext(ctx, query, submissionID).Scan(
		&report.ID,
		&report.SubmissionID,
		&report.IsPlagiarized,
		&report.Similarity,
		&report.Comment,
		&report.CreatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, nil
	}

	return report, err
}

func (r *reportRepository) GetBySubmissionIDs(ctx context.Context, submissionIDs []string) (map[string]*models.AnalysisReport, error) {
	reports := make(map[string]*models.AnalysisReport, len(submissionIDs))
	if len(submissionIDs) == 0 {
		return reports, nil
	}

	query := `
		SELECT id, submission_id, is_plagiarized, similarity, comment, created_at
		FROM analysis_reports
		WHERE submission_id = ANY($1)
	`

	rows, err := r.db.QueryContext(ctx, query, pq.Array(submissionIDs))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		report := &models.AnalysisReport{}
		err := rows.Scan(
			&report.ID,
			&report.SubmissionID,
			&report.IsPlagiarized,
			&report.Similarity,
			&report.Comment,
			&report.CreatedAt,
		)
		if err != nil {
			return nil, err
		}
		reports[report.SubmissionID] = report
	}

	return reports, rows.Err()
}
