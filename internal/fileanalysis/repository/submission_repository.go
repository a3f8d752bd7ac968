package repository

import (
	"context"
	"database/sql"

	"github.com/rs/zerolog"

	"github.com/amirkasheesh/hse-uploader/internal/fileanalysis/models"
)

type SubmissionRepository interface {
	Create(ctx context.Context, submission *models.Submission) error
	GetByID(ctx context.Context, id string) (*models.Submission, error)
	GetAll(ctx context.Context) ([]models.Submission, error)
	GetByAssignment(ctx context.Context, assignment string) ([]models.Submission, error)
}

type submissionRepository struct {
	*PostgresRepository
}

func NewSubmissionRepository(db *sql.DB, logger zerolog.Logger) SubmissionRepository {
	return &submissionRepository{
		PostgresRepository: NewPostgresRepository(db, logger),
	}
}

func (r *submissionRepository) Create(ctx context.Context, submission *models.Submission) error {
	query := `
		INSERT INTO submissions (id, student_name, student_group, assignment, file_id, submitted_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`

	_, err := r.db.ExecContext(ctx, query,
		submission.ID,
		submission.StudentName,
		submission.Group,
		submission.Assignment,
		submission.FileID,
		submission.SubmittedAt,
	)

	return err
}

func (r *submissionRepository) GetByID(ctx context.Context, id string) (*models.Submission, error) {
	query := `
		SELECT id, student_name, student_group, assignment, file_id, submitted_at
		FROM submissions
		WHERE id = $1
	`

	submission := &models.Submission{}
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&submission.ID,
		&submission.StudentName,
		&submission.Group,
		&submission.Assignment,
		&submission.FileID,
		&submission.SubmittedAt,
	)

	if err == sql.ErrNoRows {
		return nil, nil
	}

	return submission, err
}

func (r *submissionRepository) GetAll(ctx context.Context) ([]models.Submission, error) {
	query := `
		SELECT id, student_name, student_group, assignment, file_id, submitted_at
		FROM submissions
		ORDER BY submitted_at
	`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanSubmissions(rows)
}

func (r *submissionRepository) GetByAssignment(ctx context.Context, assignment string) ([]models.Submission, error) {
	query := `
		SELECT id, student_name, student_group, assignment, file_id, submitted_at
		FROM submissions
		WHERE assignment = $1
		ORDER BY submitted_at
	`

	rows, err := r.db.QueryContext(ctx, query, assignment)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanSubmissions(rows)
}

func scanSubmissions(rows *sql.Rows) ([]models.Submission, error) {
	var submissions []models.Submission
	for rows.Next() {
		var submission models.Submission
		err := rows.Scan(
			&submission.ID,
			&submission.StudentName,
			&submission.Group,
			&submission.Assignment,
			&submission.FileID,
			&submission.SubmittedAt,
		)
		if err != nil {
			return nil, err
		}
		submissions = append(submissions, submission)
	}

	return submissions, rows.Err()
}
