package repository

import (
	"context"
	"database/sql"

	"github.com/rs/zerolog"

	"github.com/amirkasheesh/hse-uploader/internal/filestorage/models"
)

type FileMetadataRepository interface {
	Create(ctx context.Context, metadata *models.FileMetadata) error
	GetByID(ctx context.Context, id string) (*models.FileMetadata, error)
	Delete(ctx context.Context, id string) error
	Exists(ctx context.Context, id string) (bool, error)
}

type fileMetadataRepository struct {
	*PostgresRepository
}

func NewFileMetadataRepository(db *sql.DB, logger zerolog.Logger) FileMetadataRepository {
	return &fileMetadataRepository{
		PostgresRepository: NewPostgresRepository(db, logger),
	}
}

func (r *fileMetadataRepository) Create(ctx context.Context, metadata *models.FileMetadata) error {
	query := `
		INSERT INTO file_metadata (id, file_name, size, content_type, checksum, storage_path, uploaded_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`

	_, err := r.db.ExecContext(ctx, query,
		metadata.ID,
		metadata.FileName,
		metadata.Size,
		metadata.ContentType,
		metadata.Checksum,
		metadata.StoragePath,
		metadata.UploadedAt,
	)

	return err
}

func (r *fileMetadataRepository) GetByID(ctx context.Context, id string) (*models.FileMetadata, error) {
	query := `
		SELECT id, file_name, size, content_type, checksum, storage_path, uploaded_at
		FROM file_metadata
		WHERE id = $1
	`

	metadata := &models.FileMetadata{}
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&metadata.ID,
		&metadata.FileName,
		&metadata.Size,
		&metadata.ContentType,
		&metadata.Checksum,
		&metadata.StoragePath,
		&metadata.UploadedAt,
	)

	if err == sql.ErrNoRows {
		return nil, nil
	}

	return metadata, err
}

func (r *fileMetadataRepository) Delete(ctx context.Context, id string) error {
	query := `DELETE FROM file_metadata WHERE id = $1`
	_, err := r.db.ExecContext(ctx, query, id)
	return err
}

func (r *fileMetadataRepository) Exists(ctx context.Context, id string) (bool, error) {
	query := `SELECT EXISTS(SELECT 1 FROM file_metadata WHERE id = $1)`
	var exists bool
	err := r.db.QueryRowContext(ctx, query, id).Scan(&exists)
	return exists, err
}
