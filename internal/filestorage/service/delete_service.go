package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/amirkasheesh/hse-uploader/internal/filestorage/models"
	"github.com/amirkasheesh/hse-uploader/internal/filestorage/repository"
)

type DeleteService interface {
	DeleteFile(ctx context.Context, fileID string) (*models.DeleteFileResponse, error)
}

type deleteService struct {
	metadataRepo repository.FileMetadataRepository
	storageRepo  repository.StorageRepository
	logger       zerolog.Logger
}

func NewDeleteService(
	metadataRepo repository.FileMetadataRepository,
	storageRepo repository.StorageRepository,
	logger zerolog.Logger,
) DeleteService {
	return &deleteService{
		metadataRepo: metadataRepo,
		storageRepo:  storageRepo,
		logger:       logger,
	}
}

func (s *deleteService) DeleteFile(ctx context.Context, fileID string) (*models.DeleteFileResponse, error) {
	metadata, err := s.metadataRepo.GetByID(ctx, fileID)
	if err != nil {
		return nil, fmt.Errorf("failed to get file metadata: %w", err)
	}
	if metadata == nil {
		return nil, ErrFileNotFound
	}

	// Сначала объект, потом метаданные: осиротевшая запись хуже осиротевшего
	// объекта, запись перестанет находиться при повторном удалении.
	if err := s.storageRepo.DeleteObject(ctx, metadata.StoragePath); err != nil && !errors.Is(err, repository.ErrObjectNotFound) {
		return nil, fmt.Errorf("failed to delete file from storage: %w", err)
	}

	if err := s.metadataRepo.Delete(ctx, fileID); err != nil {
		return nil, fmt.Errorf("failed to delete file metadata: %w", err)
	}

	s.logger.Info().
		Str("file_id", fileID).
		Str("file_name", metadata.FileName).
		Msg("File deleted")

	return &models.DeleteFileResponse{
		FileID:  fileID,
		Deleted: true,
	}, nil
}
