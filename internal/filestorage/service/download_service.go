package service

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/rs/zerolog"

	"github.com/amirkasheesh/hse-uploader/internal/filestorage/models"
	"github.com/amirkasheesh/hse-uploader/internal/filestorage/repository"
)

type DownloadService interface {
	DownloadFile(ctx context.Context, fileID string) (*models.DownloadFileResponse, error)
	GetFileInfo(ctx context.Context, fileID string) (*models.FileInfoResponse, error)
}

type downloadService struct {
	metadataRepo repository.FileMetadataRepository
	storageRepo  repository.StorageRepository
	logger       zerolog.Logger
}

func NewDownloadService(
	metadataRepo repository.FileMetadataRepository,
	storageRepo repository.StorageRepository,
	logger zerolog.Logger,
) DownloadService {
	return &downloadService{
		metadataRepo: metadataRepo,
		storageRepo:  storageRepo,
		logger:       logger,
	}
}

func (s *downloadService) DownloadFile(ctx context.Context, fileID string) (*models.DownloadFileResponse, error) {
	metadata, err := s.metadataRepo.GetByID(ctx, fileID)
	if err != nil {
		return nil, fmt.Errorf("failed to get file metadata: %w", err)
	}
	if metadata == nil {
		return nil, ErrFileNotFound
	}

	reader, size, err := s.storageRepo.DownloadObject(ctx, metadata.StoragePath)
	if err != nil {
		// Метаданные есть, а объекта нет: хранилище рассинхронизировано.
		if errors.Is(err, repository.ErrObjectNotFound) {
			return nil, ErrFileNotFound
		}
		return nil, fmt.Errorf("failed to download file from storage: %w", err)
	}

	content, err := io.ReadAll(reader)
	reader.Close()
	if err != nil {
		return nil, fmt.Errorf("failed to read file content: %w", err)
	}

	s.logger.Info().
		Str("file_id", fileID).
		Str("file_name", metadata.FileName).
		Int64("size", size).
		Msg("File downloaded")

	return &models.DownloadFileResponse{
		Content:     content,
		FileName:    metadata.FileName,
		ContentType: metadata.ContentType,
		Size:        size,
	}, nil
}

func (s *downloadService) GetFileInfo(ctx context.Context, fileID string) (*models.FileInfoResponse, error) {
	metadata, err := s.metadataRepo.GetByID(ctx, fileID)
	if err != nil {
		return nil, fmt.Errorf("failed to get file metadata: %w", err)
	}
	if metadata == nil {
		return nil, ErrFileNotFound
	}

	return &models.FileInfoResponse{
		FileID:      metadata.ID,
		FileName:    metadata.FileName,
		Size:        metadata.Size,
		ContentType: metadata.ContentType,
		Checksum:    metadata.Checksum,
		UploadedAt:  metadata.UploadedAt,
	}, nil
}
