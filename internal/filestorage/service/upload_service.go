package service

import (
	"bytes"
	"context"
	"fmt"
	"mime/multipart"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/amirkasheesh/hse-uploader/internal/filestorage/models"
	"github.com/amirkasheesh/hse-uploader/internal/filestorage/repository"
	"github.com/amirkasheesh/hse-uploader/pkg/hash"
)

const defaultContentType = "application/octet-stream"

type UploadService interface {
	UploadFile(ctx context.Context, fileHeader *multipart.FileHeader) (*models.UploadFileResponse, error)
	UploadFileBytes(ctx context.Context, fileName, contentType string, fileBytes []byte) (*models.UploadFileResponse, error)
}

type uploadService struct {
	metadataRepo repository.FileMetadataRepository
	storageRepo  repository.StorageRepository
	hasher       hash.Hasher
	logger       zerolog.Logger
	config       UploadConfig
}

type UploadConfig struct {
	MaxUploadSize int64
}

func NewUploadService(
	metadataRepo repository.FileMetadataRepository,
	storageRepo repository.StorageRepository,
	hasher hash.Hasher,
	logger zerolog.Logger,
	config UploadConfig,
) UploadService {
	return &uploadService{
		metadataRepo: metadataRepo,
		storageRepo:  storageRepo,
		hasher:       hasher,
		logger:       logger,
		config:       config,
	}
}

func (s *uploadService) UploadFile(ctx context.Context, fileHeader *multipart.FileHeader) (*models.UploadFileResponse, error) {
	file, err := fileHeader.Open()
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	defer file.Close()

	fileBytes := make([]byte, 0, fileHeader.Size)
	buf := bytes.NewBuffer(fileBytes)
	if _, err := buf.ReadFrom(file); err != nil {
		return nil, fmt.Errorf("failed to read file: %w", err)
	}

	contentType := fileHeader.Header.Get("Content-Type")

	return s.UploadFileBytes(ctx, fileHeader.Filename, contentType, buf.Bytes())
}

func (s *uploadService) UploadFileBytes(ctx context.Context, fileName, contentType string, fileBytes []byte) (*models.UploadFileResponse, error) {
	if strings.TrimSpace(fileName) == "" {
		return nil, ErrFileNameRequired
	}
	if len(fileBytes) == 0 {
		return nil, ErrEmptyFile
	}
	if s.config.MaxUploadSize > 0 && int64(len(fileBytes)) > s.config.MaxUploadSize {
		return nil, fmt.Errorf("%w: %d bytes", ErrFileTooLarge, s.config.MaxUploadSize)
	}

	if strings.TrimSpace(contentType) == "" {
		contentType = defaultContentType
	}

	checksum := s.hasher.Calculate(fileBytes)

	// Ключом в хранилище служит сам fileId: один объект на одну загрузку,
	// одинаковое содержимое намеренно не дедуплицируется.
	fileID := uuid.New().String()

	if err := s.storageRepo.UploadObject(
		ctx,
		fileID,
		bytes.NewReader(fileBytes),
		int64(len(fileBytes)),
		contentType,
	); err != nil {
		return nil, fmt.Errorf("failed to upload file to storage: %w", err)
	}

	metadata := &models.FileMetadata{
		ID:          fileID,
		FileName:    fileName,
		Size:        int64(len(fileBytes)),
		ContentType: contentType,
		Checksum:    checksum,
		StoragePath: fileID,
		UploadedAt:  time.Now().UTC(),
	}

	if err := s.metadataRepo.Create(ctx, metadata); err != nil {
		// Компенсирующее удаление, чтобы не копить объекты-сироты.
		if delErr := s.storageRepo.DeleteObject(ctx, fileID); delErr != nil {
			s.logger.Error().Err(delErr).Str("file_id", fileID).Msg("Failed to delete orphaned object")
		}
		return nil, fmt.Errorf("failed to save file metadata: %w", err)
	}

	s.logger.Info().
		Str("file_id", fileID).
		Str("file_name", fileName).
		Str("checksum", checksum).
		Int64("size", metadata.Size).
		Msg("File uploaded successfully")

	return &models.UploadFileResponse{
		FileID:   fileID,
		FileName: fileName,
		Size:     metadata.Size,
	}, nil
}
