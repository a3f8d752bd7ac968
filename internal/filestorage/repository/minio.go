package repository

import (
	"context"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"github.com/rs/zerolog"
)

type MinIORepository struct {
	client *minio.Client
	bucket string
	region string
	logger zerolog.Logger

	ensureMu      sync.Mutex
	bucketEnsured bool
}

func NewMinIORepository(endpoint, accessKey, secretKey, bucket, region string, useSSL bool, connectTimeout time.Duration, logger zerolog.Logger) (*MinIORepository, error) {
	client, err := minio.New(endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(accessKey, secretKey, ""),
		Secure: useSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create MinIO client: %w", err)
	}

	repo := &MinIORepository{
		client: client,
		bucket: bucket,
		region: region,
		logger: logger,
	}

	// На старте не валим сервис, если MinIO ещё не готов: бакет будет
	// создан при первом обращении.
	if connectTimeout <= 0 {
		connectTimeout = 30 * time.Second
	}
	ctx, cancel := context.WithTimeout(context.Background(), connectTimeout)
	defer cancel()
	if err := repo.ensureBucket(ctx); err != nil {
		logger.Error().Err(err).
			Str("endpoint", endpoint).
			Str("bucket", bucket).
			Msg("MinIO not ready during startup; will retry on demand")
	}

	logger.Info().
		Str("endpoint", endpoint).
		Str("bucket", bucket).
		Bool("ssl", useSSL).
		Msg("Connected to MinIO")

	return repo, nil
}

func (r *MinIORepository) ensureBucket(ctx context.Context) error {
	r.ensureMu.Lock()
	defer r.ensureMu.Unlock()
	if r.bucketEnsured {
		return nil
	}

	// Если MinIO ещё не отвечает — ретраим до дедлайна ctx.
	backoff := 500 * time.Millisecond
	for {
		if err := ctx.Err(); err != nil {
			return fmt.Errorf("minio not ready: %w", err)
		}

		if _, err := r.client.ListBuckets(ctx); err != nil {
			time.Sleep(backoff)
			continue
		}

		exists, err := r.client.BucketExists(ctx, r.bucket)
		if err != nil {
			time.Sleep(backoff)
			continue
		}

		if !exists {
			if err := r.client.MakeBucket(ctx, r.bucket, minio.MakeBucketOptions{Region: r.region}); err != nil {
				time.Sleep(backoff)
				continue
			}
			r.logger.Info().Str("bucket", r.bucket).Msg("Created new bucket")
		}

		r.bucketEnsured = true
		return nil
	}
}

func (r *MinIORepository) UploadObject(ctx context.Context, key string, content io.Reader, size int64, contentType string) error {
	if err := r.ensureBucket(ctx); err != nil {
		return err
	}

	uploadInfo, err := r.client.PutObject(ctx, r.bucket, key, content, size, minio.PutObjectOptions{
		ContentType: contentType,
	})
	if err != nil {
		return fmt.Errorf("failed to upload object: %w", err)
	}

	r.logger.Debug().
		Str("bucket", r.bucket).
		Str("key", key).
		Str("etag", uploadInfo.ETag).
		Int64("size", size).
		Msg("Object uploaded to MinIO")

	return nil
}

func (r *MinIORepository) DownloadObject(ctx context.Context, key string) (io.ReadCloser, int64, error) {
	if err := r.ensureBucket(ctx); err != nil {
		return nil, 0, err
	}

	objInfo, err := r.client.StatObject(ctx, r.bucket, key, minio.StatObjectOptions{})
	if err != nil {
		if minio.ToErrorResponse(err).Code == "NoSuchKey" {
			return nil, 0, ErrObjectNotFound
		}
		return nil, 0, fmt.Errorf("failed to stat object: %w", err)
	}

	object, err := r.client.GetObject(ctx, r.bucket, key, minio.GetObjectOptions{})
	if err != nil {
		return nil, 0, fmt.Errorf("failed to get object: %w", err)
	}

	r.logger.Debug().
		Str("bucket", r.bucket).
		Str("key", key).
		Int64("size", objInfo.Size).
		Msg("Object downloaded from MinIO")

	return object, objInfo.Size, nil
}

func (r *MinIORepository) DeleteObject(ctx context.Context, key string) error {
	if err := r.ensureBucket(ctx); err != nil {
		return err
	}

	err := r.client.RemoveObject(ctx, r.bucket, key, minio.RemoveObjectOptions{})
	if err != nil {
		return fmt.Errorf("failed to delete object: %w", err)
	}

	r.logger.Debug().
		Str("bucket", r.bucket).
		Str("key", key).
		Msg("Object deleted from MinIO")

	return nil
}
