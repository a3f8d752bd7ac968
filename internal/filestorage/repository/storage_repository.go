package repository

import (
	"context"
	"errors"
	"io"
)

// ErrObjectNotFound возвращается, когда объекта нет в хранилище.
var ErrObjectNotFound = errors.New("object not found")

type StorageRepository interface {
	UploadObject(ctx context.Context, key string, content io.Reader, size int64, contentType string) error
	DownloadObject(ctx context.Context, key string) (io.ReadCloser, int64, error)
	DeleteObject(ctx context.Context, key string) error
}
