package service

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
)

type fakeStorageClient struct {
	content map[string][]byte
	err     error
}

func (f *fakeStorageClient) GetFileContent(ctx context.Context, fileID string) ([]byte, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.content[fileID], nil
}

func TestRenderWordCloud_InvalidSubmissionID(t *testing.T) {
	svc := NewWordCloudService(&fakeSubmissionRepo{}, &fakeStorageClient{}, zerolog.Nop())

	for _, id := range []string{"", "   ", "not-a-uuid"} {
		_, err := svc.RenderSubmissionWordCloudPNG(context.Background(), id, WordCloudOptions{})
		require.ErrorIs(t, err, ErrInvalidSubmissionID, "id=%q", id)
	}
}

func TestRenderWordCloud_SubmissionNotFound(t *testing.T) {
	svc := NewWordCloudService(&fakeSubmissionRepo{}, &fakeStorageClient{}, zerolog.Nop())

	_, err := svc.RenderSubmissionWordCloudPNG(context.Background(), uuid.New().String(), WordCloudOptions{})

	require.ErrorIs(t, err, ErrSubmissionNotFound)
}

func TestRenderWordCloud_StorageFailure(t *testing.T) {
	subRepo := &fakeSubmissionRepo{}
	submission := seedSubmission(subRepo, "Ivan Petrov", "hw1", "file-1")

	svc := NewWordCloudService(subRepo, &fakeStorageClient{err: errors.New("storage down")}, zerolog.Nop())

	_, err := svc.RenderSubmissionWordCloudPNG(context.Background(), submission.ID, WordCloudOptions{})

	require.ErrorIs(t, err, ErrFileStorageError)
}

func TestRenderWordCloud_EmptyFileContent(t *testing.T) {
	subRepo := &fakeSubmissionRepo{}
	submission := seedSubmission(subRepo, "Ivan Petrov", "hw1", "file-1")

	storage := &fakeStorageClient{content: map[string][]byte{"file-1": []byte("   \n\t ")}}
	svc := NewWordCloudService(subRepo, storage, zerolog.Nop())

	_, err := svc.RenderSubmissionWordCloudPNG(context.Background(), submission.ID, WordCloudOptions{})

	require.ErrorIs(t, err, ErrFileContentEmpty)
}
