package service

import "errors"

// Ошибки генерации облака слов.
var (
	ErrInvalidSubmissionID = errors.New("invalid submission id")
	ErrFileContentEmpty    = errors.New("file content is empty")

	// Ошибки внешних зависимостей.
	ErrFileStorageError = errors.New("file storage error")
	ErrQuickChartError  = errors.New("quickchart error")
)
