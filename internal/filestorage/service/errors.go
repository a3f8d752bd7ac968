package service

import "errors"

// Типизированные ошибки для корректного маппинга на HTTP-коды в delivery-слое.
var (
	ErrFileNameRequired = errors.New("file name must not be empty")
	ErrEmptyFile        = errors.New("file content must not be empty")
	ErrFileTooLarge     = errors.New("file size exceeds limit")
	ErrFileNotFound     = errors.New("file not found")
)
