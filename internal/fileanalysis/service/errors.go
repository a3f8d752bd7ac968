package service

import "errors"

// Типизированные ошибки для корректного маппинга на HTTP-коды в delivery-слое.
var (
	// Ошибки валидации входных данных, проверяются до любой записи.
	ErrStudentNameRequired = errors.New("studentName must not be empty")
	ErrAssignmentRequired  = errors.New("assignment must not be empty")
	ErrFileIDRequired      = errors.New("fileId must not be empty")

	ErrSubmissionNotFound = errors.New("submission not found")
	ErrReportNotFound     = errors.New("report not found for this submission")
)

// IsValidationError сообщает, относится ли ошибка к отказу валидации запроса.
func IsValidationError(err error) bool {
	return errors.Is(err, ErrStudentNameRequired) ||
		errors.Is(err, ErrAssignmentRequired) ||
		errors.Is(err, ErrFileIDRequired)
}
