package analyzer

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/amirkasheesh/hse-uploader/internal/fileanalysis/models"
)

// Analyzer решает, дублирует ли новая сдача уже существующую работу.
//
// Сравнение идёт строго по идентификатору сохранённого файла: два разных
// файла с одинаковым содержимым получают разные fileId и совпадением не
// считаются.
type Analyzer interface {
	Analyze(submission *models.Submission, allSubmissions []models.Submission) *models.AnalysisReport
}

type duplicateAnalyzer struct{}

func NewDuplicateAnalyzer() Analyzer {
	return &duplicateAnalyzer{}
}

// Analyze — чистая функция: кроме сгенерированного id отчёта и метки
// времени результат полностью определяется входом. Фильтрация по заданию
// выполняется здесь, вызывающий передаёт полный набор сдач.
func (a *duplicateAnalyzer) Analyze(submission *models.Submission, allSubmissions []models.Submission) *models.AnalysisReport {
	var matchedStudents []string
	for _, prev := range allSubmissions {
		if prev.Assignment == submission.Assignment &&
			prev.FileID == submission.FileID &&
			prev.ID != submission.ID {
			matchedStudents = append(matchedStudents, prev.StudentName)
		}
	}

	isPlagiarized := len(matchedStudents) > 0

	similarity := 0.0
	comment := "No matching files found for this submission"
	if isPlagiarized {
		similarity = 100.0
		comment = fmt.Sprintf("File matches earlier submissions by: %s", strings.Join(matchedStudents, ", "))
	}

	return &models.AnalysisReport{
		ID:            uuid.New().String(),
		SubmissionID:  submission.ID,
		IsPlagiarized: isPlagiarized,
		Similarity:    similarity,
		Comment:       comment,
		CreatedAt:     time.Now().UTC(),
	}
}
