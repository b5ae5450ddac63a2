package exporter

import (
	"encoding/csv"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/tonechas/moodle-workshop-group-grades/pkg/contracts/domain"
)

// gradeFileHeader matches the column layout the grading system's
// import expects.
var gradeFileHeader = []string{"Identifier", "Name", "Submission", "Assessment", "Overall"}

// GradeWriter writes grade import files.
type GradeWriter struct {
	logger *slog.Logger
	// bomPrefix adds a UTF-8 BOM so spreadsheet tools pick the right
	// encoding for accented names.
	bomPrefix bool
}

// NewGradeWriter creates a grade file writer.
func NewGradeWriter(logger *slog.Logger) *GradeWriter {
	if logger == nil {
		logger = slog.Default()
	}
	return &GradeWriter{logger: logger, bomPrefix: true}
}

// WriteFile writes the grade rows to a CSV file at path, creating
// parent directories as needed.
func (w *GradeWriter) WriteFile(path string, rows []domain.GradeRow) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}

	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create file: %w", err)
	}

	w.logger.Info("writing grade import file",
		slog.String("path", path),
		slog.Int("rows", len(rows)))

	if err := w.Write(file, rows); err != nil {
		file.Close()
		return err
	}
	return file.Close()
}

// Write writes the grade rows as CSV to out.
func (w *GradeWriter) Write(out io.Writer, rows []domain.GradeRow) error {
	if w.bomPrefix {
		if _, err := out.Write([]byte{0xEF, 0xBB, 0xBF}); err != nil {
			return fmt.Errorf("failed to write BOM: %w", err)
		}
	}

	writer := csv.NewWriter(out)
	if err := writer.Write(gradeFileHeader); err != nil {
		return fmt.Errorf("failed to write headers: %w", err)
	}

	for i, row := range rows {
		record := []string{
			row.Participant.Identifier(),
			row.Participant.FullName(),
			formatGrade(row.Submission),
			formatGrade(row.Assessment),
			formatGrade(row.Overall),
		}
		if err := writer.Write(record); err != nil {
			return fmt.Errorf("failed to write record %d: %w", i, err)
		}
	}

	writer.Flush()
	return writer.Error()
}
