package files

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"

	grerrors "github.com/tonechas/moodle-workshop-group-grades/internal/errors"
	"github.com/tonechas/moodle-workshop-group-grades/internal/roster"
)

// rosterColumns holds the resolved cell index of each roster column.
// The ID number and groups columns are optional (-1 when absent).
type rosterColumns struct {
	first  int
	last   int
	id     int
	email  int
	groups int
}

// ReadRoster reads the participant roster from a CSV or XLSX export.
// It returns the usable rows plus the per-row problems for rows that
// had to be skipped (surfaced in the run summary, not fatal).
func ReadRoster(path string) ([]roster.Row, []*grerrors.GradingError, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv":
		return ReadRosterCSV(path)
	case ".xlsx":
		return ReadRosterXLSX(path)
	}
	return nil, nil, grerrors.NewInvalidInputError(
		fmt.Sprintf("unsupported roster format %q", filepath.Ext(path)), nil)
}

// ReadRosterCSV reads the platform's CSV participant export.
func ReadRosterCSV(path string) ([]roster.Row, []*grerrors.GradingError, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open roster: %w", err)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	// Export rows can have trailing short records; length is checked
	// per row instead.
	reader.FieldsPerRecord = -1

	var rows [][]string
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, nil, grerrors.NewInvalidInputError(
				fmt.Sprintf("unreadable roster CSV %s", path), err)
		}
		rows = append(rows, record)
	}
	return rowsToRoster(rows)
}

// ReadRosterXLSX reads the platform's XLSX participant export. The
// participant sheet is recognized by its header row, whichever sheet
// it is.
func ReadRosterXLSX(path string) ([]roster.Row, []*grerrors.GradingError, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open roster: %w", err)
	}
	defer f.Close()

	for _, sheet := range f.GetSheetList() {
		rows, err := f.GetRows(sheet)
		if err != nil || len(rows) == 0 {
			continue
		}
		if _, ok := mapRosterColumns(rows[0]); ok {
			return rowsToRoster(rows)
		}
	}
	return nil, nil, grerrors.NewInvalidInputError(
		fmt.Sprintf("no participant sheet found in %s", path), nil)
}

// rowsToRoster converts raw tabular rows (header first) into roster
// rows, skipping and reporting rows that lack the identifying fields.
func rowsToRoster(rows [][]string) ([]roster.Row, []*grerrors.GradingError, error) {
	if len(rows) == 0 {
		return nil, nil, grerrors.NewInvalidInputError("empty roster file", nil)
	}

	cols, ok := mapRosterColumns(rows[0])
	if !ok {
		return nil, nil, grerrors.NewInvalidInputError(
			"roster header row does not name the first name, last name and email columns", nil)
	}

	var (
		out      []roster.Row
		problems []*grerrors.GradingError
	)
	for i, record := range rows[1:] {
		if isBlank(record) {
			continue
		}
		row := roster.Row{
			FirstName: cellAt(record, cols.first),
			LastName:  cellAt(record, cols.last),
			IDNumber:  cellAt(record, cols.id),
			Email:     cellAt(record, cols.email),
			Groups:    cellAt(record, cols.groups),
		}
		if row.FirstName == "" || row.LastName == "" || row.Email == "" {
			problems = append(problems, grerrors.NewInvalidInputError(
				fmt.Sprintf("incomplete participant row %d: %v", i+2, record), nil))
			continue
		}
		out = append(out, row)
	}
	return out, problems, nil
}

// mapRosterColumns resolves roster column roles from the header row.
// Header wording varies by platform version ("Last name" vs
// "Surname"), so columns are matched by keywords.
func mapRosterColumns(header []string) (rosterColumns, bool) {
	cols := rosterColumns{first: -1, last: -1, id: -1, email: -1, groups: -1}
	for i, cell := range header {
		text := strings.ToLower(strings.TrimSpace(stripBOM(cell)))
		switch {
		case strings.Contains(text, "first") && strings.Contains(text, "name"):
			cols.first = i
		case strings.Contains(text, "surname") || (strings.Contains(text, "last") && strings.Contains(text, "name")):
			cols.last = i
		case strings.Contains(text, "id"):
			cols.id = i
		case strings.Contains(text, "email"):
			cols.email = i
		case strings.Contains(text, "group"):
			cols.groups = i
		}
	}
	return cols, cols.first >= 0 && cols.last >= 0 && cols.email >= 0
}

// cellAt returns the trimmed cell at index i, or "" when the column is
// absent or the record is short.
func cellAt(record []string, i int) string {
	if i < 0 || i >= len(record) {
		return ""
	}
	return strings.TrimSpace(record[i])
}

func isBlank(record []string) bool {
	for _, cell := range record {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}

func stripBOM(s string) string {
	return strings.TrimPrefix(s, "\ufeff")
}
