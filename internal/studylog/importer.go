package studylog

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/at-ishikawa/studyloop/internal/schedule"
	"github.com/at-ishikawa/studyloop/internal/studyday"
)

// ImportConfig describes where study logs are in a spreadsheet.
type ImportConfig struct {
	FilePath      string
	SheetName     string
	StartRow      int // 1-based
	DateColumn    string
	SubjectColumn string
	MinutesColumn string
	NoteColumn    string
	BookColumn    string
	Kind          schedule.Kind
}

func DefaultImportConfig() ImportConfig {
	return ImportConfig{
		SheetName:     "Sheet1",
		StartRow:      2,
		DateColumn:    "A",
		SubjectColumn: "B",
		MinutesColumn: "C",
		NoteColumn:    "D",
		BookColumn:    "E",
		Kind:          schedule.KindNote,
	}
}

type ImportResult struct {
	TotalProcessed int
	Created        int
	Scheduled      int
	Errors         []string
}

// ImportXLSX back-fills study logs from a spreadsheet. A row that fails is reported in
// the result and does not stop the import.
func (s *Service) ImportXLSX(ctx context.Context, cfg ImportConfig, userID string) (*ImportResult, error) {
	f, err := excelize.OpenFile(cfg.FilePath)
	if err != nil {
		return nil, fmt.Errorf("excelize.OpenFile(%s) > %w", cfg.FilePath, err)
	}
	defer f.Close()

	columns, err := resolveColumns(cfg)
	if err != nil {
		return nil, err
	}

	rows, err := f.GetRows(cfg.SheetName)
	if err != nil {
		return nil, fmt.Errorf("f.GetRows(%s) > %w", cfg.SheetName, err)
	}

	result := &ImportResult{Errors: make([]string, 0)}
	for i, row := range rows {
		if i < cfg.StartRow-1 || isBlank(row) {
			continue
		}
		result.TotalProcessed++

		input, err := s.parseRow(row, columns, cfg.Kind, userID)
		if err == nil {
			var scheduled int
			scheduled, err = s.importRow(ctx, input)
			if err == nil {
				result.Created++
				result.Scheduled += scheduled
				continue
			}
		}
		result.Errors = append(result.Errors, fmt.Sprintf("Row %d: %v", i+1, err))
	}

	slog.Default().Info("imported study logs",
		"file", cfg.FilePath,
		"processed", result.TotalProcessed,
		"created", result.Created,
		"errors", len(result.Errors))
	return result, nil
}

type importColumns struct {
	date, subject, minutes, note, book int
}

func resolveColumns(cfg ImportConfig) (importColumns, error) {
	var cols importColumns
	for _, c := range []struct {
		name   string
		target *int
		opt    bool
	}{
		{cfg.DateColumn, &cols.date, false},
		{cfg.SubjectColumn, &cols.subject, false},
		{cfg.MinutesColumn, &cols.minutes, false},
		{cfg.NoteColumn, &cols.note, true},
		{cfg.BookColumn, &cols.book, true},
	} {
		if c.name == "" && c.opt {
			*c.target = -1
			continue
		}
		n, err := excelize.ColumnNameToNumber(c.name)
		if err != nil {
			return cols, fmt.Errorf("excelize.ColumnNameToNumber(%q) > %w", c.name, err)
		}
		*c.target = n - 1
	}
	return cols, nil
}

func cell(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[idx])
}

func isBlank(row []string) bool {
	for _, v := range row {
		if strings.TrimSpace(v) != "" {
			return false
		}
	}
	return true
}

var importDateLayouts = []string{"2006-01-02", "2006/01/02", "01-02-06"}

func (s *Service) parseRow(row []string, cols importColumns, kind schedule.Kind, userID string) (LogInput, error) {
	rawDate := cell(row, cols.date)
	var (
		day studyday.DayKey
		err error
	)
	for _, layout := range importDateLayouts {
		if day, err = studyday.ParseDayKeyLayout(layout, rawDate); err == nil {
			break
		}
	}
	if err != nil {
		return LogInput{}, fmt.Errorf("invalid date %q", rawDate)
	}

	minutes, err := ParseMinutes(cell(row, cols.minutes))
	if err != nil {
		return LogInput{}, err
	}
	note := cell(row, cols.note)
	if kind == schedule.KindCard && note == "" {
		kind = schedule.KindNote
	}

	return LogInput{
		UserID:          userID,
		Subject:         cell(row, cols.subject),
		ReferenceBookID: cell(row, cols.book),
		Minutes:         minutes,
		StartedAt:       s.clock.Instant(day),
		Note:            note,
		Kind:            kind,
	}, nil
}

func (s *Service) importRow(ctx context.Context, input LogInput) (int, error) {
	_, tasks, err := s.Log(ctx, input)
	if err != nil {
		return 0, err
	}
	return len(tasks), nil
}
