// Package importer reads subjects from spreadsheets.
//
// The first sheet must start with a header row naming the columns name,
// priority, deadline, estimated_hours and optionally topics, in any order
// and case. Topics are separated by "," or ";". Rows without a name are
// skipped.
package importer

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/kilianp07/studyplan/core/model"
)

const (
	colName     = "name"
	colPriority = "priority"
	colDeadline = "deadline"
	colHours    = "estimated_hours"
	colTopics   = "topics"
)

var required = []string{colName, colPriority, colDeadline, colHours}

// ReadFile imports subjects from the workbook at path.
func ReadFile(path string) ([]model.Subject, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("open workbook: %w", err)
	}
	defer f.Close()
	return readWorkbook(f)
}

// Read imports subjects from a workbook stream.
func Read(r io.Reader) ([]model.Subject, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("open workbook: %w: %w", err, model.ErrInvalid)
	}
	defer f.Close()
	return readWorkbook(f)
}

func readWorkbook(f *excelize.File) ([]model.Subject, error) {
	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("workbook has no sheets: %w", model.ErrInvalid)
	}
	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("read sheet %s: %w", sheets[0], err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("sheet %s is empty: %w", sheets[0], model.ErrInvalid)
	}
	cols, err := headerIndex(rows[0])
	if err != nil {
		return nil, err
	}

	out := []model.Subject{}
	for i, row := range rows[1:] {
		line := i + 2
		cell := func(name string) string {
			idx, ok := cols[name]
			if !ok || idx >= len(row) {
				return ""
			}
			return strings.TrimSpace(row[idx])
		}
		if cell(colName) == "" {
			continue
		}
		s, err := parseRow(cell)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", line, err)
		}
		out = append(out, s)
	}
	return out, nil
}

func headerIndex(header []string) (map[string]int, error) {
	cols := make(map[string]int, len(header))
	for i, h := range header {
		key := strings.ReplaceAll(strings.ToLower(strings.TrimSpace(h)), " ", "_")
		if _, dup := cols[key]; !dup && key != "" {
			cols[key] = i
		}
	}
	for _, r := range required {
		if _, ok := cols[r]; !ok {
			return nil, fmt.Errorf("missing column %q: %w", r, model.ErrInvalid)
		}
	}
	return cols, nil
}

func parseRow(cell func(string) string) (model.Subject, error) {
	s := model.Subject{Name: cell(colName), Topics: splitTopics(cell(colTopics))}

	p, err := strconv.ParseFloat(cell(colPriority), 64)
	if err != nil {
		return s, fmt.Errorf("priority %q: %w", cell(colPriority), model.ErrInvalid)
	}
	s.Priority = int(p)

	if s.Deadline, err = parseDeadline(cell(colDeadline)); err != nil {
		return s, err
	}

	if h := cell(colHours); h != "" {
		if s.EstimatedHours, err = strconv.ParseFloat(h, 64); err != nil {
			return s, fmt.Errorf("estimated_hours %q: %w", h, model.ErrInvalid)
		}
	}
	return s, s.Validate()
}

// dateLayouts are tried after ISO dates; the first is excelize's rendering
// of the built-in short date format.
var dateLayouts = []string{"01-02-06", "1/2/2006", "02.01.2006"}

func parseDeadline(v string) (model.Date, error) {
	if d, err := model.ParseDate(v); err == nil {
		return d, nil
	}
	if serial, err := strconv.ParseFloat(v, 64); err == nil {
		t, err := excelize.ExcelDateToTime(serial, false)
		if err == nil {
			return model.DateOf(t), nil
		}
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, v); err == nil {
			return model.DateOf(t), nil
		}
	}
	return model.Date{}, fmt.Errorf("deadline %q: %w", v, model.ErrInvalid)
}

func splitTopics(v string) []string {
	parts := strings.FieldsFunc(v, func(r rune) bool { return r == ',' || r == ';' })
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
