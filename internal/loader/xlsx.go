package loader

import (
	"fmt"
	"io"

	"github.com/spacesedan/sentiscope/internal/models"
	"github.com/xuri/excelize/v2"
)

// ParseXLSX reads the first sheet of a workbook. The first non-blank row is
// the header; rows wider than it widen the table with unnamed columns.
func ParseXLSX(r io.Reader) (*models.RawTable, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("invalid xlsx format: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, ErrNoColumns
	}

	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("failed to read sheet %q: %w", sheets[0], err)
	}

	start := 0
	for start < len(rows) && isBlank(rows[start]) {
		start++
	}
	if start == len(rows) {
		return nil, ErrNoColumns
	}

	width := 0
	for _, row := range rows[start:] {
		if len(row) > width {
			width = len(row)
		}
	}

	header := make([]string, width)
	copy(header, rows[start])

	table := &models.RawTable{Columns: dedupeColumns(header)}
	for _, row := range rows[start+1:] {
		if isBlank(row) {
			continue
		}
		table.Rows = append(table.Rows, buildRow(row, width))
	}

	return table, nil
}

func isBlank(row []string) bool {
	for _, cell := range row {
		if cell != "" {
			return false
		}
	}
	return true
}
