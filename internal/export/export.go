// Package export writes analyzed tables as downloadable files.
package export

import (
	"encoding/csv"
	"fmt"
	"io"

	"github.com/spacesedan/sentiscope/internal/models"
	"github.com/xuri/excelize/v2"
)

const (
	CSVFileName     = "sentiment_analysis_results.csv"
	CSVContentType  = "text/csv"
	XLSXFileName    = "sentiment_analysis_results.xlsx"
	XLSXContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

	sheetName = "Sheet1"
)

// WriteCSV writes the header and every row, cells as originally read.
func WriteCSV(w io.Writer, t *models.LabeledTable) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(t.Columns); err != nil {
		return fmt.Errorf("[Export] failed to write header: %w", err)
	}

	record := make([]string, len(t.Columns))
	for _, row := range t.Rows {
		for i, v := range row {
			record[i] = v.Text()
		}
		if err := cw.Write(record); err != nil {
			return fmt.Errorf("[Export] failed to write row: %w", err)
		}
	}

	cw.Flush()
	return cw.Error()
}

// WriteXLSX writes the table to the first sheet of a new workbook, keeping
// numbers numeric.
func WriteXLSX(w io.Writer, t *models.LabeledTable) error {
	f := excelize.NewFile()
	defer f.Close()

	sw, err := f.NewStreamWriter(sheetName)
	if err != nil {
		return fmt.Errorf("[Export] failed to open stream writer: %w", err)
	}

	header := make([]interface{}, len(t.Columns))
	for i, c := range t.Columns {
		header[i] = c
	}
	if err := sw.SetRow("A1", header); err != nil {
		return fmt.Errorf("[Export] failed to write header: %w", err)
	}

	for r, row := range t.Rows {
		cells := make([]interface{}, len(row))
		for i, v := range row {
			cells[i] = v.Any()
		}
		cell, err := excelize.CoordinatesToCellName(1, r+2)
		if err != nil {
			return err
		}
		if err := sw.SetRow(cell, cells); err != nil {
			return fmt.Errorf("[Export] failed to write row %d: %w", r+1, err)
		}
	}

	if err := sw.Flush(); err != nil {
		return fmt.Errorf("[Export] failed to flush sheet: %w", err)
	}
	return f.Write(w)
}
