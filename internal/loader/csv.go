package loader

import (
	"bufio"
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"

	"github.com/spacesedan/sentiscope/internal/models"
)

var (
	ErrNoColumns = errors.New("no columns to parse from file")

	utf8BOM = []byte{0xEF, 0xBB, 0xBF}
)

// ParseCSV reads a header row followed by data rows. Short rows are padded
// with empty cells; a row wider than the header is an error.
func ParseCSV(r io.Reader) (*models.RawTable, error) {
	br := bufio.NewReader(r)
	if head, err := br.Peek(len(utf8BOM)); err == nil && bytes.Equal(head, utf8BOM) {
		_, _ = br.Discard(len(utf8BOM))
	}

	cr := csv.NewReader(br)
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = true

	header, err := cr.Read()
	if errors.Is(err, io.EOF) {
		return nil, ErrNoColumns
	}
	if err != nil {
		return nil, fmt.Errorf("error tokenizing data: %w", err)
	}

	table := &models.RawTable{Columns: dedupeColumns(header)}

	for {
		record, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("error tokenizing data: %w", err)
		}
		if len(record) > len(table.Columns) {
			line, _ := cr.FieldPos(0)
			return nil, fmt.Errorf("error tokenizing data: expected %d fields in line %d, saw %d",
				len(table.Columns), line, len(record))
		}
		table.Rows = append(table.Rows, buildRow(record, len(table.Columns)))
	}

	return table, nil
}

func buildRow(record []string, width int) models.Row {
	row := make(models.Row, width)
	for i := range row {
		if i < len(record) {
			row[i] = models.ParseValue(record[i])
		} else {
			row[i] = models.Value{Kind: models.KindEmpty}
		}
	}
	return row
}

// dedupeColumns names blank headers "Unnamed: <i>" and suffixes repeats
// with ".1", ".2", ...
func dedupeColumns(header []string) []string {
	cols := make([]string, len(header))
	used := make(map[string]bool, len(header))
	next := make(map[string]int)

	for i, name := range header {
		if name == "" {
			name = "Unnamed: " + strconv.Itoa(i)
		}
		candidate := name
		for used[candidate] {
			next[name]++
			candidate = name + "." + strconv.Itoa(next[name])
		}
		used[candidate] = true
		cols[i] = candidate
	}
	return cols
}
