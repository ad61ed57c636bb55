package models

type Row []Value

// RawTable is a parsed dataset. Columns are unique; every row has exactly
// len(Columns) values.
type RawTable struct {
	Columns []string
	Rows    []Row
}

func (t *RawTable) ColumnIndex(name string) int {
	for i, c := range t.Columns {
		if c == name {
			return i
		}
	}
	return -1
}

// Column returns the index of name or a ColumnNotFoundError.
func (t *RawTable) Column(name string) (int, error) {
	idx := t.ColumnIndex(name)
	if idx < 0 {
		return -1, &ColumnNotFoundError{Name: name}
	}
	return idx, nil
}

func (t *RawTable) Len() int {
	return len(t.Rows)
}

// LabeledTable is a RawTable whose SentimentColumn holds one label per row.
// Labels and Scores are aligned with Rows.
type LabeledTable struct {
	RawTable
	TextColumn     string
	SentimentIndex int
	Labels         []Label
	Scores         []float64
}

func (t *LabeledTable) Counts() LabelCounts {
	var c LabelCounts
	for _, l := range t.Labels {
		c.Add(l)
	}
	return c
}

// Head returns a table holding the first n rows. The rows are shared, not copied.
func (t *LabeledTable) Head(n int) *LabeledTable {
	if n < 0 || n > len(t.Rows) {
		n = len(t.Rows)
	}
	return &LabeledTable{
		RawTable: RawTable{
			Columns: t.Columns,
			Rows:    t.Rows[:n],
		},
		TextColumn:     t.TextColumn,
		SentimentIndex: t.SentimentIndex,
		Labels:         t.Labels[:n],
		Scores:         t.Scores[:n],
	}
}
