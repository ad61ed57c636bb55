package viz

import (
	"fmt"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/spacesedan/sentiscope/internal/models"
)

func newHTMLWriter(class string) table.Writer {
	tw := table.NewWriter()
	tw.Style().Format.Header = text.FormatDefault
	tw.Style().HTML = table.HTMLOptions{
		CSSClass:    class,
		EmptyColumn: "&nbsp;",
		EscapeText:  true,
		Newline:     "<br/>",
	}
	return tw
}

// TableHTML renders every row of t as an HTML table. Cell text is escaped.
func TableHTML(t *models.LabeledTable) string {
	tw := newHTMLWriter("data-table")

	header := make(table.Row, len(t.Columns))
	for i, c := range t.Columns {
		header[i] = c
	}
	tw.AppendHeader(header)

	for _, row := range t.Rows {
		r := make(table.Row, len(row))
		for i, v := range row {
			r[i] = v.Text()
		}
		tw.AppendRow(r)
	}

	return tw.RenderHTML()
}

// PercentTableHTML lists count and share per label.
func PercentTableHTML(slices []Slice) string {
	tw := newHTMLWriter("summary-table")
	tw.AppendHeader(table.Row{"Sentiment", "Count", "Percent"})
	for _, s := range slices {
		tw.AppendRow(table.Row{string(s.Label), s.Count, fmt.Sprintf("%.1f%%", s.Percent)})
	}
	return tw.RenderHTML()
}

// HistogramTableHTML lists per-label counts for each bucket.
func HistogramTableHTML(h *Histogram) string {
	tw := newHTMLWriter("summary-table")

	header := table.Row{h.Column}
	for _, l := range models.Labels {
		header = append(header, string(l))
	}
	tw.AppendHeader(header)

	for _, b := range h.Buckets {
		row := table.Row{b.Name}
		for _, l := range models.Labels {
			row = append(row, b.Counts.Get(l))
		}
		tw.AppendRow(row)
	}
	return tw.RenderHTML()
}
