package viz

import (
	"fmt"
	"html/template"

	"github.com/spacesedan/sentiscope/internal/models"
)

const PieTitle = "Sentiment Breakdown (%)"

// Source is anything holding the latest analysis, usually a session's ResultStore.
type Source interface {
	Get() (*models.LabeledTable, bool)
}

type Request struct {
	Mode   Mode
	Column string // histogram only; defaults to the first column
}

type View struct {
	Mode      Mode
	Title     string
	Column    string
	Columns   []string
	Table     template.HTML
	Chart     template.HTML
	Slices    []Slice
	Histogram *Histogram
}

type Options struct {
	MaxBins    int
	MaxBuckets int
}

type Renderer struct {
	charts     ChartRenderer
	maxBins    int
	maxBuckets int
}

func NewRenderer(charts ChartRenderer, opts Options) *Renderer {
	if opts.MaxBins <= 0 {
		opts.MaxBins = DefaultMaxBins
	}
	if opts.MaxBuckets <= 1 {
		opts.MaxBuckets = DefaultMaxBuckets
	}
	return &Renderer{charts: charts, maxBins: opts.MaxBins, maxBuckets: opts.MaxBuckets}
}

// Render builds the view for req. Any mode other than None needs a stored
// result and returns ErrNoResults without touching the charts otherwise.
func (r *Renderer) Render(src Source, req Request) (*View, error) {
	if req.Mode == ModeNone {
		return &View{Mode: ModeNone}, nil
	}

	t, ok := src.Get()
	if !ok {
		return nil, ErrNoResults
	}

	switch req.Mode {
	case ModeTable:
		return &View{
			Mode:    ModeTable,
			Columns: t.Columns,
			Table:   template.HTML(TableHTML(t)),
		}, nil

	case ModePie:
		slices, err := Percentages(t)
		if err != nil {
			return nil, err
		}
		svg, err := r.charts.Pie(PieTitle, slices)
		if err != nil {
			return nil, err
		}
		return &View{
			Mode:    ModePie,
			Title:   PieTitle,
			Columns: t.Columns,
			Slices:  slices,
			Chart:   template.HTML(svg),
			Table:   template.HTML(PercentTableHTML(slices)),
		}, nil

	case ModeHistogram:
		column := req.Column
		if column == "" && len(t.Columns) > 0 {
			column = t.Columns[0]
		}
		hist, err := BuildHistogram(t, column, r.maxBins, r.maxBuckets)
		if err != nil {
			return nil, err
		}
		title := fmt.Sprintf("Distribution of %s by Sentiment", column)
		svg, err := r.charts.Histogram(title, hist)
		if err != nil {
			return nil, err
		}
		return &View{
			Mode:      ModeHistogram,
			Title:     title,
			Column:    column,
			Columns:   t.Columns,
			Histogram: hist,
			Chart:     template.HTML(svg),
			Table:     template.HTML(HistogramTableHTML(hist)),
		}, nil
	}

	return nil, fmt.Errorf("unknown visualization mode %d", int(req.Mode))
}
