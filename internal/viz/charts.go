package viz

import (
	"bytes"
	"errors"
	"fmt"
	"html"
	"math"

	"github.com/spacesedan/sentiscope/internal/models"
	chart "github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"
)

var ErrNoValues = errors.New("column has no values to plot")

// ChartRenderer draws charts as standalone SVG documents.
type ChartRenderer interface {
	Pie(title string, slices []Slice) ([]byte, error)
	Histogram(title string, h *Histogram) ([]byte, error)
}

var labelColors = map[models.Label]string{
	models.Positive: "2ca02c",
	models.Negative: "d62728",
	models.Neutral:  "7f7f7f",
}

// LabelColor is the hex color (without '#') used for a label everywhere.
func LabelColor(l models.Label) string {
	if c, ok := labelColors[l]; ok {
		return c
	}
	return "1f77b4"
}

func fill(l models.Label) drawing.Color {
	return drawing.ColorFromHex(LabelColor(l))
}

// SVGCharts renders with go-chart.
type SVGCharts struct {
	Width  int
	Height int
}

func (c SVGCharts) size() (int, int) {
	w, h := c.Width, c.Height
	if w <= 0 {
		w = 640
	}
	if h <= 0 {
		h = 480
	}
	return w, h
}

func (c SVGCharts) Pie(title string, slices []Slice) ([]byte, error) {
	values := make([]chart.Value, 0, len(slices))
	for _, s := range slices {
		if s.Count == 0 {
			continue
		}
		values = append(values, chart.Value{
			Label: fmt.Sprintf("%s %.1f%%", s.Label, s.Percent),
			Value: s.Percent,
			Style: chart.Style{
				FillColor:   fill(s.Label),
				StrokeColor: chart.ColorWhite,
				StrokeWidth: 2,
			},
		})
	}
	if len(values) == 0 {
		return nil, ErrEmptyTable
	}

	w, h := c.size()
	pie := chart.PieChart{
		Title:  html.EscapeString(title),
		Width:  w,
		Height: h,
		Values: values,
	}

	var buf bytes.Buffer
	if err := pie.Render(chart.SVG, &buf); err != nil {
		return nil, fmt.Errorf("[Charts] failed to render pie: %w", err)
	}
	return buf.Bytes(), nil
}

// Histogram draws one bar per bucket and label, colored by label. Empty
// combinations are left out. go-chart writes SVG text verbatim, so bucket
// names and the title are escaped here.
func (c SVGCharts) Histogram(title string, hist *Histogram) ([]byte, error) {
	const barWidth, barSpacing = 28, 8

	var bars []chart.Value
	maxCount := 0
	for _, b := range hist.Buckets {
		for _, l := range models.Labels {
			n := b.Counts.Get(l)
			if n == 0 {
				continue
			}
			if n > maxCount {
				maxCount = n
			}
			bars = append(bars, chart.Value{
				Label: html.EscapeString(b.Name + " / " + string(l)),
				Value: float64(n),
				Style: chart.Style{
					FillColor:   fill(l),
					StrokeColor: fill(l),
					StrokeWidth: 1,
				},
			})
		}
	}
	if len(bars) == 0 {
		return nil, ErrNoValues
	}

	w, h := c.size()
	if need := 80 + len(bars)*(barWidth+barSpacing); need > w {
		w = need
	}

	bc := chart.BarChart{
		Title:      html.EscapeString(title),
		Width:      w,
		Height:     h,
		BarWidth:   barWidth,
		BarSpacing: barSpacing,
		Background: chart.Style{
			Padding: chart.Box{Top: 40, Left: 10, Right: 10, Bottom: 120},
		},
		XAxis: chart.Style{
			TextRotationDegrees: 45,
		},
		YAxis: chart.YAxis{
			Range: &chart.ContinuousRange{
				Min: 0,
				Max: math.Ceil(float64(maxCount) * 1.1),
			},
		},
		Bars: bars,
	}

	var buf bytes.Buffer
	if err := bc.Render(chart.SVG, &buf); err != nil {
		return nil, fmt.Errorf("[Charts] failed to render histogram: %w", err)
	}
	return buf.Bytes(), nil
}
