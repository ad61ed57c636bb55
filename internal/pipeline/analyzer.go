package pipeline

import (
	"context"
	"log/slog"
	"time"

	"github.com/spacesedan/sentiscope/internal/models"
	"github.com/spacesedan/sentiscope/internal/sentiment"
)

const DefaultPreviewRows = 5

type Loader interface {
	Load(ctx context.Context, url string) (*models.RawTable, error)
}

type ResultSetter interface {
	Set(table *models.LabeledTable)
}

type Result struct {
	Table   *models.LabeledTable
	Preview *models.LabeledTable
	Counts  models.LabelCounts
	Elapsed time.Duration
}

// Analyzer runs load then classify and publishes the table on success.
type Analyzer struct {
	loader      Loader
	scorer      sentiment.Scorer
	previewRows int
}

func NewAnalyzer(loader Loader, scorer sentiment.Scorer, previewRows int) *Analyzer {
	if previewRows <= 0 {
		previewRows = DefaultPreviewRows
	}
	return &Analyzer{loader: loader, scorer: scorer, previewRows: previewRows}
}

// Run leaves store untouched on any error.
func (a *Analyzer) Run(ctx context.Context, store ResultSetter, url, column string) (*Result, error) {
	slog.Info("[Analyzer] Starting analysis",
		slog.String("url", url),
		slog.String("column", column))
	start := time.Now()

	raw, err := a.loader.Load(ctx, url)
	if err != nil {
		slog.Error("[Analyzer] Failed to load dataset",
			slog.String("error", err.Error()))
		return nil, err
	}

	table, err := Classify(raw, column, a.scorer)
	if err != nil {
		slog.Error("[Analyzer] Failed to classify dataset",
			slog.String("column", column),
			slog.String("error", err.Error()))
		return nil, err
	}

	store.Set(table)

	res := &Result{
		Table:   table,
		Preview: table.Head(a.previewRows),
		Counts:  table.Counts(),
		Elapsed: time.Since(start),
	}

	slog.Info("[Analyzer] Analysis complete",
		slog.Int("rows", table.Len()),
		slog.Int("positive", res.Counts.Positive),
		slog.Int("negative", res.Counts.Negative),
		slog.Int("neutral", res.Counts.Neutral),
		slog.Duration("elapsed", res.Elapsed))

	return res, nil
}
