// Package pipeline scores a text column and labels every row.
package pipeline

import (
	"errors"
	"fmt"

	"github.com/spacesedan/sentiscope/internal/models"
	"github.com/spacesedan/sentiscope/internal/sentiment"
)

var ErrScoring = errors.New("scoring failed")

type ScoringError struct {
	Row   int
	Cause interface{}
}

func (e *ScoringError) Error() string {
	return fmt.Sprintf("scoring row %d: %v", e.Row, e.Cause)
}

func (e *ScoringError) Is(target error) bool {
	return target == ErrScoring
}

// Classify labels every row of raw by the compound score of column. A
// pre-existing Sentiment column is overwritten in place, otherwise one is
// appended. raw is not modified.
func Classify(raw *models.RawTable, column string, scorer sentiment.Scorer) (*models.LabeledTable, error) {
	textIdx, err := raw.Column(column)
	if err != nil {
		return nil, err
	}

	columns := append([]string(nil), raw.Columns...)
	sentimentIdx := raw.ColumnIndex(models.SentimentColumn)
	if sentimentIdx < 0 {
		sentimentIdx = len(columns)
		columns = append(columns, models.SentimentColumn)
	}

	out := &models.LabeledTable{
		RawTable: models.RawTable{
			Columns: columns,
			Rows:    make([]models.Row, len(raw.Rows)),
		},
		TextColumn:     column,
		SentimentIndex: sentimentIdx,
		Labels:         make([]models.Label, len(raw.Rows)),
		Scores:         make([]float64, len(raw.Rows)),
	}

	for i, src := range raw.Rows {
		compound, err := score(scorer, i, src[textIdx].Text())
		if err != nil {
			return nil, err
		}
		label := sentiment.LabelFor(compound)

		row := make(models.Row, len(columns))
		copy(row, src)
		row[sentimentIdx] = models.StringValue(string(label))

		out.Rows[i] = row
		out.Labels[i] = label
		out.Scores[i] = compound
	}

	return out, nil
}

func score(scorer sentiment.Scorer, row int, text string) (compound float64, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = &ScoringError{Row: row, Cause: r}
		}
	}()
	return scorer.Score(text), nil
}
