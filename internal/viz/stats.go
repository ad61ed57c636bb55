package viz

import (
	"errors"
	"math"
	"sort"
	"strconv"

	"github.com/spacesedan/sentiscope/internal/models"
)

var (
	ErrNoResults  = errors.New("no analysis results available")
	ErrEmptyTable = errors.New("analyzed dataset has no rows")
)

const (
	DefaultMaxBins    = 20
	DefaultMaxBuckets = 50
	OtherBucket       = "(other)"
)

type Slice struct {
	Label   models.Label
	Count   int
	Percent float64
}

// Percentages returns the share of each label in display order. The shares
// sum to 100. An empty table returns ErrEmptyTable.
func Percentages(t *models.LabeledTable) ([]Slice, error) {
	counts := t.Counts()
	total := counts.Total()
	if total == 0 {
		return nil, ErrEmptyTable
	}

	slices := make([]Slice, 0, len(models.Labels))
	for _, l := range models.Labels {
		n := counts.Get(l)
		slices = append(slices, Slice{
			Label:   l,
			Count:   n,
			Percent: 100 * float64(n) / float64(total),
		})
	}
	return slices, nil
}

type Bucket struct {
	Name   string
	Counts models.LabelCounts
}

type Histogram struct {
	Column  string
	Binned  bool
	Buckets []Bucket
	Skipped int // rows with an empty cell
}

// BuildHistogram counts rows per label for each value of column. Numeric
// columns with more than maxBins distinct values are split into maxBins
// equal-width bins. Categorical columns keep first-appearance order and fold
// everything past maxBuckets-1 categories into OtherBucket.
func BuildHistogram(t *models.LabeledTable, column string, maxBins, maxBuckets int) (*Histogram, error) {
	idx, err := t.Column(column)
	if err != nil {
		return nil, err
	}
	if maxBins <= 0 {
		maxBins = DefaultMaxBins
	}
	if maxBuckets <= 1 {
		maxBuckets = DefaultMaxBuckets
	}

	h := &Histogram{Column: column}
	numeric := true
	distinct := make(map[string]struct{})
	for _, row := range t.Rows {
		v := row[idx]
		if v.IsEmpty() {
			continue
		}
		if !v.IsNumeric() {
			numeric = false
		}
		distinct[v.Raw] = struct{}{}
	}

	if numeric && len(distinct) > maxBins {
		binNumeric(h, t, idx, maxBins)
		return h, nil
	}

	countCategories(h, t, idx, numeric, maxBuckets)
	return h, nil
}

func binNumeric(h *Histogram, t *models.LabeledTable, idx, bins int) {
	h.Binned = true
	lo, hi := math.Inf(1), math.Inf(-1)
	for _, row := range t.Rows {
		if v := row[idx]; !v.IsEmpty() {
			lo = math.Min(lo, v.Float)
			hi = math.Max(hi, v.Float)
		}
	}

	// hi-lo can overflow for values near ±MaxFloat64
	width := hi/float64(bins) - lo/float64(bins)
	h.Buckets = make([]Bucket, bins)
	for i := range h.Buckets {
		from := lo + float64(i)*width
		to := lo + float64(i+1)*width
		closer := ")"
		if i == bins-1 {
			to = hi
			closer = "]"
		}
		h.Buckets[i].Name = "[" + formatEdge(from) + ", " + formatEdge(to) + closer
	}

	for i, row := range t.Rows {
		v := row[idx]
		if v.IsEmpty() {
			h.Skipped++
			continue
		}
		b := 0
		if width > 0 {
			pos := v.Float/width - lo/width
			switch {
			case math.IsNaN(pos) || pos < 0:
				b = 0
			case pos >= float64(bins):
				b = bins - 1
			default:
				b = int(pos)
			}
		}
		h.Buckets[b].Counts.Add(t.Labels[i])
	}
}

func countCategories(h *Histogram, t *models.LabeledTable, idx int, numeric bool, maxBuckets int) {
	order := make([]string, 0)
	values := make(map[string]float64)
	counts := make(map[string]*models.LabelCounts)

	for i, row := range t.Rows {
		v := row[idx]
		if v.IsEmpty() {
			h.Skipped++
			continue
		}
		c, ok := counts[v.Raw]
		if !ok {
			c = &models.LabelCounts{}
			counts[v.Raw] = c
			order = append(order, v.Raw)
			values[v.Raw] = v.Float
		}
		c.Add(t.Labels[i])
	}

	if numeric {
		sort.SliceStable(order, func(a, b int) bool {
			return values[order[a]] < values[order[b]]
		})
	}

	for i, name := range order {
		if i >= maxBuckets-1 && len(order) > maxBuckets {
			if i == maxBuckets-1 {
				h.Buckets = append(h.Buckets, Bucket{Name: OtherBucket})
			}
			other := &h.Buckets[len(h.Buckets)-1].Counts
			other.Positive += counts[name].Positive
			other.Negative += counts[name].Negative
			other.Neutral += counts[name].Neutral
			continue
		}
		h.Buckets = append(h.Buckets, Bucket{Name: name, Counts: *counts[name]})
	}
}

func formatEdge(f float64) string {
	return strconv.FormatFloat(f, 'g', 4, 64)
}
