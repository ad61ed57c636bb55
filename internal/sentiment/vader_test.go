package sentiment

import (
	"testing"

	"github.com/spacesedan/sentiscope/internal/models"
	"github.com/stretchr/testify/assert"
)

func TestLabelFor(t *testing.T) {
	tests := []struct {
		name     string
		compound float64
		want     models.Label
	}{
		{"upper threshold is neutral", 0.01, models.Neutral},
		{"lower threshold is neutral", -0.01, models.Neutral},
		{"just above upper threshold", 0.0100001, models.Positive},
		{"just below lower threshold", -0.0100001, models.Negative},
		{"zero", 0, models.Neutral},
		{"strong positive", 0.8, models.Positive},
		{"strong negative", -0.9, models.Negative},
		{"max", 1, models.Positive},
		{"min", -1, models.Negative},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, LabelFor(tt.compound))
		})
	}
}

func TestVaderScore(t *testing.T) {
	v := NewVader(false)

	tests := []struct {
		name string
		text string
		want models.Label
	}{
		{"positive review", "I love this product", models.Positive},
		{"negative review", "This is terrible", models.Negative},
		{"neutral statement", "The package arrived on Tuesday", models.Neutral},
		{"empty text", "", models.Neutral},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			score := v.Score(tt.text)
			assert.GreaterOrEqual(t, score, -1.0)
			assert.LessOrEqual(t, score, 1.0)
			assert.Equal(t, tt.want, LabelFor(score))
		})
	}
}

func TestVaderDeterministic(t *testing.T) {
	v := NewVader(false)
	text := "Great service, but the food was cold."
	assert.Equal(t, v.Score(text), v.Score(text))
}

func TestConvertMarkdownToText(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"link keeps text", "[great](https://example.com) **stuff**", "great stuff"},
		{"bare url removed", "see https://example.com/x now", "see now"},
		{"entities unescaped", "fish & chips", "fish & chips"},
		{"plain text untouched", "just words", "just words"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ConvertMarkdownToText(tt.input))
		})
	}
}

func TestScorerFunc(t *testing.T) {
	var s Scorer = ScorerFunc(func(string) float64 { return 0.5 })
	assert.Equal(t, 0.5, s.Score("anything"))
}
