package sentiment

import (
	"html"
	"regexp"
	"strings"
	"sync"

	"github.com/jonreiter/govader"
	"github.com/russross/blackfriday/v2"
	"github.com/spacesedan/sentiscope/internal/models"
)

const (
	PositiveThreshold = 0.01
	NegativeThreshold = -0.01
)

var (
	analyzer     *govader.SentimentIntensityAnalyzer
	analyzerOnce sync.Once

	linkPattern = regexp.MustCompile(`\[(.*?)\]\((https?:\/\/[^\s\)]+)\)`)
	urlPattern  = regexp.MustCompile(`https?://\S+|www\.\S+`)
	tagPattern  = regexp.MustCompile(`<[^>]*>`)
)

// Scorer maps text to a compound polarity in [-1, 1].
type Scorer interface {
	Score(text string) float64
}

type ScorerFunc func(text string) float64

func (f ScorerFunc) Score(text string) float64 {
	return f(text)
}

// Vader scores text with the VADER lexicon.
type Vader struct {
	analyzer    *govader.SentimentIntensityAnalyzer
	stripMarkup bool
}

func NewVader(stripMarkup bool) *Vader {
	analyzerOnce.Do(func() {
		analyzer = govader.NewSentimentIntensityAnalyzer()
	})
	return &Vader{analyzer: analyzer, stripMarkup: stripMarkup}
}

func (v *Vader) Score(text string) float64 {
	if v.stripMarkup {
		text = ConvertMarkdownToText(text)
	}
	return v.analyzer.PolarityScores(text).Compound
}

// LabelFor buckets a compound score. Both thresholds are exclusive, so
// exactly ±0.01 is Neutral.
func LabelFor(compound float64) models.Label {
	if compound > PositiveThreshold {
		return models.Positive
	} else if compound < NegativeThreshold {
		return models.Negative
	}
	return models.Neutral
}

func RemoveLinks(input string) string {
	input = linkPattern.ReplaceAllString(input, "$1") // Keep only the text
	return urlPattern.ReplaceAllString(input, "")
}

func ConvertMarkdownToText(input string) string {
	output := blackfriday.Run([]byte(RemoveLinks(input)), blackfriday.WithNoExtensions())
	plainText := html.UnescapeString(tagPattern.ReplaceAllString(string(output), " "))

	return strings.Join(strings.Fields(plainText), " ")
}
