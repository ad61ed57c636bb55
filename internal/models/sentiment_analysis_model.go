package models

const SentimentColumn = "Sentiment"

type Label string

const (
	Positive Label = "Positive"
	Negative Label = "Negative"
	Neutral  Label = "Neutral"
)

// Labels in display order.
var Labels = []Label{Positive, Negative, Neutral}

type LabelCounts struct {
	Positive int `json:"positive"`
	Negative int `json:"negative"`
	Neutral  int `json:"neutral"`
}

func (c *LabelCounts) Add(l Label) {
	switch l {
	case Positive:
		c.Positive++
	case Negative:
		c.Negative++
	case Neutral:
		c.Neutral++
	}
}

func (c LabelCounts) Get(l Label) int {
	switch l {
	case Positive:
		return c.Positive
	case Negative:
		return c.Negative
	case Neutral:
		return c.Neutral
	}
	return 0
}

func (c LabelCounts) Total() int {
	return c.Positive + c.Negative + c.Neutral
}
