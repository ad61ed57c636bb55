package app

import (
	"errors"
	"fmt"

	"github.com/spacesedan/sentiscope/internal/models"
	"github.com/spacesedan/sentiscope/internal/viz"
)

type MessageKind string

const (
	KindInfo    MessageKind = "info"
	KindSuccess MessageKind = "success"
	KindWarning MessageKind = "warning"
	KindError   MessageKind = "error"
)

type Message struct {
	Kind MessageKind
	Text string
}

const (
	MsgSuccess    = "✅ Analysis completed successfully! Go to the 'Visualization' tab to see your results."
	MsgNoResults  = "⚠️ No analysis results found! Please go to the 'Analysis' section and run the analysis first."
	MsgEmptyTable = "⚠️ No data: the analyzed dataset has no rows."
	MsgNoValues   = "⚠️ No data: the selected column has no values."
	MsgSheetsHint = "💡 Google Sheets links are converted to their CSV export automatically. Make sure the sheet is shared so anyone with the link can view it."
)

// MessageFor turns any error from the pipeline or renderer into the message
// shown to the user. Fetch and parse failures fall through to the generic form.
func MessageFor(err error) Message {
	var cnf *models.ColumnNotFoundError
	switch {
	case errors.As(err, &cnf):
		return Message{Kind: KindError, Text: fmt.Sprintf("❌ Column '%s' not found in the dataset.", cnf.Name)}
	case errors.Is(err, viz.ErrNoResults):
		return Message{Kind: KindWarning, Text: MsgNoResults}
	case errors.Is(err, viz.ErrEmptyTable):
		return Message{Kind: KindWarning, Text: MsgEmptyTable}
	case errors.Is(err, viz.ErrNoValues):
		return Message{Kind: KindWarning, Text: MsgNoValues}
	}
	return Message{Kind: KindError, Text: "⚠️ Error: " + err.Error()}
}
