package export

import (
	"bytes"
	"testing"

	"github.com/spacesedan/sentiscope/internal/loader"
	"github.com/spacesedan/sentiscope/internal/models"
	"github.com/spacesedan/sentiscope/internal/pipeline"
	"github.com/spacesedan/sentiscope/internal/sentiment"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func analyzed(t *testing.T, csvText string) *models.LabeledTable {
	t.Helper()
	raw, err := loader.ParseCSV(bytes.NewBufferString(csvText))
	require.NoError(t, err)
	table, err := pipeline.Classify(raw, "review", sentiment.NewVader(false))
	require.NoError(t, err)
	return table
}

func TestWriteCSV(t *testing.T) {
	table := analyzed(t, "id,review\n1,I love it\n2,\"Bad, really bad\"\n3,\n")

	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, table))

	assert.Equal(t,
		"id,review,Sentiment\n1,I love it,Positive\n2,\"Bad, really bad\",Negative\n3,,Neutral\n",
		buf.String())
}

func TestWriteCSV_ReadsBack(t *testing.T) {
	table := analyzed(t, "review,stars\nGreat,5\nAwful,1\n")

	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, table))

	back, err := loader.ParseCSV(&buf)
	require.NoError(t, err)
	assert.Equal(t, table.Columns, back.Columns)
	assert.Equal(t, table.Len(), back.Len())
}

func TestWriteXLSX(t *testing.T) {
	table := analyzed(t, "review,stars\nGreat,5\nAwful,1.5\n")

	var buf bytes.Buffer
	require.NoError(t, WriteXLSX(&buf, table))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows("Sheet1")
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, []string{"review", "stars", "Sentiment"}, rows[0])
	assert.Equal(t, []string{"Great", "5", "Positive"}, rows[1])

	cellType, err := f.GetCellType("Sheet1", "B3")
	require.NoError(t, err)
	assert.Contains(t, []excelize.CellType{excelize.CellTypeUnset, excelize.CellTypeNumber}, cellType, "numbers stay numeric")
}
