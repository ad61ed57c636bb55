package web

import (
	"html"
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/spacesedan/sentiscope/internal/app"
	"github.com/spacesedan/sentiscope/internal/clients"
	"github.com/spacesedan/sentiscope/internal/export"
	"github.com/spacesedan/sentiscope/internal/loader"
	"github.com/spacesedan/sentiscope/internal/pipeline"
	"github.com/spacesedan/sentiscope/internal/sentiment"
	"github.com/spacesedan/sentiscope/internal/session"
	"github.com/spacesedan/sentiscope/internal/testutil"
	"github.com/spacesedan/sentiscope/internal/viz"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const reviewsCSV = "id,review\n1,great product\n2,terrible service\n3,it arrived\n"

type harness struct {
	dashboard *httptest.Server
	data      *httptest.Server
	client    *http.Client
	sessions  *session.Manager
}

func newHarness(t *testing.T) *harness {
	t.Helper()

	data := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/reviews.csv" {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "text/csv")
		_, _ = io.WriteString(w, reviewsCSV)
	}))
	t.Cleanup(data.Close)

	scorer := sentiment.ScorerFunc(func(text string) float64 {
		return map[string]float64{"great product": 0.6, "terrible service": -0.5}[text]
	})
	fetcher := clients.NewSheetsClient(clients.SheetsClientConfig{
		Timeout:        2 * time.Second,
		MaxRetries:     1,
		InitialBackoff: time.Millisecond,
	})
	sessions := session.NewManager(time.Hour)

	srv := NewServer(Config{
		Addr:          "127.0.0.1:0",
		SessionSecret: "0123456789abcdef0123456789abcdef",
		App: app.New(
			pipeline.NewAnalyzer(loader.New(fetcher), scorer, 5),
			viz.NewRenderer(viz.SVGCharts{}, viz.Options{}),
		),
		Sessions: sessions,
		Logger:   testutil.NewTestLogger(t),
	})
	dashboard := httptest.NewServer(srv.Routes())
	t.Cleanup(dashboard.Close)

	jar, err := cookiejar.New(nil)
	require.NoError(t, err)

	return &harness{
		dashboard: dashboard,
		data:      data,
		client:    &http.Client{Jar: jar},
		sessions:  sessions,
	}
}

func (h *harness) get(t *testing.T, path string) (*http.Response, string) {
	t.Helper()
	resp, err := h.client.Get(h.dashboard.URL + path)
	require.NoError(t, err)
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp, string(body)
}

func (h *harness) analyze(t *testing.T, dataset, column string) string {
	t.Helper()
	resp, err := h.client.PostForm(h.dashboard.URL+"/analysis", url.Values{
		"url":    {dataset},
		"column": {column},
	})
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return string(body)
}

func TestHomePage(t *testing.T) {
	h := newHarness(t)

	resp, body := h.get(t, "/")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, body, "Welcome Home!")
	assert.Contains(t, body, `<main id="ui-content">`)
	assert.Equal(t, 1, h.sessions.Len())
}

func TestSessionCookieIsReused(t *testing.T) {
	h := newHarness(t)

	h.get(t, "/")
	h.get(t, "/analysis")
	h.get(t, "/visualization")

	assert.Equal(t, 1, h.sessions.Len())
}

func TestVisualizationPage_NoResults(t *testing.T) {
	h := newHarness(t)

	resp, body := h.get(t, "/visualization?view=pie")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, body, html.EscapeString(app.MsgNoResults))
	assert.NotContains(t, body, "<svg")
}

func TestDownload_BeforeAnalysis(t *testing.T) {
	h := newHarness(t)

	resp, body := h.get(t, "/download/csv")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Contains(t, body, app.MsgNoResults)
}

func TestAnalyzeThenDownload(t *testing.T) {
	h := newHarness(t)

	body := h.analyze(t, h.data.URL+"/reviews.csv", "review")
	assert.Contains(t, body, html.EscapeString(app.MsgSuccess))
	assert.Contains(t, body, "great product")
	assert.Contains(t, body, "/download/csv")

	resp, csvBody := h.get(t, "/download/csv")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, export.CSVContentType, resp.Header.Get("Content-Type"))
	assert.Contains(t, resp.Header.Get("Content-Disposition"), export.CSVFileName)
	assert.Equal(t,
		"id,review,Sentiment\n1,great product,Positive\n2,terrible service,Negative\n3,it arrived,Neutral\n",
		csvBody)

	resp, _ = h.get(t, "/download/xlsx")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, export.XLSXContentType, resp.Header.Get("Content-Type"))

	resp, _ = h.get(t, "/download/parquet")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestAnalyze_MissingColumn(t *testing.T) {
	h := newHarness(t)

	body := h.analyze(t, h.data.URL+"/reviews.csv", "comment")
	assert.Contains(t, body, html.EscapeString("❌ Column 'comment' not found in the dataset."))
	assert.NotContains(t, body, "/download/csv")
}

func TestAnalyze_FetchFailure(t *testing.T) {
	h := newHarness(t)

	body := h.analyze(t, h.data.URL+"/missing.csv", "review")
	assert.Contains(t, body, "⚠️ Error: ")
	assert.Contains(t, body, "404")
}

func TestVisualizationPage_Modes(t *testing.T) {
	h := newHarness(t)
	h.analyze(t, h.data.URL+"/reviews.csv", "review")

	_, body := h.get(t, "/visualization?view=table")
	assert.Contains(t, body, "terrible service")
	assert.NotContains(t, body, "<svg")

	_, body = h.get(t, "/visualization?view=pie")
	assert.Contains(t, body, "<svg")
	assert.Contains(t, body, viz.PieTitle)

	_, body = h.get(t, "/visualization?view=histogram&column=id")
	assert.Contains(t, body, "Distribution of id by Sentiment")

	_, body = h.get(t, "/visualization?view=sparkline")
	assert.Contains(t, body, "sparkline")
}

func TestVisualizationUpdates_PatchesPanel(t *testing.T) {
	h := newHarness(t)
	h.analyze(t, h.data.URL+"/reviews.csv", "review")

	q := url.Values{"datastar": {`{"view":"pie","column":""}`}}
	resp, body := h.get(t, "/visualization/view?"+q.Encode())

	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.True(t, strings.HasPrefix(resp.Header.Get("Content-Type"), "text/event-stream"))
	assert.Contains(t, body, "datastar-patch-elements")
	assert.Contains(t, body, `id="viz"`)
	assert.Contains(t, body, viz.PieTitle)
	assert.Equal(t, 1, h.sessions.Len())
}

func TestHealthz(t *testing.T) {
	h := newHarness(t)

	resp, body := h.get(t, "/healthz")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "ok", body)
}
