package web

import (
	"context"
	"embed"
	"encoding/json"
	"html/template"
	"io"
	"strings"

	"github.com/a-h/templ"
	"github.com/russross/blackfriday/v2"
	"github.com/spacesedan/sentiscope/internal/app"
	"github.com/spacesedan/sentiscope/internal/export"
	"github.com/spacesedan/sentiscope/internal/models"
	"github.com/spacesedan/sentiscope/internal/session"
	"github.com/spacesedan/sentiscope/internal/viz"
)

//go:embed templates/*.html
var templateFS embed.FS

const homeMarkdown = `# Welcome Home! 🎉

### Check Your Feedback and Dive into the Analysis.

1. Open **Analysis** and paste a link to a CSV file or a Google Sheet.
2. Enter the name of the column that holds the text to score.
3. Open **Visualization** to browse the labeled table, the pie breakdown
   or a histogram of any column split by sentiment.

Each row is scored with the VADER lexicon. A compound score above 0.01 is
*Positive*, below -0.01 is *Negative*, anything in between is *Neutral*.
`

var (
	templates = template.Must(template.New("").Funcs(template.FuncMap{
		"labelColor": func(l models.Label) string { return "#" + viz.LabelColor(l) },
		"lower":      strings.ToLower,
	}).ParseFS(templateFS, "templates/*.html"))

	homeBanner = template.HTML(blackfriday.Run([]byte(homeMarkdown)))
)

type navItem struct {
	Name   string
	Href   string
	Active bool
}

type modeOption struct {
	Value    string
	Name     string
	Selected bool
}

type pageData struct {
	Title   string
	Nav     []navItem
	Screen  app.Screen
	Banner  template.HTML
	Preview template.HTML
	Modes   []modeOption
	Column  string
	Signals string
	Labels  []models.Label

	CSVFile  string
	XLSXFile string
}

func newPageData(screen app.Screen) pageData {
	data := pageData{
		Title:    screen.View.String(),
		Screen:   screen,
		Labels:   models.Labels,
		CSVFile:  export.CSVFileName,
		XLSXFile: export.XLSXFileName,
	}

	for _, v := range []session.View{session.ViewHome, session.ViewAnalysis, session.ViewVisualization} {
		href := "/" + strings.ToLower(v.String())
		if v == session.ViewHome {
			href = "/"
		}
		data.Nav = append(data.Nav, navItem{Name: v.String(), Href: href, Active: v == screen.View})
	}

	switch screen.View {
	case session.ViewHome:
		data.Banner = homeBanner
	case session.ViewAnalysis:
		if preview := screen.Preview(); preview != nil {
			data.Preview = template.HTML(viz.TableHTML(preview))
		}
	case session.ViewVisualization:
		if screen.Viz != nil {
			data.Column = screen.Viz.Column
		}
		for _, m := range viz.Modes {
			data.Modes = append(data.Modes, modeOption{
				Value:    strings.ToLower(m.String()),
				Name:     m.String(),
				Selected: m == screen.Mode,
			})
		}
		signals, _ := json.Marshal(vizSignals{
			View:   strings.ToLower(screen.Mode.String()),
			Column: data.Column,
		})
		data.Signals = string(signals)
	}

	return data
}

// page adapts a named html/template to a templ component.
func page(name string, data pageData) templ.Component {
	return templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		return templates.ExecuteTemplate(w, name, data)
	})
}
