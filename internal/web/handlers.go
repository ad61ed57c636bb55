package web

import (
	"bytes"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/spacesedan/sentiscope/internal/app"
	"github.com/spacesedan/sentiscope/internal/export"
	"github.com/spacesedan/sentiscope/internal/session"
	"github.com/spacesedan/sentiscope/internal/viz"
	"github.com/starfederation/datastar-go/datastar"
)

// vizSignals are the datastar signals bound to the visualization selects.
type vizSignals struct {
	View   string `json:"view"`
	Column string `json:"column"`
}

func (s *Server) renderPage(w http.ResponseWriter, r *http.Request, name string, screen app.Screen) {
	if err := page(name, newPageData(screen)).Render(r.Context(), w); err != nil {
		s.logger.Error("[Server] Failed to render page",
			slog.String("page", name),
			slog.String("error", err.Error()))
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

func (s *Server) HomePage(w http.ResponseWriter, r *http.Request) {
	sess := s.session(w, r)
	screen := s.app.Dispatch(r.Context(), sess, app.Navigate{To: session.ViewHome})
	s.renderPage(w, r, "home", screen)
}

func (s *Server) AnalysisPage(w http.ResponseWriter, r *http.Request) {
	sess := s.session(w, r)
	screen := s.app.Dispatch(r.Context(), sess, app.Navigate{To: session.ViewAnalysis})
	s.renderPage(w, r, "analysis", screen)
}

func (s *Server) Analyze(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form: "+err.Error(), http.StatusBadRequest)
		return
	}

	sess := s.session(w, r)
	screen := s.app.Dispatch(r.Context(), sess, app.Analyze{
		URL:    r.PostFormValue("url"),
		Column: r.PostFormValue("column"),
	})
	s.renderPage(w, r, "analysis", screen)
}

func (s *Server) VisualizationPage(w http.ResponseWriter, r *http.Request) {
	sess := s.session(w, r)
	screen := s.visualize(r, sess, r.URL.Query().Get("view"), r.URL.Query().Get("column"))
	s.renderPage(w, r, "visualization", screen)
}

// VisualizationUpdates re-renders the #viz panel for the selected mode and
// column and patches it into the page over SSE.
func (s *Server) VisualizationUpdates(w http.ResponseWriter, r *http.Request) {
	// signals must be read before the SSE stream takes over the response
	var signals vizSignals
	if err := datastar.ReadSignals(r, &signals); err != nil {
		sse := datastar.NewSSE(w, r)
		_ = sse.ConsoleError(err)
		return
	}

	sess := s.session(w, r)
	screen := s.visualize(r, sess, signals.View, signals.Column)

	sse := datastar.NewSSE(w, r)
	if err := sse.PatchElementTempl(page("viz-panel", newPageData(screen))); err != nil {
		s.logger.Error("[Server] Failed to patch visualization",
			slog.String("error", err.Error()))
		_ = sse.ConsoleError(err)
	}
}

func (s *Server) visualize(r *http.Request, sess *session.Session, view, column string) app.Screen {
	mode, err := viz.ParseMode(view)
	if err != nil {
		screen := s.app.Dispatch(r.Context(), sess, app.Navigate{To: session.ViewVisualization})
		screen.Messages = append(screen.Messages, app.MessageFor(err))
		return screen
	}
	if mode == viz.ModeNone {
		return s.app.Dispatch(r.Context(), sess, app.Navigate{To: session.ViewVisualization})
	}
	return s.app.Dispatch(r.Context(), sess, app.Visualize{Mode: mode, Column: column})
}

// Download streams the stored result as CSV or XLSX.
func (s *Server) Download(w http.ResponseWriter, r *http.Request) {
	var (
		write       func(*bytes.Buffer) error
		fileName    string
		contentType string
	)

	sess := s.session(w, r)
	table, ok := sess.Store.Get()
	if !ok {
		http.Error(w, app.MsgNoResults, http.StatusNotFound)
		return
	}

	switch chi.URLParam(r, "format") {
	case "csv":
		write = func(b *bytes.Buffer) error { return export.WriteCSV(b, table) }
		fileName, contentType = export.CSVFileName, export.CSVContentType
	case "xlsx":
		write = func(b *bytes.Buffer) error { return export.WriteXLSX(b, table) }
		fileName, contentType = export.XLSXFileName, export.XLSXContentType
	default:
		http.Error(w, "unknown download format", http.StatusNotFound)
		return
	}

	var buf bytes.Buffer
	if err := write(&buf); err != nil {
		s.logger.Error("[Server] Failed to export results", slog.String("error", err.Error()))
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Disposition", `attachment; filename="`+fileName+`"`)
	_, _ = w.Write(buf.Bytes())
}

func (s *Server) Healthz(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = w.Write([]byte("ok"))
}
