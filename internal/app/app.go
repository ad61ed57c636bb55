// Package app is the per-session state machine. Each user action is an Event
// dispatched against the session's current state, yielding a Screen.
package app

import (
	"context"

	"github.com/spacesedan/sentiscope/internal/models"
	"github.com/spacesedan/sentiscope/internal/pipeline"
	"github.com/spacesedan/sentiscope/internal/session"
	"github.com/spacesedan/sentiscope/internal/viz"
)

type Event interface {
	isEvent()
}

type Navigate struct {
	To session.View
}

type Analyze struct {
	URL    string
	Column string
}

type Visualize struct {
	Mode   viz.Mode
	Column string
}

func (Navigate) isEvent()  {}
func (Analyze) isEvent()   {}
func (Visualize) isEvent() {}

type AnalyzeForm struct {
	URL    string
	Column string
}

// Screen is everything a page needs to draw the session's current state.
type Screen struct {
	View       session.View
	Messages   []Message
	Form       AnalyzeForm
	Result     *pipeline.Result
	HasResults bool
	Columns    []string
	Viz        *viz.View
	Mode       viz.Mode
}

func (s *Screen) add(m Message) {
	s.Messages = append(s.Messages, m)
}

type Runner interface {
	Run(ctx context.Context, store pipeline.ResultSetter, url, column string) (*pipeline.Result, error)
}

type App struct {
	analyzer   Runner
	renderer   *viz.Renderer
	columnHint string
}

type Option func(*App)

// WithColumnHint prefills the column input until a result exists.
func WithColumnHint(column string) Option {
	return func(a *App) {
		a.columnHint = column
	}
}

func New(analyzer Runner, renderer *viz.Renderer, opts ...Option) *App {
	a := &App{analyzer: analyzer, renderer: renderer}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Dispatch applies ev to sess. Errors never escape; they become messages.
func (a *App) Dispatch(ctx context.Context, sess *session.Session, ev Event) Screen {
	var screen Screen
	sess.Exclusive(func() {
		switch e := ev.(type) {
		case Navigate:
			sess.SetView(e.To)
			screen = a.show(sess, e.To, viz.Request{Mode: viz.ModeNone})
		case Analyze:
			sess.SetView(session.ViewAnalysis)
			screen = a.analyze(ctx, sess, e)
		case Visualize:
			sess.SetView(session.ViewVisualization)
			screen = a.show(sess, session.ViewVisualization, viz.Request{Mode: e.Mode, Column: e.Column})
		default:
			screen = a.show(sess, sess.View(), viz.Request{Mode: viz.ModeNone})
		}
	})
	return screen
}

func (a *App) show(sess *session.Session, view session.View, req viz.Request) Screen {
	screen := Screen{View: view, Mode: req.Mode}
	screen.Form.Column = a.columnHint
	table, ok := sess.Store.Get()
	screen.HasResults = ok
	if ok {
		screen.Columns = table.Columns
		screen.Form.Column = table.TextColumn
	}

	switch view {
	case session.ViewAnalysis:
		screen.add(Message{Kind: KindInfo, Text: MsgSheetsHint})
	case session.ViewVisualization:
		if !ok {
			screen.add(MessageFor(viz.ErrNoResults))
			return screen
		}
		v, err := a.renderer.Render(sess.Store, req)
		if err != nil {
			screen.add(MessageFor(err))
			return screen
		}
		screen.Viz = v
	}
	return screen
}

func (a *App) analyze(ctx context.Context, sess *session.Session, e Analyze) Screen {
	screen := Screen{
		View: session.ViewAnalysis,
		Form: AnalyzeForm{URL: e.URL, Column: e.Column},
	}

	res, err := a.analyzer.Run(ctx, sess.Store, e.URL, e.Column)
	if err != nil {
		screen.add(MessageFor(err))
	} else {
		screen.Result = res
		screen.add(Message{Kind: KindSuccess, Text: MsgSuccess})
	}

	if table, ok := sess.Store.Get(); ok {
		screen.HasResults = true
		screen.Columns = table.Columns
	}
	return screen
}

// Preview is the first rows of the latest analysis, if any.
func (s Screen) Preview() *models.LabeledTable {
	if s.Result == nil {
		return nil
	}
	return s.Result.Preview
}
