// Package web serves the dashboard over HTTP.
package web

import (
	"context"
	"crypto/rand"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/gorilla/sessions"
	"github.com/spacesedan/sentiscope/internal/app"
	"github.com/spacesedan/sentiscope/internal/monitoring"
	"github.com/spacesedan/sentiscope/internal/session"
	"golang.org/x/sync/errgroup"
)

const (
	cookieName    = "sentiscope"
	cookieIDKey   = "sid"
	shutdownGrace = 5 * time.Second
)

type Config struct {
	Addr          string
	SessionSecret string
	SweepInterval time.Duration
	App           *app.App
	Sessions      *session.Manager
	Logger        *slog.Logger
}

type Server struct {
	addr          string
	sweepInterval time.Duration
	app           *app.App
	sessions      *session.Manager
	cookies       *sessions.CookieStore
	logger        *slog.Logger
}

func NewServer(cfg Config) *Server {
	secret := []byte(cfg.SessionSecret)
	if len(secret) == 0 {
		// cookies from a previous run become invalid, which only resets sessions
		secret = make([]byte, 32)
		_, _ = rand.Read(secret)
	}

	cookies := sessions.NewCookieStore(secret)
	cookies.MaxAge(86400)
	cookies.Options.Path = "/"
	cookies.Options.HttpOnly = true
	cookies.Options.SameSite = http.SameSiteLaxMode

	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	return &Server{
		addr:          cfg.Addr,
		sweepInterval: cfg.SweepInterval,
		app:           cfg.App,
		sessions:      cfg.Sessions,
		cookies:       cookies,
		logger:        logger,
	}
}

// Routes returns the full handler tree.
func (s *Server) Routes() http.Handler {
	r := chi.NewMux()
	r.Use(
		middleware.RequestID,
		middleware.RealIP,
		middleware.RequestLogger(&middleware.DefaultLogFormatter{
			Logger:  slog.NewLogLogger(s.logger.Handler(), slog.LevelInfo),
			NoColor: true,
		}),
		middleware.Recoverer,
		middleware.Compress(5),
	)

	r.Get("/", s.HomePage)
	r.Get("/analysis", s.AnalysisPage)
	r.Post("/analysis", s.Analyze)
	r.Get("/visualization", s.VisualizationPage)
	r.Get("/visualization/view", s.VisualizationUpdates)
	r.Get("/download/{format}", s.Download)
	r.Get("/healthz", s.Healthz)

	return r
}

// Serve runs the HTTP server and the idle-session sweeper until ctx is
// cancelled, then drains in-flight requests.
func (s *Server) Serve(ctx context.Context) error {
	s.logger.Info("[Server] Starting dashboard", slog.String("addr", s.addr))

	eg, egctx := errgroup.WithContext(ctx)

	srv := &http.Server{
		Addr:    s.addr,
		Handler: s.Routes(),
		BaseContext: func(_ net.Listener) context.Context {
			return egctx
		},
		ReadHeaderTimeout: 10 * time.Second,
	}

	eg.Go(func() error {
		monitoring.SweepIdleSessions(egctx, s.sessions, s.sweepInterval)
		return nil
	})

	eg.Go(func() error {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			return fmt.Errorf("[Server] listen: %w", err)
		}
		return nil
	})

	eg.Go(func() error {
		<-egctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownGrace)
		defer cancel()

		s.logger.Info("[Server] Shutting down")
		return srv.Shutdown(shutdownCtx)
	})

	return eg.Wait()
}

// session resolves the caller's session from the cookie, starting a new one
// when the cookie is missing, invalid or points at an expired session.
func (s *Server) session(w http.ResponseWriter, r *http.Request) *session.Session {
	cs, err := s.cookies.Get(r, cookieName)
	if err != nil {
		s.logger.Debug("[Server] Discarding unreadable session cookie", slog.String("error", err.Error()))
	}

	id, _ := cs.Values[cookieIDKey].(string)
	sess, created := s.sessions.GetOrCreate(id)
	if created {
		cs.Values[cookieIDKey] = sess.ID
		if err := cs.Save(r, w); err != nil {
			s.logger.Warn("[Server] Failed to save session cookie", slog.String("error", err.Error()))
		}
	}
	return sess
}
