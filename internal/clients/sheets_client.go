package clients

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"
)

var ErrBodyTooLarge = errors.New("response body exceeds size limit")

type StatusError struct {
	URL        string
	StatusCode int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("unexpected status %d %s", e.StatusCode, http.StatusText(e.StatusCode))
}

type SheetsClientConfig struct {
	Timeout        time.Duration
	MaxRetries     int
	InitialBackoff time.Duration
	MaxBytes       int64
}

// SheetsClient downloads published datasets (CSV or spreadsheet exports).
type SheetsClient struct {
	Client         *http.Client
	maxRetries     int
	initialBackoff time.Duration
	maxBytes       int64
}

// Download is a fetched dataset body.
type Download struct {
	URL         string
	ContentType string
	Body        []byte
}

func NewSheetsClient(cfg SheetsClientConfig) *SheetsClient {
	if cfg.Timeout <= 0 {
		cfg.Timeout = 30 * time.Second
	}
	if cfg.MaxRetries <= 0 {
		cfg.MaxRetries = MAX_RETRIES
	}
	if cfg.InitialBackoff <= 0 {
		cfg.InitialBackoff = INITIAL_BACKOFF
	}
	if cfg.MaxBytes <= 0 {
		cfg.MaxBytes = MAX_BODY_BYTES
	}

	slog.Info("[SheetsClient] Initializing Client",
		slog.Duration("timeout", cfg.Timeout),
		slog.Int("max_retries", cfg.MaxRetries))

	return &SheetsClient{
		Client:         &http.Client{Timeout: cfg.Timeout},
		maxRetries:     cfg.MaxRetries,
		initialBackoff: cfg.InitialBackoff,
		maxBytes:       cfg.MaxBytes,
	}
}

// DoWithRetry retries transport errors and 5xx responses with exponential
// backoff. The last response is returned when retries run out.
func (s *SheetsClient) DoWithRetry(ctx context.Context, req *http.Request) (*http.Response, error) {
	var resp *http.Response
	var err error
	backoff := s.initialBackoff

	for attempt := 0; attempt < s.maxRetries; attempt++ {
		resp, err = s.Client.Do(req.WithContext(ctx))
		if err == nil && resp.StatusCode < 500 {
			return resp, nil
		}
		if attempt == s.maxRetries-1 {
			break
		}

		if resp != nil {
			resp.Body.Close()
		}

		slog.Warn("[SheetsClient] Request failed, will retry",
			slog.Int("attempt", attempt+1),
			slog.String("error", errMsg(err, resp)))

		timer := time.NewTimer(backoff)
		select {
		case <-ctx.Done():
			timer.Stop()
			return nil, ctx.Err()
		case <-timer.C:
		}

		backoff *= 2
		if backoff > MAX_BACKOFF {
			backoff = MAX_BACKOFF
		}
	}

	return resp, err
}

func (s *SheetsClient) Fetch(ctx context.Context, url string) (*Download, error) {
	slog.Info("[SheetsClient] Fetching dataset", slog.String("url", url))
	start := time.Now()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("User-Agent", USER_AGENT)
	req.Header.Set("Accept", "text/csv, application/vnd.openxmlformats-officedocument.spreadsheetml.sheet;q=0.9, */*;q=0.5")

	resp, err := s.DoWithRetry(ctx, req)
	if err != nil {
		slog.Error("[SheetsClient] Failed request after retries",
			slog.String("url", url),
			slog.String("error", err.Error()))
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		slog.Error("[SheetsClient] Unexpected status",
			slog.String("url", url),
			slog.Int("status", resp.StatusCode))
		return nil, &StatusError{URL: url, StatusCode: resp.StatusCode}
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, s.maxBytes+1))
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}
	if int64(len(body)) > s.maxBytes {
		return nil, fmt.Errorf("%w (%d bytes)", ErrBodyTooLarge, s.maxBytes)
	}

	slog.Info("[SheetsClient] Dataset fetched",
		slog.Int("bytes", len(body)),
		slog.Duration("elapsed", time.Since(start)))

	return &Download{
		URL:         url,
		ContentType: resp.Header.Get("Content-Type"),
		Body:        body,
	}, nil
}

func errMsg(err error, resp *http.Response) string {
	if err != nil {
		return err.Error()
	}
	if resp != nil {
		return fmt.Sprintf("status code %d", resp.StatusCode)
	}
	return "unknown error"
}
