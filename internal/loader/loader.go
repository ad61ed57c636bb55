// Package loader turns a dataset URL into a RawTable.
package loader

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/url"
	"path"
	"strings"
	"time"

	"github.com/spacesedan/sentiscope/internal/clients"
	"github.com/spacesedan/sentiscope/internal/models"
)

// ErrFetchOrParse matches every failure to obtain a table from a URL.
var ErrFetchOrParse = errors.New("fetch or parse failed")

// FetchError reports which stage of loading failed.
type FetchError struct {
	URL   string
	Stage string // "url", "fetch" or "parse"
	Err   error
}

func (e *FetchError) Error() string {
	return e.Err.Error()
}

func (e *FetchError) Unwrap() error {
	return e.Err
}

func (e *FetchError) Is(target error) bool {
	return target == ErrFetchOrParse
}

type Fetcher interface {
	Fetch(ctx context.Context, url string) (*clients.Download, error)
}

type Loader struct {
	fetcher Fetcher
}

func New(fetcher Fetcher) *Loader {
	return &Loader{fetcher: fetcher}
}

func (l *Loader) Load(ctx context.Context, rawURL string) (*models.RawTable, error) {
	target, err := NormalizeURL(rawURL)
	if err != nil {
		return nil, &FetchError{URL: rawURL, Stage: "url", Err: err}
	}
	if target != strings.TrimSpace(rawURL) {
		slog.Info("[Loader] Rewrote spreadsheet link to export URL", slog.String("url", target))
	}

	start := time.Now()
	dl, err := l.fetcher.Fetch(ctx, target)
	if err != nil {
		return nil, &FetchError{URL: target, Stage: "fetch", Err: err}
	}

	var table *models.RawTable
	if isXLSX(target, dl) {
		table, err = ParseXLSX(bytes.NewReader(dl.Body))
	} else {
		table, err = ParseCSV(bytes.NewReader(dl.Body))
	}
	if err != nil {
		slog.Error("[Loader] Failed to parse dataset",
			slog.String("url", target),
			slog.String("error", err.Error()))
		return nil, &FetchError{URL: target, Stage: "parse", Err: err}
	}

	slog.Info("[Loader] Dataset loaded",
		slog.Int("columns", len(table.Columns)),
		slog.Int("rows", table.Len()),
		slog.Duration("elapsed", time.Since(start)))

	return table, nil
}

// NormalizeURL validates the scheme and rewrites Google Sheets edit or view
// links to their CSV export form, keeping the gid of the selected tab.
func NormalizeURL(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", errors.New("no URL provided")
	}

	u, err := url.Parse(raw)
	if err != nil {
		return "", fmt.Errorf("invalid URL: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return "", fmt.Errorf("unsupported URL scheme %q: only http and https are allowed", u.Scheme)
	}
	if u.Host == "" {
		return "", errors.New("invalid URL: missing host")
	}

	if u.Host != "docs.google.com" || !strings.HasPrefix(u.Path, "/spreadsheets/d/") {
		return u.String(), nil
	}

	parts := strings.Split(strings.TrimPrefix(u.Path, "/spreadsheets/d/"), "/")
	id := parts[0]
	// published ("/d/e/...") and already exported links are left alone
	if id == "" || id == "e" || (len(parts) > 1 && parts[1] == "export") {
		return u.String(), nil
	}

	gid := u.Query().Get("gid")
	if gid == "" && strings.HasPrefix(u.Fragment, "gid=") {
		gid = strings.TrimPrefix(u.Fragment, "gid=")
	}

	q := url.Values{"format": {"csv"}}
	if gid != "" {
		q.Set("gid", gid)
	}
	u.Path = "/spreadsheets/d/" + id + "/export"
	u.RawQuery = q.Encode()
	u.Fragment = ""

	return u.String(), nil
}

func isXLSX(target string, dl *clients.Download) bool {
	if strings.Contains(dl.ContentType, "spreadsheetml") {
		return true
	}
	// zip magic; CSV never starts with it
	if bytes.HasPrefix(dl.Body, []byte("PK\x03\x04")) {
		return true
	}
	u, err := url.Parse(target)
	if err != nil {
		return false
	}
	return u.Query().Get("format") == "xlsx" || strings.EqualFold(path.Ext(u.Path), ".xlsx")
}
