package fetcher

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"go.uber.org/zap"
	"golang.org/x/net/html/charset"

	"wiki-quiz/internal/config"
	"wiki-quiz/internal/domain"
	"wiki-quiz/internal/logger"
)

const (
	defaultUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36"
	defaultTimeout   = 10 * time.Second
	maxBodyBytes     = 16 << 20
)

// HTTPFetcher downloads article markup over HTTP.
type HTTPFetcher struct {
	client    *http.Client
	userAgent string
}

// NewHTTPFetcher creates a fetcher from configuration. A nil client gets one
// bounded by the configured timeout.
func NewHTTPFetcher(cfg config.FetcherConfig, client *http.Client) *HTTPFetcher {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	if client == nil {
		client = &http.Client{Timeout: timeout}
	}
	userAgent := cfg.UserAgent
	if userAgent == "" {
		userAgent = defaultUserAgent
	}
	return &HTTPFetcher{client: client, userAgent: userAgent}
}

// Fetch returns the decoded body of url. Any transport error or non-2xx
// status is returned as a FETCH_FAILURE error.
func (f *HTTPFetcher) Fetch(ctx context.Context, url string) (string, error) {
	l := logger.Get()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", domain.NewFetchFailureError(url, err)
	}
	req.Header.Set("User-Agent", f.userAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml")

	start := time.Now()
	resp, err := f.client.Do(req)
	if err != nil {
		l.Error("Failed to fetch article", zap.String("url", url), zap.Error(err))
		return "", domain.NewFetchFailureError(url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		l.Warn("Article fetch returned non-success status",
			zap.String("url", url),
			zap.Int("status", resp.StatusCode))
		return "", domain.NewFetchFailureError(url, fmt.Errorf("unexpected status %d", resp.StatusCode)).
			WithContext("status", resp.StatusCode)
	}

	reader, err := charset.NewReader(io.LimitReader(resp.Body, maxBodyBytes), resp.Header.Get("Content-Type"))
	if err != nil {
		return "", domain.NewFetchFailureError(url, err)
	}
	body, err := io.ReadAll(reader)
	if err != nil {
		return "", domain.NewFetchFailureError(url, err)
	}

	l.Debug("Fetched article",
		zap.String("url", url),
		zap.Int("bytes", len(body)),
		zap.Duration("duration", time.Since(start)))
	return string(body), nil
}

var _ domain.SourceFetcher = (*HTTPFetcher)(nil)
