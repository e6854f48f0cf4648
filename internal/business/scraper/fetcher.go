package scraper

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/corpix/uarand"
)

// Fetcher abstracts how pages are fetched so the pipeline can be tested
// without network calls.
type Fetcher interface {
	Get(ctx context.Context, url string) (status int, body []byte, err error)
}

// HTTPFetcher fetches pages over HTTP with a randomized user-agent, a
// bounded timeout, and retries with backoff on transient failures.
type HTTPFetcher struct {
	client  *http.Client
	retries int
	backoff time.Duration
}

// NewHTTPFetcher creates a fetcher. Non-positive arguments fall back to a
// 15s timeout and no retries.
func NewHTTPFetcher(timeout time.Duration, retries int, backoff time.Duration) *HTTPFetcher {
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	if retries < 0 {
		retries = 0
	}
	return &HTTPFetcher{
		client:  &http.Client{Timeout: timeout},
		retries: retries,
		backoff: backoff,
	}
}

// Get issues a GET and returns the response status and body. Transport
// errors and 503s are retried with linearly growing backoff; the status is
// returned as-is so callers can classify it.
func (f *HTTPFetcher) Get(ctx context.Context, url string) (int, []byte, error) {
	var (
		lastStatus int
		lastBody   []byte
		lastErr    error
	)
	for attempt := 0; attempt <= f.retries; attempt++ {
		if attempt > 0 {
			select {
			case <-ctx.Done():
				return 0, nil, ctx.Err()
			case <-time.After(time.Duration(attempt) * f.backoff):
			}
		}
		status, body, err := f.getOnce(ctx, url)
		if err == nil && status != http.StatusServiceUnavailable {
			return status, body, nil
		}
		lastStatus, lastBody, lastErr = status, body, err
	}
	return lastStatus, lastBody, lastErr
}

func (f *HTTPFetcher) getOnce(ctx context.Context, url string) (int, []byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return 0, nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("User-Agent", uarand.GetRandom())

	resp, err := f.client.Do(req)
	if err != nil {
		return 0, nil, fmt.Errorf("fetch url %s: %w", url, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return resp.StatusCode, nil, fmt.Errorf("read body of %s: %w", url, err)
	}
	return resp.StatusCode, body, nil
}
