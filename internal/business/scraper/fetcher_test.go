package scraper

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"
)

func TestHTTPFetcherSetsUserAgent(t *testing.T) {
	var agent atomic.Value
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		agent.Store(r.Header.Get("User-Agent"))
		_, _ = w.Write([]byte("ok"))
	}))
	defer srv.Close()

	fetcher := NewHTTPFetcher(5*time.Second, 0, 0)
	status, body, err := fetcher.Get(context.Background(), srv.URL)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if status != http.StatusOK || string(body) != "ok" {
		t.Errorf("status = %d, body = %q", status, body)
	}
	if ua, _ := agent.Load().(string); ua == "" || ua == "Go-http-client/1.1" {
		t.Errorf("user-agent = %q, want a randomized browser agent", ua)
	}
}

func TestHTTPFetcherRetriesServiceUnavailable(t *testing.T) {
	var calls atomic.Int64
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) == 1 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		_, _ = w.Write([]byte("recovered"))
	}))
	defer srv.Close()

	fetcher := NewHTTPFetcher(5*time.Second, 2, time.Millisecond)
	status, body, err := fetcher.Get(context.Background(), srv.URL)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if status != http.StatusOK || string(body) != "recovered" {
		t.Errorf("status = %d, body = %q", status, body)
	}
	if calls.Load() != 2 {
		t.Errorf("calls = %d, want 2", calls.Load())
	}
}

func TestHTTPFetcherReturnsFinalStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	fetcher := NewHTTPFetcher(5*time.Second, 1, time.Millisecond)
	status, _, err := fetcher.Get(context.Background(), srv.URL)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if status != http.StatusServiceUnavailable {
		t.Errorf("status = %d, want 503 after retries run out", status)
	}
}
