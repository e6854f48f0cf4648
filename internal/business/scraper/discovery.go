package scraper

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"sync/atomic"
)

// listingIndex models the slice of the gis API response the enumerator
// reads.
type listingIndex struct {
	Payload struct {
		Homes []struct {
			URL string `json:"url"`
		} `json:"homes"`
	} `json:"payload"`
}

// DiscoverListings finds every individual property URL behind a search
// results page, in the order the site reports them.
func (s *Scraper) DiscoverListings(ctx context.Context, listingURL string) ([]string, error) {
	if !strings.HasPrefix(listingURL, s.baseURL) {
		// Recorded, not fatal: the fetch below fails on its own terms.
		slog.Warn("listing url is outside the supported site", "url", listingURL, "base", s.baseURL)
	}

	var pageRes Result
	pageText, ok := s.fetchText(ctx, listingURL, &pageRes)
	if !ok {
		return nil, fmt.Errorf("fetch listing page: %w", pageRes.Errors[0])
	}

	apiURL, ok := extractListingAPIURL(s.baseURL, pageText)
	if !ok {
		return nil, fmt.Errorf("could not find the listings API fragment in %s", listingURL)
	}

	var apiRes Result
	body, ok := s.fetchText(ctx, apiURL, &apiRes)
	if !ok {
		return nil, fmt.Errorf("fetch listings api: %w", apiRes.Errors[0])
	}

	var index listingIndex
	if err := json.Unmarshal(stripJSONGuard([]byte(body)), &index); err != nil {
		return nil, fmt.Errorf("decode listings payload: %w", err)
	}

	urls := make([]string, 0, len(index.Payload.Homes))
	for _, home := range index.Payload.Homes {
		urls = append(urls, s.baseURL+home.URL)
	}
	return urls, nil
}

// ScrapeListings enumerates a search results page and scrapes every
// property it lists. Results preserve discovery order; one property's
// failure lives in its own Result and never aborts the batch.
func (s *Scraper) ScrapeListings(ctx context.Context, listingURL string) ([]Result, error) {
	urls, err := s.DiscoverListings(ctx, listingURL)
	if err != nil {
		return nil, err
	}
	slog.Info("discovered properties", "count", len(urls))
	return s.scrapeAll(ctx, urls), nil
}

// scrapeAll runs property extractions over a bounded worker pool. The
// results slice is index-addressed so discovery order survives concurrency.
func (s *Scraper) scrapeAll(ctx context.Context, urls []string) []Result {
	results := make([]Result, len(urls))
	jobs := make(chan int)

	var done atomic.Int64
	var wg sync.WaitGroup

	for w := 0; w < s.workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range jobs {
				results[i] = s.ScrapeProperty(ctx, urls[i])
				if n := done.Add(1); n%10 == 0 {
					slog.Info("scrape progress", "done", n, "total", len(urls))
				}
			}
		}()
	}

feed:
	for i := range urls {
		select {
		case jobs <- i:
		case <-ctx.Done():
			break feed
		}
	}
	close(jobs)
	wg.Wait()
	return results
}
