// Package scraper turns listing URLs on the source site into Property
// records, degrading gracefully when only part of the data can be read.
package scraper

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/propscan/propscan/pkg/model"
)

// Result wraps one scraped Property together with the fatal errors and
// non-fatal warnings accumulated while extracting it.
type Result struct {
	Property model.Property `json:"property"`
	Errors   []error        `json:"-"`
	Warnings []string       `json:"warnings,omitempty"`
}

// OK reports whether the record is trustworthy enough to analyze.
// Warnings alone never block analysis.
func (r *Result) OK() bool { return len(r.Errors) == 0 }

// ErrorStrings renders the fatal errors for logs and API responses.
func (r *Result) ErrorStrings() []string {
	out := make([]string, 0, len(r.Errors))
	for _, err := range r.Errors {
		out = append(out, err.Error())
	}
	return out
}

func (r *Result) addError(err error)      { r.Errors = append(r.Errors, err) }
func (r *Result) addWarnings(ws []string) { r.Warnings = append(r.Warnings, ws...) }

// Scraper extracts Property records from the listing site at baseURL.
type Scraper struct {
	fetcher Fetcher
	baseURL string
	workers int
}

// New creates a Scraper. workers bounds the concurrency of batch scrapes;
// anything below 1 means strictly sequential.
func New(fetcher Fetcher, baseURL string, workers int) *Scraper {
	if workers < 1 {
		workers = 1
	}
	return &Scraper{
		fetcher: fetcher,
		baseURL: strings.TrimSuffix(baseURL, "/"),
		workers: workers,
	}
}

// ScrapeProperty fetches one listing page plus its below-the-fold payload
// and extracts a Property. Fatal errors and warnings are collected on the
// Result rather than returned, so a batch caller can keep going.
func (s *Scraper) ScrapeProperty(ctx context.Context, url string) Result {
	res := Result{Property: model.Property{URL: url}}

	if !strings.HasPrefix(url, s.baseURL) {
		res.addError(&ValidationError{URL: url, BaseURL: s.baseURL})
		return res
	}

	pageText, ok := s.fetchText(ctx, url, &res)
	if !ok {
		return res
	}

	// The auxiliary API parameters live in the raw markup. When they are
	// missing this is not a readable listing page; stop here without
	// recording anything.
	tokens, ok := extractPageTokens(pageText)
	if !ok {
		return res
	}

	aux, ok := s.fetchBelowTheFold(ctx, tokens, &res)
	if !ok {
		return res
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(pageText))
	if err != nil {
		res.addError(&ParseError{What: "page markup", Err: err})
		return res
	}

	extractFields(doc, aux, &res)
	return res
}

// fetchText GETs url and classifies the response status, recording fatal
// errors on the result.
func (s *Scraper) fetchText(ctx context.Context, url string, res *Result) (string, bool) {
	status, body, err := s.fetcher.Get(ctx, url)
	if err != nil {
		res.addError(fmt.Errorf("fetch %s: %w", url, err))
		return "", false
	}
	switch status {
	case http.StatusOK:
		return string(body), true
	case http.StatusServiceUnavailable:
		res.addError(ErrServiceUnavailable)
	default:
		res.addError(&HTTPError{URL: url, StatusCode: status})
	}
	return "", false
}

func (s *Scraper) fetchBelowTheFold(ctx context.Context, tokens pageTokens, res *Result) (*payload, bool) {
	body, ok := s.fetchText(ctx, belowTheFoldURL(s.baseURL, tokens), res)
	if !ok {
		return nil, false
	}
	aux, err := decodeBelowTheFold([]byte(body))
	if err != nil {
		res.addError(&ParseError{What: "below-the-fold payload", Err: err})
		return nil, false
	}
	return aux, true
}

// extractFields runs the per-field extractors. Each is independently
// fault-tolerant so one broken section does not hide the rest.
func extractFields(doc *goquery.Document, aux *payload, res *Result) {
	prop := &res.Property

	prop.StreetAddress, prop.City, prop.State = parseAddress(doc)

	price, err := parsePrice(doc)
	if err != nil {
		res.addError(err)
	}
	prop.Price = price

	numUnits, err := parseNumUnits(aux)
	if err != nil {
		res.addError(err)
	}
	prop.NumUnits = numUnits

	rent, warnings := parseTotalRent(aux, numUnits)
	prop.TotalRent = rent
	res.addWarnings(warnings)

	taxYear, taxes, err := parseTaxes(aux)
	if err != nil {
		res.addError(err)
	} else {
		prop.TaxYear = taxYear
		prop.AnnualTaxes = taxes
	}

	paid, warnings := parseUtilities(aux, numUnits)
	prop.UtilitiesPaidByUnit = paid
	res.addWarnings(warnings)
}
