package scraper

import (
	"context"
	"errors"
	"net/http"
	"os"
	"strings"
	"testing"

	"github.com/propscan/propscan/pkg/model"
)

const testBaseURL = "https://www.redfin.com"

type stubResponse struct {
	status int
	body   []byte
	err    error
}

type stubFetcher struct {
	responses map[string]stubResponse
}

func (f *stubFetcher) Get(ctx context.Context, url string) (int, []byte, error) {
	r, ok := f.responses[url]
	if !ok {
		return http.StatusNotFound, nil, nil
	}
	return r.status, r.body, r.err
}

func readFixture(t *testing.T, path string) []byte {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read %s: %v", path, err)
	}
	return data
}

func TestScrapeProperty(t *testing.T) {
	propertyURL := testBaseURL + "/IL/Chicago/456-Oak-Ave-60614/home/11111"
	auxURL := testBaseURL + "/stingray/api/home/details/belowTheFold?propertyId=123456&accessLevel=1&listingId=987654"

	fetcher := &stubFetcher{responses: map[string]stubResponse{
		propertyURL: {status: http.StatusOK, body: readFixture(t, "testdata/sample_property.html")},
		auxURL:      {status: http.StatusOK, body: readFixture(t, "testdata/below_the_fold.json")},
	}}

	res := New(fetcher, testBaseURL, 1).ScrapeProperty(context.Background(), propertyURL)
	if !res.OK() {
		t.Fatalf("unexpected errors: %v", res.ErrorStrings())
	}
	if len(res.Warnings) != 0 {
		t.Fatalf("unexpected warnings: %v", res.Warnings)
	}

	p := res.Property
	if p.URL != propertyURL {
		t.Errorf("url = %q", p.URL)
	}
	if p.StreetAddress != "456 Oak Ave" || p.City != "Chicago" || p.State != "IL" {
		t.Errorf("address = %q, %q, %q", p.StreetAddress, p.City, p.State)
	}
	if p.Price != 350000 {
		t.Errorf("price = %v", p.Price)
	}
	if p.NumUnits != 3 {
		t.Errorf("units = %d", p.NumUnits)
	}
	if p.TotalRent != 3100 {
		t.Errorf("total rent = %v", p.TotalRent)
	}
	if p.AnnualTaxes != 4200.5 || p.TaxYear != "2023" {
		t.Errorf("taxes = %v (%q)", p.AnnualTaxes, p.TaxYear)
	}
	if len(p.UtilitiesPaidByUnit) != p.NumUnits {
		t.Errorf("utilities entries = %d, want %d", len(p.UtilitiesPaidByUnit), p.NumUnits)
	}
}

func TestScrapePropertyRejectsForeignURL(t *testing.T) {
	res := New(&stubFetcher{}, testBaseURL, 1).ScrapeProperty(context.Background(), "https://example.com/some/home")

	if len(res.Errors) != 1 {
		t.Fatalf("errors = %v, want exactly one", res.ErrorStrings())
	}
	var validation *ValidationError
	if !errors.As(res.Errors[0], &validation) {
		t.Fatalf("err = %v, want ValidationError", res.Errors[0])
	}
}

func TestScrapePropertyServiceUnavailable(t *testing.T) {
	url := testBaseURL + "/IL/Chicago/down/home/1"
	fetcher := &stubFetcher{responses: map[string]stubResponse{
		url: {status: http.StatusServiceUnavailable},
	}}

	res := New(fetcher, testBaseURL, 1).ScrapeProperty(context.Background(), url)
	if len(res.Errors) != 1 || !errors.Is(res.Errors[0], ErrServiceUnavailable) {
		t.Fatalf("errors = %v, want ErrServiceUnavailable", res.ErrorStrings())
	}
}

func TestScrapePropertyHTTPError(t *testing.T) {
	url := testBaseURL + "/IL/Chicago/broken/home/1"
	fetcher := &stubFetcher{responses: map[string]stubResponse{
		url: {status: http.StatusInternalServerError},
	}}

	res := New(fetcher, testBaseURL, 1).ScrapeProperty(context.Background(), url)
	if len(res.Errors) != 1 {
		t.Fatalf("errors = %v, want exactly one", res.ErrorStrings())
	}
	var httpErr *HTTPError
	if !errors.As(res.Errors[0], &httpErr) {
		t.Fatalf("err = %v, want HTTPError", res.Errors[0])
	}
	if httpErr.StatusCode != http.StatusInternalServerError {
		t.Errorf("status = %d", httpErr.StatusCode)
	}
}

// A page without the embedded API tokens is not readable; extraction stops
// silently with an empty record, no errors, and no warnings.
func TestScrapePropertySoftStopWithoutTokens(t *testing.T) {
	url := testBaseURL + "/IL/Chicago/tokenless/home/1"
	fetcher := &stubFetcher{responses: map[string]stubResponse{
		url: {status: http.StatusOK, body: []byte("<html><body>nothing embedded here</body></html>")},
	}}

	res := New(fetcher, testBaseURL, 1).ScrapeProperty(context.Background(), url)
	if len(res.Errors) != 0 || len(res.Warnings) != 0 {
		t.Fatalf("errors = %v, warnings = %v, want both empty", res.ErrorStrings(), res.Warnings)
	}
	want := model.Property{URL: url}
	if res.Property.NumUnits != want.NumUnits || res.Property.Price != want.Price || res.Property.StreetAddress != "" {
		t.Errorf("property = %+v, want empty except url", res.Property)
	}
}

func TestScrapePropertyMissingUnits(t *testing.T) {
	propertyURL := testBaseURL + "/IL/Chicago/456-Oak-Ave-60614/home/11111"
	auxURL := testBaseURL + "/stingray/api/home/details/belowTheFold?propertyId=123456&accessLevel=1&listingId=987654"

	// Same taxes, no unit-count entry under any of the known key pairs.
	aux := `{}&&{"payload":{"amenitiesInfo":{"superGroups":[{"amenityGroups":[{"referenceName":"BuildingInformation","amenityEntries":[{"referenceName":"YBL","amenityValues":["1925"]}]}]}]},"publicRecordsInfo":{"taxInfo":{"rollYear":2023,"taxesDue":4200.5}}}}`

	fetcher := &stubFetcher{responses: map[string]stubResponse{
		propertyURL: {status: http.StatusOK, body: readFixture(t, "testdata/sample_property.html")},
		auxURL:      {status: http.StatusOK, body: []byte(aux)},
	}}

	res := New(fetcher, testBaseURL, 1).ScrapeProperty(context.Background(), propertyURL)

	var unitErrors int
	for _, err := range res.Errors {
		if strings.Contains(err.Error(), "Units") {
			unitErrors++
		}
	}
	if unitErrors != 1 {
		t.Fatalf("errors = %v, want exactly one mentioning Units", res.ErrorStrings())
	}
	if res.Property.NumUnits != 0 {
		t.Errorf("units = %d, want the zero default", res.Property.NumUnits)
	}
}
