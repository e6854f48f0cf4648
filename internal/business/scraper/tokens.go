package scraper

// The source site buries the parameters of its JSON APIs inside raw page
// markup. Everything in this file is site-version-dependent by nature, so
// the brittle pattern matching stays behind these few functions.

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// pageTokens are the three numeric identifiers embedded in a property page;
// together they parameterize the below-the-fold API call.
type pageTokens struct {
	PropertyID  string
	AccessLevel string
	ListingID   string
}

var tokenPattern = regexp.MustCompile(`"(propertyId|accessLevel|listingId)":(\d+)`)

// extractPageTokens scans raw page text for the `"<name>":<digits>` tokens.
// The bool result is false when any of the three is missing.
func extractPageTokens(pageText string) (pageTokens, bool) {
	found := make(map[string]string, 3)
	for _, m := range tokenPattern.FindAllStringSubmatch(pageText, -1) {
		if _, ok := found[m[1]]; !ok {
			found[m[1]] = m[2]
		}
	}
	t := pageTokens{
		PropertyID:  found["propertyId"],
		AccessLevel: found["accessLevel"],
		ListingID:   found["listingId"],
	}
	return t, t.PropertyID != "" && t.AccessLevel != "" && t.ListingID != ""
}

// belowTheFoldURL builds the auxiliary API URL from the page tokens.
func belowTheFoldURL(baseURL string, t pageTokens) string {
	return fmt.Sprintf("%s/stingray/api/home/details/belowTheFold?propertyId=%s&accessLevel=%s&listingId=%s",
		baseURL, t.PropertyID, t.AccessLevel, t.ListingID)
}

// maxListings is what the num_homes query parameter gets rewritten to, so a
// single API call returns every listing instead of paginating.
const maxListings = 3000

var (
	gisFragmentPattern   = regexp.MustCompile(`\\u002Fstingray\\u002Fapi\\u002Fgis\?[^"]*`)
	unicodeEscapePattern = regexp.MustCompile(`\\u([0-9a-fA-F]{4})`)
	numHomesPattern      = regexp.MustCompile(`num_homes=\d+`)
)

// extractListingAPIURL digs the backslash-escaped gis API fragment out of a
// search results page and resolves it into an absolute URL with the
// page-size parameter raised to maxListings.
func extractListingAPIURL(baseURL, pageText string) (string, bool) {
	frag := gisFragmentPattern.FindString(pageText)
	if frag == "" {
		return "", false
	}
	frag = decodeEscaped(frag)
	frag = numHomesPattern.ReplaceAllString(frag, fmt.Sprintf("num_homes=%d", maxListings))
	return baseURL + frag, true
}

// decodeEscaped undoes the source's escaping scheme (\uXXXX and \/).
func decodeEscaped(s string) string {
	s = unicodeEscapePattern.ReplaceAllStringFunc(s, func(m string) string {
		code, err := strconv.ParseUint(m[2:], 16, 32)
		if err != nil {
			return m
		}
		return string(rune(code))
	})
	return strings.ReplaceAll(s, `\/`, "/")
}
