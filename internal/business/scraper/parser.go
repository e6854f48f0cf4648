package scraper

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/propscan/propscan/pkg/model"
	"github.com/propscan/propscan/pkg/money"
)

// sanitize trims whitespace and stray commas from a scraped value.
func sanitize(v string) string {
	return strings.Trim(strings.TrimSpace(v), ",")
}

// parseAddress pulls street/city/state out of the structured markup.
// Missing pieces come back as empty strings, never as errors.
func parseAddress(doc *goquery.Document) (street, city, state string) {
	street = sanitize(doc.Find(`span[itemprop="streetAddress"]`).First().Text())
	city = sanitize(doc.Find(`span[itemprop="addressLocality"]`).First().Text())
	state = sanitize(doc.Find(`span[itemprop="addressRegion"]`).First().Text())
	return street, city, state
}

// parsePrice reads the asking price from the page's price info block.
func parsePrice(doc *goquery.Document) (float64, error) {
	block := doc.Find("div.info-block.price").First().Find("div").First()
	if block.Length() == 0 {
		return 0, &MissingRequiredFieldError{Field: "Price"}
	}
	price, err := money.Parse(block.Text())
	if err != nil {
		return 0, &MissingRequiredFieldError{Field: "Price"}
	}
	return price, nil
}

// unitCountKeys are the (group, amenity) pairs that may carry the unit
// count, tried in order; the first hit wins.
var unitCountKeys = []struct{ group, amenity string }{
	{"BuildingInformation", "TNU"},
	{"Multi-FamilyInformation", "UNT"},
	{"Multi-FamilyFeatures", "INCPTUNL"},
}

// parseNumUnits finds the number of rental units in the payload tree.
func parseNumUnits(p *payload) (int, error) {
	for _, k := range unitCountKeys {
		values := p.amenity(k.group, k.amenity)
		if len(values) == 0 {
			continue
		}
		n, err := strconv.Atoi(sanitize(values[0]))
		if err != nil {
			continue
		}
		return n, nil
	}
	return 0, &MissingRequiredFieldError{Field: "# of Units"}
}

// parseTotalRent sums per-unit rent figures. A single entry may describe a
// group of identical units; the companion AT<i> field says how many. A
// missing rent entry produces a warning and stops the scan, leaving a
// partial total that is still usable downstream.
func parseTotalRent(p *payload, numUnits int) (total float64, warnings []string) {
	accounted := 0
	for i := 0; i < numUnits && accounted < numUnits; i++ {
		unit := i + 1
		group := fmt.Sprintf("Unit%dInformation", unit)

		var rentValues []string
		for _, amenity := range []string{
			fmt.Sprintf("RT%d", unit),
			fmt.Sprintf("IN%d", unit),
			fmt.Sprintf("INCPU%d_RT", unit),
		} {
			rentValues = p.amenity(group, amenity)
			if len(rentValues) > 0 {
				break
			}
		}

		rentFound := false
		if len(rentValues) > 0 {
			if rent, err := money.Parse(rentValues[0]); err == nil {
				count := 1
				if countValues := p.amenity(group, fmt.Sprintf("AT%d", unit)); len(countValues) > 0 {
					if n, err := strconv.Atoi(sanitize(countValues[0])); err == nil {
						count = n
					}
				}
				total += rent * float64(count)
				accounted += count
				rentFound = true
			}
		}
		if !rentFound {
			warnings = append(warnings, fmt.Sprintf("could not find rent for unit %d", unit))
			break
		}
	}
	return total, warnings
}

// parseTaxes reads the assessment year and annual tax bill from the public
// records section. Any malformed structure becomes a single ParseError
// carrying the underlying cause.
func parseTaxes(p *payload) (taxYear string, annualTaxes float64, err error) {
	if len(p.PublicRecordsInfo) == 0 {
		return "", 0, &ParseError{What: "taxes", Err: fmt.Errorf("no public records info")}
	}
	var records publicRecordsInfo
	if err := json.Unmarshal(p.PublicRecordsInfo, &records); err != nil {
		return "", 0, &ParseError{What: "taxes", Err: err}
	}
	if records.TaxInfo == nil || records.TaxInfo.TaxesDue == nil {
		return "", 0, &ParseError{What: "taxes", Err: fmt.Errorf("tax info is missing")}
	}
	due, err := records.TaxInfo.TaxesDue.Float64()
	if err != nil {
		return "", 0, &ParseError{What: "taxes", Err: err}
	}
	return sanitize(records.TaxInfo.RollYear.String()), due, nil
}

// tenantPaysValues maps the source's "Tenant Pays" labels onto utilities.
// Labels outside this table produce warnings so new source vocabulary shows
// up instead of silently disappearing.
var tenantPaysValues = map[string]model.Utility{
	"Tenant Pays Electric": model.UtilityElectric,
	"Tenant Pays Gas":      model.UtilityGas,
	"Tenant Pays Water":    model.UtilityWater,
}

const tenantPaysAll = "Tenant Pays All"

// parseUtilities resolves, per unit, which utilities that unit's tenant
// covers. A unit with no "Tenant Pays" entry is assumed to pay everything,
// which keeps the landlord expense estimate conservative.
func parseUtilities(p *payload, numUnits int) (paid [][]model.Utility, warnings []string) {
	for i := 0; i < numUnits; i++ {
		unit := i + 1
		tenantPays := p.amenity(fmt.Sprintf("Unit%dInformation", unit), fmt.Sprintf("TP%d", unit))
		if len(tenantPays) == 0 {
			paid = append(paid, model.AllUtilities())
			continue
		}

		paysAll := false
		for _, v := range tenantPays {
			if v == tenantPaysAll {
				paysAll = true
				break
			}
		}
		if paysAll {
			paid = append(paid, model.AllUtilities())
			continue
		}

		var utilities []model.Utility
		for _, v := range tenantPays {
			u, ok := tenantPaysValues[v]
			if !ok {
				warnings = append(warnings, fmt.Sprintf("unknown Tenant Pays value: %s", v))
				continue
			}
			utilities = append(utilities, u)
		}
		paid = append(paid, utilities)
	}
	return paid, warnings
}
