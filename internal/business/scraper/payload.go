package scraper

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// jsonGuard is the literal prefix the source site prepends to its API
// responses before the JSON body begins.
const jsonGuard = "{}&&"

// stripJSONGuard removes the `{}&&` anti-hijacking prefix if present.
func stripJSONGuard(body []byte) []byte {
	return bytes.TrimPrefix(body, []byte(jsonGuard))
}

// belowTheFold models the slice of the auxiliary API response the pipeline
// actually reads.
type belowTheFold struct {
	Payload payload `json:"payload"`
}

type payload struct {
	AmenitiesInfo amenitiesInfo `json:"amenitiesInfo"`
	// PublicRecordsInfo is decoded lazily so a malformed tax section
	// surfaces as an isolated taxes error instead of failing the payload.
	PublicRecordsInfo json.RawMessage `json:"publicRecordsInfo"`
}

type amenitiesInfo struct {
	SuperGroups []superGroup `json:"superGroups"`
}

type superGroup struct {
	AmenityGroups []amenityGroup `json:"amenityGroups"`
}

type amenityGroup struct {
	ReferenceName  string         `json:"referenceName"`
	AmenityEntries []amenityEntry `json:"amenityEntries"`
}

type amenityEntry struct {
	ReferenceName string   `json:"referenceName"`
	AmenityValues []string `json:"amenityValues"`
}

type publicRecordsInfo struct {
	TaxInfo *taxRecord `json:"taxInfo"`
}

type taxRecord struct {
	RollYear json.Number  `json:"rollYear"`
	TaxesDue *json.Number `json:"taxesDue"`
}

// decodeBelowTheFold parses an auxiliary API response body into the payload
// tree.
func decodeBelowTheFold(body []byte) (*payload, error) {
	var data belowTheFold
	if err := json.Unmarshal(stripJSONGuard(body), &data); err != nil {
		return nil, fmt.Errorf("decode below-the-fold payload: %w", err)
	}
	return &data.Payload, nil
}

// amenity returns the values of the entry amenityName inside the group
// groupName, or nil when no such entry exists anywhere in the tree.
func (p *payload) amenity(groupName, amenityName string) []string {
	for _, sg := range p.AmenitiesInfo.SuperGroups {
		for _, g := range sg.AmenityGroups {
			if g.ReferenceName != groupName {
				continue
			}
			for _, e := range g.AmenityEntries {
				if e.ReferenceName == amenityName {
					return e.AmenityValues
				}
			}
		}
	}
	return nil
}
