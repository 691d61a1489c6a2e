// Package geo maps matched regions onto the map identifiers a renderer
// highlights: ISO 3166-1 alpha-2 country codes and USPS state codes.
package geo

import "github.com/HerbHall/terroir/pkg/models"

// CountryUnitedStates is the catalog country name that gets state-level
// highlighting.
const CountryUnitedStates = "United States"

// countryToISO maps catalog country names to ISO alpha-2 codes.
var countryToISO = map[string]string{
	"United States": "US",
	"France":        "FR",
	"Italy":         "IT",
	"Spain":         "ES",
	"Portugal":      "PT",
	"Argentina":     "AR",
	"South Africa":  "ZA",
	"Australia":     "AU",
	"New Zealand":   "NZ",
	"Germany":       "DE",
	"Austria":       "AT",
	"Chile":         "CL",
	"Greece":        "GR",
	"Hungary":       "HU",
}

// stateToAbbr maps US state names to postal abbreviations.
var stateToAbbr = map[string]string{
	"California": "CA", "Oregon": "OR", "Washington": "WA", "New York": "NY",
	"Texas": "TX", "Virginia": "VA", "Colorado": "CO", "Arizona": "AZ",
	"Michigan": "MI", "Ohio": "OH", "Pennsylvania": "PA", "Missouri": "MO",
	"Idaho": "ID", "New Mexico": "NM", "North Carolina": "NC",
}

// CountryCode returns the ISO alpha-2 code for a catalog country name.
func CountryCode(country string) (string, bool) {
	code, ok := countryToISO[country]
	return code, ok
}

// StateCode returns the postal abbreviation for a US state name.
func StateCode(state string) (string, bool) {
	code, ok := stateToAbbr[state]
	return code, ok
}

// HighlightSet is what a map renderer needs to mark matched regions.
type HighlightSet struct {
	// Countries holds distinct ISO codes in first-seen order.
	Countries []string `json:"countries"`
	// States holds distinct US state codes in first-seen order.
	States []string `json:"states"`
	// CountryRegions lists region names per non-US country code.
	CountryRegions map[string][]string `json:"country_regions"`
	// StateRegions lists region names per US state code.
	StateRegions map[string][]string `json:"state_regions"`
}

// Highlights derives map highlights from matched regions. Countries and
// states missing from the lookup tables are left out.
func Highlights(regions []models.ScoredRegion) HighlightSet {
	hs := HighlightSet{
		Countries:      []string{},
		States:         []string{},
		CountryRegions: map[string][]string{},
		StateRegions:   map[string][]string{},
	}
	seenCountry := make(map[string]bool)
	seenState := make(map[string]bool)

	for i := range regions {
		r := &regions[i].Entity
		code, ok := countryToISO[r.Country]
		if !ok {
			continue
		}
		if !seenCountry[code] {
			seenCountry[code] = true
			hs.Countries = append(hs.Countries, code)
		}

		if r.Country != CountryUnitedStates {
			hs.CountryRegions[code] = append(hs.CountryRegions[code], r.Name)
			continue
		}
		if r.StateOrProvince == "" {
			continue
		}
		abbr, ok := stateToAbbr[r.StateOrProvince]
		if !ok {
			continue
		}
		if !seenState[abbr] {
			seenState[abbr] = true
			hs.States = append(hs.States, abbr)
		}
		hs.StateRegions[abbr] = append(hs.StateRegions[abbr], r.Name)
	}
	return hs
}
