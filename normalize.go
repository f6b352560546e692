package zipsearch

import (
	"strings"
	"sync"
)

// UsStateCodes maps US state abbreviations to full names. Territories and
// armed forces codes are included because they appear in the catalog.
var UsStateCodes = map[string]string{
	"AL": "Alabama", "AK": "Alaska", "AZ": "Arizona", "AR": "Arkansas",
	"CA": "California", "CO": "Colorado", "CT": "Connecticut", "DE": "Delaware",
	"FL": "Florida", "GA": "Georgia", "HI": "Hawaii", "ID": "Idaho",
	"IL": "Illinois", "IN": "Indiana", "IA": "Iowa", "KS": "Kansas",
	"KY": "Kentucky", "LA": "Louisiana", "ME": "Maine", "MD": "Maryland",
	"MA": "Massachusetts", "MI": "Michigan", "MN": "Minnesota", "MS": "Mississippi",
	"MO": "Missouri", "MT": "Montana", "NE": "Nebraska", "NV": "Nevada",
	"NH": "New Hampshire", "NJ": "New Jersey", "NM": "New Mexico", "NY": "New York",
	"NC": "North Carolina", "ND": "North Dakota", "OH": "Ohio", "OK": "Oklahoma",
	"OR": "Oregon", "PA": "Pennsylvania", "RI": "Rhode Island", "SC": "South Carolina",
	"SD": "South Dakota", "TN": "Tennessee", "TX": "Texas", "UT": "Utah",
	"VT": "Vermont", "VA": "Virginia", "WA": "Washington", "WV": "West Virginia",
	"WI": "Wisconsin", "WY": "Wyoming",
	// Territories
	"AS": "American Samoa", "DC": "District of Columbia",
	"FM": "Federated States of Micronesia", "GU": "Guam",
	"MH": "Marshall Islands", "MP": "Northern Mariana Islands",
	"PW": "Palau", "PR": "Puerto Rico", "VI": "Virgin Islands",
	// Armed Forces
	"AA": "Armed Forces Americas", "AE": "Armed Forces Europe", "AP": "Armed Forces Pacific",
}

// stateNameToAbbr is the inverse of UsStateCodes, keyed by lowercased full
// name. Computed once so normalizeState can resolve "California" -> "CA".
var stateNameToAbbr = sync.OnceValue(func() map[string]string {
	m := make(map[string]string, len(UsStateCodes))
	for abbr, name := range UsStateCodes {
		m[strings.ToLower(name)] = abbr
	}
	return m
})

// normalizeCity case-folds and trims a city name.
func normalizeCity(city string) string {
	return strings.ToLower(strings.TrimSpace(city))
}

// normalizeState upper-cases a state input. Full state names are resolved
// to their 2-letter abbreviation; anything unrecognized is returned
// upper-cased as given.
func normalizeState(state string) string {
	state = strings.TrimSpace(state)
	if len(state) == 2 {
		return strings.ToUpper(state)
	}
	if abbr, ok := stateNameToAbbr()[strings.ToLower(state)]; ok {
		return abbr
	}
	return strings.ToUpper(state)
}

// normalizeZipcode trims a zipcode input and left-pads all-digit inputs
// shorter than five digits with zeros ("501" -> "00501").
func normalizeZipcode(zipcode string) string {
	zipcode = strings.TrimSpace(zipcode)
	if zipcode == "" || len(zipcode) >= 5 {
		return zipcode
	}
	for _, c := range zipcode {
		if c < '0' || c > '9' {
			return zipcode
		}
	}
	return strings.Repeat("0", 5-len(zipcode)) + zipcode
}

// isDigits reports whether s is non-empty and consists solely of ASCII digits.
func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, c := range s {
		if c < '0' || c > '9' {
			return false
		}
	}
	return true
}
