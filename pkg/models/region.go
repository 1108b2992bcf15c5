package models

import "strings"

type CountryEntry struct {
	Flag    string `json:"flag"`
	Country string `json:"country"`
}

// Region groups the countries offered on the region picker.
// Entries are kept sorted by Country.
type Region struct {
	Name    string         `json:"name"`
	Entries []CountryEntry `json:"entries"`
}

// Find returns the entry whose country matches name (case-insensitive).
func (r Region) Find(name string) (CountryEntry, bool) {
	for _, e := range r.Entries {
		if strings.EqualFold(e.Country, name) {
			return e, true
		}
	}
	return CountryEntry{}, false
}
