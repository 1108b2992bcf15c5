package models

import "strings"

type HeroRecord struct {
	Name        string       `json:"name"`
	Country     string       `json:"country"`
	CountryFlag string       `json:"country_flag,omitempty"`
	SmallImage  string       `json:"small_image"`
	LargeImage  string       `json:"large_image"`
	Quotes      []string     `json:"quotes"`
	Info        string       `json:"info,omitempty"`
	Jobs        []Occupation `json:"jobs"`
	Gender      Gender       `json:"gender"`
}

// HasJob is a case-insensitive membership test on the job set.
func (h HeroRecord) HasJob(o Occupation) bool {
	for _, j := range h.Jobs {
		if strings.EqualFold(string(j), string(o)) {
			return true
		}
	}
	return false
}

func (h HeroRecord) InCountry(country string) bool {
	return strings.EqualFold(h.Country, strings.TrimSpace(country))
}
