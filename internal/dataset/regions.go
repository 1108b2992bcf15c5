package dataset

import (
	"fmt"
	"io/fs"
	"sort"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"goalboom/pkg/models"
)

// LoadRegions reads the regions dataset. Each record carries a Name and
// a Countries list of "NAME FLAG" strings.
func LoadRegions(fsys fs.FS) ([]models.Region, error) {
	recs, err := Open(fsys, KindRegions)
	if err != nil {
		return nil, err
	}
	return ParseRegions(recs)
}

func ParseRegions(recs []Record) ([]models.Region, error) {
	out := make([]models.Region, 0, len(recs))
	for i, rec := range recs {
		name, ok := rec.String("Name")
		if !ok || name == "" {
			return nil, fmt.Errorf("%w: region %d has no Name", ErrMalformed, i)
		}

		countries, _ := rec.Strings("Countries")
		entries := make([]models.CountryEntry, 0, len(countries))
		for _, raw := range countries {
			country, flag := SplitCountry(raw)
			if country == "" {
				continue
			}
			entries = append(entries, models.CountryEntry{Flag: flag, Country: country})
		}
		sortEntries(entries)

		out = append(out, models.Region{Name: name, Entries: entries})
	}
	return out, nil
}

func sortEntries(entries []models.CountryEntry) {
	c := collate.New(language.English, collate.IgnoreCase)
	sort.SliceStable(entries, func(i, j int) bool {
		return c.CompareString(entries[i].Country, entries[j].Country) < 0
	})
}
