package heroes

import (
	"errors"
	"fmt"

	"goalboom/internal/dataset"
	"goalboom/pkg/models"
)

const (
	keyName    = "Name"
	keyCountry = "Country"
	keyQuotes  = "Quotes"
	keyImage   = "Image"
	keyJobs    = "Jobs"
	keyInfo    = "Info"
	keyGender  = "Gender"
)

func (c *Catalog) parse(rec dataset.Record) (models.HeroRecord, error) {
	h := models.HeroRecord{
		SmallImage: PlaceholderImage,
		LargeImage: PlaceholderImage,
		Quotes:     []string{},
		Jobs:       []models.Occupation{},
		Gender:     models.GenderUnspecified,
	}
	h.Name, _ = rec.String(keyName)
	log := c.logger.With("hero", h.Name)

	for _, key := range rec.Keys() {
		switch key {
		case keyName:
		case keyCountry:
			raw, _ := rec.String(key)
			h.Country, h.CountryFlag = dataset.SplitCountry(raw)
		case keyQuotes:
			if quotes, ok := rec.Strings(key); ok {
				h.Quotes = quotes
			}
		case keyInfo:
			h.Info, _ = rec.String(key)
		case keyImage:
			name, _ := rec.String(key)
			h.SmallImage = c.image(name, Variant2x)
			h.LargeImage = c.image(name, Variant3x)
		case keyJobs:
			labels, _ := rec.Strings(key)
			h.Jobs = c.jobs(labels)
		case keyGender:
			g, err := recordGender(rec)
			if err != nil {
				return models.HeroRecord{}, fmt.Errorf("%w: %q: %v", ErrConfig, h.Name, err)
			}
			h.Gender = g
		default:
			log.Debug("ignoring unknown hero key", "key", key)
		}
	}
	return h, nil
}

// recordGender is stricter than request parsing: a Gender key that is
// present must hold one of the three values spelled out.
func recordGender(rec dataset.Record) (models.Gender, error) {
	raw, ok := rec.String(keyGender)
	if !ok {
		return "", fmt.Errorf("gender must be text, got %T", rec[keyGender])
	}
	if raw == "" {
		return "", errors.New("gender is empty")
	}
	return models.ParseGender(raw)
}

func (c *Catalog) image(name string, v Variant) string {
	p, ok := c.assets.Resolve(name, v)
	if !ok {
		c.logger.Warn("hero image not found", "image", name, "variant", string(v))
		return PlaceholderImage
	}
	return p
}

func (c *Catalog) jobs(labels []string) []models.Occupation {
	out := make([]models.Occupation, 0, len(labels))
	seen := make(map[models.Occupation]bool, len(labels))
	for _, label := range labels {
		o, err := models.ParseOccupation(label)
		if err != nil {
			c.logger.Warn("dropping unknown job label", "label", label)
			continue
		}
		if !seen[o] {
			seen[o] = true
			out = append(out, o)
		}
	}
	return out
}
