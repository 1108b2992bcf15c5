package heroes

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"strings"
	"sync"

	"goalboom/internal/dataset"
	"goalboom/pkg/models"
)

// ErrConfig marks bundled hero data that cannot be used at all.
// There is no recovery: the data file has to be fixed.
var ErrConfig = errors.New("hero data configuration error")

var errCountryRequired = errors.New("country required")

type Query struct {
	Gender     models.Gender     `json:"gender"`
	Occupation models.Occupation `json:"occupation"`
	Country    string            `json:"country"`
}

// Match requires all three facets.
func (q Query) Match(h models.HeroRecord) bool {
	return h.InCountry(q.Country) &&
		h.Gender.Matches(q.Gender) &&
		h.HasJob(q.Occupation)
}

type Catalog struct {
	mu      sync.RWMutex
	records []models.HeroRecord

	assets *AssetResolver
	logger *slog.Logger
}

func NewCatalog(assets *AssetResolver, logger *slog.Logger) *Catalog {
	if logger == nil {
		logger = slog.Default()
	}
	return &Catalog{assets: assets, logger: logger}
}

// LoadFS reads the heroes dataset from fsys and loads it.
func (c *Catalog) LoadFS(fsys fs.FS) error {
	recs, err := dataset.Open(fsys, dataset.KindHeroes)
	if err != nil {
		return err
	}
	return c.Load(recs)
}

// Load replaces the catalog contents with recs. On error the catalog is
// left empty.
func (c *Catalog) Load(recs []dataset.Record) error {
	c.mu.Lock()
	c.records = nil
	c.mu.Unlock()

	parsed := make([]models.HeroRecord, 0, len(recs))
	for i, rec := range recs {
		h, err := c.parse(rec)
		if err != nil {
			return fmt.Errorf("record %d: %w", i, err)
		}
		parsed = append(parsed, h)
	}

	c.mu.Lock()
	c.records = parsed
	c.mu.Unlock()

	c.logger.Info("hero catalog loaded", "records", len(parsed))
	return nil
}

func (c *Catalog) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.records)
}

func (c *Catalog) All() []models.HeroRecord {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([]models.HeroRecord, len(c.records))
	copy(out, c.records)
	return out
}

// Query returns matching records in source order. No match gives an
// empty, non-nil slice.
func (c *Catalog) Query(q Query) []models.HeroRecord {
	c.mu.RLock()
	defer c.mu.RUnlock()

	out := make([]models.HeroRecord, 0)
	for _, h := range c.records {
		if q.Match(h) {
			out = append(out, h)
		}
	}
	return out
}

func (c *Catalog) Get(name string) (models.HeroRecord, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	name = strings.TrimSpace(name)
	for _, h := range c.records {
		if strings.EqualFold(h.Name, name) {
			return h, true
		}
	}
	return models.HeroRecord{}, false
}
