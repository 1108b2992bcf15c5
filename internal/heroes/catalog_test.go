package heroes

import (
	"io"
	"io/fs"
	"log/slog"
	"os"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"goalboom/internal/dataset"
	"goalboom/pkg/models"
)

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func testAssets() fstest.MapFS {
	return fstest.MapFS{
		"iwata@2x.png":  {Data: []byte("png")},
		"iwata@3x.jpg":  {Data: []byte("jpg")},
		"iwata@3x.png":  {Data: []byte("png")},
		"hopper@2x.jpg": {Data: []byte("jpg")},
	}
}

func testRecords() []dataset.Record {
	return []dataset.Record{
		{"Name": "Satoru Iwata", "Country": "Japan 🇯🇵", "Gender": "man", "Image": "iwata",
			"Jobs": []any{"developer", "Entrepreneur"}, "Quotes": []any{"On my business card, I am a corporate president."}},
		{"Name": "Grace Hopper", "Country": "USA 🇺🇸", "Gender": "Woman", "Image": "hopper",
			"Jobs": []any{"Developer", "Scientist"}},
		{"Name": "Hayao Miyazaki", "Country": "japan 🇯🇵", "Gender": "man",
			"Jobs": []any{"Artist"}},
		{"Name": "Ai Fukuhara", "Country": "Japan 🇯🇵", "Gender": "woman",
			"Jobs": []any{"DEVELOPER", "Athlete"}},
		{"Name": "Anon", "Country": "Japan 🇯🇵",
			"Jobs": []any{"developer"}},
	}
}

func loadedCatalog(t *testing.T) *Catalog {
	t.Helper()
	c := NewCatalog(NewAssetResolver(testAssets()), quietLogger())
	require.NoError(t, c.Load(testRecords()))
	return c
}

func names(hs []models.HeroRecord) []string {
	out := make([]string, 0, len(hs))
	for _, h := range hs {
		out = append(out, h.Name)
	}
	return out
}

func TestQueryUnspecifiedGenderMatchesAny(t *testing.T) {
	c := loadedCatalog(t)

	got := c.Query(Query{
		Gender:     models.GenderUnspecified,
		Occupation: models.OccupationDeveloper,
		Country:    "Japan",
	})
	assert.Equal(t, []string{"Satoru Iwata", "Ai Fukuhara", "Anon"}, names(got))
}

func TestQueryIsConjunctive(t *testing.T) {
	c := loadedCatalog(t)

	got := c.Query(Query{Gender: models.GenderWoman, Occupation: models.OccupationDeveloper, Country: "JAPAN"})
	assert.Equal(t, []string{"Ai Fukuhara"}, names(got))

	got = c.Query(Query{Gender: models.GenderMan, Occupation: models.OccupationScientist, Country: "USA"})
	assert.Empty(t, got)
}

func TestQueryUnknownCountryIsEmpty(t *testing.T) {
	c := loadedCatalog(t)

	got := c.Query(Query{Gender: models.GenderUnspecified, Occupation: models.OccupationDeveloper, Country: "Atlantis"})
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestLoadParsesCountryAndFlag(t *testing.T) {
	c := loadedCatalog(t)

	h, ok := c.Get("satoru iwata")
	require.True(t, ok)
	assert.Equal(t, "Japan", h.Country)
	assert.Equal(t, "🇯🇵", h.CountryFlag)
	assert.Equal(t, models.GenderMan, h.Gender)
	assert.Equal(t, []models.Occupation{models.OccupationDeveloper, models.OccupationEntrepreneur}, h.Jobs)
	assert.Len(t, h.Quotes, 1)
}

func TestLoadResolvesImageVariants(t *testing.T) {
	c := loadedCatalog(t)

	iwata, _ := c.Get("Satoru Iwata")
	assert.Equal(t, "iwata@2x.png", iwata.SmallImage)
	assert.Equal(t, "iwata@3x.png", iwata.LargeImage)

	hopper, _ := c.Get("Grace Hopper")
	assert.Equal(t, "hopper@2x.jpg", hopper.SmallImage)
	assert.Equal(t, PlaceholderImage, hopper.LargeImage)

	miyazaki, _ := c.Get("Hayao Miyazaki")
	assert.Equal(t, PlaceholderImage, miyazaki.SmallImage)
	assert.Equal(t, PlaceholderImage, miyazaki.LargeImage)
}

// deniedFS fails Stat with a permission error for one path.
type deniedFS struct {
	fstest.MapFS
	denied string
}

func (d deniedFS) Stat(name string) (fs.FileInfo, error) {
	if name == d.denied {
		return nil, &fs.PathError{Op: "stat", Path: name, Err: fs.ErrPermission}
	}
	return d.MapFS.Stat(name)
}

func TestResolveFallsBackToJPGAfterStatError(t *testing.T) {
	r := NewAssetResolver(deniedFS{
		MapFS:  fstest.MapFS{"tu@2x.jpg": {Data: []byte("jpg")}},
		denied: "tu@2x.png",
	})

	p, ok := r.Resolve("tu", Variant2x)
	require.True(t, ok)
	assert.Equal(t, "tu@2x.jpg", p)

	_, ok = r.Resolve("tu", Variant3x)
	assert.False(t, ok)
}

func TestLoadDropsUnknownJobLabels(t *testing.T) {
	c := NewCatalog(nil, quietLogger())
	err := c.Load([]dataset.Record{
		{"Name": "Merlin", "Country": "Wales 🏴", "Gender": "man", "Info": "court advisor",
			"Jobs": []any{"wizard", "Teacher"}, "Wand": "oak"},
	})
	require.NoError(t, err)
	require.Equal(t, 1, c.Len())

	h := c.All()[0]
	assert.Equal(t, []models.Occupation{models.OccupationTeacher}, h.Jobs)
	assert.Equal(t, "court advisor", h.Info)
	assert.Equal(t, "Wales", h.Country)
}

func TestLoadRejectsUnknownGender(t *testing.T) {
	c := loadedCatalog(t)

	err := c.Load([]dataset.Record{
		{"Name": "Ok", "Country": "Japan 🇯🇵", "Gender": "woman"},
		{"Name": "Broken", "Country": "Japan 🇯🇵", "Gender": "robot"},
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrConfig)
	assert.Equal(t, 0, c.Len())
}

func TestLoadRejectsMalformedGender(t *testing.T) {
	cases := map[string]any{
		"list":  []any{"robot"},
		"dict":  map[string]any{"value": "woman"},
		"blank": "   ",
		"empty": "",
		"null":  nil,
	}
	for name, gender := range cases {
		t.Run(name, func(t *testing.T) {
			c := loadedCatalog(t)
			err := c.Load([]dataset.Record{
				{"Name": "X", "Country": "Japan 🇯🇵", "Gender": gender},
			})
			assert.ErrorIs(t, err, ErrConfig)
			assert.Equal(t, 0, c.Len())
		})
	}
}

func TestLoadWithoutGenderKeyIsUnspecified(t *testing.T) {
	c := NewCatalog(nil, quietLogger())
	require.NoError(t, c.Load([]dataset.Record{{"Name": "X", "Country": "Japan 🇯🇵"}}))

	h, ok := c.Get("x")
	require.True(t, ok)
	assert.Equal(t, models.GenderUnspecified, h.Gender)
}

func TestLoadTwiceReplacesRecords(t *testing.T) {
	c := loadedCatalog(t)
	require.Equal(t, 5, c.Len())

	require.NoError(t, c.Load(testRecords()[:2]))
	assert.Equal(t, 2, c.Len())
}

func TestLoadFS(t *testing.T) {
	fsys := fstest.MapFS{
		"heroes.yaml": {Data: []byte(`
- Name: Ada Lovelace
  Country: UK 🇬🇧
  Gender: woman
  Jobs: [Scientist, Writer]
  Quotes:
    - That brain of mine is something more than merely mortal.
`)},
	}
	c := NewCatalog(nil, quietLogger())
	require.NoError(t, c.LoadFS(fsys))

	got := c.Query(Query{Gender: models.GenderWoman, Occupation: models.OccupationWriter, Country: "uk"})
	assert.Equal(t, []string{"Ada Lovelace"}, names(got))
}

func TestLoadFSMissingDataset(t *testing.T) {
	c := NewCatalog(nil, quietLogger())
	assert.ErrorIs(t, c.LoadFS(fstest.MapFS{}), dataset.ErrMissing)
}

func TestBundledCatalog(t *testing.T) {
	c := NewCatalog(NewAssetResolver(nil), quietLogger())
	require.NoError(t, c.LoadFS(os.DirFS("../../data")))
	require.Equal(t, 8, c.Len())

	got := c.Query(Query{Gender: models.GenderUnspecified, Occupation: models.OccupationDeveloper, Country: "usa"})
	assert.Equal(t, []string{"Grace Hopper", "Linus Torvalds"}, names(got))

	linus, ok := c.Get("linus torvalds")
	require.True(t, ok)
	assert.Equal(t, []string{"Talk is cheap. Show me the code."}, linus.Quotes)
	assert.Equal(t, PlaceholderImage, linus.SmallImage)
}
