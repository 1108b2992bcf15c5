package slides

import (
	"fmt"
	"io/fs"

	"goalboom/internal/dataset"
	"goalboom/pkg/models"
)

// LoadDeck reads the slides dataset (keys Image and Caption) in file order.
func LoadDeck(fsys fs.FS) ([]models.Slide, error) {
	recs, err := dataset.Open(fsys, dataset.KindSlides)
	if err != nil {
		return nil, err
	}

	deck := make([]models.Slide, 0, len(recs))
	for i, rec := range recs {
		img, ok := rec.String("Image")
		if !ok || img == "" {
			return nil, fmt.Errorf("%w: slide %d has no Image", dataset.ErrMalformed, i)
		}
		caption, _ := rec.String("Caption")
		deck = append(deck, models.Slide{Image: img, Caption: caption})
	}
	return deck, nil
}
