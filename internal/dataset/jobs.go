package dataset

import (
	"io/fs"
	"log/slog"

	"goalboom/pkg/models"
)

// LoadJobs reads the occupation picker list. Labels outside the closed
// occupation set are logged and skipped.
func LoadJobs(fsys fs.FS, logger *slog.Logger) ([]models.Occupation, error) {
	recs, err := Open(fsys, KindJobs)
	if err != nil {
		return nil, err
	}
	return ParseJobs(recs, logger), nil
}

func ParseJobs(recs []Record, logger *slog.Logger) []models.Occupation {
	if logger == nil {
		logger = slog.Default()
	}

	seen := make(map[models.Occupation]bool, len(recs))
	out := make([]models.Occupation, 0, len(recs))
	for _, rec := range recs {
		label, ok := rec.String("Name")
		if !ok {
			logger.Warn("job record without name", "keys", rec.Keys())
			continue
		}
		o, err := models.ParseOccupation(label)
		if err != nil {
			logger.Warn("unknown job label", "label", label)
			continue
		}
		if seen[o] {
			continue
		}
		seen[o] = true
		out = append(out, o)
	}
	return out
}
