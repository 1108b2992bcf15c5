package dataset

import (
	"errors"
	"fmt"
	"io/fs"
	"path"
	"strings"

	"github.com/goccy/go-json"
	"gopkg.in/yaml.v3"
	"howett.net/plist"
)

var (
	// ErrMissing means no file exists for a dataset. Bundled data is a
	// build artifact, so callers treat this as fatal.
	ErrMissing = errors.New("dataset missing")
	// ErrMalformed means the file exists but is not an array of dictionaries.
	ErrMalformed = errors.New("dataset malformed")
)

// lookup order when several encodings of the same dataset are present
var extensions = []string{".plist", ".json", ".yaml", ".yml"}

// Open finds and decodes the file for kind inside fsys.
func Open(fsys fs.FS, kind Kind) ([]Record, error) {
	for _, ext := range extensions {
		name := kind.String() + ext
		b, err := fs.ReadFile(fsys, name)
		if errors.Is(err, fs.ErrNotExist) {
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", name, err)
		}

		recs, err := Decode(name, b)
		if err != nil {
			return nil, fmt.Errorf("decode %s: %w", name, err)
		}
		return recs, nil
	}
	return nil, fmt.Errorf("%w: %s", ErrMissing, kind)
}

// Decode picks the codec from the file extension of name.
func Decode(name string, b []byte) ([]Record, error) {
	var root any
	switch ext := strings.ToLower(path.Ext(name)); ext {
	case ".plist":
		if _, err := plist.Unmarshal(b, &root); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
		}
	case ".json":
		if err := json.Unmarshal(b, &root); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
		}
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(b, &root); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
		}
	default:
		return nil, fmt.Errorf("unsupported extension %q", ext)
	}
	return toRecords(root)
}

func toRecords(root any) ([]Record, error) {
	items, ok := root.([]any)
	if !ok {
		return nil, fmt.Errorf("%w: root is %T, want array", ErrMalformed, root)
	}

	out := make([]Record, 0, len(items))
	for i, item := range items {
		m, ok := item.(map[string]any)
		if !ok {
			return nil, fmt.Errorf("%w: item %d is %T, want dictionary", ErrMalformed, i, item)
		}
		out = append(out, Record(m))
	}
	return out, nil
}
