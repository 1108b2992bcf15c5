package dataset

import (
	"fmt"
	"sort"
	"strings"
)

// Record is one dictionary from a dataset file.
type Record map[string]any

// String returns the value under key as text. Non-string scalars
// (numbers, booleans) are formatted.
func (r Record) String(key string) (string, bool) {
	v, ok := r[key]
	if !ok || v == nil {
		return "", false
	}
	switch t := v.(type) {
	case string:
		return strings.TrimSpace(t), true
	case []any, map[string]any:
		return "", false
	default:
		return fmt.Sprint(t), true
	}
}

// Strings returns a list value. A single scalar is treated as a list of one.
func (r Record) Strings(key string) ([]string, bool) {
	v, ok := r[key]
	if !ok || v == nil {
		return nil, false
	}
	list, isList := v.([]any)
	if !isList {
		s, ok := r.String(key)
		if !ok {
			return nil, false
		}
		return []string{s}, true
	}

	out := make([]string, 0, len(list))
	for _, item := range list {
		switch t := item.(type) {
		case string:
			out = append(out, strings.TrimSpace(t))
		case nil:
		default:
			out = append(out, fmt.Sprint(t))
		}
	}
	return out, true
}

func (r Record) Keys() []string {
	keys := make([]string, 0, len(r))
	for k := range r {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// SplitCountry parses the "NAME FLAG" encoding used by the data files:
// the first whitespace token is the country, the second the flag glyph.
func SplitCountry(raw string) (country, flag string) {
	fields := strings.Fields(raw)
	if len(fields) > 0 {
		country = fields[0]
	}
	if len(fields) > 1 {
		flag = fields[1]
	}
	return country, flag
}
