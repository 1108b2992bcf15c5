package models

import (
	"fmt"
	"strings"
)

type Gender string

const (
	GenderWoman       Gender = "woman"
	GenderMan         Gender = "man"
	GenderUnspecified Gender = "unspecified"
)

// ParseGender accepts the three known values in any case.
// An empty string means the user skipped the question.
func ParseGender(raw string) (Gender, error) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "woman":
		return GenderWoman, nil
	case "man":
		return GenderMan, nil
	case "", "unspecified":
		return GenderUnspecified, nil
	default:
		return "", fmt.Errorf("unknown gender %q", raw)
	}
}

// Matches reports whether a record of gender g satisfies a request for want.
func (g Gender) Matches(want Gender) bool {
	return want == GenderUnspecified || g == want
}
