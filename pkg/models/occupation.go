package models

import (
	"errors"
	"fmt"
	"strings"
)

type Occupation string

const (
	OccupationEngineer     Occupation = "Engineer"
	OccupationDoctor       Occupation = "Doctor"
	OccupationDeveloper    Occupation = "Developer"
	OccupationDesigner     Occupation = "Designer"
	OccupationTeacher      Occupation = "Teacher"
	OccupationScientist    Occupation = "Scientist"
	OccupationArtist       Occupation = "Artist"
	OccupationEntrepreneur Occupation = "Entrepreneur"
	OccupationWriter       Occupation = "Writer"
	OccupationAthlete      Occupation = "Athlete"
	OccupationLawyer       Occupation = "Lawyer"
	OccupationMusician     Occupation = "Musician"
	OccupationStudent      Occupation = "Student"
)

// Occupations is the closed set, in picker order.
var Occupations = []Occupation{
	OccupationEngineer,
	OccupationDoctor,
	OccupationDeveloper,
	OccupationDesigner,
	OccupationTeacher,
	OccupationScientist,
	OccupationArtist,
	OccupationEntrepreneur,
	OccupationWriter,
	OccupationAthlete,
	OccupationLawyer,
	OccupationMusician,
	OccupationStudent,
}

var ErrUnknownOccupation = errors.New("unknown occupation")

func ParseOccupation(raw string) (Occupation, error) {
	label := strings.TrimSpace(raw)
	for _, o := range Occupations {
		if strings.EqualFold(string(o), label) {
			return o, nil
		}
	}
	return "", fmt.Errorf("%w %q", ErrUnknownOccupation, raw)
}
