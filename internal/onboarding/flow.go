package onboarding

import (
	"errors"
	"fmt"
	"strings"

	"goalboom/internal/heroes"
	"goalboom/pkg/models"
)

type State string

const (
	StateIntro          State = "intro"
	StateRegionPick     State = "region_pick"
	StateGenderPick     State = "gender_pick"
	StateOccupationPick State = "occupation_pick"
	StateHeroResults    State = "hero_results"
	StateHeroDetail     State = "hero_detail"
)

// flow order; Back walks it in reverse
var states = []State{
	StateIntro,
	StateRegionPick,
	StateGenderPick,
	StateOccupationPick,
	StateHeroResults,
	StateHeroDetail,
}

var (
	ErrInvalidTransition = errors.New("invalid onboarding transition")
	ErrNoHeroes          = errors.New("no heroes to show")
)

func ParseState(s string) (State, error) {
	for _, st := range states {
		if string(st) == s {
			return st, nil
		}
	}
	return "", fmt.Errorf("unknown onboarding state %q", s)
}

// Flow is the onboarding position plus the answers collected so far.
// Transitions return a new Flow and leave the receiver untouched.
type Flow struct {
	State       State              `json:"state"`
	Profile     models.UserProfile `json:"profile"`
	SlideCursor int                `json:"slide_cursor"`
	Hero        string             `json:"hero,omitempty"`
}

func NewFlow() Flow {
	return Flow{State: StateIntro, Profile: models.NewUserProfile()}
}

func (f Flow) expect(st State) error {
	if f.State != st {
		return fmt.Errorf("%w: in %s, want %s", ErrInvalidTransition, f.State, st)
	}
	return nil
}

func (f Flow) WithSlideCursor(n int) (Flow, error) {
	if err := f.expect(StateIntro); err != nil {
		return f, err
	}
	f.SlideCursor = n
	return f, nil
}

func (f Flow) FinishIntro() (Flow, error) {
	if err := f.expect(StateIntro); err != nil {
		return f, err
	}
	f.State = StateRegionPick
	return f, nil
}

func (f Flow) ChooseRegion(choice models.RegionChoice) (Flow, error) {
	if err := f.expect(StateRegionPick); err != nil {
		return f, err
	}
	if strings.TrimSpace(choice.Country) == "" {
		return f, fmt.Errorf("%w: country required", ErrInvalidInput)
	}
	f.Profile = f.Profile.WithRegion(choice)
	f.State = StateGenderPick
	return f, nil
}

func (f Flow) ChooseGender(g models.Gender) (Flow, error) {
	if err := f.expect(StateGenderPick); err != nil {
		return f, err
	}
	f.Profile = f.Profile.WithGender(g)
	f.State = StateOccupationPick
	return f, nil
}

func (f Flow) ChooseOccupation(o models.Occupation) (Flow, error) {
	if err := f.expect(StateOccupationPick); err != nil {
		return f, err
	}
	f.Profile = f.Profile.WithOccupation(o)
	f.State = StateHeroResults
	return f, nil
}

// OpenHero moves to the detail screen for one of the current matches.
func (f Flow) OpenHero(name string, matches []models.HeroRecord) (Flow, error) {
	if err := f.expect(StateHeroResults); err != nil {
		return f, err
	}
	if len(matches) == 0 {
		return f, ErrNoHeroes
	}
	for _, h := range matches {
		if strings.EqualFold(h.Name, strings.TrimSpace(name)) {
			f.Hero = h.Name
			f.State = StateHeroDetail
			return f, nil
		}
	}
	return f, fmt.Errorf("%w: %q is not among the results", ErrInvalidInput, name)
}

// Back steps to the previous screen. Answers already given are kept so
// the picker can show them preselected.
func (f Flow) Back() (Flow, error) {
	for i, st := range states {
		if st != f.State {
			continue
		}
		if i == 0 {
			return f, fmt.Errorf("%w: already at %s", ErrInvalidTransition, f.State)
		}
		if f.State == StateHeroDetail {
			f.Hero = ""
		}
		f.State = states[i-1]
		return f, nil
	}
	return f, fmt.Errorf("%w: unknown state %s", ErrInvalidTransition, f.State)
}

// Restart discards all answers.
func (f Flow) Restart() Flow {
	return NewFlow()
}

// HasResults reports whether the profile is complete enough to query.
func (f Flow) HasResults() bool {
	return f.State == StateHeroResults || f.State == StateHeroDetail
}

func (f Flow) Query() heroes.Query {
	return heroes.Query{
		Gender:     f.Profile.Gender,
		Occupation: f.Profile.Occupation,
		Country:    f.Profile.Region.Country,
	}
}
