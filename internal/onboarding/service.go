package onboarding

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"goalboom/internal/heroes"
	"goalboom/internal/session"
	"goalboom/internal/slides"
	"goalboom/pkg/models"
)

var (
	ErrInvalidInput = errors.New("invalid input")
	// ErrNoSlides means the deck is empty. The client cannot recover from
	// this; the bundled data has to be fixed.
	ErrNoSlides = errors.New("no slides configured")
)

type Direction string

const (
	DirectionFirst Direction = "first"
	DirectionNext  Direction = "next"
	DirectionBack  Direction = "back"
)

// Publisher receives step events. The websocket hub implements it.
type Publisher interface {
	BroadcastJSON(v any)
}

const StepEventType = "onboarding.step"

type StepEvent struct {
	Type      string    `json:"type"`
	SessionID string    `json:"session_id"`
	From      State     `json:"from"`
	To        State     `json:"to"`
	At        time.Time `json:"at"`
}

// View is what a client renders after each call.
type View struct {
	SessionID string              `json:"session_id"`
	State     State               `json:"state"`
	Profile   models.UserProfile  `json:"profile"`
	Slide     *slides.Page        `json:"slide,omitempty"`
	Results   []models.HeroRecord `json:"results,omitempty"`
	Hero      *models.HeroRecord  `json:"hero,omitempty"`
}

type Service struct {
	Store   session.Store
	Deck    []models.Slide
	Catalog *heroes.Catalog
	Regions []models.Region
	Events  Publisher
	Logger  *slog.Logger

	locks sessionLocks
}

func (s *Service) logger() *slog.Logger {
	if s.Logger == nil {
		return slog.Default()
	}
	return s.Logger
}

// Start opens a new session at the first intro slide.
func (s *Service) Start(ctx context.Context) (View, error) {
	id := uuid.NewString()
	f := NewFlow()
	if err := s.Store.Create(ctx, toSession(id, f)); err != nil {
		return View{}, fmt.Errorf("create session: %w", err)
	}
	s.logger().Info("onboarding started", "session", id)
	return s.view(id, f), nil
}

func (s *Service) Current(ctx context.Context, id string) (View, error) {
	f, _, err := s.load(ctx, id)
	if err != nil {
		return View{}, err
	}
	return s.view(id, f), nil
}

// Slide moves the intro carousel. Only valid while in the intro.
func (s *Service) Slide(ctx context.Context, id string, dir Direction) (View, error) {
	if len(s.Deck) == 0 {
		return View{}, ErrNoSlides
	}

	var page slides.Page
	f, err := s.apply(ctx, id, func(f Flow) (Flow, error) {
		if err := f.expect(StateIntro); err != nil {
			return f, err
		}
		p := slides.NewPager(s.Deck, slides.WithCursor(f.SlideCursor))
		var ok bool
		switch dir {
		case DirectionFirst:
			page, ok = p.First()
		case DirectionNext:
			page, ok = p.Advance()
		case DirectionBack:
			page, ok = p.Retreat()
		default:
			return f, fmt.Errorf("%w: direction %q", ErrInvalidInput, dir)
		}
		if !ok {
			return f, ErrNoSlides
		}
		return f.WithSlideCursor(p.Cursor())
	})
	if err != nil {
		return View{}, err
	}

	v := s.view(id, f)
	v.Slide = &page
	return v, nil
}

func (s *Service) FinishIntro(ctx context.Context, id string) (View, error) {
	return s.step(ctx, id, Flow.FinishIntro)
}

// ChooseRegion records a country picked from one of the known regions.
func (s *Service) ChooseRegion(ctx context.Context, id, region, country string) (View, error) {
	choice, err := s.resolveRegion(region, country)
	if err != nil {
		return View{}, err
	}
	return s.step(ctx, id, func(f Flow) (Flow, error) {
		return f.ChooseRegion(choice)
	})
}

func (s *Service) ChooseGender(ctx context.Context, id, raw string) (View, error) {
	g, err := models.ParseGender(raw)
	if err != nil {
		return View{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	return s.step(ctx, id, func(f Flow) (Flow, error) {
		return f.ChooseGender(g)
	})
}

func (s *Service) ChooseOccupation(ctx context.Context, id, raw string) (View, error) {
	o, err := models.ParseOccupation(raw)
	if err != nil {
		return View{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	return s.step(ctx, id, func(f Flow) (Flow, error) {
		return f.ChooseOccupation(o)
	})
}

// Results returns the matches for a completed questionnaire. An empty
// list is a normal outcome.
func (s *Service) Results(ctx context.Context, id string) (View, error) {
	f, _, err := s.load(ctx, id)
	if err != nil {
		return View{}, err
	}
	if !f.HasResults() {
		return View{}, fmt.Errorf("%w: questionnaire not finished (%s)", ErrInvalidTransition, f.State)
	}
	v := s.view(id, f)
	if v.Results == nil {
		v.Results = []models.HeroRecord{}
	}
	return v, nil
}

func (s *Service) OpenHero(ctx context.Context, id, name string) (View, error) {
	return s.step(ctx, id, func(f Flow) (Flow, error) {
		return f.OpenHero(name, s.Catalog.Query(f.Query()))
	})
}

func (s *Service) Back(ctx context.Context, id string) (View, error) {
	return s.step(ctx, id, Flow.Back)
}

func (s *Service) Restart(ctx context.Context, id string) (View, error) {
	return s.step(ctx, id, func(f Flow) (Flow, error) {
		return f.Restart(), nil
	})
}

func (s *Service) step(ctx context.Context, id string, fn func(Flow) (Flow, error)) (View, error) {
	f, err := s.apply(ctx, id, fn)
	if err != nil {
		return View{}, err
	}
	return s.view(id, f), nil
}

// apply loads the session, runs fn, and persists the result. Nothing is
// saved when fn fails. Calls for the same session run one at a time.
func (s *Service) apply(ctx context.Context, id string, fn func(Flow) (Flow, error)) (Flow, error) {
	unlock := s.locks.lock(id)
	defer unlock()

	f, sess, err := s.load(ctx, id)
	if err != nil {
		return Flow{}, err
	}

	next, err := fn(f)
	if err != nil {
		return Flow{}, err
	}

	updated := toSession(id, next)
	updated.CreatedAt = sess.CreatedAt
	if err := s.Store.Save(ctx, updated); err != nil {
		return Flow{}, fmt.Errorf("save session: %w", err)
	}

	if next.State != f.State {
		s.logger().Info("onboarding step", "session", id, "from", f.State, "to", next.State)
		if s.Events != nil {
			s.Events.BroadcastJSON(StepEvent{
				Type:      StepEventType,
				SessionID: id,
				From:      f.State,
				To:        next.State,
				At:        time.Now().UTC(),
			})
		}
	}
	return next, nil
}

func (s *Service) load(ctx context.Context, id string) (Flow, *session.Session, error) {
	sess, err := s.Store.Get(ctx, id)
	if err != nil {
		return Flow{}, nil, err
	}
	f, err := fromSession(*sess)
	if err != nil {
		return Flow{}, nil, err
	}
	return f, sess, nil
}

func (s *Service) view(id string, f Flow) View {
	v := View{SessionID: id, State: f.State, Profile: f.Profile}
	if f.HasResults() {
		v.Results = s.Catalog.Query(f.Query())
	}
	if f.State == StateHeroDetail {
		if h, ok := s.Catalog.Get(f.Hero); ok {
			v.Hero = &h
		}
	}
	return v
}

func (s *Service) resolveRegion(region, country string) (models.RegionChoice, error) {
	region = strings.TrimSpace(region)
	for _, r := range s.Regions {
		if !strings.EqualFold(r.Name, region) {
			continue
		}
		e, ok := r.Find(country)
		if !ok {
			return models.RegionChoice{}, fmt.Errorf("%w: country %q not in region %q", ErrInvalidInput, country, r.Name)
		}
		return models.RegionChoice{Region: r.Name, Country: e.Country, Flag: e.Flag}, nil
	}
	return models.RegionChoice{}, fmt.Errorf("%w: unknown region %q", ErrInvalidInput, region)
}

func toSession(id string, f Flow) session.Session {
	return session.Session{
		ID:          id,
		State:       string(f.State),
		SlideCursor: f.SlideCursor,
		Profile:     f.Profile,
		Hero:        f.Hero,
	}
}

func fromSession(s session.Session) (Flow, error) {
	st, err := ParseState(s.State)
	if err != nil {
		return Flow{}, err
	}
	return Flow{
		State:       st,
		Profile:     s.Profile,
		SlideCursor: s.SlideCursor,
		Hero:        s.Hero,
	}, nil
}
