package onboarding

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"goalboom/internal/dataset"
	"goalboom/internal/heroes"
	"goalboom/internal/session"
	"goalboom/pkg/models"
)

type recordingPublisher struct {
	mu     sync.Mutex
	events []StepEvent
}

func (p *recordingPublisher) BroadcastJSON(v any) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if evt, ok := v.(StepEvent); ok {
		p.events = append(p.events, evt)
	}
}

func (p *recordingPublisher) transitions() []State {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]State, 0, len(p.events))
	for _, e := range p.events {
		out = append(out, e.To)
	}
	return out
}

func newTestService(t *testing.T) (*Service, *recordingPublisher) {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	mini := miniredis.RunT(t)
	store, err := session.NewValkeyStore("redis://"+mini.Addr(), time.Hour)
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })

	catalog := heroes.NewCatalog(nil, logger)
	require.NoError(t, catalog.Load([]dataset.Record{
		{"Name": "Tu Youyou", "Country": "China 🇨🇳", "Gender": "woman", "Jobs": []any{"Doctor", "Scientist"}},
		{"Name": "Shigeaki Hinohara", "Country": "Japan 🇯🇵", "Gender": "man", "Jobs": []any{"doctor"}},
		{"Name": "Ruby Hirose", "Country": "Japan 🇯🇵", "Gender": "woman", "Jobs": []any{"Scientist"}},
	}))

	pub := &recordingPublisher{}
	svc := &Service{
		Store: store,
		Deck: []models.Slide{
			{Image: "intro-0", Caption: "Welcome"},
			{Image: "intro-1", Caption: "Pick a region"},
			{Image: "intro-2", Caption: "Meet heroes"},
			{Image: "intro-3", Caption: "unused"},
		},
		Catalog: catalog,
		Regions: []models.Region{
			{Name: "Asia", Entries: []models.CountryEntry{
				{Flag: "🇨🇳", Country: "China"},
				{Flag: "🇯🇵", Country: "Japan"},
			}},
		},
		Events: pub,
		Logger: logger,
	}
	return svc, pub
}

func TestServiceCarousel(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	v, err := svc.Start(ctx)
	require.NoError(t, err)
	id := v.SessionID

	var got []int
	for _, dir := range []Direction{DirectionFirst, DirectionNext, DirectionNext, DirectionNext, DirectionBack} {
		v, err := svc.Slide(ctx, id, dir)
		require.NoError(t, err)
		got = append(got, v.Slide.Index)
	}
	assert.Equal(t, []int{0, 1, 2, 3, 2}, got)

	// the cursor already sits on the slide Back just returned
	v, err = svc.Slide(ctx, id, DirectionNext)
	require.NoError(t, err)
	assert.Equal(t, 2, v.Slide.Index)

	v, err = svc.Slide(ctx, id, DirectionNext)
	require.NoError(t, err)
	assert.Equal(t, 3, v.Slide.Index)
	assert.Empty(t, v.Slide.Caption)

	_, err = svc.Slide(ctx, id, Direction("sideways"))
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestServiceEmptyDeck(t *testing.T) {
	svc, _ := newTestService(t)
	svc.Deck = nil
	ctx := context.Background()

	v, err := svc.Start(ctx)
	require.NoError(t, err)

	_, err = svc.Slide(ctx, v.SessionID, DirectionFirst)
	assert.ErrorIs(t, err, ErrNoSlides)
}

func TestServiceQuestionnaire(t *testing.T) {
	svc, pub := newTestService(t)
	ctx := context.Background()

	v, err := svc.Start(ctx)
	require.NoError(t, err)
	id := v.SessionID

	_, err = svc.FinishIntro(ctx, id)
	require.NoError(t, err)

	_, err = svc.ChooseRegion(ctx, id, "Atlantis", "Japan")
	assert.ErrorIs(t, err, ErrInvalidInput)
	_, err = svc.ChooseRegion(ctx, id, "asia", "Peru")
	assert.ErrorIs(t, err, ErrInvalidInput)

	v, err = svc.ChooseRegion(ctx, id, "asia", "japan")
	require.NoError(t, err)
	assert.Equal(t, StateGenderPick, v.State)
	assert.Equal(t, "Japan", v.Profile.Region.Country)
	assert.Equal(t, "🇯🇵", v.Profile.Region.Flag)

	_, err = svc.ChooseGender(ctx, id, "robot")
	assert.ErrorIs(t, err, ErrInvalidInput)

	v, err = svc.ChooseGender(ctx, id, "")
	require.NoError(t, err)
	assert.Equal(t, models.GenderUnspecified, v.Profile.Gender)

	v, err = svc.ChooseOccupation(ctx, id, "DOCTOR")
	require.NoError(t, err)
	assert.Equal(t, StateHeroResults, v.State)
	require.Len(t, v.Results, 1)
	assert.Equal(t, "Shigeaki Hinohara", v.Results[0].Name)

	v, err = svc.OpenHero(ctx, id, "shigeaki hinohara")
	require.NoError(t, err)
	assert.Equal(t, StateHeroDetail, v.State)
	require.NotNil(t, v.Hero)
	assert.Equal(t, "Japan", v.Hero.Country)

	assert.Equal(t, []State{
		StateRegionPick, StateGenderPick, StateOccupationPick, StateHeroResults, StateHeroDetail,
	}, pub.transitions())
}

func TestServiceEmptyResults(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	v, err := svc.Start(ctx)
	require.NoError(t, err)
	id := v.SessionID

	_, err = svc.Results(ctx, id)
	assert.ErrorIs(t, err, ErrInvalidTransition)

	_, err = svc.FinishIntro(ctx, id)
	require.NoError(t, err)
	_, err = svc.ChooseRegion(ctx, id, "Asia", "China")
	require.NoError(t, err)
	_, err = svc.ChooseGender(ctx, id, "man")
	require.NoError(t, err)
	_, err = svc.ChooseOccupation(ctx, id, "Engineer")
	require.NoError(t, err)

	v, err = svc.Results(ctx, id)
	require.NoError(t, err)
	assert.NotNil(t, v.Results)
	assert.Empty(t, v.Results)

	_, err = svc.OpenHero(ctx, id, "Tu Youyou")
	assert.ErrorIs(t, err, ErrNoHeroes)

	v, err = svc.Back(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, StateOccupationPick, v.State)
}

func TestServiceRestart(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	v, err := svc.Start(ctx)
	require.NoError(t, err)
	id := v.SessionID

	_, err = svc.Slide(ctx, id, DirectionNext)
	require.NoError(t, err)
	_, err = svc.FinishIntro(ctx, id)
	require.NoError(t, err)

	v, err = svc.Restart(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, StateIntro, v.State)

	cur, err := svc.Current(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, models.NewUserProfile(), cur.Profile)

	page, err := svc.Slide(ctx, id, DirectionFirst)
	require.NoError(t, err)
	assert.Equal(t, 0, page.Slide.Index)
}

func TestServiceSerializesSessionUpdates(t *testing.T) {
	svc, _ := newTestService(t)
	deck := make([]models.Slide, 64)
	for i := range deck {
		deck[i] = models.Slide{Image: fmt.Sprintf("intro-%d", i)}
	}
	svc.Deck = deck
	ctx := context.Background()

	v, err := svc.Start(ctx)
	require.NoError(t, err)
	id := v.SessionID

	const calls = 30
	var wg sync.WaitGroup
	errs := make(chan error, calls)
	for range calls {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := svc.Slide(ctx, id, DirectionFirst)
			errs <- err
		}()
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		require.NoError(t, err)
	}

	sess, err := svc.Store.Get(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, calls, sess.SlideCursor)
	assert.Zero(t, svc.locks.len())
}

func TestServiceUnknownSession(t *testing.T) {
	svc, _ := newTestService(t)

	_, err := svc.Current(context.Background(), "nope")
	assert.ErrorIs(t, err, session.ErrNotFound)
}
