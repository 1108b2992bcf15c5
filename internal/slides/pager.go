package slides

import "goalboom/pkg/models"

// CaptionedSlides is how many leading slides carry caption text.
const CaptionedSlides = 3

type Page struct {
	Index   int    `json:"index"`
	Image   string `json:"image"`
	Caption string `json:"caption,omitempty"`
}

// Pager walks a fixed deck with a saturating cursor. Running off either
// end is a no-op, never an error.
//
// Forward steps from index 0 skip straight to index 1: the first panel is
// shown once by First and not revisited going forward.
type Pager struct {
	slides []models.Slide
	cursor int
}

type Option func(*Pager)

// WithCursor restores a saved position. Out-of-range values are clamped.
func WithCursor(n int) Option {
	return func(p *Pager) {
		p.cursor = n
	}
}

func NewPager(slides []models.Slide, opts ...Option) *Pager {
	p := &Pager{slides: slides}
	for _, opt := range opts {
		opt(p)
	}
	p.cursor = p.clamp(p.cursor)
	return p
}

func (p *Pager) Len() int    { return len(p.slides) }
func (p *Pager) Cursor() int { return p.cursor }

// First returns the page at the cursor and then moves forward one step.
func (p *Pager) First() (Page, bool) {
	if len(p.slides) == 0 {
		return Page{}, false
	}
	page := p.page(p.cursor)
	p.stepForward()
	return page, true
}

func (p *Pager) Advance() (Page, bool) {
	if len(p.slides) == 0 {
		return Page{}, false
	}
	if p.cursor == 0 {
		p.cursor = p.clamp(1)
	}
	page := p.page(p.cursor)
	p.stepForward()
	return page, true
}

func (p *Pager) Retreat() (Page, bool) {
	if len(p.slides) == 0 {
		return Page{}, false
	}
	if p.cursor > 0 {
		p.cursor--
	}
	return p.page(p.cursor), true
}

func (p *Pager) stepForward() {
	if p.cursor < len(p.slides)-1 {
		p.cursor++
	}
}

func (p *Pager) clamp(n int) int {
	last := len(p.slides) - 1
	switch {
	case last < 0, n < 0:
		return 0
	case n > last:
		return last
	default:
		return n
	}
}

func (p *Pager) page(i int) Page {
	s := p.slides[i]
	page := Page{Index: i, Image: s.Image}
	if i < CaptionedSlides {
		page.Caption = s.Caption
	}
	return page
}
