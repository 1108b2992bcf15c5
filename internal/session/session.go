package session

import (
	"context"
	"errors"
	"time"

	"goalboom/pkg/models"
)

var ErrNotFound = errors.New("session not found")

// Session is the persisted form of one onboarding run.
type Session struct {
	ID          string             `json:"id"`
	State       string             `json:"state"`
	SlideCursor int                `json:"slide_cursor"`
	Profile     models.UserProfile `json:"profile"`
	Hero        string             `json:"hero,omitempty"`
	CreatedAt   time.Time          `json:"created_at"`
	UpdatedAt   time.Time          `json:"updated_at"`
}

type Store interface {
	Create(ctx context.Context, s Session) error
	Get(ctx context.Context, id string) (*Session, error)
	Save(ctx context.Context, s Session) error
	Delete(ctx context.Context, id string) error
	Ping(ctx context.Context) error
	Close() error
}
