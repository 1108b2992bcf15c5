package session

import (
	"context"
	"fmt"
	"time"

	"github.com/goccy/go-json"
	"github.com/valkey-io/valkey-go"
)

// ValkeyStore keeps sessions as JSON values that expire after ttl of
// inactivity.
type ValkeyStore struct {
	client valkey.Client
	ttl    time.Duration
}

// NewValkeyStore connects using a redis:// or valkey:// URL.
func NewValkeyStore(url string, ttl time.Duration) (*ValkeyStore, error) {
	opt, err := valkey.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("parse session store url: %w", err)
	}
	// client-side caching needs RESP3 tracking, which we never read through
	opt.DisableCache = true

	client, err := valkey.NewClient(opt)
	if err != nil {
		return nil, fmt.Errorf("connect to valkey: %w", err)
	}
	return &ValkeyStore{client: client, ttl: ttl}, nil
}

func (s *ValkeyStore) key(id string) string {
	return "onboarding:" + id
}

func (s *ValkeyStore) Create(ctx context.Context, sess Session) error {
	now := time.Now().UTC()
	if sess.CreatedAt.IsZero() {
		sess.CreatedAt = now
	}
	sess.UpdatedAt = now

	data, err := json.Marshal(sess)
	if err != nil {
		return fmt.Errorf("marshal session: %w", err)
	}

	cmd := s.client.B().Set().Key(s.key(sess.ID)).Value(string(data)).Nx().Ex(s.ttl).Build()
	if err := s.client.Do(ctx, cmd).Error(); err != nil {
		if valkey.IsValkeyNil(err) {
			return fmt.Errorf("create session: %s already exists", sess.ID)
		}
		return fmt.Errorf("create session: %w", err)
	}
	return nil
}

func (s *ValkeyStore) Get(ctx context.Context, id string) (*Session, error) {
	cmd := s.client.B().Get().Key(s.key(id)).Build()
	result, err := s.client.Do(ctx, cmd).ToString()
	if err != nil {
		if valkey.IsValkeyNil(err) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get session: %w", err)
	}

	var sess Session
	if err := json.Unmarshal([]byte(result), &sess); err != nil {
		return nil, fmt.Errorf("unmarshal session: %w", err)
	}
	return &sess, nil
}

func (s *ValkeyStore) Save(ctx context.Context, sess Session) error {
	sess.UpdatedAt = time.Now().UTC()
	data, err := json.Marshal(sess)
	if err != nil {
		return fmt.Errorf("marshal session: %w", err)
	}

	cmd := s.client.B().Set().Key(s.key(sess.ID)).Value(string(data)).Xx().Ex(s.ttl).Build()
	if err := s.client.Do(ctx, cmd).Error(); err != nil {
		if valkey.IsValkeyNil(err) {
			return ErrNotFound
		}
		return fmt.Errorf("save session: %w", err)
	}
	return nil
}

func (s *ValkeyStore) Delete(ctx context.Context, id string) error {
	cmd := s.client.B().Del().Key(s.key(id)).Build()
	if err := s.client.Do(ctx, cmd).Error(); err != nil && !valkey.IsValkeyNil(err) {
		return fmt.Errorf("delete session: %w", err)
	}
	return nil
}

func (s *ValkeyStore) Ping(ctx context.Context) error {
	cmd := s.client.B().Ping().Build()
	if err := s.client.Do(ctx, cmd).Error(); err != nil {
		return fmt.Errorf("ping valkey: %w", err)
	}
	return nil
}

func (s *ValkeyStore) Close() error {
	s.client.Close()
	return nil
}
