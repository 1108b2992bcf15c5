package session

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"goalboom/pkg/models"
)

type SQLiteStore struct {
	DB *sql.DB
}

func NewSQLiteStore(db *sql.DB) *SQLiteStore {
	return &SQLiteStore{DB: db}
}

func (r *SQLiteStore) Create(ctx context.Context, s Session) error {
	now := time.Now().UTC()
	if s.CreatedAt.IsZero() {
		s.CreatedAt = now
	}
	s.UpdatedAt = now

	_, err := r.DB.ExecContext(ctx, `
		INSERT INTO onboarding_sessions
		  (id, state, slide_cursor, gender, region, country, flag, occupation, hero, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, s.ID, s.State, s.SlideCursor,
		string(s.Profile.Gender), s.Profile.Region.Region, s.Profile.Region.Country, s.Profile.Region.Flag,
		string(s.Profile.Occupation), s.Hero, s.CreatedAt, s.UpdatedAt)
	if err != nil {
		return fmt.Errorf("insert session: %w", err)
	}
	return nil
}

func (r *SQLiteStore) Get(ctx context.Context, id string) (*Session, error) {
	row := r.DB.QueryRowContext(ctx, `
		SELECT id, state, slide_cursor, gender, region, country, flag, occupation, hero, created_at, updated_at
		FROM onboarding_sessions
		WHERE id = ?
	`, id)

	var (
		s          Session
		gender     string
		occupation string
	)
	if err := row.Scan(
		&s.ID, &s.State, &s.SlideCursor,
		&gender, &s.Profile.Region.Region, &s.Profile.Region.Country, &s.Profile.Region.Flag,
		&occupation, &s.Hero, &s.CreatedAt, &s.UpdatedAt,
	); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("scan session: %w", err)
	}

	s.Profile.Gender = models.Gender(gender)
	s.Profile.Occupation = models.Occupation(occupation)
	return &s, nil
}

func (r *SQLiteStore) Save(ctx context.Context, s Session) error {
	s.UpdatedAt = time.Now().UTC()

	res, err := r.DB.ExecContext(ctx, `
		UPDATE onboarding_sessions SET
		  state = ?, slide_cursor = ?, gender = ?, region = ?, country = ?, flag = ?,
		  occupation = ?, hero = ?, updated_at = ?
		WHERE id = ?
	`, s.State, s.SlideCursor,
		string(s.Profile.Gender), s.Profile.Region.Region, s.Profile.Region.Country, s.Profile.Region.Flag,
		string(s.Profile.Occupation), s.Hero, s.UpdatedAt, s.ID)
	if err != nil {
		return fmt.Errorf("update session: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *SQLiteStore) Delete(ctx context.Context, id string) error {
	if _, err := r.DB.ExecContext(ctx, `DELETE FROM onboarding_sessions WHERE id = ?`, id); err != nil {
		return fmt.Errorf("delete session: %w", err)
	}
	return nil
}

// PurgeBefore drops sessions idle since before cutoff.
func (r *SQLiteStore) PurgeBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	res, err := r.DB.ExecContext(ctx, `DELETE FROM onboarding_sessions WHERE updated_at < ?`, cutoff.UTC())
	if err != nil {
		return 0, fmt.Errorf("purge sessions: %w", err)
	}
	return res.RowsAffected()
}

func (r *SQLiteStore) Ping(ctx context.Context) error {
	return r.DB.PingContext(ctx)
}

// Close is a no-op: the *sql.DB belongs to the caller.
func (r *SQLiteStore) Close() error {
	return nil
}
