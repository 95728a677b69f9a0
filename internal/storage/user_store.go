// Package storage provides persistence for FounderLink.
package storage

import (
	"database/sql"
	"time"

	"github.com/founderlink/founderlink/internal/core"
)

// UserStore handles founder profile persistence
type UserStore struct {
	db *DB
}

// NewUserStore creates a new user store
func NewUserStore(db *DB) *UserStore {
	return &UserStore{db: db}
}

// Upsert creates or updates a profile
func (s *UserStore) Upsert(p *core.Profile) error {
	now := time.Now().UTC()
	if p.CreatedAt.IsZero() {
		p.CreatedAt = now
	}
	p.UpdatedAt = now

	var lastPost sql.NullTime
	if p.LastPostAt != nil {
		lastPost = sql.NullTime{Time: *p.LastPostAt, Valid: true}
	}

	_, err := s.db.conn.Exec(`
		INSERT INTO users (id, name, headline, location, bio, industry, verified, last_post_at, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			name = excluded.name,
			headline = excluded.headline,
			location = excluded.location,
			bio = excluded.bio,
			industry = excluded.industry,
			verified = excluded.verified,
			last_post_at = excluded.last_post_at,
			updated_at = excluded.updated_at
	`, p.UserID, p.Name, p.Headline, p.Location, p.Bio, p.Industry,
		p.Verified, lastPost, p.CreatedAt, p.UpdatedAt)

	return err
}

// GetByID returns a profile by user ID
func (s *UserStore) GetByID(id core.UserID) (*core.Profile, error) {
	p := &core.Profile{}
	var lastPost sql.NullTime

	err := s.db.conn.QueryRow(`
		SELECT id, name, headline, location, bio, industry, verified, last_post_at, created_at, updated_at
		FROM users WHERE id = ?
	`, id).Scan(
		&p.UserID, &p.Name, &p.Headline, &p.Location, &p.Bio, &p.Industry,
		&p.Verified, &lastPost, &p.CreatedAt, &p.UpdatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, core.ErrRecordNotFound
	}
	if err != nil {
		return nil, err
	}

	if lastPost.Valid {
		t := lastPost.Time
		p.LastPostAt = &t
	}

	return p, nil
}
