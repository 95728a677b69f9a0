// Package storage provides persistence for FounderLink.
package storage

import (
	"database/sql"
	"time"

	"github.com/founderlink/founderlink/internal/core"
)

// SignalStore handles goal and ask persistence
type SignalStore struct {
	db *DB
}

// NewSignalStore creates a new signal store
func NewSignalStore(db *DB) *SignalStore {
	return &SignalStore{db: db}
}

// Create stores a new signal
func (s *SignalStore) Create(sig *core.Signal) error {
	now := time.Now().UTC()
	sig.CreatedAt = now
	sig.UpdatedAt = now

	_, err := s.db.conn.Exec(`
		INSERT INTO signals (id, owner_id, kind, text, active, category, urgency, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, sig.ID, sig.OwnerID, sig.Kind, sig.Text, sig.Active, sig.Category, sig.Urgency,
		sig.CreatedAt, sig.UpdatedAt)

	return err
}

// GetByID returns a signal by ID
func (s *SignalStore) GetByID(id core.SignalID) (*core.Signal, error) {
	sig := &core.Signal{}

	err := s.db.conn.QueryRow(`
		SELECT id, owner_id, kind, text, active, category, urgency, created_at, updated_at
		FROM signals WHERE id = ?
	`, id).Scan(
		&sig.ID, &sig.OwnerID, &sig.Kind, &sig.Text, &sig.Active,
		&sig.Category, &sig.Urgency, &sig.CreatedAt, &sig.UpdatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, core.ErrRecordNotFound
	}
	if err != nil {
		return nil, err
	}

	return sig, nil
}

// ActiveByOwner returns all active signals for a user, grouped by kind
// and oldest first within each kind.
func (s *SignalStore) ActiveByOwner(ownerID core.UserID) ([]core.Signal, error) {
	rows, err := s.db.conn.Query(`
		SELECT id, owner_id, kind, text, active, category, urgency, created_at, updated_at
		FROM signals
		WHERE owner_id = ? AND active = 1
		ORDER BY kind ASC, created_at ASC
	`, ownerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanSignals(rows)
}

// Deactivate marks a signal inactive
func (s *SignalStore) Deactivate(id core.SignalID) error {
	res, err := s.db.conn.Exec(`
		UPDATE signals SET active = 0, updated_at = ? WHERE id = ?
	`, time.Now().UTC(), id)
	if err != nil {
		return err
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return core.ErrRecordNotFound
	}

	return nil
}

func scanSignals(rows *sql.Rows) ([]core.Signal, error) {
	var signals []core.Signal

	for rows.Next() {
		var sig core.Signal
		err := rows.Scan(
			&sig.ID, &sig.OwnerID, &sig.Kind, &sig.Text, &sig.Active,
			&sig.Category, &sig.Urgency, &sig.CreatedAt, &sig.UpdatedAt,
		)
		if err != nil {
			return nil, err
		}
		signals = append(signals, sig)
	}

	return signals, rows.Err()
}
