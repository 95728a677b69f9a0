// Package storage provides persistence for FounderLink.
package storage

import (
	"fmt"

	"github.com/founderlink/founderlink/internal/core"
)

// Migrate creates all tables and indexes
func (db *DB) Migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS users (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL DEFAULT '',
		headline TEXT NOT NULL DEFAULT '',
		location TEXT NOT NULL DEFAULT '',
		bio TEXT NOT NULL DEFAULT '',
		industry TEXT NOT NULL DEFAULT '',
		verified INTEGER NOT NULL DEFAULT 0,
		last_post_at DATETIME,
		created_at DATETIME NOT NULL,
		updated_at DATETIME NOT NULL
	);

	CREATE TABLE IF NOT EXISTS signals (
		id TEXT PRIMARY KEY,
		owner_id TEXT NOT NULL,
		kind TEXT NOT NULL,
		text TEXT NOT NULL,
		active INTEGER NOT NULL DEFAULT 1,
		category TEXT NOT NULL DEFAULT '',
		urgency TEXT NOT NULL DEFAULT '',
		created_at DATETIME NOT NULL,
		updated_at DATETIME NOT NULL,
		FOREIGN KEY (owner_id) REFERENCES users(id)
	);

	CREATE INDEX IF NOT EXISTS idx_signals_owner ON signals(owner_id, active);
	CREATE INDEX IF NOT EXISTS idx_signals_kind ON signals(kind, active);

	CREATE TABLE IF NOT EXISTS introductions (
		id TEXT PRIMARY KEY,
		requester_id TEXT NOT NULL,
		target_id TEXT NOT NULL,
		status TEXT NOT NULL,
		match_type TEXT NOT NULL DEFAULT 'all',
		relevance REAL NOT NULL DEFAULT 0,
		trust REAL NOT NULL DEFAULT 0,
		reciprocity REAL NOT NULL DEFAULT 0,
		overall REAL NOT NULL DEFAULT 0,
		goal_type TEXT NOT NULL DEFAULT '',
		industry_match INTEGER NOT NULL DEFAULT 0,
		outcome_json TEXT,
		created_at DATETIME NOT NULL,
		updated_at DATETIME NOT NULL,
		responded_at DATETIME,
		completed_at DATETIME
	);

	CREATE INDEX IF NOT EXISTS idx_intros_requester ON introductions(requester_id);
	CREATE INDEX IF NOT EXISTS idx_intros_status ON introductions(status);
	CREATE INDEX IF NOT EXISTS idx_intros_created ON introductions(created_at);

	CREATE TABLE IF NOT EXISTS feedback_history (
		id TEXT PRIMARY KEY,
		intro_id TEXT NOT NULL,
		stage TEXT NOT NULL,
		score REAL NOT NULL,
		interaction_id TEXT NOT NULL DEFAULT '',
		created_at DATETIME NOT NULL,
		FOREIGN KEY (intro_id) REFERENCES introductions(id)
	);

	CREATE INDEX IF NOT EXISTS idx_feedback_intro ON feedback_history(intro_id);
	`

	if _, err := db.conn.Exec(schema); err != nil {
		return fmt.Errorf("%w: %v", core.ErrMigrationFailed, err)
	}

	return nil
}
