// Package storage provides persistence for FounderLink.
package storage

import (
	"database/sql"
	"encoding/json"
	"time"

	"github.com/google/uuid"

	"github.com/founderlink/founderlink/internal/core"
)

// IntroStore handles introduction and feedback history persistence
type IntroStore struct {
	db *DB
}

// NewIntroStore creates a new introduction store
func NewIntroStore(db *DB) *IntroStore {
	return &IntroStore{db: db}
}

// Create stores a new introduction in the requested stage
func (s *IntroStore) Create(intro *core.Introduction) error {
	now := time.Now().UTC()
	if intro.ID == "" {
		intro.ID = core.IntroID(uuid.New().String())
	}
	if intro.Status == "" {
		intro.Status = core.IntroRequested
	}
	intro.CreatedAt = now
	intro.UpdatedAt = now

	_, err := s.db.conn.Exec(`
		INSERT INTO introductions (
			id, requester_id, target_id, status, match_type,
			relevance, trust, reciprocity, overall,
			goal_type, industry_match, created_at, updated_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, intro.ID, intro.RequesterID, intro.TargetID, intro.Status, intro.MatchType,
		intro.Score.Relevance, intro.Score.Trust, intro.Score.Reciprocity, intro.Score.Overall,
		intro.GoalType, intro.IndustryMatch, intro.CreatedAt, intro.UpdatedAt)

	return err
}

// GetByID returns an introduction by ID
func (s *IntroStore) GetByID(id core.IntroID) (*core.Introduction, error) {
	row := s.db.conn.QueryRow(`
		SELECT id, requester_id, target_id, status, match_type,
		       relevance, trust, reciprocity, overall,
		       goal_type, industry_match, outcome_json,
		       created_at, updated_at, responded_at, completed_at
		FROM introductions WHERE id = ?
	`, id)

	intro, err := scanIntro(row)
	if err == sql.ErrNoRows {
		return nil, core.ErrIntroNotFound
	}
	if err != nil {
		return nil, err
	}

	return intro, nil
}

// Transition moves an introduction to a new lifecycle stage.
// Completed transitions carry outcome data; responded/completed
// timestamps are set on the corresponding transitions.
func (s *IntroStore) Transition(id core.IntroID, to core.IntroStatus, outcome *core.OutcomeData) (*core.Introduction, error) {
	intro, err := s.GetByID(id)
	if err != nil {
		return nil, err
	}

	if !intro.CanTransition(to) {
		return nil, core.ErrInvalidTransition
	}

	now := time.Now().UTC()
	intro.Status = to
	intro.UpdatedAt = now

	switch to {
	case core.IntroAccepted, core.IntroDeclined:
		intro.RespondedAt = &now
	case core.IntroCompleted:
		intro.CompletedAt = &now
		intro.Outcome = outcome
	}

	var outcomeJSON sql.NullString
	if intro.Outcome != nil {
		data, err := json.Marshal(intro.Outcome)
		if err != nil {
			return nil, err
		}
		outcomeJSON = sql.NullString{String: string(data), Valid: true}
	}

	_, err = s.db.conn.Exec(`
		UPDATE introductions
		SET status = ?, outcome_json = COALESCE(?, outcome_json),
		    updated_at = ?, responded_at = COALESCE(?, responded_at),
		    completed_at = COALESCE(?, completed_at)
		WHERE id = ?
	`, intro.Status, outcomeJSON, intro.UpdatedAt,
		nullTime(intro.RespondedAt), nullTime(intro.CompletedAt), intro.ID)
	if err != nil {
		return nil, err
	}

	return intro, nil
}

// ListSince returns introductions created at or after the given time,
// oldest first, for analytics aggregation.
func (s *IntroStore) ListSince(since time.Time) ([]core.Introduction, error) {
	rows, err := s.db.conn.Query(`
		SELECT id, requester_id, target_id, status, match_type,
		       relevance, trust, reciprocity, overall,
		       goal_type, industry_match, outcome_json,
		       created_at, updated_at, responded_at, completed_at
		FROM introductions
		WHERE created_at >= ?
		ORDER BY created_at ASC
	`, since.UTC())
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var intros []core.Introduction
	for rows.Next() {
		intro, err := scanIntro(rows)
		if err != nil {
			return nil, err
		}
		intros = append(intros, *intro)
	}

	return intros, rows.Err()
}

// AppendFeedback records one emitted feedback score. History is
// append-only: updates re-emit, never amend.
func (s *IntroStore) AppendFeedback(introID core.IntroID, stage core.IntroStatus, score float64, interactionID string) error {
	_, err := s.db.conn.Exec(`
		INSERT INTO feedback_history (id, intro_id, stage, score, interaction_id, created_at)
		VALUES (?, ?, ?, ?, ?, ?)
	`, uuid.New().String(), introID, stage, score, interactionID, time.Now().UTC())

	return err
}

// FeedbackEntry is one row of emitted feedback history
type FeedbackEntry struct {
	IntroID       core.IntroID     `json:"intro_id"`
	Stage         core.IntroStatus `json:"stage"`
	Score         float64          `json:"score"`
	InteractionID string           `json:"interaction_id,omitempty"`
	CreatedAt     time.Time        `json:"created_at"`
}

// FeedbackHistory returns all feedback emitted for an introduction,
// oldest first.
func (s *IntroStore) FeedbackHistory(introID core.IntroID) ([]FeedbackEntry, error) {
	rows, err := s.db.conn.Query(`
		SELECT intro_id, stage, score, interaction_id, created_at
		FROM feedback_history
		WHERE intro_id = ?
		ORDER BY created_at ASC, rowid ASC
	`, introID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []FeedbackEntry
	for rows.Next() {
		var e FeedbackEntry
		if err := rows.Scan(&e.IntroID, &e.Stage, &e.Score, &e.InteractionID, &e.CreatedAt); err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}

	return entries, rows.Err()
}

type scannable interface {
	Scan(dest ...interface{}) error
}

func scanIntro(row scannable) (*core.Introduction, error) {
	intro := &core.Introduction{}
	var outcomeJSON sql.NullString
	var respondedAt, completedAt sql.NullTime

	err := row.Scan(
		&intro.ID, &intro.RequesterID, &intro.TargetID, &intro.Status, &intro.MatchType,
		&intro.Score.Relevance, &intro.Score.Trust, &intro.Score.Reciprocity, &intro.Score.Overall,
		&intro.GoalType, &intro.IndustryMatch, &outcomeJSON,
		&intro.CreatedAt, &intro.UpdatedAt, &respondedAt, &completedAt,
	)
	if err != nil {
		return nil, err
	}

	if outcomeJSON.Valid {
		outcome := &core.OutcomeData{}
		if err := json.Unmarshal([]byte(outcomeJSON.String), outcome); err == nil {
			intro.Outcome = outcome
		}
	}
	if respondedAt.Valid {
		t := respondedAt.Time
		intro.RespondedAt = &t
	}
	if completedAt.Valid {
		t := completedAt.Time
		intro.CompletedAt = &t
	}

	return intro, nil
}

func nullTime(t *time.Time) sql.NullTime {
	if t == nil {
		return sql.NullTime{}
	}
	return sql.NullTime{Time: *t, Valid: true}
}
