// Package core defines the fundamental types for FounderLink.
// Everything the matching and feedback engines exchange is defined here.
package core

import (
	"time"
)

// -----------------------------------------------------------------------------
// USERS & PROFILES
// -----------------------------------------------------------------------------

// UserID is a type-safe identifier for platform users (founders)
type UserID string

// Profile holds the subset of a founder's profile the scorer needs.
// Profile completeness and activity feed the trust sub-score.
type Profile struct {
	UserID   UserID `json:"user_id"`
	Name     string `json:"name"`
	Headline string `json:"headline"`
	Location string `json:"location"`
	Bio      string `json:"bio"`
	Industry string `json:"industry"`

	// Verified external identity (LinkedIn, domain, etc.)
	Verified bool `json:"verified"`

	// LastPostAt is the timestamp of the most recent public post, nil if none
	LastPostAt *time.Time `json:"last_post_at,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Summary returns the profile fields surfaced on a suggestion.
func (p *Profile) Summary() ProfileSummary {
	return ProfileSummary{
		Name:     p.Name,
		Headline: p.Headline,
		Location: p.Location,
		Industry: p.Industry,
	}
}

// ProfileSummary is the public slice of a profile attached to suggestions
type ProfileSummary struct {
	Name     string `json:"name"`
	Headline string `json:"headline,omitempty"`
	Location string `json:"location,omitempty"`
	Industry string `json:"industry,omitempty"`
}

// -----------------------------------------------------------------------------
// SIGNALS - Active intent (goals and asks)
// -----------------------------------------------------------------------------

// SignalID is a type-safe identifier for intent signals
type SignalID string

// SignalKind distinguishes the two intent signal types
type SignalKind string

const (
	SignalGoal SignalKind = "goal"
	SignalAsk  SignalKind = "ask"
)

// Signal is one active intent signal: a founder's stated goal or open ask.
// Signals are created by the CRUD layer and read-only to the engine.
type Signal struct {
	ID      SignalID   `json:"id"`
	OwnerID UserID     `json:"owner_id"`
	Kind    SignalKind `json:"kind"`
	Text    string     `json:"text"`
	Active  bool       `json:"active"`

	// Category groups goals for analytics ("fundraising", "hiring", ...)
	Category string `json:"category,omitempty"`

	// Urgency applies to asks only
	Urgency string `json:"urgency,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// -----------------------------------------------------------------------------
// MATCHING
// -----------------------------------------------------------------------------

// MatchType selects which signal kinds drive a suggestion request
type MatchType string

const (
	MatchGoalBased MatchType = "goal_based"
	MatchAskBased  MatchType = "ask_based"
	MatchAll       MatchType = "all"
)

// Includes reports whether a signal kind participates in this match type.
func (m MatchType) Includes(kind SignalKind) bool {
	switch m {
	case MatchGoalBased:
		return kind == SignalGoal
	case MatchAskBased:
		return kind == SignalAsk
	default:
		return true
	}
}

// MatchingSignal is one similarity-search hit: a record owned by the
// candidate whose embedding was close to one of the requester's signals.
type MatchingSignal struct {
	Kind       SignalKind `json:"kind"`
	SourceID   SignalID   `json:"source_id"`
	SourceText string     `json:"source_text"`
	Similarity float64    `json:"similarity"`
}

// Candidate accumulates every matching signal seen for one target user
// during a single suggestion request. Never persisted.
type Candidate struct {
	UserID        UserID           `json:"user_id"`
	Signals       []MatchingSignal `json:"signals"`
	MaxSimilarity float64          `json:"max_similarity"`
}

// MatchScore holds the three sub-scores and their weighted combination.
// All components are in [0,1], rounded to 3 decimals.
type MatchScore struct {
	Relevance   float64 `json:"relevance"`
	Trust       float64 `json:"trust"`
	Reciprocity float64 `json:"reciprocity"`
	Overall     float64 `json:"overall"`
}

// Suggestion is one ranked introduction recommendation
type Suggestion struct {
	UserID        UserID         `json:"user_id"`
	Profile       ProfileSummary `json:"profile"`
	Score         MatchScore     `json:"match_score"`
	Reasoning     string         `json:"reasoning"`
	MatchingGoals []string       `json:"matching_goals"`
	MatchingAsks  []string       `json:"matching_asks"`
}

// -----------------------------------------------------------------------------
// INTRODUCTIONS - Lifecycle and outcomes
// -----------------------------------------------------------------------------

// IntroID is a type-safe identifier for introductions
type IntroID string

// IntroStatus is the lifecycle stage of an introduction
type IntroStatus string

const (
	IntroRequested IntroStatus = "requested"
	IntroAccepted  IntroStatus = "accepted"
	IntroDeclined  IntroStatus = "declined"
	IntroExpired   IntroStatus = "expired"
	IntroCompleted IntroStatus = "completed"
)

// OutcomeType categorizes what actually happened after a completed intro
type OutcomeType string

const (
	OutcomeMeetingScheduled OutcomeType = "meeting_scheduled"
	OutcomeEmailExchanged   OutcomeType = "email_exchanged"
	OutcomeNoResponse       OutcomeType = "no_response"
	OutcomeNotRelevant      OutcomeType = "not_relevant"
)

// OutcomeData carries the observed result of a completed introduction.
// Rating and timing fields are optional; the feedback scorer applies
// neutral defaults for missing values.
type OutcomeData struct {
	Type           OutcomeType `json:"outcome_type"`
	Rating         *int        `json:"rating,omitempty"` // 1-5
	Tags           []string    `json:"tags,omitempty"`
	ResponseHours  *float64    `json:"time_to_response_hours,omitempty"`
	CompletionDays *float64    `json:"time_to_completion_days,omitempty"`
}

// Introduction is a request to connect two founders, with its lifecycle
type Introduction struct {
	ID          IntroID     `json:"id"`
	RequesterID UserID      `json:"requester_id"`
	TargetID    UserID      `json:"target_id"`
	Status      IntroStatus `json:"status"`
	MatchType   MatchType   `json:"match_type"`

	// Score snapshot at request time, used by analytics
	Score MatchScore `json:"score"`

	// GoalType is the category of the signal that drove the match
	GoalType string `json:"goal_type,omitempty"`

	// IndustryMatch records whether both sides share an industry
	IndustryMatch bool `json:"industry_match"`

	Outcome *OutcomeData `json:"outcome,omitempty"`

	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
	RespondedAt *time.Time `json:"responded_at,omitempty"`
	CompletedAt *time.Time `json:"completed_at,omitempty"`
}

// CanTransition reports whether a lifecycle transition is legal.
// requested -> accepted/declined/expired, accepted -> completed/expired.
func (i *Introduction) CanTransition(to IntroStatus) bool {
	switch i.Status {
	case IntroRequested:
		return to == IntroAccepted || to == IntroDeclined || to == IntroExpired
	case IntroAccepted:
		return to == IntroCompleted || to == IntroExpired
	default:
		return false
	}
}
