package matching

import (
	"math"
	"time"

	"github.com/founderlink/founderlink/internal/core"
)

// Weights combining the three sub-scores (must sum to 1.0)
const (
	WeightRelevance   = 0.50
	WeightTrust       = 0.25
	WeightReciprocity = 0.25
)

// Relevance blends the best hit with the average across all hits
const (
	relevanceMaxWeight  = 0.7
	relevanceMeanWeight = 0.3
	defaultRelevance    = 0.5
)

// Trust contributions. Independent, summed, clamped to [0,1].
const (
	trustName       = 0.1
	trustHeadline   = 0.1
	trustLocation   = 0.1
	trustBio        = 0.1
	trustVerified   = 0.2
	trustRecentPost = 0.2

	trustAccountAgeMax  = 0.2
	trustAccountAgeDays = 150.0

	recentPostWindow = 30 * 24 * time.Hour
)

// Reciprocity outcomes from each side's signal inventory
const (
	reciprocityBothGoals    = 0.8
	reciprocityAskMeetsGoal = 0.7
	reciprocityBothAsksOnly = 0.4
	reciprocityDefault      = 0.5
)

// Accounts younger than this are treated as suspicious and dropped
const minAccountAge = time.Hour

// Inventory summarizes one side's active signals for the reciprocity
// heuristic.
type Inventory struct {
	HasActiveGoals bool
	HasOpenAsks    bool
}

// InventoryOf derives an inventory from a user's active signals.
func InventoryOf(signals []core.Signal) Inventory {
	var inv Inventory
	for _, sig := range signals {
		if !sig.Active {
			continue
		}
		switch sig.Kind {
		case core.SignalGoal:
			inv.HasActiveGoals = true
		case core.SignalAsk:
			inv.HasOpenAsks = true
		}
	}
	return inv
}

// Scorer computes match scores. It holds only a clock, so scores are
// pure functions of their inputs.
type Scorer struct {
	now func() time.Time
}

// NewScorer creates a match scorer
func NewScorer() *Scorer {
	return &Scorer{now: time.Now}
}

// NewScorerAt creates a scorer with a fixed clock, for tests.
func NewScorerAt(now func() time.Time) *Scorer {
	return &Scorer{now: now}
}

// Score computes the relevance, trust and reciprocity sub-scores for a
// candidate and combines them with the fixed weights. Every component
// and the overall value are rounded to 3 decimals and clamped to [0,1].
func (s *Scorer) Score(cand *core.Candidate, profile *core.Profile, requester, candidate Inventory) core.MatchScore {
	relevance := round3(clamp01(s.relevance(cand)))
	trust := round3(clamp01(s.trust(profile)))
	reciprocity := round3(clamp01(s.reciprocity(requester, candidate)))

	overall := WeightRelevance*relevance + WeightTrust*trust + WeightReciprocity*reciprocity

	return core.MatchScore{
		Relevance:   relevance,
		Trust:       trust,
		Reciprocity: reciprocity,
		Overall:     round3(clamp01(overall)),
	}
}

// Suspicious reports whether a candidate account should be dropped
// before scoring: near-empty profile, or account younger than an hour.
func (s *Scorer) Suspicious(profile *core.Profile) bool {
	if s.now().Sub(profile.CreatedAt) < minAccountAge {
		return true
	}
	if profile.Name == "" && profile.Headline == "" && profile.Bio == "" {
		return true
	}
	return false
}

func (s *Scorer) relevance(cand *core.Candidate) float64 {
	if len(cand.Signals) == 0 {
		return defaultRelevance
	}

	var sum float64
	for _, hit := range cand.Signals {
		sum += hit.Similarity
	}
	mean := sum / float64(len(cand.Signals))

	return relevanceMaxWeight*cand.MaxSimilarity + relevanceMeanWeight*mean
}

func (s *Scorer) trust(profile *core.Profile) float64 {
	var score float64

	if profile.Name != "" {
		score += trustName
	}
	if profile.Headline != "" {
		score += trustHeadline
	}
	if profile.Location != "" {
		score += trustLocation
	}
	if profile.Bio != "" {
		score += trustBio
	}
	if profile.Verified {
		score += trustVerified
	}
	if profile.LastPostAt != nil && s.now().Sub(*profile.LastPostAt) <= recentPostWindow {
		score += trustRecentPost
	}

	ageDays := s.now().Sub(profile.CreatedAt).Hours() / 24
	score += math.Min(trustAccountAgeMax, ageDays/trustAccountAgeDays)

	return score
}

func (s *Scorer) reciprocity(requester, candidate Inventory) float64 {
	switch {
	case requester.HasActiveGoals && candidate.HasActiveGoals:
		return reciprocityBothGoals
	case requester.HasOpenAsks && candidate.HasActiveGoals,
		candidate.HasOpenAsks && requester.HasActiveGoals:
		return reciprocityAskMeetsGoal
	case requester.HasOpenAsks && candidate.HasOpenAsks:
		return reciprocityBothAsksOnly
	default:
		return reciprocityDefault
	}
}

func clamp01(v float64) float64 {
	return math.Max(0, math.Min(1, v))
}

func round3(v float64) float64 {
	return math.Round(v*1000) / 1000
}
