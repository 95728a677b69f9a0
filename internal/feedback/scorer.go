// Package feedback converts introduction lifecycle outcomes into scalar
// reinforcement-feedback scores in [-1, 1] and ships them to the
// external learning sink.
package feedback

import (
	"math"

	"github.com/founderlink/founderlink/internal/core"
)

// Stage scores for lifecycle events that carry no outcome data
const (
	scoreRequested = 0.0
	scoreAccepted  = 0.5
	scoreDeclined  = -0.3
	scoreExpired   = -0.1
)

// Completion score blends three weighted contributions
const (
	explicitWeight   = 0.60
	behavioralWeight = 0.25
	contextualWeight = 0.15

	ratingWeight      = 0.5
	outcomeTypeWeight = 0.5

	responseSpeedWeight   = 0.6
	completionSpeedWeight = 0.4
)

// Neutral defaults for missing outcome fields
const (
	defaultRatingScore  = 0.5
	defaultOutcomeScore = 0.5
	defaultSpeedScore   = 0.6
	defaultTagSentiment = 0.5
)

// outcomeTypeScores is the fixed outcome-type lookup
var outcomeTypeScores = map[core.OutcomeType]float64{
	core.OutcomeMeetingScheduled: 1.0,
	core.OutcomeEmailExchanged:   0.8,
	core.OutcomeNoResponse:       0.2,
	core.OutcomeNotRelevant:      0.0,
}

// Fixed tag sentiment sets
var (
	positiveTags = map[string]bool{
		"helpful":     true,
		"valuable":    true,
		"great-match": true,
		"timely":      true,
		"relevant":    true,
	}
	negativeTags = map[string]bool{
		"not-relevant": true,
		"bad-match":    true,
		"spam":         true,
		"timing-off":   true,
		"too-busy":     true,
	}
)

// Score maps a lifecycle stage (and, for completed introductions, the
// outcome data) to a feedback value in [-1, 1]. Pure: no state is
// retained between calls.
func Score(stage core.IntroStatus, outcome *core.OutcomeData) float64 {
	switch stage {
	case core.IntroRequested:
		return scoreRequested
	case core.IntroAccepted:
		return scoreAccepted
	case core.IntroDeclined:
		return scoreDeclined
	case core.IntroExpired:
		return scoreExpired
	case core.IntroCompleted:
		return CompletionScore(outcome)
	default:
		return 0.0
	}
}

// CompletionScore blends explicit (60%), behavioral (25%) and
// contextual (15%) contributions into a value in [0, 1].
func CompletionScore(outcome *core.OutcomeData) float64 {
	if outcome == nil {
		outcome = &core.OutcomeData{}
	}

	explicit := (ratingScore(outcome.Rating)*ratingWeight +
		outcomeTypeScore(outcome.Type)*outcomeTypeWeight) * explicitWeight

	behavioral := (responseSpeed(outcome.ResponseHours)*responseSpeedWeight +
		completionSpeed(outcome.CompletionDays)*completionSpeedWeight) * behavioralWeight

	contextual := TagSentiment(outcome.Tags) * contextualWeight

	return clamp01(explicit + behavioral + contextual)
}

// TagSentiment scores a tag list against the fixed positive and
// negative sets, normalized to [0, 1]. An empty list is exactly 0.5.
func TagSentiment(tags []string) float64 {
	if len(tags) == 0 {
		return defaultTagSentiment
	}

	var positive, negative int
	for _, tag := range tags {
		if positiveTags[tag] {
			positive++
		}
		if negativeTags[tag] {
			negative++
		}
	}

	normalized := float64(positive-negative+len(tags)) / float64(2*len(tags))
	return clamp01(normalized)
}

// ratingScore maps a 1-5 rating onto [0, 1], defaulting to neutral
func ratingScore(rating *int) float64 {
	if rating == nil {
		return defaultRatingScore
	}
	return float64(*rating-1) / 4
}

func outcomeTypeScore(t core.OutcomeType) float64 {
	if score, ok := outcomeTypeScores[t]; ok {
		return score
	}
	return defaultOutcomeScore
}

// responseSpeed buckets hours-to-first-response. A missing value lands
// in the 48h bucket.
func responseSpeed(hours *float64) float64 {
	if hours == nil {
		return defaultSpeedScore
	}

	switch h := *hours; {
	case h < 12:
		return 1.0
	case h < 24:
		return 0.8
	case h < 48:
		return 0.6
	case h < 72:
		return 0.4
	default:
		return 0.2
	}
}

// completionSpeed buckets days-to-completion. A missing value lands in
// the middle bucket, matching the response-speed default.
func completionSpeed(days *float64) float64 {
	if days == nil {
		return defaultSpeedScore
	}

	switch d := *days; {
	case d < 3:
		return 1.0
	case d < 5:
		return 0.8
	case d < 7:
		return 0.6
	case d < 14:
		return 0.4
	default:
		return 0.2
	}
}

func clamp01(v float64) float64 {
	return math.Max(0, math.Min(1, v))
}
