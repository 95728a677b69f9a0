package matching

import (
	"sort"
	"strings"

	"github.com/founderlink/founderlink/internal/core"
)

// Explanations truncate matched signal text to this many characters
const reasonTextLimit = 80

// fallbackReason is returned when no explanation fragment applies
const fallbackReason = "Potential valuable connection based on complementary profiles."

// Explain renders a short human-readable explanation of why a candidate
// matched. Pure text formatting: the same inputs always produce the
// same string byte for byte.
func Explain(cand *core.Candidate, profile *core.Profile) string {
	var parts []string

	if hit, ok := bestHit(cand, core.SignalGoal); ok {
		parts = append(parts, "Working on similar goals: "+truncateText(hit.SourceText, reasonTextLimit))
	}
	if hit, ok := bestHit(cand, core.SignalAsk); ok {
		parts = append(parts, "Can help with: "+truncateText(hit.SourceText, reasonTextLimit))
	}
	if profile.Headline != "" {
		parts = append(parts, profile.Headline)
	}
	if profile.Location != "" {
		parts = append(parts, profile.Location)
	}

	if len(parts) == 0 {
		return fallbackReason
	}

	return strings.Join(parts, ". ")
}

// MatchedTexts returns the texts of the candidate's matched signals of
// the given kind, highest similarity first, capped at limit.
func MatchedTexts(cand *core.Candidate, kind core.SignalKind, limit int) []string {
	hits := make([]core.MatchingSignal, 0, len(cand.Signals))
	for _, hit := range cand.Signals {
		if hit.Kind == kind && hit.SourceText != "" {
			hits = append(hits, hit)
		}
	}

	sort.SliceStable(hits, func(i, j int) bool {
		return hits[i].Similarity > hits[j].Similarity
	})

	texts := make([]string, 0, limit)
	seen := make(map[string]bool)
	for _, hit := range hits {
		if seen[hit.SourceText] {
			continue
		}
		seen[hit.SourceText] = true
		texts = append(texts, hit.SourceText)
		if len(texts) == limit {
			break
		}
	}

	return texts
}

// bestHit returns the highest-similarity hit of the given kind. Ties
// keep the earliest hit.
func bestHit(cand *core.Candidate, kind core.SignalKind) (core.MatchingSignal, bool) {
	var best core.MatchingSignal
	found := false

	for _, hit := range cand.Signals {
		if hit.Kind != kind || hit.SourceText == "" {
			continue
		}
		if !found || hit.Similarity > best.Similarity {
			best = hit
			found = true
		}
	}

	return best, found
}

func truncateText(s string, limit int) string {
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit])
}
