package matching

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/founderlink/founderlink/internal/core"
)

func TestExplainIsDeterministic(t *testing.T) {
	cand := &core.Candidate{
		UserID: "bob",
		Signals: []core.MatchingSignal{
			{Kind: core.SignalGoal, SourceText: "raise a seed round", Similarity: 0.8},
			{Kind: core.SignalAsk, SourceText: "intro to fintech VCs", Similarity: 0.7},
		},
	}
	profile := &core.Profile{Headline: "Fintech founder", Location: "London"}

	first := Explain(cand, profile)
	second := Explain(cand, profile)

	if first != second {
		t.Error("Explain is not deterministic for identical inputs")
	}

	for _, fragment := range []string{
		"Working on similar goals: raise a seed round",
		"Can help with: intro to fintech VCs",
		"Fintech founder",
		"London",
	} {
		if !strings.Contains(first, fragment) {
			t.Errorf("explanation missing %q: %s", fragment, first)
		}
	}
}

func TestExplainTruncatesLongSignalText(t *testing.T) {
	long := strings.Repeat("x", 200)
	cand := &core.Candidate{
		UserID:  "bob",
		Signals: []core.MatchingSignal{{Kind: core.SignalGoal, SourceText: long, Similarity: 0.8}},
	}

	got := Explain(cand, &core.Profile{})
	text := strings.TrimPrefix(got, "Working on similar goals: ")

	if utf8.RuneCountInString(text) != 80 {
		t.Errorf("truncated text has %d runes, want 80", utf8.RuneCountInString(text))
	}
}

func TestExplainFallback(t *testing.T) {
	got := Explain(&core.Candidate{UserID: "bob"}, &core.Profile{})
	if got != fallbackReason {
		t.Errorf("got %q, want the fixed fallback", got)
	}
}

func TestExplainUsesBestHitPerKind(t *testing.T) {
	cand := &core.Candidate{
		UserID: "bob",
		Signals: []core.MatchingSignal{
			{Kind: core.SignalGoal, SourceText: "weaker goal", Similarity: 0.65},
			{Kind: core.SignalGoal, SourceText: "stronger goal", Similarity: 0.9},
		},
	}

	got := Explain(cand, &core.Profile{})
	if !strings.Contains(got, "stronger goal") {
		t.Errorf("explanation should use the highest-similarity hit: %s", got)
	}
	if strings.Contains(got, "weaker goal") {
		t.Errorf("explanation should not mention the weaker hit: %s", got)
	}
}

func TestMatchedTextsSortedDedupedCapped(t *testing.T) {
	cand := &core.Candidate{
		UserID: "bob",
		Signals: []core.MatchingSignal{
			{Kind: core.SignalGoal, SourceText: "b", Similarity: 0.7},
			{Kind: core.SignalGoal, SourceText: "a", Similarity: 0.9},
			{Kind: core.SignalGoal, SourceText: "a", Similarity: 0.8},
			{Kind: core.SignalGoal, SourceText: "c", Similarity: 0.6},
			{Kind: core.SignalAsk, SourceText: "not a goal", Similarity: 0.99},
		},
	}

	got := MatchedTexts(cand, core.SignalGoal, 2)

	if len(got) != 2 {
		t.Fatalf("got %d texts, want 2", len(got))
	}
	if got[0] != "a" || got[1] != "b" {
		t.Errorf("got %v, want [a b]", got)
	}
}
