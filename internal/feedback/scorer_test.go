package feedback

import (
	"math"
	"testing"

	"github.com/founderlink/founderlink/internal/core"
)

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func intPtr(v int) *int { return &v }

func floatPtr(v float64) *float64 { return &v }

func TestScoreLifecycleStages(t *testing.T) {
	tests := []struct {
		stage core.IntroStatus
		want  float64
	}{
		{core.IntroRequested, 0.0},
		{core.IntroAccepted, 0.5},
		{core.IntroDeclined, -0.3},
		{core.IntroExpired, -0.1},
	}

	for _, tt := range tests {
		t.Run(string(tt.stage), func(t *testing.T) {
			if got := Score(tt.stage, nil); !almostEqual(got, tt.want) {
				t.Errorf("Score(%s) = %v, want %v", tt.stage, got, tt.want)
			}
		})
	}
}

func TestCompletionScoreBestCase(t *testing.T) {
	outcome := &core.OutcomeData{
		Type:           core.OutcomeMeetingScheduled,
		Rating:         intPtr(5),
		Tags:           []string{"helpful", "great-match"},
		ResponseHours:  floatPtr(2),
		CompletionDays: floatPtr(1),
	}

	if got := Score(core.IntroCompleted, outcome); !almostEqual(got, 1.0) {
		t.Errorf("best-case completion = %v, want 1.0", got)
	}
}

func TestCompletionScoreWorstCase(t *testing.T) {
	outcome := &core.OutcomeData{
		Type:           core.OutcomeNotRelevant,
		Rating:         intPtr(1),
		Tags:           []string{"spam"},
		ResponseHours:  floatPtr(100),
		CompletionDays: floatPtr(30),
	}

	// explicit 0 + behavioral (0.2*0.6+0.2*0.4)*0.25 + contextual 0
	if got := Score(core.IntroCompleted, outcome); !almostEqual(got, 0.05) {
		t.Errorf("worst-case completion = %v, want 0.05", got)
	}
}

func TestCompletionScoreMissingFieldsUseNeutralDefaults(t *testing.T) {
	// rating 0.5, outcome-type 0.5, both speeds 0.6, tags 0.5:
	// 0.5*0.6 + 0.6*0.25 + 0.5*0.15 = 0.525
	got := CompletionScore(&core.OutcomeData{Type: "something_else"})
	if !almostEqual(got, 0.525) {
		t.Errorf("all-defaults completion = %v, want 0.525", got)
	}

	if got := CompletionScore(nil); !almostEqual(got, 0.525) {
		t.Errorf("nil outcome completion = %v, want 0.525", got)
	}
}

func TestCompletionScoreStaysInRange(t *testing.T) {
	outcomes := []*core.OutcomeData{
		{Type: core.OutcomeMeetingScheduled, Rating: intPtr(5), Tags: []string{"helpful", "valuable", "timely"}},
		{Type: core.OutcomeNotRelevant, Rating: intPtr(1), Tags: []string{"spam", "bad-match", "not-relevant"}},
		{Type: core.OutcomeNoResponse},
	}

	for _, outcome := range outcomes {
		got := CompletionScore(outcome)
		if got < 0 || got > 1 {
			t.Errorf("CompletionScore(%+v) = %v, out of [0,1]", outcome, got)
		}
	}
}

func TestTagSentiment(t *testing.T) {
	tests := []struct {
		name string
		tags []string
		want float64
	}{
		{"empty is neutral", nil, 0.5},
		{"all positive", []string{"helpful", "valuable"}, 1.0},
		{"all negative", []string{"spam", "bad-match"}, 0.0},
		{"mixed cancels out", []string{"helpful", "bad-match"}, 0.5},
		{"unknown tags are neutral", []string{"interesting", "unusual"}, 0.5},
		{"positive outweighs unknown", []string{"helpful", "unusual"}, 0.75},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := TagSentiment(tt.tags); !almostEqual(got, tt.want) {
				t.Errorf("TagSentiment(%v) = %v, want %v", tt.tags, got, tt.want)
			}
		})
	}
}

func TestResponseSpeedBuckets(t *testing.T) {
	tests := []struct {
		hours *float64
		want  float64
	}{
		{floatPtr(2), 1.0},
		{floatPtr(12), 0.8},
		{floatPtr(24), 0.6},
		{floatPtr(48), 0.4},
		{floatPtr(72), 0.2},
		{nil, 0.6},
	}

	for _, tt := range tests {
		if got := responseSpeed(tt.hours); !almostEqual(got, tt.want) {
			t.Errorf("responseSpeed(%v) = %v, want %v", tt.hours, got, tt.want)
		}
	}
}

func TestCompletionSpeedBuckets(t *testing.T) {
	tests := []struct {
		days *float64
		want float64
	}{
		{floatPtr(1), 1.0},
		{floatPtr(3), 0.8},
		{floatPtr(5), 0.6},
		{floatPtr(7), 0.4},
		{floatPtr(14), 0.2},
		{nil, 0.6},
	}

	for _, tt := range tests {
		if got := completionSpeed(tt.days); !almostEqual(got, tt.want) {
			t.Errorf("completionSpeed(%v) = %v, want %v", tt.days, got, tt.want)
		}
	}
}

func TestRatingScoreMapping(t *testing.T) {
	wants := map[int]float64{1: 0.0, 2: 0.25, 3: 0.5, 4: 0.75, 5: 1.0}
	for rating, want := range wants {
		if got := ratingScore(intPtr(rating)); !almostEqual(got, want) {
			t.Errorf("ratingScore(%d) = %v, want %v", rating, got, want)
		}
	}
}
