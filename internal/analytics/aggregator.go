// Package analytics buckets historical introductions to report success,
// acceptance and completion rates per dimension. Used to sanity-check
// the match scorer's weights against observed outcomes.
package analytics

import (
	"fmt"
	"time"

	"github.com/founderlink/founderlink/internal/core"
)

// Dimension selects how introductions are bucketed
type Dimension string

const (
	DimScoreRange    Dimension = "score_range"
	DimGoalType      Dimension = "goal_type"
	DimIndustryMatch Dimension = "industry_match"
	DimMatchType     Dimension = "match_type"
	DimTime          Dimension = "time"
)

// Valid reports whether the dimension is a known one.
func (d Dimension) Valid() bool {
	switch d {
	case DimScoreRange, DimGoalType, DimIndustryMatch, DimMatchType, DimTime:
		return true
	}
	return false
}

// Bucket is one aggregated analytics row, recomputed on demand
type Bucket struct {
	Key            string  `json:"dimension_key"`
	Total          int     `json:"total"`
	SuccessRate    float64 `json:"success_rate"`
	AcceptanceRate float64 `json:"acceptance_rate"`
	CompletionRate float64 `json:"completion_rate"`
	AvgScore       float64 `json:"avg_score"`
}

// scoreBands are the six fixed score-range buckets
var scoreBands = []struct {
	label string
	min   float64
	max   float64
}{
	{"<0.50", 0.00, 0.50},
	{"0.50-0.60", 0.50, 0.60},
	{"0.60-0.70", 0.60, 0.70},
	{"0.70-0.80", 0.70, 0.80},
	{"0.80-0.90", 0.80, 0.90},
	{"0.90-1.00", 0.90, 1.01},
}

type accumulator struct {
	total     int
	accepted  int
	completed int
	succeeded int
	scoreSum  float64
}

func (a *accumulator) add(intro core.Introduction) {
	a.total++
	a.scoreSum += intro.Score.Overall

	switch intro.Status {
	case core.IntroAccepted:
		a.accepted++
		a.succeeded++
	case core.IntroCompleted:
		a.completed++
		if intro.Outcome != nil &&
			(intro.Outcome.Type == core.OutcomeMeetingScheduled ||
				intro.Outcome.Type == core.OutcomeEmailExchanged) {
			a.succeeded++
		}
	}
}

func (a *accumulator) bucket(key string) Bucket {
	b := Bucket{Key: key, Total: a.total}
	if a.total == 0 {
		return b
	}

	responded := a.accepted + a.completed
	b.SuccessRate = float64(a.succeeded) / float64(a.total)
	b.AcceptanceRate = float64(responded) / float64(a.total)
	if responded > 0 {
		b.CompletionRate = float64(a.completed) / float64(responded)
	}
	b.AvgScore = a.scoreSum / float64(a.total)

	return b
}

// Bucketize groups introductions by the given dimension and computes
// the per-bucket rates. Score-range always returns the six fixed bands;
// other dimensions return buckets in first-seen order.
func Bucketize(intros []core.Introduction, dim Dimension) []Bucket {
	if dim == DimScoreRange {
		return bucketizeScoreRange(intros)
	}

	byKey := make(map[string]*accumulator)
	var order []string

	for _, intro := range intros {
		key := dimensionKey(intro, dim)
		acc, ok := byKey[key]
		if !ok {
			acc = &accumulator{}
			byKey[key] = acc
			order = append(order, key)
		}
		acc.add(intro)
	}

	buckets := make([]Bucket, 0, len(order))
	for _, key := range order {
		buckets = append(buckets, byKey[key].bucket(key))
	}

	return buckets
}

func bucketizeScoreRange(intros []core.Introduction) []Bucket {
	accs := make([]accumulator, len(scoreBands))

	for _, intro := range intros {
		for i, band := range scoreBands {
			if intro.Score.Overall >= band.min && intro.Score.Overall < band.max {
				accs[i].add(intro)
				break
			}
		}
	}

	buckets := make([]Bucket, len(scoreBands))
	for i, band := range scoreBands {
		buckets[i] = accs[i].bucket(band.label)
	}

	return buckets
}

func dimensionKey(intro core.Introduction, dim Dimension) string {
	switch dim {
	case DimGoalType:
		if intro.GoalType == "" {
			return "unknown"
		}
		return intro.GoalType
	case DimIndustryMatch:
		if intro.IndustryMatch {
			return "same_industry"
		}
		return "cross_industry"
	case DimMatchType:
		return string(intro.MatchType)
	case DimTime:
		return intro.CreatedAt.UTC().Format("2006-01")
	default:
		return "all"
	}
}

// IntroSource lists historical introductions
type IntroSource interface {
	ListSince(since time.Time) ([]core.Introduction, error)
}

// Report is one on-demand analytics run
type Report struct {
	Dimension Dimension `json:"dimension"`
	Since     time.Time `json:"since"`
	Buckets   []Bucket  `json:"buckets"`
	Insight   string    `json:"insight"`
}

// Service recomputes analytics reports from stored introductions
type Service struct {
	intros IntroSource
}

// NewService creates an analytics service
func NewService(intros IntroSource) *Service {
	return &Service{intros: intros}
}

// Aggregate buckets introductions created within timeRange by the given
// dimension and attaches the score/success insight.
func (s *Service) Aggregate(timeRange time.Duration, dim Dimension) (*Report, error) {
	if !dim.Valid() {
		return nil, fmt.Errorf("%w: unknown dimension %q", core.ErrInvalidInput, dim)
	}
	if timeRange <= 0 {
		timeRange = 30 * 24 * time.Hour
	}

	since := time.Now().UTC().Add(-timeRange)
	intros, err := s.intros.ListSince(since)
	if err != nil {
		return nil, fmt.Errorf("list introductions: %w", err)
	}

	buckets := Bucketize(intros, dim)

	// The score/success relationship is always read from score bands,
	// regardless of the requested dimension.
	scoreBuckets := buckets
	if dim != DimScoreRange {
		scoreBuckets = Bucketize(intros, DimScoreRange)
	}

	return &Report{
		Dimension: dim,
		Since:     since,
		Buckets:   buckets,
		Insight:   Insight(scoreBuckets),
	}, nil
}
