package matching

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/founderlink/founderlink/internal/cache"
	"github.com/founderlink/founderlink/internal/core"
	"github.com/founderlink/founderlink/internal/testutil"
	"github.com/founderlink/founderlink/internal/vectors"
)

func newTestService(search *testutil.MockSearchClient, signals *testutil.MockSignalSource, profiles *testutil.MockProfileSource) *Service {
	agg := NewAggregator(search, AggregatorConfig{}, nil, nil)
	return NewService(signals, profiles, agg, NewScorer(),
		cache.New(16, time.Minute), ServiceConfig{}, nil, nil)
}

func TestSuggestWithoutSignalsReturnsEmptyList(t *testing.T) {
	svc := newTestService(
		&testutil.MockSearchClient{},
		&testutil.MockSignalSource{},
		&testutil.MockProfileSource{},
	)

	got, err := svc.SuggestIntroductions(context.Background(), "alice", 0, 0, core.MatchAll)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got == nil || len(got) != 0 {
		t.Errorf("got %v, want empty non-nil list", got)
	}
}

func TestSuggestAllSearchesFailed(t *testing.T) {
	search := &testutil.MockSearchClient{
		SearchFunc: func(ctx context.Context, q vectors.Query) ([]vectors.Hit, error) {
			return nil, errors.New("connection refused")
		},
	}
	signals := &testutil.MockSignalSource{
		ActiveByOwnerFunc: func(ownerID core.UserID) ([]core.Signal, error) {
			return []core.Signal{{ID: "s1", OwnerID: ownerID, Kind: core.SignalGoal, Text: "goal", Active: true}}, nil
		},
	}

	svc := newTestService(search, signals, &testutil.MockProfileSource{})

	_, err := svc.SuggestIntroductions(context.Background(), "alice", 0, 0, core.MatchAll)
	if !errors.Is(err, core.ErrSearchUnavailable) {
		t.Errorf("got %v, want ErrSearchUnavailable", err)
	}
}

func TestSuggestCachesResults(t *testing.T) {
	var searches atomic.Int32
	search := &testutil.MockSearchClient{
		SearchFunc: func(ctx context.Context, q vectors.Query) ([]vectors.Hit, error) {
			searches.Add(1)
			return []vectors.Hit{{
				SourceID:   "src-bob",
				Similarity: 0.9,
				Metadata: map[string]interface{}{
					vectors.PayloadUserID: "bob",
					vectors.PayloadText:   "matched goal",
				},
			}}, nil
		},
	}
	signals := &testutil.MockSignalSource{
		ActiveByOwnerFunc: func(ownerID core.UserID) ([]core.Signal, error) {
			if ownerID == "alice" {
				return []core.Signal{{ID: "s1", OwnerID: "alice", Kind: core.SignalGoal, Text: "goal", Active: true}}, nil
			}
			return nil, nil
		},
	}
	profiles := &testutil.MockProfileSource{
		GetByIDFunc: func(id core.UserID) (*core.Profile, error) {
			return testutil.ProfileFixture(id), nil
		},
	}

	svc := newTestService(search, signals, profiles)

	first, err := svc.SuggestIntroductions(context.Background(), "alice", 5, 0.1, core.MatchAll)
	if err != nil {
		t.Fatalf("first call: %v", err)
	}
	if len(first) != 1 {
		t.Fatalf("got %d suggestions, want 1", len(first))
	}

	second, err := svc.SuggestIntroductions(context.Background(), "alice", 5, 0.1, core.MatchAll)
	if err != nil {
		t.Fatalf("second call: %v", err)
	}
	if len(second) != 1 {
		t.Fatalf("cached call returned %d suggestions, want 1", len(second))
	}

	if got := searches.Load(); got != 1 {
		t.Errorf("search ran %d times, want 1 (second call should hit the cache)", got)
	}
}

func TestSuggestDropsUnresolvableAndSuspiciousCandidates(t *testing.T) {
	search := &testutil.MockSearchClient{
		SearchFunc: func(ctx context.Context, q vectors.Query) ([]vectors.Hit, error) {
			mk := func(owner string) vectors.Hit {
				return vectors.Hit{
					SourceID:   "src-" + owner,
					Similarity: 0.9,
					Metadata: map[string]interface{}{
						vectors.PayloadUserID: owner,
						vectors.PayloadText:   "text",
					},
				}
			}
			return []vectors.Hit{mk("ghost"), mk("fresh"), mk("bob")}, nil
		},
	}
	signals := &testutil.MockSignalSource{
		ActiveByOwnerFunc: func(ownerID core.UserID) ([]core.Signal, error) {
			if ownerID == "alice" {
				return []core.Signal{{ID: "s1", OwnerID: "alice", Kind: core.SignalGoal, Text: "goal", Active: true}}, nil
			}
			return nil, nil
		},
	}
	profiles := &testutil.MockProfileSource{
		GetByIDFunc: func(id core.UserID) (*core.Profile, error) {
			switch id {
			case "ghost":
				return nil, core.ErrRecordNotFound
			case "fresh":
				return &core.Profile{UserID: id, Name: "New", CreatedAt: time.Now()}, nil
			default:
				return testutil.ProfileFixture(id), nil
			}
		},
	}

	svc := newTestService(search, signals, profiles)

	got, err := svc.SuggestIntroductions(context.Background(), "alice", 10, 0.1, core.MatchAll)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 1 || got[0].UserID != "bob" {
		t.Errorf("got %v, want only bob to survive", got)
	}
}

func TestCalculateMatchScoreSelfMatch(t *testing.T) {
	svc := newTestService(&testutil.MockSearchClient{}, &testutil.MockSignalSource{}, &testutil.MockProfileSource{})

	_, err := svc.CalculateMatchScore(context.Background(), "alice", "alice", nil)
	if !errors.Is(err, core.ErrSelfMatch) {
		t.Errorf("got %v, want ErrSelfMatch", err)
	}
}

func TestCalculateMatchScoreDefaultRelevance(t *testing.T) {
	profiles := &testutil.MockProfileSource{
		GetByIDFunc: func(id core.UserID) (*core.Profile, error) {
			return testutil.ProfileFixture(id), nil
		},
	}
	svc := newTestService(&testutil.MockSearchClient{}, &testutil.MockSignalSource{}, profiles)

	score, err := svc.CalculateMatchScore(context.Background(), "alice", "bob", nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if score.Relevance != 0.5 {
		t.Errorf("relevance = %v, want default 0.5 without candidate data", score.Relevance)
	}
}
