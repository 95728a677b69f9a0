package matching

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/founderlink/founderlink/internal/cache"
	"github.com/founderlink/founderlink/internal/core"
	"github.com/founderlink/founderlink/internal/logging"
	"github.com/founderlink/founderlink/internal/metrics"
)

// A suggestion lists at most this many matched goals and asks each
const maxMatchedTexts = 3

// SignalSource reads a user's active intent signals
type SignalSource interface {
	ActiveByOwner(ownerID core.UserID) ([]core.Signal, error)
}

// ProfileSource resolves user profiles
type ProfileSource interface {
	GetByID(id core.UserID) (*core.Profile, error)
}

// SuggestionCache is the opaque TTL result cache. A miss costs latency,
// never correctness.
type SuggestionCache interface {
	Get(key string) ([]core.Suggestion, bool)
	Set(key string, suggestions []core.Suggestion)
}

// ServiceConfig holds the suggestion defaults
type ServiceConfig struct {
	DefaultLimit    int
	DefaultMinScore float64
}

// Service is the matching engine entry point. All collaborators are
// injected; the service holds only immutable configuration.
type Service struct {
	signals  SignalSource
	profiles ProfileSource
	agg      *Aggregator
	scorer   *Scorer
	cache    SuggestionCache
	cfg      ServiceConfig
	log      *zap.Logger
	met      *metrics.Metrics
}

// NewService creates the matching service
func NewService(signals SignalSource, profiles ProfileSource, agg *Aggregator, scorer *Scorer, sc SuggestionCache, cfg ServiceConfig, log *zap.Logger, met *metrics.Metrics) *Service {
	if cfg.DefaultLimit <= 0 {
		cfg.DefaultLimit = 10
	}
	if cfg.DefaultMinScore <= 0 {
		cfg.DefaultMinScore = 0.5
	}
	if log == nil {
		log = logging.Nop()
	}
	if met == nil {
		met = metrics.NewNop()
	}

	return &Service{
		signals:  signals,
		profiles: profiles,
		agg:      agg,
		scorer:   scorer,
		cache:    sc,
		cfg:      cfg,
		log:      log,
		met:      met,
	}
}

// SuggestIntroductions returns ranked introduction suggestions for a
// user. A user without active signals gets an empty list, not an
// error. Per-signal search failures degrade the result; only a search
// that failed for every queried signal surfaces as an error.
func (s *Service) SuggestIntroductions(ctx context.Context, userID core.UserID, limit int, minScore float64, matchType core.MatchType) ([]core.Suggestion, error) {
	start := time.Now()
	defer func() {
		s.met.SuggestLatency.Observe(time.Since(start).Seconds())
	}()

	if limit <= 0 {
		limit = s.cfg.DefaultLimit
	}
	if minScore <= 0 {
		minScore = s.cfg.DefaultMinScore
	}
	if matchType == "" {
		matchType = core.MatchAll
	}

	key := cache.Key(userID, matchType, limit, minScore)
	if s.cache != nil {
		if cached, ok := s.cache.Get(key); ok {
			s.met.CacheHits.Inc()
			return cached, nil
		}
		s.met.CacheMisses.Inc()
	}

	signals, err := s.signals.ActiveByOwner(userID)
	if err != nil {
		return nil, fmt.Errorf("load signals for %s: %w", userID, err)
	}
	if len(signals) == 0 {
		return []core.Suggestion{}, nil
	}

	set, sigErrs := s.agg.Aggregate(ctx, userID, signals, matchType)

	queried := 0
	for _, sig := range signals {
		if sig.Active && matchType.Includes(sig.Kind) {
			queried++
		}
	}
	if queried == 0 {
		return []core.Suggestion{}, nil
	}
	if len(sigErrs) == queried {
		// Search was unavailable for the entire request
		return nil, fmt.Errorf("%w: all %d signal searches failed", core.ErrSearchUnavailable, queried)
	}

	s.met.CandidatesFound.Observe(float64(set.Len()))

	requesterInv := InventoryOf(signals)
	suggestions := make([]core.Suggestion, 0, set.Len())

	for _, cand := range set.Candidates() {
		profile, err := s.profiles.GetByID(cand.UserID)
		if err != nil {
			if !errors.Is(err, core.ErrRecordNotFound) {
				s.log.Warn("profile lookup failed, dropping candidate",
					zap.String("user_id", string(cand.UserID)),
					zap.Error(err))
			}
			continue
		}
		if s.scorer.Suspicious(profile) {
			continue
		}

		candSignals, err := s.signals.ActiveByOwner(cand.UserID)
		if err != nil {
			candSignals = nil
		}

		suggestions = append(suggestions, core.Suggestion{
			UserID:        cand.UserID,
			Profile:       profile.Summary(),
			Score:         s.scorer.Score(cand, profile, requesterInv, InventoryOf(candSignals)),
			Reasoning:     Explain(cand, profile),
			MatchingGoals: MatchedTexts(cand, core.SignalGoal, maxMatchedTexts),
			MatchingAsks:  MatchedTexts(cand, core.SignalAsk, maxMatchedTexts),
		})
	}

	ranked := Rank(suggestions, minScore, limit)

	if s.cache != nil {
		s.cache.Set(key, ranked)
	}

	return ranked, nil
}

// CalculateMatchScore scores a specific pair of users. When candidate
// data from a previous aggregation is supplied its signals drive the
// relevance sub-score; otherwise relevance falls back to its default.
func (s *Service) CalculateMatchScore(ctx context.Context, requesterID, targetID core.UserID, cand *core.Candidate) (core.MatchScore, error) {
	if requesterID == targetID {
		return core.MatchScore{}, core.ErrSelfMatch
	}

	profile, err := s.profiles.GetByID(targetID)
	if err != nil {
		return core.MatchScore{}, fmt.Errorf("load profile %s: %w", targetID, err)
	}

	requesterSignals, err := s.signals.ActiveByOwner(requesterID)
	if err != nil {
		return core.MatchScore{}, fmt.Errorf("load signals for %s: %w", requesterID, err)
	}
	targetSignals, err := s.signals.ActiveByOwner(targetID)
	if err != nil {
		return core.MatchScore{}, fmt.Errorf("load signals for %s: %w", targetID, err)
	}

	if cand == nil {
		cand = &core.Candidate{UserID: targetID}
	}

	return s.scorer.Score(cand, profile, InventoryOf(requesterSignals), InventoryOf(targetSignals)), nil
}
