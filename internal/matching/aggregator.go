// Package matching implements the candidate matching engine: candidate
// aggregation across similarity signals, multi-dimensional scoring,
// explanation, and ranking.
package matching

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/founderlink/founderlink/internal/core"
	"github.com/founderlink/founderlink/internal/logging"
	"github.com/founderlink/founderlink/internal/metrics"
	"github.com/founderlink/founderlink/internal/vectors"
)

// SearchClient is the similarity-search collaborator. Owned elsewhere;
// the aggregator only consumes it.
type SearchClient interface {
	Search(ctx context.Context, q vectors.Query) ([]vectors.Hit, error)
}

// SignalError records one per-signal search failure. A failed signal is
// skipped; it never aborts the aggregation.
type SignalError struct {
	SignalID core.SignalID
	Err      error
}

func (e SignalError) Error() string {
	return fmt.Sprintf("signal %s: %v", e.SignalID, e.Err)
}

func (e SignalError) Unwrap() error {
	return e.Err
}

// CandidateSet accumulates one candidate per target user while
// preserving discovery order. Discovery order follows signal order,
// then hit order within a signal; the ranker uses it as tie-break.
type CandidateSet struct {
	byUser map[core.UserID]*core.Candidate
	order  []core.UserID
}

// NewCandidateSet creates an empty candidate set
func NewCandidateSet() *CandidateSet {
	return &CandidateSet{byUser: make(map[core.UserID]*core.Candidate)}
}

// Add inserts or updates the candidate for userID with one more hit.
func (cs *CandidateSet) Add(userID core.UserID, hit core.MatchingSignal) {
	cand, ok := cs.byUser[userID]
	if !ok {
		cand = &core.Candidate{UserID: userID}
		cs.byUser[userID] = cand
		cs.order = append(cs.order, userID)
	}

	cand.Signals = append(cand.Signals, hit)
	if hit.Similarity > cand.MaxSimilarity {
		cand.MaxSimilarity = hit.Similarity
	}
}

// Get returns the candidate for userID, if present.
func (cs *CandidateSet) Get(userID core.UserID) (*core.Candidate, bool) {
	cand, ok := cs.byUser[userID]
	return cand, ok
}

// Len returns the number of distinct candidates
func (cs *CandidateSet) Len() int {
	return len(cs.order)
}

// Candidates returns all candidates in discovery order.
func (cs *CandidateSet) Candidates() []*core.Candidate {
	out := make([]*core.Candidate, 0, len(cs.order))
	for _, id := range cs.order {
		out = append(out, cs.byUser[id])
	}
	return out
}

// AggregatorConfig tunes the per-signal similarity searches
type AggregatorConfig struct {
	SearchLimit   int           // hits per signal, default 50
	MinSimilarity float64       // similarity floor, default 0.6
	SearchTimeout time.Duration // per-call bound, default 10s
}

// Aggregator fans one similarity search out per active signal and
// merges the hits into one candidate per target user.
type Aggregator struct {
	search SearchClient
	cfg    AggregatorConfig
	log    *zap.Logger
	met    *metrics.Metrics
}

// NewAggregator creates a candidate aggregator
func NewAggregator(search SearchClient, cfg AggregatorConfig, log *zap.Logger, met *metrics.Metrics) *Aggregator {
	if cfg.SearchLimit <= 0 {
		cfg.SearchLimit = 50
	}
	if cfg.MinSimilarity <= 0 {
		cfg.MinSimilarity = 0.6
	}
	if cfg.SearchTimeout <= 0 {
		cfg.SearchTimeout = 10 * time.Second
	}
	if log == nil {
		log = logging.Nop()
	}
	if met == nil {
		met = metrics.NewNop()
	}

	return &Aggregator{search: search, cfg: cfg, log: log, met: met}
}

// Aggregate queries the similarity search for every active signal whose
// kind matches matchType and merges the hits. Hits without a resolvable
// owner and hits owned by the requester are skipped; the requester
// never appears in the result. Per-signal failures are returned as
// SignalError values and never abort the remaining signals.
func (a *Aggregator) Aggregate(ctx context.Context, requesterID core.UserID, signals []core.Signal, matchType core.MatchType) (*CandidateSet, []SignalError) {
	queried := make([]core.Signal, 0, len(signals))
	for _, sig := range signals {
		if sig.Active && matchType.Includes(sig.Kind) {
			queried = append(queried, sig)
		}
	}

	// Per-signal searches are independent; fan them out and merge the
	// results afterwards in signal order.
	results := make([][]vectors.Hit, len(queried))
	failures := make([]error, len(queried))

	g, gctx := errgroup.WithContext(ctx)
	for i, sig := range queried {
		g.Go(func() error {
			callCtx, cancel := context.WithTimeout(gctx, a.cfg.SearchTimeout)
			defer cancel()

			hits, err := a.search.Search(callCtx, vectors.Query{
				Text:          sig.Text,
				Kind:          sig.Kind,
				Limit:         a.cfg.SearchLimit,
				MinSimilarity: a.cfg.MinSimilarity,
			})
			if err != nil {
				failures[i] = err
				return nil
			}
			results[i] = hits
			return nil
		})
	}
	g.Wait()

	set := NewCandidateSet()
	var sigErrs []SignalError

	for i, sig := range queried {
		if failures[i] != nil {
			a.met.SearchFailures.Inc()
			a.log.Warn("similarity search failed, skipping signal",
				zap.String("signal_id", string(sig.ID)),
				zap.Error(failures[i]))
			sigErrs = append(sigErrs, SignalError{SignalID: sig.ID, Err: failures[i]})
			continue
		}

		for _, hit := range results[i] {
			owner, _ := hit.Metadata[vectors.PayloadUserID].(string)
			if owner == "" {
				// No resolvable owner: skip the hit
				continue
			}
			if core.UserID(owner) == requesterID {
				// Never match a user with themselves
				continue
			}

			text, _ := hit.Metadata[vectors.PayloadText].(string)
			set.Add(core.UserID(owner), core.MatchingSignal{
				Kind:       sig.Kind,
				SourceID:   core.SignalID(hit.SourceID),
				SourceText: text,
				Similarity: hit.Similarity,
			})
		}
	}

	return set, sigErrs
}
