package feedback

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/founderlink/founderlink/internal/core"
	"github.com/founderlink/founderlink/internal/logging"
	"github.com/founderlink/founderlink/internal/metrics"
)

// Sink is the external learning-feedback collaborator
type Sink interface {
	Record(ctx context.Context, in Interaction) (string, error)
}

// Interaction is one feedback record sent to the sink
type Interaction struct {
	AgentID  string                 `json:"agent_id"`
	Prompt   string                 `json:"prompt"`
	Response string                 `json:"response"`
	Feedback float64                `json:"feedback"`
	Context  map[string]interface{} `json:"context,omitempty"`
}

// HistoryWriter appends emitted feedback to local append-only history
type HistoryWriter interface {
	AppendFeedback(introID core.IntroID, stage core.IntroStatus, score float64, interactionID string) error
}

// Recorder scores lifecycle events and ships them to the sink as an
// explicit fire-and-forget side effect: failures are counted and
// logged, never propagated to the caller.
type Recorder struct {
	sink    Sink
	history HistoryWriter
	agentID string
	timeout time.Duration
	log     *zap.Logger
	met     *metrics.Metrics
}

// RecorderConfig for the feedback recorder
type RecorderConfig struct {
	AgentID string        // identifier reported to the sink
	Timeout time.Duration // per-write bound, default 5s
}

// NewRecorder creates a feedback recorder. The sink may be nil, in
// which case only local history is written.
func NewRecorder(sink Sink, history HistoryWriter, cfg RecorderConfig, log *zap.Logger, met *metrics.Metrics) *Recorder {
	if cfg.AgentID == "" {
		cfg.AgentID = "founderlink-matcher"
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 5 * time.Second
	}
	if log == nil {
		log = logging.Nop()
	}
	if met == nil {
		met = metrics.NewNop()
	}

	return &Recorder{
		sink:    sink,
		history: history,
		agentID: cfg.AgentID,
		timeout: cfg.Timeout,
		log:     log,
		met:     met,
	}
}

// Record computes the feedback score for a lifecycle event, appends it
// to local history, and ships it to the sink in the background. The
// returned score is final; sink failures never affect it.
func (r *Recorder) Record(intro *core.Introduction, stage core.IntroStatus, outcome *core.OutcomeData) float64 {
	score := Score(stage, outcome)
	r.met.FeedbackRecorded.WithLabelValues(string(stage)).Inc()

	if r.history != nil {
		if err := r.history.AppendFeedback(intro.ID, stage, score, ""); err != nil {
			r.log.Warn("failed to append feedback history",
				zap.String("intro_id", string(intro.ID)),
				zap.Error(err))
		}
	}

	if r.sink != nil {
		go r.ship(intro, stage, score)
	}

	return score
}

// ship writes one feedback record to the sink with a bounded timeout.
// Runs on its own goroutine; errors end up in the failure metric.
func (r *Recorder) ship(intro *core.Introduction, stage core.IntroStatus, score float64) {
	ctx, cancel := context.WithTimeout(context.Background(), r.timeout)
	defer cancel()

	_, err := r.sink.Record(ctx, Interaction{
		AgentID:  r.agentID,
		Prompt:   fmt.Sprintf("introduction %s -> %s", intro.RequesterID, intro.TargetID),
		Response: string(stage),
		Feedback: score,
		Context: map[string]interface{}{
			"intro_id":       string(intro.ID),
			"match_type":     string(intro.MatchType),
			"overall_score":  intro.Score.Overall,
			"goal_type":      intro.GoalType,
			"industry_match": intro.IndustryMatch,
		},
	})
	if err != nil {
		r.met.SinkFailures.Inc()
		r.log.Warn("feedback sink write failed",
			zap.String("intro_id", string(intro.ID)),
			zap.String("stage", string(stage)),
			zap.Error(err))
	}
}

// ValidateOutcome rejects malformed outcome data at the boundary so the
// scorer can assume validated input.
func ValidateOutcome(outcome *core.OutcomeData) error {
	if outcome == nil {
		return core.ErrOutcomeRequired
	}

	switch outcome.Type {
	case core.OutcomeMeetingScheduled, core.OutcomeEmailExchanged,
		core.OutcomeNoResponse, core.OutcomeNotRelevant:
	default:
		return fmt.Errorf("%w: %q", core.ErrUnknownOutcome, outcome.Type)
	}

	if outcome.Rating != nil && (*outcome.Rating < 1 || *outcome.Rating > 5) {
		return core.ErrInvalidRating
	}
	if outcome.ResponseHours != nil && *outcome.ResponseHours < 0 {
		return fmt.Errorf("%w: negative response time", core.ErrInvalidInput)
	}
	if outcome.CompletionDays != nil && *outcome.CompletionDays < 0 {
		return fmt.Errorf("%w: negative completion time", core.ErrInvalidInput)
	}

	return nil
}
