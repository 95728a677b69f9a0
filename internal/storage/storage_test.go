package storage_test

import (
	"errors"
	"testing"
	"time"

	"github.com/founderlink/founderlink/internal/core"
	"github.com/founderlink/founderlink/internal/storage"
	"github.com/founderlink/founderlink/internal/testutil"
)

func TestUserStoreUpsertAndGet(t *testing.T) {
	db := testutil.TestDB(t)
	store := storage.NewUserStore(db)

	posted := time.Date(2026, 2, 1, 10, 0, 0, 0, time.UTC)
	profile := &core.Profile{
		UserID:     "alice",
		Name:       "Alice",
		Headline:   "Building a marketplace",
		Location:   "Lisbon",
		Bio:        "First-time founder",
		Industry:   "marketplaces",
		Verified:   true,
		LastPostAt: &posted,
	}

	if err := store.Upsert(profile); err != nil {
		t.Fatalf("upsert: %v", err)
	}

	got, err := store.GetByID("alice")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.Name != "Alice" || got.Industry != "marketplaces" || !got.Verified {
		t.Errorf("got %+v, fields do not round-trip", got)
	}
	if got.LastPostAt == nil || !got.LastPostAt.Equal(posted) {
		t.Errorf("last_post_at = %v, want %v", got.LastPostAt, posted)
	}

	// Second upsert updates in place
	profile.Headline = "Pivoted to B2B"
	if err := store.Upsert(profile); err != nil {
		t.Fatalf("second upsert: %v", err)
	}
	got, err = store.GetByID("alice")
	if err != nil {
		t.Fatalf("get after update: %v", err)
	}
	if got.Headline != "Pivoted to B2B" {
		t.Errorf("headline = %q, want the updated value", got.Headline)
	}
}

func TestUserStoreGetMissing(t *testing.T) {
	db := testutil.TestDB(t)
	store := storage.NewUserStore(db)

	_, err := store.GetByID("nobody")
	if !errors.Is(err, core.ErrRecordNotFound) {
		t.Errorf("got %v, want ErrRecordNotFound", err)
	}
}

func TestSignalStoreLifecycle(t *testing.T) {
	db := testutil.TestDB(t)
	users := storage.NewUserStore(db)
	signals := storage.NewSignalStore(db)

	if err := users.Upsert(testutil.ProfileFixture("alice")); err != nil {
		t.Fatalf("upsert user: %v", err)
	}

	goal := testutil.SignalFixture("alice", core.SignalGoal, "raise a seed round")
	ask := testutil.SignalFixture("alice", core.SignalAsk, "intro to fintech VCs")

	for _, sig := range []core.Signal{goal, ask} {
		s := sig
		if err := signals.Create(&s); err != nil {
			t.Fatalf("create %s: %v", sig.Kind, err)
		}
	}

	active, err := signals.ActiveByOwner("alice")
	if err != nil {
		t.Fatalf("active by owner: %v", err)
	}
	if len(active) != 2 {
		t.Fatalf("got %d active signals, want 2", len(active))
	}
	// kind ASC puts asks before goals
	if active[0].Kind != core.SignalAsk {
		t.Errorf("active[0].Kind = %s, want ask (kind ASC)", active[0].Kind)
	}

	if err := signals.Deactivate(goal.ID); err != nil {
		t.Fatalf("deactivate: %v", err)
	}

	active, err = signals.ActiveByOwner("alice")
	if err != nil {
		t.Fatalf("active after deactivate: %v", err)
	}
	if len(active) != 1 || active[0].ID != ask.ID {
		t.Errorf("got %v, want only the ask to stay active", active)
	}

	if err := signals.Deactivate("no-such-signal"); !errors.Is(err, core.ErrRecordNotFound) {
		t.Errorf("deactivating a missing signal: got %v, want ErrRecordNotFound", err)
	}
}

func TestIntroStoreCreateAndGet(t *testing.T) {
	db := testutil.TestDB(t)
	users := storage.NewUserStore(db)
	intros := storage.NewIntroStore(db)

	for _, id := range []core.UserID{"alice", "bob"} {
		if err := users.Upsert(testutil.ProfileFixture(id)); err != nil {
			t.Fatalf("upsert %s: %v", id, err)
		}
	}

	intro := &core.Introduction{
		RequesterID: "alice",
		TargetID:    "bob",
		MatchType:   core.MatchGoalBased,
		Score:       core.MatchScore{Relevance: 0.9, Trust: 0.8, Reciprocity: 0.7, Overall: 0.825},
		GoalType:    "fundraising",
	}

	if err := intros.Create(intro); err != nil {
		t.Fatalf("create: %v", err)
	}
	if intro.ID == "" {
		t.Fatal("create did not assign an ID")
	}
	if intro.Status != core.IntroRequested {
		t.Errorf("status = %s, want requested", intro.Status)
	}

	got, err := intros.GetByID(intro.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.Score.Overall != 0.825 || got.GoalType != "fundraising" {
		t.Errorf("got %+v, score snapshot does not round-trip", got)
	}

	if _, err := intros.GetByID("missing"); !errors.Is(err, core.ErrIntroNotFound) {
		t.Errorf("got %v, want ErrIntroNotFound", err)
	}
}

func TestIntroStoreTransitions(t *testing.T) {
	db := testutil.TestDB(t)
	users := storage.NewUserStore(db)
	intros := storage.NewIntroStore(db)

	for _, id := range []core.UserID{"alice", "bob"} {
		if err := users.Upsert(testutil.ProfileFixture(id)); err != nil {
			t.Fatalf("upsert %s: %v", id, err)
		}
	}

	intro := &core.Introduction{RequesterID: "alice", TargetID: "bob", MatchType: core.MatchAll}
	if err := intros.Create(intro); err != nil {
		t.Fatalf("create: %v", err)
	}

	// requested -> completed is illegal
	if _, err := intros.Transition(intro.ID, core.IntroCompleted, nil); !errors.Is(err, core.ErrInvalidTransition) {
		t.Errorf("requested->completed: got %v, want ErrInvalidTransition", err)
	}

	accepted, err := intros.Transition(intro.ID, core.IntroAccepted, nil)
	if err != nil {
		t.Fatalf("accept: %v", err)
	}
	if accepted.RespondedAt == nil {
		t.Error("accept did not set responded_at")
	}

	rating := 5
	outcome := &core.OutcomeData{Type: core.OutcomeMeetingScheduled, Rating: &rating, Tags: []string{"helpful"}}

	completed, err := intros.Transition(intro.ID, core.IntroCompleted, outcome)
	if err != nil {
		t.Fatalf("complete: %v", err)
	}
	if completed.CompletedAt == nil {
		t.Error("complete did not set completed_at")
	}

	got, err := intros.GetByID(intro.ID)
	if err != nil {
		t.Fatalf("get after complete: %v", err)
	}
	if got.Outcome == nil || got.Outcome.Type != core.OutcomeMeetingScheduled {
		t.Errorf("outcome = %+v, does not round-trip", got.Outcome)
	}
	if got.Outcome.Rating == nil || *got.Outcome.Rating != 5 {
		t.Errorf("rating = %v, want 5", got.Outcome.Rating)
	}

	// completed is terminal
	if _, err := intros.Transition(intro.ID, core.IntroExpired, nil); !errors.Is(err, core.ErrInvalidTransition) {
		t.Errorf("completed->expired: got %v, want ErrInvalidTransition", err)
	}
}

func TestIntroStoreListSince(t *testing.T) {
	db := testutil.TestDB(t)
	users := storage.NewUserStore(db)
	intros := storage.NewIntroStore(db)

	for _, id := range []core.UserID{"alice", "bob"} {
		if err := users.Upsert(testutil.ProfileFixture(id)); err != nil {
			t.Fatalf("upsert %s: %v", id, err)
		}
	}

	intro := &core.Introduction{RequesterID: "alice", TargetID: "bob", MatchType: core.MatchAll}
	if err := intros.Create(intro); err != nil {
		t.Fatalf("create: %v", err)
	}

	recent, err := intros.ListSince(time.Now().UTC().Add(-time.Hour))
	if err != nil {
		t.Fatalf("list since: %v", err)
	}
	if len(recent) != 1 {
		t.Errorf("got %d intros, want 1", len(recent))
	}

	future, err := intros.ListSince(time.Now().UTC().Add(time.Hour))
	if err != nil {
		t.Fatalf("list since future: %v", err)
	}
	if len(future) != 0 {
		t.Errorf("got %d intros from the future, want 0", len(future))
	}
}

func TestFeedbackHistoryAppendOnly(t *testing.T) {
	db := testutil.TestDB(t)
	users := storage.NewUserStore(db)
	intros := storage.NewIntroStore(db)

	for _, id := range []core.UserID{"alice", "bob"} {
		if err := users.Upsert(testutil.ProfileFixture(id)); err != nil {
			t.Fatalf("upsert %s: %v", id, err)
		}
	}

	intro := &core.Introduction{RequesterID: "alice", TargetID: "bob", MatchType: core.MatchAll}
	if err := intros.Create(intro); err != nil {
		t.Fatalf("create: %v", err)
	}

	if err := intros.AppendFeedback(intro.ID, core.IntroRequested, 0.0, ""); err != nil {
		t.Fatalf("append requested: %v", err)
	}
	if err := intros.AppendFeedback(intro.ID, core.IntroAccepted, 0.5, "interaction-1"); err != nil {
		t.Fatalf("append accepted: %v", err)
	}

	history, err := intros.FeedbackHistory(intro.ID)
	if err != nil {
		t.Fatalf("history: %v", err)
	}
	if len(history) != 2 {
		t.Fatalf("got %d entries, want 2", len(history))
	}
	if history[0].Stage != core.IntroRequested || history[1].Stage != core.IntroAccepted {
		t.Errorf("history order = [%s %s], want oldest first", history[0].Stage, history[1].Stage)
	}
	if history[1].Score != 0.5 || history[1].InteractionID != "interaction-1" {
		t.Errorf("history[1] = %+v, fields do not round-trip", history[1])
	}
}
