package testutil

import (
	"crypto/rand"
	"encoding/hex"
	"time"

	"github.com/founderlink/founderlink/internal/core"
)

// RandomID generates a random ID for testing.
func RandomID() string {
	bytes := make([]byte, 8)
	rand.Read(bytes)
	return hex.EncodeToString(bytes)
}

// ProfileFixture returns a complete, verified founder profile created
// well past the new-account threshold.
func ProfileFixture(id core.UserID) *core.Profile {
	posted := time.Now().Add(-24 * time.Hour)
	return &core.Profile{
		UserID:     id,
		Name:       "Test Founder",
		Headline:   "Building developer tools",
		Location:   "Berlin",
		Bio:        "Second-time founder working on infrastructure.",
		Industry:   "devtools",
		Verified:   true,
		LastPostAt: &posted,
		CreatedAt:  time.Now().Add(-200 * 24 * time.Hour),
	}
}

// SignalFixture returns an active signal owned by the given user.
func SignalFixture(owner core.UserID, kind core.SignalKind, text string) core.Signal {
	return core.Signal{
		ID:        core.SignalID("sig-" + RandomID()),
		OwnerID:   owner,
		Kind:      kind,
		Text:      text,
		Active:    true,
		CreatedAt: time.Now(),
	}
}

// IntroFixture returns an introduction in the requested state with the
// given score snapshot.
func IntroFixture(requester, target core.UserID, overall float64) *core.Introduction {
	return &core.Introduction{
		ID:          core.IntroID("intro-" + RandomID()),
		RequesterID: requester,
		TargetID:    target,
		Status:      core.IntroRequested,
		MatchType:   core.MatchAll,
		Score:       core.MatchScore{Overall: overall},
		CreatedAt:   time.Now(),
	}
}
