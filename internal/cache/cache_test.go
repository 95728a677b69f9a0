package cache

import (
	"testing"
	"time"

	"github.com/founderlink/founderlink/internal/core"
)

func TestKeyIncludesAllParameters(t *testing.T) {
	a := Key("alice", core.MatchAll, 10, 0.5)
	variants := []string{
		Key("bob", core.MatchAll, 10, 0.5),
		Key("alice", core.MatchGoalBased, 10, 0.5),
		Key("alice", core.MatchAll, 20, 0.5),
		Key("alice", core.MatchAll, 10, 0.7),
	}

	for _, v := range variants {
		if v == a {
			t.Errorf("key %q collides with %q", v, a)
		}
	}
}

func TestGetSetRoundTrip(t *testing.T) {
	c := New(8, time.Minute)
	key := Key("alice", core.MatchAll, 10, 0.5)

	if _, ok := c.Get(key); ok {
		t.Fatal("empty cache reported a hit")
	}

	want := []core.Suggestion{{UserID: "bob"}}
	c.Set(key, want)

	got, ok := c.Get(key)
	if !ok || len(got) != 1 || got[0].UserID != "bob" {
		t.Errorf("got %v ok=%v, want the cached suggestions", got, ok)
	}
}

func TestEntriesExpire(t *testing.T) {
	c := New(8, 10*time.Millisecond)
	key := Key("alice", core.MatchAll, 10, 0.5)
	c.Set(key, []core.Suggestion{{UserID: "bob"}})

	time.Sleep(30 * time.Millisecond)

	if _, ok := c.Get(key); ok {
		t.Error("entry did not expire")
	}
}
