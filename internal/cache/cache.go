// Package cache provides the TTL suggestion cache.
// The cache is an opaque get/set service with no transactional
// guarantee: a miss only costs latency, never correctness.
package cache

import (
	"fmt"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"

	"github.com/founderlink/founderlink/internal/core"
)

// SuggestionCache caches ranked suggestion lists keyed by requester and
// match parameters. Entries expire after the configured TTL.
type SuggestionCache struct {
	lru *expirable.LRU[string, []core.Suggestion]
}

// New creates a suggestion cache holding up to size entries for ttl.
func New(size int, ttl time.Duration) *SuggestionCache {
	if size <= 0 {
		size = 1024
	}
	return &SuggestionCache{
		lru: expirable.NewLRU[string, []core.Suggestion](size, nil, ttl),
	}
}

// Key builds the cache key for one suggestion request.
func Key(userID core.UserID, matchType core.MatchType, limit int, minScore float64) string {
	return fmt.Sprintf("suggest:%s:%s:%d:%.3f", userID, matchType, limit, minScore)
}

// Get returns the cached suggestions for key, if present and fresh.
func (c *SuggestionCache) Get(key string) ([]core.Suggestion, bool) {
	return c.lru.Get(key)
}

// Set stores suggestions under key.
func (c *SuggestionCache) Set(key string, suggestions []core.Suggestion) {
	c.lru.Add(key, suggestions)
}

// Purge drops every cached entry.
func (c *SuggestionCache) Purge() {
	c.lru.Purge()
}
