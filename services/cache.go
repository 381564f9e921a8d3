package services

import (
	"time"

	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/cinerag/cinerag/models"
)

type cachedResult struct {
	result    models.QueryResult
	expiredAt time.Time
}

// ResultCache is an in-process LRU in front of the persisted query
// history. It only ever holds results that also live in the history
// collection, so a hit returns the same bytes a store lookup would.
type ResultCache struct {
	entries *lru.Cache[string, cachedResult]
	ttl     time.Duration
}

func NewResultCache(size int, ttl time.Duration) *ResultCache {
	entries, _ := lru.New[string, cachedResult](size)
	return &ResultCache{
		entries: entries,
		ttl:     ttl,
	}
}

func (c *ResultCache) Get(query string) (*models.QueryResult, bool) {
	item, ok := c.entries.Get(query)
	if !ok {
		return nil, false
	}
	if time.Now().After(item.expiredAt) {
		c.entries.Remove(query)
		return nil, false
	}
	result := item.result
	return &result, true
}

func (c *ResultCache) Set(query string, result models.QueryResult) {
	c.entries.Add(query, cachedResult{
		result:    result,
		expiredAt: time.Now().Add(c.ttl),
	})
}
