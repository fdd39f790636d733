package suggest

import (
	"math"
	"sync"

	"github.com/charmbracelet/log"
)

// ResultCache memoizes Search results per raw query with LRU eviction.
type ResultCache struct {
	results     map[string][]MatchResult
	accessTime  map[string]int64
	accessCount int64
	hits        int64
	misses      int64
	maxEntries  int
	mu          sync.Mutex
}

func NewResultCache(maxEntries int) *ResultCache {
	return &ResultCache{
		results:    make(map[string][]MatchResult, maxEntries),
		accessTime: make(map[string]int64, maxEntries),
		maxEntries: maxEntries,
	}
}

// Get returns a deep copy of the cached results for query.
func (rc *ResultCache) Get(query string) ([]MatchResult, bool) {
	rc.mu.Lock()
	defer rc.mu.Unlock()

	results, ok := rc.results[query]
	if !ok {
		rc.misses++
		return nil, false
	}
	rc.hits++
	rc.markAccessed(query)

	return cloneResults(results), true
}

func (rc *ResultCache) Put(query string, results []MatchResult) {
	rc.mu.Lock()
	defer rc.mu.Unlock()

	if _, exists := rc.results[query]; !exists && len(rc.results) >= rc.maxEntries {
		rc.evictLRU()
	}

	rc.results[query] = cloneResults(results)
	rc.markAccessed(query)
}

func (rc *ResultCache) Len() int {
	rc.mu.Lock()
	defer rc.mu.Unlock()
	return len(rc.results)
}

func (rc *ResultCache) Stats() map[string]int {
	rc.mu.Lock()
	defer rc.mu.Unlock()

	return map[string]int{
		"cachedQueries": len(rc.results),
		"maxCached":     rc.maxEntries,
		"cacheHits":     int(rc.hits),
		"cacheMisses":   int(rc.misses),
	}
}

func (rc *ResultCache) markAccessed(query string) {
	rc.accessCount++
	rc.accessTime[query] = rc.accessCount
}

func (rc *ResultCache) evictLRU() {
	var oldestQuery string
	var oldestTime int64 = math.MaxInt64

	for query, accessTime := range rc.accessTime {
		if accessTime < oldestTime {
			oldestTime = accessTime
			oldestQuery = query
		}
	}

	if oldestTime != math.MaxInt64 {
		delete(rc.results, oldestQuery)
		delete(rc.accessTime, oldestQuery)
		log.Debugf("Evicted query '%s' from result cache", oldestQuery)
	}
}

// cloneResults copies results along with their spans, so neither side of
// the cache can reach into the other's slices.
func cloneResults(results []MatchResult) []MatchResult {
	cp := make([]MatchResult, len(results))
	copy(cp, results)
	for i := range cp {
		if cp[i].Spans != nil {
			cp[i].Spans = append([]Span(nil), cp[i].Spans...)
		}
	}
	return cp
}
