package suggest

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResultCacheEvictsLeastRecentlyUsed(t *testing.T) {
	rc := NewResultCache(2)
	rc.Put("a", []MatchResult{{Rank: 1}})
	rc.Put("b", []MatchResult{{Rank: 2}})

	_, ok := rc.Get("a")
	require.True(t, ok)

	rc.Put("c", nil)
	assert.Equal(t, 2, rc.Len())

	_, ok = rc.Get("b")
	assert.False(t, ok, "b was least recently used")
	_, ok = rc.Get("a")
	assert.True(t, ok)

	stats := rc.Stats()
	assert.Equal(t, 2, stats["cacheHits"])
	assert.Equal(t, 1, stats["cacheMisses"])
}

func TestResultCacheOverwrite(t *testing.T) {
	rc := NewResultCache(1)
	rc.Put("a", []MatchResult{{Rank: 1}})
	rc.Put("a", []MatchResult{{Rank: 7}})

	got, ok := rc.Get("a")
	require.True(t, ok)
	assert.Equal(t, 7, got[0].Rank)
	assert.Equal(t, 1, rc.Len())
}

func TestResultCacheCopiesSpans(t *testing.T) {
	rc := NewResultCache(1)
	put := []MatchResult{{Rank: 1, Spans: []Span{{Text: "Blood", Match: true}}}}
	rc.Put("blood", put)
	put[0].Spans[0].Text = "changed after put"

	got, ok := rc.Get("blood")
	require.True(t, ok)
	got[0].Spans[0].Text = "changed after get"

	again, ok := rc.Get("blood")
	require.True(t, ok)
	assert.Equal(t, []Span{{Text: "Blood", Match: true}}, again[0].Spans)
}
