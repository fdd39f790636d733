package suggest

import (
	"strings"

	"github.com/bastiangx/sitesuggest/pkg/catalog"
	"github.com/charmbracelet/log"
	"golang.org/x/text/cases"
)

const (
	DefaultMaxResults = 8
	defaultCacheSize  = 256
)

// MatchResult is one suggestion row.
type MatchResult struct {
	Entry catalog.Entry
	// Rank is the 1-based position in the result list.
	Rank        int
	Spans       []Span
	Highlighted string
}

// Index answers substring queries over a catalog.
// It is safe for concurrent use.
type Index struct {
	catalog    *catalog.Catalog
	folded     []string
	maxResults int
	marker     Marker
	terms      *TermIndex
	cache      *ResultCache
}

// Option configures an Index.
type Option func(*Index)

// WithMaxResults bounds the number of results returned by Search.
func WithMaxResults(n int) Option {
	return func(ix *Index) {
		if n > 0 {
			ix.maxResults = n
		}
	}
}

// WithMarker sets the emphasis marker used for MatchResult.Highlighted.
func WithMarker(m Marker) Option {
	return func(ix *Index) { ix.marker = m }
}

// WithCacheSize sets how many distinct queries are memoized; 0 disables the cache.
func WithCacheSize(n int) Option {
	return func(ix *Index) {
		if n <= 0 {
			ix.cache = nil
			return
		}
		ix.cache = NewResultCache(n)
	}
}

// NewIndex builds an index over c.
func NewIndex(c *catalog.Catalog, opts ...Option) *Index {
	ix := &Index{
		catalog:    c,
		maxResults: DefaultMaxResults,
		marker:     DefaultMarker,
		cache:      NewResultCache(defaultCacheSize),
	}
	for _, opt := range opts {
		opt(ix)
	}

	ix.folded = make([]string, 0, c.Len())
	c.Each(func(_ int, e catalog.Entry) bool {
		ix.folded = append(ix.folded, fold(e.SearchText()))
		return true
	})
	ix.terms = NewTermIndex(c)

	log.Debugf("Index built: entries=[%d], maxResults=[%d]", c.Len(), ix.maxResults)
	return ix
}

// fold applies Unicode case folding. A Caser keeps state, so one is made per call.
func fold(s string) string {
	return cases.Fold().String(s)
}

// Search returns at most maxResults entries whose "name category" text contains
// query case-insensitively. Results keep catalog order.
func (ix *Index) Search(query string) []MatchResult {
	needle := fold(query)

	if ix.cache != nil {
		if cached, ok := ix.cache.Get(query); ok {
			return cached
		}
	}

	results := make([]MatchResult, 0, ix.maxResults)
	for i, hay := range ix.folded {
		if !strings.Contains(hay, needle) {
			continue
		}
		e := ix.catalog.At(i)
		spans := Split(e.Name, query)
		results = append(results, MatchResult{
			Entry:       e,
			Rank:        len(results) + 1,
			Spans:       spans,
			Highlighted: ix.marker.Render(spans),
		})
		if len(results) == ix.maxResults {
			break
		}
	}

	if ix.cache != nil {
		ix.cache.Put(query, results)
	}
	return results
}

// Terms returns vocabulary completions for prefix.
func (ix *Index) Terms(prefix string, limit int) []string {
	return ix.terms.Complete(prefix, limit)
}

// Catalog returns the indexed catalog.
func (ix *Index) Catalog() *catalog.Catalog {
	return ix.catalog
}

// Marker returns the emphasis marker used for highlighted names.
func (ix *Index) Marker() Marker {
	return ix.marker
}

// MaxResults returns the result bound.
func (ix *Index) MaxResults() int {
	return ix.maxResults
}

func (ix *Index) Stats() map[string]int {
	stats := ix.catalog.Stats()
	stats["maxResults"] = ix.maxResults
	stats["terms"] = ix.terms.Len()

	if ix.cache != nil {
		for k, v := range ix.cache.Stats() {
			stats[k] = v
		}
	}
	return stats
}
