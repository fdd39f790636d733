package suggest

import (
	"fmt"
	"strings"
	"testing"

	"github.com/bastiangx/sitesuggest/pkg/catalog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func names(results []MatchResult) []string {
	out := make([]string, len(results))
	for i, r := range results {
		out[i] = r.Entry.Name
	}
	return out
}

// bruteForce is the reference matcher: lowercase containment over "name category".
func bruteForce(c *catalog.Catalog, query string, limit int) []string {
	var out []string
	for _, e := range c.Entries() {
		if strings.Contains(strings.ToLower(e.Name+" "+e.Category), strings.ToLower(query)) {
			out = append(out, e.Name)
		}
		if len(out) == limit {
			break
		}
	}
	return out
}

func TestSearchScenarios(t *testing.T) {
	ix := NewIndex(catalog.Default())

	t.Run("blood", func(t *testing.T) {
		results := ix.Search("blood")
		got := names(results)
		assert.Contains(t, got, "Complete Blood Count (CBC)")
		assert.NotContains(t, got, "Lipid Panel")
		assert.Equal(t, "Complete <strong>Blood</strong> Count (CBC)", results[0].Highlighted)
		for _, r := range results {
			assert.Contains(t, strings.ToLower(r.Entry.SearchText()), "blood", "substring-only match for %s", r.Entry.Name)
		}
	})

	t.Run("no results", func(t *testing.T) {
		results := ix.Search("xyz123")
		assert.Empty(t, results)
		assert.NotNil(t, results)
	})

	t.Run("covid", func(t *testing.T) {
		results := ix.Search("covid")
		require.Len(t, results, 1)
		assert.Equal(t, "COVID-19 PCR Test", results[0].Entry.Name)
		assert.Equal(t, "<strong>COVID</strong>-19 PCR Test", results[0].Highlighted)
		assert.Equal(t, []Span{{Text: "COVID", Match: true}, {Text: "-19 PCR Test"}}, results[0].Spans)
		assert.Equal(t, 1, results[0].Rank)
	})

	t.Run("category only match has no emphasis", func(t *testing.T) {
		results := ix.Search("cholesterol")
		require.Len(t, results, 1)
		assert.Equal(t, "Lipid Panel", results[0].Highlighted)
	})

	t.Run("match across name and category", func(t *testing.T) {
		results := ix.Search("panel blood")
		require.Len(t, results, 1)
		assert.Equal(t, "Basic Metabolic Panel", results[0].Entry.Name)
	})
}

func TestSearchBoundAndOrder(t *testing.T) {
	c := catalog.Default()
	ix := NewIndex(c)

	results := ix.Search("in")
	require.Len(t, results, DefaultMaxResults)
	assert.Equal(t, bruteForce(c, "in", DefaultMaxResults), names(results))
	for i, r := range results {
		assert.Equal(t, i+1, r.Rank)
	}
}

func TestSearchMatchesReference(t *testing.T) {
	c := catalog.Default()
	ix := NewIndex(c, WithCacheSize(0))

	queries := []string{"te", "TEST", "blood", "Information", "vit", "(cbc)", "a1c", "pay", "on", "se", "  "}
	for _, e := range c.Entries() {
		queries = append(queries, strings.Fields(e.Name)...)
	}
	for _, q := range queries {
		t.Run(fmt.Sprintf("query_%q", q), func(t *testing.T) {
			got := ix.Search(q)
			assert.LessOrEqual(t, len(got), DefaultMaxResults)
			want := bruteForce(c, q, DefaultMaxResults)
			if want == nil {
				want = []string{}
			}
			assert.Equal(t, want, names(got))
		})
	}
}

func TestSearchEveryEntryReachable(t *testing.T) {
	c := catalog.Default()
	ix := NewIndex(c)

	for _, e := range c.Entries() {
		got := names(ix.Search(e.Name))
		assert.Contains(t, got, e.Name)
	}
}

func TestSearchIsTotal(t *testing.T) {
	ix := NewIndex(catalog.Default())

	inputs := []string{"", "a", "(", "[a-z]+", "\xff\xfe", "🙂", strings.Repeat("x", 1000)}
	for _, in := range inputs {
		assert.NotPanics(t, func() {
			results := ix.Search(in)
			assert.LessOrEqual(t, len(results), DefaultMaxResults)
		}, "input %q", in)
	}

	assert.Len(t, ix.Search(""), DefaultMaxResults, "empty query is contained in every entry")
	assert.Empty(t, ix.Search("[a-z]+"), "query is matched literally")
}

func TestSearchOptions(t *testing.T) {
	marker := Marker{Open: "*", Close: "*"}
	ix := NewIndex(catalog.Default(), WithMaxResults(3), WithMarker(marker))

	results := ix.Search("in")
	require.Len(t, results, 3)
	assert.Equal(t, "Hemoglob*in* A1C", results[0].Highlighted)
	assert.Equal(t, 3, ix.MaxResults())
	assert.Equal(t, marker, ix.Marker())

	ix = NewIndex(catalog.Default(), WithMaxResults(0))
	assert.Equal(t, DefaultMaxResults, ix.MaxResults())
}

func TestSearchCacheIsTransparent(t *testing.T) {
	ix := NewIndex(catalog.Default())

	first := ix.Search("blood")
	first[0].Highlighted = "mutated"

	second := ix.Search("blood")
	assert.Equal(t, "Complete <strong>Blood</strong> Count (CBC)", second[0].Highlighted)

	first = ix.Search("blood")
	first[0].Spans[0].Text = "mutated"
	first[0].Spans = append(first[0].Spans, Span{Text: "extra"})

	third := ix.Search("blood")
	assert.Equal(t, []Span{
		{Text: "Complete "}, {Text: "Blood", Match: true}, {Text: " Count (CBC)"},
	}, third[0].Spans)

	stats := ix.Stats()
	assert.Equal(t, 3, stats["cacheHits"])
	assert.Equal(t, 17, stats["totalEntries"])
	assert.Equal(t, DefaultMaxResults, stats["maxResults"])
}

func TestSearchHighlightsFoldedMatches(t *testing.T) {
	ix := NewIndex(catalog.New([]catalog.Entry{
		{Kind: catalog.KindLocation, Name: "Straße Clinic", Category: "Locations", Target: "locations.html#strasse"},
		{Kind: catalog.KindLocation, Name: "Ærø Office", Category: "Locations", Target: "locations.html#aero"},
	}))

	testCases := []struct {
		query       string
		expected    string
		description string
	}{
		{"strasse", "<strong>Straße</strong> Clinic", "sharp s folds to ss"},
		{"STRASSE", "<strong>Straße</strong> Clinic", "upper case query"},
		{"ærø", "<strong>Ærø</strong> Office", "non-ascii letters"},
	}

	for _, tc := range testCases {
		t.Run(tc.description, func(t *testing.T) {
			results := ix.Search(tc.query)
			require.Len(t, results, 1)
			assert.Equal(t, tc.expected, results[0].Highlighted)
		})
	}
}

func TestIndexImplementsSuggester(t *testing.T) {
	var s ISuggester = NewIndex(catalog.Default())
	assert.NotEmpty(t, s.Terms("blo", 3))
}
