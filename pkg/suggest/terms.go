package suggest

import (
	"sort"
	"strings"
	"unicode"

	"github.com/bastiangx/sitesuggest/pkg/catalog"
	"github.com/charmbracelet/log"
	"github.com/tchap/go-patricia/v2/patricia"
)

// TermIndex is a prefix trie over the words used in catalog names and categories.
// The item stored for each word is its occurrence count.
type TermIndex struct {
	trie  *patricia.Trie
	count int
}

type term struct {
	word  string
	count int
}

// NewTermIndex collects the vocabulary of c.
func NewTermIndex(c *catalog.Catalog) *TermIndex {
	counts := make(map[string]int)
	c.Each(func(_ int, e catalog.Entry) bool {
		for _, w := range words(e.SearchText()) {
			counts[w]++
		}
		return true
	})

	ti := &TermIndex{trie: patricia.NewTrie()}
	for w, n := range counts {
		ti.trie.Insert(patricia.Prefix(w), n)
		ti.count++
	}
	log.Debugf("Term index built with %d words", ti.count)
	return ti
}

// words splits s into lower-cased runs of letters and digits.
func words(s string) []string {
	return strings.FieldsFunc(fold(s), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
}

// Complete returns up to limit words that extend prefix, most frequent first,
// then alphabetical. The prefix itself is never returned.
func (ti *TermIndex) Complete(prefix string, limit int) []string {
	lowerPrefix := fold(strings.TrimSpace(prefix))
	if lowerPrefix == "" || limit <= 0 {
		return nil
	}

	var found []term
	err := ti.trie.VisitSubtree(patricia.Prefix(lowerPrefix), func(p patricia.Prefix, item patricia.Item) error {
		word := string(p)
		if word == lowerPrefix {
			return nil
		}
		n, ok := item.(int)
		if !ok {
			log.Errorf("Unknown item type: %T for word %s", item, p)
			return nil
		}
		found = append(found, term{word: word, count: n})
		return nil
	})
	if err != nil {
		log.Errorf("Error visiting term subtree: %v", err)
		return nil
	}

	sort.Slice(found, func(i, j int) bool {
		if found[i].count != found[j].count {
			return found[i].count > found[j].count
		}
		return found[i].word < found[j].word
	})

	if len(found) > limit {
		found = found[:limit]
	}
	out := make([]string, len(found))
	for i, t := range found {
		out[i] = t.word
	}
	return out
}

// Len returns the number of distinct words.
func (ti *TermIndex) Len() int {
	return ti.count
}
