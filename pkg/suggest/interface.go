// Package suggest is the core, matching queries against the catalog and marking the matched text for display.
package suggest

// ISuggester defines the interface for suggestion engines
type ISuggester interface {
	// Search returns catalog entries whose name or category contains query, in catalog order
	Search(query string) []MatchResult

	// Terms returns vocabulary words starting with prefix, most frequent first
	Terms(prefix string, limit int) []string

	// Stats returns statistics about the loaded catalog and caches
	Stats() map[string]int
}
