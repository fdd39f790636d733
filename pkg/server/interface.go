/*
Package server implements msgpack IPC for site search suggestions.

The server reads a stream of msgpack maps from stdin and answers each one on
stdout. Messages are processed synchronously, in arrival order, and suggestion
responses carry timing info.

# IPC

Every message carries an "id" that is echoed back. A message without an
"action" is a suggestion request:

	{"id": "req_001", "q": "blood", "l": 8}

The server answers with matching catalog rows in catalog order:

	{"id": "req_001", "s": [{"n": "Complete Blood Count (CBC)", "c": "Blood Tests",
	  "k": "test", "u": "tests.html#cbc", "h": "Complete <strong>Blood</strong> Count (CBC)", "r": 1}],
	  "c": 1, "t": 42}

Queries shorter than the configured minimum are not looked up; the response has
an empty "s" and "x": true.

Other actions:

	{"id": "sub_001", "action": "submit", "q": "blood"}   -> {"id", "status", "dest"}
	{"id": "trm_001", "action": "terms", "q": "te", "l": 5} -> {"id", "w", "c"}
	{"id": "cat_001", "action": "catalog"}               -> {"id", "entries", "c"}
	{"id": "hlt_001", "action": "health"}                -> {"id", "status": "ok"}
	{"id": "sts_001", "action": "stats"}                 -> {"id", "status", "stats"}

A malformed message or unknown action yields {"id", "e", "c": 400}. Only a broken
stream ends the loop.

The server counts requests and checks the config file for changes every
ReloadInterval requests, rebuilding the index when it was edited.
*/
package server

// Request is the union of every inbound message shape.
type Request struct {
	ID     string `msgpack:"id"`
	Action string `msgpack:"action,omitempty"` // "", "suggest", "submit", "terms", "catalog", "health", "stats"
	Query  string `msgpack:"q,omitempty"`
	Limit  int    `msgpack:"l,omitempty"`
}

// Suggestion - one matching catalog row
type Suggestion struct {
	Name        string `msgpack:"n"`
	Category    string `msgpack:"c"`
	Kind        string `msgpack:"k"`
	Target      string `msgpack:"u"`
	Highlighted string `msgpack:"h"`
	Rank        uint16 `msgpack:"r"`
}

// SuggestResponse - suggestion response
type SuggestResponse struct {
	ID          string       `msgpack:"id"`
	Suggestions []Suggestion `msgpack:"s"`
	Count       int          `msgpack:"c"`
	TimeTaken   int64        `msgpack:"t"`
	Skipped     bool         `msgpack:"x,omitempty"`
}

// SubmitResponse carries the results page locator for a submitted query.
type SubmitResponse struct {
	ID          string `msgpack:"id"`
	Status      string `msgpack:"status"`
	Destination string `msgpack:"dest"`
}

// TermsResponse - vocabulary completions
type TermsResponse struct {
	ID    string   `msgpack:"id"`
	Terms []string `msgpack:"w"`
	Count int      `msgpack:"c"`
}

// CatalogEntry is a catalog row with its display tags.
type CatalogEntry struct {
	Kind     string `msgpack:"k"`
	Name     string `msgpack:"n"`
	Category string `msgpack:"c"`
	Target   string `msgpack:"u"`
	Icon     string `msgpack:"i"`
	Color    string `msgpack:"col"`
}

// CatalogResponse lists the whole catalog.
type CatalogResponse struct {
	ID      string         `msgpack:"id"`
	Entries []CatalogEntry `msgpack:"entries"`
	Count   int            `msgpack:"c"`
}

// StatusResponse answers health and stats.
type StatusResponse struct {
	ID     string         `msgpack:"id,omitempty"`
	Status string         `msgpack:"status"`
	Stats  map[string]int `msgpack:"stats,omitempty"`
}

// ErrorResponse holds basic error information for a failed request
type ErrorResponse struct {
	ID    string `msgpack:"id"`
	Error string `msgpack:"e"`
	Code  int    `msgpack:"c"`
}
