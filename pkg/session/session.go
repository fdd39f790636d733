/*
Package session drives a suggestion index from raw keystrokes.

A Session is the state behind one open search surface: the raw query, the
pending debounced evaluation and the last rows shown. Front ends feed it
input and subscribe to typed events:

	s := session.New(index, session.DefaultOptions())
	unsubscribe := s.Subscribe(func(e session.Event) {
		switch ev := e.(type) {
		case session.SuggestionsShownEvent:
			render(ev.Results)
		case session.NoResultsEvent:
			renderEmpty(ev.Query)
		}
	})
	defer unsubscribe()

	s.Open()
	s.Input("bl")
	s.Input("blood") // only this one reaches the index

Queries shorter than the minimum length never reach the index; the session
publishes SuggestionsHiddenEvent for them instead. Submit performs the terminal
search action and Select navigates to a row; both close the session.
*/
package session

import (
	"net/url"
	"strings"
	"sync"
	"time"
	"unicode/utf8"

	"github.com/bastiangx/sitesuggest/pkg/debounce"
	"github.com/bastiangx/sitesuggest/pkg/suggest"
	"github.com/charmbracelet/log"
)

const (
	DefaultMinQueryLength = 2
	DefaultResultsPage    = "search-results.html"
	DefaultQueryParam     = "q"
)

// Options configures a Session.
type Options struct {
	MinQueryLength int
	Debounce       time.Duration
	// Clock arms debounce timers; nil means the system clock.
	Clock debounce.AfterFunc
	// BaseURL, when set, is used to resolve relative targets and destinations.
	BaseURL     string
	ResultsPage string
	QueryParam  string
}

// DefaultOptions matches the site's behavior.
func DefaultOptions() Options {
	return Options{
		MinQueryLength: DefaultMinQueryLength,
		Debounce:       debounce.DefaultDelay,
		ResultsPage:    DefaultResultsPage,
		QueryParam:     DefaultQueryParam,
	}
}

// QueryState is the per-surface query data.
type QueryState struct {
	RawQuery string
	Handle   debounce.Handle
}

// Session is safe for concurrent use; debounced evaluations run on timer goroutines.
type Session struct {
	index     suggest.ISuggester
	bus       *Bus
	debouncer *debounce.Debouncer
	opts      Options

	mu          sync.Mutex
	open        bool
	state       QueryState
	results     []suggest.MatchResult
	evaluations int
}

// New creates a closed session over index.
func New(index suggest.ISuggester, opts Options) *Session {
	def := DefaultOptions()
	if opts.MinQueryLength <= 0 {
		opts.MinQueryLength = def.MinQueryLength
	}
	if opts.ResultsPage == "" {
		opts.ResultsPage = def.ResultsPage
	}
	if opts.QueryParam == "" {
		opts.QueryParam = def.QueryParam
	}
	return &Session{
		index:     index,
		bus:       NewBus(),
		debouncer: debounce.NewWithClock(opts.Debounce, opts.Clock),
		opts:      opts,
	}
}

// Subscribe registers h for every event this session publishes.
func (s *Session) Subscribe(h Handler) func() {
	return s.bus.Subscribe(h)
}

// Open starts a fresh query state. Opening an open session is a no-op.
func (s *Session) Open() {
	s.mu.Lock()
	if s.open {
		s.mu.Unlock()
		return
	}
	s.open = true
	s.state = QueryState{}
	s.results = nil
	s.mu.Unlock()

	s.bus.Publish(OpenedEvent{})
}

// IsOpen reports whether the surface is open.
func (s *Session) IsOpen() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.open
}

// Input records the current field contents. Short queries hide suggestions;
// anything else schedules an evaluation, replacing the pending one.
func (s *Session) Input(raw string) {
	s.Open()

	query := strings.TrimSpace(raw)

	s.mu.Lock()
	s.state.RawQuery = raw
	if utf8.RuneCountInString(query) < s.opts.MinQueryLength {
		s.debouncer.Cancel()
		s.state.Handle = 0
		s.results = nil
		s.mu.Unlock()

		s.bus.Publish(SuggestionsHiddenEvent{Query: query})
		return
	}
	s.state.Handle = s.debouncer.Schedule(func() { s.evaluate(query) })
	s.mu.Unlock()
}

// evaluate runs on the debounce timer.
func (s *Session) evaluate(query string) {
	s.mu.Lock()
	if !s.open || strings.TrimSpace(s.state.RawQuery) != query {
		s.mu.Unlock()
		return
	}
	s.state.Handle = 0
	s.mu.Unlock()

	start := time.Now()
	results := s.index.Search(query)
	log.Debugf("Took [ %v ] for query '%s'", time.Since(start), query)

	s.mu.Lock()
	s.results = results
	s.evaluations++
	s.mu.Unlock()

	if len(results) == 0 {
		s.bus.Publish(NoResultsEvent{Query: query})
		return
	}
	s.bus.Publish(SuggestionsShownEvent{Query: query, Results: results})
}

// State returns a copy of the current query state.
func (s *Session) State() QueryState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Results returns the rows from the last completed evaluation.
func (s *Session) Results() []suggest.MatchResult {
	s.mu.Lock()
	defer s.mu.Unlock()
	cp := make([]suggest.MatchResult, len(s.results))
	copy(cp, s.results)
	return cp
}

// Evaluations counts index lookups made by this session.
func (s *Session) Evaluations() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.evaluations
}

// Submit performs the search action for the current query and closes the
// session. It returns false when the query is blank.
func (s *Session) Submit() (string, bool) {
	s.mu.Lock()
	query := strings.TrimSpace(s.state.RawQuery)
	s.mu.Unlock()

	if query == "" {
		return "", false
	}

	dest := s.Destination(query)
	log.Debug("Search submitted", "query", query, "destination", dest)
	s.bus.Publish(SearchSubmittedEvent{Query: query, Destination: dest})
	s.Close()
	return dest, true
}

// Select navigates to row i of the last results and closes the session.
func (s *Session) Select(i int) (string, bool) {
	s.mu.Lock()
	if i < 0 || i >= len(s.results) {
		s.mu.Unlock()
		return "", false
	}
	result := s.results[i]
	s.mu.Unlock()

	target := s.Resolve(result.Entry.Target)
	s.bus.Publish(NavigatedEvent{Result: result, Target: target})
	s.Close()
	return target, true
}

// Close cancels any pending evaluation and clears the query state.
func (s *Session) Close() {
	s.mu.Lock()
	if !s.open {
		s.mu.Unlock()
		return
	}
	s.debouncer.Cancel()
	s.open = false
	s.state = QueryState{}
	s.results = nil
	s.mu.Unlock()

	s.bus.Publish(ClosedEvent{})
}

// Destination builds the results page locator for query.
func (s *Session) Destination(query string) string {
	return Destination(s.opts, query)
}

// Resolve makes target absolute against the configured base URL.
func (s *Session) Resolve(target string) string {
	return Resolve(s.opts.BaseURL, target)
}

// Destination builds "<results page>?<param>=<query>" resolved against opts.BaseURL.
func Destination(opts Options, query string) string {
	page, param := opts.ResultsPage, opts.QueryParam
	if page == "" {
		page = DefaultResultsPage
	}
	if param == "" {
		param = DefaultQueryParam
	}
	v := url.Values{}
	v.Set(param, query)
	return Resolve(opts.BaseURL, page+"?"+v.Encode())
}

// Resolve makes target absolute against baseURL. An empty or invalid base
// leaves target unchanged.
func Resolve(baseURL, target string) string {
	if baseURL == "" {
		return target
	}
	base, err := url.Parse(baseURL)
	if err != nil {
		log.Warnf("Invalid base URL %q: %v", baseURL, err)
		return target
	}
	ref, err := url.Parse(target)
	if err != nil {
		log.Warnf("Invalid target %q: %v", target, err)
		return target
	}
	return base.ResolveReference(ref).String()
}
