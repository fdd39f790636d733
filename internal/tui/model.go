// Package tui is the interactive terminal search surface.
//
// The surface starts closed. ctrl+k opens it, keystrokes feed a
// session.Session, and debounced results come back as EventMsg values that
// Run forwards from the session's event bus into the bubbletea program.
package tui

import (
	"time"

	"github.com/atotto/clipboard"
	"github.com/bastiangx/sitesuggest/pkg/session"
	"github.com/bastiangx/sitesuggest/pkg/suggest"
	"github.com/charmbracelet/bubbles/textinput"
)

const (
	defaultToastDuration = 3 * time.Second
	defaultTermLimit     = 5
)

// EventMsg wraps a session event for the UI
type EventMsg struct {
	Event session.Event
}

// clearToastMsg dismisses the toast it was armed for.
type clearToastMsg struct {
	seq int
}

type toastLevel int

const (
	toastInfo toastLevel = iota
	toastWarn
)

// Options configures the surface.
type Options struct {
	MinQueryLength int
	TermLimit      int
	ToastDuration  time.Duration
	// Clipboard writes text to the system clipboard; nil uses atotto/clipboard.
	Clipboard func(string) error
}

// Model represents the UI state
type Model struct {
	session *session.Session
	index   suggest.ISuggester
	opts    Options

	input     textinput.Model
	open      bool
	results   []suggest.MatchResult
	noResults bool
	lastQuery string
	selected  int // -1 means the input row

	toast      string
	toastLevel toastLevel
	toastSeq   int

	width    int
	target   string
	quitting bool
}

// NewModel creates a closed search surface over s.
func NewModel(s *session.Session, index suggest.ISuggester, opts Options) Model {
	if opts.MinQueryLength <= 0 {
		opts.MinQueryLength = session.DefaultMinQueryLength
	}
	if opts.TermLimit <= 0 {
		opts.TermLimit = defaultTermLimit
	}
	if opts.ToastDuration <= 0 {
		opts.ToastDuration = defaultToastDuration
	}
	if opts.Clipboard == nil {
		opts.Clipboard = clipboard.WriteAll
	}

	ti := textinput.New()
	ti.Placeholder = "Search tests, services, pages..."
	ti.Prompt = "› "
	ti.CharLimit = 120

	return Model{
		session:  s,
		index:    index,
		opts:     opts,
		input:    ti,
		selected: -1,
	}
}

// Target is the locator chosen before the program exited, if any.
func (m Model) Target() string {
	return m.target
}

// IsOpen reports whether the search surface is showing.
func (m Model) IsOpen() bool {
	return m.open
}
