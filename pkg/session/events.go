package session

import (
	"runtime/debug"
	"sync"

	"github.com/bastiangx/sitesuggest/internal/logger"
	"github.com/bastiangx/sitesuggest/pkg/suggest"
	"github.com/charmbracelet/log"
)

// EventType names a session event.
type EventType string

const (
	EventOpened            EventType = "opened"
	EventSuggestionsShown  EventType = "suggestions_shown"
	EventNoResults         EventType = "no_results"
	EventSuggestionsHidden EventType = "suggestions_hidden"
	EventSearchSubmitted   EventType = "search_submitted"
	EventNavigated         EventType = "navigated"
	EventClosed            EventType = "closed"
)

// Event is implemented by every payload a session publishes.
type Event interface {
	Type() EventType
}

type OpenedEvent struct{}

// SuggestionsShownEvent carries the rows for a completed evaluation.
type SuggestionsShownEvent struct {
	Query   string
	Results []suggest.MatchResult
}

// NoResultsEvent is published when an evaluation matched nothing.
type NoResultsEvent struct {
	Query string
}

// SuggestionsHiddenEvent is published when the query drops below the minimum length.
type SuggestionsHiddenEvent struct {
	Query string
}

// SearchSubmittedEvent is the terminal "perform search" action.
type SearchSubmittedEvent struct {
	Query       string
	Destination string
}

// NavigatedEvent is published when a suggestion row is chosen.
type NavigatedEvent struct {
	Result suggest.MatchResult
	Target string
}

type ClosedEvent struct{}

func (OpenedEvent) Type() EventType            { return EventOpened }
func (SuggestionsShownEvent) Type() EventType  { return EventSuggestionsShown }
func (NoResultsEvent) Type() EventType         { return EventNoResults }
func (SuggestionsHiddenEvent) Type() EventType { return EventSuggestionsHidden }
func (SearchSubmittedEvent) Type() EventType   { return EventSearchSubmitted }
func (NavigatedEvent) Type() EventType         { return EventNavigated }
func (ClosedEvent) Type() EventType            { return EventClosed }

// Handler receives session events.
type Handler func(Event)

// Bus delivers events to subscribers synchronously, in publish order.
type Bus struct {
	mu       sync.RWMutex
	handlers map[uint64]Handler
	order    []uint64
	nextID   uint64
}

func NewBus() *Bus {
	return &Bus{handlers: make(map[uint64]Handler)}
}

// logger is looked up per call so output follows the global logger, which the
// terminal UI moves to a file after sessions may already exist.
func (b *Bus) logger() *log.Logger {
	return logger.New("session")
}

// Subscribe registers h and returns a function that removes it.
func (b *Bus) Subscribe(h Handler) func() {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.nextID++
	id := b.nextID
	b.handlers[id] = h
	b.order = append(b.order, id)

	return func() {
		b.mu.Lock()
		defer b.mu.Unlock()
		delete(b.handlers, id)
		for i, v := range b.order {
			if v == id {
				b.order = append(b.order[:i], b.order[i+1:]...)
				break
			}
		}
	}
}

// Publish calls every subscriber with e. A panicking handler is logged and skipped.
func (b *Bus) Publish(e Event) {
	b.mu.RLock()
	handlers := make([]Handler, 0, len(b.order))
	for _, id := range b.order {
		handlers = append(handlers, b.handlers[id])
	}
	b.mu.RUnlock()

	b.logger().Debug("Publishing session event", "type", e.Type())
	for _, h := range handlers {
		b.call(h, e)
	}
}

func (b *Bus) call(h Handler, e Event) {
	defer func() {
		if r := recover(); r != nil {
			b.logger().Errorf("Event handler panic for %s: %v\nStack: %s", e.Type(), r, debug.Stack())
		}
	}()
	h(e)
}
