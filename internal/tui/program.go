package tui

import (
	"fmt"

	"github.com/bastiangx/sitesuggest/pkg/session"
	"github.com/bastiangx/sitesuggest/pkg/suggest"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
)

// eventBuffer bounds how many session events may wait for the UI loop.
const eventBuffer = 64

// Run starts the surface and blocks until it exits. It returns the chosen
// locator, or "" when the user quit without choosing.
func Run(s *session.Session, index suggest.ISuggester, opts Options) (string, error) {
	p := tea.NewProgram(NewModel(s, index, opts), tea.WithAltScreen())

	// Session events can be published from inside Update, where a direct
	// p.Send would block the loop. A pump goroutine keeps their order.
	events := make(chan session.Event, eventBuffer)
	unsubscribe := s.Subscribe(func(e session.Event) {
		events <- e
	})
	done := make(chan struct{})
	go func() {
		defer close(done)
		for e := range events {
			p.Send(EventMsg{Event: e})
		}
	}()

	final, err := p.Run()

	unsubscribe()
	s.Close()
	close(events)
	<-done

	if err != nil {
		return "", fmt.Errorf("running search surface: %w", err)
	}
	m, ok := final.(Model)
	if !ok {
		log.Warnf("Unexpected final model %T", final)
		return "", nil
	}
	return m.Target(), nil
}
