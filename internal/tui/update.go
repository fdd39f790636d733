package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/bastiangx/sitesuggest/internal/utils"
	"github.com/bastiangx/sitesuggest/pkg/session"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
)

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.input.Width = max(msg.Width-8, 10)
		return m, nil

	case EventMsg:
		m.handleEvent(msg.Event)
		return m, nil

	case clearToastMsg:
		if msg.seq == m.toastSeq {
			m.toast = ""
		}
		return m, nil

	case tea.KeyMsg:
		if !m.open {
			return m.handleClosedKey(msg)
		}
		return m.handleOpenKey(msg)
	}

	if m.open {
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m Model) handleClosedKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+k", "/":
		return m, m.openSurface()
	case "ctrl+c", "q":
		m.quitting = true
		return m, tea.Quit
	}
	return m, nil
}

func (m Model) handleOpenKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c":
		m.session.Close()
		m.quitting = true
		return m, tea.Quit

	case "esc":
		m.closeSurface()
		return m, nil

	case "ctrl+k":
		// reserved for opening; swallow so the input does not kill the line
		return m, nil

	case "up", "ctrl+p":
		if m.selected >= 0 {
			m.selected--
		}
		return m, nil

	case "down", "ctrl+n":
		if m.selected < len(m.results)-1 {
			m.selected++
		}
		return m, nil

	case "enter":
		return m.activate()

	case "tab":
		m.completeTerm()
		return m, nil

	case "ctrl+y":
		return m, m.copySelected()
	}

	before := m.input.Value()
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	if m.input.Value() != before {
		m.onInput()
	}
	return m, cmd
}

func (m *Model) openSurface() tea.Cmd {
	m.open = true
	m.input.Reset()
	m.clearResults()
	m.session.Open()
	return m.input.Focus()
}

func (m *Model) closeSurface() {
	m.session.Close()
	m.open = false
	m.input.Reset()
	m.input.Blur()
	m.clearResults()
}

func (m *Model) clearResults() {
	m.results = nil
	m.noResults = false
	m.lastQuery = ""
	m.selected = -1
}

// onInput hands the field contents to the session.
func (m *Model) onInput() {
	m.selected = -1
	m.session.Input(m.input.Value())
}

// activate navigates to the selected row or, with none selected, submits the query.
func (m Model) activate() (tea.Model, tea.Cmd) {
	var (
		target string
		ok     bool
	)
	if m.selected >= 0 {
		target, ok = m.session.Select(m.selected)
	} else {
		target, ok = m.session.Submit()
	}
	if !ok {
		return m, nil
	}
	m.target = target
	m.open = false
	m.quitting = true
	return m, tea.Quit
}

// completeTerm replaces the word under the cursor with its top vocabulary completion.
func (m *Model) completeTerm() {
	value := m.input.Value()
	if value == "" || strings.HasSuffix(value, " ") {
		return
	}
	cut := strings.LastIndex(value, " ") + 1
	last := value[cut:]

	terms := m.index.Terms(last, m.opts.TermLimit)
	if len(terms) == 0 {
		return
	}
	m.input.SetValue(value[:cut] + terms[0])
	m.input.CursorEnd()
	m.onInput()
}

// copySelected puts the selected row's locator on the clipboard.
func (m *Model) copySelected() tea.Cmd {
	if m.selected < 0 || m.selected >= len(m.results) {
		return m.showToast("Select a result to copy its link", toastWarn)
	}
	target := m.session.Resolve(m.results[m.selected].Entry.Target)
	if err := m.opts.Clipboard(target); err != nil {
		log.Warnf("Clipboard write failed: %v", err)
		return m.showToast("Clipboard unavailable", toastWarn)
	}
	return m.showToast(fmt.Sprintf("Copied %s", target), toastInfo)
}

func (m *Model) showToast(text string, level toastLevel) tea.Cmd {
	m.toast = text
	m.toastLevel = level
	m.toastSeq++
	seq := m.toastSeq
	return tea.Tick(m.opts.ToastDuration, func(time.Time) tea.Msg {
		return clearToastMsg{seq: seq}
	})
}

func (m *Model) handleEvent(e session.Event) {
	if !m.open {
		return
	}
	current := utils.NormalizeQuery(m.input.Value())

	switch ev := e.(type) {
	case session.SuggestionsShownEvent:
		if ev.Query != current {
			return
		}
		m.results = ev.Results
		m.noResults = false
		m.lastQuery = ev.Query
		m.selected = -1
	case session.NoResultsEvent:
		if ev.Query != current {
			return
		}
		m.results = nil
		m.noResults = true
		m.lastQuery = ev.Query
		m.selected = -1
	case session.SuggestionsHiddenEvent:
		m.clearResults()
	}
}
