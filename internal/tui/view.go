package tui

import (
	"fmt"
	"strings"

	"github.com/bastiangx/sitesuggest/internal/utils"
	"github.com/bastiangx/sitesuggest/pkg/suggest"
	"github.com/charmbracelet/lipgloss"
)

func (m Model) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render("SiteSuggest"))
	b.WriteString("\n\n")

	if !m.open {
		b.WriteString(hintStyle.Render("Press ctrl+k to search • q to quit"))
		b.WriteString("\n")
		m.renderToast(&b)
		return b.String()
	}

	b.WriteString(m.input.View())
	b.WriteString("\n\n")

	switch {
	case len(m.results) > 0:
		for i, r := range m.results {
			b.WriteString(m.renderRow(i, r))
			b.WriteString("\n")
		}
	case m.noResults:
		b.WriteString(emptyStyle.Render(fmt.Sprintf("No results found for \"%s\"", m.lastQuery)))
		b.WriteString("\n")
	case !utils.IsSearchable(utils.NormalizeQuery(m.input.Value()), m.opts.MinQueryLength):
		b.WriteString(hintStyle.Render(fmt.Sprintf("Type at least %d characters", m.opts.MinQueryLength)))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(hintStyle.Render("↑/↓ select • enter open • tab complete • ctrl+y copy link • esc close"))
	b.WriteString("\n")
	m.renderToast(&b)
	return b.String()
}

func (m Model) renderRow(i int, r suggest.MatchResult) string {
	cursor := "  "
	name := renderSpans(r.Spans, nameStyle, matchStyle)
	if i == m.selected {
		cursor = selectedCursorStyle.Render("› ")
		name = renderSpans(r.Spans, selectedNameStyle, selectedMatchStyle)
	}
	return lipgloss.JoinHorizontal(lipgloss.Top,
		cursor,
		kindBadge(r.Entry.Kind),
		" ",
		name,
		" ",
		categoryStyle.Render(r.Entry.Category),
	)
}

func (m Model) renderToast(b *strings.Builder) {
	if m.toast == "" {
		return
	}
	style := toastInfoStyle
	if m.toastLevel == toastWarn {
		style = toastWarnStyle
	}
	b.WriteString("\n")
	b.WriteString(style.Render(m.toast))
	b.WriteString("\n")
}

func renderSpans(spans []suggest.Span, plain, match lipgloss.Style) string {
	var b strings.Builder
	for _, s := range spans {
		if s.Match {
			b.WriteString(match.Render(s.Text))
			continue
		}
		b.WriteString(plain.Render(s.Text))
	}
	return b.String()
}
