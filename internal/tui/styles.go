package tui

import (
	"fmt"

	"github.com/bastiangx/sitesuggest/pkg/catalog"
	"github.com/charmbracelet/lipgloss"
)

var (
	titleStyle = lipgloss.NewStyle().Bold(true).
			Foreground(lipgloss.AdaptiveColor{Light: "#0066CC", Dark: "#7AB8FF"})
	hintStyle  = lipgloss.NewStyle().Faint(true)
	emptyStyle = lipgloss.NewStyle().Italic(true).
			Foreground(lipgloss.AdaptiveColor{Light: "#6B7280", Dark: "#9CA3AF"})

	nameStyle          = lipgloss.NewStyle()
	matchStyle         = lipgloss.NewStyle().Bold(true).Underline(true)
	selectedNameStyle  = lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "#0066CC", Dark: "#7AB8FF"})
	selectedMatchStyle = selectedNameStyle.Bold(true).Underline(true)

	selectedCursorStyle = lipgloss.NewStyle().Bold(true).
				Foreground(lipgloss.AdaptiveColor{Light: "#0066CC", Dark: "#7AB8FF"})
	categoryStyle = lipgloss.NewStyle().Faint(true)

	toastInfoStyle = lipgloss.NewStyle().Padding(0, 1).
			Foreground(lipgloss.Color("#FFFFFF")).
			Background(lipgloss.Color(catalog.KindService.Color()))
	toastWarnStyle = lipgloss.NewStyle().Padding(0, 1).
			Foreground(lipgloss.Color("#FFFFFF")).
			Background(lipgloss.Color(catalog.KindLocation.Color()))

	badgeStyle = lipgloss.NewStyle().Width(10).Bold(true)
)

// kindBadge renders the kind tag in the kind's color.
func kindBadge(k catalog.Kind) string {
	return badgeStyle.
		Foreground(lipgloss.Color(k.Color())).
		Render(fmt.Sprintf("[%s]", k))
}
