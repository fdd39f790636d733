// Package cli handles cmd line input and suggestions for DBG and testing the index
package cli

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/bastiangx/sitesuggest/internal/logger"
	"github.com/bastiangx/sitesuggest/internal/utils"
	"github.com/bastiangx/sitesuggest/pkg/suggest"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
)

var (
	matchStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("75"))
	categoryStyle = lipgloss.NewStyle().Faint(true)
)

// InputHandler reads one query per line and prints the suggestions for it.
// Every line is treated as a settled query, so nothing is debounced here.
type InputHandler struct {
	index          suggest.ISuggester
	minQueryLength int
	suggestLimit   int
	requestCount   int

	in  io.Reader
	out *log.Logger
}

// NewInputHandler handles initialization of the InputHandler with basic parameters
func NewInputHandler(index suggest.ISuggester, minLength, limit int, in io.Reader, out io.Writer) *InputHandler {
	return &InputHandler{
		index:          index,
		minQueryLength: minLength,
		suggestLimit:   limit,
		in:             in,
		out:            logger.NewWithConfig(out, "", log.InfoLevel, false, false, log.TextFormatter),
	}
}

// Start begins the interface loop. It returns nil when input ends.
func (h *InputHandler) Start() error {
	h.out.Print("SiteSuggest CLI [BETA]")
	h.out.Print("type a search and press Enter to see the suggestions (Ctrl+C to exit):")

	reader := bufio.NewReader(h.in)
	for {
		h.out.Print("> ")
		line, err := reader.ReadString('\n')
		if line != "" {
			h.handleInput(line)
		}
		if err != nil {
			if errors.Is(err, io.EOF) {
				return nil
			}
			return fmt.Errorf("reading input: %w", err)
		}
	}
}

// handleInput looks up a single query and prints the rows.
func (h *InputHandler) handleInput(raw string) {
	query := utils.NormalizeQuery(raw)
	if query == "" {
		return
	}
	h.requestCount++

	if !utils.IsSearchable(query, h.minQueryLength) {
		h.out.Errorf("Query too short (min %d): %s", h.minQueryLength, query)
		return
	}

	start := time.Now()
	results := h.index.Search(query)
	log.Debugf("Took [ %v ] for query '%s'", time.Since(start), query)

	if len(results) == 0 {
		h.out.Warnf("No results found for '%s'", query)
		return
	}
	if len(results) > h.suggestLimit && h.suggestLimit > 0 {
		results = results[:h.suggestLimit]
	}

	h.out.Printf("Found %d suggestions for '%s':", len(results), query)
	for _, r := range results {
		h.out.Printf("%2d. %-8s %s %s -> %s",
			r.Rank,
			r.Entry.Kind,
			renderSpans(r.Spans),
			categoryStyle.Render("("+r.Entry.Category+")"),
			r.Entry.Target)
	}
}

func renderSpans(spans []suggest.Span) string {
	var b strings.Builder
	for _, s := range spans {
		if s.Match {
			b.WriteString(matchStyle.Render(s.Text))
			continue
		}
		b.WriteString(s.Text)
	}
	return b.String()
}
