package suggest

import (
	"strings"
	"unicode/utf8"

	"golang.org/x/text/cases"
)

// Span is a run of text that either matched the query or did not.
type Span struct {
	Text  string
	Match bool
}

// Marker wraps matched text for display.
type Marker struct {
	Open  string
	Close string
}

var DefaultMarker = Marker{Open: "<strong>", Close: "</strong>"}

// Split cuts text into spans around every occurrence of query, compared under
// the same case folding Search matches with. A match covering part of a rune
// that folds to several, like one "s" of "ß", takes the whole rune.
func Split(text, query string) []Span {
	if text == "" {
		return nil
	}
	needle := fold(query)
	if needle == "" {
		return []Span{{Text: text}}
	}

	hay, origin := foldOffsets(text)
	var locs [][2]int
	for from := 0; from < len(hay); {
		at := strings.Index(hay[from:], needle)
		if at < 0 {
			break
		}
		fs := from + at
		fe := fs + len(needle)
		start, end := origin[fs].start, origin[fe-1].end
		if n := len(locs); n > 0 && start < locs[n-1][1] {
			locs[n-1][1] = max(locs[n-1][1], end)
		} else {
			locs = append(locs, [2]int{start, end})
		}
		from = fe
	}
	if len(locs) == 0 {
		return []Span{{Text: text}}
	}

	spans := make([]Span, 0, 2*len(locs)+1)
	last := 0
	for _, loc := range locs {
		if loc[0] > last {
			spans = append(spans, Span{Text: text[last:loc[0]]})
		}
		spans = append(spans, Span{Text: text[loc[0]:loc[1]], Match: true})
		last = loc[1]
	}
	if last < len(text) {
		spans = append(spans, Span{Text: text[last:]})
	}
	return spans
}

// runeBounds is the byte range of one rune in the unfolded text.
type runeBounds struct {
	start, end int
}

// foldOffsets folds text rune by rune and records, for every byte of the
// folded result, the bounds of the rune it came from.
func foldOffsets(text string) (string, []runeBounds) {
	caser := cases.Fold()
	var b strings.Builder
	b.Grow(len(text))
	origin := make([]runeBounds, 0, len(text))
	for i := 0; i < len(text); {
		_, size := utf8.DecodeRuneInString(text[i:])
		f := caser.String(text[i : i+size])
		b.WriteString(f)
		for range len(f) {
			origin = append(origin, runeBounds{start: i, end: i + size})
		}
		i += size
	}
	return b.String(), origin
}

// Render joins spans, wrapping matched ones in the marker.
func (m Marker) Render(spans []Span) string {
	var b strings.Builder
	for _, s := range spans {
		if s.Match {
			b.WriteString(m.Open)
			b.WriteString(s.Text)
			b.WriteString(m.Close)
			continue
		}
		b.WriteString(s.Text)
	}
	return b.String()
}

// Highlight wraps every occurrence of query in text with the marker.
// Text already enclosed by the marker is copied as is, so applying
// Highlight twice with the same query gives the same result as once.
func (m Marker) Highlight(text, query string) string {
	if m.Open == "" || m.Close == "" {
		return m.Render(Split(text, query))
	}

	var b strings.Builder
	rest := text
	for rest != "" {
		open := strings.Index(rest, m.Open)
		if open < 0 {
			break
		}
		closeAt := strings.Index(rest[open+len(m.Open):], m.Close)
		if closeAt < 0 {
			break
		}
		end := open + len(m.Open) + closeAt + len(m.Close)

		b.WriteString(m.Render(Split(rest[:open], query)))
		b.WriteString(rest[open:end])
		rest = rest[end:]
	}
	b.WriteString(m.Render(Split(rest, query)))
	return b.String()
}
