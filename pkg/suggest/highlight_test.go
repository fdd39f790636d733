package suggest

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSplit(t *testing.T) {
	testCases := []struct {
		text        string
		query       string
		expected    []Span
		description string
	}{
		{"Lipid Panel", "", []Span{{Text: "Lipid Panel"}}, "empty query"},
		{"", "x", nil, "empty text"},
		{"Lipid Panel", "xyz", []Span{{Text: "Lipid Panel"}}, "no match"},
		{"Lipid Panel", "lipid panel", []Span{{Text: "Lipid Panel", Match: true}}, "whole text"},
		{"Test Results", "t", []Span{
			{Text: "T", Match: true}, {Text: "es"}, {Text: "t", Match: true},
			{Text: " Resul"}, {Text: "t", Match: true}, {Text: "s"},
		}, "every occurrence"},
		{"Thyroid Function Tests (TSH, T3, T4)", "(tsh", []Span{
			{Text: "Thyroid Function Tests "}, {Text: "(TSH", Match: true}, {Text: ", T3, T4)"},
		}, "metacharacters are literal"},
		{"Straße Clinic", "strasse", []Span{
			{Text: "Straße", Match: true}, {Text: " Clinic"},
		}, "full case folding"},
		{"Straße Clinic", "s", []Span{
			{Text: "S", Match: true}, {Text: "tra"}, {Text: "ß", Match: true}, {Text: " Clinic"},
		}, "partial fold match takes the whole rune"},
		{"ÅRHUS Office", "århus", []Span{
			{Text: "ÅRHUS", Match: true}, {Text: " Office"},
		}, "non-ascii upper case"},
	}

	for _, tc := range testCases {
		t.Run(tc.description, func(t *testing.T) {
			assert.Equal(t, tc.expected, Split(tc.text, tc.query))
		})
	}
}

func TestHighlight(t *testing.T) {
	m := DefaultMarker

	assert.Equal(t, "<strong>COVID</strong>-19 PCR Test", m.Highlight("COVID-19 PCR Test", "covid"))
	assert.Equal(t, "Urinalysis", m.Highlight("Urinalysis", ""))
	assert.Equal(t, "<strong>aa</strong><strong>aa</strong>a", m.Highlight("aaaaa", "aa"))
}

func TestHighlightIdempotent(t *testing.T) {
	testCases := []struct {
		marker Marker
		text   string
		query  string
	}{
		{DefaultMarker, "COVID-19 PCR Test", "covid"},
		{DefaultMarker, "Test Results", "t"},
		{DefaultMarker, "Complete Blood Count (CBC)", "c"},
		{DefaultMarker, "Strong Bones Panel", "strong"},
		{DefaultMarker, "Panel", "xyz"},
		{Marker{Open: "[", Close: "]"}, "Pay Bill Online", "l"},
	}

	for _, tc := range testCases {
		once := tc.marker.Highlight(tc.text, tc.query)
		twice := tc.marker.Highlight(once, tc.query)
		assert.Equal(t, once, twice, "text %q query %q", tc.text, tc.query)
	}
}

func TestHighlightUnclosedMarker(t *testing.T) {
	got := DefaultMarker.Highlight("<strong>Lipid Panel", "panel")
	assert.Equal(t, "<strong>Lipid <strong>Panel</strong>", got)
}

func TestRender(t *testing.T) {
	spans := []Span{{Text: "Vitamin "}, {Text: "D", Match: true}, {Text: " Test"}}
	assert.Equal(t, "Vitamin _D_ Test", Marker{Open: "_", Close: "_"}.Render(spans))
	assert.Equal(t, "Vitamin D Test", Marker{}.Render(spans))
}
