// Package catalog holds the fixed set of searchable site entries: tests, services, pages and locations.
package catalog

import "strings"

// Kind tags an entry with its section of the site.
type Kind string

const (
	KindTest     Kind = "test"
	KindService  Kind = "service"
	KindPage     Kind = "page"
	KindLocation Kind = "location"
)

const (
	fallbackIcon  = "circle"
	fallbackColor = "#6B7280"
)

var kindIcons = map[Kind]string{
	KindTest:     "flask",
	KindService:  "heartbeat",
	KindPage:     "file-alt",
	KindLocation: "map-marker-alt",
}

var kindColors = map[Kind]string{
	KindTest:     "#0066CC",
	KindService:  "#00A86B",
	KindPage:     "#3B82F6",
	KindLocation: "#F59E0B",
}

// ParseKind converts a raw kind string, case-insensitively.
func ParseKind(s string) (Kind, bool) {
	k := Kind(strings.ToLower(strings.TrimSpace(s)))
	_, ok := kindIcons[k]
	return k, ok
}

// Icon returns the icon name used by the site for this kind.
func (k Kind) Icon() string {
	if icon, ok := kindIcons[k]; ok {
		return icon
	}
	return fallbackIcon
}

// Color returns the hex color tag for this kind.
func (k Kind) Color() string {
	if color, ok := kindColors[k]; ok {
		return color
	}
	return fallbackColor
}

func (k Kind) String() string { return string(k) }

// Entry is one searchable item. Fields are never modified after load.
type Entry struct {
	Kind     Kind
	Name     string
	Category string
	Target   string
}

// SearchText is the text a query is matched against.
func (e Entry) SearchText() string {
	return e.Name + " " + e.Category
}

// Catalog is an ordered, read-only list of entries.
type Catalog struct {
	entries []Entry
}

// New copies entries into a Catalog, preserving their order.
func New(entries []Entry) *Catalog {
	cp := make([]Entry, len(entries))
	copy(cp, entries)
	return &Catalog{entries: cp}
}

// Len returns the number of entries.
func (c *Catalog) Len() int {
	if c == nil {
		return 0
	}
	return len(c.entries)
}

// At returns the entry at position i.
func (c *Catalog) At(i int) Entry {
	return c.entries[i]
}

// Entries returns a copy of all entries in catalog order.
func (c *Catalog) Entries() []Entry {
	if c == nil {
		return nil
	}
	cp := make([]Entry, len(c.entries))
	copy(cp, c.entries)
	return cp
}

// Each calls fn for every entry in order until fn returns false.
func (c *Catalog) Each(fn func(i int, e Entry) bool) {
	if c == nil {
		return
	}
	for i, e := range c.entries {
		if !fn(i, e) {
			return
		}
	}
}

// Stats returns per-kind entry counts.
func (c *Catalog) Stats() map[string]int {
	stats := map[string]int{"totalEntries": c.Len()}
	c.Each(func(_ int, e Entry) bool {
		stats[e.Kind.String()]++
		return true
	})
	return stats
}
