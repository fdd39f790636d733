package catalog

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/charmbracelet/log"
)

var (
	ErrEmptyCatalog = errors.New("catalog has no entries")
	ErrEmptyName    = errors.New("entry has no name")
	ErrEmptyTarget  = errors.New("entry has no target")
	ErrUnknownKind  = errors.New("entry has unknown kind")
)

// file is the on-disk layout:
//
//	[[entry]]
//	kind = "test"
//	name = "Lipid Panel"
//	category = "Cholesterol"
//	target = "test-menu.html#lipid"
type file struct {
	Entries []rawEntry `toml:"entry"`
}

type rawEntry struct {
	Kind     string `toml:"kind"`
	Name     string `toml:"name"`
	Category string `toml:"category"`
	Target   string `toml:"target"`
}

// Load reads a catalog from a TOML file.
func Load(path string) (*Catalog, error) {
	var f file
	md, err := toml.DecodeFile(path, &f)
	if err != nil {
		return nil, fmt.Errorf("failed to parse catalog %s: %w", path, err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		log.Warnf("Ignoring unknown catalog keys in %s: %v", path, undecoded)
	}
	return fromRaw(f.Entries)
}

// Parse reads a catalog from TOML text.
func Parse(data string) (*Catalog, error) {
	var f file
	if _, err := toml.Decode(data, &f); err != nil {
		return nil, fmt.Errorf("failed to parse catalog: %w", err)
	}
	return fromRaw(f.Entries)
}

func fromRaw(raw []rawEntry) (*Catalog, error) {
	if len(raw) == 0 {
		return nil, ErrEmptyCatalog
	}
	entries := make([]Entry, 0, len(raw))
	for i, r := range raw {
		e, err := r.validate()
		if err != nil {
			return nil, fmt.Errorf("entry %d: %w", i+1, err)
		}
		entries = append(entries, e)
	}
	log.Debugf("Loaded catalog with %d entries", len(entries))
	return New(entries), nil
}

func (r rawEntry) validate() (Entry, error) {
	name := strings.TrimSpace(r.Name)
	if name == "" {
		return Entry{}, ErrEmptyName
	}
	target := strings.TrimSpace(r.Target)
	if target == "" {
		return Entry{}, fmt.Errorf("%q: %w", name, ErrEmptyTarget)
	}
	kind, ok := ParseKind(r.Kind)
	if !ok {
		return Entry{}, fmt.Errorf("%q (%s): %w", name, r.Kind, ErrUnknownKind)
	}
	return Entry{
		Kind:     kind,
		Name:     name,
		Category: strings.TrimSpace(r.Category),
		Target:   target,
	}, nil
}

// LoadOrDefault loads the catalog at path, falling back to the built-in one
// when path is empty or the file cannot be used.
func LoadOrDefault(path string) *Catalog {
	if path == "" {
		return Default()
	}
	c, err := Load(path)
	if err != nil {
		log.Warnf("Failed to load catalog: %v. Using built-in catalog...", err)
		return Default()
	}
	return c
}

// Encode writes c in the same TOML layout Load reads.
func Encode(w io.Writer, c *Catalog) error {
	var f file
	c.Each(func(_ int, e Entry) bool {
		f.Entries = append(f.Entries, rawEntry{
			Kind:     e.Kind.String(),
			Name:     e.Name,
			Category: e.Category,
			Target:   e.Target,
		})
		return true
	})
	return toml.NewEncoder(w).Encode(f)
}
