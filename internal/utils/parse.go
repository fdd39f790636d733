package utils

import (
	"os"

	"github.com/BurntSushi/toml"
	"github.com/charmbracelet/log"
)

// Config files are read in two passes. DecodeTOMLFile is the strict one; when
// it fails, DecodeTOMLTable reads the same file as a loose table and the
// caller copies over whatever fields still have the right type.

// DecodeTOMLFile decodes path into dst. Keys dst has no field for are
// reported but do not fail the decode.
func DecodeTOMLFile(path string, dst any) error {
	md, err := toml.DecodeFile(path, dst)
	if err != nil {
		log.Warnf("TOML parsing error in %s: %v. Attempting partial recovery...", path, err)
		return err
	}
	if unknown := md.Undecoded(); len(unknown) > 0 {
		log.Warnf("Ignoring unknown keys in %s: %v", path, unknown)
	}
	return nil
}

// DecodeTOMLTable reads path as an untyped table.
func DecodeTOMLTable(path string) (map[string]any, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	table := make(map[string]any)
	if _, err := toml.Decode(string(data), &table); err != nil {
		log.Warnf("No usable TOML in %s: %v", path, err)
		return nil, err
	}
	return table, nil
}

func Section(table map[string]any, name string) (map[string]any, bool) {
	return field[map[string]any](table, name)
}

// IntField reads key as an int. TOML integers always decode as int64.
func IntField(table map[string]any, key string) (int, bool) {
	v, ok := field[int64](table, key)
	return int(v), ok
}

func StringField(table map[string]any, key string) (string, bool) {
	return field[string](table, key)
}

// field returns the value at key when it holds a T.
func field[T any](table map[string]any, key string) (T, bool) {
	v, ok := table[key].(T)
	return v, ok
}
