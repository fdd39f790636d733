package utils

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIsSearchable(t *testing.T) {
	testCases := []struct {
		raw         string
		expected    bool
		description string
	}{
		{"", false, "empty"},
		{"  b ", false, "one char after trim"},
		{"bl", true, "two chars"},
		{"é", false, "one rune, two bytes"},
		{"éé", true, "two runes"},
	}
	for _, tc := range testCases {
		assert.Equal(t, tc.expected, IsSearchable(NormalizeQuery(tc.raw), 2), tc.description)
	}
}

func TestClampLimit(t *testing.T) {
	assert.Equal(t, 8, ClampLimit(0, 8, 20))
	assert.Equal(t, 3, ClampLimit(3, 8, 20))
	assert.Equal(t, 20, ClampLimit(99, 8, 20))
	assert.Equal(t, 99, ClampLimit(99, 8, 0))
}

func TestSaveTOMLFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "out.toml")

	require.NoError(t, SaveTOMLFile(map[string]any{"ui": map[string]any{"toast_ms": 10}}, path))
	data, err := DecodeTOMLTable(path)
	require.NoError(t, err)

	section, ok := Section(data, "ui")
	require.True(t, ok)
	v, ok := IntField(section, "toast_ms")
	require.True(t, ok)
	assert.Equal(t, 10, v)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 1, "no temp files left behind")
}

func TestFindFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "catalog.toml")
	require.NoError(t, os.WriteFile(path, []byte(""), 0644))

	pr := &PathResolver{executableDir: dir, configDir: filepath.Join(dir, "cfg")}

	got, err := pr.FindFile(path)
	require.NoError(t, err)
	assert.Equal(t, path, got)

	got, err = pr.FindFile("catalog.toml")
	require.NoError(t, err)
	assert.Equal(t, path, got, "found next to the executable")

	_, err = pr.FindFile("missing.toml")
	assert.ErrorIs(t, err, os.ErrNotExist)
	_, err = pr.FindFile("")
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestTableFields(t *testing.T) {
	table := map[string]any{
		"search": map[string]any{"max_results": int64(5), "marker_open": "<b>", "min_query": "two"},
	}

	section, ok := Section(table, "search")
	require.True(t, ok)
	_, ok = Section(table, "ui")
	assert.False(t, ok)

	n, ok := IntField(section, "max_results")
	assert.True(t, ok)
	assert.Equal(t, 5, n)

	_, ok = IntField(section, "min_query")
	assert.False(t, ok, "a string is not an int")

	s, ok := StringField(section, "marker_open")
	assert.True(t, ok)
	assert.Equal(t, "<b>", s)
}

func TestDecodeTOMLFileIgnoresUnknownKeys(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte("[ui]\ntoast_ms = 900\ncolour = \"blue\"\n"), 0644))

	var cfg struct {
		UI struct {
			ToastMs int `toml:"toast_ms"`
		} `toml:"ui"`
	}
	require.NoError(t, DecodeTOMLFile(path, &cfg))
	assert.Equal(t, 900, cfg.UI.ToastMs)

	require.NoError(t, os.WriteFile(path, []byte("[ui\n"), 0644))
	assert.Error(t, DecodeTOMLFile(path, &cfg))
}

func TestCheckDirStatus(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "cfg")

	result := CheckDirStatus(dir)
	assert.True(t, result.Exists)
	assert.True(t, result.Writable)
	assert.NoError(t, result.Error)
	assert.True(t, FileExists(dir))
}
