package logger

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func restoreGlobal(t *testing.T) {
	level := log.GetLevel()
	t.Cleanup(func() {
		log.SetOutput(os.Stderr)
		log.SetLevel(level)
		log.SetReportTimestamp(false)
	})
}

func TestNewFollowsGlobalLogger(t *testing.T) {
	restoreGlobal(t)
	var buf bytes.Buffer
	log.SetOutput(&buf)
	log.SetLevel(log.DebugLevel)

	New("session").Debug("event published")
	assert.Contains(t, buf.String(), "session")
	assert.Contains(t, buf.String(), "event published")
}

func TestRedirectToFile(t *testing.T) {
	restoreGlobal(t)
	path := filepath.Join(t.TempDir(), "sitesuggest.log")

	closer, err := RedirectToFile(path)
	require.NoError(t, err)
	New("session").Warn("handler failed")
	require.NoError(t, closer.Close())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "handler failed")
}
