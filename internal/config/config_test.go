package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadWithNoPathReturnsDefault(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoadOverridesDefaults(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "cartobot.yaml")
	contents := "serverUrl: ws://example.test/socket.io/\nsearchBudget: 5s\nmonitorListen: :9000\n"
	require.NoError(t, os.WriteFile(path, []byte(contents), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "ws://example.test/socket.io/", cfg.ServerURL)
	assert.Equal(t, 5*time.Second, cfg.SearchBudget)
	assert.Equal(t, ":9000", cfg.MonitorListen)
}

func TestLoadMissingFileErrors(t *testing.T) {
	_, err := Load("/nonexistent/cartobot.yaml")
	assert.Error(t, err)
}
