package main

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "miditex.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadConfigMissingFile(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "absent.yaml"))
	require.NoError(t, err)
	assert.Equal(t, defaultConfig(), cfg)
}

func TestLoadConfig(t *testing.T) {
	path := writeConfig(t, `
log_level: debug
client_name: VJ rig
poll_interval: 250ms
snapshot_dir: /tmp/miditex
color: false
`)
	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, "VJ rig", cfg.ClientName)
	assert.Equal(t, 250*time.Millisecond, cfg.PollInterval)
	assert.Equal(t, 50*time.Millisecond, cfg.RefreshInterval, "default kept")
	assert.Equal(t, "/tmp/miditex", cfg.SnapshotDir)
	require.NotNil(t, cfg.Color)
	assert.False(t, *cfg.Color)
}

func TestLoadConfigErrors(t *testing.T) {
	for _, tc := range []struct {
		name    string
		content string
	}{
		{name: "syntax", content: "log_level: [debug"},
		{name: "level", content: "log_level: loud"},
		{name: "poll", content: "poll_interval: -1s"},
		{name: "refresh", content: "refresh_interval: 0s"},
	} {
		t.Run(tc.name, func(t *testing.T) {
			_, err := LoadConfig(writeConfig(t, tc.content))
			assert.Error(t, err)
		})
	}
}

func TestLoadConfigNullColor(t *testing.T) {
	for _, tc := range []struct {
		name    string
		content string
	}{
		{name: "empty", content: "color:"},
		{name: "tilde", content: "color: ~"},
		{name: "null", content: "color: null"},
	} {
		t.Run(tc.name, func(t *testing.T) {
			cfg, err := LoadConfig(writeConfig(t, tc.content))
			require.NoError(t, err)
			require.NotNil(t, cfg.Color)
			assert.True(t, *cfg.Color)
		})
	}
}
