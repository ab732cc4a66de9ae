package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadFrom_MissingFileUsesDefaults(t *testing.T) {
	cfg, err := loadFrom(filepath.Join(t.TempDir(), "nope", "config.yaml"))

	require.NoError(t, err)
	assert.Equal(t, "mocha", cfg.Theme)
	assert.Equal(t, 20, cfg.LogCount)
	assert.NotEmpty(t, cfg.HistoryFile)
}

func TestLoadFrom_PartialFileKeepsOtherDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("theme: latte\n"), 0o644))

	cfg, err := loadFrom(path)

	require.NoError(t, err)
	assert.Equal(t, "latte", cfg.Theme)
	assert.Equal(t, 20, cfg.LogCount)
}

func TestLoadFrom_FullFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := "theme: frappe\nlog_count: 50\nhistory_file: /tmp/hist\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	cfg, err := loadFrom(path)

	require.NoError(t, err)
	assert.Equal(t, "frappe", cfg.Theme)
	assert.Equal(t, 50, cfg.LogCount)
	assert.Equal(t, "/tmp/hist", cfg.HistoryFile)
}

func TestLoadFrom_BadYAMLErrors(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("theme: [unclosed\n"), 0o644))

	_, err := loadFrom(path)

	assert.Error(t, err)
}

func TestLoadFrom_NonPositiveLogCountReset(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("log_count: -3\n"), 0o644))

	cfg, err := loadFrom(path)

	require.NoError(t, err)
	assert.Equal(t, 20, cfg.LogCount)
}
