package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tidelight/aipane/pkg/config"
)

func TestDefaults(t *testing.T) {
	config.Reset()
	t.Cleanup(config.Reset)

	cfg := config.Get()
	assert.Equal(t, "info", cfg.Logging.Level)
	assert.Equal(t, []string{"conv_name_"}, cfg.Panel.SilentPrefixes)
	assert.Equal(t, time.Second, cfg.Panel.NameCheckDelay)
	assert.Empty(t, cfg.Replay.Path)
}

func TestLoadFromFile(t *testing.T) {
	config.Reset()
	t.Cleanup(config.Reset)

	dir := t.TempDir()
	path := filepath.Join(dir, "settings.yaml")
	content := `
logging:
  level: debug
panel:
  silent_prefixes:
    - conv_name_
    - bg_task_
  name_check_delay: 250ms
replay:
  path: session.jsonl
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	require.NoError(t, config.Load(path))

	cfg := config.Get()
	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.Equal(t, []string{"conv_name_", "bg_task_"}, cfg.Panel.SilentPrefixes)
	assert.Equal(t, 250*time.Millisecond, cfg.Panel.NameCheckDelay)
	assert.Equal(t, "session.jsonl", cfg.Replay.Path)
}

func TestLoadMissingExplicitFileFails(t *testing.T) {
	config.Reset()
	t.Cleanup(config.Reset)

	err := config.Load(filepath.Join(t.TempDir(), "absent.yaml"))
	assert.Error(t, err)
}

func TestBuildSettingsPath(t *testing.T) {
	path := config.BuildSettingsPath("aipane.log")
	assert.Equal(t, "aipane.log", filepath.Base(path))
	assert.Contains(t, path, ".aipane")
}
