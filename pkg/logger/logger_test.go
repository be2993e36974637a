package logger_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tidelight/aipane/pkg/logger"
)

func TestNewWritesToAbsolutePath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.log")

	l, err := logger.New("debug", path, false)
	require.NoError(t, err)
	t.Cleanup(func() { l.Close() })

	_, err = os.Stat(path)
	assert.NoError(t, err)
}

func TestNewTruncatesUnlessPreserving(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.log")
	require.NoError(t, os.WriteFile(path, []byte("old contents\n"), 0644))

	l, err := logger.New("info", path, false)
	require.NoError(t, err)
	require.NoError(t, l.Close())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Empty(t, data)
}

func TestNewPreservesWhenAsked(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.log")
	require.NoError(t, os.WriteFile(path, []byte("old contents\n"), 0644))

	l, err := logger.New("info", path, true)
	require.NoError(t, err)
	require.NoError(t, l.Close())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "old contents")
}

func TestPackageFunctionsSafeBeforeInit(t *testing.T) {
	assert.NotPanics(t, func() {
		logger.Debug("dropped %d", 1)
		logger.Info("dropped")
		logger.Warn("dropped")
		logger.Error("dropped")
	})
}

func TestWithComponentBeforeInitDiscards(t *testing.T) {
	entry := logger.WithComponent("test")
	require.NotNil(t, entry)
	assert.NotPanics(t, func() { entry.Info("goes nowhere") })
}
