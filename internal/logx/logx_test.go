package logx

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewWritesToFile(t *testing.T) {
	dir := t.TempDir()
	logger, err := New(dir, "info")
	require.NoError(t, err)
	defer logger.Close()

	logger.Info("hello", "key", "value")
	require.NoError(t, logger.Close())

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)

	data, err := os.ReadFile(filepath.Join(dir, entries[0].Name()))
	require.NoError(t, err)
	assert.Contains(t, string(data), "hello")
	assert.Contains(t, string(data), "value")
}

func TestNewEmptyDirLogsToStderr(t *testing.T) {
	logger, err := New("", "debug")
	require.NoError(t, err)
	assert.NotPanics(t, func() { logger.Debug("stderr message") })
}

func TestNoOpDiscardsMessages(t *testing.T) {
	logger := NoOp()
	assert.NotPanics(t, func() {
		logger.Info("ignored")
		logger.Error("also ignored")
	})
}

func TestNilLoggerIsSafe(t *testing.T) {
	var logger *Logger
	assert.NotPanics(t, func() { logger.Info("noop") })
}
