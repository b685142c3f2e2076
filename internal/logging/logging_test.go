package logging

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_WritesJSONToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "taskpad.log")

	logger, closeFn, err := New(path, slog.LevelInfo)
	require.NoError(t, err)
	logger.Info("hello", "tasks", 3)
	logger.Debug("hidden")
	require.NoError(t, closeFn())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"msg":"hello"`)
	assert.Contains(t, string(data), `"tasks":3`)
	assert.NotContains(t, string(data), "hidden")
}

func TestNew_EmptyPathDiscards(t *testing.T) {
	logger, closeFn, err := New("", slog.LevelDebug)
	require.NoError(t, err)
	assert.NotPanics(t, func() { logger.Info("nothing") })
	assert.NoError(t, closeFn())
}

func TestNew_UnopenableFile(t *testing.T) {
	dir := t.TempDir()

	logger, closeFn, err := New(dir, slog.LevelInfo)
	assert.Error(t, err)
	assert.NotNil(t, logger)
	assert.NoError(t, closeFn())
}
