package logger

import (
	"os"
	"path/filepath"
	"testing"

	"lingo-quiz/internal/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGet_BeforeInitializeIsUsable(t *testing.T) {
	assert.NotNil(t, Get())
	Get().Info("no-op logger accepts writes")
}

func TestInitialize_WritesRotatingFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "app.log")

	err := Initialize(config.LoggerConfig{
		Env:   "production",
		Level: "debug",
		File:  config.LogFileConfig{Path: path, MaxSizeMB: 1, MaxBackups: 1, MaxAgeDays: 1},
	})
	require.NoError(t, err)

	Get().Debug("file logging enabled")
	_ = Sync()

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "file logging enabled")
}
