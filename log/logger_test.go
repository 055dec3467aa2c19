package log

import (
	"io/fs"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"qlab/conf"
)

func TestParseLevel(t *testing.T) {
	assert.Equal(t, zapcore.DebugLevel, parseLevel("debug"))
	assert.Equal(t, zapcore.InfoLevel, parseLevel("info"))
	assert.Equal(t, zapcore.ErrorLevel, parseLevel("error"))
	assert.Equal(t, zapcore.WarnLevel, parseLevel("warn"))
	assert.Equal(t, zapcore.WarnLevel, parseLevel(""))
}

func TestFileLog(t *testing.T) {
	dir := t.TempDir()
	logger, err := NewLogger(&conf.Conf{
		DisableStdoutLog:   true,
		EnableFileLog:      true,
		LogDir:             dir,
		LogLevel:           "info",
		LogRotationMaxDays: 1,
	})
	require.NoError(t, err)
	logger.Info("hello", zap.Int("shots", 1024))
	logger.Debug("hidden")
	_ = logger.Sync()

	files, err := filepath.Glob(filepath.Join(dir, "qlab-*.log"))
	require.NoError(t, err)
	require.Len(t, files, 1)
	b, err := os.ReadFile(files[0])
	require.NoError(t, err)
	assert.Contains(t, string(b), `"msg":"hello"`)
	assert.Contains(t, string(b), `"shots":1024`)
	assert.Contains(t, string(b), `"timestamp"`)
	assert.NotContains(t, string(b), "hidden")
}

func TestMissingLogDir(t *testing.T) {
	_, err := NewLogger(&conf.Conf{
		EnableFileLog: true,
		LogDir:        filepath.Join(t.TempDir(), "nope"),
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "log dir ")
	assert.ErrorIs(t, err, fs.ErrNotExist)
}

func TestSetupReplacesGlobal(t *testing.T) {
	prev := zap.L()
	t.Cleanup(func() { zap.ReplaceGlobals(prev) })

	logger, err := Setup(&conf.Conf{DisableStdoutLog: true, LogLevel: "debug"})
	require.NoError(t, err)
	assert.Same(t, logger, zap.L())
}
