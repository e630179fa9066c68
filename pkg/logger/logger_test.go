package logger

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
)

func TestParseLogLevel(t *testing.T) {
	assert.Equal(t, zapcore.DebugLevel, ParseLogLevel("debug", zapcore.InfoLevel))
	assert.Equal(t, zapcore.DebugLevel, ParseLogLevel("TRACE", zapcore.InfoLevel))
	assert.Equal(t, zapcore.WarnLevel, ParseLogLevel(" warning ", zapcore.InfoLevel))
	assert.Equal(t, zapcore.ErrorLevel, ParseLogLevel("ERROR", zapcore.InfoLevel))
	assert.Equal(t, zapcore.InfoLevel, ParseLogLevel("", zapcore.InfoLevel))
	assert.Equal(t, zapcore.WarnLevel, ParseLogLevel("bogus", zapcore.WarnLevel))
}

func TestFindWritableLogPath(t *testing.T) {
	dir := t.TempDir()

	blocked := filepath.Join(dir, "blocked")
	require.NoError(t, os.WriteFile(blocked, []byte("not a dir"), 0600))

	want := filepath.Join(dir, "state", "tfl", "tfl.log")
	path, w, err := FindWritableLogPath([]string{
		filepath.Join(blocked, "tfl.log"),
		want,
	})
	require.NoError(t, err)
	assert.Equal(t, want, path)
	assert.NotNil(t, w)

	info, err := os.Stat(want)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0600), info.Mode().Perm())
}

func TestFindWritableLogPath_NoneWritable(t *testing.T) {
	dir := t.TempDir()
	blocked := filepath.Join(dir, "blocked")
	require.NoError(t, os.WriteFile(blocked, []byte("x"), 0600))

	_, _, err := FindWritableLogPath([]string{filepath.Join(blocked, "a.log")})
	assert.Error(t, err)
}

func TestL_ReturnsUsableLogger(t *testing.T) {
	l := L()
	require.NotNil(t, l)
	l.Debug("logger smoke test")
	_ = Sync()
}
