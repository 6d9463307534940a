package iologger

import (
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gnames/gn"
	"github.com/gnames/gnsynth/pkg/config"
	"github.com/gnames/gnsynth/pkg/errcode"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		input string
		res   slog.Level
	}{
		{"debug", slog.LevelDebug},
		{"info", slog.LevelInfo},
		{"warn", slog.LevelWarn},
		{"error", slog.LevelError},
		{"bogus", slog.LevelInfo},
	}
	for _, v := range tests {
		assert.Equal(t, v.res, parseLevel(v.input), v.input)
	}
}

func TestInitFile(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping test that uses file system in short mode")
	}
	defaultLogger := slog.Default()
	defer slog.SetDefault(defaultLogger)

	dir := t.TempDir()
	cfg := config.LogConfig{Format: "text", Level: "warn", Destination: "file"}

	err := Init(dir, cfg, false)
	require.NoError(t, err)
	slog.Info("hidden")
	slog.Warn("shown", "datasource", "Alpha")

	err = Init(dir, cfg, true)
	require.NoError(t, err)
	slog.Warn("appended")

	data, err := os.ReadFile(filepath.Join(dir, LogFile))
	require.NoError(t, err)
	log := string(data)
	assert.NotContains(t, log, "hidden")
	assert.Contains(t, log, "datasource=Alpha")
	assert.Contains(t, log, "appended")
	assert.Equal(t, 2, strings.Count(log, "level=WARN"))
}

func TestInitFileError(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping test that uses file system in short mode")
	}
	defaultLogger := slog.Default()
	defer slog.SetDefault(defaultLogger)

	dir := filepath.Join(t.TempDir(), "missing")
	cfg := config.LogConfig{Format: "json", Level: "info", Destination: "file"}
	err := Init(dir, cfg, false)
	require.Error(t, err)

	var gnErr *gn.Error
	require.True(t, errors.As(err, &gnErr))
	assert.Equal(t, errcode.CreateLogFileError, gnErr.Code)
	assert.Equal(t, filepath.Join(dir, LogFile), gnErr.Vars[0])
}
