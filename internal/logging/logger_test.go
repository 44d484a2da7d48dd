package logging_test

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MikyStar/CLI-Manager-sub000/internal/logging"
)

func TestSelectLevel(t *testing.T) {
	assert.Equal(t, zerolog.DebugLevel, logging.SelectLevel(true, false))
	assert.Equal(t, zerolog.DebugLevel, logging.SelectLevel(true, true), "verbose wins")
	assert.Equal(t, zerolog.WarnLevel, logging.SelectLevel(false, true))
	assert.Equal(t, zerolog.InfoLevel, logging.SelectLevel(false, false))
}

func TestNew_ConsoleOnly(t *testing.T) {
	var buf bytes.Buffer
	logger, closer := logging.New(logging.Options{Console: &buf})
	defer func() { _ = closer.Close() }()

	logger.Debug().Msg("hidden")
	logger.Info().Str("op", "add").Msg("visible")

	out := buf.String()
	assert.NotContains(t, out, "hidden")
	assert.Contains(t, out, `"op":"add"`)
	assert.Contains(t, out, `"ts":`)
}

func TestNew_WritesLogFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "task.log")
	var buf bytes.Buffer

	logger, closer := logging.New(logging.Options{
		Verbose:    true,
		Console:    &buf,
		File:       path,
		MaxSizeMB:  1,
		MaxBackups: 1,
	})
	logger.Debug().Msg("to file")
	require.NoError(t, closer.Close())

	data, err := os.ReadFile(path) //nolint:gosec // test file
	require.NoError(t, err)
	assert.Contains(t, string(data), "to file")
	assert.Contains(t, buf.String(), "to file")
}

func TestNew_UnusableLogFileFallsBack(t *testing.T) {
	blocker := filepath.Join(t.TempDir(), "file")
	require.NoError(t, os.WriteFile(blocker, nil, 0o600))
	var buf bytes.Buffer

	logger, closer := logging.New(logging.Options{
		Console: &buf,
		File:    filepath.Join(blocker, "sub", "task.log"),
	})
	defer func() { _ = closer.Close() }()
	logger.Info().Msg("still works")

	assert.Contains(t, buf.String(), "log file unavailable")
	assert.Contains(t, buf.String(), "still works")
}
