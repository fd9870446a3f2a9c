package logging

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetupLogger(t *testing.T) {
	tests := []struct {
		name      string
		verbosity int
		wantLevel zerolog.Level
	}{
		{"default warn level", 0, zerolog.WarnLevel},
		{"info level", 1, zerolog.InfoLevel},
		{"debug level", 2, zerolog.DebugLevel},
		{"trace level", 3, zerolog.TraceLevel},
		{"high verbosity defaults to trace", 5, zerolog.TraceLevel},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tempDir := t.TempDir()
			t.Setenv("XDG_STATE_HOME", tempDir)

			SetupLogger(Options{Verbosity: tt.verbosity, Console: &bytes.Buffer{}})

			assert.Equal(t, tt.wantLevel, zerolog.GlobalLevel())

			logPath := filepath.Join(tempDir, "dotfiler", "dotfiler.log")
			_, err := os.Stat(logPath)
			assert.NoError(t, err, "log file should be created")
		})
	}
}

func TestSetupLoggerConsoleAndFile(t *testing.T) {
	original := log.Logger
	defer func() { log.Logger = original }()

	logPath := filepath.Join(t.TempDir(), "custom", "run.log")
	var console bytes.Buffer
	SetupLogger(Options{Verbosity: 1, Console: &console, LogFile: logPath})

	linkerLog := GetLogger("linker")
	linkerLog.Info().Msg("linked bashrc")

	assert.Contains(t, console.String(), "linked bashrc")
	assert.NotContains(t, console.String(), "\x1b[", "buffers never get colors")

	data, err := os.ReadFile(logPath)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"component":"linker"`)
	assert.Contains(t, string(data), "linked bashrc")

	// A second setup releases the first file and appends to the new one.
	otherPath := filepath.Join(t.TempDir(), "other.log")
	SetupLogger(Options{Console: &console, LogFile: otherPath})
	linkerLog = GetLogger("linker")
	linkerLog.Warn().Msg("second run")

	data, err = os.ReadFile(otherPath)
	require.NoError(t, err)
	assert.Contains(t, string(data), "second run")
	data, err = os.ReadFile(logPath)
	require.NoError(t, err)
	assert.NotContains(t, string(data), "second run")
}

func TestColorEnabled(t *testing.T) {
	t.Setenv("NO_COLOR", "")
	assert.False(t, colorEnabled(&bytes.Buffer{}, false), "non-file writers are never colored")
	assert.False(t, colorEnabled(os.Stderr, true), "--no-color wins")

	t.Setenv("NO_COLOR", "1")
	assert.False(t, colorEnabled(os.Stderr, false))
}

func TestLevelFor(t *testing.T) {
	assert.Equal(t, zerolog.WarnLevel, levelFor(-1))
	assert.Equal(t, zerolog.InfoLevel, levelFor(1))
	assert.Equal(t, zerolog.TraceLevel, levelFor(9))
}

func TestGetLogFilePath(t *testing.T) {
	t.Setenv("XDG_STATE_HOME", "/custom/state")
	assert.Equal(t, filepath.Join("/custom/state", "dotfiler", "dotfiler.log"), getLogFilePath())
}

func TestGetLogger(t *testing.T) {
	var buf bytes.Buffer
	original := log.Logger
	defer func() { log.Logger = original }()
	zerolog.SetGlobalLevel(zerolog.DebugLevel)
	log.Logger = zerolog.New(&buf)

	logger := GetLogger("filter")
	logger.Info().Msg("hello")

	assert.Contains(t, buf.String(), `"component":"filter"`)
	assert.Contains(t, buf.String(), "hello")
}

func TestLogOperationStart(t *testing.T) {
	var buf bytes.Buffer
	zerolog.SetGlobalLevel(zerolog.DebugLevel)
	logger := zerolog.New(&buf)

	done := LogOperationStart(logger, "link")
	require.Contains(t, buf.String(), "Operation started")

	done()
	assert.Contains(t, buf.String(), "Operation completed")
	assert.Contains(t, buf.String(), "duration")
}

func TestWithFields(t *testing.T) {
	var buf bytes.Buffer
	original := log.Logger
	defer func() { log.Logger = original }()
	zerolog.SetGlobalLevel(zerolog.DebugLevel)
	log.Logger = zerolog.New(&buf)

	logger := WithFields(map[string]interface{}{"source": "/dots"})
	logger.Info().Msg("with fields")

	assert.Contains(t, buf.String(), `"source":"/dots"`)
}
