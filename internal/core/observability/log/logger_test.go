package log

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newFileLogger(t *testing.T, level Level) (*Logger, string) {
	t.Helper()
	out := filepath.Join(t.TempDir(), "out.log")
	logger, err := New(Options{Level: level, OutputPaths: []string{out}})
	require.NoError(t, err)
	return logger, out
}

func readLines(t *testing.T, logger *Logger, path string) []string {
	t.Helper()
	require.NoError(t, logger.Sync())
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	trimmed := strings.TrimSpace(string(data))
	if trimmed == "" {
		return nil
	}
	return strings.Split(trimmed, "\n")
}

func TestLoggerLevelFiltering(t *testing.T) {
	logger, out := newFileLogger(t, LevelWarn)
	assert.Equal(t, LevelWarn, logger.GetLevel())

	logger.Debug("hidden")
	logger.Info("hidden")
	logger.Warn("shown")
	logger.Log(LevelError, "also shown")

	lines := readLines(t, logger, out)
	require.Len(t, lines, 2)
	assert.Contains(t, lines[0], `"msg":"shown"`)
	assert.Contains(t, lines[1], `"level":"error"`)
}

func TestLoggerFields(t *testing.T) {
	logger, out := newFileLogger(t, LevelDebug)

	child := logger.With(String("component", "loader"))
	child.Info("loaded",
		Int("tiles", 13),
		Bool("strict", true),
		Uint64("checksum", 42),
		Uint32("gid", 7),
		Duration("elapsed", time.Second),
		Strings("types", []string{"solid"}),
		Error(errors.New("boom")),
		Any("extra", map[string]int{"a": 1}),
	)

	lines := readLines(t, logger, out)
	require.Len(t, lines, 1)
	for _, want := range []string{
		`"component":"loader"`, `"tiles":13`, `"strict":true`, `"checksum":42`,
		`"gid":7`, `"types":["solid"]`, `"error":"boom"`, `"extra":{"a":1}`,
	} {
		assert.Contains(t, lines[0], want)
	}
}

func TestLoggerNone(t *testing.T) {
	logger, out := newFileLogger(t, LevelNone)
	logger.Error("hidden")
	logger.Log(LevelNone, "hidden")
	assert.Empty(t, readLines(t, logger, out))
}

func TestNop(t *testing.T) {
	logger := Nop()
	logger.Info("dropped")
	assert.Equal(t, LevelNone, logger.GetLevel())
	assert.Same(t, logger, logger.WithContext(context.TODO()))
}

func TestParseLevel(t *testing.T) {
	cases := map[string]Level{
		"":        LevelInfo,
		"debug":   LevelDebug,
		"INFO":    LevelInfo,
		"warning": LevelWarn,
		"error":   LevelError,
		"off":     LevelNone,
	}
	for in, want := range cases {
		got, err := ParseLevel(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}

	_, err := ParseLevel("loud")
	assert.Error(t, err)
	assert.Equal(t, "warn", LevelWarn.String())
}
