package main

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"strings"
	"testing"

	"github.com/reshetovitsme/bump-notifier/internal/shared/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewLogHandlerProductionWritesJSON(t *testing.T) {
	var stdout, stderr bytes.Buffer
	log := slog.New(newLogHandler(config.AppEnvProduction, slog.LevelInfo, &stdout, &stderr))

	log.Info("Run finished", "sent", 2)

	var record map[string]any
	require.NoError(t, json.Unmarshal(stdout.Bytes(), &record))
	assert.Equal(t, "Run finished", record["msg"])
	assert.EqualValues(t, 2, record["sent"])
	assert.Empty(t, stderr.String())
}

func TestNewLogHandlerLocalWritesText(t *testing.T) {
	var stdout, stderr bytes.Buffer
	log := slog.New(newLogHandler(config.AppEnvLocal, slog.LevelInfo, &stdout, &stderr))

	log.Debug("Hidden")
	log.Info("Run finished", "sent", 2)

	out := stdout.String()
	assert.NotContains(t, out, "Hidden")
	assert.True(t, strings.HasPrefix(out, "time="))
	assert.Contains(t, out, `msg="Run finished" sent=2`)
	assert.NotContains(t, out, "source=")
}

func TestNewLogHandlerDevelopmentAddsSource(t *testing.T) {
	var stdout, stderr bytes.Buffer
	log := slog.New(newLogHandler(config.AppEnvDevelopment, slog.LevelDebug, &stdout, &stderr))

	log.Debug("Cache loaded")

	assert.Contains(t, stdout.String(), "source=")
	assert.Contains(t, stdout.String(), "main_test.go")
}

func TestNewLogHandlerMirrorsErrorsToStderr(t *testing.T) {
	var stdout, stderr bytes.Buffer
	log := slog.New(newLogHandler(config.AppEnvTesting, slog.LevelInfo, &stdout, &stderr))

	log.Warn("Chat is unavailable")
	log.Error("Run failed", "error", "boom")

	assert.Contains(t, stdout.String(), "Chat is unavailable")
	assert.Contains(t, stdout.String(), "Run failed")

	var record map[string]any
	require.NoError(t, json.Unmarshal(stderr.Bytes(), &record))
	assert.Equal(t, "Run failed", record["msg"])
	assert.Equal(t, "boom", record["error"])
}
