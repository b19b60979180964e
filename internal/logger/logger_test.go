package logger_test

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sir_venger/upload_lite/internal/logger"
)

func TestNew_TextToOutputAndFile(t *testing.T) {
	var buf bytes.Buffer
	file := filepath.Join(t.TempDir(), "upload.log")

	log, closeFn, err := logger.New(logger.Config{Level: "info", File: file, Output: &buf})
	require.NoError(t, err)

	log.Info("Uploaded abcde.jpg", "orig", "photo.jpg")
	log.Debug("hidden")
	require.NoError(t, closeFn())

	assert.Contains(t, buf.String(), "Uploaded abcde.jpg")
	assert.NotContains(t, buf.String(), "hidden")

	b, err := os.ReadFile(file)
	require.NoError(t, err)
	assert.Equal(t, buf.String(), string(b))
}

func TestNew_JSON(t *testing.T) {
	var buf bytes.Buffer
	log, _, err := logger.New(logger.Config{Format: "json", Output: &buf})
	require.NoError(t, err)

	log.Warn("write failed", "name", "abcde.txt")

	var rec map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &rec))
	assert.Equal(t, "WARN", rec["level"])
	assert.Equal(t, "abcde.txt", rec["name"])
}

func TestNew_BadFile(t *testing.T) {
	_, _, err := logger.New(logger.Config{File: filepath.Join(t.TempDir(), "missing", "x.log")})
	require.Error(t, err)
}

func TestParseLevel(t *testing.T) {
	assert.Equal(t, slog.LevelDebug, logger.ParseLevel("DEBUG"))
	assert.Equal(t, slog.LevelWarn, logger.ParseLevel("warning"))
	assert.Equal(t, slog.LevelError, logger.ParseLevel("error"))
	assert.Equal(t, slog.LevelInfo, logger.ParseLevel(""))
}
