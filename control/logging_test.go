package control

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewLogger_JSON(t *testing.T) {
	cfg := DefaultConfig()
	cfg.LogFormat = "json"
	cfg.LogLevel = "warn"

	var buf bytes.Buffer
	l, lv, err := NewLogger(cfg, &buf)
	require.NoError(t, err)
	assert.Equal(t, slog.LevelWarn, lv.Level())

	l.Info("hidden")
	assert.Zero(t, buf.Len())

	TaskLogger(l)("boom")
	var rec map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &rec))
	assert.Equal(t, "task failed", rec["msg"])
	assert.Equal(t, "boom", rec["error"])
	assert.Equal(t, "pool", rec["component"])
}

func TestParseLevel(t *testing.T) {
	lvl, err := ParseLevel("ERROR")
	require.NoError(t, err)
	assert.Equal(t, slog.LevelError, lvl)

	_, err = ParseLevel("")
	assert.Error(t, err)
}
