// control/logging.go
// Author: momentics <momentics@gmail.com>

package control

import (
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/momentics/concur/api"
)

// ParseLevel maps a configuration string to a slog level.
func ParseLevel(s string) (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(strings.TrimSpace(s))); err != nil {
		return 0, fmt.Errorf("%w: log_level %q", api.ErrInvalidConfig, s)
	}
	return level, nil
}

// NewLogger builds a logger writing to w in cfg's format. The returned
// LevelVar can be adjusted at runtime.
func NewLogger(cfg *Config, w io.Writer) (*slog.Logger, *slog.LevelVar, error) {
	level, err := ParseLevel(cfg.LogLevel)
	if err != nil {
		return nil, nil, err
	}
	lv := new(slog.LevelVar)
	lv.Set(level)

	opts := &slog.HandlerOptions{Level: lv}
	var h slog.Handler
	if cfg.LogFormat == "json" {
		h = slog.NewJSONHandler(w, opts)
	} else {
		h = slog.NewTextHandler(w, opts)
	}
	return slog.New(h), lv, nil
}

// TaskLogger adapts l to the pool's task failure callback.
func TaskLogger(l *slog.Logger) api.Logger {
	l = l.With("component", "pool")
	return func(msg string) {
		l.Error("task failed", "error", msg)
	}
}
