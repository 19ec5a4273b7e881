// control/config.go
// Author: momentics <momentics@gmail.com>
//
// Pool configuration, YAML loading and a store with reload listeners.

package control

import (
	"fmt"
	"os"
	"runtime"
	"sync"

	"github.com/momentics/concur/api"
	"gopkg.in/yaml.v3"
)

// MetricsConfig controls Prometheus instrumentation.
type MetricsConfig struct {
	Enabled   bool   `yaml:"enabled"`
	Namespace string `yaml:"namespace"`
}

// Config holds the parameters of one pool instance.
type Config struct {
	Workers   int           `yaml:"workers"`    // number of workers, fixed for the pool's life
	CPUs      []uint        `yaml:"cpus"`       // worker i is pinned to CPUs[i%len]; empty disables pinning
	LogLevel  string        `yaml:"log_level"`  // debug, info, warn, error
	LogFormat string        `yaml:"log_format"` // text or json
	Metrics   MetricsConfig `yaml:"metrics"`
	Debug     bool          `yaml:"debug"` // register debug probes
}

// DefaultConfig returns one worker per logical CPU, info-level text logging
// and metrics enabled.
func DefaultConfig() *Config {
	return &Config{
		Workers:   runtime.NumCPU(),
		LogLevel:  "info",
		LogFormat: "text",
		Metrics: MetricsConfig{
			Enabled:   true,
			Namespace: "concur",
		},
		Debug: true,
	}
}

// ParseConfig decodes YAML over DefaultConfig and validates the result.
func ParseConfig(data []byte) (*Config, error) {
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("%w: %v", api.ErrInvalidConfig, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadConfig reads and parses the YAML file at path.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}
	return ParseConfig(data)
}

// Validate checks field values. The worker count is checked by the pool
// itself.
func (c *Config) Validate() error {
	if _, err := ParseLevel(c.LogLevel); err != nil {
		return err
	}
	switch c.LogFormat {
	case "text", "json":
	default:
		return fmt.Errorf("%w: log_format %q", api.ErrInvalidConfig, c.LogFormat)
	}
	if c.Metrics.Enabled && c.Metrics.Namespace == "" {
		return fmt.Errorf("%w: metrics.namespace is required when metrics are enabled", api.ErrInvalidConfig)
	}
	return nil
}

// Clone returns a deep copy.
func (c *Config) Clone() *Config {
	out := *c
	out.CPUs = append([]uint(nil), c.CPUs...)
	return &out
}

// ConfigStore holds the active configuration and notifies listeners when it
// is replaced.
type ConfigStore struct {
	mu        sync.RWMutex
	config    *Config
	path      string
	listeners []func()
}

// NewConfigStore wraps cfg. path may be empty when cfg was not read from a file.
func NewConfigStore(cfg *Config, path string) *ConfigStore {
	return &ConfigStore{
		config: cfg.Clone(),
		path:   path,
	}
}

// GetSnapshot returns a copy of the active configuration.
func (cs *ConfigStore) GetSnapshot() *Config {
	cs.mu.RLock()
	defer cs.mu.RUnlock()
	return cs.config.Clone()
}

// SetConfig validates cfg, installs it and runs the reload listeners.
func (cs *ConfigStore) SetConfig(cfg *Config) error {
	if err := cfg.Validate(); err != nil {
		return err
	}
	cs.mu.Lock()
	cs.config = cfg.Clone()
	listeners := append([]func(){}, cs.listeners...)
	cs.mu.Unlock()

	for _, fn := range listeners {
		fn()
	}
	return nil
}

// Reload re-reads the file the store was created from.
func (cs *ConfigStore) Reload() error {
	cs.mu.RLock()
	path := cs.path
	cs.mu.RUnlock()
	if path == "" {
		return fmt.Errorf("%w: store has no backing file", api.ErrNotSupported)
	}
	cfg, err := LoadConfig(path)
	if err != nil {
		return err
	}
	return cs.SetConfig(cfg)
}

// OnReload registers a listener called synchronously after each update.
func (cs *ConfigStore) OnReload(fn func()) {
	cs.mu.Lock()
	defer cs.mu.Unlock()
	cs.listeners = append(cs.listeners, fn)
}
