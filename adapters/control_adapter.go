// Package adapters
// Author: momentics <momentics@gmail.com>
//
// Control adapter implementing api.Control using control package primitives.

package adapters

import (
	"github.com/momentics/concur/api"
	"github.com/momentics/concur/control"
)

// ControlAdapter combines configuration, metrics and debug probes.
type ControlAdapter struct {
	config  *control.ConfigStore
	metrics *control.MetricsRegistry
	debug   *control.DebugProbes
}

var _ api.Control = (*ControlAdapter)(nil)

// NewControlAdapter wires the given primitives. metrics may be nil when
// metrics are disabled.
func NewControlAdapter(cfg *control.ConfigStore, metrics *control.MetricsRegistry, debug *control.DebugProbes) *ControlAdapter {
	return &ControlAdapter{
		config:  cfg,
		metrics: metrics,
		debug:   debug,
	}
}

// Reload re-reads the configuration file.
func (c *ControlAdapter) Reload() error {
	return c.config.Reload()
}

// Stats merges the metric snapshot with the debug probes, the latter under a
// "debug." prefix.
func (c *ControlAdapter) Stats() map[string]any {
	combined := make(map[string]any)
	if c.metrics != nil {
		if stats, err := c.metrics.GetSnapshot(); err == nil {
			for k, v := range stats {
				combined[k] = v
			}
		}
	}
	for k, v := range c.debug.DumpState() {
		combined["debug."+k] = v
	}
	return combined
}

// OnReload registers fn to run after each configuration change.
func (c *ControlAdapter) OnReload(fn func()) {
	c.config.OnReload(fn)
}

// RegisterDebugProbe adds a named probe.
func (c *ControlAdapter) RegisterDebugProbe(name string, fn func() any) {
	c.debug.RegisterProbe(name, fn)
}
