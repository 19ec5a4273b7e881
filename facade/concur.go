// File: facade/concur.go
// Unified facade layer for the concur library.
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Concur aggregates the worker pool with its configuration, structured
// logging, Prometheus metrics, debug probes and CPU affinity behind a single
// type built from a control.Config.

package facade

import (
	"io"
	"log/slog"
	"os"
	"slices"

	"github.com/momentics/concur/adapters"
	"github.com/momentics/concur/api"
	"github.com/momentics/concur/control"
	"github.com/momentics/concur/internal/concurrency"
)

// Concur is the main facade type.
type Concur struct {
	config   *control.ConfigStore
	logger   *slog.Logger
	level    *slog.LevelVar
	metrics  *control.MetricsRegistry
	debug    *control.DebugProbes
	control  *adapters.ControlAdapter
	affinity *adapters.AffinityAdapter
	pool     *adapters.ExecutorAdapter
}

var _ api.TaskPool = (*Concur)(nil)

type options struct {
	logOutput  io.Writer
	configPath string
}

// Option customizes New.
type Option func(*options)

// WithLogOutput sends log records to w instead of os.Stderr.
func WithLogOutput(w io.Writer) Option {
	return func(o *options) { o.logOutput = w }
}

// WithConfigPath records the file cfg was loaded from so Reload can re-read it.
func WithConfigPath(path string) Option {
	return func(o *options) { o.configPath = path }
}

// New validates cfg and starts the pool. A nil cfg means DefaultConfig.
func New(cfg *control.Config, opts ...Option) (*Concur, error) {
	if cfg == nil {
		cfg = control.DefaultConfig()
	}
	o := options{logOutput: os.Stderr}
	for _, opt := range opts {
		opt(&o)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	logger, level, err := control.NewLogger(cfg, o.logOutput)
	if err != nil {
		return nil, err
	}
	c := &Concur{
		config:   control.NewConfigStore(cfg, o.configPath),
		logger:   logger,
		level:    level,
		debug:    control.NewDebugProbes(),
		affinity: adapters.NewAffinityAdapter(),
	}

	var observer concurrency.Observer = concurrency.NopObserver{}
	var poolMetrics *control.PoolMetrics
	if cfg.Metrics.Enabled {
		c.metrics = control.NewMetricsRegistry()
		poolMetrics, err = control.NewPoolMetrics(c.metrics, cfg.Metrics.Namespace)
		if err != nil {
			return nil, err
		}
		observer = poolMetrics
	}

	poolOpts := []concurrency.Option{
		concurrency.WithObserver(pinLogger{Observer: observer, logger: logger}),
	}
	if len(cfg.CPUs) > 0 {
		poolOpts = append(poolOpts, concurrency.WithCPUAffinity(cfg.CPUs...))
	}
	c.pool, err = adapters.NewExecutorAdapter(cfg.Workers, control.TaskLogger(logger), poolOpts...)
	if err != nil {
		return nil, err
	}

	if poolMetrics != nil {
		if err := poolMetrics.Attach(c.pool); err != nil {
			_ = c.pool.Shutdown()
			return nil, err
		}
	}
	if cfg.Debug {
		control.RegisterPlatformProbes(c.debug)
		control.RegisterPoolProbes(c.debug, c.pool)
	}
	c.control = adapters.NewControlAdapter(c.config, c.metrics, c.debug)
	c.control.OnReload(c.applyConfig(cfg.Clone()))

	logger.Info("pool started",
		"workers", c.pool.Size(),
		"cpus", cfg.CPUs,
		"affinity", c.affinity.Supported(),
		"metrics", cfg.Metrics.Enabled)
	return c, nil
}

// applyConfig returns the reload listener. Only the log level can change at
// runtime; worker count and pinning are fixed for the pool's life.
func (c *Concur) applyConfig(initial *control.Config) func() {
	return func() {
		next := c.config.GetSnapshot()
		if next.Workers != initial.Workers || !slices.Equal(next.CPUs, initial.CPUs) {
			c.logger.Warn("worker count and cpus are fixed; restart to apply",
				"workers", next.Workers, "cpus", next.CPUs)
		}
		if lvl, err := control.ParseLevel(next.LogLevel); err == nil {
			c.level.Set(lvl)
		}
		c.logger.Info("configuration reloaded", "log_level", next.LogLevel)
	}
}

// Submit schedules task on the pool.
func (c *Concur) Submit(task func()) error {
	return c.pool.Submit(task)
}

// Clear drops all queued tasks.
func (c *Concur) Clear() {
	c.pool.Clear()
}

// QueueSize returns the advisory number of queued tasks.
func (c *Concur) QueueSize() int {
	return c.pool.QueueSize()
}

// Size returns the number of workers.
func (c *Concur) Size() int {
	return c.pool.Size()
}

// Stats returns the pool counters.
func (c *Concur) Stats() map[string]int64 {
	return c.pool.Stats()
}

// Shutdown stops the pool. Queued tasks are abandoned and their number logged.
func (c *Concur) Shutdown() error {
	if err := c.pool.Shutdown(); err != nil {
		return err
	}
	c.logger.Info("pool stopped", "abandoned", c.pool.QueueSize())
	return nil
}

// Control returns the configuration and statistics interface.
func (c *Concur) Control() api.Control { return c.control }

// Debug returns the debug probe registry.
func (c *Concur) Debug() api.Debug { return c.debug }

// Affinity returns the CPU affinity binder.
func (c *Concur) Affinity() api.Affinity { return c.affinity }

// Metrics returns the metrics registry, nil when metrics are disabled.
func (c *Concur) Metrics() *control.MetricsRegistry { return c.metrics }

// Logger returns the facade's structured logger.
func (c *Concur) Logger() *slog.Logger { return c.logger }

// pinLogger logs worker pinning outcomes before forwarding them.
type pinLogger struct {
	concurrency.Observer
	logger *slog.Logger
}

func (p pinLogger) WorkerPinned(id int, cpu uint, err error) {
	if err != nil {
		p.logger.Warn("worker pinning failed", "worker", id, "cpu", cpu, "error", err)
	} else {
		p.logger.Debug("worker pinned", "worker", id, "cpu", cpu)
	}
	p.Observer.WorkerPinned(id, cpu, err)
}
