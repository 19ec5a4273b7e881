// control/debug.go
// Author: momentics <momentics@gmail.com>
//
// Runtime debug probes for internal inspection.

package control

import (
	"sort"
	"sync"

	"github.com/momentics/concur/api"
	"github.com/momentics/concur/internal/concurrency"
)

// DebugProbes holds registered probe functions.
type DebugProbes struct {
	mu     sync.RWMutex
	probes map[string]func() any
}

var _ api.Debug = (*DebugProbes)(nil)

// NewDebugProbes creates a probe registry.
func NewDebugProbes() *DebugProbes {
	return &DebugProbes{
		probes: make(map[string]func() any),
	}
}

// RegisterProbe inserts a named debug hook, replacing any previous one.
func (dp *DebugProbes) RegisterProbe(name string, fn func() any) {
	dp.mu.Lock()
	defer dp.mu.Unlock()
	dp.probes[name] = fn
}

// Names returns the registered probe names in order.
func (dp *DebugProbes) Names() []string {
	dp.mu.RLock()
	defer dp.mu.RUnlock()
	names := make([]string, 0, len(dp.probes))
	for k := range dp.probes {
		names = append(names, k)
	}
	sort.Strings(names)
	return names
}

// DumpState returns output of all probes.
func (dp *DebugProbes) DumpState() map[string]any {
	dp.mu.RLock()
	defer dp.mu.RUnlock()
	out := make(map[string]any, len(dp.probes))
	for k, fn := range dp.probes {
		out[k] = fn()
	}
	return out
}

// RegisterPlatformProbes adds CPU and affinity capability probes.
func RegisterPlatformProbes(dp *DebugProbes) {
	dp.RegisterProbe("platform.cpus", func() any {
		return concurrency.HardwareConcurrency()
	})
	dp.RegisterProbe("platform.affinity", func() any {
		return concurrency.AffinitySupported()
	})
}

// PoolStatser is a task pool exposing counters.
type PoolStatser interface {
	api.TaskPool
	Stats() map[string]int64
}

// RegisterPoolProbes adds size, queue and counter probes for p.
func RegisterPoolProbes(dp *DebugProbes, p PoolStatser) {
	dp.RegisterProbe("pool.size", func() any { return p.Size() })
	dp.RegisterProbe("pool.queue_size", func() any { return p.QueueSize() })
	dp.RegisterProbe("pool.stats", func() any { return p.Stats() })
}
