// File: adapters/affinity_adapter.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
// Description:
//   Adapter implementing the api.Affinity interface, delegating to
//   internal concurrency primitives for CPU pinning.

package adapters

import (
	"sync"

	"github.com/momentics/concur/api"
	"github.com/momentics/concur/internal/concurrency"
)

// AffinityAdapter implements api.Affinity and remembers the last successful
// binding for diagnostics.
type AffinityAdapter struct {
	mu         sync.Mutex
	currentTID api.ThreadID
	currentCPU int
}

var _ api.Affinity = (*AffinityAdapter)(nil)

// NewAffinityAdapter creates an adapter with no recorded binding.
func NewAffinityAdapter() *AffinityAdapter {
	return &AffinityAdapter{
		currentTID: -1,
		currentCPU: -1,
	}
}

// Bind restricts tid to cpu and returns the OS outcome unchanged.
func (a *AffinityAdapter) Bind(tid api.ThreadID, cpu uint) error {
	if err := concurrency.SetAffinity(tid, cpu); err != nil {
		return err
	}
	a.mu.Lock()
	a.currentTID = tid
	a.currentCPU = int(cpu)
	a.mu.Unlock()
	return nil
}

// Supported reports whether per-thread affinity exists on this platform.
func (a *AffinityAdapter) Supported() bool {
	return concurrency.AffinitySupported()
}

// Get returns the last successful binding.
func (a *AffinityAdapter) Get() (api.ThreadID, int) {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.currentTID, a.currentCPU
}
