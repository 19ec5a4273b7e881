// File: adapters/executor_adapter.go
// Package adapters provides glue between internal concurrency and the api contracts.
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// ExecutorAdapter implements api.TaskPool by delegating to the internal
// concurrency.SimplePool.

package adapters

import (
	"github.com/momentics/concur/api"
	"github.com/momentics/concur/internal/concurrency"
)

// ExecutorAdapter wraps a concurrency.SimplePool to satisfy api.TaskPool.
type ExecutorAdapter struct {
	pool *concurrency.SimplePool
}

var _ api.TaskPool = (*ExecutorAdapter)(nil)

// NewExecutorAdapter starts a pool of the given number of workers. Task
// failures are reported to logger, which may be nil.
func NewExecutorAdapter(workers int, logger api.Logger, opts ...concurrency.Option) (*ExecutorAdapter, error) {
	p, err := concurrency.NewSimplePool(workers, logger, opts...)
	if err != nil {
		return nil, err
	}
	return &ExecutorAdapter{pool: p}, nil
}

// Submit dispatches a task to be executed asynchronously.
func (ea *ExecutorAdapter) Submit(task func()) error {
	return ea.pool.Submit(task)
}

// Clear drops all queued tasks.
func (ea *ExecutorAdapter) Clear() {
	ea.pool.Clear()
}

// QueueSize returns the advisory number of queued tasks.
func (ea *ExecutorAdapter) QueueSize() int {
	return ea.pool.QueueSize()
}

// Size returns the number of workers.
func (ea *ExecutorAdapter) Size() int {
	return ea.pool.Size()
}

// Stats returns the pool counters.
func (ea *ExecutorAdapter) Stats() map[string]int64 {
	return ea.pool.Stats()
}

// Shutdown stops the workers, abandoning queued tasks.
func (ea *ExecutorAdapter) Shutdown() error {
	return ea.pool.Shutdown()
}
