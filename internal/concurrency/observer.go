// File: internal/concurrency/observer.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0

package concurrency

import "time"

// Observer receives pool lifecycle events. Implementations are called from
// submitting goroutines and from workers concurrently and must not block.
type Observer interface {
	// TaskSubmitted is called after a task has been queued, while the
	// queue lock is still held.
	TaskSubmitted()
	// TaskFinished is called after a dispatched task returned or failed.
	TaskFinished(d time.Duration, failed bool)
	// QueueCleared is called with the number of tasks dropped by Clear.
	QueueCleared(n int)
	// WorkerPinned reports the outcome of pinning worker id to cpu.
	WorkerPinned(id int, cpu uint, err error)
}

// NopObserver ignores every event.
type NopObserver struct{}

func (NopObserver) TaskSubmitted()                   {}
func (NopObserver) TaskFinished(time.Duration, bool) {}
func (NopObserver) QueueCleared(int)                 {}
func (NopObserver) WorkerPinned(int, uint, error)    {}
