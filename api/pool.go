// Package api
// Author: momentics <momentics@gmail.com>
//
// Task pool contract: fire-and-forget submission onto a fixed set of workers.

package api

// Logger receives a human-readable description of a task failure. It is
// called from worker goroutines and may be called concurrently with itself.
type Logger func(msg string)

// TaskPool executes submitted tasks on a fixed number of workers.
type TaskPool interface {
	// Submit enqueues task. No completion handle or result is returned.
	Submit(task func()) error

	// Clear discards every queued task that has not been dispatched yet.
	Clear()

	// QueueSize returns an advisory count of queued tasks.
	QueueSize() int

	// Size returns the fixed number of workers.
	Size() int

	GracefulShutdown
}
