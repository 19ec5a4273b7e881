// Package api
// Author: momentics@gmail.com
//
// CPU affinity and thread pinning definitions.

package api

// ThreadID identifies an OS thread. Values <= 0 are invalid.
type ThreadID int

// Affinity restricts OS threads to a single logical CPU.
type Affinity interface {
	// Bind restricts tid to cpu. The OS outcome is returned verbatim.
	Bind(tid ThreadID, cpu uint) error
	// Supported reports whether per-thread affinity exists on this platform.
	Supported() bool
	// Get returns the last successful binding, -1 values when none.
	Get() (tid ThreadID, cpu int)
}
