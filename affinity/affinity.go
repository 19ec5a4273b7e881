// File: affinity/affinity.go
// Author: momentics <momentics@gmail.com>
//
// Platform-neutral API for CPU affinity. Linux and Windows bind single OS
// threads; on other platforms Supported reports false and SetAffinity returns
// api.ErrNotSupported.

package affinity

import (
	"github.com/momentics/concur/api"
	"github.com/momentics/concur/internal/concurrency"
)

// SetAffinity restricts thread tid to logical CPU cpu. It fails with the
// platform's invalid-argument errno when tid is not a thread id or cpu is not
// below HardwareConcurrency; otherwise the OS outcome is returned verbatim.
func SetAffinity(tid api.ThreadID, cpu uint) error {
	return concurrency.SetAffinity(tid, cpu)
}

// PinCurrentThread locks the calling goroutine to its OS thread and binds
// that thread to cpu. Call unpin to release the goroutine lock.
func PinCurrentThread(cpu uint) (unpin func(), err error) {
	return concurrency.PinCurrentThread(cpu)
}

// CurrentThread returns the id of the calling OS thread.
func CurrentThread() api.ThreadID {
	return concurrency.CurrentThreadID()
}

// HardwareConcurrency returns the number of logical CPUs available.
func HardwareConcurrency() int {
	return concurrency.HardwareConcurrency()
}

// Supported reports whether per-thread affinity exists on this platform.
func Supported() bool {
	return concurrency.AffinitySupported()
}

// IsInvalidArgument reports whether err is the invalid-argument outcome.
func IsInvalidArgument(err error) bool {
	return concurrency.IsInvalidArgument(err)
}
