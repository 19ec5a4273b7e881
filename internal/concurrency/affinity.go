// File: internal/concurrency/affinity.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Cross-platform CPU affinity management with runtime detection.

package concurrency

import (
	"errors"
	"runtime"

	"github.com/momentics/concur/api"
)

// HardwareConcurrency returns the number of logical CPUs usable by the process.
func HardwareConcurrency() int {
	return runtime.NumCPU()
}

// AffinitySupported reports whether per-thread CPU affinity is available.
func AffinitySupported() bool {
	return affinitySupported
}

// CurrentThreadID returns the OS id of the calling thread, or 0 where the
// platform has no per-thread affinity. Callers that intend to pin the
// returned thread must hold runtime.LockOSThread.
func CurrentThreadID() api.ThreadID {
	return platformCurrentThreadID()
}

// SetAffinity restricts the scheduling of thread tid to logical CPU cpu.
// An invalid tid or a cpu outside [0, HardwareConcurrency()) yields the
// platform's invalid-argument errno without reaching the OS. Otherwise the
// result of the OS call is returned unchanged; nil means success.
func SetAffinity(tid api.ThreadID, cpu uint) error {
	if !affinitySupported {
		return api.ErrNotSupported
	}
	if tid <= 0 || cpu >= uint(HardwareConcurrency()) {
		return errInvalidArgument
	}
	return platformSetAffinity(tid, cpu)
}

// PinCurrentThread locks the calling goroutine to its OS thread and binds the
// thread to cpu. The returned unpin func releases the lock; the thread keeps
// its mask. On error the lock is already released.
func PinCurrentThread(cpu uint) (unpin func(), err error) {
	runtime.LockOSThread()
	if err := SetAffinity(CurrentThreadID(), cpu); err != nil {
		runtime.UnlockOSThread()
		return func() {}, err
	}
	return runtime.UnlockOSThread, nil
}

// IsInvalidArgument reports whether err is the invalid-argument outcome of
// SetAffinity.
func IsInvalidArgument(err error) bool {
	return errors.Is(err, errInvalidArgument)
}
