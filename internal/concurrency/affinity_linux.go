//go:build linux

// File: internal/concurrency/affinity_linux.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Linux affinity via sched_setaffinity(2).

package concurrency

import (
	"github.com/momentics/concur/api"
	"golang.org/x/sys/unix"
)

const affinitySupported = true

var errInvalidArgument error = unix.EINVAL

func platformCurrentThreadID() api.ThreadID {
	return api.ThreadID(unix.Gettid())
}

func platformSetAffinity(tid api.ThreadID, cpu uint) error {
	var set unix.CPUSet
	set.Zero()
	set.Set(int(cpu))
	return unix.SchedSetaffinity(int(tid), &set)
}
