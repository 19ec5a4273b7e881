//go:build windows

// File: internal/concurrency/affinity_windows.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Windows affinity via SetThreadAffinityMask. Only the first processor group
// (64 logical CPUs) is addressable.

package concurrency

import (
	"github.com/momentics/concur/api"
	"golang.org/x/sys/windows"
)

const affinitySupported = true

const (
	threadSetInformation   = 0x0020
	threadQueryInformation = 0x0040
)

var (
	modkernel32               = windows.NewLazySystemDLL("kernel32.dll")
	procSetThreadAffinityMask = modkernel32.NewProc("SetThreadAffinityMask")
)

var errInvalidArgument error = windows.ERROR_INVALID_PARAMETER

func platformCurrentThreadID() api.ThreadID {
	return api.ThreadID(windows.GetCurrentThreadId())
}

func platformSetAffinity(tid api.ThreadID, cpu uint) error {
	if cpu >= 64 {
		return errInvalidArgument
	}
	h, err := windows.OpenThread(threadSetInformation|threadQueryInformation, false, uint32(tid))
	if err != nil {
		return err
	}
	defer windows.CloseHandle(h)

	old, _, callErr := procSetThreadAffinityMask.Call(uintptr(h), uintptr(1)<<cpu)
	if old == 0 {
		return callErr
	}
	return nil
}
