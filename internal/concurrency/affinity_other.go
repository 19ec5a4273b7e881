//go:build !linux && !windows

// File: internal/concurrency/affinity_other.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Platforms without a per-thread affinity API.

package concurrency

import "github.com/momentics/concur/api"

const affinitySupported = false

var errInvalidArgument error = api.ErrInvalidArgument

func platformCurrentThreadID() api.ThreadID { return 0 }

func platformSetAffinity(api.ThreadID, uint) error { return api.ErrNotSupported }
