// File: internal/concurrency/doc.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Concurrency primitives for concur: a fixed-size FIFO worker pool with
// per-task panic containment, and per-thread CPU affinity for Linux and
// Windows. Other platforms report affinity as unsupported at runtime.
package concurrency
