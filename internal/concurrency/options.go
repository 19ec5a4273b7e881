// File: internal/concurrency/options.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0

package concurrency

// Option configures a SimplePool at construction.
type Option func(*SimplePool)

// WithObserver installs o as the pool's event sink.
func WithObserver(o Observer) Option {
	return func(p *SimplePool) {
		if o != nil {
			p.observer = o
		}
	}
}

// WithCPUAffinity pins worker i to cpus[i%len(cpus)]. Each worker locks its
// goroutine to an OS thread for its whole life. An empty list disables pinning.
func WithCPUAffinity(cpus ...uint) Option {
	return func(p *SimplePool) {
		p.cpus = append([]uint(nil), cpus...)
	}
}
