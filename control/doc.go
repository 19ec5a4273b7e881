// Package control
// Author: momentics <momentics@gmail.com>
//
// Configuration, logging, metrics and debug introspection around the concur
// worker pool.
//
// Provides:
//   - YAML configuration with validation and reload listeners
//   - slog logger construction and the pool's task-failure logger
//   - Prometheus metrics fed by pool lifecycle events
//   - Debug probe registration and state export
package control
