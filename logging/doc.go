// Package logging provides a minimal logging interface and adapters for the
// OpenCrabs A2A gateway.
//
// The Logger interface defines the standard logging methods (Debug, Info,
// Warn, Error) used across the registry, dispatcher and debate engine. This
// package includes:
//
//   - Logger interface for dependency injection
//   - SlogAdapter wrapping Go's structured logging
//   - NoOpLogger for silent operation (testing, minimal setups)
//
// Usage:
//
//	logger := logging.NewSlogLogger(logging.LogLevelInfo, "json", false)
//	registry := task.NewRegistry(func(o *task.Options) { o.Logger = logger })
//
// The design intentionally keeps the interface minimal to avoid vendor
// lock-in while supporting structured logging where available.
package logging
