// Package logging provides concrete implementations of the vendorsum.Logger interface.
//
// Available implementations:
//   - FileLogger: zap-backed logger that appends timestamped lines to a
//     per-entry-point log file and mirrors them to the console
//   - NullLogger: Discards all messages (useful for testing)
//
// Loggers are created explicitly by the entry point and passed to the
// components that use them; nothing in this package registers global state.
// All logger implementations are safe for concurrent use by multiple goroutines.
package logging
