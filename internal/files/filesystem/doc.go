// Package filesystem provides filesystem abstraction interfaces and implementations.
//
// The loader reads seed files through it and the summary's file sink writes
// through it, which lets both run against an in-memory tree in tests.
//
// Implementations:
//   - OSFileSystem: Production implementation using the OS filesystem
//   - MemoryFileSystem: In-memory implementation for testing
package filesystem
