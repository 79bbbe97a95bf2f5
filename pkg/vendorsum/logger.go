package vendorsum

// Logger provides a pluggable logging interface for vendorsum operations.
// A Logger is created by the entry point and passed explicitly to every
// component; there is no process-wide logger.
type Logger interface {
	// Verbose logs detailed diagnostic information.
	// Only logged when verbose mode is enabled.
	Verbose(format string, args ...interface{})

	// Info logs informational messages about normal operations.
	Info(format string, args ...interface{})

	// Error logs error messages, including a stack trace where the
	// implementation supports it.
	Error(format string, args ...interface{})
}
