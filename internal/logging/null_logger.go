package logging

import "github.com/nipunchauhan/vendorsum/pkg/vendorsum"

var _ vendorsum.Logger = (*NullLogger)(nil)

// NullLogger discards every message. The tables command uses it because a
// read-only listing writes no log file, and store connections opened there
// would otherwise report connects and server notices nobody reads. Tests use
// it where log output is not under test.
type NullLogger struct{}

// NewNullLogger returns a NullLogger.
func NewNullLogger() *NullLogger {
	return &NullLogger{}
}

func (*NullLogger) Verbose(string, ...interface{}) {}
func (*NullLogger) Info(string, ...interface{})    {}
func (*NullLogger) Error(string, ...interface{})   {}
