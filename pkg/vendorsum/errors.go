package vendorsum

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors for common failure scenarios.
// These enable callers to distinguish error types using errors.Is().
//
// Example usage:
//
//	res, err := builder.Run(ctx, cfg)
//	if errors.Is(err, vendorsum.ErrMissingTable) {
//	    // run `vendorsum ingest` first
//	}
var (
	// ErrInvalidConfig indicates the provided configuration is invalid.
	ErrInvalidConfig = errors.New("invalid configuration")

	// ErrConnectionFailed indicates the store could not be opened or reached.
	ErrConnectionFailed = errors.New("connection failed")

	// ErrUnsupportedAuthMethod indicates the requested authentication method is not supported.
	ErrUnsupportedAuthMethod = errors.New("unsupported authentication method")

	// ErrUnsupportedBackend indicates an unknown store backend name.
	ErrUnsupportedBackend = errors.New("unsupported store backend")

	// ErrTableNotFound is returned by Store.TableColumns for an absent table.
	ErrTableNotFound = errors.New("table not found")

	// ErrTableExists is returned by Store.WriteTable under IfExistsFail.
	ErrTableExists = errors.New("table already exists")

	// ErrMissingTable indicates a required input table or column is absent.
	ErrMissingTable = errors.New("missing required table")

	// ErrMissingColumn indicates a stage was handed a table without a column it needs.
	ErrMissingColumn = errors.New("missing column")

	// ErrTypeConversion indicates a value could not be coerced to the requested type.
	ErrTypeConversion = errors.New("type conversion failed")

	// ErrQueryFailed indicates the aggregation query failed in the store engine.
	ErrQueryFailed = errors.New("query failed")

	// ErrSinkWrite indicates the CSV file or the store table could not be written.
	ErrSinkWrite = errors.New("sink write failed")

	// ErrIngestFailed indicates the loader stopped before every file was ingested.
	ErrIngestFailed = errors.New("ingestion failed")
)

// MissingTableError reports a required input table that is absent from the
// store, or present without some of the columns the summary query reads.
type MissingTableError struct {
	Table   string
	Columns []string // empty when the whole table is missing
}

func (e *MissingTableError) Error() string {
	if len(e.Columns) == 0 {
		return fmt.Sprintf("required table %q not found in store (run `vendorsum ingest` first)", e.Table)
	}
	return fmt.Sprintf("table %q is missing required column(s): %s", e.Table, strings.Join(e.Columns, ", "))
}

func (e *MissingTableError) Unwrap() error { return ErrMissingTable }

// TypeConversionError reports the first value of a column that could not be
// coerced. Row is zero-based.
type TypeConversionError struct {
	Column string
	Row    int
	Value  any
}

func (e *TypeConversionError) Error() string {
	return fmt.Sprintf("cannot convert %s value %#v at row %d to float", e.Column, e.Value, e.Row)
}

func (e *TypeConversionError) Unwrap() error { return ErrTypeConversion }

// Sink names used in SinkWriteError.
const (
	SinkCSV   = "csv"
	SinkStore = "store"
)

// SinkWriteError wraps a failure of one output sink.
type SinkWriteError struct {
	Sink   string
	Target string
	Err    error
}

func (e *SinkWriteError) Error() string {
	return fmt.Sprintf("failed to write %s sink %s: %v", e.Sink, e.Target, e.Err)
}

// Unwrap exposes both the sentinel and the underlying cause to errors.Is/As.
func (e *SinkWriteError) Unwrap() []error { return []error{ErrSinkWrite, e.Err} }

// ExitCodeForError returns the appropriate exit code for an error.
// Returns ExitSuccess (0) for nil errors, semantic codes for known errors,
// and ExitGeneralError (1) for unclassified errors.
func ExitCodeForError(err error) int {
	if err == nil {
		return ExitSuccess
	}

	// Sink failures win over their cause, including a lost connection.
	switch {
	case errors.Is(err, ErrSinkWrite):
		return ExitSinkWriteFailed
	case errors.Is(err, ErrInvalidConfig),
		errors.Is(err, ErrUnsupportedAuthMethod),
		errors.Is(err, ErrUnsupportedBackend):
		return ExitConfigError
	case errors.Is(err, ErrConnectionFailed):
		return ExitConnectionError
	case errors.Is(err, ErrMissingTable):
		return ExitMissingTable
	case errors.Is(err, ErrTypeConversion):
		return ExitTypeConversion
	case errors.Is(err, ErrQueryFailed):
		return ExitQueryFailed
	case errors.Is(err, ErrIngestFailed):
		return ExitIngestIncomplete
	}

	errStr := err.Error()
	if isUsageError(errStr) {
		return ExitUsageError
	}

	// Check for common connection error patterns
	if strings.Contains(errStr, "failed to connect") ||
		strings.Contains(errStr, "connection refused") ||
		strings.Contains(errStr, "no such host") {
		return ExitConnectionError
	}

	return ExitGeneralError
}

// isUsageError recognises the error texts cobra and pflag produce for bad invocations.
func isUsageError(msg string) bool {
	for _, prefix := range []string{
		"unknown flag",
		"unknown shorthand flag",
		"unknown command",
		"accepts ",
		"requires at least",
		"requires at most",
		"required flag",
		"invalid argument",
		"flag needs an argument",
	} {
		if strings.HasPrefix(msg, prefix) {
			return true
		}
	}
	return false
}
