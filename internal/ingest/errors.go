package ingest

import (
	"fmt"
	"strings"

	"github.com/nipunchauhan/vendorsum/pkg/vendorsum"
)

// PartialError reports a loader run that stopped at File. Committed lists
// the tables written before the failure, in load order.
type PartialError struct {
	File      string
	Table     string
	Committed []string
	Err       error
}

func (e *PartialError) Error() string {
	committed := "none"
	if len(e.Committed) > 0 {
		committed = strings.Join(e.Committed, ", ")
	}
	return fmt.Sprintf("ingestion stopped at %s (table %s); committed tables: %s: %v",
		e.File, e.Table, committed, e.Err)
}

// Unwrap exposes both ErrIngestFailed and the underlying cause.
func (e *PartialError) Unwrap() []error { return []error{vendorsum.ErrIngestFailed, e.Err} }
