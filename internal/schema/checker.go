package schema

import (
	"context"
	"errors"
	"fmt"

	"github.com/nipunchauhan/vendorsum/pkg/vendorsum"
)

// Checker verifies that a store satisfies a list of table requirements.
type Checker struct {
	logger vendorsum.Logger
}

// NewChecker creates a Checker. logger must not be nil.
func NewChecker(logger vendorsum.Logger) *Checker {
	if logger == nil {
		panic("logger cannot be nil")
	}
	return &Checker{logger: logger}
}

// Check stops at the first requirement the store does not meet and returns
// a *vendorsum.MissingTableError for it. Column names match exactly.
// Store errors other than ErrTableNotFound are returned wrapped.
func (c *Checker) Check(ctx context.Context, store vendorsum.Store, reqs []TableRequirement) error {
	for _, req := range reqs {
		cols, err := store.TableColumns(ctx, req.Table)
		if errors.Is(err, vendorsum.ErrTableNotFound) {
			return &vendorsum.MissingTableError{Table: req.Table}
		}
		if err != nil {
			return fmt.Errorf("failed to inspect table %s: %w", req.Table, err)
		}

		if missing := missingColumns(cols, req.Columns); len(missing) > 0 {
			return &vendorsum.MissingTableError{Table: req.Table, Columns: missing}
		}
		c.logger.Verbose("Table %s present with %d column(s)", req.Table, len(cols))
	}
	return nil
}

func missingColumns(have, want []string) []string {
	present := make(map[string]struct{}, len(have))
	for _, name := range have {
		present[name] = struct{}{}
	}
	var missing []string
	for _, name := range want {
		if _, ok := present[name]; !ok {
			missing = append(missing, name)
		}
	}
	return missing
}
