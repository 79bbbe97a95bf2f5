package csvtable

import (
	"encoding/csv"
	"fmt"
	"io"

	"github.com/nipunchauhan/vendorsum/pkg/vendorsum"
)

// Write renders t as CSV with a header row.
func Write(w io.Writer, t *vendorsum.Table) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(t.ColumnNames()); err != nil {
		return fmt.Errorf("failed to write csv header: %w", err)
	}

	cols := t.Columns()
	rec := make([]string, len(cols))
	for r := 0; r < t.Len(); r++ {
		for c, col := range cols {
			rec[c] = vendorsum.FormatValue(col.Values[r])
		}
		if err := cw.Write(rec); err != nil {
			return fmt.Errorf("failed to write csv row %d: %w", r, err)
		}
	}

	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("failed to flush csv: %w", err)
	}
	return nil
}
