// Package csvtable converts between comma-separated text and vendorsum.Table.
//
// Reading treats the first record as the header. Each column's kind is
// inferred from its cells: integers if every non-empty cell parses as a
// base-10 int64, else floats if every non-empty cell parses as a float64,
// else text. Empty cells are null. Duplicate header names get ".1", ".2"
// suffixes and blank header names become "Unnamed: <index>".
//
// Writing emits a header and one record per row with no index column.
// Values are rendered with vendorsum.FormatValue, so integral floats keep a
// trailing ".0" and re-read as floats.
package csvtable
