package csvtable

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/nipunchauhan/vendorsum/pkg/vendorsum"
)

const utf8BOM = "\ufeff"

// ReadOptions tunes Read.
type ReadOptions struct {
	// Kinds forces the kind of named columns instead of inferring it.
	// A cell that does not fit a forced numeric kind is a *vendorsum.TypeConversionError.
	Kinds map[string]vendorsum.Kind
}

// Read parses CSV from r into a table. An input without a header record
// is an error; a header with no data rows yields a zero-row table.
func Read(r io.Reader, opts ReadOptions) (*vendorsum.Table, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.ReuseRecord = true

	header, err := cr.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("csv input has no header row")
		}
		return nil, fmt.Errorf("failed to read csv header: %w", err)
	}
	names := headerNames(header)

	cells := make([][]string, len(names))
	present := make([][]bool, len(names))
	line := 1
	for {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read csv: %w", err)
		}
		line++
		if len(rec) > len(names) {
			return nil, fmt.Errorf("csv record %d has %d fields, header has %d", line, len(rec), len(names))
		}
		for c := range names {
			if c < len(rec) && rec[c] != "" {
				cells[c] = append(cells[c], rec[c])
				present[c] = append(present[c], true)
			} else {
				cells[c] = append(cells[c], "")
				present[c] = append(present[c], false)
			}
		}
	}

	t := vendorsum.NewTable()
	for c, name := range names {
		kind, forced := opts.Kinds[name]
		if !forced {
			kind = inferKind(cells[c], present[c])
		}
		values, err := convert(name, cells[c], present[c], kind)
		if err != nil {
			return nil, err
		}
		if err := t.AddColumn(name, kind, values); err != nil {
			return nil, err
		}
	}
	return t, nil
}

// headerNames strips a leading BOM and makes names unique.
func headerNames(header []string) []string {
	names := make([]string, len(header))
	used := make(map[string]bool, len(header))
	dups := make(map[string]int)
	for i, h := range header {
		if i == 0 {
			h = strings.TrimPrefix(h, utf8BOM)
		}
		if h == "" {
			h = "Unnamed: " + strconv.Itoa(i)
		}
		name := h
		for used[name] {
			dups[h]++
			name = h + "." + strconv.Itoa(dups[h])
		}
		used[name] = true
		names[i] = name
	}
	return names
}

func inferKind(cells []string, present []bool) vendorsum.Kind {
	kind := vendorsum.KindInt
	seen := false
	for i, s := range cells {
		if !present[i] {
			continue
		}
		seen = true
		if kind == vendorsum.KindInt {
			if _, ok := parseInt(s); ok {
				continue
			}
			kind = vendorsum.KindFloat
		}
		if _, ok := parseFloat(s); !ok {
			return vendorsum.KindText
		}
	}
	if !seen {
		return vendorsum.KindFloat
	}
	return kind
}

func convert(name string, cells []string, present []bool, kind vendorsum.Kind) ([]any, error) {
	values := make([]any, len(cells))
	for i, s := range cells {
		if !present[i] {
			continue
		}
		switch kind {
		case vendorsum.KindInt:
			n, ok := parseInt(s)
			if !ok {
				return nil, &vendorsum.TypeConversionError{Column: name, Row: i, Value: s}
			}
			values[i] = n
		case vendorsum.KindFloat:
			f, ok := parseFloat(s)
			if !ok {
				return nil, &vendorsum.TypeConversionError{Column: name, Row: i, Value: s}
			}
			values[i] = f
		default:
			values[i] = s
		}
	}
	return values, nil
}

func parseInt(s string) (int64, bool) {
	n, err := strconv.ParseInt(strings.TrimSpace(s), 10, 64)
	return n, err == nil
}

func parseFloat(s string) (float64, bool) {
	s = strings.TrimSpace(s)
	if strings.ContainsAny(s, "xX_") {
		return 0, false
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		var numErr *strconv.NumError
		if errors.As(err, &numErr) && errors.Is(numErr.Err, strconv.ErrRange) {
			return f, true
		}
		return 0, false
	}
	return f, true
}
