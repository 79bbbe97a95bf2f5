package postgres

import (
	"math"

	"github.com/jackc/pgx/v5/pgtype"

	"github.com/nipunchauhan/vendorsum/pkg/vendorsum"
)

// normalizeValue maps pgx result values onto the table scalar set.
// SUM over integer columns yields numeric, which becomes int64 when integral
// and float64 otherwise.
func normalizeValue(v any) any {
	switch x := v.(type) {
	case pgtype.Numeric:
		return numericValue(x)
	case *pgtype.Numeric:
		if x == nil {
			return nil
		}
		return numericValue(*x)
	default:
		return vendorsum.NormalizeValue(v)
	}
}

func numericValue(n pgtype.Numeric) any {
	if !n.Valid {
		return nil
	}
	switch {
	case n.NaN:
		return math.NaN()
	case n.InfinityModifier == pgtype.Infinity:
		return math.Inf(1)
	case n.InfinityModifier == pgtype.NegativeInfinity:
		return math.Inf(-1)
	}
	if i, err := n.Int64Value(); err == nil && i.Valid {
		return i.Int64
	}
	f, err := n.Float64Value()
	if err != nil || !f.Valid {
		return nil
	}
	return f.Float64
}
