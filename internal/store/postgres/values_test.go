package postgres

import (
	"math"
	"math/big"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgtype"
	"github.com/stretchr/testify/assert"
)

func TestNormalizeValue(t *testing.T) {
	assert.Equal(t, int64(600), normalizeValue(pgtype.Numeric{Int: big.NewInt(600), Valid: true}))
	assert.Equal(t, int64(1200), normalizeValue(pgtype.Numeric{Int: big.NewInt(12), Exp: 2, Valid: true}))
	assert.Equal(t, int64(5), normalizeValue(pgtype.Numeric{Int: big.NewInt(500), Exp: -2, Valid: true}))
	assert.Equal(t, 1.25, normalizeValue(pgtype.Numeric{Int: big.NewInt(125), Exp: -2, Valid: true}))
	assert.Nil(t, normalizeValue(pgtype.Numeric{}))
	assert.True(t, math.IsNaN(normalizeValue(pgtype.Numeric{NaN: true, Valid: true}).(float64)))
	assert.Equal(t, math.Inf(1), normalizeValue(pgtype.Numeric{InfinityModifier: pgtype.Infinity, Valid: true}))
	assert.Equal(t, math.Inf(-1), normalizeValue(pgtype.Numeric{InfinityModifier: pgtype.NegativeInfinity, Valid: true}))

	assert.Equal(t, int64(7), normalizeValue(int32(7)))
	assert.Equal(t, "x", normalizeValue("x"))
	assert.Nil(t, normalizeValue(nil))

	ts := time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)
	assert.Equal(t, "2024-01-02T03:04:05Z", normalizeValue(ts))
}
