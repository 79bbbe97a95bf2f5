package vendorsum_test

import (
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nipunchauhan/vendorsum/pkg/vendorsum"
)

func TestInferKind(t *testing.T) {
	tests := []struct {
		name   string
		values []any
		want   vendorsum.Kind
	}{
		{"ints", []any{int64(1), nil, int64(3)}, vendorsum.KindInt},
		{"ints and floats", []any{int64(1), 2.5}, vendorsum.KindFloat},
		{"floats then ints", []any{2.5, int64(1)}, vendorsum.KindFloat},
		{"text wins", []any{int64(1), "x", 2.5}, vendorsum.KindText},
		{"all null", []any{nil, nil}, vendorsum.KindFloat},
		{"empty", nil, vendorsum.KindFloat},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, vendorsum.InferKind(tt.values))
		})
	}
}

func TestNewTableFromRows(t *testing.T) {
	tbl, err := vendorsum.NewTableFromRows(
		[]string{"id", "price", "name"},
		[][]any{
			{int32(1), 1.5, []byte("a")},
			{int64(2), int64(3), nil},
		},
	)
	require.NoError(t, err)

	assert.Equal(t, 2, tbl.Len())
	assert.Equal(t, 3, tbl.Width())
	assert.Equal(t, []string{"id", "price", "name"}, tbl.ColumnNames())

	id, _ := tbl.Column("id")
	price, _ := tbl.Column("price")
	name, _ := tbl.Column("name")
	assert.Equal(t, vendorsum.KindInt, id.Kind)
	assert.Equal(t, vendorsum.KindFloat, price.Kind)
	assert.Equal(t, vendorsum.KindText, name.Kind)

	if diff := cmp.Diff([]any{1.5, 3.0}, price.Values); diff != "" {
		t.Errorf("price values mismatch (-want +got):\n%s", diff)
	}
	assert.Equal(t, []any{"a", nil}, name.Values)
}

func TestNewTableFromRows_RaggedRow(t *testing.T) {
	_, err := vendorsum.NewTableFromRows([]string{"a", "b"}, [][]any{{int64(1)}})
	assert.Error(t, err)
}

func TestTable_AddColumnReplacesInPlace(t *testing.T) {
	tbl := vendorsum.NewTable()
	require.NoError(t, tbl.AddColumn("a", vendorsum.KindInt, []any{int64(1), int64(2)}))
	require.NoError(t, tbl.AddColumn("b", vendorsum.KindInt, []any{int64(3), int64(4)}))
	require.NoError(t, tbl.AddColumn("a", vendorsum.KindFloat, []any{int64(5), nil}))

	assert.Equal(t, []string{"a", "b"}, tbl.ColumnNames())
	a, _ := tbl.Column("a")
	assert.Equal(t, []any{5.0, nil}, a.Values)

	assert.Error(t, tbl.AddColumn("c", vendorsum.KindInt, []any{int64(1)}), "length mismatch must fail")
}

func TestColumn_ToFloat(t *testing.T) {
	col := &vendorsum.Column{Name: "Volume", Kind: vendorsum.KindText, Values: []any{"750", " 1.5 ", nil, int64(2)}}
	require.NoError(t, col.ToFloat())
	assert.Equal(t, vendorsum.KindFloat, col.Kind)
	assert.Equal(t, []any{750.0, 1.5, nil, 2.0}, col.Values)
}

func TestColumn_ToFloat_OutOfRange(t *testing.T) {
	col := &vendorsum.Column{Name: "Volume", Kind: vendorsum.KindText, Values: []any{"1e400", "-1e400", "1e-400"}}
	require.NoError(t, col.ToFloat())
	assert.True(t, math.IsInf(col.Values[0].(float64), 1))
	assert.True(t, math.IsInf(col.Values[1].(float64), -1))
	assert.Equal(t, 0.0, col.Values[2])
}

func TestColumn_ToFloat_NonNumeric(t *testing.T) {
	col := &vendorsum.Column{Name: "Volume", Kind: vendorsum.KindText, Values: []any{"750", "Unknown"}}
	err := col.ToFloat()

	var convErr *vendorsum.TypeConversionError
	require.ErrorAs(t, err, &convErr)
	assert.ErrorIs(t, err, vendorsum.ErrTypeConversion)
	assert.Equal(t, 1, convErr.Row)
	assert.Equal(t, "Unknown", convErr.Value)
	assert.Equal(t, []any{"750", "Unknown"}, col.Values, "column must be untouched on failure")
}

func TestColumn_FillNull(t *testing.T) {
	ints := &vendorsum.Column{Kind: vendorsum.KindInt, Values: []any{nil, int64(1)}}
	floats := &vendorsum.Column{Kind: vendorsum.KindFloat, Values: []any{nil}}
	texts := &vendorsum.Column{Kind: vendorsum.KindText, Values: []any{nil, "x"}}

	ints.FillNull()
	floats.FillNull()
	texts.FillNull()

	assert.Equal(t, []any{int64(0), int64(1)}, ints.Values)
	assert.Equal(t, []any{0.0}, floats.Values)
	assert.Equal(t, []any{"0", "x"}, texts.Values)
}

func TestColumn_Float(t *testing.T) {
	col := &vendorsum.Column{Values: []any{int64(2), 2.5, "3", nil, "x"}}
	assert.Equal(t, 2.0, col.Float(0))
	assert.Equal(t, 2.5, col.Float(1))
	assert.Equal(t, 3.0, col.Float(2))
	assert.True(t, math.IsNaN(col.Float(3)))
	assert.True(t, math.IsNaN(col.Float(4)))
}

func TestFormatValue(t *testing.T) {
	tests := []struct {
		in   any
		want string
	}{
		{nil, ""},
		{"abc", "abc"},
		{int64(-7), "-7"},
		{750.0, "750.0"},
		{1.6666666666666667, "1.6666666666666667"},
		{1e21, "1000000000000000000000.0"},
		{math.Inf(1), "inf"},
		{math.Inf(-1), "-inf"},
		{math.NaN(), "NaN"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, vendorsum.FormatValue(tt.in))
	}
}

func TestTable_CloneIsIndependent(t *testing.T) {
	tbl, err := vendorsum.NewTableFromRows([]string{"a"}, [][]any{{"x "}})
	require.NoError(t, err)

	clone := tbl.Clone()
	c, _ := clone.Column("a")
	c.TrimSpace()

	orig, _ := tbl.Column("a")
	assert.Equal(t, "x ", orig.Values[0])
	assert.Equal(t, "x", c.Values[0])
}
