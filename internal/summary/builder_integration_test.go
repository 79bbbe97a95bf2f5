package summary_test

import (
	"context"
	"math"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nipunchauhan/vendorsum/internal/files/filesystem"
	"github.com/nipunchauhan/vendorsum/internal/logging"
	"github.com/nipunchauhan/vendorsum/internal/store"
	"github.com/nipunchauhan/vendorsum/internal/summary"
	testhelpers "github.com/nipunchauhan/vendorsum/internal/testing"
	"github.com/nipunchauhan/vendorsum/pkg/vendorsum"
)

func TestRun_Postgres(t *testing.T) {
	conn := testhelpers.RequireTestDB(t)
	ctx := context.Background()
	storeCfg := vendorsum.StoreConfig{Backend: vendorsum.BackendPostgres, Connection: conn}

	s, err := store.Open(ctx, &storeCfg, logging.NewNullLogger())
	require.NoError(t, err)
	testhelpers.SeedInventory(t, s)
	require.NoError(t, s.Close())

	cfg := vendorsum.SummaryConfig{
		Store:        storeCfg,
		OutputPath:   filepath.Join(t.TempDir(), vendorsum.DefaultOutputCSV),
		SummaryTable: vendorsum.TableVendorSalesSummary,
	}
	b := summary.NewBuilder(store.NewOpener(logging.NewNullLogger()), filesystem.NewOSFileSystem(), logging.NewNullLogger())
	res, err := b.Run(ctx, cfg)
	require.NoError(t, err)
	assert.Equal(t, 4, res.Rows)

	s, err = store.Open(ctx, &storeCfg, logging.NewNullLogger())
	require.NoError(t, err)
	defer s.Close()

	out, err := s.Query(ctx, `SELECT * FROM "vendor_sales_summary" ORDER BY "TotalPurchaseDollars" DESC, "VendorNumber"`)
	require.NoError(t, err)
	require.Equal(t, 4, out.Len())
	assert.Equal(t, outputColumns(), out.ColumnNames())

	assert.Equal(t, []any{int64(1), int64(2), int64(3), int64(4)}, col(t, out, "VendorNumber"))
	assert.Equal(t, int64(10), col(t, out, "TotalPurchaseQuantity")[0])
	assert.Equal(t, 400.0, col(t, out, summary.ColGrossProfit)[0])
	assert.Equal(t, 40.0, col(t, out, summary.ColProfitMargin)[0])
	assert.Equal(t, 50.0, col(t, out, "FreightCost")[0])

	// PostgreSQL keeps non-finite doubles.
	assert.True(t, math.IsInf(col(t, out, summary.ColSalesToPurchaseRatio)[2].(float64), 1))
	assert.True(t, math.IsNaN(col(t, out, summary.ColSalesToPurchaseRatio)[3].(float64)))

	fromCSV, _ := (&env{cfg: cfg}).readCSV(t)
	assert.Equal(t, out.Len(), fromCSV.Len())
}
