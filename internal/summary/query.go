package summary

import (
	"context"
	_ "embed"
	"fmt"

	"github.com/nipunchauhan/vendorsum/pkg/vendorsum"
)

// VendorSummarySQL is the aggregation query. Every identifier is quoted so
// the text runs unchanged on PostgreSQL and SQLite.
//
//go:embed vendor_summary.sql
var VendorSummarySQL string

// QueryColumns are the columns the aggregation query returns, in order.
var QueryColumns = []string{
	"VendorNumber",
	"VendorName",
	"Brand",
	"Description",
	"PurchasePrice",
	"Volume",
	"ActualPrice",
	"TotalPurchaseQuantity",
	"TotalPurchaseDollars",
	"TotalSalesQuantity",
	"TotalSalesDollars",
	"TotalSalesPrice",
	"TotalExciseTax",
	"FreightCost",
}

// Query runs the aggregation query. One row is returned per purchase
// rollup group, ordered by TotalPurchaseDollars descending; rows without
// matching sales or freight carry nulls in those columns.
func Query(ctx context.Context, store vendorsum.Store) (*vendorsum.Table, error) {
	t, err := store.Query(ctx, VendorSummarySQL)
	if err != nil {
		return nil, fmt.Errorf("%w: vendor summary: %w", vendorsum.ErrQueryFailed, err)
	}
	return t, nil
}
