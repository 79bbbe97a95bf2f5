package testing

import (
	"context"
	"testing"

	"github.com/nipunchauhan/vendorsum/pkg/vendorsum"
)

// InventoryTables returns the four raw input tables of a small inventory:
//
//   - vendor 1 / brand 101: purchase qty 10 for 600.0, sales qty 8 for 1000.0,
//     freight 50.0. Names carry stray whitespace.
//   - vendor 2 / brand 202: purchased, never sold, no invoice.
//   - vendor 2 / brand 303: PurchasePrice 0, excluded from the rollup.
//   - vendor 3 / brand 404: purchase dollars 0 with sales, giving +Inf ratios.
//   - vendor 4 / brand 505: nothing purchased or sold, giving NaN ratios.
//   - vendor 9 / brand 999: sales only, never purchased.
func InventoryTables(t *testing.T) map[string]*vendorsum.Table {
	t.Helper()

	return map[string]*vendorsum.Table{
		vendorsum.TablePurchases: mustTable(t,
			[]string{"VendorNumber", "VendorName", "Brand", "Description", "PurchasePrice", "Quantity", "Dollars"},
			[][]any{
				{1, "ACME SPIRITS  ", 101, " Gin 750ml ", 60.0, 6, 360.0},
				{1, "ACME SPIRITS  ", 101, " Gin 750ml ", 60.0, 4, 240.0},
				{2, "BETA WINES", 202, "Red Blend", 10.0, 5, 50.0},
				{2, "BETA WINES", 303, "Free Sample", 0.0, 2, 0.0},
				{3, "ZERO CO", 404, "Promo Pack", 5.0, 0, 0.0},
				{4, "NULL CO", 505, "Empty Case", 1.0, 0, 0.0},
			}),
		vendorsum.TablePurchasePrices: mustTable(t,
			[]string{"Brand", "Description", "Price", "Volume"},
			[][]any{
				{101, "Gin 750ml", 14.99, "750"},
				{202, "Red Blend", 9.99, "750"},
				{303, "Free Sample", 0.0, "50"},
				{404, "Promo Pack", 7.5, "1000"},
				{505, "Empty Case", 2.0, nil},
			}),
		vendorsum.TableSales: mustTable(t,
			[]string{"VendorNo", "Brand", "SalesDollars", "SalesQuantity", "SalesPrice", "ExciseTax"},
			[][]any{
				{1, 101, 600.0, 5, 14.99, 0.5},
				{1, 101, 400.0, 3, 14.99, 0.3},
				{3, 404, 30.0, 3, 10.0, 0.1},
				{9, 999, 5.0, 1, 5.0, 0.05},
			}),
		vendorsum.TableVendorInvoice: mustTable(t,
			[]string{"VendorNumber", "VendorName", "Quantity", "Dollars", "Freight"},
			[][]any{
				{1, "ACME SPIRITS", 6, 360.0, 20.0},
				{1, "ACME SPIRITS", 4, 240.0, 30.0},
				{3, "ZERO CO", 0, 0.0, 1.25},
			}),
	}
}

// SeedInventory writes InventoryTables into store, replacing existing tables.
func SeedInventory(t *testing.T, store vendorsum.Store) {
	t.Helper()

	ctx := context.Background()
	for name, tbl := range InventoryTables(t) {
		if err := store.WriteTable(ctx, name, tbl, vendorsum.IfExistsReplace); err != nil {
			t.Fatalf("Failed to seed %s: %v", name, err)
		}
	}
}

func mustTable(t *testing.T, names []string, rows [][]any) *vendorsum.Table {
	t.Helper()

	tbl, err := vendorsum.NewTableFromRows(names, rows)
	if err != nil {
		t.Fatalf("Failed to build fixture table: %v", err)
	}
	return tbl
}
