package schema

import "github.com/nipunchauhan/vendorsum/pkg/vendorsum"

// TableRequirement names a table and the columns a consumer reads from it.
type TableRequirement struct {
	Table   string
	Columns []string
}

// SummaryInputs are the tables and columns read by the vendor summary query.
var SummaryInputs = []TableRequirement{
	{
		Table:   vendorsum.TableVendorInvoice,
		Columns: []string{"VendorNumber", "Freight"},
	},
	{
		Table:   vendorsum.TablePurchases,
		Columns: []string{"VendorNumber", "VendorName", "Brand", "Description", "PurchasePrice", "Quantity", "Dollars"},
	},
	{
		Table:   vendorsum.TablePurchasePrices,
		Columns: []string{"Brand", "Price", "Volume"},
	},
	{
		Table:   vendorsum.TableSales,
		Columns: []string{"VendorNo", "Brand", "SalesDollars", "SalesPrice", "SalesQuantity", "ExciseTax"},
	},
}
