package summary

import "github.com/nipunchauhan/vendorsum/pkg/vendorsum"

// Derived metric column names, appended by Clean in this order.
const (
	ColGrossProfit          = "GrossProfit"
	ColProfitMargin         = "ProfitMargin"
	ColStockTurnover        = "StockTurnover"
	ColSalesToPurchaseRatio = "SalesToPurchaseRatio"
)

// Clean prepares a query result for output, in place:
//
//  1. Volume is coerced to float (null stays null).
//  2. Every null becomes the zero value of its column.
//  3. VendorName and Description are trimmed.
//  4. The derived metrics are computed with IEEE-754 division, so a zero
//     denominator yields +Inf, -Inf or NaN rather than an error.
//
// Clean is idempotent: derived columns are replaced, never duplicated.
// Row count and order are unchanged.
func Clean(t *vendorsum.Table) error {
	volume, err := t.MustColumn("Volume")
	if err != nil {
		return err
	}
	vendorName, err := t.MustColumn("VendorName")
	if err != nil {
		return err
	}
	description, err := t.MustColumn("Description")
	if err != nil {
		return err
	}
	salesDollars, err := t.MustColumn("TotalSalesDollars")
	if err != nil {
		return err
	}
	purchaseDollars, err := t.MustColumn("TotalPurchaseDollars")
	if err != nil {
		return err
	}
	salesQty, err := t.MustColumn("TotalSalesQuantity")
	if err != nil {
		return err
	}
	purchaseQty, err := t.MustColumn("TotalPurchaseQuantity")
	if err != nil {
		return err
	}

	if err := volume.ToFloat(); err != nil {
		return err
	}
	t.FillNull()
	vendorName.TrimSpace()
	description.TrimSpace()

	n := t.Len()
	gross := make([]any, n)
	margin := make([]any, n)
	turnover := make([]any, n)
	ratio := make([]any, n)
	for i := 0; i < n; i++ {
		sd, pd := salesDollars.Float(i), purchaseDollars.Float(i)
		g := sd - pd
		gross[i] = g
		margin[i] = g / sd * 100
		turnover[i] = salesQty.Float(i) / purchaseQty.Float(i)
		ratio[i] = sd / pd
	}

	for _, c := range []struct {
		name   string
		values []any
	}{
		{ColGrossProfit, gross},
		{ColProfitMargin, margin},
		{ColStockTurnover, turnover},
		{ColSalesToPurchaseRatio, ratio},
	} {
		if err := t.AddColumn(c.name, vendorsum.KindFloat, c.values); err != nil {
			return err
		}
	}
	return nil
}
