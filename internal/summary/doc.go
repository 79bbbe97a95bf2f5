// Package summary builds the vendor sales summary.
//
// A run has three stages:
//
//  1. Query: one SQL statement rolls up freight per vendor, purchases per
//     vendor/brand and sales per vendor/brand, and left-joins sales and
//     freight onto the purchase rollup.
//  2. Clean: Volume becomes numeric, nulls are filled, names are trimmed
//     and the derived metrics (GrossProfit, ProfitMargin, StockTurnover,
//     SalesToPurchaseRatio) are appended.
//  3. Sinks: the table is written to a CSV file and to a store table.
//
// Builder runs the stages against one store connection and always closes it.
package summary
