// Package schema holds the table contract between the loader and the
// summary builder.
//
// The loader names tables after the files it reads; the summary query reads
// four of them by name. SummaryInputs lists those tables with the columns
// the query touches, and Checker verifies a store against it before the
// query runs, so a missing input is reported by name rather than as an
// engine error halfway through the SQL.
package schema
