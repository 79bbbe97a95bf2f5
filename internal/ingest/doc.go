// Package ingest bulk-loads raw CSV files into the store as seed tables.
//
// Every *.csv file directly inside the data directory becomes one table
// named after the file without its extension. Files are loaded in lexical
// order and each table is replaced if it already exists. There is no
// cross-file transaction: a failure stops the run and the tables written
// before it stay committed (see PartialError).
package ingest
