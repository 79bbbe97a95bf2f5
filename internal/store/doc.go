// Package store resolves which store a run uses and opens it.
//
// Resolution follows the PostgreSQL client conventions: explicit flags win,
// then environment variables (PG*, DATABASE_URL, VENDORSUM_*), then
// vendorsum.yaml, then defaults. With nothing configured the SQLite file
// inventory.db in the working directory is used.
package store
