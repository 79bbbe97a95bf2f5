// Package sqlite implements vendorsum.Store on a single SQLite database file
// using the pure-Go modernc.org/sqlite driver.
//
// Column kinds map to INTEGER, REAL and TEXT. SQLite has no NaN: a NaN
// written to a REAL column is stored as NULL. Table names are matched
// case-insensitively, as the engine does.
package sqlite
