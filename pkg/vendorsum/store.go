package vendorsum

import (
	"context"
	"strings"
)

// IfExists selects what Store.WriteTable does when the target table exists.
type IfExists int

const (
	// IfExistsFail leaves the existing table untouched and returns ErrTableExists.
	IfExistsFail IfExists = iota
	// IfExistsReplace drops the existing table and recreates it from the new data.
	IfExistsReplace
)

// String returns the policy name.
func (p IfExists) String() string {
	if p == IfExistsReplace {
		return "replace"
	}
	return "fail"
}

// Store is the relational store both entry points work against. It accepts
// SQL selects and named-table writes; table names are plain identifiers,
// case-sensitive as provided (subject to the engine's own rules).
//
// Thread-Safety: a Store is owned by a single run and is not required to be
// safe for concurrent use.
type Store interface {
	// Query runs a SELECT and returns the whole result as a Table.
	Query(ctx context.Context, sql string) (*Table, error)

	// WriteTable creates table name from t, applying policy when it already
	// exists. Column types are derived from the column kinds. The write runs
	// in a single engine transaction.
	WriteTable(ctx context.Context, name string, t *Table, policy IfExists) error

	// TableColumns returns the column names of table name in ordinal order,
	// or an error wrapping ErrTableNotFound.
	TableColumns(ctx context.Context, name string) ([]string, error)

	// Tables lists the user tables in the store.
	Tables(ctx context.Context) ([]string, error)

	// Close releases the underlying connection. It is safe to call more than once.
	Close() error
}

// StoreOpener opens a Store for the given configuration.
type StoreOpener func(ctx context.Context, cfg *StoreConfig) (Store, error)

// QuoteIdent double-quotes an SQL identifier, doubling embedded quotes.
// The result is valid and case-preserving for both PostgreSQL and SQLite.
func QuoteIdent(name string) string {
	return `"` + strings.ReplaceAll(name, `"`, `""`) + `"`
}
