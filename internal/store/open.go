package store

import (
	"context"
	"fmt"

	"github.com/nipunchauhan/vendorsum/internal/store/postgres"
	"github.com/nipunchauhan/vendorsum/internal/store/sqlite"
	"github.com/nipunchauhan/vendorsum/pkg/vendorsum"
)

// Open opens the store selected by cfg.
func Open(ctx context.Context, cfg *vendorsum.StoreConfig, logger vendorsum.Logger) (vendorsum.Store, error) {
	if cfg == nil {
		return nil, fmt.Errorf("%w: store configuration is required", vendorsum.ErrInvalidConfig)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	switch cfg.Backend {
	case vendorsum.BackendSQLite:
		return sqlite.Open(ctx, cfg.SQLitePath, logger)
	case vendorsum.BackendPostgres:
		return postgres.Open(ctx, cfg.Connection, logger)
	default:
		return nil, fmt.Errorf("%w: %q", vendorsum.ErrUnsupportedBackend, cfg.Backend)
	}
}

// NewOpener binds logger into a vendorsum.StoreOpener.
func NewOpener(logger vendorsum.Logger) vendorsum.StoreOpener {
	return func(ctx context.Context, cfg *vendorsum.StoreConfig) (vendorsum.Store, error) {
		return Open(ctx, cfg, logger)
	}
}

// RowCount returns the number of rows in table name.
func RowCount(ctx context.Context, s vendorsum.Store, name string) (int64, error) {
	t, err := s.Query(ctx, "SELECT COUNT(*) AS n FROM "+vendorsum.QuoteIdent(name))
	if err != nil {
		return 0, err
	}
	col, err := t.MustColumn("n")
	if err != nil {
		return 0, err
	}
	if t.Len() != 1 {
		return 0, fmt.Errorf("row count of %s: expected one row, got %d", name, t.Len())
	}
	n, ok := col.Values[0].(int64)
	if !ok {
		return 0, fmt.Errorf("row count of %s: unexpected value %v", name, col.Values[0])
	}
	return n, nil
}
