package postgres

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/nipunchauhan/vendorsum/internal/store/classify"
	"github.com/nipunchauhan/vendorsum/pkg/vendorsum"
)

const (
	tableExistsSQL = `SELECT EXISTS (
	SELECT 1 FROM information_schema.tables
	WHERE table_schema = current_schema() AND table_name = $1)`

	tableColumnsSQL = `SELECT column_name FROM information_schema.columns
	WHERE table_schema = current_schema() AND table_name = $1
	ORDER BY ordinal_position`

	tablesSQL = `SELECT table_name FROM information_schema.tables
	WHERE table_schema = current_schema() AND table_type = 'BASE TABLE'
	ORDER BY table_name`
)

// Store is a vendorsum.Store backed by a PostgreSQL connection pool.
type Store struct {
	pool   *pgxpool.Pool
	closer io.Closer
	logger vendorsum.Logger
}

// Open connects with the authentication method in cfg.
func Open(ctx context.Context, cfg *vendorsum.ConnectionConfig, logger vendorsum.Logger) (*Store, error) {
	connector, err := NewConnector(cfg, logger)
	if err != nil {
		return nil, err
	}

	pool, err := connector.Connect(ctx)
	if err != nil {
		if c, ok := connector.(io.Closer); ok {
			_ = c.Close()
		}
		return nil, fmt.Errorf("%w: %w", vendorsum.ErrConnectionFailed, err)
	}

	s := NewStore(pool, logger)
	if c, ok := connector.(io.Closer); ok {
		s.closer = c
	}
	return s, nil
}

// NewStore wraps an existing pool. The Store takes ownership of it.
func NewStore(pool *pgxpool.Pool, logger vendorsum.Logger) *Store {
	if pool == nil {
		panic("pool cannot be nil")
	}
	if logger == nil {
		panic("logger cannot be nil")
	}
	return &Store{pool: pool, logger: logger}
}

// Query runs sql and collects the whole result.
func (s *Store) Query(ctx context.Context, sql string) (*vendorsum.Table, error) {
	rows, err := s.pool.Query(ctx, sql)
	if err != nil {
		return nil, classify.Wrap(err)
	}
	defer rows.Close()

	fields := rows.FieldDescriptions()
	names := make([]string, len(fields))
	for i, f := range fields {
		names[i] = f.Name
	}

	var data [][]any
	for rows.Next() {
		vals, err := rows.Values()
		if err != nil {
			return nil, classify.Wrap(err)
		}
		for i, v := range vals {
			vals[i] = normalizeValue(v)
		}
		data = append(data, vals)
	}
	if err := rows.Err(); err != nil {
		return nil, classify.Wrap(err)
	}

	return vendorsum.NewTableFromRows(names, data)
}

// WriteTable creates name from t and loads it with COPY, in one transaction.
func (s *Store) WriteTable(ctx context.Context, name string, t *vendorsum.Table, policy vendorsum.IfExists) error {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return classify.Wrap(err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	var exists bool
	if err := tx.QueryRow(ctx, tableExistsSQL, name).Scan(&exists); err != nil {
		return classify.Wrap(err)
	}
	ident := pgx.Identifier{name}.Sanitize()
	if exists {
		if policy != vendorsum.IfExistsReplace {
			return fmt.Errorf("%w: %s", vendorsum.ErrTableExists, name)
		}
		if _, err := tx.Exec(ctx, "DROP TABLE "+ident); err != nil {
			return classify.Wrap(fmt.Errorf("failed to drop table %s: %w", name, err))
		}
	}

	if _, err := tx.Exec(ctx, createTableSQL(ident, t)); err != nil {
		return classify.Wrap(fmt.Errorf("failed to create table %s: %w", name, err))
	}

	n, err := tx.CopyFrom(ctx, pgx.Identifier{name}, t.ColumnNames(), pgx.CopyFromSlice(t.Len(), func(i int) ([]any, error) {
		return t.Row(i), nil
	}))
	if err != nil {
		return classify.Wrap(fmt.Errorf("failed to copy rows into %s: %w", name, err))
	}

	if err := tx.Commit(ctx); err != nil {
		return classify.Wrap(err)
	}
	s.logger.Verbose("Wrote %d rows to %s", n, name)
	return nil
}

func createTableSQL(ident string, t *vendorsum.Table) string {
	defs := make([]string, 0, t.Width())
	for _, c := range t.Columns() {
		defs = append(defs, pgx.Identifier{c.Name}.Sanitize()+" "+columnType(c.Kind))
	}
	return "CREATE TABLE " + ident + " (" + strings.Join(defs, ", ") + ")"
}

func columnType(k vendorsum.Kind) string {
	switch k {
	case vendorsum.KindInt:
		return "BIGINT"
	case vendorsum.KindText:
		return "TEXT"
	default:
		return "DOUBLE PRECISION"
	}
}

// TableColumns returns the columns of name in the current schema.
func (s *Store) TableColumns(ctx context.Context, name string) ([]string, error) {
	cols, err := s.collectStrings(ctx, tableColumnsSQL, name)
	if err != nil {
		return nil, err
	}
	if len(cols) == 0 {
		return nil, fmt.Errorf("%w: %s", vendorsum.ErrTableNotFound, name)
	}
	return cols, nil
}

// Tables lists base tables in the current schema.
func (s *Store) Tables(ctx context.Context) ([]string, error) {
	return s.collectStrings(ctx, tablesSQL)
}

func (s *Store) collectStrings(ctx context.Context, sql string, args ...any) ([]string, error) {
	rows, err := s.pool.Query(ctx, sql, args...)
	if err != nil {
		return nil, classify.Wrap(err)
	}
	out, err := pgx.CollectRows(rows, pgx.RowTo[string])
	if err != nil {
		return nil, classify.Wrap(err)
	}
	return out, nil
}

// Close closes the pool and releases any cloud dialer. Safe to call more than once.
func (s *Store) Close() error {
	if s.pool == nil {
		return nil
	}
	s.pool.Close()
	s.pool = nil

	if s.closer == nil {
		return nil
	}
	err := s.closer.Close()
	s.closer = nil
	return err
}

var _ vendorsum.Store = (*Store)(nil)
