package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	_ "modernc.org/sqlite"

	"github.com/nipunchauhan/vendorsum/internal/store/classify"
	"github.com/nipunchauhan/vendorsum/pkg/vendorsum"
)

// DriverName is the database/sql driver registered by modernc.org/sqlite.
const DriverName = "sqlite"

const (
	tableExistsSQL = `SELECT COUNT(*) FROM sqlite_master WHERE type = 'table' AND name = ? COLLATE NOCASE`

	tableColumnsSQL = `SELECT name FROM pragma_table_info(?) ORDER BY cid`

	tablesSQL = `SELECT name FROM sqlite_master
	WHERE type = 'table' AND name NOT LIKE 'sqlite_%'
	ORDER BY name`
)

// Store is a vendorsum.Store backed by a SQLite file.
type Store struct {
	db     *sql.DB
	path   string
	logger vendorsum.Logger
}

// Open opens (creating if needed) the database file at path. The parent
// directory must exist.
func Open(ctx context.Context, path string, logger vendorsum.Logger) (*Store, error) {
	if logger == nil {
		panic("logger cannot be nil")
	}
	if path == "" {
		return nil, fmt.Errorf("sqlite path is required: %w", vendorsum.ErrInvalidConfig)
	}

	db, err := sql.Open(DriverName, path)
	if err != nil {
		return nil, fmt.Errorf("%w: open %s: %w", vendorsum.ErrConnectionFailed, path, err)
	}
	db.SetMaxOpenConns(1)

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("%w: open %s: %w", vendorsum.ErrConnectionFailed, path, err)
	}

	logger.Verbose("Opened SQLite database %s", path)
	return &Store{db: db, path: path, logger: logger}, nil
}

// Query runs sql and collects the whole result.
func (s *Store) Query(ctx context.Context, query string) (*vendorsum.Table, error) {
	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, classify.Wrap(err)
	}
	defer rows.Close()

	names, err := rows.Columns()
	if err != nil {
		return nil, err
	}

	var data [][]any
	for rows.Next() {
		vals := make([]any, len(names))
		ptrs := make([]any, len(names))
		for i := range vals {
			ptrs[i] = &vals[i]
		}
		if err := rows.Scan(ptrs...); err != nil {
			return nil, classify.Wrap(err)
		}
		data = append(data, vals)
	}
	if err := rows.Err(); err != nil {
		return nil, classify.Wrap(err)
	}

	return vendorsum.NewTableFromRows(names, data)
}

// WriteTable creates name from t and inserts every row, in one transaction.
func (s *Store) WriteTable(ctx context.Context, name string, t *vendorsum.Table, policy vendorsum.IfExists) (err error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return classify.Wrap(err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	var count int
	if err := tx.QueryRowContext(ctx, tableExistsSQL, name).Scan(&count); err != nil {
		return classify.Wrap(err)
	}
	ident := vendorsum.QuoteIdent(name)
	if count > 0 {
		if policy != vendorsum.IfExistsReplace {
			return fmt.Errorf("%w: %s", vendorsum.ErrTableExists, name)
		}
		if _, err := tx.ExecContext(ctx, "DROP TABLE "+ident); err != nil {
			return fmt.Errorf("failed to drop table %s: %w", name, err)
		}
	}

	if _, err := tx.ExecContext(ctx, createTableSQL(ident, t)); err != nil {
		return fmt.Errorf("failed to create table %s: %w", name, err)
	}

	if err := insertRows(ctx, tx, ident, t); err != nil {
		return fmt.Errorf("failed to insert rows into %s: %w", name, err)
	}

	if err := tx.Commit(); err != nil {
		return classify.Wrap(err)
	}
	s.logger.Verbose("Wrote %d rows to %s", t.Len(), name)
	return nil
}

func createTableSQL(ident string, t *vendorsum.Table) string {
	defs := make([]string, 0, t.Width())
	for _, c := range t.Columns() {
		defs = append(defs, vendorsum.QuoteIdent(c.Name)+" "+columnType(c.Kind))
	}
	return "CREATE TABLE " + ident + " (" + strings.Join(defs, ", ") + ")"
}

func columnType(k vendorsum.Kind) string {
	switch k {
	case vendorsum.KindInt:
		return "INTEGER"
	case vendorsum.KindText:
		return "TEXT"
	default:
		return "REAL"
	}
}

func insertRows(ctx context.Context, tx *sql.Tx, ident string, t *vendorsum.Table) error {
	if t.Len() == 0 {
		return nil
	}

	cols := make([]string, t.Width())
	marks := make([]string, t.Width())
	for i, name := range t.ColumnNames() {
		cols[i] = vendorsum.QuoteIdent(name)
		marks[i] = "?"
	}
	stmt, err := tx.PrepareContext(ctx, fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s)",
		ident, strings.Join(cols, ", "), strings.Join(marks, ", ")))
	if err != nil {
		return err
	}
	defer stmt.Close()

	for r := 0; r < t.Len(); r++ {
		if _, err := stmt.ExecContext(ctx, t.Row(r)...); err != nil {
			return fmt.Errorf("row %d: %w", r, err)
		}
	}
	return nil
}

// TableColumns returns the columns of name in declaration order.
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

// Tables lists user tables.
func (s *Store) Tables(ctx context.Context) ([]string, error) {
	return s.collectStrings(ctx, tablesSQL)
}

func (s *Store) collectStrings(ctx context.Context, query string, args ...any) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, classify.Wrap(err)
	}
	defer rows.Close()

	var out []string
	for rows.Next() {
		var v string
		if err := rows.Scan(&v); err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, rows.Err()
}

// Close closes the database. Safe to call more than once.
func (s *Store) Close() error {
	if s.db == nil {
		return nil
	}
	err := s.db.Close()
	s.db = nil
	return err
}

var _ vendorsum.Store = (*Store)(nil)
