package introspect

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	_ "github.com/go-sql-driver/mysql"
	_ "github.com/lib/pq"
	_ "modernc.org/sqlite"

	"github.com/tuannm99/novaschema/internal/catalog"
	"github.com/tuannm99/novaschema/internal/record"
)

const (
	SQLite   = "sqlite"
	MySQL    = "mysql"
	Postgres = "postgres"
)

var (
	ErrUnsupportedDriver = errors.New("introspect: unsupported driver")
	ErrTableNotFound     = errors.New("introspect: table not found")
)

const defaultTimeout = 15 * time.Second

// Inspector reads column definitions from a live database.
type Inspector struct {
	db      *sql.DB
	dialect string
	timeout time.Duration
}

// Open connects to a database with one of the supported drivers.
func Open(driver, dsn string) (*Inspector, error) {
	if !supported(driver) {
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedDriver, driver)
	}
	if driver == SQLite && !strings.Contains(dsn, "?") && dsn != ":memory:" {
		dsn += "?_busy_timeout=5000"
	}
	db, err := sql.Open(driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", driver, err)
	}
	db.SetMaxOpenConns(5)
	db.SetMaxIdleConns(2)
	db.SetConnMaxLifetime(10 * time.Minute)
	if driver == SQLite {
		// an in-memory database lives on a single connection
		db.SetMaxOpenConns(1)
	}

	return &Inspector{db: db, dialect: driver, timeout: defaultTimeout}, nil
}

// New wraps an existing handle; dialect picks the catalog queries.
func New(db *sql.DB, dialect string) (*Inspector, error) {
	if !supported(dialect) {
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedDriver, dialect)
	}
	return &Inspector{db: db, dialect: dialect, timeout: defaultTimeout}, nil
}

func supported(d string) bool {
	return d == SQLite || d == MySQL || d == Postgres
}

// SetTimeout bounds every catalog query. Zero keeps the default.
func (in *Inspector) SetTimeout(d time.Duration) {
	if d > 0 {
		in.timeout = d
	}
}

func (in *Inspector) Dialect() string { return in.dialect }

func (in *Inspector) Ping(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, in.timeout)
	defer cancel()
	return in.db.PingContext(ctx)
}

func (in *Inspector) Close() error { return in.db.Close() }

// Tables lists user tables in name order.
func (in *Inspector) Tables(ctx context.Context) ([]string, error) {
	ctx, cancel := context.WithTimeout(ctx, in.timeout)
	defer cancel()

	q := infoSchemaTablesQuery
	switch in.dialect {
	case SQLite:
		q = sqliteTablesQuery
	case Postgres:
		q = strings.Replace(q, "DATABASE()", "current_schema()", 1)
	}

	rows, err := in.db.QueryContext(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("list tables: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var names []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("list tables: %w", err)
		}
		names = append(names, name)
	}
	return names, rows.Err()
}

// Columns returns the table's columns in declaration order, with types
// reduced to resolver keywords.
func (in *Inspector) Columns(ctx context.Context, table string) ([]record.Column, error) {
	ctx, cancel := context.WithTimeout(ctx, in.timeout)
	defer cancel()

	var (
		cols []record.Column
		err  error
	)
	if in.dialect == SQLite {
		cols, err = in.sqliteColumns(ctx, table)
	} else {
		cols, err = in.infoSchemaColumns(ctx, table)
	}
	if err != nil {
		return nil, err
	}
	if len(cols) == 0 {
		return nil, fmt.Errorf("%w: %q", ErrTableNotFound, table)
	}
	return cols, nil
}

// Table returns the introspected table as a catalog definition.
func (in *Inspector) Table(ctx context.Context, table string) (*catalog.Table, error) {
	cols, err := in.Columns(ctx, table)
	if err != nil {
		return nil, err
	}
	return catalog.TableFromColumns(table, cols), nil
}

// Catalog introspects every table.
func (in *Inspector) Catalog(ctx context.Context) (*catalog.Catalog, error) {
	names, err := in.Tables(ctx)
	if err != nil {
		return nil, err
	}
	tables := make([]*catalog.Table, 0, len(names))
	for _, name := range names {
		t, err := in.Table(ctx, name)
		if err != nil {
			return nil, err
		}
		tables = append(tables, t)
	}
	return catalog.New(tables...)
}
