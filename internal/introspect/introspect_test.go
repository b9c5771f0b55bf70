package introspect

import (
	"context"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tuannm99/novaschema/internal/record"
)

// Native type names reduce to resolver keywords per dialect.
func TestNormalizeType(t *testing.T) {
	tests := []struct {
		dialect, native, want string
	}{
		{SQLite, "varchar(64)", "VARCHAR"},
		{SQLite, "TEXT", "STRING"},
		{SQLite, "", ""},
		{SQLite, "numeric(10,2)", "DECIMAL"},
		{MySQL, "longtext", "STRING"},
		{MySQL, "int", "INT"},
		{MySQL, "datetime", "TIMESTAMP"},
		{MySQL, "json", "OBJECT"},
		{Postgres, "character varying", "VARCHAR"},
		{Postgres, "double precision", "DOUBLE"},
		{Postgres, "timestamp without time zone", "TIMESTAMP"},
		{Postgres, "ARRAY", "ARRAY"},
		{Postgres, "integer[]", "ARRAY"},
		{Postgres, "jsonb", "OBJECT"},
		{Postgres, "bytea", "BYTES"},
		{Postgres, "money", "MONEY"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, normalizeType(tt.dialect, tt.native), "%s %q", tt.dialect, tt.native)
	}
}

func TestOpen_UnsupportedDriver(t *testing.T) {
	_, err := Open("oracle", "x")
	require.ErrorIs(t, err, ErrUnsupportedDriver)

	_, err = New(nil, "mssql")
	require.ErrorIs(t, err, ErrUnsupportedDriver)
}

// TestSQLite_Columns reads PRAGMA table_info from an in-memory database.
func TestSQLite_Columns(t *testing.T) {
	in, err := Open(SQLite, ":memory:")
	require.NoError(t, err)
	defer func() { _ = in.Close() }()

	ctx := context.Background()
	require.NoError(t, in.Ping(ctx))
	assert.Equal(t, SQLite, in.Dialect())

	_, err = in.db.ExecContext(ctx, `CREATE TABLE events (
		payload BLOB,
		ts TIMESTAMP,
		note TEXT,
		host VARCHAR(64) NOT NULL,
		PRIMARY KEY (host, ts)
	)`)
	require.NoError(t, err)
	_, err = in.db.ExecContext(ctx, `CREATE TABLE users (id INTEGER PRIMARY KEY, name TEXT NOT NULL)`)
	require.NoError(t, err)

	names, err := in.Tables(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"events", "users"}, names)

	cols, err := in.Columns(ctx, "events")
	require.NoError(t, err)
	assert.Equal(t, []record.Column{
		{Name: "payload", Type: "BLOB", Nullable: true, Rank: record.NotKey},
		{Name: "ts", Type: "TIMESTAMP", Nullable: false, Rank: record.KeyAt(1)},
		{Name: "note", Type: "STRING", Nullable: true, Rank: record.NotKey},
		{Name: "host", Type: "VARCHAR", Nullable: false, Rank: record.KeyAt(0)},
	}, cols)

	descs, err := record.ResolveColumns(cols)
	require.NoError(t, err)
	assert.Equal(t, []record.Descriptor{
		{Variant: record.VariableString, IsKey: true, Index: 3},
		{Variant: record.FixedInt64, IsKey: true, Index: 1},
		{Variant: record.VariableBytes, AllowNull: true, Index: 0},
		{Variant: record.VariableString, AllowNull: true, Index: 2},
	}, descs)

	c, err := in.Catalog(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"events", "users"}, c.Names())

	_, err = in.Columns(ctx, "missing")
	require.ErrorIs(t, err, ErrTableNotFound)
}

// INFORMATION_SCHEMA path, mocked with sqlmock.
func TestMySQL_Columns(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer func() { _ = db.Close() }()

	in, err := New(db, MySQL)
	require.NoError(t, err)

	mock.ExpectQuery(regexp.QuoteMeta(columnsQuery(MySQL))).
		WithArgs("orders").
		WillReturnRows(sqlmock.NewRows([]string{"COLUMN_NAME", "DATA_TYPE", "IS_NULLABLE", "ORDINAL_POSITION"}).
			AddRow("note", "longtext", "YES", nil).
			AddRow("tenant", "varchar", "NO", 1).
			AddRow("amount", "decimal", "NO", nil).
			AddRow("id", "bigint", "NO", 2))

	tbl, err := in.Table(context.Background(), "orders")
	require.NoError(t, err)
	require.NoError(t, tbl.Validate())

	got, err := tbl.Resolve(record.Resolver{})
	require.NoError(t, err)
	assert.Equal(t, []string{"tenant", "id", "note", "amount"}, got.Columns)
	assert.Equal(t, []record.Descriptor{
		{Variant: record.VariableString, IsKey: true, Index: 1},
		{Variant: record.FixedInt64, IsKey: true, Index: 3},
		{Variant: record.VariableString, AllowNull: true, Index: 0},
		{Variant: record.VariableString, Index: 2},
	}, got.Descriptors)

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgres_TablesAndColumns(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer func() { _ = db.Close() }()

	in, err := New(db, Postgres)
	require.NoError(t, err)

	mock.ExpectQuery(regexp.QuoteMeta("WHERE TABLE_SCHEMA = current_schema()")).
		WillReturnRows(sqlmock.NewRows([]string{"table_name"}).AddRow("docs"))
	mock.ExpectQuery(regexp.QuoteMeta("WHERE c.TABLE_SCHEMA = current_schema() AND c.TABLE_NAME = $1")).
		WithArgs("docs").
		WillReturnRows(sqlmock.NewRows([]string{"column_name", "data_type", "is_nullable", "ordinal_position"}).
			AddRow("id", "uuid", "NO", 1).
			AddRow("body", "jsonb", "YES", nil).
			AddRow("tags", "ARRAY", "YES", nil).
			AddRow("created", "timestamp with time zone", "NO", nil))

	c, err := in.Catalog(context.Background())
	require.NoError(t, err)

	tbl, err := c.Table("docs")
	require.NoError(t, err)
	assert.Equal(t, []record.Column{
		{Name: "id", Type: "STRING", Rank: record.KeyAt(0)},
		{Name: "body", Type: "OBJECT", Nullable: true},
		{Name: "tags", Type: "ARRAY", Nullable: true},
		{Name: "created", Type: "TIMESTAMP"},
	}, tbl.RecordColumns())

	require.NoError(t, mock.ExpectationsWereMet())
}

// No rows means the table does not exist.
func TestInfoSchema_NotFound(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer func() { _ = db.Close() }()

	in, err := New(db, MySQL)
	require.NoError(t, err)

	mock.ExpectQuery(regexp.QuoteMeta(columnsQuery(MySQL))).
		WithArgs("ghost").
		WillReturnRows(sqlmock.NewRows([]string{"COLUMN_NAME", "DATA_TYPE", "IS_NULLABLE", "ORDINAL_POSITION"}))

	_, err = in.Columns(context.Background(), "ghost")
	require.ErrorIs(t, err, ErrTableNotFound)
	require.NoError(t, mock.ExpectationsWereMet())
}
