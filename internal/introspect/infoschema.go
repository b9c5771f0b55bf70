package introspect

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/tuannm99/novaschema/internal/record"
)

const infoSchemaTablesQuery = `SELECT TABLE_NAME FROM INFORMATION_SCHEMA.TABLES WHERE TABLE_SCHEMA = DATABASE() AND TABLE_TYPE = 'BASE TABLE' ORDER BY TABLE_NAME`

// infoSchemaColumnsQuery works for MySQL and Postgres once the schema
// function and placeholder are substituted.
const infoSchemaColumnsQuery = `SELECT c.COLUMN_NAME, c.DATA_TYPE, c.IS_NULLABLE, k.ORDINAL_POSITION
FROM INFORMATION_SCHEMA.COLUMNS c
LEFT JOIN (
  SELECT kcu.TABLE_SCHEMA, kcu.TABLE_NAME, kcu.COLUMN_NAME, kcu.ORDINAL_POSITION
  FROM INFORMATION_SCHEMA.TABLE_CONSTRAINTS tc
  JOIN INFORMATION_SCHEMA.KEY_COLUMN_USAGE kcu
    ON kcu.CONSTRAINT_NAME = tc.CONSTRAINT_NAME AND kcu.TABLE_SCHEMA = tc.TABLE_SCHEMA AND kcu.TABLE_NAME = tc.TABLE_NAME
  WHERE tc.CONSTRAINT_TYPE = 'PRIMARY KEY'
) k ON k.TABLE_SCHEMA = c.TABLE_SCHEMA AND k.TABLE_NAME = c.TABLE_NAME AND k.COLUMN_NAME = c.COLUMN_NAME
WHERE c.TABLE_SCHEMA = %s AND c.TABLE_NAME = %s
ORDER BY c.ORDINAL_POSITION`

func columnsQuery(dialect string) string {
	if dialect == Postgres {
		return fmt.Sprintf(infoSchemaColumnsQuery, "current_schema()", "$1")
	}
	return fmt.Sprintf(infoSchemaColumnsQuery, "DATABASE()", "?")
}

func (in *Inspector) infoSchemaColumns(ctx context.Context, table string) ([]record.Column, error) {
	rows, err := in.db.QueryContext(ctx, columnsQuery(in.dialect), table)
	if err != nil {
		return nil, fmt.Errorf("columns %q: %w", table, err)
	}
	defer func() { _ = rows.Close() }()

	var cols []record.Column
	for rows.Next() {
		var (
			name, dataType, nullable string
			keyPos                   sql.NullInt64
		)
		if err := rows.Scan(&name, &dataType, &nullable, &keyPos); err != nil {
			return nil, fmt.Errorf("columns %q: %w", table, err)
		}
		col := record.Column{
			Name:     name,
			Type:     normalizeType(in.dialect, dataType),
			Nullable: strings.EqualFold(nullable, "YES"),
			Rank:     record.NotKey,
		}
		if keyPos.Valid {
			col.Rank = record.RankOf(int(keyPos.Int64) - 1)
		}
		cols = append(cols, col)
	}
	return cols, rows.Err()
}
