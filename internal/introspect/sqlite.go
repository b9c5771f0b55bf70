package introspect

import (
	"context"
	"fmt"
	"strings"

	"github.com/tuannm99/novaschema/internal/record"
)

const (
	sqliteTablesQuery  = `SELECT name FROM sqlite_master WHERE type='table' AND name NOT LIKE 'sqlite_%' ORDER BY name`
	sqliteColumnsQuery = `PRAGMA table_info('%s')`
)

// sqliteColumns uses PRAGMA table_info, whose pk column is the 1-based
// position inside the primary key (0 for other columns).
func (in *Inspector) sqliteColumns(ctx context.Context, table string) ([]record.Column, error) {
	q := fmt.Sprintf(sqliteColumnsQuery, strings.ReplaceAll(table, "'", "''"))
	rows, err := in.db.QueryContext(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("table info %q: %w", table, err)
	}
	defer func() { _ = rows.Close() }()

	var cols []record.Column
	for rows.Next() {
		var (
			cid           int
			name, colType string
			notNull, pk   int
			dfltValue     any
		)
		if err := rows.Scan(&cid, &name, &colType, &notNull, &dfltValue, &pk); err != nil {
			return nil, fmt.Errorf("table info %q: %w", table, err)
		}
		cols = append(cols, record.Column{
			Name:     name,
			Type:     normalizeType(SQLite, colType),
			Nullable: notNull == 0 && pk == 0,
			Rank:     record.RankOf(pk - 1),
		})
	}
	return cols, rows.Err()
}
