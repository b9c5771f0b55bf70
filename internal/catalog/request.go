package catalog

import (
	"errors"
	"fmt"

	"github.com/tuannm99/novaschema/internal/record"
)

var ErrBadRequest = errors.New("catalog: exactly one of ddl or table must be set")

// ResolveDefinition validates and resolves either a CREATE TABLE script or a
// single table definition, as sent by the network surfaces.
func ResolveDefinition(r record.Resolver, ddl string, table *Table) ([]*TableSchema, error) {
	var tables []*Table
	switch {
	case ddl != "" && table == nil:
		var err error
		if tables, err = LoadDDL(ddl); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidTable, err)
		}
	case ddl == "" && table != nil:
		tables = []*Table{table}
	default:
		return nil, ErrBadRequest
	}

	out := make([]*TableSchema, 0, len(tables))
	seen := make(map[string]bool, len(tables))
	for i, t := range tables {
		if t == nil {
			return nil, fmt.Errorf("%w: table %d is empty", ErrInvalidTable, i)
		}
		if err := t.Validate(); err != nil {
			return nil, err
		}
		if seen[t.Name] {
			return nil, fmt.Errorf("%w: duplicate table %q", ErrInvalidTable, t.Name)
		}
		seen[t.Name] = true

		ts, err := t.Resolve(r)
		if err != nil {
			return nil, err
		}
		out = append(out, ts)
	}
	return out, nil
}
