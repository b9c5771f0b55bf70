package catalog

import (
	"errors"
	"fmt"
	"sort"

	"github.com/go-playground/validator/v10"

	"github.com/tuannm99/novaschema/internal/record"
)

var (
	ErrInvalidTable = errors.New("catalog: invalid table definition")
	ErrNoSuchTable  = errors.New("catalog: no such table")
)

var validate = validator.New()

// ColumnSpec is a column as written in a definition file.
type ColumnSpec struct {
	Name string `json:"name" mapstructure:"name" validate:"required"`
	// Type is left unchecked here; the resolver reports missing or unknown types.
	Type string `json:"type" mapstructure:"type"`
	Null bool   `json:"nullable" mapstructure:"nullable"`
	// Key is the rank inside the primary key; nil means not a key column.
	Key *int `json:"key,omitempty" mapstructure:"key" validate:"omitempty,min=0"`
}

type Table struct {
	Name    string       `json:"name" mapstructure:"name" validate:"required"`
	Columns []ColumnSpec `json:"columns" mapstructure:"columns" validate:"required,min=1,unique=Name,dive"`
}

// TableSchema is a resolved table: descriptors in codec order, with the
// column name each one came from.
type TableSchema struct {
	Table       string              `json:"table"`
	Columns     []string            `json:"columns"`
	Descriptors []record.Descriptor `json:"descriptors"`
}

func (t *Table) Validate() error {
	if err := validate.Struct(t); err != nil {
		return fmt.Errorf("%w: %q: %v", ErrInvalidTable, t.Name, err)
	}
	seen := map[int]string{}
	for _, c := range t.Columns {
		if c.Key == nil {
			continue
		}
		if other, dup := seen[*c.Key]; dup {
			return fmt.Errorf("%w: %q: columns %q and %q share key rank %d", ErrInvalidTable, t.Name, other, c.Name, *c.Key)
		}
		seen[*c.Key] = c.Name
	}
	return nil
}

// RecordColumns converts the definition into resolver input, in declaration order.
func (t *Table) RecordColumns() []record.Column {
	out := make([]record.Column, len(t.Columns))
	for i, c := range t.Columns {
		out[i] = record.Column{
			Name:     c.Name,
			Type:     c.Type,
			Nullable: c.Null,
			Rank:     record.NotKey,
		}
		if c.Key != nil {
			out[i].Rank = record.RankOf(*c.Key)
		}
	}
	return out
}

// Resolve maps the table's columns to descriptors.
func (t *Table) Resolve(r record.Resolver) (*TableSchema, error) {
	cols := t.RecordColumns()
	descs, err := r.ResolveColumns(cols)
	if err != nil {
		return nil, fmt.Errorf("table %q: %w", t.Name, err)
	}
	names := make([]string, len(descs))
	for i, d := range descs {
		names[i] = cols[d.Index].Name
	}
	return &TableSchema{Table: t.Name, Columns: names, Descriptors: descs}, nil
}

// TableFromColumns builds a table from resolver-level columns, e.g. the
// output of database introspection.
func TableFromColumns(name string, cols []record.Column) *Table {
	t := &Table{Name: name, Columns: make([]ColumnSpec, len(cols))}
	for i, c := range cols {
		t.Columns[i] = ColumnSpec{Name: c.Name, Type: c.Type, Null: c.Nullable}
		if rank, ok := c.Rank.Get(); ok {
			t.Columns[i].Key = &rank
		}
	}
	return t
}

// Catalog is a set of validated tables keyed by name.
type Catalog struct {
	tables map[string]*Table
}

func New(tables ...*Table) (*Catalog, error) {
	c := &Catalog{tables: make(map[string]*Table, len(tables))}
	for i, t := range tables {
		if t == nil {
			return nil, fmt.Errorf("%w: table %d is empty", ErrInvalidTable, i)
		}
		if err := t.Validate(); err != nil {
			return nil, err
		}
		if _, dup := c.tables[t.Name]; dup {
			return nil, fmt.Errorf("%w: duplicate table %q", ErrInvalidTable, t.Name)
		}
		c.tables[t.Name] = t
	}
	return c, nil
}

func (c *Catalog) Table(name string) (*Table, error) {
	t, ok := c.tables[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrNoSuchTable, name)
	}
	return t, nil
}

// Names returns table names sorted alphabetically.
func (c *Catalog) Names() []string {
	names := make([]string, 0, len(c.tables))
	for n := range c.tables {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// ResolveAll resolves every table in name order.
func (c *Catalog) ResolveAll(r record.Resolver) ([]*TableSchema, error) {
	out := make([]*TableSchema, 0, len(c.tables))
	for _, name := range c.Names() {
		ts, err := c.tables[name].Resolve(r)
		if err != nil {
			return nil, err
		}
		out = append(out, ts)
	}
	return out, nil
}
