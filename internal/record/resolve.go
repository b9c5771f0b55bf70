package record

import (
	"errors"
	"fmt"
	"maps"
	"strings"
)

var (
	ErrMissingType      = errors.New("record: column type is missing")
	ErrUnrecognizedType = errors.New("record: unrecognized column type")
)

var keywords = map[string]Variant{
	"INT":     FixedInt32,
	"INTEGER": FixedInt32,
	"TINYINT": FixedInt32,

	"LONG":      FixedInt64,
	"BIGINT":    FixedInt64,
	"DATE":      FixedInt64,
	"TIME":      FixedInt64,
	"TIMESTAMP": FixedInt64,

	"BOOL":    FixedBool,
	"BOOLEAN": FixedBool,

	"FLOAT":  FixedDouble,
	"DOUBLE": FixedDouble,
	"REAL":   FixedDouble,

	"DECIMAL": VariableString,
	"STRING":  VariableString,
	"CHAR":    VariableString,
	"VARCHAR": VariableString,

	"BINARY":    VariableBytes,
	"BYTES":     VariableBytes,
	"VARBINARY": VariableBytes,
	"BLOB":      VariableBytes,
	"ARRAY":     VariableBytes,
	"LIST":      VariableBytes,
	"MULTISET":  VariableBytes,
	"MAP":       VariableBytes,
	"TUPLE":     VariableBytes,
	"DICT":      VariableBytes,
	"OBJECT":    VariableBytes,
	"ANY":       VariableBytes,
}

// Keywords returns a copy of the type keyword classification table.
func Keywords() map[string]Variant { return maps.Clone(keywords) }

// Resolver maps columns to descriptors. The zero value knows only the
// built-in keywords; aliases add dialect names on top of them.
type Resolver struct {
	aliases map[string]string
}

// NewResolver builds a Resolver with extra type names. Keys and targets are
// case-insensitive and every target must be a built-in keyword.
func NewResolver(aliases map[string]string) (Resolver, error) {
	if len(aliases) == 0 {
		return Resolver{}, nil
	}
	norm := make(map[string]string, len(aliases))
	for from, to := range aliases {
		to = strings.ToUpper(to)
		if _, ok := keywords[to]; !ok {
			return Resolver{}, fmt.Errorf("alias %q -> %q: %w", from, to, ErrUnrecognizedType)
		}
		norm[strings.ToUpper(from)] = to
	}
	return Resolver{aliases: norm}, nil
}

// Aliases returns a copy of the configured aliases, upper-cased.
func (r Resolver) Aliases() map[string]string { return maps.Clone(r.aliases) }

// ResolveTypeName classifies a type keyword.
func (r Resolver) ResolveTypeName(typeName string) (Variant, error) {
	name := strings.ToUpper(typeName)
	if to, ok := r.aliases[name]; ok {
		name = to
	}
	v, ok := keywords[name]
	if !ok {
		return UnknownVariant, fmt.Errorf("%w: %q", ErrUnrecognizedType, typeName)
	}
	return v, nil
}

// ResolveColumnAt builds the descriptor for col with the given index.
func (r Resolver) ResolveColumnAt(col Column, index int) (Descriptor, error) {
	if col.Type == "" {
		return Descriptor{}, fmt.Errorf("%w: column %q", ErrMissingType, col.Name)
	}
	v, err := r.ResolveTypeName(col.Type)
	if err != nil {
		return Descriptor{}, fmt.Errorf("column %q: %w", col.Name, err)
	}
	return Descriptor{
		Variant:   v,
		AllowNull: col.Nullable,
		IsKey:     col.IsPrimary(),
		Index:     index,
	}, nil
}

func (r Resolver) ResolveColumn(col Column) (Descriptor, error) {
	return r.ResolveColumnAt(col, 0)
}

// ResolveColumns returns one descriptor per column, emitted in codec order.
// Each descriptor's Index is the column's position in columns, so consumers
// can map it back to the source definition. Nothing is returned on failure.
func (r Resolver) ResolveColumns(columns []Column) ([]Descriptor, error) {
	out := make([]Descriptor, 0, len(columns))
	for _, i := range CodecOrder(columns) {
		d, err := r.ResolveColumnAt(columns[i], i)
		if err != nil {
			return nil, fmt.Errorf("resolve column %d: %w", i, err)
		}
		out = append(out, d)
	}
	return out, nil
}

var defaultResolver Resolver

func ResolveTypeName(typeName string) (Variant, error) {
	return defaultResolver.ResolveTypeName(typeName)
}

func ResolveColumn(col Column) (Descriptor, error) {
	return defaultResolver.ResolveColumn(col)
}

func ResolveColumnAt(col Column, index int) (Descriptor, error) {
	return defaultResolver.ResolveColumnAt(col, index)
}

func ResolveColumns(columns []Column) ([]Descriptor, error) {
	return defaultResolver.ResolveColumns(columns)
}
