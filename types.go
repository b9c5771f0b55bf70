// Package novaschema is the top-level facade: column ordering and type
// resolution for the row codec.
package novaschema

import "github.com/tuannm99/novaschema/internal/record"

type (
	Column     = record.Column
	Descriptor = record.Descriptor
	Variant    = record.Variant
	KeyRank    = record.KeyRank
	Resolver   = record.Resolver
)

const (
	UnknownVariant = record.UnknownVariant
	FixedInt32     = record.FixedInt32
	FixedInt64     = record.FixedInt64
	FixedBool      = record.FixedBool
	FixedDouble    = record.FixedDouble
	VariableString = record.VariableString
	VariableBytes  = record.VariableBytes
)

var (
	ErrMissingType      = record.ErrMissingType
	ErrUnrecognizedType = record.ErrUnrecognizedType

	NotKey = record.NotKey
)

func KeyAt(n int) KeyRank { return record.KeyAt(n) }

func RankOf(n int) KeyRank { return record.RankOf(n) }

// Keywords returns a copy of the built-in type keyword table.
func Keywords() map[string]Variant { return record.Keywords() }

func NewResolver(aliases map[string]string) (Resolver, error) { return record.NewResolver(aliases) }

// ComparePrimaryRank orders raw integer ranks, negative meaning not a key.
func ComparePrimaryRank(a, b int) int { return record.ComparePrimaryRank(a, b) }

// SortColumns returns the columns in codec order: key columns by rank, then
// the rest in their original order.
func SortColumns(columns []Column) []Column { return record.SortColumns(columns) }

func CodecOrder(columns []Column) []int { return record.CodecOrder(columns) }

func ResolveTypeName(name string) (Variant, error) { return record.ResolveTypeName(name) }

func ResolveColumn(col Column) (Descriptor, error) { return record.ResolveColumn(col) }

func ResolveColumnAt(col Column, index int) (Descriptor, error) {
	return record.ResolveColumnAt(col, index)
}

// ResolveColumns resolves every column in codec order. Index on each
// descriptor is the column's position in columns.
func ResolveColumns(columns []Column) ([]Descriptor, error) {
	return record.ResolveColumns(columns)
}
