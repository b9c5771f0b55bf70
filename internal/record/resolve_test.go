package record

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestResolveTypeName_Table checks every keyword in upper, lower and mixed case.
func TestResolveTypeName_Table(t *testing.T) {
	want := map[Variant][]string{
		FixedInt32:     {"INT", "INTEGER", "TINYINT"},
		FixedInt64:     {"LONG", "BIGINT", "DATE", "TIME", "TIMESTAMP"},
		FixedBool:      {"BOOL", "BOOLEAN"},
		FixedDouble:    {"FLOAT", "DOUBLE", "REAL"},
		VariableString: {"DECIMAL", "STRING", "CHAR", "VARCHAR"},
		VariableBytes: {
			"BINARY", "BYTES", "VARBINARY", "BLOB", "ARRAY", "LIST",
			"MULTISET", "MAP", "TUPLE", "DICT", "OBJECT", "ANY",
		},
	}

	total := 0
	for variant, names := range want {
		for _, name := range names {
			total++
			for _, spelled := range []string{name, strings.ToLower(name), mixedCase(name)} {
				got, err := ResolveTypeName(spelled)
				require.NoError(t, err, spelled)
				assert.Equal(t, variant, got, spelled)
			}
		}
	}
	assert.Len(t, Keywords(), total)
}

func mixedCase(s string) string {
	b := []byte(strings.ToLower(s))
	for i := 0; i < len(b); i += 2 {
		b[i] = strings.ToUpper(string(b[i]))[0]
	}
	return string(b)
}

func TestResolveTypeName_Unrecognized(t *testing.T) {
	for _, name := range []string{"ENUM", "TEXT", "INT ", "", "VARCHAR(20)"} {
		_, err := ResolveTypeName(name)
		require.Error(t, err, name)
		require.ErrorIs(t, err, ErrUnrecognizedType)
	}
}

// Nullability and key flag are copied from the column.
func TestResolveColumn_CopiesFlags(t *testing.T) {
	cols := []Column{
		{Name: "a", Type: "int", Nullable: true, Rank: NotKey},
		{Name: "b", Type: "BIGINT", Nullable: false, Rank: KeyAt(0)},
		{Name: "c", Type: "Bool", Nullable: true, Rank: KeyAt(3)},
		{Name: "d", Type: "blob", Nullable: false, Rank: NotKey},
	}
	for _, c := range cols {
		d, err := ResolveColumn(c)
		require.NoError(t, err)
		assert.Equal(t, c.IsPrimary(), d.IsKey, c.Name)
		assert.Equal(t, c.Nullable, d.AllowNull, c.Name)
		assert.Equal(t, 0, d.Index, c.Name)
	}

	d, err := ResolveColumnAt(cols[1], 7)
	require.NoError(t, err)
	assert.Equal(t, Descriptor{Variant: FixedInt64, IsKey: true, Index: 7}, d)
}

func TestResolveColumn_MissingType(t *testing.T) {
	_, err := ResolveColumn(Column{Name: "x"})
	require.ErrorIs(t, err, ErrMissingType)
	require.Contains(t, err.Error(), `"x"`)
}

func TestResolveColumn_Unrecognized(t *testing.T) {
	_, err := ResolveColumn(Column{Name: "mood", Type: "ENUM"})
	require.ErrorIs(t, err, ErrUnrecognizedType)
	require.False(t, errors.Is(err, ErrMissingType))
}

// [STRING nullable, INT key 0] resolves to [INT key, STRING null].
func TestResolveColumns_Scenario(t *testing.T) {
	cols := []Column{
		{Name: "name", Type: "STRING", Nullable: true, Rank: RankOf(-1)},
		{Name: "id", Type: "INT", Nullable: false, Rank: RankOf(0)},
	}

	sorted := SortColumns(cols)
	require.Equal(t, []Column{cols[1], cols[0]}, sorted)

	got, err := ResolveColumns(cols)
	require.NoError(t, err)
	require.Equal(t, []Descriptor{
		{Variant: FixedInt32, IsKey: true, AllowNull: false, Index: 1},
		{Variant: VariableString, IsKey: false, AllowNull: true, Index: 0},
	}, got)
}

// Index points back to the caller's slice, not to the sorted one.
func TestResolveColumns_IndexIsSourcePosition(t *testing.T) {
	cols := []Column{
		{Name: "v1", Type: "DOUBLE", Nullable: true},
		{Name: "k1", Type: "VARCHAR", Rank: KeyAt(1)},
		{Name: "v2", Type: "MAP", Nullable: true},
		{Name: "k0", Type: "LONG", Rank: KeyAt(0)},
	}

	got, err := ResolveColumns(cols)
	require.NoError(t, err)
	require.Len(t, got, len(cols))

	idx := make([]int, len(got))
	for i, d := range got {
		idx[i] = d.Index
	}
	assert.Equal(t, []int{3, 1, 0, 2}, idx)
	assert.Equal(t, FixedInt64, got[0].Variant)
	assert.Equal(t, VariableString, got[1].Variant)
	assert.Equal(t, FixedDouble, got[2].Variant)
	assert.Equal(t, VariableBytes, got[3].Variant)
}

// One bad column fails the whole call with a nil slice.
func TestResolveColumns_FailsAtomically(t *testing.T) {
	cols := []Column{
		{Name: "id", Type: "INT", Rank: KeyAt(0)},
		{Name: "mood", Type: "ENUM"},
	}
	got, err := ResolveColumns(cols)
	require.ErrorIs(t, err, ErrUnrecognizedType)
	require.Nil(t, got)

	cols[1].Type = ""
	got, err = ResolveColumns(cols)
	require.ErrorIs(t, err, ErrMissingType)
	require.Nil(t, got)
}

func TestResolveColumns_Empty(t *testing.T) {
	got, err := ResolveColumns(nil)
	require.NoError(t, err)
	require.Empty(t, got)
}

// Aliases are case-insensitive and applied before classification.
func TestResolver_Aliases(t *testing.T) {
	r, err := NewResolver(map[string]string{"text": "string", "Int8": "BIGINT"})
	require.NoError(t, err)

	v, err := r.ResolveTypeName("TEXT")
	require.NoError(t, err)
	assert.Equal(t, VariableString, v)

	v, err = r.ResolveTypeName("int8")
	require.NoError(t, err)
	assert.Equal(t, FixedInt64, v)

	// built-ins still work and the package-level resolver is untouched
	v, err = r.ResolveTypeName("bool")
	require.NoError(t, err)
	assert.Equal(t, FixedBool, v)
	_, err = ResolveTypeName("TEXT")
	require.ErrorIs(t, err, ErrUnrecognizedType)

	assert.Equal(t, map[string]string{"TEXT": "STRING", "INT8": "BIGINT"}, r.Aliases())
}

func TestNewResolver_BadTarget(t *testing.T) {
	_, err := NewResolver(map[string]string{"uuid": "GUID"})
	require.ErrorIs(t, err, ErrUnrecognizedType)
}

func TestVariant_Text(t *testing.T) {
	for v := FixedInt32; v <= VariableBytes; v++ {
		b, err := v.MarshalText()
		require.NoError(t, err)

		var back Variant
		require.NoError(t, back.UnmarshalText(b))
		assert.Equal(t, v, back)
	}

	var v Variant
	require.Error(t, v.UnmarshalText([]byte("FixedInt16")))
	_, err := Variant(42).MarshalText()
	require.Error(t, err)
	assert.Equal(t, "Variant(42)", Variant(42).String())
}

func TestVariant_Width(t *testing.T) {
	assert.Equal(t, 4, FixedInt32.FixedWidth())
	assert.Equal(t, 8, FixedInt64.FixedWidth())
	assert.Equal(t, 1, FixedBool.FixedWidth())
	assert.Equal(t, 8, FixedDouble.FixedWidth())
	assert.False(t, VariableString.IsFixed())
	assert.False(t, VariableBytes.IsFixed())
	assert.True(t, FixedBool.IsFixed())
}

// A failed resolution must not look like a valid FixedInt32 descriptor.
func TestResolve_ErrorsReturnUnknownVariant(t *testing.T) {
	v, err := ResolveTypeName("ENUM")
	require.ErrorIs(t, err, ErrUnrecognizedType)
	assert.Equal(t, UnknownVariant, v)
	assert.False(t, v.Valid())

	d, err := ResolveColumn(Column{Name: "x", Rank: NotKey})
	require.ErrorIs(t, err, ErrMissingType)
	assert.Equal(t, UnknownVariant, d.Variant)

	var zero Descriptor
	assert.False(t, zero.Variant.Valid())
	_, err = UnknownVariant.MarshalText()
	require.Error(t, err)
	require.Error(t, new(Variant).UnmarshalText([]byte("Unknown")))
	assert.Equal(t, "Unknown", UnknownVariant.String())
	assert.Equal(t, 0, UnknownVariant.FixedWidth())
}
