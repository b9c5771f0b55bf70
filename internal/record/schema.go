package record

import "fmt"

// Variant is the wire representation a column is encoded with.
type Variant uint8

const (
	// UnknownVariant is the zero value, returned alongside resolution errors.
	UnknownVariant Variant = iota
	FixedInt32
	FixedInt64
	FixedBool
	FixedDouble
	VariableString // UTF-8
	VariableBytes  // opaque bytes, nested values
)

var variantNames = [...]string{
	UnknownVariant: "Unknown",
	FixedInt32:     "FixedInt32",
	FixedInt64:     "FixedInt64",
	FixedBool:      "FixedBool",
	FixedDouble:    "FixedDouble",
	VariableString: "VariableString",
	VariableBytes:  "VariableBytes",
}

func (v Variant) String() string {
	if int(v) < len(variantNames) {
		return variantNames[v]
	}
	return fmt.Sprintf("Variant(%d)", uint8(v))
}

// IsFixed reports whether values of this variant have a constant width.
func (v Variant) IsFixed() bool { return v.FixedWidth() > 0 }

// FixedWidth is the encoded width in bytes, or 0 for variable-width variants.
func (v Variant) FixedWidth() int {
	switch v {
	case FixedInt32:
		return 4
	case FixedInt64, FixedDouble:
		return 8
	case FixedBool:
		return 1
	default:
		return 0
	}
}

// Valid reports whether v is one of the codec variants.
func (v Variant) Valid() bool { return v > UnknownVariant && int(v) < len(variantNames) }

func (v Variant) MarshalText() ([]byte, error) {
	if !v.Valid() {
		return nil, fmt.Errorf("record: unknown variant %d", uint8(v))
	}
	return []byte(variantNames[v]), nil
}

func (v *Variant) UnmarshalText(b []byte) error {
	for i, name := range variantNames {
		if Variant(i).Valid() && name == string(b) {
			*v = Variant(i)
			return nil
		}
	}
	return fmt.Errorf("record: unknown variant %q", string(b))
}

// Column is a table column as read from a definition source.
type Column struct {
	Name     string  `json:"name"`
	Type     string  `json:"type"` // logical type keyword, "" when absent
	Nullable bool    `json:"nullable"`
	Rank     KeyRank `json:"primary_rank"`
}

// IsPrimary reports whether the column belongs to the primary key.
func (c Column) IsPrimary() bool { return c.Rank.IsKey() }

// Descriptor describes how one column is laid out by the row codec.
type Descriptor struct {
	Variant   Variant `json:"variant"`
	AllowNull bool    `json:"allow_null"`
	IsKey     bool    `json:"is_key"`
	// Index is the column's position in the caller-supplied column list.
	Index int `json:"index"`
}

func (d Descriptor) String() string {
	return fmt.Sprintf("%s{isKey:%t,allowNull:%t,index:%d}", d.Variant, d.IsKey, d.AllowNull, d.Index)
}
