package record

import (
	"bytes"
	"cmp"
	"encoding/json"
	"fmt"
)

// KeyRank is a column's position inside the primary key, or NotKey.
// The zero value is NotKey.
type KeyRank struct {
	rank int
	ok   bool
}

// NotKey marks a column outside the primary key.
var NotKey = KeyRank{}

// KeyAt returns the rank of the n-th primary key column. n must be non-negative.
func KeyAt(n int) KeyRank {
	if n < 0 {
		panic(fmt.Sprintf("record: negative key rank %d", n))
	}
	return KeyRank{rank: n, ok: true}
}

// RankOf converts a raw rank where any negative value means "not a key".
func RankOf(n int) KeyRank {
	if n < 0 {
		return NotKey
	}
	return KeyRank{rank: n, ok: true}
}

func (r KeyRank) IsKey() bool { return r.ok }

// Get returns the rank and whether the column is a key column.
func (r KeyRank) Get() (int, bool) { return r.rank, r.ok }

// Int returns the raw rank, -1 for NotKey.
func (r KeyRank) Int() int {
	if !r.ok {
		return -1
	}
	return r.rank
}

// Compare orders key ranks ascending and every key rank before NotKey.
// Two NotKey ranks are equal.
func (r KeyRank) Compare(o KeyRank) int {
	switch {
	case r.ok && o.ok:
		return cmp.Compare(r.rank, o.rank)
	case r.ok:
		return -1
	case o.ok:
		return 1
	default:
		return 0
	}
}

func (r KeyRank) String() string {
	if !r.ok {
		return "NotKey"
	}
	return fmt.Sprintf("Key(%d)", r.rank)
}

// MarshalJSON writes the rank as a number, or null for NotKey.
func (r KeyRank) MarshalJSON() ([]byte, error) {
	if !r.ok {
		return []byte("null"), nil
	}
	return json.Marshal(r.rank)
}

// UnmarshalJSON accepts a number or null. Negative numbers decode to NotKey.
func (r *KeyRank) UnmarshalJSON(b []byte) error {
	if bytes.Equal(bytes.TrimSpace(b), []byte("null")) {
		*r = NotKey
		return nil
	}
	var n int
	if err := json.Unmarshal(b, &n); err != nil {
		return fmt.Errorf("record: bad key rank: %w", err)
	}
	*r = RankOf(n)
	return nil
}

// ComparePrimaryRank compares two raw primary ranks (negative = not a key).
// Non-negative ranks sort first in ascending order. Two negative ranks compare
// numerically; producers are expected to use a single sentinel.
// SortColumns does not apply that tie-break: RankOf maps every negative rank
// to NotKey, so non-key columns keep their input order.
func ComparePrimaryRank(a, b int) int {
	switch {
	case a >= 0 && b >= 0:
		return cmp.Compare(a, b)
	case a < 0 && b < 0:
		return cmp.Compare(a, b)
	case a < 0:
		return 1
	default:
		return -1
	}
}
