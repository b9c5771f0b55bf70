package record

import "slices"

// CodecOrder returns the positions of columns in codec order: primary key
// columns first by ascending rank, then the rest in their input order.
func CodecOrder(columns []Column) []int {
	order := make([]int, len(columns))
	for i := range order {
		order[i] = i
	}
	slices.SortStableFunc(order, func(a, b int) int {
		return columns[a].Rank.Compare(columns[b].Rank)
	})
	return order
}

// SortColumns returns a copy of columns in codec order. The input is not modified.
func SortColumns(columns []Column) []Column {
	out := make([]Column, 0, len(columns))
	for _, i := range CodecOrder(columns) {
		out = append(out, columns[i])
	}
	return out
}
