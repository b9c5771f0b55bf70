package cmdapi

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/olekukonko/tablewriter"

	"github.com/tuannm99/novaschema/internal/catalog"
)

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// schemasTable renders one block per table: descriptors in codec order.
func schemasTable(schemas []*catalog.TableSchema) string {
	var buf strings.Builder
	tbl := tablewriter.NewWriter(&buf)
	tbl.SetRowLine(true)
	tbl.SetAutoMergeCellsByColumnIndex([]int{0})
	tbl.SetHeader([]string{
		"Table",
		"Column",
		"Variant",
		"Width",
		"Key",
		"Null",
		"Index",
	})
	for _, s := range schemas {
		for i, d := range s.Descriptors {
			width := "-"
			if d.Variant.IsFixed() {
				width = strconv.Itoa(d.Variant.FixedWidth())
			}
			tbl.Append([]string{
				s.Table,
				s.Columns[i],
				d.Variant.String(),
				width,
				strconv.FormatBool(d.IsKey),
				strconv.FormatBool(d.AllowNull),
				strconv.Itoa(d.Index),
			})
		}
	}
	tbl.Render()
	return buf.String()
}

func printSchemas(w io.Writer, schemas []*catalog.TableSchema, asJSON bool) error {
	if asJSON {
		return writeJSON(w, schemas)
	}
	_, err := fmt.Fprint(w, schemasTable(schemas))
	return err
}
