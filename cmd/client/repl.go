package main

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/olekukonko/tablewriter"

	"github.com/tuannm99/novaschema/internal/catalog"
)

const helpText = `meta commands:
  \q | quit | exit       quit
  \history               print history
  \help                  show help

definitions:
  CREATE TABLE name (col TYPE [NOT NULL] [PRIMARY KEY], ...);
  end each statement with ';'; multiline input waits until ';'`

// statementComplete checks if we have a terminating ';' outside single quotes.
func statementComplete(buf string) bool {
	inQuote := false
	escaped := false

	for _, r := range buf {
		if escaped {
			escaped = false
			continue
		}
		if r == '\\' {
			escaped = true
			continue
		}
		if r == '\'' {
			inQuote = !inQuote
			continue
		}
		if r == ';' && !inQuote {
			return true
		}
	}
	return false
}

func isMetaCommand(line string) bool {
	line = strings.TrimSpace(line)
	return strings.HasPrefix(line, "\\") ||
		line == "quit" || line == "exit"
}

func printSchemas(w io.Writer, schemas []*catalog.TableSchema) {
	for _, s := range schemas {
		fmt.Fprintf(w, "table %s\n", s.Table)

		tbl := tablewriter.NewWriter(w)
		tbl.SetHeader([]string{"#", "Column", "Variant", "Key", "Null", "Index"})
		for i, d := range s.Descriptors {
			tbl.Append([]string{
				strconv.Itoa(i),
				s.Columns[i],
				d.Variant.String(),
				strconv.FormatBool(d.IsKey),
				strconv.FormatBool(d.AllowNull),
				strconv.Itoa(d.Index),
			})
		}
		tbl.Render()
	}
	fmt.Fprintf(w, "(%d tables)\n", len(schemas))
}
