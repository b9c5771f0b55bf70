package parser

import (
	"fmt"
	"strings"
	"unicode"
)

// parseIdent validates an identifier (table/column name).
// Rules (simple):
//   - must be exactly one token (no spaces)
//   - first char: letter or '_'
//   - rest: letter/digit/'_'
func parseIdent(s string) (string, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return "", fmt.Errorf("missing identifier")
	}

	parts := strings.Fields(s)
	if len(parts) != 1 {
		return "", fmt.Errorf("invalid identifier %q", s)
	}
	id := parts[0]

	for i, r := range id {
		if i == 0 {
			if !unicode.IsLetter(r) && r != '_' {
				return "", fmt.Errorf("invalid identifier %q", id)
			}
			continue
		}

		if !unicode.IsLetter(r) && !unicode.IsDigit(r) && r != '_' {
			return "", fmt.Errorf("invalid identifier %q", id)
		}
	}

	return id, nil
}

// Parse parses a single SQL statement into an AST.
// Policy: statement MUST end with ';'
func Parse(sql string) (Statement, error) {
	s := strings.TrimSpace(sql)
	if s == "" {
		return nil, fmt.Errorf("empty statement")
	}

	// Require ';' at the end (after trimming spaces/newlines)
	if !strings.HasSuffix(s, ";") {
		return nil, fmt.Errorf("missing ';' terminator")
	}

	// Strip the trailing ';' and trim again
	s = strings.TrimSpace(strings.TrimSuffix(s, ";"))
	if s == "" {
		return nil, fmt.Errorf("empty statement")
	}

	up := strings.ToUpper(s)

	switch {
	case strings.HasPrefix(up, "CREATE TABLE"):
		return parseCreateTable(s)
	default:
		return nil, fmt.Errorf("unsupported statement: %q", sql)
	}
}

// ParseScript parses every ';'-terminated statement in src.
func ParseScript(src string) ([]Statement, error) {
	var out []Statement
	for _, raw := range splitStatements(src) {
		stmt, err := Parse(raw)
		if err != nil {
			return nil, err
		}
		out = append(out, stmt)
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("empty script")
	}
	return out, nil
}

func parseCreateTable(sql string) (Statement, error) {
	// "CREATE TABLE users (id BIGINT PRIMARY KEY, name VARCHAR(20) NOT NULL)"
	withoutPrefix := strings.TrimSpace(sql[len("CREATE TABLE"):])
	parts := strings.SplitN(withoutPrefix, "(", 2)
	if len(parts) != 2 {
		return nil, fmt.Errorf("invalid CREATE TABLE syntax")
	}

	tableName, err := parseIdent(parts[0])
	if err != nil {
		return nil, fmt.Errorf("invalid CREATE TABLE syntax: %w", err)
	}

	defPart := strings.TrimSpace(parts[1])
	if !strings.HasSuffix(defPart, ")") {
		return nil, fmt.Errorf("invalid CREATE TABLE syntax: missing ')'")
	}
	defPart = strings.TrimSpace(strings.TrimSuffix(defPart, ")"))
	if defPart == "" {
		return nil, fmt.Errorf("invalid CREATE TABLE syntax: empty column list")
	}

	stmt := &CreateTableStmt{TableName: tableName}
	for _, def := range splitComma(defPart) {
		def = strings.TrimSpace(def)
		if isPrimaryKeyClause(def) {
			if stmt.PrimaryKey != nil {
				return nil, fmt.Errorf("multiple PRIMARY KEY clauses")
			}
			if stmt.PrimaryKey, err = parseKeyClause(def); err != nil {
				return nil, err
			}
			continue
		}

		col, err := parseColumnDef(def)
		if err != nil {
			return nil, err
		}
		stmt.Columns = append(stmt.Columns, col)
	}

	if len(stmt.Columns) == 0 {
		return nil, fmt.Errorf("invalid CREATE TABLE syntax: empty column list")
	}
	if stmt.PrimaryKey != nil {
		for _, c := range stmt.Columns {
			if c.PrimaryKey {
				return nil, fmt.Errorf("column %q: inline PRIMARY KEY conflicts with table PRIMARY KEY clause", c.Name)
			}
		}
	}
	return stmt, nil
}

func parseColumnDef(def string) (ColumnDef, error) {
	toks := strings.Fields(def)
	if len(toks) < 2 {
		return ColumnDef{}, fmt.Errorf("invalid column def: %q", def)
	}

	colName, err := parseIdent(toks[0])
	if err != nil {
		return ColumnDef{}, fmt.Errorf("invalid column name: %w", err)
	}

	// VARCHAR(20), DECIMAL(10, 2) and "VARCHAR (20)" all reduce to the keyword.
	typ, after, hasArgs := strings.Cut(toks[1], "(")
	if typ == "" {
		return ColumnDef{}, fmt.Errorf("invalid column def: %q", def)
	}
	rest := toks[2:]
	open := hasArgs && !strings.Contains(after, ")")
	if !hasArgs && len(rest) > 0 && strings.HasPrefix(rest[0], "(") {
		open = !strings.Contains(rest[0], ")")
		rest = rest[1:]
	}
	for open && len(rest) > 0 {
		open = !strings.Contains(rest[0], ")")
		rest = rest[1:]
	}
	if open {
		return ColumnDef{}, fmt.Errorf("column %q: unbalanced type arguments", colName)
	}

	col := ColumnDef{Name: colName, Type: strings.ToUpper(typ)}
	for i := 0; i < len(rest); i++ {
		switch strings.ToUpper(rest[i]) {
		case "NULL":
			col.NotNull = false
		case "NOT":
			if i+1 >= len(rest) || strings.ToUpper(rest[i+1]) != "NULL" {
				return ColumnDef{}, fmt.Errorf("column %q: expected NULL after NOT", colName)
			}
			col.NotNull = true
			i++
		case "PRIMARY":
			if i+1 >= len(rest) || strings.ToUpper(rest[i+1]) != "KEY" {
				return ColumnDef{}, fmt.Errorf("column %q: expected KEY after PRIMARY", colName)
			}
			col.PrimaryKey = true
			i++
		default:
			return ColumnDef{}, fmt.Errorf("column %q: unsupported constraint %q", colName, rest[i])
		}
	}
	return col, nil
}

func isPrimaryKeyClause(def string) bool {
	toks := strings.Fields(strings.ToUpper(def))
	return len(toks) >= 2 && toks[0] == "PRIMARY" && strings.HasPrefix(toks[1], "KEY")
}

// parseKeyClause parses "PRIMARY KEY (a, b)".
func parseKeyClause(def string) ([]string, error) {
	_, list, ok := strings.Cut(def, "(")
	if !ok || !strings.HasSuffix(list, ")") {
		return nil, fmt.Errorf("invalid PRIMARY KEY clause: %q", def)
	}
	list = strings.TrimSuffix(list, ")")

	var cols []string
	seen := map[string]bool{}
	for _, raw := range strings.Split(list, ",") {
		name, err := parseIdent(raw)
		if err != nil {
			return nil, fmt.Errorf("invalid PRIMARY KEY clause: %w", err)
		}
		if seen[name] {
			return nil, fmt.Errorf("invalid PRIMARY KEY clause: duplicate column %q", name)
		}
		seen[name] = true
		cols = append(cols, name)
	}
	return cols, nil
}

// splitComma splits a comma-separated list, ignoring commas inside quotes
// and parentheses (DECIMAL(10,2), PRIMARY KEY (a, b)).
func splitComma(s string) []string {
	parts := []string{}
	cur := strings.Builder{}
	inQuote := false
	depth := 0
	for _, r := range s {
		switch {
		case r == '\'':
			inQuote = !inQuote
			cur.WriteRune(r)
		case r == '(' && !inQuote:
			depth++
			cur.WriteRune(r)
		case r == ')' && !inQuote:
			depth--
			cur.WriteRune(r)
		case r == ',' && !inQuote && depth == 0:
			parts = append(parts, cur.String())
			cur.Reset()
		default:
			cur.WriteRune(r)
		}
	}
	if cur.Len() > 0 {
		parts = append(parts, cur.String())
	}
	return parts
}

// splitStatements splits a script on ';' outside single quotes. Each returned
// statement keeps its terminator.
func splitStatements(src string) []string {
	var out []string
	cur := strings.Builder{}
	inQuote := false
	for _, r := range src {
		cur.WriteRune(r)
		switch r {
		case '\'':
			inQuote = !inQuote
		case ';':
			if inQuote {
				continue
			}
			if stmt := strings.TrimSpace(cur.String()); stmt != ";" {
				out = append(out, stmt)
			}
			cur.Reset()
		}
	}
	if rest := strings.TrimSpace(cur.String()); rest != "" {
		// unterminated tail; Parse reports the missing ';'
		out = append(out, rest)
	}
	return out
}
