package catalog

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"

	"github.com/tuannm99/novaschema/internal/sql/parser"
)

type fileYAML struct {
	Tables []*Table `mapstructure:"tables"`
}

// LoadViper reads a YAML, JSON or TOML file of the form
//
//	tables:
//	  - name: users
//	    columns:
//	      - {name: id, type: BIGINT, key: 0}
//	      - {name: email, type: VARCHAR, nullable: true}
//
// The format follows the file extension.
func LoadViper(path string) ([]*Table, error) {
	v := viper.New()
	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("read tables: %w", err)
	}

	var f fileYAML
	if err := v.Unmarshal(&f); err != nil {
		return nil, fmt.Errorf("unmarshal tables: %w", err)
	}
	return f.Tables, nil
}

// LoadDDL converts a script of CREATE TABLE statements.
func LoadDDL(src string) ([]*Table, error) {
	stmts, err := parser.ParseScript(src)
	if err != nil {
		return nil, err
	}
	out := make([]*Table, 0, len(stmts))
	for _, stmt := range stmts {
		ct, ok := stmt.(*parser.CreateTableStmt)
		if !ok {
			return nil, fmt.Errorf("catalog: unexpected statement %T", stmt)
		}
		t, err := FromCreateTable(ct)
		if err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, nil
}

// FromCreateTable converts a parsed CREATE TABLE. Key columns are never
// nullable; other columns are nullable unless declared NOT NULL.
func FromCreateTable(s *parser.CreateTableStmt) (*Table, error) {
	t := &Table{Name: s.TableName, Columns: make([]ColumnSpec, len(s.Columns))}
	pos := make(map[string]int, len(s.Columns))
	rank := 0
	for i, c := range s.Columns {
		t.Columns[i] = ColumnSpec{Name: c.Name, Type: c.Type, Null: !c.NotNull}
		pos[c.Name] = i
		if c.PrimaryKey {
			t.Columns[i].Key = ptr(rank)
			t.Columns[i].Null = false
			rank++
		}
	}
	for r, name := range s.PrimaryKey {
		i, ok := pos[name]
		if !ok {
			return nil, fmt.Errorf("%w: %q: PRIMARY KEY names unknown column %q", ErrInvalidTable, s.TableName, name)
		}
		t.Columns[i].Key = ptr(r)
		t.Columns[i].Null = false
	}
	return t, nil
}

// LoadFile reads table definitions, choosing the format by extension:
// .hcl, .sql, otherwise anything viper understands (.yaml, .yml, .json, .toml).
func LoadFile(path string) (*Catalog, error) {
	var (
		tables []*Table
		err    error
	)
	switch strings.ToLower(filepath.Ext(path)) {
	case ".hcl":
		var body []byte
		if body, err = os.ReadFile(path); err != nil {
			return nil, err
		}
		tables, err = LoadHCL(body, path)
	case ".sql":
		var body []byte
		if body, err = os.ReadFile(path); err != nil {
			return nil, err
		}
		tables, err = LoadDDL(string(body))
	default:
		tables, err = LoadViper(path)
	}
	if err != nil {
		return nil, err
	}
	return New(tables...)
}

func ptr[T any](v T) *T { return &v }
