package introspect

import "strings"

// Native type names that are not resolver keywords, per dialect.
var dialectTypes = map[string]map[string]string{
	SQLite: {
		"TEXT":     "STRING",
		"NUMERIC":  "DECIMAL",
		"DATETIME": "TIMESTAMP",
		"CLOB":     "STRING",
	},
	MySQL: {
		"TINYTEXT":   "STRING",
		"TEXT":       "STRING",
		"MEDIUMTEXT": "STRING",
		"LONGTEXT":   "STRING",
		"SMALLINT":   "INT",
		"MEDIUMINT":  "INT",
		"NUMERIC":    "DECIMAL",
		"DATETIME":   "TIMESTAMP",
		"JSON":       "OBJECT",
		"TINYBLOB":   "BLOB",
		"MEDIUMBLOB": "BLOB",
		"LONGBLOB":   "BLOB",
	},
	Postgres: {
		"TEXT":        "STRING",
		"CHARACTER":   "VARCHAR", // "character varying" and "character"
		"UUID":        "STRING",
		"SMALLINT":    "INT",
		"INT2":        "INT",
		"INT4":        "INT",
		"INT8":        "BIGINT",
		"FLOAT4":      "FLOAT",
		"FLOAT8":      "DOUBLE",
		"NUMERIC":     "DECIMAL",
		"BYTEA":       "BYTES",
		"JSON":        "OBJECT",
		"JSONB":       "OBJECT",
		"TIMESTAMPTZ": "TIMESTAMP",
	},
}

// normalizeType reduces a native type to its leading keyword
// ("varchar(20)" -> VARCHAR, "double precision" -> DOUBLE, "integer[]" -> ARRAY)
// and maps dialect names to resolver keywords. An empty type stays empty.
func normalizeType(dialect, native string) string {
	t := strings.ToUpper(strings.TrimSpace(native))
	if t == "" {
		return ""
	}
	if strings.HasSuffix(t, "[]") || t == "ARRAY" {
		return "ARRAY"
	}
	t, _, _ = strings.Cut(t, "(")
	if f := strings.Fields(t); len(f) > 0 {
		t = f[0]
	}
	if to, ok := dialectTypes[dialect][t]; ok {
		return to
	}
	return t
}
