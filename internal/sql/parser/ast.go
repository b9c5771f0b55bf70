package parser

// Statement is the root interface for all SQL statements.
type Statement interface {
	stmtNode()
}

// ----- CREATE TABLE -----
type ColumnDef struct {
	Name       string
	Type       string // upper-cased keyword, size/precision stripped
	NotNull    bool
	PrimaryKey bool // inline PRIMARY KEY
}

type CreateTableStmt struct {
	TableName string
	Columns   []ColumnDef
	// PrimaryKey holds the columns of a table-level PRIMARY KEY (...) clause, in clause order.
	PrimaryKey []string
}

func (*CreateTableStmt) stmtNode() {}
