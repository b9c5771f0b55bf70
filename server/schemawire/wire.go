package schemawire

import "github.com/tuannm99/novaschema/internal/catalog"

// ResolveRequest asks the server to resolve table definitions. Exactly one
// of DDL (CREATE TABLE script) or Table must be set.
type ResolveRequest struct {
	ID    uint64         `json:"id"`
	DDL   string         `json:"ddl,omitempty"`
	Table *catalog.Table `json:"table,omitempty"`
}

// ResolveResponse is the response for a request ID.
type ResolveResponse struct {
	ID     uint64                 `json:"id"`
	Tables []*catalog.TableSchema `json:"tables,omitempty"`
	Error  string                 `json:"error,omitempty"`
}
