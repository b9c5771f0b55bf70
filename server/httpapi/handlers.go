package httpapi

import (
	"errors"
	"net/http"
	"sort"

	"github.com/tuannm99/novaschema/internal/catalog"
	"github.com/tuannm99/novaschema/internal/record"
)

type TypeEntry struct {
	Keyword    string         `json:"keyword"`
	Variant    record.Variant `json:"variant"`
	FixedWidth int            `json:"fixed_width"`
	Alias      string         `json:"alias_of,omitempty"`
}

type TypesResponse struct {
	Types []TypeEntry `json:"types"`
}

// ListTypes reports the built-in keywords plus configured aliases.
func (s *Server) ListTypes(c *CustomContext) error {
	var out []TypeEntry
	for kw, v := range record.Keywords() {
		out = append(out, TypeEntry{Keyword: kw, Variant: v, FixedWidth: v.FixedWidth()})
	}
	for alias, target := range s.resolver.Aliases() {
		v, err := s.resolver.ResolveTypeName(alias)
		if err != nil {
			return c.InternalError(err, "alias points to unknown keyword")
		}
		out = append(out, TypeEntry{Keyword: alias, Variant: v, FixedWidth: v.FixedWidth(), Alias: target})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Keyword < out[j].Keyword })
	return c.JSON(http.StatusOK, TypesResponse{Types: out})
}

type ResolveRequest struct {
	DDL   string         `json:"ddl" validate:"required_without=Table,excluded_with=Table"`
	Table *catalog.Table `json:"table" validate:"omitempty"`
}

type ResolveResponse struct {
	Tables []*catalog.TableSchema `json:"tables"`
}

type ErrorResponse struct {
	Error     string `json:"error"`
	RequestID string `json:"request_id"`
}

func (s *Server) Resolve(c *CustomContext) error {
	var body ResolveRequest
	if err := ValidateRequest(c, &body); err != nil {
		return err
	}

	tables, err := catalog.ResolveDefinition(s.resolver, body.DDL, body.Table)
	switch {
	case err == nil:
		return c.JSON(http.StatusOK, ResolveResponse{Tables: tables})
	case errors.Is(err, catalog.ErrBadRequest), errors.Is(err, catalog.ErrInvalidTable):
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error(), RequestID: c.RequestID})
	case errors.Is(err, record.ErrMissingType), errors.Is(err, record.ErrUnrecognizedType):
		return c.JSON(http.StatusUnprocessableEntity, ErrorResponse{Error: err.Error(), RequestID: c.RequestID})
	default:
		return c.InternalError(err, "error resolving definition")
	}
}
