package query

import (
	"github.com/balsymbols/symbolindex/internal/symboldb"
	"github.com/balsymbols/symbolindex/internal/symbols"
)

// SearchObjectsInput configures a pattern search plus which per-object
// child collections to attach.
type SearchObjectsInput struct {
	Pattern           string
	TypeFilter        symbols.ObjectType
	HasTypeFilter     bool
	PackageFilter     string
	IncludeFields     bool
	IncludeProcedures bool
}

// SearchResult pairs a matched object with whichever child
// collections were requested; the response shaper applies the final
// per-list caps before these reach a caller.
type SearchResult struct {
	Object     *symbols.Object
	Fields     []symbols.Field
	Procedures []symbols.Procedure
}

// SearchObjects runs a pattern search and attaches fields/procedures
// per input's include flags.
func (e *Engine) SearchObjects(input SearchObjectsInput) []SearchResult {
	objs := e.db.Search(input.Pattern, symboldb.SearchOptions{
		TypeFilter:    input.TypeFilter,
		HasTypeFilter: input.HasTypeFilter,
		PackageFilter: input.PackageFilter,
	})

	results := make([]SearchResult, len(objs))
	for i, obj := range objs {
		r := SearchResult{Object: obj}
		if input.IncludeFields {
			if payload, ok := obj.Table(); ok {
				r.Fields = payload.Fields
			}
		}
		if input.IncludeProcedures {
			if procs, ok := e.db.ProceduresByObject(obj.Name); ok {
				r.Procedures = procs
			}
		}
		results[i] = r
	}
	return results
}

// FindReferences delegates to the database's lazy reference derivation,
// returned unfiltered by count — pagination is the shaper's job.
func (e *Engine) FindReferences(targetName string, opts symboldb.FindReferencesOptions) []symboldb.Edge {
	return e.db.FindReferences(targetName, opts)
}

// GetExtensions returns every extension object targeting baseName.
func (e *Engine) GetExtensions(baseName string) []*symbols.Object {
	return e.db.GetExtensions(baseName)
}
