package query

import (
	"github.com/balsymbols/symbolindex/internal/symboldb"
	"github.com/balsymbols/symbolindex/internal/symbols"
)

// SearchProcedures resolves objectName's procedure list (codeunit or
// interface) and filters it by pattern under Search's wildcard rules.
// An empty pattern returns every procedure.
func (e *Engine) SearchProcedures(objectName, pattern string) ([]symbols.Procedure, error) {
	procs, ok := e.db.ProceduresByObject(objectName)
	if !ok {
		return nil, e.notFoundWithSuggestion(objectName)
	}
	if pattern == "" {
		return procs, nil
	}
	var out []symbols.Procedure
	for _, p := range procs {
		if symboldb.MatchesPattern(pattern, p.Name) {
			out = append(out, p)
		}
	}
	return out, nil
}

// SearchFields resolves tableName's field list (table or table
// extension) and filters it by pattern.
func (e *Engine) SearchFields(tableName, pattern string) ([]symbols.Field, error) {
	fields, ok := e.db.FieldsByTable(tableName)
	if !ok {
		return nil, e.notFoundWithSuggestion(tableName)
	}
	if pattern == "" {
		return fields, nil
	}
	var out []symbols.Field
	for _, f := range fields {
		if symboldb.MatchesPattern(pattern, f.Name) {
			out = append(out, f)
		}
	}
	return out, nil
}

// SearchControls resolves pageName's control tree (page or page
// extension) and filters it by pattern, keeping a node whenever it
// matches or any descendant matches, so matches stay reachable within
// their original nesting.
func (e *Engine) SearchControls(pageName, pattern string) ([]symbols.Control, error) {
	controls, ok := e.db.ControlsByPage(pageName)
	if !ok {
		return nil, e.notFoundWithSuggestion(pageName)
	}
	if pattern == "" {
		return controls, nil
	}
	return filterControls(controls, pattern), nil
}

func filterControls(controls []symbols.Control, pattern string) []symbols.Control {
	var out []symbols.Control
	for _, c := range controls {
		children := filterControls(c.Children, pattern)
		if symboldb.MatchesPattern(pattern, c.Name) || len(children) > 0 {
			clone := c
			clone.Children = children
			out = append(out, clone)
		}
	}
	return out
}

// SearchDataItems resolves objectName's dataset tree (report, query,
// or xmlport) and filters it by pattern using the same ancestor-
// preserving rule as SearchControls.
func (e *Engine) SearchDataItems(objectName, pattern string) ([]symbols.DataItem, error) {
	items, ok := e.db.DataItemsByObject(objectName)
	if !ok {
		return nil, e.notFoundWithSuggestion(objectName)
	}
	if pattern == "" {
		return items, nil
	}
	return filterDataItems(items, pattern), nil
}

func filterDataItems(items []symbols.DataItem, pattern string) []symbols.DataItem {
	var out []symbols.DataItem
	for _, item := range items {
		children := filterDataItems(item.Children, pattern)
		if symboldb.MatchesPattern(pattern, item.Name) || len(children) > 0 {
			clone := item
			clone.Children = children
			out = append(out, clone)
		}
	}
	return out
}
