// Package query composes symboldb's low-level lookups into the
// tool-level operations the dispatcher exposes: search, definition
// resolution, reference finding, domain classification, and object
// summaries.
package query

import (
	"fmt"
	"sort"

	"github.com/balsymbols/symbolindex/internal/config"
	"github.com/balsymbols/symbolindex/internal/engineerr"
	"github.com/balsymbols/symbolindex/internal/symboldb"
	"github.com/balsymbols/symbolindex/internal/symbols"
	"github.com/balsymbols/symbolindex/internal/symtext"
)

// Engine is the query layer sitting on top of a Database. It owns the
// fuzzy matcher and stemmer used for did-you-mean suggestions and
// domain classification, configured per the active Config.
type Engine struct {
	db      *symboldb.Database
	fuzzy   *symtext.FuzzyMatcher
	stemmer *symtext.Stemmer
	cfg     *config.Config
}

// NewEngine constructs an Engine over db, configured from cfg.
func NewEngine(db *symboldb.Database, cfg *config.Config) *Engine {
	return &Engine{
		db:      db,
		fuzzy:   symtext.NewFuzzyMatcher(true, cfg.Search.FuzzyThreshold, "jaro-winkler"),
		stemmer: symtext.NewStemmer(true, "porter2", cfg.Search.StemMinLength, nil),
		cfg:     cfg,
	}
}

// ObjectRefInput resolves an object either by exact (Type, Id) or by
// Name, optionally narrowed by PackageFilter and/or TypeFilter.
type ObjectRefInput struct {
	Ref           *symbols.Ref
	Name          string
	PackageFilter string
	TypeFilter    symbols.ObjectType
	HasTypeFilter bool
}

// ObjectDefinition is a resolved object plus whichever child
// collections were requested.
type ObjectDefinition struct {
	Object     *symbols.Object
	Fields     []symbols.Field
	Keys       []symbols.Key
	Procedures []symbols.Procedure
}

// ObjectDefinitionOptions selects which child collections to attach.
type ObjectDefinitionOptions struct {
	IncludeFields     bool
	IncludeKeys       bool
	IncludeProcedures bool
}

// GetObjectDefinition resolves an object and attaches its fields,
// keys, and/or procedures per opts. Rejects with NotFound (carrying a
// didYouMean suggestion when resolving by Name) or Ambiguous.
func (e *Engine) GetObjectDefinition(input ObjectRefInput, opts ObjectDefinitionOptions) (*ObjectDefinition, error) {
	obj, err := e.resolveObject(input)
	if err != nil {
		return nil, err
	}

	def := &ObjectDefinition{Object: obj}
	if opts.IncludeFields || opts.IncludeKeys {
		if payload, ok := obj.Table(); ok {
			if opts.IncludeFields {
				def.Fields = payload.Fields
			}
			if opts.IncludeKeys {
				def.Keys = payload.Keys
			}
		}
	}
	if opts.IncludeProcedures {
		if procs, ok := e.db.ProceduresByObject(obj.Name); ok {
			def.Procedures = procs
		}
	}
	return def, nil
}

// resolveObject implements the shared Ref-or-Name resolution rule used
// by GetObjectDefinition and GetObjectSummary.
func (e *Engine) resolveObject(input ObjectRefInput) (*symbols.Object, error) {
	if input.Ref != nil {
		obj, ok := e.db.GetById(*input.Ref)
		if !ok {
			return nil, engineerr.NotFoundf("no object of type %s with id %d", input.Ref.Type, input.Ref.Id)
		}
		return obj, nil
	}

	candidates := e.db.GetByName(input.Name)
	candidates = filterByPackage(candidates, input.PackageFilter)
	candidates = filterByType(candidates, input.TypeFilter, input.HasTypeFilter)

	switch len(candidates) {
	case 0:
		return nil, e.notFoundWithSuggestion(input.Name)
	case 1:
		return candidates[0], nil
	default:
		return nil, ambiguousError(input.Name, candidates)
	}
}

func filterByPackage(objs []*symbols.Object, packageFilter string) []*symbols.Object {
	if packageFilter == "" {
		return objs
	}
	var out []*symbols.Object
	for _, obj := range objs {
		if obj.PackageName == packageFilter {
			out = append(out, obj)
		}
	}
	return out
}

func filterByType(objs []*symbols.Object, typeFilter symbols.ObjectType, hasTypeFilter bool) []*symbols.Object {
	if !hasTypeFilter {
		return objs
	}
	var out []*symbols.Object
	for _, obj := range objs {
		if obj.Type == typeFilter {
			out = append(out, obj)
		}
	}
	return out
}

// notFoundWithSuggestion builds a NotFound error and, when a
// sufficiently similar loaded name exists, attaches a didYouMean
// detail of up to FuzzySuggestMax candidates above FuzzyThreshold
// similarity.
func (e *Engine) notFoundWithSuggestion(name string) *engineerr.EngineError {
	err := engineerr.NotFoundf("no object named %q", name)

	matches := e.fuzzy.FindMatches(name, e.db.AllNames())
	if len(matches) == 0 {
		return err
	}
	max := e.cfg.Search.FuzzySuggestMax
	if max <= 0 || max > len(matches) {
		max = len(matches)
	}
	suggestions := make([]string, max)
	for i := 0; i < max; i++ {
		suggestions[i] = matches[i].Term
	}
	return err.WithDetail("didYouMean", suggestions)
}

func ambiguousError(name string, candidates []*symbols.Object) *engineerr.EngineError {
	labels := make([]string, len(candidates))
	for i, c := range candidates {
		labels[i] = fmt.Sprintf("%s (%s #%d, package %s)", c.Name, c.Type, c.Id, c.PackageName)
	}
	sort.Strings(labels)
	return engineerr.New(engineerr.Ambiguous, "%d objects named %q; disambiguate by type, id, or package", len(candidates), name).
		WithDetail("candidates", labels)
}
