package symboldb

import (
	"regexp"
	"sort"
	"strings"

	"github.com/balsymbols/symbolindex/internal/symbols"
)

// matchTier orders results by match quality: exact beats prefix beats
// contains beats wildcard.
type matchTier int

const (
	tierExact matchTier = iota
	tierPrefix
	tierContains
	tierWildcard
	tierNone
)

// SearchOptions restricts a Search call by object kind and/or owning
// package.
type SearchOptions struct {
	TypeFilter    symbols.ObjectType // zero value (Unknown) means unrestricted
	HasTypeFilter bool
	PackageFilter string // empty means unrestricted
}

// Search implements the pattern contract: a literal case-insensitive
// substring unless pattern contains '*'. A trailing '*' is a prefix
// match, a pattern surrounded by '*...*' is a contains match, and any
// other placement of '*' is a full wildcard translated to a regular
// expression.
func (db *Database) Search(pattern string, opts SearchOptions) []*symbols.Object {
	db.mu.RLock()
	defer db.mu.RUnlock()

	kind, matcher := compilePattern(pattern)

	type scored struct {
		obj  *symbols.Object
		tier matchTier
	}
	var results []scored

	candidates := db.searchCandidates(kind, matcher)
	for _, obj := range candidates {
		if opts.HasTypeFilter && obj.Type != opts.TypeFilter {
			continue
		}
		if opts.PackageFilter != "" && obj.PackageName != opts.PackageFilter {
			continue
		}
		t := classify(kind, matcher, obj.Name)
		if t == tierNone {
			continue
		}
		results = append(results, scored{obj: obj, tier: t})
	}

	sort.Slice(results, func(i, j int) bool {
		a, b := results[i], results[j]
		if a.tier != b.tier {
			return a.tier < b.tier
		}
		if a.obj.PackageName != b.obj.PackageName {
			return a.obj.PackageName < b.obj.PackageName
		}
		if !strings.EqualFold(a.obj.Name, b.obj.Name) {
			return strings.ToLower(a.obj.Name) < strings.ToLower(b.obj.Name)
		}
		if a.obj.Type != b.obj.Type {
			return a.obj.Type < b.obj.Type
		}
		return a.obj.Id < b.obj.Id
	})

	out := make([]*symbols.Object, len(results))
	for i, r := range results {
		out[i] = r.obj
	}
	return out
}

// patternKind distinguishes how a search pattern should be evaluated.
type patternKind int

const (
	kindLiteral patternKind = iota
	kindPrefix
	kindContains
	kindWildcard
)

type compiledPattern struct {
	kind    patternKind
	literal string // lowercased, for literal/prefix/contains
	re      *regexp.Regexp
}

func compilePattern(pattern string) (patternKind, compiledPattern) {
	lower := strings.ToLower(pattern)

	if !strings.Contains(lower, "*") {
		return kindLiteral, compiledPattern{kind: kindLiteral, literal: lower}
	}

	if strings.HasPrefix(lower, "*") && strings.HasSuffix(lower, "*") && len(lower) > 1 {
		inner := lower[1 : len(lower)-1]
		if !strings.Contains(inner, "*") {
			return kindContains, compiledPattern{kind: kindContains, literal: inner}
		}
	}

	if strings.HasSuffix(lower, "*") && !strings.Contains(lower[:len(lower)-1], "*") {
		return kindPrefix, compiledPattern{kind: kindPrefix, literal: lower[:len(lower)-1]}
	}

	return kindWildcard, compiledPattern{kind: kindWildcard, re: wildcardToRegexp(lower)}
}

func wildcardToRegexp(pattern string) *regexp.Regexp {
	var b strings.Builder
	b.WriteString("^")
	for _, part := range strings.Split(pattern, "*") {
		b.WriteString(regexp.QuoteMeta(part))
		b.WriteString(".*")
	}
	expr := strings.TrimSuffix(b.String(), ".*") + "$"
	re, err := regexp.Compile(expr)
	if err != nil {
		// A pattern that fails to compile matches nothing rather than
		// panicking the caller.
		return regexp.MustCompile(`^\x00$`)
	}
	return re
}

// MatchesPattern reports whether name matches pattern under the same
// wildcard semantics as Search: a case-insensitive literal substring
// unless pattern contains '*', in which case trailing/surrounding '*'
// select prefix/contains matching and any other placement becomes a
// full wildcard. Exported so callers filtering a child collection
// (procedures, fields, controls, data items) reuse the same rules
// rather than re-implementing them.
func MatchesPattern(pattern, name string) bool {
	kind, cp := compilePattern(pattern)
	return classify(kind, cp, name) != tierNone
}

func classify(kind patternKind, cp compiledPattern, name string) matchTier {
	lower := strings.ToLower(name)

	switch cp.kind {
	case kindLiteral:
		if lower == cp.literal {
			return tierExact
		}
		if strings.Contains(lower, cp.literal) {
			return tierContains
		}
		return tierNone
	case kindPrefix:
		if lower == cp.literal {
			return tierExact
		}
		if strings.HasPrefix(lower, cp.literal) {
			return tierPrefix
		}
		return tierNone
	case kindContains:
		if lower == cp.literal {
			return tierExact
		}
		if strings.Contains(lower, cp.literal) {
			return tierContains
		}
		return tierNone
	case kindWildcard:
		if cp.re.MatchString(lower) {
			return tierWildcard
		}
		return tierNone
	}
	return tierNone
}

// EdgeKind is the closed set of reference-edge kinds findReferences
// can derive.
type EdgeKind string

const (
	EdgeExtends       EdgeKind = "extends"
	EdgeSourceTable   EdgeKind = "source_table"
	EdgeTableRelation EdgeKind = "table_relation"
	EdgeUses          EdgeKind = "uses"
	EdgeImplements    EdgeKind = "implements"
)

// Edge is a directed reference between two Symbol Objects, derived
// lazily from property scans rather than persisted separately.
type Edge struct {
	Kind   EdgeKind
	Source symbols.Ref
	Target string // target is named, not resolved, since the target may not be loaded
}

// FindReferencesOptions restricts findReferences by edge kind and/or
// the source object's type.
type FindReferencesOptions struct {
	KindFilter       EdgeKind
	HasKindFilter    bool
	SourceTypeFilter symbols.ObjectType
	HasSourceFilter  bool
}

// FindReferences derives every edge pointing at targetName from a
// linear scan of the relevant indices: extensionsByBase for `extends`,
// page SourceTable properties for `source_table`, and table field
// TableRelation properties for `table_relation`.
func (db *Database) FindReferences(targetName string, opts FindReferencesOptions) []Edge {
	db.mu.RLock()
	defer db.mu.RUnlock()

	var edges []Edge
	targetLower := strings.ToLower(targetName)

	if includeKind(opts, EdgeExtends) {
		for _, ext := range db.extensionsByBase[targetLower] {
			if includeSource(opts, ext.Type) {
				edges = append(edges, Edge{Kind: EdgeExtends, Source: ext.Ref(), Target: targetName})
			}
		}
	}

	if includeKind(opts, EdgeTableRelation) {
		for tableLower, fields := range db.fieldsByTable {
			owners := db.byNameCI[tableLower]
			for _, field := range fields {
				relation, ok := field.Properties.Get("TableRelation")
				if !ok || !strings.EqualFold(firstToken(relation), targetName) {
					continue
				}
				for _, owner := range owners {
					if includeSource(opts, owner.Type) {
						edges = append(edges, Edge{Kind: EdgeTableRelation, Source: owner.Ref(), Target: targetName})
					}
				}
			}
		}
	}

	if includeKind(opts, EdgeSourceTable) {
		for _, obj := range db.byType[symbols.Page] {
			sourceTable, ok := obj.Properties.Get("SourceTable")
			if !ok || !strings.EqualFold(sourceTable, targetName) {
				continue
			}
			if includeSource(opts, obj.Type) {
				edges = append(edges, Edge{Kind: EdgeSourceTable, Source: obj.Ref(), Target: targetName})
			}
		}
	}

	sort.Slice(edges, func(i, j int) bool {
		if edges[i].Source.Type != edges[j].Source.Type {
			return edges[i].Source.Type < edges[j].Source.Type
		}
		return edges[i].Source.Id < edges[j].Source.Id
	})

	return edges
}

// searchCandidates narrows the scan using the prefix trie when the
// pattern is a pure prefix match and the secondary indices are
// present; otherwise it falls back to every loaded object, which is
// always correct, only slower.
func (db *Database) searchCandidates(kind patternKind, cp compiledPattern) []*symbols.Object {
	if kind == kindPrefix && !db.secondaryDropped {
		return db.trie.search(cp.literal)
	}
	out := make([]*symbols.Object, 0, len(db.byId))
	for _, obj := range db.byId {
		out = append(out, obj)
	}
	return out
}

func includeKind(opts FindReferencesOptions, kind EdgeKind) bool {
	return !opts.HasKindFilter || opts.KindFilter == kind
}

func includeSource(opts FindReferencesOptions, t symbols.ObjectType) bool {
	return !opts.HasSourceFilter || opts.SourceTypeFilter == t
}

func firstToken(value string) string {
	if idx := strings.IndexAny(value, " ("); idx >= 0 {
		return strings.TrimSpace(value[:idx])
	}
	return strings.TrimSpace(value)
}

