package query

import (
	"fmt"
	"strings"

	"github.com/balsymbols/symbolindex/internal/symbols"
)

const maxSummaryExemplars = 5

// procedureCategoryRule is one entry of the fixed, ordered
// classification used by getObjectSummary. The first rule whose
// predicate matches a procedure's name wins.
type procedureCategoryRule struct {
	Name      string
	Predicate func(lower string) bool
}

var procedureCategoryRules = []procedureCategoryRule{
	{"entry points", func(l string) bool {
		return strings.HasPrefix(l, "run") || l == "onrun" || strings.HasPrefix(l, "main")
	}},
	{"validation", func(l string) bool {
		return strings.Contains(l, "validate") || strings.HasPrefix(l, "check")
	}},
	{"posting/mutation", func(l string) bool {
		return strings.Contains(l, "post") ||
			strings.HasPrefix(l, "insert") || strings.HasPrefix(l, "modify") ||
			strings.HasPrefix(l, "delete") || strings.HasPrefix(l, "update") ||
			strings.HasPrefix(l, "create")
	}},
	{"data processing", func(l string) bool {
		return strings.HasPrefix(l, "process") || strings.HasPrefix(l, "calc") ||
			strings.HasPrefix(l, "calculate") || strings.HasPrefix(l, "transform")
	}},
	{"event handlers", func(l string) bool {
		return strings.HasPrefix(l, "on")
	}},
	{"getters/utilities", func(l string) bool {
		return strings.HasPrefix(l, "get") || strings.HasPrefix(l, "set") ||
			strings.HasPrefix(l, "is") || strings.HasPrefix(l, "has") || strings.HasPrefix(l, "format")
	}},
	{"error handling", func(l string) bool {
		return strings.Contains(l, "error") || strings.HasPrefix(l, "throw") || strings.HasPrefix(l, "raise")
	}},
}

const procedureCategoryOther = "other"

func categorizeProcedure(name string) string {
	lower := strings.ToLower(name)
	for _, rule := range procedureCategoryRules {
		if rule.Predicate(lower) {
			return rule.Name
		}
	}
	return procedureCategoryOther
}

// ProcedureCategory is one bucket of getObjectSummary's procedure
// breakdown.
type ProcedureCategory struct {
	Name      string
	Count     int
	Exemplars []string
}

// ObjectSummary is the result of getObjectSummary.
type ObjectSummary struct {
	Object      *symbols.Object
	Description string
	Categories  []ProcedureCategory
}

// GetObjectSummary resolves name (optionally narrowed by typeFilter)
// and categorizes its procedures by the fixed ordered rule list,
// capping exemplars at 5 per category.
func (e *Engine) GetObjectSummary(name string, typeFilter symbols.ObjectType, hasTypeFilter bool) (*ObjectSummary, error) {
	obj, err := e.resolveObject(ObjectRefInput{Name: name, TypeFilter: typeFilter, HasTypeFilter: hasTypeFilter})
	if err != nil {
		return nil, err
	}

	procs, _ := e.db.ProceduresByObject(obj.Name)

	buckets := make(map[string][]string)
	for _, p := range procs {
		cat := categorizeProcedure(p.Name)
		buckets[cat] = append(buckets[cat], p.Name)
	}

	categoryOrder := make([]string, 0, len(procedureCategoryRules)+1)
	for _, rule := range procedureCategoryRules {
		categoryOrder = append(categoryOrder, rule.Name)
	}
	categoryOrder = append(categoryOrder, procedureCategoryOther)

	var categories []ProcedureCategory
	for _, cat := range categoryOrder {
		names, ok := buckets[cat]
		if !ok {
			continue
		}
		exemplars := names
		if len(exemplars) > maxSummaryExemplars {
			exemplars = exemplars[:maxSummaryExemplars]
		}
		categories = append(categories, ProcedureCategory{Name: cat, Count: len(names), Exemplars: exemplars})
	}

	return &ObjectSummary{
		Object:      obj,
		Description: describeObject(obj, len(procs)),
		Categories:  categories,
	}, nil
}

func describeObject(obj *symbols.Object, procedureCount int) string {
	switch {
	case procedureCount > 0:
		return fmt.Sprintf("%s %q (package %s) declares %d procedure(s).", obj.Type, obj.Name, obj.PackageName, procedureCount)
	default:
		return fmt.Sprintf("%s %q (package %s).", obj.Type, obj.Name, obj.PackageName)
	}
}
