package query

import (
	"sort"
	"strings"

	"github.com/balsymbols/symbolindex/internal/symbols"
)

// domainRule is one entry of the fixed business-domain keyword
// dictionary. Order is significant only for deterministic
// ClassifyDomains output, not for matching precedence — an object can
// belong to more than one domain.
type domainRule struct {
	Tag      string
	Keywords []string
}

var domainRules = []domainRule{
	{Tag: "Sales", Keywords: []string{"sales", "customer", "quote", "invoice", "shipment", "order", "credit memo"}},
	{Tag: "Purchasing", Keywords: []string{"purchase", "vendor", "purchasing"}},
	{Tag: "Finance", Keywords: []string{"general ledger", "gl entry", "account", "finance", "vat", "bank", "payment", "currency"}},
	{Tag: "Inventory", Keywords: []string{"item", "inventory", "warehouse", "stock", "bin", "location"}},
	{Tag: "Manufacturing", Keywords: []string{"production", "manufacturing", "routing", "bom", "capacity", "work center"}},
	{Tag: "Service", Keywords: []string{"service", "resource", "contract", "repair", "dispatch"}},
}

// ClassifyDomains returns every domain tag whose keyword dictionary
// matches name. The literal case-insensitive substring rule is
// authoritative; a stemmed-token match adds recall on top of it but
// never removes a literal match.
func (e *Engine) ClassifyDomains(name string) []string {
	lower := strings.ToLower(name)

	stems := make(map[string]bool)
	for _, field := range strings.FieldsFunc(lower, func(r rune) bool { return r == ' ' || r == '.' || r == '_' }) {
		stems[e.stemmer.Stem(field)] = true
	}

	var tags []string
	for _, rule := range domainRules {
		if matchesDomain(rule, lower, stems, e.stemmer) {
			tags = append(tags, rule.Tag)
		}
	}
	return tags
}

func matchesDomain(rule domainRule, lower string, stems map[string]bool, stemmer interface{ Stem(string) string }) bool {
	for _, kw := range rule.Keywords {
		if strings.Contains(lower, kw) {
			return true
		}
		if stems[stemmer.Stem(kw)] {
			return true
		}
	}
	return false
}

// SearchByDomain returns every loaded object (optionally restricted to
// typeFilter) whose name classifies into domainTag.
func (e *Engine) SearchByDomain(domainTag string, typeFilter symbols.ObjectType, hasTypeFilter bool) []*symbols.Object {
	var pool []*symbols.Object
	if hasTypeFilter {
		pool = e.db.GetByType(typeFilter)
	} else {
		pool = e.db.AllObjects()
	}

	var out []*symbols.Object
	for _, obj := range pool {
		for _, tag := range e.ClassifyDomains(obj.Name) {
			if strings.EqualFold(tag, domainTag) {
				out = append(out, obj)
				break
			}
		}
	}

	sort.Slice(out, func(i, j int) bool {
		if out[i].PackageName != out[j].PackageName {
			return out[i].PackageName < out[j].PackageName
		}
		if !strings.EqualFold(out[i].Name, out[j].Name) {
			return strings.ToLower(out[i].Name) < strings.ToLower(out[j].Name)
		}
		if out[i].Type != out[j].Type {
			return out[i].Type < out[j].Type
		}
		return out[i].Id < out[j].Id
	})
	return out
}
