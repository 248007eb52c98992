package symbols

import "sync"

// Interner deduplicates strings so that repeated object names, package
// names, and property keys across tens of thousands of symbols share a
// single backing allocation. Empirically, BAL manifests repeat the same
// field names ("No.", "Description"), property keys ("Caption",
// "TableRelation"), and package names across every object they touch, so
// interning is a meaningful working-set reduction rather than a
// micro-optimization.
type Interner struct {
	mu     sync.Mutex
	values map[string]string
}

// NewInterner creates an empty interner.
func NewInterner() *Interner {
	return &Interner{values: make(map[string]string, 4096)}
}

// Intern returns the canonical, shared copy of s.
func (in *Interner) Intern(s string) string {
	if s == "" {
		return s
	}
	in.mu.Lock()
	defer in.mu.Unlock()
	if existing, ok := in.values[s]; ok {
		return existing
	}
	in.values[s] = s
	return s
}

// InternProperties interns both the name and value of every property,
// returning a new slice (the input is never mutated).
func (in *Interner) InternProperties(props PropertyList) PropertyList {
	if len(props) == 0 {
		return props
	}
	out := make(PropertyList, len(props))
	for i, p := range props {
		out[i] = Property{Name: in.Intern(p.Name), Value: in.Intern(p.Value)}
	}
	return out
}

// Len reports how many distinct strings have been interned, for
// diagnostics.
func (in *Interner) Len() int {
	in.mu.Lock()
	defer in.mu.Unlock()
	return len(in.values)
}
