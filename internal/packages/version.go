package packages

import "sort"

// groupKey identifies a logical package regardless of version.
type groupKey struct {
	Publisher string
	Name      string
}

// FilterHighestVersions groups metadata by (Publisher, Name) and keeps
// only the highest Version within each group. Files that did not parse
// to conventional metadata are passed through unfiltered — there is no
// group to supersede them within.
func FilterHighestVersions(candidates []Metadata, unparsed []string) []Metadata {
	groups := make(map[groupKey]Metadata)

	for _, m := range candidates {
		key := groupKey{Publisher: m.Publisher, Name: m.Name}
		current, ok := groups[key]
		if !ok || m.Version.Compare(current.Version) > 0 {
			groups[key] = m
		}
	}

	out := make([]Metadata, 0, len(groups))
	for _, m := range groups {
		out = append(out, m)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Publisher != out[j].Publisher {
			return out[i].Publisher < out[j].Publisher
		}
		return out[i].Name < out[j].Name
	})

	return out
}

// TopologicalLoadOrder orders packages by their declared dependencies.
// Dependencies are informational only: a package with an unresolved or
// cyclic dependency still loads, just in an arbitrary position within
// the cycle. reportedCycles, if non-nil, is appended with one entry per
// edge broken to resolve a cycle.
func TopologicalLoadOrder(pkgs []Metadata, deps map[groupKey][]Dependency, reportedCycles *[]string) []Metadata {
	byKey := make(map[groupKey]Metadata, len(pkgs))
	for _, p := range pkgs {
		byKey[groupKey{Publisher: p.Publisher, Name: p.Name}] = p
	}

	visited := make(map[groupKey]bool)
	inProgress := make(map[groupKey]bool)
	var order []Metadata

	var visit func(key groupKey)
	visit = func(key groupKey) {
		if visited[key] {
			return
		}
		if inProgress[key] {
			if reportedCycles != nil {
				*reportedCycles = append(*reportedCycles, key.Publisher+"/"+key.Name)
			}
			return
		}
		p, ok := byKey[key]
		if !ok {
			return
		}
		inProgress[key] = true
		for _, dep := range deps[key] {
			visit(groupKey{Publisher: dep.Publisher, Name: dep.Name})
		}
		inProgress[key] = false
		visited[key] = true
		order = append(order, p)
	}

	for _, p := range pkgs {
		visit(groupKey{Publisher: p.Publisher, Name: p.Name})
	}

	return order
}
