// Package shaping ensures every payload returned across the tool
// boundary respects a token/size budget without silently dropping
// identity information: summary-mode property pruning, list previews
// and hard caps, pagination, and a token-count size warning.
package shaping

import "github.com/balsymbols/symbolindex/internal/symbols"

const (
	// PreviewCount is how many items of a list are shown in summary mode.
	PreviewCount = 3

	HardFieldCap      = 50
	HardProcedureCap  = 20
	HardDependencyCap = 20
)

// Options configures one shaping pass. Summary defaults to true;
// explicit per-list limits only take effect once the caller sets
// Summary to false.
type Options struct {
	Summary         bool
	FieldLimit      int
	ProcedureLimit  int
	DependencyLimit int
}

// DefaultOptions is summary mode with no explicit overrides.
func DefaultOptions() Options {
	return Options{Summary: true}
}

// summaryPropertyKeys is the short essential property subset kept when
// summary mode is on: caption, classification, lookup target, and
// table-type, in that order.
var summaryPropertyKeys = []string{"Caption", "DataClassification", "SourceTable", "TableType"}

// ShapeProperties prunes props to the essential subset in summary
// mode; returns props unchanged otherwise.
func ShapeProperties(props symbols.PropertyList, opts Options) symbols.PropertyList {
	if !opts.Summary {
		return props
	}
	var out symbols.PropertyList
	for _, key := range summaryPropertyKeys {
		if v, ok := props.Get(key); ok {
			out = append(out, symbols.Property{Name: key, Value: v})
		}
	}
	return out
}

// List is a capped/previewed view of a child collection: Count is the
// true size before shaping, Items is what is actually returned, and
// Truncated reports whether Items is shorter than Count.
type List[T any] struct {
	Count     int
	Items     []T
	Truncated bool
}

func shapeList[T any](items []T, summary bool, explicitLimit, hardCap int) List[T] {
	limit := hardCap
	if !summary {
		if explicitLimit > 0 && explicitLimit <= hardCap {
			limit = explicitLimit
		}
	} else if PreviewCount < limit {
		limit = PreviewCount
	}

	if limit > len(items) {
		limit = len(items)
	}
	return List[T]{
		Count:     len(items),
		Items:     items[:limit],
		Truncated: limit < len(items),
	}
}

// ShapeFields previews to 3 in summary mode, else caps at FieldLimit
// (or the hard cap of 50 when no explicit limit is given).
func ShapeFields(fields []symbols.Field, opts Options) List[symbols.Field] {
	return shapeList(fields, opts.Summary, opts.FieldLimit, HardFieldCap)
}

// ShapeProcedures previews to PreviewCount in summary mode, else caps
// at ProcedureLimit (or the hard cap of 20).
//
// The spec's own worked example for a default-mode object summary
// shows 10 procedures rather than 3, which contradicts its own
// general rule of previewing "the first 3" of any list in summary
// mode. We keep the general rule (PreviewCount applies uniformly to
// fields, procedures, controls, and data items) rather than special-
// casing procedures to a different preview size.
func ShapeProcedures(procs []symbols.Procedure, opts Options) List[symbols.Procedure] {
	return shapeList(procs, opts.Summary, opts.ProcedureLimit, HardProcedureCap)
}

// ShapeControls previews to 3 in summary mode, else returns the full
// tree (controls are not individually capped beyond the preview —
// a page's control tree is bounded by the page itself).
func ShapeControls(controls []symbols.Control, opts Options) List[symbols.Control] {
	return shapeList(controls, opts.Summary, 0, len(controls))
}

// ShapeDataItems previews to 3 in summary mode, else returns the full
// tree.
func ShapeDataItems(items []symbols.DataItem, opts Options) List[symbols.DataItem] {
	return shapeList(items, opts.Summary, 0, len(items))
}

// ShapeDependencies omits the dependency list entirely in summary
// mode, else caps it at DependencyLimit (or the hard cap of 20).
func ShapeDependencies(deps []string, opts Options) List[string] {
	if opts.Summary {
		return List[string]{Count: len(deps)}
	}
	return shapeList(deps, false, opts.DependencyLimit, HardDependencyCap)
}
