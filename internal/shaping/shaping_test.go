package shaping

import (
	"strings"
	"testing"

	"github.com/balsymbols/symbolindex/internal/symbols"
	"github.com/stretchr/testify/assert"
)

func TestShapePropertiesSummaryModeKeepsEssentialSubset(t *testing.T) {
	props := symbols.PropertyList{
		{Name: "Caption", Value: "Sales Header"},
		{Name: "SomeInternalFlag", Value: "true"},
		{Name: "TableType", Value: "Normal"},
	}

	shaped := ShapeProperties(props, Options{Summary: true})
	assert.Len(t, shaped, 2)
	_, hasInternal := shaped.Get("SomeInternalFlag")
	assert.False(t, hasInternal)
}

func TestShapePropertiesNonSummaryReturnsEverything(t *testing.T) {
	props := symbols.PropertyList{
		{Name: "Caption", Value: "Sales Header"},
		{Name: "SomeInternalFlag", Value: "true"},
	}
	shaped := ShapeProperties(props, Options{Summary: false})
	assert.Len(t, shaped, 2)
}

func makeFields(n int) []symbols.Field {
	fields := make([]symbols.Field, n)
	for i := range fields {
		fields[i] = symbols.Field{Id: symbols.Id(i), Name: strings.Repeat("F", i+1)}
	}
	return fields
}

func TestShapeFieldsSummaryPreviewsThree(t *testing.T) {
	list := ShapeFields(makeFields(10), Options{Summary: true})
	assert.Equal(t, 10, list.Count)
	assert.Len(t, list.Items, 3)
	assert.True(t, list.Truncated)
}

func TestShapeFieldsHardCapWithoutExplicitLimit(t *testing.T) {
	list := ShapeFields(makeFields(80), Options{Summary: false})
	assert.Equal(t, 80, list.Count)
	assert.Len(t, list.Items, HardFieldCap)
	assert.True(t, list.Truncated)
}

func TestShapeFieldsExplicitLimitUnderCap(t *testing.T) {
	list := ShapeFields(makeFields(80), Options{Summary: false, FieldLimit: 10})
	assert.Len(t, list.Items, 10)
	assert.True(t, list.Truncated)
}

func TestShapeFieldsSmallerThanCapIsNotTruncated(t *testing.T) {
	list := ShapeFields(makeFields(5), Options{Summary: false})
	assert.Len(t, list.Items, 5)
	assert.False(t, list.Truncated)
}

func makeProcedures(n int) []symbols.Procedure {
	procs := make([]symbols.Procedure, n)
	for i := range procs {
		procs[i] = symbols.Procedure{Name: strings.Repeat("P", i+1)}
	}
	return procs
}

// Pins the chosen reading where the spec's prose is internally
// inconsistent: the general summary-mode rule previews the first
// PreviewCount (3) items of any list, uniformly across fields,
// procedures, controls, and data items.
func TestShapeProceduresSummaryPreviewsThree(t *testing.T) {
	list := ShapeProcedures(makeProcedures(10), Options{Summary: true})
	assert.Equal(t, 10, list.Count)
	assert.Len(t, list.Items, 3)
	assert.True(t, list.Truncated)
}

func TestShapeDependenciesOmittedInSummaryMode(t *testing.T) {
	deps := []string{"A", "B", "C"}
	list := ShapeDependencies(deps, Options{Summary: true})
	assert.Equal(t, 3, list.Count)
	assert.Empty(t, list.Items)
}

func TestShapeDependenciesCappedOutsideSummaryMode(t *testing.T) {
	deps := make([]string, 30)
	for i := range deps {
		deps[i] = strings.Repeat("d", i+1)
	}
	list := ShapeDependencies(deps, Options{Summary: false})
	assert.Len(t, list.Items, HardDependencyCap)
	assert.True(t, list.Truncated)
}
