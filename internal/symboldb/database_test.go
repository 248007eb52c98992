package symboldb

import (
	"testing"

	"github.com/balsymbols/symbolindex/internal/symbols"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func table(pkg string, id symbols.Id, name string) *symbols.Object {
	return &symbols.Object{Type: symbols.Table, Id: id, Name: name, PackageName: pkg}
}

func TestInsertAndGetById(t *testing.T) {
	db := New()
	obj := table("Base", 50100, "Sandwich")
	db.Insert(obj)

	got, ok := db.GetById(symbols.Ref{Type: symbols.Table, Id: 50100})
	require.True(t, ok)
	assert.Equal(t, "Sandwich", got.Name)
}

func TestGetByNameCaseInsensitive(t *testing.T) {
	db := New()
	db.Insert(table("Base", 1, "Sandwich"))

	got := db.GetByName("SANDWICH")
	require.Len(t, got, 1)
	assert.Equal(t, symbols.Id(1), got[0].Id)
}

func TestEvictPackageRemovesOnlyThatPackage(t *testing.T) {
	db := New()
	db.Insert(table("A", 1, "Foo"))
	db.Insert(table("B", 2, "Bar"))

	db.EvictPackage("A")

	_, ok := db.GetById(symbols.Ref{Type: symbols.Table, Id: 1})
	assert.False(t, ok)
	_, ok = db.GetById(symbols.Ref{Type: symbols.Table, Id: 2})
	assert.True(t, ok)

	stats := db.Stats()
	assert.Equal(t, 1, stats.TotalObjects)
	assert.Equal(t, 1, stats.PackageCount)
}

func TestSearchTieBreakOrdering(t *testing.T) {
	db := New()
	db.Insert(table("Z", 1, "Sales"))
	db.Insert(table("A", 2, "Sales Invoice"))
	db.Insert(table("A", 3, "Sales"))

	results := db.Search("sales", SearchOptions{})
	require.Len(t, results, 3)

	// Exact matches ("Sales") come first, ordered by PackageName.
	assert.Equal(t, "A", results[0].PackageName)
	assert.Equal(t, symbols.Id(3), results[0].Id)
	assert.Equal(t, "Z", results[1].PackageName)
	assert.Equal(t, symbols.Id(1), results[1].Id)
	// Contains match ("Sales Invoice") is last.
	assert.Equal(t, symbols.Id(2), results[2].Id)
}

func TestSearchPrefixWildcard(t *testing.T) {
	db := New()
	db.Insert(table("A", 1, "Customer"))
	db.Insert(table("A", 2, "Customer Ledger Entry"))
	db.Insert(table("A", 3, "Vendor"))

	results := db.Search("Customer*", SearchOptions{})
	require.Len(t, results, 2)
}

func TestSearchContainsWildcard(t *testing.T) {
	db := New()
	db.Insert(table("A", 1, "Posted Sales Invoice"))
	db.Insert(table("A", 2, "Sales Invoice"))
	db.Insert(table("A", 3, "Vendor"))

	results := db.Search("*Invoice*", SearchOptions{})
	require.Len(t, results, 2)
}

func TestSearchTypeFilter(t *testing.T) {
	db := New()
	db.Insert(table("A", 1, "Sandwich"))
	db.Insert(&symbols.Object{Type: symbols.Page, Id: 2, Name: "Sandwich Card", PackageName: "A"})

	results := db.Search("Sandwich", SearchOptions{HasTypeFilter: true, TypeFilter: symbols.Page})
	require.Len(t, results, 1)
	assert.Equal(t, symbols.Page, results[0].Type)
}

func TestGetExtensions(t *testing.T) {
	db := New()
	base := table("A", 1, "Customer")
	ext := &symbols.Object{
		Type:        symbols.TableExtension,
		Id:          2,
		Name:        "Customer Ext",
		PackageName: "B",
		Properties:  symbols.PropertyList{{Name: symbols.ExtendsProperty, Value: "Customer"}},
	}
	db.Insert(base)
	db.Insert(ext)

	exts := db.GetExtensions("customer")
	require.Len(t, exts, 1)
	assert.Equal(t, symbols.Id(2), exts[0].Id)
}

func TestFindReferencesTableRelation(t *testing.T) {
	db := New()
	db.Insert(&symbols.Object{
		Type: symbols.Table, Id: 1, Name: "Sales Line", PackageName: "A",
		Payload: symbols.TablePayload{
			Fields: []symbols.Field{
				{Id: 1, Name: "Customer No.", Properties: symbols.PropertyList{{Name: "TableRelation", Value: "Customer"}}},
			},
		},
	})

	edges := db.FindReferences("Customer", FindReferencesOptions{})
	require.Len(t, edges, 1)
	assert.Equal(t, EdgeTableRelation, edges[0].Kind)
}

func TestFindReferencesSourceTable(t *testing.T) {
	db := New()
	db.Insert(&symbols.Object{
		Type: symbols.Page, Id: 1, Name: "Customer Card", PackageName: "A",
		Properties: symbols.PropertyList{{Name: "SourceTable", Value: "Customer"}},
	})

	edges := db.FindReferences("Customer", FindReferencesOptions{KindFilter: EdgeSourceTable, HasKindFilter: true})
	require.Len(t, edges, 1)
	assert.Equal(t, EdgeSourceTable, edges[0].Kind)
	assert.Equal(t, symbols.Id(1), edges[0].Source.Id)
}

func TestDropAndRebuildSecondaryIndices(t *testing.T) {
	db := New()
	db.Insert(table("A", 1, "Customer"))

	db.DropSecondaryIndices()
	results := db.Search("Customer*", SearchOptions{})
	require.Len(t, results, 1, "prefix search must fall back to a full scan when secondary indices are dropped")

	db.RebuildSecondaryIndices()
	results = db.Search("Customer*", SearchOptions{})
	require.Len(t, results, 1)
}
