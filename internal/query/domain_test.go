package query

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassifyDomainsLiteralSubstring(t *testing.T) {
	e, _ := newTestEngine(t)
	tags := e.ClassifyDomains("Sales Invoice Header")
	assert.Contains(t, tags, "Sales")
}

func TestClassifyDomainsStemmedRecall(t *testing.T) {
	e, _ := newTestEngine(t)
	tags := e.ClassifyDomains("Posted Invoicing Buffer")
	assert.Contains(t, tags, "Sales")
}

func TestClassifyDomainsNoMatch(t *testing.T) {
	e, _ := newTestEngine(t)
	tags := e.ClassifyDomains("Zzzqx Totally Unrelated")
	assert.Empty(t, tags)
}

func TestSearchByDomainFiltersByTag(t *testing.T) {
	e, db := newTestEngine(t)
	db.Insert(table("Base", 50100, "Sales Header", nil))
	db.Insert(table("Base", 50101, "Vendor Ledger Entry", nil))

	results := e.SearchByDomain("Sales", 0, false)
	require := assert.New(t)
	require.Len(results, 1)
	require.Equal("Sales Header", results[0].Name)
}
