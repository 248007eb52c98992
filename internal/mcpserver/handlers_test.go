package mcpserver

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/balsymbols/symbolindex/internal/config"
	"github.com/balsymbols/symbolindex/internal/idcodec"
	"github.com/balsymbols/symbolindex/internal/logx"
	"github.com/balsymbols/symbolindex/internal/packages"
	"github.com/balsymbols/symbolindex/internal/query"
	"github.com/balsymbols/symbolindex/internal/symboldb"
	"github.com/balsymbols/symbolindex/internal/symbols"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig() *config.Config {
	return &config.Config{
		Search: config.Search{
			FuzzyThreshold:  0.8,
			FuzzySuggestMax: 3,
			StemMinLength:   3,
		},
	}
}

func newTestServer(t *testing.T, seed func(db *symboldb.Database)) *Server {
	t.Helper()
	db := symboldb.New()
	if seed != nil {
		seed(db)
	}
	cfg := testConfig()
	engine := query.NewEngine(db, cfg)
	manager := packages.NewManager(db)
	return New(db, manager, engine, cfg, logx.NoOp())
}

func callTool(t *testing.T, handler func(context.Context, *mcp.CallToolRequest) (*mcp.CallToolResult, error), args any) (map[string]any, *mcp.CallToolResult) {
	t.Helper()
	raw, err := json.Marshal(args)
	require.NoError(t, err)

	result, err := handler(context.Background(), &mcp.CallToolRequest{
		Params: &mcp.CallToolParamsRaw{Arguments: raw},
	})
	require.NoError(t, err)
	require.Len(t, result.Content, 1)

	text, ok := result.Content[0].(*mcp.TextContent)
	require.True(t, ok)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal([]byte(text.Text), &decoded))
	return decoded, result
}

func seedCustomerTable(db *symboldb.Database) {
	db.Insert(&symbols.Object{
		Type:        symbols.Table,
		Id:          18,
		Name:        "Customer",
		PackageName: "Base Application",
		Properties:  symbols.PropertyList{{Name: "Caption", Value: "Customer"}},
		Payload: symbols.TablePayload{
			Fields: []symbols.Field{
				{Id: 1, Name: "No."},
				{Id: 2, Name: "Name"},
			},
			Keys: []symbols.Key{{Fields: []string{"No."}}},
		},
	})
}

func TestHandleSearchObjectsReturnsMatches(t *testing.T) {
	s := newTestServer(t, seedCustomerTable)
	decoded, _ := callTool(t, s.handleSearchObjects, SearchObjectsParams{Pattern: "Cust"})

	items, ok := decoded["items"].([]any)
	require.True(t, ok)
	assert.Len(t, items, 1)
}

func TestHandleSearchObjectsRequiresPattern(t *testing.T) {
	s := newTestServer(t, seedCustomerTable)
	_, result := callTool(t, s.handleSearchObjects, SearchObjectsParams{})
	assert.True(t, result.IsError)
}

func TestHandleSearchObjectsEmptyDatabaseGuard(t *testing.T) {
	s := newTestServer(t, nil)
	decoded, result := callTool(t, s.handleSearchObjects, SearchObjectsParams{Pattern: "x"})
	assert.True(t, result.IsError)
	assert.Equal(t, "EmptyDatabase", decoded["code"])
}

func TestHandleGetObjectDefinitionByName(t *testing.T) {
	s := newTestServer(t, seedCustomerTable)
	decoded, result := callTool(t, s.handleGetObjectDefinition, GetObjectDefinitionParams{
		ObjectName:    "Customer",
		IncludeFields: true,
	})
	require.False(t, result.IsError)
	obj, ok := decoded["object"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "Customer", obj["name"])
}

func TestHandleGetObjectDefinitionByRef(t *testing.T) {
	s := newTestServer(t, seedCustomerTable)
	ref := idcodec.EncodeObjectRef(symbols.Ref{Type: symbols.Table, Id: 18})

	decoded, result := callTool(t, s.handleGetObjectDefinition, GetObjectDefinitionParams{Ref: ref})
	require.False(t, result.IsError)
	obj, ok := decoded["object"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "Customer", obj["name"])
	assert.Equal(t, ref, obj["ref"])
}

func TestHandleGetObjectDefinitionRejectsInvalidRef(t *testing.T) {
	s := newTestServer(t, seedCustomerTable)
	decoded, result := callTool(t, s.handleGetObjectDefinition, GetObjectDefinitionParams{Ref: "!!!not-valid"})
	assert.True(t, result.IsError)
	assert.Equal(t, "InvalidArgument", decoded["code"])
}

func TestHandleGetObjectDefinitionNotFoundCarriesSuggestion(t *testing.T) {
	s := newTestServer(t, seedCustomerTable)
	decoded, result := callTool(t, s.handleGetObjectDefinition, GetObjectDefinitionParams{ObjectName: "Customr"})
	assert.True(t, result.IsError)
	assert.Equal(t, "NotFound", decoded["code"])
	details, ok := decoded["details"].(map[string]any)
	require.True(t, ok)
	assert.Contains(t, details, "didYouMean")
}

func TestHandleGetStatsReportsCounts(t *testing.T) {
	s := newTestServer(t, seedCustomerTable)
	decoded, result := callTool(t, s.handleGetStats, map[string]any{})
	require.False(t, result.IsError)
	assert.Equal(t, float64(1), decoded["totalObjects"])
}

func TestHandleSearchByDomainClassifiesSales(t *testing.T) {
	s := newTestServer(t, seedCustomerTable)
	decoded, result := callTool(t, s.handleSearchByDomain, SearchByDomainParams{Domain: "Sales"})
	require.False(t, result.IsError)
	items, ok := decoded["items"].([]any)
	require.True(t, ok)
	assert.Len(t, items, 1)
}

func TestHandleSearchFieldsFiltersSubPattern(t *testing.T) {
	s := newTestServer(t, seedCustomerTable)
	decoded, result := callTool(t, s.handleSearchFields, ChildSearchParams{ObjectName: "Customer", Pattern: "Name"})
	require.False(t, result.IsError)
	items, ok := decoded["items"].([]any)
	require.True(t, ok)
	assert.Len(t, items, 1)
}

func TestHandleListPackagesEmpty(t *testing.T) {
	s := newTestServer(t, nil)
	decoded, result := callTool(t, s.handleListPackages, map[string]any{})
	require.False(t, result.IsError)
	items, ok := decoded["items"].([]any)
	require.True(t, ok)
	assert.Empty(t, items)
}

func TestHandleLoadPackagesRejectsRelativePath(t *testing.T) {
	s := newTestServer(t, nil)
	decoded, result := callTool(t, s.handleLoadPackages, LoadPackagesParams{PackagesPath: "relative/path"})
	assert.True(t, result.IsError)
	assert.Equal(t, "InvalidArgument", decoded["code"])
}
