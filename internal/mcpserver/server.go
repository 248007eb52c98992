// Package mcpserver exposes the symbol engine over the Model Context
// Protocol: one registered tool per operation named in the tool
// surface, each validating its arguments, guarding against an empty
// database, delegating to the query engine and response shaper, and
// converting engine errors to the wire error shape.
package mcpserver

import (
	"context"

	"github.com/balsymbols/symbolindex/internal/config"
	"github.com/balsymbols/symbolindex/internal/logx"
	"github.com/balsymbols/symbolindex/internal/packages"
	"github.com/balsymbols/symbolindex/internal/query"
	"github.com/balsymbols/symbolindex/internal/symboldb"

	"github.com/google/jsonschema-go/jsonschema"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// Server wires the MCP tool surface onto a shared Database, query
// Engine, and package Manager. It holds no query state of its own.
type Server struct {
	mcpServer *mcp.Server

	db      *symboldb.Database
	engine  *query.Engine
	manager *packages.Manager
	cfg     *config.Config
	log     *logx.Logger
}

// New constructs a Server and registers every tool. Callers start it
// with Run.
func New(db *symboldb.Database, manager *packages.Manager, engine *query.Engine, cfg *config.Config, log *logx.Logger) *Server {
	if log == nil {
		log = logx.NoOp()
	}

	s := &Server{
		db:      db,
		engine:  engine,
		manager: manager,
		cfg:     cfg,
		log:     log,
	}

	s.mcpServer = mcp.NewServer(&mcp.Implementation{
		Name:    "balindex-mcp-server",
		Version: "0.1.0",
	}, nil)

	s.registerTools()
	return s
}

// Run serves the tool surface over stdio until ctx is canceled.
func (s *Server) Run(ctx context.Context) error {
	s.log.Info("mcp server starting", "transport", "stdio")
	return s.mcpServer.Run(ctx, &mcp.StdioTransport{})
}

func (s *Server) registerTools() {
	s.mcpServer.AddTool(&mcp.Tool{
		Name:        "search_objects",
		Description: "Search loaded BAL symbol objects by name pattern (literal substring unless the pattern contains '*').",
		InputSchema: &jsonschema.Schema{
			Type: "object",
			Properties: map[string]*jsonschema.Schema{
				"pattern":           {Type: "string", Description: "Literal substring, trailing '*' prefix, '*...*' contains, or full wildcard pattern"},
				"type":              {Type: "string", Description: "Restrict to one object type, e.g. Table, Page, Codeunit"},
				"package":           {Type: "string", Description: "Restrict to one loaded package name"},
				"includeFields":     {Type: "boolean", Description: "Attach each table's fields"},
				"includeProcedures": {Type: "boolean", Description: "Attach each object's procedures"},
				"summary":           {Type: "boolean", Description: "Return previews instead of full child collections"},
				"limit":             {Type: "integer", Description: "Page size, default 20, max 100"},
				"offset":            {Type: "integer", Description: "Page offset, default 0"},
			},
			Required: []string{"pattern"},
		},
	}, s.handleSearchObjects)

	s.mcpServer.AddTool(&mcp.Tool{
		Name:        "get_object_definition",
		Description: "Resolve a single object by (objectId, objectType) or by objectName, with its fields/keys/procedures.",
		InputSchema: &jsonschema.Schema{
			Type: "object",
			Properties: map[string]*jsonschema.Schema{
				"objectId":          {Type: "integer", Description: "Vendor-assigned object id; requires objectType"},
				"objectType":        {Type: "string", Description: "Object type, required alongside objectId"},
				"objectName":        {Type: "string", Description: "Object name, alternative to (objectId, objectType)"},
				"ref":               {Type: "string", Description: "Opaque ref token from a prior response, alternative to objectName and (objectId, objectType)"},
				"package":           {Type: "string", Description: "Narrow a by-name lookup to one package"},
				"includeFields":     {Type: "boolean"},
				"includeKeys":       {Type: "boolean"},
				"includeProcedures": {Type: "boolean"},
				"summary":           {Type: "boolean", Description: "Return previews instead of full child collections"},
			},
		},
	}, s.handleGetObjectDefinition)

	s.mcpServer.AddTool(&mcp.Tool{
		Name:        "find_references",
		Description: "Find every extends, source_table, or table_relation edge pointing at targetName. Uses and implements edges are not derived, so filtering on those kinds returns no items.",
		InputSchema: &jsonschema.Schema{
			Type: "object",
			Properties: map[string]*jsonschema.Schema{
				"targetName": {Type: "string"},
				"kind":       {Type: "string", Description: "Restrict to one edge kind"},
				"sourceType": {Type: "string", Description: "Restrict to one source object type"},
				"limit":      {Type: "integer"},
				"offset":     {Type: "integer"},
			},
			Required: []string{"targetName"},
		},
	}, s.handleFindReferences)

	s.mcpServer.AddTool(&mcp.Tool{
		Name:        "load_packages",
		Description: "Load (or reload) package files found at packagesPath: a single .app file, or a directory of them.",
		InputSchema: &jsonschema.Schema{
			Type: "object",
			Properties: map[string]*jsonschema.Schema{
				"packagesPath": {Type: "string", Description: "Absolute path to a .app file or a directory of .app files"},
				"forceReload":  {Type: "boolean", Description: "Reload even if a package's fingerprint is unchanged"},
			},
			Required: []string{"packagesPath"},
		},
	}, s.handleLoadPackages)

	s.mcpServer.AddTool(&mcp.Tool{
		Name:        "list_packages",
		Description: "List currently loaded packages with their resolved version.",
		InputSchema: &jsonschema.Schema{Type: "object"},
	}, s.handleListPackages)

	s.mcpServer.AddTool(&mcp.Tool{
		Name:        "auto_discover",
		Description: "Discover packages under rootPath's configured cache directory, keep only the highest version per package, and load them.",
		InputSchema: &jsonschema.Schema{
			Type: "object",
			Properties: map[string]*jsonschema.Schema{
				"rootPath":    {Type: "string", Description: "Absolute project root"},
				"forceReload": {Type: "boolean"},
			},
			Required: []string{"rootPath"},
		},
	}, s.handleAutoDiscover)

	s.mcpServer.AddTool(&mcp.Tool{
		Name:        "get_stats",
		Description: "Report object counts by type, loaded package count, and time of last insert.",
		InputSchema: &jsonschema.Schema{Type: "object"},
	}, s.handleGetStats)

	s.mcpServer.AddTool(&mcp.Tool{
		Name:        "search_by_domain",
		Description: "List loaded objects classified into a business domain (Sales, Purchasing, Finance, Inventory, Manufacturing, Service).",
		InputSchema: &jsonschema.Schema{
			Type: "object",
			Properties: map[string]*jsonschema.Schema{
				"domain": {Type: "string"},
				"type":   {Type: "string", Description: "Restrict to one object type"},
				"limit":  {Type: "integer"},
				"offset": {Type: "integer"},
			},
			Required: []string{"domain"},
		},
	}, s.handleSearchByDomain)

	s.mcpServer.AddTool(&mcp.Tool{
		Name:        "get_extensions",
		Description: "List every extension object targeting baseObjectName.",
		InputSchema: &jsonschema.Schema{
			Type: "object",
			Properties: map[string]*jsonschema.Schema{
				"baseObjectName": {Type: "string"},
			},
			Required: []string{"baseObjectName"},
		},
	}, s.handleGetExtensions)

	s.mcpServer.AddTool(&mcp.Tool{
		Name:        "search_procedures",
		Description: "Search the procedures of a Codeunit/Interface by an optional sub-pattern.",
		InputSchema: childSearchSchema(),
	}, s.handleSearchProcedures)

	s.mcpServer.AddTool(&mcp.Tool{
		Name:        "search_fields",
		Description: "Search the fields of a Table/TableExtension by an optional sub-pattern.",
		InputSchema: childSearchSchema(),
	}, s.handleSearchFields)

	s.mcpServer.AddTool(&mcp.Tool{
		Name:        "search_controls",
		Description: "Search the control tree of a Page/PageExtension by an optional sub-pattern, preserving ancestors of matches.",
		InputSchema: childSearchSchema(),
	}, s.handleSearchControls)

	s.mcpServer.AddTool(&mcp.Tool{
		Name:        "search_data_items",
		Description: "Search the data item tree of a Report/Query/XmlPort by an optional sub-pattern, preserving ancestors of matches.",
		InputSchema: childSearchSchema(),
	}, s.handleSearchDataItems)
}

func childSearchSchema() *jsonschema.Schema {
	return &jsonschema.Schema{
		Type: "object",
		Properties: map[string]*jsonschema.Schema{
			"objectName": {Type: "string", Description: "Name of the owning object"},
			"pattern":    {Type: "string", Description: "Optional sub-pattern, same wildcard rules as search_objects"},
			"limit":      {Type: "integer"},
			"offset":     {Type: "integer"},
		},
		Required: []string{"objectName"},
	}
}
