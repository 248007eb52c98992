package mcpserver

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"

	"github.com/balsymbols/symbolindex/internal/engineerr"
	"github.com/balsymbols/symbolindex/internal/idcodec"
	"github.com/balsymbols/symbolindex/internal/query"
	"github.com/balsymbols/symbolindex/internal/shaping"
	"github.com/balsymbols/symbolindex/internal/symboldb"
	"github.com/balsymbols/symbolindex/internal/symbols"
	"github.com/balsymbols/symbolindex/pkg/pathutil"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// objectView is the JSON-facing projection of a symbols.Object: the
// type renders as its canonical name rather than its numeric tag, Ref is
// the opaque base-63 token a caller can hand back to get_object_definition
// instead of an (objectId, objectType) pair, and Properties has already
// been through the response shaper.
type objectView struct {
	Type        string               `json:"type"`
	Id          symbols.Id           `json:"id"`
	Ref         string               `json:"ref"`
	Name        string               `json:"name"`
	PackageName string               `json:"packageName"`
	Namespace   string               `json:"namespace,omitempty"`
	Properties  symbols.PropertyList `json:"properties,omitempty"`
	DomainTags  []string             `json:"domainTags,omitempty"`
}

func toObjectView(obj *symbols.Object, opts shaping.Options) objectView {
	return objectView{
		Type:        obj.Type.String(),
		Id:          obj.Id,
		Ref:         idcodec.EncodeObjectRef(obj.Ref()),
		Name:        obj.Name,
		PackageName: obj.PackageName,
		Namespace:   obj.Namespace,
		Properties:  shaping.ShapeProperties(obj.Properties, opts),
		DomainTags:  obj.DomainTags,
	}
}

// requireLoaded guards every query-layer tool against being called
// before any package was loaded.
func (s *Server) requireLoaded() *engineerr.EngineError {
	if s.db.Stats().TotalObjects == 0 {
		return engineerr.EmptyDatabaseError()
	}
	return nil
}

func parseTypeFilter(raw string) (symbols.ObjectType, bool, error) {
	if raw == "" {
		return symbols.Unknown, false, nil
	}
	t, ok := symbols.ParseObjectType(raw)
	if !ok {
		return symbols.Unknown, false, engineerr.InvalidArgumentf("unknown object type %q", raw)
	}
	return t, true, nil
}

func parseEdgeKind(raw string) (symboldb.EdgeKind, bool, error) {
	if raw == "" {
		return "", false, nil
	}
	switch k := symboldb.EdgeKind(raw); k {
	case symboldb.EdgeExtends, symboldb.EdgeSourceTable, symboldb.EdgeTableRelation, symboldb.EdgeUses, symboldb.EdgeImplements:
		return k, true, nil
	default:
		return "", false, engineerr.InvalidArgumentf("unknown edge kind %q", raw)
	}
}

func decodeArgs[T any](req *mcp.CallToolRequest) (*T, error) {
	var args T
	if err := json.Unmarshal(req.Params.Arguments, &args); err != nil {
		return nil, engineerr.Wrap(engineerr.InvalidArgument, err, "invalid arguments")
	}
	return &args, nil
}

func (s *Server) handleSearchObjects(ctx context.Context, req *mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args, err := decodeArgs[SearchObjectsParams](req)
	if err != nil {
		return errorResult(err)
	}
	if args.Pattern == "" {
		return errorResult(engineerr.InvalidArgumentf("pattern is required"))
	}
	if guard := s.requireLoaded(); guard != nil {
		return errorResult(guard)
	}

	typeFilter, hasType, err := parseTypeFilter(args.Type)
	if err != nil {
		return errorResult(err)
	}

	results := s.engine.SearchObjects(query.SearchObjectsInput{
		Pattern:           args.Pattern,
		TypeFilter:        typeFilter,
		HasTypeFilter:     hasType,
		PackageFilter:     args.Package,
		IncludeFields:     args.IncludeFields,
		IncludeProcedures: args.IncludeProcedures,
	})

	page, meta := shaping.Paginate(results, args.Limit, args.Offset)
	opts := shaping.Options{Summary: args.Summary}

	items := make([]map[string]any, len(page))
	for i, r := range page {
		item := map[string]any{"object": toObjectView(r.Object, opts)}
		if args.IncludeFields {
			item["fields"] = shaping.ShapeFields(r.Fields, opts)
		}
		if args.IncludeProcedures {
			item["procedures"] = shaping.ShapeProcedures(r.Procedures, opts)
		}
		items[i] = item
	}

	return toolResult(map[string]any{"items": items, "page": meta, "warnings": args.Warnings})
}

func (s *Server) handleGetObjectDefinition(ctx context.Context, req *mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args, err := decodeArgs[GetObjectDefinitionParams](req)
	if err != nil {
		return errorResult(err)
	}
	if guard := s.requireLoaded(); guard != nil {
		return errorResult(guard)
	}

	input := query.ObjectRefInput{
		Name:          args.ObjectName,
		PackageFilter: args.Package,
	}
	if args.Ref != "" {
		ref, err := idcodec.DecodeObjectRef(args.Ref)
		if err != nil {
			return errorResult(engineerr.InvalidArgumentf("invalid ref %q: %v", args.Ref, err))
		}
		input.Ref = &ref
	} else if args.ObjectId != nil {
		typeFilter, hasType, err := parseTypeFilter(args.ObjectType)
		if err != nil {
			return errorResult(err)
		}
		if !hasType {
			return errorResult(engineerr.InvalidArgumentf("objectType is required alongside objectId"))
		}
		input.Ref = &symbols.Ref{Type: typeFilter, Id: symbols.Id(*args.ObjectId)}
	} else if args.ObjectName == "" {
		return errorResult(engineerr.InvalidArgumentf("one of objectName, ref, or (objectId, objectType) is required"))
	} else if args.ObjectType != "" {
		typeFilter, hasType, err := parseTypeFilter(args.ObjectType)
		if err != nil {
			return errorResult(err)
		}
		input.TypeFilter = typeFilter
		input.HasTypeFilter = hasType
	}

	def, err := s.engine.GetObjectDefinition(input, query.ObjectDefinitionOptions{
		IncludeFields:     args.IncludeFields,
		IncludeKeys:       args.IncludeKeys,
		IncludeProcedures: args.IncludeProcedures,
	})
	if err != nil {
		return errorResult(err)
	}

	opts := shaping.Options{Summary: args.Summary}
	response := map[string]any{"object": toObjectView(def.Object, opts)}
	if args.IncludeFields {
		response["fields"] = shaping.ShapeFields(def.Fields, opts)
	}
	if args.IncludeKeys {
		response["keys"] = def.Keys
	}
	if args.IncludeProcedures {
		response["procedures"] = shaping.ShapeProcedures(def.Procedures, opts)
	}
	response["warnings"] = args.Warnings

	return toolResult(response)
}

func (s *Server) handleFindReferences(ctx context.Context, req *mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args, err := decodeArgs[FindReferencesParams](req)
	if err != nil {
		return errorResult(err)
	}
	if args.TargetName == "" {
		return errorResult(engineerr.InvalidArgumentf("targetName is required"))
	}
	if guard := s.requireLoaded(); guard != nil {
		return errorResult(guard)
	}

	kindFilter, hasKind, err := parseEdgeKind(args.Kind)
	if err != nil {
		return errorResult(err)
	}
	sourceFilter, hasSource, err := parseTypeFilter(args.SourceType)
	if err != nil {
		return errorResult(err)
	}

	edges := s.engine.FindReferences(args.TargetName, symboldb.FindReferencesOptions{
		KindFilter:       kindFilter,
		HasKindFilter:    hasKind,
		SourceTypeFilter: sourceFilter,
		HasSourceFilter:  hasSource,
	})

	page, meta := shaping.Paginate(edges, args.Limit, args.Offset)
	return toolResult(map[string]any{"items": page, "page": meta, "warnings": args.Warnings})
}

func (s *Server) handleLoadPackages(ctx context.Context, req *mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args, err := decodeArgs[LoadPackagesParams](req)
	if err != nil {
		return errorResult(err)
	}
	if args.PackagesPath == "" {
		return errorResult(engineerr.InvalidArgumentf("packagesPath is required"))
	}
	if !filepath.IsAbs(args.PackagesPath) {
		return errorResult(engineerr.InvalidArgumentf("packagesPath must be an absolute path, got %q", args.PackagesPath))
	}

	paths, err := resolvePackagePaths(args.PackagesPath)
	if err != nil {
		return errorResult(err)
	}

	report, err := s.manager.LoadPackages(ctx, paths, args.ForceReload)
	if err != nil {
		return errorResult(err)
	}

	return toolResult(map[string]any{"report": report, "warnings": args.Warnings})
}

// resolvePackagePaths expands packagesPath into the concrete .app
// files to load: itself, if it names a file, or every .app file found
// directly inside it (non-recursive; auto_discover is the recursive,
// version-resolving operation).
func resolvePackagePaths(packagesPath string) ([]string, error) {
	info, err := os.Stat(packagesPath)
	if err != nil {
		return nil, engineerr.Wrap(engineerr.IoError, err, "stat %q", packagesPath)
	}
	if !info.IsDir() {
		return []string{packagesPath}, nil
	}

	entries, err := os.ReadDir(packagesPath)
	if err != nil {
		return nil, engineerr.Wrap(engineerr.IoError, err, "read directory %q", packagesPath)
	}

	var paths []string
	for _, entry := range entries {
		if entry.IsDir() || !strings.EqualFold(filepath.Ext(entry.Name()), ".app") {
			continue
		}
		paths = append(paths, filepath.Join(packagesPath, entry.Name()))
	}
	return paths, nil
}

func (s *Server) handleListPackages(ctx context.Context, req *mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	loaded := s.manager.ListLoaded()
	items := make([]map[string]any, len(loaded))
	for i, meta := range loaded {
		items[i] = map[string]any{
			"publisher": meta.Publisher,
			"name":      meta.Name,
			"version":   meta.Version.String(),
			"filePath":  pathutil.ToRelative(meta.FilePath, s.cfg.Project.Root),
		}
	}
	return toolResult(map[string]any{"items": items})
}

func (s *Server) handleAutoDiscover(ctx context.Context, req *mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args, err := decodeArgs[AutoDiscoverParams](req)
	if err != nil {
		return errorResult(err)
	}
	if args.RootPath == "" {
		return errorResult(engineerr.InvalidArgumentf("rootPath is required"))
	}

	cfg := *s.cfg
	cfg.Project.Root = args.RootPath
	if args.ForceReload {
		cfg.ForceReload = true
	}

	report, err := s.manager.AutoDiscover(ctx, args.RootPath, &cfg)
	if err != nil {
		return errorResult(err)
	}
	return toolResult(map[string]any{"report": report, "warnings": args.Warnings})
}

func (s *Server) handleGetStats(ctx context.Context, req *mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	stats := s.db.Stats()
	byType := make(map[string]int, len(stats.ObjectsByType))
	for t, count := range stats.ObjectsByType {
		byType[t.String()] = count
	}
	return toolResult(map[string]any{
		"totalObjects":  stats.TotalObjects,
		"objectsByType": byType,
		"packageCount":  stats.PackageCount,
		"lastInsertAt":  stats.LastInsertAt,
	})
}

func (s *Server) handleSearchByDomain(ctx context.Context, req *mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args, err := decodeArgs[SearchByDomainParams](req)
	if err != nil {
		return errorResult(err)
	}
	if args.Domain == "" {
		return errorResult(engineerr.InvalidArgumentf("domain is required"))
	}
	if guard := s.requireLoaded(); guard != nil {
		return errorResult(guard)
	}

	typeFilter, hasType, err := parseTypeFilter(args.Type)
	if err != nil {
		return errorResult(err)
	}

	objs := s.engine.SearchByDomain(args.Domain, typeFilter, hasType)
	page, meta := shaping.Paginate(objs, args.Limit, args.Offset)

	opts := shaping.DefaultOptions()
	items := make([]objectView, len(page))
	for i, obj := range page {
		items[i] = toObjectView(obj, opts)
	}
	return toolResult(map[string]any{"items": items, "page": meta, "warnings": args.Warnings})
}

func (s *Server) handleGetExtensions(ctx context.Context, req *mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args, err := decodeArgs[GetExtensionsParams](req)
	if err != nil {
		return errorResult(err)
	}
	if args.BaseObjectName == "" {
		return errorResult(engineerr.InvalidArgumentf("baseObjectName is required"))
	}
	if guard := s.requireLoaded(); guard != nil {
		return errorResult(guard)
	}

	exts := s.engine.GetExtensions(args.BaseObjectName)
	opts := shaping.DefaultOptions()
	items := make([]objectView, len(exts))
	for i, obj := range exts {
		items[i] = toObjectView(obj, opts)
	}
	return toolResult(map[string]any{"items": items, "warnings": args.Warnings})
}

func (s *Server) handleSearchProcedures(ctx context.Context, req *mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args, err := decodeArgs[ChildSearchParams](req)
	if err != nil {
		return errorResult(err)
	}
	if args.ObjectName == "" {
		return errorResult(engineerr.InvalidArgumentf("objectName is required"))
	}
	if guard := s.requireLoaded(); guard != nil {
		return errorResult(guard)
	}

	procs, err := s.engine.SearchProcedures(args.ObjectName, args.Pattern)
	if err != nil {
		return errorResult(err)
	}
	page, meta := shaping.Paginate(procs, args.Limit, args.Offset)
	return toolResult(map[string]any{"items": page, "page": meta, "warnings": args.Warnings})
}

func (s *Server) handleSearchFields(ctx context.Context, req *mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args, err := decodeArgs[ChildSearchParams](req)
	if err != nil {
		return errorResult(err)
	}
	if args.ObjectName == "" {
		return errorResult(engineerr.InvalidArgumentf("objectName is required"))
	}
	if guard := s.requireLoaded(); guard != nil {
		return errorResult(guard)
	}

	fields, err := s.engine.SearchFields(args.ObjectName, args.Pattern)
	if err != nil {
		return errorResult(err)
	}
	page, meta := shaping.Paginate(fields, args.Limit, args.Offset)
	return toolResult(map[string]any{"items": page, "page": meta, "warnings": args.Warnings})
}

func (s *Server) handleSearchControls(ctx context.Context, req *mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args, err := decodeArgs[ChildSearchParams](req)
	if err != nil {
		return errorResult(err)
	}
	if args.ObjectName == "" {
		return errorResult(engineerr.InvalidArgumentf("objectName is required"))
	}
	if guard := s.requireLoaded(); guard != nil {
		return errorResult(guard)
	}

	controls, err := s.engine.SearchControls(args.ObjectName, args.Pattern)
	if err != nil {
		return errorResult(err)
	}
	page, meta := shaping.Paginate(controls, args.Limit, args.Offset)
	return toolResult(map[string]any{"items": page, "page": meta, "warnings": args.Warnings})
}

func (s *Server) handleSearchDataItems(ctx context.Context, req *mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args, err := decodeArgs[ChildSearchParams](req)
	if err != nil {
		return errorResult(err)
	}
	if args.ObjectName == "" {
		return errorResult(engineerr.InvalidArgumentf("objectName is required"))
	}
	if guard := s.requireLoaded(); guard != nil {
		return errorResult(guard)
	}

	items, err := s.engine.SearchDataItems(args.ObjectName, args.Pattern)
	if err != nil {
		return errorResult(err)
	}
	page, meta := shaping.Paginate(items, args.Limit, args.Offset)
	return toolResult(map[string]any{"items": page, "page": meta, "warnings": args.Warnings})
}
