package mcpserver

import "encoding/json"

// SearchObjectsParams is the search_objects tool's argument shape.
type SearchObjectsParams struct {
	Pattern           string `json:"pattern"`
	Type              string `json:"type,omitempty"`
	Package           string `json:"package,omitempty"`
	IncludeFields     bool   `json:"includeFields,omitempty"`
	IncludeProcedures bool   `json:"includeProcedures,omitempty"`
	Summary           bool   `json:"summary,omitempty"`
	Limit             int    `json:"limit,omitempty"`
	Offset            int    `json:"offset,omitempty"`

	Warnings []UnknownField `json:"-"`
}

var searchObjectsKnown = map[string]struct{}{
	"pattern": {}, "type": {}, "package": {}, "includeFields": {},
	"includeProcedures": {}, "summary": {}, "limit": {}, "offset": {},
}

var searchObjectsAliases = map[string]string{
	"objectType":    "type",
	"packageName":   "package",
	"objectPattern": "pattern",
}

func (p *SearchObjectsParams) UnmarshalJSON(data []byte) error {
	type alias SearchObjectsParams
	normalized, warnings, err := normalizeAliases(data, searchObjectsKnown, searchObjectsAliases)
	if err != nil {
		return err
	}
	p.Summary = true // summary mode unless the caller sends "summary": false
	if err := json.Unmarshal(normalized, (*alias)(p)); err != nil {
		return err
	}
	p.Warnings = warnings
	return nil
}

// GetObjectDefinitionParams is the get_object_definition tool's
// argument shape. Resolution is either by (ObjectId, ObjectType) or by
// ObjectName, optionally narrowed by Package/ObjectType.
type GetObjectDefinitionParams struct {
	ObjectId   *int   `json:"objectId,omitempty"`
	ObjectType string `json:"objectType,omitempty"`
	ObjectName string `json:"objectName,omitempty"`
	// Ref is an opaque token from a prior tool response's "ref" field
	// (see internal/idcodec), an alternative to (ObjectId, ObjectType).
	Ref     string `json:"ref,omitempty"`
	Package string `json:"package,omitempty"`

	IncludeFields     bool `json:"includeFields,omitempty"`
	IncludeKeys       bool `json:"includeKeys,omitempty"`
	IncludeProcedures bool `json:"includeProcedures,omitempty"`
	Summary           bool `json:"summary,omitempty"`

	Warnings []UnknownField `json:"-"`
}

var getObjectDefinitionKnown = map[string]struct{}{
	"objectId": {}, "objectType": {}, "objectName": {}, "ref": {}, "package": {},
	"includeFields": {}, "includeKeys": {}, "includeProcedures": {}, "summary": {},
}

var getObjectDefinitionAliases = map[string]string{
	"id":          "objectId",
	"type":        "objectType",
	"name":        "objectName",
	"packageName": "package",
}

func (p *GetObjectDefinitionParams) UnmarshalJSON(data []byte) error {
	type alias GetObjectDefinitionParams
	normalized, warnings, err := normalizeAliases(data, getObjectDefinitionKnown, getObjectDefinitionAliases)
	if err != nil {
		return err
	}
	p.Summary = true // summary mode unless the caller sends "summary": false
	if err := json.Unmarshal(normalized, (*alias)(p)); err != nil {
		return err
	}
	p.Warnings = warnings
	return nil
}

// FindReferencesParams is the find_references tool's argument shape.
type FindReferencesParams struct {
	TargetName string `json:"targetName"`
	Kind       string `json:"kind,omitempty"`
	SourceType string `json:"sourceType,omitempty"`
	Limit      int    `json:"limit,omitempty"`
	Offset     int    `json:"offset,omitempty"`

	Warnings []UnknownField `json:"-"`
}

var findReferencesKnown = map[string]struct{}{
	"targetName": {}, "kind": {}, "sourceType": {}, "limit": {}, "offset": {},
}

var findReferencesAliases = map[string]string{
	"target": "targetName",
	"name":   "targetName",
}

func (p *FindReferencesParams) UnmarshalJSON(data []byte) error {
	type alias FindReferencesParams
	normalized, warnings, err := normalizeAliases(data, findReferencesKnown, findReferencesAliases)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(normalized, (*alias)(p)); err != nil {
		return err
	}
	p.Warnings = warnings
	return nil
}

// LoadPackagesParams is the load_packages tool's argument shape.
type LoadPackagesParams struct {
	PackagesPath string `json:"packagesPath"`
	ForceReload  bool   `json:"forceReload,omitempty"`

	Warnings []UnknownField `json:"-"`
}

var loadPackagesKnown = map[string]struct{}{
	"packagesPath": {}, "forceReload": {},
}

var loadPackagesAliases = map[string]string{
	"force": "forceReload",
	"path":  "packagesPath",
}

func (p *LoadPackagesParams) UnmarshalJSON(data []byte) error {
	type alias LoadPackagesParams
	normalized, warnings, err := normalizeAliases(data, loadPackagesKnown, loadPackagesAliases)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(normalized, (*alias)(p)); err != nil {
		return err
	}
	p.Warnings = warnings
	return nil
}

// AutoDiscoverParams is the auto_discover tool's argument shape.
type AutoDiscoverParams struct {
	RootPath    string `json:"rootPath"`
	ForceReload bool   `json:"forceReload,omitempty"`

	Warnings []UnknownField `json:"-"`
}

var autoDiscoverKnown = map[string]struct{}{
	"rootPath": {}, "forceReload": {},
}

var autoDiscoverAliases = map[string]string{
	"root":  "rootPath",
	"force": "forceReload",
}

func (p *AutoDiscoverParams) UnmarshalJSON(data []byte) error {
	type alias AutoDiscoverParams
	normalized, warnings, err := normalizeAliases(data, autoDiscoverKnown, autoDiscoverAliases)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(normalized, (*alias)(p)); err != nil {
		return err
	}
	p.Warnings = warnings
	return nil
}

// SearchByDomainParams is the search_by_domain tool's argument shape.
type SearchByDomainParams struct {
	Domain string `json:"domain"`
	Type   string `json:"type,omitempty"`
	Limit  int    `json:"limit,omitempty"`
	Offset int    `json:"offset,omitempty"`

	Warnings []UnknownField `json:"-"`
}

var searchByDomainKnown = map[string]struct{}{
	"domain": {}, "type": {}, "limit": {}, "offset": {},
}

var searchByDomainAliases = map[string]string{
	"domainTag":  "domain",
	"objectType": "type",
}

func (p *SearchByDomainParams) UnmarshalJSON(data []byte) error {
	type alias SearchByDomainParams
	normalized, warnings, err := normalizeAliases(data, searchByDomainKnown, searchByDomainAliases)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(normalized, (*alias)(p)); err != nil {
		return err
	}
	p.Warnings = warnings
	return nil
}

// GetExtensionsParams is the get_extensions tool's argument shape.
type GetExtensionsParams struct {
	BaseObjectName string `json:"baseObjectName"`

	Warnings []UnknownField `json:"-"`
}

var getExtensionsKnown = map[string]struct{}{
	"baseObjectName": {},
}

var getExtensionsAliases = map[string]string{
	"baseName": "baseObjectName",
	"name":     "baseObjectName",
}

func (p *GetExtensionsParams) UnmarshalJSON(data []byte) error {
	type alias GetExtensionsParams
	normalized, warnings, err := normalizeAliases(data, getExtensionsKnown, getExtensionsAliases)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(normalized, (*alias)(p)); err != nil {
		return err
	}
	p.Warnings = warnings
	return nil
}

// ChildSearchParams is the shared argument shape of search_procedures,
// search_fields, search_controls, and search_data_items: an owning
// object name plus an optional sub-pattern.
type ChildSearchParams struct {
	ObjectName string `json:"objectName"`
	Pattern    string `json:"pattern,omitempty"`
	Limit      int    `json:"limit,omitempty"`
	Offset     int    `json:"offset,omitempty"`

	Warnings []UnknownField `json:"-"`
}

var childSearchKnown = map[string]struct{}{
	"objectName": {}, "pattern": {}, "limit": {}, "offset": {},
}

var childSearchAliases = map[string]string{
	"name":      "objectName",
	"tableName": "objectName",
	"pageName":  "objectName",
}

func (p *ChildSearchParams) UnmarshalJSON(data []byte) error {
	type alias ChildSearchParams
	normalized, warnings, err := normalizeAliases(data, childSearchKnown, childSearchAliases)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(normalized, (*alias)(p)); err != nil {
		return err
	}
	p.Warnings = warnings
	return nil
}
