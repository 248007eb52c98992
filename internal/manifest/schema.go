package manifest

import "github.com/balsymbols/symbolindex/internal/symbols"

// keyInfo describes how one top-level manifest array key maps onto the
// closed ObjectType set. ExtendsField, when non-empty, names the
// vendor field this object kind uses to point at the base object it
// extends (written into a synthetic Extends property by the decoder).
type keyInfo struct {
	Type         symbols.ObjectType
	ExtendsField string
}

// recognizedKeys is the closed, versioned table of top-level manifest
// keys this decoder understands, covering both the legacy/root layout
// and the modern namespace-qualified layout, and both singular and
// plural spellings observed across vendor manifest generations. A key
// not present here is tolerated and counted, never an error.
var recognizedKeys = map[string]keyInfo{
	"Table":      {Type: symbols.Table},
	"Tables":     {Type: symbols.Table},
	"Page":       {Type: symbols.Page},
	"Pages":      {Type: symbols.Page},
	"Codeunit":   {Type: symbols.Codeunit},
	"Codeunits":  {Type: symbols.Codeunit},
	"Report":     {Type: symbols.Report},
	"Reports":    {Type: symbols.Report},
	"Enum":       {Type: symbols.Enum},
	"Enums":      {Type: symbols.Enum},
	"EnumType":   {Type: symbols.Enum},
	"EnumTypes":  {Type: symbols.Enum},
	"Interface":  {Type: symbols.Interface},
	"Interfaces": {Type: symbols.Interface},

	"PermissionSet":  {Type: symbols.PermissionSet},
	"PermissionSets": {Type: symbols.PermissionSet},
	"XmlPort":        {Type: symbols.XmlPort},
	"XmlPorts":       {Type: symbols.XmlPort},
	"Query":          {Type: symbols.Query},
	"Queries":        {Type: symbols.Query},

	"TableExtension":  {Type: symbols.TableExtension, ExtendsField: "TargetObject"},
	"TableExtensions": {Type: symbols.TableExtension, ExtendsField: "TargetObject"},
	"PageExtension":   {Type: symbols.PageExtension, ExtendsField: "TargetObject"},
	"PageExtensions":  {Type: symbols.PageExtension, ExtendsField: "TargetObject"},

	"EnumExtensionType":  {Type: symbols.EnumExtensionType, ExtendsField: "TargetObject"},
	"EnumExtensionTypes": {Type: symbols.EnumExtensionType, ExtendsField: "TargetObject"},

	"ReportExtension":  {Type: symbols.ReportExtension, ExtendsField: "Target"},
	"ReportExtensions": {Type: symbols.ReportExtension, ExtendsField: "Target"},

	"PermissionSetExtension":  {Type: symbols.PermissionSetExtension, ExtendsField: "TargetObject"},
	"PermissionSetExtensions": {Type: symbols.PermissionSetExtension, ExtendsField: "TargetObject"},
}
