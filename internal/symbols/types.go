// Package symbols defines the strongly typed, immutable in-memory shapes
// for BAL symbol objects: tables, pages, codeunits, reports, enums,
// interfaces, queries, xmlports, permission sets and their extension
// variants, plus the shared property/field/procedure/control building
// blocks every object kind is built from.
package symbols

import "strings"

// ObjectType is the closed enumeration of BAL symbol kinds.
type ObjectType uint8

const (
	Unknown ObjectType = iota
	Table
	Page
	Codeunit
	Report
	Enum
	Interface
	PermissionSet
	XmlPort
	Query
	TableExtension
	PageExtension
	EnumExtensionType
	ReportExtension
	PermissionSetExtension
)

var objectTypeNames = [...]string{
	Unknown:                "Unknown",
	Table:                  "Table",
	Page:                   "Page",
	Codeunit:               "Codeunit",
	Report:                 "Report",
	Enum:                   "Enum",
	Interface:              "Interface",
	PermissionSet:          "PermissionSet",
	XmlPort:                "XmlPort",
	Query:                  "Query",
	TableExtension:         "TableExtension",
	PageExtension:          "PageExtension",
	EnumExtensionType:      "EnumExtensionType",
	ReportExtension:        "ReportExtension",
	PermissionSetExtension: "PermissionSetExtension",
}

// String renders the canonical manifest name for the type.
func (t ObjectType) String() string {
	if int(t) < len(objectTypeNames) && objectTypeNames[t] != "" {
		return objectTypeNames[t]
	}
	return "Unknown"
}

// IsExtension reports whether this type modifies a base object elsewhere.
func (t ObjectType) IsExtension() bool {
	switch t {
	case TableExtension, PageExtension, EnumExtensionType, ReportExtension, PermissionSetExtension:
		return true
	default:
		return false
	}
}

// ParseObjectType maps a canonical or lowercase type name back to its enum
// value. Returns (Unknown, false) for anything not in the closed set.
func ParseObjectType(name string) (ObjectType, bool) {
	lower := strings.ToLower(strings.TrimSpace(name))
	for t, n := range objectTypeNames {
		if strings.ToLower(n) == lower {
			return ObjectType(t), true
		}
	}
	return Unknown, false
}

// Id is the vendor-assigned unsigned object identifier. For extension
// types this may collide with a base object's Id; disambiguation is
// always by (Type, Id).
type Id uint32

// Ref is the identity of a Symbol Object: (Type, Id). Packages are not
// part of identity uniqueness at this layer — (Type, Id, PackageName) is
// the full uniqueness tuple maintained by the database.
type Ref struct {
	Type ObjectType
	Id   Id
}

// Property is one ordered name/value pair as authored. Order carries
// authoring semantics and must be preserved verbatim.
type Property struct {
	Name  string
	Value string
}

// PropertyList is an ordered, append-only list of properties with
// case-insensitive lookup.
type PropertyList []Property

// Get returns the first value for name (case-insensitive) and whether it
// was present.
func (p PropertyList) Get(name string) (string, bool) {
	for _, prop := range p {
		if strings.EqualFold(prop.Name, name) {
			return prop.Value, true
		}
	}
	return "", false
}
