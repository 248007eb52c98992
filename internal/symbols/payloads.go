package symbols

// TypeDefinition describes a field's BAL data type.
type TypeDefinition struct {
	Kind        string // e.g. "Code", "Text", "Decimal", "Enum", "Option"
	Length      *int   // nil when not length-bounded
	Subtype     string // e.g. the related table name for a RecordId/RelatedTable subtype
	EnumTypeName string // populated when Kind == "Enum"
}

// Field is one column of a Table or TableExtension.
type Field struct {
	Id         Id
	Name       string
	Type       TypeDefinition
	Properties PropertyList
}

// Key is an ordered list of field names forming a table key.
type Key struct {
	Fields []string
}

// TablePayload is the type-specific payload for Table and TableExtension
// objects.
type TablePayload struct {
	Fields []Field
	Keys   []Key
}

// Control is one node of a Page's recursive control tree.
type Control struct {
	Name        string
	Kind        string // e.g. "Group", "Field", "Part", "Repeater"
	SourceField string
	Properties  PropertyList
	Children    []Control
}

// PagePayload is the type-specific payload for Page and PageExtension
// objects.
type PagePayload struct {
	Controls []Control
}

// Parameter is one formal parameter of a Procedure.
type Parameter struct {
	Name string
	Type string
	Var  bool // passed by reference ("var" parameter)
}

// Procedure is one method of a Codeunit (or, informally, of a page/report
// that declares local procedures).
type Procedure struct {
	Name       string
	Parameters []Parameter
	ReturnType string
	Visibility string // "public", "local", "internal"
}

// Variable is a codeunit-level or procedure-level variable declaration.
type Variable struct {
	Name string
	Type string
}

// Trigger is a named event trigger body declared on an object
// (e.g. OnInsert, OnValidate).
type Trigger struct {
	Name string
}

// CodeunitPayload is the type-specific payload for Codeunit objects.
type CodeunitPayload struct {
	Procedures []Procedure
	Variables  []Variable
	Triggers   []Trigger
}

// DataItem is one recursive node of a Report/Query/XmlPort dataset.
type DataItem struct {
	Name        string
	SourceTable string
	Columns     []string
	Children    []DataItem
}

// ReportPayload is the type-specific payload for Report and
// ReportExtension objects.
type ReportPayload struct {
	DataItems []DataItem
}

// QueryPayload is the type-specific payload for Query objects.
type QueryPayload struct {
	DataItems []DataItem
}

// XmlPortPayload is the type-specific payload for XmlPort objects.
type XmlPortPayload struct {
	DataItems []DataItem
}

// EnumValue is one ordinal/name pair of an Enum.
type EnumValue struct {
	Ordinal int
	Name    string
}

// EnumPayload is the type-specific payload for Enum and
// EnumExtensionType objects.
type EnumPayload struct {
	Values []EnumValue
}

// InterfacePayload is the type-specific payload for Interface objects:
// the procedure signatures it declares (no bodies).
type InterfacePayload struct {
	Procedures []Procedure
}

// PermissionSetPayload is the type-specific payload for PermissionSet and
// PermissionSetExtension objects.
type PermissionSetPayload struct {
	Permissions []Property
}
