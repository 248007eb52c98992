package symbols

import "strings"

// ExtendsProperty is the synthetic property name a decoder writes on every
// extension object, naming the base object being extended.
const ExtendsProperty = "Extends"

// Object is one addressable BAL Symbol Object. The common header fields
// live here; Payload holds one of the type-specific payload structs in
// payloads.go, chosen by Type.
//
// Object is immutable once constructed: callers that need a variant
// (e.g. to add a DomainTags slice) should build a new
// value with the With* helpers rather than mutate a shared instance.
type Object struct {
	Type        ObjectType
	Id          Id
	Name        string
	PackageName string
	Namespace   string
	Properties  PropertyList

	// DomainTags holds business-domain tags set through WithDomainTags.
	// Neither the database nor the query engine fills it in; domain
	// classification (see internal/query) is computed on demand.
	DomainTags []string

	// FuzzyKey is a folded/stemmed token form of Name, set through
	// WithFuzzyKey. Nothing in the engine fills it in; did-you-mean
	// suggestions compare against the database's object names.
	FuzzyKey []string

	Payload any
}

// Ref returns the object's (Type, Id) identity.
func (o *Object) Ref() Ref {
	return Ref{Type: o.Type, Id: o.Id}
}

// Extends returns the base object name this extension modifies, and
// whether the Extends synthetic property was present.
func (o *Object) Extends() (string, bool) {
	return o.Properties.Get(ExtendsProperty)
}

// EqualsName reports whether this object's name matches other
// case-insensitively — the model's semantic comparison rule.
func (o *Object) EqualsName(other string) bool {
	return strings.EqualFold(o.Name, other)
}

// WithDomainTags returns a shallow copy of the object with DomainTags set.
// Used by the query engine to attach classification results without
// mutating the stored object in place while other readers may hold it.
func (o *Object) WithDomainTags(tags []string) *Object {
	clone := *o
	clone.DomainTags = tags
	return &clone
}

// WithFuzzyKey returns a shallow copy of the object with FuzzyKey set.
func (o *Object) WithFuzzyKey(key []string) *Object {
	clone := *o
	clone.FuzzyKey = key
	return &clone
}

// Table returns the object's TablePayload if Type is Table or
// TableExtension.
func (o *Object) Table() (TablePayload, bool) {
	p, ok := o.Payload.(TablePayload)
	return p, ok
}

// Page returns the object's PagePayload if Type is Page or PageExtension.
func (o *Object) Page() (PagePayload, bool) {
	p, ok := o.Payload.(PagePayload)
	return p, ok
}

// Codeunit returns the object's CodeunitPayload if Type is Codeunit.
func (o *Object) Codeunit() (CodeunitPayload, bool) {
	p, ok := o.Payload.(CodeunitPayload)
	return p, ok
}

// Report returns the object's ReportPayload if Type is Report or
// ReportExtension.
func (o *Object) Report() (ReportPayload, bool) {
	p, ok := o.Payload.(ReportPayload)
	return p, ok
}

// Enum returns the object's EnumPayload if Type is Enum or
// EnumExtensionType.
func (o *Object) Enum() (EnumPayload, bool) {
	p, ok := o.Payload.(EnumPayload)
	return p, ok
}
