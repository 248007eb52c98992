package symbols

import "testing"

func TestObjectTypeString(t *testing.T) {
	cases := map[ObjectType]string{
		Table:                  "Table",
		TableExtension:         "TableExtension",
		PermissionSetExtension: "PermissionSetExtension",
	}
	for typ, want := range cases {
		if got := typ.String(); got != want {
			t.Errorf("ObjectType(%d).String() = %q, want %q", typ, got, want)
		}
	}
}

func TestParseObjectType(t *testing.T) {
	got, ok := ParseObjectType("tableextension")
	if !ok || got != TableExtension {
		t.Fatalf("ParseObjectType(tableextension) = %v, %v", got, ok)
	}

	if _, ok := ParseObjectType("NotAType"); ok {
		t.Fatal("expected ParseObjectType to reject unknown type")
	}
}

func TestObjectTypeIsExtension(t *testing.T) {
	if !TableExtension.IsExtension() {
		t.Error("TableExtension should be an extension type")
	}
	if Table.IsExtension() {
		t.Error("Table should not be an extension type")
	}
}

func TestPropertyListGet(t *testing.T) {
	props := PropertyList{{Name: "Caption", Value: "Customer"}, {Name: "TableRelation", Value: "Vendor"}}
	v, ok := props.Get("caption")
	if !ok || v != "Customer" {
		t.Fatalf("Get(caption) = %q, %v", v, ok)
	}
	if _, ok := props.Get("Missing"); ok {
		t.Error("expected Missing to be absent")
	}
}
