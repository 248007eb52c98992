package symbols

import "testing"

func TestInternerReturnsSameBacking(t *testing.T) {
	in := NewInterner()
	a := in.Intern("Customer")
	b := in.Intern("Customer")

	if a != b {
		t.Fatal("expected interned strings to be equal")
	}
	if in.Len() != 1 {
		t.Fatalf("expected 1 distinct string, got %d", in.Len())
	}
}

func TestInternerEmptyString(t *testing.T) {
	in := NewInterner()
	if got := in.Intern(""); got != "" {
		t.Errorf("Intern(\"\") = %q, want empty", got)
	}
	if in.Len() != 0 {
		t.Errorf("empty string should not be tracked, len = %d", in.Len())
	}
}

func TestInternPropertiesDoesNotMutateInput(t *testing.T) {
	in := NewInterner()
	original := PropertyList{{Name: "Caption", Value: "Customer"}}
	interned := in.InternProperties(original)

	if &interned[0] == &original[0] {
		t.Error("expected InternProperties to return a new slice")
	}
	if interned[0].Name != "Caption" || interned[0].Value != "Customer" {
		t.Errorf("unexpected interned property: %+v", interned[0])
	}
}
