package idcodec

import (
	"github.com/balsymbols/symbolindex/internal/encoding"
	"github.com/balsymbols/symbolindex/internal/symbols"
)

// EncodeObjectRef packs a (Type, Id) pair into a single base-63 string for
// use as the opaque objectId returned to tool callers. The type tag
// occupies the high byte, the 32-bit vendor Id the low bits — this lets
// get_object_definition accept a short token instead of forcing clients
// to round-trip {objectId, objectType} pairs.
func EncodeObjectRef(ref symbols.Ref) string {
	packed := uint64(ref.Type)<<56 | uint64(ref.Id)
	return Encode(packed)
}

// DecodeObjectRef reverses EncodeObjectRef.
func DecodeObjectRef(encoded string) (symbols.Ref, error) {
	packed, err := Decode(encoded)
	if err != nil {
		return symbols.Ref{}, err
	}
	typ := symbols.ObjectType(packed >> 56)
	id := symbols.Id(packed & 0x00FFFFFFFFFFFFFF)
	return symbols.Ref{Type: typ, Id: id}, nil
}

// IsValidObjectRef checks whether a string is a syntactically valid
// encoded object reference.
func IsValidObjectRef(encoded string) bool {
	return encoding.Base63IsValid(encoded)
}
