package idcodec

import (
	"testing"

	"github.com/balsymbols/symbolindex/internal/symbols"
	"github.com/stretchr/testify/assert"
)

func TestEncodeDecodeObjectRefRoundTrip(t *testing.T) {
	ref := symbols.Ref{Type: symbols.TableExtension, Id: 70000}
	encoded := EncodeObjectRef(ref)

	decoded, err := DecodeObjectRef(encoded)
	assert.NoError(t, err)
	assert.Equal(t, ref, decoded)
}

func TestEncodeObjectRefDistinguishesTypes(t *testing.T) {
	a := EncodeObjectRef(symbols.Ref{Type: symbols.Table, Id: 70000})
	b := EncodeObjectRef(symbols.Ref{Type: symbols.Page, Id: 70000})

	assert.NotEqual(t, a, b, "same id, different type must encode differently")
}

func TestDecodeObjectRefInvalid(t *testing.T) {
	_, err := DecodeObjectRef("not-valid!!")
	assert.Error(t, err)
}
