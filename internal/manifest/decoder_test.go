package manifest

import (
	"strings"
	"testing"

	"github.com/balsymbols/symbolindex/internal/symbols"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeLegacyRootLayout(t *testing.T) {
	doc := `{
		"Tables": [
			{"Id": 50100, "Name": "Sandwich", "Properties": [{"Name":"Caption","Value":"Sandwich"}],
			 "Fields": [{"Id":1,"Name":"No.","Type":{"Kind":"Code","Length":20}}]}
		],
		"TableExtensions": [
			{"Id": 50101, "Name": "Sandwich Ext", "TargetObject": "Customer"}
		],
		"SomeFutureKey": [{"whatever": 1}]
	}`

	var got []*symbols.Object
	in := symbols.NewInterner()
	report, err := Decode(strings.NewReader(doc), "MyApp", in, func(o *symbols.Object) {
		got = append(got, o)
	})
	require.NoError(t, err)
	require.Len(t, got, 2)

	table := got[0]
	assert.Equal(t, symbols.Table, table.Type)
	assert.Equal(t, symbols.Id(50100), table.Id)
	payload, ok := table.Table()
	require.True(t, ok)
	require.Len(t, payload.Fields, 1)
	assert.Equal(t, "No.", payload.Fields[0].Name)
	assert.Equal(t, 20, *payload.Fields[0].Type.Length)

	ext := got[1]
	assert.Equal(t, symbols.TableExtension, ext.Type)
	base, ok := ext.Extends()
	assert.True(t, ok)
	assert.Equal(t, "Customer", base)

	assert.Equal(t, 1, report.ObjectsByType[symbols.Table])
	assert.Equal(t, 1, report.ObjectsByType[symbols.TableExtension])
	assert.Equal(t, 1, report.UnknownKeys["SomeFutureKey"])
}

func TestDecodeNamespaceWrappedLayout(t *testing.T) {
	doc := `{
		"RuntimeVersion": "12.0",
		"NamespaceObjects": {
			"Pages": [
				{"Id": 50200, "Name": "Sandwich Card", "Controls": [
					{"Name":"General", "Kind":"Group", "Controls": [
						{"Name":"No.", "Kind":"Field", "SourceExpr":"No."}
					]}
				]}
			]
		}
	}`

	var got []*symbols.Object
	in := symbols.NewInterner()
	report, err := Decode(strings.NewReader(doc), "MyApp", in, func(o *symbols.Object) {
		got = append(got, o)
	})
	require.NoError(t, err)
	require.Len(t, got, 1)

	page := got[0]
	assert.Equal(t, symbols.Page, page.Type)
	payload, ok := page.Page()
	require.True(t, ok)
	require.Len(t, payload.Controls, 1)
	require.Len(t, payload.Controls[0].Children, 1)
	assert.Equal(t, "No.", payload.Controls[0].Children[0].SourceField)

	assert.Equal(t, 1, report.ObjectsByType[symbols.Page])
	assert.Equal(t, 1, report.UnknownKeys["RuntimeVersion"])
}

func TestDecodeMalformedRootFails(t *testing.T) {
	in := symbols.NewInterner()
	_, err := Decode(strings.NewReader(`["not", "an", "object"]`), "MyApp", in, func(*symbols.Object) {})
	require.Error(t, err)
}

func TestDecodeSkipsUnreadableElementWithoutFailingPackage(t *testing.T) {
	doc := `{"Tables": [
		{"Id": 1, "Name": "Good"},
		{"Id": "not-a-number", "Name": "Bad"},
		{"Id": 2, "Name": "AlsoGood"}
	]}`

	var got []*symbols.Object
	in := symbols.NewInterner()
	report, err := Decode(strings.NewReader(doc), "MyApp", in, func(o *symbols.Object) {
		got = append(got, o)
	})
	require.NoError(t, err)
	assert.Len(t, got, 2)
	assert.Len(t, report.Skipped, 1)
}
