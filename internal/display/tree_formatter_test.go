package display

import (
	"testing"

	"github.com/balsymbols/symbolindex/internal/symbols"
	"github.com/stretchr/testify/assert"
)

func TestNewTreeFormatterDefaultIndent(t *testing.T) {
	formatter := NewTreeFormatter(FormatterOptions{})
	assert.Equal(t, "  ", formatter.options.Indent)
}

func TestFormatControlsSimpleTree(t *testing.T) {
	formatter := NewTreeFormatter(FormatterOptions{})
	roots := []symbols.Control{
		{
			Name: "GeneralGroup",
			Kind: "Group",
			Children: []symbols.Control{
				{Name: "No.", Kind: "Field", SourceField: "No."},
				{Name: "Name", Kind: "Field", SourceField: "Name"},
			},
		},
	}

	output := formatter.FormatControls(roots)

	assert.Contains(t, output, "GeneralGroup (Group)")
	assert.Contains(t, output, "├─ No. (Field)")
	assert.Contains(t, output, "└─ Name (Field)")
}

func TestFormatControlsShowsSourceField(t *testing.T) {
	formatter := NewTreeFormatter(FormatterOptions{ShowSourceField: true})
	roots := []symbols.Control{
		{Name: "No.", Kind: "Field", SourceField: "No."},
	}

	output := formatter.FormatControls(roots)
	assert.Contains(t, output, "No. (Field) -> No.")
}

func TestFormatControlsRespectsMaxDepth(t *testing.T) {
	formatter := NewTreeFormatter(FormatterOptions{MaxDepth: 1})
	roots := []symbols.Control{
		{
			Name: "Repeater",
			Kind: "Repeater",
			Children: []symbols.Control{
				{Name: "Deep", Kind: "Field"},
			},
		},
	}

	output := formatter.FormatControls(roots)
	assert.Contains(t, output, "Repeater")
	assert.NotContains(t, output, "Deep")
}

func TestFormatDataItemsNestedTree(t *testing.T) {
	formatter := NewTreeFormatter(FormatterOptions{ShowSourceField: true})
	roots := []symbols.DataItem{
		{
			Name:        "Customer",
			SourceTable: "Customer",
			Children: []symbols.DataItem{
				{Name: "Sales Line", SourceTable: "Sales Line"},
			},
		},
	}

	output := formatter.FormatDataItems(roots)

	assert.Contains(t, output, "Customer -> Customer")
	assert.Contains(t, output, "└─ Sales Line -> Sales Line")
}

func TestFormatControlsEmpty(t *testing.T) {
	formatter := NewTreeFormatter(FormatterOptions{})
	assert.Equal(t, "", formatter.FormatControls(nil))
}
