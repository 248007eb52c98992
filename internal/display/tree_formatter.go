// Package display renders the recursive Control and DataItem trees
// carried by Page/PageExtension and Report/Query/XmlPort payloads as
// readable ASCII art, for CLI output and debugging.
package display

import (
	"strings"

	"github.com/balsymbols/symbolindex/internal/symbols"
)

// FormatterOptions controls tree formatting.
type FormatterOptions struct {
	ShowSourceField bool // Show each node's SourceField/SourceTable
	MaxDepth        int  // 0 means unbounded
	Indent          string
}

// TreeFormatter formats a Control or DataItem tree for display.
type TreeFormatter struct {
	options FormatterOptions
}

// NewTreeFormatter constructs a TreeFormatter.
func NewTreeFormatter(options FormatterOptions) *TreeFormatter {
	if options.Indent == "" {
		options.Indent = "  "
	}
	return &TreeFormatter{options: options}
}

// FormatControls renders a Page's control tree.
func (tf *TreeFormatter) FormatControls(roots []symbols.Control) string {
	var sb strings.Builder
	for i, root := range roots {
		tf.formatControl(&sb, &root, "", i == len(roots)-1, 1)
	}
	return sb.String()
}

func (tf *TreeFormatter) formatControl(sb *strings.Builder, node *symbols.Control, prefix string, isLast bool, depth int) {
	if node == nil || (tf.options.MaxDepth > 0 && depth > tf.options.MaxDepth) {
		return
	}

	sb.WriteString(prefix)
	sb.WriteString(branch(isLast))
	sb.WriteString(node.Name)
	sb.WriteString(" (")
	sb.WriteString(node.Kind)
	sb.WriteString(")")
	if tf.options.ShowSourceField && node.SourceField != "" {
		sb.WriteString(" -> ")
		sb.WriteString(node.SourceField)
	}
	sb.WriteString("\n")

	childPrefix := prefix + childIndent(isLast)
	for i, child := range node.Children {
		tf.formatControl(sb, &child, childPrefix, i == len(node.Children)-1, depth+1)
	}
}

// FormatDataItems renders a Report/Query/XmlPort data item tree.
func (tf *TreeFormatter) FormatDataItems(roots []symbols.DataItem) string {
	var sb strings.Builder
	for i, root := range roots {
		tf.formatDataItem(&sb, &root, "", i == len(roots)-1, 1)
	}
	return sb.String()
}

func (tf *TreeFormatter) formatDataItem(sb *strings.Builder, node *symbols.DataItem, prefix string, isLast bool, depth int) {
	if node == nil || (tf.options.MaxDepth > 0 && depth > tf.options.MaxDepth) {
		return
	}

	sb.WriteString(prefix)
	sb.WriteString(branch(isLast))
	sb.WriteString(node.Name)
	if tf.options.ShowSourceField && node.SourceTable != "" {
		sb.WriteString(" -> ")
		sb.WriteString(node.SourceTable)
	}
	sb.WriteString("\n")

	childPrefix := prefix + childIndent(isLast)
	for i, child := range node.Children {
		tf.formatDataItem(sb, &child, childPrefix, i == len(node.Children)-1, depth+1)
	}
}

func branch(isLast bool) string {
	if isLast {
		return "└─ "
	}
	return "├─ "
}

func childIndent(isLast bool) string {
	if isLast {
		return "   "
	}
	return "│  "
}
