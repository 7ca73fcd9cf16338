// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// text.go flattens a rich-content document into plain text. The flattened
// form feeds the read-time estimate and the plain-text previews used on
// listing cards when no structured renderer is involved.
package richtext

import (
	"fmt"
	"strings"
)

// wordsPerMinute is the reading speed assumed by ReadTime.
const wordsPerMinute = 200

// ExtractText walks the node list and concatenates all leaf text,
// ignoring decorations. Block-level siblings are separated by a newline so
// words from adjacent blocks do not run together. List items are prefixed
// with a bullet glyph purely for readability of the flattened text.
// Returns "" for an empty or nil node list; never panics.
func ExtractText(nodes []Node) string {
	var b strings.Builder
	extractNodes(&b, nodes, 0)
	return strings.TrimSpace(b.String())
}

// ExtractDocumentText flattens a whole document.
func ExtractDocumentText(doc *Document) string {
	if doc == nil {
		return ""
	}
	return ExtractText(doc.Nodes)
}

func extractNodes(b *strings.Builder, nodes []Node, depth int) {
	if depth > maxRenderDepth {
		return
	}
	for _, n := range nodes {
		extractNode(b, n, depth)
	}
}

func extractNode(b *strings.Builder, n Node, depth int) {
	switch n.Type {
	case TypeText:
		if n.Text != nil {
			b.WriteString(n.Text.Text)
		}
	case TypeListItem:
		b.WriteString("• ")
		extractNodes(b, n.Nodes, depth+1)
		b.WriteString("\n")
	case TypeImage:
		// Images contribute their caption, their only textual content.
		if n.Image != nil && n.Image.Caption != "" {
			b.WriteString(n.Image.Caption + "\n")
		}
	case TypeButton:
		if n.Button != nil && n.Button.Text != "" {
			b.WriteString(n.Button.Text + "\n")
		}
	default:
		extractNodes(b, n.Nodes, depth+1)
		if isBlock(n.Type) {
			b.WriteString("\n")
		}
	}
}

// isBlock reports whether the node type is block-level and therefore
// needs a separator after its text.
func isBlock(nodeType string) bool {
	switch nodeType {
	case TypeParagraph, TypeHeading, TypeBulletedList, TypeOrderedList,
		TypeBlockquote, TypeCodeBlock:
		return true
	}
	return false
}

// ReadTime estimates reading time from plain text at 200 words per minute,
// rounding up. The label never reads "0 min": zero words yields
// "less than 1 min" and anything else at least "1 min".
func ReadTime(text string) (int, string) {
	words := len(strings.Fields(text))
	if words == 0 {
		return 0, "less than 1 min"
	}
	minutes := (words + wordsPerMinute - 1) / wordsPerMinute
	return minutes, fmt.Sprintf("%d min", minutes)
}
