package layout

import (
	"github.com/tsawler/manucheck/docx"
)

// MaxAncestorDepth bounds the number of ancestors examined when deciding
// table membership.
const MaxAncestorDepth = 20

// InTableCell reports whether node lies inside a w:tc element contained in
// root. The walk stops at root, at the top of the tree, or after
// MaxAncestorDepth steps.
func InTableCell(t *docx.Tree, node, root docx.NodeID) bool {
	cur := node
	for depth := 0; depth < MaxAncestorDepth; depth++ {
		parent, ok := t.Parent(cur)
		if !ok || cur == root {
			return false
		}
		if t.Is(parent, docx.NamespaceW, "tc") {
			return t.Contains(root, parent)
		}
		cur = parent
	}
	return false
}

// inTable reports whether a paragraph of doc lies inside a table cell.
func inTable(doc *docx.Document, p docx.Paragraph) bool {
	return InTableCell(doc.Tree(), p.Node, doc.Body())
}
