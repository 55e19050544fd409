package docx

import (
	"bytes"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
)

// XML namespaces used in word-processing packages.
const (
	NamespaceW    = "http://schemas.openxmlformats.org/wordprocessingml/2006/main"
	NamespaceR    = "http://schemas.openxmlformats.org/officeDocument/2006/relationships"
	NamespaceM    = "http://schemas.openxmlformats.org/officeDocument/2006/math"
	NamespaceO    = "urn:schemas-microsoft-com:office:office"
	NamespaceRels = "http://schemas.openxmlformats.org/package/2006/relationships"
)

// NodeID identifies an element inside a Tree.
type NodeID int

// NoNode is returned where no element exists.
const NoNode NodeID = -1

// node is one element of the arena.
type node struct {
	name     xml.Name
	attrs    []xml.Attr
	text     string // character data directly inside the element
	parent   NodeID
	children []NodeID
}

// Tree is a parsed XML part stored as an arena of elements.
//
// The underlying markup only links parents to children. Tree records the
// reverse link while parsing, so ancestry questions cost O(depth) instead of
// a scan of the whole part per step.
type Tree struct {
	nodes []node
}

// Parse builds a Tree from an XML part.
func Parse(data []byte) (*Tree, error) {
	d := xml.NewDecoder(bytes.NewReader(data))
	t := &Tree{}
	var stack []NodeID

	for {
		tok, err := d.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("parsing XML: %w", err)
		}

		switch tok := tok.(type) {
		case xml.StartElement:
			id := NodeID(len(t.nodes))
			parent := NoNode
			if len(stack) > 0 {
				parent = stack[len(stack)-1]
				t.nodes[parent].children = append(t.nodes[parent].children, id)
			} else if len(t.nodes) > 0 {
				return nil, errors.New("parsing XML: multiple root elements")
			}
			t.nodes = append(t.nodes, node{
				name:   tok.Name,
				attrs:  tok.Copy().Attr,
				parent: parent,
			})
			stack = append(stack, id)
		case xml.EndElement:
			if len(stack) > 0 {
				stack = stack[:len(stack)-1]
			}
		case xml.CharData:
			if len(stack) > 0 {
				top := stack[len(stack)-1]
				t.nodes[top].text += string(tok)
			}
		}
	}

	if len(t.nodes) == 0 {
		return nil, errors.New("parsing XML: no root element")
	}
	return t, nil
}

// Root returns the document element.
func (t *Tree) Root() NodeID {
	return 0
}

// Len returns the number of elements in the tree.
func (t *Tree) Len() int {
	return len(t.nodes)
}

func (t *Tree) valid(id NodeID) bool {
	return id >= 0 && int(id) < len(t.nodes)
}

// Name returns the namespace-qualified name of an element.
func (t *Tree) Name(id NodeID) xml.Name {
	if !t.valid(id) {
		return xml.Name{}
	}
	return t.nodes[id].name
}

// Is reports whether the element has the given namespace and local name.
func (t *Tree) Is(id NodeID, space, local string) bool {
	n := t.Name(id)
	return n.Local == local && n.Space == space
}

// Parent returns the element containing id. The root has no parent.
func (t *Tree) Parent(id NodeID) (NodeID, bool) {
	if !t.valid(id) || t.nodes[id].parent == NoNode {
		return NoNode, false
	}
	return t.nodes[id].parent, true
}

// Children returns the direct child elements of id in document order.
func (t *Tree) Children(id NodeID) []NodeID {
	if !t.valid(id) {
		return nil
	}
	return t.nodes[id].children
}

// Child returns the first direct child with the given name.
func (t *Tree) Child(id NodeID, space, local string) (NodeID, bool) {
	for _, c := range t.Children(id) {
		if t.Is(c, space, local) {
			return c, true
		}
	}
	return NoNode, false
}

// Contains reports whether id is ancestor or the same element as other.
func (t *Tree) Contains(id, other NodeID) bool {
	for cur := other; t.valid(cur); cur = t.nodes[cur].parent {
		if cur == id {
			return true
		}
	}
	return false
}

// Attr returns the value of the attribute with the given namespace and
// local name.
func (t *Tree) Attr(id NodeID, space, local string) (string, bool) {
	if !t.valid(id) {
		return "", false
	}
	for _, a := range t.nodes[id].attrs {
		if a.Name.Local == local && a.Name.Space == space {
			return a.Value, true
		}
	}
	return "", false
}

// WAttr returns a WordprocessingML attribute. Unqualified attributes with
// the same local name are accepted as well, since some producers omit the
// prefix.
func (t *Tree) WAttr(id NodeID, local string) (string, bool) {
	if v, ok := t.Attr(id, NamespaceW, local); ok {
		return v, true
	}
	return t.Attr(id, "", local)
}

// CharData returns the character data directly inside id.
func (t *Tree) CharData(id NodeID) string {
	if !t.valid(id) {
		return ""
	}
	return t.nodes[id].text
}

// Walk visits id and its descendants in document order. Returning false
// from fn skips the subtree below the visited element.
func (t *Tree) Walk(id NodeID, fn func(NodeID) bool) {
	if !t.valid(id) {
		return
	}
	if !fn(id) {
		return
	}
	for _, c := range t.nodes[id].children {
		t.Walk(c, fn)
	}
}

// Descendants returns every element below id with the given name, in
// document order. id itself is not included.
func (t *Tree) Descendants(id NodeID, space, local string) []NodeID {
	var out []NodeID
	t.Walk(id, func(n NodeID) bool {
		if n != id && t.Is(n, space, local) {
			out = append(out, n)
		}
		return true
	})
	return out
}

// Find returns the first element below id with the given name.
func (t *Tree) Find(id NodeID, space, local string) (NodeID, bool) {
	found := NoNode
	t.Walk(id, func(n NodeID) bool {
		if found != NoNode {
			return false
		}
		if n != id && t.Is(n, space, local) {
			found = n
			return false
		}
		return true
	})
	return found, found != NoNode
}

// HasDescendantInNamespace reports whether any element below id belongs to
// the namespace.
func (t *Tree) HasDescendantInNamespace(id NodeID, space string) bool {
	found := false
	t.Walk(id, func(n NodeID) bool {
		if found {
			return false
		}
		if n != id && t.nodes[n].name.Space == space {
			found = true
			return false
		}
		return true
	})
	return found
}
