package docx

import (
	"encoding/xml"
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// ErrNoBody is returned when the main document part has no w:body element.
var ErrNoBody = errors.New("document body not found")

// Document is the parsed main part of a package together with its
// relationships and styles.
type Document struct {
	tree       *Tree
	body       NodeID
	paragraphs []Paragraph
	styles     *StyleResolver
	rels       *Relationships
	warnings   []string
}

// Paragraph is a w:p element identified by its 1-based position among all
// paragraphs of the body, table paragraphs included.
type Paragraph struct {
	Ordinal int
	Node    NodeID
	doc     *Document
}

// Run is a w:r element with its text and effective formatting.
type Run struct {
	Text   string
	Format RunFormat
	Node   NodeID
}

// Cell is a w:tc element.
type Cell struct {
	Node NodeID
	doc  *Document
}

// Load parses the main document part of an opened package. The
// relationships and styles parts are optional; problems reading them are
// recorded as warnings.
func Load(pkg *Package) (*Document, error) {
	data, err := pkg.ReadPart(DocumentPart)
	if err != nil {
		return nil, err
	}
	doc, err := ParseDocument(data)
	if err != nil {
		return nil, err
	}

	if pkg.HasPart(RelationshipsPart) {
		relData, err := pkg.ReadPart(RelationshipsPart)
		if err == nil {
			doc.rels, err = ParseRelationships(relData)
		}
		if err != nil {
			doc.warnings = append(doc.warnings, fmt.Sprintf("relationships ignored: %v", err))
		}
	}

	if pkg.HasPart(StylesPart) {
		styleData, err := pkg.ReadPart(StylesPart)
		var styles stylesXML
		if err == nil {
			err = xml.Unmarshal(styleData, &styles)
		}
		if err != nil {
			doc.warnings = append(doc.warnings, fmt.Sprintf("styles ignored: %v", err))
		} else {
			doc.styles = NewStyleResolver(&styles)
		}
	}

	return doc, nil
}

// ParseDocument parses a main document part on its own, without styles or
// relationships.
func ParseDocument(data []byte) (*Document, error) {
	tree, err := Parse(data)
	if err != nil {
		return nil, err
	}
	body, ok := tree.Find(tree.Root(), NamespaceW, "body")
	if !ok {
		return nil, ErrNoBody
	}

	doc := &Document{
		tree:   tree,
		body:   body,
		styles: NewStyleResolver(nil),
	}
	for i, id := range tree.Descendants(body, NamespaceW, "p") {
		doc.paragraphs = append(doc.paragraphs, Paragraph{Ordinal: i + 1, Node: id, doc: doc})
	}
	return doc, nil
}

// Tree returns the parsed main part.
func (d *Document) Tree() *Tree { return d.tree }

// Body returns the w:body element.
func (d *Document) Body() NodeID { return d.body }

// Paragraphs returns every paragraph of the body in document order.
func (d *Document) Paragraphs() []Paragraph { return d.paragraphs }

// Relationships returns the document relationships, or nil if the package
// has none.
func (d *Document) Relationships() *Relationships { return d.rels }

// Styles returns the style resolver.
func (d *Document) Styles() *StyleResolver { return d.styles }

// Warnings returns non-fatal problems found while loading.
func (d *Document) Warnings() []string { return d.warnings }

// Cells returns every table cell of the body in document order.
func (d *Document) Cells() []Cell {
	var cells []Cell
	for _, id := range d.tree.Descendants(d.body, NamespaceW, "tc") {
		cells = append(cells, Cell{Node: id, doc: d})
	}
	return cells
}

// Text returns the visible text of the paragraph.
func (p Paragraph) Text() string {
	return p.doc.tree.Text(p.Node)
}

// IsEmpty reports whether the trimmed visible text is empty.
func (p Paragraph) IsEmpty() bool {
	return strings.TrimSpace(p.Text()) == ""
}

// Properties returns the paragraph's w:pPr element.
func (p Paragraph) Properties() (NodeID, bool) {
	return p.doc.tree.Child(p.Node, NamespaceW, "pPr")
}

// SectionProperties returns a w:sectPr found inside the paragraph
// properties. Such a paragraph ends a section.
func (p Paragraph) SectionProperties() (NodeID, bool) {
	pPr, ok := p.Properties()
	if !ok {
		return NoNode, false
	}
	return p.doc.tree.Find(pPr, NamespaceW, "sectPr")
}

// PageNumberRestart returns the start value of a w:pgNumType inside the
// paragraph properties.
func (p Paragraph) PageNumberRestart() (int, bool) {
	pPr, ok := p.Properties()
	if !ok {
		return 0, false
	}
	pg, ok := p.doc.tree.Find(pPr, NamespaceW, "pgNumType")
	if !ok {
		return 0, false
	}
	v, ok := p.doc.tree.WAttr(pg, "start")
	if !ok {
		return 0, false
	}
	start, err := strconv.Atoi(strings.TrimSpace(v))
	if err != nil {
		return 0, false
	}
	return start, true
}

// HasPageBreak reports whether any run of the paragraph holds an explicit
// page break.
func (p Paragraph) HasPageBreak() bool {
	t := p.doc.tree
	for _, r := range t.Descendants(p.Node, NamespaceW, "r") {
		for _, br := range t.Descendants(r, NamespaceW, "br") {
			if v, _ := t.WAttr(br, "type"); v == "page" {
				return true
			}
		}
	}
	return false
}

// HasNonTextContent reports whether the paragraph holds drawings, pictures,
// equations, embedded objects or section properties.
func (p Paragraph) HasNonTextContent() bool {
	t := p.doc.tree
	for _, local := range []string{"drawing", "pict", "sectPr"} {
		if _, ok := t.Find(p.Node, NamespaceW, local); ok {
			return true
		}
	}
	if _, ok := t.Find(p.Node, NamespaceO, "OLEObject"); ok {
		return true
	}
	return t.HasDescendantInNamespace(p.Node, NamespaceM)
}

// StyleID returns the paragraph style ID, or "" for the default style.
func (p Paragraph) StyleID() string {
	pPr, ok := p.Properties()
	if !ok {
		return ""
	}
	ps, ok := p.doc.tree.Child(pPr, NamespaceW, "pStyle")
	if !ok {
		return ""
	}
	v, _ := p.doc.tree.WAttr(ps, "val")
	return v
}

// Runs returns the runs that belong to this paragraph, excluding runs of
// paragraphs nested inside it, with their effective formatting.
func (p Paragraph) Runs() []Run {
	t := p.doc.tree
	style := p.StyleID()

	var runs []Run
	for _, r := range t.Descendants(p.Node, NamespaceW, "r") {
		if p.doc.owningParagraph(r) != p.Node {
			continue
		}
		var props runPropsXML
		if rPr, ok := t.Child(r, NamespaceW, "rPr"); ok {
			props = runPropsFromTree(t, rPr)
		}
		runs = append(runs, Run{
			Text:   t.Text(r),
			Format: p.doc.styles.ResolveRun(style, props),
			Node:   r,
		})
	}
	return runs
}

// owningParagraph returns the nearest w:p ancestor of id.
func (d *Document) owningParagraph(id NodeID) NodeID {
	for cur, ok := d.tree.Parent(id); ok; cur, ok = d.tree.Parent(cur) {
		if d.tree.Is(cur, NamespaceW, "p") {
			return cur
		}
	}
	return NoNode
}

// Paragraphs returns the paragraphs inside the cell, nested tables included.
func (c Cell) Paragraphs() []Paragraph {
	var out []Paragraph
	for _, p := range c.doc.paragraphs {
		if c.doc.tree.Contains(c.Node, p.Node) {
			out = append(out, p)
		}
	}
	return out
}

// Text returns the visible text of the cell's paragraphs joined by newlines.
func (c Cell) Text() string {
	var parts []string
	for _, p := range c.Paragraphs() {
		parts = append(parts, p.Text())
	}
	return strings.Join(parts, "\n")
}

// Runs returns the runs of every paragraph in the cell.
func (c Cell) Runs() []Run {
	var runs []Run
	for _, p := range c.Paragraphs() {
		runs = append(runs, p.Runs()...)
	}
	return runs
}
