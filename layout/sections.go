package layout

import (
	"github.com/tsawler/manucheck/docx"
)

// Reference is a header or footer reference of a section.
type Reference struct {
	Kind docx.PartKind
	Type string // default, first or even
	ID   string // relationship ID
	Part string // resolved package path, "" if unresolved
}

// Section is a range of paragraphs closed by section properties.
type Section struct {
	Index          int // 1-based
	StartParagraph int // ordinal, inclusive
	EndParagraph   int // ordinal of the paragraph holding the properties
	References     []Reference
}

// PartUsage records that a section references a header or footer part.
type PartUsage struct {
	Section        int
	StartParagraph int
	Type           string
}

// Usage maps header and footer parts to the sections using them.
type Usage struct {
	Headers         map[string][]PartUsage
	Footers         map[string][]PartUsage
	Sections        []Section
	TotalParagraphs int
}

// usageFor returns the usage map of a part kind.
func (u *Usage) usageFor(kind docx.PartKind) map[string][]PartUsage {
	switch kind {
	case docx.PartHeader:
		return u.Headers
	case docx.PartFooter:
		return u.Footers
	default:
		return nil
	}
}

// AnalyzeUsage splits the document into sections and resolves their header
// and footer references through the document relationships.
//
// Every paragraph holding section properties closes a section. Section
// properties placed directly in the body close the final section at the
// last paragraph, or at paragraph 1 when the body has none.
func AnalyzeUsage(doc *docx.Document) *Usage {
	t := doc.Tree()
	paragraphs := doc.Paragraphs()
	usage := &Usage{
		Headers:         make(map[string][]PartUsage),
		Footers:         make(map[string][]PartUsage),
		TotalParagraphs: len(paragraphs),
	}

	type boundary struct {
		ordinal int
		sectPr  docx.NodeID
	}
	var boundaries []boundary
	for _, p := range paragraphs {
		if sp, ok := t.Find(p.Node, docx.NamespaceW, "sectPr"); ok {
			boundaries = append(boundaries, boundary{p.Ordinal, sp})
		}
	}
	if sp, ok := t.Child(doc.Body(), docx.NamespaceW, "sectPr"); ok {
		boundaries = append(boundaries, boundary{max(len(paragraphs), 1), sp})
	}

	rels := doc.Relationships()
	start := 1
	for i, b := range boundaries {
		section := Section{
			Index:          i + 1,
			StartParagraph: start,
			EndParagraph:   b.ordinal,
		}

		for _, c := range t.Children(b.sectPr) {
			var kind docx.PartKind
			switch {
			case t.Is(c, docx.NamespaceW, "headerReference"):
				kind = docx.PartHeader
			case t.Is(c, docx.NamespaceW, "footerReference"):
				kind = docx.PartFooter
			default:
				continue
			}

			ref := Reference{Kind: kind, Type: "default"}
			if v, ok := t.WAttr(c, "type"); ok && v != "" {
				ref.Type = v
			}
			ref.ID, _ = t.Attr(c, docx.NamespaceR, "id")
			if rel, ok := rels.Lookup(ref.ID); ok && rel.Kind == kind {
				ref.Part = rel.Target
				m := usage.usageFor(kind)
				m[ref.Part] = append(m[ref.Part], PartUsage{
					Section:        section.Index,
					StartParagraph: section.StartParagraph,
					Type:           ref.Type,
				})
			}
			section.References = append(section.References, ref)
		}

		usage.Sections = append(usage.Sections, section)
		start = b.ordinal + 1
	}

	return usage
}
