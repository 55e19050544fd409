package layout

import (
	"github.com/tsawler/manucheck/docx"
)

// FindFirstPageEnd returns the 0-based index into paragraphs of the last
// paragraph of the cover page. Table paragraphs are ignored. For each
// remaining paragraph, in order, the first of these markers ends the cover:
//
//  1. section properties inside the paragraph properties
//  2. page numbering restarted at a value above 1
//  3. a run holding a page break
//
// When no paragraph carries a marker the result is len(paragraphs).
func FindFirstPageEnd(doc *docx.Document, paragraphs []docx.Paragraph) int {
	for i, p := range paragraphs {
		if inTable(doc, p) {
			continue
		}
		if _, ok := p.SectionProperties(); ok {
			return i
		}
		if start, ok := p.PageNumberRestart(); ok && start > 1 {
			return i
		}
		if p.HasPageBreak() {
			return i
		}
	}
	return len(paragraphs)
}

// CoverParagraphs returns the non-table paragraphs up to and including the
// first-page boundary.
func CoverParagraphs(doc *docx.Document) []docx.Paragraph {
	paragraphs := doc.Paragraphs()
	end := FindFirstPageEnd(doc, paragraphs)

	var out []docx.Paragraph
	for i, p := range paragraphs {
		if i > end {
			break
		}
		if !inTable(doc, p) {
			out = append(out, p)
		}
	}
	return out
}
