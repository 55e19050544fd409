// Package layout analyzes the structure of a word-processing document:
// where the cover page ends, which paragraphs sit inside tables, where
// sections begin and which header and footer parts they use.
//
// # Table Membership
//
// [InTableCell] walks a paragraph's ancestors through the parent index of
// the parsed tree, bounded by [MaxAncestorDepth].
//
// # First Page
//
// [FindFirstPageEnd] returns the index of the last cover-page paragraph.
// The cover ends at the first non-table paragraph that carries section
// properties, restarts page numbering above 1, or holds a page break.
//
// # Blank Lines
//
// The [BlankLineDetector] groups consecutive empty paragraphs after the
// cover page into runs and reports those longer than the configured
// maximum:
//
//	detector := layout.NewBlankLineDetector()
//	runs := detector.Detect(doc)
//
// # Headers and Footers
//
// [AnalyzeUsage] maps header and footer parts to the sections that
// reference them. [ExtractParts] reads their text and [CheckConsistency]
// reports whether every part carries the same text.
package layout
