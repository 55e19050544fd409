package check

import (
	"fmt"
	"strings"

	"github.com/tsawler/manucheck/docx"
	"github.com/tsawler/manucheck/layout"
	"github.com/tsawler/manucheck/pages"
)

// PartOptions configures CheckHeaders and CheckFooters.
type PartOptions struct {
	// ParagraphsPerPage tunes page estimates. Zero uses the default.
	ParagraphsPerPage int
}

// CheckHeaders reports whether all header parts carry the same text.
func CheckHeaders(path string, opts PartOptions) (*Result, error) {
	return checkParts(path, NameHeaders, docx.PartHeader, KindHeader, opts), nil
}

// CheckFooters reports whether all footer parts carry the same text.
func CheckFooters(path string, opts PartOptions) (*Result, error) {
	return checkParts(path, NameFooters, docx.PartFooter, KindFooter, opts), nil
}

func checkParts(path, name string, partKind docx.PartKind, kind Kind, opts PartOptions) *Result {
	return withPackage(path, name, func(pkg *docx.Package) *Result {
		res := &Result{}

		// Section usage is optional: parts are still compared when the
		// main document cannot be read.
		var usage *layout.Usage
		if doc, err := docx.Load(pkg); err == nil {
			usage = layout.AnalyzeUsage(doc)
			res.TotalParagraphs = usage.TotalParagraphs
			res.Warnings = append(res.Warnings, doc.Warnings()...)
		} else {
			res.Warnings = append(res.Warnings, fmt.Sprintf("section usage unavailable: %v", err))
		}

		est := pages.Estimator{ParagraphsPerPage: opts.ParagraphsPerPage}
		parts, err := layout.ExtractParts(pkg, usage, partKind, est)
		if err != nil {
			res.Warnings = append(res.Warnings, err.Error())
		}

		consistency := layout.CheckConsistency(parts, partKind)
		res.Message = consistency.Message
		for _, p := range parts {
			res.Parts = append(res.Parts, summarizePart(p))
		}
		for _, v := range consistency.Variants {
			res.Variants = append(res.Variants, Variant{Text: v.Text, Count: v.Count})
		}

		if consistency.Status == layout.Inconsistent {
			res.Found = true
			for _, v := range consistency.Variants {
				res.Details = append(res.Details, variantIssue(kind, partKind, v, parts))
			}
		}
		return res
	})
}

func summarizePart(p layout.PartText) Part {
	part := Part{Name: p.Part, Text: p.Text}
	for _, pi := range p.Pages {
		part.Sections = append(part.Sections, pi.Section)
		part.Pages = append(part.Pages, pi.EstimatedStartPage)
	}
	return part
}

func variantIssue(kind Kind, partKind docx.PartKind, v layout.Variant, parts []layout.PartText) Issue {
	var names []string
	loc := Location{}
	for _, p := range parts {
		if p.Text != v.Text {
			continue
		}
		names = append(names, p.Part)
		for _, pi := range p.Pages {
			loc.Paragraphs = append(loc.Paragraphs, pi.StartParagraph)
			loc.Pages = append(loc.Pages, pi.EstimatedStartPage)
		}
	}
	loc.Part = strings.Join(names, ", ")

	return Issue{
		Kind:     kind,
		Severity: SeverityWarning,
		Location: loc,
		Message:  fmt.Sprintf("%s variant %q used by %d part(s)", capitalize(partKind.String()), v.Text, v.Count),
		Count:    v.Count,
		Evidence: names,
	}
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
