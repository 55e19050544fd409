package check

import (
	"fmt"

	"github.com/tsawler/manucheck/docx"
	"github.com/tsawler/manucheck/layout"
	"github.com/tsawler/manucheck/pages"
)

// BlankLinesOptions configures CheckBlankLines.
type BlankLinesOptions struct {
	// MaxConsecutive is the longest allowed run of empty paragraphs.
	// Required.
	MaxConsecutive *int

	// ParagraphsPerPage tunes page estimates. Zero uses the default.
	ParagraphsPerPage int
}

// CheckBlankLines reports runs of consecutive empty paragraphs after the
// cover page that exceed the allowed maximum.
func CheckBlankLines(path string, opts BlankLinesOptions) (*Result, error) {
	if opts.MaxConsecutive == nil {
		return nil, missing("blank_lines.max_consecutive")
	}
	maxConsecutive := *opts.MaxConsecutive
	if maxConsecutive < 0 {
		return nil, fmt.Errorf("blank_lines.max_consecutive must not be negative, got %d", maxConsecutive)
	}

	return withDocument(path, NameBlankLines, func(_ *docx.Package, doc *docx.Document) *Result {
		config := layout.DefaultBlankLineConfig()
		config.MaxConsecutive = maxConsecutive
		config.Estimator = pages.Estimator{ParagraphsPerPage: opts.ParagraphsPerPage}
		runs := layout.NewBlankLineDetectorWithConfig(config).Detect(doc)

		res := &Result{TotalParagraphs: len(doc.Paragraphs())}
		for _, run := range runs {
			res.Details = append(res.Details, blankRunIssue(run))
		}

		if len(runs) > 0 {
			res.Found = true
			res.Message = fmt.Sprintf("Found %d group(s) of consecutive blank lines (max allowed: %d)", len(runs), maxConsecutive)
		} else {
			res.Message = fmt.Sprintf("No consecutive blank lines found (max allowed: %d)", maxConsecutive)
		}
		return res
	}), nil
}

func blankRunIssue(run layout.BlankRun) Issue {
	pageText := fmt.Sprintf("page %d", run.StartPage)
	if run.EndPage != run.StartPage {
		pageText = fmt.Sprintf("pages %d-%d", run.StartPage, run.EndPage)
	}
	return Issue{
		Kind:     KindBlankLines,
		Severity: SeverityWarning,
		Location: Location{
			Paragraphs: []int{run.Start, run.End},
			Pages:      []int{run.StartPage, run.EndPage},
		},
		Message: fmt.Sprintf("%d consecutive blank lines at paragraphs %d-%d (estimated %s)",
			run.Count, run.Start, run.End, pageText),
		Count:         run.Count,
		ContextBefore: run.ContextBefore,
		ContextAfter:  run.ContextAfter,
	}
}
