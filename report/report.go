// Package report renders check reports as terminal text, markdown, JSON or
// HTML.
package report

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/tsawler/manucheck"
	"github.com/tsawler/manucheck/check"
)

// Formats.
const (
	FormatText     = "text"
	FormatMarkdown = "markdown"
	FormatJSON     = "json"
	FormatHTML     = "html"
)

// Renderer writes a set of reports.
type Renderer func(w io.Writer, reports []*manucheck.Report) error

// Lookup returns the renderer for a format name.
func Lookup(format string) (Renderer, error) {
	switch strings.ToLower(format) {
	case FormatText, "":
		return Text, nil
	case FormatMarkdown, "md":
		return Markdown, nil
	case FormatJSON:
		return JSON, nil
	case FormatHTML:
		return HTML, nil
	default:
		return nil, fmt.Errorf("unknown report format %q", format)
	}
}

// Write renders reports in the named format.
func Write(w io.Writer, format string, reports []*manucheck.Report) error {
	render, err := Lookup(format)
	if err != nil {
		return err
	}
	return render(w, reports)
}

// Summary aggregates a set of reports.
type Summary struct {
	Documents  int `json:"documents"`
	WithIssues int `json:"with_issues"`
	Aborted    int `json:"aborted"`
	Issues     int `json:"issues"`
	Errors     int `json:"errors"`
	Warnings   int `json:"warnings"`
}

// Summarize counts documents and issues.
func Summarize(reports []*manucheck.Report) Summary {
	var s Summary
	for _, r := range reports {
		if r == nil {
			continue
		}
		s.Documents++
		if r.Found() {
			s.WithIssues++
		}
		if r.Aborted() {
			s.Aborted++
		}
		for _, res := range r.Results {
			for _, issue := range res.Details {
				s.Issues++
				switch issue.Severity {
				case check.SeverityError:
					s.Errors++
				case check.SeverityWarning:
					s.Warnings++
				}
			}
		}
	}
	return s
}

// String returns a one-line description of the summary.
func (s Summary) String() string {
	return fmt.Sprintf("%d document(s) checked, %d with issues, %d aborted, %d issue(s) (%d error(s), %d warning(s))",
		s.Documents, s.WithIssues, s.Aborted, s.Issues, s.Errors, s.Warnings)
}

// status labels a check result.
func status(res *check.Result) string {
	switch {
	case res.Aborted:
		return "ABORTED"
	case res.Found:
		return "ISSUES"
	default:
		return "OK"
	}
}

// paragraphs formats an issue's paragraph ordinals. Blank line runs are
// shown as a range.
func paragraphs(issue check.Issue) string {
	if issue.Kind == check.KindBlankLines && len(issue.Location.Paragraphs) == 2 {
		return span(issue.Location.Paragraphs[0], issue.Location.Paragraphs[1])
	}
	return joinInts(issue.Location.Paragraphs)
}

// pageSpan formats an issue's estimated pages.
func pageSpan(issue check.Issue) string {
	if issue.Kind == check.KindBlankLines && len(issue.Location.Pages) == 2 {
		return span(issue.Location.Pages[0], issue.Location.Pages[1])
	}
	return joinInts(issue.Location.Pages)
}

func span(a, b int) string {
	if a == b {
		return strconv.Itoa(a)
	}
	return strconv.Itoa(a) + "-" + strconv.Itoa(b)
}

func joinInts(values []int) string {
	parts := make([]string, len(values))
	for i, v := range values {
		parts[i] = strconv.Itoa(v)
	}
	return strings.Join(parts, ", ")
}

// details returns the supporting lines of an issue: surrounding text and
// evidence.
func details(issue check.Issue) []string {
	var lines []string
	if len(issue.ContextBefore) > 0 {
		lines = append(lines, "before: "+strings.Join(issue.ContextBefore, " | "))
	}
	if len(issue.ContextAfter) > 0 {
		lines = append(lines, "after: "+strings.Join(issue.ContextAfter, " | "))
	}
	if issue.Kind != check.KindBlankLines && len(issue.Evidence) > 0 {
		lines = append(lines, "evidence: "+strings.Join(issue.Evidence, ", "))
	}
	return lines
}
