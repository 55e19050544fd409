package report

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/jedib0t/go-pretty/v6/table"

	"github.com/tsawler/manucheck"
)

// Markdown renders reports as a GitHub-flavored markdown document.
func Markdown(w io.Writer, reports []*manucheck.Report) error {
	var sb strings.Builder
	summary := Summarize(reports)

	sb.WriteString("# Manuscript Format Report\n\n")
	fmt.Fprintf(&sb, "- **Documents:** %d (%d with issues, %d aborted)\n", summary.Documents, summary.WithIssues, summary.Aborted)
	fmt.Fprintf(&sb, "- **Issues:** %d (%d errors, %d warnings)\n\n", summary.Issues, summary.Errors, summary.Warnings)

	overview := table.NewWriter()
	overview.AppendHeader(table.Row{"Document", "Checks", "Issues", "Status"})
	for _, r := range reports {
		if r == nil {
			continue
		}
		state := "OK"
		switch {
		case r.Aborted():
			state = "ABORTED"
		case r.Found():
			state = "ISSUES"
		}
		overview.AppendRow(table.Row{r.Document, len(r.Results), r.IssueCount(), state})
	}
	sb.WriteString(overview.RenderMarkdown())
	sb.WriteString("\n\n")

	for _, r := range reports {
		if r == nil {
			continue
		}
		fmt.Fprintf(&sb, "## %s\n\n", r.Document)
		fmt.Fprintf(&sb, "Report `%s`, checked in %s.\n\n", r.ID, r.Duration.Round(time.Millisecond))

		for _, res := range r.Results {
			fmt.Fprintf(&sb, "### %s: %s\n\n", res.Check, status(res))
			sb.WriteString(res.Message + "\n\n")
			for _, warning := range res.Warnings {
				fmt.Fprintf(&sb, "> %s\n\n", warning)
			}
			if len(res.Details) == 0 {
				continue
			}

			t := table.NewWriter()
			t.AppendHeader(table.Row{"#", "Severity", "Paragraphs", "Pages", "Message"})
			for i, issue := range res.Details {
				message := issue.Message
				if lines := details(issue); len(lines) > 0 {
					message += "<br>" + strings.Join(lines, "<br>")
				}
				t.AppendRow(table.Row{i + 1, issue.Severity.String(), paragraphs(issue), pageSpan(issue), message})
			}
			sb.WriteString(t.RenderMarkdown())
			sb.WriteString("\n\n")
		}
	}

	_, err := io.WriteString(w, sb.String())
	return err
}
