package report

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/jedib0t/go-pretty/v6/table"

	"github.com/tsawler/manucheck"
	"github.com/tsawler/manucheck/check"
)

// messageWidth wraps long messages in terminal tables.
const messageWidth = 72

type textStyles struct {
	title   lipgloss.Style
	muted   lipgloss.Style
	ok      lipgloss.Style
	issues  lipgloss.Style
	aborted lipgloss.Style
	err     lipgloss.Style
	warning lipgloss.Style
	info    lipgloss.Style
}

// newTextStyles binds styles to w, so color is dropped when w is not a
// terminal.
func newTextStyles(w io.Writer) textStyles {
	r := lipgloss.NewRenderer(w)
	badge := r.NewStyle().Bold(true)
	return textStyles{
		title:   r.NewStyle().Bold(true).Foreground(lipgloss.Color("#7C3AED")),
		muted:   r.NewStyle().Foreground(lipgloss.Color("#6C7086")),
		ok:      badge.Foreground(lipgloss.Color("#A6E3A1")),
		issues:  badge.Foreground(lipgloss.Color("#F38BA8")),
		aborted: badge.Foreground(lipgloss.Color("#F9E2AF")),
		err:     r.NewStyle().Foreground(lipgloss.Color("#F38BA8")),
		warning: r.NewStyle().Foreground(lipgloss.Color("#F9E2AF")),
		info:    r.NewStyle().Foreground(lipgloss.Color("#06B6D4")),
	}
}

func (s textStyles) status(res *check.Result) string {
	label := status(res)
	switch {
	case res.Aborted:
		return s.aborted.Render(label)
	case res.Found:
		return s.issues.Render(label)
	default:
		return s.ok.Render(label)
	}
}

func (s textStyles) severity(sev check.Severity) string {
	switch sev {
	case check.SeverityError:
		return s.err.Render(sev.String())
	case check.SeverityWarning:
		return s.warning.Render(sev.String())
	default:
		return s.info.Render(sev.String())
	}
}

// Text renders reports for a terminal.
func Text(w io.Writer, reports []*manucheck.Report) error {
	st := newTextStyles(w)
	var sb strings.Builder

	for _, r := range reports {
		if r == nil {
			continue
		}
		sb.WriteString(st.title.Render(r.Document))
		sb.WriteString(" ")
		sb.WriteString(st.muted.Render(fmt.Sprintf("(%d issue(s), %s)", r.IssueCount(), r.Duration.Round(time.Millisecond))))
		sb.WriteString("\n")

		for _, res := range r.Results {
			fmt.Fprintf(&sb, "  %-12s %s  %s\n", res.Check, st.status(res), res.Message)
			for _, warning := range res.Warnings {
				fmt.Fprintf(&sb, "  %-12s %s\n", "", st.muted.Render("note: "+warning))
			}
			if len(res.Details) == 0 {
				continue
			}
			for _, line := range strings.Split(strings.TrimRight(issueTable(st, res), "\n"), "\n") {
				sb.WriteString("    " + line + "\n")
			}
		}
		sb.WriteString("\n")
	}

	sb.WriteString(st.muted.Render(Summarize(reports).String()))
	sb.WriteString("\n")

	_, err := io.WriteString(w, sb.String())
	return err
}

func issueTable(st textStyles, res *check.Result) string {
	t := table.NewWriter()
	t.SetStyle(table.StyleLight)
	t.AppendHeader(table.Row{"#", "Severity", "Paragraphs", "Pages", "Message"})
	t.SetColumnConfigs([]table.ColumnConfig{{Number: 5, WidthMax: messageWidth}})

	for i, issue := range res.Details {
		message := issue.Message
		if lines := details(issue); len(lines) > 0 {
			message += "\n" + strings.Join(lines, "\n")
		}
		t.AppendRow(table.Row{i + 1, st.severity(issue.Severity), paragraphs(issue), pageSpan(issue), message})
	}
	return t.Render()
}
