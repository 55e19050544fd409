package report

import (
	"fmt"
	"io"
	"strconv"
	"time"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"github.com/tsawler/manucheck"
	"github.com/tsawler/manucheck/check"
)

const stylesheet = `
body { font-family: system-ui, sans-serif; margin: 2rem; color: #1e1e2e; }
h1 { color: #7c3aed; }
table { border-collapse: collapse; margin: 0.5rem 0 1.5rem; }
th, td { border: 1px solid #c0c0d0; padding: 0.3rem 0.6rem; text-align: left; vertical-align: top; }
.status { font-weight: bold; padding: 0 0.4rem; border-radius: 0.3rem; }
.status-ok { background: #a6e3a1; }
.status-issues { background: #f38ba8; }
.status-aborted { background: #f9e2af; }
.severity-error { color: #d20f39; }
.severity-warning { color: #df8e1d; }
.detail { color: #6c7086; font-size: 0.9em; }
`

// HTML renders reports as a standalone HTML page.
func HTML(w io.Writer, reports []*manucheck.Report) error {
	summary := Summarize(reports)

	body := el(atom.Body, nil,
		el(atom.H1, nil, text("Manuscript Format Report")),
		el(atom.P, nil, text(summary.String())),
	)

	overview := el(atom.Table, attrs("class", "overview"),
		el(atom.Thead, nil, row(atom.Th, "Document", "Checks", "Issues", "Status")),
	)
	rows := el(atom.Tbody, nil)
	for _, r := range reports {
		if r == nil {
			continue
		}
		rows.AppendChild(el(atom.Tr, nil,
			el(atom.Td, nil, el(atom.A, attrs("href", "#"+anchor(r)), text(r.Document))),
			el(atom.Td, nil, text(strconv.Itoa(len(r.Results)))),
			el(atom.Td, nil, text(strconv.Itoa(r.IssueCount()))),
			el(atom.Td, nil, reportStatus(r)),
		))
	}
	overview.AppendChild(rows)
	body.AppendChild(overview)

	for _, r := range reports {
		if r == nil {
			continue
		}
		body.AppendChild(documentSection(r))
	}

	doc := &html.Node{Type: html.DocumentNode}
	doc.AppendChild(&html.Node{Type: html.DoctypeNode, Data: "html"})
	doc.AppendChild(el(atom.Html, attrs("lang", "en"),
		el(atom.Head, nil,
			el(atom.Meta, attrs("charset", "utf-8")),
			el(atom.Title, nil, text("Manuscript Format Report")),
			el(atom.Style, nil, text(stylesheet)),
		),
		body,
	))
	return html.Render(w, doc)
}

func documentSection(r *manucheck.Report) *html.Node {
	section := el(atom.Section, attrs("id", anchor(r)),
		el(atom.H2, nil, text(r.Document)),
		el(atom.P, attrs("class", "detail"),
			text(fmt.Sprintf("Report %s, checked in %s", r.ID, r.Duration.Round(time.Millisecond)))),
	)

	for _, res := range r.Results {
		section.AppendChild(el(atom.H3, nil, text(res.Check+" "), resultStatus(res)))
		section.AppendChild(el(atom.P, nil, text(res.Message)))
		for _, warning := range res.Warnings {
			section.AppendChild(el(atom.P, attrs("class", "detail"), text(warning)))
		}
		if len(res.Details) == 0 {
			continue
		}

		tbody := el(atom.Tbody, nil)
		for i, issue := range res.Details {
			message := el(atom.Td, nil, text(issue.Message))
			for _, line := range details(issue) {
				message.AppendChild(el(atom.Div, attrs("class", "detail"), text(line)))
			}
			tbody.AppendChild(el(atom.Tr, nil,
				el(atom.Td, nil, text(strconv.Itoa(i+1))),
				el(atom.Td, attrs("class", "severity-"+issue.Severity.String()), text(issue.Severity.String())),
				el(atom.Td, nil, text(paragraphs(issue))),
				el(atom.Td, nil, text(pageSpan(issue))),
				message,
			))
		}
		section.AppendChild(el(atom.Table, attrs("class", "issues"),
			el(atom.Thead, nil, row(atom.Th, "#", "Severity", "Paragraphs", "Pages", "Message")),
			tbody,
		))
	}
	return section
}

func resultStatus(res *check.Result) *html.Node {
	return badge(status(res))
}

func reportStatus(r *manucheck.Report) *html.Node {
	switch {
	case r.Aborted():
		return badge("ABORTED")
	case r.Found():
		return badge("ISSUES")
	default:
		return badge("OK")
	}
}

func badge(label string) *html.Node {
	class := "status status-ok"
	switch label {
	case "ISSUES":
		class = "status status-issues"
	case "ABORTED":
		class = "status status-aborted"
	}
	return el(atom.Span, attrs("class", class), text(label))
}

func anchor(r *manucheck.Report) string {
	return "report-" + r.ID
}

// el builds an element node with the given children.
func el(a atom.Atom, attr []html.Attribute, children ...*html.Node) *html.Node {
	n := &html.Node{Type: html.ElementNode, DataAtom: a, Data: a.String(), Attr: attr}
	for _, c := range children {
		n.AppendChild(c)
	}
	return n
}

func text(s string) *html.Node {
	return &html.Node{Type: html.TextNode, Data: s}
}

func attrs(kv ...string) []html.Attribute {
	out := make([]html.Attribute, 0, len(kv)/2)
	for i := 0; i+1 < len(kv); i += 2 {
		out = append(out, html.Attribute{Key: kv[i], Val: kv[i+1]})
	}
	return out
}

func row(cell atom.Atom, values ...string) *html.Node {
	tr := el(atom.Tr, nil)
	for _, v := range values {
		tr.AppendChild(el(cell, nil, text(v)))
	}
	return tr
}
