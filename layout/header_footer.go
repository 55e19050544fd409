package layout

import (
	"errors"
	"fmt"
	"strings"

	"github.com/tsawler/manucheck/docx"
	"github.com/tsawler/manucheck/pages"
)

// PartSource gives access to the parts of a package.
type PartSource interface {
	PartNames() []string
	ReadPart(name string) ([]byte, error)
}

// PageInfo locates one use of a header or footer part.
type PageInfo struct {
	Section            int
	StartParagraph     int
	EstimatedStartPage int
	Type               string
}

// PartText is the text of a header or footer part.
type PartText struct {
	Part  string
	Kind  docx.PartKind
	Text  string
	Pages []PageInfo
}

// ExtractParts reads every header or footer part of the package and
// returns those with text, in part-name order. Usage information, when
// given, attaches the sections that reference each part.
//
// Parts that cannot be read or parsed are skipped; the returned error
// joins the reasons and is nil when nothing was skipped.
func ExtractParts(src PartSource, usage *Usage, kind docx.PartKind, est pages.Estimator) ([]PartText, error) {
	var (
		parts []PartText
		errs  []error
	)

	for _, name := range src.PartNames() {
		if !isPartOfKind(name, kind) {
			continue
		}
		data, err := src.ReadPart(name)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		text, ok := docx.ExtractText(data)
		if !ok {
			errs = append(errs, fmt.Errorf("%s: malformed XML", name))
			continue
		}
		text = strings.TrimSpace(text)
		if text == "" {
			continue
		}

		pt := PartText{Part: name, Kind: kind, Text: text}
		if usage != nil {
			for _, u := range usage.usageFor(kind)[name] {
				pt.Pages = append(pt.Pages, PageInfo{
					Section:            u.Section,
					StartParagraph:     u.StartParagraph,
					EstimatedStartPage: est.EstimatePage(u.StartParagraph, usage.TotalParagraphs),
					Type:               u.Type,
				})
			}
		}
		parts = append(parts, pt)
	}

	return parts, errors.Join(errs...)
}

// isPartOfKind matches XML part names such as word/header2.xml.
func isPartOfKind(name string, kind docx.PartKind) bool {
	if kind == docx.PartOther {
		return false
	}
	lower := strings.ToLower(name)
	return strings.HasSuffix(lower, ".xml") && strings.Contains(lower, kind.String())
}

// ConsistencyStatus is the outcome of a consistency check.
type ConsistencyStatus int

const (
	NotFound ConsistencyStatus = iota
	Consistent
	Inconsistent
)

// String returns a string representation of the status
func (s ConsistencyStatus) String() string {
	switch s {
	case Consistent:
		return "consistent"
	case Inconsistent:
		return "inconsistent"
	default:
		return "not-found"
	}
}

// Variant is one distinct text with the number of parts carrying it.
type Variant struct {
	Text  string
	Count int
}

// Consistency is the result of comparing header or footer texts.
type Consistency struct {
	Status   ConsistencyStatus
	Message  string
	Items    []PartText
	Variants []Variant // in order of first appearance
}

// CheckConsistency reports whether all parts carry the same text.
func CheckConsistency(items []PartText, kind docx.PartKind) Consistency {
	noun := kind.String()
	c := Consistency{Items: items}

	index := make(map[string]int)
	for _, it := range items {
		if i, ok := index[it.Text]; ok {
			c.Variants[i].Count++
			continue
		}
		index[it.Text] = len(c.Variants)
		c.Variants = append(c.Variants, Variant{Text: it.Text, Count: 1})
	}

	switch {
	case len(items) == 0:
		c.Status = NotFound
		c.Message = fmt.Sprintf("No %ss found in document", noun)
	case len(items) == 1:
		c.Status = Consistent
		c.Message = fmt.Sprintf("Only one %s found", noun)
	case len(c.Variants) == 1:
		c.Status = Consistent
		c.Message = fmt.Sprintf("All %ss are identical", noun)
	default:
		c.Status = Inconsistent
		c.Message = fmt.Sprintf("Found %d different %s variations", len(c.Variants), noun)
	}
	return c
}
