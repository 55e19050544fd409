package check

import (
	"fmt"
	"regexp"
	"slices"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/width"

	"github.com/tsawler/manucheck/docx"
	"github.com/tsawler/manucheck/pages"
	"github.com/tsawler/manucheck/style"
)

// Field scopes.
const (
	ScopeParagraphs = "paragraphs"
	ScopeCells      = "cells"
)

// FieldRule selects the paragraphs of one manuscript field, such as the
// title or the abstract heading, and states their required format.
type FieldRule struct {
	Name string

	// Scope is ScopeParagraphs (the default) or ScopeCells. With
	// ScopeCells the rule inspects table cells, such as the entries of a
	// student information table, and validates all runs of a cell.
	Scope string

	// Pattern is matched against the text after full-width characters are
	// folded to their narrow forms. A group named "value" selects the text
	// passed to language validators, taken from the unfolded text;
	// otherwise the whole trimmed text is used.
	Pattern string

	// StyleID restricts the rule to paragraphs with this style. A cell is
	// selected when any of its paragraphs has the style.
	StyleID string

	// Required reports a missing field when no paragraph is selected.
	Required bool

	Spec style.StyleSpec
}

// FieldOptions configures CheckFields.
type FieldOptions struct {
	Rules []FieldRule

	// ParagraphsPerPage tunes page estimates. Zero uses the default.
	ParagraphsPerPage int
}

// CompiledRule is a FieldRule ready to run.
type CompiledRule struct {
	FieldRule
	re         *regexp.Regexp
	valueGroup int
	validators []style.Validator
}

// CompileFieldRule validates a rule and compiles its selector and
// validators.
func CompileFieldRule(rule FieldRule) (*CompiledRule, error) {
	if strings.TrimSpace(rule.Name) == "" {
		return nil, missing("fields[].name")
	}
	if rule.Pattern == "" && rule.StyleID == "" {
		return nil, missing(fmt.Sprintf("fields[%s].pattern or style", rule.Name))
	}

	switch rule.Scope {
	case "", ScopeParagraphs, ScopeCells:
	default:
		return nil, fmt.Errorf("fields[%s].scope: unknown scope %q", rule.Name, rule.Scope)
	}

	c := &CompiledRule{FieldRule: rule, valueGroup: -1}
	if rule.Pattern != "" {
		re, err := regexp.Compile(rule.Pattern)
		if err != nil {
			return nil, fmt.Errorf("fields[%s].pattern: %w", rule.Name, err)
		}
		c.re = re
		c.valueGroup = re.SubexpIndex("value")
	}
	c.validators = rule.Spec.Validators()
	return c, nil
}

// fieldTarget is a paragraph or cell a rule may select.
type fieldTarget struct {
	target     style.Target
	text       string // trimmed visible text
	styleIDs   []string
	paragraphs []int
}

// fieldTargets lists the non-empty targets of a scope in document order.
func fieldTargets(doc *docx.Document, scope string) []fieldTarget {
	var out []fieldTarget
	if scope == ScopeCells {
		for _, cell := range doc.Cells() {
			text := strings.TrimSpace(cell.Text())
			if text == "" {
				continue
			}
			t := fieldTarget{target: cell, text: text}
			for _, p := range cell.Paragraphs() {
				t.styleIDs = append(t.styleIDs, p.StyleID())
				t.paragraphs = append(t.paragraphs, p.Ordinal)
			}
			out = append(out, t)
		}
		return out
	}
	for _, p := range doc.Paragraphs() {
		text := strings.TrimSpace(p.Text())
		if text == "" {
			continue
		}
		out = append(out, fieldTarget{
			target:     p,
			text:       text,
			styleIDs:   []string{p.StyleID()},
			paragraphs: []int{p.Ordinal},
		})
	}
	return out
}

// selects returns the field value of t if the rule applies to it.
func (c *CompiledRule) selects(t fieldTarget) (string, bool) {
	if c.StyleID != "" && !slices.Contains(t.styleIDs, c.StyleID) {
		return "", false
	}
	if c.re == nil {
		return t.text, true
	}
	folded := width.Fold.String(t.text)
	loc := c.re.FindStringSubmatchIndex(folded)
	if loc == nil {
		return "", false
	}
	if c.valueGroup > 0 {
		start, end := loc[2*c.valueGroup], loc[2*c.valueGroup+1]
		if start >= 0 && end > start {
			return strings.TrimSpace(unfold(t.text, folded, start, end)), true
		}
	}
	return t.text, true
}

// unfold maps the byte range [start, end) of folded back onto text.
// Folding replaces rune for rune, so rune offsets carry over.
func unfold(text, folded string, start, end int) string {
	runes := []rune(text)
	if utf8.RuneCountInString(folded) != len(runes) {
		return folded[start:end]
	}
	from := utf8.RuneCountInString(folded[:start])
	to := from + utf8.RuneCountInString(folded[start:end])
	return string(runes[from:to])
}

// CheckFields runs the validators of every rule on the paragraphs it
// selects. Failed verdicts become issues; inconclusive verdicts are
// counted in Result.Inconclusive.
func CheckFields(path string, opts FieldOptions) (*Result, error) {
	if len(opts.Rules) == 0 {
		return nil, missing("fields")
	}
	rules := make([]*CompiledRule, 0, len(opts.Rules))
	for _, r := range opts.Rules {
		c, err := CompileFieldRule(r)
		if err != nil {
			return nil, err
		}
		rules = append(rules, c)
	}

	return withDocument(path, NameFields, func(_ *docx.Package, doc *docx.Document) *Result {
		total := len(doc.Paragraphs())
		est := pages.Estimator{ParagraphsPerPage: opts.ParagraphsPerPage}
		res := &Result{TotalParagraphs: total}

		var paragraphTargets, cellTargets []fieldTarget
		matched := 0
		for _, rule := range rules {
			var targets []fieldTarget
			if rule.Scope == ScopeCells {
				if cellTargets == nil {
					cellTargets = fieldTargets(doc, ScopeCells)
				}
				targets = cellTargets
			} else {
				if paragraphTargets == nil {
					paragraphTargets = fieldTargets(doc, ScopeParagraphs)
				}
				targets = paragraphTargets
			}

			selected := 0
			for _, t := range targets {
				value, ok := rule.selects(t)
				if !ok {
					continue
				}
				selected++

				first := t.paragraphs[0]
				for _, v := range rule.validators {
					verdict := v(doc, t.target, rule.Name, value)
					switch verdict.Status {
					case style.Fail:
						res.Details = append(res.Details, Issue{
							Kind:     KindField,
							Severity: SeverityError,
							Location: Location{
								Paragraphs: []int{first},
								Pages:      []int{est.EstimatePage(first, total)},
								Field:      rule.Name,
							},
							Message:  verdict.Message,
							Evidence: []string{preview(t.text, coverPreviewRunes)},
						})
					case style.Inconclusive:
						res.Inconclusive++
					}
				}
			}

			if selected == 0 && rule.Required {
				res.Details = append(res.Details, Issue{
					Kind:     KindField,
					Severity: SeverityError,
					Location: Location{Field: rule.Name},
					Message:  fmt.Sprintf("Field %s not found in document", rule.Name),
				})
			}
			matched += selected
		}

		if len(res.Details) > 0 {
			res.Found = true
			res.Message = fmt.Sprintf("Found %d field formatting issue(s) in %d matched paragraph(s)", len(res.Details), matched)
		} else {
			res.Message = fmt.Sprintf("All %d matched paragraph(s) satisfy their field formats", matched)
		}
		return res
	}), nil
}
