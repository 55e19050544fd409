package style

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/tsawler/manucheck/docx"
)

// FontSpec describes the required character formatting of a field.
// Zero values and nil flags leave a dimension unconstrained.
type FontSpec struct {
	EastAsianFont string  // canonical label, e.g. 黑体
	LatinFont     string  // e.g. Times New Roman
	Size          float64 // points
	SizeLabel     string  // display name of the size, e.g. 小四

	Bold      *bool
	Italic    *bool
	Underline *bool

	// Aliases resolves font labels to literal names. Nil means
	// DefaultFontAliases.
	Aliases FontAliases
}

func (s FontSpec) aliases() FontAliases {
	if s.Aliases == nil {
		return DefaultFontAliases()
	}
	return s.Aliases
}

// IsZero reports whether the spec constrains nothing.
func (s FontSpec) IsZero() bool {
	return s.EastAsianFont == "" && s.LatinFont == "" && s.Size <= 0 &&
		s.Bold == nil && s.Italic == nil && s.Underline == nil
}

// String returns a short description of the constraints.
func (s FontSpec) String() string {
	var parts []string
	if s.EastAsianFont != "" {
		parts = append(parts, "east-Asian font "+s.EastAsianFont)
	}
	if s.LatinFont != "" {
		parts = append(parts, "Latin font "+s.LatinFont)
	}
	if s.Size > 0 {
		parts = append(parts, "size "+s.sizeName())
	}
	for _, e := range s.emphasis() {
		parts = append(parts, fmt.Sprintf("%s %s", e.name, onOff(e.want)))
	}
	if len(parts) == 0 {
		return "no font constraints"
	}
	return strings.Join(parts, ", ")
}

func (s FontSpec) sizeName() string {
	pt := strconv.FormatFloat(s.Size, 'g', -1, 64) + "pt"
	if s.SizeLabel != "" {
		return s.SizeLabel + " (" + pt + ")"
	}
	return pt
}

// EastAsianFontValidator checks the font of every run holding CJK text.
// It returns nil when no east-Asian font is required.
func (s FontSpec) EastAsianFontValidator() Validator {
	if s.EastAsianFont == "" {
		return nil
	}
	return s.fontValidator("east-Asian", s.EastAsianFont, hasCJK, func(f docx.RunFormat) string {
		return f.EastAsiaFont
	})
}

// LatinFontValidator checks the font of every run holding ASCII letters.
// It returns nil when no Latin font is required.
func (s FontSpec) LatinFontValidator() Validator {
	if s.LatinFont == "" {
		return nil
	}
	return s.fontValidator("Latin", s.LatinFont, hasASCIILetter, func(f docx.RunFormat) string {
		return f.ASCIIFont
	})
}

func (s FontSpec) fontValidator(slot, want string, applies func(string) bool, font func(docx.RunFormat) string) Validator {
	aliases := s.aliases()
	return guard(func(_ *docx.Document, target Target, field, _ string) Verdict {
		unresolved := 0
		for _, run := range runsOf(target) {
			if !applies(run.Text) {
				continue
			}
			got := font(run.Format)
			if got == "" {
				unresolved++
				continue
			}
			if !aliases.Match(want, got) {
				return failed("%s %s font should be %s, got %s", field, slot, want, got)
			}
		}
		if unresolved > 0 {
			return inconclusive("%s %s font could not be resolved for %d run(s)", field, slot, unresolved)
		}
		return passed()
	})
}

// SizeValidator checks the size of every run. It returns nil when no size
// is required.
func (s FontSpec) SizeValidator() Validator {
	if s.Size <= 0 {
		return nil
	}
	want := s.Size
	name := s.sizeName()
	return guard(func(_ *docx.Document, target Target, field, _ string) Verdict {
		unresolved := 0
		for _, run := range runsOf(target) {
			got := run.Format.Size
			if got <= 0 {
				unresolved++
				continue
			}
			if got != want {
				return failed("%s size should be %s, got %spt", field, name, strconv.FormatFloat(got, 'g', -1, 64))
			}
		}
		if unresolved > 0 {
			return inconclusive("%s size could not be resolved for %d run(s)", field, unresolved)
		}
		return passed()
	})
}

type emphasisRule struct {
	name   string
	want   bool
	actual func(docx.RunFormat) bool
}

func (s FontSpec) emphasis() []emphasisRule {
	var rules []emphasisRule
	if s.Bold != nil {
		rules = append(rules, emphasisRule{"bold", *s.Bold, func(f docx.RunFormat) bool { return f.Bold }})
	}
	if s.Italic != nil {
		rules = append(rules, emphasisRule{"italic", *s.Italic, func(f docx.RunFormat) bool { return f.Italic }})
	}
	if s.Underline != nil {
		rules = append(rules, emphasisRule{"underline", *s.Underline, func(f docx.RunFormat) bool { return f.Underline }})
	}
	return rules
}

// EmphasisValidator checks bold, italic and underline on every non-blank
// run. It returns nil when no flag is constrained.
func (s FontSpec) EmphasisValidator() Validator {
	rules := s.emphasis()
	if len(rules) == 0 {
		return nil
	}
	return guard(func(_ *docx.Document, target Target, field, _ string) Verdict {
		runs := runsOf(target)
		for _, rule := range rules {
			for _, run := range runs {
				if strings.TrimSpace(run.Text) == "" {
					continue
				}
				if got := rule.actual(run.Format); got != rule.want {
					return failed("%s %s should be %s, got %s", field, rule.name, onOff(rule.want), onOff(got))
				}
			}
		}
		return passed()
	})
}

// Validators returns the non-nil validators in east-Asian font, Latin
// font, size, emphasis order.
func (s FontSpec) Validators() []Validator {
	var out []Validator
	for _, v := range []Validator{
		s.EastAsianFontValidator(),
		s.LatinFontValidator(),
		s.SizeValidator(),
		s.EmphasisValidator(),
	} {
		if v != nil {
			out = append(out, v)
		}
	}
	return out
}

func onOff(b bool) string {
	if b {
		return "on"
	}
	return "off"
}

// hasCJK reports whether s holds a character in U+4E00..U+9FA5.
func hasCJK(s string) bool {
	for _, r := range s {
		if isCJK(r) {
			return true
		}
	}
	return false
}

func isCJK(r rune) bool {
	return r >= 0x4E00 && r <= 0x9FA5
}

func hasASCIILetter(s string) bool {
	for _, r := range s {
		if (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') {
			return true
		}
	}
	return false
}
