package style

import (
	"errors"
	"fmt"
	"strings"
	"unicode"

	"golang.org/x/text/language"

	"github.com/tsawler/manucheck/docx"
)

// ErrUnknownLanguage is returned for a language class other than Chinese
// or English.
var ErrUnknownLanguage = errors.New("unknown language")

// Language is the required language class of a field's text.
type Language int

const (
	AnyLanguage Language = iota
	Chinese
	English
)

// String returns a string representation of the language
func (l Language) String() string {
	switch l {
	case Chinese:
		return "Chinese"
	case English:
		return "English"
	default:
		return ""
	}
}

// DefaultMinChineseRatio is the share of CJK characters a Chinese field
// needs.
const DefaultMinChineseRatio = 0.70

var (
	chineseBase, _ = language.Chinese.Base()
	englishBase, _ = language.English.Base()
)

// ParseLanguage parses a language class. It accepts 中文 and 英文, the
// English words, and BCP 47 tags whose base language is zh or en. An
// empty string yields AnyLanguage.
func ParseLanguage(s string) (Language, error) {
	s = strings.TrimSpace(s)
	switch strings.ToLower(s) {
	case "":
		return AnyLanguage, nil
	case "中文", "chinese":
		return Chinese, nil
	case "英文", "english":
		return English, nil
	}

	tag, err := language.Parse(s)
	if err != nil {
		return AnyLanguage, fmt.Errorf("%q: %w", s, ErrUnknownLanguage)
	}
	switch base, _ := tag.Base(); base {
	case chineseBase:
		return Chinese, nil
	case englishBase:
		return English, nil
	}
	return AnyLanguage, fmt.Errorf("%q: %w", s, ErrUnknownLanguage)
}

// LanguageSpec requires a field's text to be mostly Chinese or entirely
// English.
type LanguageSpec struct {
	Language Language

	// MinChineseRatio overrides DefaultMinChineseRatio when positive.
	MinChineseRatio float64
}

// Validator returns the language validator, or nil when no language is
// required. The validator inspects the field value, not the runs.
func (s LanguageSpec) Validator() Validator {
	switch s.Language {
	case Chinese:
		minRatio := s.MinChineseRatio
		if minRatio <= 0 {
			minRatio = DefaultMinChineseRatio
		}
		return guard(func(_ *docx.Document, _ Target, field, value string) Verdict {
			ratio, ok := ChineseRatio(value)
			if !ok || ratio >= minRatio {
				return passed()
			}
			return failed("%s should be mostly Chinese (at least %.0f%% CJK characters), got %.1f%%",
				field, minRatio*100, ratio*100)
		})
	case English:
		return guard(func(_ *docx.Document, _ Target, field, value string) Verdict {
			for _, r := range stripNonWord(value) {
				if r < 0x20 || r > 0x7E {
					return failed("%s should be entirely English, found non-English character %q", field, r)
				}
			}
			return passed()
		})
	default:
		return nil
	}
}

// ChineseRatio returns the share of CJK characters among the letters,
// digits and underscores of s. ok is false when s has none.
func ChineseRatio(s string) (ratio float64, ok bool) {
	text := stripNonWord(s)
	if len(text) == 0 {
		return 0, false
	}
	cjk := 0
	for _, r := range text {
		if isCJK(r) {
			cjk++
		}
	}
	return float64(cjk) / float64(len(text)), true
}

// stripNonWord keeps letters, numbers and underscores.
func stripNonWord(s string) []rune {
	var out []rune
	for _, r := range s {
		if unicode.IsLetter(r) || unicode.IsNumber(r) || r == '_' {
			out = append(out, r)
		}
	}
	return out
}
