package check

import (
	"fmt"
	"sort"
	"strings"

	"github.com/tsawler/manucheck/docx"
	"github.com/tsawler/manucheck/layout"
	"github.com/tsawler/manucheck/style"
)

// coverPreviewRunes truncates cover paragraph text in issues.
const coverPreviewRunes = 50

// CoverOptions configures CheckCoverFont.
type CoverOptions struct {
	// Font is the font every cover paragraph must use. Required.
	Font string

	// Aliases resolves Font to literal names. Nil means
	// style.DefaultFontAliases.
	Aliases style.FontAliases
}

// CheckCoverFont reports cover-page paragraphs whose runs use a font other
// than the required one. A run's font is its first named font in
// east-Asian, ASCII, complex-script, hAnsi order and matches when it
// contains the required name or one of its aliases.
func CheckCoverFont(path string, opts CoverOptions) (*Result, error) {
	required := strings.TrimSpace(opts.Font)
	if required == "" {
		return nil, missing("cover.font")
	}
	aliases := opts.Aliases
	if aliases == nil {
		aliases = style.DefaultFontAliases()
	}

	return withDocument(path, NameCoverFont, func(_ *docx.Package, doc *docx.Document) *Result {
		res := &Result{TotalParagraphs: len(doc.Paragraphs())}

		checked := 0
		for _, p := range layout.CoverParagraphs(doc) {
			text := strings.TrimSpace(p.Text())
			if text == "" {
				continue
			}
			fonts := paragraphFonts(p)
			if len(fonts) == 0 {
				continue
			}
			checked++

			var wrong bool
			for _, f := range fonts {
				if !aliases.Contains(required, f) {
					wrong = true
					break
				}
			}
			if !wrong {
				continue
			}

			res.Details = append(res.Details, Issue{
				Kind:     KindCoverFont,
				Severity: SeverityError,
				Location: Location{Paragraphs: []int{p.Ordinal}, Pages: []int{1}},
				Message: fmt.Sprintf("Cover paragraph %d %q uses %s, expected %s",
					p.Ordinal, preview(text, coverPreviewRunes), strings.Join(fonts, ", "), required),
				Evidence: fonts,
			})
		}

		switch {
		case checked == 0:
			res.Message = "No cover paragraphs found on first page"
		case len(res.Details) > 0:
			res.Found = true
			res.Message = fmt.Sprintf("Found %d cover paragraph(s) on first page with incorrect font", len(res.Details))
		default:
			res.Message = fmt.Sprintf("All cover paragraphs on first page use %s font", required)
		}
		return res
	}), nil
}

// paragraphFonts returns the distinct named fonts of the paragraph's
// non-blank runs, sorted.
func paragraphFonts(p docx.Paragraph) []string {
	seen := make(map[string]bool)
	var fonts []string
	for _, r := range p.Runs() {
		if strings.TrimSpace(r.Text) == "" {
			continue
		}
		f := r.Format.PrimaryFont()
		if f == "" || seen[f] {
			continue
		}
		seen[f] = true
		fonts = append(fonts, f)
	}
	sort.Strings(fonts)
	return fonts
}

func preview(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}
