package layout

import (
	"strings"
	"unicode/utf8"

	"github.com/tsawler/manucheck/docx"
	"github.com/tsawler/manucheck/pages"
)

// BlankRun is a group of consecutive empty paragraphs.
type BlankRun struct {
	// Start and End are the 1-based ordinals of the first and last empty
	// paragraph of the run.
	Start int
	End   int

	// Count is the number of empty paragraphs in the run. Table paragraphs
	// between them are not counted.
	Count int

	// StartPage and EndPage are estimated page numbers.
	StartPage int
	EndPage   int

	// ContextBefore and ContextAfter hold up to ContextParagraphs previews
	// of the text surrounding the run.
	ContextBefore []string
	ContextAfter  []string
}

// BlankLineConfig holds configuration for blank run detection
type BlankLineConfig struct {
	// MaxConsecutive is the longest run that is allowed. Only runs strictly
	// longer are reported.
	// Default: 2
	MaxConsecutive int

	// ContextWindow is how many paragraphs on each side of a run are
	// searched for context text.
	// Default: 3
	ContextWindow int

	// ContextParagraphs is the maximum number of previews kept per side.
	// Default: 2
	ContextParagraphs int

	// MinContextRunes is the minimum text length for a paragraph to be used
	// as context.
	// Default: 6
	MinContextRunes int

	// PreviewRunes truncates each context preview.
	// Default: 150
	PreviewRunes int

	// Estimator converts ordinals into page numbers.
	Estimator pages.Estimator
}

// DefaultBlankLineConfig returns sensible default configuration
func DefaultBlankLineConfig() BlankLineConfig {
	return BlankLineConfig{
		MaxConsecutive:    2,
		ContextWindow:     3,
		ContextParagraphs: 2,
		MinContextRunes:   6,
		PreviewRunes:      150,
	}
}

// BlankLineDetector finds runs of empty paragraphs after the cover page.
type BlankLineDetector struct {
	config BlankLineConfig
}

// NewBlankLineDetector creates a detector with default configuration
func NewBlankLineDetector() *BlankLineDetector {
	return NewBlankLineDetectorWithConfig(DefaultBlankLineConfig())
}

// NewBlankLineDetectorWithConfig creates a detector with custom configuration
func NewBlankLineDetectorWithConfig(config BlankLineConfig) *BlankLineDetector {
	return &BlankLineDetector{config: config}
}

// Config returns the detector configuration.
func (d *BlankLineDetector) Config() BlankLineConfig {
	return d.config
}

// paragraphState is the classification of one paragraph for the scan.
type paragraphState int

const (
	stateSkipped paragraphState = iota // cover page or table
	stateEmpty
	stateContent
)

// Detect returns the runs of empty paragraphs longer than MaxConsecutive,
// in document order.
//
// Paragraphs on the cover page and inside tables are skipped without
// breaking or extending a run. A paragraph is empty when its trimmed text
// is empty and it holds no drawings, equations, objects or section
// properties.
func (d *BlankLineDetector) Detect(doc *docx.Document) []BlankRun {
	paragraphs := doc.Paragraphs()
	total := len(paragraphs)
	firstPageEnd := FindFirstPageEnd(doc, paragraphs)

	states := make([]paragraphState, total)
	texts := make([]string, total)
	for i, p := range paragraphs {
		if i <= firstPageEnd || inTable(doc, p) {
			states[i] = stateSkipped
			continue
		}
		if p.HasNonTextContent() {
			states[i] = stateContent
			continue
		}
		texts[i] = strings.TrimSpace(p.Text())
		if texts[i] == "" {
			states[i] = stateEmpty
		} else {
			states[i] = stateContent
		}
	}

	var runs []BlankRun
	count, start, end := 0, 0, 0
	flush := func() {
		if count > d.config.MaxConsecutive {
			runs = append(runs, d.buildRun(start, end, count, total, texts))
		}
		count = 0
	}

	for i, state := range states {
		switch state {
		case stateSkipped:
			continue
		case stateEmpty:
			if count == 0 {
				start = i
			}
			end = i
			count++
		case stateContent:
			flush()
		}
	}
	flush()

	return runs
}

// buildRun converts 0-based indexes into a reported run.
func (d *BlankLineDetector) buildRun(start, end, count, total int, texts []string) BlankRun {
	est := d.config.Estimator
	run := BlankRun{
		Start:     start + 1,
		End:       end + 1,
		Count:     count,
		StartPage: est.EstimatePage(start+1, total),
		EndPage:   est.EstimatePage(end+1, total),
	}

	for i := max(0, start-d.config.ContextWindow); i < start; i++ {
		if s, ok := d.preview(texts[i]); ok {
			run.ContextBefore = append(run.ContextBefore, s)
		}
	}
	if n := len(run.ContextBefore); n > d.config.ContextParagraphs {
		run.ContextBefore = run.ContextBefore[n-d.config.ContextParagraphs:]
	}

	for i := end + 1; i < min(len(texts), end+1+d.config.ContextWindow); i++ {
		if s, ok := d.preview(texts[i]); ok {
			run.ContextAfter = append(run.ContextAfter, s)
		}
		if len(run.ContextAfter) == d.config.ContextParagraphs {
			break
		}
	}

	return run
}

// preview truncates text for display. Text shorter than MinContextRunes is
// rejected.
func (d *BlankLineDetector) preview(text string) (string, bool) {
	if utf8.RuneCountInString(text) < d.config.MinContextRunes {
		return "", false
	}
	return truncateRunes(text, d.config.PreviewRunes), true
}

// truncateRunes returns at most n runes of s.
func truncateRunes(s string, n int) string {
	if n <= 0 || utf8.RuneCountInString(s) <= n {
		return s
	}
	r := []rune(s)
	return string(r[:n])
}
