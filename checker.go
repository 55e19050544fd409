package manucheck

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/tsawler/manucheck/check"
	"github.com/tsawler/manucheck/format"
	"github.com/tsawler/manucheck/style"
)

// Checker provides a fluent interface for checking one document. Each
// configuration method returns a new Checker instance, making it safe for
// concurrent use and allowing method chaining.
type Checker struct {
	filename string
	options  Options

	// Accumulated configuration error (fail-fast)
	err error
}

// Report is the outcome of checking one document.
type Report struct {
	ID        string          `json:"id"`
	Document  string          `json:"document"`
	Results   []*check.Result `json:"results"`
	StartedAt time.Time       `json:"started_at"`
	Duration  time.Duration   `json:"duration"`
}

// Found reports whether any check found issues.
func (r *Report) Found() bool {
	for _, res := range r.Results {
		if res.Found {
			return true
		}
	}
	return false
}

// Aborted reports whether any check could not analyze the document.
func (r *Report) Aborted() bool {
	for _, res := range r.Results {
		if res.Aborted {
			return true
		}
	}
	return false
}

// IssueCount returns the number of issues across all checks.
func (r *Report) IssueCount() int {
	n := 0
	for _, res := range r.Results {
		n += len(res.Details)
	}
	return n
}

// Result returns the result of the named check, or nil if it did not run.
func (r *Report) Result(name string) *check.Result {
	for _, res := range r.Results {
		if res.Check == name {
			return res
		}
	}
	return nil
}

// clone creates a shallow copy of the Checker with a deep copy of options.
func (c *Checker) clone() *Checker {
	return &Checker{
		filename: c.filename,
		options:  c.options.clone(),
		err:      c.err,
	}
}

// Filename returns the path of the document being checked.
func (c *Checker) Filename() string {
	return c.filename
}

// Options returns a copy of the Checker's configuration.
func (c *Checker) Options() Options {
	return c.options.clone()
}

// ============================================================================
// Configuration Methods (return new Checker instance)
// ============================================================================

// MaxBlankLines enables the blank line check, allowing at most n
// consecutive empty paragraphs after the cover page.
//
// Example:
//
//	report, err := manucheck.Open("thesis.docx").MaxBlankLines(2).Check()
func (c *Checker) MaxBlankLines(n int) *Checker {
	next := c.clone()
	if n < 0 && next.err == nil {
		next.err = fmt.Errorf("max blank lines must not be negative, got %d", n)
	}
	next.options.MaxBlankLines = &n
	return next
}

// ParagraphsPerPage sets the number of paragraphs assumed per page when
// estimating page numbers.
func (c *Checker) ParagraphsPerPage(n int) *Checker {
	next := c.clone()
	if n < 0 && next.err == nil {
		next.err = fmt.Errorf("paragraphs per page must not be negative, got %d", n)
	}
	next.options.ParagraphsPerPage = n
	return next
}

// Headers enables the header consistency check.
func (c *Checker) Headers() *Checker {
	next := c.clone()
	next.options.Headers = true
	return next
}

// Footers enables the footer consistency check.
func (c *Checker) Footers() *Checker {
	next := c.clone()
	next.options.Footers = true
	return next
}

// HeadersAndFooters enables both consistency checks. This is a convenience
// method equivalent to calling Headers().Footers().
func (c *Checker) HeadersAndFooters() *Checker {
	next := c.clone()
	next.options.Headers = true
	next.options.Footers = true
	return next
}

// CoverFont enables the cover font check.
//
// Example:
//
//	report, err := manucheck.Open("thesis.docx").CoverFont("黑体").Check()
func (c *Checker) CoverFont(font string) *Checker {
	next := c.clone()
	next.options.CoverFont = font
	return next
}

// Field adds field rules and enables the field check. Multiple calls are
// cumulative.
func (c *Checker) Field(rules ...check.FieldRule) *Checker {
	next := c.clone()
	next.options.Fields = append(next.options.Fields, rules...)
	return next
}

// FontAliases adds entries to the built-in font alias table. The table is
// used by the cover font check and by field rules without aliases.
func (c *Checker) FontAliases(aliases style.FontAliases) *Checker {
	next := c.clone()
	if next.options.FontAliases == nil {
		next.options.FontAliases = style.FontAliases{}
	}
	next.options.FontAliases = next.options.FontAliases.Merge(aliases)
	return next
}

// WithLogger sets the logger used for per-check progress. Checks are
// silent by default.
func (c *Checker) WithLogger(logger *slog.Logger) *Checker {
	next := c.clone()
	next.options.Logger = logger
	return next
}

// WithOptions replaces the whole configuration. The logger is kept when
// opts carries none.
func (c *Checker) WithOptions(opts Options) *Checker {
	next := c.clone()
	logger := next.options.Logger
	next.options = opts.clone()
	if next.options.Logger == nil {
		next.options.Logger = logger
	}
	return next
}

// ============================================================================
// Terminal Operations
// ============================================================================

// Check runs every enabled check and returns the report. An error is
// returned only for configuration problems.
func (c *Checker) Check() (*Report, error) {
	return c.CheckContext(context.Background())
}

// CheckContext is Check with a context. When ctx is done before a check
// completes, that check and the remaining ones are reported as aborted.
func (c *Checker) CheckContext(ctx context.Context) (*Report, error) {
	if c.err != nil {
		return nil, c.err
	}
	if err := c.options.Validate(); err != nil {
		return nil, err
	}

	log := c.options.logger().With("document", c.filename)
	report := &Report{
		ID:        uuid.NewString(),
		Document:  c.filename,
		StartedAt: time.Now(),
	}
	defer func() { report.Duration = time.Since(report.StartedAt) }()

	enabled := c.options.Enabled()
	if f, err := format.DetectFile(c.filename); err == nil && f != format.Unknown && !f.Supported() {
		log.Warn("unsupported document format", "format", f.String())
		for _, name := range enabled {
			report.Results = append(report.Results,
				check.Abort(name, fmt.Sprintf("Unsupported document format: %s", f)))
		}
		return report, nil
	}

	for _, name := range enabled {
		res, err := c.runCheck(ctx, name)
		if err != nil {
			return nil, err
		}
		switch {
		case res.Aborted:
			log.Warn("check aborted", "check", name, "reason", res.Message)
		case res.Inconclusive > 0:
			log.Debug("inconclusive verdicts", "check", name, "count", res.Inconclusive)
		}
		log.Debug("check finished", "check", name, "found", res.Found, "issues", len(res.Details))
		report.Results = append(report.Results, res)
	}
	return report, nil
}

func (c *Checker) runCheck(ctx context.Context, name string) (*check.Result, error) {
	if err := ctx.Err(); err != nil {
		return interrupted(name, err), nil
	}

	type outcome struct {
		res *check.Result
		err error
	}
	done := make(chan outcome, 1)
	go func() {
		res, err := c.dispatch(name)
		done <- outcome{res, err}
	}()

	select {
	case o := <-done:
		return o.res, o.err
	case <-ctx.Done():
		return interrupted(name, ctx.Err()), nil
	}
}

func (c *Checker) dispatch(name string) (*check.Result, error) {
	o := c.options
	switch name {
	case check.NameBlankLines:
		return check.CheckBlankLines(c.filename, check.BlankLinesOptions{
			MaxConsecutive:    o.MaxBlankLines,
			ParagraphsPerPage: o.ParagraphsPerPage,
		})
	case check.NameHeaders:
		return check.CheckHeaders(c.filename, check.PartOptions{ParagraphsPerPage: o.ParagraphsPerPage})
	case check.NameFooters:
		return check.CheckFooters(c.filename, check.PartOptions{ParagraphsPerPage: o.ParagraphsPerPage})
	case check.NameCoverFont:
		return check.CheckCoverFont(c.filename, check.CoverOptions{Font: o.CoverFont, Aliases: o.aliases()})
	case check.NameFields:
		return check.CheckFields(c.filename, check.FieldOptions{Rules: o.fieldRules(), ParagraphsPerPage: o.ParagraphsPerPage})
	default:
		return nil, fmt.Errorf("unknown check %q", name)
	}
}

func interrupted(name string, err error) *check.Result {
	if errors.Is(err, context.DeadlineExceeded) {
		return check.Abort(name, "Check timed out")
	}
	return check.Abort(name, fmt.Sprintf("Check cancelled: %v", err))
}
