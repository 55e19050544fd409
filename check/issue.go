// Package check runs manuscript format checks against a document package
// and reports their findings as issues.
//
// Every check opens the package itself, re-derives what it needs and
// closes the package before returning. A document that cannot be analyzed
// yields a Result with Found set to false and an explanatory message; only
// missing configuration is returned as an error.
package check

import (
	"errors"
	"fmt"
)

// ErrMissingConfig is returned when a required configuration value is
// absent.
var ErrMissingConfig = errors.New("missing configuration")

func missing(key string) error {
	return fmt.Errorf("%s: %w", key, ErrMissingConfig)
}

// Severity ranks an issue.
type Severity int

const (
	SeverityInfo Severity = iota
	SeverityWarning
	SeverityError
)

// String returns a string representation of the severity
func (s Severity) String() string {
	switch s {
	case SeverityWarning:
		return "warning"
	case SeverityError:
		return "error"
	default:
		return "info"
	}
}

// MarshalText encodes the severity by name.
func (s Severity) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// Kind identifies the check that produced an issue.
type Kind string

const (
	KindBlankLines Kind = "blank_lines"
	KindHeader     Kind = "header"
	KindFooter     Kind = "footer"
	KindCoverFont  Kind = "cover_font"
	KindField      Kind = "field"
)

// Location points at the part of the document an issue refers to.
type Location struct {
	Paragraphs []int  `json:"paragraphs,omitempty"` // 1-based ordinals
	Pages      []int  `json:"pages,omitempty"`      // estimated
	Part       string `json:"part,omitempty"`
	Field      string `json:"field,omitempty"`
}

// Issue is one finding of a check. Message is never empty.
type Issue struct {
	Kind          Kind     `json:"kind"`
	Severity      Severity `json:"severity"`
	Location      Location `json:"location"`
	Message       string   `json:"message"`
	Count         int      `json:"count,omitempty"`
	ContextBefore []string `json:"context_before,omitempty"`
	ContextAfter  []string `json:"context_after,omitempty"`
	Evidence      []string `json:"evidence,omitempty"`
}

// Result is the outcome of one check.
type Result struct {
	Check   string  `json:"check"`
	Found   bool    `json:"found"` // true when issues were found
	Message string  `json:"message"`
	Details []Issue `json:"details"`

	// Aborted is set when the document could not be analyzed. Found is
	// then false and Message explains why.
	Aborted bool `json:"aborted,omitempty"`

	TotalParagraphs int       `json:"total_paragraphs,omitempty"`
	Inconclusive    int       `json:"inconclusive,omitempty"`
	Variants        []Variant `json:"variants,omitempty"`
	Parts           []Part    `json:"parts,omitempty"`
	Warnings        []string  `json:"warnings,omitempty"`
}

// Variant is a distinct header or footer text and the number of parts
// carrying it.
type Variant struct {
	Text  string `json:"text"`
	Count int    `json:"count"`
}

// Part summarizes a header or footer part.
type Part struct {
	Name     string `json:"name"`
	Text     string `json:"text"`
	Sections []int  `json:"sections,omitempty"`
	Pages    []int  `json:"pages,omitempty"` // estimated start pages
}

// Check names.
const (
	NameBlankLines = "blank_lines"
	NameHeaders    = "headers"
	NameFooters    = "footers"
	NameCoverFont  = "cover_font"
	NameFields     = "fields"
)

// Abort returns the result of a check that could not analyze its
// document.
func Abort(name, message string) *Result {
	return &Result{Check: name, Message: message, Details: []Issue{}, Aborted: true}
}
