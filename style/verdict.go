package style

import (
	"fmt"

	"github.com/tsawler/manucheck/docx"
)

// Status is the outcome of a validator.
type Status int

const (
	Pass Status = iota
	Fail
	Inconclusive
)

// String returns a string representation of the status
func (s Status) String() string {
	switch s {
	case Fail:
		return "fail"
	case Inconclusive:
		return "inconclusive"
	default:
		return "pass"
	}
}

// Verdict is the result of one validator. Message is empty for a plain
// pass.
type Verdict struct {
	Status  Status
	Message string
}

// OK reports whether the verdict is not a failure.
func (v Verdict) OK() bool {
	return v.Status != Fail
}

func passed() Verdict {
	return Verdict{Status: Pass}
}

func failed(format string, args ...any) Verdict {
	return Verdict{Status: Fail, Message: fmt.Sprintf(format, args...)}
}

func inconclusive(format string, args ...any) Verdict {
	return Verdict{Status: Inconclusive, Message: fmt.Sprintf(format, args...)}
}

// Target is a paragraph or table cell whose runs are validated.
type Target interface {
	Runs() []docx.Run
}

// Validator checks one formatting requirement. field names the checked
// item in messages and value is its text.
type Validator func(doc *docx.Document, target Target, field, value string) Verdict

// guard converts a panic inside v into an inconclusive verdict.
func guard(v Validator) Validator {
	return func(doc *docx.Document, target Target, field, value string) (verdict Verdict) {
		defer func() {
			if r := recover(); r != nil {
				verdict = inconclusive("%s: validator failed: %v", field, r)
			}
		}()
		return v(doc, target, field, value)
	}
}

// runsOf returns the runs of target, or nil for a nil target.
func runsOf(target Target) []docx.Run {
	if target == nil {
		return nil
	}
	return target.Runs()
}
