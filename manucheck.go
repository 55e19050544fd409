// Package manucheck provides a fluent API for checking the formatting of
// academic manuscripts stored as DOCX packages.
//
// Basic usage:
//
//	report, err := manucheck.Open("thesis.docx").
//	    MaxBlankLines(2).
//	    Headers().
//	    Footers().
//	    Check()
//	if err != nil {
//	    // handle configuration error
//	}
//	for _, res := range report.Results {
//	    fmt.Println(res.Check, res.Message)
//	}
//
// Every configuration method returns a new Checker, so a partially
// configured Checker can be shared and extended safely. Documents that
// cannot be read never produce an error: their results carry Found set to
// false and an explanatory message. Only configuration problems are
// returned as errors.
//
// For many documents, CheckAll runs a bounded pool of checkers with a
// per-document time budget.
package manucheck

import (
	"errors"
)

// ErrNoChecks is returned when a Checker has no check enabled.
var ErrNoChecks = errors.New("no checks enabled")

// Open returns a Checker for the document at filename. Nothing is read
// until a terminal operation such as Check is called.
//
// Example:
//
//	report, err := manucheck.Open("thesis.docx").CoverFont("黑体").Check()
func Open(filename string) *Checker {
	return &Checker{
		filename: filename,
		options:  defaultOptions(),
	}
}

// Must is a helper that wraps a call to a function returning (T, error)
// and panics if the error is non-nil. It is intended for use in scripts
// or tests where error handling would be cumbersome.
//
// Example:
//
//	report := manucheck.Must(manucheck.Open("thesis.docx").MaxBlankLines(2).Check())
func Must[T any](val T, err error) T {
	if err != nil {
		panic(err)
	}
	return val
}
