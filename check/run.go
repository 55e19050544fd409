package check

import (
	"errors"
	"fmt"

	"github.com/tsawler/manucheck/docx"
)

// withPackage opens the package at path for the duration of fn. Open
// failures and panics inside fn become aborted results.
func withPackage(path, name string, fn func(*docx.Package) *Result) (res *Result) {
	pkg, err := docx.Open(path)
	if err != nil {
		return Abort(name, fmt.Sprintf("Error opening document: %v", err))
	}
	defer pkg.Close()

	defer func() {
		if r := recover(); r != nil {
			res = Abort(name, fmt.Sprintf("Error checking %s: %v", name, r))
		}
	}()

	res = fn(pkg)
	res.Check = name
	if res.Details == nil {
		res.Details = []Issue{}
	}
	return res
}

// withDocument is withPackage for checks that need the main document.
func withDocument(path, name string, fn func(*docx.Package, *docx.Document) *Result) *Result {
	return withPackage(path, name, func(pkg *docx.Package) *Result {
		doc, err := docx.Load(pkg)
		if err != nil {
			return loadFailure(name, err)
		}
		res := fn(pkg, doc)
		res.Warnings = append(res.Warnings, doc.Warnings()...)
		return res
	})
}

func loadFailure(name string, err error) *Result {
	if errors.Is(err, docx.ErrPartNotFound) || errors.Is(err, docx.ErrNoBody) {
		return Abort(name, "Document body not found")
	}
	return Abort(name, fmt.Sprintf("Error checking %s: %v", name, err))
}
