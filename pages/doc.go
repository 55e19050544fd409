// Package pages estimates on which page a paragraph lands.
//
// Word-processing packages carry no layout, so page numbers for
// diagnostics are approximated from paragraph positions:
//
//	page = max(1, ordinal/K + 1)
//
// where K is the number of paragraphs assumed per page. K defaults to
// [DefaultParagraphsPerPage] and may be configured, but the formula is
// fixed so that reports are reproducible.
//
// # Usage
//
//	est := pages.Estimator{ParagraphsPerPage: 30}
//	page := est.EstimatePage(112, total)
//
// The estimate is monotonic in the ordinal and never below 1.
package pages
