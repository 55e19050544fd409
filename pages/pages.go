package pages

// DefaultParagraphsPerPage is the number of paragraphs assumed to fit on
// one page.
const DefaultParagraphsPerPage = 25

// Estimator converts paragraph ordinals into approximate page numbers.
// The zero value uses DefaultParagraphsPerPage.
type Estimator struct {
	ParagraphsPerPage int
}

// PerPage returns the effective paragraphs-per-page constant.
func (e Estimator) PerPage() int {
	if e.ParagraphsPerPage <= 0 {
		return DefaultParagraphsPerPage
	}
	return e.ParagraphsPerPage
}

// EstimatePage returns the approximate page of the paragraph at the given
// 1-based ordinal. total is accepted for callers that know the paragraph
// count; it does not change the result.
func (e Estimator) EstimatePage(ordinal, total int) int {
	page := ordinal/e.PerPage() + 1
	if page < 1 {
		return 1
	}
	return page
}

// EstimatePage estimates a page with the default constant.
func EstimatePage(ordinal, total int) int {
	return Estimator{}.EstimatePage(ordinal, total)
}
