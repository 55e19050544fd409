// Package style compiles declarative formatting requirements into
// independent validators.
//
// A [StyleSpec] combines a [FontSpec] (east-Asian font, Latin font, size,
// emphasis) and a [LanguageSpec]. Each constrained dimension compiles to
// one [Validator]; unconstrained dimensions compile to nothing, so an empty
// spec yields no validators at all.
//
//	spec := style.StyleSpec{
//	    Font: style.FontSpec{EastAsianFont: "黑体", Size: 16, SizeLabel: "三号"},
//	    Language: style.LanguageSpec{Language: style.Chinese},
//	}
//	for _, v := range spec.Validators() {
//	    verdict := v(doc, paragraph, "title", paragraph.Text())
//	    ...
//	}
//
// # Verdicts
//
// Validators never panic and never return errors. A run whose font or size
// cannot be resolved is skipped, and the verdict becomes [Inconclusive]
// unless another run fails. A validator that panics is reported as
// Inconclusive as well.
package style
