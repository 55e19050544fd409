package style

// StyleSpec is the complete formatting requirement of a field.
type StyleSpec struct {
	Font     FontSpec
	Language LanguageSpec
}

// IsZero reports whether the spec constrains nothing.
func (s StyleSpec) IsZero() bool {
	return s.Font.IsZero() && s.Language.Language == AnyLanguage
}

// Validators returns the font validators followed by the language
// validator. A spec without constraints yields an empty list.
func (s StyleSpec) Validators() []Validator {
	out := s.Font.Validators()
	if v := s.Language.Validator(); v != nil {
		out = append(out, v)
	}
	return out
}
