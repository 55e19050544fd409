package docx

import (
	"strconv"
)

// RunFormat holds the effective character formatting of a run after
// document defaults, paragraph style, character style and direct
// formatting have been applied in that order.
//
// Font names are empty when no level of the chain names a font, or when the
// nearest level refers to a theme font instead of a literal name. Size is 0
// when no level sets one.
type RunFormat struct {
	EastAsiaFont string
	ASCIIFont    string
	HAnsiFont    string
	CSFont       string
	Size         float64 // points
	Bold         bool
	Italic       bool
	Underline    bool
}

// PrimaryFont returns the first named font in east-Asian, ASCII,
// complex-script, hAnsi order.
func (f RunFormat) PrimaryFont() string {
	for _, name := range []string{f.EastAsiaFont, f.ASCIIFont, f.CSFont, f.HAnsiFont} {
		if name != "" {
			return name
		}
	}
	return ""
}

// StyleResolver resolves run formatting with style inheritance support.
// It caches resolved styles and is not safe for concurrent use.
type StyleResolver struct {
	styles                map[string]*styleDefXML
	defaults              runPropsXML
	defaultParagraphStyle string
	resolved              map[string]RunFormat
}

// NewStyleResolver creates a new style resolver from parsed styles. A nil
// styles value yields a resolver that only applies direct formatting.
func NewStyleResolver(styles *stylesXML) *StyleResolver {
	sr := &StyleResolver{
		styles:   make(map[string]*styleDefXML),
		resolved: make(map[string]RunFormat),
	}

	if styles == nil {
		return sr
	}

	for i := range styles.Styles {
		style := &styles.Styles[i]
		sr.styles[style.StyleID] = style
		if style.Type == "paragraph" && style.Default == "1" && sr.defaultParagraphStyle == "" {
			sr.defaultParagraphStyle = style.StyleID
		}
	}
	sr.defaults = styles.DocDefaults.RPrDefault.RPr

	return sr
}

// StyleName returns the display name of a style, or "" if unknown.
func (sr *StyleResolver) StyleName(styleID string) string {
	if def, ok := sr.styles[styleID]; ok {
		return def.Name.Val
	}
	return ""
}

// resolveStyle returns the formatting contributed by a style and everything
// it is based on, on top of the document defaults.
func (sr *StyleResolver) resolveStyle(styleID string) RunFormat {
	if resolved, ok := sr.resolved[styleID]; ok {
		return resolved
	}

	var format RunFormat
	applyRunProps(&format, sr.defaults)
	for _, sid := range sr.buildInheritanceChain(styleID) {
		if def, ok := sr.styles[sid]; ok {
			applyRunProps(&format, def.RPr)
		}
	}

	sr.resolved[styleID] = format
	return format
}

// buildInheritanceChain returns style IDs from base to derived.
func (sr *StyleResolver) buildInheritanceChain(styleID string) []string {
	var chain []string
	visited := make(map[string]bool)

	current := styleID
	for current != "" && !visited[current] {
		visited[current] = true
		chain = append([]string{current}, chain...) // Prepend

		if def, ok := sr.styles[current]; ok {
			current = def.BasedOn.Val
		} else {
			break
		}
	}

	return chain
}

// ResolveRun resolves run properties, combining the paragraph style, the
// run's character style and its direct formatting.
func (sr *StyleResolver) ResolveRun(paragraphStyle string, runProps runPropsXML) RunFormat {
	if paragraphStyle == "" {
		paragraphStyle = sr.defaultParagraphStyle
	}
	resolved := sr.resolveStyle(paragraphStyle)

	if runProps.Style.Val != "" {
		for _, sid := range sr.buildInheritanceChain(runProps.Style.Val) {
			if def, ok := sr.styles[sid]; ok {
				applyRunProps(&resolved, def.RPr)
			}
		}
	}

	applyRunProps(&resolved, runProps)
	return resolved
}

// applyRunProps layers one level of run properties over format.
func applyRunProps(format *RunFormat, rpr runPropsXML) {
	font := rpr.Font
	applyFontSlot(&format.EastAsiaFont, font.EastAsia, font.EastAsiaTheme)
	applyFontSlot(&format.ASCIIFont, font.ASCII, font.ASCIITheme)
	applyFontSlot(&format.HAnsiFont, font.HAnsi, font.HAnsiTheme)
	applyFontSlot(&format.CSFont, font.CS, font.CSTheme)

	if rpr.FontSize.Val != "" {
		if size := parseHalfPoints(rpr.FontSize.Val); size > 0 {
			format.Size = size
		}
	}
	if rpr.Bold.set() {
		format.Bold = rpr.Bold.value()
	}
	if rpr.Italic.set() {
		format.Italic = rpr.Italic.value()
	}
	if rpr.Underline.XMLName.Local != "" {
		format.Underline = rpr.Underline.Val != "none"
	}
}

// applyFontSlot overrides one font slot. A theme reference hides any
// literal name inherited from lower levels.
func applyFontSlot(slot *string, name, theme string) {
	switch {
	case theme != "":
		*slot = ""
	case name != "":
		*slot = name
	}
}

// parseHalfPoints parses a size in half-points to points.
// Word uses half-points for font sizes (e.g., "24" = 12pt).
func parseHalfPoints(s string) float64 {
	val, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0
	}
	return val / 2
}
