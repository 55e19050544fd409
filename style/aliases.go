package style

import (
	"maps"
	"slices"
	"strings"

	"golang.org/x/text/unicode/norm"
)

// FontAliases maps a canonical font label to the literal names that count
// as that font, for example a localized name and its romanized form.
type FontAliases map[string][]string

// DefaultFontAliases returns the built-in alias table.
func DefaultFontAliases() FontAliases {
	return FontAliases{
		"黑体":   {"黑体", "SimHei"},
		"华文楷体": {"华文楷体", "KaiTi"},
		"宋体":   {"宋体", "SimSun"},
	}
}

// Names returns the accepted names for a label. An exact entry wins;
// otherwise entries are compared after normalization in key order. A label
// without an entry accepts only itself.
func (a FontAliases) Names(label string) []string {
	if names, ok := a[label]; ok {
		return names
	}
	key := normalizeFont(label)
	for _, k := range slices.Sorted(maps.Keys(a)) {
		if normalizeFont(k) == key {
			return a[k]
		}
	}
	return []string{label}
}

// Match reports whether actual is an accepted name for label.
func (a FontAliases) Match(label, actual string) bool {
	got := normalizeFont(actual)
	for _, name := range a.Names(label) {
		if normalizeFont(name) == got {
			return true
		}
	}
	return false
}

// Contains reports whether actual contains any accepted name for label.
func (a FontAliases) Contains(label, actual string) bool {
	got := normalizeFont(actual)
	for _, name := range a.Names(label) {
		if strings.Contains(got, normalizeFont(name)) {
			return true
		}
	}
	return false
}

// Merge returns a copy of a with the entries of other added or replaced.
func (a FontAliases) Merge(other FontAliases) FontAliases {
	out := make(FontAliases, len(a)+len(other))
	for k, v := range a {
		out[k] = v
	}
	for k, v := range other {
		out[k] = v
	}
	return out
}

// normalizeFont folds compatibility forms such as full-width letters and
// letter case.
func normalizeFont(name string) string {
	return strings.ToLower(norm.NFKC.String(strings.TrimSpace(name)))
}
