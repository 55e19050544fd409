package docx

import "strings"

// Text returns the visible text below id: the values of every w:t element
// concatenated in document order.
func (t *Tree) Text(id NodeID) string {
	var sb strings.Builder
	t.Walk(id, func(n NodeID) bool {
		if t.Is(n, NamespaceW, "t") {
			sb.WriteString(t.nodes[n].text)
			return false
		}
		return true
	})
	return sb.String()
}

// PartText returns the text of a whole part such as a header or footer.
//
// Non-empty w:t values are joined with a single space. A part without any
// w:t element falls back to the trimmed character data of every element
// that has some.
func (t *Tree) PartText(id NodeID) string {
	var parts []string
	for _, n := range t.Descendants(id, NamespaceW, "t") {
		if v := t.nodes[n].text; v != "" {
			parts = append(parts, v)
		}
	}

	if len(parts) == 0 {
		t.Walk(id, func(n NodeID) bool {
			if v := strings.TrimSpace(t.nodes[n].text); v != "" {
				parts = append(parts, v)
			}
			return true
		})
	}

	return strings.Join(parts, " ")
}

// ExtractText parses a part and returns its text via PartText. The boolean
// is false when the markup cannot be parsed.
func ExtractText(data []byte) (string, bool) {
	t, err := Parse(data)
	if err != nil {
		return "", false
	}
	return t.PartText(t.Root()), true
}
