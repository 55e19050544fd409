package docx

import (
	"encoding/xml"
	"fmt"
	"strings"
)

// PartKind classifies the target of a relationship.
type PartKind int

const (
	PartOther PartKind = iota
	PartHeader
	PartFooter
)

// String returns the lower-case name of the kind.
func (k PartKind) String() string {
	switch k {
	case PartHeader:
		return "header"
	case PartFooter:
		return "footer"
	default:
		return "other"
	}
}

// Relationship is one entry of the document relationships part.
type Relationship struct {
	ID     string
	Type   string
	Target string // package path, e.g. "word/header1.xml"
	Kind   PartKind
}

// Relationships maps relationship IDs to their targets.
type Relationships struct {
	byID map[string]Relationship
}

// ParseRelationships parses a .rels part.
func ParseRelationships(data []byte) (*Relationships, error) {
	var doc relationshipsXML
	if err := xml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parsing relationships: %w", err)
	}

	rels := &Relationships{byID: make(map[string]Relationship, len(doc.Relationships))}
	for _, r := range doc.Relationships {
		if r.ID == "" {
			continue
		}
		rel := Relationship{ID: r.ID, Type: r.Type, Target: r.Target}
		if !strings.EqualFold(r.TargetMode, "External") {
			rel.Target = normalizeTarget(r.Target)
			rel.Kind = classifyTarget(rel.Target)
		}
		rels.byID[r.ID] = rel
	}
	return rels, nil
}

// Lookup returns the relationship with the given ID.
func (r *Relationships) Lookup(id string) (Relationship, bool) {
	if r == nil {
		return Relationship{}, false
	}
	rel, ok := r.byID[id]
	return rel, ok
}

// Len returns the number of relationships.
func (r *Relationships) Len() int {
	if r == nil {
		return 0
	}
	return len(r.byID)
}

// normalizeTarget turns a target relative to word/ into a package path.
func normalizeTarget(target string) string {
	target = strings.TrimPrefix(target, "/")
	if !strings.HasPrefix(target, "word/") {
		target = "word/" + target
	}
	return target
}

func classifyTarget(target string) PartKind {
	lower := strings.ToLower(target)
	switch {
	case strings.Contains(lower, "header"):
		return PartHeader
	case strings.Contains(lower, "footer"):
		return PartFooter
	default:
		return PartOther
	}
}
