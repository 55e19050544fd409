package docx

import "encoding/xml"

// stylesXML represents the structure of word/styles.xml
type stylesXML struct {
	XMLName     xml.Name       `xml:"styles"`
	DocDefaults docDefaultsXML `xml:"docDefaults"`
	Styles      []styleDefXML  `xml:"style"`
}

// docDefaultsXML represents document default styles.
type docDefaultsXML struct {
	RPrDefault rPrDefaultXML `xml:"rPrDefault"`
}

// rPrDefaultXML represents default run properties.
type rPrDefaultXML struct {
	RPr runPropsXML `xml:"rPr"`
}

// styleDefXML represents a style definition.
type styleDefXML struct {
	XMLName xml.Name    `xml:"style"`
	Type    string      `xml:"type,attr"` // paragraph, character, table, numbering
	StyleID string      `xml:"styleId,attr"`
	Default string      `xml:"default,attr"` // "1" if default style
	Name    valXML      `xml:"name"`
	BasedOn valXML      `xml:"basedOn"`
	RPr     runPropsXML `xml:"rPr"`
}

// valXML represents an element whose only payload is w:val.
type valXML struct {
	Val string `xml:"val,attr"`
}

// runPropsXML represents run properties (<w:rPr>).
type runPropsXML struct {
	Style     valXML       `xml:"rStyle"`
	Bold      boolXML      `xml:"b"`
	Italic    boolXML      `xml:"i"`
	Underline underlineXML `xml:"u"`
	FontSize  valXML       `xml:"sz"` // half-points
	Font      fontXML      `xml:"rFonts"`
}

// boolXML represents a toggle property. Presence without val means true.
type boolXML struct {
	XMLName xml.Name
	Val     string `xml:"val,attr"`
}

// set reports whether the property was present.
func (b boolXML) set() bool {
	return b.XMLName.Local != ""
}

// value returns the toggle's value, assuming it is present.
func (b boolXML) value() bool {
	return b.Val != "false" && b.Val != "0" && b.Val != "off"
}

// underlineXML represents underline style.
type underlineXML struct {
	XMLName xml.Name
	Val     string `xml:"val,attr"` // single, double, none, ...
}

// fontXML represents font settings. Theme attributes take precedence over
// the literal names on the same element.
type fontXML struct {
	ASCII         string `xml:"ascii,attr"`
	HAnsi         string `xml:"hAnsi,attr"`
	CS            string `xml:"cs,attr"`
	EastAsia      string `xml:"eastAsia,attr"`
	ASCIITheme    string `xml:"asciiTheme,attr"`
	HAnsiTheme    string `xml:"hAnsiTheme,attr"`
	CSTheme       string `xml:"cstheme,attr"`
	EastAsiaTheme string `xml:"eastAsiaTheme,attr"`
}

// relationshipsXML represents _rels/*.rels files
type relationshipsXML struct {
	XMLName       xml.Name          `xml:"Relationships"`
	Relationships []relationshipXML `xml:"Relationship"`
}

// relationshipXML represents a single relationship.
type relationshipXML struct {
	ID         string `xml:"Id,attr"`
	Type       string `xml:"Type,attr"`
	Target     string `xml:"Target,attr"`
	TargetMode string `xml:"TargetMode,attr"` // External or empty (internal)
}

// runPropsFromTree reads a <w:rPr> element of a parsed part into the same
// shape styles.xml decodes to, so direct formatting and style formatting
// resolve through one code path.
func runPropsFromTree(t *Tree, rPr NodeID) runPropsXML {
	var rp runPropsXML
	for _, c := range t.Children(rPr) {
		name := t.Name(c)
		if name.Space != NamespaceW {
			continue
		}
		val, _ := t.WAttr(c, "val")
		switch name.Local {
		case "rStyle":
			rp.Style.Val = val
		case "b":
			rp.Bold = boolXML{XMLName: name, Val: val}
		case "i":
			rp.Italic = boolXML{XMLName: name, Val: val}
		case "u":
			rp.Underline = underlineXML{XMLName: name, Val: val}
		case "sz":
			rp.FontSize.Val = val
		case "rFonts":
			rp.Font = fontXML{}
			rp.Font.ASCII, _ = t.WAttr(c, "ascii")
			rp.Font.HAnsi, _ = t.WAttr(c, "hAnsi")
			rp.Font.CS, _ = t.WAttr(c, "cs")
			rp.Font.EastAsia, _ = t.WAttr(c, "eastAsia")
			rp.Font.ASCIITheme, _ = t.WAttr(c, "asciiTheme")
			rp.Font.HAnsiTheme, _ = t.WAttr(c, "hAnsiTheme")
			rp.Font.CSTheme, _ = t.WAttr(c, "cstheme")
			rp.Font.EastAsiaTheme, _ = t.WAttr(c, "eastAsiaTheme")
		}
	}
	return rp
}
