// Package testutil provides fixtures and logging helpers for tests.
package testutil

import (
	"archive/zip"
	"bytes"
	"fmt"
	"html"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

const (
	nsDecl = `xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main" ` +
		`xmlns:r="http://schemas.openxmlformats.org/officeDocument/2006/relationships" ` +
		`xmlns:m="http://schemas.openxmlformats.org/officeDocument/2006/math" ` +
		`xmlns:o="urn:schemas-microsoft-com:office:office" ` +
		`xmlns:v="urn:schemas-microsoft-com:vml"`

	relHeader = "http://schemas.openxmlformats.org/officeDocument/2006/relationships/header"
	relFooter = "http://schemas.openxmlformats.org/officeDocument/2006/relationships/footer"
	relStyles = "http://schemas.openxmlformats.org/officeDocument/2006/relationships/styles"
)

// Docx assembles a minimal word-processing package for tests.
type Docx struct {
	body   []string
	parts  map[string]string
	rels   []string
	styles string
	skip   map[string]bool
}

// NewDocx returns an empty package builder.
func NewDocx() *Docx {
	return &Docx{parts: make(map[string]string), skip: make(map[string]bool)}
}

// Body appends raw body markup.
func (d *Docx) Body(markup ...string) *Docx {
	d.body = append(d.body, markup...)
	return d
}

// Paragraphs appends one plain paragraph per text. An empty string yields
// an empty paragraph.
func (d *Docx) Paragraphs(texts ...string) *Docx {
	for _, s := range texts {
		d.body = append(d.body, P(s))
	}
	return d
}

// Styles sets the w:style elements of word/styles.xml. docDefaults markup
// may be included.
func (d *Docx) Styles(markup string) *Docx {
	d.styles = markup
	return d
}

// Header adds a header part with one paragraph per text and registers it
// under relID.
func (d *Docx) Header(relID, name string, texts ...string) *Docx {
	return d.addPart("hdr", relHeader, relID, name, texts)
}

// Footer adds a footer part with one paragraph per text and registers it
// under relID.
func (d *Docx) Footer(relID, name string, texts ...string) *Docx {
	return d.addPart("ftr", relFooter, relID, name, texts)
}

// RawPart stores arbitrary content under a package path.
func (d *Docx) RawPart(name, content string) *Docx {
	d.parts[name] = content
	return d
}

// Without omits a generated part, e.g. "word/document.xml".
func (d *Docx) Without(name string) *Docx {
	d.skip[name] = true
	return d
}

func (d *Docx) addPart(root, relType, relID, name string, texts []string) *Docx {
	var sb strings.Builder
	fmt.Fprintf(&sb, `<?xml version="1.0" encoding="UTF-8" standalone="yes"?><w:%s %s>`, root, nsDecl)
	for _, s := range texts {
		sb.WriteString(P(s))
	}
	fmt.Fprintf(&sb, `</w:%s>`, root)
	d.parts["word/"+name] = sb.String()
	d.rels = append(d.rels, fmt.Sprintf(`<Relationship Id="%s" Type="%s" Target="%s"/>`, relID, relType, name))
	return d
}

// DocumentXML returns the markup of word/document.xml.
func (d *Docx) DocumentXML() string {
	return `<?xml version="1.0" encoding="UTF-8" standalone="yes"?><w:document ` + nsDecl + `><w:body>` +
		strings.Join(d.body, "") + `</w:body></w:document>`
}

// Bytes returns the zipped package.
func (d *Docx) Bytes(t testing.TB) []byte {
	t.Helper()

	files := map[string]string{
		"[Content_Types].xml": `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>` +
			`<Types xmlns="http://schemas.openxmlformats.org/package/2006/content-types">` +
			`<Default Extension="rels" ContentType="application/vnd.openxmlformats-package.relationships+xml"/>` +
			`<Default Extension="xml" ContentType="application/xml"/>` +
			`<Override PartName="/word/document.xml" ContentType="application/vnd.openxmlformats-officedocument.wordprocessingml.document.main+xml"/>` +
			`</Types>`,
		"_rels/.rels": `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>` +
			`<Relationships xmlns="http://schemas.openxmlformats.org/package/2006/relationships">` +
			`<Relationship Id="rId1" Type="http://schemas.openxmlformats.org/officeDocument/2006/relationships/officeDocument" Target="word/document.xml"/>` +
			`</Relationships>`,
		"word/document.xml": d.DocumentXML(),
	}

	rels := d.rels
	if d.styles != "" {
		files["word/styles.xml"] = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?><w:styles ` + nsDecl + `>` +
			d.styles + `</w:styles>`
		rels = append(rels, `<Relationship Id="rIdStyles" Type="`+relStyles+`" Target="styles.xml"/>`)
	}
	files["word/_rels/document.xml.rels"] = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>` +
		`<Relationships xmlns="http://schemas.openxmlformats.org/package/2006/relationships">` +
		strings.Join(rels, "") + `</Relationships>`

	for name, content := range d.parts {
		files[name] = content
	}

	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	for name, content := range files {
		if d.skip[name] {
			continue
		}
		w, err := zw.Create(name)
		if err != nil {
			t.Fatalf("creating %s: %v", name, err)
		}
		if _, err := w.Write([]byte(content)); err != nil {
			t.Fatalf("writing %s: %v", name, err)
		}
	}
	if err := zw.Close(); err != nil {
		t.Fatalf("closing zip: %v", err)
	}
	return buf.Bytes()
}

// Write stores the package in a temporary directory and returns its path.
func (d *Docx) Write(t testing.TB) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "test.docx")
	if err := os.WriteFile(path, d.Bytes(t), 0o600); err != nil {
		t.Fatalf("writing fixture: %v", err)
	}
	return path
}

// P returns a paragraph with a single run. An empty text yields an empty
// paragraph.
func P(text string) string {
	if text == "" {
		return `<w:p/>`
	}
	return `<w:p>` + R(text, "") + `</w:p>`
}

// PStyled returns a paragraph with a style ID and a single run.
func PStyled(styleID, text string) string {
	return `<w:p><w:pPr><w:pStyle w:val="` + styleID + `"/></w:pPr>` + R(text, "") + `</w:p>`
}

// PWithProps returns a paragraph whose w:pPr holds the given markup.
func PWithProps(pPr, text string) string {
	run := ""
	if text != "" {
		run = R(text, "")
	}
	return `<w:p><w:pPr>` + pPr + `</w:pPr>` + run + `</w:p>`
}

// PRuns returns a paragraph built from run markup.
func PRuns(runs ...string) string {
	return `<w:p>` + strings.Join(runs, "") + `</w:p>`
}

// R returns a run with optional w:rPr content.
func R(text, rPr string) string {
	props := ""
	if rPr != "" {
		props = `<w:rPr>` + rPr + `</w:rPr>`
	}
	return `<w:r>` + props + `<w:t xml:space="preserve">` + html.EscapeString(text) + `</w:t></w:r>`
}

// Fonts returns a w:rFonts element.
func Fonts(eastAsia, ascii string) string {
	return fmt.Sprintf(`<w:rFonts w:eastAsia="%s" w:ascii="%s" w:hAnsi="%s"/>`, eastAsia, ascii, ascii)
}

// Size returns a w:sz element for a size in points.
func Size(points float64) string {
	return fmt.Sprintf(`<w:sz w:val="%g"/>`, points*2)
}

// PageBreak returns a paragraph holding text followed by a page break.
func PageBreak(text string) string {
	return `<w:p>` + R(text, "") + `<w:r><w:br w:type="page"/></w:r></w:p>`
}

// SectPr returns a w:sectPr element with optional reference markup.
func SectPr(refs ...string) string {
	return `<w:sectPr>` + strings.Join(refs, "") + `</w:sectPr>`
}

// HeaderRef returns a w:headerReference. An empty typ omits w:type.
func HeaderRef(typ, relID string) string {
	return reference("headerReference", typ, relID)
}

// FooterRef returns a w:footerReference. An empty typ omits w:type.
func FooterRef(typ, relID string) string {
	return reference("footerReference", typ, relID)
}

func reference(local, typ, relID string) string {
	attr := ""
	if typ != "" {
		attr = ` w:type="` + typ + `"`
	}
	return `<w:` + local + attr + ` r:id="` + relID + `"/>`
}

// Table returns a single-column table with one cell per markup string.
func Table(cells ...string) string {
	var sb strings.Builder
	sb.WriteString(`<w:tbl>`)
	for _, c := range cells {
		sb.WriteString(`<w:tr><w:tc>` + c + `</w:tc></w:tr>`)
	}
	sb.WriteString(`</w:tbl>`)
	return sb.String()
}
