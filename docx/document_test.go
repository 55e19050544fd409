package docx_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tsawler/manucheck/docx"
	tu "github.com/tsawler/manucheck/internal/testutil"
)

func loadFixture(t *testing.T, d *tu.Docx) *docx.Document {
	t.Helper()
	pkg, err := docx.Open(d.Write(t))
	require.NoError(t, err)
	t.Cleanup(func() { pkg.Close() })

	doc, err := docx.Load(pkg)
	require.NoError(t, err)
	return doc
}

func TestLoad_Paragraphs(t *testing.T) {
	doc := loadFixture(t, tu.NewDocx().Body(
		tu.P("Title"),
		tu.Table(tu.P("cell one"), tu.P("cell two")),
		tu.P(""),
		tu.P("   "),
		tu.P("Body"),
	))

	paras := doc.Paragraphs()
	require.Len(t, paras, 6)
	for i, p := range paras {
		assert.Equal(t, i+1, p.Ordinal)
	}

	assert.Equal(t, "Title", paras[0].Text())
	assert.Equal(t, "cell one", paras[1].Text())
	assert.True(t, paras[3].IsEmpty())
	assert.Equal(t, "   ", paras[4].Text())
	assert.True(t, paras[4].IsEmpty())
	assert.False(t, paras[5].IsEmpty())

	cells := doc.Cells()
	require.Len(t, cells, 2)
	assert.Equal(t, "cell two", cells[1].Text())
	assert.Empty(t, doc.Warnings())
}

func TestLoad_MissingDocumentPart(t *testing.T) {
	pkg, err := docx.Open(tu.NewDocx().Without(docx.DocumentPart).Write(t))
	require.NoError(t, err)
	defer pkg.Close()

	_, err = docx.Load(pkg)
	assert.True(t, errors.Is(err, docx.ErrPartNotFound))
}

func TestLoad_NoBody(t *testing.T) {
	d := tu.NewDocx().RawPart(docx.DocumentPart,
		`<w:document xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main"/>`)
	pkg, err := docx.Open(d.Write(t))
	require.NoError(t, err)
	defer pkg.Close()

	_, err = docx.Load(pkg)
	assert.ErrorIs(t, err, docx.ErrNoBody)
}

func TestLoad_BrokenStylesIsWarning(t *testing.T) {
	d := tu.NewDocx().Paragraphs("text").RawPart(docx.StylesPart, "<w:styles")
	doc := loadFixture(t, d)

	require.Len(t, doc.Warnings(), 1)
	assert.Contains(t, doc.Warnings()[0], "styles ignored")
	assert.Len(t, doc.Paragraphs(), 1)
}

func TestParagraph_Markers(t *testing.T) {
	doc := loadFixture(t, tu.NewDocx().Body(
		tu.PWithProps(tu.SectPr(), "with section"),
		tu.PWithProps(`<w:sectPr><w:pgNumType w:start="3"/></w:sectPr>`, "restart"),
		tu.PageBreak("broken"),
		tu.P("plain"),
		`<w:p><w:r><w:drawing/></w:r></w:p>`,
		`<w:p><m:oMathPara><m:oMath><m:r><m:t>x</m:t></m:r></m:oMath></m:oMathPara></w:p>`,
		`<w:p><w:r><w:object><o:OLEObject/></w:object></w:r></w:p>`,
	))
	paras := doc.Paragraphs()
	require.Len(t, paras, 7)

	_, ok := paras[0].SectionProperties()
	assert.True(t, ok)
	_, ok = paras[3].SectionProperties()
	assert.False(t, ok)

	start, ok := paras[1].PageNumberRestart()
	assert.True(t, ok)
	assert.Equal(t, 3, start)
	_, ok = paras[0].PageNumberRestart()
	assert.False(t, ok)

	assert.True(t, paras[2].HasPageBreak())
	assert.False(t, paras[3].HasPageBreak())

	assert.True(t, paras[0].HasNonTextContent(), "sectPr")
	assert.False(t, paras[3].HasNonTextContent())
	assert.True(t, paras[4].HasNonTextContent(), "drawing")
	assert.True(t, paras[5].HasNonTextContent(), "math")
	assert.True(t, paras[6].HasNonTextContent(), "OLE object")
}

func TestParagraph_RunsResolveStyles(t *testing.T) {
	styles := `<w:docDefaults><w:rPrDefault><w:rPr>` +
		`<w:rFonts w:ascii="Times New Roman" w:eastAsia="宋体"/><w:sz w:val="21"/>` +
		`</w:rPr></w:rPrDefault></w:docDefaults>` +
		`<w:style w:type="paragraph" w:default="1" w:styleId="Normal"><w:name w:val="Normal"/></w:style>` +
		`<w:style w:type="paragraph" w:styleId="Title"><w:name w:val="Title"/><w:basedOn w:val="Normal"/>` +
		`<w:rPr><w:rFonts w:eastAsia="黑体"/><w:b/><w:sz w:val="32"/></w:rPr></w:style>` +
		`<w:style w:type="character" w:styleId="Emph"><w:rPr><w:i/><w:u w:val="single"/></w:rPr></w:style>`

	doc := loadFixture(t, tu.NewDocx().Styles(styles).Body(
		tu.PStyled("Title", "标题"),
		tu.PRuns(
			tu.R("plain", ""),
			tu.R("direct", tu.Fonts("楷体", "Arial")+tu.Size(12)+`<w:b w:val="0"/>`),
			tu.R("char", `<w:rStyle w:val="Emph"/>`),
			tu.R("themed", `<w:rFonts w:eastAsiaTheme="minorEastAsia"/>`),
			tu.R("not underlined", `<w:u w:val="none"/>`),
		),
	))
	paras := doc.Paragraphs()
	require.Len(t, paras, 2)

	assert.Equal(t, "Title", paras[0].StyleID())
	assert.Equal(t, "Title", doc.Styles().StyleName("Title"))

	title := paras[0].Runs()
	require.Len(t, title, 1)
	assert.Equal(t, "黑体", title[0].Format.EastAsiaFont)
	assert.Equal(t, "Times New Roman", title[0].Format.ASCIIFont)
	assert.Equal(t, 16.0, title[0].Format.Size)
	assert.True(t, title[0].Format.Bold)

	runs := paras[1].Runs()
	require.Len(t, runs, 5)

	assert.Equal(t, "宋体", runs[0].Format.EastAsiaFont)
	assert.Equal(t, 10.5, runs[0].Format.Size)
	assert.False(t, runs[0].Format.Bold)

	assert.Equal(t, "楷体", runs[1].Format.EastAsiaFont)
	assert.Equal(t, "Arial", runs[1].Format.ASCIIFont)
	assert.Equal(t, 12.0, runs[1].Format.Size)
	assert.False(t, runs[1].Format.Bold)

	assert.True(t, runs[2].Format.Italic)
	assert.True(t, runs[2].Format.Underline)

	assert.Empty(t, runs[3].Format.EastAsiaFont)
	assert.Equal(t, "Times New Roman", runs[3].Format.PrimaryFont())

	assert.False(t, runs[4].Format.Underline)
}

func TestParagraph_RunsWithoutStyles(t *testing.T) {
	doc, err := docx.ParseDocument([]byte(tu.NewDocx().Paragraphs("text").DocumentXML()))
	require.NoError(t, err)

	runs := doc.Paragraphs()[0].Runs()
	require.Len(t, runs, 1)
	assert.Equal(t, "text", runs[0].Text)
	assert.Zero(t, runs[0].Format.Size)
	assert.Empty(t, runs[0].Format.PrimaryFont())
}

func TestCell_Runs(t *testing.T) {
	doc := loadFixture(t, tu.NewDocx().Body(
		tu.Table(tu.P("a") + tu.P("b")),
	))

	cells := doc.Cells()
	require.Len(t, cells, 1)
	assert.Len(t, cells[0].Paragraphs(), 2)
	assert.Len(t, cells[0].Runs(), 2)
	assert.Equal(t, "a\nb", cells[0].Text())
}
