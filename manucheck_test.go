package manucheck_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tsawler/manucheck"
	"github.com/tsawler/manucheck/check"
	tu "github.com/tsawler/manucheck/internal/testutil"
	"github.com/tsawler/manucheck/style"
)

func manuscript(t *testing.T) string {
	t.Helper()
	return tu.NewDocx().
		Header("rId1", "header1.xml", "Journal of Testing").
		Header("rId2", "header2.xml", "Journal of Testing").
		Footer("rId3", "footer1.xml", "1").
		Body(
			tu.PRuns(tu.R("论文题目", tu.Fonts("黑体", "SimHei"))),
			tu.PRuns(tu.R("作者", tu.Fonts("宋体", "SimSun"))),
			tu.PWithProps(tu.SectPr(tu.HeaderRef("default", "rId1")), "日期"),
			tu.P("正文"),
			tu.P(""), tu.P(""), tu.P(""),
			tu.P("结论"),
			tu.SectPr(tu.HeaderRef("default", "rId2"), tu.FooterRef("default", "rId3")),
		).
		Write(t)
}

func TestChecker_Immutable(t *testing.T) {
	base := manucheck.Open("thesis.docx").MaxBlankLines(2)
	withHeaders := base.Headers()

	assert.False(t, base.Options().Headers)
	assert.True(t, withHeaders.Options().Headers)
	assert.Equal(t, 2, *withHeaders.Options().MaxBlankLines)

	more := withHeaders.MaxBlankLines(5)
	assert.Equal(t, 2, *withHeaders.Options().MaxBlankLines)
	assert.Equal(t, 5, *more.Options().MaxBlankLines)

	a := base.Field(check.FieldRule{Name: "a", Pattern: "a"})
	b := base.Field(check.FieldRule{Name: "b", Pattern: "b"})
	require.Len(t, a.Options().Fields, 1)
	require.Len(t, b.Options().Fields, 1)
	assert.Equal(t, "b", b.Options().Fields[0].Name)
	assert.Empty(t, base.Options().Fields)
	assert.Equal(t, "thesis.docx", a.Filename())
}

func TestChecker_Options(t *testing.T) {
	c := manucheck.Open("thesis.docx").HeadersAndFooters().CoverFont("黑体")
	assert.Equal(t, []string{check.NameHeaders, check.NameFooters, check.NameCoverFont}, c.Options().Enabled())

	limit := 3
	replaced := c.WithOptions(manucheck.Options{MaxBlankLines: &limit})
	assert.Equal(t, []string{check.NameBlankLines}, replaced.Options().Enabled())
}

func TestChecker_Check(t *testing.T) {
	report, err := manucheck.Open(manuscript(t)).
		WithLogger(tu.NewTestLogger(t)).
		MaxBlankLines(2).
		HeadersAndFooters().
		CoverFont("黑体").
		Check()
	require.NoError(t, err)

	assert.NotEmpty(t, report.ID)
	assert.False(t, report.StartedAt.IsZero())
	require.Len(t, report.Results, 4)
	assert.Equal(t, check.NameBlankLines, report.Results[0].Check)

	blank := report.Result(check.NameBlankLines)
	require.NotNil(t, blank)
	assert.True(t, blank.Found)
	require.Len(t, blank.Details, 1)
	assert.Equal(t, 3, blank.Details[0].Count)

	headers := report.Result(check.NameHeaders)
	require.NotNil(t, headers)
	assert.False(t, headers.Found)
	assert.Equal(t, "All headers are identical", headers.Message)

	footers := report.Result(check.NameFooters)
	require.NotNil(t, footers)
	assert.Equal(t, "Only one footer found", footers.Message)

	cover := report.Result(check.NameCoverFont)
	require.NotNil(t, cover)
	assert.True(t, cover.Found)
	require.Len(t, cover.Details, 1)
	assert.Equal(t, []int{2}, cover.Details[0].Location.Paragraphs)

	assert.True(t, report.Found())
	assert.False(t, report.Aborted())
	assert.Equal(t, 2, report.IssueCount())
	assert.Nil(t, report.Result(check.NameFields))
}

func TestChecker_FontAliases(t *testing.T) {
	path := tu.NewDocx().Body(
		tu.PRuns(tu.R("题目", tu.Fonts("", "Heiti SC"))),
		tu.PWithProps(tu.SectPr(), ""),
	).Write(t)

	report, err := manucheck.Open(path).CoverFont("黑体").Check()
	require.NoError(t, err)
	assert.True(t, report.Result(check.NameCoverFont).Found)

	report, err = manucheck.Open(path).
		CoverFont("黑体").
		FontAliases(style.FontAliases{"黑体": {"黑体", "SimHei", "Heiti"}}).
		Check()
	require.NoError(t, err)
	assert.False(t, report.Result(check.NameCoverFont).Found)
}

func TestChecker_FontAliasesReachFields(t *testing.T) {
	path := tu.NewDocx().Body(
		tu.PRuns(tu.R("题目", tu.Fonts("Heiti SC", ""))),
	).Write(t)
	title := check.FieldRule{
		Name:    "title",
		Pattern: "^题目",
		Spec:    style.StyleSpec{Font: style.FontSpec{EastAsianFont: "黑体"}},
	}

	report, err := manucheck.Open(path).Field(title).Check()
	require.NoError(t, err)
	res := report.Result(check.NameFields)
	require.True(t, res.Found)
	assert.Contains(t, res.Details[0].Message, "Heiti SC")

	report, err = manucheck.Open(path).
		FontAliases(style.FontAliases{"黑体": {"黑体", "SimHei", "Heiti SC"}}).
		Field(title).
		Check()
	require.NoError(t, err)
	assert.False(t, report.Result(check.NameFields).Found)

	// A rule with its own aliases keeps them.
	own := title
	own.Spec.Font.Aliases = style.FontAliases{"黑体": {"黑体"}}
	report, err = manucheck.Open(path).
		FontAliases(style.FontAliases{"黑体": {"黑体", "Heiti SC"}}).
		Field(own).
		Check()
	require.NoError(t, err)
	assert.True(t, report.Result(check.NameFields).Found)
}

func TestChecker_ConfigErrors(t *testing.T) {
	_, err := manucheck.Open("thesis.docx").Check()
	assert.ErrorIs(t, err, manucheck.ErrNoChecks)

	_, err = manucheck.Open("thesis.docx").MaxBlankLines(-1).Headers().Check()
	assert.Error(t, err)

	_, err = manucheck.Open("thesis.docx").ParagraphsPerPage(-5).Headers().Check()
	assert.Error(t, err)

	_, err = manucheck.Open("thesis.docx").Field(check.FieldRule{Name: "title", Pattern: "("}).Check()
	assert.Error(t, err)

	_, err = manucheck.Open("thesis.docx").Field(check.FieldRule{Pattern: "x"}).Check()
	assert.ErrorIs(t, err, check.ErrMissingConfig)
}

func TestChecker_UnreadableDocuments(t *testing.T) {
	dir := t.TempDir()
	pdf := filepath.Join(dir, "scan.docx")
	require.NoError(t, os.WriteFile(pdf, []byte("%PDF-1.4\n%%EOF"), 0o600))

	report, err := manucheck.Open(pdf).MaxBlankLines(2).Headers().Check()
	require.NoError(t, err)
	require.Len(t, report.Results, 2)
	for _, res := range report.Results {
		assert.True(t, res.Aborted)
		assert.False(t, res.Found)
		assert.Equal(t, "Unsupported document format: PDF", res.Message)
	}

	report, err = manucheck.Open(filepath.Join(dir, "missing.docx")).MaxBlankLines(2).Check()
	require.NoError(t, err)
	assert.True(t, report.Aborted())
	assert.Contains(t, report.Results[0].Message, "Error opening document")
}

func TestChecker_CheckContext_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	report, err := manucheck.Open(manuscript(t)).MaxBlankLines(2).Footers().CheckContext(ctx)
	require.NoError(t, err)
	require.Len(t, report.Results, 2)
	for _, res := range report.Results {
		assert.True(t, res.Aborted)
		assert.Contains(t, res.Message, "cancelled")
	}

	ctx, cancel = context.WithDeadline(context.Background(), time.Now().Add(-time.Second))
	defer cancel()
	report, err = manucheck.Open(manuscript(t)).MaxBlankLines(2).CheckContext(ctx)
	require.NoError(t, err)
	assert.Equal(t, "Check timed out", report.Results[0].Message)
}

func TestCheckAll(t *testing.T) {
	clean := tu.NewDocx().Paragraphs("a", "b", "c").Write(t)
	blank := tu.NewDocx().Body(
		tu.PWithProps(tu.SectPr(), "cover"),
		tu.P("body"), tu.P(""), tu.P(""), tu.P(""), tu.P("end"),
	).Write(t)
	missing := filepath.Join(t.TempDir(), "missing.docx")

	limit := 2
	opts := manucheck.Options{MaxBlankLines: &limit, Logger: tu.NewTestLogger(t)}
	paths := []string{blank, clean, missing, blank}

	reports, err := manucheck.CheckAll(context.Background(), paths, opts, manucheck.BatchOptions{Workers: 2})
	require.NoError(t, err)
	require.Len(t, reports, len(paths))

	for i, r := range reports {
		assert.Equal(t, paths[i], r.Document)
	}
	assert.True(t, reports[0].Found())
	assert.False(t, reports[1].Found())
	assert.True(t, reports[2].Aborted())
	assert.True(t, reports[3].Found())
	assert.NotEqual(t, reports[0].ID, reports[3].ID)
}

func TestCheckAll_Errors(t *testing.T) {
	_, err := manucheck.CheckAll(context.Background(), []string{"a.docx"}, manucheck.Options{}, manucheck.BatchOptions{})
	assert.ErrorIs(t, err, manucheck.ErrNoChecks)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	opts := manucheck.Options{Headers: true}
	_, err = manucheck.CheckAll(ctx, []string{"a.docx"}, opts, manucheck.BatchOptions{})
	assert.ErrorIs(t, err, context.Canceled)

	reports, err := manucheck.CheckAll(context.Background(), nil, opts, manucheck.BatchOptions{})
	require.NoError(t, err)
	assert.Empty(t, reports)
}

func TestMust(t *testing.T) {
	assert.Equal(t, 3, manucheck.Must(3, nil))
	assert.Panics(t, func() {
		manucheck.Must(manucheck.Open("thesis.docx").Check())
	})
}
