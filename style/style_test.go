package style

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tsawler/manucheck/docx"
)

// runs is a Target built from literal runs.
type runs []docx.Run

func (r runs) Runs() []docx.Run { return r }

func run(text string, f docx.RunFormat) docx.Run {
	return docx.Run{Text: text, Format: f}
}

type panicTarget struct{}

func (panicTarget) Runs() []docx.Run { panic("broken run") }

func ptr(b bool) *bool { return &b }

func TestEastAsianFontValidator(t *testing.T) {
	tests := []struct {
		name     string
		want     string
		target   Target
		status   Status
		contains []string
	}{
		{
			name:   "alias matches",
			want:   "黑体",
			target: runs{run("标题", docx.RunFormat{EastAsiaFont: "SimHei"})},
			status: Pass,
		},
		{
			name:     "different font",
			want:     "宋体",
			target:   runs{run("标题", docx.RunFormat{EastAsiaFont: "SimHei"})},
			status:   Fail,
			contains: []string{"宋体", "SimHei", "title"},
		},
		{
			name:   "latin runs ignored",
			want:   "宋体",
			target: runs{run("Title", docx.RunFormat{EastAsiaFont: "Arial"})},
			status: Pass,
		},
		{
			name: "unresolved font",
			want: "宋体",
			target: runs{
				run("标题", docx.RunFormat{EastAsiaFont: "宋体"}),
				run("内容", docx.RunFormat{}),
			},
			status: Inconclusive,
		},
		{
			name: "failure wins over unresolved",
			want: "宋体",
			target: runs{
				run("内容", docx.RunFormat{}),
				run("标题", docx.RunFormat{EastAsiaFont: "楷体"}),
			},
			status: Fail,
		},
		{
			name:   "nil target",
			want:   "宋体",
			target: nil,
			status: Pass,
		},
		{
			name:   "unmapped label",
			want:   "仿宋",
			target: runs{run("正文", docx.RunFormat{EastAsiaFont: "仿宋"})},
			status: Pass,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := FontSpec{EastAsianFont: tt.want}.EastAsianFontValidator()
			require.NotNil(t, v)

			got := v(nil, tt.target, "title", "")
			assert.Equal(t, tt.status, got.Status, got.Message)
			for _, s := range tt.contains {
				assert.Contains(t, got.Message, s)
			}
		})
	}
}

func TestLatinFontValidator(t *testing.T) {
	v := FontSpec{LatinFont: "Times New Roman"}.LatinFontValidator()
	require.NotNil(t, v)

	ok := v(nil, runs{run("Abstract", docx.RunFormat{ASCIIFont: "times new roman"})}, "abstract", "")
	assert.Equal(t, Pass, ok.Status)

	bad := v(nil, runs{run("中文", docx.RunFormat{}), run("Abstract", docx.RunFormat{ASCIIFont: "Arial"})}, "abstract", "")
	assert.Equal(t, Fail, bad.Status)
	assert.Contains(t, bad.Message, "Times New Roman")
	assert.Contains(t, bad.Message, "Arial")
}

func TestSizeValidator(t *testing.T) {
	spec := FontSpec{Size: 16, SizeLabel: "三号"}
	v := spec.SizeValidator()
	require.NotNil(t, v)

	assert.Equal(t, Pass, v(nil, runs{run("a", docx.RunFormat{Size: 16})}, "f", "").Status)

	got := v(nil, runs{run("a", docx.RunFormat{Size: 16}), run("b", docx.RunFormat{Size: 10.5})}, "f", "")
	assert.Equal(t, Fail, got.Status)
	assert.Contains(t, got.Message, "三号 (16pt)")
	assert.Contains(t, got.Message, "10.5pt")

	assert.Equal(t, Inconclusive, v(nil, runs{run("a", docx.RunFormat{})}, "f", "").Status)
}

func TestEmphasisValidator(t *testing.T) {
	spec := FontSpec{Bold: ptr(true), Italic: ptr(false)}
	v := spec.EmphasisValidator()
	require.NotNil(t, v)

	assert.Equal(t, Pass, v(nil, runs{
		run("bold", docx.RunFormat{Bold: true}),
		run("  ", docx.RunFormat{Italic: true}),
	}, "f", "").Status)

	got := v(nil, runs{run("x", docx.RunFormat{Bold: true, Italic: true})}, "f", "")
	assert.Equal(t, Fail, got.Status)
	assert.Equal(t, "f italic should be off, got on", got.Message)

	got = v(nil, runs{run("x", docx.RunFormat{Italic: true}), run("y", docx.RunFormat{})}, "f", "")
	assert.Equal(t, "f bold should be on, got off", got.Message, "bold is checked before italic")

	assert.Nil(t, FontSpec{}.EmphasisValidator())
}

func TestValidators_Order(t *testing.T) {
	spec := FontSpec{
		EastAsianFont: "宋体",
		LatinFont:     "Arial",
		Size:          12,
		Underline:     ptr(false),
	}
	target := runs{run("中文 text", docx.RunFormat{
		EastAsiaFont: "Other",
		ASCIIFont:    "Other",
		Size:         9,
		Underline:    true,
	})}

	vs := spec.Validators()
	require.Len(t, vs, 4)
	for i, want := range []string{"east-Asian font", "Latin font", "size", "underline"} {
		got := vs[i](nil, target, "f", "")
		assert.Equal(t, Fail, got.Status)
		assert.Contains(t, got.Message, want)
	}
}

func TestStyleSpec_Empty(t *testing.T) {
	var spec StyleSpec
	assert.True(t, spec.IsZero())
	assert.Empty(t, spec.Validators())
	assert.Equal(t, "no font constraints", spec.Font.String())
}

func TestStyleSpec_Validators(t *testing.T) {
	spec := StyleSpec{
		Font:     FontSpec{Size: 12},
		Language: LanguageSpec{Language: English},
	}
	vs := spec.Validators()
	require.Len(t, vs, 2)
	assert.Equal(t, Fail, vs[1](nil, nil, "f", "English 中文").Status)
}

func TestValidator_RecoversPanic(t *testing.T) {
	v := FontSpec{Size: 12}.SizeValidator()
	got := v(nil, panicTarget{}, "title", "")
	assert.Equal(t, Inconclusive, got.Status)
	assert.Contains(t, got.Message, "broken run")
	assert.True(t, got.OK())
}

func TestChineseLanguageValidator(t *testing.T) {
	v := LanguageSpec{Language: Chinese}.Validator()
	require.NotNil(t, v)

	tests := []struct {
		value  string
		status Status
	}{
		{"这是中文内容", Pass},
		{"这是中文内容，带标点。", Pass},
		{"基于G的方法", Pass},
		{"", Pass},
		{"，。！", Pass},
		{"这是 English 内容", Fail},
	}
	for _, tt := range tests {
		t.Run(tt.value, func(t *testing.T) {
			assert.Equal(t, tt.status, v(nil, nil, "title", tt.value).Status)
		})
	}

	got := v(nil, nil, "title", "这是 English 内容")
	assert.Contains(t, got.Message, "36.4%")
}

func TestEnglishLanguageValidator(t *testing.T) {
	v := LanguageSpec{Language: English}.Validator()
	require.NotNil(t, v)

	assert.Equal(t, Pass, v(nil, nil, "f", "Deep Learning: A Survey (2024)").Status)
	assert.Equal(t, Pass, v(nil, nil, "f", "").Status)
	assert.Equal(t, Pass, v(nil, nil, "f", "A survey，of methods").Status, "full-width punctuation is stripped")

	got := v(nil, nil, "f", "Deep 学习")
	assert.Equal(t, Fail, got.Status)
	assert.Contains(t, got.Message, "学")
}

func TestChineseRatio(t *testing.T) {
	ratio, ok := ChineseRatio("中文ab")
	assert.True(t, ok)
	assert.InDelta(t, 0.5, ratio, 1e-9)

	_, ok = ChineseRatio(" ,.")
	assert.False(t, ok)
}

func TestParseLanguage(t *testing.T) {
	tests := []struct {
		in      string
		want    Language
		wantErr bool
	}{
		{"中文", Chinese, false},
		{"英文", English, false},
		{"Chinese", Chinese, false},
		{"english", English, false},
		{"zh", Chinese, false},
		{"zh-Hans-CN", Chinese, false},
		{"en-US", English, false},
		{"", AnyLanguage, false},
		{"fr", AnyLanguage, true},
		{"日本語", AnyLanguage, true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseLanguage(tt.in)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrUnknownLanguage)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestFontAliases(t *testing.T) {
	a := DefaultFontAliases()
	assert.True(t, a.Match("黑体", "SimHei"))
	assert.True(t, a.Match("黑体", "ＳｉｍＨｅｉ"), "full-width form")
	assert.True(t, a.Match("宋体", " simsun "))
	assert.False(t, a.Match("宋体", "SimHei"))
	assert.True(t, a.Contains("宋体", "宋体-方正超大字符集"))

	merged := a.Merge(FontAliases{"仿宋": {"仿宋", "FangSong"}})
	assert.True(t, merged.Match("仿宋", "FangSong"))
	assert.False(t, a.Match("仿宋", "FangSong"))
}

func TestFontAliases_NamesPrefersExactKey(t *testing.T) {
	a := FontAliases{
		"ＳｉｍＨｅｉ": {"Heiti SC"},
		"SimHei":   {"SimHei", "黑体"},
	}
	for i := 0; i < 20; i++ {
		assert.Equal(t, []string{"SimHei", "黑体"}, a.Names("SimHei"))
		assert.Equal(t, []string{"Heiti SC"}, a.Names("ＳｉｍＨｅｉ"))
	}
	// No exact entry: the first normalized match in key order wins.
	assert.Equal(t, []string{"SimHei", "黑体"}, a.Names("simhei"))
	assert.Equal(t, []string{"楷体"}, a.Names("楷体"))
}
