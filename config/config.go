// Package config provides layered configuration for the manucheck CLI.
//
// Values are read from built-in defaults, then a YAML file
// (manucheck.yaml), then MANUCHECK_ environment variables, then command
// line flags; later layers win. Nested keys in environment variables are
// separated by a double underscore, e.g. MANUCHECK_BLANK_LINES__MAX_CONSECUTIVE.
package config

import (
	"time"

	"github.com/tsawler/manucheck"
)

// Defaults.
const (
	DefaultConfigFile = "manucheck.yaml"
	DefaultOutput     = "text"
	EnvPrefix         = "MANUCHECK_"
)

// Output formats.
const (
	OutputText     = "text"
	OutputMarkdown = "markdown"
	OutputJSON     = "json"
	OutputHTML     = "html"
)

// Outputs lists the supported output formats.
var Outputs = []string{OutputText, OutputMarkdown, OutputJSON, OutputHTML}

// Config holds all configuration options.
type Config struct {
	Checks      ChecksConfig        `koanf:"checks" yaml:"checks"`
	BlankLines  BlankLinesConfig    `koanf:"blank_lines" yaml:"blank_lines"`
	Pages       PagesConfig         `koanf:"pages" yaml:"pages"`
	Cover       CoverConfig         `koanf:"cover" yaml:"cover"`
	FontAliases map[string][]string `koanf:"font_aliases" yaml:"font_aliases,omitempty"`
	Fields      []FieldConfig       `koanf:"fields" yaml:"fields,omitempty"`

	Workers int           `koanf:"workers" yaml:"workers"`
	Timeout time.Duration `koanf:"timeout" yaml:"timeout"`
	Output  string        `koanf:"output" yaml:"output"`
	Verbose bool          `koanf:"verbose" yaml:"verbose"`

	// File is the configuration file that was loaded, if any.
	File string `koanf:"-" yaml:"-"`
}

// ChecksConfig switches checks on or off. A nil switch enables the check
// when its required settings are present; headers and footers need none.
type ChecksConfig struct {
	BlankLines *bool `koanf:"blank_lines" yaml:"blank_lines,omitempty"`
	Headers    *bool `koanf:"headers" yaml:"headers,omitempty"`
	Footers    *bool `koanf:"footers" yaml:"footers,omitempty"`
	CoverFont  *bool `koanf:"cover_font" yaml:"cover_font,omitempty"`
	Fields     *bool `koanf:"fields" yaml:"fields,omitempty"`
}

type BlankLinesConfig struct {
	MaxConsecutive *int `koanf:"max_consecutive" yaml:"max_consecutive,omitempty"`
}

type PagesConfig struct {
	ParagraphsPerPage int `koanf:"paragraphs_per_page" yaml:"paragraphs_per_page"`
}

type CoverConfig struct {
	Font string `koanf:"font" yaml:"font,omitempty"`
}

// FieldConfig describes one manuscript field rule.
type FieldConfig struct {
	Name     string `koanf:"name" yaml:"name"`
	Scope    string `koanf:"scope" yaml:"scope,omitempty"` // paragraphs (default) or cells
	Pattern  string `koanf:"pattern" yaml:"pattern,omitempty"`
	Style    string `koanf:"style" yaml:"style,omitempty"`
	Required bool   `koanf:"required" yaml:"required,omitempty"`

	EastAsianFont string  `koanf:"east_asian_font" yaml:"east_asian_font,omitempty"`
	LatinFont     string  `koanf:"latin_font" yaml:"latin_font,omitempty"`
	Size          float64 `koanf:"size" yaml:"size,omitempty"`
	SizeLabel     string  `koanf:"size_label" yaml:"size_label,omitempty"`
	Bold          *bool   `koanf:"bold" yaml:"bold,omitempty"`
	Italic        *bool   `koanf:"italic" yaml:"italic,omitempty"`
	Underline     *bool   `koanf:"underline" yaml:"underline,omitempty"`

	Language        string  `koanf:"language" yaml:"language,omitempty"`
	MinChineseRatio float64 `koanf:"min_chinese_ratio" yaml:"min_chinese_ratio,omitempty"`
}

// defaults returns the lowest configuration layer.
func defaults() map[string]any {
	return map[string]any{
		"pages.paragraphs_per_page": 25,
		"font_aliases": map[string]any{
			"黑体":   []string{"黑体", "SimHei"},
			"华文楷体": []string{"华文楷体", "KaiTi"},
			"宋体":   []string{"宋体", "SimSun"},
		},
		"workers": manucheck.DefaultWorkers,
		"timeout": manucheck.DefaultTimeout.String(),
		"output":  DefaultOutput,
		"verbose": false,
	}
}

func enabled(sw *bool, configured bool) bool {
	if sw != nil {
		return *sw
	}
	return configured
}

// BlankLinesEnabled reports whether the blank line check runs.
func (c *Config) BlankLinesEnabled() bool {
	return enabled(c.Checks.BlankLines, c.BlankLines.MaxConsecutive != nil)
}

// HeadersEnabled reports whether the header check runs.
func (c *Config) HeadersEnabled() bool {
	return enabled(c.Checks.Headers, true)
}

// FootersEnabled reports whether the footer check runs.
func (c *Config) FootersEnabled() bool {
	return enabled(c.Checks.Footers, true)
}

// CoverFontEnabled reports whether the cover font check runs.
func (c *Config) CoverFontEnabled() bool {
	return enabled(c.Checks.CoverFont, c.Cover.Font != "")
}

// FieldsEnabled reports whether the field check runs.
func (c *Config) FieldsEnabled() bool {
	return enabled(c.Checks.Fields, len(c.Fields) > 0)
}
