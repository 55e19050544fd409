package config

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/tsawler/manucheck"
	"github.com/tsawler/manucheck/check"
	"github.com/tsawler/manucheck/style"
)

// Aliases returns the configured font alias table.
func (c *Config) Aliases() style.FontAliases {
	if len(c.FontAliases) == 0 {
		return style.DefaultFontAliases()
	}
	aliases := make(style.FontAliases, len(c.FontAliases))
	for label, names := range c.FontAliases {
		aliases[label] = append([]string(nil), names...)
	}
	return aliases
}

// Rule converts the field configuration to a check rule.
func (f FieldConfig) Rule(aliases style.FontAliases) (check.FieldRule, error) {
	lang, err := style.ParseLanguage(f.Language)
	if err != nil {
		return check.FieldRule{}, fmt.Errorf("fields[%s].language: %w", f.Name, err)
	}
	return check.FieldRule{
		Name:     strings.TrimSpace(f.Name),
		Scope:    strings.ToLower(strings.TrimSpace(f.Scope)),
		Pattern:  f.Pattern,
		StyleID:  f.Style,
		Required: f.Required,
		Spec: style.StyleSpec{
			Font: style.FontSpec{
				EastAsianFont: f.EastAsianFont,
				LatinFont:     f.LatinFont,
				Size:          f.Size,
				SizeLabel:     f.SizeLabel,
				Bold:          f.Bold,
				Italic:        f.Italic,
				Underline:     f.Underline,
				Aliases:       aliases,
			},
			Language: style.LanguageSpec{Language: lang, MinChineseRatio: f.MinChineseRatio},
		},
	}, nil
}

// Options converts the configuration to checker options.
func (c *Config) Options(logger *slog.Logger) (manucheck.Options, error) {
	aliases := c.Aliases()
	opts := manucheck.Options{
		ParagraphsPerPage: c.Pages.ParagraphsPerPage,
		Headers:           c.HeadersEnabled(),
		Footers:           c.FootersEnabled(),
		FontAliases:       aliases,
		Logger:            logger,
	}

	if c.BlankLinesEnabled() {
		if c.BlankLines.MaxConsecutive == nil {
			return opts, fmt.Errorf("blank_lines.max_consecutive: %w", check.ErrMissingConfig)
		}
		n := *c.BlankLines.MaxConsecutive
		opts.MaxBlankLines = &n
	}

	if c.CoverFontEnabled() {
		if strings.TrimSpace(c.Cover.Font) == "" {
			return opts, fmt.Errorf("cover.font: %w", check.ErrMissingConfig)
		}
		opts.CoverFont = c.Cover.Font
	}

	if c.FieldsEnabled() {
		if len(c.Fields) == 0 {
			return opts, fmt.Errorf("fields: %w", check.ErrMissingConfig)
		}
		for _, f := range c.Fields {
			rule, err := f.Rule(aliases)
			if err != nil {
				return opts, err
			}
			opts.Fields = append(opts.Fields, rule)
		}
	}
	return opts, nil
}

// Batch returns the batch runner settings.
func (c *Config) Batch() manucheck.BatchOptions {
	return manucheck.BatchOptions{Workers: c.Workers, Timeout: c.Timeout}
}
