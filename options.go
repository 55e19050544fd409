package manucheck

import (
	"fmt"
	"log/slog"
	"slices"

	"github.com/tsawler/manucheck/check"
	"github.com/tsawler/manucheck/style"
)

// Options holds the configuration of a Checker. A check runs only when
// its options enable it.
type Options struct {
	// MaxBlankLines enables the blank line check. Nil disables it.
	MaxBlankLines *int

	// ParagraphsPerPage tunes page estimates. Zero uses the default.
	ParagraphsPerPage int

	Headers bool
	Footers bool

	// CoverFont enables the cover font check. Empty disables it.
	CoverFont string

	// Fields enables the field check. Empty disables it.
	Fields []check.FieldRule

	// FontAliases is merged over style.DefaultFontAliases and used by the
	// cover font check and by field rules that carry no aliases of their
	// own. Nil uses the defaults.
	FontAliases style.FontAliases

	Logger *slog.Logger
}

// defaultOptions returns options with every check disabled.
func defaultOptions() Options {
	return Options{}
}

// clone creates a deep copy of Options.
func (o Options) clone() Options {
	n := o
	if o.MaxBlankLines != nil {
		v := *o.MaxBlankLines
		n.MaxBlankLines = &v
	}
	n.Fields = slices.Clone(o.Fields)
	if o.FontAliases != nil {
		n.FontAliases = make(style.FontAliases, len(o.FontAliases))
		for label, names := range o.FontAliases {
			n.FontAliases[label] = slices.Clone(names)
		}
	}
	return n
}

// Enabled returns the names of the enabled checks in the order they run.
func (o Options) Enabled() []string {
	var names []string
	if o.MaxBlankLines != nil {
		names = append(names, check.NameBlankLines)
	}
	if o.Headers {
		names = append(names, check.NameHeaders)
	}
	if o.Footers {
		names = append(names, check.NameFooters)
	}
	if o.CoverFont != "" {
		names = append(names, check.NameCoverFont)
	}
	if len(o.Fields) > 0 {
		names = append(names, check.NameFields)
	}
	return names
}

// Validate reports configuration errors without touching any document.
func (o Options) Validate() error {
	if len(o.Enabled()) == 0 {
		return ErrNoChecks
	}
	if o.MaxBlankLines != nil && *o.MaxBlankLines < 0 {
		return fmt.Errorf("max blank lines must not be negative, got %d", *o.MaxBlankLines)
	}
	for _, rule := range o.Fields {
		if _, err := check.CompileFieldRule(rule); err != nil {
			return err
		}
	}
	return nil
}

func (o Options) logger() *slog.Logger {
	if o.Logger != nil {
		return o.Logger
	}
	return slog.New(slog.DiscardHandler)
}

func (o Options) aliases() style.FontAliases {
	if o.FontAliases == nil {
		return nil
	}
	return style.DefaultFontAliases().Merge(o.FontAliases)
}

// fieldRules returns the field rules with the configured aliases filled in
// where a rule has none.
func (o Options) fieldRules() []check.FieldRule {
	aliases := o.aliases()
	rules := slices.Clone(o.Fields)
	for i := range rules {
		if rules[i].Spec.Font.Aliases == nil {
			rules[i].Spec.Font.Aliases = aliases
		}
	}
	return rules
}
