package config

import (
	"fmt"
	"slices"
)

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if !slices.Contains(Outputs, c.Output) {
		return fmt.Errorf("output must be one of %v, got %q", Outputs, c.Output)
	}
	if c.Workers < 1 {
		return fmt.Errorf("workers must be at least 1, got %d", c.Workers)
	}
	if c.Timeout < 0 {
		return fmt.Errorf("timeout must not be negative, got %s", c.Timeout)
	}
	if c.Pages.ParagraphsPerPage < 1 {
		return fmt.Errorf("pages.paragraphs_per_page must be at least 1, got %d", c.Pages.ParagraphsPerPage)
	}

	opts, err := c.Options(nil)
	if err != nil {
		return err
	}
	return opts.Validate()
}
