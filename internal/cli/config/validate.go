package config

import (
	"fmt"

	"github.com/bmatcuk/doublestar/v4"

	"github.com/leapstack-labs/leapcheck/internal/cli/output"
	"github.com/leapstack-labs/leapcheck/pkg/lint"
)

// Validate checks values the decoder cannot: output mode, job count,
// exclude patterns and the root of the module tree.
func (c *Config) Validate() error {
	if _, err := output.ParseMode(c.OutputFormat); err != nil {
		return err
	}
	if c.Jobs < 0 {
		return fmt.Errorf("jobs must not be negative, got %d", c.Jobs)
	}
	for _, p := range c.Excludes {
		if !doublestar.ValidatePattern(p) {
			return fmt.Errorf("invalid exclude pattern %q", p)
		}
	}
	if c.Checker != nil && c.Checker.Name != "" && c.Checker.Name != lint.CheckerModule {
		return fmt.Errorf("checker: root module must be %s, got %q", lint.CheckerModule, c.Checker.Name)
	}
	return nil
}
