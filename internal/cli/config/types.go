// Package config loads the leapcheck CLI configuration.
//
// Values are layered with koanf: built-in defaults, then leapcheck.yaml,
// then LEAPCHECK_* environment variables, then command-line flags.
package config

import (
	"github.com/leapstack-labs/leapcheck/pkg/lint"
)

// Config holds all CLI configuration options.
type Config struct {
	// Checker is the module tree; nil means the generated default tree.
	Checker      *lint.ModuleConfig `koanf:"checker" yaml:"checker,omitempty"`
	Excludes     []string           `koanf:"excludes" yaml:"excludes,omitempty"`
	Jobs         int                `koanf:"jobs" yaml:"jobs,omitempty"`
	CachePath    string             `koanf:"cache_path" yaml:"cache_path,omitempty"`
	NoCache      bool               `koanf:"no_cache" yaml:"no_cache,omitempty"`
	MetricsPath  string             `koanf:"metrics_path" yaml:"metrics_path,omitempty"`
	MetricsAddr  string             `koanf:"metrics_addr" yaml:"metrics_addr,omitempty"`
	OutputFormat string             `koanf:"output" yaml:"output,omitempty"`
	Verbose      bool               `koanf:"verbose" yaml:"verbose,omitempty"`

	// ProjectRoot is the directory relative paths resolve against.
	ProjectRoot string `koanf:"-" yaml:"-"`
}

// Default configuration values.
const (
	DefaultCachePath = ".leapcheck/cache.db"
	DefaultOutput    = "auto" // Auto-detect: TTY=text, non-TTY=markdown
	DefaultJobs      = 0      // one per CPU
)

// ConfigFileNames are searched, in order, in the project root.
var ConfigFileNames = []string{"leapcheck.yaml", "leapcheck.yml"}

// CheckerConfig returns the configured module tree, or the default tree
// when none is configured.
func (c *Config) CheckerConfig() *lint.ModuleConfig {
	if c.Checker == nil {
		return lint.DefaultConfig()
	}
	return c.Checker
}
