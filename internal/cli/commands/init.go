package commands

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/leapstack-labs/leapcheck/internal/cli/config"
	"github.com/leapstack-labs/leapcheck/pkg/lint"
)

const configHeader = `# leapcheck configuration
#
# checker is the module tree: Checker > TreeWalker > checks. Properties are
# strings; lists may be written as YAML sequences.
# Run 'leapcheck rules' to list modules and their configuration keys.
`

// NewInitCommand creates the init command.
func NewInitCommand() *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "init [directory]",
		Short: "Create a leapcheck.yaml configuration",
		Long: `Write a leapcheck.yaml enabling every default check module.

The file lists each module explicitly so properties can be added in place.`,
		Example: `  # Initialize in current directory
  leapcheck init

  # Initialize another project
  leapcheck init ../service

  # Replace an existing configuration
  leapcheck init --force`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := "."
			if len(args) > 0 {
				dir = args[0]
			}
			path, err := writeDefaultConfig(dir, force)
			if err != nil {
				return err
			}
			r := NewCommandContext(cmd).Renderer
			r.Success("Created " + path)
			r.Println("")
			r.Println("Next steps:")
			r.Println("  1. Adjust module properties in leapcheck.yaml")
			r.Println("  2. Run 'leapcheck check' to check your sources")
			return nil
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "Overwrite existing configuration")
	return cmd
}

// DefaultFileConfig is the configuration written by init.
func DefaultFileConfig() *config.Config {
	return &config.Config{
		Checker:      lint.DefaultConfig(),
		Excludes:     []string{"**/target/**", "**/build/**"},
		CachePath:    config.DefaultCachePath,
		OutputFormat: config.DefaultOutput,
	}
}

func writeDefaultConfig(dir string, force bool) (string, error) {
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return "", fmt.Errorf("failed to create directory %s: %w", dir, err)
	}
	path := filepath.Join(dir, config.ConfigFileNames[0])
	if _, err := os.Stat(path); err == nil && !force {
		return "", fmt.Errorf("%s already exists. Use --force to overwrite", config.ConfigFileNames[0])
	}

	var buf bytes.Buffer
	buf.WriteString(configHeader)
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(DefaultFileConfig()); err != nil {
		return "", fmt.Errorf("failed to encode config: %w", err)
	}
	if err := enc.Close(); err != nil {
		return "", fmt.Errorf("failed to encode config: %w", err)
	}

	if err := os.WriteFile(path, buf.Bytes(), 0o600); err != nil {
		return "", fmt.Errorf("failed to write %s: %w", path, err)
	}
	return path, nil
}
