package commands

import (
	"fmt"
	"runtime"

	"github.com/spf13/cobra"

	"github.com/leapstack-labs/leapcheck/pkg/lint"
	"github.com/leapstack-labs/leapcheck/pkg/lint/checks/javadoc"
)

// VersionInfo is the JSON form of the version command.
type VersionInfo struct {
	Version string `json:"version"`
	Go      string `json:"go"`
	Modules int    `json:"modules"`
	Tags    int    `json:"javadoc_tags"`
}

// NewVersionCommand creates the version command.
func NewVersionCommand(version string) *cobra.Command {
	var format string
	cmd := &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Long:  `Display leapcheck version, the Go runtime and the number of built-in check modules.`,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			info := VersionInfo{
				Version: version,
				Go:      runtime.Version(),
				Modules: lint.Count(),
				Tags:    len(javadoc.Tags()),
			}
			if format == "json" {
				r, err := renderer(cmd, NewCommandContext(cmd).Renderer, format)
				if err != nil {
					return err
				}
				return r.JSON(info)
			}
			out := cmd.OutOrStdout()
			_, _ = fmt.Fprintf(out, "leapcheck v%s\n", info.Version)
			_, _ = fmt.Fprintln(out, "Java source checker built with Go and tree-sitter")
			_, _ = fmt.Fprintf(out, "%s, %d check modules, %d Javadoc tags\n", info.Go, info.Modules, info.Tags)
			return nil
		},
	}
	cmd.Flags().StringVarP(&format, "format", "f", "", "Output format: text or json")
	return cmd
}
