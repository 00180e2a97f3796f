package commands

import (
	"fmt"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"gopkg.in/yaml.v3"

	"github.com/leapstack-labs/leapcheck/internal/cli/output"
	"github.com/leapstack-labs/leapcheck/pkg/core"
	"github.com/leapstack-labs/leapcheck/pkg/lint"
)

// RulesOptions holds options for the rules command.
type RulesOptions struct {
	Group   string // Filter by group
	Verbose bool   // Show descriptions
	Format  string // Output format: auto, text, markdown, json, yaml
}

// NewRulesCommand creates the rules command.
func NewRulesCommand() *cobra.Command {
	opts := &RulesOptions{}
	cmd := &cobra.Command{
		Use:   "rules [module]",
		Short: "List available check modules",
		Long: `List every registered check module, or show one in detail.

The detail view lists the module's configuration keys and its default,
acceptable and required token kinds. --format yaml prints a configuration
snippet enabling the listed modules.`,
		Example: `  # List all modules
  leapcheck rules

  # Show one module
  leapcheck rules OperatorWrap

  # List the whitespace group with descriptions
  leapcheck rules --group whitespace -V

  # Generate a config fragment
  leapcheck rules --group blocks --format yaml`,
		Args: cobra.MaximumNArgs(1),
		ValidArgsFunction: func(_ *cobra.Command, args []string, _ string) ([]string, cobra.ShellCompDirective) {
			if len(args) > 0 {
				return nil, cobra.ShellCompDirectiveNoFileComp
			}
			var names []string
			for _, info := range lint.All() {
				names = append(names, info.Name)
			}
			return names, cobra.ShellCompDirectiveNoFileComp
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) > 0 {
				return showRule(cmd, args[0], opts)
			}
			return listRules(cmd, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.Group, "group", "g", "", "Filter by group")
	cmd.Flags().BoolVarP(&opts.Verbose, "verbose", "V", false, "Show descriptions")
	cmd.Flags().StringVarP(&opts.Format, "format", "f", "", "Output format: text, markdown, json, yaml")

	return cmd
}

func describeAll(infos []lint.ModuleInfo) []core.ModuleInfo {
	out := make([]core.ModuleInfo, 0, len(infos))
	for _, info := range infos {
		// modules with required properties still report their metadata
		d, _ := info.Describe()
		out = append(out, d)
	}
	return out
}

func listRules(cmd *cobra.Command, opts *RulesOptions) error {
	infos := lint.All()
	if opts.Group != "" {
		infos = lint.ByGroup(opts.Group)
		if len(infos) == 0 {
			return fmt.Errorf("no modules in group %q", opts.Group)
		}
	}

	if strings.EqualFold(opts.Format, "yaml") {
		return listRulesYAML(cmd, infos)
	}

	r, err := renderer(cmd, NewCommandContext(cmd).Renderer, opts.Format)
	if err != nil {
		return err
	}
	modules := describeAll(infos)

	switch r.EffectiveMode() {
	case output.ModeJSON:
		return r.JSON(RulesJSONOutput{Modules: modules, Count: len(modules)})
	case output.ModeMarkdown:
		r.Println("# Check Modules")
		r.Println("")
		r.Println(rulesTable(r, modules, opts.Verbose).RenderMarkdown())
	default:
		r.Println(r.Styles().Header1.Render(fmt.Sprintf("Check Modules (%d)", len(modules))))
		r.Println("")
		r.Println(rulesTable(r, modules, opts.Verbose).Render())
		r.Println("")
		r.Muted("Use 'leapcheck rules <module>' for detailed documentation")
	}
	return nil
}

// RulesJSONOutput is the JSON output structure for rules listing.
type RulesJSONOutput struct {
	Modules []core.ModuleInfo `json:"modules"`
	Count   int               `json:"count"`
}

func rulesTable(r *output.Renderer, modules []core.ModuleInfo, verbose bool) table.Writer {
	titleCaser := cases.Title(language.English)

	t := table.NewWriter()
	t.SetStyle(table.StyleLight)
	header := table.Row{"Module", "Group", "Severity", "Config keys"}
	if verbose {
		header = append(header, "Description")
	}
	t.AppendHeader(header)
	for _, m := range modules {
		row := table.Row{m.Name, titleCaser.String(m.Group), m.DefaultSeverity.String(), output.FormatList(output.ModeText, m.ConfigKeys)}
		if verbose {
			row = append(row, m.Description)
		}
		t.AppendRow(row)
	}
	return t
}

// listRulesYAML prints a checker configuration enabling infos.
func listRulesYAML(cmd *cobra.Command, infos []lint.ModuleInfo) error {
	walker := lint.NewModuleConfig(lint.TreeWalkerModule)
	for _, info := range infos {
		walker.Add(lint.NewModuleConfig(info.Name))
	}
	root := lint.NewModuleConfig(lint.CheckerModule).Add(walker)

	enc := yaml.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent(2)
	if err := enc.Encode(map[string]*lint.ModuleConfig{"checker": root}); err != nil {
		return fmt.Errorf("failed to encode yaml: %w", err)
	}
	return enc.Close()
}

func showRule(cmd *cobra.Command, name string, opts *RulesOptions) error {
	r, err := renderer(cmd, NewCommandContext(cmd).Renderer, opts.Format)
	if err != nil {
		return err
	}

	info, ok := lint.Lookup(name)
	if !ok {
		return fmt.Errorf("module %q not found", name)
	}
	m, describeErr := info.Describe()

	mode := r.EffectiveMode()
	if mode == output.ModeJSON {
		return r.JSON(m)
	}

	if mode == output.ModeMarkdown {
		r.Printf("# %s\n\n", m.Name)
	} else {
		r.Println(r.Styles().Header1.Render(m.Name))
		r.Println("")
	}
	r.Println(output.FormatKeyValue(mode, "Group", m.Group))
	r.Println(output.FormatKeyValue(mode, "Severity", m.DefaultSeverity.String()))
	r.Println(output.FormatKeyValue(mode, "Config keys", output.FormatList(mode, m.ConfigKeys)))
	r.Println(output.FormatKeyValue(mode, "Message keys", output.FormatList(mode, m.MessageKeys)))
	if describeErr == nil {
		r.Println(output.FormatKeyValue(mode, "Default tokens", output.FormatList(mode, m.DefaultTokens)))
		r.Println(output.FormatKeyValue(mode, "Acceptable tokens", output.FormatList(mode, m.AcceptableTokens)))
		r.Println(output.FormatKeyValue(mode, "Required tokens", output.FormatList(mode, m.RequiredTokens)))
	}
	r.Println("")
	r.Println(m.Description)
	r.Println("")

	section := func(title, body string, code bool) {
		if body == "" {
			return
		}
		if mode == output.ModeMarkdown {
			r.Printf("## %s\n\n", title)
		} else {
			r.Println(r.Styles().Bold.Render(title))
		}
		if code {
			r.Println("```java")
			r.Println(body)
			r.Println("```")
		} else {
			r.Println(body)
		}
		r.Println("")
	}
	section("Why This Matters", m.Rationale, false)
	section("Bad Example", m.BadExample, true)
	section("Good Example", m.GoodExample, true)
	return nil
}
