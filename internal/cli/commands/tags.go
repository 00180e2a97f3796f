package commands

import (
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/leapstack-labs/leapcheck/internal/cli/output"
	"github.com/leapstack-labs/leapcheck/pkg/lint/checks/javadoc"
)

// TagJSON is the JSON form of a catalog entry.
type TagJSON struct {
	Name string `json:"name"`
	Text string `json:"text"`
	Type string `json:"type"`
}

func tagJSON(t *javadoc.TagInfo) TagJSON {
	return TagJSON{Name: t.Name(), Text: t.Text(), Type: t.Type().String()}
}

// NewTagsCommand creates the tags command.
func NewTagsCommand() *cobra.Command {
	var format string
	cmd := &cobra.Command{
		Use:   "tags [name|text]",
		Short: "Show the Javadoc tag catalog",
		Long: `Show the standard Javadoc tags known to JavadocTagPlacement.

With an argument, resolve one tag. Arguments starting with '@' or '{' are
looked up by written form ("@return", "{@code}"), anything else by bare
name ("return", "code").`,
		Example: `  # List all tags
  leapcheck tags

  # Resolve by name or by text
  leapcheck tags inheritDoc
  leapcheck tags '{@inheritDoc}'`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			r, err := renderer(cmd, NewCommandContext(cmd).Renderer, format)
			if err != nil {
				return err
			}
			if len(args) == 0 {
				return listTags(r)
			}
			return showTag(r, args[0])
		},
	}
	cmd.Flags().StringVarP(&format, "format", "f", "", "Output format: text, markdown, json")
	return cmd
}

func listTags(r *output.Renderer) error {
	tags := javadoc.Tags()
	if r.EffectiveMode() == output.ModeJSON {
		out := make([]TagJSON, 0, len(tags))
		for _, t := range tags {
			out = append(out, tagJSON(t))
		}
		return r.JSON(out)
	}

	t := table.NewWriter()
	t.SetStyle(table.StyleLight)
	t.AppendHeader(table.Row{"Name", "Text", "Type"})
	for _, tag := range tags {
		t.AppendRow(table.Row{tag.Name(), tag.Text(), tag.Type()})
	}

	if r.EffectiveMode() == output.ModeMarkdown {
		r.Println("# Javadoc Tags")
		r.Println("")
		r.Println(t.RenderMarkdown())
		return nil
	}
	r.Println(r.Styles().Header1.Render("Javadoc Tags"))
	r.Println("")
	r.Println(t.Render())
	return nil
}

func showTag(r *output.Renderer, arg string) error {
	var (
		tag *javadoc.TagInfo
		err error
	)
	if strings.HasPrefix(arg, "@") || strings.HasPrefix(arg, "{") {
		tag, err = javadoc.FromText(arg)
	} else {
		tag, err = javadoc.FromName(arg)
	}
	if err != nil {
		return err
	}

	mode := r.EffectiveMode()
	if mode == output.ModeJSON {
		return r.JSON(tagJSON(tag))
	}
	r.Println(output.FormatKeyValue(mode, "Name", tag.Name()))
	r.Println(output.FormatKeyValue(mode, "Text", tag.Text()))
	r.Println(output.FormatKeyValue(mode, "Type", tag.Type().String()))
	return nil
}
