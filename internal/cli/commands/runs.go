package commands

import (
	"errors"
	"fmt"
	"time"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/leapstack-labs/leapcheck/internal/cli/output"
	"github.com/leapstack-labs/leapcheck/pkg/core"
)

const defaultRunsLimit = 10

// errCacheDisabled is returned by commands that read the cache when
// no_cache is set.
var errCacheDisabled = errors.New("the cache is disabled (no_cache), so no run history is recorded")

// RunsOptions holds options for the runs command.
type RunsOptions struct {
	Limit  int
	Format string
}

// NewRunsCommand creates the runs command.
func NewRunsCommand() *cobra.Command {
	opts := &RunsOptions{}
	cmd := &cobra.Command{
		Use:   "runs",
		Short: "Show recent check runs",
		Long: `Show the run history recorded in the cache database.

Every check run records when it started, the configuration it ran with,
how many files were checked or skipped and how many violations it found.`,
		Example: `  # Last ten runs
  leapcheck runs

  # Last run as JSON
  leapcheck runs -n 1 --format json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return listRuns(cmd, opts)
		},
	}

	cmd.Flags().IntVarP(&opts.Limit, "limit", "n", defaultRunsLimit, "Number of runs to show")
	cmd.Flags().StringVarP(&opts.Format, "format", "f", "", "Output format: text, markdown, json")
	return cmd
}

func listRuns(cmd *cobra.Command, opts *RunsOptions) error {
	cmdCtx := NewCommandContext(cmd)
	r, err := renderer(cmd, cmdCtx.Renderer, opts.Format)
	if err != nil {
		return err
	}
	if cmdCtx.Cfg.NoCache {
		return errCacheDisabled
	}
	if opts.Limit <= 0 {
		return fmt.Errorf("limit must be positive, got %d", opts.Limit)
	}

	store, err := openCache(cmd.Context(), cmdCtx.Cfg.CachePath, cmdCtx.Logger)
	if err != nil {
		return err
	}
	defer func() { _ = store.Close() }()

	runs, err := store.Runs(cmd.Context(), opts.Limit)
	if err != nil {
		return err
	}

	mode := r.EffectiveMode()
	if mode == output.ModeJSON {
		if runs == nil {
			runs = []core.Run{}
		}
		return r.JSON(runs)
	}
	if len(runs) == 0 {
		r.Muted("No runs recorded yet")
		return nil
	}

	t := table.NewWriter()
	t.SetStyle(table.StyleLight)
	t.AppendHeader(table.Row{"Run", "Started", "Status", "Files", "Skipped", "Violations", "Duration"})
	for _, run := range runs {
		t.AppendRow(table.Row{
			shortID(run.ID),
			run.StartedAt.Local().Format(time.DateTime),
			run.Status,
			run.Files,
			run.Skipped,
			run.Violations,
			runDuration(run),
		})
	}

	if mode == output.ModeMarkdown {
		r.Header("Runs")
		r.Println(t.RenderMarkdown())
		return nil
	}
	r.Println(r.Styles().Header1.Render("Runs"))
	r.Println("")
	r.Println(t.Render())
	return nil
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

func runDuration(run core.Run) string {
	if run.CompletedAt == nil {
		return "-"
	}
	return run.CompletedAt.Sub(run.StartedAt).Round(time.Millisecond).String()
}
