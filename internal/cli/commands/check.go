package commands

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/leapstack-labs/leapcheck/internal/cache"
	"github.com/leapstack-labs/leapcheck/internal/cli/config"
	"github.com/leapstack-labs/leapcheck/internal/cli/output"
	"github.com/leapstack-labs/leapcheck/internal/fileset"
	"github.com/leapstack-labs/leapcheck/internal/metrics"
	"github.com/leapstack-labs/leapcheck/internal/parser/java"
	"github.com/leapstack-labs/leapcheck/pkg/core"
	"github.com/leapstack-labs/leapcheck/pkg/lint"
	_ "github.com/leapstack-labs/leapcheck/pkg/lint/checks" // register built-in checks
)

// ErrViolations is returned when a run found error-severity violations.
// The process exits with status 1 without printing it.
var ErrViolations = errors.New("violations found")

// CheckOptions holds options for the check command that are not part of
// the configuration file.
type CheckOptions struct {
	Format string // Output format override
	Watch  bool   // Re-run on file changes
}

// NewCheckCommand creates the check command.
func NewCheckCommand() *cobra.Command {
	opts := &CheckOptions{}
	cmd := &cobra.Command{
		Use:   "check [paths...]",
		Short: "Check Java sources",
		Long: `Run the configured checks over Java source files.

Paths may be files, directories (walked recursively) or glob patterns and
default to the current directory. Files that were clean under the same
configuration and have not changed since are skipped using the cache.

Output adapts to environment:
  - Terminal: Styled output with colors
  - Piped/Scripted: Markdown format
  - JSON: Machine-readable format

Exits with status 1 when any error-severity violation is found.`,
		Example: `  # Check the current directory
  leapcheck check

  # Check specific paths with an explicit configuration
  leapcheck check --config leapcheck.yaml src/main/java

  # Ignore generated code and the cache
  leapcheck check --exclude '**/generated/**' --no-cache

  # Re-run on every change
  leapcheck check --watch src

  # Export Prometheus metrics for the node exporter
  leapcheck check --metrics-file /var/lib/node_exporter/leapcheck.prom

  # Serve Prometheus metrics while watching
  leapcheck check --watch --metrics-addr localhost:9464 src`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCheck(cmd, args, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.Format, "format", "f", "", "Output format: auto, text, markdown, json")
	cmd.Flags().BoolVarP(&opts.Watch, "watch", "w", false, "Watch paths and re-run on changes")
	cmd.Flags().IntP("jobs", "j", 0, "Files checked concurrently (default: one per CPU)")
	cmd.Flags().Bool("no-cache", false, "Check every file, ignoring and not updating the cache")
	cmd.Flags().String("cache", "", "Path to the cache database")
	cmd.Flags().String("metrics-file", "", "Write Prometheus metrics to this file after each run")
	cmd.Flags().String("metrics-addr", "", "Serve Prometheus metrics on this address in watch mode")
	cmd.Flags().StringSlice("exclude", nil, "Doublestar patterns of paths to skip")

	_ = cmd.RegisterFlagCompletionFunc("format", func(_ *cobra.Command, _ []string, _ string) ([]string, cobra.ShellCompDirective) {
		return output.Modes(), cobra.ShellCompDirectiveNoFileComp
	})

	return cmd
}

func runCheck(cmd *cobra.Command, args []string, opts *CheckOptions) error {
	cmdCtx := NewCommandContext(cmd)
	r, err := renderer(cmd, cmdCtx.Renderer, opts.Format)
	if err != nil {
		return err
	}
	if len(args) == 0 {
		args = []string{"."}
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	s, err := newSession(ctx, cmdCtx.Cfg, cmdCtx.Logger)
	if err != nil {
		return err
	}
	defer s.Close()

	if opts.Watch {
		return s.serveAndWatch(ctx, args, func(report *lint.Report) {
			renderReport(r, report)
		})
	}
	if cmdCtx.Cfg.MetricsAddr != "" {
		cmdCtx.Logger.Debug("metrics_addr is only served in watch mode", "addr", cmdCtx.Cfg.MetricsAddr)
	}

	report, err := s.check(ctx, args)
	if err != nil {
		return err
	}
	renderReport(r, report)
	if report.HasErrors() {
		return ErrViolations
	}
	return nil
}

// session owns everything one invocation of check needs across runs.
type session struct {
	cfg     *config.Config
	logger  *slog.Logger
	checker *lint.Checker
	store   *cache.Store
	metrics *metrics.Listener
	files   fileset.Set
}

func newSession(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*session, error) {
	s := &session{cfg: cfg, logger: logger}
	opts := []lint.Option{
		lint.WithParser(java.New()),
		lint.WithLogger(logger),
		lint.WithJobs(cfg.Jobs),
	}

	if cfg.MetricsPath != "" || cfg.MetricsAddr != "" {
		s.metrics = metrics.NewListener()
		opts = append(opts, lint.WithListeners(s.metrics))
	}

	if !cfg.NoCache {
		store, err := openCache(ctx, cfg.CachePath, logger)
		if err != nil {
			return nil, err
		}
		s.store = store
		opts = append(opts, lint.WithCache(store))
	}

	checker, err := lint.NewChecker(cfg.CheckerConfig(), opts...)
	if err != nil {
		s.Close()
		return nil, err
	}
	s.checker = checker
	s.files = fileset.Set{Excludes: cfg.Excludes, Accept: checker.Accepts}
	return s, nil
}

func openCache(ctx context.Context, path string, logger *slog.Logger) (*cache.Store, error) {
	if path == "" {
		path = config.DefaultCachePath
	}
	if path != ":memory:" {
		if dir := filepath.Dir(path); dir != "." && dir != "" {
			if err := os.MkdirAll(dir, 0o750); err != nil {
				return nil, fmt.Errorf("failed to create cache directory: %w", err)
			}
		}
	}
	store, err := cache.Open(ctx, path, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to open cache %s: %w", path, err)
	}
	return store, nil
}

// Close releases the cache.
func (s *session) Close() {
	if s.store != nil {
		if err := s.store.Close(); err != nil {
			s.logger.Warn("failed to close cache", "error", err)
		}
	}
}

// check collects files and runs the checker once, recording the run in
// the cache and exporting metrics when configured.
func (s *session) check(ctx context.Context, args []string) (*lint.Report, error) {
	paths, err := s.files.Collect(args)
	if err != nil {
		return nil, err
	}
	s.logger.Debug("collected files", "count", len(paths))

	var run *core.Run
	if s.store != nil {
		run, err = s.store.BeginRun(ctx, s.checker.Config().Hash())
		if err != nil {
			s.logger.Warn("failed to record run", "error", err)
			run = nil
		}
	}

	report, runErr := s.checker.Run(ctx, paths)

	if run != nil {
		if err := s.store.FinishRun(ctx, run, report, runErr); err != nil {
			s.logger.Warn("failed to record run", "error", err)
		}
	}
	if runErr != nil {
		return nil, runErr
	}

	if s.metrics != nil && s.cfg.MetricsPath != "" {
		if err := s.metrics.WriteTextfile(s.cfg.MetricsPath); err != nil {
			return nil, err
		}
	}
	return report, nil
}

// CheckOutput is the JSON output structure of the check command.
type CheckOutput struct {
	Summary CheckSummary      `json:"summary"`
	Files   []lint.FileReport `json:"files"`
}

// CheckSummary counts the results of one run.
type CheckSummary struct {
	Files      int `json:"files"`
	Skipped    int `json:"skipped"`
	Violations int `json:"violations"`
	Errors     int `json:"errors"`
	Warnings   int `json:"warnings"`
	Info       int `json:"info"`
}

func summarize(report *lint.Report) CheckSummary {
	return CheckSummary{
		Files:      len(report.Files),
		Skipped:    report.SkippedCount(),
		Violations: len(report.Violations()),
		Errors:     report.Count(core.SeverityError),
		Warnings:   report.Count(core.SeverityWarning),
		Info:       report.Count(core.SeverityInfo),
	}
}

func renderReport(r *output.Renderer, report *lint.Report) {
	summary := summarize(report)

	switch r.EffectiveMode() {
	case output.ModeJSON:
		files := make([]lint.FileReport, 0, len(report.Files))
		for _, f := range report.Files {
			if f.Violations == nil {
				f.Violations = []lint.Violation{}
			}
			files = append(files, f)
		}
		_ = r.JSON(CheckOutput{Summary: summary, Files: files})
		return
	case output.ModeMarkdown:
		renderReportMarkdown(r, report)
	default:
		renderReportText(r, report)
	}

	if summary.Violations == 0 {
		r.Success(fmt.Sprintf("No violations found in %d files", summary.Files))
		return
	}
	r.Printf("Summary: %s in %d files\n", summaryParts(summary), summary.Files)
}

func renderReportText(r *output.Renderer, report *lint.Report) {
	styles := r.Styles()
	for _, f := range report.Files {
		if len(f.Violations) == 0 {
			continue
		}
		r.Println(styles.FilePath.Render(f.Path))
		for _, v := range f.Violations {
			r.Printf("  %s  %s  %s  %s\n",
				styles.Location.Render(fmt.Sprintf("%-7s", location(v))),
				severityLabel(r, v.Severity),
				styles.Bold.Render(v.Module),
				v.Message,
			)
		}
		r.Println("")
	}
}

func renderReportMarkdown(r *output.Renderer, report *lint.Report) {
	r.Header("leapcheck")
	for _, f := range report.Files {
		if len(f.Violations) == 0 {
			continue
		}
		r.Printf("## %s\n\n", f.Path)
		for _, v := range f.Violations {
			r.Printf("- `%s` **%s** `%s` %s\n", location(v), v.Severity, v.Module, v.Message)
		}
		r.Println("")
	}
}

func location(v lint.Violation) string {
	if v.Column == 0 {
		return fmt.Sprintf("%d", v.Line)
	}
	return fmt.Sprintf("%d:%d", v.Line, v.Column)
}

func summaryParts(s CheckSummary) string {
	parts := []string{fmt.Sprintf("%d violations", s.Violations)}
	if s.Errors > 0 {
		parts = append(parts, fmt.Sprintf("%d errors", s.Errors))
	}
	if s.Warnings > 0 {
		parts = append(parts, fmt.Sprintf("%d warnings", s.Warnings))
	}
	if s.Info > 0 {
		parts = append(parts, fmt.Sprintf("%d info", s.Info))
	}
	out := strings.Join(parts, ", ")
	if s.Skipped > 0 {
		out += fmt.Sprintf(" (%d unchanged files skipped)", s.Skipped)
	}
	return out
}

func severityLabel(r *output.Renderer, sev core.Severity) string {
	styles := r.Styles()
	switch sev {
	case core.SeverityError:
		return styles.Error.Render("error  ")
	case core.SeverityWarning:
		return styles.Warning.Render("warning")
	case core.SeverityInfo:
		return styles.Info.Render("info   ")
	default:
		return styles.Muted.Render(fmt.Sprintf("%-7s", sev))
	}
}
