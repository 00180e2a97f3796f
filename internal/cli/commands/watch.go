package commands

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
	"golang.org/x/sync/errgroup"

	"github.com/leapstack-labs/leapcheck/pkg/lint"
)

const watchDebounce = 100 * time.Millisecond

// serveAndWatch runs watch alongside the metrics server when one is
// configured. Either failing stops both.
func (s *session) serveAndWatch(ctx context.Context, args []string, render func(*lint.Report)) error {
	if s.cfg.MetricsAddr == "" || s.metrics == nil {
		return s.watch(ctx, args, render)
	}

	eg, egctx := errgroup.WithContext(ctx)
	eg.Go(func() error {
		return s.metrics.Serve(egctx, s.cfg.MetricsAddr, s.logger)
	})
	eg.Go(func() error {
		err := s.watch(egctx, args, render)
		if err == nil {
			// watch returns nil on cancellation; make sure the server stops too
			return context.Canceled
		}
		return err
	})

	if err := eg.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}

// watch runs a check, then re-runs it whenever an accepted file below the
// watched roots changes, until ctx is cancelled. Failed runs are logged
// and do not stop watching.
func (s *session) watch(ctx context.Context, args []string, render func(*lint.Report)) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create watcher: %w", err)
	}
	defer func() { _ = watcher.Close() }()

	for _, root := range watchRoots(args) {
		if err := addWatchDir(watcher, root); err != nil {
			return fmt.Errorf("failed to watch %s: %w", root, err)
		}
	}

	rerun := func() {
		report, err := s.check(ctx, args)
		if err != nil {
			s.logger.Error("check failed", "error", err)
			return
		}
		render(report)
	}
	rerun()

	trigger := make(chan struct{}, 1)
	var debounceTimer *time.Timer
	defer func() {
		if debounceTimer != nil {
			debounceTimer.Stop()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Remove|fsnotify.Rename) == 0 {
				continue
			}
			if event.Op&fsnotify.Create != 0 {
				if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
					if err := addWatchDir(watcher, event.Name); err != nil {
						s.logger.Warn("failed to watch new directory", "path", event.Name, "error", err)
					}
					continue
				}
			}
			if !s.checker.Accepts(event.Name) {
				continue
			}
			s.logger.Debug("change detected", "path", event.Name, "op", event.Op.String())

			if debounceTimer != nil {
				debounceTimer.Stop()
			}
			debounceTimer = time.AfterFunc(watchDebounce, func() {
				select {
				case trigger <- struct{}{}:
				default:
				}
			})

		case <-trigger:
			rerun()

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			s.logger.Warn("watcher error", "error", err)
		}
	}
}

// watchRoots maps check arguments to directories: directories as given,
// files to their parent, globs to the directory before the first
// wildcard.
func watchRoots(args []string) []string {
	seen := make(map[string]bool)
	var roots []string
	for _, arg := range args {
		dir := arg
		if i := strings.IndexAny(arg, "*?[{"); i >= 0 {
			dir = filepath.Dir(arg[:i] + "x")
		} else if info, err := os.Stat(arg); err == nil && !info.IsDir() {
			dir = filepath.Dir(arg)
		}
		dir = filepath.Clean(dir)
		if !seen[dir] {
			seen[dir] = true
			roots = append(roots, dir)
		}
	}
	return roots
}

// addWatchDir recursively adds a directory to the watcher, skipping hidden
// directories.
func addWatchDir(watcher *fsnotify.Watcher, dir string) error {
	return filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			return nil
		}
		if path != dir && strings.HasPrefix(d.Name(), ".") {
			return filepath.SkipDir
		}
		return watcher.Add(path)
	})
}
