// Package fileset expands command-line arguments into the sorted list of
// source files a run should check.
package fileset

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
)

// Set describes which files to collect.
type Set struct {
	// Excludes are doublestar patterns matched against slash-separated
	// paths relative to the argument being walked, e.g. "**/generated".
	// A file argument is matched as given.
	Excludes []string
	// Accept filters regular files; nil accepts everything.
	Accept func(path string) bool
}

// Validate reports the first malformed exclude pattern.
func (s Set) Validate() error {
	for _, p := range s.Excludes {
		if !doublestar.ValidatePattern(p) {
			return fmt.Errorf("invalid exclude pattern %q", p)
		}
	}
	return nil
}

// Collect resolves each argument, which may be a file, a directory walked
// recursively, or a glob, into a deduplicated sorted file list. Hidden
// directories below an argument are not entered.
func (s Set) Collect(args []string) ([]string, error) {
	if err := s.Validate(); err != nil {
		return nil, err
	}

	seen := make(map[string]bool)
	var files []string
	add := func(path, rel string) {
		path = filepath.Clean(path)
		if seen[path] || s.excluded(rel) {
			return
		}
		if s.Accept != nil && !s.Accept(path) {
			return
		}
		seen[path] = true
		files = append(files, path)
	}

	for _, arg := range args {
		paths, err := expand(arg)
		if err != nil {
			return nil, err
		}
		for _, p := range paths {
			if err := s.walk(p, add); err != nil {
				return nil, err
			}
		}
	}
	slices.Sort(files)
	return files, nil
}

func (s Set) walk(root string, add func(path, rel string)) error {
	info, err := os.Stat(root)
	if err != nil {
		return fmt.Errorf("failed to stat %s: %w", root, err)
	}
	if !info.IsDir() {
		add(root, root)
		return nil
	}
	return filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		rel, err := filepath.Rel(root, path)
		if err != nil {
			return err
		}
		if d.IsDir() {
			if path != root && (strings.HasPrefix(d.Name(), ".") || s.excluded(rel)) {
				return filepath.SkipDir
			}
			return nil
		}
		if d.Type().IsRegular() {
			add(path, rel)
		}
		return nil
	})
}

func (s Set) excluded(path string) bool {
	slashed := filepath.ToSlash(filepath.Clean(path))
	for _, p := range s.Excludes {
		if ok, _ := doublestar.Match(p, slashed); ok {
			return true
		}
	}
	return false
}

func expand(arg string) ([]string, error) {
	if !containsGlob(arg) {
		return []string{arg}, nil
	}
	matches, err := doublestar.FilepathGlob(arg)
	if err != nil {
		return nil, fmt.Errorf("glob error: %w", err)
	}
	if len(matches) == 0 {
		return nil, fmt.Errorf("no files match pattern: %s", arg)
	}
	return matches, nil
}

func containsGlob(pattern string) bool {
	return strings.ContainsAny(pattern, "*?[{")
}
