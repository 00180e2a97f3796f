package lint

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"runtime"
	"slices"
	"strings"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/leapstack-labs/leapcheck/pkg/ast"
	"github.com/leapstack-labs/leapcheck/pkg/core"
)

// Parser turns source bytes into a File. It is the only producer of trees.
type Parser interface {
	Parse(ctx context.Context, path string, src []byte) (*ast.File, error)
}

// Cache remembers files that had no violations under a configuration.
type Cache interface {
	// Sync drops every entry recorded under a different config hash.
	Sync(ctx context.Context, configHash string) error
	IsClean(ctx context.Context, path, contentHash string) (bool, error)
	MarkClean(ctx context.Context, path, contentHash string) error
}

// Checker properties.
const (
	PropTabWidth        = "tabWidth"
	PropFileExtensions  = "fileExtensions"
	PropHaltOnException = "haltOnException"
)

// ExceptionKey is the message key of violations recorded for files that
// could not be checked.
const ExceptionKey = "general.exception"

var checkerKeys = []string{PropSeverity, PropTabWidth, PropFileExtensions, PropHaltOnException}

// Option configures a Checker.
type Option func(*Checker)

// WithParser sets the parser used by Run.
func WithParser(p Parser) Option {
	return func(c *Checker) { c.parser = p }
}

// WithCache enables skipping unchanged clean files.
func WithCache(cache Cache) Option {
	return func(c *Checker) { c.cache = cache }
}

// WithLogger sets the logger.
func WithLogger(l *slog.Logger) Option {
	return func(c *Checker) { c.logger = l }
}

// WithJobs sets how many files are processed concurrently.
func WithJobs(n int) Option {
	return func(c *Checker) {
		if n > 0 {
			c.jobs = n
		}
	}
}

// WithListeners adds audit listeners.
func WithListeners(ls ...AuditListener) Option {
	return func(c *Checker) { c.listeners = append(c.listeners, ls...) }
}

// Checker runs a configuration over files.
type Checker struct {
	cfg             *ModuleConfig
	severity        *core.Severity
	tabWidth        int
	extensions      []string
	haltOnException bool

	parser    Parser
	cache     Cache
	logger    *slog.Logger
	jobs      int
	listeners []AuditListener

	mu   sync.Mutex
	free [][]*TreeWalker
}

// NewChecker validates cfg completely, instantiating every module once, so
// configuration errors surface before any file is read.
func NewChecker(cfg *ModuleConfig, opts ...Option) (*Checker, error) {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	if cfg.Name != "" && cfg.Name != CheckerModule {
		return nil, fmt.Errorf("root module must be %s, got %q", CheckerModule, cfg.Name)
	}
	c := &Checker{
		cfg:             cfg.Clone(),
		tabWidth:        DefaultTabWidth,
		extensions:      []string{"java"},
		haltOnException: true,
		logger:          slog.Default(),
		jobs:            runtime.GOMAXPROCS(0),
	}
	for _, opt := range opts {
		opt(c)
	}
	if err := c.applyProperties(); err != nil {
		return nil, err
	}

	set, err := c.buildWalkers()
	if err != nil {
		return nil, err
	}
	c.free = append(c.free, set)
	return c, nil
}

func (c *Checker) applyProperties() error {
	if err := checkKeys(c.cfg, checkerKeys); err != nil {
		return err
	}
	props := Properties(c.cfg.Properties)
	if v, ok := props[PropSeverity]; ok {
		sev, ok := core.ParseSeverity(v)
		if !ok {
			return &PropertyError{Name: PropSeverity, Value: v}
		}
		c.severity = &sev
	}
	tabWidth, err := props.Int(PropTabWidth, DefaultTabWidth, 1)
	if err != nil {
		return err
	}
	c.tabWidth = tabWidth
	if _, ok := props[PropFileExtensions]; ok {
		c.extensions = nil
		for _, ext := range props.Strings(PropFileExtensions) {
			c.extensions = append(c.extensions, strings.ToLower(strings.TrimPrefix(ext, ".")))
		}
	}
	halt, err := props.Bool(PropHaltOnException, true)
	if err != nil {
		return err
	}
	c.haltOnException = halt
	return nil
}

func (c *Checker) buildWalkers() ([]*TreeWalker, error) {
	var set []*TreeWalker
	base := 0
	for i := range c.cfg.Modules {
		child := &c.cfg.Modules[i]
		if child.Name != TreeWalkerModule {
			return nil, &ConfigError{Module: child.Name, Err: &UnknownModuleError{Name: child.Name}}
		}
		w, err := BuildTreeWalker(child, WalkerDefaults{
			Severity:  c.severity,
			TabWidth:  c.tabWidth,
			OrderBase: base,
		})
		if err != nil {
			return nil, &ConfigError{Module: child.Name, Err: err}
		}
		base += len(child.Modules)
		set = append(set, w)
	}
	return set, nil
}

func (c *Checker) acquire() ([]*TreeWalker, error) {
	c.mu.Lock()
	if n := len(c.free); n > 0 {
		set := c.free[n-1]
		c.free = c.free[:n-1]
		c.mu.Unlock()
		return set, nil
	}
	c.mu.Unlock()
	return c.buildWalkers()
}

func (c *Checker) release(set []*TreeWalker) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.free = append(c.free, set)
}

// Config returns the configuration the checker was built from.
func (c *Checker) Config() *ModuleConfig { return c.cfg }

// TabWidth returns the configured tab width.
func (c *Checker) TabWidth() int { return c.tabWidth }

// Accepts reports whether path has one of the configured extensions.
func (c *Checker) Accepts(path string) bool {
	if len(c.extensions) == 0 {
		return true
	}
	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(path), "."))
	return slices.Contains(c.extensions, ext)
}

// CheckFile runs every walker over an already parsed file and returns the
// ordered violations.
func (c *Checker) CheckFile(file *ast.File) ([]Violation, error) {
	set, err := c.acquire()
	if err != nil {
		return nil, err
	}
	defer c.release(set)

	var vs []Violation
	for _, w := range set {
		out, err := w.Walk(file)
		if err != nil {
			return nil, err
		}
		vs = append(vs, out...)
	}
	return SortViolations(vs), nil
}

// Run reads, parses and checks every accepted path, several files at a
// time. The report does not depend on scheduling.
func (c *Checker) Run(ctx context.Context, paths []string) (*Report, error) {
	if c.parser == nil {
		return nil, errors.New("checker has no parser")
	}
	if c.cache != nil {
		if err := c.cache.Sync(ctx, c.cfg.Hash()); err != nil {
			return nil, fmt.Errorf("sync cache: %w", err)
		}
	}

	sink := NewSink()
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(c.jobs)
	for _, path := range paths {
		if !c.Accepts(path) {
			continue
		}
		g.Go(func() error {
			return c.process(gctx, path, sink)
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	report := sink.Report()
	Notify(report, c.listeners...)
	return report, nil
}

func (c *Checker) process(ctx context.Context, path string, sink *Sink) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	src, err := os.ReadFile(path)
	if err != nil {
		return c.fail(path, err, sink)
	}
	hash := ContentHash(src)

	if c.cache != nil {
		clean, err := c.cache.IsClean(ctx, path, hash)
		switch {
		case err != nil:
			c.logger.Warn("cache lookup failed", "path", path, "error", err)
		case clean:
			c.logger.Debug("unchanged since last clean run", "path", path)
			sink.Skip(path)
			return nil
		}
	}

	c.logger.Debug("checking file", "path", path)
	file, err := c.parser.Parse(ctx, path, src)
	if err != nil {
		return c.fail(path, err, sink)
	}
	vs, err := c.CheckFile(file)
	if err != nil {
		return c.fail(path, err, sink)
	}
	sink.Add(path, vs)

	if c.cache != nil && len(vs) == 0 {
		if err := c.cache.MarkClean(ctx, path, hash); err != nil {
			c.logger.Warn("cache update failed", "path", path, "error", err)
		}
	}
	return nil
}

func (c *Checker) fail(path string, err error, sink *Sink) error {
	msg := fmt.Sprintf("Exception was thrown while processing %s", path)
	if c.haltOnException {
		return fmt.Errorf("%s: %w", msg, err)
	}
	c.logger.Warn("file not checked", "path", path, "error", err)
	sink.Add(path, []Violation{{
		File:     path,
		Line:     1,
		Key:      ExceptionKey,
		Message:  msg + ": " + err.Error(),
		Severity: core.SeverityError,
		Module:   CheckerModule,
		order:    -1,
	}})
	sink.Fail(path, err)
	return nil
}

// ContentHash returns the hex SHA-256 of src.
func ContentHash(src []byte) string {
	sum := sha256.Sum256(src)
	return hex.EncodeToString(sum[:])
}
