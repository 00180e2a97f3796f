package lint

import (
	"fmt"
	"maps"
	"slices"

	"github.com/leapstack-labs/leapcheck/pkg/ast"
	"github.com/leapstack-labs/leapcheck/pkg/core"
	"github.com/leapstack-labs/leapcheck/pkg/token"
)

// WalkerState is the traversal state of a TreeWalker.
type WalkerState int

// Walker states. A walker moves Idle -> Traversing -> Done for each file
// and may start again from Done.
const (
	WalkerIdle WalkerState = iota
	WalkerTraversing
	WalkerDone
)

func (s WalkerState) String() string {
	switch s {
	case WalkerIdle:
		return "idle"
	case WalkerTraversing:
		return "traversing"
	case WalkerDone:
		return "done"
	default:
		return "unknown"
	}
}

// DefaultTabWidth is the tab width used when none is configured.
const DefaultTabWidth = 8

// WalkerDefaults are the settings a walker inherits from its Checker.
type WalkerDefaults struct {
	Severity  *core.Severity // nil: each module's DefaultSeverity
	TabWidth  int
	OrderBase int // registration order of the walker's first module
}

// TreeWalker drives one traversal per file over its registered checks.
// It is not safe for concurrent use; the Checker pools walkers so that a
// module instance only ever sees one file at a time.
type TreeWalker struct {
	checks   []Check
	dispatch map[token.TokenType][]Check
	state    WalkerState
	tabWidth int
	severity *core.Severity
	next     int
}

// NewTreeWalker returns a walker with no checks.
func NewTreeWalker(defaults WalkerDefaults) *TreeWalker {
	tabWidth := defaults.TabWidth
	if tabWidth <= 0 {
		tabWidth = DefaultTabWidth
	}
	return &TreeWalker{
		dispatch: make(map[token.TokenType][]Check),
		tabWidth: tabWidth,
		severity: defaults.Severity,
		next:     defaults.OrderBase,
	}
}

// BuildTreeWalker creates a walker from a TreeWalker configuration node,
// instantiating and registering its children in order. Errors for a child
// are wrapped in a *ConfigError naming it.
func BuildTreeWalker(cfg *ModuleConfig, defaults WalkerDefaults) (*TreeWalker, error) {
	if err := checkKeys(cfg, []string{PropSeverity, "tabWidth"}); err != nil {
		return nil, err
	}
	props := Properties(cfg.Properties)
	if v, ok := props[PropSeverity]; ok {
		sev, ok := core.ParseSeverity(v)
		if !ok {
			return nil, &PropertyError{Name: PropSeverity, Value: v}
		}
		defaults.Severity = &sev
	}
	tabWidth, err := props.Int("tabWidth", defaults.TabWidth, 1)
	if err != nil {
		return nil, err
	}
	defaults.TabWidth = tabWidth

	w := NewTreeWalker(defaults)
	for i := range cfg.Modules {
		child := &cfg.Modules[i]
		if err := w.configure(child); err != nil {
			return nil, &ConfigError{Module: child.Name, Err: err}
		}
	}
	return w, nil
}

func (w *TreeWalker) configure(cfg *ModuleConfig) error {
	info, ok := Lookup(cfg.Name)
	if !ok {
		return &UnknownModuleError{Name: cfg.Name}
	}
	if err := checkKeys(cfg, commonKeys, info.ConfigKeys); err != nil {
		return err
	}

	own := make(Properties, len(cfg.Properties))
	for k, v := range cfg.Properties {
		if !slices.Contains(commonKeys, k) {
			own[k] = v
		}
	}
	check, err := info.New(own)
	if err != nil {
		return err
	}

	b := check.base()
	b.name = info.Name
	b.id = info.Name
	if id, ok := cfg.Properties[PropID]; ok && id != "" {
		b.id = id
	}
	b.severity = info.DefaultSeverity
	if w.severity != nil {
		b.severity = *w.severity
	}
	if v, ok := cfg.Properties[PropSeverity]; ok {
		sev, ok := core.ParseSeverity(v)
		if !ok {
			return &PropertyError{Name: PropSeverity, Value: v}
		}
		b.severity = sev
	}
	b.messages = maps.Clone(info.Messages)
	if b.messages == nil {
		b.messages = make(map[string]string)
	}
	maps.Copy(b.messages, cfg.Messages)

	var configured []token.TokenType
	if v, ok := cfg.Properties[PropTokens]; ok {
		for _, name := range SplitList(v) {
			t, ok := token.ParseTokenType(name)
			if !ok {
				return &PropertyError{Name: PropTokens, Value: v, Err: fmt.Errorf("unknown token %q", name)}
			}
			configured = append(configured, t)
		}
	}
	return w.register(check, configured)
}

// Add registers an already constructed check under id. With no tokens
// the check's defaults are used. Messages and default severity come from
// the registry when id names a registered module.
func (w *TreeWalker) Add(id string, check Check, tokens ...token.TokenType) error {
	b := check.base()
	b.id, b.name = id, id
	b.severity = core.SeverityError
	if info, ok := Lookup(id); ok {
		b.name = info.Name
		b.severity = info.DefaultSeverity
		b.messages = maps.Clone(info.Messages)
	}
	if w.severity != nil {
		b.severity = *w.severity
	}
	return w.register(check, tokens)
}

func (w *TreeWalker) register(check Check, configured []token.TokenType) error {
	b := check.base()
	defaults := check.DefaultTokens()
	acceptable := check.AcceptableTokens()
	required := check.RequiredTokens()

	for _, t := range required {
		if !slices.Contains(defaults, t) {
			return fmt.Errorf("Token \"%s\" from required tokens was not found in default tokens list in check %s", t, b.name) //nolint:staticcheck // message shape is part of the configuration contract
		}
	}
	for _, t := range defaults {
		if !slices.Contains(acceptable, t) {
			return fmt.Errorf("Token \"%s\" from default tokens was not found in acceptable tokens list in check %s", t, b.name) //nolint:staticcheck // see above
		}
	}

	active := defaults
	if len(configured) > 0 {
		active = nil
		for _, t := range configured {
			if !slices.Contains(acceptable, t) {
				return fmt.Errorf("Token \"%s\" was not found in Acceptable tokens list in check %s", t, b.name) //nolint:staticcheck // see above
			}
			if !slices.Contains(active, t) {
				active = append(active, t)
			}
		}
		for _, t := range required {
			if !slices.Contains(active, t) {
				active = append(active, t)
			}
		}
	}

	b.tokens = slices.Clone(active)
	b.tabWidth = w.tabWidth
	b.order = w.next
	w.next++

	w.checks = append(w.checks, check)
	for _, t := range b.tokens {
		w.dispatch[t] = append(w.dispatch[t], check)
	}
	return nil
}

// Checks returns the registered checks in registration order.
func (w *TreeWalker) Checks() []Check {
	return slices.Clone(w.checks)
}

// State returns the traversal state.
func (w *TreeWalker) State() WalkerState {
	return w.state
}

// Walk runs every check over file and returns what they logged, in
// emission order. A check that panics aborts the file with an error.
func (w *TreeWalker) Walk(file *ast.File) (vs []Violation, err error) {
	if w.state == WalkerTraversing {
		return nil, ErrWalkerBusy
	}
	if file == nil {
		return nil, ErrNilFile
	}
	w.state = WalkerTraversing
	defer func() {
		if r := recover(); r != nil {
			for _, c := range w.checks {
				c.base().endFile()
			}
			vs, err = nil, fmt.Errorf("check failed on %s: %v", file.Path(), r)
		}
		w.state = WalkerDone
	}()

	root := file.Root()
	for _, c := range w.checks {
		c.base().startFile(file)
		c.BeginTree(root)
	}
	if root != nil {
		w.traverse(root)
	}
	for _, c := range w.checks {
		c.FinishTree(root)
	}
	for _, c := range w.checks {
		vs = append(vs, c.base().endFile()...)
	}
	return vs, nil
}

// traverse visits root's subtree depth first without recursion, calling
// VisitToken before a node's children and LeaveToken after them.
func (w *TreeWalker) traverse(root *ast.Node) {
	cur := root
	for cur != nil {
		w.notifyVisit(cur)
		next := cur.FirstChild()
		for cur != nil && next == nil {
			w.notifyLeave(cur)
			if cur == root {
				cur = nil
				break
			}
			next = cur.NextSibling()
			cur = cur.Parent()
		}
		cur = next
	}
}

func (w *TreeWalker) notifyVisit(n *ast.Node) {
	for _, c := range w.dispatch[n.Kind()] {
		c.VisitToken(n)
	}
}

func (w *TreeWalker) notifyLeave(n *ast.Node) {
	for _, c := range w.dispatch[n.Kind()] {
		c.LeaveToken(n)
	}
}
