package lint

import (
	"maps"
	"slices"
	"strings"
	"sync"

	"github.com/leapstack-labs/leapcheck/pkg/core"
	"github.com/leapstack-labs/leapcheck/pkg/token"
)

// Factory builds a module from its own properties. Properties common to
// every module (severity, id, tokens) are applied by the framework and are
// never passed in.
type Factory func(props Properties) (Check, error)

// ModuleInfo describes a registered check module.
type ModuleInfo struct {
	Name            string            // Configuration name, e.g. "EmptyForInitializerPad"
	Group           string            // Category, e.g. "whitespace", "javadoc"
	Description     string            // Human-readable description
	DefaultSeverity core.Severity     // Used when no ancestor configures a severity
	ConfigKeys      []string          // Module-specific property names
	Messages        map[string]string // Message key -> fmt template
	Default         bool              // Included in generated configurations
	New             Factory

	// Documentation fields for richer module documentation
	Rationale   string
	BadExample  string
	GoodExample string
}

// Common properties every module accepts.
const (
	PropSeverity = "severity"
	PropID       = "id"
	PropTokens   = "tokens"
)

var commonKeys = []string{PropSeverity, PropID, PropTokens}

// globalRegistry is the single global registry for all check modules.
var globalRegistry = &Registry{
	modules: make(map[string]ModuleInfo),
}

// Registry stores registered modules for discovery.
type Registry struct {
	mu      sync.RWMutex
	modules map[string]ModuleInfo // keyed by Name
}

// Register adds a module to the global registry.
// Call this from init() functions in check packages.
func Register(info ModuleInfo) {
	globalRegistry.mu.Lock()
	defer globalRegistry.mu.Unlock()
	globalRegistry.modules[info.Name] = info
}

// Lookup finds a module by configuration name. A trailing "Check" suffix
// is accepted, so "RightCurlyCheck" finds "RightCurly".
func Lookup(name string) (ModuleInfo, bool) {
	globalRegistry.mu.RLock()
	defer globalRegistry.mu.RUnlock()
	if info, ok := globalRegistry.modules[name]; ok {
		return info, true
	}
	info, ok := globalRegistry.modules[strings.TrimSuffix(name, "Check")]
	return info, ok
}

// All returns every registered module sorted by name.
func All() []ModuleInfo {
	globalRegistry.mu.RLock()
	defer globalRegistry.mu.RUnlock()

	out := make([]ModuleInfo, 0, len(globalRegistry.modules))
	for _, name := range slices.Sorted(maps.Keys(globalRegistry.modules)) {
		out = append(out, globalRegistry.modules[name])
	}
	return out
}

// ByGroup returns the modules of one group sorted by name.
func ByGroup(group string) []ModuleInfo {
	var out []ModuleInfo
	for _, info := range All() {
		if info.Group == group {
			out = append(out, info)
		}
	}
	return out
}

// Count returns the number of registered modules.
func Count() int {
	globalRegistry.mu.RLock()
	defer globalRegistry.mu.RUnlock()
	return len(globalRegistry.modules)
}

// Unregister removes a module. Used for testing.
func Unregister(name string) {
	globalRegistry.mu.Lock()
	defer globalRegistry.mu.Unlock()
	delete(globalRegistry.modules, name)
}

// Describe instantiates the module with default properties and reports
// its metadata and token sets.
func (m ModuleInfo) Describe() (core.ModuleInfo, error) {
	out := core.ModuleInfo{
		Name:            m.Name,
		Group:           m.Group,
		Description:     m.Description,
		DefaultSeverity: m.DefaultSeverity,
		ConfigKeys:      m.ConfigKeys,
		MessageKeys:     slices.Sorted(maps.Keys(m.Messages)),
		Rationale:       m.Rationale,
		BadExample:      m.BadExample,
		GoodExample:     m.GoodExample,
	}
	check, err := m.New(Properties{})
	if err != nil {
		// Modules with required properties cannot report token sets.
		return out, err
	}
	out.DefaultTokens = tokenNames(check.DefaultTokens())
	out.AcceptableTokens = tokenNames(check.AcceptableTokens())
	out.RequiredTokens = tokenNames(check.RequiredTokens())
	return out, nil
}

func tokenNames(tokens []token.TokenType) []string {
	out := make([]string, 0, len(tokens))
	for _, t := range tokens {
		out = append(out, t.String())
	}
	return out
}
