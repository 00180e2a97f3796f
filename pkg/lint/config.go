package lint

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"maps"
	"slices"
)

// Well-known module names in a configuration tree.
const (
	CheckerModule    = "Checker"
	TreeWalkerModule = "TreeWalker"
)

// ModuleConfig is one node of the configuration tree: the root is the
// Checker, its children are TreeWalkers and their children are checks.
type ModuleConfig struct {
	Name       string            `json:"name" yaml:"name" koanf:"name"`
	Properties map[string]string `json:"properties,omitempty" yaml:"properties,omitempty" koanf:"properties"`
	Messages   map[string]string `json:"messages,omitempty" yaml:"messages,omitempty" koanf:"messages"`
	Modules    []ModuleConfig    `json:"modules,omitempty" yaml:"modules,omitempty" koanf:"modules"`
}

// NewModuleConfig creates an empty configuration node.
func NewModuleConfig(name string) *ModuleConfig {
	return &ModuleConfig{Name: name}
}

// Set records a property and returns c for chaining.
func (c *ModuleConfig) Set(key, value string) *ModuleConfig {
	if c.Properties == nil {
		c.Properties = make(map[string]string)
	}
	c.Properties[key] = value
	return c
}

// SetMessage overrides the template of a message key.
func (c *ModuleConfig) SetMessage(key, template string) *ModuleConfig {
	if c.Messages == nil {
		c.Messages = make(map[string]string)
	}
	c.Messages[key] = template
	return c
}

// Add appends child configurations and returns c.
func (c *ModuleConfig) Add(children ...*ModuleConfig) *ModuleConfig {
	for _, child := range children {
		c.Modules = append(c.Modules, *child)
	}
	return c
}

// Property returns a property value.
func (c *ModuleConfig) Property(key string) (string, bool) {
	v, ok := c.Properties[key]
	return v, ok
}

// Hash returns a stable digest of the whole tree. Results cached under one
// hash are invalid under another.
func (c *ModuleConfig) Hash() string {
	// encoding/json sorts map keys, so equal trees marshal identically
	data, err := json.Marshal(c)
	if err != nil {
		return ""
	}
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}

// Clone returns a deep copy.
func (c *ModuleConfig) Clone() *ModuleConfig {
	out := &ModuleConfig{
		Name:       c.Name,
		Properties: maps.Clone(c.Properties),
		Messages:   maps.Clone(c.Messages),
	}
	for i := range c.Modules {
		out.Modules = append(out.Modules, *c.Modules[i].Clone())
	}
	return out
}

// DefaultConfig builds a Checker -> TreeWalker tree holding every
// registered module marked Default, in name order.
func DefaultConfig() *ModuleConfig {
	walker := NewModuleConfig(TreeWalkerModule)
	for _, info := range All() {
		if info.Default {
			walker.Add(NewModuleConfig(info.Name))
		}
	}
	return NewModuleConfig(CheckerModule).Add(walker)
}

// checkKeys reports the first property of cfg not listed in allowed.
func checkKeys(cfg *ModuleConfig, allowed ...[]string) error {
	for _, key := range slices.Sorted(maps.Keys(cfg.Properties)) {
		known := false
		for _, set := range allowed {
			if slices.Contains(set, key) {
				known = true
				break
			}
		}
		if !known {
			return &UnknownPropertyError{Name: key}
		}
	}
	return nil
}
