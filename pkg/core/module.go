package core

// =============================================================================
// ModuleInfo
// =============================================================================

// ModuleInfo provides metadata about a check module for documentation/tooling.
// This is a DTO (Data Transfer Object) - it carries data without behavior.
type ModuleInfo struct {
	Name            string   `json:"name"`
	Group           string   `json:"group"`
	Description     string   `json:"description"`
	DefaultSeverity Severity `json:"default_severity"`
	ConfigKeys      []string `json:"config_keys,omitempty"`
	MessageKeys     []string `json:"message_keys,omitempty"`

	// Token interest, by configuration name
	DefaultTokens    []string `json:"default_tokens"`
	AcceptableTokens []string `json:"acceptable_tokens"`
	RequiredTokens   []string `json:"required_tokens"`

	// Documentation fields
	Rationale   string `json:"rationale,omitempty"`
	BadExample  string `json:"bad_example,omitempty"`
	GoodExample string `json:"good_example,omitempty"`
}
