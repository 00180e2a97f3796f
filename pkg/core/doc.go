// Package core defines the shared language of the leapcheck system.
//
// This package contains:
//   - Severity levels shared by checks, reports and configuration
//   - Module metadata DTOs consumed by tooling (ModuleInfo)
//   - Run records persisted by the result cache (Run)
//
// The Golden Rule: pkg/core imports ONLY pkg/token and stdlib.
// All other packages depend on core, not the reverse.
package core
