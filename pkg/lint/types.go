package lint

import (
	"github.com/leapstack-labs/leapcheck/pkg/core"
)

// Violation is one finding. Columns are 1-based display columns with tabs
// expanded; 0 means the finding applies to the whole line.
type Violation struct {
	File     string        `json:"file"`
	Line     int           `json:"line"`
	Column   int           `json:"column"`
	Key      string        `json:"key"`
	Message  string        `json:"message"`
	Severity core.Severity `json:"severity"`
	Module   string        `json:"module"`

	order int // registration order of the emitting module
}

// Order returns the registration order of the module that emitted v.
func (v Violation) Order() int { return v.order }

// FileReport holds the ordered findings for one file.
type FileReport struct {
	Path       string      `json:"path"`
	Violations []Violation `json:"violations"`
	Skipped    bool        `json:"skipped,omitempty"` // unchanged and clean in the cache
	Err        error       `json:"-"`
}

// Report is the outcome of one checker run, ordered by file path.
type Report struct {
	Files []FileReport `json:"files"`
}

// Violations flattens the report in order.
func (r *Report) Violations() []Violation {
	var out []Violation
	for _, f := range r.Files {
		out = append(out, f.Violations...)
	}
	return out
}

// Count returns how many violations have severity s.
func (r *Report) Count(s core.Severity) int {
	n := 0
	for _, f := range r.Files {
		for _, v := range f.Violations {
			if v.Severity == s {
				n++
			}
		}
	}
	return n
}

// HasErrors reports whether any error-severity violation was found.
func (r *Report) HasErrors() bool {
	return r.Count(core.SeverityError) > 0
}

// SkippedCount returns how many files were skipped as unchanged.
func (r *Report) SkippedCount() int {
	n := 0
	for _, f := range r.Files {
		if f.Skipped {
			n++
		}
	}
	return n
}
