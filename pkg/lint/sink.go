package lint

import (
	"cmp"
	"maps"
	"slices"
	"sync"

	"github.com/leapstack-labs/leapcheck/pkg/core"
)

// Sink collects violations from concurrent workers. Its output does not
// depend on the order in which files finish: files are sorted by path and
// each file's violations by line, column and module registration order,
// with exact duplicates removed.
type Sink struct {
	mu    sync.Mutex
	files map[string]*FileReport
}

// NewSink creates an empty sink.
func NewSink() *Sink {
	return &Sink{files: make(map[string]*FileReport)}
}

// Add records the violations of one file. Calling Add with no violations
// still records the file as checked.
func (s *Sink) Add(path string, vs []Violation) {
	s.mu.Lock()
	defer s.mu.Unlock()
	fr := s.file(path)
	for _, v := range vs {
		if v.Severity == core.SeverityIgnore {
			continue
		}
		fr.Violations = append(fr.Violations, v)
	}
}

// Skip records a file that was not checked because it is unchanged.
func (s *Sink) Skip(path string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.file(path).Skipped = true
}

// Fail records an error that stopped a file from being checked.
func (s *Sink) Fail(path string, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.file(path).Err = err
}

func (s *Sink) file(path string) *FileReport {
	fr, ok := s.files[path]
	if !ok {
		fr = &FileReport{Path: path}
		s.files[path] = fr
	}
	return fr
}

// Report returns the ordered, de-duplicated result.
func (s *Sink) Report() *Report {
	s.mu.Lock()
	defer s.mu.Unlock()

	r := &Report{Files: make([]FileReport, 0, len(s.files))}
	for _, path := range slices.Sorted(maps.Keys(s.files)) {
		fr := *s.files[path]
		fr.Violations = SortViolations(slices.Clone(fr.Violations))
		r.Files = append(r.Files, fr)
	}
	return r
}

// SortViolations orders vs in place by line, column, module registration
// order and message, drops exact duplicates, and returns the result.
func SortViolations(vs []Violation) []Violation {
	slices.SortStableFunc(vs, compareViolations)
	return slices.CompactFunc(vs, func(a, b Violation) bool {
		return compareViolations(a, b) == 0 && a.Key == b.Key && a.Module == b.Module && a.Severity == b.Severity
	})
}

func compareViolations(a, b Violation) int {
	return cmp.Or(
		cmp.Compare(a.File, b.File),
		cmp.Compare(a.Line, b.Line),
		cmp.Compare(a.Column, b.Column),
		cmp.Compare(a.order, b.order),
		cmp.Compare(a.Message, b.Message),
	)
}
