package lint

import (
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leapstack-labs/leapcheck/pkg/core"
)

func v(file string, line, col, order int, msg string) Violation {
	return Violation{File: file, Line: line, Column: col, Message: msg, Key: msg, Module: fmt.Sprint("m", order), order: order}
}

func TestSortViolations(t *testing.T) {
	got := SortViolations([]Violation{
		v("A.java", 3, 1, 0, "c"),
		v("A.java", 1, 9, 1, "b"),
		v("A.java", 1, 9, 0, "a"),
		v("A.java", 1, 2, 5, "z"),
		v("A.java", 1, 9, 0, "a"),
	})

	require.Len(t, got, 4)
	assert.Equal(t, []string{"z", "a", "b", "c"}, []string{got[0].Message, got[1].Message, got[2].Message, got[3].Message})
}

func TestSinkIsOrderIndependent(t *testing.T) {
	files := []string{"b/B.java", "a/A.java", "c/C.java", "a/Z.java"}

	build := func(order []int) *Report {
		s := NewSink()
		var wg sync.WaitGroup
		for _, i := range order {
			wg.Add(1)
			go func() {
				defer wg.Done()
				path := files[i]
				s.Add(path, []Violation{v(path, 2, 1, 1, "second"), v(path, 1, 1, 0, "first")})
			}()
		}
		wg.Wait()
		return s.Report()
	}

	r1 := build([]int{0, 1, 2, 3})
	r2 := build([]int{3, 2, 1, 0})
	assert.Equal(t, r1, r2)

	var paths []string
	for _, f := range r1.Files {
		paths = append(paths, f.Path)
		require.Len(t, f.Violations, 2)
		assert.Equal(t, "first", f.Violations[0].Message)
	}
	assert.Equal(t, []string{"a/A.java", "a/Z.java", "b/B.java", "c/C.java"}, paths)
}

func TestSinkDropsIgnoredAndTracksSkips(t *testing.T) {
	s := NewSink()
	ignored := v("A.java", 1, 1, 0, "quiet")
	ignored.Severity = core.SeverityIgnore
	s.Add("A.java", []Violation{ignored})
	s.Skip("B.java")
	s.Fail("C.java", assert.AnError)

	r := s.Report()
	require.Len(t, r.Files, 3)
	assert.Empty(t, r.Files[0].Violations)
	assert.True(t, r.Files[1].Skipped)
	assert.ErrorIs(t, r.Files[2].Err, assert.AnError)
	assert.Equal(t, 1, r.SkippedCount())
	assert.False(t, r.HasErrors())
}

func TestReportCounts(t *testing.T) {
	warn := v("A.java", 1, 1, 0, "w")
	warn.Severity = core.SeverityWarning
	r := &Report{Files: []FileReport{
		{Path: "A.java", Violations: []Violation{v("A.java", 1, 1, 0, "e"), warn}},
		{Path: "B.java", Violations: []Violation{v("B.java", 1, 1, 0, "e")}},
	}}
	assert.Equal(t, 2, r.Count(core.SeverityError))
	assert.Equal(t, 1, r.Count(core.SeverityWarning))
	assert.True(t, r.HasErrors())
	assert.Len(t, r.Violations(), 3)
}
