package ast

import (
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/leapstack-labs/leapcheck/pkg/token"
)

var (
	blankLine   = regexp.MustCompile(`^\s*$`)
	commentLine = regexp.MustCompile(`^\s*//.*$`)
)

// File is everything checks may read about one parsed source file. It is
// discarded together with its tree once the file has been checked.
type File struct {
	path     string
	lines    []string
	root     *Node
	comments []*token.Comment
	javadocs map[int]*token.Comment // keyed by end line
}

// NewFile bundles a parsed tree with its source. lines are the file's
// lines without terminators; comments are in source order.
func NewFile(path string, lines []string, root *Node, comments []*token.Comment) *File {
	f := &File{
		path:     path,
		lines:    lines,
		root:     root,
		comments: comments,
		javadocs: make(map[int]*token.Comment),
	}
	for _, c := range comments {
		if c.IsJavadoc() {
			f.javadocs[c.Span.End.Line] = c
		}
	}
	return f
}

// SplitLines splits source text the way NewFile expects it.
func SplitLines(src string) []string {
	src = strings.ReplaceAll(src, "\r\n", "\n")
	src = strings.ReplaceAll(src, "\r", "\n")
	lines := strings.Split(src, "\n")
	if n := len(lines); n > 0 && lines[n-1] == "" {
		lines = lines[:n-1]
	}
	return lines
}

// Path returns the file path as given to the parser.
func (f *File) Path() string { return f.path }

// Root returns the tree root.
func (f *File) Root() *Node { return f.root }

// Lines returns all source lines.
func (f *File) Lines() []string { return f.lines }

// LineCount returns the number of lines.
func (f *File) LineCount() int { return len(f.lines) }

// Line returns the 1-based line n, or "" when out of range.
func (f *File) Line(n int) string {
	if n < 1 || n > len(f.lines) {
		return ""
	}
	return f.lines[n-1]
}

// Comments returns every comment in source order.
func (f *File) Comments() []*token.Comment { return f.comments }

// JavadocBefore returns the javadoc comment attached to a declaration that
// starts on line. Blank lines, line comments and lines inside plain block
// comments between the two are skipped. Returns nil when there is none.
func (f *File) JavadocBefore(line int) *token.Comment {
	n := line - 1
	for n > 0 && f.skippable(n) {
		n--
	}
	return f.javadocs[n]
}

func (f *File) skippable(n int) bool {
	text := f.Line(n)
	if blankLine.MatchString(text) || commentLine.MatchString(text) {
		return true
	}
	for _, c := range f.comments {
		if c.Kind == token.BlockComment && c.Span.ContainsLine(n) {
			return true
		}
	}
	return false
}

// ExpandedColumn returns the display column of the 0-based character index
// col on line, with tabs advancing to the next multiple of tabWidth.
func ExpandedColumn(line string, col, tabWidth int) int {
	width := 0
	idx := 0
	for _, r := range line {
		if idx >= col {
			break
		}
		if r == '\t' && tabWidth > 0 {
			width = (width/tabWidth + 1) * tabWidth
		} else {
			width++
		}
		idx++
	}
	return width + max(0, col-idx)
}

// CharIndex converts a 0-based byte offset within line to a character index.
func CharIndex(line string, byteCol int) int {
	if byteCol > len(line) {
		return utf8.RuneCountInString(line) + byteCol - len(line)
	}
	return utf8.RuneCountInString(line[:byteCol])
}
