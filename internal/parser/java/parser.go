// Package java parses Java source files with tree-sitter and converts the
// concrete syntax tree into the ast node model checks run on.
package java

import (
	"context"
	"fmt"
	"sync"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/java"

	"github.com/leapstack-labs/leapcheck/pkg/ast"
	"github.com/leapstack-labs/leapcheck/pkg/token"
)

// SyntaxError reports source tree-sitter could not parse.
type SyntaxError struct {
	Path   string
	Line   int // 1-based
	Column int // 1-based
	Near   string
}

func (e *SyntaxError) Error() string {
	if e.Near == "" {
		return fmt.Sprintf("%s:%d:%d: syntax error", e.Path, e.Line, e.Column)
	}
	return fmt.Sprintf("%s:%d:%d: syntax error near %q", e.Path, e.Line, e.Column, e.Near)
}

// Parser converts Java sources into ast files. It is safe for concurrent
// use; tree-sitter parsers are pooled because a single one is not.
type Parser struct {
	pool sync.Pool
}

// New creates a parser.
func New() *Parser {
	return &Parser{
		pool: sync.Pool{
			New: func() any {
				p := sitter.NewParser()
				p.SetLanguage(java.GetLanguage())
				return p
			},
		},
	}
}

// Parse parses src. Files with syntax errors are rejected as a whole.
func (p *Parser) Parse(ctx context.Context, path string, src []byte) (*ast.File, error) {
	sp := p.pool.Get().(*sitter.Parser)
	defer p.pool.Put(sp)

	tree, err := sp.ParseCtx(ctx, nil, src)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	defer tree.Close()

	lines := ast.SplitLines(string(src))
	root := tree.RootNode()
	if root.HasError() {
		return nil, syntaxError(path, root, src, lines)
	}

	c := newConverter(src, lines)
	unit := c.compilationUnit(root)
	return ast.NewFile(path, lines, c.b.Build(unit), c.comments), nil
}

// syntaxError locates the first ERROR or missing node under n.
func syntaxError(path string, n *sitter.Node, src []byte, lines []string) error {
	bad := firstError(n)
	if bad == nil {
		bad = n
	}
	pos := position(lines, bad.StartPoint(), bad.StartByte())
	near := truncate(bad.Content(src), 20)
	if bad.IsMissing() {
		near = bad.Type()
	}
	return &SyntaxError{Path: path, Line: pos.Line, Column: pos.Column + 1, Near: near}
}

// truncate cuts s to at most n characters.
func truncate(s string, n int) string {
	if r := []rune(s); len(r) > n {
		return string(r[:n])
	}
	return s
}

func firstError(n *sitter.Node) *sitter.Node {
	if n.Type() == "ERROR" || n.IsMissing() {
		return n
	}
	for i := 0; i < int(n.ChildCount()); i++ {
		child := n.Child(i)
		if child == nil || !(child.HasError() || child.IsMissing()) {
			continue
		}
		if bad := firstError(child); bad != nil {
			return bad
		}
	}
	return nil
}

// position converts a tree-sitter point, whose column counts bytes, to a
// node position whose column counts characters.
func position(lines []string, p sitter.Point, offset uint32) token.Position {
	row := int(p.Row)
	col := int(p.Column)
	if row < len(lines) {
		col = ast.CharIndex(lines[row], col)
	}
	return token.Position{Line: row + 1, Column: col, Offset: int(offset)}
}
