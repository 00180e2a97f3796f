package lint

import (
	"fmt"
	"strings"

	"github.com/leapstack-labs/leapcheck/pkg/ast"
	"github.com/leapstack-labs/leapcheck/pkg/core"
	"github.com/leapstack-labs/leapcheck/pkg/token"
)

// Check is a rule module driven by a TreeWalker.
//
// The token methods are constant for a module type: AcceptableTokens must
// contain DefaultTokens and RequiredTokens. The walker calls BeginTree once
// per file, VisitToken and LeaveToken for every node whose kind is in the
// configured set (pre-order and post-order), then FinishTree.
//
// Implementations embed *Base (or Base) which provides no-op hooks,
// violation logging, and file access. A check must not keep node
// references past FinishTree.
type Check interface {
	DefaultTokens() []token.TokenType
	AcceptableTokens() []token.TokenType
	RequiredTokens() []token.TokenType

	BeginTree(root *ast.Node)
	VisitToken(n *ast.Node)
	LeaveToken(n *ast.Node)
	FinishTree(root *ast.Node)

	base() *Base
}

// Base carries the per-module state the framework manages.
type Base struct {
	id       string
	name     string
	severity core.Severity
	messages map[string]string
	tokens   []token.TokenType
	tabWidth int
	order    int

	file       *ast.File
	violations []Violation
}

func (b *Base) base() *Base { return b }

// BeginTree does nothing.
func (b *Base) BeginTree(*ast.Node) {}

// VisitToken does nothing.
func (b *Base) VisitToken(*ast.Node) {}

// LeaveToken does nothing.
func (b *Base) LeaveToken(*ast.Node) {}

// FinishTree does nothing.
func (b *Base) FinishTree(*ast.Node) {}

// ID returns the identity reported with violations.
func (b *Base) ID() string { return b.id }

// Severity returns the configured severity.
func (b *Base) Severity() core.Severity { return b.severity }

// Tokens returns the active token set, after configuration.
func (b *Base) Tokens() []token.TokenType { return b.tokens }

// TabWidth returns the tab width used for column reporting.
func (b *Base) TabWidth() int { return b.tabWidth }

// File returns the file being checked, nil outside a traversal.
func (b *Base) File() *ast.File { return b.file }

// Lines returns the lines of the file being checked.
func (b *Base) Lines() []string {
	if b.file == nil {
		return nil
	}
	return b.file.Lines()
}

// Line returns the 1-based line of the file being checked.
func (b *Base) Line(n int) string {
	if b.file == nil {
		return ""
	}
	return b.file.Line(n)
}

// Log reports a violation at n's position.
func (b *Base) Log(n *ast.Node, key string, args ...any) {
	b.LogAt(n.Line(), n.Column(), key, args...)
}

// LogAt reports a violation at a 1-based line and 0-based character column.
func (b *Base) LogAt(line, column int, key string, args ...any) {
	col := 1 + ast.ExpandedColumn(b.Line(line), column, b.tabWidth)
	b.add(line, col, key, args)
}

// LogLine reports a violation against a whole line.
func (b *Base) LogLine(line int, key string, args ...any) {
	b.add(line, 0, key, args)
}

// Violations returns what was logged for the current file.
func (b *Base) Violations() []Violation {
	return b.violations
}

func (b *Base) add(line, column int, key string, args []any) {
	path := ""
	if b.file != nil {
		path = b.file.Path()
	}
	b.violations = append(b.violations, Violation{
		File:     path,
		Line:     line,
		Column:   column,
		Key:      key,
		Message:  formatMessage(b.template(key), args),
		Severity: b.severity,
		Module:   b.id,
		order:    b.order,
	})
}

func (b *Base) template(key string) string {
	if tmpl, ok := b.messages[key]; ok {
		return tmpl
	}
	return key
}

func (b *Base) startFile(f *ast.File) {
	b.file = f
	b.violations = nil
}

func (b *Base) endFile() []Violation {
	out := b.violations
	b.file = nil
	b.violations = nil
	return out
}

// formatMessage substitutes args into a fmt-style template. Templates with
// no verbs are returned as is.
func formatMessage(tmpl string, args []any) string {
	if len(args) == 0 || !strings.Contains(tmpl, "%") {
		return tmpl
	}
	return fmt.Sprintf(tmpl, args...)
}
