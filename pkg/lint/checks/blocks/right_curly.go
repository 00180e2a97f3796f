// Package blocks holds checks about the placement of braces.
package blocks

import (
	"slices"
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/leapstack-labs/leapcheck/pkg/ast"
	"github.com/leapstack-labs/leapcheck/pkg/core"
	"github.com/leapstack-labs/leapcheck/pkg/lint"
	"github.com/leapstack-labs/leapcheck/pkg/token"
)

func init() {
	lint.Register(RightCurlyModule)
}

// Message keys.
const (
	MsgLineSame        = "line.same"
	MsgLineAlone       = "line.alone"
	MsgLineBreakBefore = "line.break.before"
)

// RightCurlyModule checks where a closing brace goes relative to the
// statement that follows it.
var RightCurlyModule = lint.ModuleInfo{
	Name:            "RightCurly",
	Group:           "blocks",
	Description:     "Placement of right curly braces.",
	DefaultSeverity: core.SeverityError,
	ConfigKeys:      []string{"option"},
	Messages: map[string]string{
		MsgLineSame: "'%s' at column %d should be on the same line as the next part of a " +
			"multi-block statement (one that directly contains multiple blocks: " +
			"if/else-if/else, do/while or try/catch/finally).",
		MsgLineAlone:       "'%s' at column %d should be alone on a line.",
		MsgLineBreakBefore: "'%s' at column %d should have line break before.",
	},
	Default: true,
	New:     newRightCurly,

	BadExample: `if (ready) {
    start();
}
else {
    wait();
}`,

	GoodExample: `if (ready) {
    start();
} else {
    wait();
}`,
}

// CurlyOption is the brace placement policy.
type CurlyOption int

// Placement policies.
const (
	// Same puts the brace on the line of the next part of a multi-block
	// statement and alone otherwise.
	Same CurlyOption = iota
	// Alone requires the brace to be alone on its line.
	Alone
	// AloneOrSingleLine also allows a whole block on one line.
	AloneOrSingleLine
)

func (o CurlyOption) String() string {
	switch o {
	case Alone:
		return "alone"
	case AloneOrSingleLine:
		return "alone_or_singleline"
	default:
		return "same"
	}
}

var upper = cases.Upper(language.Und)

// ParseCurlyOption parses an option value, ignoring case.
func ParseCurlyOption(v string) (CurlyOption, bool) {
	switch upper.String(strings.TrimSpace(v)) {
	case "SAME":
		return Same, true
	case "ALONE":
		return Alone, true
	case "ALONE_OR_SINGLELINE":
		return AloneOrSingleLine, true
	}
	return Same, false
}

var (
	curlyDefaults = []token.TokenType{
		token.LITERAL_TRY, token.LITERAL_CATCH, token.LITERAL_FINALLY,
		token.LITERAL_IF, token.LITERAL_ELSE,
	}
	curlyAcceptable = append(append([]token.TokenType{}, curlyDefaults...),
		token.CLASS_DEF, token.INTERFACE_DEF, token.ENUM_DEF, token.RECORD_DEF,
		token.METHOD_DEF, token.CTOR_DEF, token.COMPACT_CTOR_DEF,
		token.LITERAL_FOR, token.LITERAL_WHILE, token.LITERAL_DO,
		token.STATIC_INIT, token.INSTANCE_INIT, token.LAMBDA,
	)
)

// RightCurly is the RightCurly check.
type RightCurly struct {
	lint.Base
	option CurlyOption
}

func newRightCurly(props lint.Properties) (lint.Check, error) {
	option := Same
	if v, ok := props["option"]; ok {
		var valid bool
		if option, valid = ParseCurlyOption(v); !valid {
			return nil, &lint.PropertyError{Name: "option", Value: v}
		}
	}
	return &RightCurly{option: option}, nil
}

func (c *RightCurly) DefaultTokens() []token.TokenType    { return curlyDefaults }
func (c *RightCurly) AcceptableTokens() []token.TokenType { return curlyAcceptable }
func (c *RightCurly) RequiredTokens() []token.TokenType   { return nil }

// braces is the block of a statement part and what follows it.
type braces struct {
	lcurly *ast.Node // SLIST or OBJBLOCK, positioned at '{'
	rcurly *ast.Node
	next   *ast.Node // first token after the block, nil at end of file
	last   bool      // no further part of the same statement follows
}

func (c *RightCurly) VisitToken(n *ast.Node) {
	b, ok := bracesOf(n)
	if !ok {
		return
	}
	if key := c.validate(b); key != "" {
		c.Log(b.rcurly, key, "}", b.rcurly.Column()+1)
	}
}

func (c *RightCurly) validate(b braces) string {
	switch {
	case c.option == Same && !breakBefore(b.rcurly) && !sameLine(b.lcurly, b.rcurly):
		return MsgLineBreakBefore
	case c.option == Same && b.last:
		if sameLine(b.rcurly, b.next) && !sameLine(b.lcurly, b.rcurly) {
			return MsgLineAlone
		}
	case c.option == Same:
		if !sameLine(b.rcurly, b.next) {
			return MsgLineSame
		}
	case c.option == Alone:
		if !c.alone(b) {
			return MsgLineAlone
		}
	case c.option == AloneOrSingleLine:
		if !c.alone(b) && !singleLine(b) {
			return MsgLineAlone
		}
	}
	return ""
}

// alone reports whether only whitespace precedes the brace on its line and
// nothing follows it there.
func (c *RightCurly) alone(b braces) bool {
	if sameLine(b.rcurly, b.next) && b.next.Kind() != token.SEMI {
		return false
	}
	line := []rune(c.Line(b.rcurly.Line()))
	for i := 0; i < b.rcurly.Column() && i < len(line); i++ {
		if !unicode.IsSpace(line[i]) {
			return false
		}
	}
	return true
}

// singleLine reports whether the block opens and closes on one line and
// anything after the brace on that line continues the same statement.
func singleLine(b braces) bool {
	if !sameLine(b.lcurly, b.rcurly) {
		return false
	}
	return !sameLine(b.rcurly, b.next) ||
		slices.Contains(continuations, b.next.Kind())
}

var continuations = []token.TokenType{
	token.LITERAL_ELSE, token.LITERAL_CATCH, token.LITERAL_FINALLY,
	token.DO_WHILE, token.SEMI, token.RCURLY,
}

func bracesOf(n *ast.Node) (braces, bool) {
	var b braces
	switch n.Kind() {
	case token.LITERAL_TRY:
		b.lcurly = n.FindFirst(token.SLIST)
		if b.lcurly != nil {
			b.next = b.lcurly.NextSibling()
		}
		if b.next == nil {
			b.last, b.next = true, following(n)
		}
	case token.LITERAL_CATCH:
		b.lcurly = n.LastChild()
		b.next = n.NextSibling()
		if b.next == nil {
			b.last, b.next = true, following(n.Parent())
		}
	case token.LITERAL_FINALLY:
		b.lcurly = n.FirstChild()
		b.last, b.next = true, following(n.Parent())
	case token.LITERAL_IF:
		if els := n.LastChild(); els != nil && els.Kind() == token.LITERAL_ELSE {
			b.lcurly = els.PreviousSibling()
			b.next = els
		} else {
			b.lcurly = els
			b.last, b.next = true, following(n)
		}
	case token.LITERAL_ELSE:
		b.lcurly = n.FirstChild()
		b.last, b.next = true, following(n.Parent())
	case token.LITERAL_DO:
		b.lcurly = n.FindFirst(token.SLIST)
		b.next = n.FindFirst(token.DO_WHILE)
	case token.CLASS_DEF, token.INTERFACE_DEF, token.ENUM_DEF, token.RECORD_DEF:
		b.lcurly = n.FindFirst(token.OBJBLOCK)
		b.last, b.next = true, following(n)
	case token.STATIC_INIT, token.INSTANCE_INIT:
		b.lcurly = n.FindFirst(token.SLIST)
		b.last, b.next = true, following(n)
	default:
		b.lcurly = n.LastChild()
		b.last, b.next = true, following(n)
	}
	if b.lcurly == nil || (b.lcurly.Kind() != token.SLIST && b.lcurly.Kind() != token.OBJBLOCK) {
		return b, false
	}
	b.rcurly = b.lcurly.LastChild()
	if b.rcurly == nil || b.rcurly.Kind() != token.RCURLY {
		return b, false
	}
	if b.next != nil {
		b.next = ast.FirstToken(b.next)
	}
	return b, true
}

// following returns the node after n in source order outside n's subtree:
// its next sibling, or the next sibling of the nearest ancestor having one.
func following(n *ast.Node) *ast.Node {
	for p := n; p != nil; p = p.Parent() {
		if next := p.NextSibling(); next != nil {
			return next
		}
	}
	return nil
}

// breakBefore reports whether the brace starts a line within its block:
// nothing of the block precedes it on the same line.
func breakBefore(rcurly *ast.Node) bool {
	prev := rcurly.PreviousSibling()
	return prev == nil || ast.LastToken(prev).Line() != rcurly.Line()
}

func sameLine(a, b *ast.Node) bool {
	return a != nil && b != nil && a.Line() == b.Line()
}
