package whitespace

import (
	"strings"

	"github.com/leapstack-labs/leapcheck/pkg/ast"
	"github.com/leapstack-labs/leapcheck/pkg/core"
	"github.com/leapstack-labs/leapcheck/pkg/lint"
	"github.com/leapstack-labs/leapcheck/pkg/token"
)

func init() {
	lint.Register(OperatorWrapModule)
}

// Message keys.
const (
	MsgLineNew      = "line.new"
	MsgLinePrevious = "line.previous"
)

// OperatorWrapModule checks on which line an operator goes when an
// expression is wrapped.
var OperatorWrapModule = lint.ModuleInfo{
	Name:            "OperatorWrap",
	Group:           "whitespace",
	Description:     "Placement of operators at line wraps.",
	DefaultSeverity: core.SeverityError,
	ConfigKeys:      []string{"option"},
	Messages: map[string]string{
		MsgLineNew:      "'%s' should be on a new line.",
		MsgLinePrevious: "'%s' should be on the previous line.",
	},
	New: newOperatorWrap,

	Rationale: `An operator at the start of a continuation line makes it obvious the line
continues an expression.`,

	BadExample: `int total = base +
    extra;`,

	GoodExample: `int total = base
    + extra;`,
}

var (
	wrapDefaults = []token.TokenType{
		token.QUESTION, token.COLON, token.EQUAL, token.NOT_EQUAL,
		token.DIV, token.PLUS, token.MINUS, token.STAR, token.MOD,
		token.SR, token.BSR, token.GE, token.GT, token.SL, token.LE,
		token.LT, token.BXOR, token.BOR, token.LOR, token.BAND,
		token.LAND, token.LITERAL_INSTANCEOF,
	}
	wrapAcceptable = append(append([]token.TokenType{}, wrapDefaults...),
		token.ASSIGN, token.PLUS_ASSIGN, token.MINUS_ASSIGN, token.STAR_ASSIGN,
		token.DIV_ASSIGN, token.MOD_ASSIGN, token.SL_ASSIGN, token.SR_ASSIGN,
		token.BSR_ASSIGN, token.BAND_ASSIGN, token.BXOR_ASSIGN, token.BOR_ASSIGN,
		token.METHOD_REF, token.LAMBDA_ARROW,
	)
)

// OperatorWrap is the OperatorWrap check.
type OperatorWrap struct {
	lint.Base
	option WrapOption
}

func newOperatorWrap(props lint.Properties) (lint.Check, error) {
	option, err := ParseWrapOption(props, "option", WrapNL)
	if err != nil {
		return nil, err
	}
	return &OperatorWrap{option: option}, nil
}

func (c *OperatorWrap) DefaultTokens() []token.TokenType    { return wrapDefaults }
func (c *OperatorWrap) AcceptableTokens() []token.TokenType { return wrapAcceptable }
func (c *OperatorWrap) RequiredTokens() []token.TokenType   { return nil }

func (c *OperatorWrap) VisitToken(n *ast.Node) {
	// labels, case arms and enhanced for loops use ':' too
	if n.Kind() == token.COLON && (n.Parent() == nil || n.Parent().Kind() != token.QUESTION) {
		return
	}
	text := n.Text()
	line := []rune(c.Line(n.Line()))
	col := n.Column()
	width := len([]rune(text))

	switch c.option {
	case WrapNL:
		// an operator alone on its line is fine either way
		if strings.TrimSpace(string(line)) != text && blankFrom(line, col+width) {
			c.Log(n, MsgLineNew, text)
		}
	case WrapEOL:
		if blankBefore(line, col) && !blankFrom(line, col+width) {
			c.Log(n, MsgLinePrevious, text)
		}
	}
}
