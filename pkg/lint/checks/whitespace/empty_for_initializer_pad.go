package whitespace

import (
	"github.com/leapstack-labs/leapcheck/pkg/ast"
	"github.com/leapstack-labs/leapcheck/pkg/core"
	"github.com/leapstack-labs/leapcheck/pkg/lint"
	"github.com/leapstack-labs/leapcheck/pkg/token"
)

func init() {
	lint.Register(EmptyForInitializerPadModule)
}

// Message keys shared by the preceding-whitespace checks.
const (
	MsgPreceded    = "ws.preceded"
	MsgNotPreceded = "ws.notPreceded"
)

const semicolon = ";"

// EmptyForInitializerPadModule checks the padding of an empty for
// initializer: the space between "(" and ";" in "for (; i < n; i++)".
var EmptyForInitializerPadModule = lint.ModuleInfo{
	Name:            "EmptyForInitializerPad",
	Group:           "whitespace",
	Description:     "Padding of an empty for loop initializer.",
	DefaultSeverity: core.SeverityError,
	ConfigKeys:      []string{"option"},
	Messages: map[string]string{
		MsgPreceded:    "'%s' is preceded with whitespace.",
		MsgNotPreceded: "'%s' is not preceded with whitespace.",
	},
	Default: true,
	New:     newEmptyForInitializerPad,

	Rationale: `Consistent padding makes loops with omitted parts easy to spot. A semicolon
that starts its own line is never checked, so wrapped loop headers stay legal.`,

	BadExample:  `for ( ; i < n; i++) { }`,
	GoodExample: `for (; i < n; i++) { }`,
}

var forInit = []token.TokenType{token.FOR_INIT}

// EmptyForInitializerPad is the EmptyForInitializerPad check.
type EmptyForInitializerPad struct {
	lint.Base
	option PadOption
}

func newEmptyForInitializerPad(props lint.Properties) (lint.Check, error) {
	option, err := ParsePadOption(props, "option", NoSpace)
	if err != nil {
		return nil, err
	}
	return &EmptyForInitializerPad{option: option}, nil
}

func (c *EmptyForInitializerPad) DefaultTokens() []token.TokenType    { return forInit }
func (c *EmptyForInitializerPad) AcceptableTokens() []token.TokenType { return forInit }
func (c *EmptyForInitializerPad) RequiredTokens() []token.TokenType   { return forInit }

// Option returns the configured padding policy.
func (c *EmptyForInitializerPad) Option() PadOption { return c.option }

func (c *EmptyForInitializerPad) VisitToken(n *ast.Node) {
	if n.HasChildren() || n.Column() == 0 {
		return
	}
	// an empty initializer sits on its ";"
	line := []rune(c.Line(n.Line()))
	before := n.Column() - 1
	if blankBefore(line, before) {
		return
	}
	spaced := isSpaceAt(line, before)
	switch {
	case c.option == NoSpace && spaced:
		c.Log(n, MsgPreceded, semicolon)
	case c.option == Space && !spaced:
		c.Log(n, MsgNotPreceded, semicolon)
	}
}
