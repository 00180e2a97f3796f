package whitespace

import (
	"github.com/leapstack-labs/leapcheck/pkg/ast"
	"github.com/leapstack-labs/leapcheck/pkg/core"
	"github.com/leapstack-labs/leapcheck/pkg/lint"
	"github.com/leapstack-labs/leapcheck/pkg/token"
)

func init() {
	lint.Register(EmptyForIteratorPadModule)
}

// Message keys shared by the following-whitespace checks.
const (
	MsgFollowed    = "ws.followed"
	MsgNotFollowed = "ws.notFollowed"
)

// EmptyForIteratorPadModule checks the padding of an empty for iterator:
// the space between ";" and ")" in "for (int i = 0; i < n; )".
var EmptyForIteratorPadModule = lint.ModuleInfo{
	Name:            "EmptyForIteratorPad",
	Group:           "whitespace",
	Description:     "Padding of an empty for loop iterator.",
	DefaultSeverity: core.SeverityError,
	ConfigKeys:      []string{"option"},
	Messages: map[string]string{
		MsgFollowed:    "'%s' is followed by whitespace.",
		MsgNotFollowed: "'%s' is not followed by whitespace.",
	},
	Default: true,
	New:     newEmptyForIteratorPad,

	BadExample:  `for (Iterator it = list.iterator(); it.hasNext(); ) { }`,
	GoodExample: `for (Iterator it = list.iterator(); it.hasNext();) { }`,
}

var forIterator = []token.TokenType{token.FOR_ITERATOR}

// EmptyForIteratorPad is the EmptyForIteratorPad check.
type EmptyForIteratorPad struct {
	lint.Base
	option PadOption
}

func newEmptyForIteratorPad(props lint.Properties) (lint.Check, error) {
	option, err := ParsePadOption(props, "option", NoSpace)
	if err != nil {
		return nil, err
	}
	return &EmptyForIteratorPad{option: option}, nil
}

func (c *EmptyForIteratorPad) DefaultTokens() []token.TokenType    { return forIterator }
func (c *EmptyForIteratorPad) AcceptableTokens() []token.TokenType { return forIterator }
func (c *EmptyForIteratorPad) RequiredTokens() []token.TokenType   { return forIterator }

func (c *EmptyForIteratorPad) VisitToken(n *ast.Node) {
	semi := n.PreviousSibling()
	if n.HasChildren() || semi == nil || semi.Kind() != token.SEMI {
		return
	}
	line := []rune(c.Line(semi.Line()))
	after := semi.Column() + 1
	if _, ok := charAt(line, after); !ok {
		return
	}
	spaced := isSpaceAt(line, after)
	switch {
	case c.option == NoSpace && spaced:
		c.LogAt(semi.Line(), after, MsgFollowed, semicolon)
	case c.option == Space && !spaced:
		c.LogAt(semi.Line(), after, MsgNotFollowed, semicolon)
	}
}
