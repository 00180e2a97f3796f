package javadoc

import (
	"regexp"
	"unicode/utf8"

	"github.com/leapstack-labs/leapcheck/pkg/ast"
	"github.com/leapstack-labs/leapcheck/pkg/core"
	"github.com/leapstack-labs/leapcheck/pkg/lint"
	"github.com/leapstack-labs/leapcheck/pkg/token"
)

func init() {
	lint.Register(TagPlacementModule)
}

// Message keys.
const (
	MsgMisplaced = "javadoc.tag.misplaced"
	MsgUnknown   = "javadoc.tag.unknown"
	MsgWrongForm = "javadoc.tag.wrongForm"
)

// TagPlacementModule reports standard Javadoc tags on declarations that
// cannot carry them.
var TagPlacementModule = lint.ModuleInfo{
	Name:            "JavadocTagPlacement",
	Group:           "javadoc",
	Description:     "Javadoc tags must be legal for the declaration they document.",
	DefaultSeverity: core.SeverityWarning,
	ConfigKeys:      []string{"reportUnknown"},
	Messages: map[string]string{
		MsgMisplaced: "Javadoc tag '%s' is not allowed on %s.",
		MsgUnknown:   "Unknown Javadoc tag '%s'.",
		MsgWrongForm: "Javadoc tag '%s' must be written as '%s'.",
	},
	Default: true,
	New:     newTagPlacement,

	Rationale: `The javadoc tool ignores or rejects tags used out of place, so an @return on
a void method or an @author on a field silently disappears from the generated
documentation.`,

	BadExample: `/**
 * Resets the counter.
 * @return nothing
 */
void reset() { count = 0; }`,

	GoodExample: `/**
 * Resets the counter.
 */
void reset() { count = 0; }`,
}

var documentedKinds = []token.TokenType{
	token.PACKAGE_DEF,
	token.CLASS_DEF,
	token.INTERFACE_DEF,
	token.ENUM_DEF,
	token.ANNOTATION_DEF,
	token.RECORD_DEF,
	token.METHOD_DEF,
	token.CTOR_DEF,
	token.COMPACT_CTOR_DEF,
	token.VARIABLE_DEF,
	token.ENUM_CONSTANT_DEF,
	token.ANNOTATION_FIELD_DEF,
}

// kindNames are the declaration descriptions used in messages.
var kindNames = map[token.TokenType]string{
	token.PACKAGE_DEF:          "a package",
	token.CLASS_DEF:            "a class",
	token.INTERFACE_DEF:        "an interface",
	token.ENUM_DEF:             "an enum",
	token.ANNOTATION_DEF:       "an annotation type",
	token.RECORD_DEF:           "a record",
	token.METHOD_DEF:           "a method",
	token.CTOR_DEF:             "a constructor",
	token.COMPACT_CTOR_DEF:     "a compact constructor",
	token.VARIABLE_DEF:         "a variable",
	token.ENUM_CONSTANT_DEF:    "an enum constant",
	token.ANNOTATION_FIELD_DEF: "an annotation element",
}

var (
	blockTag  = regexp.MustCompile(`^\s*(?:/\*\*)?\s*\*?\s*(@[A-Za-z]+)`)
	inlineTag = regexp.MustCompile(`\{@([A-Za-z]+)`)
)

// TagPlacement is the JavadocTagPlacement check.
type TagPlacement struct {
	lint.Base
	reportUnknown bool
	seen          map[*token.Comment]bool
}

func newTagPlacement(props lint.Properties) (lint.Check, error) {
	reportUnknown, err := props.Bool("reportUnknown", false)
	if err != nil {
		return nil, err
	}
	return &TagPlacement{reportUnknown: reportUnknown}, nil
}

func (c *TagPlacement) DefaultTokens() []token.TokenType    { return documentedKinds }
func (c *TagPlacement) AcceptableTokens() []token.TokenType { return documentedKinds }
func (c *TagPlacement) RequiredTokens() []token.TokenType   { return nil }

func (c *TagPlacement) BeginTree(*ast.Node) {
	c.seen = make(map[*token.Comment]bool)
}

func (c *TagPlacement) VisitToken(n *ast.Node) {
	doc := c.File().JavadocBefore(ast.FirstToken(n).Line())
	if doc == nil || c.seen[doc] {
		return
	}
	// every declarator of "int a, b;" shares one comment
	c.seen[doc] = true

	for _, tag := range scanTags(doc) {
		c.checkTag(n, tag)
	}
}

func (c *TagPlacement) checkTag(n *ast.Node, tag foundTag) {
	info, err := FromName(tag.name)
	if err != nil {
		if c.reportUnknown {
			c.LogAt(tag.line, tag.column, MsgUnknown, tag.written())
		}
		return
	}
	if info.Type() != tag.typ {
		c.LogAt(tag.line, tag.column, MsgWrongForm, tag.written(), info.Text())
		return
	}
	if !info.IsValidOn(n) {
		c.LogAt(tag.line, tag.column, MsgMisplaced, info.Text(), describe(n))
	}
}

func describe(n *ast.Node) string {
	if name, ok := kindNames[n.Kind()]; ok {
		return name
	}
	return n.Kind().String()
}

// foundTag is a tag occurrence inside a comment.
type foundTag struct {
	name   string
	typ    TagType
	line   int // 1-based source line
	column int // 0-based character column
}

func (t foundTag) written() string {
	if t.typ == Inline {
		return "{@" + t.name + "}"
	}
	return "@" + t.name
}

// scanTags finds block tags at the start of comment lines and inline tags
// anywhere, in source order.
func scanTags(doc *token.Comment) []foundTag {
	var tags []foundTag
	for i, text := range doc.Lines() {
		line := doc.Span.Start.Line + i
		offset := 0
		if i == 0 {
			offset = doc.Span.Start.Column
		}
		col := func(byteIdx int) int {
			return offset + utf8.RuneCountInString(text[:byteIdx])
		}

		if m := blockTag.FindStringSubmatchIndex(text); m != nil {
			tags = append(tags, foundTag{
				name:   text[m[2]+1 : m[3]],
				typ:    Block,
				line:   line,
				column: col(m[2]),
			})
		}
		for _, m := range inlineTag.FindAllStringSubmatchIndex(text, -1) {
			tags = append(tags, foundTag{
				name:   text[m[2]:m[3]],
				typ:    Inline,
				line:   line,
				column: col(m[0]),
			})
		}
	}
	return tags
}
