package token

import "strings"

// CommentKind distinguishes line vs block comments.
type CommentKind int

// Comment kinds.
const (
	LineComment    CommentKind = iota // // comment
	BlockComment                      // /* comment */
	JavadocComment                    // /** comment */
)

// Comment represents a Java comment with position.
type Comment struct {
	Kind CommentKind
	Text string // includes delimiters (// or /* */)
	Span Span
}

// NewComment classifies raw comment text.
func NewComment(text string, span Span) *Comment {
	kind := LineComment
	switch {
	case strings.HasPrefix(text, "/**") && text != "/**/":
		kind = JavadocComment
	case strings.HasPrefix(text, "/*"):
		kind = BlockComment
	}
	return &Comment{Kind: kind, Text: text, Span: span}
}

// IsLineComment returns true if this is a line comment.
func (c *Comment) IsLineComment() bool {
	return c.Kind == LineComment
}

// IsBlockComment returns true if this is a block comment, javadoc included.
func (c *Comment) IsBlockComment() bool {
	return c.Kind != LineComment
}

// IsJavadoc returns true for /** */ comments.
func (c *Comment) IsJavadoc() bool {
	return c.Kind == JavadocComment
}

// Lines returns the comment text split on newlines.
func (c *Comment) Lines() []string {
	return strings.Split(c.Text, "\n")
}
