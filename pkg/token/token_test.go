package token

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenNamesClosed(t *testing.T) {
	for _, tt := range All() {
		name, ok := tokenNames[tt]
		require.True(t, ok, "token %d has no name", tt)

		back, ok := ParseTokenType(name)
		require.True(t, ok, name)
		assert.Equal(t, tt, back, name)
	}
	assert.Len(t, tokenNames, int(maxToken))
}

func TestParseTokenType(t *testing.T) {
	tests := []struct {
		name string
		want TokenType
		ok   bool
	}{
		{"FOR_INIT", FOR_INIT, true},
		{"METHOD_DEF", METHOD_DEF, true},
		{"method_def", EOF, false},
		{"", EOF, false},
		{"NOT_A_TOKEN", EOF, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ParseTokenType(tt.name)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestString(t *testing.T) {
	assert.Equal(t, "FOR_INIT", FOR_INIT.String())
	assert.Equal(t, "TOKEN(9999)", TokenType(9999).String())
	assert.False(t, TokenType(9999).IsValid())
	assert.False(t, TokenType(-1).IsValid())
}

func TestPredicateGroups(t *testing.T) {
	tests := []struct {
		name string
		pred func(TokenType) bool
		yes  []TokenType
		no   []TokenType
	}{
		{
			name: "type defs",
			pred: TokenType.IsTypeDef,
			yes:  []TokenType{CLASS_DEF, INTERFACE_DEF, ENUM_DEF, ANNOTATION_DEF, RECORD_DEF},
			no:   []TokenType{PACKAGE_DEF, METHOD_DEF, OBJBLOCK},
		},
		{
			name: "declarations",
			pred: TokenType.IsDeclaration,
			yes:  []TokenType{PACKAGE_DEF, METHOD_DEF, CTOR_DEF, VARIABLE_DEF, PARAMETER_DEF, RECORD_COMPONENT_DEF},
			no:   []TokenType{SLIST, LITERAL_CATCH, COMPILATION_UNIT, IMPORT},
		},
		{
			name: "modifiers",
			pred: TokenType.IsModifier,
			yes:  []TokenType{LITERAL_PUBLIC, LITERAL_STATIC, FINAL, LITERAL_NON_SEALED},
			no:   []TokenType{MODIFIERS, ANNOTATION, LITERAL_VOID},
		},
		{
			name: "primitives",
			pred: TokenType.IsPrimitive,
			yes:  []TokenType{LITERAL_VOID, LITERAL_INT, LITERAL_DOUBLE},
			no:   []TokenType{IDENT, LITERAL_NULL},
		},
		{
			name: "binary operators",
			pred: TokenType.IsBinaryOperator,
			yes:  []TokenType{PLUS, LAND, QUESTION, COLON, LITERAL_INSTANCEOF, EQUAL},
			no:   []TokenType{ASSIGN, INC, LNOT, SEMI},
		},
		{
			name: "literals",
			pred: TokenType.IsLiteral,
			yes:  []TokenType{NUM_INT, STRING_LITERAL, LITERAL_NULL, LITERAL_TRUE},
			no:   []TokenType{IDENT, LITERAL_CLASS},
		},
		{
			name: "punctuation",
			pred: TokenType.IsPunctuation,
			yes:  []TokenType{SEMI, RPAREN, RCURLY, ELLIPSIS},
			no:   []TokenType{DOT, COLON},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for _, k := range tt.yes {
				assert.True(t, tt.pred(k), k.String())
			}
			for _, k := range tt.no {
				assert.False(t, tt.pred(k), k.String())
			}
		})
	}
}

func TestPositionBefore(t *testing.T) {
	a := Position{Line: 3, Column: 4}
	assert.True(t, a.Before(Position{Line: 3, Column: 5}))
	assert.True(t, a.Before(Position{Line: 4, Column: 0}))
	assert.False(t, a.Before(a))
	assert.False(t, a.Before(Position{Line: 2, Column: 10}))
	assert.True(t, a.IsValid())
	assert.False(t, Position{}.IsValid())
}

func TestNewComment(t *testing.T) {
	tests := []struct {
		text string
		want CommentKind
	}{
		{"// hi", LineComment},
		{"/* block */", BlockComment},
		{"/** doc */", JavadocComment},
		{"/**/", BlockComment},
	}
	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			c := NewComment(tt.text, Span{})
			assert.Equal(t, tt.want, c.Kind)
		})
	}
}
