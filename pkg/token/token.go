// Package token defines the closed vocabulary of syntax tree node kinds for
// Java sources.
//
// Kinds are grouped in contiguous ranges so the predicate helpers stay
// simple range checks. New kinds must be added inside the group they belong
// to and given an entry in tokenNames; TestTokenNamesClosed enforces the
// latter.
package token

import "fmt"

// TokenType identifies the syntactic category of a tree node.
//
//nolint:revive // Accept stutter as token.TokenType is clear and widely used
type TokenType int32

//nolint:revive // ALL_CAPS names follow the configuration vocabulary users write
const (
	// Special
	EOF TokenType = iota
	COMPILATION_UNIT

	// Declarations
	PACKAGE_DEF
	CLASS_DEF
	INTERFACE_DEF
	ENUM_DEF
	ANNOTATION_DEF
	RECORD_DEF
	METHOD_DEF
	CTOR_DEF
	COMPACT_CTOR_DEF
	VARIABLE_DEF
	PARAMETER_DEF
	ENUM_CONSTANT_DEF
	ANNOTATION_FIELD_DEF
	RECORD_COMPONENT_DEF

	// Structure
	IMPORT
	STATIC_IMPORT
	OBJBLOCK
	MODIFIERS
	ANNOTATIONS
	ANNOTATION
	ANNOTATION_MEMBER_VALUE_PAIR
	TYPE
	TYPE_PARAMETERS
	TYPE_PARAMETER
	TYPE_ARGUMENTS
	TYPE_ARGUMENT
	TYPE_UPPER_BOUNDS
	TYPE_LOWER_BOUNDS
	WILDCARD_TYPE
	ARRAY_DECLARATOR
	EXTENDS_CLAUSE
	IMPLEMENTS_CLAUSE
	PERMITS_CLAUSE
	PARAMETERS
	RECORD_COMPONENTS
	SLIST
	INSTANCE_INIT
	STATIC_INIT
	LAMBDA
	ELIST
	EXPR
	LABELED_STAT
	EMPTY_STAT
	IDENT

	// Statements
	LITERAL_IF
	LITERAL_ELSE
	LITERAL_FOR
	FOR_INIT
	FOR_CONDITION
	FOR_ITERATOR
	FOR_EACH_CLAUSE
	LITERAL_WHILE
	LITERAL_DO
	DO_WHILE
	LITERAL_TRY
	RESOURCE_SPECIFICATION
	RESOURCES
	RESOURCE
	LITERAL_CATCH
	LITERAL_FINALLY
	LITERAL_SWITCH
	CASE_GROUP
	LITERAL_CASE
	LITERAL_DEFAULT
	SWITCH_RULE
	LITERAL_RETURN
	LITERAL_BREAK
	LITERAL_CONTINUE
	LITERAL_THROW
	LITERAL_THROWS
	LITERAL_SYNCHRONIZED
	LITERAL_ASSERT
	LITERAL_YIELD

	// Modifiers
	LITERAL_PUBLIC
	LITERAL_PROTECTED
	LITERAL_PRIVATE
	LITERAL_STATIC
	ABSTRACT
	FINAL
	LITERAL_TRANSIENT
	LITERAL_VOLATILE
	LITERAL_NATIVE
	STRICTFP
	LITERAL_SEALED
	LITERAL_NON_SEALED

	// Primitive types
	LITERAL_VOID
	LITERAL_BOOLEAN
	LITERAL_BYTE
	LITERAL_CHAR
	LITERAL_SHORT
	LITERAL_INT
	LITERAL_LONG
	LITERAL_FLOAT
	LITERAL_DOUBLE

	// Operators
	ASSIGN       // =
	PLUS_ASSIGN  // +=
	MINUS_ASSIGN // -=
	STAR_ASSIGN  // *=
	DIV_ASSIGN   // /=
	MOD_ASSIGN   // %=
	SL_ASSIGN    // <<=
	SR_ASSIGN    // >>=
	BSR_ASSIGN   // >>>=
	BAND_ASSIGN  // &=
	BXOR_ASSIGN  // ^=
	BOR_ASSIGN   // |=
	QUESTION     // ?
	COLON        // :
	LOR          // ||
	LAND         // &&
	BOR          // |
	BXOR         // ^
	BAND         // &
	EQUAL        // ==
	NOT_EQUAL    // !=
	LT           // <
	GT           // >
	LE           // <=
	GE           // >=
	SL           // <<
	SR           // >>
	BSR          // >>>
	PLUS         // +
	MINUS        // -
	STAR         // *
	DIV          // /
	MOD          // %
	LAMBDA_ARROW // ->
	METHOD_REF   // ::
	LITERAL_INSTANCEOF
	INC         // ++x
	DEC         // --x
	POST_INC    // x++
	POST_DEC    // x--
	UNARY_MINUS // -x
	UNARY_PLUS  // +x
	BNOT        // ~
	LNOT        // !

	// Expressions
	METHOD_CALL
	LITERAL_NEW
	ARRAY_INIT
	INDEX_OP
	TYPECAST
	LITERAL_THIS
	LITERAL_SUPER
	LITERAL_CLASS
	DOT

	// Literals
	NUM_INT
	NUM_LONG
	NUM_FLOAT
	NUM_DOUBLE
	CHAR_LITERAL
	STRING_LITERAL
	TEXT_BLOCK_LITERAL
	LITERAL_TRUE
	LITERAL_FALSE
	LITERAL_NULL

	// Punctuation
	SEMI   // ;
	COMMA  // ,
	LPAREN // (
	RPAREN // )
	LCURLY // {
	RCURLY // }
	AT     // @
	ELLIPSIS

	// Sentinel
	maxToken
)

// String returns the configuration name of the token type.
func (t TokenType) String() string {
	if name, ok := tokenNames[t]; ok {
		return name
	}
	return fmt.Sprintf("TOKEN(%d)", t)
}

// tokenNames maps token types to the names users write in configuration.
var tokenNames = map[TokenType]string{
	EOF:              "EOF",
	COMPILATION_UNIT: "COMPILATION_UNIT",

	PACKAGE_DEF:          "PACKAGE_DEF",
	CLASS_DEF:            "CLASS_DEF",
	INTERFACE_DEF:        "INTERFACE_DEF",
	ENUM_DEF:             "ENUM_DEF",
	ANNOTATION_DEF:       "ANNOTATION_DEF",
	RECORD_DEF:           "RECORD_DEF",
	METHOD_DEF:           "METHOD_DEF",
	CTOR_DEF:             "CTOR_DEF",
	COMPACT_CTOR_DEF:     "COMPACT_CTOR_DEF",
	VARIABLE_DEF:         "VARIABLE_DEF",
	PARAMETER_DEF:        "PARAMETER_DEF",
	ENUM_CONSTANT_DEF:    "ENUM_CONSTANT_DEF",
	ANNOTATION_FIELD_DEF: "ANNOTATION_FIELD_DEF",
	RECORD_COMPONENT_DEF: "RECORD_COMPONENT_DEF",

	IMPORT:                       "IMPORT",
	STATIC_IMPORT:                "STATIC_IMPORT",
	OBJBLOCK:                     "OBJBLOCK",
	MODIFIERS:                    "MODIFIERS",
	ANNOTATIONS:                  "ANNOTATIONS",
	ANNOTATION:                   "ANNOTATION",
	ANNOTATION_MEMBER_VALUE_PAIR: "ANNOTATION_MEMBER_VALUE_PAIR",
	TYPE:                         "TYPE",
	TYPE_PARAMETERS:              "TYPE_PARAMETERS",
	TYPE_PARAMETER:               "TYPE_PARAMETER",
	TYPE_ARGUMENTS:               "TYPE_ARGUMENTS",
	TYPE_ARGUMENT:                "TYPE_ARGUMENT",
	TYPE_UPPER_BOUNDS:            "TYPE_UPPER_BOUNDS",
	TYPE_LOWER_BOUNDS:            "TYPE_LOWER_BOUNDS",
	WILDCARD_TYPE:                "WILDCARD_TYPE",
	ARRAY_DECLARATOR:             "ARRAY_DECLARATOR",
	EXTENDS_CLAUSE:               "EXTENDS_CLAUSE",
	IMPLEMENTS_CLAUSE:            "IMPLEMENTS_CLAUSE",
	PERMITS_CLAUSE:               "PERMITS_CLAUSE",
	PARAMETERS:                   "PARAMETERS",
	RECORD_COMPONENTS:            "RECORD_COMPONENTS",
	SLIST:                        "SLIST",
	INSTANCE_INIT:                "INSTANCE_INIT",
	STATIC_INIT:                  "STATIC_INIT",
	LAMBDA:                       "LAMBDA",
	ELIST:                        "ELIST",
	EXPR:                         "EXPR",
	LABELED_STAT:                 "LABELED_STAT",
	EMPTY_STAT:                   "EMPTY_STAT",
	IDENT:                        "IDENT",

	LITERAL_IF:             "LITERAL_IF",
	LITERAL_ELSE:           "LITERAL_ELSE",
	LITERAL_FOR:            "LITERAL_FOR",
	FOR_INIT:               "FOR_INIT",
	FOR_CONDITION:          "FOR_CONDITION",
	FOR_ITERATOR:           "FOR_ITERATOR",
	FOR_EACH_CLAUSE:        "FOR_EACH_CLAUSE",
	LITERAL_WHILE:          "LITERAL_WHILE",
	LITERAL_DO:             "LITERAL_DO",
	DO_WHILE:               "DO_WHILE",
	LITERAL_TRY:            "LITERAL_TRY",
	RESOURCE_SPECIFICATION: "RESOURCE_SPECIFICATION",
	RESOURCES:              "RESOURCES",
	RESOURCE:               "RESOURCE",
	LITERAL_CATCH:          "LITERAL_CATCH",
	LITERAL_FINALLY:        "LITERAL_FINALLY",
	LITERAL_SWITCH:         "LITERAL_SWITCH",
	CASE_GROUP:             "CASE_GROUP",
	LITERAL_CASE:           "LITERAL_CASE",
	LITERAL_DEFAULT:        "LITERAL_DEFAULT",
	SWITCH_RULE:            "SWITCH_RULE",
	LITERAL_RETURN:         "LITERAL_RETURN",
	LITERAL_BREAK:          "LITERAL_BREAK",
	LITERAL_CONTINUE:       "LITERAL_CONTINUE",
	LITERAL_THROW:          "LITERAL_THROW",
	LITERAL_THROWS:         "LITERAL_THROWS",
	LITERAL_SYNCHRONIZED:   "LITERAL_SYNCHRONIZED",
	LITERAL_ASSERT:         "LITERAL_ASSERT",
	LITERAL_YIELD:          "LITERAL_YIELD",

	LITERAL_PUBLIC:     "LITERAL_PUBLIC",
	LITERAL_PROTECTED:  "LITERAL_PROTECTED",
	LITERAL_PRIVATE:    "LITERAL_PRIVATE",
	LITERAL_STATIC:     "LITERAL_STATIC",
	ABSTRACT:           "ABSTRACT",
	FINAL:              "FINAL",
	LITERAL_TRANSIENT:  "LITERAL_TRANSIENT",
	LITERAL_VOLATILE:   "LITERAL_VOLATILE",
	LITERAL_NATIVE:     "LITERAL_NATIVE",
	STRICTFP:           "STRICTFP",
	LITERAL_SEALED:     "LITERAL_SEALED",
	LITERAL_NON_SEALED: "LITERAL_NON_SEALED",

	LITERAL_VOID:    "LITERAL_VOID",
	LITERAL_BOOLEAN: "LITERAL_BOOLEAN",
	LITERAL_BYTE:    "LITERAL_BYTE",
	LITERAL_CHAR:    "LITERAL_CHAR",
	LITERAL_SHORT:   "LITERAL_SHORT",
	LITERAL_INT:     "LITERAL_INT",
	LITERAL_LONG:    "LITERAL_LONG",
	LITERAL_FLOAT:   "LITERAL_FLOAT",
	LITERAL_DOUBLE:  "LITERAL_DOUBLE",

	ASSIGN:             "ASSIGN",
	PLUS_ASSIGN:        "PLUS_ASSIGN",
	MINUS_ASSIGN:       "MINUS_ASSIGN",
	STAR_ASSIGN:        "STAR_ASSIGN",
	DIV_ASSIGN:         "DIV_ASSIGN",
	MOD_ASSIGN:         "MOD_ASSIGN",
	SL_ASSIGN:          "SL_ASSIGN",
	SR_ASSIGN:          "SR_ASSIGN",
	BSR_ASSIGN:         "BSR_ASSIGN",
	BAND_ASSIGN:        "BAND_ASSIGN",
	BXOR_ASSIGN:        "BXOR_ASSIGN",
	BOR_ASSIGN:         "BOR_ASSIGN",
	QUESTION:           "QUESTION",
	COLON:              "COLON",
	LOR:                "LOR",
	LAND:               "LAND",
	BOR:                "BOR",
	BXOR:               "BXOR",
	BAND:               "BAND",
	EQUAL:              "EQUAL",
	NOT_EQUAL:          "NOT_EQUAL",
	LT:                 "LT",
	GT:                 "GT",
	LE:                 "LE",
	GE:                 "GE",
	SL:                 "SL",
	SR:                 "SR",
	BSR:                "BSR",
	PLUS:               "PLUS",
	MINUS:              "MINUS",
	STAR:               "STAR",
	DIV:                "DIV",
	MOD:                "MOD",
	LAMBDA_ARROW:       "LAMBDA_ARROW",
	METHOD_REF:         "METHOD_REF",
	LITERAL_INSTANCEOF: "LITERAL_INSTANCEOF",
	INC:                "INC",
	DEC:                "DEC",
	POST_INC:           "POST_INC",
	POST_DEC:           "POST_DEC",
	UNARY_MINUS:        "UNARY_MINUS",
	UNARY_PLUS:         "UNARY_PLUS",
	BNOT:               "BNOT",
	LNOT:               "LNOT",

	METHOD_CALL:   "METHOD_CALL",
	LITERAL_NEW:   "LITERAL_NEW",
	ARRAY_INIT:    "ARRAY_INIT",
	INDEX_OP:      "INDEX_OP",
	TYPECAST:      "TYPECAST",
	LITERAL_THIS:  "LITERAL_THIS",
	LITERAL_SUPER: "LITERAL_SUPER",
	LITERAL_CLASS: "LITERAL_CLASS",
	DOT:           "DOT",

	NUM_INT:            "NUM_INT",
	NUM_LONG:           "NUM_LONG",
	NUM_FLOAT:          "NUM_FLOAT",
	NUM_DOUBLE:         "NUM_DOUBLE",
	CHAR_LITERAL:       "CHAR_LITERAL",
	STRING_LITERAL:     "STRING_LITERAL",
	TEXT_BLOCK_LITERAL: "TEXT_BLOCK_LITERAL",
	LITERAL_TRUE:       "LITERAL_TRUE",
	LITERAL_FALSE:      "LITERAL_FALSE",
	LITERAL_NULL:       "LITERAL_NULL",

	SEMI:     "SEMI",
	COMMA:    "COMMA",
	LPAREN:   "LPAREN",
	RPAREN:   "RPAREN",
	LCURLY:   "LCURLY",
	RCURLY:   "RCURLY",
	AT:       "AT",
	ELLIPSIS: "ELLIPSIS",
}

// byName is the reverse of tokenNames, built once at init.
var byName = func() map[string]TokenType {
	m := make(map[string]TokenType, len(tokenNames))
	for t, name := range tokenNames {
		m[name] = t
	}
	return m
}()

// ParseTokenType returns the token type for a configuration name such as
// "METHOD_DEF". Lookup is exact.
func ParseTokenType(name string) (TokenType, bool) {
	t, ok := byName[name]
	return t, ok
}

// All returns every token type in declaration order.
func All() []TokenType {
	out := make([]TokenType, 0, int(maxToken))
	for t := EOF; t < maxToken; t++ {
		out = append(out, t)
	}
	return out
}

// IsValid reports whether t is a member of the vocabulary.
func (t TokenType) IsValid() bool {
	return t >= EOF && t < maxToken
}

// IsTypeDef reports whether t declares a class, interface, enum, annotation
// or record type.
func (t TokenType) IsTypeDef() bool {
	return t >= CLASS_DEF && t <= RECORD_DEF
}

// IsDeclaration reports whether t declares a named program element.
func (t TokenType) IsDeclaration() bool {
	return t >= PACKAGE_DEF && t <= RECORD_COMPONENT_DEF
}

// IsStatement reports whether t is a statement keyword or statement part.
func (t TokenType) IsStatement() bool {
	return t >= LITERAL_IF && t <= LITERAL_YIELD
}

// IsModifier reports whether t is a modifier keyword.
func (t TokenType) IsModifier() bool {
	return t >= LITERAL_PUBLIC && t <= LITERAL_NON_SEALED
}

// IsPrimitive reports whether t is a primitive type keyword, void included.
func (t TokenType) IsPrimitive() bool {
	return t >= LITERAL_VOID && t <= LITERAL_DOUBLE
}

// IsAssignment reports whether t is = or a compound assignment.
func (t TokenType) IsAssignment() bool {
	return t >= ASSIGN && t <= BOR_ASSIGN
}

// IsOperator reports whether t is an operator.
func (t TokenType) IsOperator() bool {
	return t >= ASSIGN && t <= LNOT
}

// IsBinaryOperator reports whether t is an infix operator that may be split
// across lines, the ternary parts included.
func (t TokenType) IsBinaryOperator() bool {
	return t >= QUESTION && t <= LITERAL_INSTANCEOF
}

// IsLiteral reports whether t is a literal value.
func (t TokenType) IsLiteral() bool {
	return t >= NUM_INT && t <= LITERAL_NULL
}

// IsPunctuation reports whether t is a separator.
func (t TokenType) IsPunctuation() bool {
	return t >= SEMI && t <= ELLIPSIS
}
