package javadoc

import (
	"errors"
	"fmt"
	"slices"

	"github.com/leapstack-labs/leapcheck/pkg/ast"
	"github.com/leapstack-labs/leapcheck/pkg/token"
)

// ErrInvalidArgument is wrapped by every catalog lookup failure.
var ErrInvalidArgument = errors.New("invalid argument")

// lookupError carries a caller-facing message verbatim while still matching
// ErrInvalidArgument.
type lookupError struct {
	msg string
}

func (e *lookupError) Error() string { return e.msg }

func (e *lookupError) Unwrap() error { return ErrInvalidArgument }

// TagType tells whether a tag starts a line (@author) or sits inside
// braces in running text ({@code}).
type TagType int

// Tag types.
const (
	Block TagType = iota
	Inline
)

func (t TagType) String() string {
	if t == Inline {
		return "INLINE"
	}
	return "BLOCK"
}

// TagInfo is one entry of the fixed catalog of standard Javadoc tags.
type TagInfo struct {
	name    string
	text    string
	typ     TagType
	validOn func(n *ast.Node) bool
}

// Name returns the bare tag name, e.g. "version".
func (t *TagInfo) Name() string { return t.name }

// Text returns the written form, e.g. "@version" or "{@code}".
func (t *TagInfo) Text() string { return t.text }

// Type returns Block or Inline.
func (t *TagInfo) Type() TagType { return t.typ }

func (t *TagInfo) String() string {
	return fmt.Sprintf("text [%s] name [%s] type [%s]", t.text, t.name, t.typ)
}

// IsValidOn reports whether the tag may document n. Tags never attach to
// something nested in executable code: n must be its own enclosing
// declaration context before the tag's own rule is consulted.
func (t *TagInfo) IsValidOn(n *ast.Node) bool {
	if n == nil || !ast.IsDeclarationContext(n) {
		return false
	}
	return t.validOn(n)
}

// Declaration kinds most tags are allowed on.
var (
	typeKinds = []token.TokenType{
		token.PACKAGE_DEF, token.CLASS_DEF, token.INTERFACE_DEF,
		token.ENUM_DEF, token.ANNOTATION_DEF, token.RECORD_DEF,
	}
	defKinds = []token.TokenType{
		token.PACKAGE_DEF, token.CLASS_DEF, token.INTERFACE_DEF,
		token.ENUM_DEF, token.ANNOTATION_DEF, token.RECORD_DEF,
		token.METHOD_DEF, token.CTOR_DEF, token.COMPACT_CTOR_DEF,
		token.VARIABLE_DEF,
	}
	deprecatedKinds = []token.TokenType{
		token.CLASS_DEF, token.INTERFACE_DEF, token.ENUM_DEF,
		token.ANNOTATION_DEF, token.RECORD_DEF,
		token.METHOD_DEF, token.CTOR_DEF, token.COMPACT_CTOR_DEF,
		token.ENUM_CONSTANT_DEF, token.ANNOTATION_FIELD_DEF,
		token.VARIABLE_DEF,
	}
	paramKinds = []token.TokenType{
		token.CLASS_DEF, token.INTERFACE_DEF, token.RECORD_DEF,
		token.METHOD_DEF, token.CTOR_DEF,
	}
	callableKinds = []token.TokenType{token.METHOD_DEF, token.CTOR_DEF}
)

// serialDataMethods are the serialization hooks @serialData may document.
var serialDataMethods = []string{
	"writeObject", "readObject",
	"writeExternal", "readExternal",
	"writeReplace", "readResolve",
}

// serialFieldType is the element type of the array a @serialField field
// must declare.
const serialFieldType = "ObjectStreamField"

func kindIn(kinds []token.TokenType) func(*ast.Node) bool {
	return func(n *ast.Node) bool { return slices.Contains(kinds, n.Kind()) }
}

// The catalog.
var (
	Author      = &TagInfo{"author", "@author", Block, kindIn(typeKinds)}
	Code        = &TagInfo{"code", "{@code}", Inline, kindIn(defKinds)}
	DocRoot     = &TagInfo{"docRoot", "{@docRoot}", Inline, kindIn(defKinds)}
	Deprecated  = &TagInfo{"deprecated", "@deprecated", Block, kindIn(deprecatedKinds)}
	Exception   = &TagInfo{"exception", "@exception", Block, kindIn(callableKinds)}
	InheritDoc  = &TagInfo{"inheritDoc", "{@inheritDoc}", Inline, isOverridable}
	Link        = &TagInfo{"link", "{@link}", Inline, kindIn(defKinds)}
	LinkPlain   = &TagInfo{"linkplain", "{@linkplain}", Inline, kindIn(defKinds)}
	Literal     = &TagInfo{"literal", "{@literal}", Inline, kindIn(defKinds)}
	Param       = &TagInfo{"param", "@param", Block, kindIn(paramKinds)}
	Return      = &TagInfo{"return", "@return", Block, ast.ReturnsValue}
	See         = &TagInfo{"see", "@see", Block, kindIn(defKinds)}
	Serial      = &TagInfo{"serial", "@serial", Block, isField}
	SerialData  = &TagInfo{"serialData", "@serialData", Block, isSerialHook}
	SerialField = &TagInfo{"serialField", "@serialField", Block, isSerialFieldArray}
	Since       = &TagInfo{"since", "@since", Block, kindIn(defKinds)}
	Throws      = &TagInfo{"throws", "@throws", Block, kindIn(callableKinds)}
	Value       = &TagInfo{"value", "{@value}", Inline, kindIn(defKinds)}
	Version     = &TagInfo{"version", "@version", Block, kindIn(typeKinds)}
)

var catalog = []*TagInfo{
	Author, Code, DocRoot, Deprecated, Exception, InheritDoc, Link,
	LinkPlain, Literal, Param, Return, See, Serial, SerialData,
	SerialField, Since, Throws, Value, Version,
}

var (
	byName = make(map[string]*TagInfo, len(catalog))
	byText = make(map[string]*TagInfo, len(catalog))
)

func init() {
	for _, t := range catalog {
		byName[t.name] = t
		byText[t.text] = t
	}
}

// Tags returns the catalog in declaration order.
func Tags() []*TagInfo {
	return slices.Clone(catalog)
}

// FromName finds a tag by bare name, e.g. "author". The empty string
// counts as an absent name.
func FromName(name string) (*TagInfo, error) {
	if name == "" {
		return nil, &lookupError{msg: "the name is null"}
	}
	if t, ok := byName[name]; ok {
		return t, nil
	}
	return nil, &lookupError{msg: fmt.Sprintf("the name [%s] is not a valid tag name", name)}
}

// FromText finds a tag by written form, e.g. "@author" or "{@code}". The
// empty string counts as an absent text.
func FromText(text string) (*TagInfo, error) {
	if text == "" {
		return nil, &lookupError{msg: "the text is null"}
	}
	if t, ok := byText[text]; ok {
		return t, nil
	}
	return nil, &lookupError{msg: fmt.Sprintf("the text [%s] is not a valid tag text", text)}
}

func isField(n *ast.Node) bool {
	return n.Kind() == token.VARIABLE_DEF
}

func isSerialHook(n *ast.Node) bool {
	return ast.MethodNameIn(n, serialDataMethods...)
}

func isSerialFieldArray(n *ast.Node) bool {
	if n.Kind() != token.VARIABLE_DEF {
		return false
	}
	t := ast.DeclaredType(n)
	return t != nil && t.Kind() == token.ARRAY_DECLARATOR && t.Text() == serialFieldType
}

// isOverridable matches methods that can inherit documentation: neither
// static nor private.
func isOverridable(n *ast.Node) bool {
	return n.Kind() == token.METHOD_DEF && !ast.IsStatic(n) && !ast.IsPrivate(n)
}
