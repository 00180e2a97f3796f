package javadoc

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leapstack-labs/leapcheck/pkg/ast"
	"github.com/leapstack-labs/leapcheck/pkg/token"
)

// lone builds a single root node of kind.
func lone(kind token.TokenType) *ast.Node {
	b := ast.NewBuilder()
	return b.Build(b.New(kind, "", 1, 0))
}

// under builds parent -> node and returns node.
func under(parent, kind token.TokenType) *ast.Node {
	b := ast.NewBuilder()
	p := b.New(parent, "", 1, 0)
	n := b.New(kind, "", 2, 4)
	b.Build(b.Append(p, n))
	return n
}

// typed builds kind -> TYPE -> typeKind(typeText).
func typed(kind, typeKind token.TokenType, typeText string) *ast.Node {
	b := ast.NewBuilder()
	n := b.New(kind, "", 1, 0)
	b.Append(n, b.Append(b.New(token.TYPE, "", 1, 0), b.New(typeKind, typeText, 1, 0)))
	return b.Build(n)
}

// named builds METHOD_DEF -> [MODIFIERS -> mods...] IDENT(name).
func named(name string, mods ...token.TokenType) *ast.Node {
	b := ast.NewBuilder()
	n := b.New(token.METHOD_DEF, "", 1, 0)
	m := b.New(token.MODIFIERS, "", 1, 0)
	for _, k := range mods {
		b.Append(m, b.New(k, "", 1, 0))
	}
	b.Append(n, m, b.New(token.IDENT, name, 1, 10))
	return b.Build(n)
}

func TestCatalog(t *testing.T) {
	tags := Tags()
	require.Len(t, tags, 19)
	for _, tag := range tags {
		byName, err := FromName(tag.Name())
		require.NoError(t, err)
		assert.Same(t, tag, byName)

		byText, err := FromText(tag.Text())
		require.NoError(t, err)
		assert.Same(t, tag, byText)

		if tag.Type() == Inline {
			assert.Equal(t, "{@"+tag.Name()+"}", tag.Text())
		} else {
			assert.Equal(t, "@"+tag.Name(), tag.Text())
		}
	}
}

func TestTagString(t *testing.T) {
	assert.Equal(t, Block, Version.Type())
	assert.Equal(t, "text [@version] name [version] type [BLOCK]", Version.String())
	assert.Equal(t, "text [{@code}] name [code] type [INLINE]", Code.String())
	assert.Equal(t, "BLOCK", Block.String())
	assert.Equal(t, "INLINE", Inline.String())
}

func TestLookupErrors(t *testing.T) {
	tests := []struct {
		name    string
		lookup  func() (*TagInfo, error)
		wantErr string
	}{
		{"absent name", func() (*TagInfo, error) { return FromName("") }, "the name is null"},
		{"unknown name", func() (*TagInfo, error) { return FromName("myname") }, "the name [myname] is not a valid tag name"},
		{"absent text", func() (*TagInfo, error) { return FromText("") }, "the text is null"},
		{"unknown text", func() (*TagInfo, error) { return FromText("myname") }, "the text [myname] is not a valid tag text"},
		{"name used as text", func() (*TagInfo, error) { return FromText("version") }, "the text [version] is not a valid tag text"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tag, err := tt.lookup()
			assert.Nil(t, tag)
			require.Error(t, err)
			assert.Equal(t, tt.wantErr, err.Error())
			assert.True(t, errors.Is(err, ErrInvalidArgument))
		})
	}

	tag, err := FromText("@version")
	require.NoError(t, err)
	assert.Same(t, Version, tag)
}

func TestTypeLevelTags(t *testing.T) {
	for _, tag := range []*TagInfo{Author, Version} {
		t.Run(tag.Name(), func(t *testing.T) {
			for _, kind := range []token.TokenType{
				token.PACKAGE_DEF, token.CLASS_DEF, token.INTERFACE_DEF,
				token.ENUM_DEF, token.ANNOTATION_DEF,
			} {
				assert.True(t, tag.IsValidOn(lone(kind)), kind.String())
			}
			assert.False(t, tag.IsValidOn(lone(token.LAMBDA)))
			assert.False(t, tag.IsValidOn(lone(token.METHOD_DEF)))
		})
	}
}

func TestGeneralTags(t *testing.T) {
	for _, tag := range []*TagInfo{Code, DocRoot, Link, LinkPlain, Literal, See, Since, Value} {
		t.Run(tag.Name(), func(t *testing.T) {
			for _, kind := range []token.TokenType{
				token.PACKAGE_DEF, token.CLASS_DEF, token.INTERFACE_DEF,
				token.ENUM_DEF, token.ANNOTATION_DEF, token.METHOD_DEF,
				token.CTOR_DEF, token.VARIABLE_DEF,
			} {
				assert.True(t, tag.IsValidOn(under(token.LITERAL_CATCH, kind)), kind.String())
			}
			assert.False(t, tag.IsValidOn(under(token.SLIST, token.VARIABLE_DEF)))
			assert.False(t, tag.IsValidOn(under(token.SLIST, token.PARAMETER_DEF)))
			assert.False(t, tag.IsValidOn(under(token.LITERAL_CATCH, token.PARAMETER_DEF)))
		})
	}
}

func TestDeprecated(t *testing.T) {
	for _, kind := range []token.TokenType{
		token.CLASS_DEF, token.INTERFACE_DEF, token.ENUM_DEF,
		token.ANNOTATION_DEF, token.METHOD_DEF, token.CTOR_DEF,
		token.ENUM_CONSTANT_DEF, token.ANNOTATION_FIELD_DEF, token.VARIABLE_DEF,
	} {
		assert.True(t, Deprecated.IsValidOn(under(token.LITERAL_CATCH, kind)), kind.String())
	}
	assert.False(t, Deprecated.IsValidOn(lone(token.PACKAGE_DEF)))
	assert.False(t, Deprecated.IsValidOn(under(token.SLIST, token.VARIABLE_DEF)))
	assert.False(t, Deprecated.IsValidOn(under(token.SLIST, token.PARAMETER_DEF)))
}

func TestSerial(t *testing.T) {
	assert.True(t, Serial.IsValidOn(under(token.LITERAL_CATCH, token.VARIABLE_DEF)))
	assert.True(t, Serial.IsValidOn(under(token.OBJBLOCK, token.VARIABLE_DEF)))
	assert.False(t, Serial.IsValidOn(under(token.SLIST, token.VARIABLE_DEF)))
	assert.False(t, Serial.IsValidOn(under(token.FOR_INIT, token.VARIABLE_DEF)))
	assert.False(t, Serial.IsValidOn(under(token.SLIST, token.PARAMETER_DEF)))
	assert.False(t, Serial.IsValidOn(lone(token.METHOD_DEF)))
}

func TestCallableTags(t *testing.T) {
	for _, tag := range []*TagInfo{Exception, Throws} {
		t.Run(tag.Name(), func(t *testing.T) {
			assert.True(t, tag.IsValidOn(lone(token.METHOD_DEF)))
			assert.True(t, tag.IsValidOn(lone(token.CTOR_DEF)))
			assert.False(t, tag.IsValidOn(lone(token.LAMBDA)))
			assert.False(t, tag.IsValidOn(lone(token.CLASS_DEF)))
		})
	}
}

func TestParam(t *testing.T) {
	for _, kind := range []token.TokenType{token.CLASS_DEF, token.INTERFACE_DEF, token.METHOD_DEF, token.CTOR_DEF} {
		assert.True(t, Param.IsValidOn(lone(kind)), kind.String())
	}
	assert.False(t, Param.IsValidOn(lone(token.LAMBDA)))
	assert.False(t, Param.IsValidOn(lone(token.ENUM_DEF)))
}

func TestReturn(t *testing.T) {
	assert.True(t, Return.IsValidOn(typed(token.METHOD_DEF, token.LITERAL_INT, "int")))
	assert.True(t, Return.IsValidOn(typed(token.METHOD_DEF, token.IDENT, "String")))
	assert.False(t, Return.IsValidOn(typed(token.METHOD_DEF, token.LITERAL_VOID, "void")))
	assert.False(t, Return.IsValidOn(typed(token.LAMBDA, token.LITERAL_INT, "int")))
	assert.False(t, Return.IsValidOn(lone(token.METHOD_DEF)), "no declared type")
}

func TestSerialField(t *testing.T) {
	assert.True(t, SerialField.IsValidOn(typed(token.VARIABLE_DEF, token.ARRAY_DECLARATOR, "ObjectStreamField")))
	assert.False(t, SerialField.IsValidOn(typed(token.VARIABLE_DEF, token.ARRAY_DECLARATOR, "1111")))
	assert.False(t, SerialField.IsValidOn(typed(token.VARIABLE_DEF, token.LITERAL_VOID, "ObjectStreamField")))
	assert.False(t, SerialField.IsValidOn(typed(token.LAMBDA, token.ARRAY_DECLARATOR, "ObjectStreamField")))
}

func TestSerialData(t *testing.T) {
	for _, name := range []string{
		"writeObject", "readObject", "writeExternal",
		"readExternal", "writeReplace", "readResolve",
	} {
		assert.True(t, SerialData.IsValidOn(named(name)), name)
	}
	assert.False(t, SerialData.IsValidOn(named("1111")))
	assert.False(t, SerialData.IsValidOn(named("writeobject")))
	assert.False(t, SerialData.IsValidOn(lone(token.LAMBDA)))
}

func TestInheritDoc(t *testing.T) {
	assert.True(t, InheritDoc.IsValidOn(named("toString", token.LITERAL_PUBLIC)))
	assert.True(t, InheritDoc.IsValidOn(named("run")))
	assert.False(t, InheritDoc.IsValidOn(named("of", token.LITERAL_PUBLIC, token.LITERAL_STATIC)))
	assert.False(t, InheritDoc.IsValidOn(named("helper", token.LITERAL_PRIVATE)))
	assert.False(t, InheritDoc.IsValidOn(lone(token.CLASS_DEF)))
}

func TestIsValidOnNil(t *testing.T) {
	for _, tag := range Tags() {
		assert.False(t, tag.IsValidOn(nil), tag.Name())
	}
}
