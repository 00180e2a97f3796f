package ast

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leapstack-labs/leapcheck/pkg/token"
)

func TestBuilderLinks(t *testing.T) {
	b := NewBuilder()
	root := b.New(token.COMPILATION_UNIT, "", 1, 0)
	a := b.New(token.CLASS_DEF, "CLASS_DEF", 1, 0)
	c := b.New(token.SEMI, ";", 3, 1)
	d := b.New(token.IDENT, "Foo", 1, 6)
	b.Append(root, a, c)
	b.Append(a, d)
	tree := b.Build(root)

	require.Same(t, root, tree)
	assert.Equal(t, 2, root.ChildCount())
	assert.Same(t, a, root.FirstChild())
	assert.Same(t, c, root.LastChild())
	assert.Same(t, c, a.NextSibling())
	assert.Same(t, a, c.PreviousSibling())
	assert.Nil(t, a.PreviousSibling())
	assert.Nil(t, c.NextSibling())
	assert.Same(t, root, d.Parent().Parent())
	assert.Same(t, root, d.Root())
	assert.Equal(t, 4, b.Len())
	assert.Equal(t, "IDENT -> Foo [1:6]", d.String())
}

func TestBuilderTreeInvariants(t *testing.T) {
	b := NewBuilder()
	root := b.New(token.COMPILATION_UNIT, "", 1, 0)
	child := b.New(token.CLASS_DEF, "", 1, 0)
	b.Append(root, child)

	t.Run("child keeps a single parent", func(t *testing.T) {
		other := b.New(token.OBJBLOCK, "", 1, 0)
		assert.Panics(t, func() { b.Append(other, child) })
	})

	t.Run("no cycles", func(t *testing.T) {
		assert.Panics(t, func() { b.Append(child, root) })
	})

	t.Run("unknown kind", func(t *testing.T) {
		assert.Panics(t, func() { b.New(token.TokenType(-5), "", 1, 0) })
	})

	t.Run("sealed after build", func(t *testing.T) {
		b.Build(root)
		assert.Panics(t, func() { b.New(token.IDENT, "x", 1, 0) })
		assert.Panics(t, func() { b.Append(root, &Node{}) })
	})
}

func TestChildCountMatchesSiblingChain(t *testing.T) {
	b := NewBuilder()
	root := b.New(token.SLIST, "{", 1, 0)
	for i := range 5 {
		b.Append(root, b.New(token.EXPR, "EXPR", i+1, 0))
	}
	b.Append(root, b.New(token.RCURLY, "}", 6, 0))

	count := 0
	for c := range root.Children() {
		assert.Same(t, root, c.Parent())
		count++
	}
	assert.Equal(t, count, root.ChildCount())
	assert.Equal(t, 5, root.ChildCountOf(token.EXPR))
	assert.True(t, root.Has(token.RCURLY))
	assert.Nil(t, root.FindFirst(token.SEMI))
}

func TestAncestor(t *testing.T) {
	b := NewBuilder()
	class := b.New(token.CLASS_DEF, "", 1, 0)
	obj := b.New(token.OBJBLOCK, "", 1, 10)
	method := b.New(token.METHOD_DEF, "", 2, 4)
	slist := b.New(token.SLIST, "{", 2, 20)
	b.Append(class, obj)
	b.Append(obj, method)
	b.Append(method, slist)
	b.Build(class)

	assert.Same(t, method, slist.Ancestor(token.METHOD_DEF, token.CLASS_DEF))
	assert.Same(t, class, slist.Ancestor(token.CLASS_DEF))
	assert.Nil(t, slist.Ancestor(token.LAMBDA))
	assert.Nil(t, class.Ancestor(token.CLASS_DEF))
}
