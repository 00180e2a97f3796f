package ast

import (
	"fmt"

	"github.com/leapstack-labs/leapcheck/pkg/token"
)

// Builder creates and links nodes. It is the only way to mutate a tree and
// stops working once Build has been called.
//
// Linking mistakes (re-parenting a node, creating a cycle, using a sealed
// builder) are programming errors and panic.
type Builder struct {
	sealed bool
	nodes  int
}

// NewBuilder returns an empty builder.
func NewBuilder() *Builder {
	return &Builder{}
}

// New creates a detached node at line (1-based) and column (0-based).
func (b *Builder) New(kind token.TokenType, text string, line, column int) *Node {
	return b.NewAt(kind, text, token.Position{Line: line, Column: column})
}

// NewAt creates a detached node at pos.
func (b *Builder) NewAt(kind token.TokenType, text string, pos token.Position) *Node {
	b.mustBeOpen()
	if !kind.IsValid() {
		panic(fmt.Sprintf("ast: unknown node kind %d", kind))
	}
	b.nodes++
	return &Node{kind: kind, text: text, pos: pos}
}

// Append links children under parent, after any existing children, and
// returns parent.
func (b *Builder) Append(parent *Node, children ...*Node) *Node {
	b.mustBeOpen()
	for _, child := range children {
		if child == nil {
			continue
		}
		if child.parent != nil {
			panic(fmt.Sprintf("ast: %s already has parent %s", child, child.parent))
		}
		if parent.Root() == child {
			panic(fmt.Sprintf("ast: appending %s under %s would create a cycle", child, parent))
		}
		child.parent = parent
		if parent.lastChild == nil {
			parent.firstChild = child
		} else {
			parent.lastChild.nextSibling = child
			child.prevSibling = parent.lastChild
		}
		parent.lastChild = child
	}
	return parent
}

// Build seals the builder and returns root.
func (b *Builder) Build(root *Node) *Node {
	b.mustBeOpen()
	if root.parent != nil {
		panic(fmt.Sprintf("ast: %s is not a root", root))
	}
	b.sealed = true
	return root
}

// Len returns how many nodes the builder created.
func (b *Builder) Len() int {
	return b.nodes
}

func (b *Builder) mustBeOpen() {
	if b.sealed {
		panic("ast: builder used after Build")
	}
}
