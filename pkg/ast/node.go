// Package ast holds the syntax tree consumed by checks: immutable nodes
// linked by parent, first-child and sibling references, the per-file
// context they were parsed from, and pure queries over tree shape.
package ast

import (
	"iter"
	"strconv"

	"github.com/leapstack-labs/leapcheck/pkg/token"
)

// Node is one syntactic construct. Nodes are created and linked by a
// Builder and never change after Build.
type Node struct {
	kind token.TokenType
	text string
	pos  token.Position

	parent      *Node
	firstChild  *Node
	lastChild   *Node
	nextSibling *Node
	prevSibling *Node
}

// Kind returns the node kind.
func (n *Node) Kind() token.TokenType { return n.kind }

// Text returns the lexeme or synthesized label.
func (n *Node) Text() string { return n.text }

// Pos returns the start position (1-based line, 0-based column).
func (n *Node) Pos() token.Position { return n.pos }

// Line returns the 1-based line number.
func (n *Node) Line() int { return n.pos.Line }

// Column returns the 0-based column number.
func (n *Node) Column() int { return n.pos.Column }

// Parent returns the parent node, nil for the root.
func (n *Node) Parent() *Node { return n.parent }

// FirstChild returns the first child or nil.
func (n *Node) FirstChild() *Node { return n.firstChild }

// LastChild returns the last child or nil.
func (n *Node) LastChild() *Node { return n.lastChild }

// NextSibling returns the next sibling or nil.
func (n *Node) NextSibling() *Node { return n.nextSibling }

// PreviousSibling returns the previous sibling or nil.
func (n *Node) PreviousSibling() *Node { return n.prevSibling }

// HasChildren reports whether n has at least one child.
func (n *Node) HasChildren() bool { return n.firstChild != nil }

// ChildCount counts the children reachable from FirstChild.
func (n *Node) ChildCount() int {
	count := 0
	for c := n.firstChild; c != nil; c = c.nextSibling {
		count++
	}
	return count
}

// ChildCountOf counts the children of the given kind.
func (n *Node) ChildCountOf(kind token.TokenType) int {
	count := 0
	for c := n.firstChild; c != nil; c = c.nextSibling {
		if c.kind == kind {
			count++
		}
	}
	return count
}

// Children iterates the direct children left to right.
func (n *Node) Children() iter.Seq[*Node] {
	return func(yield func(*Node) bool) {
		for c := n.firstChild; c != nil; c = c.nextSibling {
			if !yield(c) {
				return
			}
		}
	}
}

// FindFirst returns the first direct child of the given kind, or nil.
func (n *Node) FindFirst(kind token.TokenType) *Node {
	for c := n.firstChild; c != nil; c = c.nextSibling {
		if c.kind == kind {
			return c
		}
	}
	return nil
}

// Has reports whether a direct child of the given kind exists.
func (n *Node) Has(kind token.TokenType) bool {
	return n.FindFirst(kind) != nil
}

// Ancestor returns the nearest proper ancestor whose kind is one of kinds.
func (n *Node) Ancestor(kinds ...token.TokenType) *Node {
	for p := n.parent; p != nil; p = p.parent {
		for _, k := range kinds {
			if p.kind == k {
				return p
			}
		}
	}
	return nil
}

// Root climbs to the top of the tree.
func (n *Node) Root() *Node {
	r := n
	for r.parent != nil {
		r = r.parent
	}
	return r
}

// String renders the node as KIND -> text [line:col], matching the
// notation used in tree dumps.
func (n *Node) String() string {
	return n.kind.String() + " -> " + n.text + " [" + strconv.Itoa(n.pos.Line) + ":" + strconv.Itoa(n.pos.Column) + "]"
}
