package ast

import (
	"slices"

	"github.com/leapstack-labs/leapcheck/pkg/token"
)

// Resolver queries never fail: a nil node or a missing expected child
// yields the conservative answer (false, nil, "").

// IsLocalDeclaration reports whether n declares a local variable, a for
// loop variable, a catch parameter or a try-with-resources variable.
func IsLocalDeclaration(n *Node) bool {
	if n == nil || n.parent == nil {
		return false
	}
	switch n.kind {
	case token.VARIABLE_DEF:
		switch n.parent.kind {
		case token.SLIST, token.FOR_INIT, token.FOR_EACH_CLAUSE:
			return true
		}
	case token.PARAMETER_DEF:
		return n.parent.kind == token.LITERAL_CATCH
	case token.RESOURCE:
		return n.ChildCount() > 1
	}
	return false
}

// EnclosingContext returns the declaration that owns n. A declaration that
// is not local owns itself. Anything else resolves to its nearest
// non-local declaration ancestor, or to the root when there is none.
func EnclosingContext(n *Node) *Node {
	if n == nil {
		return nil
	}
	if isContext(n) {
		return n
	}
	for p := n.parent; p != nil; p = p.parent {
		if isContext(p) {
			return p
		}
	}
	return n.Root()
}

func isContext(n *Node) bool {
	return n.kind.IsDeclaration() && !IsLocalDeclaration(n)
}

// IsDeclarationContext reports whether n is its own enclosing context, so
// documentation attached to it describes a declaration and not code.
func IsDeclarationContext(n *Node) bool {
	return n != nil && EnclosingContext(n) == n
}

// DeclaredType returns the first child of n's TYPE child.
func DeclaredType(n *Node) *Node {
	if n == nil {
		return nil
	}
	typ := n.FindFirst(token.TYPE)
	if typ == nil {
		return nil
	}
	return typ.firstChild
}

// DeclaredTypeText returns the text of DeclaredType, or "" when absent.
func DeclaredTypeText(n *Node) string {
	if t := DeclaredType(n); t != nil {
		return t.text
	}
	return ""
}

// IsVoidMethod reports whether n is a method declared to return void.
func IsVoidMethod(n *Node) bool {
	if n == nil || n.kind != token.METHOD_DEF {
		return false
	}
	t := DeclaredType(n)
	return t != nil && t.kind == token.LITERAL_VOID
}

// ReturnsValue reports whether n is a method with a known non-void return
// type.
func ReturnsValue(n *Node) bool {
	if n == nil || n.kind != token.METHOD_DEF {
		return false
	}
	t := DeclaredType(n)
	return t != nil && t.kind != token.LITERAL_VOID
}

// Name returns the text of n's first IDENT child.
func Name(n *Node) string {
	if n == nil {
		return ""
	}
	if id := n.FindFirst(token.IDENT); id != nil {
		return id.text
	}
	return ""
}

// MethodNameIn reports whether n is a method whose name is exactly one of
// names.
func MethodNameIn(n *Node, names ...string) bool {
	if n == nil || n.kind != token.METHOD_DEF {
		return false
	}
	id := n.FindFirst(token.IDENT)
	return id != nil && slices.Contains(names, id.text)
}

// HasModifier reports whether n's MODIFIERS child contains kind.
func HasModifier(n *Node, kind token.TokenType) bool {
	if n == nil {
		return false
	}
	mods := n.FindFirst(token.MODIFIERS)
	return mods != nil && mods.Has(kind)
}

// IsStatic reports whether n is declared static.
func IsStatic(n *Node) bool { return HasModifier(n, token.LITERAL_STATIC) }

// IsPrivate reports whether n is declared private.
func IsPrivate(n *Node) bool { return HasModifier(n, token.LITERAL_PRIVATE) }

// FirstToken returns the node of n's subtree that starts earliest in the
// source, n itself included.
func FirstToken(n *Node) *Node {
	if n == nil {
		return nil
	}
	best := n
	walkSubtree(n, func(c *Node) {
		if c.pos.Before(best.pos) {
			best = c
		}
	})
	return best
}

// LastToken returns the node of n's subtree that starts latest in the
// source, n itself included.
func LastToken(n *Node) *Node {
	if n == nil {
		return nil
	}
	best := n
	walkSubtree(n, func(c *Node) {
		if best.pos.Before(c.pos) {
			best = c
		}
	})
	return best
}

// walkSubtree calls fn for every proper descendant of n in pre-order,
// without recursion.
func walkSubtree(n *Node, fn func(*Node)) {
	cur := n.firstChild
	for cur != nil {
		fn(cur)
		if cur.firstChild != nil {
			cur = cur.firstChild
			continue
		}
		for cur != nil && cur != n && cur.nextSibling == nil {
			cur = cur.parent
		}
		if cur == nil || cur == n {
			return
		}
		cur = cur.nextSibling
	}
}
