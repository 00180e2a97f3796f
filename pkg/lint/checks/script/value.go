package script

import (
	"fmt"
	"strings"

	"go.starlark.net/starlark"
	"go.starlark.net/syntax"

	"github.com/leapstack-labs/leapcheck/pkg/ast"
	"github.com/leapstack-labs/leapcheck/pkg/lint"
)

// nodeValue exposes an *ast.Node to scripts as a read-only object:
//
//	node.kind, node.text, node.line, node.column,
//	node.parent, node.children, node.next_sibling, node.prev_sibling
type nodeValue struct {
	n *ast.Node
}

var (
	_ starlark.HasAttrs   = nodeValue{}
	_ starlark.Comparable = nodeValue{}
)

var nodeAttrs = []string{"children", "column", "kind", "line", "next_sibling", "parent", "prev_sibling", "text"}

func wrap(n *ast.Node) starlark.Value {
	if n == nil {
		return starlark.None
	}
	return nodeValue{n: n}
}

func (v nodeValue) String() string        { return v.n.String() }
func (v nodeValue) Type() string          { return "node" }
func (v nodeValue) Freeze()               {}
func (v nodeValue) Truth() starlark.Bool  { return starlark.True }
func (v nodeValue) Hash() (uint32, error) { return 0, fmt.Errorf("unhashable type: node") }
func (v nodeValue) AttrNames() []string   { return nodeAttrs }

func (v nodeValue) Attr(name string) (starlark.Value, error) {
	switch name {
	case "kind":
		return starlark.String(v.n.Kind().String()), nil
	case "text":
		return starlark.String(v.n.Text()), nil
	case "line":
		return starlark.MakeInt(v.n.Line()), nil
	case "column":
		return starlark.MakeInt(v.n.Column()), nil
	case "parent":
		return wrap(v.n.Parent()), nil
	case "next_sibling":
		return wrap(v.n.NextSibling()), nil
	case "prev_sibling":
		return wrap(v.n.PreviousSibling()), nil
	case "children":
		var items []starlark.Value
		for c := range v.n.Children() {
			items = append(items, wrap(c))
		}
		return starlark.NewList(items), nil
	}
	return nil, nil
}

// CompareSameType makes nodes comparable by identity with == and !=.
func (v nodeValue) CompareSameType(op syntax.Token, y starlark.Value, _ int) (bool, error) {
	other := y.(nodeValue)
	switch op {
	case syntax.EQL:
		return v.n == other.n, nil
	case syntax.NEQ:
		return v.n != other.n, nil
	}
	return false, fmt.Errorf("%s %s %s not supported", v.Type(), op, y.Type())
}

// configDict converts the "config" property ("key=value, key2=value2") to
// the dict scripts read their settings from.
func configDict(props lint.Properties) (*starlark.Dict, error) {
	items := lint.SplitList(props.String("config", ""))
	dict := starlark.NewDict(len(items))
	for _, item := range items {
		key, value, ok := strings.Cut(item, "=")
		if !ok {
			return nil, fmt.Errorf("config entry %q is not key=value", item)
		}
		if err := dict.SetKey(starlark.String(strings.TrimSpace(key)), starlark.String(strings.TrimSpace(value))); err != nil {
			return nil, err
		}
	}
	dict.Freeze()
	return dict, nil
}
