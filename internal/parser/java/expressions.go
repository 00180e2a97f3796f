package java

import (
	"strings"

	sitter "github.com/smacker/go-tree-sitter"

	"github.com/leapstack-labs/leapcheck/pkg/ast"
	"github.com/leapstack-labs/leapcheck/pkg/token"
)

var operatorKinds = map[string]token.TokenType{
	"=":    token.ASSIGN,
	"+=":   token.PLUS_ASSIGN,
	"-=":   token.MINUS_ASSIGN,
	"*=":   token.STAR_ASSIGN,
	"/=":   token.DIV_ASSIGN,
	"%=":   token.MOD_ASSIGN,
	"<<=":  token.SL_ASSIGN,
	">>=":  token.SR_ASSIGN,
	">>>=": token.BSR_ASSIGN,
	"&=":   token.BAND_ASSIGN,
	"^=":   token.BXOR_ASSIGN,
	"|=":   token.BOR_ASSIGN,
	"||":   token.LOR,
	"&&":   token.LAND,
	"|":    token.BOR,
	"^":    token.BXOR,
	"&":    token.BAND,
	"==":   token.EQUAL,
	"!=":   token.NOT_EQUAL,
	"<":    token.LT,
	">":    token.GT,
	"<=":   token.LE,
	">=":   token.GE,
	"<<":   token.SL,
	">>":   token.SR,
	">>>":  token.BSR,
	"+":    token.PLUS,
	"-":    token.MINUS,
	"*":    token.STAR,
	"/":    token.DIV,
	"%":    token.MOD,
}

var unaryKinds = map[string]token.TokenType{
	"+": token.UNARY_PLUS,
	"-": token.UNARY_MINUS,
	"!": token.LNOT,
	"~": token.BNOT,
}

// wrapExpr converts n and wraps it in an EXPR node positioned where the
// expression starts.
func (c *converter) wrapExpr(n *sitter.Node) *ast.Node {
	return c.append(c.at(token.EXPR, "", n), c.expr(n))
}

// expr converts an expression. Operators sit on the operator token with
// their operands as children; parentheses around subexpressions are not
// kept.
func (c *converter) expr(n *sitter.Node) *ast.Node {
	switch n.Type() {
	case "parenthesized_expression":
		if kids := named(n); len(kids) == 1 {
			return c.expr(kids[0])
		}
	case "binary_expression", "assignment_expression":
		op := n.ChildByFieldName("operator")
		if op == nil {
			break
		}
		kind, ok := operatorKinds[c.text(op)]
		if !ok {
			break
		}
		out := c.leaf(kind, op)
		if left := n.ChildByFieldName("left"); left != nil {
			c.append(out, c.expr(left))
		}
		if right := n.ChildByFieldName("right"); right != nil {
			c.append(out, c.expr(right))
		}
		return out
	case "unary_expression":
		op := n.ChildByFieldName("operator")
		if op == nil {
			break
		}
		if kind, ok := unaryKinds[c.text(op)]; ok {
			out := c.leaf(kind, op)
			if operand := n.ChildByFieldName("operand"); operand != nil {
				c.append(out, c.expr(operand))
			}
			return out
		}
	case "update_expression":
		return c.update(n)
	case "ternary_expression":
		return c.ternary(n)
	case "instanceof_expression":
		return c.instanceOf(n)
	case "lambda_expression":
		return c.lambda(n)
	case "method_invocation":
		return c.methodCall(n)
	case "field_access":
		return c.fieldAccess(n)
	case "object_creation_expression":
		return c.objectCreation(n)
	case "array_creation_expression":
		return c.arrayCreation(n)
	case "array_initializer", "element_value_array_initializer":
		return c.arrayInit(n)
	case "array_access":
		return c.arrayAccess(n)
	case "cast_expression":
		return c.cast(n)
	case "method_reference":
		return c.methodRef(n)
	case "class_literal":
		if dot := childOfType(n, "."); dot != nil {
			out := c.leaf(token.DOT, dot)
			if kids := named(n); len(kids) > 0 {
				c.append(out, c.typeRef(kids[0]))
			}
			if cls := childOfType(n, "class"); cls != nil {
				c.append(out, c.leaf(token.LITERAL_CLASS, cls))
			}
			return out
		}
	case "switch_expression":
		return c.switchNode(n)
	case "marker_annotation", "annotation":
		return c.annotation(n)
	}
	if kind, ok := c.literalKind(n); ok {
		return c.leaf(kind, n)
	}
	return c.fallback(n)
}

func (c *converter) literalKind(n *sitter.Node) (token.TokenType, bool) {
	text := c.text(n)
	switch n.Type() {
	case "identifier", "type_identifier", "scoped_identifier", "scoped_type_identifier":
		return token.IDENT, true
	case "decimal_integer_literal", "hex_integer_literal", "octal_integer_literal", "binary_integer_literal":
		if strings.HasSuffix(text, "l") || strings.HasSuffix(text, "L") {
			return token.NUM_LONG, true
		}
		return token.NUM_INT, true
	case "decimal_floating_point_literal", "hex_floating_point_literal":
		if strings.HasSuffix(text, "f") || strings.HasSuffix(text, "F") {
			return token.NUM_FLOAT, true
		}
		return token.NUM_DOUBLE, true
	case "string_literal":
		if strings.HasPrefix(text, `"""`) {
			return token.TEXT_BLOCK_LITERAL, true
		}
		return token.STRING_LITERAL, true
	case "character_literal":
		return token.CHAR_LITERAL, true
	case "true":
		return token.LITERAL_TRUE, true
	case "false":
		return token.LITERAL_FALSE, true
	case "null_literal":
		return token.LITERAL_NULL, true
	case "this":
		return token.LITERAL_THIS, true
	case "super":
		return token.LITERAL_SUPER, true
	}
	return 0, false
}

// fallback keeps the shape of constructs without a dedicated conversion:
// leaves become IDENT, anything else an EXPR over its named children.
func (c *converter) fallback(n *sitter.Node) *ast.Node {
	kids := named(n)
	if len(kids) == 0 {
		return c.leaf(token.IDENT, n)
	}
	out := c.at(token.EXPR, "", n)
	for _, child := range kids {
		c.append(out, c.expr(child))
	}
	return out
}

// update converts ++ and --. Postfix forms become POST_INC and POST_DEC.
func (c *converter) update(n *sitter.Node) *ast.Node {
	kids := children(n)
	if len(kids) != 2 {
		return c.fallback(n)
	}
	op, operand := kids[0], kids[1]
	prefix := true
	if op.IsNamed() {
		op, operand, prefix = kids[1], kids[0], false
	}
	var kind token.TokenType
	switch {
	case c.text(op) == "++" && prefix:
		kind = token.INC
	case c.text(op) == "--" && prefix:
		kind = token.DEC
	case c.text(op) == "++":
		kind = token.POST_INC
	default:
		kind = token.POST_DEC
	}
	return c.append(c.leaf(kind, op), c.expr(operand))
}

// ternary converts to QUESTION [cond expr COLON expr].
func (c *converter) ternary(n *sitter.Node) *ast.Node {
	q := childOfType(n, "?")
	if q == nil {
		return c.fallback(n)
	}
	out := c.leaf(token.QUESTION, q)
	if cond := n.ChildByFieldName("condition"); cond != nil {
		c.append(out, c.expr(cond))
	}
	if cons := n.ChildByFieldName("consequence"); cons != nil {
		c.append(out, c.expr(cons))
	}
	if colon := childOfType(n, ":"); colon != nil {
		c.append(out, c.leaf(token.COLON, colon))
	}
	if alt := n.ChildByFieldName("alternative"); alt != nil {
		c.append(out, c.expr(alt))
	}
	return out
}

// instanceOf converts to LITERAL_INSTANCEOF [expr TYPE].
func (c *converter) instanceOf(n *sitter.Node) *ast.Node {
	kw := childOfType(n, "instanceof")
	if kw == nil {
		return c.fallback(n)
	}
	out := c.leaf(token.LITERAL_INSTANCEOF, kw)
	if left := n.ChildByFieldName("left"); left != nil {
		c.append(out, c.expr(left))
	}
	if right := n.ChildByFieldName("right"); right != nil {
		c.append(out, c.append(c.at(token.TYPE, "", right), c.typeRef(right)))
	} else if pattern := n.ChildByFieldName("pattern"); pattern != nil {
		c.append(out, c.fallback(pattern))
	}
	return out
}

// lambda converts to LAMBDA at the arrow:
// [LPAREN? PARAMETERS RPAREN? (EXPR | SLIST)].
func (c *converter) lambda(n *sitter.Node) *ast.Node {
	arrow := childOfType(n, "->")
	if arrow == nil {
		return c.fallback(n)
	}
	out := c.leaf(token.LAMBDA, arrow)
	if params := n.ChildByFieldName("parameters"); params != nil {
		switch params.Type() {
		case "identifier":
			c.append(out, c.leaf(token.IDENT, params))
		case "formal_parameters":
			c.append(out, c.parameters(params)...)
		default:
			list := c.at(token.PARAMETERS, "", params)
			for _, child := range children(params) {
				switch child.Type() {
				case "(":
					c.append(out, c.leaf(token.LPAREN, child))
				case ")":
					c.append(out, list, c.leaf(token.RPAREN, child))
				case ",":
					c.append(list, c.leaf(token.COMMA, child))
				case "identifier":
					def := c.at(token.PARAMETER_DEF, "", child)
					c.append(def, c.at(token.MODIFIERS, "", child), c.at(token.TYPE, "", child))
					c.append(list, c.append(def, c.leaf(token.IDENT, child)))
				}
			}
		}
	}
	if body := n.ChildByFieldName("body"); body != nil {
		if body.Type() == "block" {
			c.append(out, c.block(body))
		} else {
			c.append(out, c.wrapExpr(body))
		}
	}
	return out
}

// methodCall converts to METHOD_CALL at "(": [(DOT | IDENT) ELIST RPAREN].
func (c *converter) methodCall(n *sitter.Node) *ast.Node {
	args := n.ChildByFieldName("arguments")
	name := n.ChildByFieldName("name")
	if args == nil || name == nil {
		return c.fallback(n)
	}
	out := c.at(token.METHOD_CALL, "(", args)
	callee := c.leaf(token.IDENT, name)
	if object := n.ChildByFieldName("object"); object != nil {
		if dot := lastBefore(n, ".", name); dot != nil {
			callee = c.append(c.leaf(token.DOT, dot), c.expr(object), callee)
		}
	}
	c.append(out, callee)
	return c.append(out, c.argumentList(args, false)...)
}

// constructorCall converts this(...) and super(...) invocations.
func (c *converter) constructorCall(n *sitter.Node) *ast.Node {
	args := n.ChildByFieldName("arguments")
	ctor := n.ChildByFieldName("constructor")
	if args == nil || ctor == nil {
		return c.fallback(n)
	}
	out := c.at(token.METHOD_CALL, "(", args)
	callee := c.expr(ctor)
	if object := n.ChildByFieldName("object"); object != nil {
		if dot := childOfType(n, "."); dot != nil {
			callee = c.append(c.leaf(token.DOT, dot), c.expr(object), callee)
		}
	}
	c.append(out, callee)
	return c.append(out, c.argumentList(args, false)...)
}

// arguments converts an argument list to LPAREN ELIST RPAREN.
func (c *converter) arguments(n *sitter.Node) []*ast.Node {
	return c.argumentList(n, true)
}

// argumentList converts an argument list to ELIST RPAREN, preceded by
// LPAREN when withOpen is set.
func (c *converter) argumentList(n *sitter.Node, withOpen bool) []*ast.Node {
	var out []*ast.Node
	list := c.at(token.ELIST, "", n)
	for _, child := range children(n) {
		switch child.Type() {
		case "(":
			if withOpen {
				out = append(out, c.leaf(token.LPAREN, child))
			}
		case ")":
			out = append(out, list, c.leaf(token.RPAREN, child))
		case ",":
			c.append(list, c.leaf(token.COMMA, child))
		default:
			c.append(list, c.wrapExpr(child))
		}
	}
	return out
}

// fieldAccess converts to DOT [object member].
func (c *converter) fieldAccess(n *sitter.Node) *ast.Node {
	field := n.ChildByFieldName("field")
	object := n.ChildByFieldName("object")
	if field == nil || object == nil {
		return c.fallback(n)
	}
	dot := lastBefore(n, ".", field)
	if dot == nil {
		return c.fallback(n)
	}
	return c.append(c.leaf(token.DOT, dot), c.expr(object), c.expr(field))
}

// objectCreation converts to LITERAL_NEW [type LPAREN ELIST RPAREN OBJBLOCK?].
func (c *converter) objectCreation(n *sitter.Node) *ast.Node {
	kw := childOfType(n, "new")
	if kw == nil {
		return c.fallback(n)
	}
	out := c.leaf(token.LITERAL_NEW, kw)
	if t := n.ChildByFieldName("type"); t != nil {
		c.append(out, c.typeRef(t))
	}
	if args := n.ChildByFieldName("arguments"); args != nil {
		c.append(out, c.arguments(args)...)
	}
	if body := childOfType(n, "class_body"); body != nil {
		c.append(out, c.objBlock(body))
	}
	return out
}

// arrayCreation converts to LITERAL_NEW [type ARRAY_DECLARATOR... ARRAY_INIT?].
func (c *converter) arrayCreation(n *sitter.Node) *ast.Node {
	kw := childOfType(n, "new")
	if kw == nil {
		return c.fallback(n)
	}
	out := c.leaf(token.LITERAL_NEW, kw)
	name := ""
	if t := n.ChildByFieldName("type"); t != nil {
		name = simpleName(c.text(t))
		c.append(out, c.typeRef(t))
	}
	for _, child := range named(n) {
		switch child.Type() {
		case "dimensions_expr":
			decl := c.at(token.ARRAY_DECLARATOR, name, child)
			for _, e := range named(child) {
				c.append(decl, c.wrapExpr(e))
			}
			c.append(out, decl)
		case "dimensions":
			for range strings.Count(c.text(child), "[") {
				c.append(out, c.at(token.ARRAY_DECLARATOR, name, child))
			}
		case "array_initializer":
			c.append(out, c.arrayInit(child))
		}
	}
	return out
}

// arrayInit converts to ARRAY_INIT at "{": [elements... RCURLY].
func (c *converter) arrayInit(n *sitter.Node) *ast.Node {
	out := c.at(token.ARRAY_INIT, "{", n)
	for _, child := range children(n) {
		switch child.Type() {
		case "{":
		case "}":
			c.append(out, c.leaf(token.RCURLY, child))
		case ",":
			c.append(out, c.leaf(token.COMMA, child))
		default:
			c.append(out, c.wrapExpr(child))
		}
	}
	return out
}

// arrayAccess converts to INDEX_OP at "[": [array EXPR].
func (c *converter) arrayAccess(n *sitter.Node) *ast.Node {
	open := childOfType(n, "[")
	if open == nil {
		return c.fallback(n)
	}
	out := c.leaf(token.INDEX_OP, open)
	if array := n.ChildByFieldName("array"); array != nil {
		c.append(out, c.expr(array))
	}
	if index := n.ChildByFieldName("index"); index != nil {
		c.append(out, c.wrapExpr(index))
	}
	return out
}

// cast converts to TYPECAST at "(": [TYPE RPAREN expr].
func (c *converter) cast(n *sitter.Node) *ast.Node {
	open := childOfType(n, "(")
	if open == nil {
		return c.fallback(n)
	}
	out := c.leaf(token.TYPECAST, open)
	if t := n.ChildByFieldName("type"); t != nil {
		c.append(out, c.append(c.at(token.TYPE, "", t), c.typeRef(t)))
	}
	if closing := childOfType(n, ")"); closing != nil {
		c.append(out, c.leaf(token.RPAREN, closing))
	}
	if value := n.ChildByFieldName("value"); value != nil {
		c.append(out, c.expr(value))
	}
	return out
}

// methodRef converts to METHOD_REF at "::": [target member].
func (c *converter) methodRef(n *sitter.Node) *ast.Node {
	sep := childOfType(n, "::")
	if sep == nil {
		return c.fallback(n)
	}
	out := c.leaf(token.METHOD_REF, sep)
	for _, child := range children(n) {
		switch {
		case child.Type() == "::":
		case child.Type() == "new":
			c.append(out, c.leaf(token.LITERAL_NEW, child))
		case child.IsNamed():
			c.append(out, c.expr(child))
		}
	}
	return out
}

// lastBefore returns the last child of n of type typ that starts before
// limit.
func lastBefore(n *sitter.Node, typ string, limit *sitter.Node) *sitter.Node {
	var found *sitter.Node
	for _, child := range children(n) {
		if child.StartByte() >= limit.StartByte() {
			break
		}
		if child.Type() == typ {
			found = child
		}
	}
	return found
}
