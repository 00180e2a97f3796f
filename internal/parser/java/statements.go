package java

import (
	sitter "github.com/smacker/go-tree-sitter"

	"github.com/leapstack-labs/leapcheck/pkg/ast"
	"github.com/leapstack-labs/leapcheck/pkg/token"
)

// block converts a braced block to SLIST [statements... RCURLY].
func (c *converter) block(n *sitter.Node) *ast.Node {
	list := c.at(token.SLIST, "{", n)
	for _, child := range children(n) {
		switch child.Type() {
		case "{":
		case "}":
			c.append(list, c.leaf(token.RCURLY, child))
		default:
			c.append(list, c.statement(child)...)
		}
	}
	return list
}

// body converts a statement used as the body of a compound statement.
// Blocks stay blocks; anything else is kept as the bare statement nodes.
func (c *converter) body(n *sitter.Node) []*ast.Node {
	if n == nil {
		return nil
	}
	return c.statement(n)
}

// statement converts one statement. Expression statements and local
// variable declarations yield several sibling nodes.
func (c *converter) statement(n *sitter.Node) []*ast.Node {
	if d := c.typeDeclaration(n); d != nil {
		return []*ast.Node{d}
	}
	switch n.Type() {
	case "block":
		return []*ast.Node{c.block(n)}
	case ";":
		return []*ast.Node{c.leaf(token.EMPTY_STAT, n)}
	case "expression_statement", "explicit_constructor_invocation":
		return c.expressionStatement(n)
	case "local_variable_declaration":
		out := c.variableDefs(n)
		if semi := childOfType(n, ";"); semi != nil {
			out = append(out, c.leaf(token.SEMI, semi))
		}
		return out
	case "if_statement":
		return []*ast.Node{c.ifStatement(n)}
	case "while_statement":
		stmt := c.at(token.LITERAL_WHILE, "while", n)
		c.append(stmt, c.condition(n.ChildByFieldName("condition"))...)
		c.append(stmt, c.body(n.ChildByFieldName("body"))...)
		return []*ast.Node{stmt}
	case "do_statement":
		return []*ast.Node{c.doStatement(n)}
	case "for_statement":
		return []*ast.Node{c.forStatement(n)}
	case "enhanced_for_statement":
		return []*ast.Node{c.forEachStatement(n)}
	case "try_statement", "try_with_resources_statement":
		return []*ast.Node{c.tryStatement(n)}
	case "switch_expression", "switch_statement":
		return []*ast.Node{c.switchNode(n)}
	case "return_statement":
		return []*ast.Node{c.keywordStatement(token.LITERAL_RETURN, n)}
	case "throw_statement":
		return []*ast.Node{c.keywordStatement(token.LITERAL_THROW, n)}
	case "yield_statement":
		return []*ast.Node{c.keywordStatement(token.LITERAL_YIELD, n)}
	case "break_statement":
		return []*ast.Node{c.keywordStatement(token.LITERAL_BREAK, n)}
	case "continue_statement":
		return []*ast.Node{c.keywordStatement(token.LITERAL_CONTINUE, n)}
	case "assert_statement":
		return []*ast.Node{c.keywordStatement(token.LITERAL_ASSERT, n)}
	case "synchronized_statement":
		stmt := c.at(token.LITERAL_SYNCHRONIZED, "synchronized", n)
		for _, child := range named(n) {
			switch child.Type() {
			case "parenthesized_expression":
				c.append(stmt, c.condition(child)...)
			case "block":
				c.append(stmt, c.block(child))
			}
		}
		return []*ast.Node{stmt}
	case "labeled_statement":
		return []*ast.Node{c.labeledStatement(n)}
	}
	return c.expressionStatement(n)
}

// expressionStatement converts "expr ;" to EXPR followed by SEMI.
func (c *converter) expressionStatement(n *sitter.Node) []*ast.Node {
	var out []*ast.Node
	if n.Type() == "explicit_constructor_invocation" {
		out = append(out, c.append(c.at(token.EXPR, "", n), c.constructorCall(n)))
	} else if kids := named(n); len(kids) > 0 {
		out = append(out, c.wrapExpr(kids[0]))
	} else {
		out = append(out, c.wrapExpr(n))
	}
	if semi := childOfType(n, ";"); semi != nil {
		out = append(out, c.leaf(token.SEMI, semi))
	}
	return out
}

// condition converts a parenthesized expression to LPAREN EXPR RPAREN.
func (c *converter) condition(n *sitter.Node) []*ast.Node {
	if n == nil {
		return nil
	}
	var out []*ast.Node
	for _, child := range children(n) {
		switch child.Type() {
		case "(":
			out = append(out, c.leaf(token.LPAREN, child))
		case ")":
			out = append(out, c.leaf(token.RPAREN, child))
		default:
			out = append(out, c.wrapExpr(child))
		}
	}
	return out
}

// ifStatement converts to LITERAL_IF [LPAREN EXPR RPAREN then LITERAL_ELSE?].
// An "else if" chain nests the next LITERAL_IF under LITERAL_ELSE.
func (c *converter) ifStatement(n *sitter.Node) *ast.Node {
	stmt := c.at(token.LITERAL_IF, "if", n)
	c.append(stmt, c.condition(n.ChildByFieldName("condition"))...)
	c.append(stmt, c.body(n.ChildByFieldName("consequence"))...)
	if els := childOfType(n, "else"); els != nil {
		alt := c.leaf(token.LITERAL_ELSE, els)
		c.append(alt, c.body(n.ChildByFieldName("alternative"))...)
		c.append(stmt, alt)
	}
	return stmt
}

// doStatement converts to LITERAL_DO [body DO_WHILE LPAREN EXPR RPAREN SEMI].
func (c *converter) doStatement(n *sitter.Node) *ast.Node {
	stmt := c.at(token.LITERAL_DO, "do", n)
	c.append(stmt, c.body(n.ChildByFieldName("body"))...)
	if while := childOfType(n, "while"); while != nil {
		c.append(stmt, c.leaf(token.DO_WHILE, while))
	}
	c.append(stmt, c.condition(n.ChildByFieldName("condition"))...)
	if semi := childOfType(n, ";"); semi != nil {
		c.append(stmt, c.leaf(token.SEMI, semi))
	}
	return stmt
}

// forStatement converts to
// LITERAL_FOR [LPAREN FOR_INIT SEMI FOR_CONDITION SEMI FOR_ITERATOR RPAREN body].
//
// The three header parts are always present. An empty part takes the
// position of the token that follows it: FOR_INIT and FOR_CONDITION the
// next semicolon, FOR_ITERATOR the closing parenthesis.
func (c *converter) forStatement(n *sitter.Node) *ast.Node {
	stmt := c.at(token.LITERAL_FOR, "for", n)

	var (
		lparen, rparen *sitter.Node
		semis          []*sitter.Node
		decl           *sitter.Node
		inits, updates []*sitter.Node
		cond           *sitter.Node
	)
	// header parts are told apart by the separators they sit between
	for _, child := range children(n) {
		if rparen != nil {
			break
		}
		switch child.Type() {
		case "(":
			lparen = child
		case ")":
			rparen = child
		case ";":
			semis = append(semis, child)
		case ",":
		case "local_variable_declaration":
			decl = child
			if semi := childOfType(child, ";"); semi != nil {
				semis = append(semis, semi)
			}
		default:
			if !child.IsNamed() {
				continue
			}
			switch len(semis) {
			case 0:
				inits = append(inits, child)
			case 1:
				cond = child
			default:
				updates = append(updates, child)
			}
		}
	}
	if lparen == nil || rparen == nil || len(semis) < 2 {
		return stmt
	}

	c.append(stmt, c.leaf(token.LPAREN, lparen))

	var init *ast.Node
	switch {
	case decl != nil:
		init = c.at(token.FOR_INIT, "", decl)
		c.append(init, c.variableDefs(decl)...)
	case len(inits) > 0:
		init = c.at(token.FOR_INIT, "", inits[0])
		c.append(init, c.expressionList(n, inits))
	default:
		init = c.at(token.FOR_INIT, "", semis[0])
	}
	c.append(stmt, init, c.leaf(token.SEMI, semis[0]))

	var forCond *ast.Node
	if cond != nil {
		forCond = c.append(c.at(token.FOR_CONDITION, "", cond), c.wrapExpr(cond))
	} else {
		forCond = c.at(token.FOR_CONDITION, "", semis[1])
	}
	c.append(stmt, forCond, c.leaf(token.SEMI, semis[1]))

	var iter *ast.Node
	if len(updates) > 0 {
		iter = c.append(c.at(token.FOR_ITERATOR, "", updates[0]), c.expressionList(n, updates))
	} else {
		iter = c.at(token.FOR_ITERATOR, "", rparen)
	}
	c.append(stmt, iter, c.leaf(token.RPAREN, rparen))
	c.append(stmt, c.body(n.ChildByFieldName("body"))...)
	return stmt
}

// expressionList converts comma separated expressions of parent to
// ELIST [EXPR COMMA EXPR ...].
func (c *converter) expressionList(parent *sitter.Node, exprs []*sitter.Node) *ast.Node {
	list := c.at(token.ELIST, "", exprs[0])
	for i, e := range exprs {
		if i > 0 {
			if comma := commaBefore(parent, e); comma != nil {
				c.append(list, c.leaf(token.COMMA, comma))
			}
		}
		c.append(list, c.wrapExpr(e))
	}
	return list
}

func commaBefore(parent, n *sitter.Node) *sitter.Node {
	var comma *sitter.Node
	for _, child := range children(parent) {
		if child.StartByte() >= n.StartByte() {
			break
		}
		if child.Type() == "," {
			comma = child
		}
	}
	return comma
}

// forEachStatement converts to
// LITERAL_FOR [LPAREN FOR_EACH_CLAUSE[VARIABLE_DEF COLON EXPR] RPAREN body].
func (c *converter) forEachStatement(n *sitter.Node) *ast.Node {
	stmt := c.at(token.LITERAL_FOR, "for", n)
	var clause *ast.Node
	for _, child := range children(n) {
		switch child.Type() {
		case "(":
			c.append(stmt, c.leaf(token.LPAREN, child))
		case ")":
			c.append(stmt, c.leaf(token.RPAREN, child))
		case ":":
			if clause != nil {
				c.append(clause, c.leaf(token.COLON, child))
			}
		}
		if clause == nil && child.Type() == "identifier" && isField(n, "name", child) {
			clause = c.at(token.FOR_EACH_CLAUSE, "", child)
			def := c.at(token.VARIABLE_DEF, "", child)
			c.append(def, c.modifiers(n), c.declaredType(n, n.ChildByFieldName("dimensions")))
			c.append(def, c.leaf(token.IDENT, child))
			c.append(clause, def)
			c.append(stmt, clause)
		}
	}
	if value := n.ChildByFieldName("value"); value != nil && clause != nil {
		c.append(clause, c.wrapExpr(value))
	}
	c.append(stmt, c.body(n.ChildByFieldName("body"))...)
	return stmt
}

// tryStatement converts to
// LITERAL_TRY [RESOURCE_SPECIFICATION? SLIST LITERAL_CATCH* LITERAL_FINALLY?].
func (c *converter) tryStatement(n *sitter.Node) *ast.Node {
	stmt := c.at(token.LITERAL_TRY, "try", n)
	for _, child := range named(n) {
		switch child.Type() {
		case "resource_specification":
			c.append(stmt, c.resources(child))
		case "block":
			c.append(stmt, c.block(child))
		case "catch_clause":
			c.append(stmt, c.catchClause(child))
		case "finally_clause":
			fin := c.at(token.LITERAL_FINALLY, "finally", child)
			if b := childOfType(child, "block"); b != nil {
				c.append(fin, c.block(b))
			}
			c.append(stmt, fin)
		}
	}
	return stmt
}

func (c *converter) resources(n *sitter.Node) *ast.Node {
	spec := c.at(token.RESOURCE_SPECIFICATION, "", n)
	list := c.at(token.RESOURCES, "", n)
	for _, child := range children(n) {
		switch child.Type() {
		case "(":
			c.append(spec, c.leaf(token.LPAREN, child))
		case ")":
			c.append(spec, list, c.leaf(token.RPAREN, child))
		case ";":
			c.append(list, c.leaf(token.SEMI, child))
		case "resource":
			c.append(list, c.resource(child))
		}
	}
	return spec
}

// resource converts a declared resource to RESOURCE [MODIFIERS TYPE IDENT
// ASSIGN] and a reference to an existing variable to RESOURCE [IDENT].
func (c *converter) resource(n *sitter.Node) *ast.Node {
	res := c.at(token.RESOURCE, "", n)
	name := n.ChildByFieldName("name")
	if name == nil {
		for _, child := range named(n) {
			c.append(res, c.expr(child))
		}
		return res
	}
	c.append(res, c.modifiers(n), c.declaredType(n, n.ChildByFieldName("dimensions")))
	c.append(res, c.leaf(token.IDENT, name))
	if eq := childOfType(n, "="); eq != nil {
		assign := c.leaf(token.ASSIGN, eq)
		if value := n.ChildByFieldName("value"); value != nil {
			c.append(assign, c.wrapExpr(value))
		}
		c.append(res, assign)
	}
	return res
}

// catchClause converts to LITERAL_CATCH [LPAREN PARAMETER_DEF RPAREN SLIST].
// A multi-catch type is a BOR chain under TYPE.
func (c *converter) catchClause(n *sitter.Node) *ast.Node {
	stmt := c.at(token.LITERAL_CATCH, "catch", n)
	for _, child := range children(n) {
		switch child.Type() {
		case "(":
			c.append(stmt, c.leaf(token.LPAREN, child))
		case ")":
			c.append(stmt, c.leaf(token.RPAREN, child))
		case "catch_formal_parameter":
			def := c.at(token.PARAMETER_DEF, "", child)
			c.append(def, c.modifiers(child), c.catchType(child))
			if name := child.ChildByFieldName("name"); name != nil {
				c.append(def, c.leaf(token.IDENT, name))
			}
			c.append(stmt, def)
		case "block":
			c.append(stmt, c.block(child))
		}
	}
	return stmt
}

func (c *converter) catchType(param *sitter.Node) *ast.Node {
	ct := childOfType(param, "catch_type")
	if ct == nil {
		return c.declaredType(param, nil)
	}
	typ := c.at(token.TYPE, "", ct)
	var (
		out *ast.Node
		bar *sitter.Node
	)
	for _, child := range children(ct) {
		if child.Type() == "|" {
			bar = child
			continue
		}
		t := c.typeRef(child)
		if out == nil || bar == nil {
			out = t
			continue
		}
		out = c.append(c.leaf(token.BOR, bar), out, t)
		bar = nil
	}
	return c.append(typ, out)
}

// switchNode converts switch statements and expressions to
// LITERAL_SWITCH [LPAREN EXPR RPAREN LCURLY (CASE_GROUP | SWITCH_RULE)* RCURLY].
func (c *converter) switchNode(n *sitter.Node) *ast.Node {
	sw := c.at(token.LITERAL_SWITCH, "switch", n)
	c.append(sw, c.condition(n.ChildByFieldName("condition"))...)
	blk := n.ChildByFieldName("body")
	if blk == nil {
		return sw
	}
	for _, child := range children(blk) {
		switch child.Type() {
		case "{":
			c.append(sw, c.leaf(token.LCURLY, child))
		case "}":
			c.append(sw, c.leaf(token.RCURLY, child))
		case "switch_block_statement_group":
			c.append(sw, c.caseGroup(child))
		case "switch_rule":
			c.append(sw, c.switchRule(child))
		}
	}
	return sw
}

// caseGroup converts to CASE_GROUP [LITERAL_CASE|LITERAL_DEFAULT... SLIST].
// The SLIST of a case group has no braces.
func (c *converter) caseGroup(n *sitter.Node) *ast.Node {
	group := c.at(token.CASE_GROUP, "", n)
	var label, list *ast.Node
	for _, child := range children(n) {
		switch child.Type() {
		case "switch_label":
			label = c.switchLabel(child)
			c.append(group, label)
		case ":":
			if label != nil {
				c.append(label, c.leaf(token.COLON, child))
			}
		default:
			if list == nil {
				list = c.at(token.SLIST, "", child)
			}
			c.append(list, c.statement(child)...)
		}
	}
	return c.append(group, list)
}

// switchRule converts to SWITCH_RULE [LITERAL_CASE LAMBDA_ARROW body].
func (c *converter) switchRule(n *sitter.Node) *ast.Node {
	rule := c.at(token.SWITCH_RULE, "", n)
	for _, child := range children(n) {
		switch child.Type() {
		case "switch_label":
			c.append(rule, c.switchLabel(child))
		case "->":
			c.append(rule, c.leaf(token.LAMBDA_ARROW, child))
		default:
			c.append(rule, c.statement(child)...)
		}
	}
	return rule
}

func (c *converter) switchLabel(n *sitter.Node) *ast.Node {
	kind := token.LITERAL_CASE
	if first := n.Child(0); first != nil && first.Type() == "default" {
		kind = token.LITERAL_DEFAULT
	}
	label := c.at(kind, c.text(n.Child(0)), n)
	for _, child := range named(n) {
		c.append(label, c.wrapExpr(child))
	}
	return label
}

// keywordStatement converts return, throw, yield, break, continue and
// assert: the keyword node holds the rest of the statement, SEMI included.
func (c *converter) keywordStatement(kind token.TokenType, n *sitter.Node) *ast.Node {
	stmt := c.at(kind, c.text(n.Child(0)), n)
	for i, child := range children(n) {
		if i == 0 {
			continue
		}
		switch child.Type() {
		case ";":
			c.append(stmt, c.leaf(token.SEMI, child))
		case ":":
			c.append(stmt, c.leaf(token.COLON, child))
		case "identifier":
			if kind == token.LITERAL_BREAK || kind == token.LITERAL_CONTINUE {
				c.append(stmt, c.leaf(token.IDENT, child))
			} else {
				c.append(stmt, c.wrapExpr(child))
			}
		default:
			if child.IsNamed() {
				c.append(stmt, c.wrapExpr(child))
			}
		}
	}
	return stmt
}

// labeledStatement converts "label: stmt" to LABELED_STAT at the colon
// with the label IDENT and the statement as children.
func (c *converter) labeledStatement(n *sitter.Node) *ast.Node {
	colon := childOfType(n, ":")
	if colon == nil {
		colon = n
	}
	stmt := c.at(token.LABELED_STAT, ":", colon)
	for _, child := range children(n) {
		switch {
		case child.Type() == ":":
		case child.Type() == "identifier" && stmt.FirstChild() == nil:
			c.append(stmt, c.leaf(token.IDENT, child))
		default:
			c.append(stmt, c.statement(child)...)
		}
	}
	return stmt
}

// isField reports whether child is the node stored in n's field.
func isField(n *sitter.Node, field string, child *sitter.Node) bool {
	f := n.ChildByFieldName(field)
	return f != nil && f.StartByte() == child.StartByte() && f.EndByte() == child.EndByte()
}
