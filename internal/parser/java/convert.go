package java

import (
	"strings"

	sitter "github.com/smacker/go-tree-sitter"

	"github.com/leapstack-labs/leapcheck/pkg/ast"
	"github.com/leapstack-labs/leapcheck/pkg/token"
)

// converter builds ast nodes from one tree-sitter tree. Node shapes follow
// the conventions checks rely on:
//
//   - declarations start at their first token, annotations included, and
//     carry a MODIFIERS child even when it is empty
//   - blocks are SLIST nodes at "{" whose last child is RCURLY; type bodies
//     are OBJBLOCK nodes framed by LCURLY and RCURLY
//   - operators sit on the operator token with their operands as children
//   - local variables and expression statements are followed by a SEMI
//     sibling inside their SLIST
type converter struct {
	src      []byte
	lines    []string
	b        *ast.Builder
	comments []*token.Comment
}

func newConverter(src []byte, lines []string) *converter {
	return &converter{src: src, lines: lines, b: ast.NewBuilder()}
}

func (c *converter) pos(n *sitter.Node) token.Position {
	return position(c.lines, n.StartPoint(), n.StartByte())
}

func (c *converter) endPos(n *sitter.Node) token.Position {
	return position(c.lines, n.EndPoint(), n.EndByte())
}

func (c *converter) text(n *sitter.Node) string {
	return n.Content(c.src)
}

// leaf creates a node of kind for n, with n's text and position.
func (c *converter) leaf(kind token.TokenType, n *sitter.Node) *ast.Node {
	return c.b.NewAt(kind, c.text(n), c.pos(n))
}

// at creates a node of kind with text, positioned at n.
func (c *converter) at(kind token.TokenType, text string, n *sitter.Node) *ast.Node {
	return c.b.NewAt(kind, text, c.pos(n))
}

func (c *converter) append(parent *ast.Node, children ...*ast.Node) *ast.Node {
	return c.b.Append(parent, children...)
}

func isComment(n *sitter.Node) bool {
	switch n.Type() {
	case "comment", "line_comment", "block_comment":
		return true
	}
	return false
}

// children returns every child of n, comments excluded.
func children(n *sitter.Node) []*sitter.Node {
	out := make([]*sitter.Node, 0, n.ChildCount())
	for i := 0; i < int(n.ChildCount()); i++ {
		child := n.Child(i)
		if child != nil && !isComment(child) {
			out = append(out, child)
		}
	}
	return out
}

// named returns the named children of n, comments excluded.
func named(n *sitter.Node) []*sitter.Node {
	out := make([]*sitter.Node, 0, n.NamedChildCount())
	for i := 0; i < int(n.NamedChildCount()); i++ {
		child := n.NamedChild(i)
		if child != nil && !isComment(child) {
			out = append(out, child)
		}
	}
	return out
}

// childOfType returns the first child of n with the given node type.
func childOfType(n *sitter.Node, typ string) *sitter.Node {
	for _, child := range children(n) {
		if child.Type() == typ {
			return child
		}
	}
	return nil
}

// collectComments records every comment in the tree in source order.
func (c *converter) collectComments(n *sitter.Node) {
	stack := []*sitter.Node{n}
	for len(stack) > 0 {
		cur := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if isComment(cur) {
			span := token.Span{Start: c.pos(cur), End: c.endPos(cur)}
			c.comments = append(c.comments, token.NewComment(c.text(cur), span))
			continue
		}
		for i := int(cur.ChildCount()) - 1; i >= 0; i-- {
			if child := cur.Child(i); child != nil {
				stack = append(stack, child)
			}
		}
	}
}

func (c *converter) compilationUnit(root *sitter.Node) *ast.Node {
	c.collectComments(root)
	unit := c.b.New(token.COMPILATION_UNIT, "", 1, 0)
	for _, child := range named(root) {
		c.append(unit, c.topLevel(child)...)
	}
	return unit
}

func (c *converter) topLevel(n *sitter.Node) []*ast.Node {
	switch n.Type() {
	case "package_declaration":
		return []*ast.Node{c.packageDef(n)}
	case "import_declaration":
		return []*ast.Node{c.importDef(n)}
	}
	if d := c.typeDeclaration(n); d != nil {
		return []*ast.Node{d}
	}
	return c.statement(n)
}

func (c *converter) packageDef(n *sitter.Node) *ast.Node {
	def := c.at(token.PACKAGE_DEF, "package", n)
	annotations := c.at(token.ANNOTATIONS, "", n)
	c.append(def, annotations)
	for _, child := range children(n) {
		switch child.Type() {
		case "marker_annotation", "annotation":
			c.append(annotations, c.annotation(child))
		case "identifier", "scoped_identifier":
			c.append(def, c.leaf(token.IDENT, child))
		case ";":
			c.append(def, c.leaf(token.SEMI, child))
		}
	}
	return def
}

func (c *converter) importDef(n *sitter.Node) *ast.Node {
	kind := token.IMPORT
	if childOfType(n, "static") != nil {
		kind = token.STATIC_IMPORT
	}
	imp := c.at(kind, "import", n)
	var name strings.Builder
	var nameAt *sitter.Node
	for _, child := range children(n) {
		switch child.Type() {
		case "identifier", "scoped_identifier", "asterisk", ".":
			if nameAt == nil {
				nameAt = child
			}
			name.WriteString(c.text(child))
		case ";":
			if nameAt != nil {
				c.append(imp, c.at(token.IDENT, name.String(), nameAt))
			}
			c.append(imp, c.leaf(token.SEMI, child))
		}
	}
	return imp
}

// typeDeclaration converts class-like declarations and returns nil for
// anything else.
func (c *converter) typeDeclaration(n *sitter.Node) *ast.Node {
	var kind token.TokenType
	switch n.Type() {
	case "class_declaration":
		kind = token.CLASS_DEF
	case "interface_declaration":
		kind = token.INTERFACE_DEF
	case "enum_declaration":
		kind = token.ENUM_DEF
	case "annotation_type_declaration":
		kind = token.ANNOTATION_DEF
	case "record_declaration":
		kind = token.RECORD_DEF
	default:
		return nil
	}

	def := c.at(kind, "", n)
	c.append(def, c.modifiers(n))
	for _, child := range children(n) {
		switch child.Type() {
		case "modifiers":
		case "class":
			c.append(def, c.leaf(token.LITERAL_CLASS, child))
		case "identifier":
			c.append(def, c.leaf(token.IDENT, child))
		case "type_parameters":
			c.append(def, c.typeParameters(child))
		case "superclass", "extends_interfaces":
			c.append(def, c.clause(token.EXTENDS_CLAUSE, child))
		case "super_interfaces":
			c.append(def, c.clause(token.IMPLEMENTS_CLAUSE, child))
		case "permits":
			c.append(def, c.clause(token.PERMITS_CLAUSE, child))
		case "formal_parameters":
			c.append(def, c.recordComponents(child)...)
		case "class_body", "interface_body", "annotation_type_body", "enum_body":
			c.append(def, c.objBlock(child))
		}
	}
	return def
}

// modifiers builds the MODIFIERS child of declaration n. Without modifiers
// it is empty and positioned where the declaration starts.
func (c *converter) modifiers(n *sitter.Node) *ast.Node {
	mods := childOfType(n, "modifiers")
	if mods == nil {
		return c.at(token.MODIFIERS, "", n)
	}
	out := c.at(token.MODIFIERS, "", mods)
	for _, child := range children(mods) {
		switch child.Type() {
		case "marker_annotation", "annotation":
			c.append(out, c.annotation(child))
		default:
			if kind, ok := modifierKinds[child.Type()]; ok {
				c.append(out, c.leaf(kind, child))
			}
		}
	}
	return out
}

var modifierKinds = map[string]token.TokenType{
	"public":       token.LITERAL_PUBLIC,
	"protected":    token.LITERAL_PROTECTED,
	"private":      token.LITERAL_PRIVATE,
	"static":       token.LITERAL_STATIC,
	"abstract":     token.ABSTRACT,
	"final":        token.FINAL,
	"transient":    token.LITERAL_TRANSIENT,
	"volatile":     token.LITERAL_VOLATILE,
	"native":       token.LITERAL_NATIVE,
	"strictfp":     token.STRICTFP,
	"synchronized": token.LITERAL_SYNCHRONIZED,
	"default":      token.LITERAL_DEFAULT,
	"sealed":       token.LITERAL_SEALED,
	"non-sealed":   token.LITERAL_NON_SEALED,
}

func (c *converter) annotation(n *sitter.Node) *ast.Node {
	ann := c.at(token.ANNOTATION, "", n)
	for _, child := range children(n) {
		switch child.Type() {
		case "@":
			c.append(ann, c.leaf(token.AT, child))
		case "identifier", "scoped_identifier":
			c.append(ann, c.leaf(token.IDENT, child))
		case "annotation_argument_list":
			for _, arg := range children(child) {
				switch arg.Type() {
				case "(":
					c.append(ann, c.leaf(token.LPAREN, arg))
				case ")":
					c.append(ann, c.leaf(token.RPAREN, arg))
				case ",":
					c.append(ann, c.leaf(token.COMMA, arg))
				case "element_value_pair":
					pair := c.at(token.ANNOTATION_MEMBER_VALUE_PAIR, "", arg)
					if key := arg.ChildByFieldName("key"); key != nil {
						c.append(pair, c.leaf(token.IDENT, key))
					}
					if eq := childOfType(arg, "="); eq != nil {
						c.append(pair, c.leaf(token.ASSIGN, eq))
					}
					if value := arg.ChildByFieldName("value"); value != nil {
						c.append(pair, c.expr(value))
					}
					c.append(ann, pair)
				default:
					c.append(ann, c.expr(arg))
				}
			}
		}
	}
	return ann
}

func (c *converter) clause(kind token.TokenType, n *sitter.Node) *ast.Node {
	out := c.at(kind, "", n)
	for _, child := range named(n) {
		if child.Type() == "type_list" {
			for _, t := range named(child) {
				c.append(out, c.typeRef(t))
			}
			continue
		}
		c.append(out, c.typeRef(child))
	}
	return out
}

func (c *converter) typeParameters(n *sitter.Node) *ast.Node {
	out := c.at(token.TYPE_PARAMETERS, "", n)
	for _, child := range named(n) {
		if child.Type() != "type_parameter" {
			continue
		}
		param := c.at(token.TYPE_PARAMETER, "", child)
		for _, part := range named(child) {
			switch part.Type() {
			case "type_identifier", "identifier":
				c.append(param, c.leaf(token.IDENT, part))
			case "type_bound":
				bound := c.at(token.TYPE_UPPER_BOUNDS, "", part)
				for _, t := range named(part) {
					c.append(bound, c.typeRef(t))
				}
				c.append(param, bound)
			}
		}
		c.append(out, param)
	}
	return out
}

func (c *converter) recordComponents(n *sitter.Node) []*ast.Node {
	var out []*ast.Node
	comps := c.at(token.RECORD_COMPONENTS, "", n)
	for _, child := range children(n) {
		switch child.Type() {
		case "(":
			out = append(out, c.leaf(token.LPAREN, child))
		case ")":
			out = append(out, comps, c.leaf(token.RPAREN, child))
		case ",":
			c.append(comps, c.leaf(token.COMMA, child))
		case "formal_parameter", "spread_parameter":
			def := c.at(token.RECORD_COMPONENT_DEF, "", child)
			c.append(def, c.modifiers(child))
			c.append(def, c.declaredType(child, nil))
			if name := child.ChildByFieldName("name"); name != nil {
				c.append(def, c.leaf(token.IDENT, name))
			}
			c.append(comps, def)
		}
	}
	return out
}

// objBlock converts a type body. Enum constants and the declarations after
// them share the one block.
func (c *converter) objBlock(n *sitter.Node) *ast.Node {
	block := c.at(token.OBJBLOCK, "{", n)
	c.members(block, n)
	return block
}

func (c *converter) members(block *ast.Node, n *sitter.Node) {
	for _, child := range children(n) {
		switch child.Type() {
		case "{":
			c.append(block, c.leaf(token.LCURLY, child))
		case "}":
			c.append(block, c.leaf(token.RCURLY, child))
		case ";":
			c.append(block, c.leaf(token.SEMI, child))
		case ",":
			c.append(block, c.leaf(token.COMMA, child))
		case "enum_body_declarations":
			c.members(block, child)
		default:
			c.append(block, c.member(child)...)
		}
	}
}

func (c *converter) member(n *sitter.Node) []*ast.Node {
	if d := c.typeDeclaration(n); d != nil {
		return []*ast.Node{d}
	}
	switch n.Type() {
	case "field_declaration", "constant_declaration":
		defs := c.variableDefs(n)
		if semi := childOfType(n, ";"); semi != nil && len(defs) > 0 {
			c.append(defs[len(defs)-1], c.leaf(token.SEMI, semi))
		}
		return defs
	case "method_declaration":
		return []*ast.Node{c.method(token.METHOD_DEF, n)}
	case "constructor_declaration":
		return []*ast.Node{c.method(token.CTOR_DEF, n)}
	case "compact_constructor_declaration":
		return []*ast.Node{c.method(token.COMPACT_CTOR_DEF, n)}
	case "annotation_type_element_declaration":
		return []*ast.Node{c.annotationField(n)}
	case "enum_constant":
		return []*ast.Node{c.enumConstant(n)}
	case "static_initializer":
		init := c.at(token.STATIC_INIT, "static", n)
		if body := childOfType(n, "block"); body != nil {
			c.append(init, c.block(body))
		}
		return []*ast.Node{init}
	case "block":
		return []*ast.Node{c.append(c.at(token.INSTANCE_INIT, "", n), c.block(n))}
	}
	return nil
}

// method converts methods and constructors:
// MODIFIERS [TYPE_PARAMETERS] [TYPE] IDENT LPAREN PARAMETERS RPAREN
// [LITERAL_THROWS] (SLIST | SEMI).
func (c *converter) method(kind token.TokenType, n *sitter.Node) *ast.Node {
	def := c.at(kind, "", n)
	c.append(def, c.modifiers(n))
	if tp := childOfType(n, "type_parameters"); tp != nil {
		c.append(def, c.typeParameters(tp))
	}
	if kind == token.METHOD_DEF {
		c.append(def, c.declaredType(n, childOfType(n, "dimensions")))
	}
	if name := n.ChildByFieldName("name"); name != nil {
		c.append(def, c.leaf(token.IDENT, name))
	}
	if params := n.ChildByFieldName("parameters"); params != nil {
		c.append(def, c.parameters(params)...)
	}
	if throws := childOfType(n, "throws"); throws != nil {
		clause := c.at(token.LITERAL_THROWS, "throws", throws)
		for _, t := range named(throws) {
			c.append(clause, c.typeRef(t))
		}
		c.append(def, clause)
	}
	if body := n.ChildByFieldName("body"); body != nil {
		c.append(def, c.block(body))
	} else if semi := childOfType(n, ";"); semi != nil {
		c.append(def, c.leaf(token.SEMI, semi))
	}
	return def
}

// parameters converts formal_parameters to LPAREN PARAMETERS RPAREN.
func (c *converter) parameters(n *sitter.Node) []*ast.Node {
	var out []*ast.Node
	params := c.at(token.PARAMETERS, "", n)
	for _, child := range children(n) {
		switch child.Type() {
		case "(":
			out = append(out, c.leaf(token.LPAREN, child))
		case ")":
			out = append(out, params, c.leaf(token.RPAREN, child))
		case ",":
			c.append(params, c.leaf(token.COMMA, child))
		case "formal_parameter", "spread_parameter", "receiver_parameter":
			c.append(params, c.parameterDef(child))
		}
	}
	return out
}

func (c *converter) parameterDef(n *sitter.Node) *ast.Node {
	def := c.at(token.PARAMETER_DEF, "", n)
	c.append(def, c.modifiers(n))
	var dims *sitter.Node
	name := n.ChildByFieldName("name")
	if name == nil {
		// spread parameters keep their name in a variable_declarator
		if decl := childOfType(n, "variable_declarator"); decl != nil {
			name = decl.ChildByFieldName("name")
			dims = decl.ChildByFieldName("dimensions")
		}
	} else {
		dims = n.ChildByFieldName("dimensions")
	}
	c.append(def, c.declaredType(n, dims))
	if ellipsis := childOfType(n, "..."); ellipsis != nil {
		c.append(def, c.leaf(token.ELLIPSIS, ellipsis))
	}
	if name != nil {
		c.append(def, c.leaf(token.IDENT, name))
	}
	return def
}

func (c *converter) annotationField(n *sitter.Node) *ast.Node {
	def := c.at(token.ANNOTATION_FIELD_DEF, "", n)
	c.append(def, c.modifiers(n))
	c.append(def, c.declaredType(n, childOfType(n, "dimensions")))
	for _, child := range children(n) {
		switch child.Type() {
		case "identifier":
			c.append(def, c.leaf(token.IDENT, child))
		case "(":
			c.append(def, c.leaf(token.LPAREN, child))
		case ")":
			c.append(def, c.leaf(token.RPAREN, child))
		case "default":
			dflt := c.leaf(token.LITERAL_DEFAULT, child)
			if value := n.ChildByFieldName("value"); value != nil {
				c.append(dflt, c.expr(value))
			}
			c.append(def, dflt)
		case ";":
			c.append(def, c.leaf(token.SEMI, child))
		}
	}
	return def
}

func (c *converter) enumConstant(n *sitter.Node) *ast.Node {
	def := c.at(token.ENUM_CONSTANT_DEF, "", n)
	annotations := c.at(token.ANNOTATIONS, "", n)
	c.append(def, annotations)
	for _, child := range children(n) {
		switch child.Type() {
		case "modifiers":
			for _, m := range named(child) {
				c.append(annotations, c.annotation(m))
			}
		case "identifier":
			c.append(def, c.leaf(token.IDENT, child))
		case "argument_list":
			c.append(def, c.arguments(child)...)
		case "class_body":
			c.append(def, c.objBlock(child))
		}
	}
	return def
}

// variableDefs converts a field or local variable declaration to one
// VARIABLE_DEF per declarator. Each gets its own MODIFIERS and TYPE.
func (c *converter) variableDefs(n *sitter.Node) []*ast.Node {
	var defs []*ast.Node
	for _, decl := range children(n) {
		if decl.Type() != "variable_declarator" {
			continue
		}
		at := n
		if len(defs) > 0 {
			at = decl
		}
		def := c.at(token.VARIABLE_DEF, "", at)
		c.append(def, c.modifiers(n))
		c.append(def, c.declaredType(n, decl.ChildByFieldName("dimensions")))
		c.declarator(def, decl)
		defs = append(defs, def)
	}
	return defs
}

// declarator appends IDENT and the optional initializer of a
// variable_declarator.
func (c *converter) declarator(def *ast.Node, decl *sitter.Node) {
	if name := decl.ChildByFieldName("name"); name != nil {
		c.append(def, c.leaf(token.IDENT, name))
	}
	if eq := childOfType(decl, "="); eq != nil {
		assign := c.leaf(token.ASSIGN, eq)
		if value := decl.ChildByFieldName("value"); value != nil {
			if value.Type() == "array_initializer" {
				c.append(assign, c.expr(value))
			} else {
				c.append(assign, c.wrapExpr(value))
			}
		}
		c.append(def, assign)
	}
}

// declaredType builds the TYPE child for declaration n from its "type"
// field. dims adds C-style array dimensions written after the name.
func (c *converter) declaredType(n *sitter.Node, dims *sitter.Node) *ast.Node {
	t := typeChild(n)
	if t == nil {
		return c.at(token.TYPE, "", n)
	}
	out := c.at(token.TYPE, "", t)
	inner := c.typeRef(t)
	if dims != nil {
		inner = c.arrayOf(inner, dims, simpleName(c.text(t)))
	}
	return c.append(out, inner)
}

// typeRef converts a type expression.
func (c *converter) typeRef(n *sitter.Node) *ast.Node {
	switch n.Type() {
	case "void_type":
		return c.leaf(token.LITERAL_VOID, n)
	case "integral_type", "floating_point_type", "boolean_type":
		if kind, ok := primitiveKinds[c.text(n)]; ok {
			return c.leaf(kind, n)
		}
	case "generic_type":
		var base *ast.Node
		for _, child := range named(n) {
			switch child.Type() {
			case "type_arguments":
				if base != nil {
					c.append(base, c.typeArguments(child))
				}
			default:
				base = c.typeRef(child)
			}
		}
		if base != nil {
			return base
		}
	case "array_type":
		element := n.ChildByFieldName("element")
		dims := n.ChildByFieldName("dimensions")
		if element != nil && dims != nil {
			return c.arrayOf(c.typeRef(element), dims, simpleName(c.text(element)))
		}
	case "annotated_type":
		for _, child := range named(n) {
			if child.Type() != "marker_annotation" && child.Type() != "annotation" {
				return c.typeRef(child)
			}
		}
	case "wildcard":
		w := c.at(token.WILDCARD_TYPE, "?", n)
		for _, child := range children(n) {
			switch child.Type() {
			case "extends":
				if bound := lastNamed(n); bound != nil {
					c.append(w, c.append(c.at(token.TYPE_UPPER_BOUNDS, "extends", child), c.typeRef(bound)))
				}
			case "super":
				if bound := lastNamed(n); bound != nil {
					c.append(w, c.append(c.at(token.TYPE_LOWER_BOUNDS, "super", child), c.typeRef(bound)))
				}
			}
		}
		return w
	}
	return c.leaf(token.IDENT, n)
}

var primitiveKinds = map[string]token.TokenType{
	"void":    token.LITERAL_VOID,
	"boolean": token.LITERAL_BOOLEAN,
	"byte":    token.LITERAL_BYTE,
	"char":    token.LITERAL_CHAR,
	"short":   token.LITERAL_SHORT,
	"int":     token.LITERAL_INT,
	"long":    token.LITERAL_LONG,
	"float":   token.LITERAL_FLOAT,
	"double":  token.LITERAL_DOUBLE,
}

func (c *converter) typeArguments(n *sitter.Node) *ast.Node {
	args := c.at(token.TYPE_ARGUMENTS, "<", n)
	for _, child := range named(n) {
		c.append(args, c.append(c.at(token.TYPE_ARGUMENT, "", child), c.typeRef(child)))
	}
	return args
}

// arrayOf wraps element in one ARRAY_DECLARATOR per "[]" of dims. The
// declarator's text is the element's simple type name, so a field of type
// ObjectStreamField[] reads as ARRAY_DECLARATOR "ObjectStreamField".
func (c *converter) arrayOf(element *ast.Node, dims *sitter.Node, name string) *ast.Node {
	out := element
	for range strings.Count(c.text(dims), "[") {
		out = c.append(c.at(token.ARRAY_DECLARATOR, name, dims), out)
	}
	return out
}

// simpleName strips package qualifiers, type arguments and array brackets:
// "java.util.List<String>[]" becomes "List".
func simpleName(typ string) string {
	if i := strings.IndexAny(typ, "<["); i >= 0 {
		typ = typ[:i]
	}
	typ = strings.TrimSpace(typ)
	if i := strings.LastIndexByte(typ, '.'); i >= 0 {
		typ = typ[i+1:]
	}
	return typ
}

func lastNamed(n *sitter.Node) *sitter.Node {
	kids := named(n)
	if len(kids) == 0 {
		return nil
	}
	return kids[len(kids)-1]
}

var typeNodes = map[string]bool{
	"void_type":              true,
	"integral_type":          true,
	"floating_point_type":    true,
	"boolean_type":           true,
	"type_identifier":        true,
	"scoped_type_identifier": true,
	"generic_type":           true,
	"array_type":             true,
	"annotated_type":         true,
}

// typeChild returns the "type" field of n, falling back to its first
// type-shaped child for nodes such as spread parameters that have none.
func typeChild(n *sitter.Node) *sitter.Node {
	if t := n.ChildByFieldName("type"); t != nil {
		return t
	}
	for _, child := range named(n) {
		if typeNodes[child.Type()] {
			return child
		}
	}
	return nil
}
