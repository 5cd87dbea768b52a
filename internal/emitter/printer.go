package emitter

import (
	"fmt"
	"strings"

	"github.com/tsoniclang/tsonic/internal/targetast"
)

// precedence is spec.md §4.9.1's operator-precedence table, higher binds
// tighter. Grounded directly on internal/prettyprinter/code_printer.go's
// operatorPrecedence map/getPrecedence/printExpr trio, retargeted from the
// teacher's own operator set to TargetLang's.
var precedence = map[string]int{
	"**":  15,
	"*":   14,
	"/":   14,
	"%":   14,
	"+":   13,
	"-":   13,
	"<<":  12,
	">>":  12,
	"<":   11,
	">":   11,
	"<=":  11,
	">=":  11,
	"==":  10,
	"!=":  10,
	"&":   9,
	"^":   8,
	"|":   7,
	"&&":  6,
	"||":  5,
	"??":  4,
}

func getPrecedence(op string) int {
	if p, ok := precedence[op]; ok {
		return p
	}
	return 16
}

var rightAssoc = map[string]bool{"**": true}

// printer is a deterministic, precedence-aware pretty-printer over
// internal/targetast, dispatched by hand-written type switch rather than
// Accept(Visitor) — nothing else walks this tree, so the
// internal/narrowing-and-siblings type-switch idiom is simpler than
// standing up a second Visitor interface for a single consumer. Grounded
// directly on internal/prettyprinter/code_printer.go's buffer/indent/write
// shape.
type printer struct {
	buf    strings.Builder
	indent int
}

// Print renders file as deterministic TargetLang source text: identical
// ASTs always produce byte-identical output (spec.md §4.9), using
// directives sorted and deduplicated, conservative parenthesization only
// where precedence/associativity actually requires it.
func Print(file *targetast.File) string {
	p := &printer{}
	p.printFile(file)
	return p.buf.String()
}

func (p *printer) write(s string)  { p.buf.WriteString(s) }
func (p *printer) writeln(s string) { p.buf.WriteString(s); p.buf.WriteString("\n") }

func (p *printer) writeIndent() {
	p.buf.WriteString(strings.Repeat("    ", p.indent))
}

func (p *printer) printFile(f *targetast.File) {
	for _, u := range f.Usings {
		p.writeln("using " + u + ";")
	}
	if len(f.Usings) > 0 {
		p.writeln("")
	}
	if f.Namespace != "" {
		p.writeln("namespace " + f.Namespace + ";")
		p.writeln("")
	}
	for i, d := range f.Decls {
		if i > 0 {
			p.writeln("")
		}
		p.printDecl(d)
	}
}

func (p *printer) printDecl(d targetast.Decl) {
	switch n := d.(type) {
	case *targetast.ClassDecl:
		p.printClassDecl(n)
	case *targetast.InterfaceDecl:
		p.printInterfaceDecl(n)
	case *targetast.EnumDecl:
		p.printEnumDecl(n)
	case *targetast.Comment:
		p.writeIndent()
		p.writeln("// " + n.Text)
	default:
		p.writeIndent()
		p.writeln(fmt.Sprintf("/* unhandled decl %T */", d))
	}
}

func (p *printer) classHeader(keyword string, n *targetast.ClassDecl) string {
	var b strings.Builder
	if n.IsSealed {
		b.WriteString("sealed ")
	}
	if n.IsStatic {
		b.WriteString("static ")
	}
	if n.IsPartial {
		b.WriteString("partial ")
	}
	b.WriteString(keyword)
	b.WriteString(" ")
	b.WriteString(n.Name)
	b.WriteString(typeParamList(n.TypeParams))
	bases := make([]string, 0, 1+len(n.Implements))
	if n.BaseClass != nil {
		bases = append(bases, p.typeString(n.BaseClass))
	}
	for _, i := range n.Implements {
		bases = append(bases, p.typeString(i))
	}
	if len(bases) > 0 {
		b.WriteString(" : " + strings.Join(bases, ", "))
	}
	b.WriteString(constraintClauses(n.Constraints, p))
	return b.String()
}

func (p *printer) printClassDecl(n *targetast.ClassDecl) {
	p.writeIndent()
	p.writeln(p.classHeader("class", n) + " {")
	p.indent++
	for _, f := range n.Fields {
		p.printFieldDecl(f)
	}
	for _, pr := range n.Properties {
		p.printPropertyDecl(pr)
	}
	for _, c := range n.Ctors {
		p.printCtorDecl(n.Name, c)
	}
	for _, m := range n.Methods {
		p.printMethodDecl(m)
	}
	for _, nested := range n.Nested {
		p.printDecl(nested)
	}
	p.indent--
	p.writeIndent()
	p.writeln("}")
}

func (p *printer) printFieldDecl(f targetast.FieldDecl) {
	p.writeIndent()
	mods := "private "
	if f.IsStatic {
		mods += "static "
	}
	if f.IsReadonly {
		mods += "readonly "
	}
	line := mods + p.typeString(f.Type) + " " + f.Name
	if f.Init != nil {
		line += " = " + p.exprString(f.Init, 0, false)
	}
	p.writeln(line + ";")
}

func (p *printer) printPropertyDecl(pr targetast.PropertyDecl) {
	p.writeIndent()
	mods := "public "
	if pr.IsStatic {
		mods += "static "
	}
	accessors := "{ get; set; }"
	if pr.Readonly {
		accessors = "{ get; }"
	}
	p.writeln(mods + p.typeString(pr.Type) + " " + pr.Name + " " + accessors)
}

func (p *printer) printCtorDecl(className string, c targetast.CtorDecl) {
	p.writeIndent()
	header := "public " + className + "(" + p.paramList(c.Params) + ")"
	if len(c.BaseArgs) > 0 {
		header += " : base(" + p.argList(c.BaseArgs) + ")"
	}
	p.writeln(header + " {")
	p.indent++
	p.printStmtList(c.Body.Stmts)
	p.indent--
	p.writeIndent()
	p.writeln("}")
}

func (p *printer) printMethodDecl(m targetast.MethodDecl) {
	p.writeIndent()
	mods := "public "
	if m.IsStatic {
		mods += "static "
	}
	if m.IsAsync {
		mods += "async "
	}
	if m.IsOverride {
		mods += "override "
	}
	ret := "void"
	if m.ReturnType != nil {
		ret = p.typeString(m.ReturnType)
	}
	header := mods + ret + " " + m.Name + typeParamList(m.TypeParams) + "(" + p.paramList(m.Params) + ")" + constraintClauses(m.Constraints, p)
	if m.Body == nil {
		p.writeln(header + ";")
		return
	}
	p.writeln(header + " {")
	p.indent++
	p.printStmtList(m.Body.Stmts)
	p.indent--
	p.writeIndent()
	p.writeln("}")
}

func (p *printer) printInterfaceDecl(n *targetast.InterfaceDecl) {
	p.writeIndent()
	header := "interface " + n.Name + typeParamList(n.TypeParams)
	if len(n.Extends) > 0 {
		names := make([]string, len(n.Extends))
		for i, e := range n.Extends {
			names[i] = p.typeString(e)
		}
		header += " : " + strings.Join(names, ", ")
	}
	p.writeln(header + " {")
	p.indent++
	for _, pr := range n.Properties {
		p.printPropertyDecl(pr)
	}
	for _, m := range n.Methods {
		p.writeIndent()
		p.writeln(p.typeString(m.ReturnType) + " " + m.Name + typeParamList(m.TypeParams) + "(" + p.paramList(m.Params) + ");")
	}
	p.indent--
	p.writeIndent()
	p.writeln("}")
}

func (p *printer) printEnumDecl(n *targetast.EnumDecl) {
	p.writeIndent()
	p.writeln("enum " + n.Name + " {")
	p.indent++
	for i, m := range n.Members {
		p.writeIndent()
		line := m.Name
		if m.Value != nil {
			line += " = " + p.exprString(m.Value, 0, false)
		}
		if i < len(n.Members)-1 {
			line += ","
		}
		p.writeln(line)
	}
	p.indent--
	p.writeIndent()
	p.writeln("}")
}

func typeParamList(params []string) string {
	if len(params) == 0 {
		return ""
	}
	return "<" + strings.Join(params, ", ") + ">"
}

func constraintClauses(constraints []targetast.TypeParamConstraint, p *printer) string {
	if len(constraints) == 0 {
		return ""
	}
	var b strings.Builder
	for _, c := range constraints {
		names := make([]string, len(c.Bounds))
		for i, bnd := range c.Bounds {
			names[i] = p.typeString(bnd)
		}
		fmt.Fprintf(&b, " where %s : %s", c.Name, strings.Join(names, ", "))
	}
	return b.String()
}

func (p *printer) paramList(params []targetast.Param) string {
	parts := make([]string, len(params))
	for i, pm := range params {
		prefix := ""
		switch pm.Mode {
		case targetast.ModeRef:
			prefix = "ref "
		case targetast.ModeOut:
			prefix = "out "
		case targetast.ModeIn:
			prefix = "in "
		}
		t := p.typeString(pm.Type)
		if pm.Optional {
			t = t + "?"
		}
		part := prefix + t + " " + pm.Name
		if pm.Default != nil {
			part += " = " + p.exprString(pm.Default, 0, false)
		}
		parts[i] = part
	}
	return strings.Join(parts, ", ")
}

func (p *printer) argList(args []targetast.Arg) string {
	parts := make([]string, len(args))
	for i, a := range args {
		prefix := ""
		switch a.Mode {
		case targetast.ModeRef:
			prefix = "ref "
		case targetast.ModeOut:
			prefix = "out "
		case targetast.ModeIn:
			prefix = "in "
		}
		parts[i] = prefix + p.exprString(a.Value, 0, false)
	}
	return strings.Join(parts, ", ")
}

// --- Types ----------------------------------------------------------------

func (p *printer) typeString(t *targetast.Type) string {
	if t == nil {
		return "void"
	}
	switch t.Kind {
	case targetast.TypePrimitive:
		return primitiveName(t.Primitive)
	case targetast.TypeNamed:
		if len(t.Args) == 0 {
			return t.Name
		}
		args := make([]string, len(t.Args))
		for i, a := range t.Args {
			args[i] = p.typeString(a)
		}
		return t.Name + "<" + strings.Join(args, ", ") + ">"
	case targetast.TypeArray:
		return p.typeString(t.Elem) + "[]"
	case targetast.TypeTuple:
		elems := make([]string, len(t.Tuple))
		for i, e := range t.Tuple {
			elems[i] = p.typeString(e)
		}
		return "(" + strings.Join(elems, ", ") + ")"
	case targetast.TypeNullable:
		return p.typeString(t.Elem) + "?"
	case targetast.TypeFunc:
		args := make([]string, len(t.Args))
		for i, a := range t.Args {
			args[i] = p.typeString(a)
		}
		return t.Name + "<" + strings.Join(args, ", ") + ">"
	default:
		return "object"
	}
}

func primitiveName(p targetast.Primitive) string {
	switch p {
	case targetast.PrimString:
		return "string"
	case targetast.PrimInt:
		return "int"
	case targetast.PrimDouble:
		return "double"
	case targetast.PrimBool:
		return "bool"
	case targetast.PrimChar:
		return "char"
	case targetast.PrimVoid:
		return "void"
	case targetast.PrimObject:
		return "object"
	default:
		return "dynamic"
	}
}

// --- Statements -------------------------------------------------------------

func (p *printer) printStmtList(stmts []targetast.Stmt) {
	for _, s := range stmts {
		p.printStmt(s)
	}
}

func (p *printer) printStmt(s targetast.Stmt) {
	switch n := s.(type) {
	case *targetast.Block:
		p.writeIndent()
		p.writeln("{")
		p.indent++
		p.printStmtList(n.Stmts)
		p.indent--
		p.writeIndent()
		p.writeln("}")
	case *targetast.ExprStmt:
		p.writeIndent()
		p.writeln(p.exprString(n.Expr, 0, false) + ";")
	case *targetast.LocalDecl:
		p.writeIndent()
		t := "var"
		if !n.Var && n.Type != nil {
			t = p.typeString(n.Type)
		}
		line := t + " " + n.Name
		if n.Init != nil {
			line += " = " + p.exprString(n.Init, 0, false)
		}
		p.writeln(line + ";")
	case *targetast.If:
		p.printIf(n)
	case *targetast.For:
		p.printFor(n)
	case *targetast.Foreach:
		p.writeIndent()
		p.writeln("foreach (" + p.typeString(n.ElemType) + " " + n.Name + " in " + p.exprString(n.Iterable, 0, false) + ") {")
		p.indent++
		p.printStmtList(n.Body.Stmts)
		p.indent--
		p.writeIndent()
		p.writeln("}")
	case *targetast.While:
		p.writeIndent()
		p.writeln("while (" + p.exprString(n.Cond, 0, false) + ") {")
		p.indent++
		p.printStmtList(n.Body.Stmts)
		p.indent--
		p.writeIndent()
		p.writeln("}")
	case *targetast.Return:
		p.writeIndent()
		if n.Value == nil {
			p.writeln("return;")
		} else {
			p.writeln("return " + p.exprString(n.Value, 0, false) + ";")
		}
	case *targetast.YieldReturn:
		p.writeIndent()
		p.writeln("yield return " + p.exprString(n.Value, 0, false) + ";")
	case *targetast.YieldBreak:
		p.writeIndent()
		p.writeln("yield break;")
	case *targetast.Throw:
		p.writeIndent()
		p.writeln("throw " + p.exprString(n.Value, 0, false) + ";")
	case *targetast.Break:
		p.writeIndent()
		p.writeln("break;")
	case *targetast.Continue:
		p.writeIndent()
		p.writeln("continue;")
	default:
		p.writeIndent()
		p.writeln(fmt.Sprintf("/* unhandled stmt %T */", s))
	}
}

func (p *printer) printIf(n *targetast.If) {
	p.writeIndent()
	p.writeln("if (" + p.exprString(n.Cond, 0, false) + ") {")
	p.indent++
	p.printStmtList(n.Then.Stmts)
	p.indent--
	p.writeIndent()
	if n.Else == nil {
		p.writeln("}")
		return
	}
	switch e := n.Else.(type) {
	case *targetast.If:
		p.write("} else ")
		// printIf writes its own leading indent; suppress the duplicate
		// by emitting the header inline instead of recursing.
		p.printElseIf(e)
	case *targetast.Block:
		p.writeln("} else {")
		p.indent++
		p.printStmtList(e.Stmts)
		p.indent--
		p.writeIndent()
		p.writeln("}")
	default:
		p.writeln("} else {")
		p.indent++
		p.printStmt(n.Else)
		p.indent--
		p.writeIndent()
		p.writeln("}")
	}
}

func (p *printer) printElseIf(n *targetast.If) {
	p.writeln("if (" + p.exprString(n.Cond, 0, false) + ") {")
	p.indent++
	p.printStmtList(n.Then.Stmts)
	p.indent--
	p.writeIndent()
	if n.Else == nil {
		p.writeln("}")
		return
	}
	switch e := n.Else.(type) {
	case *targetast.If:
		p.write("} else ")
		p.printElseIf(e)
	case *targetast.Block:
		p.writeln("} else {")
		p.indent++
		p.printStmtList(e.Stmts)
		p.indent--
		p.writeIndent()
		p.writeln("}")
	default:
		p.writeln("} else {")
		p.indent++
		p.printStmt(n.Else)
		p.indent--
		p.writeIndent()
		p.writeln("}")
	}
}

func (p *printer) printFor(n *targetast.For) {
	p.writeIndent()
	init := ""
	if n.Init != nil {
		init = strings.TrimSuffix(strings.TrimSpace(p.stmtHeaderString(n.Init)), ";")
	}
	cond := ""
	if n.Cond != nil {
		cond = p.exprString(n.Cond, 0, false)
	}
	post := ""
	if n.Post != nil {
		post = p.exprString(n.Post, 0, false)
	}
	p.writeln("for (" + init + "; " + cond + "; " + post + ") {")
	p.indent++
	p.printStmtList(n.Body.Stmts)
	p.indent--
	p.writeIndent()
	p.writeln("}")
}

// stmtHeaderString renders a single statement (a for-loop initializer) as
// an inline fragment rather than an indented, newline-terminated line.
func (p *printer) stmtHeaderString(s targetast.Stmt) string {
	switch n := s.(type) {
	case *targetast.LocalDecl:
		t := "var"
		if !n.Var && n.Type != nil {
			t = p.typeString(n.Type)
		}
		line := t + " " + n.Name
		if n.Init != nil {
			line += " = " + p.exprString(n.Init, 0, false)
		}
		return line + ";"
	case *targetast.ExprStmt:
		return p.exprString(n.Expr, 0, false) + ";"
	default:
		return ""
	}
}

// --- Expressions ------------------------------------------------------------

// exprString prints e with conservative parenthesization: needParens is
// computed from the enclosing operator's precedence/associativity exactly
// as internal/prettyprinter/code_printer.go's printExpr does, generalized
// to spec.md §4.9.1's TargetLang precedence table.
func (p *printer) exprString(e targetast.Expr, parentPrec int, isRight bool) string {
	if e == nil {
		return ""
	}
	switch n := e.(type) {
	case *targetast.Binary:
		prec := getPrecedence(n.Op)
		needParens := prec < parentPrec
		if prec == parentPrec {
			if isRight && !rightAssoc[n.Op] {
				needParens = true
			} else if !isRight && rightAssoc[n.Op] {
				needParens = true
			}
		}
		inner := p.exprString(n.Left, prec, false) + " " + n.Op + " " + p.exprString(n.Right, prec, true)
		if needParens {
			return "(" + inner + ")"
		}
		return inner
	case *targetast.NullCoalesce:
		prec := getPrecedence("??")
		needParens := prec < parentPrec
		inner := p.exprString(n.Left, prec, false) + " ?? " + p.exprString(n.Right, prec, true)
		if needParens {
			return "(" + inner + ")"
		}
		return inner
	case *targetast.Unary:
		operand := p.exprString(n.Operand, 17, false)
		if n.Prefix {
			return n.Op + operand
		}
		return operand + n.Op
	case *targetast.Conditional:
		needParens := parentPrec > 2
		inner := p.exprString(n.Cond, 3, false) + " ? " + p.exprString(n.Then, 0, false) + " : " + p.exprString(n.Else, 0, false)
		if needParens {
			return "(" + inner + ")"
		}
		return inner
	case *targetast.Assign:
		return p.exprString(n.Left, 0, false) + " " + n.Op + " " + p.exprString(n.Right, 0, true)
	case *targetast.Literal:
		return p.literalString(n)
	case *targetast.Ident:
		return n.Name
	case *targetast.This:
		return "this"
	case *targetast.Call:
		return p.exprString(n.Callee, 18, false) + typeArgList(p, n.TypeArgs) + "(" + p.argList(n.Args) + ")"
	case *targetast.New:
		s := "new " + p.typeString(n.Type) + "(" + p.argList(n.Args) + ")"
		if len(n.Init) > 0 {
			parts := make([]string, len(n.Init))
			for i, m := range n.Init {
				parts[i] = m.Name + " = " + p.exprString(m.Value, 0, false)
			}
			s += " { " + strings.Join(parts, ", ") + " }"
		}
		return s
	case *targetast.Member:
		op := "."
		if n.NullConditional {
			op = "?."
		}
		return p.exprString(n.Object, 18, false) + op + n.Name
	case *targetast.Index:
		op := "["
		if n.NullConditional {
			op = "?["
		}
		return p.exprString(n.Object, 18, false) + op + p.exprString(n.Index, 0, false) + "]"
	case *targetast.ArrayInit:
		elems := make([]string, len(n.Elements))
		for i, el := range n.Elements {
			elems[i] = p.exprString(el, 0, false)
		}
		return "new " + p.typeString(n.ElemType) + "[] { " + strings.Join(elems, ", ") + " }"
	case *targetast.TupleExpr:
		elems := make([]string, len(n.Elements))
		for i, el := range n.Elements {
			elems[i] = p.exprString(el, 0, false)
		}
		return "(" + strings.Join(elems, ", ") + ")"
	case *targetast.Lambda:
		params := make([]string, len(n.Params))
		for i, lp := range n.Params {
			if lp.Type != nil {
				params[i] = p.typeString(lp.Type) + " " + lp.Name
			} else {
				params[i] = lp.Name
			}
		}
		head := "(" + strings.Join(params, ", ") + ")"
		if n.BlockBody != nil {
			sp := &printer{indent: p.indent}
			sp.writeln(head + " => {")
			sp.indent++
			sp.printStmtList(n.BlockBody.Stmts)
			sp.indent--
			sp.writeIndent()
			sp.write("}")
			return sp.buf.String()
		}
		return head + " => " + p.exprString(n.ExprBody, 0, false)
	case *targetast.Cast:
		return "(" + p.typeString(n.Type) + ")" + p.exprString(n.Value, 17, false)
	case *targetast.AsCast:
		return p.exprString(n.Value, 11, false) + " as " + p.typeString(n.Type)
	case *targetast.IsPattern:
		s := p.exprString(n.Value, 11, false) + " is " + p.typeString(n.Type)
		if n.BindingName != "" {
			s += " " + n.BindingName
		}
		return s
	case *targetast.Default:
		return "default(" + p.typeString(n.Type) + ")"
	case *targetast.BaseCall:
		return "base(" + p.argList(n.Args) + ")"
	default:
		return fmt.Sprintf("/* unhandled expr %T */", e)
	}
}

func typeArgList(p *printer, args []*targetast.Type) string {
	if len(args) == 0 {
		return ""
	}
	parts := make([]string, len(args))
	for i, a := range args {
		parts[i] = p.typeString(a)
	}
	return "<" + strings.Join(parts, ", ") + ">"
}

func (p *printer) literalString(n *targetast.Literal) string {
	switch n.Kind {
	case targetast.LitString:
		return "\"" + n.Raw + "\""
	case targetast.LitChar:
		return "'" + n.Raw + "'"
	case targetast.LitNull:
		return "null"
	default:
		return n.Raw
	}
}
