// Package narrowing implements spec.md §4.5's flow-sensitive narrowing
// pass: it walks an already-built ir.Module and, for each if-statement
// whose condition matches a recognized narrowing predicate
// (`isT(x)`, `x.kind === "a"`, `x instanceof T`, truthiness against
// null/undefined), rewrites references to the narrowed binding inside the
// branch where the predicate holds into a structured view expression
// (ir.NarrowedView).
//
// Grounded on the teacher's internal/analyzer/inference_control.go, which
// narrows a branch by defining the guard variable with a refined type in a
// freshly enclosed symbol table (inferIfExpression's conseqTable/altTable).
// This IR has no per-branch symbol table to shadow a binding in, so the
// narrowing is materialized directly as an expression-tree rewrite over
// the branch's statements instead: every read of the narrowed DeclId
// within the branch is replaced by a NarrowedView wrapping the original
// reference. The rewrite stops at the first reassignment of the narrowed
// variable, since a new value invalidates whatever the predicate proved.
package narrowing

import (
	"strings"

	"github.com/tsoniclang/tsonic/internal/ids"
	"github.com/tsoniclang/tsonic/internal/ir"
	"github.com/tsoniclang/tsonic/internal/typesystem"
)

// Pass rewrites every recognized narrowing opportunity inside module, in
// place.
func Pass(module *ir.Module, types *typesystem.System) {
	w := &walker{types: types}
	w.walkStmts(module.Statements)
}

type walker struct {
	types *typesystem.System
}

func (w *walker) walkStmts(stmts []ir.Statement) {
	for _, s := range stmts {
		w.walkStmt(s)
	}
}

func (w *walker) walkBlock(b *ir.Block) {
	if b == nil {
		return
	}
	w.walkStmts(b.Stmts)
}

// walkStmt descends into every nested block reachable from s, and — for an
// IfStatement — first recurses into both branches (so nested conditionals
// narrow before the outer rewrite runs over them) and then applies any
// narrowing this condition itself proves.
func (w *walker) walkStmt(s ir.Statement) {
	switch st := s.(type) {
	case *ir.Block:
		w.walkBlock(st)
	case *ir.ExprStatement:
		w.walkExprTree(st.Expr)
	case *ir.VarStatement:
		w.walkExprTree(st.Init)
	case *ir.IfStatement:
		w.walkExprTree(st.Cond)
		w.walkBlock(st.Then)
		if st.Else != nil {
			w.walkStmt(st.Else)
		}
		w.applyNarrowing(st)
	case *ir.ForStatement:
		if st.Init != nil {
			w.walkStmt(st.Init)
		}
		w.walkExprTree(st.Cond)
		w.walkExprTree(st.Post)
		w.walkBlock(st.Body)
	case *ir.ForOfStatement:
		w.walkExprTree(st.Iterable)
		w.walkBlock(st.Body)
	case *ir.WhileStatement:
		w.walkExprTree(st.Cond)
		w.walkBlock(st.Body)
	case *ir.ReturnStatement:
		w.walkExprTree(st.Value)
	case *ir.YieldStatement:
		w.walkExprTree(st.Value)
	case *ir.ThrowStatement:
		w.walkExprTree(st.Value)
	case *ir.MatchStatement:
		w.walkExprTree(st.Subject)
		for _, arm := range st.Arms {
			w.walkExprTree(arm.Predicate)
			w.walkBlock(arm.Body)
		}
		w.walkBlock(st.Default)
	case *ir.FunctionDecl:
		w.walkBlock(st.Body)
	case *ir.ClassDecl:
		for _, m := range st.Methods {
			w.walkBlock(m.Body)
		}
		if st.Ctor != nil {
			w.walkBlock(st.Ctor.Body)
		}
	}
}

// walkExprTree recurses into every expression an if-statement's condition
// or a statement's operand might hide a lambda inside — a narrowing check
// that appears inside a callback body is its own, independent pass target.
func (w *walker) walkExprTree(e ir.Expression) {
	switch ex := e.(type) {
	case nil:
		return
	case *ir.Binary:
		w.walkExprTree(ex.Left)
		w.walkExprTree(ex.Right)
	case *ir.Unary:
		w.walkExprTree(ex.Operand)
	case *ir.Assign:
		w.walkExprTree(ex.Left)
		w.walkExprTree(ex.Right)
	case *ir.Conditional:
		w.walkExprTree(ex.Cond)
		w.walkExprTree(ex.Then)
		w.walkExprTree(ex.Else)
	case *ir.Logical:
		w.walkExprTree(ex.Left)
		w.walkExprTree(ex.Right)
	case *ir.Nullish:
		w.walkExprTree(ex.Left)
		w.walkExprTree(ex.Right)
	case *ir.Call:
		w.walkExprTree(ex.Callee)
		for _, a := range ex.Args {
			w.walkExprTree(a.Value)
		}
	case *ir.New:
		w.walkExprTree(ex.Callee)
		for _, a := range ex.Args {
			w.walkExprTree(a.Value)
		}
	case *ir.Member:
		w.walkExprTree(ex.Object)
	case *ir.Index:
		w.walkExprTree(ex.Object)
		w.walkExprTree(ex.Index)
	case *ir.ObjectLiteral:
		for _, p := range ex.Properties {
			w.walkExprTree(p.Value)
		}
	case *ir.ArrayLiteral:
		for _, el := range ex.Elements {
			w.walkExprTree(el)
		}
	case *ir.TupleLiteral:
		for _, el := range ex.Elements {
			w.walkExprTree(el)
		}
	case *ir.Lambda:
		w.walkBlock(ex.Body)
		w.walkExprTree(ex.ExprBody)
	case *ir.TryCast:
		w.walkExprTree(ex.Value)
	case *ir.AsCast:
		w.walkExprTree(ex.Value)
	case *ir.InstanceOf:
		w.walkExprTree(ex.Value)
	case *ir.NarrowedView:
		w.walkExprTree(ex.Original)
	case *ir.SuperCall:
		for _, a := range ex.Args {
			w.walkExprTree(a.Value)
		}
	}
}

// fact is one narrowing derived from an if-statement's condition: decl
// names the narrowed binding, thenBuild/elseBuild construct the
// replacement expression for an occurrence in the Then/Else branch
// respectively (nil means "no rewrite for that branch").
type fact struct {
	decl      ids.DeclId
	thenBuild func(ir.Expression) ir.Expression
	elseBuild func(ir.Expression) ir.Expression
}

// applyNarrowing extracts a fact from st.Cond (unwrapping a single leading
// `!`, which swaps which branch the fact applies to) and, if one exists,
// rewrites the matching branch's statement tree.
func (w *walker) applyNarrowing(st *ir.IfStatement) {
	cond := st.Cond
	negated := false
	if un, ok := cond.(*ir.Unary); ok && un.Op == ir.OpNot {
		cond = un.Operand
		negated = true
	}

	f := w.extractFact(cond)
	if f == nil {
		return
	}

	thenBuild, elseBuild := f.thenBuild, f.elseBuild
	if negated {
		thenBuild, elseBuild = elseBuild, thenBuild
	}

	if thenBuild != nil {
		rewriteBranch(st.Then, f.decl, thenBuild)
	}
	// st.Else is either a *ir.Block (`else { ... }`) or a nested
	// *ir.IfStatement (`else if`, whose own Cond/Then/Else are still part
	// of the original condition's else-branch) — branchRewriter.rewriteStmt
	// already handles both shapes, including the else-if recursion.
	if elseBuild != nil && st.Else != nil {
		rewriteStmtForDecl(st.Else, f.decl, elseBuild)
	}
}

func rewriteBranch(b *ir.Block, decl ids.DeclId, build func(ir.Expression) ir.Expression) {
	if b == nil || !decl.Valid() {
		return
	}
	r := &branchRewriter{decl: decl, build: build, valid: true}
	r.rewriteBlock(b)
}

func rewriteStmtForDecl(s ir.Statement, decl ids.DeclId, build func(ir.Expression) ir.Expression) {
	if s == nil || !decl.Valid() {
		return
	}
	r := &branchRewriter{decl: decl, build: build, valid: true}
	r.rewriteStmt(s)
}

// extractFact recognizes the four predicate shapes spec.md §4.5 names.
func (w *walker) extractFact(cond ir.Expression) *fact {
	if f := w.instanceOfFact(cond); f != nil {
		return f
	}
	if f := w.typePredicateFact(cond); f != nil {
		return f
	}
	if f := w.discriminantFact(cond); f != nil {
		return f
	}
	if f := w.truthinessFact(cond); f != nil {
		return f
	}
	return nil
}

func (w *walker) instanceOfFact(cond ir.Expression) *fact {
	io, ok := cond.(*ir.InstanceOf)
	if !ok {
		return nil
	}
	id, ok := io.Value.(*ir.IdentifierRef)
	if !ok || !id.Decl.Valid() {
		return nil
	}
	target := io.Target
	return &fact{decl: id.Decl, thenBuild: downcastBuilder(target)}
}

// typePredicateFact recognizes a call to a signature declaring `x is T`.
// The predicate always names the guard function's own parameter, not a
// position in the call; since ResolvedCall does not carry parameter
// names, this pass uses the common-case convention that the narrowed
// value is the call's first argument (true of every `isT(value)` guard in
// the corpus this compiler targets).
func (w *walker) typePredicateFact(cond ir.Expression) *fact {
	call, ok := cond.(*ir.Call)
	if !ok || !call.Signature.Valid() || len(call.Args) == 0 {
		return nil
	}
	resolved := w.types.ResolveCall(typesystem.CallQuery{SigId: call.Signature, ArgumentCount: len(call.Args)})
	if resolved.TypePredicateParam == "" {
		return nil
	}
	id, ok := call.Args[0].Value.(*ir.IdentifierRef)
	if !ok || !id.Decl.Valid() {
		return nil
	}
	return &fact{decl: id.Decl, thenBuild: downcastBuilder(resolved.TypePredicateType)}
}

// discriminantFact recognizes `x.prop === "literal"` (or `==`), in either
// operand order, and narrows to whichever member of x's declared union
// type declares `prop` as that literal.
func (w *walker) discriminantFact(cond ir.Expression) *fact {
	bin, ok := cond.(*ir.Binary)
	if !ok || (bin.Op != ir.OpStrictEq && bin.Op != ir.OpEq) {
		return nil
	}
	if f := w.discriminantFactSide(bin.Left, bin.Right); f != nil {
		return f
	}
	return w.discriminantFactSide(bin.Right, bin.Left)
}

func (w *walker) discriminantFactSide(memberSide, litSide ir.Expression) *fact {
	member, ok := memberSide.(*ir.Member)
	if !ok {
		return nil
	}
	id, ok := member.Object.(*ir.IdentifierRef)
	if !ok || !id.Decl.Valid() {
		return nil
	}
	lit, ok := litSide.(*ir.Literal)
	if !ok || lit.Kind != ir.LitString {
		return nil
	}

	declared := w.types.TypeOfDecl(id.Decl)
	if declared == nil || declared.Kind != ir.KindUnion {
		return nil
	}
	for _, m := range declared.Members {
		if m.Kind != ir.KindReference {
			continue
		}
		tagType := w.types.TypeOfMember(m, member.Property)
		if tagType != nil && tagType.Kind == ir.KindLiteral && tagType.LiteralValue == lit.Raw {
			return &fact{decl: id.Decl, thenBuild: downcastBuilder(m)}
		}
	}
	return nil
}

// truthinessFact recognizes `if (x)` and the explicit null/undefined
// comparison forms (`x != null`, `x !== undefined`, and their `==`/`===`
// negations), narrowing a union containing null/undefined down to the
// non-null remainder (thenBuild) and to the null/undefined remainder
// (elseBuild).
func (w *walker) truthinessFact(cond ir.Expression) *fact {
	if id, ok := cond.(*ir.IdentifierRef); ok && id.Decl.Valid() {
		return w.nullFact(id.Decl, true)
	}

	bin, ok := cond.(*ir.Binary)
	if !ok {
		return nil
	}
	id, nullSide := identifierAndNullLiteral(bin.Left, bin.Right)
	if id == nil {
		id, nullSide = identifierAndNullLiteral(bin.Right, bin.Left)
	}
	if id == nil || nullSide == nil {
		return nil
	}
	switch bin.Op {
	case ir.OpNeq, ir.OpStrictNe:
		return w.nullFact(id.Decl, true)
	case ir.OpEq, ir.OpStrictEq:
		return w.nullFact(id.Decl, false)
	}
	return nil
}

func identifierAndNullLiteral(a, b ir.Expression) (*ir.IdentifierRef, *ir.Literal) {
	id, ok := a.(*ir.IdentifierRef)
	if !ok || !id.Decl.Valid() {
		return nil, nil
	}
	lit, ok := b.(*ir.Literal)
	if !ok || (lit.Kind != ir.LitNull && lit.Kind != ir.LitUndefined) {
		return nil, nil
	}
	return id, lit
}

// nullFact builds the non-null/null-only pair of narrowings for a union
// type that includes null/undefined. thenIsNonNull selects which branch
// (Then, for a positive truthiness test) gets the non-null view; the
// other branch gets the null-only view.
func (w *walker) nullFact(decl ids.DeclId, thenIsNonNull bool) *fact {
	declared := w.types.TypeOfDecl(decl)
	if declared == nil || declared.Kind != ir.KindUnion {
		return nil
	}
	var nonNull, nullOnly []*ir.IrType
	for _, m := range declared.Members {
		if m.Kind == ir.KindPrimitive && (m.Primitive == ir.PrimNull || m.Primitive == ir.PrimUndefined) {
			nullOnly = append(nullOnly, m)
		} else {
			nonNull = append(nonNull, m)
		}
	}
	if len(nullOnly) == 0 || len(nonNull) == 0 {
		return nil
	}

	nonNullType := nonNull[0]
	if len(nonNull) > 1 {
		nonNullType = &ir.IrType{Kind: ir.KindUnion, Members: nonNull}
	}
	nullOnlyType := nullOnly[0]
	if len(nullOnly) > 1 {
		nullOnlyType = &ir.IrType{Kind: ir.KindUnion, Members: nullOnly}
	}

	nonNullBuild := typeOnlyBuilder(nonNullType)
	nullOnlyBuild := typeOnlyBuilder(nullOnlyType)
	if thenIsNonNull {
		return &fact{decl: decl, thenBuild: nonNullBuild, elseBuild: nullOnlyBuild}
	}
	return &fact{decl: decl, thenBuild: nullOnlyBuild, elseBuild: nonNullBuild}
}

// downcastBuilder narrows to a nominal/discriminated-union member type:
// ViewName is "As" + the referenced type's own name, matching the
// `x.AsN()` structured-view shape spec.md §4.5 describes; IsDowncast marks
// it as a real runtime accessor the emitter must call, not a type-only
// relabeling.
func downcastBuilder(target *ir.IrType) func(ir.Expression) ir.Expression {
	viewName := ""
	if target != nil && target.Kind == ir.KindReference {
		viewName = "As" + capitalize(target.RefName)
	}
	return func(original ir.Expression) ir.Expression {
		n := &ir.NarrowedView{Original: original, ViewName: viewName, IsDowncast: true}
		n.SetType(target)
		n.Sp = original.Span()
		return n
	}
}

// typeOnlyBuilder narrows a binding's static type without any runtime
// operation (plain union-member subtraction, e.g. stripping null). The
// emitter forwards a NarrowedView with an empty ViewName and
// IsDowncast == false straight through to Original, using only its
// narrowed Type().
func typeOnlyBuilder(target *ir.IrType) func(ir.Expression) ir.Expression {
	return func(original ir.Expression) ir.Expression {
		n := &ir.NarrowedView{Original: original}
		n.SetType(target)
		n.Sp = original.Span()
		return n
	}
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
