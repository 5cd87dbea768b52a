package mono

import "github.com/tsoniclang/tsonic/internal/ir"

// cloneBlock deep-clones b, substituting every embedded IrType through
// subst. A specialized target method's body must not alias the generic
// original's nodes: the specializer also walks the clone afterward (to
// discover nested generic calls that now resolve to a concrete
// instantiation), and mutating a shared node would corrupt the original.
func cloneBlock(b *ir.Block, subst map[string]*ir.IrType) *ir.Block {
	if b == nil {
		return nil
	}
	return &ir.Block{Sp: b.Sp, Stmts: cloneStmts(b.Stmts, subst)}
}

func cloneStmts(stmts []ir.Statement, subst map[string]*ir.IrType) []ir.Statement {
	if stmts == nil {
		return nil
	}
	out := make([]ir.Statement, len(stmts))
	for i, s := range stmts {
		out[i] = cloneStmt(s, subst)
	}
	return out
}

func cloneStmt(s ir.Statement, subst map[string]*ir.IrType) ir.Statement {
	switch st := s.(type) {
	case nil:
		return nil
	case *ir.Block:
		return cloneBlock(st, subst)
	case *ir.ExprStatement:
		return &ir.ExprStatement{Sp: st.Sp, Expr: cloneExpr(st.Expr, subst)}
	case *ir.VarStatement:
		return &ir.VarStatement{
			Sp: st.Sp, Decl: st.Decl, Name: st.Name,
			Type: substType(st.Type, subst), Init: cloneExpr(st.Init, subst), IsConst: st.IsConst,
		}
	case *ir.IfStatement:
		return &ir.IfStatement{
			Sp: st.Sp, Cond: cloneExpr(st.Cond, subst), Then: cloneBlock(st.Then, subst),
			Else: cloneStmt(st.Else, subst),
		}
	case *ir.ForStatement:
		return &ir.ForStatement{
			Sp: st.Sp, Init: cloneStmt(st.Init, subst), Cond: cloneExpr(st.Cond, subst),
			Post: cloneExpr(st.Post, subst), Body: cloneBlock(st.Body, subst),
		}
	case *ir.ForOfStatement:
		return &ir.ForOfStatement{
			Sp: st.Sp, VarDecl: st.VarDecl, VarName: st.VarName, ElemType: substType(st.ElemType, subst),
			IsConst: st.IsConst, Iterable: cloneExpr(st.Iterable, subst), Body: cloneBlock(st.Body, subst),
		}
	case *ir.WhileStatement:
		return &ir.WhileStatement{Sp: st.Sp, Cond: cloneExpr(st.Cond, subst), Body: cloneBlock(st.Body, subst)}
	case *ir.ReturnStatement:
		return &ir.ReturnStatement{Sp: st.Sp, Value: cloneExpr(st.Value, subst)}
	case *ir.YieldStatement:
		return &ir.YieldStatement{Sp: st.Sp, Value: cloneExpr(st.Value, subst), Delegate: st.Delegate}
	case *ir.ThrowStatement:
		return &ir.ThrowStatement{Sp: st.Sp, Value: cloneExpr(st.Value, subst)}
	case *ir.BreakStatement:
		return &ir.BreakStatement{Sp: st.Sp}
	case *ir.ContinueStatement:
		return &ir.ContinueStatement{Sp: st.Sp}
	case *ir.MatchStatement:
		arms := make([]ir.MatchArm, len(st.Arms))
		for i, a := range st.Arms {
			arms[i] = ir.MatchArm{Predicate: cloneExpr(a.Predicate, subst), Body: cloneBlock(a.Body, subst)}
		}
		return &ir.MatchStatement{Sp: st.Sp, Subject: cloneExpr(st.Subject, subst), Arms: arms, Default: cloneBlock(st.Default, subst)}
	case *ir.FunctionDecl:
		// A nested function expression declared as a statement (rare in
		// this language, but the closed Statement set allows it): clone it
		// under the same substitution: it shares the enclosing generic's
		// type-parameter scope.
		return cloneFunctionShallow(st, subst)
	default:
		return s
	}
}

// cloneFunctionShallow substitutes a nested FunctionDecl's own types without
// renaming it or touching RequiresSpecialization: it is not itself the
// target of this call site's specialization, only a closure living inside
// one.
func cloneFunctionShallow(fn *ir.FunctionDecl, subst map[string]*ir.IrType) *ir.FunctionDecl {
	return &ir.FunctionDecl{
		Sp: fn.Sp, Decl: fn.Decl, Signature: fn.Signature, Name: fn.Name,
		TypeParams: fn.TypeParams, TypeParamConstraints: fn.TypeParamConstraints,
		Params:      cloneParams(fn.Params, subst),
		ReturnType:  substType(fn.ReturnType, subst),
		Body:        cloneBlock(fn.Body, subst),
		IsGenerator: fn.IsGenerator, IsAsync: fn.IsAsync, IsStatic: fn.IsStatic,
		RequiresSpecialization: fn.RequiresSpecialization,
	}
}

func cloneParams(params []ir.Param, subst map[string]*ir.IrType) []ir.Param {
	out := make([]ir.Param, len(params))
	for i, p := range params {
		out[i] = ir.Param{
			Decl: p.Decl, Name: p.Name, Type: substType(p.Type, subst), Mode: p.Mode,
			Optional: p.Optional, Default: cloneExpr(p.Default, subst),
		}
	}
	return out
}

func cloneArgs(args []ir.Arg, subst map[string]*ir.IrType) []ir.Arg {
	out := make([]ir.Arg, len(args))
	for i, a := range args {
		out[i] = ir.Arg{Value: cloneExpr(a.Value, subst), Spread: a.Spread, Mode: a.Mode}
	}
	return out
}

func cloneExpr(e ir.Expression, subst map[string]*ir.IrType) ir.Expression {
	if e == nil {
		return nil
	}
	switch ex := e.(type) {
	case *ir.Literal:
		out := &ir.Literal{Kind: ex.Kind, Raw: ex.Raw}
		finishClone(out, ex, subst)
		return out
	case *ir.IdentifierRef:
		out := &ir.IdentifierRef{Name: ex.Name, Decl: ex.Decl}
		finishClone(out, ex, subst)
		return out
	case *ir.This:
		out := &ir.This{ClassName: ex.ClassName}
		finishClone(out, ex, subst)
		return out
	case *ir.Binary:
		out := &ir.Binary{Op: ex.Op, Left: cloneExpr(ex.Left, subst), Right: cloneExpr(ex.Right, subst)}
		finishClone(out, ex, subst)
		return out
	case *ir.Unary:
		out := &ir.Unary{Op: ex.Op, Operand: cloneExpr(ex.Operand, subst)}
		finishClone(out, ex, subst)
		return out
	case *ir.Assign:
		out := &ir.Assign{Op: ex.Op, Left: cloneExpr(ex.Left, subst), Right: cloneExpr(ex.Right, subst)}
		finishClone(out, ex, subst)
		return out
	case *ir.Conditional:
		out := &ir.Conditional{Cond: cloneExpr(ex.Cond, subst), Then: cloneExpr(ex.Then, subst), Else: cloneExpr(ex.Else, subst)}
		finishClone(out, ex, subst)
		return out
	case *ir.Logical:
		out := &ir.Logical{Op: ex.Op, Left: cloneExpr(ex.Left, subst), Right: cloneExpr(ex.Right, subst)}
		finishClone(out, ex, subst)
		return out
	case *ir.Nullish:
		out := &ir.Nullish{Left: cloneExpr(ex.Left, subst), Right: cloneExpr(ex.Right, subst)}
		finishClone(out, ex, subst)
		return out
	case *ir.Call:
		out := &ir.Call{
			Callee: cloneExpr(ex.Callee, subst), Signature: ex.Signature,
			ExplicitTypeArgs: substTypeAll(ex.ExplicitTypeArgs, subst),
			Args:             cloneArgs(ex.Args, subst),
			ParameterTypes:   substTypeAll(ex.ParameterTypes, subst),
			ParameterModes:   append([]ir.ArgMode{}, ex.ParameterModes...),
		}
		finishClone(out, ex, subst)
		return out
	case *ir.New:
		out := &ir.New{
			Callee: cloneExpr(ex.Callee, subst), Signature: ex.Signature,
			ExplicitTypeArgs: substTypeAll(ex.ExplicitTypeArgs, subst),
			Args:             cloneArgs(ex.Args, subst),
			ParameterTypes:   substTypeAll(ex.ParameterTypes, subst),
			ParameterModes:   append([]ir.ArgMode{}, ex.ParameterModes...),
		}
		finishClone(out, ex, subst)
		return out
	case *ir.Member:
		out := &ir.Member{Object: cloneExpr(ex.Object, subst), Property: ex.Property, Member: ex.Member, Optional: ex.Optional}
		finishClone(out, ex, subst)
		return out
	case *ir.Index:
		out := &ir.Index{Object: cloneExpr(ex.Object, subst), Index: cloneExpr(ex.Index, subst)}
		finishClone(out, ex, subst)
		return out
	case *ir.ObjectLiteral:
		props := make([]ir.ObjectProperty, len(ex.Properties))
		for i, p := range ex.Properties {
			props[i] = ir.ObjectProperty{Name: p.Name, Value: cloneExpr(p.Value, subst), Optional: p.Optional, Readonly: p.Readonly}
		}
		out := &ir.ObjectLiteral{Properties: props}
		finishClone(out, ex, subst)
		return out
	case *ir.ArrayLiteral:
		elems := make([]ir.Expression, len(ex.Elements))
		for i, el := range ex.Elements {
			elems[i] = cloneExpr(el, subst)
		}
		out := &ir.ArrayLiteral{Elements: elems, Origin: ex.Origin}
		finishClone(out, ex, subst)
		return out
	case *ir.TupleLiteral:
		elems := make([]ir.Expression, len(ex.Elements))
		for i, el := range ex.Elements {
			elems[i] = cloneExpr(el, subst)
		}
		out := &ir.TupleLiteral{Elements: elems}
		finishClone(out, ex, subst)
		return out
	case *ir.Lambda:
		out := &ir.Lambda{
			Params: cloneParams(ex.Params, subst), ReturnType: substType(ex.ReturnType, subst),
			Body: cloneBlock(ex.Body, subst), ExprBody: cloneExpr(ex.ExprBody, subst), IsGenerator: ex.IsGenerator,
		}
		finishClone(out, ex, subst)
		return out
	case *ir.TryCast:
		out := &ir.TryCast{Target: substType(ex.Target, subst), Value: cloneExpr(ex.Value, subst)}
		finishClone(out, ex, subst)
		return out
	case *ir.AsCast:
		out := &ir.AsCast{Target: substType(ex.Target, subst), Value: cloneExpr(ex.Value, subst)}
		finishClone(out, ex, subst)
		return out
	case *ir.InstanceOf:
		out := &ir.InstanceOf{Target: substType(ex.Target, subst), Value: cloneExpr(ex.Value, subst)}
		finishClone(out, ex, subst)
		return out
	case *ir.NarrowedView:
		out := &ir.NarrowedView{Original: cloneExpr(ex.Original, subst), ViewName: ex.ViewName, IsDowncast: ex.IsDowncast}
		finishClone(out, ex, subst)
		return out
	case *ir.SuperCall:
		out := &ir.SuperCall{Args: cloneArgs(ex.Args, subst)}
		finishClone(out, ex, subst)
		return out
	case *ir.SpecializedCallRef:
		out := &ir.SpecializedCallRef{OriginalName: ex.OriginalName, SpecializedName: ex.SpecializedName, TypeArgs: substTypeAll(ex.TypeArgs, subst)}
		finishClone(out, ex, subst)
		return out
	default:
		return e
	}
}

// finishClone copies the substituted inferred type from src onto a freshly
// built node, through the Expression interface's SetType method — the one
// exprBase member reachable this way, since exprBase is package-private to
// internal/ir and no composite literal outside that package can name it
// (every case above already builds the new node from its own fields only).
// Specialized clones carry a zero-value Span, matching internal/anonobj's
// synthesized nodes: neither is a position that existed in the source.
func finishClone(out, src ir.Expression, subst map[string]*ir.IrType) {
	out.SetType(substType(src.Type(), subst))
}
