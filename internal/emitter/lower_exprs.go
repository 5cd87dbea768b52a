package emitter

import (
	"github.com/tsoniclang/tsonic/internal/diagnostics"
	"github.com/tsoniclang/tsonic/internal/ir"
	"github.com/tsoniclang/tsonic/internal/targetast"
)

// lowerExpr is the hand-written type-switch-with-return-value walker this
// package's doc comment grounds on internal/mono/clone.go's cloneExpr: one
// case per closed ir.Expression variant, each returning the targetast node
// it lowers to.
func lowerExpr(ctx *context, e ir.Expression) targetast.Expr {
	if e == nil {
		return nil
	}
	switch n := e.(type) {
	case *ir.Literal:
		return lowerLiteral(n)
	case *ir.IdentifierRef:
		return &targetast.Ident{Name: n.Name}
	case *ir.This:
		return &targetast.This{}
	case *ir.Binary:
		return &targetast.Binary{Op: string(n.Op), Left: lowerExpr(ctx, n.Left), Right: lowerExpr(ctx, n.Right)}
	case *ir.Unary:
		return &targetast.Unary{Op: string(n.Op), Prefix: true, Operand: lowerExpr(ctx, n.Operand)}
	case *ir.Assign:
		return &targetast.Assign{Op: n.Op, Left: lowerExpr(ctx, n.Left), Right: lowerExpr(ctx, n.Right)}
	case *ir.Conditional:
		return &targetast.Conditional{Cond: lowerExpr(ctx, n.Cond), Then: lowerExpr(ctx, n.Then), Else: lowerExpr(ctx, n.Else)}
	case *ir.Logical:
		return lowerLogical(ctx, n)
	case *ir.Nullish:
		return &targetast.NullCoalesce{Left: lowerExpr(ctx, n.Left), Right: lowerExpr(ctx, n.Right)}
	case *ir.Call:
		return lowerCall(ctx, n)
	case *ir.New:
		return lowerNew(ctx, n)
	case *ir.Member:
		return &targetast.Member{Object: lowerExpr(ctx, n.Object), Name: n.Property, NullConditional: n.Optional}
	case *ir.Index:
		return lowerIndex(ctx, n)
	case *ir.ObjectLiteral:
		return lowerObjectLiteral(ctx, n)
	case *ir.ArrayLiteral:
		return lowerArrayLiteral(ctx, n)
	case *ir.TupleLiteral:
		elems := make([]targetast.Expr, len(n.Elements))
		for i, el := range n.Elements {
			elems[i] = lowerExpr(ctx, el)
		}
		return &targetast.TupleExpr{Elements: elems}
	case *ir.Lambda:
		return lowerLambda(ctx, n)
	case *ir.TryCast:
		return &targetast.AsCast{Type: lowerType(ctx, n.Target), Value: lowerExpr(ctx, n.Value)}
	case *ir.AsCast:
		return lowerAsCast(ctx, n)
	case *ir.InstanceOf:
		return &targetast.IsPattern{Value: lowerExpr(ctx, n.Value), Type: lowerType(ctx, n.Target)}
	case *ir.NarrowedView:
		return lowerNarrowedView(ctx, n)
	case *ir.SuperCall:
		return &targetast.BaseCall{Args: lowerArgs(ctx, n.Args)}
	case *ir.SpecializedCallRef:
		return &targetast.Ident{Name: n.SpecializedName}
	default:
		ctx.sink.Report(diagnostics.New(diagnostics.SeverityError, diagnostics.CodeInternalError, ctx.loc(e), "unhandled expression kind in emitter"))
		return &targetast.Literal{Kind: targetast.LitNull, Raw: "null"}
	}
}

func lowerExprOrNil(ctx *context, e ir.Expression) targetast.Expr {
	if e == nil {
		return nil
	}
	return lowerExpr(ctx, e)
}

func lowerLiteral(n *ir.Literal) *targetast.Literal {
	switch n.Kind {
	case ir.LitInteger:
		return &targetast.Literal{Kind: targetast.LitInt, Raw: n.Raw}
	case ir.LitFloat:
		return &targetast.Literal{Kind: targetast.LitDouble, Raw: n.Raw}
	case ir.LitString:
		return &targetast.Literal{Kind: targetast.LitString, Raw: n.Raw}
	case ir.LitBoolean:
		return &targetast.Literal{Kind: targetast.LitBool, Raw: n.Raw}
	default:
		return &targetast.Literal{Kind: targetast.LitNull, Raw: "null"}
	}
}

// lowerLogical implements spec.md §4.9's ||->?? rewrite: `||` over a
// nullable left operand becomes `??`; `||` over a non-nullable value-typed
// left operand is elided to the left operand alone, since the right side
// is unreachable at the target level (unless the left operand itself
// contains a conditional-access chain, in which case the null-coalesce
// form is kept so the ?. short-circuit still has somewhere to flow).
func lowerLogical(ctx *context, n *ir.Logical) targetast.Expr {
	left := lowerExpr(ctx, n.Left)
	right := lowerExpr(ctx, n.Right)
	if n.Op == "&&" {
		return &targetast.Binary{Op: "&&", Left: left, Right: right}
	}
	if isNullableType(n.Left.Type()) || containsConditionalAccess(left) {
		return &targetast.NullCoalesce{Left: left, Right: right}
	}
	return left
}

func containsConditionalAccess(e targetast.Expr) bool {
	switch n := e.(type) {
	case *targetast.Member:
		return n.NullConditional || containsConditionalAccess(n.Object)
	case *targetast.Index:
		return n.NullConditional || containsConditionalAccess(n.Object)
	default:
		return false
	}
}

func lowerArgs(ctx *context, args []ir.Arg) []targetast.Arg {
	out := make([]targetast.Arg, len(args))
	for i, a := range args {
		out[i] = targetast.Arg{Value: lowerExpr(ctx, a.Value), Mode: lowerArgMode(a.Mode)}
	}
	return out
}

func lowerArgMode(m ir.ArgMode) targetast.ParamMode {
	switch m {
	case ir.ArgModeRef:
		return targetast.ModeRef
	case ir.ArgModeOut:
		return targetast.ModeOut
	case ir.ArgModeIn:
		return targetast.ModeIn
	default:
		return targetast.ModeValue
	}
}

func lowerCall(ctx *context, n *ir.Call) targetast.Expr {
	callee := lowerExpr(ctx, n.Callee)
	if n.Specialized != nil {
		callee = &targetast.Ident{Name: n.Specialized.SpecializedName}
	}
	typeArgs := make([]*targetast.Type, len(n.ExplicitTypeArgs))
	for i, t := range n.ExplicitTypeArgs {
		typeArgs[i] = lowerType(ctx, t)
	}
	return &targetast.Call{Callee: callee, TypeArgs: typeArgs, Args: lowerArgs(ctx, n.Args)}
}

func lowerNew(ctx *context, n *ir.New) *targetast.New {
	callee := lowerExpr(ctx, n.Callee)
	var t *targetast.Type
	if ident, ok := callee.(*targetast.Ident); ok {
		t = targetast.NamedType(ident.Name)
	} else {
		t = targetast.Dynamic
	}
	return &targetast.New{Type: t, Args: lowerArgs(ctx, n.Args)}
}

func lowerIndex(ctx *context, n *ir.Index) *targetast.Index {
	return &targetast.Index{Object: lowerExpr(ctx, n.Object), Index: lowerExpr(ctx, n.Index)}
}

func lowerObjectLiteral(ctx *context, n *ir.ObjectLiteral) targetast.Expr {
	// By the time the emitter runs, every object literal's contextual
	// type has been nominalized to a concrete class by internal/anonobj;
	// the literal itself lowers to that class's object-initializer form.
	t := lowerType(ctx, n.Type())
	members := make([]targetast.InitMember, len(n.Properties))
	for i, p := range n.Properties {
		members[i] = targetast.InitMember{Name: p.Name, Value: lowerExpr(ctx, p.Value)}
	}
	return &targetast.New{Type: t, Init: members}
}

func lowerArrayLiteral(ctx *context, n *ir.ArrayLiteral) *targetast.ArrayInit {
	elemType := targetast.Dynamic
	if t := n.Type(); t != nil && t.Kind == ir.KindArray {
		elemType = lowerType(ctx, t.ElemType)
	}
	elements := make([]targetast.Expr, len(n.Elements))
	for i, el := range n.Elements {
		elements[i] = lowerExpr(ctx, el)
	}
	return &targetast.ArrayInit{ElemType: elemType, Elements: elements}
}

func lowerLambda(ctx *context, n *ir.Lambda) *targetast.Lambda {
	params := make([]targetast.LambdaParam, len(n.Params))
	for i, p := range n.Params {
		params[i] = targetast.LambdaParam{Name: p.Name, Type: lowerType(ctx, p.Type)}
	}
	if n.Body != nil {
		return &targetast.Lambda{Params: params, BlockBody: lowerBlock(ctx, n.Body)}
	}
	return &targetast.Lambda{Params: params, ExprBody: lowerExpr(ctx, n.ExprBody)}
}

// lowerAsCast implements spec.md §4.9/§4.8's narrowing soundness split: a
// cast the numeric proof pass validated (Proof() set) prints as a plain
// cast since the target representation is already exact; one with no
// proof at all (reference narrowing, not a numeric one) lowers to the
// target's safe `as` operator.
func lowerAsCast(ctx *context, n *ir.AsCast) targetast.Expr {
	value := lowerExpr(ctx, n.Value)
	t := lowerType(ctx, n.Target)
	if n.Proof() != nil {
		return &targetast.Cast{Type: t, Value: value}
	}
	return &targetast.AsCast{Type: t, Value: value}
}

func lowerNarrowedView(ctx *context, n *ir.NarrowedView) targetast.Expr {
	original := lowerExpr(ctx, n.Original)
	if n.IsDowncast {
		return &targetast.Cast{Type: targetast.NamedType(n.ViewName), Value: original}
	}
	return &targetast.Call{Callee: &targetast.Member{Object: original, Name: n.ViewName}}
}
