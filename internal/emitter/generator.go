package emitter

import (
	"github.com/tsoniclang/tsonic/internal/ir"
	"github.com/tsoniclang/tsonic/internal/targetast"
)

// lowerGeneratorMethod lowers a generator in three parts: the body's yields
// become a private `_core_<name>` iterator method (TargetLang's own
// yield-return sequences handle those directly), wrapped by a synthesized
// `_Generator_<name>` class that drives the iterator by hand so it can
// expose Next()/Return()/Throw(), with the public entry point (fn's own
// name) constructing and returning that wrapper. No per-step exchange
// object is emitted: Next(), Return() and Throw() take no arguments, so no
// value is passed back into the generator. Throw() cannot resume at the
// suspended yield point — it can only terminate the sequence and raise —
// which is the limitation diagnostics.CodeResumableThrowLimitation names;
// no diagnostic is reported for it, only the raised exception's message
// states it.
func lowerGeneratorMethod(ctx *context, fn *ir.FunctionDecl, isStatic bool) targetast.MethodDecl {
	ctx.use("System.Collections.Generic")
	elem := generatorElementType(ctx, fn.ReturnType)
	wrapperName := "_Generator_" + fn.Name
	coreName := "_core_" + fn.Name

	coreCtx := ctx.withFlags(isStatic, false)
	coreMethod := targetast.MethodDecl{
		Name:       coreName,
		TypeParams: fn.TypeParams,
		Params:     lowerParams(ctx, fn.Params),
		ReturnType: targetast.NamedType("IEnumerable", elem),
		Body:       lowerBlock(coreCtx, fn.Body),
		IsStatic:   isStatic || fn.IsStatic,
	}
	ctx.addPendingMethod(coreMethod)
	ctx.addPending(generatorWrapperClass(wrapperName, elem))

	args := make([]targetast.Arg, len(fn.Params))
	for i, p := range fn.Params {
		args[i] = targetast.Arg{Value: &targetast.Ident{Name: p.Name}}
	}
	coreCall := &targetast.Call{Callee: &targetast.Ident{Name: coreName}, Args: args}
	enumerator := &targetast.Call{Callee: &targetast.Member{Object: coreCall, Name: "GetEnumerator"}}
	body := &targetast.Block{Stmts: []targetast.Stmt{
		&targetast.Return{Value: &targetast.New{Type: targetast.NamedType(wrapperName), Args: []targetast.Arg{{Value: enumerator}}}},
	}}

	return targetast.MethodDecl{
		Name:       fn.Name,
		TypeParams: fn.TypeParams,
		Params:     lowerParams(ctx, fn.Params),
		ReturnType: targetast.NamedType(wrapperName),
		Body:       body,
		IsStatic:   isStatic || fn.IsStatic,
		IsAsync:    false,
	}
}

// generatorElementType extracts the yielded element type from a generator
// function's declared return type (a reference type whose first type
// argument is the yield type), defaulting to dynamic when the surface
// annotation didn't supply one.
func generatorElementType(ctx *context, ret *ir.IrType) *targetast.Type {
	if ret != nil && ret.Kind == ir.KindReference && len(ret.RefArgs) > 0 {
		return lowerType(ctx, ret.RefArgs[0])
	}
	return targetast.Dynamic
}

func generatorWrapperClass(name string, elem *targetast.Type) *targetast.ClassDecl {
	enumeratorType := targetast.NamedType("IEnumerator", elem)
	return &targetast.ClassDecl{
		Name:   name,
		Fields: []targetast.FieldDecl{
			{Name: "_core", Type: enumeratorType, IsReadonly: true},
			{Name: "_done", Type: targetast.Bool},
		},
		Ctors: []targetast.CtorDecl{{
			Params: []targetast.Param{{Name: "core", Type: enumeratorType}},
			Body: &targetast.Block{Stmts: []targetast.Stmt{
				&targetast.ExprStmt{Expr: &targetast.Assign{Op: "=", Left: &targetast.Member{Object: &targetast.This{}, Name: "_core"}, Right: &targetast.Ident{Name: "core"}}},
			}},
		}},
		Methods: []targetast.MethodDecl{
			nextMethod(elem),
			returnMethod(),
			throwMethod(),
		},
	}
}

func nextMethod(elem *targetast.Type) targetast.MethodDecl {
	cond := &targetast.Unary{Op: "!", Prefix: true, Operand: &targetast.Member{Object: &targetast.This{}, Name: "_done"}}
	moveNext := &targetast.Call{Callee: &targetast.Member{Object: &targetast.Member{Object: &targetast.This{}, Name: "_core"}, Name: "MoveNext"}}
	body := &targetast.Block{Stmts: []targetast.Stmt{
		&targetast.If{
			Cond: &targetast.Binary{Op: "&&", Left: cond, Right: &targetast.Unary{Op: "!", Prefix: true, Operand: moveNext}},
			Then: &targetast.Block{Stmts: []targetast.Stmt{
				&targetast.ExprStmt{Expr: &targetast.Assign{Op: "=", Left: &targetast.Member{Object: &targetast.This{}, Name: "_done"}, Right: &targetast.Literal{Kind: targetast.LitBool, Raw: "true"}}},
			}},
		},
		&targetast.If{
			Cond: &targetast.Member{Object: &targetast.This{}, Name: "_done"},
			Then: &targetast.Block{Stmts: []targetast.Stmt{&targetast.Return{Value: &targetast.Default{Type: elem}}}},
		},
		&targetast.Return{Value: &targetast.Member{Object: &targetast.Member{Object: &targetast.This{}, Name: "_core"}, Name: "Current"}},
	}}
	return targetast.MethodDecl{Name: "Next", ReturnType: elem, Body: body}
}

func returnMethod() targetast.MethodDecl {
	body := &targetast.Block{Stmts: []targetast.Stmt{
		&targetast.ExprStmt{Expr: &targetast.Assign{Op: "=", Left: &targetast.Member{Object: &targetast.This{}, Name: "_done"}, Right: &targetast.Literal{Kind: targetast.LitBool, Raw: "true"}}},
	}}
	return targetast.MethodDecl{Name: "Return", ReturnType: targetast.Void, Body: body}
}

// throwMethod implements diagnostics.CodeResumableThrowLimitation: throw()
// always terminates the sequence and raises externally rather than
// resuming execution at the last suspended yield.
func throwMethod() targetast.MethodDecl {
	body := &targetast.Block{Stmts: []targetast.Stmt{
		&targetast.ExprStmt{Expr: &targetast.Assign{Op: "=", Left: &targetast.Member{Object: &targetast.This{}, Name: "_done"}, Right: &targetast.Literal{Kind: targetast.LitBool, Raw: "true"}}},
		&targetast.Throw{Value: &targetast.New{Type: targetast.NamedType("Exception"), Args: []targetast.Arg{{Value: &targetast.Literal{Kind: targetast.LitString, Raw: "generator throw() cannot resume at the suspended yield point"}}}}},
	}}
	return targetast.MethodDecl{Name: "Throw", ReturnType: targetast.Void, Body: body}
}
