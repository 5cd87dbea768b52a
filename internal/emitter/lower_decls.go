package emitter

import (
	"github.com/tsoniclang/tsonic/internal/diagnostics"
	"github.com/tsoniclang/tsonic/internal/ir"
	"github.com/tsoniclang/tsonic/internal/targetast"
)

func lowerConstraints(ctx *context, typeParams []string, constraints map[string]*ir.IrType) []targetast.TypeParamConstraint {
	if len(constraints) == 0 {
		return nil
	}
	out := make([]targetast.TypeParamConstraint, 0, len(typeParams))
	for _, name := range typeParams {
		c, ok := constraints[name]
		if !ok || c == nil {
			continue
		}
		out = append(out, targetast.TypeParamConstraint{Name: name, Bounds: []*targetast.Type{lowerType(ctx, c)}})
	}
	return out
}

func lowerParams(ctx *context, params []ir.Param) []targetast.Param {
	out := make([]targetast.Param, len(params))
	for i, p := range params {
		out[i] = targetast.Param{
			Name:     p.Name,
			Type:     lowerType(ctx, p.Type),
			Mode:     lowerParamMode(p.Mode),
			Optional: p.Optional,
			Default:  lowerExprOrNil(ctx, p.Default),
		}
	}
	return out
}

func lowerParamMode(m ir.ParamMode) targetast.ParamMode {
	switch m {
	case ir.ModeRef:
		return targetast.ModeRef
	case ir.ModeOut:
		return targetast.ModeOut
	case ir.ModeIn:
		return targetast.ModeIn
	default:
		return targetast.ModeValue
	}
}

// lowerMethod lowers one FunctionDecl to a method declaration, delegating
// to the three-part generator lowering (generator.go) when IsGenerator is
// set rather than emitting a body that yields directly — TargetLang's
// iterator methods cannot expose next/return/throw the way the source
// generator protocol requires, so an IsGenerator FunctionDecl lowers to a
// full helper-class wrapper, not a plain `yield`-bearing method.
func lowerMethod(ctx *context, fn *ir.FunctionDecl, isStatic bool) targetast.MethodDecl {
	if fn.IsGenerator {
		return lowerGeneratorMethod(ctx, fn, isStatic)
	}
	fnCtx := ctx.withFlags(isStatic, fn.IsAsync)
	return targetast.MethodDecl{
		Name:        fn.Name,
		TypeParams:  fn.TypeParams,
		Constraints: lowerConstraints(ctx, fn.TypeParams, fn.TypeParamConstraints),
		Params:      lowerParams(ctx, fn.Params),
		ReturnType:  lowerType(ctx, fn.ReturnType),
		Body:        lowerBlock(fnCtx, fn.Body),
		IsStatic:    isStatic || fn.IsStatic,
		IsAsync:     fn.IsAsync,
	}
}

func lowerClassDecl(ctx *context, c *ir.ClassDecl) *targetast.ClassDecl {
	out := &targetast.ClassDecl{
		Name:        c.Name,
		TypeParams:  c.TypeParams,
		Constraints: lowerConstraints(ctx, c.TypeParams, c.TypeParamConstraints),
	}
	if c.BaseType != nil {
		out.BaseClass = lowerType(ctx, c.BaseType)
	}
	for _, impl := range c.Implements {
		if impl.IsNominalizedInterface {
			ctx.sink.Report(diagnostics.New(diagnostics.SeverityError, diagnostics.CodeImplementsNominalized, ctx.locAt(c.Sp), impl.RefName))
			continue
		}
		out.Implements = append(out.Implements, lowerType(ctx, impl))
	}
	for _, p := range c.Properties {
		out.Properties = append(out.Properties, targetast.PropertyDecl{Name: p.Name, Type: lowerType(ctx, p.Type), Readonly: p.Readonly, IsStatic: p.Static})
	}
	if c.Ctor != nil {
		var baseArgs []targetast.Arg
		body := lowerBlock(ctx, c.Ctor.Body)
		baseArgs, body.Stmts = extractBaseCall(body.Stmts)
		for _, st := range body.Stmts {
			if es, ok := st.(*targetast.ExprStmt); ok {
				if _, ok := es.Expr.(*targetast.BaseCall); ok {
					ctx.sink.Report(diagnostics.New(diagnostics.SeverityError, diagnostics.CodeNonFirstSuperCall, ctx.locAt(c.Ctor.Sp)))
				}
			}
		}
		out.Ctors = append(out.Ctors, targetast.CtorDecl{
			Params:   lowerParams(ctx, c.Ctor.Params),
			BaseArgs: baseArgs,
			Body:     body,
		})
	}
	for _, m := range c.Methods {
		out.Methods = append(out.Methods, lowerMethod(ctx, m, m.IsStatic))
		out.Methods = append(out.Methods, ctx.drainPendingMethods()...)
	}
	out.Nested = append(out.Nested, ctx.drainPending()...)
	return out
}

// extractBaseCall pulls a leading `base(...)` call out of a lowered
// constructor body into the initializer-list position TargetLang
// constructors require (spec.md §4.9: "a super(...) call in first-statement
// position translates to a base-initializer"). A base call left at any
// other position among the constructor body's own statements is reported
// as TSN7310 by lowerClassDecl after this extraction.
func extractBaseCall(stmts []targetast.Stmt) ([]targetast.Arg, []targetast.Stmt) {
	if len(stmts) == 0 {
		return nil, stmts
	}
	es, ok := stmts[0].(*targetast.ExprStmt)
	if !ok {
		return nil, stmts
	}
	base, ok := es.Expr.(*targetast.BaseCall)
	if !ok {
		return nil, stmts
	}
	return base.Args, stmts[1:]
}

func lowerInterfaceDecl(ctx *context, i *ir.InterfaceDecl) *targetast.InterfaceDecl {
	out := &targetast.InterfaceDecl{Name: i.Name, TypeParams: i.TypeParams}
	for _, ext := range i.Extends {
		out.Extends = append(out.Extends, lowerType(ctx, ext))
	}
	for _, p := range i.Properties {
		out.Properties = append(out.Properties, targetast.PropertyDecl{Name: p.Name, Type: lowerType(ctx, p.Type), Readonly: p.Readonly, IsStatic: p.Static})
	}
	for _, m := range i.Methods {
		out.Methods = append(out.Methods, targetast.MethodSignature{
			Name:       m.Name,
			TypeParams: m.TypeParams,
			Params:     lowerParams(ctx, m.Params),
			ReturnType: lowerType(ctx, m.ReturnType),
		})
	}
	return out
}

// lowerTypeAliasDecl implements spec.md §4.9's alias split: an alias to an
// object type emits as a sealed `__Alias`-suffixed class carrying the same
// members (so it participates in the target's nominal type system); an
// alias to anything else (a primitive, a union, a generic instantiation)
// has no runtime representation of its own and is dropped to a Comment so
// the source line is still traceable in the emitted file.
func lowerTypeAliasDecl(ctx *context, a *ir.TypeAliasDecl) targetast.Decl {
	if !a.IsObjectAlias || a.Value == nil || a.Value.Kind != ir.KindObject {
		return &targetast.Comment{Text: "type alias " + a.Name + " has no structural representation in TargetLang"}
	}
	cls := &targetast.ClassDecl{Name: a.Name + "__Alias", TypeParams: a.TypeParams, IsSealed: true}
	for _, m := range a.Value.ObjectMembers {
		cls.Properties = append(cls.Properties, targetast.PropertyDecl{Name: m.Name, Type: lowerType(ctx, m.Type), Readonly: m.Readonly})
	}
	return cls
}

func lowerEnumDecl(e *ir.EnumDecl) *targetast.EnumDecl {
	out := &targetast.EnumDecl{Name: e.Name}
	for _, m := range e.Members {
		out.Members = append(out.Members, targetast.EnumMember{
			Name:  m.Name,
			Value: &targetast.Literal{Kind: targetast.LitInt, Raw: itoa64(m.Value)},
		})
	}
	return out
}
