package mono

import (
	"fmt"

	"github.com/tsoniclang/tsonic/internal/ids"
	"github.com/tsoniclang/tsonic/internal/ir"
)

// specializer walks a module looking for calls into a generic
// FunctionDecl (one with its own TypeParams, per RequiresSpecialization)
// and rewrites each into a reference to a specialized target method,
// synthesizing that method on first use. Grounded in shape on
// internal/narrowing and internal/anonobj's own hand-written recursive
// walkers (spec.md has no generic-call-rewriting analogue in the teacher,
// whose own generic resolution never erases type parameters — see
// DESIGN.md).
type specializer struct {
	idx   map[ids.SignatureId]*fnSite
	cache map[string]*ir.FunctionDecl // "sigId|mangledSuffix" -> already-synthesized clone

	topLevelAdds []*ir.FunctionDecl
	methodAdds   map[*ir.ClassDecl][]*ir.FunctionDecl
}

func newSpecializer(idx map[ids.SignatureId]*fnSite) *specializer {
	return &specializer{idx: idx, cache: make(map[string]*ir.FunctionDecl), methodAdds: make(map[*ir.ClassDecl][]*ir.FunctionDecl)}
}

func (s *specializer) appendTo(module *ir.Module) {
	for _, fn := range s.topLevelAdds {
		module.Statements = append(module.Statements, fn)
	}
	for owner, adds := range s.methodAdds {
		owner.Methods = append(owner.Methods, adds...)
	}
}

func (s *specializer) walkStmts(stmts []ir.Statement) {
	for _, st := range stmts {
		s.walkStmt(st)
	}
}

func (s *specializer) walkBlock(b *ir.Block) {
	if b == nil {
		return
	}
	s.walkStmts(b.Stmts)
}

func (s *specializer) walkStmt(st ir.Statement) {
	switch n := st.(type) {
	case *ir.Block:
		s.walkBlock(n)
	case *ir.ExprStatement:
		s.walkExpr(n.Expr)
	case *ir.VarStatement:
		s.walkExpr(n.Init)
	case *ir.IfStatement:
		s.walkExpr(n.Cond)
		s.walkBlock(n.Then)
		s.walkStmt(n.Else)
	case *ir.ForStatement:
		s.walkStmt(n.Init)
		s.walkExpr(n.Cond)
		s.walkExpr(n.Post)
		s.walkBlock(n.Body)
	case *ir.ForOfStatement:
		s.walkExpr(n.Iterable)
		s.walkBlock(n.Body)
	case *ir.WhileStatement:
		s.walkExpr(n.Cond)
		s.walkBlock(n.Body)
	case *ir.ReturnStatement:
		s.walkExpr(n.Value)
	case *ir.YieldStatement:
		s.walkExpr(n.Value)
	case *ir.ThrowStatement:
		s.walkExpr(n.Value)
	case *ir.MatchStatement:
		s.walkExpr(n.Subject)
		for _, arm := range n.Arms {
			s.walkExpr(arm.Predicate)
			s.walkBlock(arm.Body)
		}
		s.walkBlock(n.Default)
	case *ir.FunctionDecl:
		s.walkBlock(n.Body)
	case *ir.ClassDecl:
		for _, m := range n.Methods {
			s.walkBlock(m.Body)
		}
		if n.Ctor != nil {
			s.walkBlock(n.Ctor.Body)
		}
	}
}

func (s *specializer) walkExpr(e ir.Expression) {
	switch ex := e.(type) {
	case nil:
		return
	case *ir.Binary:
		s.walkExpr(ex.Left)
		s.walkExpr(ex.Right)
	case *ir.Unary:
		s.walkExpr(ex.Operand)
	case *ir.Assign:
		s.walkExpr(ex.Left)
		s.walkExpr(ex.Right)
	case *ir.Conditional:
		s.walkExpr(ex.Cond)
		s.walkExpr(ex.Then)
		s.walkExpr(ex.Else)
	case *ir.Logical:
		s.walkExpr(ex.Left)
		s.walkExpr(ex.Right)
	case *ir.Nullish:
		s.walkExpr(ex.Left)
		s.walkExpr(ex.Right)
	case *ir.Call:
		s.walkExpr(ex.Callee)
		for _, a := range ex.Args {
			s.walkExpr(a.Value)
		}
		s.trySpecialize(ex)
	case *ir.New:
		s.walkExpr(ex.Callee)
		for _, a := range ex.Args {
			s.walkExpr(a.Value)
		}
	case *ir.Member:
		s.walkExpr(ex.Object)
	case *ir.Index:
		s.walkExpr(ex.Object)
		s.walkExpr(ex.Index)
	case *ir.ObjectLiteral:
		for _, p := range ex.Properties {
			s.walkExpr(p.Value)
		}
	case *ir.ArrayLiteral:
		for _, el := range ex.Elements {
			s.walkExpr(el)
		}
	case *ir.TupleLiteral:
		for _, el := range ex.Elements {
			s.walkExpr(el)
		}
	case *ir.Lambda:
		s.walkBlock(ex.Body)
		s.walkExpr(ex.ExprBody)
	case *ir.TryCast:
		s.walkExpr(ex.Value)
	case *ir.AsCast:
		s.walkExpr(ex.Value)
	case *ir.InstanceOf:
		s.walkExpr(ex.Value)
	case *ir.NarrowedView:
		s.walkExpr(ex.Original)
	case *ir.SuperCall:
		for _, a := range ex.Args {
			s.walkExpr(a.Value)
		}
	}
}

// trySpecialize rewrites call into a reference to a specialized target
// method when it targets a generic FunctionDecl, synthesizing that method
// on first use for this particular instantiation.
func (s *specializer) trySpecialize(call *ir.Call) {
	site, ok := s.idx[call.Signature]
	if !ok || len(site.fn.TypeParams) == 0 {
		return
	}
	fn := site.fn

	subst := make(map[string]*ir.IrType, len(fn.TypeParams))
	for i, name := range fn.TypeParams {
		if i < len(call.ExplicitTypeArgs) && call.ExplicitTypeArgs[i] != nil {
			subst[name] = call.ExplicitTypeArgs[i]
		}
	}
	for i, p := range fn.Params {
		if i < len(call.ParameterTypes) {
			unify(p.Type, call.ParameterTypes[i], subst)
		}
	}

	typeArgs := make([]*ir.IrType, len(fn.TypeParams))
	for i, name := range fn.TypeParams {
		if t, ok := subst[name]; ok {
			typeArgs[i] = t
		} else {
			typeArgs[i] = ir.TypeAny
		}
	}

	suffix := mangleTypeArgs(typeArgs)
	cacheKey := fmt.Sprintf("%d|%s", call.Signature, suffix)
	specializedName := fn.Name + "_" + suffix

	if existing, ok := s.cache[cacheKey]; ok {
		call.Specialized = &ir.SpecializedCallRef{OriginalName: fn.Name, SpecializedName: existing.Name, TypeArgs: typeArgs}
		return
	}

	clone := &ir.FunctionDecl{
		Name:        specializedName,
		TypeParams:  nil,
		Params:      cloneParams(fn.Params, subst),
		ReturnType:  substType(fn.ReturnType, subst),
		Body:        cloneBlock(fn.Body, subst),
		IsGenerator: fn.IsGenerator,
		IsAsync:     fn.IsAsync,
		IsStatic:    fn.IsStatic,
	}
	s.cache[cacheKey] = clone

	if site.owner == nil {
		s.topLevelAdds = append(s.topLevelAdds, clone)
	} else {
		s.methodAdds[site.owner] = append(s.methodAdds[site.owner], clone)
	}

	// A specialized body can itself contain calls into other generics
	// (or recursive calls into the same one, now at a concrete
	// instantiation): walk it with the same specializer so those sites
	// are resolved too, before the clone is handed back to the caller.
	s.walkBlock(clone.Body)

	call.Specialized = &ir.SpecializedCallRef{OriginalName: fn.Name, SpecializedName: specializedName, TypeArgs: typeArgs}
}
