package narrowing

import (
	"testing"

	"github.com/tsoniclang/tsonic/internal/binding"
	"github.com/tsoniclang/tsonic/internal/diagnostics"
	"github.com/tsoniclang/tsonic/internal/ir"
	"github.com/tsoniclang/tsonic/internal/irbuilder"
	"github.com/tsoniclang/tsonic/internal/surface"
	"github.com/tsoniclang/tsonic/internal/typecatalog"
	"github.com/tsoniclang/tsonic/internal/typesystem"
)

func namedType(name string) *surface.NamedTypeSyntax {
	return &surface.NamedTypeSyntax{Name: name}
}

func strLiteralType(raw string) *surface.LiteralTypeSyntax {
	return &surface.LiteralTypeSyntax{Lit: &surface.Literal{Kind: surface.LitString, Raw: raw}}
}

// buildModule binds, type-checks, and converts prog exactly as the real
// pipeline would before handing the module to narrowing.Pass.
func buildModule(t *testing.T, prog *surface.Program) (*ir.Module, *typesystem.System) {
	t.Helper()
	sink := diagnostics.NewSink()
	b := binding.New([]*surface.Program{prog}, sink)
	catalog := typecatalog.New()
	types := typesystem.New(b, catalog, sink)
	mod := irbuilder.BuildModule(b, types, sink, prog)
	if len(sink.Diagnostics()) != 0 {
		t.Fatalf("unexpected diagnostics building fixture: %v", sink.Diagnostics())
	}
	return mod, types
}

func findFunction(mod *ir.Module, name string) *ir.FunctionDecl {
	for _, s := range mod.Statements {
		if fn, ok := s.(*ir.FunctionDecl); ok && fn.Name == name {
			return fn
		}
	}
	return nil
}

// narrowedViewIn descends through a Member/Call chain to find a
// NarrowedView at the root of an expression built on an identifier.
func narrowedViewIn(e ir.Expression) *ir.NarrowedView {
	switch ex := e.(type) {
	case *ir.NarrowedView:
		return ex
	case *ir.Member:
		return narrowedViewIn(ex.Object)
	case *ir.Call:
		return narrowedViewIn(ex.Callee)
	}
	return nil
}

func TestPass_DiscriminantNarrowing(t *testing.T) {
	circle := &surface.ClassDecl{
		Name: "Circle",
		Properties: []*surface.PropertyMember{
			{Name: "kind", Type: strLiteralType("circle")},
			{Name: "radius", Type: namedType("number")},
		},
	}
	square := &surface.ClassDecl{
		Name: "Square",
		Properties: []*surface.PropertyMember{
			{Name: "kind", Type: strLiteralType("square")},
			{Name: "side", Type: namedType("number")},
		},
	}
	shapeUnion := &surface.UnionTypeSyntax{Types: []surface.TypeSyntax{namedType("Circle"), namedType("Square")}}

	cond := &surface.BinaryExpr{
		Op:    surface.OpStrictEq,
		Left:  &surface.MemberExpr{Object: &surface.Identifier{Name: "shape"}, Property: "kind"},
		Right: &surface.Literal{Kind: surface.LitString, Raw: "circle"},
	}
	fn := &surface.FunctionDecl{
		Name:       "area",
		Params:     []*surface.Param{{Name: "shape", Type: shapeUnion}},
		ReturnType: namedType("number"),
		Body: &surface.Block{Stmts: []surface.Stmt{
			&surface.IfStmt{
				Cond: cond,
				Then: &surface.Block{Stmts: []surface.Stmt{
					&surface.ReturnStmt{Value: &surface.MemberExpr{Object: &surface.Identifier{Name: "shape"}, Property: "radius"}},
				}},
			},
			&surface.ReturnStmt{Value: &surface.MemberExpr{Object: &surface.Identifier{Name: "shape"}, Property: "side"}},
		}},
	}
	prog := &surface.Program{File: "f.ts", Decls: []surface.Decl{circle, square, fn}}
	mod, types := buildModule(t, prog)

	Pass(mod, types)

	area := findFunction(mod, "area")
	ifStmt := area.Body.Stmts[0].(*ir.IfStatement)
	ret := ifStmt.Then.Stmts[0].(*ir.ReturnStatement)
	member := ret.Value.(*ir.Member)
	nv, ok := member.Object.(*ir.NarrowedView)
	if !ok {
		t.Fatalf("expected shape.radius's receiver to be narrowed, got %T", member.Object)
	}
	if !nv.IsDowncast || nv.ViewName != "AsCircle" {
		t.Errorf("expected a downcast view named AsCircle, got IsDowncast=%v ViewName=%q", nv.IsDowncast, nv.ViewName)
	}

	// No else branch was written, so the second return (shape.side) must be
	// untouched: its receiver stays a bare identifier.
	secondRet := area.Body.Stmts[1].(*ir.ReturnStatement)
	if _, ok := secondRet.Value.(*ir.Member).Object.(*ir.NarrowedView); ok {
		t.Error("shape.side sits outside the narrowed branch and must not be rewritten")
	}
}

func TestPass_InstanceOfNarrowing(t *testing.T) {
	animal := &surface.ClassDecl{Name: "Animal"}
	dog := &surface.ClassDecl{
		Name:    "Dog",
		Extends: namedType("Animal"),
		Methods: []*surface.MethodMember{
			{Name: "bark", ReturnType: namedType("void"), Body: &surface.Block{}},
		},
	}
	barkCall := &surface.CallExpr{Callee: &surface.MemberExpr{Object: &surface.Identifier{Name: "a"}, Property: "bark"}}
	fn := &surface.FunctionDecl{
		Name:   "f",
		Params: []*surface.Param{{Name: "a", Type: namedType("Animal")}},
		Body: &surface.Block{Stmts: []surface.Stmt{
			&surface.IfStmt{
				Cond: &surface.InstanceOfExpr{Value: &surface.Identifier{Name: "a"}, Target: namedType("Dog")},
				Then: &surface.Block{Stmts: []surface.Stmt{&surface.ExprStmt{Expr: barkCall}}},
			},
		}},
	}
	prog := &surface.Program{File: "f.ts", Decls: []surface.Decl{animal, dog, fn}}
	mod, types := buildModule(t, prog)

	Pass(mod, types)

	f := findFunction(mod, "f")
	ifStmt := f.Body.Stmts[0].(*ir.IfStatement)
	exprStmt := ifStmt.Then.Stmts[0].(*ir.ExprStatement)
	nv := narrowedViewIn(exprStmt.Expr)
	if nv == nil {
		t.Fatalf("expected a.bark()'s receiver to be narrowed, got %#v", exprStmt.Expr)
	}
	if !nv.IsDowncast || nv.ViewName != "AsDog" {
		t.Errorf("expected a downcast view named AsDog, got IsDowncast=%v ViewName=%q", nv.IsDowncast, nv.ViewName)
	}
}

func TestPass_TypePredicateNarrowing(t *testing.T) {
	animal := &surface.ClassDecl{Name: "Animal"}
	dog := &surface.ClassDecl{
		Name:    "Dog",
		Extends: namedType("Animal"),
		Methods: []*surface.MethodMember{
			{Name: "bark", ReturnType: namedType("void"), Body: &surface.Block{}},
		},
	}
	isDog := &surface.FunctionDecl{
		Name:       "isDog",
		Params:     []*surface.Param{{Name: "a", Type: namedType("Animal")}},
		ReturnType: &surface.TypePredicateSyntax{ParamName: "a", AssertedType: namedType("Dog")},
		Body:       &surface.Block{Stmts: []surface.Stmt{&surface.ReturnStmt{Value: &surface.Literal{Kind: surface.LitBoolean, Raw: "true"}}}},
	}
	guardCall := &surface.CallExpr{
		Callee: &surface.Identifier{Name: "isDog"},
		Args:   []surface.Argument{{Value: &surface.Identifier{Name: "a"}}},
	}
	barkCall := &surface.CallExpr{Callee: &surface.MemberExpr{Object: &surface.Identifier{Name: "a"}, Property: "bark"}}
	fn := &surface.FunctionDecl{
		Name:   "f",
		Params: []*surface.Param{{Name: "a", Type: namedType("Animal")}},
		Body: &surface.Block{Stmts: []surface.Stmt{
			&surface.IfStmt{
				Cond: &surface.TypePredicateCallExpr{Call: guardCall},
				Then: &surface.Block{Stmts: []surface.Stmt{&surface.ExprStmt{Expr: barkCall}}},
			},
		}},
	}
	prog := &surface.Program{File: "f.ts", Decls: []surface.Decl{animal, dog, isDog, fn}}
	mod, types := buildModule(t, prog)

	Pass(mod, types)

	f := findFunction(mod, "f")
	ifStmt := f.Body.Stmts[0].(*ir.IfStatement)
	if ifStmt.Cond.Type() != ir.TypeBoolean {
		t.Errorf("isDog(a)'s resolved call type should be boolean (predicate signatures always return boolean), got %v", ifStmt.Cond.Type())
	}
	exprStmt := ifStmt.Then.Stmts[0].(*ir.ExprStatement)
	nv := narrowedViewIn(exprStmt.Expr)
	if nv == nil {
		t.Fatalf("expected a.bark()'s receiver to be narrowed by the isDog(a) guard, got %#v", exprStmt.Expr)
	}
	if !nv.IsDowncast || nv.ViewName != "AsDog" {
		t.Errorf("expected a downcast view named AsDog, got IsDowncast=%v ViewName=%q", nv.IsDowncast, nv.ViewName)
	}
}

func TestPass_TruthinessNullNarrowing(t *testing.T) {
	nullableString := &surface.UnionTypeSyntax{Types: []surface.TypeSyntax{namedType("string"), namedType("null")}}
	fn := &surface.FunctionDecl{
		Name:   "f",
		Params: []*surface.Param{{Name: "x", Type: nullableString}},
		Body: &surface.Block{Stmts: []surface.Stmt{
			&surface.IfStmt{
				Cond: &surface.Identifier{Name: "x"},
				Then: &surface.Block{Stmts: []surface.Stmt{
					&surface.ExprStmt{Expr: &surface.Identifier{Name: "x"}},
				}},
				Else: &surface.Block{Stmts: []surface.Stmt{
					&surface.ExprStmt{Expr: &surface.Identifier{Name: "x"}},
				}},
			},
		}},
	}
	prog := &surface.Program{File: "f.ts", Decls: []surface.Decl{fn}}
	mod, types := buildModule(t, prog)

	Pass(mod, types)

	f := findFunction(mod, "f")
	ifStmt := f.Body.Stmts[0].(*ir.IfStatement)

	thenExpr := ifStmt.Then.Stmts[0].(*ir.ExprStatement).Expr
	thenView, ok := thenExpr.(*ir.NarrowedView)
	if !ok {
		t.Fatalf("expected the Then branch's x to be narrowed, got %T", thenExpr)
	}
	if thenView.IsDowncast {
		t.Error("null-narrowing is a type-only relabeling, not a runtime downcast")
	}
	if thenView.Type() == nil || thenView.Type().Kind != ir.KindPrimitive || thenView.Type().Primitive != ir.PrimString {
		t.Errorf("expected the Then view's type to narrow to plain string, got %v", thenView.Type())
	}

	elseStmt, ok := ifStmt.Else.(*ir.Block)
	if !ok {
		t.Fatalf("expected a Block else-branch, got %T", ifStmt.Else)
	}
	elseExpr := elseStmt.Stmts[0].(*ir.ExprStatement).Expr
	elseView, ok := elseExpr.(*ir.NarrowedView)
	if !ok {
		t.Fatalf("expected the Else branch's x to be narrowed, got %T", elseExpr)
	}
	if elseView.Type() == nil || elseView.Type().Kind != ir.KindPrimitive || elseView.Type().Primitive != ir.PrimNull {
		t.Errorf("expected the Else view's type to narrow to null, got %v", elseView.Type())
	}
}

func TestPass_NegatedConditionSwapsBranches(t *testing.T) {
	animal := &surface.ClassDecl{Name: "Animal"}
	dog := &surface.ClassDecl{
		Name:    "Dog",
		Extends: namedType("Animal"),
		Methods: []*surface.MethodMember{
			{Name: "bark", ReturnType: namedType("void"), Body: &surface.Block{}},
		},
	}
	barkCall := &surface.CallExpr{Callee: &surface.MemberExpr{Object: &surface.Identifier{Name: "a"}, Property: "bark"}}
	fn := &surface.FunctionDecl{
		Name:   "f",
		Params: []*surface.Param{{Name: "a", Type: namedType("Animal")}},
		Body: &surface.Block{Stmts: []surface.Stmt{
			&surface.IfStmt{
				Cond: &surface.UnaryExpr{
					Op:      surface.OpNot,
					Operand: &surface.InstanceOfExpr{Value: &surface.Identifier{Name: "a"}, Target: namedType("Dog")},
				},
				Then: &surface.Block{Stmts: []surface.Stmt{&surface.ReturnStmt{}}},
				Else: &surface.Block{Stmts: []surface.Stmt{&surface.ExprStmt{Expr: barkCall}}},
			},
		}},
	}
	prog := &surface.Program{File: "f.ts", Decls: []surface.Decl{animal, dog, fn}}
	mod, types := buildModule(t, prog)

	Pass(mod, types)

	f := findFunction(mod, "f")
	ifStmt := f.Body.Stmts[0].(*ir.IfStatement)
	elseBlock := ifStmt.Else.(*ir.Block)
	exprStmt := elseBlock.Stmts[0].(*ir.ExprStatement)
	nv := narrowedViewIn(exprStmt.Expr)
	if nv == nil {
		t.Fatalf("expected the else branch of `if (!(a instanceof Dog))` to carry the narrowing, got %#v", exprStmt.Expr)
	}
	if !nv.IsDowncast || nv.ViewName != "AsDog" {
		t.Errorf("expected a downcast view named AsDog, got IsDowncast=%v ViewName=%q", nv.IsDowncast, nv.ViewName)
	}
}

func TestPass_ReassignmentInvalidatesNarrowing(t *testing.T) {
	animal := &surface.ClassDecl{Name: "Animal"}
	dog := &surface.ClassDecl{
		Name:    "Dog",
		Extends: namedType("Animal"),
		Methods: []*surface.MethodMember{
			{Name: "bark", ReturnType: namedType("void"), Body: &surface.Block{}},
		},
	}
	newBarkCall := func() *surface.CallExpr {
		return &surface.CallExpr{Callee: &surface.MemberExpr{Object: &surface.Identifier{Name: "a"}, Property: "bark"}}
	}
	fn := &surface.FunctionDecl{
		Name:   "f",
		Params: []*surface.Param{{Name: "a", Type: namedType("Animal")}},
		Body: &surface.Block{Stmts: []surface.Stmt{
			&surface.IfStmt{
				Cond: &surface.InstanceOfExpr{Value: &surface.Identifier{Name: "a"}, Target: namedType("Dog")},
				Then: &surface.Block{Stmts: []surface.Stmt{
					&surface.ExprStmt{Expr: newBarkCall()},
					&surface.ExprStmt{Expr: &surface.AssignExpr{Op: "=", Left: &surface.Identifier{Name: "a"}, Right: &surface.NewExpr{Callee: &surface.Identifier{Name: "Animal"}}}},
					&surface.ExprStmt{Expr: newBarkCall()},
				}},
			},
		}},
	}
	prog := &surface.Program{File: "f.ts", Decls: []surface.Decl{animal, dog, fn}}
	mod, types := buildModule(t, prog)

	Pass(mod, types)

	f := findFunction(mod, "f")
	ifStmt := f.Body.Stmts[0].(*ir.IfStatement)

	first := ifStmt.Then.Stmts[0].(*ir.ExprStatement)
	if narrowedViewIn(first.Expr) == nil {
		t.Fatalf("expected the first a.bark() to be narrowed, got %#v", first.Expr)
	}

	third := ifStmt.Then.Stmts[2].(*ir.ExprStatement)
	if narrowedViewIn(third.Expr) != nil {
		t.Error("the narrowing should not survive past the reassignment of a")
	}
}
