package anonobj

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

func intLit(raw string) *surface.Literal {
	return &surface.Literal{Kind: surface.LitInteger, Raw: raw}
}

func buildModule(t *testing.T, prog *surface.Program) *ir.Module {
	t.Helper()
	sink := diagnostics.NewSink()
	b := binding.New([]*surface.Program{prog}, sink)
	catalog := typecatalog.New()
	types := typesystem.New(b, catalog, sink)
	mod := irbuilder.BuildModule(b, types, sink, prog)
	if len(sink.Diagnostics()) != 0 {
		t.Fatalf("unexpected diagnostics building fixture: %v", sink.Diagnostics())
	}
	return mod
}

func findVar(fn *ir.FunctionDecl, name string) *ir.VarStatement {
	for _, s := range fn.Body.Stmts {
		if vs, ok := s.(*ir.VarStatement); ok && vs.Name == name {
			return vs
		}
	}
	return nil
}

func findClass(mod *ir.Module, name string) *ir.ClassDecl {
	for _, s := range mod.Statements {
		if cd, ok := s.(*ir.ClassDecl); ok && cd.Name == name {
			return cd
		}
	}
	return nil
}

func objectLiteral(fields ...surface.ObjectProperty) *surface.ObjectLiteral {
	return &surface.ObjectLiteral{Properties: fields}
}

func TestPass_SynthesizesAndNamesByPosition(t *testing.T) {
	lit := objectLiteral(
		surface.ObjectProperty{Key: "x", Value: intLit("1")},
		surface.ObjectProperty{Key: "y", Value: intLit("2")},
	)
	lit.Sp = surface.Span{Start: surface.Pos{Line: 10, Column: 14}}
	decl := &surface.VarDecl{Name: "p", Init: lit, IsConst: true}
	fn := &surface.FunctionDecl{Name: "f", Body: &surface.Block{Stmts: []surface.Stmt{decl}}}
	prog := &surface.Program{File: "geom.ts", Decls: []surface.Decl{fn}}
	mod := buildModule(t, prog)

	Pass(mod)

	fnOut := mod.Statements[0].(*ir.FunctionDecl)
	p := findVar(fnOut, "p")
	ref := p.Init.Type()
	if ref.Kind != ir.KindReference || ref.RefName != "__Anon_geom_10_14" {
		t.Fatalf("expected p's literal to be retyped to __Anon_geom_10_14, got %#v", ref)
	}
	class := findClass(mod, "__Anon_geom_10_14")
	if class == nil {
		t.Fatal("expected a synthesized __Anon_geom_10_14 class appended to the module")
	}
	if len(class.Properties) != 2 || class.Properties[0].Name != "x" || class.Properties[1].Name != "y" {
		t.Errorf("expected synthesized properties x, y in declared order, got %#v", class.Properties)
	}
}

func TestPass_IdenticalShapesDedup(t *testing.T) {
	shape := func() *surface.ObjectLiteral {
		return objectLiteral(
			surface.ObjectProperty{Key: "x", Value: intLit("1")},
			surface.ObjectProperty{Key: "y", Value: intLit("2")},
		)
	}
	lit1 := shape()
	lit1.Sp = surface.Span{Start: surface.Pos{Line: 1, Column: 1}}
	lit2 := shape()
	lit2.Sp = surface.Span{Start: surface.Pos{Line: 2, Column: 1}}

	fn := &surface.FunctionDecl{
		Name: "f",
		Body: &surface.Block{Stmts: []surface.Stmt{
			&surface.VarDecl{Name: "a", Init: lit1, IsConst: true},
			&surface.VarDecl{Name: "b", Init: lit2, IsConst: true},
		}},
	}
	prog := &surface.Program{File: "f.ts", Decls: []surface.Decl{fn}}
	mod := buildModule(t, prog)

	Pass(mod)

	fnOut := mod.Statements[0].(*ir.FunctionDecl)
	a := findVar(fnOut, "a")
	b := findVar(fnOut, "b")
	if a.Init.Type().RefName != b.Init.Type().RefName {
		t.Errorf("two identically-shaped literals should share one synthesized type, got %q and %q", a.Init.Type().RefName, b.Init.Type().RefName)
	}

	classCount := 0
	for _, s := range mod.Statements {
		if _, ok := s.(*ir.ClassDecl); ok {
			classCount++
		}
	}
	if classCount != 1 {
		t.Errorf("expected exactly one synthesized class for the shared shape, got %d", classCount)
	}
}

func TestPass_NestedLiteralSynthesizesInnerFirst(t *testing.T) {
	inner := objectLiteral(surface.ObjectProperty{Key: "b", Value: intLit("1")})
	inner.Sp = surface.Span{Start: surface.Pos{Line: 3, Column: 5}}
	outer := objectLiteral(surface.ObjectProperty{Key: "a", Value: inner})
	outer.Sp = surface.Span{Start: surface.Pos{Line: 3, Column: 1}}

	fn := &surface.FunctionDecl{
		Name: "f",
		Body: &surface.Block{Stmts: []surface.Stmt{
			&surface.VarDecl{Name: "p", Init: outer, IsConst: true},
		}},
	}
	prog := &surface.Program{File: "f.ts", Decls: []surface.Decl{fn}}
	mod := buildModule(t, prog)

	Pass(mod)

	fnOut := mod.Statements[0].(*ir.FunctionDecl)
	p := findVar(fnOut, "p")
	outerClass := findClass(mod, p.Init.Type().RefName)
	if outerClass == nil {
		t.Fatal("expected the outer literal's synthesized class")
	}
	if len(outerClass.Properties) != 1 || outerClass.Properties[0].Name != "a" {
		t.Fatalf("expected a single property named a, got %#v", outerClass.Properties)
	}
	innerRef := outerClass.Properties[0].Type
	if innerRef.Kind != ir.KindReference {
		t.Fatalf("expected property a's type to have been rewritten to the inner literal's synthesized reference, got %#v", innerRef)
	}
	if findClass(mod, innerRef.RefName) == nil {
		t.Error("expected the inner literal's own synthesized class to also be present")
	}
}

func TestPass_CapturesInScopeTypeParameter(t *testing.T) {
	lit := objectLiteral(surface.ObjectProperty{Key: "value", Value: &surface.Identifier{Name: "v"}})
	lit.Sp = surface.Span{Start: surface.Pos{Line: 1, Column: 1}}
	fn := &surface.FunctionDecl{
		Name:       "wrap",
		TypeParams: []*surface.TypeParam{{Name: "T"}},
		Params:     []*surface.Param{{Name: "v", Type: namedType("T")}},
		Body: &surface.Block{Stmts: []surface.Stmt{
			&surface.VarDecl{Name: "box", Init: lit, IsConst: true},
		}},
	}
	prog := &surface.Program{File: "f.ts", Decls: []surface.Decl{fn}}
	mod := buildModule(t, prog)

	Pass(mod)

	fnOut := mod.Statements[0].(*ir.FunctionDecl)
	box := findVar(fnOut, "box")
	class := findClass(mod, box.Init.Type().RefName)
	if class == nil {
		t.Fatal("expected box's synthesized class")
	}
	if len(class.TypeParams) != 1 || class.TypeParams[0] != "T" {
		t.Errorf("expected the synthesized class to capture T, got %#v", class.TypeParams)
	}
}
