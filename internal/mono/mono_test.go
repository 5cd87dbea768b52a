package mono

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

func ident(name string) *surface.Identifier {
	return &surface.Identifier{Name: name}
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

func findFunc(mod *ir.Module, name string) *ir.FunctionDecl {
	for _, s := range mod.Statements {
		if fd, ok := s.(*ir.FunctionDecl); ok && fd.Name == name {
			return fd
		}
	}
	return nil
}

func findInterface(mod *ir.Module, name string) *ir.InterfaceDecl {
	for _, s := range mod.Statements {
		if id, ok := s.(*ir.InterfaceDecl); ok && id.Name == name {
			return id
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

// genericIdentity builds `identity<T>(x: T): T { return x; }`.
func genericIdentity() *surface.FunctionDecl {
	return &surface.FunctionDecl{
		Name:       "identity",
		TypeParams: []*surface.TypeParam{{Name: "T"}},
		Params:     []*surface.Param{{Name: "x", Type: namedType("T")}},
		ReturnType: namedType("T"),
		Body: &surface.Block{Stmts: []surface.Stmt{
			&surface.ReturnStmt{Value: ident("x")},
		}},
	}
}

func callStmt(callee surface.Expr, args ...surface.Expr) *surface.ExprStmt {
	out := make([]surface.Argument, len(args))
	for i, a := range args {
		out[i] = surface.Argument{Value: a}
	}
	return &surface.ExprStmt{Expr: &surface.CallExpr{Callee: callee, Args: out}}
}

func TestPass_SpecializesGenericFunctionPerInstantiation(t *testing.T) {
	main := &surface.FunctionDecl{
		Name: "main",
		Body: &surface.Block{Stmts: []surface.Stmt{
			callStmt(ident("identity"), &surface.Literal{Kind: surface.LitString, Raw: "hello"}),
			callStmt(ident("identity"), &surface.Literal{Kind: surface.LitBoolean, Raw: "true"}),
		}},
	}
	prog := &surface.Program{File: "f.ts", Decls: []surface.Decl{genericIdentity(), main}}
	mod := buildModule(t, prog)

	Pass(mod)

	mainOut := findFunc(mod, "main")
	call1 := mainOut.Body.Stmts[0].(*ir.ExprStatement).Expr.(*ir.Call)
	call2 := mainOut.Body.Stmts[1].(*ir.ExprStatement).Expr.(*ir.Call)

	if call1.Specialized == nil || call2.Specialized == nil {
		t.Fatalf("expected both calls to be specialized, got %#v, %#v", call1.Specialized, call2.Specialized)
	}
	if call1.Specialized.SpecializedName == call2.Specialized.SpecializedName {
		t.Errorf("expected distinct specializations for string and boolean instantiations, both got %q", call1.Specialized.SpecializedName)
	}
	if findFunc(mod, call1.Specialized.SpecializedName) == nil {
		t.Errorf("expected synthesized function %q appended to module", call1.Specialized.SpecializedName)
	}
	if findFunc(mod, call2.Specialized.SpecializedName) == nil {
		t.Errorf("expected synthesized function %q appended to module", call2.Specialized.SpecializedName)
	}
}

func TestPass_DedupsIdenticalInstantiations(t *testing.T) {
	main := &surface.FunctionDecl{
		Name: "main",
		Body: &surface.Block{Stmts: []surface.Stmt{
			callStmt(ident("identity"), &surface.Literal{Kind: surface.LitString, Raw: "a"}),
			callStmt(ident("identity"), &surface.Literal{Kind: surface.LitString, Raw: "b"}),
		}},
	}
	prog := &surface.Program{File: "f.ts", Decls: []surface.Decl{genericIdentity(), main}}
	mod := buildModule(t, prog)

	Pass(mod)

	mainOut := findFunc(mod, "main")
	call1 := mainOut.Body.Stmts[0].(*ir.ExprStatement).Expr.(*ir.Call)
	call2 := mainOut.Body.Stmts[1].(*ir.ExprStatement).Expr.(*ir.Call)

	if call1.Specialized == nil || call2.Specialized == nil {
		t.Fatal("expected both calls to be specialized")
	}
	if call1.Specialized.SpecializedName != call2.Specialized.SpecializedName {
		t.Errorf("expected both string instantiations to share one specialization, got %q and %q",
			call1.Specialized.SpecializedName, call2.Specialized.SpecializedName)
	}

	count := 0
	for _, s := range mod.Statements {
		if fd, ok := s.(*ir.FunctionDecl); ok && fd.Name == call1.Specialized.SpecializedName {
			count++
		}
	}
	if count != 1 {
		t.Errorf("expected exactly one synthesized specialization, found %d", count)
	}
}

func TestPass_SpecializesGenericMethod(t *testing.T) {
	box := &surface.ClassDecl{
		Name: "Box",
		Methods: []*surface.MethodMember{
			{
				Name:       "wrap",
				TypeParams: []*surface.TypeParam{{Name: "T"}},
				Params:     []*surface.Param{{Name: "x", Type: namedType("T")}},
				ReturnType: namedType("T"),
				Body: &surface.Block{Stmts: []surface.Stmt{
					&surface.ReturnStmt{Value: ident("x")},
				}},
			},
		},
	}
	main := &surface.FunctionDecl{
		Name: "main",
		Body: &surface.Block{Stmts: []surface.Stmt{
			&surface.VarDecl{Name: "b", Init: &surface.NewExpr{Callee: ident("Box")}, IsConst: true},
			callStmt(&surface.MemberExpr{Object: ident("b"), Property: "wrap"}, &surface.Literal{Kind: surface.LitString, Raw: "x"}),
		}},
	}
	prog := &surface.Program{File: "f.ts", Decls: []surface.Decl{box, main}}
	mod := buildModule(t, prog)

	Pass(mod)

	boxOut := findClass(mod, "Box")
	if boxOut == nil {
		t.Fatal("expected Box class in module")
	}

	mainOut := findFunc(mod, "main")
	call := mainOut.Body.Stmts[1].(*ir.ExprStatement).Expr.(*ir.Call)
	if call.Specialized == nil {
		t.Fatal("expected method call to be specialized")
	}

	found := false
	for _, m := range boxOut.Methods {
		if m.Name == call.Specialized.SpecializedName {
			found = true
		}
	}
	if !found {
		t.Errorf("expected specialized method %q appended to Box.Methods, got %#v", call.Specialized.SpecializedName, boxOut.Methods)
	}
}

func TestPass_SynthesizesStructuralConstraintAdapter(t *testing.T) {
	shape := &surface.ObjectTypeSyntax{Members: []surface.ObjectTypeMember{
		{Name: "id", Type: namedType("number")},
		{Name: "name", Type: namedType("string")},
	}}
	fn := &surface.FunctionDecl{
		Name:       "describe",
		TypeParams: []*surface.TypeParam{{Name: "T", Constraint: shape}},
		Params:     []*surface.Param{{Name: "x", Type: namedType("T")}},
		ReturnType: namedType("string"),
		Body: &surface.Block{Stmts: []surface.Stmt{
			&surface.ReturnStmt{Value: &surface.Literal{Kind: surface.LitString, Raw: ""}},
		}},
	}
	prog := &surface.Program{File: "f.ts", Decls: []surface.Decl{fn}}
	mod := buildModule(t, prog)

	Pass(mod)

	fnOut := findFunc(mod, "describe")
	pair, ok := fnOut.StructuralConstraintAdapters["T"]
	if !ok {
		t.Fatalf("expected an adapter pair recorded for T, got %#v", fnOut.StructuralConstraintAdapters)
	}
	if pair.ConstraintInterfaceName != "__Constraint_T" || pair.WrapperClassName != "__Wrapper_T" {
		t.Errorf("expected plain __Constraint_T/__Wrapper_T names, got %#v", pair)
	}

	iface := findInterface(mod, pair.ConstraintInterfaceName)
	if iface == nil {
		t.Fatalf("expected synthesized interface %q in module", pair.ConstraintInterfaceName)
	}
	if len(iface.Properties) != 2 || iface.Properties[0].Name != "id" || iface.Properties[1].Name != "name" {
		t.Errorf("expected synthesized interface properties id, name in order, got %#v", iface.Properties)
	}

	wrapper := findClass(mod, pair.WrapperClassName)
	if wrapper == nil {
		t.Fatalf("expected synthesized wrapper class %q in module", pair.WrapperClassName)
	}
	if len(wrapper.Implements) != 1 || wrapper.Implements[0].RefName != pair.ConstraintInterfaceName {
		t.Errorf("expected wrapper to implement %q, got %#v", pair.ConstraintInterfaceName, wrapper.Implements)
	}
}
