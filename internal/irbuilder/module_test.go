package irbuilder

import (
	"testing"

	"github.com/tsoniclang/tsonic/internal/ir"
	"github.com/tsoniclang/tsonic/internal/surface"
)

// TestMethodCallResolvesThroughInheritanceChain exercises the gap closed
// this session: a member-expression callee (a.speak()) and a plain member
// access (a.name) both have to resolve a valid SignatureId/MemberId when
// the member is only declared on a base class the receiver's static type
// extends, not on the receiver's own class.
func TestMethodCallResolvesThroughInheritanceChain(t *testing.T) {
	animal := &surface.ClassDecl{
		Name: "Animal",
		Properties: []*surface.PropertyMember{
			{Name: "name", Type: namedType("string")},
		},
		Methods: []*surface.MethodMember{
			{Name: "speak", ReturnType: namedType("string"), Body: &surface.Block{}},
		},
	}
	dog := &surface.ClassDecl{Name: "Dog", Extends: namedType("Animal")}

	aRef := &surface.Identifier{Name: "a"}
	callExpr := &surface.CallExpr{Callee: &surface.MemberExpr{Object: aRef, Property: "speak"}}
	memberExpr := &surface.MemberExpr{Object: &surface.Identifier{Name: "a"}, Property: "name"}

	fn := &surface.FunctionDecl{
		Name:       "bark",
		Params:     []*surface.Param{{Name: "a", Type: namedType("Dog")}},
		ReturnType: namedType("string"),
		Body: &surface.Block{Stmts: []surface.Stmt{
			&surface.ExprStmt{Expr: callExpr},
			&surface.ExprStmt{Expr: memberExpr},
		}},
	}

	prog := &surface.Program{File: "f.ts", Decls: []surface.Decl{animal, dog, fn}}
	ctx, sink := newTestContext(t, prog)

	callResult := convertCallExpr(ctx, nil, callExpr, nil)
	call, ok := callResult.(*ir.Call)
	if !ok {
		t.Fatalf("expected *ir.Call, got %T", callResult)
	}
	if !call.Signature.Valid() {
		t.Error("expected a.speak() to resolve a SignatureId through Dog -> Animal")
	}
	if call.Type() != ir.TypeString {
		t.Errorf("a.speak() should type as string (Animal.speak's return type), got %v", call.Type())
	}

	memberResult := convertMemberExpr(ctx, nil, memberExpr)
	member, ok := memberResult.(*ir.Member)
	if !ok {
		t.Fatalf("expected *ir.Member, got %T", memberResult)
	}
	if !member.Member.Valid() {
		t.Error("expected a.name to resolve a MemberId through Dog -> Animal")
	}
	if member.Type() != ir.TypeString {
		t.Errorf("a.name should type as string (Animal.name's declared type), got %v", member.Type())
	}

	if len(sink.Diagnostics()) != 0 {
		t.Errorf("expected no diagnostics, got %v", sink.Diagnostics())
	}
}

func TestNamespaceAndContainer(t *testing.T) {
	cases := []struct {
		file      string
		wantNs    string
		wantClass string
	}{
		{"src/geometry/shapes.ts", "Src.Geometry", "Shapes"},
		{"util.ts", "", "Util"},
		{"src/my-module.ts", "Src", "MyModule"},
	}
	for _, c := range cases {
		ns, class := namespaceAndContainer(c.file)
		if ns != c.wantNs || class != c.wantClass {
			t.Errorf("namespaceAndContainer(%q) = (%q, %q), want (%q, %q)", c.file, ns, class, c.wantNs, c.wantClass)
		}
	}
}

func TestIsStaticContainer_SideEffectingInitDisqualifies(t *testing.T) {
	prog := &surface.Program{
		Exports: map[string]bool{"x": true},
		Decls: []surface.Decl{
			&surface.VarDecl{Name: "x", Init: &surface.CallExpr{Callee: &surface.Identifier{Name: "computeSomething"}}, Exported: true},
		},
	}
	if isStaticContainer(prog, "Whatever") {
		t.Error("a top-level side-effecting initializer should disqualify a module from static-container status")
	}
}

func TestIsStaticContainer_PureLiteralsQualify(t *testing.T) {
	prog := &surface.Program{
		Exports: map[string]bool{"x": true},
		Decls: []surface.Decl{
			&surface.VarDecl{Name: "x", Init: &surface.Literal{Kind: surface.LitInteger, Raw: "1"}, Exported: true},
		},
	}
	if !isStaticContainer(prog, "Whatever") {
		t.Error("a module with only pure-literal top-level initializers should qualify as a static container")
	}
}

func TestIsStaticContainer_NoExportsDisqualifies(t *testing.T) {
	prog := &surface.Program{Decls: []surface.Decl{}}
	if isStaticContainer(prog, "Whatever") {
		t.Error("a module with no exports should never be a static container")
	}
}
