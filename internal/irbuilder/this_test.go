package irbuilder

import (
	"testing"

	"github.com/tsoniclang/tsonic/internal/diagnostics"
	"github.com/tsoniclang/tsonic/internal/ir"
	"github.com/tsoniclang/tsonic/internal/surface"
)

func TestConvertThisExpr_OutsideAnyClassReportsAndFallsBackToUnknown(t *testing.T) {
	prog := &surface.Program{File: "f.ts"}
	ctx, sink := newTestContext(t, prog)

	got := convertThisExpr(ctx, &surface.ThisExpr{})
	if got.Type() != ir.TypeUnknown {
		t.Errorf("got %v, want TypeUnknown", got.Type())
	}
	if !hasCode(sink, diagnostics.CodeThisOutsideMethod) {
		t.Fatal("expected a CodeThisOutsideMethod diagnostic")
	}
}

func TestConvertThisExpr_InsideStaticMethodReportsAndFallsBackToUnknown(t *testing.T) {
	prog := &surface.Program{File: "f.ts"}
	ctx, sink := newTestContext(t, prog)
	ctx.CurrentClassName = "Box"
	ctx.CurrentClassType = ir.TypeUnknown
	ctx.CurrentMethodIsStatic = true

	got := convertThisExpr(ctx, &surface.ThisExpr{})
	if got.Type() != ir.TypeUnknown {
		t.Errorf("got %v, want TypeUnknown", got.Type())
	}
	if !hasCode(sink, diagnostics.CodeThisOutsideMethod) {
		t.Fatal("expected a CodeThisOutsideMethod diagnostic")
	}
}

func TestConvertThisExpr_InsideInstanceMethodTypesAsTheEnclosingClass(t *testing.T) {
	prog := &surface.Program{File: "f.ts"}
	ctx, sink := newTestContext(t, prog)
	want := ctx.Types.TypeFromSyntax(ctx.B.CaptureTypeSyntax(namedType("Box")), nil)
	ctx.CurrentClassName = "Box"
	ctx.CurrentClassType = want
	ctx.CurrentMethodIsStatic = false

	got := convertThisExpr(ctx, &surface.ThisExpr{})
	if got.Type() != want {
		t.Errorf("got %v, want %v", got.Type(), want)
	}
	if this, ok := got.(*ir.This); !ok || this.ClassName != "Box" {
		t.Errorf("got %#v, want *ir.This with ClassName Box", got)
	}
	if hasCode(sink, diagnostics.CodeThisOutsideMethod) {
		t.Fatal("did not expect a CodeThisOutsideMethod diagnostic")
	}
}

func TestConvertClassDecl_MethodBodyConvertsThisWithTheClassSOwnType(t *testing.T) {
	cls := &surface.ClassDecl{
		Name: "Counter",
		Properties: []*surface.PropertyMember{
			{Name: "count", Type: namedType("int")},
		},
		Methods: []*surface.MethodMember{
			{
				Name:       "self",
				ReturnType: namedType("Counter"),
				Body: &surface.Block{Stmts: []surface.Stmt{
					&surface.ReturnStmt{Value: &surface.ThisExpr{}},
				}},
			},
		},
	}
	prog := &surface.Program{File: "f.ts", Decls: []surface.Decl{cls}}
	ctx, sink := newTestContext(t, prog)

	out := convertClassDecl(ctx, cls)
	if len(sink.Diagnostics()) != 0 {
		t.Fatalf("unexpected diagnostics: %v", sink.Diagnostics())
	}
	ret, ok := out.Methods[0].Body.Stmts[0].(*ir.ReturnStatement)
	if !ok {
		t.Fatalf("expected a return statement, got %T", out.Methods[0].Body.Stmts[0])
	}
	this, ok := ret.Value.(*ir.This)
	if !ok {
		t.Fatalf("expected *ir.This, got %T", ret.Value)
	}
	if this.ClassName != "Counter" {
		t.Errorf("got ClassName %q, want Counter", this.ClassName)
	}
	if this.Type() == ir.TypeUnknown || this.Type() == nil {
		t.Errorf("expected this to carry the class's own resolved type, got %v", this.Type())
	}

	// CurrentClassName/Type must be restored once the class is done
	// converting, so a sibling top-level `this` still reports the error.
	if ctx.CurrentClassName != "" || ctx.CurrentClassType != nil {
		t.Errorf("ProgramContext class fields were not restored after convertClassDecl")
	}
}

func TestConvertClassDecl_StaticMethodBodyRejectsThis(t *testing.T) {
	cls := &surface.ClassDecl{
		Name: "Counter",
		Methods: []*surface.MethodMember{
			{
				Name:       "make",
				Static:     true,
				ReturnType: namedType("Counter"),
				Body: &surface.Block{Stmts: []surface.Stmt{
					&surface.ReturnStmt{Value: &surface.ThisExpr{}},
				}},
			},
		},
	}
	prog := &surface.Program{File: "f.ts", Decls: []surface.Decl{cls}}
	ctx, sink := newTestContext(t, prog)

	convertClassDecl(ctx, cls)
	if !hasCode(sink, diagnostics.CodeThisOutsideMethod) {
		t.Fatal("expected a CodeThisOutsideMethod diagnostic for `this` inside a static method")
	}
}

func hasCode(sink *diagnostics.Sink, code diagnostics.Code) bool {
	for _, d := range sink.Diagnostics() {
		if d.Code == code {
			return true
		}
	}
	return false
}
