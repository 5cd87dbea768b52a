package irbuilder

import (
	"testing"

	"github.com/tsoniclang/tsonic/internal/ir"
	"github.com/tsoniclang/tsonic/internal/surface"
)

func TestConvertLiteral_NumericIntentFromLexemeForm(t *testing.T) {
	cases := []struct {
		kind surface.LiteralKind
		raw  string
		want *ir.IrType
	}{
		{surface.LitInteger, "3", ir.TypeInt},
		{surface.LitFloat, "3.5", ir.TypeNumber},
		{surface.LitString, "hi", ir.TypeString},
		{surface.LitBoolean, "true", ir.TypeBoolean},
		{surface.LitNull, "null", ir.TypeNull},
		{surface.LitUndefined, "undefined", ir.TypeUndefined},
	}
	for _, c := range cases {
		got := convertLiteral(&surface.Literal{Kind: c.kind, Raw: c.raw})
		if got.Type() != c.want {
			t.Errorf("literal kind %v: got type %v, want %v", c.kind, got.Type(), c.want)
		}
	}
}

func TestConvertIdentifier_Unresolved(t *testing.T) {
	prog := &surface.Program{File: "f.ts", Decls: []surface.Decl{}}
	ctx, sink := newTestContext(t, prog)

	ref := convertIdentifier(ctx, &surface.Identifier{Name: "nope"})
	if ref.Type() != ir.TypeUnknown {
		t.Errorf("expected TypeUnknown for an unresolved identifier, got %v", ref.Type())
	}
	if len(sink.Diagnostics()) == 0 {
		t.Fatal("expected a diagnostic for the unresolved identifier")
	}
}

func TestConvertBinaryExpr_AddStringWidensToString(t *testing.T) {
	prog := &surface.Program{File: "f.ts"}
	ctx, _ := newTestContext(t, prog)

	e := &surface.BinaryExpr{
		Op:    surface.OpAdd,
		Left:  &surface.Literal{Kind: surface.LitString, Raw: "a"},
		Right: &surface.Literal{Kind: surface.LitInteger, Raw: "1"},
	}
	got := convertBinaryExpr(ctx, nil, e)
	if got.Type() != ir.TypeString {
		t.Errorf("string + int: got %v, want TypeString", got.Type())
	}
}

func TestConvertBinaryExpr_IntPlusIntStaysInt(t *testing.T) {
	prog := &surface.Program{File: "f.ts"}
	ctx, _ := newTestContext(t, prog)

	e := &surface.BinaryExpr{
		Op:    surface.OpAdd,
		Left:  &surface.Literal{Kind: surface.LitInteger, Raw: "1"},
		Right: &surface.Literal{Kind: surface.LitInteger, Raw: "2"},
	}
	got := convertBinaryExpr(ctx, nil, e)
	if got.Type() != ir.TypeInt {
		t.Errorf("int + int: got %v, want TypeInt", got.Type())
	}
}

func TestConvertBinaryExpr_ComparisonIsBoolean(t *testing.T) {
	prog := &surface.Program{File: "f.ts"}
	ctx, _ := newTestContext(t, prog)

	e := &surface.BinaryExpr{
		Op:    surface.OpLt,
		Left:  &surface.Literal{Kind: surface.LitInteger, Raw: "1"},
		Right: &surface.Literal{Kind: surface.LitInteger, Raw: "2"},
	}
	got := convertBinaryExpr(ctx, nil, e)
	if got.Type() != ir.TypeBoolean {
		t.Errorf("a < b: got %v, want TypeBoolean", got.Type())
	}
}

func TestConvertBinaryExpr_LogicalAndIsBoolean(t *testing.T) {
	prog := &surface.Program{File: "f.ts"}
	ctx, _ := newTestContext(t, prog)

	e := &surface.BinaryExpr{
		Op:    surface.OpAnd,
		Left:  &surface.Literal{Kind: surface.LitBoolean, Raw: "true"},
		Right: &surface.Literal{Kind: surface.LitBoolean, Raw: "false"},
	}
	got := convertBinaryExpr(ctx, nil, e)
	if _, ok := got.(*ir.Logical); !ok {
		t.Fatalf("expected *ir.Logical, got %T", got)
	}
	if got.Type() != ir.TypeBoolean {
		t.Errorf("a && b: got %v, want TypeBoolean", got.Type())
	}
}

func TestConvertBinaryExpr_NullishOfPureNullFallsBackToAny(t *testing.T) {
	prog := &surface.Program{File: "f.ts"}
	ctx, _ := newTestContext(t, prog)

	e := &surface.BinaryExpr{
		Op:    surface.OpNullish,
		Left:  &surface.Literal{Kind: surface.LitNull, Raw: "null"},
		Right: &surface.Literal{Kind: surface.LitString, Raw: "fallback"},
	}
	got := convertBinaryExpr(ctx, nil, e)
	n, ok := got.(*ir.Nullish)
	if !ok {
		t.Fatalf("expected *ir.Nullish, got %T", got)
	}
	if n.Type() != ir.TypeAny {
		t.Errorf("null ?? x: left operand is pure null, want TypeAny fallback, got %v", n.Type())
	}
}

func TestConvertVarDeclStatement_PlainNameUsesAnnotationOverInit(t *testing.T) {
	prog := &surface.Program{File: "f.ts"}
	ctx, _ := newTestContext(t, prog)

	d := &surface.VarDecl{
		Name:           "x",
		TypeAnnotation: namedType("number"),
		Init:           &surface.Literal{Kind: surface.LitInteger, Raw: "1"},
	}
	// Binding never saw this node (built directly for the unit test), so
	// declIdOf returns InvalidDecl; the conversion still must not panic and
	// must still honor the explicit annotation over the initializer's type.
	stmts := convertVarDeclStatement(ctx, nil, d)
	if len(stmts) != 1 {
		t.Fatalf("expected exactly one VarStatement for a plain-name VarDecl, got %d", len(stmts))
	}
	vs, ok := stmts[0].(*ir.VarStatement)
	if !ok {
		t.Fatalf("expected *ir.VarStatement, got %T", stmts[0])
	}
	if vs.Name != "x" {
		t.Errorf("got name %q, want x", vs.Name)
	}
	if vs.Type != ir.TypeNumber {
		t.Errorf("annotation number should win over the int initializer, got %v", vs.Type)
	}
}

func TestResolveCallSigId_PlainIdentifierCallee(t *testing.T) {
	fn := &surface.FunctionDecl{Name: "greet", Params: nil}
	callee := &surface.Identifier{Name: "greet"}
	call := &surface.CallExpr{Callee: callee}
	caller := &surface.FunctionDecl{
		Name: "caller",
		Body: &surface.Block{Stmts: []surface.Stmt{&surface.ExprStmt{Expr: call}}},
	}
	prog := &surface.Program{File: "f.ts", Decls: []surface.Decl{fn, caller}}

	ctx, _ := newTestContext(t, prog)
	sigId := resolveCallSigId(ctx, nil, call)
	if !sigId.Valid() {
		t.Fatal("expected a resolved SignatureId for a call to a top-level function")
	}
}

func TestConvertMemberExpr_OptionalChainingAddsNull(t *testing.T) {
	prog := &surface.Program{File: "f.ts"}
	ctx, _ := newTestContext(t, prog)

	obj := &surface.Identifier{Name: "missing"}
	e := &surface.MemberExpr{Object: obj, Property: "x", Optional: true}
	got := convertMemberExpr(ctx, nil, e)
	m, ok := got.(*ir.Member)
	if !ok {
		t.Fatalf("expected *ir.Member, got %T", got)
	}
	if m.Type().Kind != ir.KindUnion {
		t.Errorf("optional member access should type as a union with null, got kind %v", m.Type().Kind)
	}
}
