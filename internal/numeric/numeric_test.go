package numeric

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

func arrayOf(name string) *surface.ArrayTypeSyntax {
	return &surface.ArrayTypeSyntax{Element: namedType(name)}
}

func ident(name string) *surface.Identifier {
	return &surface.Identifier{Name: name}
}

func buildModule(t *testing.T, prog *surface.Program) (*ir.Module, *diagnostics.Sink) {
	t.Helper()
	sink := diagnostics.NewSink()
	b := binding.New([]*surface.Program{prog}, sink)
	catalog := typecatalog.New()
	types := typesystem.New(b, catalog, sink)
	mod := irbuilder.BuildModule(b, types, sink, prog)
	if len(sink.Diagnostics()) != 0 {
		t.Fatalf("unexpected diagnostics building fixture: %v", sink.Diagnostics())
	}
	return mod, sink
}

func findFunc(mod *ir.Module, name string) *ir.FunctionDecl {
	for _, s := range mod.Statements {
		if fd, ok := s.(*ir.FunctionDecl); ok && fd.Name == name {
			return fd
		}
	}
	return nil
}

func hasCode(sink *diagnostics.Sink, code diagnostics.Code) bool {
	for _, d := range sink.Diagnostics() {
		if d.Code == code {
			return true
		}
	}
	return false
}

func TestPass_ProvesIntegerLiteralAndDeclaredParameter(t *testing.T) {
	fn := &surface.FunctionDecl{
		Name:       "at",
		Params:     []*surface.Param{{Name: "xs", Type: arrayOf("int")}, {Name: "i", Type: namedType("int")}},
		ReturnType: namedType("int"),
		Body: &surface.Block{Stmts: []surface.Stmt{
			&surface.ReturnStmt{Value: &surface.IndexExpr{Object: ident("xs"), Index: ident("i")}},
		}},
	}
	prog := &surface.Program{File: "f.ts", Decls: []surface.Decl{fn}}
	mod, _ := buildModule(t, prog)

	sink := diagnostics.NewSink()
	Pass(mod, sink)

	if len(sink.Diagnostics()) != 0 {
		t.Fatalf("expected no diagnostics, got %v", sink.Diagnostics())
	}
	fnOut := findFunc(mod, "at")
	idx := fnOut.Body.Stmts[0].(*ir.ReturnStatement).Value.(*ir.Index)
	if idx.Index.Proof() == nil || idx.Index.Proof().Kind != ir.ProofDeclaredParameter {
		t.Errorf("expected index expression to carry a declared-parameter proof, got %#v", idx.Index.Proof())
	}
}

func TestPass_UnprovenIndexReportsTSN5107(t *testing.T) {
	fn := &surface.FunctionDecl{
		Name:       "at",
		Params:     []*surface.Param{{Name: "xs", Type: arrayOf("int")}, {Name: "i", Type: namedType("number")}},
		ReturnType: namedType("int"),
		Body: &surface.Block{Stmts: []surface.Stmt{
			&surface.ReturnStmt{Value: &surface.IndexExpr{Object: ident("xs"), Index: ident("i")}},
		}},
	}
	prog := &surface.Program{File: "f.ts", Decls: []surface.Decl{fn}}
	mod, _ := buildModule(t, prog)

	sink := diagnostics.NewSink()
	Pass(mod, sink)

	if !hasCode(sink, diagnostics.CodeUnprovenIntegerIndex) {
		t.Fatalf("expected TSN5107 for an unproven index, got %v", sink.Diagnostics())
	}
}

func TestPass_AsIntCastFromNumberIsSound(t *testing.T) {
	fn := &surface.FunctionDecl{
		Name:       "truncate",
		Params:     []*surface.Param{{Name: "n", Type: namedType("number")}},
		ReturnType: namedType("int"),
		Body: &surface.Block{Stmts: []surface.Stmt{
			&surface.ReturnStmt{Value: &surface.AsExpr{Value: ident("n"), Target: namedType("int")}},
		}},
	}
	prog := &surface.Program{File: "f.ts", Decls: []surface.Decl{fn}}
	mod, _ := buildModule(t, prog)

	sink := diagnostics.NewSink()
	Pass(mod, sink)

	if len(sink.Diagnostics()) != 0 {
		t.Fatalf("expected a number->int cast to be sound, got %v", sink.Diagnostics())
	}
	fnOut := findFunc(mod, "truncate")
	cast := fnOut.Body.Stmts[0].(*ir.ReturnStatement).Value.(*ir.AsCast)
	if cast.Proof() == nil || cast.Proof().Kind != ir.ProofDeclaredNarrowing {
		t.Errorf("expected the cast to carry a declared-narrowing proof, got %#v", cast.Proof())
	}
}

func TestPass_AsIntCastFromStringReportsTSN5110(t *testing.T) {
	fn := &surface.FunctionDecl{
		Name:       "bad",
		Params:     []*surface.Param{{Name: "s", Type: namedType("string")}},
		ReturnType: namedType("int"),
		Body: &surface.Block{Stmts: []surface.Stmt{
			&surface.ReturnStmt{Value: &surface.AsExpr{Value: ident("s"), Target: namedType("int")}},
		}},
	}
	prog := &surface.Program{File: "f.ts", Decls: []surface.Decl{fn}}
	mod, _ := buildModule(t, prog)

	sink := diagnostics.NewSink()
	Pass(mod, sink)

	if !hasCode(sink, diagnostics.CodeImplicitNumericNarrow) {
		t.Fatalf("expected TSN5110 for a string->int cast, got %v", sink.Diagnostics())
	}
}

func TestPass_BinaryOpOverProvenOperandsIsProven(t *testing.T) {
	fn := &surface.FunctionDecl{
		Name:       "next",
		Params:     []*surface.Param{{Name: "i", Type: namedType("int")}},
		ReturnType: namedType("int"),
		Body: &surface.Block{Stmts: []surface.Stmt{
			&surface.ReturnStmt{Value: &surface.BinaryExpr{Op: "+", Left: ident("i"), Right: &surface.Literal{Kind: surface.LitInteger, Raw: "1"}}},
		}},
	}
	prog := &surface.Program{File: "f.ts", Decls: []surface.Decl{fn}}
	mod, _ := buildModule(t, prog)

	sink := diagnostics.NewSink()
	Pass(mod, sink)

	if len(sink.Diagnostics()) != 0 {
		t.Fatalf("unexpected diagnostics: %v", sink.Diagnostics())
	}
	fnOut := findFunc(mod, "next")
	bin := fnOut.Body.Stmts[0].(*ir.ReturnStatement).Value.(*ir.Binary)
	if bin.Proof() == nil || bin.Proof().Kind != ir.ProofBinaryOp {
		t.Errorf("expected i+1 to carry a binary-op proof, got %#v", bin.Proof())
	}
}
