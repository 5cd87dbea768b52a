package emitter

import (
	"strings"
	"testing"

	"github.com/tsoniclang/tsonic/internal/anonobj"
	"github.com/tsoniclang/tsonic/internal/binding"
	"github.com/tsoniclang/tsonic/internal/diagnostics"
	"github.com/tsoniclang/tsonic/internal/ir"
	"github.com/tsoniclang/tsonic/internal/irbuilder"
	"github.com/tsoniclang/tsonic/internal/mono"
	"github.com/tsoniclang/tsonic/internal/narrowing"
	"github.com/tsoniclang/tsonic/internal/numeric"
	"github.com/tsoniclang/tsonic/internal/surface"
	"github.com/tsoniclang/tsonic/internal/targetast"
	"github.com/tsoniclang/tsonic/internal/typecatalog"
	"github.com/tsoniclang/tsonic/internal/typesystem"
)

func namedType(name string) *surface.NamedTypeSyntax {
	return &surface.NamedTypeSyntax{Name: name}
}

func ident(name string) *surface.Identifier {
	return &surface.Identifier{Name: name}
}

func param(name string, t surface.TypeSyntax) *surface.Param {
	return &surface.Param{Name: name, Type: t}
}

// buildModule runs the full pipeline spec.md §4 prescribes up to the
// emitter: Binding -> TypeSystem -> IrBuilder -> narrowing -> anonobj ->
// mono -> numeric, matching internal/compilation's intended wiring order.
func buildModule(t *testing.T, prog *surface.Program) (*ir.Module, *diagnostics.Sink) {
	t.Helper()
	sink := diagnostics.NewSink()
	b := binding.New([]*surface.Program{prog}, sink)
	catalog := typecatalog.New()
	types := typesystem.New(b, catalog, sink)
	mod := irbuilder.BuildModule(b, types, sink, prog)
	narrowing.Pass(mod, types)
	anonobj.Pass(mod)
	mono.Pass(mod)
	numeric.Pass(mod, sink)
	return mod, sink
}

func TestEmit_SimpleFunctionLowersToStaticMethod(t *testing.T) {
	fn := &surface.FunctionDecl{
		Name:       "add",
		Params:     []*surface.Param{param("a", namedType("int")), param("b", namedType("int"))},
		ReturnType: namedType("int"),
		Body: &surface.Block{Stmts: []surface.Stmt{
			&surface.ReturnStmt{Value: &surface.BinaryExpr{Op: surface.OpAdd, Left: ident("a"), Right: ident("b")}},
		}},
		Exported: true,
	}
	prog := &surface.Program{File: "add.ts", Decls: []surface.Decl{fn}}
	mod, sink := buildModule(t, prog)
	if len(sink.Diagnostics()) != 0 {
		t.Fatalf("unexpected diagnostics: %v", sink.Diagnostics())
	}

	file, text := Emit(mod, sink)
	if file == nil {
		t.Fatal("Emit returned nil file")
	}
	if !strings.Contains(text, "class addModule") {
		t.Errorf("expected a static container class for the lone top-level function, got:\n%s", text)
	}
	if !strings.Contains(text, "int add(int a, int b)") {
		t.Errorf("expected the lowered method signature, got:\n%s", text)
	}
	if !strings.Contains(text, "a + b") {
		t.Errorf("expected the lowered binary expression, got:\n%s", text)
	}
}

func TestEmit_ClassLowersToClassWithCtorAndAutoProperty(t *testing.T) {
	class := &surface.ClassDecl{
		Name: "Point",
		Properties: []*surface.PropertyMember{
			{Name: "x", Type: namedType("number")},
			{Name: "y", Type: namedType("number")},
		},
		Ctor: &surface.MethodMember{
			Name:   "constructor",
			Params: []*surface.Param{param("x", namedType("number")), param("y", namedType("number"))},
			Body:   &surface.Block{},
		},
		Exported: true,
	}
	prog := &surface.Program{File: "point.ts", Decls: []surface.Decl{class}}
	mod, sink := buildModule(t, prog)
	if len(sink.Diagnostics()) != 0 {
		t.Fatalf("unexpected diagnostics: %v", sink.Diagnostics())
	}

	_, text := Emit(mod, sink)
	if !strings.Contains(text, "class Point") {
		t.Errorf("expected a Point class, got:\n%s", text)
	}
	if !strings.Contains(text, "public Point(double x, double y)") {
		t.Errorf("expected the lowered constructor signature, got:\n%s", text)
	}
	if !strings.Contains(text, "double x { get; set; }") {
		t.Errorf("expected an auto-property for field x, got:\n%s", text)
	}
}

func TestEmit_ClassImplementingASourceInterfaceReportsAndSuppressesIt(t *testing.T) {
	iface := &surface.InterfaceDecl{
		Name:       "Printable",
		Properties: []*surface.PropertyMember{{Name: "label", Type: namedType("string")}},
	}
	class := &surface.ClassDecl{
		Name:       "Widget",
		Implements: []surface.TypeSyntax{namedType("Printable")},
		Properties: []*surface.PropertyMember{{Name: "label", Type: namedType("string")}},
		Exported:   true,
	}
	prog := &surface.Program{File: "widget.ts", Decls: []surface.Decl{iface, class}}
	mod, sink := buildModule(t, prog)

	file, text := Emit(mod, sink)
	if file == nil {
		t.Fatal("Emit returned nil file")
	}

	found := false
	for _, d := range sink.Diagnostics() {
		if d.Code == diagnostics.CodeImplementsNominalized {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected a CodeImplementsNominalized diagnostic, got: %v", sink.Diagnostics())
	}
	if strings.Contains(text, ": Printable") {
		t.Errorf("expected the nominalized interface to be suppressed from Implements, got:\n%s", text)
	}
}

func TestEmit_ClassImplementingACatalogFacadeReportsNoDiagnostic(t *testing.T) {
	class := &surface.ClassDecl{
		Name:       "Bag",
		Implements: []surface.TypeSyntax{&surface.NamedTypeSyntax{Name: "IEnumerable", Arguments: []surface.TypeSyntax{namedType("int")}}},
		Exported:   true,
	}
	prog := &surface.Program{File: "bag.ts", Decls: []surface.Decl{class}}

	sink := diagnostics.NewSink()
	b := binding.New([]*surface.Program{prog}, sink)
	catalog := typecatalog.New()
	typecatalog.SeedWellKnown(catalog)
	types := typesystem.New(b, catalog, sink)
	mod := irbuilder.BuildModule(b, types, sink, prog)
	narrowing.Pass(mod, types)
	anonobj.Pass(mod)
	mono.Pass(mod)
	numeric.Pass(mod, sink)

	_, text := Emit(mod, sink)
	for _, d := range sink.Diagnostics() {
		if d.Code == diagnostics.CodeImplementsNominalized {
			t.Fatalf("did not expect CodeImplementsNominalized for a genuine catalog facade, got: %v", d)
		}
	}
	if !strings.Contains(text, "IEnumerable") {
		t.Errorf("expected the facade interface to still be lowered, got:\n%s", text)
	}
}

func TestEmit_NullableLogicalOrRewritesToNullCoalesce(t *testing.T) {
	fn := &surface.FunctionDecl{
		Name:       "fallback",
		Params:     []*surface.Param{param("a", namedType("string")), param("b", namedType("string"))},
		ReturnType: namedType("string"),
		Body: &surface.Block{Stmts: []surface.Stmt{
			&surface.ReturnStmt{Value: &surface.BinaryExpr{Op: surface.OpOr, Left: ident("a"), Right: ident("b")}},
		}},
	}
	prog := &surface.Program{File: "fallback.ts", Decls: []surface.Decl{fn}}
	mod, sink := buildModule(t, prog)
	if len(sink.Diagnostics()) != 0 {
		t.Fatalf("unexpected diagnostics: %v", sink.Diagnostics())
	}

	_, text := Emit(mod, sink)
	if !strings.Contains(text, "a ?? b") {
		t.Errorf("expected a ?? rewrite of a nullable || chain, got:\n%s", text)
	}
}

func TestPrint_PrecedenceParenthesizesAdditiveInsideMultiplicative(t *testing.T) {
	// (1 + 2) * 3 must keep its parens; 1 + 2 * 3 must not gain any.
	mul := &targetast.Binary{
		Op:   "*",
		Left: &targetast.Binary{Op: "+", Left: &targetast.Literal{Kind: targetast.LitInt, Raw: "1"}, Right: &targetast.Literal{Kind: targetast.LitInt, Raw: "2"}},
		Right: &targetast.Literal{Kind: targetast.LitInt, Raw: "3"},
	}
	p := &printer{}
	got := p.exprString(mul, 0, false)
	if got != "(1 + 2) * 3" {
		t.Errorf("expected parenthesized additive operand, got %q", got)
	}

	add := &targetast.Binary{
		Op:    "+",
		Left:  &targetast.Literal{Kind: targetast.LitInt, Raw: "1"},
		Right: &targetast.Binary{Op: "*", Left: &targetast.Literal{Kind: targetast.LitInt, Raw: "2"}, Right: &targetast.Literal{Kind: targetast.LitInt, Raw: "3"}},
	}
	p2 := &printer{}
	got2 := p2.exprString(add, 0, false)
	if got2 != "1 + 2 * 3" {
		t.Errorf("expected no parens around a tighter-binding multiplicative operand, got %q", got2)
	}
}

func TestPrint_RightAssociativePowerParenthesizesLeftOperandOnly(t *testing.T) {
	// (a ** b) ** c must parenthesize the left side since ** is right-assoc;
	// a ** (b ** c) prints without parens since that's the natural grouping.
	leftNested := &targetast.Binary{
		Op:    "**",
		Left:  &targetast.Binary{Op: "**", Left: &targetast.Ident{Name: "a"}, Right: &targetast.Ident{Name: "b"}},
		Right: &targetast.Ident{Name: "c"},
	}
	p := &printer{}
	got := p.exprString(leftNested, 0, false)
	if got != "(a ** b) ** c" {
		t.Errorf("expected left operand parenthesized under right-assoc **, got %q", got)
	}

	rightNested := &targetast.Binary{
		Op:    "**",
		Left:  &targetast.Ident{Name: "a"},
		Right: &targetast.Binary{Op: "**", Left: &targetast.Ident{Name: "b"}, Right: &targetast.Ident{Name: "c"}},
	}
	if got := p.exprString(rightNested, 0, false); got != "a ** b ** c" {
		t.Errorf("expected no parens around the right operand of right-assoc **, got %q", got)
	}
}
